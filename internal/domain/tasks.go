package domain

// TaskKind identifies a deferred task type.
type TaskKind string

const (
	TaskSendConfirmationEmail TaskKind = "send_confirmation_email"
	TaskSetFeaturedSpeaker    TaskKind = "set_featured_speaker"
)

// Task parameter keys.
const (
	TaskParamEmail          = "email"
	TaskParamConferenceInfo = "conference_info"
	TaskParamConferenceID   = "conference_id"
	TaskParamSpeaker        = "speaker"
)

// Task is one unit of deferred work enqueued from the request path.
type Task struct {
	Kind   TaskKind
	Params map[string]string
}

// TaskDispatcher enqueues deferred work, fire-and-forget from the caller's
// perspective. Delivery is at-least-once; handlers must be idempotent.
type TaskDispatcher interface {
	Enqueue(task Task)
}
