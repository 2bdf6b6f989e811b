package services

import (
	"context"
	"fmt"

	"conferencecentral/internal/domain"
)

// TaskRunner executes deferred tasks pulled off the dispatcher. Handlers are
// idempotent, so redelivery after a partial failure is safe.
type TaskRunner struct {
	emailService   domain.EmailService
	sessionService domain.SessionService
}

// NewTaskRunner creates a TaskRunner over the services the tasks invoke.
func NewTaskRunner(emailService domain.EmailService, sessionService domain.SessionService) *TaskRunner {
	return &TaskRunner{
		emailService:   emailService,
		sessionService: sessionService,
	}
}

// Handle executes one task. A returned error signals the dispatcher to retry.
func (r *TaskRunner) Handle(ctx context.Context, task domain.Task) error {
	switch task.Kind {
	case domain.TaskSendConfirmationEmail:
		return r.emailService.SendConferenceConfirmation(ctx, &domain.ConferenceConfirmationEmailData{
			Email:          task.Params[domain.TaskParamEmail],
			ConferenceInfo: task.Params[domain.TaskParamConferenceInfo],
		})
	case domain.TaskSetFeaturedSpeaker:
		return r.sessionService.RefreshFeaturedSpeaker(ctx, task.Params[domain.TaskParamSpeaker])
	default:
		return fmt.Errorf("unknown task kind %q", task.Kind)
	}
}
