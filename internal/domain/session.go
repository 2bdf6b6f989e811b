package domain

import (
	"context"
	"time"
)

// WorkshopSessionType is excluded by the non-workshop day-session query.
const WorkshopSessionType = "workshop"

// DaySessionCutoffHour is the latest start hour (24h clock, inclusive) for a
// session to count as a day session.
const DaySessionCutoffHour = 19

// Session represents a conference session or talk. Sessions are immutable
// after creation.
type Session struct {
	ID           string `json:"id"`
	ConferenceID string `json:"conference_id"`
	Name         string `json:"name"`
	Highlights   string `json:"highlights"`
	Speaker      string `json:"speaker"`
	// Duration is the session length in minutes.
	Duration     int        `json:"duration"`
	SessionTypes []string   `json:"session_types"`
	Date         *time.Time `json:"date"`
	// StartTime is a time of day only; the date component is meaningless.
	// Stored separately from Date so sessions order by time across dates.
	StartTime   *time.Time `json:"start_time"`
	OrganizerID string     `json:"organizer_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// FeaturedSpeaker is the cache-only derived record naming a speaker with more
// than one session system-wide.
// swagger:model FeaturedSpeaker
type FeaturedSpeaker struct {
	Speaker      string   `json:"speaker"`
	SessionNames []string `json:"session_names"`
}

// SessionRepository defines the interface for session storage
type SessionRepository interface {
	Create(ctx context.Context, sess *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	ListByConferenceID(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceIDAndType(ctx context.Context, conferenceID, sessionType string) ([]*Session, error)
	ListByConferenceIDAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*Session, error)
	// ListByConferenceIDToDate returns sessions dated on or before cutoff,
	// ordered by date then start time.
	ListByConferenceIDToDate(ctx context.Context, conferenceID string, cutoff time.Time) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	// ListStartingBy returns sessions across all conferences with a start
	// time at or before the top of the given hour, so hour 19 admits 19:00
	// but not 19:01.
	ListStartingBy(ctx context.Context, hour int) ([]*Session, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Session, error)
}

// SessionService defines the business logic for sessions and the featured
// speaker cache.
type SessionService interface {
	Create(ctx context.Context, conferenceID, callerID string, sess *Session) (*Session, error)
	ListByConference(ctx context.Context, conferenceID string) ([]*Session, error)
	ListByConferenceAndType(ctx context.Context, conferenceID, sessionType string) ([]*Session, error)
	ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*Session, error)
	ListByConferenceToDate(ctx context.Context, conferenceID string) ([]*Session, error)
	ListBySpeaker(ctx context.Context, speaker string) ([]*Session, error)
	ListNonWorkshopDaySessions(ctx context.Context) ([]*Session, error)
	// RefreshFeaturedSpeaker recomputes the featured-speaker cache entry for
	// the given speaker. A speaker with fewer than two sessions leaves the
	// cache untouched.
	RefreshFeaturedSpeaker(ctx context.Context, speaker string) error
	// GetFeaturedSpeaker returns the cached record, or an empty record when
	// none is set.
	GetFeaturedSpeaker(ctx context.Context) (*FeaturedSpeaker, error)
}
