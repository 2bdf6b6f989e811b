package domain

import (
	"context"
	"time"
)

// Conference defaults applied on creation for omitted fields.
const (
	DefaultCity = "Default City"
)

// DefaultTopics returns the topics assigned to a conference created without any.
func DefaultTopics() []string {
	return []string{"Default", "Topic"}
}

// Conference represents a conference created by an organizer.
type Conference struct {
	ID             string     `json:"id"`
	OrganizerID    string     `json:"organizer_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Topics         []string   `json:"topics"`
	City           string     `json:"city"`
	StartDate      *time.Time `json:"start_date"`
	Month          int        `json:"month"`
	EndDate        *time.Time `json:"end_date"`
	MaxAttendees   int        `json:"max_attendees"`
	SeatsAvailable int        `json:"seats_available"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// OrganizerDisplayName is resolved from the organizer's profile when the
	// conference is read; it is not stored on the conference row.
	OrganizerDisplayName string `json:"organizer_display_name,omitempty"`
}

// ConferenceUpdate carries a partial conference update. Nil fields are left
// unchanged on the stored entity.
type ConferenceUpdate struct {
	Name           *string
	Description    *string
	Topics         []string
	City           *string
	StartDate      *time.Time
	EndDate        *time.Time
	MaxAttendees   *int
	SeatsAvailable *int
}

// ConferenceRepository defines the interface for conference storage
type ConferenceRepository interface {
	Create(ctx context.Context, conf *Conference) error
	GetByID(ctx context.Context, id string) (*Conference, error)
	ListByOrganizerID(ctx context.Context, organizerID string) ([]*Conference, error)
	ListByIDs(ctx context.Context, ids []string) ([]*Conference, error)
	// ListByQuery evaluates a compiled filter query (see ConferenceQuery).
	ListByQuery(ctx context.Context, q ConferenceQuery) ([]*Conference, error)
	// ListAlmostSoldOut returns conferences with 0 < seats_available <= limit,
	// ordered by name.
	ListAlmostSoldOut(ctx context.Context, limit int) ([]*Conference, error)
	Update(ctx context.Context, conf *Conference) error
}

// RegistrationRepository performs the seat-accounting state changes. Register
// and Unregister must execute atomically: the attendance row and the seat
// counter commit together or not at all, and concurrent registrations for the
// same conference are serialized so the counter never goes negative.
type RegistrationRepository interface {
	// Register adds the user to the conference and decrements the seat
	// counter. Returns ErrAlreadyRegistered or ErrNoSeatsAvailable without
	// mutation when the transition is not allowed.
	Register(ctx context.Context, conferenceID, userID string) error
	// Unregister removes the user and increments the seat counter. Returns
	// false with no error (and no mutation) if the user was not registered.
	Unregister(ctx context.Context, conferenceID, userID string) (bool, error)
	ListConferenceIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// ConferenceService defines the business logic for conferences.
type ConferenceService interface {
	// Create persists a new conference for the organizer, applying creation
	// defaults, and enqueues the confirmation email to organizerEmail.
	Create(ctx context.Context, organizerID, organizerEmail string, conf *Conference) (*Conference, error)
	Update(ctx context.Context, conferenceID, callerID string, upd ConferenceUpdate) (*Conference, error)
	GetByID(ctx context.Context, conferenceID string) (*Conference, error)
	ListCreatedBy(ctx context.Context, organizerID string) ([]*Conference, error)
	// Query compiles the raw filters and evaluates them. Invalid filters are
	// reported as ErrInvalidInput.
	Query(ctx context.Context, filters []ConferenceFilter) ([]*Conference, error)
	ListAttending(ctx context.Context, userID string) ([]*Conference, error)
}

// RegistrationService registers and unregisters a user for a conference.
type RegistrationService interface {
	Register(ctx context.Context, conferenceID, userID string) (bool, error)
	Unregister(ctx context.Context, conferenceID, userID string) (bool, error)
}

// AnnouncementService maintains the cached last-chance announcement.
type AnnouncementService interface {
	// Refresh recomputes the announcement from nearly-sold-out conferences
	// and stores (or clears) the cache entry. Returns the string it wrote,
	// or "" when the entry was cleared.
	Refresh(ctx context.Context) (string, error)
	// Get returns the cached announcement, or "" when none is set.
	Get(ctx context.Context) (string, error)
}
