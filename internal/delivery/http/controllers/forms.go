package controllers

import (
	"time"

	"conferencecentral/internal/domain"
)

// Outward representations for entities whose stored types do not match the
// wire format. Dates render as YYYY-MM-DD and times of day as HH:MM, the
// same strings the request bodies accept.

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimeOfDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

// ConferenceForm is the response body for a conference.
// swagger:model ConferenceForm
type ConferenceForm struct {
	ID                   string    `json:"id"`
	OrganizerID          string    `json:"organizer_id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Topics               []string  `json:"topics"`
	City                 string    `json:"city"`
	StartDate            string    `json:"start_date,omitempty"`
	Month                int       `json:"month"`
	EndDate              string    `json:"end_date,omitempty"`
	MaxAttendees         int       `json:"max_attendees"`
	SeatsAvailable       int       `json:"seats_available"`
	OrganizerDisplayName string    `json:"organizer_display_name,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func newConferenceForm(conf *domain.Conference) *ConferenceForm {
	return &ConferenceForm{
		ID:                   conf.ID,
		OrganizerID:          conf.OrganizerID,
		Name:                 conf.Name,
		Description:          conf.Description,
		Topics:               conf.Topics,
		City:                 conf.City,
		StartDate:            formatDate(conf.StartDate),
		Month:                conf.Month,
		EndDate:              formatDate(conf.EndDate),
		MaxAttendees:         conf.MaxAttendees,
		SeatsAvailable:       conf.SeatsAvailable,
		OrganizerDisplayName: conf.OrganizerDisplayName,
		CreatedAt:            conf.CreatedAt,
		UpdatedAt:            conf.UpdatedAt,
	}
}

func newConferenceForms(confs []*domain.Conference) []*ConferenceForm {
	forms := make([]*ConferenceForm, len(confs))
	for i, conf := range confs {
		forms[i] = newConferenceForm(conf)
	}
	return forms
}

// SessionForm is the response body for a session.
// swagger:model SessionForm
type SessionForm struct {
	ID           string    `json:"id"`
	ConferenceID string    `json:"conference_id"`
	Name         string    `json:"name"`
	Highlights   string    `json:"highlights"`
	Speaker      string    `json:"speaker"`
	Duration     int       `json:"duration"`
	SessionTypes []string  `json:"session_types"`
	Date         string    `json:"date,omitempty"`
	StartTime    string    `json:"start_time,omitempty"`
	OrganizerID  string    `json:"organizer_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func newSessionForm(sess *domain.Session) *SessionForm {
	return &SessionForm{
		ID:           sess.ID,
		ConferenceID: sess.ConferenceID,
		Name:         sess.Name,
		Highlights:   sess.Highlights,
		Speaker:      sess.Speaker,
		Duration:     sess.Duration,
		SessionTypes: sess.SessionTypes,
		Date:         formatDate(sess.Date),
		StartTime:    formatTimeOfDay(sess.StartTime),
		OrganizerID:  sess.OrganizerID,
		CreatedAt:    sess.CreatedAt,
		UpdatedAt:    sess.UpdatedAt,
	}
}

func newSessionForms(sessions []*domain.Session) []*SessionForm {
	forms := make([]*SessionForm, len(sessions))
	for i, sess := range sessions {
		forms[i] = newSessionForm(sess)
	}
	return forms
}
