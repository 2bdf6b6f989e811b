package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type conferenceService struct {
	confRepo       domain.ConferenceRepository
	registrations  domain.RegistrationRepository
	profileRepo    domain.ProfileRepository
	dispatcher     domain.TaskDispatcher
	contextTimeout time.Duration
}

// NewConferenceService creates a ConferenceService with the given
// repositories and task dispatcher.
func NewConferenceService(
	confRepo domain.ConferenceRepository,
	registrations domain.RegistrationRepository,
	profileRepo domain.ProfileRepository,
	dispatcher domain.TaskDispatcher,
	timeout time.Duration,
) domain.ConferenceService {
	return &conferenceService{
		confRepo:       confRepo,
		registrations:  registrations,
		profileRepo:    profileRepo,
		dispatcher:     dispatcher,
		contextTimeout: timeout,
	}
}

func (s *conferenceService) Create(ctx context.Context, organizerID, organizerEmail string, conf *domain.Conference) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if conf.Name == "" {
		return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
	}

	applyConferenceDefaults(conf)

	// Month is derived from the start date, never accepted from the caller.
	if conf.StartDate != nil {
		conf.Month = int(conf.StartDate.Month())
	} else {
		conf.Month = 0
	}

	// A fresh conference starts fully unsold.
	if conf.MaxAttendees > 0 {
		conf.SeatsAvailable = conf.MaxAttendees
	}

	conf.OrganizerID = organizerID
	now := time.Now()
	conf.CreatedAt = now
	conf.UpdatedAt = now

	if err := s.confRepo.Create(ctx, conf); err != nil {
		return nil, fmt.Errorf("create conference: %w", err)
	}

	s.dispatcher.Enqueue(domain.Task{
		Kind: domain.TaskSendConfirmationEmail,
		Params: map[string]string{
			domain.TaskParamEmail:          organizerEmail,
			domain.TaskParamConferenceInfo: describeConference(conf),
		},
	})

	return conf, nil
}

// applyConferenceDefaults fills the static creation defaults for omitted
// fields. Zero values count as omitted here; creation is not a partial
// update.
func applyConferenceDefaults(conf *domain.Conference) {
	if conf.City == "" {
		conf.City = domain.DefaultCity
	}
	if len(conf.Topics) == 0 {
		conf.Topics = domain.DefaultTopics()
	}
	if conf.MaxAttendees < 0 {
		conf.MaxAttendees = 0
	}
	if conf.SeatsAvailable < 0 {
		conf.SeatsAvailable = 0
	}
}

// describeConference builds the human-readable summary included in the
// confirmation email.
func describeConference(conf *domain.Conference) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", conf.Name)
	if conf.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", conf.Description)
	}
	fmt.Fprintf(&b, "City: %s\n", conf.City)
	fmt.Fprintf(&b, "Topics: %s\n", strings.Join(conf.Topics, ", "))
	if conf.StartDate != nil {
		fmt.Fprintf(&b, "Start date: %s\n", conf.StartDate.Format("2006-01-02"))
	}
	if conf.EndDate != nil {
		fmt.Fprintf(&b, "End date: %s\n", conf.EndDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Max attendees: %d\n", conf.MaxAttendees)
	return b.String()
}

func (s *conferenceService) Update(ctx context.Context, conferenceID, callerID string, upd domain.ConferenceUpdate) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.confRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	if conf.OrganizerID != callerID {
		return nil, domain.ErrForbidden
	}

	if upd.Name != nil {
		if *upd.Name == "" {
			return nil, fmt.Errorf("%w: conference 'name' field required", domain.ErrInvalidInput)
		}
		conf.Name = *upd.Name
	}
	if upd.Description != nil {
		conf.Description = *upd.Description
	}
	if upd.Topics != nil {
		conf.Topics = upd.Topics
	}
	if upd.City != nil {
		conf.City = *upd.City
	}
	if upd.StartDate != nil {
		conf.StartDate = upd.StartDate
		conf.Month = int(upd.StartDate.Month())
	}
	if upd.EndDate != nil {
		conf.EndDate = upd.EndDate
	}
	if upd.MaxAttendees != nil {
		conf.MaxAttendees = *upd.MaxAttendees
	}
	if upd.SeatsAvailable != nil {
		conf.SeatsAvailable = *upd.SeatsAvailable
	}
	conf.UpdatedAt = time.Now()

	if err := s.confRepo.Update(ctx, conf); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update conference: %w", err)
	}
	return conf, nil
}

func (s *conferenceService) GetByID(ctx context.Context, conferenceID string) (*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	conf, err := s.confRepo.GetByID(ctx, conferenceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get conference: %w", err)
	}
	s.attachOrganizerNames(ctx, []*domain.Conference{conf})
	return conf, nil
}

// attachOrganizerNames resolves organizer display names from profiles.
// Best effort: a missing profile or a lookup failure leaves the name empty.
func (s *conferenceService) attachOrganizerNames(ctx context.Context, confs []*domain.Conference) {
	if len(confs) == 0 {
		return
	}
	ids := make([]string, 0, len(confs))
	seen := make(map[string]struct{}, len(confs))
	for _, conf := range confs {
		if _, ok := seen[conf.OrganizerID]; ok {
			continue
		}
		seen[conf.OrganizerID] = struct{}{}
		ids = append(ids, conf.OrganizerID)
	}
	profiles, err := s.profileRepo.GetByIDs(ctx, ids)
	if err != nil {
		return
	}
	for _, conf := range confs {
		if prof, ok := profiles[conf.OrganizerID]; ok {
			conf.OrganizerDisplayName = prof.DisplayName
		}
	}
}

func (s *conferenceService) ListCreatedBy(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.confRepo.ListByOrganizerID(ctx, organizerID)
	if err != nil {
		return nil, fmt.Errorf("list conferences by organizer: %w", err)
	}
	if confs == nil {
		confs = []*domain.Conference{}
	}
	s.attachOrganizerNames(ctx, confs)
	return confs, nil
}

func (s *conferenceService) Query(ctx context.Context, filters []domain.ConferenceFilter) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	q, err := CompileConferenceFilters(filters)
	if err != nil {
		return nil, err
	}
	confs, err := s.confRepo.ListByQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query conferences: %w", err)
	}
	if confs == nil {
		confs = []*domain.Conference{}
	}
	s.attachOrganizerNames(ctx, confs)
	return confs, nil
}

func (s *conferenceService) ListAttending(ctx context.Context, userID string) ([]*domain.Conference, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	ids, err := s.registrations.ListConferenceIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Conference{}, nil
	}
	confs, err := s.confRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list conferences by ids: %w", err)
	}
	if confs == nil {
		confs = []*domain.Conference{}
	}
	s.attachOrganizerNames(ctx, confs)
	return confs, nil
}
