package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"conferencecentral/internal/domain"
)

type sessionService struct {
	confRepo       domain.ConferenceRepository
	sessionRepo    domain.SessionRepository
	cache          domain.CacheStore
	dispatcher     domain.TaskDispatcher
	contextTimeout time.Duration
}

// NewSessionService creates a SessionService with the given repositories,
// cache store, and task dispatcher.
func NewSessionService(
	confRepo domain.ConferenceRepository,
	sessionRepo domain.SessionRepository,
	cache domain.CacheStore,
	dispatcher domain.TaskDispatcher,
	timeout time.Duration,
) domain.SessionService {
	return &sessionService{
		confRepo:       confRepo,
		sessionRepo:    sessionRepo,
		cache:          cache,
		dispatcher:     dispatcher,
		contextTimeout: timeout,
	}
}

func (s *sessionService) Create(ctx context.Context, conferenceID, callerID string, sess *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if sess.Name == "" {
		return nil, fmt.Errorf("%w: session 'name' field required", domain.ErrInvalidInput)
	}
	if sess.Speaker == "" {
		return nil, fmt.Errorf("%w: session 'speaker' field required", domain.ErrInvalidInput)
	}

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

	sess.ConferenceID = conf.ID
	sess.OrganizerID = conf.OrganizerID
	now := time.Now()
	sess.CreatedAt = now
	sess.UpdatedAt = now

	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	// The featured-speaker cache is recomputed out-of-band: the speaker may
	// have just gained a second session.
	s.dispatcher.Enqueue(domain.Task{
		Kind: domain.TaskSetFeaturedSpeaker,
		Params: map[string]string{
			domain.TaskParamConferenceID: conf.ID,
			domain.TaskParamSpeaker:      sess.Speaker,
		},
	})

	return sess, nil
}

func (s *sessionService) ListByConference(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	return s.listSessions(s.sessionRepo.ListByConferenceID(ctx, conferenceID))
}

func (s *sessionService) ListByConferenceAndType(ctx context.Context, conferenceID, sessionType string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	return s.listSessions(s.sessionRepo.ListByConferenceIDAndType(ctx, conferenceID, sessionType))
}

func (s *sessionService) ListByConferenceAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	return s.listSessions(s.sessionRepo.ListByConferenceIDAndSpeaker(ctx, conferenceID, speaker))
}

func (s *sessionService) ListByConferenceToDate(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkConference(ctx, conferenceID); err != nil {
		return nil, err
	}
	return s.listSessions(s.sessionRepo.ListByConferenceIDToDate(ctx, conferenceID, time.Now()))
}

func (s *sessionService) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.listSessions(s.sessionRepo.ListBySpeaker(ctx, speaker))
}

func (s *sessionService) ListNonWorkshopDaySessions(ctx context.Context) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListStartingBy(ctx, domain.DaySessionCutoffHour)
	if err != nil {
		return nil, fmt.Errorf("list day sessions: %w", err)
	}

	qualified := make([]*domain.Session, 0, len(sessions))
	for _, sess := range sessions {
		if hasSessionType(sess, domain.WorkshopSessionType) {
			continue
		}
		qualified = append(qualified, sess)
	}
	return qualified, nil
}

func hasSessionType(sess *domain.Session, sessionType string) bool {
	for _, t := range sess.SessionTypes {
		if t == sessionType {
			return true
		}
	}
	return false
}

func (s *sessionService) RefreshFeaturedSpeaker(ctx context.Context, speaker string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sessions, err := s.sessionRepo.ListBySpeaker(ctx, speaker)
	if err != nil {
		return fmt.Errorf("list sessions by speaker: %w", err)
	}
	// A speaker becomes featured only with more than one session system-wide.
	// With fewer, the current cache entry (possibly another speaker) stands.
	if len(sessions) <= 1 {
		return nil
	}

	names := make([]string, len(sessions))
	for i, sess := range sessions {
		names[i] = sess.Name
	}
	payload, err := json.Marshal(domain.FeaturedSpeaker{Speaker: speaker, SessionNames: names})
	if err != nil {
		return fmt.Errorf("marshal featured speaker: %w", err)
	}
	// The cache is best-effort; a failed write only means staleness.
	if err := s.cache.Set(ctx, domain.CacheKeyFeaturedSpeaker, string(payload)); err != nil {
		log.Printf("[CACHE] failed to set featured speaker: %v", err)
	}
	return nil
}

func (s *sessionService) GetFeaturedSpeaker(ctx context.Context) (*domain.FeaturedSpeaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	raw, err := s.cache.Get(ctx, domain.CacheKeyFeaturedSpeaker)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return &domain.FeaturedSpeaker{SessionNames: []string{}}, nil
		}
		return nil, fmt.Errorf("get featured speaker from cache: %w", err)
	}
	var fs domain.FeaturedSpeaker
	if err := json.Unmarshal([]byte(raw), &fs); err != nil {
		return nil, fmt.Errorf("unmarshal featured speaker: %w", err)
	}
	if fs.SessionNames == nil {
		fs.SessionNames = []string{}
	}
	return &fs, nil
}

func (s *sessionService) checkConference(ctx context.Context, conferenceID string) error {
	if _, err := s.confRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get conference: %w", err)
	}
	return nil
}

func (s *sessionService) listSessions(sessions []*domain.Session, err error) ([]*domain.Session, error) {
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}
