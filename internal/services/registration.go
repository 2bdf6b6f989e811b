package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"conferencecentral/internal/domain"
)

type registrationService struct {
	confRepo       domain.ConferenceRepository
	registrations  domain.RegistrationRepository
	contextTimeout time.Duration
}

// NewRegistrationService creates a RegistrationService with the given
// repositories.
func NewRegistrationService(
	confRepo domain.ConferenceRepository,
	registrations domain.RegistrationRepository,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		confRepo:       confRepo,
		registrations:  registrations,
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, conferenceID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.confRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get conference: %w", err)
	}

	// The repository serializes concurrent attempts on the same conference;
	// the seat check and decrement happen under that isolation, never here.
	if err := s.registrations.Register(ctx, conferenceID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) || errors.Is(err, domain.ErrNoSeatsAvailable) {
			return false, err
		}
		return false, fmt.Errorf("register for conference: %w", err)
	}
	return true, nil
}

func (s *registrationService) Unregister(ctx context.Context, conferenceID, userID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.confRepo.GetByID(ctx, conferenceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, domain.ErrNotFound
		}
		return false, fmt.Errorf("get conference: %w", err)
	}

	// Unregistering while not registered is a no-op reported as false.
	removed, err := s.registrations.Unregister(ctx, conferenceID, userID)
	if err != nil {
		return false, fmt.Errorf("unregister from conference: %w", err)
	}
	return removed, nil
}
