package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

type profileService struct {
	profileRepo    domain.ProfileRepository
	wishlistRepo   domain.WishlistRepository
	sessionRepo    domain.SessionRepository
	contextTimeout time.Duration
}

// NewProfileService creates a ProfileService with the given repositories.
func NewProfileService(
	profileRepo domain.ProfileRepository,
	wishlistRepo domain.WishlistRepository,
	sessionRepo domain.SessionRepository,
	timeout time.Duration,
) domain.ProfileService {
	return &profileService{
		profileRepo:    profileRepo,
		wishlistRepo:   wishlistRepo,
		sessionRepo:    sessionRepo,
		contextTimeout: timeout,
	}
}

func (s *profileService) GetOrCreate(ctx context.Context, userID, email string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.getOrCreate(ctx, userID, email)
}

func (s *profileService) getOrCreate(ctx context.Context, userID, email string) (*domain.Profile, error) {
	prof, err := s.profileRepo.GetByID(ctx, userID)
	if err == nil {
		return prof, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	now := time.Now()
	prof = &domain.Profile{
		ID:           userID,
		DisplayName:  displayNameFromEmail(email),
		MainEmail:    email,
		TeeShirtSize: domain.TeeShirtNotSpecified,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.profileRepo.Create(ctx, prof); err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}
	return prof, nil
}

// displayNameFromEmail derives the initial display name for a lazily created
// profile, mirroring the identity provider's nickname behavior.
func displayNameFromEmail(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func (s *profileService) Save(ctx context.Context, userID, email string, upd domain.ProfileUpdate) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	prof, err := s.getOrCreate(ctx, userID, email)
	if err != nil {
		return nil, err
	}

	if upd.DisplayName != nil && *upd.DisplayName != "" {
		prof.DisplayName = *upd.DisplayName
	}
	if upd.TeeShirtSize != nil {
		prof.TeeShirtSize = *upd.TeeShirtSize
	}
	prof.UpdatedAt = time.Now()

	if err := s.profileRepo.Update(ctx, prof); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return prof, nil
}

func (s *profileService) AddSessionToWishlist(ctx context.Context, userID, email, sessionID string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	sess, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	// The wishlist hangs off the profile; make sure one exists.
	if _, err := s.getOrCreate(ctx, userID, email); err != nil {
		return nil, err
	}

	if err := s.wishlistRepo.Add(ctx, userID, sessionID); err != nil {
		if errors.Is(err, domain.ErrAlreadyInWishlist) {
			return nil, domain.ErrAlreadyInWishlist
		}
		return nil, fmt.Errorf("add session to wishlist: %w", err)
	}
	return sess, nil
}

func (s *profileService) ListWishlistSessions(ctx context.Context, userID, email string) ([]*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.getOrCreate(ctx, userID, email); err != nil {
		return nil, err
	}

	ids, err := s.wishlistRepo.ListSessionIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.Session{}, nil
	}
	sessions, err := s.sessionRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list wishlist sessions: %w", err)
	}
	if sessions == nil {
		sessions = []*domain.Session{}
	}
	return sessions, nil
}
