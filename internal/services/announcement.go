package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"conferencecentral/internal/domain"
)

// almostSoldOutSeats is the seat threshold at or below which a conference
// (with seats remaining) is named in the announcement.
const almostSoldOutSeats = 5

const announcementPrefix = "Last chance to attend! The following conferences are nearly sold out:"

type announcementService struct {
	confRepo       domain.ConferenceRepository
	cache          domain.CacheStore
	contextTimeout time.Duration
}

// NewAnnouncementService creates an AnnouncementService backed by the given
// conference repository and cache store.
func NewAnnouncementService(confRepo domain.ConferenceRepository, cache domain.CacheStore, timeout time.Duration) domain.AnnouncementService {
	return &announcementService{
		confRepo:       confRepo,
		cache:          cache,
		contextTimeout: timeout,
	}
}

// Refresh is safe to repeat: it always derives the announcement from the
// current conference state, so at-least-once task delivery is harmless.
func (s *announcementService) Refresh(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	confs, err := s.confRepo.ListAlmostSoldOut(ctx, almostSoldOutSeats)
	if err != nil {
		return "", fmt.Errorf("list almost-sold-out conferences: %w", err)
	}

	if len(confs) == 0 {
		if err := s.cache.Delete(ctx, domain.CacheKeyAnnouncements); err != nil {
			return "", fmt.Errorf("clear announcement cache: %w", err)
		}
		return "", nil
	}

	names := make([]string, len(confs))
	for i, conf := range confs {
		names[i] = conf.Name
	}
	announcement := announcementPrefix + " " + strings.Join(names, ", ")
	if err := s.cache.Set(ctx, domain.CacheKeyAnnouncements, announcement); err != nil {
		return "", fmt.Errorf("set announcement cache: %w", err)
	}
	return announcement, nil
}

func (s *announcementService) Get(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	announcement, err := s.cache.Get(ctx, domain.CacheKeyAnnouncements)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", nil
		}
		return "", fmt.Errorf("get announcement from cache: %w", err)
	}
	return announcement, nil
}
