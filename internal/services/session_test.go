package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepo is an in-memory SessionRepository for tests.
type fakeSessionRepo struct {
	byID      map[string]*domain.Session
	nextID    int
	createErr error
	listErr   error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		byID:   make(map[string]*domain.Session),
		nextID: 1,
	}
}

func (f *fakeSessionRepo) Create(ctx context.Context, sess *domain.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	sess.ID = fmt.Sprintf("sess-%d", f.nextID)
	f.nextID++
	f.byID[sess.ID] = sess
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	if s, ok := f.byID[id]; ok {
		return s, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeSessionRepo) ListByConferenceID(ctx context.Context, conferenceID string) ([]*domain.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Session
	for _, s := range f.byID {
		if s.ConferenceID == conferenceID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByConferenceIDAndType(ctx context.Context, conferenceID, sessionType string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.byID {
		if s.ConferenceID == conferenceID && hasSessionType(s, sessionType) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByConferenceIDAndSpeaker(ctx context.Context, conferenceID, speaker string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.byID {
		if s.ConferenceID == conferenceID && s.Speaker == speaker {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByConferenceIDToDate(ctx context.Context, conferenceID string, cutoff time.Time) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, s := range f.byID {
		if s.ConferenceID == conferenceID && s.Date != nil && !s.Date.After(cutoff) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListBySpeaker(ctx context.Context, speaker string) ([]*domain.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Session
	for _, s := range f.byID {
		if s.Speaker == speaker {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListStartingBy(ctx context.Context, hour int) ([]*domain.Session, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Session
	for _, s := range f.byID {
		if s.StartTime == nil {
			continue
		}
		if s.StartTime.Hour()*60+s.StartTime.Minute() <= hour*60 {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Session, error) {
	var out []*domain.Session
	for _, id := range ids {
		if s, ok := f.byID[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// fakeCache is an in-memory CacheStore for tests.
type fakeCache struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return "", f.getErr
	}
	v, ok := f.values[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	return v, nil
}

func (f *fakeCache) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.values, key)
	return nil
}

func timeOfDay(hour, minute int) *time.Time {
	t := time.Date(1970, 1, 1, hour, minute, 0, 0, time.UTC)
	return &t
}

func newSessionService(repo *fakeConferenceRepo, sessions *fakeSessionRepo, cache *fakeCache, disp *fakeDispatcher) domain.SessionService {
	return NewSessionService(repo, sessions, cache, disp, 5*time.Second)
}

func TestSessionService_Create(t *testing.T) {
	ctx := context.Background()

	seed := func() (*fakeConferenceRepo, string) {
		repo := newFakeConferenceRepo()
		conf := &domain.Conference{Name: "GopherCon", OrganizerID: "user-1"}
		_ = repo.Create(ctx, conf)
		return repo, conf.ID
	}

	t.Run("success enqueues featured speaker task", func(t *testing.T) {
		repo, confID := seed()
		sessions := newFakeSessionRepo()
		disp := &fakeDispatcher{}
		svc := newSessionService(repo, sessions, newFakeCache(), disp)

		got, err := svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Intro to Go", Speaker: "Rob"})
		require.NoError(t, err)
		require.NotEmpty(t, got.ID)
		assert.Equal(t, confID, got.ConferenceID)
		assert.Equal(t, "user-1", got.OrganizerID)

		tasks := disp.enqueued()
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.TaskSetFeaturedSpeaker, tasks[0].Kind)
		assert.Equal(t, "Rob", tasks[0].Params[domain.TaskParamSpeaker])
		assert.Equal(t, confID, tasks[0].Params[domain.TaskParamConferenceID])
	})

	t.Run("name and speaker required", func(t *testing.T) {
		repo, confID := seed()
		svc := newSessionService(repo, newFakeSessionRepo(), newFakeCache(), &fakeDispatcher{})

		_, err := svc.Create(ctx, confID, "user-1", &domain.Session{Speaker: "Rob"})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
		_, err = svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Intro to Go"})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("conference not found", func(t *testing.T) {
		repo, _ := seed()
		svc := newSessionService(repo, newFakeSessionRepo(), newFakeCache(), &fakeDispatcher{})

		_, err := svc.Create(ctx, "conf-missing", "user-1", &domain.Session{Name: "Intro to Go", Speaker: "Rob"})
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("forbidden for non-organizer", func(t *testing.T) {
		repo, confID := seed()
		disp := &fakeDispatcher{}
		svc := newSessionService(repo, newFakeSessionRepo(), newFakeCache(), disp)

		_, err := svc.Create(ctx, confID, "user-2", &domain.Session{Name: "Intro to Go", Speaker: "Rob"})
		require.True(t, errors.Is(err, domain.ErrForbidden))
		assert.Empty(t, disp.enqueued())
	})
}

func TestSessionService_ListByConference(t *testing.T) {
	ctx := context.Background()

	repo := newFakeConferenceRepo()
	conf := &domain.Conference{Name: "GopherCon", OrganizerID: "user-1"}
	_ = repo.Create(ctx, conf)
	sessions := newFakeSessionRepo()
	svc := newSessionService(repo, sessions, newFakeCache(), &fakeDispatcher{})

	_, err := svc.Create(ctx, conf.ID, "user-1", &domain.Session{Name: "Talk A", Speaker: "Rob", SessionTypes: []string{"lecture"}})
	require.NoError(t, err)
	_, err = svc.Create(ctx, conf.ID, "user-1", &domain.Session{Name: "Workshop B", Speaker: "Ken", SessionTypes: []string{"workshop"}})
	require.NoError(t, err)

	all, err := svc.ListByConference(ctx, conf.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	lectures, err := svc.ListByConferenceAndType(ctx, conf.ID, "lecture")
	require.NoError(t, err)
	require.Len(t, lectures, 1)
	assert.Equal(t, "Talk A", lectures[0].Name)

	byRob, err := svc.ListByConferenceAndSpeaker(ctx, conf.ID, "Rob")
	require.NoError(t, err)
	require.Len(t, byRob, 1)
	assert.Equal(t, "Talk A", byRob[0].Name)

	_, err = svc.ListByConference(ctx, "conf-missing")
	require.True(t, errors.Is(err, domain.ErrNotFound))

	empty, err := svc.ListByConferenceAndType(ctx, conf.ID, "keynote")
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestSessionService_ListNonWorkshopDaySessions(t *testing.T) {
	ctx := context.Background()

	repo := newFakeConferenceRepo()
	conf := &domain.Conference{Name: "GopherCon", OrganizerID: "user-1"}
	_ = repo.Create(ctx, conf)
	sessions := newFakeSessionRepo()
	svc := newSessionService(repo, sessions, newFakeCache(), &fakeDispatcher{})

	mk := func(name string, types []string, start *time.Time) {
		_, err := svc.Create(ctx, conf.ID, "user-1", &domain.Session{Name: name, Speaker: "X", SessionTypes: types, StartTime: start})
		require.NoError(t, err)
	}
	mk("morning talk", []string{"lecture"}, timeOfDay(10, 0))
	mk("evening workshop", []string{"workshop"}, timeOfDay(18, 0))
	mk("late keynote", []string{"keynote"}, timeOfDay(21, 0))
	mk("boundary talk", []string{"lecture"}, timeOfDay(19, 0))
	mk("after hours talk", []string{"lecture"}, timeOfDay(19, 30))
	mk("untimed talk", []string{"lecture"}, nil)

	got, err := svc.ListNonWorkshopDaySessions(ctx)
	require.NoError(t, err)
	names := make([]string, len(got))
	for i, s := range got {
		names[i] = s.Name
	}
	assert.ElementsMatch(t, []string{"morning talk", "boundary talk"}, names)
}

func TestSessionService_FeaturedSpeaker(t *testing.T) {
	ctx := context.Background()

	seed := func() (*fakeConferenceRepo, *fakeCache, domain.SessionService, string) {
		repo := newFakeConferenceRepo()
		conf := &domain.Conference{Name: "GopherCon", OrganizerID: "user-1"}
		_ = repo.Create(ctx, conf)
		cache := newFakeCache()
		svc := newSessionService(repo, newFakeSessionRepo(), cache, &fakeDispatcher{})
		return repo, cache, svc, conf.ID
	}

	t.Run("single session leaves the cache untouched", func(t *testing.T) {
		_, cache, svc, confID := seed()
		cache.values[domain.CacheKeyFeaturedSpeaker] = `{"speaker":"Ken","session_names":["Old A","Old B"]}`

		_, err := svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Only Talk", Speaker: "Rob"})
		require.NoError(t, err)
		require.NoError(t, svc.RefreshFeaturedSpeaker(ctx, "Rob"))

		got, err := svc.GetFeaturedSpeaker(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Ken", got.Speaker, "prior entry must survive")
	})

	t.Run("second session makes the speaker featured", func(t *testing.T) {
		_, cache, svc, confID := seed()

		_, err := svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Talk A", Speaker: "Rob"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Talk B", Speaker: "Rob"})
		require.NoError(t, err)
		require.NoError(t, svc.RefreshFeaturedSpeaker(ctx, "Rob"))

		raw, ok := cache.values[domain.CacheKeyFeaturedSpeaker]
		require.True(t, ok)
		var fs domain.FeaturedSpeaker
		require.NoError(t, json.Unmarshal([]byte(raw), &fs))
		assert.Equal(t, "Rob", fs.Speaker)
		assert.ElementsMatch(t, []string{"Talk A", "Talk B"}, fs.SessionNames)

		got, err := svc.GetFeaturedSpeaker(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Rob", got.Speaker)
	})

	t.Run("cache miss yields empty record", func(t *testing.T) {
		_, _, svc, _ := seed()

		got, err := svc.GetFeaturedSpeaker(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Empty(t, got.Speaker)
		require.NotNil(t, got.SessionNames)
		assert.Len(t, got.SessionNames, 0)
	})

	t.Run("cache write failure is not fatal", func(t *testing.T) {
		_, cache, svc, confID := seed()
		cache.setErr = errors.New("redis down")

		_, err := svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Talk A", Speaker: "Rob"})
		require.NoError(t, err)
		_, err = svc.Create(ctx, confID, "user-1", &domain.Session{Name: "Talk B", Speaker: "Rob"})
		require.NoError(t, err)
		require.NoError(t, svc.RefreshFeaturedSpeaker(ctx, "Rob"))
	})
}
