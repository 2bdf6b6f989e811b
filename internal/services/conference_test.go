package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConferenceRepo is an in-memory ConferenceRepository for tests.
type fakeConferenceRepo struct {
	mu          sync.Mutex
	byID        map[string]*domain.Conference
	nextID      int
	createErr   error
	updateErr   error
	queryErr    error
	lastQuery   domain.ConferenceQuery
	queryResult []*domain.Conference
}

func newFakeConferenceRepo() *fakeConferenceRepo {
	return &fakeConferenceRepo{
		byID:   make(map[string]*domain.Conference),
		nextID: 1,
	}
}

func (f *fakeConferenceRepo) Create(ctx context.Context, conf *domain.Conference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	conf.ID = fmt.Sprintf("conf-%d", f.nextID)
	f.nextID++
	f.byID[conf.ID] = conf
	return nil
}

func (f *fakeConferenceRepo) GetByID(ctx context.Context, id string) (*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.byID[id]; ok {
		return c, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeConferenceRepo) ListByOrganizerID(ctx context.Context, organizerID string) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Conference
	for _, c := range f.byID {
		if c.OrganizerID == organizerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeConferenceRepo) ListByIDs(ctx context.Context, ids []string) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Conference
	for _, id := range ids {
		if c, ok := f.byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeConferenceRepo) ListByQuery(ctx context.Context, q domain.ConferenceQuery) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.queryErr != nil {
		return nil, f.queryErr
	}
	f.lastQuery = q
	return f.queryResult, nil
}

func (f *fakeConferenceRepo) ListAlmostSoldOut(ctx context.Context, limit int) ([]*domain.Conference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Conference
	for _, c := range f.byID {
		if c.SeatsAvailable > 0 && c.SeatsAvailable <= limit {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeConferenceRepo) Update(ctx context.Context, conf *domain.Conference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	if _, ok := f.byID[conf.ID]; !ok {
		return domain.ErrNotFound
	}
	f.byID[conf.ID] = conf
	return nil
}

// fakeRegistrationRepo keeps attendance in memory and does the seat
// accounting under a single mutex, matching the serialization the SQL
// implementation gets from row locks.
type fakeRegistrationRepo struct {
	mu      sync.Mutex
	confs   *fakeConferenceRepo
	byConf  map[string]map[string]bool
	regErr  error
	listErr error
}

func newFakeRegistrationRepo(confs *fakeConferenceRepo) *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		confs:  confs,
		byConf: make(map[string]map[string]bool),
	}
}

func (f *fakeRegistrationRepo) Register(ctx context.Context, conferenceID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.regErr != nil {
		return f.regErr
	}
	if f.byConf[conferenceID][userID] {
		return domain.ErrAlreadyRegistered
	}
	conf, err := f.confs.GetByID(ctx, conferenceID)
	if err != nil {
		return err
	}
	if conf.SeatsAvailable <= 0 {
		return domain.ErrNoSeatsAvailable
	}
	conf.SeatsAvailable--
	if f.byConf[conferenceID] == nil {
		f.byConf[conferenceID] = make(map[string]bool)
	}
	f.byConf[conferenceID][userID] = true
	return nil
}

func (f *fakeRegistrationRepo) Unregister(ctx context.Context, conferenceID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.byConf[conferenceID][userID] {
		return false, nil
	}
	delete(f.byConf[conferenceID], userID)
	conf, err := f.confs.GetByID(ctx, conferenceID)
	if err != nil {
		return false, err
	}
	conf.SeatsAvailable++
	return true, nil
}

func (f *fakeRegistrationRepo) IsRegistered(ctx context.Context, conferenceID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byConf[conferenceID][userID], nil
}

func (f *fakeRegistrationRepo) ListConferenceIDsByUser(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []string
	for confID, users := range f.byConf {
		if users[userID] {
			out = append(out, confID)
		}
	}
	sort.Strings(out)
	return out, nil
}

// fakeDispatcher records enqueued tasks.
type fakeDispatcher struct {
	mu    sync.Mutex
	tasks []domain.Task
}

func (f *fakeDispatcher) Enqueue(task domain.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, task)
}

func (f *fakeDispatcher) enqueued() []domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Task(nil), f.tasks...)
}

func TestConferenceService_Create(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	start := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		setup   func(repo *fakeConferenceRepo)
		conf    *domain.Conference
		wantErr error
		assert  func(t *testing.T, repo *fakeConferenceRepo, disp *fakeDispatcher, conf *domain.Conference)
	}{
		{
			name: "applies defaults for omitted fields",
			conf: &domain.Conference{Name: "GopherCon"},
			assert: func(t *testing.T, repo *fakeConferenceRepo, disp *fakeDispatcher, conf *domain.Conference) {
				require.NotEmpty(t, conf.ID)
				assert.Equal(t, "user-1", conf.OrganizerID)
				assert.Equal(t, domain.DefaultCity, conf.City)
				assert.Equal(t, []string{"Default", "Topic"}, conf.Topics)
				assert.Equal(t, 0, conf.Month)
				assert.Equal(t, 0, conf.SeatsAvailable)
				assert.False(t, conf.CreatedAt.IsZero())
			},
		},
		{
			name: "derives month and seats from inputs",
			conf: &domain.Conference{Name: "GopherCon", City: "Denver", Topics: []string{"Go"}, StartDate: &start, MaxAttendees: 200, Month: 12},
			assert: func(t *testing.T, repo *fakeConferenceRepo, disp *fakeDispatcher, conf *domain.Conference) {
				assert.Equal(t, "Denver", conf.City)
				assert.Equal(t, []string{"Go"}, conf.Topics)
				assert.Equal(t, 6, conf.Month, "month comes from the start date, not the request")
				assert.Equal(t, 200, conf.SeatsAvailable)
			},
		},
		{
			name: "enqueues confirmation email task",
			conf: &domain.Conference{Name: "GopherCon"},
			assert: func(t *testing.T, repo *fakeConferenceRepo, disp *fakeDispatcher, conf *domain.Conference) {
				tasks := disp.enqueued()
				require.Len(t, tasks, 1)
				assert.Equal(t, domain.TaskSendConfirmationEmail, tasks[0].Kind)
				assert.Equal(t, "org@example.com", tasks[0].Params[domain.TaskParamEmail])
				assert.Contains(t, tasks[0].Params[domain.TaskParamConferenceInfo], "GopherCon")
			},
		},
		{
			name:    "name required",
			conf:    &domain.Conference{City: "Denver"},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "repo error surfaces",
			setup:   func(repo *fakeConferenceRepo) { repo.createErr = errors.New("db down") },
			conf:    &domain.Conference{Name: "GopherCon"},
			wantErr: errors.New("any"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeConferenceRepo()
			if tt.setup != nil {
				tt.setup(repo)
			}
			disp := &fakeDispatcher{}
			svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), disp, timeout)

			got, err := svc.Create(ctx, "user-1", "org@example.com", tt.conf)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, domain.ErrInvalidInput) {
					require.True(t, errors.Is(err, domain.ErrInvalidInput))
					assert.Empty(t, disp.enqueued(), "no task on validation failure")
				}
				return
			}
			require.NoError(t, err)
			tt.assert(t, repo, disp, got)
		})
	}
}

func TestConferenceService_Update(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second
	newStart := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	newName := "GopherCon EU"
	emptyName := ""

	seed := func(repo *fakeConferenceRepo) string {
		start := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
		conf := &domain.Conference{
			Name: "GopherCon", OrganizerID: "user-1", City: "Denver",
			Topics: []string{"Go"}, StartDate: &start, Month: 6,
			MaxAttendees: 100, SeatsAvailable: 100,
		}
		_ = repo.Create(ctx, conf)
		return conf.ID
	}

	t.Run("merges only provided fields", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		id := seed(repo)
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		got, err := svc.Update(ctx, id, "user-1", domain.ConferenceUpdate{Name: &newName, StartDate: &newStart})
		require.NoError(t, err)
		assert.Equal(t, "GopherCon EU", got.Name)
		assert.Equal(t, 9, got.Month, "month recomputed from the new start date")
		assert.Equal(t, "Denver", got.City)
		assert.Equal(t, 100, got.MaxAttendees)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		id := seed(repo)
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		_, err := svc.Update(ctx, id, "user-1", domain.ConferenceUpdate{Name: &emptyName})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
	})

	t.Run("not found", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		_, err := svc.Update(ctx, "conf-missing", "user-1", domain.ConferenceUpdate{Name: &newName})
		require.True(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("forbidden for non-organizer", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		id := seed(repo)
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		_, err := svc.Update(ctx, id, "user-2", domain.ConferenceUpdate{Name: &newName})
		require.True(t, errors.Is(err, domain.ErrForbidden))
	})
}

func TestConferenceService_Query(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	t.Run("passes compiled query to the repository", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		repo.queryResult = []*domain.Conference{{ID: "conf-1", Name: "GopherCon"}}
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		got, err := svc.Query(ctx, []domain.ConferenceFilter{
			{Field: "CITY", Operator: "EQ", Value: "London"},
			{Field: "MONTH", Operator: "GT", Value: "6"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "month", repo.lastQuery.InequalityField)
		assert.Equal(t, []string{"month", "name"}, repo.lastQuery.OrderBy)
		require.Len(t, repo.lastQuery.Filters, 2)
	})

	t.Run("invalid filters rejected before hitting the repository", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		_, err := svc.Query(ctx, []domain.ConferenceFilter{
			{Field: "MONTH", Operator: "GT", Value: "6"},
			{Field: "MAX_ATTENDEES", Operator: "LT", Value: "50"},
		})
		require.True(t, errors.Is(err, domain.ErrInvalidInput))
		assert.Empty(t, repo.lastQuery.Filters)
	})

	t.Run("nil repo result normalized to empty slice", func(t *testing.T) {
		repo := newFakeConferenceRepo()
		svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

		got, err := svc.Query(ctx, nil)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Len(t, got, 0)
	})
}

func TestConferenceService_ListCreatedBy(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeConferenceRepo()
	_ = repo.Create(ctx, &domain.Conference{Name: "A", OrganizerID: "user-1"})
	_ = repo.Create(ctx, &domain.Conference{Name: "B", OrganizerID: "user-1"})
	_ = repo.Create(ctx, &domain.Conference{Name: "C", OrganizerID: "user-2"})
	svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), newFakeProfileRepo(), &fakeDispatcher{}, timeout)

	got, err := svc.ListCreatedBy(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "user-1", c.OrganizerID)
	}

	empty, err := svc.ListCreatedBy(ctx, "user-none")
	require.NoError(t, err)
	require.NotNil(t, empty)
	assert.Len(t, empty, 0)
}

func TestConferenceService_OrganizerDisplayName(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeConferenceRepo()
	_ = repo.Create(ctx, &domain.Conference{Name: "A", OrganizerID: "user-1"})
	_ = repo.Create(ctx, &domain.Conference{Name: "B", OrganizerID: "user-ghost"})
	profiles := newFakeProfileRepo()
	_ = profiles.Create(ctx, &domain.Profile{ID: "user-1", DisplayName: "Jane"})
	svc := NewConferenceService(repo, newFakeRegistrationRepo(repo), profiles, &fakeDispatcher{}, timeout)

	got, err := svc.ListCreatedBy(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Jane", got[0].OrganizerDisplayName)

	// A missing profile leaves the name empty rather than failing the read.
	ghost, err := svc.ListCreatedBy(ctx, "user-ghost")
	require.NoError(t, err)
	require.Len(t, ghost, 1)
	assert.Equal(t, "", ghost[0].OrganizerDisplayName)

	conf, err := svc.GetByID(ctx, got[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", conf.OrganizerDisplayName)
}

func TestConferenceService_ListAttending(t *testing.T) {
	ctx := context.Background()
	timeout := 5 * time.Second

	repo := newFakeConferenceRepo()
	c1 := &domain.Conference{Name: "A", OrganizerID: "org", MaxAttendees: 10, SeatsAvailable: 10}
	c2 := &domain.Conference{Name: "B", OrganizerID: "org", MaxAttendees: 10, SeatsAvailable: 10}
	_ = repo.Create(ctx, c1)
	_ = repo.Create(ctx, c2)
	regs := newFakeRegistrationRepo(repo)
	require.NoError(t, regs.Register(ctx, c1.ID, "user-1"))
	require.NoError(t, regs.Register(ctx, c2.ID, "user-1"))
	require.NoError(t, regs.Register(ctx, c1.ID, "user-2"))
	svc := NewConferenceService(repo, regs, newFakeProfileRepo(), &fakeDispatcher{}, timeout)

	got, err := svc.ListAttending(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	one, err := svc.ListAttending(ctx, "user-2")
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, c1.ID, one[0].ID)

	none, err := svc.ListAttending(ctx, "user-3")
	require.NoError(t, err)
	require.NotNil(t, none)
	assert.Len(t, none, 0)
}
