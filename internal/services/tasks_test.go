package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"conferencecentral/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailer records sent messages.
type fakeMailer struct {
	sent []string
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
	return nil
}

// fakeRenderer returns canned template output.
type fakeRenderer struct{}

func (f *fakeRenderer) Render(templateName string, data any) (string, string, string, error) {
	return "subject", "<p>html</p>", "text", nil
}

func TestTaskRunner_Handle(t *testing.T) {
	ctx := context.Background()

	newSessions := func() (domain.SessionService, *fakeCache, string) {
		repo := newFakeConferenceRepo()
		conf := &domain.Conference{Name: "GopherCon", OrganizerID: "user-1"}
		_ = repo.Create(ctx, conf)
		cache := newFakeCache()
		svc := NewSessionService(repo, newFakeSessionRepo(), cache, &fakeDispatcher{}, 5*time.Second)
		return svc, cache, conf.ID
	}

	t.Run("confirmation email task sends mail", func(t *testing.T) {
		mailer := &fakeMailer{}
		emails := NewEmailService(mailer, &fakeRenderer{})
		sessions, _, _ := newSessions()
		runner := NewTaskRunner(emails, sessions)

		err := runner.Handle(ctx, domain.Task{
			Kind: domain.TaskSendConfirmationEmail,
			Params: map[string]string{
				domain.TaskParamEmail:          "org@example.com",
				domain.TaskParamConferenceInfo: "Name: GopherCon",
			},
		})
		require.NoError(t, err)
		require.Len(t, mailer.sent, 1)
		assert.Equal(t, "org@example.com", mailer.sent[0])
	})

	t.Run("featured speaker task refreshes the cache", func(t *testing.T) {
		emails := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		sessions, cache, confID := newSessions()
		_, err := sessions.Create(ctx, confID, "user-1", &domain.Session{Name: "Talk A", Speaker: "Rob"})
		require.NoError(t, err)
		_, err = sessions.Create(ctx, confID, "user-1", &domain.Session{Name: "Talk B", Speaker: "Rob"})
		require.NoError(t, err)
		runner := NewTaskRunner(emails, sessions)

		err = runner.Handle(ctx, domain.Task{
			Kind:   domain.TaskSetFeaturedSpeaker,
			Params: map[string]string{domain.TaskParamSpeaker: "Rob"},
		})
		require.NoError(t, err)
		assert.Contains(t, cache.values[domain.CacheKeyFeaturedSpeaker], "Rob")
	})

	t.Run("mailer failure surfaces for retry", func(t *testing.T) {
		mailer := &fakeMailer{err: errors.New("ses unavailable")}
		emails := NewEmailService(mailer, &fakeRenderer{})
		sessions, _, _ := newSessions()
		runner := NewTaskRunner(emails, sessions)

		err := runner.Handle(ctx, domain.Task{
			Kind:   domain.TaskSendConfirmationEmail,
			Params: map[string]string{domain.TaskParamEmail: "org@example.com"},
		})
		require.Error(t, err)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		emails := NewEmailService(&fakeMailer{}, &fakeRenderer{})
		sessions, _, _ := newSessions()
		runner := NewTaskRunner(emails, sessions)

		err := runner.Handle(ctx, domain.Task{Kind: "mystery"})
		require.Error(t, err)
	})
}
