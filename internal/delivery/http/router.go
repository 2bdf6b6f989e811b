package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"conferencecentral/internal/delivery/http/controllers"
	"conferencecentral/internal/delivery/http/middleware"
	"conferencecentral/internal/domain"
)

// Controllers bundles the controllers the router dispatches to.
type Controllers struct {
	Conference   *controllers.ConferenceController
	Session      *controllers.SessionController
	Profile      *controllers.ProfileController
	Registration *controllers.RegistrationController
	Task         *controllers.TaskController
}

// NewRouter initializes the HTTP router with all application routes.
// internalToken guards the cron and task-queue endpoints; only the scheduler
// and the queue worker hold it.
func NewRouter(logger *slog.Logger, verifier domain.TokenVerifier, internalToken string, c Controllers, gatherer prometheus.Gatherer) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)
	internal := middleware.RequireInternalToken(internalToken, logger)

	// Conferences
	mux.HandleFunc("POST /conference", auth(c.Conference.CreateConference))
	mux.HandleFunc("PUT /conference/{websafeConferenceKey}", auth(c.Conference.UpdateConference))
	mux.HandleFunc("GET /conference/{websafeConferenceKey}", c.Conference.GetConference)
	mux.HandleFunc("GET /conferences/created", auth(c.Conference.ListCreated))
	mux.HandleFunc("POST /conferences/query", c.Conference.QueryConferences)
	mux.HandleFunc("GET /conferences/attending", auth(c.Conference.ListAttending))

	// Sessions
	mux.HandleFunc("POST /conference/{websafeConferenceKey}/sessions", auth(c.Session.CreateSession))
	mux.HandleFunc("GET /conference/{websafeConferenceKey}/sessions", c.Session.ListConferenceSessions)
	mux.HandleFunc("GET /conference/{websafeConferenceKey}/sessions/by_type/{sessionType}", c.Session.ListConferenceSessionsByType)
	mux.HandleFunc("GET /conference/{websafeConferenceKey}/sessions/by_speaker/{speaker}", c.Session.ListConferenceSessionsBySpeaker)
	mux.HandleFunc("GET /conference/{websafeConferenceKey}/sessions/to_date", c.Session.ListConferenceSessionsToDate)
	mux.HandleFunc("GET /sessions/by_speaker/{speaker}", c.Session.ListSessionsBySpeaker)
	mux.HandleFunc("GET /sessions/non_workshop", c.Session.ListNonWorkshopDaySessions)
	mux.HandleFunc("GET /speaker/featured", c.Session.GetFeaturedSpeaker)

	// Registration
	mux.HandleFunc("POST /conference/{websafeConferenceKey}/registration", auth(c.Registration.Register))
	mux.HandleFunc("DELETE /conference/{websafeConferenceKey}/registration", auth(c.Registration.Unregister))

	// Profile and wishlist
	mux.HandleFunc("GET /profile", auth(c.Profile.GetProfile))
	mux.HandleFunc("POST /profile", auth(c.Profile.SaveProfile))
	mux.HandleFunc("POST /profile/wishlist/{websafeSessionKey}", auth(c.Profile.AddToWishlist))
	mux.HandleFunc("GET /profile/wishlist", auth(c.Profile.ListWishlist))

	// Announcements, crons, and task queue endpoints
	mux.HandleFunc("GET /conference/announcement", c.Task.GetAnnouncement)
	mux.HandleFunc("GET /crons/set_announcement", internal(c.Task.SetAnnouncement))
	mux.HandleFunc("POST /tasks/send_confirmation_email", internal(c.Task.SendConfirmationEmail))
	mux.HandleFunc("POST /tasks/set_featured_speaker", internal(c.Task.SetFeaturedSpeaker))

	// Prometheus
	mux.Handle("GET /metrics", middleware.MetricsHandler(gatherer))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
