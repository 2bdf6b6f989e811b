package controllers

import (
	"context"
	"log/slog"
	"net/http"

	"conferencecentral/internal/delivery/http/helpers"
	"conferencecentral/internal/domain"
)

// TaskHandler executes one deferred task synchronously. The task endpoints
// are invoked by the internal queue worker and the cron scheduler, not by
// end users.
type TaskHandler interface {
	Handle(ctx context.Context, task domain.Task) error
}

// AnnouncementSuccessResponse is the success response envelope for GET /conference/announcement (200).
type AnnouncementSuccessResponse struct {
	Data  string            `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// SendConfirmationEmailRequest is the request body for POST /tasks/send_confirmation_email.
type SendConfirmationEmailRequest struct {
	Email          string `json:"email"`
	ConferenceInfo string `json:"conference_info"`
}

// Validate implements Validator.
func (t SendConfirmationEmailRequest) Validate() []string {
	var errs []string
	if t.Email == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

// SetFeaturedSpeakerRequest is the request body for POST /tasks/set_featured_speaker.
type SetFeaturedSpeakerRequest struct {
	Speaker      string `json:"speaker"`
	ConferenceID string `json:"conference_id"`
}

// Validate implements Validator.
func (t SetFeaturedSpeakerRequest) Validate() []string {
	var errs []string
	if t.Speaker == "" {
		errs = append(errs, "speaker is required")
	}
	return errs
}

type TaskController struct {
	Logger        *slog.Logger
	Announcements domain.AnnouncementService
	Handler       TaskHandler
}

func NewTaskController(logger *slog.Logger, announcements domain.AnnouncementService, handler TaskHandler) *TaskController {
	return &TaskController{
		Logger:        logger,
		Announcements: announcements,
		Handler:       handler,
	}
}

// GetAnnouncement godoc
// @Summary Get the current announcement
// @Description Returns the cached last-chance announcement, or an empty string when none is set.
// @Tags announcements
// @Produce json
// @Success 200 {object} controllers.AnnouncementSuccessResponse "data contains the announcement text"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /conference/announcement [get]
func (c *TaskController) GetAnnouncement(w http.ResponseWriter, r *http.Request) {
	text, err := c.Announcements.Get(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, text)
}

// SetAnnouncement godoc
// @Summary Recompute the announcement (cron)
// @Description Recomputes the last-chance announcement from nearly-sold-out conferences and stores or clears the cache entry.
// @Tags announcements
// @Param X-Internal-Token header string true "Internal token"
// @Success 204 "announcement recomputed"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /crons/set_announcement [get]
func (c *TaskController) SetAnnouncement(w http.ResponseWriter, r *http.Request) {
	if _, err := c.Announcements.Refresh(r.Context()); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SendConfirmationEmail godoc
// @Summary Send a conference confirmation email (task)
// @Description Sends the creation confirmation email to the organizer. Invoked by the task queue worker.
// @Tags tasks
// @Accept json
// @Param X-Internal-Token header string true "Internal token"
// @Success 204 "email sent"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/send_confirmation_email [post]
func (c *TaskController) SendConfirmationEmail(w http.ResponseWriter, r *http.Request) {
	var req SendConfirmationEmailRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task := domain.Task{
		Kind: domain.TaskSendConfirmationEmail,
		Params: map[string]string{
			domain.TaskParamEmail:          req.Email,
			domain.TaskParamConferenceInfo: req.ConferenceInfo,
		},
	}
	if err := c.Handler.Handle(r.Context(), task); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetFeaturedSpeaker godoc
// @Summary Recompute the featured speaker (task)
// @Description Recomputes the featured-speaker cache entry for the given speaker. Invoked by the task queue worker after session creation.
// @Tags tasks
// @Accept json
// @Param X-Internal-Token header string true "Internal token"
// @Success 204 "featured speaker recomputed"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/set_featured_speaker [post]
func (c *TaskController) SetFeaturedSpeaker(w http.ResponseWriter, r *http.Request) {
	var req SetFeaturedSpeakerRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task := domain.Task{
		Kind: domain.TaskSetFeaturedSpeaker,
		Params: map[string]string{
			domain.TaskParamSpeaker:      req.Speaker,
			domain.TaskParamConferenceID: req.ConferenceID,
		},
	}
	if err := c.Handler.Handle(r.Context(), task); err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
