package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	h "conferencecentral/internal/delivery/http/helpers"
)

// internalTokenHeader carries the shared secret the cron scheduler and the
// queue worker present when calling the internal endpoints.
const internalTokenHeader = "X-Internal-Token"

// RequireInternalToken returns a wrapper that restricts a handler to callers
// presenting the configured internal token. An empty configured token
// rejects every caller.
func RequireInternalToken(token string, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(internalTokenHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.WarnContext(r.Context(), "rejected internal endpoint call", "path", r.URL.Path, "method", r.Method)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "internal endpoint")
				return
			}
			next(w, r)
		}
	}
}
