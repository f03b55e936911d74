// Package requesttime pins a single "now" per HTTP request. Every timestamp a
// registration writes is derived from that instant, in the service's timezone.
package requesttime

import (
	"net/http"
	"time"

	"onboarding/pkg/requestcontext"
)

// Middleware captures the current time in loc at the start of the request.
// A nil loc means UTC.
func Middleware(loc *time.Location) func(http.Handler) http.Handler {
	if loc == nil {
		loc = time.UTC
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := requestcontext.WithTime(r.Context(), time.Now().In(loc))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
