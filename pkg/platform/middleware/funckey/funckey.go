// Package funckey guards endpoints with a shared function key, the same scheme
// storefront integrations already use: the key travels in the x-functions-key
// header or the code query parameter.
package funckey

import (
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"onboarding/pkg/requestcontext"
)

const (
	HeaderName = "x-functions-key"
	QueryParam = "code"
)

// Require admits requests whose key matches keyHash, a bcrypt hash of the
// configured function key. An empty keyHash disables the check.
func Require(keyHash string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if keyHash == "" {
			return next
		}
		hash := []byte(keyHash)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get(HeaderName)
			if key == "" {
				key = r.URL.Query().Get(QueryParam)
			}
			if key == "" || bcrypt.CompareHashAndPassword(hash, []byte(key)) != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "function key rejected",
					"request_id", requestcontext.RequestID(ctx),
					"key_present", key != "",
				)
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte("function key required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
