package server

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/goldenhorse8610-droid/KuroTask/internal/db/models"
	"github.com/goldenhorse8610-droid/KuroTask/internal/retry"
)

type ctxKey int

const userKey ctxKey = 0

// withAuth resolves the bearer token to a user and stores it on the
// request context. The user lookup is retried on transient database
// errors so a momentary connection blip does not log anybody out.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		userID, err := s.codec.Parse(token, time.Now())
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		user, err := retry.Do(r.Context(), retry.DefaultAttempts, retry.DefaultDelay, func() (*models.User, error) {
			return s.store.GetUserByID(r.Context(), userID)
		})
		if err != nil {
			if retry.Transient(err) {
				writeError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
				return
			}
			log.Printf("Error resolving user: %v", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "unknown user")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userKey, user)))
	}
}

func requestUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(userKey).(*models.User)
	return u
}
