package server

import (
	"errors"
	"net/http"

	"github.com/goldenhorse8610-droid/KuroTask/internal/auth"
)

func (s *Server) handleRequestLink(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Email == "" {
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	if _, _, err := s.authSvc.RequestLink(body.Email); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "login link sent",
	})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
		Code  string `json:"code"`
	}
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Token == "" && body.Code == "" {
		writeError(w, http.StatusBadRequest, "token or code is required")
		return
	}

	bearer, user, err := s.authSvc.Verify(r.Context(), body.Token, body.Code)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			writeError(w, http.StatusUnauthorized, "invalid or expired login token")
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"token": bearer,
		"user":  user,
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, requestUser(r))
}
