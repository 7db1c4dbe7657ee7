package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/goldenhorse8610-droid/KuroTask/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer errors onto HTTP statuses.
// Unknown errors are logged and masked with a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Msg)
		return
	}
	var nf *service.NotFoundError
	if errors.As(err, &nf) {
		writeError(w, http.StatusNotFound, nf.Error())
		return
	}
	var ce *service.ConflictError
	if errors.As(err, &ce) {
		payload := map[string]any{"error": ce.Msg}
		if ce.Existing != nil {
			payload["existingSession"] = ce.Existing
		}
		writeJSON(w, http.StatusBadRequest, payload)
		return
	}
	log.Printf("Internal error: %v", err)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

// decodeBody reads a JSON request body into dst. A 400 is written on
// failure and false returned.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
