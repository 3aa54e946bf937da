package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"hemp-kart/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an {ok:false, error} response with the given status.
func writeError(w http.ResponseWriter, status int, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{OK: false, Error: message})
}

// writeDomainError maps a service error to a status code and user-safe
// message. Domain errors surface their own message; anything else is an
// infrastructure failure reported generically and logged in full.
func writeDomainError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var de *model.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if de.Code == model.ErrCodeNotFound {
			status = http.StatusNotFound
		}
		writeError(w, status, de.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	writeError(w, http.StatusInternalServerError, "internal server error", logger)
}
