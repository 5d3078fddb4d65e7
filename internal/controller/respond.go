package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	appErrors "github.com/brightpixel/agency-backend/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

// writeError maps typed service errors onto the JSON envelopes the API
// promises. Unclassified errors become a 500 whose detail is only exposed
// when debug mode is on.
func writeError(w http.ResponseWriter, err error, fallback string, debug bool) {
	var ve *appErrors.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Validation failed",
			"errors":  ve.Fields,
		})
		return
	}

	var ce *appErrors.ConflictError
	if errors.As(err, &ce) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": ce.Message,
		})
		return
	}

	var nf *appErrors.NotFoundError
	if errors.As(err, &nf) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Customer not found",
		})
		return
	}

	var se *appErrors.SelectionEmptyError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": se.Message,
		})
		return
	}

	logrus.WithError(err).Error(fallback)
	body := map[string]interface{}{
		"success": false,
		"message": fallback,
	}
	if debug {
		body["error"] = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}
