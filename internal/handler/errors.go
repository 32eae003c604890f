package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"transcriptfolder/internal/domain"
	"transcriptfolder/internal/httputil"
)

// handleError converts domain errors to RFC 7807 responses. The status comes
// from the error itself; anything outside the domain taxonomy is a 500.
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
		return
	}

	var httpErr domain.HTTPError
	if !errors.As(err, &httpErr) {
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := httpErr.StatusCode()
	var invariant *domain.InvariantViolationError
	if errors.As(err, &invariant) {
		logger.Error("invariant violation", "item_id", invariant.ItemID, "error", err)
		httputil.RespondErrorWithExtras(w, status, invariant.Error(), map[string]interface{}{
			"error_state": "invariant_violation",
			"item_id":     invariant.ItemID,
		})
		return
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "error", err)
	}
	httputil.RespondError(w, status, err.Error())
}
