package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/ui"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError converts a classified error into the toast envelope the page
// renders. Nothing is rethrown past this point.
func writeError(w http.ResponseWriter, err error) {
	toast := ui.ToastForError(err)
	resp := models.NewErrorResponse(toast.Message)
	resp.Toast = toast
	writeJSON(w, statusForError(err), resp)
}

func statusForError(err error) int {
	switch apperr.KindOf(err) {
	case apperr.Configuration:
		return http.StatusServiceUnavailable
	case apperr.Authentication:
		return http.StatusUnauthorized
	case apperr.Input:
		return http.StatusBadRequest
	case apperr.Upload:
		return http.StatusBadRequest
	case apperr.Persistence:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
