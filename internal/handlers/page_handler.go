package handlers

import (
	"log"
	"net/http"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/app"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
	"github.com/HARSHsabne/Udgir-Marketplace-App/web"
)

type PageHandler struct {
	app *app.App
}

func NewPageHandler(a *app.App) *PageHandler {
	return &PageHandler{app: a}
}

// Index serves the single-page document. The session id and status line are
// baked in server-side; everything else arrives through fragments and the
// event stream.
func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if sess, ok := h.app.Session(); ok {
		userID = sess.UserID
	}

	data := web.PageData{
		UserID:     userID,
		Status:     h.app.Status(),
		Categories: models.ListingCategories,
		Phase:      string(h.app.Phase()),
		ReadOnly:   h.app.ReadOnly(),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := web.Page().Execute(w, data); err != nil {
		log.Printf("[Index] render error: %v", err)
	}
}
