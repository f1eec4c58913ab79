package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/app"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/ui"
)

type ListingsHandler struct {
	app            *app.App
	renderer       *ui.Renderer
	maxUploadBytes int64
}

func NewListingsHandler(a *app.App, renderer *ui.Renderer, maxUploadBytes int64) *ListingsHandler {
	return &ListingsHandler{
		app:            a,
		renderer:       renderer,
		maxUploadBytes: maxUploadBytes,
	}
}

// List returns the filtered store snapshot as JSON.
func (h *ListingsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := categoryFilter(r)
	listings := ui.FilterByCategory(h.app.Listings(), filter)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(listings))
}

// Fragment returns the rendered card markup for the filtered snapshot. The
// page swaps it into the listings container on every change poke.
func (h *ListingsHandler) Fragment(w http.ResponseWriter, r *http.Request) {
	filter := categoryFilter(r)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.Listings(w, h.app.Listings(), filter); err != nil {
		log.Printf("[Fragment] render error: %v", err)
	}
}

// Create handles the posting form: multipart fields title, category, price,
// description, imageUrl and the optional file imageFile.
func (h *ListingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	// Leave headroom above the image cap so the explicit size check inside
	// Submit is the one that fires, not the transport limit.
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(h.maxUploadBytes + 1024*1024); err != nil {
		writeError(w, apperr.Wrap(apperr.Upload, "Image file is too large (max 5MB).", err))
		return
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue("price")), 64)
	if err != nil {
		writeError(w, apperr.New(apperr.Input, "Price must be greater than zero."))
		return
	}

	req := &models.CreateListingRequest{
		Title:       r.FormValue("title"),
		Category:    r.FormValue("category"),
		Price:       price,
		Description: r.FormValue("description"),
		ImageURL:    r.FormValue("imageUrl"),
	}

	var upload *app.FileUpload
	if file, header, ferr := r.FormFile("imageFile"); ferr == nil {
		defer file.Close()
		upload = &app.FileUpload{
			Name:   header.Filename,
			Size:   header.Size,
			Reader: file,
		}
	}

	if err := h.app.Submit(r.Context(), req, upload); err != nil {
		log.Printf("[CreateListing] %v", err)
		writeError(w, err)
		return
	}

	resp := models.NewSuccessResponse(nil)
	resp.Toast = ui.SuccessToast("Success!", "Your listing has been posted and is now live!")
	writeJSON(w, http.StatusCreated, resp)
}

func categoryFilter(r *http.Request) string {
	filter := strings.TrimSpace(r.URL.Query().Get("category"))
	if filter == "" {
		filter = models.CategoryAll
	}
	return filter
}
