package app

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

// Phase is the label on the submit control. It doubles as the submission
// state: anything other than PhaseIdle means a post is in flight and the
// control is disabled.
type Phase string

const (
	PhaseIdle      Phase = "Post Listing"
	PhaseUploading Phase = "Uploading Image..."
	PhaseSaving    Phase = "Saving Listing..."
)

// MaxImageBytes caps uploaded image size at 5 MiB, checked before any
// network call is made.
const MaxImageBytes = 5 * 1024 * 1024

// FileUpload describes a user-selected file. Size must be known up front so
// the cap check runs before the upload is attempted.
type FileUpload struct {
	Name   string
	Size   int64
	Reader io.Reader
}

// Submit validates the request, uploads the image if one was selected, and
// inserts the new listing. It fails closed: no signed-in user, a price of
// zero or less, or an oversized file all abort before any network call.
//
// The store is never touched here. The newly inserted record becomes visible
// only once the change subscription fires and refetches.
func (a *App) Submit(ctx context.Context, req *models.CreateListingRequest, file *FileUpload) error {
	if a.ReadOnly() {
		return apperr.New(apperr.Configuration, "Database configuration missing.")
	}

	sess, ok := a.Session()
	if !ok {
		return apperr.New(apperr.Authentication, "Please wait for authentication to complete before posting.")
	}

	if errs := req.Validate(); len(errs) > 0 {
		if msg, found := errs["price"]; found {
			return apperr.New(apperr.Input, msg)
		}
		for _, msg := range errs {
			return apperr.New(apperr.Input, msg)
		}
	}

	if file != nil && file.Size > MaxImageBytes {
		return apperr.New(apperr.Upload, "Image file is too large (max 5MB).")
	}

	// The submit control is disabled from here on; the deferred reset
	// guarantees it is restored on every exit path.
	defer a.setPhase(PhaseIdle)

	imageURL := strings.TrimSpace(req.ImageURL)
	if file != nil {
		a.setPhase(PhaseUploading)
		url, err := a.uploader.Upload(ctx, sess.UserID, file.Name, file.Reader)
		if err != nil {
			return apperr.Wrap(apperr.Upload, "Failed to upload image.", err)
		}
		// The uploaded file wins over any pasted URL.
		imageURL = url
	}

	a.setPhase(PhaseSaving)
	listing := &models.Listing{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Category:    req.Category,
		Price:       req.Price,
		Description: req.Description,
		ImageURL:    imageURL,
		SellerID:    sess.UserID,
		Timestamp:   time.Now().UTC(),
	}

	if err := a.backend.Listings.Insert(ctx, listing); err != nil {
		return apperr.Wrap(apperr.Persistence, "Failed to post listing.", err)
	}
	return nil
}

// Phase returns the current submit-control label.
func (a *App) Phase() Phase {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.phase
}

func (a *App) setPhase(p Phase) {
	a.mu.Lock()
	changed := a.phase != p
	a.phase = p
	listeners := a.phaseListeners
	a.mu.Unlock()

	if !changed {
		return
	}
	for _, f := range listeners {
		f(p)
	}
}
