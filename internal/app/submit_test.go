package app

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/ui"
)

func validRequest() *models.CreateListingRequest {
	return &models.CreateListingRequest{
		Title:       "Mountain Bike",
		Category:    "Vehicles",
		Price:       5000,
		Description: "Barely used, great brakes",
	}
}

func TestSubmitRequiresSession(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{}
	a, _ := newTestApp(fl, fs)

	err := a.Submit(context.Background(), validRequest(), nil)
	if apperr.KindOf(err) != apperr.Authentication {
		t.Fatalf("kind = %v, want Authentication", apperr.KindOf(err))
	}
	if fl.insertedCount() != 0 || fs.calls != 0 {
		t.Fatal("no network call may happen before a user is present")
	}
}

func TestSubmitRejectsNonPositivePrice(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	for _, price := range []float64{0, -49.99} {
		req := validRequest()
		req.Price = price
		err := a.Submit(context.Background(), req, nil)
		if apperr.KindOf(err) != apperr.Input {
			t.Fatalf("price %v: kind = %v, want Input", price, apperr.KindOf(err))
		}
		if apperr.DisplayMessage(err) != "Price must be greater than zero." {
			t.Fatalf("price %v: message = %q", price, apperr.DisplayMessage(err))
		}
	}
	if fl.insertedCount() != 0 || fs.calls != 0 {
		t.Fatal("validation failures must not reach the backend")
	}
}

func TestSubmitRejectsOversizedFile(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	file := &FileUpload{
		Name:   "huge.jpg",
		Size:   MaxImageBytes + 1,
		Reader: strings.NewReader("x"),
	}
	err := a.Submit(context.Background(), validRequest(), file)
	if apperr.KindOf(err) != apperr.Upload {
		t.Fatalf("kind = %v, want Upload", apperr.KindOf(err))
	}
	if fs.calls != 0 {
		t.Fatal("oversized file must be rejected before the upload is attempted")
	}
	if fl.insertedCount() != 0 {
		t.Fatal("nothing may be inserted after a rejected upload")
	}
}

func TestSubmitFileAtCapIsAccepted(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{url: "https://cdn.example.com/ok.jpg"}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	file := &FileUpload{Name: "ok.jpg", Size: MaxImageBytes, Reader: strings.NewReader("x")}
	if err := a.Submit(context.Background(), validRequest(), file); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if fs.calls != 1 {
		t.Fatalf("upload calls = %d, want 1", fs.calls)
	}
}

func TestSubmitUploadFailureAbortsInsert(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{err: errors.New("bucket gone")}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	file := &FileUpload{Name: "bike.jpg", Size: 1024, Reader: strings.NewReader("x")}
	err := a.Submit(context.Background(), validRequest(), file)
	if apperr.KindOf(err) != apperr.Upload {
		t.Fatalf("kind = %v, want Upload", apperr.KindOf(err))
	}
	if apperr.DisplayMessage(err) != "Failed to upload image." {
		t.Fatalf("message = %q", apperr.DisplayMessage(err))
	}
	if fl.insertedCount() != 0 {
		t.Fatal("failed upload must leave zero inserted records")
	}
	if a.Phase() != PhaseIdle {
		t.Fatalf("phase = %q, want idle after failure", a.Phase())
	}
}

func TestSubmitInsertsListing(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	req := validRequest()
	req.ImageURL = "  https://example.com/pasted.jpg  "
	before := time.Now().UTC()
	if err := a.Submit(context.Background(), req, nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if fl.insertedCount() != 1 {
		t.Fatalf("inserted %d records, want 1", fl.insertedCount())
	}
	got := fl.inserted[0]
	if got.ID == "" {
		t.Fatal("listing id not assigned")
	}
	if got.Title != req.Title || got.Category != req.Category || got.Price != req.Price {
		t.Fatalf("inserted = %+v, fields do not match request", got)
	}
	if got.SellerID != "seller-1" {
		t.Fatalf("SellerID = %q, want the session user", got.SellerID)
	}
	if got.ImageURL != "https://example.com/pasted.jpg" {
		t.Fatalf("ImageURL = %q, want trimmed pasted URL", got.ImageURL)
	}
	if got.Timestamp.Before(before) || got.Timestamp.After(time.Now().UTC().Add(time.Second)) {
		t.Fatalf("Timestamp = %v, not stamped at submission time", got.Timestamp)
	}

	// The store is only updated through change events; a successful insert
	// alone must not make the record visible.
	if a.store.Len() != 0 {
		t.Fatal("insert must not write the local store directly")
	}
}

func TestSubmitUploadedURLWinsOverPasted(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{url: "https://cdn.example.com/uploaded.jpg"}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	req := validRequest()
	req.ImageURL = "https://example.com/pasted.jpg"
	file := &FileUpload{Name: "bike.jpg", Size: 2048, Reader: strings.NewReader("jpeg bytes")}
	if err := a.Submit(context.Background(), req, file); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if fl.inserted[0].ImageURL != "https://cdn.example.com/uploaded.jpg" {
		t.Fatalf("ImageURL = %q, want the uploaded URL", fl.inserted[0].ImageURL)
	}
	if len(fs.paths) != 1 || !strings.HasPrefix(fs.paths[0], "images/listings/seller-1_") {
		t.Fatalf("upload path = %v, want images/listings/seller-1_...", fs.paths)
	}
	if !strings.HasSuffix(fs.paths[0], "_bike.jpg") {
		t.Fatalf("upload path %q does not end with the original filename", fs.paths[0])
	}
}

func TestSubmitPhaseTransitions(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{url: "https://cdn.example.com/x.jpg"}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	var phases []Phase
	a.OnPhase(func(p Phase) { phases = append(phases, p) })

	file := &FileUpload{Name: "x.jpg", Size: 1, Reader: strings.NewReader("x")}
	if err := a.Submit(context.Background(), validRequest(), file); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	want := []Phase{PhaseUploading, PhaseSaving, PhaseIdle}
	if len(phases) != len(want) {
		t.Fatalf("phases = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phases = %v, want %v", phases, want)
		}
	}
	if a.Phase() != PhaseIdle {
		t.Fatalf("final phase = %q, want idle", a.Phase())
	}
}

func TestSubmitInsertFailure(t *testing.T) {
	fl := &fakeListings{insertErr: errors.New("unique violation")}
	fs := &fakeStorage{}
	a, _ := newTestApp(fl, fs)
	a.setSession(backend.Session{UserID: "seller-1"})

	err := a.Submit(context.Background(), validRequest(), nil)
	if apperr.KindOf(err) != apperr.Persistence {
		t.Fatalf("kind = %v, want Persistence", apperr.KindOf(err))
	}
	if apperr.DisplayMessage(err) != "Failed to post listing." {
		t.Fatalf("message = %q", apperr.DisplayMessage(err))
	}
	if a.Phase() != PhaseIdle {
		t.Fatalf("phase = %q, want idle after failure", a.Phase())
	}
}

func TestSubmitReadOnly(t *testing.T) {
	a := New(nil)
	err := a.Submit(context.Background(), validRequest(), nil)
	if apperr.KindOf(err) != apperr.Configuration {
		t.Fatalf("kind = %v, want Configuration", apperr.KindOf(err))
	}
}

func TestSubmittedListingAppearsAfterChangeEvent(t *testing.T) {
	fl := &fakeListings{}
	fs := &fakeStorage{}
	a, _ := newTestApp(fl, fs)
	ctx := context.Background()

	a.handleEvent(ctx, authEvent{session: backend.Session{UserID: "seller-1"}})
	if err := a.Submit(ctx, validRequest(), nil); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// The backend publishes the insert through the change feed; replaying it
	// is what makes the record visible locally.
	fl.setListings(fl.inserted)
	a.handleEvent(ctx, changeEvent{})

	got := a.Listings()
	if len(got) != 1 || got[0].Title != "Mountain Bike" {
		t.Fatalf("Listings after change event = %v, want the submitted record", got)
	}

	if sub := ui.FilterByCategory(got, "Vehicles"); len(sub) != 1 {
		t.Fatalf("record missing under its own category: %v", sub)
	}
	if sub := ui.FilterByCategory(got, "Books"); len(sub) != 0 {
		t.Fatalf("record leaked into another category: %v", sub)
	}
}
