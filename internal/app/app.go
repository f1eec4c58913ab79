// Package app holds the application core: the listing store, the single
// dispatch goroutine that owns all store writes, the auth bootstrap and the
// submission state machine. The HTTP layer is a thin shell around it.
package app

import (
	"context"
	"log"
	"sync"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

// Persistent status lines shown on the page until the next state change.
const (
	StatusLoading       = "Loading listings..."
	StatusConfigMissing = "Database configuration missing. Displaying static content only."
	StatusLoadFailed    = "Failed to load listings."
	StatusSubFailed     = "Failed to subscribe to listing updates."
)

type event interface{}

type authEvent struct {
	session backend.Session
}

type changeEvent struct{}

type App struct {
	backend  *backend.Backend
	store    *Store
	uploader *Uploader

	events chan event

	// refetchOnChange is the policy of §realtime: every change event reloads
	// the entire collection instead of patching incrementally.
	refetchOnChange bool

	// attached is touched only from the dispatch goroutine.
	attached bool

	mu       sync.RWMutex
	session  backend.Session
	signedIn bool
	status   string
	readOnly bool
	phase    Phase

	changeListeners []func()
	phaseListeners  []func(Phase)
}

// New builds the application core. A nil backend means credentials were
// missing: the app still serves the page, but read-only.
func New(b *backend.Backend) *App {
	a := &App{
		backend:         b,
		store:           NewStore(),
		events:          make(chan event, 64),
		refetchOnChange: true,
		status:          StatusLoading,
		phase:           PhaseIdle,
	}
	if b == nil {
		a.readOnly = true
		a.status = StatusConfigMissing
	} else {
		a.uploader = NewUploader(b.Storage)
	}
	return a
}

// OnChange registers a callback fired after every store replacement.
// Register before Start.
func (a *App) OnChange(f func()) {
	a.changeListeners = append(a.changeListeners, f)
}

// OnPhase registers a callback fired on submission phase transitions.
// Register before Start.
func (a *App) OnPhase(f func(Phase)) {
	a.phaseListeners = append(a.phaseListeners, f)
}

// Start launches the dispatch goroutine and performs the startup sign-in:
// from sessionToken when supplied, anonymously otherwise. Sign-in failure
// leaves the app readable with a persistent status line, matching the
// degraded modes of the error taxonomy.
func (a *App) Start(ctx context.Context, sessionToken string) {
	go a.run(ctx)

	if a.ReadOnly() {
		log.Println("[auth] backend configuration missing, persistence disabled")
		return
	}

	// Watch first so the initial session is delivered through the same path
	// as later silent refreshes.
	a.backend.Auth.Watch(func(sess backend.Session) {
		a.events <- authEvent{session: sess}
	})

	var err error
	if sessionToken != "" {
		_, err = a.backend.Auth.RestoreSession(ctx, sessionToken)
	} else {
		_, err = a.backend.Auth.SignInAnonymously(ctx)
	}
	if err != nil {
		log.Printf("[auth] sign-in failed: %v", err)
		a.setStatus("Sign-in failed: " + apperr.DisplayMessage(err))
	}
}

func (a *App) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-a.events:
			a.handleEvent(ctx, ev)
		}
	}
}

func (a *App) handleEvent(ctx context.Context, ev event) {
	switch e := ev.(type) {
	case authEvent:
		a.setSession(e.session)
		a.attach(ctx)
	case changeEvent:
		if a.refetchOnChange {
			a.reload(ctx)
		}
	}
}

// attach performs the initial fetch and opens the change subscription. It is
// idempotent: a repeated auth event (session refresh) does not open a second
// subscription.
func (a *App) attach(ctx context.Context) {
	if a.attached {
		return
	}

	a.reload(ctx)

	err := a.backend.Listings.Subscribe(ctx, func(backend.ChangeEvent) {
		a.events <- changeEvent{}
	})
	if err != nil {
		log.Printf("[realtime] subscribe failed: %v", err)
		a.setStatus(StatusSubFailed)
		return
	}
	a.attached = true
}

// reload re-issues the full ordered query and replaces the store wholesale.
func (a *App) reload(ctx context.Context) {
	listings, err := a.backend.Listings.ListAll(ctx)
	if err != nil {
		log.Printf("[realtime] failed to load listings: %v", err)
		a.setStatus(StatusLoadFailed)
		return
	}

	a.store.ReplaceAll(listings)
	a.setStatus("")
	for _, f := range a.changeListeners {
		f()
	}
}

// Listings returns the current store snapshot, newest first.
func (a *App) Listings() []models.Listing {
	return a.store.Snapshot()
}

func (a *App) Loaded() bool {
	return a.store.Loaded()
}

// Session returns the current session and whether a user is signed in.
func (a *App) Session() (backend.Session, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.session, a.signedIn
}

func (a *App) setSession(sess backend.Session) {
	a.mu.Lock()
	a.session = sess
	a.signedIn = true
	a.mu.Unlock()
	log.Printf("[auth] user present: %s", sess.UserID)
}

// Status returns the persistent status line, empty when the feed is healthy.
func (a *App) Status() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

func (a *App) setStatus(status string) {
	a.mu.Lock()
	a.status = status
	a.mu.Unlock()
}

func (a *App) ReadOnly() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.readOnly
}
