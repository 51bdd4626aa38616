// Package session holds the current authentication token and user identity,
// persists them to durable storage and exposes them to the rest of the client.
//
// The four persisted values are written and removed together. A partially
// populated storage (for example three of four keys) is read back as logged
// out.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/myblog/internal/client/router"
	"github.com/dmitrijs2005/myblog/internal/client/storage"
	"github.com/dmitrijs2005/myblog/internal/logging"
)

// ErrIncompleteSession is returned by Login when any argument is empty.
var ErrIncompleteSession = errors.New("token, user id, username and display name are required")

// Listener is notified with the new state after every change.
type Listener func(State)

// Store holds the current session and writes it through to durable storage.
// It is safe for concurrent use.
type Store struct {
	storage storage.Storage
	nav     router.Navigator
	log     logging.Logger

	mu        sync.RWMutex
	state     State
	listeners map[int]Listener
	nextID    int
}

// NewStore creates a store in StatusUnknown. nav receives the redirect to
// the login screen on Logout and may be nil.
func NewStore(st storage.Storage, nav router.Navigator, log logging.Logger) *Store {
	if log == nil {
		log = logging.NewNop()
	}
	return &Store{
		storage:   st,
		nav:       nav,
		log:       log,
		listeners: make(map[int]Listener),
	}
}

// Initialize rehydrates the session from durable storage. The session is
// authenticated only if all four keys are present and non-empty. On a
// storage error the session becomes unauthenticated and the error is
// returned.
func (s *Store) Initialize(ctx context.Context) error {
	items, err := s.storage.GetItems(ctx, Keys...)
	if err != nil {
		s.set(State{Status: StatusUnauthenticated})
		return fmt.Errorf("failed to read session: %w", err)
	}

	st := State{
		Status: StatusAuthenticated,
		Token:  items[KeyToken],
		Identity: Identity{
			UserID:      items[KeyUserID],
			Username:    items[KeyUsername],
			DisplayName: items[KeyDisplayName],
		},
	}
	if !complete(st) {
		if len(items) > 0 {
			s.log.Warn(ctx, "ignoring partial session in storage", "keys", len(items))
		}
		st = State{Status: StatusUnauthenticated}
	}

	s.set(st)
	s.log.Debug(ctx, "session initialized", "status", st.Status.String())
	return nil
}

// Login persists the session and marks it authenticated.
func (s *Store) Login(ctx context.Context, token string, id Identity) error {
	st := State{Status: StatusAuthenticated, Token: token, Identity: id}
	if !complete(st) {
		return ErrIncompleteSession
	}

	err := s.storage.SetItems(ctx, map[string]string{
		KeyToken:       token,
		KeyUserID:      id.UserID,
		KeyUsername:    id.Username,
		KeyDisplayName: id.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.set(st)
	s.log.Info(ctx, "logged in", "user", id.Username)
	return nil
}

// Logout removes the session from storage, clears it and navigates to the
// login screen. Calling it while logged out is harmless.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.storage.RemoveItems(ctx, Keys...); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	s.set(State{Status: StatusUnauthenticated})
	s.log.Info(ctx, "logged out")

	if s.nav != nil {
		s.nav.Navigate(router.PathLogin)
	}
	return nil
}

// State returns a snapshot of the current session.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a complete session is held.
func (s *Store) IsAuthenticated() bool { return s.State().IsAuthenticated() }

// Token returns the bearer token, or "" when logged out.
func (s *Store) Token() string { return s.State().Token }

// Identity returns the logged in user, or the zero Identity.
func (s *Store) Identity() Identity { return s.State().Identity }

// Subscribe registers fn for state changes and returns a function that
// removes it.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *Store) set(st State) {
	s.mu.Lock()
	s.state = st
	fns := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(st)
	}
}

func complete(st State) bool {
	return st.Token != "" &&
		st.Identity.UserID != "" &&
		st.Identity.Username != "" &&
		st.Identity.DisplayName != ""
}
