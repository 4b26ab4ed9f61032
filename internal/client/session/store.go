// Package session holds the client-side authentication context: the
// signed-in user profile and the session token, shared by every part of
// the client through one reactive store.
package session

import "sync"

// Profile is the sanitized user projection the server returns at login.
type Profile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Role    int    `json:"role"`
}

// Context is the full auth context value. A nil User with an empty
// Token means logged out.
type Context struct {
	User  *Profile `json:"user"`
	Token string   `json:"token"`
}

// Store is the single source of truth for the auth context. Set replaces
// the whole value; callers wanting partial updates copy the previous
// value themselves. The store never persists anything: durable storage
// is the responsibility of the Login/Logout operations on Manager.
type Store struct {
	mu   sync.RWMutex
	ctx  Context
	subs map[int]func(Context)
	next int
}

// NewStore returns an empty (logged out) store.
func NewStore() *Store {
	return &Store{subs: make(map[int]func(Context))}
}

// Get returns the current context value.
func (s *Store) Get() Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ctx
}

// Set replaces the context and notifies subscribers with the new value.
func (s *Store) Set(ctx Context) {
	s.mu.Lock()
	s.ctx = ctx
	subs := make([]func(Context), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(ctx)
	}
}

// Subscribe registers fn to run on every Set, including ones that do not
// change the token. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(Context)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}
