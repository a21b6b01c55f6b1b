// Package session owns the authenticated/unauthenticated state and the
// opaque credential token for the running TUI session.
package session

import "sync"

// Gate holds the session credential and decides whether the authenticated
// screens may be shown. A fresh Gate is always unauthenticated: credentials
// are never persisted across runs, so the login screen always appears first.
//
// Every login and logout advances the epoch. Async operations capture the
// epoch when they start; a completion whose epoch no longer matches belongs
// to a session that has since ended and must be discarded.
type Gate struct {
	mu    sync.Mutex
	token string
	epoch uint64
}

// NewGate creates an unauthenticated Gate with no credential.
func NewGate() *Gate {
	return &Gate{}
}

// Login stores the token, marks the session authenticated, and advances the
// epoch.
func (g *Gate) Login(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = token
	g.epoch++
}

// Logout discards the token, marks the session unauthenticated, and advances
// the epoch so in-flight requests from the old session are ignored.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.token = ""
	g.epoch++
}

// Authenticated reports whether a credential is currently held.
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token != ""
}

// Token returns the current credential, or "" when unauthenticated.
// Implements api.TokenSource.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token
}

// Epoch returns the current session epoch.
func (g *Gate) Epoch() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.epoch
}
