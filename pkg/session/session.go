// Package session provides the explicit session context for canvas and
// persistence operations.
//
// There is deliberately no process-wide current user: every Store and
// gateway call receives a *Session, so ownership of a page document is
// always explicit. Authentication itself is an upstream concern; until it
// is wired in, [Local] supplies the fixed development user.
package session

import (
	"time"
)

// Session identifies the user a page document belongs to.
type Session struct {
	UserID    string    `json:"user_id"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// Valid reports whether the session carries a usable user identity.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != ""
}

// Local creates the fixed local-development session.
// Used while authentication lives outside this module.
func Local() *Session {
	return &Session{
		UserID:    "user123",
		Plan:      "basic",
		CreatedAt: time.Now(),
	}
}

// For creates a session for an explicit user id, as when the CLI acts on
// behalf of a user given by flag.
func For(userID string) *Session {
	return &Session{
		UserID:    userID,
		Plan:      "basic",
		CreatedAt: time.Now(),
	}
}
