// Package session keeps booking wizard state between requests.  Redis is
// the primary store so sessions survive restarts and work across replicas;
// an in-process store takes over when Redis is not reachable.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/galaxy-cinema-booking/internal/wizard"
)

var (
	// ErrNotFound is returned for unknown or expired session ids.
	ErrNotFound = errors.New("session not found")
	// ErrLocked is returned when another request holds the session's
	// submission lock.
	ErrLocked = errors.New("session is busy")
)

// DefaultTTL is the idle lifetime of a session.
const DefaultTTL = 30 * time.Minute

// lockTTL bounds how long a crashed submission can block a session.
const lockTTL = 30 * time.Second

// Session is one customer's wizard instance.
type Session struct {
	ID        string       `json:"id"`
	State     wizard.State `json:"state"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// New returns a session in the initial wizard state.
func New() *Session {
	now := time.Now().UTC()
	return &Session{ID: uuid.NewString(), State: wizard.New(), CreatedAt: now, UpdatedAt: now}
}

// Store persists sessions.  Every Save refreshes the idle TTL.  Lock takes
// the submission lock for id and returns the func that releases it.
type Store interface {
	Get(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id string) error
	Lock(ctx context.Context, id string) (func(), error)
}
