package game

import (
	"context"

	"github.com/google/uuid"
)

// SessionStore is the shared store holding the authoritative session state
// between actions. Saves replace the whole document.
type SessionStore interface {
	Load(ctx context.Context, id uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Remove(ctx context.Context, id uuid.UUID) error
	Keys(ctx context.Context) ([]uuid.UUID, error)
}
