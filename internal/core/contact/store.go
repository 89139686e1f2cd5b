package contact

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no contact matches a lookup.
	ErrNotFound = errors.New("contact not found")
	// ErrDuplicate is returned when an add or update collides with an
	// existing name/number pair.
	ErrDuplicate = errors.New("contact already exists")
)

// Store loads and persists the whole contact book. Implementations
// replace the stored set atomically on Save.
type Store interface {
	Load(ctx context.Context) ([]Contact, error)
	Save(ctx context.Context, contacts []Contact) error
}
