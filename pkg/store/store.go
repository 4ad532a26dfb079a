// Package store persists finished layouts for the API server.
//
// Three backends implement [Store]:
//   - [MemoryStore]: in-process map for development and tests
//   - [FileStore]: one JSON file per layout, for single-host deployments
//   - [MongoStore]: MongoDB collection for shared multi-instance deployments
//
// Layouts are keyed by a random UUID assigned on Save. The stored layout
// carries its ID and creation time; callers never pick IDs themselves.
//
// # Usage
//
//	st, err := store.NewMongoStore(ctx, "mongodb://localhost:27017", "wordcloud")
//	if err != nil {
//	    return err
//	}
//	defer st.Close()
//
//	id, err := st.Save(ctx, layout)
//	...
//	layout, err := st.Get(ctx, id)
//	if errors.Is(err, store.ErrNotFound) {
//	    // unknown or deleted layout
//	}
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/result"
)

// ErrNotFound is returned when a layout does not exist.
var ErrNotFound = errors.New(errors.ErrCodeNotFound, "layout not found")

// DefaultListLimit caps List when the caller passes a non-positive limit.
const DefaultListLimit = 20

// Store is the interface for layout storage backends.
type Store interface {
	// Save stores l under a new ID and returns it. Any ID already set on l
	// is ignored.
	Save(ctx context.Context, l result.Layout) (string, error)

	// Get retrieves a layout by ID. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (result.Layout, error)

	// List returns up to limit layouts, newest first.
	List(ctx context.Context, limit int) ([]result.Layout, error)

	// Delete removes a layout. Deleting a missing layout is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// stamp assigns a fresh ID and creation time.
func stamp(l result.Layout) result.Layout {
	l.ID = uuid.NewString()
	l.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return l
}

// validID reports whether id looks like an ID produced by stamp.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
