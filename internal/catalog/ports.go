package catalog

import (
	"context"
)

// Store defines the contract for book persistence. The catalog depends on
// these six capabilities only, not on any particular store product.
type Store interface {
	// Insert persists a new book and returns its assigned identifier.
	Insert(ctx context.Context, b Book) (string, error)

	// FindByID returns the book with the given id, or ErrNotFound.
	FindByID(ctx context.Context, id string) (Book, error)

	// Search returns every book matching the filters; zero filters match all.
	Search(ctx context.Context, f SearchFilters) ([]Book, error)

	// Update applies a partial set to one book and returns the updated row,
	// or ErrNotFound.
	Update(ctx context.Context, id string, p Patch) (Book, error)

	// Delete removes one book, or returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Aggregate computes the multi-facet report from a single snapshot.
	Aggregate(ctx context.Context, rankBy RankField) (Report, error)
}
