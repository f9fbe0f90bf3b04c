package catalog

import (
	"context"
)

// Service provides catalog business logic over an injected Store.
type Service struct {
	store Store
	opts  Options
}

// NewService creates a new catalog service.
func NewService(store Store, opts Options) *Service {
	if opts.RankBy == "" {
		opts.RankBy = RankBySales
	}
	return &Service{store: store, opts: opts}
}

// Create validates the candidate record and inserts it, returning the new
// identifier. Invalid records are never handed to the store.
func (s *Service) Create(ctx context.Context, in Input) (string, error) {
	if verr := ValidateInput(in, s.opts); verr != nil {
		return "", verr
	}
	return s.store.Insert(ctx, Book{
		Title:       in.Title,
		Author:      in.Author,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Sales:       in.Sales,
	})
}

// Get returns one book by its id. The id gate runs before the lookup: a
// malformed id must never reach the store.
func (s *Service) Get(ctx context.Context, id string) (Book, error) {
	if !ValidID(id) {
		return Book{}, ErrInvalidID
	}
	return s.store.FindByID(ctx, id)
}

// List returns every book in store order.
func (s *Service) List(ctx context.Context) ([]Book, error) {
	return s.store.Search(ctx, SearchFilters{})
}

// Update applies a partial update with set semantics and returns the updated
// record. The merged record is re-validated before persisting, so an update
// cannot push a stored book outside the field invariants.
func (s *Service) Update(ctx context.Context, id string, p Patch) (Book, error) {
	if !ValidID(id) {
		return Book{}, ErrInvalidID
	}
	current, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Book{}, err
	}
	if p.IsZero() {
		return current, nil
	}

	merged := p.Apply(current)
	if verr := ValidateInput(inputOf(merged), s.opts); verr != nil {
		return Book{}, verr
	}
	return s.store.Update(ctx, id, p)
}

// Delete removes one book by its id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !ValidID(id) {
		return ErrInvalidID
	}
	return s.store.Delete(ctx, id)
}

// Search returns the books matching the given filters.
func (s *Service) Search(ctx context.Context, f SearchFilters) ([]Book, error) {
	return s.store.Search(ctx, f)
}

// Report returns the three-facet aggregation over the whole collection.
func (s *Service) Report(ctx context.Context) (Report, error) {
	return s.store.Aggregate(ctx, s.opts.RankBy)
}

func inputOf(b Book) Input {
	return Input{
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		Sales:       b.Sales,
	}
}
