package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// ErrInvalidID is returned when an identifier is not a 24-character hex object id.
var ErrInvalidID = errors.New("invalid book id")

// ErrUnavailable wraps store failures (connectivity, timeout) so the boundary
// can tell them apart from business outcomes.
var ErrUnavailable = errors.New("store unavailable")

// Book represents a single catalog entry.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Sales       int       `json:"sales"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Input carries the fields a client may supply when creating a book.
type Input struct {
	Title       string  `json:"title" validate:"required"`
	Author      string  `json:"author" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Sales       int     `json:"sales" validate:"gte=0"`
}

// Patch is a typed partial update. Nil fields are left unchanged; set fields
// replace the stored value. Clients cannot smuggle store-level operators
// through it, unlike a raw key/value merge.
type Patch struct {
	Title       *string  `json:"title"`
	Author      *string  `json:"author"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	Sales       *int     `json:"sales"`
}

// IsZero reports whether the patch sets nothing.
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Author == nil && p.Description == nil &&
		p.Price == nil && p.Stock == nil && p.Sales == nil
}

// Apply returns a copy of b with the patch's set fields replaced.
func (p Patch) Apply(b Book) Book {
	if p.Title != nil {
		b.Title = *p.Title
	}
	if p.Author != nil {
		b.Author = *p.Author
	}
	if p.Description != nil {
		b.Description = *p.Description
	}
	if p.Price != nil {
		b.Price = *p.Price
	}
	if p.Stock != nil {
		b.Stock = *p.Stock
	}
	if p.Sales != nil {
		b.Sales = *p.Sales
	}
	return b
}

// SearchFilters defines the optional search dimensions. Absent filters impose
// no constraint; present filters are combined with AND.
type SearchFilters struct {
	Title    string
	Author   string
	MinPrice *float64
	MaxPrice *float64
}

// RankField selects which column orders the bestseller facet.
type RankField string

const (
	RankBySales RankField = "sales"
	RankByStock RankField = "stock"
)

// Options collapses the source's service variants into configuration: whether
// the schema carries a sales figure, and which field ranks bestsellers.
type Options struct {
	SalesEnabled bool
	RankBy       RankField
}

// DefaultOptions matches the fullest variant: sales tracked, bestsellers
// ranked by sales.
func DefaultOptions() Options {
	return Options{SalesEnabled: true, RankBy: RankBySales}
}

// AuthorRank is one row of the top-authors facet.
type AuthorRank struct {
	Author     string `json:"author"`
	TotalStock int    `json:"total_stock"`
}

// Report is the fixed three-facet aggregation over the whole collection.
type Report struct {
	TotalBooks       int          `json:"total_books"`
	BestsellingBooks []Book       `json:"bestselling_books"`
	TopAuthors       []AuthorRank `json:"top_authors"`
}

// Violation describes a single failed field rule.
type Violation struct {
	Field   string
	Message string
}

// ValidationError reports every field rule a candidate record breaks.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "invalid book data"
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Message))
	}
	return "invalid book data: " + strings.Join(parts, "; ")
}
