package store

import (
	"testing"

	"bookcatalog/internal/catalog"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchWhere(t *testing.T) {
	fptr := func(f float64) *float64 { return &f }

	t.Run("no filters matches all", func(t *testing.T) {
		where, args := buildSearchWhere(catalog.SearchFilters{})
		assert.Equal(t, "WHERE 1=1", where)
		assert.Empty(t, args)
	})

	t.Run("title is a case-insensitive substring match", func(t *testing.T) {
		where, args := buildSearchWhere(catalog.SearchFilters{Title: "dun"})
		assert.Equal(t, "WHERE 1=1 AND title ILIKE $1", where)
		assert.Equal(t, []any{"%dun%"}, args)
	})

	t.Run("author is a case-insensitive substring match", func(t *testing.T) {
		where, args := buildSearchWhere(catalog.SearchFilters{Author: "herb"})
		assert.Equal(t, "WHERE 1=1 AND author ILIKE $1", where)
		assert.Equal(t, []any{"%herb%"}, args)
	})

	t.Run("single price bound is open-ended", func(t *testing.T) {
		where, args := buildSearchWhere(catalog.SearchFilters{MinPrice: fptr(10)})
		assert.Equal(t, "WHERE 1=1 AND price >= $1", where)
		assert.Equal(t, []any{10.0}, args)

		where, args = buildSearchWhere(catalog.SearchFilters{MaxPrice: fptr(20)})
		assert.Equal(t, "WHERE 1=1 AND price <= $1", where)
		assert.Equal(t, []any{20.0}, args)
	})

	t.Run("both price bounds form an inclusive range", func(t *testing.T) {
		where, args := buildSearchWhere(catalog.SearchFilters{MinPrice: fptr(10), MaxPrice: fptr(20)})
		assert.Equal(t, "WHERE 1=1 AND price >= $1 AND price <= $2", where)
		assert.Equal(t, []any{10.0, 20.0}, args)
	})

	t.Run("all filters combine with AND", func(t *testing.T) {
		where, args := buildSearchWhere(catalog.SearchFilters{
			Title:    "dune",
			Author:   "herbert",
			MinPrice: fptr(5),
			MaxPrice: fptr(50),
		})
		assert.Equal(t, "WHERE 1=1 AND title ILIKE $1 AND author ILIKE $2 AND price >= $3 AND price <= $4", where)
		assert.Equal(t, []any{"%dune%", "%herbert%", 5.0, 50.0}, args)
	})
}
