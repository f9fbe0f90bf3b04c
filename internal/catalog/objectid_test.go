package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"well-formed", "645c5ee39f04857283b34613", true},
		{"well-formed uppercase hex", "645C5EE39F04857283B34613", true},
		{"nonexistent but well-formed", "ffffffffffffffffffffffff", true},
		{"empty", "", false},
		{"too short", "645c5ee39f04857283b3461", false},
		{"too long", "645c5ee39f04857283b346131", false},
		{"non-hex characters", "645c5ee39f04857283b3461g", false},
		{"all non-hex", "invalid_id_invalid_id_in", false},
		{"whitespace padded", " 45c5ee39f04857283b34613", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidID(tt.id))
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 24)
		assert.True(t, ValidID(id))
		assert.False(t, seen[id], "generated duplicate id %s", id)
		seen[id] = true
	}
}
