package catalog

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

const idLen = 24 // 12 bytes as lowercase hex

// ValidID reports whether s is a well-formed object id: exactly 24 characters
// that decode as 12 hex bytes. It never panics; every lookup path must pass
// this gate before the id reaches the store.
func ValidID(s string) bool {
	if len(s) != idLen {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// NewID generates a store identifier: 4 big-endian timestamp bytes followed
// by 8 random bytes, hex encoded. Timestamp-first keeps ids roughly
// insertion-ordered.
func NewID() string {
	var b [12]byte
	binary.BigEndian.PutUint32(b[:4], uint32(time.Now().Unix()))
	if _, err := rand.Read(b[4:]); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
