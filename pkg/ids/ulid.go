// Package ids mints the opaque identifiers used for carts and orders.
package ids

import (
	"crypto/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Length is the canonical encoded ULID length.
const Length = ulid.EncodedSize

// New returns a 26-character ULID stamped with the current time. Entropy comes
// from crypto/rand so consecutive ids are not predictable from one another.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a ULID stamped with t.
func NewAt(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), rand.Reader).String()
}

// Valid reports whether value is a well-formed ULID.
func Valid(value string) bool {
	_, err := ulid.ParseStrict(strings.TrimSpace(value))
	return err == nil
}

// Time extracts the embedded millisecond timestamp.
func Time(value string) (time.Time, bool) {
	id, err := ulid.ParseStrict(value)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(id.Time()), true
}
