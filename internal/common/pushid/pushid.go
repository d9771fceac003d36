// Package pushid generates the keys a database assigns to appended
// children. An id is 20 characters from a sorted 64 character alphabet:
// the first 8 encode the creation time in milliseconds, the other 12 are
// taken from a UUIDv7 so ids created by one process sort in creation order.
package pushid

import (
	"strings"

	"github.com/google/uuid"
)

// Alphabet is in ASCII order so that ids compare like their timestamps.
const Alphabet = "-0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ_abcdefghijklmnopqrstuvwxyz"

// Length of an id.
const Length = 20

// New returns a new id. It panics if UUID generation fails.
func New() string {
	u, err := uuid.NewV7()
	if err != nil {
		panic(err)
	}
	return encode(u[:15])
}

// encode maps each 3 bytes of b to 4 alphabet characters.
func encode(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) / 3 * 4)
	for i := 0; i+3 <= len(b); i += 3 {
		n := uint32(b[i])<<16 | uint32(b[i+1])<<8 | uint32(b[i+2])
		sb.WriteByte(Alphabet[n>>18&0x3f])
		sb.WriteByte(Alphabet[n>>12&0x3f])
		sb.WriteByte(Alphabet[n>>6&0x3f])
		sb.WriteByte(Alphabet[n&0x3f])
	}
	return sb.String()
}

// Valid reports whether id has the length and alphabet of a push id.
func Valid(id string) bool {
	if len(id) != Length {
		return false
	}
	for i := 0; i < len(id); i++ {
		if strings.IndexByte(Alphabet, id[i]) < 0 {
			return false
		}
	}
	return true
}
