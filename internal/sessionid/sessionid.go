// Package sessionid generates the identifiers attached to every log line a
// session emits: a UUIDv7 rendered as 26 characters of Crockford base32, so
// ids sort by creation time and stay short enough to read in a terminal.
package sessionid

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Crockford's base32 alphabet
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length of an encoded id
const Length = 26

// New returns a fresh time-ordered session id.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the system entropy source does.
		id = uuid.New()
	}
	return Encode(id)
}

// Encode renders a UUID as a 26-character base32 string.
func Encode(id uuid.UUID) string {
	result := make([]byte, Length)

	for i := 0; i < Length; i++ {
		bitOffset := i * 5
		byteIndex := bitOffset / 8
		bitIndex := bitOffset % 8

		var value uint8
		if byteIndex < 16 {
			if bitIndex <= 3 {
				value = (id[byteIndex] >> (3 - bitIndex)) & 0x1f
			} else {
				value = (id[byteIndex] << (bitIndex - 3)) & 0x1f
				if byteIndex+1 < 16 {
					value |= id[byteIndex+1] >> (11 - bitIndex)
				}
			}
		}
		result[i] = alphabet[value]
	}

	return string(result)
}

// Validate checks that id has the right length and alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session id must be exactly %d characters, got %d", Length, len(id))
	}
	for i, c := range id {
		if !strings.ContainsRune(alphabet, c) {
			return fmt.Errorf("invalid character %c at position %d", c, i)
		}
	}
	return nil
}
