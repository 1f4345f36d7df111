// core/cellid/cellid.go
package cellid

import (
	"fmt"
	"strings"
)

// Unassigned is the schema sentinel for a transcript with no cell assignment.
const Unassigned = "-1"

// Older exports spell the sentinel out; both decode to 0.
const unassignedLegacy = "UNASSIGNED"

// Width is the digit count of a platform cell-id prefix.
const Width = 8

const base = 16

// DecodeError reports a malformed encoded cell id.
type DecodeError struct {
	Raw string // raw value as read from the source column
	Pos int    // offending character position; -1 for structural problems
	Msg string
}

func (e *DecodeError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("cell id %q: %s at position %d", e.Raw, e.Msg, e.Pos)
	}
	return fmt.Sprintf("cell id %q: %s", e.Raw, e.Msg)
}

// Decode converts an encoded cell id into its integer form.
//
// The unassigned sentinel decodes to 0. Any other value is read as a base-16
// number over the alphabet a..p with the least-significant digit first; a
// dataset suffix after '-' is stripped before decoding. The result carries a
// +1 offset so the smallest prefix maps to cell 1, keeping 0 reserved for
// "unassigned".
func Decode(raw string) (int, error) {
	if raw == Unassigned || raw == unassignedLegacy {
		return 0, nil
	}
	prefix := raw
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		prefix = raw[:i]
	}
	if prefix == "" {
		return 0, &DecodeError{Raw: raw, Pos: -1, Msg: "empty prefix"}
	}
	value, weight := 0, 1
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		if c < 'a' || c > 'p' {
			return 0, &DecodeError{Raw: raw, Pos: i, Msg: fmt.Sprintf("character %q outside alphabet a..p", c)}
		}
		value += int(c-'a') * weight
		weight *= base
	}
	return value + 1, nil
}

// Encode is the inverse of Decode over the platform's fixed-width prefix
// domain. Ids <= 0 encode to the sentinel.
func Encode(id int) string {
	if id <= 0 {
		return Unassigned
	}
	v := id - 1
	var b [Width]byte
	for i := range b {
		b[i] = byte('a' + v%base)
		v /= base
	}
	return string(b[:])
}
