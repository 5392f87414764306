// Package converter provides conversions between the literal dotted form of
// a property path and its segment list.
package converter

import (
	"strings"

	"github.com/pkg/errors"
)

// ParsePath splits a dotted literal path into its property name segments.
// A backslash escapes the following character, so names containing dots or
// backslashes survive the round trip.
func ParsePath(literal string) ([]string, error) {
	if literal == "" {
		return nil, errors.New("empty path")
	}
	var path []string
	var segment strings.Builder
	escaped := false
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		switch {
		case escaped:
			segment.WriteByte(c)
			escaped = false
		case c == '\\':
			escaped = true
		case c == '.':
			if segment.Len() == 0 {
				return nil, errors.Errorf("empty segment in path %q", literal)
			}
			path = append(path, segment.String())
			segment.Reset()
		default:
			segment.WriteByte(c)
		}
	}
	if escaped {
		return nil, errors.Errorf("trailing escape in path %q", literal)
	}
	if segment.Len() == 0 {
		return nil, errors.Errorf("empty segment in path %q", literal)
	}
	return append(path, segment.String()), nil
}

// FormatPath joins path segments into the literal dotted form, escaping
// dots and backslashes inside the segments.
func FormatPath(path []string) string {
	escaper := strings.NewReplacer(`\`, `\\`, `.`, `\.`)
	escaped := make([]string, len(path))
	for i, segment := range path {
		escaped[i] = escaper.Replace(segment)
	}
	return strings.Join(escaped, ".")
}
