package service

import "strings"

// Slugify lowercases s and collapses every non-alphanumeric run into a
// single hyphen. "Hello, World!" becomes "hello-world".
func Slugify(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
