package validate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// NormalizeTitle trims whitespace, uppercases the first letter and lowers the
// rest. Applying it twice yields the same result as once. Empty (or
// whitespace-only) titles are reported via ok=false.
func NormalizeTitle(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:]), true
}

// ID parses a positive integer path/query parameter.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Page clamps a page number to >= 1.
func Page(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// PageSize clamps a page size into [1, max], falling back to def.
func PageSize(s string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > max {
		return max
	}
	return n
}
