package iso7816

import (
	"fmt"
	"strings"
)

// Wildcard is the pattern character that matches any single hex digit.
const Wildcard = '?'

// SwPattern is a 4 hex digit status word template. Any digit may be replaced
// by '?' to mask it out, e.g. "91??" matches 9100 through 91ff.
// Matching is per-digit and case-insensitive.
type SwPattern string

// Validate checks the pattern invariant: exactly 4 characters, each one a
// hex digit or the wildcard marker.
func (p SwPattern) Validate() error {
	if len(p) != 4 {
		return fmt.Errorf("status word pattern must be 4 characters, got %q", string(p))
	}
	for i := 0; i < len(p); i++ {
		if p[i] == Wildcard || isHexDigit(p[i]) {
			continue
		}
		return fmt.Errorf("invalid character %q in status word pattern %q", p[i], string(p))
	}
	return nil
}

// String returns the case-normalized (lowercase) form of the pattern.
func (p SwPattern) String() string {
	return strings.ToLower(string(p))
}

// MatchSW compares an observed status word (4 hex digits) against a pattern.
// A wildcard digit matches anything; a literal digit must match exactly,
// ignoring case. Returns false if the lengths differ.
func MatchSW(observed string, pattern SwPattern) bool {
	if len(observed) != len(pattern) {
		return false
	}
	obs := strings.ToLower(observed)
	pat := pattern.String()
	for i := 0; i < len(pat); i++ {
		if pat[i] == Wildcard {
			continue
		}
		if pat[i] != obs[i] {
			return false
		}
	}
	return true
}

// Matches reports whether the status word satisfies the pattern.
func (sw StatusWord) Matches(pattern SwPattern) bool {
	return MatchSW(sw.Hex(), pattern)
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
