package utils

import (
	"regexp"
	"strings"
)

// -----------------------------------------------------------------------
// 1) EMAIL
// -----------------------------------------------------------------------

// leadEmailRegex is deliberately loose: something@something.something, no whitespace.
var leadEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsLeadEmail reports whether e looks like an address a person typed into a lead form.
func IsLeadEmail(e string) bool { return leadEmailRegex.MatchString(e) }

// -----------------------------------------------------------------------
// 2) PHONE
// -----------------------------------------------------------------------

var leadPhoneCharsRegex = regexp.MustCompile(`^[\d\s\-+()]+$`)

// MinLeadPhoneDigits is the fewest digits a lead phone number may carry.
const MinLeadPhoneDigits = 10

// IsLeadPhone accepts digits, spaces, hyphens, plus signs and parentheses
// as long as at least MinLeadPhoneDigits digits remain once the rest is stripped.
func IsLeadPhone(p string) bool {
	if !leadPhoneCharsRegex.MatchString(p) {
		return false
	}
	return len(DigitsOnly(p)) >= MinLeadPhoneDigits
}

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
