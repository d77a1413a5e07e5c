// Package phone canonicalizes free-form phone numbers into a dialable
// E.164-like string so device contacts can be matched against stored profiles.
package phone

import "strings"

// Normalize strips everything but digits and prefixes a country code:
//   - 11 digits starting with "1" -> "+<digits>"
//   - exactly 10 digits           -> "+1<digits>"
//   - anything else               -> "+<digits>"
//
// Non-US numbers pass through with their digits intact; no country-specific
// validation is attempted.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		return "+" + digits
	case len(digits) == 10:
		return "+1" + digits
	default:
		return "+" + digits
	}
}
