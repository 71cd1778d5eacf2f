package checkout

import "strings"

// NormalizePhone maps common Bulgarian phone spellings to the canonical
// +359 form: a leading national 0 becomes +359, a bare 359 prefix gains the
// plus, an already-prefixed +359 number passes through. Any other input is
// returned unmodified; callers must treat a result without the +359 prefix
// as invalid.
func NormalizePhone(raw string) string {
	var cleaned strings.Builder
	for _, r := range raw {
		if r == '+' || (r >= '0' && r <= '9') {
			cleaned.WriteRune(r)
		}
	}
	digits := cleaned.String()

	switch {
	case strings.HasPrefix(digits, "+359"):
		return digits
	case strings.HasPrefix(digits, "359"):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+359" + digits[1:]
	default:
		return raw
	}
}
