/*
Package cipher implements the deterministic shift transform applied to every
message body before it is recorded in a room's history.

The transform rotates ASCII letters within their own case by a fixed number of
positions; every other code point passes through unchanged. It is a reversible
obfuscation, not a security mechanism: the shift value is fixed and public.
*/
package cipher

const (
	// DefaultShift is the shift value used throughout the application.
	DefaultShift = 3

	alphabetSize = 26
)

// Encode rotates every ASCII letter in text forward by shift positions,
// wrapping within its own case. Non-letter code points are returned unchanged.
// Encode is total: it accepts any string and any shift value.
func Encode(text string, shift int) string {
	return rotate(text, shift)
}

// Decode reverses Encode for the same shift value, so that
// Decode(Encode(s, k), k) == s for every string s.
func Decode(text string, shift int) string {
	return rotate(text, -shift)
}

func rotate(text string, shift int) string {
	// Normalize shift into [0, 25] so negative values wrap correctly.
	shift = ((shift % alphabetSize) + alphabetSize) % alphabetSize
	if shift == 0 {
		return text
	}

	out := []rune(text)
	for i, r := range out {
		switch {
		case r >= 'a' && r <= 'z':
			out[i] = 'a' + (r-'a'+rune(shift))%alphabetSize
		case r >= 'A' && r <= 'Z':
			out[i] = 'A' + (r-'A'+rune(shift))%alphabetSize
		}
	}

	return string(out)
}
