package assessment

import (
	"cmp"
	"strings"
	"unicode/utf8"
)

// naturalCompare orders strings the way people read them: letters compare
// case-insensitively and runs of digits compare by numeric value, so
// "Vendor 9" sorts before "vendor 10".
func naturalCompare(a, b string) int {
	a, b = strings.ToLower(a), strings.ToLower(b)

	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, restA := digitRun(a)
			nb, restB := digitRun(b)
			if c := cmp.Compare(len(na), len(nb)); c != 0 {
				return c
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			a, b = restA, restB
			continue
		}

		ra, sa := utf8.DecodeRuneInString(a)
		rb, sb := utf8.DecodeRuneInString(b)
		if ra != rb {
			return cmp.Compare(ra, rb)
		}
		a, b = a[sa:], b[sb:]
	}
	return cmp.Compare(len(a), len(b))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digitRun splits the leading digits off s and drops their leading zeros.
func digitRun(s string) (digits, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	digits = strings.TrimLeft(s[:i], "0")
	return digits, s[i:]
}
