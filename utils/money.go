package utils

import (
	"strconv"
	"strings"
)

// FormatBRL formats an amount in cents as a string like "R$ 1.234,56".
// Uses dot as thousands separator and comma for decimals (pt-BR).
func FormatBRL(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	s := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	// Pre-allocate: digits + separators + "-R$ " + ",00"
	b.Grow(len(s) + len(s)/3 + 8)
	if neg {
		b.WriteString("-R$ ")
	} else {
		b.WriteString("R$ ")
	}

	// Insert separators from the left.
	rem := len(s) % 3
	if rem == 0 {
		rem = 3
	}
	b.WriteString(s[:rem])
	for i := rem; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}

	frac := cents % 100
	b.WriteByte(',')
	if frac < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(frac, 10))

	return b.String()
}
