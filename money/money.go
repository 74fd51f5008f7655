// Package money converts integer cent amounts into human-readable
// dollar strings. All portfolio arithmetic is done in integer cents;
// this is the only place amounts are turned into text.
package money

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatCents renders an integer cent amount as a dollar string with
// thousands grouping and exactly two fraction digits, e.g. 5 -> "$0.05",
// 1234567 -> "$12,345.67", -150 -> "-$1.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%s.%02d", sign, group(cents/100), cents%100)
}

// group inserts a comma between every three digits of a non-negative
// integer.
func group(n int64) string {
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
