package parse

import (
	"strconv"
	"strings"
)

// ParsePrice recovers a numeric price from localized price text.
// It accepts both decimal-point ("$1,299.00") and decimal-comma
// ("1.299,00 €") conventions: when both separators appear, the
// rightmost one is taken as the decimal separator. Returns false when
// the text carries no recognizable number.
//
// The raw text is always preserved in the record's attributes; this
// value exists only for sorting and tooling convenience.
func ParsePrice(text string) (float64, bool) {
	// Keep digits and separators, drop currency symbols and words.
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return 0, false
	}

	lastDot := strings.LastIndexByte(s, '.')
	lastComma := strings.LastIndexByte(s, ',')

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			// European style: dot groups thousands, comma is decimal.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		// A single comma followed by exactly two digits is a decimal
		// separator; anything else groups thousands.
		if len(s)-lastComma-1 == 2 && strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		// Same rule for a single dot: "1.299" is a thousands group,
		// "1299.99" is a decimal.
		if strings.Count(s, ".") > 1 || (len(s)-lastDot-1 == 3 && lastDot > 0 && lastDot <= 3) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
