package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

func ParseDate(dateStr string) time.Time {
	if dateStr == "" {
		return time.Time{}
	}
	for _, layout := range []string{
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02/01/2006 15:04:05",
		"02/01/2006",
	} {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ParseDecimal reads a monetary/quantity value that may use the Brazilian
// convention ("1.234,56") or the plain one ("1234.56"). The second return
// reports whether the raw value parsed; callers coerce failures to zero.
func ParseDecimal(valStr string) (float64, bool) {
	cleanStr := strings.TrimSpace(valStr)
	if cleanStr == "" {
		return 0.0, false
	}
	if strings.Contains(cleanStr, ",") {
		// Comma is the decimal separator, dots are thousands separators
		cleanStr = strings.ReplaceAll(cleanStr, ".", "")
		cleanStr = strings.ReplaceAll(cleanStr, ",", ".")
	}
	val, err := strconv.ParseFloat(cleanStr, 64)
	if err != nil {
		return 0.0, false
	}
	return val, true
}

func ParseInt64(valStr string) int64 {
	valStr = strings.TrimSpace(valStr)
	if valStr == "" {
		return 0
	}
	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		// Some sources export integer codes as "123.0"
		if f, ferr := strconv.ParseFloat(valStr, 64); ferr == nil {
			return int64(f)
		}
		return 0
	}
	return val
}

// NormalizeNCM reduces an NCM (or CFOP) code to its integer form so that
// "01234", "1234" and "1234.0" all match the same rate-table key.
// Unparsable codes normalize to zero.
func NormalizeNCM(code string) int64 {
	return ParseInt64(code)
}

// FormatInt renders an int64 in base 10.
func FormatInt(val int64) string {
	return strconv.FormatInt(val, 10)
}

// FormatBRL renders a value as Brazilian currency: R$ 1.234.567,89.
func FormatBRL(value float64) string {
	neg := value < 0
	if neg {
		value = -value
	}

	s := fmt.Sprintf("%.2f", value)
	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := "R$ " + b.String() + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}
