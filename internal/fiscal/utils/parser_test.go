package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDecimal(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		want   float64
		wantOk bool
	}{
		{"brazilian convention", "1.234,56", 1234.56, true},
		{"plain decimal", "1234.56", 1234.56, true},
		{"comma only", "10,5", 10.5, true},
		{"integer", "42", 42.0, true},
		{"surrounding spaces", " 99,90 ", 99.90, true},
		{"empty", "", 0.0, false},
		{"garbage", "N/A", 0.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ParseDecimal(tc.in)
			assert.Equal(t, tc.wantOk, ok)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseInt64(t *testing.T) {
	assert.Equal(t, int64(123), ParseInt64("123"))
	assert.Equal(t, int64(123), ParseInt64("123.0"))
	assert.Equal(t, int64(0), ParseInt64(""))
	assert.Equal(t, int64(0), ParseInt64("abc"))
	assert.Equal(t, int64(1234), ParseInt64(" 1234 "))
}

func TestNormalizeNCM(t *testing.T) {
	assert.Equal(t, int64(1234), NormalizeNCM("01234"))
	assert.Equal(t, int64(1234), NormalizeNCM("1234"))
	assert.Equal(t, int64(1234), NormalizeNCM("1234.0"))
	assert.Equal(t, int64(0), NormalizeNCM("sem ncm"))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, want, ParseDate("2025-01-15"))
	assert.Equal(t, want, ParseDate("15/01/2025"))

	withTime := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, withTime, ParseDate("2025-01-15 10:30:00"))

	assert.True(t, ParseDate("").IsZero())
	assert.True(t, ParseDate("not a date").IsZero())
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 1.234.567,89", FormatBRL(1234567.89))
	assert.Equal(t, "R$ 1.000,00", FormatBRL(1000))
	assert.Equal(t, "R$ 92,50", FormatBRL(92.5))
	assert.Equal(t, "R$ 0,00", FormatBRL(0))
	assert.Equal(t, "-R$ 10,50", FormatBRL(-10.5))
}
