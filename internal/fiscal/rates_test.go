package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRate(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"fraction stays", 0.18, 0.18},
		{"percent divides", 18.0, 0.18},
		{"one is a fraction", 1.0, 1.0},
		{"zero", 0.0, 0.0},
		{"pis cofins percent", 9.25, 0.0925},
		{"rate above one hundred percent is read as percent", 150.0, 1.5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, NormalizeRate(tc.in), 1e-9)
		})
	}
}

func TestFlatPisCofinsRate(t *testing.T) {
	t.Run("empty table uses default", func(t *testing.T) {
		assert.InDelta(t, DefaultPisCofinsRate, flatPisCofinsRate(nil), 1e-9)
	})

	t.Run("mean of normalized rows", func(t *testing.T) {
		rows := []PisCofinsRate{
			{Tax: "PIS", Value: 9.25},
			{Tax: "COFINS", Value: 0.0725},
		}
		assert.InDelta(t, (0.0925+0.0725)/2, flatPisCofinsRate(rows), 1e-9)
	})
}

func TestIcmsRateByState(t *testing.T) {
	rates := icmsRateByState([]IcmsRate{
		{StateCode: "SP", Rate: 18.0},
		{StateCode: "RJ", Rate: 0.20},
	})

	assert.InDelta(t, 0.18, rates["SP"], 1e-9)
	assert.InDelta(t, 0.20, rates["RJ"], 1e-9)
	assert.Zero(t, rates["MG"])
}

func TestIpiRateByNCM(t *testing.T) {
	rates := ipiRateByNCM([]NcmRate{
		{NCMCode: "01234", Rate: 5.0},
		{NCMCode: "8517.0", Rate: 10.0},
	})

	// Leading zeros and float suffixes collapse to the same integer key
	assert.InDelta(t, 0.05, rates[1234], 1e-9)
	assert.InDelta(t, 0.10, rates[8517], 1e-9)
}
