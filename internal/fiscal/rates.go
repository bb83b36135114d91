package fiscal

import (
	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
)

// DefaultPisCofinsRate is the flat approximation applied when the
// PIS/COFINS rate table has no rows.
const DefaultPisCofinsRate = 0.0925

// NormalizeRate resolves the percent-vs-fraction ambiguity of the source
// rate tables: "18" and "0.18" both mean 18%. Values above 1.0 are treated
// as percentages. A legitimate fractional rate above 100% is indistinguishable
// from a percent value under this rule and gets misread; the threshold stays
// as-is until product says otherwise.
func NormalizeRate(rate float64) float64 {
	if rate > 1.0 {
		return rate / 100.0
	}
	return rate
}

// flatPisCofinsRate is the mean of the normalized rows, or the default
// when the table is empty.
func flatPisCofinsRate(rows []PisCofinsRate) float64 {
	if len(rows) == 0 {
		return DefaultPisCofinsRate
	}

	sum := 0.0
	for _, r := range rows {
		sum += NormalizeRate(r.Value)
	}
	return sum / float64(len(rows))
}

// icmsRateByState maps emitter state code to its normalized rate.
func icmsRateByState(rows []IcmsRate) map[string]float64 {
	rates := make(map[string]float64, len(rows))
	for _, r := range rows {
		rates[r.StateCode] = NormalizeRate(r.Rate)
	}
	return rates
}

// ipiRateByNCM maps the integer-normalized NCM key to its normalized rate,
// tolerating string/leading-zero variance between the item and rate tables.
func ipiRateByNCM(rows []NcmRate) map[int64]float64 {
	rates := make(map[int64]float64, len(rows))
	for _, r := range rows {
		rates[utils.NormalizeNCM(r.NCMCode)] = NormalizeRate(r.Rate)
	}
	return rates
}
