package fiscal

import (
	"errors"

	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
)

// ErrNoData signals a structurally absent header or item table. The caller
// must not render a dashboard from it; there is nothing to degrade to.
var ErrNoData = errors.New("no invoice data available")

/*
Enrich computes the three tax components per invoice and combines them:

  - PIS/COFINS: header value times the flat national rate (mean of the
    normalized rate rows, defaulting to 9.25% on an empty table);
  - ICMS: header value times the emitter state's rate, zero when the
    state has no row;
  - IPI: item value times the NCM-keyed rate, zero when the code has no
    row, summed into the header over its access key.

Only the combined total and the operation type are kept on the enriched
header. Missing rate matches degrade to zero contribution and never fail
the pass.
*/
func Enrich(ds Dataset) (*EnrichedDataset, error) {
	if len(ds.Headers) == 0 || len(ds.Items) == 0 {
		return nil, ErrNoData
	}

	flatRate := flatPisCofinsRate(ds.PisCofins)
	icmsRates := icmsRateByState(ds.Icms)
	ipiRates := ipiRateByNCM(ds.Ncm)

	items := make([]EnrichedItem, 0, len(ds.Items))
	ipiByKey := make(map[string]float64, len(ds.Headers))
	for _, item := range ds.Items {
		amount := item.TotalValue * ipiRates[utils.NormalizeNCM(item.NCMCode)]
		ipiByKey[item.AccessKey] += amount
		items = append(items, EnrichedItem{InvoiceItem: item, IPIAmount: amount})
	}

	headers := make([]EnrichedHeader, 0, len(ds.Headers))
	for _, h := range ds.Headers {
		pisCofins := h.TotalValue * flatRate
		icms := h.TotalValue * icmsRates[h.EmitterState]
		ipi := ipiByKey[h.AccessKey]

		headers = append(headers, EnrichedHeader{
			InvoiceHeader: h,
			TotalTax:      pisCofins + icms + ipi,
			OperationType: ClassifyOperation(h.EmitterState, h.RecipientState),
		})
	}

	return &EnrichedDataset{Headers: headers, Items: items}, nil
}
