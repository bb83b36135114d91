package load

import (
	"context"
	"fmt"

	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
	"github.com/fiscalia/nfe-insights/internal/store"
)

// DatasetFromStore reads the stored tables back into the typed dataset the
// analysis pass consumes. Value and date columns are stored as text; any
// value that does not parse is coerced to zero and reported as a quality
// flag rather than failing the whole read.
func DatasetFromStore(ctx context.Context, storage *store.Storage) (fiscal.Dataset, error) {
	var ds fiscal.Dataset

	headers, err := storage.Invoice.ListHeaders(ctx)
	if err != nil {
		return ds, fmt.Errorf("failed to read headers: %w", err)
	}
	items, err := storage.Invoice.ListItems(ctx)
	if err != nil {
		return ds, fmt.Errorf("failed to read items: %w", err)
	}

	ds.Headers = make([]fiscal.InvoiceHeader, 0, len(headers))
	ds.Quality = []fiscal.QualityFlag{}
	for _, h := range headers {
		totalValue, ok := utils.ParseDecimal(h.TotalValue)
		if !ok {
			ds.Quality = append(ds.Quality, fiscal.QualityFlag{
				AccessKey: h.AccessKey,
				Column:    "total_value",
				RawValue:  h.TotalValue,
			})
		}

		ds.Headers = append(ds.Headers, fiscal.InvoiceHeader{
			AccessKey:             h.AccessKey,
			Model:                 h.Model,
			Series:                h.Series,
			Number:                h.Number,
			OperationNature:       h.OperationNature,
			IssueDate:             utils.ParseDate(h.IssueDate),
			LatestEvent:           h.LatestEvent,
			EmitterTaxID:          h.EmitterTaxID,
			EmitterName:           h.EmitterName,
			EmitterRegistrationID: utils.ParseInt64(h.EmitterRegistrationID),
			EmitterState:          h.EmitterState,
			EmitterCity:           h.EmitterCity,
			RecipientTaxID:        h.RecipientTaxID,
			RecipientName:         h.RecipientName,
			RecipientState:        h.RecipientState,
			TotalValue:            totalValue,
			PeriodKey:             h.PeriodKey,
		})
	}

	ds.Items = make([]fiscal.InvoiceItem, 0, len(items))
	for _, item := range items {
		quantity, ok := utils.ParseDecimal(item.Quantity)
		if !ok {
			ds.Quality = append(ds.Quality, fiscal.QualityFlag{
				AccessKey: item.AccessKey,
				Column:    "quantity",
				RawValue:  item.Quantity,
			})
		}
		unitValue, ok := utils.ParseDecimal(item.UnitValue)
		if !ok {
			ds.Quality = append(ds.Quality, fiscal.QualityFlag{
				AccessKey: item.AccessKey,
				Column:    "unit_value",
				RawValue:  item.UnitValue,
			})
		}
		totalValue, ok := utils.ParseDecimal(item.TotalValue)
		if !ok {
			ds.Quality = append(ds.Quality, fiscal.QualityFlag{
				AccessKey: item.AccessKey,
				Column:    "total_value",
				RawValue:  item.TotalValue,
			})
		}

		ds.Items = append(ds.Items, fiscal.InvoiceItem{
			AccessKey:     item.AccessKey,
			ProductNumber: item.ProductNumber,
			Description:   item.Description,
			NCMCode:       item.NcmCode,
			CFOPCode:      item.CfopCode,
			Quantity:      quantity,
			UnitValue:     unitValue,
			TotalValue:    totalValue,
		})
	}

	pisCofins, err := storage.Rates.ListPisCofins(ctx)
	if err != nil {
		return ds, fmt.Errorf("failed to read pis/cofins rates: %w", err)
	}
	for _, r := range pisCofins {
		ds.PisCofins = append(ds.PisCofins, fiscal.PisCofinsRate{
			Tax:   r.Tax,
			Value: r.Value,
			Rule:  r.Rule,
		})
	}

	icms, err := storage.Rates.ListIcms(ctx)
	if err != nil {
		return ds, fmt.Errorf("failed to read icms rates: %w", err)
	}
	for _, r := range icms {
		ds.Icms = append(ds.Icms, fiscal.IcmsRate{
			StateName: r.StateName,
			StateCode: r.StateCode,
			Rate:      r.Rate,
		})
	}

	ncm, err := storage.Rates.ListNcm(ctx)
	if err != nil {
		return ds, fmt.Errorf("failed to read ncm rates: %w", err)
	}
	for _, r := range ncm {
		ds.Ncm = append(ds.Ncm, fiscal.NcmRate{
			NCMCode:     r.NcmCode,
			Description: r.Description,
			Rate:        r.Rate,
		})
	}

	return ds, nil
}
