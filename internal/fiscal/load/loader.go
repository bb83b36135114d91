package load

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/fiscalia/nfe-insights/internal/fiscal/converter"
	"github.com/fiscalia/nfe-insights/internal/logger"
	"github.com/fiscalia/nfe-insights/internal/store"
)

// ErrPeriodAlreadyLoaded guards against double ingestion of a period.
var ErrPeriodAlreadyLoaded = errors.New("period already loaded")

// LoadPeriod inserts one period's header and item rows and records the run
// in the ingestion history. Individual row failures are logged and skipped;
// the run only fails outright on the duplicate guard or a history error.
func LoadPeriod(ctx context.Context, headerDf, itemDf dataframe.DataFrame, history *store.IngestionHistory, storage *store.Storage, appLogger *logger.Logger) error {
	const component = "Loader"

	periodKey := history.PeriodKey
	appLogger.Info(component, "Starting data load for period: %s", periodKey)

	existing, err := storage.Invoice.CountHeadersByPeriod(ctx, periodKey)
	if err != nil {
		return fmt.Errorf("failed to check for existing period %s: %w", periodKey, err)
	}
	if existing > 0 {
		appLogger.Warn(component, "Period %s already has %d headers, refusing to load again", periodKey, existing)
		return ErrPeriodAlreadyLoaded
	}

	var rowsLoaded int64

	now := time.Now()
	for i := 0; i < headerDf.Nrow(); i++ {
		header := converter.DfRowToNfeHeader(headerDf, i, periodKey)
		header.InsertedAt = now
		header.UpdatedAt = now

		if err := storage.Invoice.InsertHeader(ctx, &header); err != nil {
			appLogger.Error(component, "Failed to insert header %s: %v", header.AccessKey, err)
			continue
		}
		rowsLoaded++
	}

	for i := 0; i < itemDf.Nrow(); i++ {
		item := converter.DfRowToNfeItem(itemDf, i, periodKey)
		item.InsertedAt = now
		item.UpdatedAt = now

		if err := storage.Invoice.InsertItem(ctx, &item); err != nil {
			appLogger.Error(component, "Failed to insert item for %s: %v", item.AccessKey, err)
			continue
		}
		rowsLoaded++
	}

	history.RowsLoaded = rowsLoaded
	history.Status = store.IngestionStatusSuccess
	if err := storage.IngestionHistory.InsertIngestionHistory(ctx, history); err != nil {
		return fmt.Errorf("failed to record ingestion: %w", err)
	}

	appLogger.Info(component, "Data load completed for period: %s rows=%d", periodKey, rowsLoaded)
	return nil
}

// LoadRateTables replaces the tax rate reference tables from their CSV
// dataframes.
func LoadRateTables(ctx context.Context, pisCofinsDf, icmsDf, ncmDf dataframe.DataFrame, storage *store.Storage, appLogger *logger.Logger) error {
	const component = "Loader"

	for i := 0; i < pisCofinsDf.Nrow(); i++ {
		rate := converter.DfRowToPisCofinsRate(pisCofinsDf, i)
		if err := storage.Rates.InsertPisCofins(ctx, &rate); err != nil {
			appLogger.Error(component, "Failed to insert pis/cofins rate %s: %v", rate.Tax, err)
		}
	}

	for i := 0; i < icmsDf.Nrow(); i++ {
		rate := converter.DfRowToIcmsRate(icmsDf, i)
		if err := storage.Rates.InsertIcms(ctx, &rate); err != nil {
			appLogger.Error(component, "Failed to insert icms rate for %s: %v", rate.StateCode, err)
		}
	}

	for i := 0; i < ncmDf.Nrow(); i++ {
		rate := converter.DfRowToNcmRate(ncmDf, i)
		if err := storage.Rates.InsertNcm(ctx, &rate); err != nil {
			appLogger.Error(component, "Failed to insert ncm rate %s: %v", rate.NcmCode, err)
		}
	}

	appLogger.Info(component, "Rate tables loaded")
	return nil
}
