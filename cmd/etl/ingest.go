package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"

	"github.com/fiscalia/nfe-insights/internal/fiscal/downloader"
	"github.com/fiscalia/nfe-insights/internal/fiscal/files"
	"github.com/fiscalia/nfe-insights/internal/fiscal/load"
	"github.com/fiscalia/nfe-insights/internal/logger"
	"github.com/fiscalia/nfe-insights/internal/store"
)

// ingestPeriod fetches (or locates) one period's header and item files,
// decodes them per the requested format and loads them into the database.
func ingestPeriod(ctx context.Context, periodKey, format, source, localDir, trigger string, storage *store.Storage, appLogger *logger.Logger) error {
	const component = "Ingestor"

	if format != "csv" && format != "xml" {
		return fmt.Errorf("unsupported format %q, expected csv or xml", format)
	}

	var headerPath, itemPath string
	if localDir != "" {
		headerPath, itemPath = files.BuildFilesForPeriod(periodKey, format, localDir)
	} else {
		baseURL := source
		if baseURL == "" {
			baseURL = downloader.FiscalDataURL
		}
		download := downloader.FetchPeriodFiles(baseURL, periodKey, format, appLogger)
		if !download.Success {
			return fmt.Errorf("download failed for period %s", periodKey)
		}
		headerPath, itemPath = download.HeaderPath, download.ItemPath
	}

	var headerDf, itemDf dataframe.DataFrame
	var err error
	if format == "xml" {
		headerDf, err = files.OpenHeaderXML(headerPath)
		if err != nil {
			return fmt.Errorf("failed to decode header file: %w", err)
		}
		itemDf, err = files.OpenItemXML(itemPath)
		if err != nil {
			return fmt.Errorf("failed to decode item file: %w", err)
		}
	} else {
		headerDf, err = files.OpenFileAndDecode(headerPath)
		if err != nil {
			return fmt.Errorf("failed to decode header file: %w", err)
		}
		itemDf, err = files.OpenFileAndDecode(itemPath)
		if err != nil {
			return fmt.Errorf("failed to decode item file: %w", err)
		}
	}

	appLogger.Info(component, "Files decoded: period=%s headers=%d items=%d", periodKey, headerDf.Nrow(), itemDf.Nrow())

	history := &store.IngestionHistory{
		PeriodKey:   periodKey,
		SourceFile:  files.HeaderFileName(periodKey, format),
		FileFormat:  format,
		TriggerType: trigger,
	}

	return load.LoadPeriod(ctx, headerDf, itemDf, history, storage, appLogger)
}

// ingestRateTables loads the three tax rate reference CSVs from one
// directory.
func ingestRateTables(ctx context.Context, dir string, storage *store.Storage, appLogger *logger.Logger) error {
	pisCofinsDf, err := files.OpenFileAndDecode(filepath.Join(dir, "pis_cofins.csv"))
	if err != nil {
		return fmt.Errorf("failed to decode pis_cofins.csv: %w", err)
	}
	icmsDf, err := files.OpenFileAndDecode(filepath.Join(dir, "icms.csv"))
	if err != nil {
		return fmt.Errorf("failed to decode icms.csv: %w", err)
	}
	ncmDf, err := files.OpenFileAndDecode(filepath.Join(dir, "ncm.csv"))
	if err != nil {
		return fmt.Errorf("failed to decode ncm.csv: %w", err)
	}

	return load.LoadRateTables(ctx, pisCofinsDf, icmsDf, ncmDf, storage, appLogger)
}
