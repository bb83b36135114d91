package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	IngestionStatusRunning = "running"
	IngestionStatusSuccess = "success"
	IngestionStatusFailed  = "failed"

	IngestionTriggerManual    = "manual"
	IngestionTriggerScheduled = "scheduled"
)

type IngestionHistoryStore struct {
	db *sqlx.DB
}

func (ihs *IngestionHistoryStore) InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error {
	query := `INSERT INTO ingestion_history (
		period_key,
		source_file,
		file_format,
		trigger_type,
		status,
		rows_loaded
	) VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, processed_at`

	err := ihs.db.QueryRowxContext(
		ctx,
		query,
		history.PeriodKey,
		history.SourceFile,
		history.FileFormat,
		history.TriggerType,
		history.Status,
		history.RowsLoaded,
	).Scan(&history.ID, &history.ProcessedAt)
	if err != nil {
		return fmt.Errorf("failed to insert ingestion history: %w", err)
	}
	return nil
}

func (ihs *IngestionHistoryStore) GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error) {
	query := `SELECT * FROM ingestion_history ORDER BY processed_at DESC LIMIT $1`

	var history []IngestionHistory
	if err := ihs.db.SelectContext(ctx, &history, query, limit); err != nil {
		return nil, fmt.Errorf("failed to get latest ingestion history: %w", err)
	}
	return history, nil
}

func (ihs *IngestionHistoryStore) UpdateIngestionStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE ingestion_history SET status = $1 WHERE id = $2`

	result, err := ihs.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update ingestion status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("ingestion history %d not found", id)
	}
	return nil
}
