package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type InvoiceStore struct {
	db *sqlx.DB
}

func (is *InvoiceStore) InsertHeader(ctx context.Context, header *NfeHeader) error {
	query := `INSERT INTO nfe_headers (
		period_key,
		access_key,
		model,
		series,
		number,
		operation_nature,
		issue_date,
		latest_event,
		emitter_tax_id,
		emitter_name,
		emitter_registration_id,
		emitter_state,
		emitter_city,
		recipient_tax_id,
		recipient_name,
		recipient_state,
		total_value,
		inserted_at,
		updated_at
	) VALUES (
		:period_key,
		:access_key,
		:model,
		:series,
		:number,
		:operation_nature,
		:issue_date,
		:latest_event,
		:emitter_tax_id,
		:emitter_name,
		:emitter_registration_id,
		:emitter_state,
		:emitter_city,
		:recipient_tax_id,
		:recipient_name,
		:recipient_state,
		:total_value,
		:inserted_at,
		:updated_at
	)`

	if _, err := is.db.NamedExecContext(ctx, query, header); err != nil {
		return fmt.Errorf("failed to insert header %s: %w", header.AccessKey, err)
	}
	return nil
}

func (is *InvoiceStore) InsertItem(ctx context.Context, item *NfeItem) error {
	query := `INSERT INTO nfe_items (
		period_key,
		access_key,
		product_number,
		description,
		ncm_code,
		cfop_code,
		quantity,
		unit_value,
		total_value,
		inserted_at,
		updated_at
	) VALUES (
		:period_key,
		:access_key,
		:product_number,
		:description,
		:ncm_code,
		:cfop_code,
		:quantity,
		:unit_value,
		:total_value,
		:inserted_at,
		:updated_at
	)`

	if _, err := is.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to insert item for %s: %w", item.AccessKey, err)
	}
	return nil
}

func (is *InvoiceStore) ListHeaders(ctx context.Context) ([]NfeHeader, error) {
	query := `SELECT * FROM nfe_headers ORDER BY id`

	var headers []NfeHeader
	if err := is.db.SelectContext(ctx, &headers, query); err != nil {
		return nil, fmt.Errorf("failed to list headers: %w", err)
	}
	return headers, nil
}

func (is *InvoiceStore) ListItems(ctx context.Context) ([]NfeItem, error) {
	query := `SELECT * FROM nfe_items ORDER BY id`

	var items []NfeItem
	if err := is.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

func (is *InvoiceStore) CountHeadersByPeriod(ctx context.Context, periodKey string) (int, error) {
	query := `SELECT COUNT(*) FROM nfe_headers WHERE period_key = $1`

	var count int
	if err := is.db.GetContext(ctx, &count, query, periodKey); err != nil {
		return 0, fmt.Errorf("failed to count headers for period %s: %w", periodKey, err)
	}
	return count, nil
}
