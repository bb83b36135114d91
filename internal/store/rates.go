package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type RateStore struct {
	db *sqlx.DB
}

func (rs *RateStore) InsertPisCofins(ctx context.Context, rate *PisCofinsRate) error {
	query := `INSERT INTO pis_cofins_rates (tax, value, rule)
		VALUES (:tax, :value, :rule)`

	if _, err := rs.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("failed to insert pis/cofins rate %s: %w", rate.Tax, err)
	}
	return nil
}

func (rs *RateStore) InsertIcms(ctx context.Context, rate *IcmsRate) error {
	query := `INSERT INTO icms_rates (state_name, state_code, rate)
		VALUES (:state_name, :state_code, :rate)`

	if _, err := rs.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("failed to insert icms rate for %s: %w", rate.StateCode, err)
	}
	return nil
}

func (rs *RateStore) InsertNcm(ctx context.Context, rate *NcmRate) error {
	query := `INSERT INTO ncm_rates (ncm_code, description, rate)
		VALUES (:ncm_code, :description, :rate)`

	if _, err := rs.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("failed to insert ncm rate %s: %w", rate.NcmCode, err)
	}
	return nil
}

func (rs *RateStore) ListPisCofins(ctx context.Context) ([]PisCofinsRate, error) {
	query := `SELECT * FROM pis_cofins_rates ORDER BY id`

	var rates []PisCofinsRate
	if err := rs.db.SelectContext(ctx, &rates, query); err != nil {
		return nil, fmt.Errorf("failed to list pis/cofins rates: %w", err)
	}
	return rates, nil
}

func (rs *RateStore) ListIcms(ctx context.Context) ([]IcmsRate, error) {
	query := `SELECT * FROM icms_rates ORDER BY id`

	var rates []IcmsRate
	if err := rs.db.SelectContext(ctx, &rates, query); err != nil {
		return nil, fmt.Errorf("failed to list icms rates: %w", err)
	}
	return rates, nil
}

func (rs *RateStore) ListNcm(ctx context.Context) ([]NcmRate, error) {
	query := `SELECT * FROM ncm_rates ORDER BY id`

	var rates []NcmRate
	if err := rs.db.SelectContext(ctx, &rates, query); err != nil {
		return nil, fmt.Errorf("failed to list ncm rates: %w", err)
	}
	return rates, nil
}
