package store

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Storage struct {
	Invoice interface {
		InsertHeader(ctx context.Context, header *NfeHeader) error
		InsertItem(ctx context.Context, item *NfeItem) error
		ListHeaders(ctx context.Context) ([]NfeHeader, error)
		ListItems(ctx context.Context) ([]NfeItem, error)
		CountHeadersByPeriod(ctx context.Context, periodKey string) (int, error)
	}

	Rates interface {
		InsertPisCofins(ctx context.Context, rate *PisCofinsRate) error
		InsertIcms(ctx context.Context, rate *IcmsRate) error
		InsertNcm(ctx context.Context, rate *NcmRate) error
		ListPisCofins(ctx context.Context) ([]PisCofinsRate, error)
		ListIcms(ctx context.Context) ([]IcmsRate, error)
		ListNcm(ctx context.Context) ([]NcmRate, error)
	}

	IngestionHistory interface {
		InsertIngestionHistory(ctx context.Context, history *IngestionHistory) error
		GetLatest(ctx context.Context, limit int) ([]IngestionHistory, error)
		UpdateIngestionStatus(ctx context.Context, id int64, status string) error
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Invoice:          &InvoiceStore{db: db},
		Rates:            &RateStore{db: db},
		IngestionHistory: &IngestionHistoryStore{db: db},
	}
}
