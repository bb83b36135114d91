package load

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/store"
)

type stubInvoiceStore struct {
	headers []store.NfeHeader
	items   []store.NfeItem
}

func (s *stubInvoiceStore) InsertHeader(ctx context.Context, header *store.NfeHeader) error {
	s.headers = append(s.headers, *header)
	return nil
}

func (s *stubInvoiceStore) InsertItem(ctx context.Context, item *store.NfeItem) error {
	s.items = append(s.items, *item)
	return nil
}

func (s *stubInvoiceStore) ListHeaders(ctx context.Context) ([]store.NfeHeader, error) {
	return s.headers, nil
}

func (s *stubInvoiceStore) ListItems(ctx context.Context) ([]store.NfeItem, error) {
	return s.items, nil
}

func (s *stubInvoiceStore) CountHeadersByPeriod(ctx context.Context, periodKey string) (int, error) {
	count := 0
	for _, h := range s.headers {
		if h.PeriodKey == periodKey {
			count++
		}
	}
	return count, nil
}

type stubRateStore struct {
	pisCofins []store.PisCofinsRate
	icms      []store.IcmsRate
	ncm       []store.NcmRate
}

func (s *stubRateStore) InsertPisCofins(ctx context.Context, rate *store.PisCofinsRate) error {
	s.pisCofins = append(s.pisCofins, *rate)
	return nil
}

func (s *stubRateStore) InsertIcms(ctx context.Context, rate *store.IcmsRate) error {
	s.icms = append(s.icms, *rate)
	return nil
}

func (s *stubRateStore) InsertNcm(ctx context.Context, rate *store.NcmRate) error {
	s.ncm = append(s.ncm, *rate)
	return nil
}

func (s *stubRateStore) ListPisCofins(ctx context.Context) ([]store.PisCofinsRate, error) {
	return s.pisCofins, nil
}

func (s *stubRateStore) ListIcms(ctx context.Context) ([]store.IcmsRate, error) {
	return s.icms, nil
}

func (s *stubRateStore) ListNcm(ctx context.Context) ([]store.NcmRate, error) {
	return s.ncm, nil
}

type stubHistoryStore struct {
	records []store.IngestionHistory
}

func (s *stubHistoryStore) InsertIngestionHistory(ctx context.Context, history *store.IngestionHistory) error {
	history.ID = int64(len(s.records) + 1)
	s.records = append(s.records, *history)
	return nil
}

func (s *stubHistoryStore) GetLatest(ctx context.Context, limit int) ([]store.IngestionHistory, error) {
	return s.records, nil
}

func (s *stubHistoryStore) UpdateIngestionStatus(ctx context.Context, id int64, status string) error {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = status
		}
	}
	return nil
}

func stubStorage(invoice *stubInvoiceStore, rates *stubRateStore) *store.Storage {
	return &store.Storage{
		Invoice:          invoice,
		Rates:            rates,
		IngestionHistory: &stubHistoryStore{},
	}
}

func TestDatasetFromStoreCoercesValues(t *testing.T) {
	invoice := &stubInvoiceStore{
		headers: []store.NfeHeader{{
			PeriodKey:             "202501",
			AccessKey:             "key-1",
			Number:                "100",
			IssueDate:             "2025-01-15",
			EmitterRegistrationID: "123456",
			EmitterState:          "SP",
			RecipientState:        "RJ",
			TotalValue:            "1.234,56",
		}},
		items: []store.NfeItem{{
			PeriodKey:  "202501",
			AccessKey:  "key-1",
			NcmCode:    "8517",
			Quantity:   "2",
			UnitValue:  "617,28",
			TotalValue: "1.234,56",
		}},
	}
	rates := &stubRateStore{
		pisCofins: []store.PisCofinsRate{{Tax: "PIS/COFINS", Value: 9.25}},
		icms:      []store.IcmsRate{{StateName: "São Paulo", StateCode: "SP", Rate: 18}},
		ncm:       []store.NcmRate{{NcmCode: "8517", Description: "Telefonia", Rate: 5}},
	}

	ds, err := DatasetFromStore(context.Background(), stubStorage(invoice, rates))
	require.NoError(t, err)

	require.Len(t, ds.Headers, 1)
	assert.InDelta(t, 1234.56, ds.Headers[0].TotalValue, 0.001)
	assert.Equal(t, int64(123456), ds.Headers[0].EmitterRegistrationID)
	assert.Equal(t, 2025, ds.Headers[0].IssueDate.Year())
	assert.Equal(t, "202501", ds.Headers[0].PeriodKey)

	require.Len(t, ds.Items, 1)
	assert.InDelta(t, 2.0, ds.Items[0].Quantity, 0.001)
	assert.InDelta(t, 617.28, ds.Items[0].UnitValue, 0.001)

	require.Len(t, ds.PisCofins, 1)
	require.Len(t, ds.Icms, 1)
	require.Len(t, ds.Ncm, 1)
	assert.Empty(t, ds.Quality)
}

func TestDatasetFromStoreFlagsUnparsableValues(t *testing.T) {
	invoice := &stubInvoiceStore{
		headers: []store.NfeHeader{{
			AccessKey:  "key-1",
			TotalValue: "N/A",
		}},
		items: []store.NfeItem{{
			AccessKey:  "key-1",
			Quantity:   "duas",
			UnitValue:  "100,00",
			TotalValue: "",
		}},
	}

	ds, err := DatasetFromStore(context.Background(), stubStorage(invoice, &stubRateStore{}))
	require.NoError(t, err)

	// Bad values coerce to zero and surface as flags
	assert.Zero(t, ds.Headers[0].TotalValue)
	assert.Zero(t, ds.Items[0].Quantity)
	assert.Zero(t, ds.Items[0].TotalValue)
	assert.InDelta(t, 100.00, ds.Items[0].UnitValue, 0.001)

	require.Len(t, ds.Quality, 3)
	columns := make(map[string]int)
	for _, flag := range ds.Quality {
		columns[flag.Column]++
		assert.Equal(t, "key-1", flag.AccessKey)
	}
	assert.Equal(t, 2, columns["total_value"])
	assert.Equal(t, 1, columns["quantity"])
}

func TestDatasetFromStoreFeedsAnalysis(t *testing.T) {
	invoice := &stubInvoiceStore{
		headers: []store.NfeHeader{{
			AccessKey:      "key-1",
			EmitterState:   "SP",
			RecipientState: "SP",
			TotalValue:     "1000,00",
			PeriodKey:      "202501",
		}},
		items: []store.NfeItem{{
			AccessKey:  "key-1",
			NcmCode:    "8517",
			TotalValue: "1000,00",
		}},
	}
	rates := &stubRateStore{
		pisCofins: []store.PisCofinsRate{{Tax: "PIS/COFINS", Value: 9.25}},
		icms:      []store.IcmsRate{{StateCode: "SP", Rate: 18}},
		ncm:       []store.NcmRate{{NcmCode: "8517", Rate: 5}},
	}

	ds, err := DatasetFromStore(context.Background(), stubStorage(invoice, rates))
	require.NoError(t, err)

	analysis, err := fiscal.Analyze(ds)
	require.NoError(t, err)

	assert.InDelta(t, 322.50, analysis.Summary.TotalTax, 0.001)
	assert.Equal(t, 1, analysis.Summary.InvoiceCount)
}
