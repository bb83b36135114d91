package fiscal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func enrichedFixture(headers []EnrichedHeader, items []EnrichedItem) *EnrichedDataset {
	return &EnrichedDataset{Headers: headers, Items: items}
}

func TestCheckValueMismatch(t *testing.T) {
	e := enrichedFixture(
		[]EnrichedHeader{
			{InvoiceHeader: InvoiceHeader{AccessKey: "key-1", Number: "1", TotalValue: 100.02}},
			{InvoiceHeader: InvoiceHeader{AccessKey: "key-2", Number: "2", TotalValue: 100.005}},
		},
		[]EnrichedItem{
			{InvoiceItem: InvoiceItem{AccessKey: "key-1", TotalValue: 100.00}},
			{InvoiceItem: InvoiceItem{AccessKey: "key-2", TotalValue: 100.00}},
		},
	)

	report := CheckValueMismatch(e)

	// 0.02 exceeds the tolerance, 0.005 does not
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "1", report.Rows[0].Number)
	assert.InDelta(t, 0.02, report.Rows[0].Difference, 0.0001)
	assert.Equal(t, 1, report.Count)
}

func TestCheckValueMismatchHeaderWithoutItems(t *testing.T) {
	e := enrichedFixture(
		[]EnrichedHeader{{InvoiceHeader: InvoiceHeader{AccessKey: "key-1", Number: "1", TotalValue: 50.00}}},
		nil,
	)

	report := CheckValueMismatch(e)

	// Items sum to zero for an itemless header, so the whole declared value
	// is the difference
	require.Len(t, report.Rows, 1)
	assert.InDelta(t, 50.00, report.Rows[0].Difference, 0.0001)
}

func TestCheckDuplicateKeys(t *testing.T) {
	e := enrichedFixture(
		[]EnrichedHeader{
			{InvoiceHeader: InvoiceHeader{AccessKey: "key-b", Number: "2", EmitterName: "B"}},
			{InvoiceHeader: InvoiceHeader{AccessKey: "key-a", Number: "1", EmitterName: "A"}},
			{InvoiceHeader: InvoiceHeader{AccessKey: "key-a", Number: "1", EmitterName: "A"}},
			{InvoiceHeader: InvoiceHeader{AccessKey: "key-c", Number: "3", EmitterName: "C"}},
		},
		nil,
	)

	report := CheckDuplicateKeys(e)

	require.Len(t, report.Rows, 2)
	assert.Equal(t, "key-a", report.Rows[0].AccessKey)
	assert.Equal(t, "key-a", report.Rows[1].AccessKey)
	assert.Equal(t, 1, report.DistinctKeys)

	// Idempotent: running again over the same data yields the same report
	assert.Equal(t, report, CheckDuplicateKeys(e))
}

func TestCheckMissingRegistration(t *testing.T) {
	e := enrichedFixture(
		[]EnrichedHeader{
			{InvoiceHeader: InvoiceHeader{Number: "1", EmitterName: "A", EmitterState: "SP", EmitterRegistrationID: 123456}},
			{InvoiceHeader: InvoiceHeader{Number: "2", EmitterName: "B", EmitterState: "RJ", EmitterRegistrationID: 0}},
		},
		nil,
	)

	report := CheckMissingRegistration(e)

	require.Len(t, report.Rows, 1)
	assert.Equal(t, "2", report.Rows[0].Number)
	assert.Equal(t, "RJ", report.Rows[0].EmitterState)
	assert.Equal(t, 1, report.Count)
}

func TestCheckMultiStateRecipients(t *testing.T) {
	e := enrichedFixture(
		[]EnrichedHeader{
			{InvoiceHeader: InvoiceHeader{RecipientTaxID: "11.111", RecipientName: "Multi", RecipientState: "SP"}},
			{InvoiceHeader: InvoiceHeader{RecipientTaxID: "11.111", RecipientName: "Multi", RecipientState: "RJ"}},
			{InvoiceHeader: InvoiceHeader{RecipientTaxID: "22.222", RecipientName: "Single", RecipientState: "MG"}},
			{InvoiceHeader: InvoiceHeader{RecipientTaxID: "22.222", RecipientName: "Single", RecipientState: "MG"}},
		},
		nil,
	)

	report := CheckMultiStateRecipients(e)

	require.Len(t, report.Rows, 2)
	for _, row := range report.Rows {
		assert.Equal(t, "11.111", row.RecipientTaxID)
	}
	assert.Equal(t, 1, report.DistinctTaxIDs)
}

func TestAuditChecksOnNilInput(t *testing.T) {
	report := RunAudit(nil)

	assert.Empty(t, report.ValueMismatches.Rows)
	assert.Empty(t, report.DuplicateKeys.Rows)
	assert.Empty(t, report.MissingRegistrations.Rows)
	assert.Empty(t, report.MultiStateRecipients.Rows)
	assert.NotNil(t, report.ValueMismatches.Rows)
	assert.NotNil(t, report.DuplicateKeys.Rows)
	assert.NotNil(t, report.MissingRegistrations.Rows)
	assert.NotNil(t, report.MultiStateRecipients.Rows)
}
