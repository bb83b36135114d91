package fiscal

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/fiscalia/nfe-insights/internal/fiscal/utils"
)

// Summary holds the dashboard KPIs. Empty groups report zero, not an error.
type Summary struct {
	TotalInvoiced          float64 `json:"total_invoiced"`
	TotalTax               float64 `json:"total_tax"`
	InvoiceCount           int     `json:"invoice_count"`
	AverageValue           float64 `json:"average_value"`
	AverageInternalValue   float64 `json:"average_internal_value"`
	AverageInterstateValue float64 `json:"average_interstate_value"`
	AverageItemsPerInvoice float64 `json:"average_items_per_invoice"`
	CancelledOrRejectedPct float64 `json:"cancelled_or_rejected_pct"`
}

// Summarize computes the KPI block over the enriched dataset.
func Summarize(e *EnrichedDataset) Summary {
	var s Summary
	if e == nil || len(e.Headers) == 0 {
		return s
	}

	var internalSum, interstateSum float64
	var internalCount, interstateCount, anomalies int
	for _, h := range e.Headers {
		s.TotalInvoiced += h.TotalValue
		s.TotalTax += h.TotalTax

		switch h.OperationType {
		case OperationInternal:
			internalSum += h.TotalValue
			internalCount++
		case OperationInterstate:
			interstateSum += h.TotalValue
			interstateCount++
		}

		event := strings.ToLower(h.LatestEvent)
		if strings.Contains(event, "cancelada") || strings.Contains(event, "rejeitada") {
			anomalies++
		}
	}

	s.InvoiceCount = len(e.Headers)
	s.AverageValue = s.TotalInvoiced / float64(s.InvoiceCount)
	if internalCount > 0 {
		s.AverageInternalValue = internalSum / float64(internalCount)
	}
	if interstateCount > 0 {
		s.AverageInterstateValue = interstateSum / float64(interstateCount)
	}
	s.CancelledOrRejectedPct = float64(anomalies) / float64(s.InvoiceCount) * 100

	// Mean item count over the documents that actually have items
	itemCounts := make(map[string]int)
	for _, item := range e.Items {
		itemCounts[item.AccessKey]++
	}
	if len(itemCounts) > 0 {
		total := 0
		for _, c := range itemCounts {
			total += c
		}
		s.AverageItemsPerInvoice = float64(total) / float64(len(itemCounts))
	}

	return s
}

// RankingEntry is one row of a Top-N ranking.
type RankingEntry struct {
	Name           string  `json:"name"`
	Value          float64 `json:"value"`
	FormattedValue string  `json:"formatted_value,omitempty"`
}

func topN(totals map[string]float64, n int) []RankingEntry {
	entries := make([]RankingEntry, 0, len(totals))
	for name, value := range totals {
		entries = append(entries, RankingEntry{Name: name, Value: value})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Name < entries[j].Name
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	for i := range entries {
		entries[i].FormattedValue = utils.FormatBRL(entries[i].Value)
	}
	return entries
}

// TopRecipientsByValue ranks recipients by total invoiced value.
func TopRecipientsByValue(e *EnrichedDataset, n int) []RankingEntry {
	if e == nil {
		return []RankingEntry{}
	}
	totals := make(map[string]float64)
	for _, h := range e.Headers {
		totals[h.RecipientName] += h.TotalValue
	}
	return topN(totals, n)
}

// TopRecipientsByTax ranks recipients by combined tax contribution.
func TopRecipientsByTax(e *EnrichedDataset, n int) []RankingEntry {
	if e == nil {
		return []RankingEntry{}
	}
	totals := make(map[string]float64)
	for _, h := range e.Headers {
		totals[h.RecipientName] += h.TotalTax
	}
	return topN(totals, n)
}

// TopProductsByValue ranks products/services by summed item value.
func TopProductsByValue(e *EnrichedDataset, n int) []RankingEntry {
	if e == nil {
		return []RankingEntry{}
	}
	totals := make(map[string]float64)
	for _, item := range e.Items {
		totals[item.Description] += item.TotalValue
	}
	return topN(totals, n)
}

// TopProductsByQuantity ranks products/services by summed quantity.
func TopProductsByQuantity(e *EnrichedDataset, n int) []RankingEntry {
	if e == nil {
		return []RankingEntry{}
	}
	totals := make(map[string]float64)
	for _, item := range e.Items {
		totals[item.Description] += item.Quantity
	}
	entries := topN(totals, n)
	for i := range entries {
		entries[i].FormattedValue = ""
	}
	return entries
}

// DistributionEntry is one label/count row of a categorical distribution.
type DistributionEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

func topCounts(counts map[string]int, n int) []DistributionEntry {
	entries := make([]DistributionEntry, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, DistributionEntry{Label: label, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})

	if n > 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// CfopTable maps a CFOP code (integer-normalized string) to its description.
type CfopTable map[string]string

// Describe returns the truncated description for an item's CFOP code.
func (t CfopTable) Describe(cfopCode string) string {
	key := utils.FormatInt(utils.NormalizeNCM(cfopCode))
	desc, ok := t[key]
	if !ok || desc == "" {
		return "CFOP não encontrado"
	}
	if runes := []rune(desc); len(runes) > 40 {
		desc = string(runes[:40]) + "..."
	}
	return desc
}

// CfopDistribution counts items per CFOP description. With a nil table the
// raw codes are used as labels.
func CfopDistribution(e *EnrichedDataset, table CfopTable, n int) []DistributionEntry {
	if e == nil {
		return []DistributionEntry{}
	}
	counts := make(map[string]int)
	for _, item := range e.Items {
		label := item.CFOPCode
		if table != nil {
			label = table.Describe(item.CFOPCode)
		}
		counts[label]++
	}
	return topCounts(counts, n)
}

// OperationNatureDistribution counts headers per operation nature, with
// every "VENDA" variant collapsed into a single sales bucket.
func OperationNatureDistribution(e *EnrichedDataset, n int) []DistributionEntry {
	if e == nil {
		return []DistributionEntry{}
	}
	counts := make(map[string]int)
	for _, h := range e.Headers {
		nature := strings.ToUpper(h.OperationNature)
		if strings.Contains(nature, "VENDA") {
			nature = "VENDAS GERAIS"
		}
		counts[nature]++
	}
	return topCounts(counts, n)
}

// OperationTypeDistribution counts internal vs interstate headers.
func OperationTypeDistribution(e *EnrichedDataset) []DistributionEntry {
	if e == nil {
		return []DistributionEntry{}
	}
	counts := make(map[string]int)
	for _, h := range e.Headers {
		counts[string(h.OperationType)]++
	}
	return topCounts(counts, 0)
}

// MonthlyRollup is one period row of the monthly operations report.
type MonthlyRollup struct {
	Period           string  `json:"period"`
	InvoiceCount     int     `json:"invoice_count"`
	TotalValue       float64 `json:"total_value"`
	AverageItemCount float64 `json:"average_item_count"`
}

// MonthlyReport groups headers by their ingestion period key, most recent
// period first. Documents without items count as zero items.
func MonthlyReport(e *EnrichedDataset) []MonthlyRollup {
	if e == nil {
		return []MonthlyRollup{}
	}

	itemCounts := make(map[string]int)
	for _, item := range e.Items {
		itemCounts[item.AccessKey]++
	}

	type acc struct {
		count int
		total float64
		items int
	}
	byPeriod := make(map[string]*acc)
	for _, h := range e.Headers {
		a := byPeriod[h.PeriodKey]
		if a == nil {
			a = &acc{}
			byPeriod[h.PeriodKey] = a
		}
		a.count++
		a.total += h.TotalValue
		a.items += itemCounts[h.AccessKey]
	}

	rollups := make([]MonthlyRollup, 0, len(byPeriod))
	for period, a := range byPeriod {
		rollups = append(rollups, MonthlyRollup{
			Period:           period,
			InvoiceCount:     a.count,
			TotalValue:       a.total,
			AverageItemCount: float64(a.items) / float64(a.count),
		})
	}

	sort.Slice(rollups, func(i, j int) bool {
		return rollups[i].Period > rollups[j].Period
	})
	return rollups
}

// StateFlow is the summed value moved from one emitter state to one
// recipient state, the feed for the origin/destination heat map.
type StateFlow struct {
	EmitterState   string  `json:"emitter_state"`
	RecipientState string  `json:"recipient_state"`
	TotalValue     float64 `json:"total_value"`
}

// StateFlows aggregates invoiced value per emitter/recipient state pair.
func StateFlows(e *EnrichedDataset) []StateFlow {
	if e == nil {
		return []StateFlow{}
	}

	type pair struct{ emitter, recipient string }
	totals := make(map[pair]float64)
	for _, h := range e.Headers {
		totals[pair{h.EmitterState, h.RecipientState}] += h.TotalValue
	}

	flows := make([]StateFlow, 0, len(totals))
	for p, total := range totals {
		flows = append(flows, StateFlow{
			EmitterState:   p.emitter,
			RecipientState: p.recipient,
			TotalValue:     total,
		})
	}

	sort.Slice(flows, func(i, j int) bool {
		if flows[i].EmitterState != flows[j].EmitterState {
			return flows[i].EmitterState < flows[j].EmitterState
		}
		return flows[i].RecipientState < flows[j].RecipientState
	})
	return flows
}

// OutlierRow is a header whose declared value sits above the outlier bound.
type OutlierRow struct {
	AccessKey  string  `json:"access_key"`
	Number     string  `json:"number"`
	TotalValue float64 `json:"total_value"`
}

// OutlierReport lists invoices above mean + 3 standard deviations of the
// declared value, a cheap screen for typos and atypical operations.
type OutlierReport struct {
	Mean       float64      `json:"mean"`
	StdDev     float64      `json:"std_dev"`
	UpperBound float64      `json:"upper_bound"`
	Rows       []OutlierRow `json:"rows"`
}

// ValueOutliers computes the 3-sigma upper bound and the headers above it.
func ValueOutliers(e *EnrichedDataset) OutlierReport {
	report := OutlierReport{Rows: []OutlierRow{}}
	if e == nil || len(e.Headers) == 0 {
		return report
	}

	values := make([]float64, len(e.Headers))
	for i, h := range e.Headers {
		values[i] = h.TotalValue
	}

	report.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		report.StdDev = stat.StdDev(values, nil)
	}
	report.UpperBound = report.Mean + 3*report.StdDev

	for _, h := range e.Headers {
		if h.TotalValue > report.UpperBound {
			report.Rows = append(report.Rows, OutlierRow{
				AccessKey:  h.AccessKey,
				Number:     h.Number,
				TotalValue: h.TotalValue,
			})
		}
	}
	return report
}
