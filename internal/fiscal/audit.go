package fiscal

import "sort"

// ValueTolerance is the absolute difference, in currency minor units,
// above which a declared total is considered inconsistent with its items.
const ValueTolerance = 0.01

type ValueMismatch struct {
	Number        string  `json:"number"`
	DeclaredValue float64 `json:"declared_value"`
	ItemsSum      float64 `json:"items_sum"`
	Difference    float64 `json:"difference"`
}

type ValueMismatchReport struct {
	Rows  []ValueMismatch `json:"rows"`
	Count int             `json:"count"`
}

type DuplicateKeyRow struct {
	AccessKey   string `json:"access_key"`
	Number      string `json:"number"`
	EmitterName string `json:"emitter_name"`
}

type DuplicateKeyReport struct {
	Rows         []DuplicateKeyRow `json:"rows"`
	DistinctKeys int               `json:"distinct_keys"`
}

type MissingRegistrationRow struct {
	Number       string `json:"number"`
	EmitterName  string `json:"emitter_name"`
	EmitterState string `json:"emitter_state"`
}

type MissingRegistrationReport struct {
	Rows  []MissingRegistrationRow `json:"rows"`
	Count int                      `json:"count"`
}

type MultiStateRecipientRow struct {
	RecipientTaxID string `json:"recipient_tax_id"`
	RecipientName  string `json:"recipient_name"`
	RecipientState string `json:"recipient_state"`
}

type MultiStateRecipientReport struct {
	Rows           []MultiStateRecipientRow `json:"rows"`
	DistinctTaxIDs int                      `json:"distinct_tax_ids"`
}

// AuditReport bundles the four consistency checks. Findings are business
// observations surfaced as data, never failures.
type AuditReport struct {
	ValueMismatches      ValueMismatchReport       `json:"value_mismatches"`
	DuplicateKeys        DuplicateKeyReport        `json:"duplicate_keys"`
	MissingRegistrations MissingRegistrationReport `json:"missing_registrations"`
	MultiStateRecipients MultiStateRecipientReport `json:"multi_state_recipients"`
}

// RunAudit runs the full battery. The checks are independent, total and
// idempotent; order does not matter.
func RunAudit(e *EnrichedDataset) AuditReport {
	return AuditReport{
		ValueMismatches:      CheckValueMismatch(e),
		DuplicateKeys:        CheckDuplicateKeys(e),
		MissingRegistrations: CheckMissingRegistration(e),
		MultiStateRecipients: CheckMultiStateRecipients(e),
	}
}

// CheckValueMismatch flags headers whose declared total differs from the
// sum of their item totals by more than the tolerance.
func CheckValueMismatch(e *EnrichedDataset) ValueMismatchReport {
	report := ValueMismatchReport{Rows: []ValueMismatch{}}
	if e == nil {
		return report
	}

	itemSums := make(map[string]float64, len(e.Headers))
	for _, item := range e.Items {
		itemSums[item.AccessKey] += item.TotalValue
	}

	for _, h := range e.Headers {
		diff := h.TotalValue - itemSums[h.AccessKey]
		if diff < 0 {
			diff = -diff
		}
		if diff > ValueTolerance {
			report.Rows = append(report.Rows, ValueMismatch{
				Number:        h.Number,
				DeclaredValue: h.TotalValue,
				ItemsSum:      itemSums[h.AccessKey],
				Difference:    diff,
			})
		}
	}

	report.Count = len(report.Rows)
	return report
}

// CheckDuplicateKeys emits every header row whose access key appears more
// than once, plus the count of distinct duplicated keys.
func CheckDuplicateKeys(e *EnrichedDataset) DuplicateKeyReport {
	report := DuplicateKeyReport{Rows: []DuplicateKeyRow{}}
	if e == nil {
		return report
	}

	occurrences := make(map[string]int, len(e.Headers))
	for _, h := range e.Headers {
		occurrences[h.AccessKey]++
	}

	duplicated := make(map[string]bool)
	for _, h := range e.Headers {
		if occurrences[h.AccessKey] > 1 {
			duplicated[h.AccessKey] = true
			report.Rows = append(report.Rows, DuplicateKeyRow{
				AccessKey:   h.AccessKey,
				Number:      h.Number,
				EmitterName: h.EmitterName,
			})
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].AccessKey < report.Rows[j].AccessKey
	})
	report.DistinctKeys = len(duplicated)
	return report
}

// CheckMissingRegistration flags headers without an emitter state
// registration (IE): absent or zero.
func CheckMissingRegistration(e *EnrichedDataset) MissingRegistrationReport {
	report := MissingRegistrationReport{Rows: []MissingRegistrationRow{}}
	if e == nil {
		return report
	}

	for _, h := range e.Headers {
		if h.EmitterRegistrationID == 0 {
			report.Rows = append(report.Rows, MissingRegistrationRow{
				Number:       h.Number,
				EmitterName:  h.EmitterName,
				EmitterState: h.EmitterState,
			})
		}
	}

	report.Count = len(report.Rows)
	return report
}

// CheckMultiStateRecipients flags recipient tax IDs whose headers span
// more than one recipient state, a possible registration inconsistency.
func CheckMultiStateRecipients(e *EnrichedDataset) MultiStateRecipientReport {
	report := MultiStateRecipientReport{Rows: []MultiStateRecipientRow{}}
	if e == nil {
		return report
	}

	statesByTaxID := make(map[string]map[string]bool)
	for _, h := range e.Headers {
		if statesByTaxID[h.RecipientTaxID] == nil {
			statesByTaxID[h.RecipientTaxID] = make(map[string]bool)
		}
		statesByTaxID[h.RecipientTaxID][h.RecipientState] = true
	}

	flagged := 0
	for _, states := range statesByTaxID {
		if len(states) > 1 {
			flagged++
		}
	}

	for _, h := range e.Headers {
		if len(statesByTaxID[h.RecipientTaxID]) > 1 {
			report.Rows = append(report.Rows, MultiStateRecipientRow{
				RecipientTaxID: h.RecipientTaxID,
				RecipientName:  h.RecipientName,
				RecipientState: h.RecipientState,
			})
		}
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].RecipientTaxID < report.Rows[j].RecipientTaxID
	})
	report.DistinctTaxIDs = flagged
	return report
}
