package fiscal

import "time"

// Analysis is the result of one synchronous pass over a dataset: the
// enriched tables plus everything the presentation layer reads. It replaces
// the old process-wide memoized results; callers that want caching keep a
// key to *Analysis mapping of their own and invalidate it when a new
// ingestion completes.
type Analysis struct {
	Enriched    *EnrichedDataset `json:"-"`
	Audit       AuditReport      `json:"audit"`
	Summary     Summary          `json:"summary"`
	Monthly     []MonthlyRollup  `json:"monthly"`
	Quality     []QualityFlag    `json:"quality"`
	GeneratedAt time.Time        `json:"generated_at"`
}

// Analyze runs enrichment, the audit battery and the KPI summary over one
// dataset. It only fails when the header or item table is absent; data
// quality problems degrade to zeros and surface as quality flags.
func Analyze(ds Dataset) (*Analysis, error) {
	enriched, err := Enrich(ds)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Enriched:    enriched,
		Audit:       RunAudit(enriched),
		Summary:     Summarize(enriched),
		Monthly:     MonthlyReport(enriched),
		Quality:     ds.Quality,
		GeneratedAt: time.Now(),
	}, nil
}
