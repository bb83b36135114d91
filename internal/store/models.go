package store

import "time"

// NfeHeader represents the 'nfe_headers' table. Value and date columns are
// stored as text exactly as exported by the source files; coercion to
// numeric types happens at the analysis boundary.
type NfeHeader struct {
	ID                    int64     `db:"id"`
	PeriodKey             string    `db:"period_key"`
	AccessKey             string    `db:"access_key"`
	Model                 string    `db:"model"`
	Series                string    `db:"series"`
	Number                string    `db:"number"`
	OperationNature       string    `db:"operation_nature"`
	IssueDate             string    `db:"issue_date"`
	LatestEvent           string    `db:"latest_event"`
	EmitterTaxID          string    `db:"emitter_tax_id"`
	EmitterName           string    `db:"emitter_name"`
	EmitterRegistrationID string    `db:"emitter_registration_id"`
	EmitterState          string    `db:"emitter_state"`
	EmitterCity           string    `db:"emitter_city"`
	RecipientTaxID        string    `db:"recipient_tax_id"`
	RecipientName         string    `db:"recipient_name"`
	RecipientState        string    `db:"recipient_state"`
	TotalValue            string    `db:"total_value"`
	InsertedAt            time.Time `db:"inserted_at"`
	UpdatedAt             time.Time `db:"updated_at"`
}

// NfeItem represents the 'nfe_items' table.
type NfeItem struct {
	ID            int64     `db:"id"`
	PeriodKey     string    `db:"period_key"`
	AccessKey     string    `db:"access_key"`
	ProductNumber string    `db:"product_number"`
	Description   string    `db:"description"`
	NcmCode       string    `db:"ncm_code"`
	CfopCode      string    `db:"cfop_code"`
	Quantity      string    `db:"quantity"`
	UnitValue     string    `db:"unit_value"`
	TotalValue    string    `db:"total_value"`
	InsertedAt    time.Time `db:"inserted_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// PisCofinsRate represents the 'pis_cofins_rates' table.
type PisCofinsRate struct {
	ID    int64   `db:"id"`
	Tax   string  `db:"tax"`
	Value float64 `db:"value"`
	Rule  string  `db:"rule"`
}

// IcmsRate represents the 'icms_rates' table, one row per state.
type IcmsRate struct {
	ID        int64   `db:"id"`
	StateName string  `db:"state_name"`
	StateCode string  `db:"state_code"`
	Rate      float64 `db:"rate"`
}

// NcmRate represents the 'ncm_rates' table, one row per NCM code.
type NcmRate struct {
	ID          int64   `db:"id"`
	NcmCode     string  `db:"ncm_code"`
	Description string  `db:"description"`
	Rate        float64 `db:"rate"`
}

// IngestionHistory represents the 'ingestion_history' table.
type IngestionHistory struct {
	ID          int64     `db:"id" json:"id"`
	PeriodKey   string    `db:"period_key" json:"period_key"`
	SourceFile  string    `db:"source_file" json:"source_file"`
	FileFormat  string    `db:"file_format" json:"file_format"`
	TriggerType string    `db:"trigger_type" json:"trigger_type"`
	Status      string    `db:"status" json:"status"`
	RowsLoaded  int64     `db:"rows_loaded" json:"rows_loaded"`
	ProcessedAt time.Time `db:"processed_at" json:"processed_at"`
}
