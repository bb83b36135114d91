package fiscal

import "time"

// OperationType tells whether an invoice stayed inside the emitter's state.
type OperationType string

const (
	OperationInternal   OperationType = "Interna"
	OperationInterstate OperationType = "Interestadual"
)

// InvoiceHeader is one fiscal document (NF-e) as seen by the analysis pass.
// Numeric fields are already coerced at the ingestion boundary; an
// EmitterRegistrationID of zero means the emitter state registration (IE)
// is absent.
type InvoiceHeader struct {
	AccessKey             string    `json:"access_key"`
	Model                 string    `json:"model"`
	Series                string    `json:"series"`
	Number                string    `json:"number"`
	OperationNature       string    `json:"operation_nature"`
	IssueDate             time.Time `json:"issue_date"`
	LatestEvent           string    `json:"latest_event"`
	EmitterTaxID          string    `json:"emitter_tax_id"`
	EmitterName           string    `json:"emitter_name"`
	EmitterRegistrationID int64     `json:"emitter_registration_id"`
	EmitterState          string    `json:"emitter_state"`
	EmitterCity           string    `json:"emitter_city"`
	RecipientTaxID        string    `json:"recipient_tax_id"`
	RecipientName         string    `json:"recipient_name"`
	RecipientState        string    `json:"recipient_state"`
	TotalValue            float64   `json:"total_value"`
	PeriodKey             string    `json:"period_key"`
}

// InvoiceItem is one line item; many items share a header's access key.
type InvoiceItem struct {
	AccessKey     string  `json:"access_key"`
	ProductNumber string  `json:"product_number"`
	Description   string  `json:"description"`
	NCMCode       string  `json:"ncm_code"`
	CFOPCode      string  `json:"cfop_code"`
	Quantity      float64 `json:"quantity"`
	UnitValue     float64 `json:"unit_value"`
	TotalValue    float64 `json:"total_value"`
}

// PisCofinsRate is a flat national rate row; the mean over all rows applies
// to every invoice.
type PisCofinsRate struct {
	Tax   string  `json:"tax"`
	Value float64 `json:"value"`
	Rule  string  `json:"rule"`
}

// IcmsRate is the state-level rate keyed by the emitter's state code.
type IcmsRate struct {
	StateName string  `json:"state_name"`
	StateCode string  `json:"state_code"`
	Rate      float64 `json:"rate"`
}

// NcmRate is the IPI rate keyed by product classification (NCM) code.
type NcmRate struct {
	NCMCode     string  `json:"ncm_code"`
	Description string  `json:"description"`
	Rate        float64 `json:"rate"`
}

// QualityFlag records a raw value that could not be parsed and was coerced
// to zero. Flags are advisory and never alter the tax math.
type QualityFlag struct {
	AccessKey string `json:"access_key"`
	Column    string `json:"column"`
	RawValue  string `json:"raw_value"`
}

// Dataset is the full tabular input of one analysis pass. The pass owns it
// by value; concurrent passes must build their own copies.
type Dataset struct {
	Headers   []InvoiceHeader
	Items     []InvoiceItem
	PisCofins []PisCofinsRate
	Icms      []IcmsRate
	Ncm       []NcmRate
	Quality   []QualityFlag
}

// EnrichedHeader carries the combined tax total and the operation type on
// top of the raw header. Per-component amounts are not retained.
type EnrichedHeader struct {
	InvoiceHeader
	TotalTax      float64       `json:"total_tax"`
	OperationType OperationType `json:"operation_type"`
}

// EnrichedItem carries the item-level IPI contribution.
type EnrichedItem struct {
	InvoiceItem
	IPIAmount float64 `json:"ipi_amount"`
}

// EnrichedDataset is the output of the enrichment pass, consumed by the
// audit engine and the aggregation reporter.
type EnrichedDataset struct {
	Headers []EnrichedHeader
	Items   []EnrichedItem
}
