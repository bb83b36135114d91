package main

import (
	"net/http"

	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/response"
)

type GetDashboardSummaryResponse = response.APIResponse[fiscal.Summary]
type GetMonthlyReportResponse = response.APIResponse[[]fiscal.MonthlyRollup]
type GetStateFlowsResponse = response.APIResponse[[]fiscal.StateFlow]
type GetOutliersResponse = response.APIResponse[fiscal.OutlierReport]

type Rankings struct {
	TopRecipientsByValue  []fiscal.RankingEntry `json:"top_recipients_by_value"`
	TopRecipientsByTax    []fiscal.RankingEntry `json:"top_recipients_by_tax"`
	TopProductsByValue    []fiscal.RankingEntry `json:"top_products_by_value"`
	TopProductsByQuantity []fiscal.RankingEntry `json:"top_products_by_quantity"`
}

type GetRankingsResponse = response.APIResponse[Rankings]

type Distributions struct {
	Cfop            []fiscal.DistributionEntry `json:"cfop"`
	OperationNature []fiscal.DistributionEntry `json:"operation_nature"`
	OperationType   []fiscal.DistributionEntry `json:"operation_type"`
}

type GetDistributionsResponse = response.APIResponse[Distributions]

// @Summary		Get dashboard summary
// @Description	Get the KPI block: totals, averages and anomaly percentage.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	GetDashboardSummaryResponse	"Successfully retrieved summary"
// @Failure		404	{object}	response.ErrorResponse		"No invoice data loaded"
// @Failure		500	{object}	response.ErrorResponse		"Failed to build analysis"
// @Router			/dashboard/summary [get]
func (app *application) handleGetDashboardSummary(w http.ResponseWriter, r *http.Request) {
	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response := &GetDashboardSummaryResponse{
		Success: true,
		Data:    analysis.Summary,
		Message: "Successfully retrieved summary",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get monthly report
// @Description	Get invoice counts, totals and item averages per period.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	GetMonthlyReportResponse	"Successfully retrieved monthly report"
// @Failure		404	{object}	response.ErrorResponse		"No invoice data loaded"
// @Failure		500	{object}	response.ErrorResponse		"Failed to build analysis"
// @Router			/dashboard/monthly [get]
func (app *application) handleGetMonthlyReport(w http.ResponseWriter, r *http.Request) {
	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response := &GetMonthlyReportResponse{
		Success: true,
		Data:    analysis.Monthly,
		Message: "Successfully retrieved monthly report",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get rankings
// @Description	Get the Top-N recipient and product rankings.
// @Tags			Dashboard
// @Produce		json
// @Param			limit	query		int						false	"Number of entries per ranking"	default(10)
// @Success		200		{object}	GetRankingsResponse		"Successfully retrieved rankings"
// @Failure		404		{object}	response.ErrorResponse	"No invoice data loaded"
// @Failure		500		{object}	response.ErrorResponse	"Failed to build analysis"
// @Router			/dashboard/rankings [get]
func (app *application) handleGetRankings(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 10)

	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	data := Rankings{
		TopRecipientsByValue:  fiscal.TopRecipientsByValue(analysis.Enriched, limit),
		TopRecipientsByTax:    fiscal.TopRecipientsByTax(analysis.Enriched, limit),
		TopProductsByValue:    fiscal.TopProductsByValue(analysis.Enriched, limit),
		TopProductsByQuantity: fiscal.TopProductsByQuantity(analysis.Enriched, limit),
	}

	response := &GetRankingsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved rankings",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get distributions
// @Description	Get the CFOP, operation nature and operation type distributions.
// @Tags			Dashboard
// @Produce		json
// @Param			limit	query		int							false	"Number of entries per distribution"	default(10)
// @Success		200		{object}	GetDistributionsResponse	"Successfully retrieved distributions"
// @Failure		404		{object}	response.ErrorResponse		"No invoice data loaded"
// @Failure		500		{object}	response.ErrorResponse		"Failed to build analysis"
// @Router			/dashboard/distributions [get]
func (app *application) handleGetDistributions(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 10)

	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	data := Distributions{
		Cfop:            fiscal.CfopDistribution(analysis.Enriched, app.cfopTable, limit),
		OperationNature: fiscal.OperationNatureDistribution(analysis.Enriched, limit),
		OperationType:   fiscal.OperationTypeDistribution(analysis.Enriched),
	}

	response := &GetDistributionsResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved distributions",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get state flows
// @Description	Get invoiced value aggregated per emitter/recipient state pair.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	GetStateFlowsResponse	"Successfully retrieved state flows"
// @Failure		404	{object}	response.ErrorResponse	"No invoice data loaded"
// @Failure		500	{object}	response.ErrorResponse	"Failed to build analysis"
// @Router			/dashboard/state-flows [get]
func (app *application) handleGetStateFlows(w http.ResponseWriter, r *http.Request) {
	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response := &GetStateFlowsResponse{
		Success: true,
		Data:    fiscal.StateFlows(analysis.Enriched),
		Message: "Successfully retrieved state flows",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Get value outliers
// @Description	Get invoices whose declared value exceeds mean plus three standard deviations.
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	GetOutliersResponse		"Successfully retrieved outliers"
// @Failure		404	{object}	response.ErrorResponse	"No invoice data loaded"
// @Failure		500	{object}	response.ErrorResponse	"Failed to build analysis"
// @Router			/dashboard/outliers [get]
func (app *application) handleGetOutliers(w http.ResponseWriter, r *http.Request) {
	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response := &GetOutliersResponse{
		Success: true,
		Data:    fiscal.ValueOutliers(analysis.Enriched),
		Message: "Successfully retrieved outliers",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
