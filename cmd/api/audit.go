package main

import (
	"net/http"

	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/response"
)

type GetAuditReportResponse = response.APIResponse[fiscal.AuditReport]

// @Summary		Get audit report
// @Description	Get the four consistency checks: value mismatches, duplicate keys, missing registrations and multi-state recipients.
// @Tags			Audit
// @Produce		json
// @Success		200	{object}	GetAuditReportResponse	"Successfully retrieved audit report"
// @Failure		404	{object}	response.ErrorResponse	"No invoice data loaded"
// @Failure		500	{object}	response.ErrorResponse	"Failed to build analysis"
// @Router			/audit [get]
func (app *application) handleGetAuditReport(w http.ResponseWriter, r *http.Request) {
	analysis, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response := &GetAuditReportResponse{
		Success: true,
		Data:    analysis.Audit,
		Message: "Successfully retrieved audit report",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
