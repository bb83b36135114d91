package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fiscalia/nfe-insights/internal/response"
	"github.com/fiscalia/nfe-insights/internal/store"
)

type GetIngestionHistoryResponse = response.APIResponse[[]store.IngestionHistory]
type CreateIngestionResponse = response.APIResponse[*store.IngestionHistory]
type UpdateIngestionStatusResponse = response.APIResponse[*struct{}]

// @Summary		Get ingestion history
// @Description	Get a list of the latest ingestion records.
// @Tags			Ingestion
// @Produce		json
// @Param			limit	query		int							false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetIngestionHistoryResponse	"Successfully retrieved latest ingestion records"
// @Failure		500		{object}	response.ErrorResponse		"Failed to get ingestion history"
// @Router			/ingestion/history [get]
func (app *application) handleGetIngestionHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 10)

	ctx := r.Context()
	data, err := app.store.IngestionHistory.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get ingestion history: "+err.Error())
		return
	}

	response := &GetIngestionHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest ingestion records",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Create ingestion record
// @Description	Creates a new ingestion record with running status.
// @Tags			Ingestion
// @Accept			json
// @Produce		json
// @Param			ingestion	body		object{period_key:string,source_file:string,file_format:string,trigger_type:string}	true	"Ingestion record details"
// @Success		201			{object}	CreateIngestionResponse																"Ingestion record initialized"
// @Failure		400			{object}	response.ErrorResponse																"Invalid request payload or missing fields"
// @Failure		500			{object}	response.ErrorResponse																"Failed to create ingestion record"
// @Router			/ingestion [post]
func (app *application) handleCreateIngestion(w http.ResponseWriter, r *http.Request) {
	var input struct {
		PeriodKey   string `json:"period_key"`
		SourceFile  string `json:"source_file"`
		FileFormat  string `json:"file_format"`
		TriggerType string `json:"trigger_type"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if input.PeriodKey == "" || input.TriggerType == "" {
		writeJSONError(w, http.StatusBadRequest, "missing required fields")
		return
	}

	if len(input.PeriodKey) != 6 {
		writeJSONError(w, http.StatusBadRequest, "invalid period_key format (AAAAMM expected)")
		return
	}

	history := &store.IngestionHistory{
		PeriodKey:   input.PeriodKey,
		SourceFile:  input.SourceFile,
		FileFormat:  input.FileFormat,
		TriggerType: input.TriggerType,
		Status:      store.IngestionStatusRunning,
	}

	ctx := r.Context()
	if err := app.store.IngestionHistory.InsertIngestionHistory(ctx, history); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create ingestion record: "+err.Error())
		return
	}

	response := &CreateIngestionResponse{
		Success: true,
		Data:    history,
		Message: "Ingestion record initialized with running status",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Update ingestion status
// @Description	Marks an ingestion record as success or failed. A successful ingestion invalidates the cached analysis.
// @Tags			Ingestion
// @Accept			json
// @Produce		json
// @Param			id		path		int								true	"Ingestion record ID"
// @Param			status	body		object{status:string}			true	"New status"
// @Success		200		{object}	UpdateIngestionStatusResponse	"Status updated"
// @Failure		400		{object}	response.ErrorResponse			"Invalid request payload or status"
// @Failure		500		{object}	response.ErrorResponse			"Failed to update status"
// @Router			/ingestion/{id}/status [patch]
func (app *application) handleUpdateIngestionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid ingestion id")
		return
	}

	var input struct {
		Status string `json:"status"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	switch input.Status {
	case store.IngestionStatusRunning, store.IngestionStatusSuccess, store.IngestionStatusFailed:
	default:
		writeJSONError(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx := r.Context()
	if err := app.store.IngestionHistory.UpdateIngestionStatus(ctx, id, input.Status); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to update ingestion status: "+err.Error())
		return
	}

	if input.Status == store.IngestionStatusSuccess {
		app.analysis.Invalidate()
	}

	response := &UpdateIngestionStatusResponse{
		Success: true,
		Message: "Status updated",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
