package main

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/fiscalia/nfe-insights/internal/fiscal"
	"github.com/fiscalia/nfe-insights/internal/fiscal/load"
	"github.com/fiscalia/nfe-insights/internal/response"
)

// analysisCache memoizes the result of one analysis pass. A new ingestion
// invalidates it; the next read rebuilds from the database.
type analysisCache struct {
	mu      sync.RWMutex
	current *fiscal.Analysis
}

func (c *analysisCache) get() *fiscal.Analysis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current
}

func (c *analysisCache) set(a *fiscal.Analysis) {
	c.mu.Lock()
	c.current = a
	c.mu.Unlock()
}

func (c *analysisCache) Invalidate() {
	c.mu.Lock()
	c.current = nil
	c.mu.Unlock()
}

// getAnalysis returns the cached analysis, rebuilding it from the stored
// tables when the cache is cold.
func (app *application) getAnalysis(ctx context.Context) (*fiscal.Analysis, error) {
	if a := app.analysis.get(); a != nil {
		return a, nil
	}

	ds, err := load.DatasetFromStore(ctx, &app.store)
	if err != nil {
		return nil, err
	}

	a, err := fiscal.Analyze(ds)
	if err != nil {
		return nil, err
	}

	app.analysis.set(a)
	return a, nil
}

// writeAnalysisError maps the empty-dataset case to 404 and everything else
// to 500.
func writeAnalysisError(w http.ResponseWriter, err error) {
	if errors.Is(err, fiscal.ErrNoData) {
		writeJSONError(w, http.StatusNotFound, "no invoice data available, load a period first")
		return
	}
	writeJSONError(w, http.StatusInternalServerError, "failed to build analysis: "+err.Error())
}

type RefreshAnalysisResponse = response.APIResponse[*fiscal.Analysis]

// @Summary		Refresh analysis
// @Description	Discards the cached analysis and rebuilds it from the database.
// @Tags			Analysis
// @Produce		json
// @Success		200	{object}	RefreshAnalysisResponse	"Analysis rebuilt"
// @Failure		404	{object}	response.ErrorResponse	"No invoice data loaded"
// @Failure		500	{object}	response.ErrorResponse	"Failed to rebuild analysis"
// @Router			/analysis/refresh [post]
func (app *application) handleRefreshAnalysis(w http.ResponseWriter, r *http.Request) {
	app.analysis.Invalidate()

	data, err := app.getAnalysis(r.Context())
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	response := &RefreshAnalysisResponse{
		Success: true,
		Data:    data,
		Message: "Analysis rebuilt",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
