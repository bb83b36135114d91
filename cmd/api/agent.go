package main

import (
	"net/http"
	"strings"

	"github.com/fiscalia/nfe-insights/internal/agent"
	"github.com/fiscalia/nfe-insights/internal/response"
)

type AskAgentResponse = response.APIResponse[agent.Answer]

// @Summary		Ask the fiscal agent
// @Description	Forwards a free-form question to the external agent service and classifies the reply as text or chartable rows.
// @Tags			Agent
// @Accept			json
// @Produce		json
// @Param			question	body		object{question:string}	true	"Question for the agent"
// @Success		200			{object}	AskAgentResponse		"Agent answered"
// @Failure		400			{object}	response.ErrorResponse	"Invalid request payload or empty question"
// @Failure		502			{object}	response.ErrorResponse	"Agent request failed"
// @Failure		503			{object}	response.ErrorResponse	"Agent not configured"
// @Router			/agent/ask [post]
func (app *application) handleAskAgent(w http.ResponseWriter, r *http.Request) {
	if app.agent == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "agent not configured, set AGENT_URL")
		return
	}

	var input struct {
		Question string `json:"question"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if strings.TrimSpace(input.Question) == "" {
		writeJSONError(w, http.StatusBadRequest, "question must not be empty")
		return
	}

	answer, err := app.agent.Ask(r.Context(), input.Question)
	if err != nil {
		writeJSONError(w, http.StatusBadGateway, "agent request failed: "+err.Error())
		return
	}

	response := &AskAgentResponse{
		Success: true,
		Data:    answer,
		Message: "Agent answered",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
