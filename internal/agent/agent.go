package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Answer is one reply from the fiscal expert agent. Text carries the
// markdown answer; GraphData is set instead when the agent answered with
// chartable rows.
type Answer struct {
	Text      string           `json:"text,omitempty"`
	GraphData []map[string]any `json:"graph_data,omitempty"`
}

// Agent answers free-form questions over the fiscal database.
type Agent interface {
	Ask(ctx context.Context, question string) (Answer, error)
}

// HTTPAgent talks to an external agent service: POST {"question": ...},
// expect {"output": ...} back.
type HTTPAgent struct {
	URL    string
	Client *http.Client
}

func NewHTTPAgent(url string) *HTTPAgent {
	return &HTTPAgent{
		URL:    url,
		Client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (a *HTTPAgent) Ask(ctx context.Context, question string) (Answer, error) {
	payload, err := json.Marshal(map[string]string{"question": question})
	if err != nil {
		return Answer{}, fmt.Errorf("failed to encode question: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.URL, bytes.NewReader(payload))
	if err != nil {
		return Answer{}, fmt.Errorf("failed to create agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.Client.Do(req)
	if err != nil {
		return Answer{}, fmt.Errorf("agent request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Answer{}, fmt.Errorf("agent returned status %d", resp.StatusCode)
	}

	var body struct {
		Output string `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Answer{}, fmt.Errorf("failed to decode agent response: %w", err)
	}

	return ClassifyOutput(body.Output), nil
}

// ClassifyOutput decides whether the agent's raw output is chartable. Two
// shapes count: {"graph_data": [...]} and a bare array of objects. Anything
// else, including JSON that does not match those shapes, stays text.
func ClassifyOutput(output string) Answer {
	trimmed := strings.TrimSpace(output)

	if strings.HasPrefix(trimmed, "{") {
		var wrapper struct {
			GraphData []map[string]any `json:"graph_data"`
		}
		if err := json.Unmarshal([]byte(trimmed), &wrapper); err == nil && len(wrapper.GraphData) > 0 {
			return Answer{GraphData: wrapper.GraphData}
		}
	}

	if strings.HasPrefix(trimmed, "[") {
		var rows []map[string]any
		if err := json.Unmarshal([]byte(trimmed), &rows); err == nil && len(rows) > 0 {
			return Answer{GraphData: rows}
		}
	}

	return Answer{Text: output}
}
