package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyOutput(t *testing.T) {
	t.Run("graph_data wrapper", func(t *testing.T) {
		answer := ClassifyOutput(`{"graph_data": [{"destinatario": "Alfa", "valor": 100.5}]}`)

		require.Len(t, answer.GraphData, 1)
		assert.Equal(t, "Alfa", answer.GraphData[0]["destinatario"])
		assert.Empty(t, answer.Text)
	})

	t.Run("bare object array", func(t *testing.T) {
		answer := ClassifyOutput(`[{"uf": "SP", "total": 10}, {"uf": "RJ", "total": 5}]`)

		assert.Len(t, answer.GraphData, 2)
		assert.Empty(t, answer.Text)
	})

	t.Run("plain text stays text", func(t *testing.T) {
		answer := ClassifyOutput("O faturamento total foi de **R$ 1.234,56**.")

		assert.Empty(t, answer.GraphData)
		assert.Equal(t, "O faturamento total foi de **R$ 1.234,56**.", answer.Text)
	})

	t.Run("json without graph_data stays text", func(t *testing.T) {
		answer := ClassifyOutput(`{"resposta": "sem dados"}`)

		assert.Empty(t, answer.GraphData)
		assert.Equal(t, `{"resposta": "sem dados"}`, answer.Text)
	})

	t.Run("malformed json stays text", func(t *testing.T) {
		answer := ClassifyOutput(`{"graph_data": [`)

		assert.Empty(t, answer.GraphData)
		assert.NotEmpty(t, answer.Text)
	})

	t.Run("leading whitespace is tolerated", func(t *testing.T) {
		answer := ClassifyOutput("  \n[{\"a\": 1}]")

		assert.Len(t, answer.GraphData, 1)
	})
}

func TestHTTPAgentAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body struct {
			Question string `json:"question"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "qual o total faturado?", body.Question)

		json.NewEncoder(w).Encode(map[string]string{"output": "R$ 1.000,00 no total."})
	}))
	defer srv.Close()

	a := NewHTTPAgent(srv.URL)
	answer, err := a.Ask(context.Background(), "qual o total faturado?")

	require.NoError(t, err)
	assert.Equal(t, "R$ 1.000,00 no total.", answer.Text)
	assert.Empty(t, answer.GraphData)
}

func TestHTTPAgentAskNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := NewHTTPAgent(srv.URL)
	_, err := a.Ask(context.Background(), "pergunta")

	assert.Error(t, err)
}
