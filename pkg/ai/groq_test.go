package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

func groqServer(t *testing.T, reply string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/openai/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Len(t, req.Messages, 2)

		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{{"message": map[string]string{"content": reply}}},
		})
	}))
}

func TestGroqSummarize(t *testing.T) {
	ts := groqServer(t, "  The team reviewed the launch.  ", http.StatusOK)
	defer ts.Close()

	g := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	out, err := g.Summarize(context.Background(), "long transcript")
	require.NoError(t, err)
	assert.Equal(t, "The team reviewed the launch.", out)
}

func TestGroqClassifyNormalizesLabel(t *testing.T) {
	ts := groqServer(t, "Urgent Issue.", http.StatusOK)
	defer ts.Close()

	g := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	label, err := g.Classify(context.Background(), "Fix the outage", []string{"urgent issue", "strategic discussion", "general information"})
	require.NoError(t, err)
	assert.Equal(t, "urgent issue", label)
}

func TestGroqClassifyRejectsUnknownLabel(t *testing.T) {
	ts := groqServer(t, "banana", http.StatusOK)
	defer ts.Close()

	g := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	_, err := g.Classify(context.Background(), "x", []string{"a", "b"})
	assert.Error(t, err)
}

func TestGroqClassifyIgnoresLabelInsideSentence(t *testing.T) {
	ts := groqServer(t, "This is not an urgent issue; it is general information", http.StatusOK)
	defer ts.Close()

	g := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	_, err := g.Classify(context.Background(), "Team lunch", []string{"urgent issue", "strategic discussion", "general information"})
	assert.Error(t, err)
}

func TestGroqClassifyAcceptsLeadingLabel(t *testing.T) {
	ts := groqServer(t, "Strategic discussion: roadmap planning", http.StatusOK)
	defer ts.Close()

	g := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	labels := []string{"urgent issue", "strategic discussion", "general information"}
	label, err := g.Classify(context.Background(), "Plan the roadmap", labels)
	require.NoError(t, err)
	assert.Equal(t, "strategic discussion", label)

	ts2 := groqServer(t, "ab", http.StatusOK)
	defer ts2.Close()
	g2 := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts2.URL})
	_, err = g2.Classify(context.Background(), "x", []string{"a", "b"})
	assert.Error(t, err)
}

func TestGroqErrorStatus(t *testing.T) {
	ts := groqServer(t, "", http.StatusTooManyRequests)
	defer ts.Close()

	g := NewGroqClient(&config.GroqConfig{APIKey: "test-key", BaseURL: ts.URL})
	_, err := g.Title(context.Background(), []string{"Budget"})
	assert.ErrorContains(t, err, "429")
}

func TestExtractiveSummarizerKeepsOrder(t *testing.T) {
	s := NewExtractiveSummarizer(2)
	text := "Budget review is due. Weather was nice. Budget owners will review the budget. Lunch happened."
	out, err := s.Summarize(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, "Budget review is due. Budget owners will review the budget.", out)
}
