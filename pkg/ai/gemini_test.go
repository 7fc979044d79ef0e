package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarizeConversation(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		assert.NoError(t, json.Unmarshal(body, &payload))
		gotPrompt = payload.Contents[0].Parts[0].Text

		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"The team shipped the release."}]}}]}`)
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithURL("test-key", srv.URL)
	summary, err := svc.SummarizeConversation(context.Background(), "alice: shipped", "Focus on decisions.", "releases")

	assert.NoError(t, err)
	assert.Equal(t, "The team shipped the release.", summary)
	assert.Contains(t, gotPrompt, "#releases")
	assert.Contains(t, gotPrompt, "Focus on decisions.")
	assert.Contains(t, gotPrompt, "alice: shipped")
}

func TestSummarizeConversationDefaultInstruction(t *testing.T) {
	var gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		var payload struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		_ = json.Unmarshal(body, &payload)
		gotPrompt = payload.Contents[0].Parts[0].Text
		fmt.Fprint(w, `{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`)
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithURL("test-key", srv.URL)
	_, err := svc.SummarizeConversation(context.Background(), "alice: hi", "", "general")

	assert.NoError(t, err)
	assert.Contains(t, gotPrompt, "CRM note")
}

func TestSummarizeConversationAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		fmt.Fprint(w, `{"error":{"message":"quota"}}`)
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithURL("test-key", srv.URL)
	_, err := svc.SummarizeConversation(context.Background(), "m", "", "c")

	assert.ErrorContains(t, err, "quota")
}

func TestSummarizeConversationEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	svc := NewGeminiServiceWithURL("test-key", srv.URL)
	_, err := svc.SummarizeConversation(context.Background(), "m", "", "c")

	assert.ErrorContains(t, err, "no summary returned")
}
