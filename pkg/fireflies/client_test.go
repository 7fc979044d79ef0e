package fireflies

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

func TestGetTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer ff-key", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var query struct {
			Query     string            `json:"query"`
			Variables map[string]string `json:"variables"`
		}
		assert.NoError(t, json.Unmarshal(body, &query))
		assert.Contains(t, query.Query, "transcript(id: $id)")
		assert.Equal(t, "m-1", query.Variables["id"])

		fmt.Fprint(w, `{"data":{"transcript":{"id":"m-1","title":"Kickoff","summary":{"overview":"Plan agreed."}}}}`)
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("ff-key", srv.URL)
	transcript, err := c.GetTranscript(context.Background(), "m-1")

	assert.NoError(t, err)
	assert.Equal(t, &Transcript{ID: "m-1", Title: "Kickoff", Overview: "Plan agreed."}, transcript)
}

func TestGetTranscriptGraphQLError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"object not found"}]}`)
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("ff-key", srv.URL)
	_, err := c.GetTranscript(context.Background(), "m-404")

	assert.ErrorContains(t, err, "object not found")
}

func TestGetTranscriptMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"transcript":{"id":"","title":""}}}`)
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("ff-key", srv.URL)
	_, err := c.GetTranscript(context.Background(), "m-404")

	assert.ErrorContains(t, err, "not found")
}

func TestGetTranscriptHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprint(w, "bad key")
	}))
	defer srv.Close()

	c := NewClientWithEndpoint("ff-key", srv.URL)
	_, err := c.GetTranscript(context.Background(), "m-1")

	assert.ErrorContains(t, err, "401")
}
