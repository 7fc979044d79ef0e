package fireflies

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultEndpoint = "https://api.fireflies.ai/graphql"

// Transcript is the subset of a Fireflies transcript the webhook processor needs.
type Transcript struct {
	ID       string
	Title    string
	Overview string
}

// Client fetches meeting transcripts from the Fireflies GraphQL API.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithEndpoint is used by tests to point at a fake server.
func NewClientWithEndpoint(apiKey, endpoint string) *Client {
	c := NewClient(apiKey)
	c.endpoint = endpoint
	return c
}

// GetTranscript fetches the transcript title and AI overview for a meeting.
func (c *Client) GetTranscript(ctx context.Context, meetingID string) (*Transcript, error) {
	query := map[string]interface{}{
		"query": `query Transcript($id: String!) {
			transcript(id: $id) {
				id
				title
				summary { overview }
			}
		}`,
		"variables": map[string]string{"id": meetingID},
	}

	body, _ := json.Marshal(query)
	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Fireflies API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result struct {
		Data struct {
			Transcript struct {
				ID      string `json:"id"`
				Title   string `json:"title"`
				Summary struct {
					Overview string `json:"overview"`
				} `json:"summary"`
			} `json:"transcript"`
		} `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, err
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("Fireflies API error: %s", result.Errors[0].Message)
	}
	if result.Data.Transcript.ID == "" {
		return nil, fmt.Errorf("transcript %s not found", meetingID)
	}

	return &Transcript{
		ID:       result.Data.Transcript.ID,
		Title:    result.Data.Transcript.Title,
		Overview: result.Data.Transcript.Summary.Overview,
	}, nil
}
