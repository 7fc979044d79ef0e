package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.hubapi.com"

// Company is a HubSpot company reference.
type Company struct {
	ID   string
	Name string
}

// RateLimitError reports a HubSpot 429 response.
type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("hubspot rate limit exceeded: %s", e.Message)
}

// Client is a thin HTTP client for the HubSpot CRM v3 API.
type Client struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a HubSpot client with the provided private app token.
func NewClient(token string) *Client {
	return &Client{
		token:      token,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a fake server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = baseURL
	return c
}

// doJSON performs one request and decodes the response. A 429 is retried once
// after the advertised delay (or one second when none is given).
func (c *Client) doJSON(ctx context.Context, method, path string, payload interface{}, out interface{}) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return err
		}
	}

	retried := false
	for {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return err
		}

		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			if !retried {
				retried = true
				delay := time.Second
				if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs > 0 {
					delay = time.Duration(secs) * time.Second
				}
				log.Printf("[HubSpot] Rate limited on %s %s, retrying in %s", method, path, delay)
				select {
				case <-time.After(delay):
					continue
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			return &RateLimitError{Message: string(respBody)}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return fmt.Errorf("hubspot API error (%d): %s", resp.StatusCode, string(respBody))
		}

		if out != nil {
			if err := json.Unmarshal(respBody, out); err != nil {
				return fmt.Errorf("failed to decode hubspot response: %v", err)
			}
		}
		return nil
	}
}

type companiesPage struct {
	Results []struct {
		ID         string `json:"id"`
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"results"`
	Paging struct {
		Next struct {
			After string `json:"after"`
		} `json:"next"`
	} `json:"paging"`
}

// ListCompanies pages through all companies, 100 at a time, following the
// opaque `after` cursor.
func (c *Client) ListCompanies(ctx context.Context) ([]Company, error) {
	var companies []Company
	after := ""

	for {
		path := "/crm/v3/objects/companies?limit=100&properties=name"
		if after != "" {
			path += "&after=" + url.QueryEscape(after)
		}

		var page companiesPage
		if err := c.doJSON(ctx, http.MethodGet, path, nil, &page); err != nil {
			return nil, err
		}

		for _, r := range page.Results {
			companies = append(companies, Company{
				ID:   r.ID,
				Name: r.Properties.Name,
			})
		}

		if page.Paging.Next.After == "" {
			break
		}
		after = page.Paging.Next.After
	}

	return companies, nil
}

type noteResponse struct {
	ID string `json:"id"`
}

// CreateNote creates a note on a company, associated via the standard
// note-to-company association type (190).
func (c *Client) CreateNote(ctx context.Context, companyID, noteBody string) (string, error) {
	payload := map[string]interface{}{
		"properties": map[string]string{
			"hs_note_body": noteBody,
			"hs_timestamp": strconv.FormatInt(time.Now().UnixMilli(), 10),
		},
		"associations": []map[string]interface{}{
			{
				"to": map[string]string{"id": companyID},
				"types": []map[string]interface{}{
					{
						"associationCategory": "HUBSPOT_DEFINED",
						"associationTypeId":   190,
					},
				},
			},
		},
	}

	var resp noteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/crm/v3/objects/notes", payload, &resp); err != nil {
		return "", err
	}
	return resp.ID, nil
}
