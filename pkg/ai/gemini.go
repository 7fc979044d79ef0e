package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.5-flash:generateContent"

// GeminiService implements Summarizer against the Gemini REST API.
type GeminiService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiService(apiKey string) *GeminiService {
	return &GeminiService{
		apiKey:     apiKey,
		baseURL:    defaultGeminiURL,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// NewGeminiServiceWithURL is used by tests to point at a fake server.
func NewGeminiServiceWithURL(apiKey, baseURL string) *GeminiService {
	s := NewGeminiService(apiKey)
	s.baseURL = baseURL
	return s
}

func (g *GeminiService) SummarizeConversation(ctx context.Context, messages, instruction, channelName string) (string, error) {
	if instruction == "" {
		instruction = "Summarize the key discussion points, decisions and action items in a few short paragraphs suitable for a CRM note."
	}

	prompt := fmt.Sprintf(`You are an assistant that summarizes Slack conversations for account managers.

Channel: #%s

Instructions:
%s

Conversation:
%s

Summary:`, channelName, instruction, messages)

	payload := map[string]interface{}{
		"contents": []map[string]interface{}{
			{"parts": []map[string]string{{"text": prompt}}},
		},
	}

	body, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"?key="+g.apiKey, bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("Gemini API error: %s", string(respBody))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	if len(result.Candidates) > 0 && len(result.Candidates[0].Content.Parts) > 0 {
		return result.Candidates[0].Content.Parts[0].Text, nil
	}
	return "", fmt.Errorf("no summary returned")
}
