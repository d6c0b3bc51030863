// Package coach is the boundary to the recommendation text generator. The
// service sends a structured child profile and gets prose back; prompt
// engineering and model choice live on the other side.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ProfileSummary is what the generator needs to write a recommendation:
// who the child is, how they scored, and the habit answers in words.
type ProfileSummary struct {
	SexLabel string            `json:"sex"`
	Age      int               `json:"age"`
	Score    int               `json:"score"`
	RiskBand string            `json:"risk_band"`
	Habits   map[string]string `json:"habits"`
}

type Client interface {
	Recommend(ctx context.Context, summary ProfileSummary) (string, error)
}

type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type recommendResponse struct {
	Text string `json:"text"`
}

func (c *HTTPClient) Recommend(ctx context.Context, summary ProfileSummary) (string, error) {
	payload, err := json.Marshal(summary)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/recommend", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("coach: %d %s", resp.StatusCode, string(body))
	}

	var rec recommendResponse
	if err := json.Unmarshal(body, &rec); err != nil {
		return "", err
	}
	return rec.Text, nil
}
