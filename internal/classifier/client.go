// Package classifier talks to the trained overweight model, served as an
// external prediction service. The core never inspects the model; it only
// shapes the feature vector going in and the label/probability coming out.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Prediction is the model's answer for one profile.
type Prediction struct {
	Class       int     `json:"class"`
	Probability float64 `json:"probability"`
}

type Client interface {
	Predict(ctx context.Context, vector FeatureVector) (*Prediction, error)
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

func (c *HTTPClient) Predict(ctx context.Context, vector FeatureVector) (*Prediction, error) {
	payload, err := json.Marshal(predictRequest{Features: vector.Features})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("classifier: %d %s", resp.StatusCode, string(body))
	}

	var pred Prediction
	if err := json.Unmarshal(body, &pred); err != nil {
		return nil, err
	}
	return &pred, nil
}
