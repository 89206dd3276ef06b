// Package sentiment implements the outbound text-analytics client used to
// score review comments.
package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/websiters/gastroreview/internal/api/metrics"
	"github.com/websiters/gastroreview/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client calls a Text-Analytics-compatible sentiment endpoint.
type Client struct {
	endpoint string
	key      string
	http     *http.Client
}

// NewClient builds a sentiment client for the given endpoint. The key is sent
// in the Ocp-Apim-Subscription-Key header on every request.
func NewClient(endpoint, key string) *Client {
	return &Client{
		endpoint: endpoint,
		key:      key,
		http:     &http.Client{Timeout: defaultTimeout},
	}
}

type analyzeRequest struct {
	Documents []analyzeDocument `json:"documents"`
}

type analyzeDocument struct {
	ID       string `json:"id"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

type analyzeResponse struct {
	Documents []struct {
		Sentiment        string `json:"sentiment"`
		ConfidenceScores struct {
			Positive float64 `json:"positive"`
			Neutral  float64 `json:"neutral"`
			Negative float64 `json:"negative"`
		} `json:"confidenceScores"`
		KeyPhrases []string `json:"keyPhrases"`
	} `json:"documents"`
}

// Analyze scores a piece of text and returns the resulting sentiment breakdown.
func (c *Client) Analyze(ctx context.Context, text string) (*domain.CommentAnalysis, error) {
	payload := analyzeRequest{
		Documents: []analyzeDocument{{ID: "1", Language: "en", Text: text}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("sentiment encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("sentiment request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)

	res, err := c.http.Do(req)
	if err != nil {
		metrics.SentimentAnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("sentiment call: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		metrics.SentimentAnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("sentiment call: unexpected status %d", res.StatusCode)
	}

	var parsed analyzeResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		metrics.SentimentAnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("sentiment decode: %w", err)
	}
	if len(parsed.Documents) == 0 {
		metrics.SentimentAnalysesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("sentiment decode: empty response")
	}

	metrics.SentimentAnalysesTotal.WithLabelValues("ok").Inc()

	doc := parsed.Documents[0]
	return &domain.CommentAnalysis{
		Sentiment:     doc.Sentiment,
		PositiveScore: doc.ConfidenceScores.Positive,
		NeutralScore:  doc.ConfidenceScores.Neutral,
		NegativeScore: doc.ConfidenceScores.Negative,
		KeyPhrases:    doc.KeyPhrases,
	}, nil
}
