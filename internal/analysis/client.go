package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrInvalidRemoteResult = errors.New("invalid remote analysis result")

// RemoteClient talks to a remote analysis backend over HTTP
type RemoteClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewRemoteClient creates a client for the backend rooted at baseURL,
// e.g. http://localhost:5000/api
func NewRemoteClient(baseURL string, timeout time.Duration) *RemoteClient {
	return &RemoteClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type remoteAnalyzeRequest struct {
	Text         string  `json:"text"`
	TimeTaken    float64 `json:"time_taken"`
	ResponseTime float64 `json:"response_time"`
	UserID       string  `json:"user_id"`
}

type remoteProfileRequest struct {
	UserID  string          `json:"user_id"`
	Profile json.RawMessage `json:"profile"`
}

// Health probes GET /health; any 2xx means available
func (c *RemoteClient) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health", nil)
	return err
}

// Analyze calls POST /analyze
func (c *RemoteClient) Analyze(ctx context.Context, userID string, req AnalyzeRequest) (Result, error) {
	body, err := c.do(ctx, http.MethodPost, "/analyze", remoteAnalyzeRequest{
		Text:         req.Text,
		TimeTaken:    req.TimeTaken,
		ResponseTime: req.ResponseTime,
		UserID:       userID,
	})
	if err != nil {
		return Result{}, err
	}
	return parseRemoteResult(body)
}

// RealtimeStats calls GET /realtime-stats?user_id=
func (c *RemoteClient) RealtimeStats(ctx context.Context, userID string) (RealtimeStats, error) {
	body, err := c.do(ctx, http.MethodGet, "/realtime-stats?user_id="+url.QueryEscape(userID), nil)
	if err != nil {
		return RealtimeStats{}, err
	}

	var stats RealtimeStats
	if err := json.Unmarshal(body, &stats); err != nil {
		return RealtimeStats{}, fmt.Errorf("unmarshal stats: %w", err)
	}
	if stats.DominantSentiment == "" {
		stats.DominantSentiment = SentimentNeutral
	}
	return stats, nil
}

// UpdateProfile calls POST /user-profile
func (c *RemoteClient) UpdateProfile(ctx context.Context, userID string, profile json.RawMessage) error {
	_, err := c.do(ctx, http.MethodPost, "/user-profile", remoteProfileRequest{
		UserID:  userID,
		Profile: profile,
	})
	return err
}

func (c *RemoteClient) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("remote error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

// parseRemoteResult decodes and sanity-checks an analysis result. Missing
// body-language data or an unknown sentiment is treated as a failed call.
func parseRemoteResult(body []byte) (Result, error) {
	var raw struct {
		Result
		DigitalBodyLanguage *DigitalBodyLanguage `json:"digital_body_language"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return Result{}, fmt.Errorf("unmarshal result: %w", err)
	}

	if raw.DigitalBodyLanguage == nil {
		return Result{}, fmt.Errorf("%w: missing digital_body_language", ErrInvalidRemoteResult)
	}
	if !raw.SentimentAnalysis.Sentiment.Valid() {
		return Result{}, fmt.Errorf("%w: unknown sentiment %q", ErrInvalidRemoteResult, raw.SentimentAnalysis.Sentiment)
	}

	result := raw.Result
	result.DigitalBodyLanguage = *raw.DigitalBodyLanguage
	if result.Timestamp == "" {
		result.Timestamp = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return result, nil
}
