// Package client talks to the scheduler HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"cpu-scheduler-simulator/internal/requests"
	"cpu-scheduler-simulator/internal/responses"
)

type Client struct {
	BaseURL string
	http    *http.Client
}

// APIError is returned for any non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("scheduler api: %d %s", e.StatusCode, e.Message)
}

// New returns a client for the server at baseURL, e.g. http://localhost:9095.
// A nil httpClient means http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Simulate(ctx context.Context, algorithm string, request requests.ScheduleRequests) (responses.ScheduleResponse, error) {
	var response responses.ScheduleResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/simulate/"+url.PathEscape(algorithm), request, &response)
	return response, err
}

func (c *Client) SimulateAll(ctx context.Context, request requests.ScheduleRequests) ([]responses.ScheduleResponse, error) {
	var response []responses.ScheduleResponse
	err := c.do(ctx, http.MethodPost, "/api/v1/all", request, &response)
	return response, err
}

func (c *Client) Algorithms(ctx context.Context) ([]responses.AlgorithmResponse, error) {
	var response []responses.AlgorithmResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/algorithms", nil, &response)
	return response, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &payload)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr responses.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}
