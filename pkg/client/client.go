// Package client provides a Go client for interacting with the lexvek API.
//
// It offers a type-safe way to perform all model operations, including:
//   - Model introspection (Info, Health).
//   - Word vector retrieval (Vector).
//   - Similarity queries (Similar, Similarity).
//   - Analogy completion (Analogy).
//
// The client handles HTTP communication, JSON serialization/deserialization,
// bearer-token authentication and standardized error handling.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// --- Custom Errors ---

// APIError represents an error returned by the lexvek API (status >= 400).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// --- JSON Response Structs ---

// ModelInfo models the response of the introspection API.
type ModelInfo struct {
	Words       int      `json:"words"`
	Dimensions  int      `json:"dimensions"`
	WindowSize  int      `json:"window_size,omitempty"`
	MinCount    int      `json:"min_count,omitempty"`
	TotalTokens int      `json:"total_tokens,omitempty"`
	RunID       string   `json:"run_id,omitempty"`
	TopWords    []string `json:"top_words,omitempty"`
}

// WordVector models the embedding of a single word.
type WordVector struct {
	Word   string    `json:"word"`
	Vector []float64 `json:"vector"`
	Count  int       `json:"count,omitempty"`
}

// Match pairs a word with its similarity score.
type Match struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// matchesResponse models the response of ranking queries.
type matchesResponse struct {
	Matches []Match `json:"matches"`
}

// similarityResponse models the response of pairwise similarity queries.
type similarityResponse struct {
	Similarity float64 `json:"similarity"`
}

// --- Client ---

// Client is the Go client for interacting with a lexvek server.
type Client struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
}

// New creates a new lexvek client. authToken may be empty when the server
// runs without authentication.
func New(host string, port int, authToken string) *Client {
	return &Client{
		baseURL:    fmt.Sprintf("http://%s:%d", host, port),
		authToken:  authToken,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// jsonRequest is a helper method to execute all requests to the API.
// It handles JSON serialization, HTTP calls, and error management.
func (c *Client) jsonRequest(method, endpoint string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON payload: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		if json.Unmarshal(respBody, &errResp) == nil {
			return nil, &APIError{StatusCode: resp.StatusCode, Message: errResp["error"]}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	return respBody, nil
}

// --- Model Methods ---

// Health checks that the server is up.
func (c *Client) Health() error {
	_, err := c.jsonRequest(http.MethodGet, "/healthz", nil)
	return err
}

// Info retrieves the served model's summary.
func (c *Client) Info() (*ModelInfo, error) {
	respBody, err := c.jsonRequest(http.MethodGet, "/model/info", nil)
	if err != nil {
		return nil, err
	}
	var info ModelInfo
	if err := json.Unmarshal(respBody, &info); err != nil {
		return nil, fmt.Errorf("failed to parse model info: %w", err)
	}
	return &info, nil
}

// Vector retrieves the embedding of a single word.
func (c *Client) Vector(word string) (*WordVector, error) {
	respBody, err := c.jsonRequest(http.MethodGet, "/model/words/"+url.PathEscape(word), nil)
	if err != nil {
		return nil, err
	}
	var wv WordVector
	if err := json.Unmarshal(respBody, &wv); err != nil {
		return nil, fmt.Errorf("failed to parse word vector: %w", err)
	}
	return &wv, nil
}

// Similar retrieves the words closest to word, best first. limit <= 0 asks
// for the server default.
func (c *Client) Similar(word string, limit int) ([]Match, error) {
	payload := map[string]any{"word": word}
	if limit > 0 {
		payload["limit"] = limit
	}
	respBody, err := c.jsonRequest(http.MethodPost, "/model/actions/similar", payload)
	if err != nil {
		return nil, err
	}
	var resp matchesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse matches: %w", err)
	}
	return resp.Matches, nil
}

// Analogy completes "a is to b as c is to ?".
func (c *Client) Analogy(a, b, cWord string, limit int) ([]Match, error) {
	payload := map[string]any{"a": a, "b": b, "c": cWord}
	if limit > 0 {
		payload["limit"] = limit
	}
	respBody, err := c.jsonRequest(http.MethodPost, "/model/actions/analogy", payload)
	if err != nil {
		return nil, err
	}
	var resp matchesResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse matches: %w", err)
	}
	return resp.Matches, nil
}

// Similarity retrieves the cosine similarity of a word pair.
func (c *Client) Similarity(word1, word2 string) (float64, error) {
	payload := map[string]string{"word1": word1, "word2": word2}
	respBody, err := c.jsonRequest(http.MethodPost, "/model/actions/similarity", payload)
	if err != nil {
		return 0, err
	}
	var resp similarityResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return 0, fmt.Errorf("failed to parse similarity: %w", err)
	}
	return resp.Similarity, nil
}
