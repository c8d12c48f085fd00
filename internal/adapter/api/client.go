// Package api implements the HTTP adapter for the remote word service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/eslsoft/sentnet/internal/entity"
	"github.com/eslsoft/sentnet/internal/repository"
)

const (
	wordPath  = "/api/words/random"
	checkPath = "/api/sentences/check"
)

// Client talks to the word-selection and sentence-scoring endpoints.
// No client-side timeout is set by default; cancellation is the caller's
// responsibility through ctx.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logrus.Logger
}

var _ repository.WordService = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a word service client rooted at baseURL.
func NewClient(baseURL string, logger *logrus.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wordResponse mirrors the word endpoint's JSON payload.
type wordResponse struct {
	ID         int64  `json:"id"`
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Difficulty string `json:"difficulty_level"`
}

// checkRequest is the scoring endpoint's request body.
type checkRequest struct {
	WordID   int64  `json:"word_id"`
	Sentence string `json:"sentence"`
}

// checkResponse mirrors the scoring endpoint's loosely-typed payload.
type checkResponse struct {
	Score             flexScore `json:"score"`
	Suggestion        string    `json:"suggestion"`
	Level             string    `json:"level"`
	CorrectedSentence string    `json:"corrected_sentence"`
}

// errorResponse is the optional failure body shape.
type errorResponse struct {
	Message string `json:"message"`
}

// flexScore decodes a score that may arrive as a JSON number or a numeric
// string. Absent or unparseable values decode to 0; a successful HTTP status
// is trusted over payload well-formedness.
type flexScore float64

func (s *flexScore) UnmarshalJSON(data []byte) error {
	*s = 0
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = flexScore(n)
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if v, perr := strconv.ParseFloat(strings.TrimSpace(str), 64); perr == nil {
			*s = flexScore(v)
		}
	}
	return nil
}

// FetchWord requests a fresh word, bypassing intermediate caches.
func (c *Client) FetchWord(ctx context.Context) (*entity.Word, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+wordPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build word request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch word: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Any non-2xx is a fetch failure regardless of body.
		c.logger.Warnf("word fetch returned status %d", resp.StatusCode)
		return nil, &entity.ServiceError{StatusCode: resp.StatusCode}
	}

	var payload wordResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode word response: %w", err)
	}

	return &entity.Word{
		ID:         payload.ID,
		Text:       payload.Word,
		Definition: payload.Definition,
		Difficulty: entity.ParseDifficulty(payload.Difficulty),
	}, nil
}

// ValidateSentence submits a sentence for scoring.
func (c *Client) ValidateSentence(ctx context.Context, wordID int64, sentence string) (*entity.Evaluation, error) {
	body, err := json.Marshal(checkRequest{WordID: wordID, Sentence: sentence})
	if err != nil {
		return nil, fmt.Errorf("encode check request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+checkPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("validate sentence: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.serviceError(resp)
	}

	var payload checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode check response: %w", err)
	}

	return &entity.Evaluation{
		Score:             float64(payload.Score),
		Suggestion:        payload.Suggestion,
		Level:             entity.ParseDifficulty(payload.Level),
		CorrectedSentence: payload.CorrectedSentence,
	}, nil
}

// serviceError extracts the server-supplied message from a failure body when
// one is present; an unparseable body yields a bare status error.
func (c *Client) serviceError(resp *http.Response) error {
	svcErr := &entity.ServiceError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return svcErr
	}
	var payload errorResponse
	if err := json.Unmarshal(raw, &payload); err == nil {
		svcErr.Message = strings.TrimSpace(payload.Message)
	}
	return svcErr
}
