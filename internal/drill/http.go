package drill

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/puimuri/trainer/internal/domain/exercise"
)

// Client talks to the trainer's HTTP API.
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates a client for baseURL with the given request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Health checks GET /healthz.
func (c *Client) Health(ctx context.Context) error {
	resp, _, err := c.do(ctx, http.MethodGet, healthPath, nil)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", ErrUnhealthy, resp.StatusCode)
	}
	return nil
}

// FetchExercise requests a new exercise.
func (c *Client) FetchExercise(ctx context.Context) (exercise.Exercise, error) {
	var ex exercise.Exercise
	resp, body, err := c.do(ctx, http.MethodGet, equationPath, nil)
	if err != nil {
		return ex, err
	}
	if resp.StatusCode != http.StatusOK {
		return ex, fmt.Errorf("%w: GET %s returned %d", ErrUnexpectedStatus, equationPath, resp.StatusCode)
	}
	if err := json.Unmarshal(body, &ex); err != nil {
		return ex, fmt.Errorf("decode exercise: %w", err)
	}
	return ex, nil
}

// SubmitAnswer posts answer for ex and returns the HTTP status together with
// the worked solution the trainer sent back. Only 200 and 412 carry a
// solution; any other status is an error.
func (c *Client) SubmitAnswer(ctx context.Context, ex exercise.Exercise, answer float64) (int, exercise.Solution, error) {
	var sol exercise.Solution
	payload, err := json.Marshal(ex)
	if err != nil {
		return 0, sol, fmt.Errorf("encode exercise: %w", err)
	}

	path := answerPath + strconv.FormatFloat(answer, 'g', -1, 64)
	resp, body, err := c.do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return 0, sol, err
	}
	switch resp.StatusCode {
	case http.StatusOK, http.StatusPreconditionFailed:
	default:
		return resp.StatusCode, sol, fmt.Errorf("%w: POST %s returned %d", ErrUnexpectedStatus, path, resp.StatusCode)
	}
	if err := json.Unmarshal(body, &sol); err != nil {
		return resp.StatusCode, sol, fmt.Errorf("decode solution: %w", err)
	}
	return resp.StatusCode, sol, nil
}

// do sends one request tagged with a fresh request ID and reads the body.
func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*http.Response, []byte, error) {
	var body io.Reader = http.NoBody
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, data, nil
}
