// Package engine is the HTTP transport to the remote game engine. The engine
// owns shuffling, dealing, evaluation and robot play; this client only moves
// snapshots and actions across the wire. Engine rejections are reported as
// *RejectionError so callers can tell them apart from transport failures,
// though both leave round state untouched.
package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lox/holdemclient/internal/holdem"
)

// RejectionError is an explicit refusal from the engine (illegal bet size,
// not this player's turn). The message is surfaced to the user verbatim.
type RejectionError struct {
	Message string
}

func (e *RejectionError) Error() string {
	return e.Message
}

// IsRejection reports whether err is an engine rejection rather than a
// transport failure.
func IsRejection(err error) bool {
	var rej *RejectionError
	return errors.As(err, &rej)
}

// Client talks to the remote engine over plain HTTP. All calls are single
// round-trips with no retries; retry policy belongs to the caller.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// NewClient creates an engine client for the given base URL.
func NewClient(baseURL string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		logger:  logger.WithPrefix("engine"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StartRound asks the engine for a fresh round.
func (c *Client) StartRound(ctx context.Context, cfg holdem.RoundConfig) (*holdem.GameState, error) {
	q := url.Values{}
	q.Set("players", strconv.Itoa(cfg.PlayerCount))
	q.Set("mode", cfg.Mode.String())
	q.Set("chips", strconv.Itoa(cfg.StartingChips))

	c.logger.Debug("Starting round", "players", cfg.PlayerCount, "mode", cfg.Mode)
	return c.getState(ctx, "/new-game?"+q.Encode())
}

// Deal requests the next community cards for the given step.
func (c *Client) Deal(ctx context.Context, step holdem.DealStep) (*holdem.GameState, error) {
	c.logger.Debug("Dealing", "step", step)
	return c.getState(ctx, "/deal-"+step.String())
}

// actionResult is the engine's two-variant action response. Anything that does
// not match one of the two variants is treated as a transport-level error.
type actionResult struct {
	OK    *bool             `json:"ok"`
	State *holdem.GameState `json:"state"`
	Error string            `json:"error"`
}

// SubmitAction sends one player action and returns the replacement state on
// success or a *RejectionError carrying the engine's message.
func (c *Client) SubmitAction(ctx context.Context, action holdem.Action) (*holdem.GameState, error) {
	payload := struct {
		Action string `json:"action"`
		Amount int    `json:"amount,omitempty"`
	}{Action: action.Type.String(), Amount: action.Amount}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode action: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/action", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Submitting action", "action", action.Type, "amount", action.Amount)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var result actionResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("malformed engine response: %w", err)
	}
	if result.OK == nil {
		return nil, fmt.Errorf("malformed engine response: missing ok field")
	}
	if !*result.OK {
		return nil, &RejectionError{Message: result.Error}
	}
	if result.State == nil {
		return nil, fmt.Errorf("malformed engine response: success without state")
	}
	return result.State, nil
}

// getState performs a GET and decodes a full state snapshot.
func (c *Client) getState(ctx context.Context, path string) (*holdem.GameState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("engine unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("engine returned status %d", resp.StatusCode)
	}

	var state holdem.GameState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("malformed engine response: %w", err)
	}
	return &state, nil
}
