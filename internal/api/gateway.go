package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/google/uuid"
)

// Messages callers match on. They are part of the contract with the
// controllers, so keep them stable.
const (
	MsgAuthFailed     = "Authentication failed. Please log in again."
	MsgSessionExpired = "Session expired. Please log in again."

	MsgGenerateFailed = "Failed to generate wallet"
	MsgVerifyFailed   = "Failed to verify wallet"
	MsgImportFailed   = "Failed to import wallet"
	MsgBalancesFailed = "Failed to fetch wallet balances"
	MsgTransferFailed = "Failed to initiate transfer"
	MsgLogoutFailed   = "Failed to logout"
)

const maxBodyBytes = 1 << 20

// Gateway talks to the wallet backend. Every operation returns an Envelope
// and never an error.
type Gateway struct {
	baseURL string
	client  *http.Client
	newID   func() string
}

type Option func(*Gateway)

func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.client = c }
}

func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.client.Timeout = d
		}
	}
}

// WithRequestIDs overrides X-Request-ID generation.
func WithRequestIDs(fn func() string) Option {
	return func(g *Gateway) { g.newID = fn }
}

func New(baseURL string, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *Gateway) BaseURL() string {
	return g.baseURL
}

type call struct {
	op       string
	method   string
	path     string
	token    string
	body     interface{}
	generic  string
	statuses map[int]string
}

func do[T any](ctx context.Context, g *Gateway, c call) Envelope[T] {
	start := time.Now()
	requestID := g.newID()

	req, err := g.newRequest(ctx, c, requestID)
	if err != nil {
		logger.Error("Building request failed", "op", c.op, "error", err)
		return TransportFailure[T](c.generic)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		logger.Error("Request failed", "op", c.op, "request_id", requestID, "error", err)
		return TransportFailure[T](c.generic)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		logger.Error("Reading response failed", "op", c.op, "request_id", requestID, "error", err)
		return TransportFailure[T](c.generic)
	}

	logger.Info("Request processed",
		"op", c.op,
		"method", c.method,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if msg, ok := c.statuses[resp.StatusCode]; ok {
		return Failure[T](msg)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.Unmarshal(raw, &eb); err == nil {
			if eb.Error != "" {
				return Failure[T](eb.Error)
			}
			if eb.Message != "" {
				return Failure[T](eb.Message)
			}
		}
		return Failure[T](c.generic)
	}

	var body responseBody[T]
	if err := json.Unmarshal(raw, &body); err != nil {
		logger.Error("Decoding response failed", "op", c.op, "request_id", requestID, "error", err)
		return TransportFailure[T](c.generic)
	}
	if !body.Success {
		if body.Error != "" {
			return Failure[T](body.Error)
		}
		return Failure[T](c.generic)
	}
	return Success(body.Data)
}

func (g *Gateway) newRequest(ctx context.Context, c call, requestID string) (*http.Request, error) {
	var reader io.Reader
	if c.body != nil {
		buf, err := json.Marshal(c.body)
		if err != nil {
			return nil, fmt.Errorf("error encoding request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, c.method, g.baseURL+c.path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}
