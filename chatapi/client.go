// Package chatapi is the client for the chat endpoint: it posts the user's
// text as {"text": ...} and reads the reply from {"response": ...}.
package chatapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultEndpoint is the chat endpoint of a local development backend
const DefaultEndpoint = "http://localhost:8000/chat"

// Client posts chat requests to a single endpoint
type Client struct {
	endpoint string
	http     *resty.Client
	logger   *zap.Logger
}

// NewClient creates a new client for endpoint. A zero timeout means requests
// never time out. logger may be nil.
func NewClient(endpoint string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetLogger(logger.Sugar())

	return &Client{
		endpoint: endpoint,
		http:     rc,
		logger:   logger,
	}
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Send posts text and returns the endpoint's response text. Every failure is
// returned as an *Error.
func (c *Client) Send(ctx context.Context, text string) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(Request{Text: text}).
		Post(c.endpoint)
	if err != nil {
		return "", &Error{Description: "Could not make request", Type: ErrorTypeNetwork, Err: err}
	}

	if code := resp.StatusCode(); code < 200 || code > 299 {
		return "", &Error{
			Description: "Unexpected response status",
			Type:        ErrorTypeStatus,
			StatusCode:  code,
			Err:         errors.New(strings.TrimSpace(resp.String())),
		}
	}

	var body responseBody
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", &Error{Description: "Could not decode response", Type: ErrorTypeDecode, Err: err}
	}
	if body.Response == nil {
		return "", &Error{Description: "Could not decode response", Type: ErrorTypeDecode, Err: fmt.Errorf("response field missing")}
	}

	c.logger.Debug("Chat request complete",
		zap.String("endpoint", c.endpoint),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()),
	)

	return *body.Response, nil
}
