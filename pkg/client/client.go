package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-predictform/pkg/payload"
)

const maxErrorBody = 64 << 10

// Client issues prediction requests against a single configured endpoint.
// Every call sends exactly one POST and never retries.
type Client struct {
	baseURL string
	path    string
	http    *http.Client
	timeout time.Duration
	logger  *zap.Logger
}

// New constructs a Client with defaults (DefaultBaseURL, DefaultPath,
// http.DefaultClient, no-op logger).
func New(options ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		path:    DefaultPath,
		http:    http.DefaultClient,
		logger:  zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoint returns the full prediction URL.
func (c *Client) Endpoint() string {
	return c.baseURL + c.path
}

// PredictPrice posts the specification as JSON and returns the predicted
// price.
func (c *Client) PredictPrice(ctx context.Context, req payload.PriceRequest) (PricePrediction, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return PricePrediction{}, fmt.Errorf("client: encode price request: %w", err)
	}

	var out priceBody
	if err := c.post(ctx, "application/json", body, &out); err != nil {
		return PricePrediction{}, err
	}
	prediction, err := out.prediction()
	if err != nil {
		return PricePrediction{}, c.decodeError(err)
	}
	return prediction, nil
}

// Classify posts the multipart image body and returns the classification.
func (c *Client) Classify(ctx context.Context, body payload.Body) (Classification, error) {
	if body.ContentType == "" || len(body.Data) == 0 {
		return Classification{}, errors.New("client: multipart body is empty")
	}

	var out classificationBody
	if err := c.post(ctx, body.ContentType, body.Data, &out); err != nil {
		return Classification{}, err
	}
	classification, err := out.classification()
	if err != nil {
		return Classification{}, c.decodeError(err)
	}
	return classification, nil
}

func (c *Client) post(ctx context.Context, contentType string, body []byte, out any) error {
	if ctx == nil {
		return errors.New("client: context is required")
	}
	endpoint := c.Endpoint()

	reqCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("sending prediction request",
		zap.String("endpoint", endpoint),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(body)),
	)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("prediction request failed", zap.String("endpoint", endpoint), zap.Error(err))
		return &ConnectivityError{BaseURL: c.baseURL, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("prediction response received",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		serverErr := &ServerError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Detail:     readDetail(resp.Body),
		}
		c.logger.Warn("prediction rejected by server",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", serverErr.Detail),
		)
		return serverErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return c.decodeError(err)
	}
	return nil
}

func (c *Client) decodeError(err error) error {
	c.logger.Warn("unusable prediction response", zap.String("endpoint", c.Endpoint()), zap.Error(err))
	return &DecodeError{Endpoint: c.Endpoint(), Err: err}
}

func errMissing(key string) error {
	return fmt.Errorf("response has no %q field", key)
}

// readDetail extracts a human-readable message from an error body. Only a
// non-empty string "detail" counts; anything else yields "".
func readDetail(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil || len(data) == 0 {
		return ""
	}
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	detail, ok := body.Detail.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(detail)
}
