package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	apperrors "github.com/palemoky/pokemon-data-api/internal/errors"
	"github.com/palemoky/pokemon-data-api/internal/record"
)

const (
	DefaultTimeout      = 20 * time.Second
	DefaultRequestDelay = 100 * time.Millisecond

	// Upper bound on a single response body
	maxBodySize = 64 << 20
)

// ClientConfig configures the remote dataset client.
type ClientConfig struct {
	ReferenceURL string        // Base URL of the flat reference dataset
	PokedexURL   string        // First page of the pokedex index
	Timeout      time.Duration // Per request
	RequestDelay time.Duration // Minimum spacing between paced requests
}

// Client fetches JSON from the external reference APIs.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	cfg     ClientConfig
}

// NewClient creates a remote client. Requests are always paced: a timeout or
// delay that is not positive falls back to the default.
func NewClient(cfg ClientConfig) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestDelay <= 0 {
		cfg.RequestDelay = DefaultRequestDelay
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(cfg.RequestDelay), 1),
		cfg:     cfg,
	}
}

// Wait blocks until the next paced request may start or ctx is done.
func (c *Client) Wait(ctx context.Context) error {
	return c.limiter.Wait(ctx)
}

// GetJSON fetches url and decodes the body into v. Transport failures,
// timeouts, non-2xx statuses and undecodable bodies all return a FetchError.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &apperrors.FetchError{URL: url, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return nil, &apperrors.FetchError{URL: url, StatusCode: res.StatusCode, Err: fmt.Errorf("unexpected status %s", res.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize))
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: err}
	}
	return body, nil
}

// ReferenceURL returns the dataset URL of a reference kind such as "moves".
func (c *Client) ReferenceURL(kind string) string {
	return strings.TrimRight(c.cfg.ReferenceURL, "/") + "/" + kind + ".json"
}

// FetchReference downloads one reference dataset wholesale. The payload may be
// an array of records or an object keyed by id.
func (c *Client) FetchReference(ctx context.Context, kind string) ([]record.Raw, error) {
	url := c.ReferenceURL(kind)

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err := record.KeyedRecords(body)
	if err != nil {
		return nil, &apperrors.FetchError{URL: url, Err: fmt.Errorf("invalid JSON: %w", err)}
	}
	return records, nil
}
