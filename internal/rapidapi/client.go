// Package rapidapi is the shared transport for RapidAPI marketplace proxies (Axesso).
// Every call is a single attempt bounded by the configured timeout.
package rapidapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const maxBodyBytes = 4 * 1024 * 1024

var tracer = otel.Tracer("souvenirspartan/internal/rapidapi")

// ErrNoKey is returned before any network call when the client has no API key.
var ErrNoKey = errors.New("rapidapi key is not configured")

type Options struct {
	APIKey string
	// Host is sent as x-rapidapi-host.
	Host string
	// BaseURL defaults to https://Host.
	BaseURL string
	Timeout time.Duration
	// HTTPClient replaces the underlying transport client (tests).
	HTTPClient *http.Client
}

type Client struct {
	apiKey  string
	host    string
	baseURL string
	http    *retryablehttp.Client
}

func NewClient(opts Options) (*Client, error) {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		return nil, errors.New("rapidapi host is required")
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = "https://" + host
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 0
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = slog.Default()
	if opts.HTTPClient != nil {
		rc.HTTPClient = opts.HTTPClient
	}
	rc.HTTPClient.Timeout = timeout

	return &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		host:    host,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    rc,
	}, nil
}

func (c *Client) HasKey() bool {
	return c != nil && c.apiKey != ""
}

func (c *Client) Host() string {
	return c.host
}

// Get issues one GET against path with params and returns the raw body of a 2xx response.
// Non-2xx responses become *StatusError.
func (c *Client) Get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if !c.HasKey() {
		return nil, ErrNoKey
	}

	reqURL, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse request URL: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	ctx, span := tracer.Start(ctx, "rapidapi.get")
	defer span.End()
	span.SetAttributes(
		attribute.String("rapidapi.host", c.host),
		attribute.String("http.path", reqURL.Path),
	)

	body, err := c.do(ctx, reqURL.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-rapidapi-host", c.host)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", c.host, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", c.host, err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{
			Host:       c.host,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       snippet(body),
		}
	}
	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 256 {
		return s[:256] + "..."
	}
	return s
}
