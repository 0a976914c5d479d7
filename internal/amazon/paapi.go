package amazon

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	signingService = "ProductAdvertisingAPI"
	searchItemsOp  = "com.amazon.paapi5.v1.ProductAdvertisingAPIv1.SearchItems"
	searchItemsURI = "/paapi5/searchitems"
)

var tracer = otel.Tracer("souvenirspartan/internal/amazon")

// searchResources are the item fields the storefront renders.
var searchResources = []string{
	"Images.Primary.Medium",
	"Images.Primary.Large",
	"ItemInfo.Title",
	"Offers.Listings.Price",
}

type ClientOptions struct {
	AccessKey   string
	SecretKey   string
	PartnerTag  string
	Region      string
	Host        string
	Marketplace string
	// BaseURL defaults to https://Host.
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the Product Advertising API 5.0 with SigV4 signed requests.
type Client struct {
	opts       ClientOptions
	baseURL    string
	signer     *v4.Signer
	httpClient *http.Client
}

func NewClient(opts ClientOptions) *Client {
	for _, s := range []*string{&opts.AccessKey, &opts.SecretKey, &opts.PartnerTag} {
		*s = strings.TrimSpace(*s)
	}
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if opts.Host == "" {
		opts.Host = "webservices.amazon.com"
	}
	if opts.Marketplace == "" {
		opts.Marketplace = "www.amazon.com"
	}
	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = "https://" + opts.Host
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 8 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		opts:       opts,
		baseURL:    strings.TrimRight(baseURL, "/"),
		signer:     v4.NewSigner(),
		httpClient: httpClient,
	}
}

// Configured reports whether access key, secret key and partner tag are all present.
func (c *Client) Configured() bool {
	return c.opts.AccessKey != "" && c.opts.SecretKey != "" && c.opts.PartnerTag != ""
}

func (c *Client) PartnerTag() string { return c.opts.PartnerTag }

type searchItemsRequest struct {
	Keywords    string   `json:"Keywords"`
	PartnerTag  string   `json:"PartnerTag"`
	PartnerType string   `json:"PartnerType"`
	SearchIndex string   `json:"SearchIndex"`
	Marketplace string   `json:"Marketplace"`
	Resources   []string `json:"Resources"`
}

// SearchItems performs one keyword search across all search indexes.
func (c *Client) SearchItems(ctx context.Context, keywords string) (*SearchItemsResponse, error) {
	if !c.Configured() {
		return nil, errors.New("amazon PA-API credentials are not configured")
	}

	payload, err := json.Marshal(searchItemsRequest{
		Keywords:    keywords,
		PartnerTag:  c.opts.PartnerTag,
		PartnerType: "Associates",
		SearchIndex: "All",
		Marketplace: c.opts.Marketplace,
		Resources:   searchResources,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search request: %w", err)
	}

	ctx, span := tracer.Start(ctx, "amazon.searchItems")
	defer span.End()
	span.SetAttributes(attribute.String("amazon.keywords", keywords))

	resp, err := c.post(ctx, payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, payload []byte) (*SearchItemsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchItemsURI, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Content-Encoding", "amz-1.0")
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("X-Amz-Target", searchItemsOp)
	req.Header.Set("Accept", "application/json")

	sum := sha256.Sum256(payload)
	creds := aws.Credentials{AccessKeyID: c.opts.AccessKey, SecretAccessKey: c.opts.SecretKey}
	if err := c.signer.SignHTTP(ctx, creds, req, hex.EncodeToString(sum[:]), signingService, c.opts.Region, time.Now()); err != nil {
		return nil, fmt.Errorf("sign search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request search items: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4*1024*1024))
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var parsed SearchItemsResponse
	decodeErr := json.Unmarshal(body, &parsed)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if decodeErr == nil && len(parsed.Errors) > 0 {
			apiErr.Code = parsed.Errors[0].Code
			apiErr.Message = parsed.Errors[0].Message
		} else {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return nil, apiErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode search response: %w", decodeErr)
	}
	return &parsed, nil
}
