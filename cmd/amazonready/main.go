// Command amazonready checks that the native Amazon PA-API credentials can return
// real products. It never prints the secret key.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"souvenirspartan/internal/amazon"
	"souvenirspartan/internal/config"
)

const probeKeywords = "men's dress shoes"

type itemSearcher interface {
	SearchItems(ctx context.Context, keywords string) (*amazon.SearchItemsResponse, error)
}

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "time limit for the probe search")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	client := amazon.NewClient(amazon.ClientOptions{
		AccessKey:   cfg.Amazon.AccessKey,
		SecretKey:   cfg.Amazon.SecretKey,
		PartnerTag:  cfg.Amazon.AssociateTag,
		Region:      cfg.Amazon.Region,
		Host:        cfg.Amazon.Host,
		Marketplace: cfg.Amazon.Marketplace,
		BaseURL:     cfg.Amazon.BaseURL,
		Timeout:     timeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	os.Exit(check(ctx, os.Stdout, cfg.Amazon, client))
}

// check returns the process exit code: 0 when the probe search succeeds.
func check(ctx context.Context, w io.Writer, cfg config.AmazonConfig, client itemSearcher) int {
	fmt.Fprintln(w, "Checking Amazon PA-API readiness...")
	fmt.Fprintln(w)

	if missing := missingCredentials(cfg); len(missing) > 0 {
		fmt.Fprintln(w, "Missing credentials:")
		for _, name := range missing {
			fmt.Fprintln(w, "  -", name)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Add them from: Amazon Associates -> Tools -> Product Advertising API")
		return 1
	}

	fmt.Fprintln(w, "Credentials:")
	fmt.Fprintf(w, "  AMAZON_ACCESS_KEY    %s\n", mask(cfg.AccessKey))
	fmt.Fprintln(w, "  AMAZON_SECRET_KEY    *** set ***")
	fmt.Fprintf(w, "  AMAZON_ASSOCIATE_TAG %s\n", strings.TrimSpace(cfg.AssociateTag))
	fmt.Fprintf(w, "  AMAZON_REGION        %s\n", cfg.Region)
	fmt.Fprintln(w)

	resp, err := client.SearchItems(ctx, probeKeywords)
	if err != nil {
		fmt.Fprintln(w, "PA-API call failed. Your account is not ready for real products yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Error:", err)
		fmt.Fprintln(w)
		fmt.Fprintln(w, hint(err))
		return 1
	}

	var items []amazon.Item
	if resp.SearchResult != nil {
		items = resp.SearchResult.Items
	}
	fmt.Fprintln(w, "Success. Your Amazon account is ready.")
	fmt.Fprintf(w, "PA-API returned %d items for %q.\n", len(items), probeKeywords)
	if len(items) > 0 {
		products := amazon.MapItems(items[:1], cfg.AssociateTag)
		fmt.Fprintln(w, "Example:", truncate(products[0].Title, 60))
	}
	return 0
}

func missingCredentials(cfg config.AmazonConfig) []string {
	var missing []string
	for _, c := range []struct{ name, value string }{
		{"AMAZON_ACCESS_KEY", cfg.AccessKey},
		{"AMAZON_SECRET_KEY", cfg.SecretKey},
		{"AMAZON_ASSOCIATE_TAG", cfg.AssociateTag},
	} {
		if strings.TrimSpace(c.value) == "" {
			missing = append(missing, c.name)
		}
	}
	return missing
}

func hint(err error) string {
	code := ""
	var apiErr *amazon.APIError
	if errors.As(err, &apiErr) {
		code = apiErr.Code + " " + apiErr.Message
	} else {
		code = err.Error()
	}
	switch {
	case strings.Contains(code, "InvalidClientTokenId"), strings.Contains(code, "SignatureDoesNotMatch"), strings.Contains(code, "InvalidSignature"):
		return "-> Check Access Key and Secret Key (no extra spaces or quotes).\n   Use the Product Advertising API credentials, not AWS IAM keys."
	case strings.Contains(code, "TooManyRequests"), strings.Contains(strings.ToLower(code), "throttl"):
		return "-> Rate limited. Wait a minute and try again."
	default:
		return "-> Ensure your Associates account is approved and has joined the Product Advertising API."
	}
}

func mask(key string) string {
	key = strings.TrimSpace(key)
	if len(key) <= 8 {
		return "***"
	}
	return key[:8] + "..."
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
