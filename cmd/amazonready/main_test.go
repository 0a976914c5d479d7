package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"souvenirspartan/internal/amazon"
	"souvenirspartan/internal/config"

	"github.com/stretchr/testify/assert"
)

var creds = config.AmazonConfig{
	AccessKey:    "AKIAEXAMPLEKEY",
	SecretKey:    "secret",
	AssociateTag: "spartan-20",
	Region:       "us-east-1",
}

func clientFor(t *testing.T, status int, body string) *amazon.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return amazon.NewClient(amazon.ClientOptions{
		AccessKey:  creds.AccessKey,
		SecretKey:  creds.SecretKey,
		PartnerTag: creds.AssociateTag,
		BaseURL:    srv.URL,
	})
}

func TestCheck_MissingCredentials(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code := check(context.Background(), &out, config.AmazonConfig{AccessKey: "AK"}, nil)
	assert.Equal(t, 1, code)
	assert.NotContains(t, out.String(), "AMAZON_ACCESS_KEY\n")
	assert.Contains(t, out.String(), "  - AMAZON_SECRET_KEY\n  - AMAZON_ASSOCIATE_TAG\n")
}

func TestCheck_Success(t *testing.T) {
	t.Parallel()

	client := clientFor(t, http.StatusOK, `{"SearchResult":{"Items":[{"ASIN":"B1","ItemInfo":{"Title":{"DisplayValue":"Cap Toe Oxford Dress Shoe"}}}]}}`)
	var out bytes.Buffer
	code := check(context.Background(), &out, creds, client)

	assert.Equal(t, 0, code, out.String())
	assert.Contains(t, out.String(), "AKIAEXAM...")
	assert.NotContains(t, out.String(), "secret\n")
	assert.Contains(t, out.String(), `PA-API returned 1 items for "men's dress shoes".`)
	assert.Contains(t, out.String(), "Example: Cap Toe Oxford Dress Shoe")
}

func TestCheck_FailureHints(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		`{"Errors":[{"Code":"InvalidSignature","Message":"bad"}]}`:        "Check Access Key",
		`{"Errors":[{"Code":"TooManyRequests","Message":"slow"}]}`:        "Rate limited",
		`{"Errors":[{"Code":"AssociateNotEligible","Message":"pending"}]}`: "Associates account is approved",
	}
	for body, want := range cases {
		client := clientFor(t, http.StatusBadRequest, body)
		var out bytes.Buffer
		assert.Equal(t, 1, check(context.Background(), &out, creds, client))
		assert.True(t, strings.Contains(out.String(), want), "want %q in:\n%s", want, out.String())
	}
}

func TestTruncateAndMask(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdef", 2))
	assert.Equal(t, "***", mask("short"))
}
