package transport

import (
	"net/http"
	"net/url"
	"testing"
)

// TestNoAuth tests that NoAuth applies no authentication.
func TestNoAuth(t *testing.T) {
	reqURL, _ := url.Parse("https://example.com/fred/series")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}

	(&NoAuth{}).Apply(req, "test-api-key")

	if req.URL.RawQuery != "" {
		t.Errorf("Expected empty query, got %q", req.URL.RawQuery)
	}
	if len(req.Header) != 0 {
		t.Errorf("Expected no headers, got %d", len(req.Header))
	}
}

// TestQueryAuth tests query parameter authentication.
func TestQueryAuth(t *testing.T) {
	auth := &QueryAuth{Param: "api_key"}

	reqURL, _ := url.Parse("https://example.com/fred/series?series_id=GDP")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}
	auth.Apply(req, "test-api-key")

	query := req.URL.Query()
	if query.Get("api_key") != "test-api-key" {
		t.Errorf("Expected api_key=test-api-key, got %q", req.URL.RawQuery)
	}
	if query.Get("series_id") != "GDP" {
		t.Errorf("Expected existing param to be preserved, got %q", query.Get("series_id"))
	}
}

// TestQueryAuthOverridesCallerKey tests that the configured key always wins.
func TestQueryAuthOverridesCallerKey(t *testing.T) {
	reqURL, _ := url.Parse("https://example.com/fred/series?api_key=other")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}

	(&QueryAuth{Param: "api_key"}).Apply(req, "mine")

	if got := req.URL.Query()["api_key"]; len(got) != 1 || got[0] != "mine" {
		t.Errorf("Expected single api_key=mine, got %v", got)
	}
}

// TestQueryAuthEdgeCases tests nil URLs and empty keys.
func TestQueryAuthEdgeCases(t *testing.T) {
	auth := &QueryAuth{Param: "api_key"}

	// Nil URL should not panic
	auth.Apply(&http.Request{Header: make(http.Header)}, "test-api-key")

	reqURL, _ := url.Parse("https://example.com/fred/series")
	req := &http.Request{URL: reqURL, Header: make(http.Header)}
	auth.Apply(req, "")
	if req.URL.RawQuery != "" {
		t.Errorf("Expected no api_key for empty credential, got %q", req.URL.RawQuery)
	}
}
