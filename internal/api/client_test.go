package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spiffcs/ghlens/internal/constants"
	"github.com/spiffcs/ghlens/internal/model"
)

// backend is a canned analysis backend recording every request URI.
type backend struct {
	mu     sync.Mutex
	uris   []string
	status int
	bodies map[string]string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.uris = append(b.uris, r.URL.RequestURI())
	status := b.status
	b.mu.Unlock()

	if status != 0 {
		w.WriteHeader(status)
		return
	}
	body, ok := b.bodies[r.URL.EscapedPath()]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprint(w, body)
}

func (b *backend) requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.uris...)
}

func newTestClient(t *testing.T, b *backend) *Client {
	t.Helper()
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL + "/api/v1")
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		want    string
		wantErr bool
	}{
		{name: "default", baseURL: "", want: constants.DefaultAPIURL},
		{name: "trailing slash trimmed", baseURL: "https://lens.example.com/api/v1/", want: "https://lens.example.com/api/v1"},
		{name: "unsupported scheme", baseURL: "ftp://example.com", wantErr: true},
		{name: "unparsable", baseURL: "http://[::1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && c.BaseURL() != tt.want {
				t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), tt.want)
			}
		})
	}
}

func TestWithTimeout(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want time.Duration
	}{
		{name: "default", want: 0},
		{name: "timeout only", opts: []Option{WithTimeout(3 * time.Second)}, want: 3 * time.Second},
		{
			name: "timeout before http client",
			opts: []Option{WithTimeout(3 * time.Second), WithHTTPClient(&http.Client{})},
			want: 3 * time.Second,
		},
		{
			name: "timeout after http client",
			opts: []Option{WithHTTPClient(&http.Client{Timeout: time.Minute}), WithTimeout(3 * time.Second)},
			want: 3 * time.Second,
		},
		{
			name: "http client timeout kept",
			opts: []Option{WithHTTPClient(&http.Client{Timeout: time.Minute})},
			want: time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient("", tt.opts...)
			if err != nil {
				t.Fatal(err)
			}
			if c.http.Timeout != tt.want {
				t.Errorf("Timeout = %v, want %v", c.http.Timeout, tt.want)
			}
		})
	}
}

func TestWithHTTPClientIsNotMutated(t *testing.T) {
	hc := &http.Client{}
	if _, err := NewClient("", WithHTTPClient(hc)); err != nil {
		t.Fatal(err)
	}
	if hc.Transport != nil {
		t.Error("caller's http.Client transport should be left untouched")
	}
}

func TestEndpointPaths(t *testing.T) {
	b := &backend{bodies: map[string]string{
		"/api/v1/users/octocat":                                      `{"login":"octocat"}`,
		"/api/v1/users/octocat/repositories":                         `{"nodes":[]}`,
		"/api/v1/users/octocat/contribution-calendar":                `{"totalContributions":0,"weeks":[]}`,
		"/api/v1/users/octocat/repositories/octo-org/hello-world":    `{}`,
		"/api/v1/analyze/octo-org/hello-world":                       `{"technologies":[],"description":""}`,
		"/api/v1/analyze/octo-org/hello-world/contributions/octocat": `{}`,
	}}
	c := newTestClient(t, b)
	ctx := context.Background()

	if _, err := c.Profile(ctx, "octocat"); err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if _, err := c.Repositories(ctx, "octocat"); err != nil {
		t.Fatalf("Repositories() error = %v", err)
	}
	if _, err := c.ContributionCalendar(ctx, "octocat", 2023); err != nil {
		t.Fatalf("ContributionCalendar() error = %v", err)
	}
	if _, err := c.RepositoryDetail(ctx, "octocat", "octo-org", "hello-world"); err != nil {
		t.Fatalf("RepositoryDetail() error = %v", err)
	}
	if _, err := c.Analyze(ctx, "octo-org", "hello-world", "octocat"); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if _, err := c.AnalyzeContributions(ctx, "octo-org", "hello-world", "octocat"); err != nil {
		t.Fatalf("AnalyzeContributions() error = %v", err)
	}

	want := []string{
		"/api/v1/users/octocat",
		"/api/v1/users/octocat/repositories",
		"/api/v1/users/octocat/contribution-calendar?year=2023",
		"/api/v1/users/octocat/repositories/octo-org/hello-world",
		"/api/v1/analyze/octo-org/hello-world?username=octocat",
		"/api/v1/analyze/octo-org/hello-world/contributions/octocat",
	}
	if diff := cmp.Diff(want, b.requests()); diff != "" {
		t.Errorf("request URIs mismatch (-want +got):\n%s", diff)
	}
	if c.Requests() != int64(len(want)) {
		t.Errorf("Requests() = %d, want %d", c.Requests(), len(want))
	}
}

func TestPathSegmentsEscaped(t *testing.T) {
	b := &backend{bodies: map[string]string{}}
	c := newTestClient(t, b)

	_, _ = c.Profile(context.Background(), "a b/c")

	got := b.requests()
	if len(got) != 1 || got[0] != "/api/v1/users/a%20b%2Fc" {
		t.Errorf("request URIs = %v, want escaped username", got)
	}
}

func TestDecodeContributionCalendar(t *testing.T) {
	b := &backend{bodies: map[string]string{
		"/api/v1/users/octocat/contribution-calendar": `{
			"totalContributions": 42,
			"accountCreatedYear": 2011,
			"weeks": [
				{"contributionDays": [{"date": "2023-01-01", "contributionCount": 2}]},
				{"contributionDays": [{"date": "2023-01-08", "contributionCount": 40}]}
			]
		}`,
	}}
	c := newTestClient(t, b)

	got, err := c.ContributionCalendar(context.Background(), "octocat", 2023)
	if err != nil {
		t.Fatalf("ContributionCalendar() error = %v", err)
	}

	want := &model.ContributionCalendar{
		TotalContributions: 42,
		AccountCreatedYear: 2011,
		Weeks: []model.Week{
			{ContributionDays: []model.Day{{Date: "2023-01-01", ContributionCount: 2}}},
			{ContributionDays: []model.Day{{Date: "2023-01-08", ContributionCount: 40}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("calendar mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeContributionAnalysis(t *testing.T) {
	b := &backend{bodies: map[string]string{
		"/api/v1/analyze/o/r/contributions/u": `{
			"contribution_stats": {"commits": 12, "pull_requests": 3, "issues": 1},
			"ai_analysis": {
				"impact_level": "High",
				"role_summary": "Core maintainer",
				"key_contributions": ["parser"],
				"skills_demonstrated": ["Go"]
			}
		}`,
	}}
	c := newTestClient(t, b)

	got, err := c.AnalyzeContributions(context.Background(), "o", "r", "u")
	if err != nil {
		t.Fatalf("AnalyzeContributions() error = %v", err)
	}
	if got.ContributionStats.Commits != 12 || got.ContributionStats.PullRequests != 3 {
		t.Errorf("unexpected stats %+v", got.ContributionStats)
	}
	if got.AIAnalysis.Impact() != model.ImpactHigh {
		t.Errorf("Impact() = %q, want high", got.AIAnalysis.Impact())
	}
}

func TestStatusError(t *testing.T) {
	b := &backend{status: http.StatusInternalServerError}
	c := newTestClient(t, b)

	_, err := c.ContributionCalendar(context.Background(), "octocat", 2023)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("error %v should wrap ErrRequestFailed", err)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error %v should be a *StatusError", err)
	}
	if se.Endpoint != EndpointContributionCalendar || se.StatusCode != 500 {
		t.Errorf("StatusError = %+v", se)
	}
	if IsNotFound(err) {
		t.Error("500 should not be reported as not found")
	}
}

func TestNotFound(t *testing.T) {
	b := &backend{bodies: map[string]string{}}
	c := newTestClient(t, b)

	_, err := c.Profile(context.Background(), "ghost")
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(%v) = false, want true", err)
	}
}

func TestMalformedJSON(t *testing.T) {
	b := &backend{bodies: map[string]string{
		"/api/v1/users/octocat": `{"login":`,
	}}
	c := newTestClient(t, b)

	_, err := c.Profile(context.Background(), "octocat")
	if err == nil || !strings.Contains(err.Error(), "decode") {
		t.Errorf("expected decode error, got %v", err)
	}
	if errors.Is(err, ErrRequestFailed) {
		t.Error("decode failures are not status failures")
	}
}

func TestRepositoryDetailRequiresOwnerAndName(t *testing.T) {
	b := &backend{}
	c := newTestClient(t, b)

	if _, err := c.RepositoryDetail(context.Background(), "octocat", "", "x"); err == nil {
		t.Error("expected error for empty owner")
	}
	if len(b.requests()) != 0 {
		t.Error("no request should be issued for an invalid repository")
	}
}

func TestContextCancellation(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Profile(ctx, "octocat")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}
