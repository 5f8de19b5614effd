package calendar_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/spiffcs/ghlens/internal/api"
	"github.com/spiffcs/ghlens/internal/calendar"
)

// TestSwitchingToCachedYearSkipsNetwork drives a View and Loader against a
// real HTTP backend and counts the requests it receives.
func TestSwitchingToCachedYearSkipsNetwork(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		year := r.URL.Query().Get("year")
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{"totalContributions":1,"accountCreatedYear":2021,"weeks":[{"contributionDays":[{"date":"%s-01-01","contributionCount":1}]}]}`, year)
	}))
	defer srv.Close()

	client, err := api.NewClient(srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	loader := calendar.NewLoader(client, nil)
	view := calendar.NewView("octocat", loader.Cache(), 2024)
	ctx := context.Background()

	show := func(year int) {
		t.Helper()
		req, ok := view.Select(year)
		if !ok {
			return
		}
		data, _, err := loader.Load(ctx, req.Key.Username, req.Key.Year)
		view.Resolve(calendar.Result{Request: req, Data: data, Err: err})
		if view.Err() != nil {
			t.Fatalf("year %d: %v", year, view.Err())
		}
	}

	show(2024)
	show(2023)
	if got := hits.Load(); got != 2 {
		t.Fatalf("backend hits after two new years = %d, want 2", got)
	}

	show(2024)
	show(2023)
	show(2024)
	if got := hits.Load(); got != 2 {
		t.Errorf("backend hits after switching to cached years = %d, want 2", got)
	}
	if client.Requests() != 2 {
		t.Errorf("client Requests() = %d, want 2", client.Requests())
	}
	if view.Data() == nil || view.Data().Weeks[0].ContributionDays[0].Date != "2024-01-01" {
		t.Errorf("view should display 2024, got %+v", view.Data())
	}
}
