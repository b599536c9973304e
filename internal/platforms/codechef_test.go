package platforms

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codechefServer(t *testing.T, future, past []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/list/contests/all", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"future_contests": future,
			"past_contests":   past,
		})
	}))
}

func TestCodeChefFetch(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	srv := codechefServer(t,
		[]map[string]any{
			{"contest_code": "START101", "contest_name": "Starters 101", "contest_start_date_iso": now.Add(24 * time.Hour).Format(time.RFC3339), "contest_duration": "120"},
		},
		[]map[string]any{
			{"contest_code": "START100", "contest_name": "Starters 100", "contest_start_date_iso": now.Add(-72 * time.Hour).Format(time.RFC3339), "contest_duration": "180"},
		},
	)
	defer srv.Close()

	f := NewCodeChefFetcher(srv.URL, nil)
	contests, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 2)

	assert.Equal(t, "Starters 101", contests[0].Title)
	assert.Equal(t, PlatformCodeChef, contests[0].Platform)
	assert.Equal(t, 120, contests[0].Duration)
	assert.Equal(t, srv.URL+"/START101", contests[0].URL)
	assert.False(t, contests[0].Past)

	assert.Equal(t, "Starters 100", contests[1].Title)
	assert.True(t, contests[1].Past)
	assert.Equal(t, 180, contests[1].Duration)
}

func TestCodeChefFetchBoundsPastWindow(t *testing.T) {
	now := time.Now().UTC()
	var past []map[string]any
	for i := 0; i < 30; i++ {
		past = append(past, map[string]any{
			"contest_code":           fmt.Sprintf("START%d", 100-i),
			"contest_name":           fmt.Sprintf("Starters %d", 100-i),
			"contest_start_date_iso": now.Add(-time.Duration(i+1) * 24 * time.Hour).Format(time.RFC3339),
			"contest_duration":       "120",
		})
	}
	srv := codechefServer(t, nil, past)
	defer srv.Close()

	f := NewCodeChefFetcher(srv.URL, nil)
	contests, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, contests, pastWindow)
}

func TestCodeChefFetchDropsMalformedRecords(t *testing.T) {
	now := time.Now().UTC()
	srv := codechefServer(t,
		[]map[string]any{
			{"contest_code": "BAD1", "contest_name": "Broken Date", "contest_start_date_iso": "not-a-date", "contest_duration": "120"},
			{"contest_code": "BAD2", "contest_name": "Broken Duration", "contest_start_date_iso": now.Format(time.RFC3339), "contest_duration": "soon"},
			{"contest_code": "START101", "contest_name": "Starters 101", "contest_start_date_iso": now.Add(24 * time.Hour).Format(time.RFC3339), "contest_duration": "120"},
		},
		nil,
	)
	defer srv.Close()

	f := NewCodeChefFetcher(srv.URL, nil)
	contests, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 1)
	assert.Equal(t, "Starters 101", contests[0].Title)
}
