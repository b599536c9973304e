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

func codeforcesServer(t *testing.T, status string, result []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/contest.list", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"status": status, "result": result})
	}))
}

func TestCodeforcesFetch(t *testing.T) {
	now := time.Now()
	srv := codeforcesServer(t, "OK", []map[string]any{
		{"id": 1912, "name": "Codeforces Round 911 (Div. 2)", "phase": "BEFORE", "durationSeconds": 7200, "startTimeSeconds": now.Add(24 * time.Hour).Unix()},
		{"id": 1911, "name": "Codeforces Round 910 (Div. 2)", "phase": "CODING", "durationSeconds": 7200, "startTimeSeconds": now.Add(-time.Hour).Unix()},
		{"id": 1910, "name": "Codeforces Round 909 (Div. 2)", "phase": "FINISHED", "durationSeconds": 7200, "startTimeSeconds": now.Add(-48 * time.Hour).Unix()},
	})
	defer srv.Close()

	f := NewCodeforcesFetcher(srv.URL, nil)
	contests, err := f.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, contests, 2, "a running contest is neither upcoming nor past")

	assert.Equal(t, "Codeforces Round 911 (Div. 2)", contests[0].Title)
	assert.False(t, contests[0].Past)
	assert.Equal(t, 120, contests[0].Duration)
	assert.Equal(t, srv.URL+"/contest/1912", contests[0].URL)

	assert.Equal(t, "Codeforces Round 909 (Div. 2)", contests[1].Title)
	assert.True(t, contests[1].Past)
}

func TestCodeforcesFetchBoundsPastWindow(t *testing.T) {
	now := time.Now()
	var result []map[string]any
	for i := 0; i < 30; i++ {
		result = append(result, map[string]any{
			"id": 2000 - i, "name": fmt.Sprintf("Codeforces Round %d", 900-i), "phase": "FINISHED",
			"durationSeconds": 7200, "startTimeSeconds": now.Add(-time.Duration(i+1) * 24 * time.Hour).Unix(),
		})
	}
	srv := codeforcesServer(t, "OK", result)
	defer srv.Close()

	f := NewCodeforcesFetcher(srv.URL, nil)
	contests, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, contests, pastWindow)
	assert.Equal(t, "Codeforces Round 900", contests[0].Title)
}

func TestCodeforcesFetchDropsRecordWithoutStartTime(t *testing.T) {
	srv := codeforcesServer(t, "OK", []map[string]any{
		{"id": 100, "name": "Gym Mirror", "phase": "FINISHED", "durationSeconds": 7200},
	})
	defer srv.Close()

	f := NewCodeforcesFetcher(srv.URL, nil)
	contests, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, contests)
}

func TestCodeforcesFetchErrorsOnFailedStatus(t *testing.T) {
	srv := codeforcesServer(t, "FAILED", nil)
	defer srv.Close()

	f := NewCodeforcesFetcher(srv.URL, nil)
	_, err := f.Fetch(context.Background())
	assert.Error(t, err)
}
