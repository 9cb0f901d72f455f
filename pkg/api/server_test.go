package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/conure-db/conure-btree/db"
)

func newTestServer(t *testing.T) (*httptest.Server, *db.DB) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	database, err := db.Open(db.Options{Degree: 2, CheckInvariants: true, Logger: logger})
	require.NoError(t, err)

	mux := http.NewServeMux()
	New(database, logger).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(func() {
		srv.Close()
		_ = database.Close()
	})
	return srv, database
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestKV(t *testing.T) {
	srv, _ := newTestServer(t)
	kv := srv.URL + "/kv?key="

	tests := []struct {
		method string
		key    string
		body   string
		status int
		want   string
	}{
		{http.MethodGet, "a", "", http.StatusNotFound, "key not found"},
		{http.MethodPut, "a", "1", http.StatusOK, "OK"},
		{http.MethodGet, "a", "", http.StatusOK, "1"},
		{http.MethodPost, "a", "2", http.StatusConflict, "duplicate key"},
		{http.MethodPut, "a", "3", http.StatusOK, "OK"},
		{http.MethodGet, "a", "", http.StatusOK, "3"},
		{http.MethodPost, "b", "4", http.StatusOK, "OK"},
		{http.MethodDelete, "a", "", http.StatusOK, "OK"},
		{http.MethodDelete, "a", "", http.StatusNotFound, "key not found"},
		{http.MethodGet, "", "", http.StatusBadRequest, "missing key"},
		{http.MethodPatch, "b", "", http.StatusMethodNotAllowed, ""},
	}
	for _, tt := range tests {
		status, body := do(t, tt.method, kv+tt.key, tt.body)
		assert.Equal(t, tt.status, status, "%s %q", tt.method, tt.key)
		assert.Equal(t, tt.want, body, "%s %q", tt.method, tt.key)
	}
}

func TestStatsTreeCheck(t *testing.T) {
	srv, database := newTestServer(t)

	for _, k := range []string{"d", "b", "a", "c", "e"} {
		require.NoError(t, database.Insert(k, nil))
	}

	status, body := do(t, http.MethodGet, srv.URL+"/stats", "")
	require.Equal(t, http.StatusOK, status)
	var stats map[string]int
	require.NoError(t, json.Unmarshal([]byte(body), &stats))
	assert.Equal(t, map[string]int{"len": 5, "height": 1, "nodes": 3, "free_slots": 0}, stats)

	status, body = do(t, http.MethodGet, srv.URL+"/tree", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "L0: [b]\nL1: [a] [c d e]\n", body)

	status, body = do(t, http.MethodGet, srv.URL+"/check", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", body)

	status, _ = do(t, http.MethodPost, srv.URL+"/stats", "")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func TestClosedDatabase(t *testing.T) {
	srv, database := newTestServer(t)
	require.NoError(t, database.Close())

	for _, path := range []string{"/kv?key=a", "/stats", "/tree", "/check"} {
		status, body := do(t, http.MethodGet, srv.URL+path, "")
		assert.Equal(t, http.StatusServiceUnavailable, status, path)
		assert.Equal(t, "database closed", body, path)
	}
}
