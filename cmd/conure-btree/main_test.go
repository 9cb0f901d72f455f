package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/conure-db/conure-btree/db"
)

func TestNewHTTPServer(t *testing.T) {
	logger := zaptest.NewLogger(t)
	database, err := db.Open(db.Options{Degree: 2, Logger: logger})
	require.NoError(t, err)
	defer database.Close()
	require.NoError(t, database.Put("a", []byte("1")))

	srv := newHTTPServer("127.0.0.1:0", database, logger)
	assert.Equal(t, "127.0.0.1:0", srv.Addr)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.NotNil(t, srv.ErrorLog)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/kv?key=a", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "1", rec.Body.String())
}
