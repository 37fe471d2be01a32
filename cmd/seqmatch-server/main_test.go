package main

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aria-lang/seqmatch-go/internal/config"
)

func TestRouter(t *testing.T) {
	logger, hook := test.NewNullLogger()
	h := newRouter(config.Default(), logger)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "/health", hook.LastEntry().Data["path"])

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/search/best-match")

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"sequence1": "ACGT", "sequence2": "TTACGTTT"}`)
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/alignment/local", body))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score":8`)
}
