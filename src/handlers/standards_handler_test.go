package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/fasbooks/src/models"
)

func newStandardsHandler(t *testing.T) *StandardsHandler {
	t.Helper()
	responseCache := cache.New(time.Hour, 10*time.Minute)
	return NewStandardsHandler(newTestService(t, nil), responseCache, time.Hour)
}

func getStandards(t *testing.T, h *StandardsHandler, ifNoneMatch string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/standards", nil)
	if ifNoneMatch != "" {
		req.Header.Set("If-None-Match", ifNoneMatch)
	}
	rr := httptest.NewRecorder()
	h.HandleGetStandards(rr, req)
	return rr
}

func TestHandleGetStandards(t *testing.T) {
	h := newStandardsHandler(t)

	rr := getStandards(t, h, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.NotEmpty(t, rr.Header().Get("ETag"))

	var infos []models.StandardInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &infos))
	require.Len(t, infos, 5)
	assert.Equal(t, "FAS_4", infos[0].StandardID)
	assert.Equal(t, "Foreign Currency Transactions and Foreign Operations", infos[0].StandardName)
	assert.Equal(t, "FAS_32", infos[4].StandardID)
}

func TestHandleGetStandardsCachesResponse(t *testing.T) {
	h := newStandardsHandler(t)

	first := getStandards(t, h, "")
	require.Equal(t, http.StatusOK, first.Code)

	// Second request is served from cache: same body, same ETag.
	second := getStandards(t, h, "")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, first.Header().Get("ETag"), second.Header().Get("ETag"))

	_, found := h.responseCache.Get(ckStandardsInfo)
	assert.True(t, found)
}

func TestHandleGetStandardsNotModified(t *testing.T) {
	h := newStandardsHandler(t)

	first := getStandards(t, h, "")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)

	conditional := getStandards(t, h, etag)
	assert.Equal(t, http.StatusNotModified, conditional.Code)
	assert.Empty(t, conditional.Body.String())

	stale := getStandards(t, h, "\"some-other-etag\"")
	assert.Equal(t, http.StatusOK, stale.Code)
}
