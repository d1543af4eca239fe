package stm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusHandler(t *testing.T) {
	eng := newMockEngine()
	m, _ := startedMachine(t, eng)

	eng.deliver(entry(0, "a"), entry(1, "b"))
	require.Eventually(t, func() bool {
		return m.InSyncOffset() == 1
	}, 2*time.Second, 5*time.Millisecond)

	h := &statusHandler{m: m}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var s status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&s))
	assert.Equal(t, "test", s.Name)
	assert.True(t, s.Hydrated)
	assert.Equal(t, int64(1), s.InSyncOffset)
	assert.Equal(t, int64(2), s.NextOffset)
	assert.True(t, s.EngineInfo.Leader)
	assert.Equal(t, int64(1), s.EngineInfo.CommittedOffset)
}

func TestStatusHandler_RejectsNonGET(t *testing.T) {
	eng := newMockEngine()
	m, _ := startedMachine(t, eng)

	h := &statusHandler{m: m}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}
