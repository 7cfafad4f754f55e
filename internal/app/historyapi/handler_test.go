package historyapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"signaler-launcher/internal/history"
)

func TestHistoryList(t *testing.T) {
	dataDir := t.TempDir()
	store := history.NewStore(dataDir)
	require.NoError(t, store.Record(history.Entry{ID: "run-1", Mode: "url", Target: "https://example.com", OutputDir: "/data/runs/run-1"}))
	require.NoError(t, store.Record(history.Entry{ID: "run-2", Mode: "folder", Target: "/srv/site", OutputDir: "/data/runs/run-2"}))

	r := chi.NewRouter()
	NewHandler(store).RegisterRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got []history.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "run-2", got[0].ID)
}

func TestHistoryList_EmptyIsJSONArray(t *testing.T) {
	r := chi.NewRouter()
	NewHandler(history.NewStore(t.TempDir())).RegisterRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/api/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, "[]", w.Body.String())
}
