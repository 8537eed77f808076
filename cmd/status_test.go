package cmd

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tiliavir/punch/internal/config"
	"github.com/Tiliavir/punch/internal/model"
	"github.com/Tiliavir/punch/internal/storage"
)

// statusServer serves GET /u/status and counts the requests it receives.
func statusServer(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /u/status", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Bearer sid-1", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(model.Status{State: model.StateOut, Online: 2})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func loggedInHome(t *testing.T, apiURL string) string {
	t.Helper()
	base := t.TempDir()
	t.Setenv(config.EnvHome, base)
	t.Setenv(config.EnvAPIURL, apiURL)
	require.NoError(t, storage.SaveSession(base, storage.NewSession("test@invalid", "sid-1", time.Now())))
	return base
}

func TestStatusReusesCachedStatusAcrossRuns(t *testing.T) {
	var calls atomic.Int32
	srv := statusServer(t, &calls)
	base := loggedInHome(t, srv.URL)
	statusCmd.SetContext(context.Background())

	require.NoError(t, runStatus(statusCmd, nil))
	require.NoError(t, runStatus(statusCmd, nil))
	assert.Equal(t, int32(1), calls.Load())

	_, _, ok, err := storage.StatusFile{Base: base}.LoadStatus()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStatusRefetchesAfterLogout(t *testing.T) {
	var calls atomic.Int32
	srv := statusServer(t, &calls)
	base := loggedInHome(t, srv.URL)
	statusCmd.SetContext(context.Background())

	require.NoError(t, runStatus(statusCmd, nil))
	forgetStatus(base)
	require.NoError(t, runStatus(statusCmd, nil))
	assert.Equal(t, int32(2), calls.Load())
}
