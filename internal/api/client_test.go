package api_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/Tiliavir/punch/internal/api"
	"github.com/Tiliavir/punch/internal/model"
)

const testSID = "c2Vzc2lvbi1pZC0xMjM0NTY3ODkw"

// newServer starts a fake API that requires the test session on /u and /a routes.
func newServer(t *testing.T, mux *http.ServeMux) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-Id") == "" {
			http.Error(w, "missing request id", http.StatusBadRequest)
			return
		}
		if len(r.URL.Path) > 3 && (r.URL.Path[:3] == "/u/" || r.URL.Path[:3] == "/a/") &&
			r.Header.Get("Authorization") != "Bearer "+testSID {
			http.Error(w, "401 Unauthorized", http.StatusUnauthorized)
			return
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func authedClient(srv *httptest.Server) *api.Client {
	return api.NewClient(context.Background(), srv.URL, &oauth2.Token{AccessToken: testSID, TokenType: "Bearer"})
}

func TestAuthorize(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /authorize", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		if string(body) != `{"email":"test@invalid","password":"hunter2"}` {
			http.Error(w, "401 Unauthorized", http.StatusUnauthorized)
			return
		}
		fmt.Fprintf(w, `{"token":%q}`, testSID)
	})
	srv := newServer(t, mux)
	c := api.NewClient(context.Background(), srv.URL, nil)

	tok, err := c.Authorize(context.Background(), "test@invalid", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, testSID, tok)

	_, err = c.Authorize(context.Background(), "test@invalid", "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, api.ErrUnauthorized))
}

func TestStatusAndEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /u/status", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"state":"I","since":1571043673,"online":2,"deltaForMonth":-3600,"deltaForDay":120}`)
	})
	mux.HandleFunc("GET /u/entries", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"1571090400":[{"id":3,"from":1571130000,"to":1571131000,"valid":true}],`+
			`"1571004000":[{"id":1,"from":1571043673,"to":1571043674,"valid":true}]}`)
	})
	srv := newServer(t, mux)
	c := authedClient(srv)

	s, err := c.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Status{State: "I", Since: 1571043673, Online: 2, DeltaForMonth: -3600, DeltaForDay: 120}, s)
	assert.True(t, s.ClockedIn())

	entries, err := c.Entries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1571090400), entries[0].Day)
	assert.Equal(t, int64(1571004000), entries[1].Day)
}

func TestClockInOut(t *testing.T) {
	var calls []string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /u/clock/in", func(w http.ResponseWriter, r *http.Request) { calls = append(calls, "in") })
	mux.HandleFunc("PUT /u/clock/out", func(w http.ResponseWriter, r *http.Request) { calls = append(calls, "out") })
	srv := newServer(t, mux)
	c := authedClient(srv)

	require.NoError(t, c.ClockIn(context.Background()))
	require.NoError(t, c.ClockOut(context.Background()))
	assert.Equal(t, []string{"in", "out"}, calls)
}

func TestUnauthenticatedClientIsRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /u/status", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, `{}`) })
	srv := newServer(t, mux)
	c := api.NewClient(context.Background(), srv.URL, nil)

	_, err := c.Status(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, api.ErrUnauthorized)

	var se *api.StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "401 Unauthorized", se.Body)
}

func TestVersionAndOnline(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /version", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "-1") })
	mux.HandleFunc("GET /u/users/online/count", func(w http.ResponseWriter, r *http.Request) { fmt.Fprint(w, "3") })
	mux.HandleFunc("GET /a/users/online/list", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"uid":1,"since":1571043673},{"uid":4,"since":1571043000}]`)
	})
	srv := newServer(t, mux)
	c := authedClient(srv)

	ok, err := c.VersionMatches(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)

	n, err := c.OnlineCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	users, err := c.OnlineUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.OnlineUser{{UID: 1, Since: 1571043673}, {UID: 4, Since: 1571043000}}, users)
}

func TestEditAndDeleteEntry(t *testing.T) {
	var got []string
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /a/entries/{eid}", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		got = append(got, fmt.Sprintf("edit %s %s-%s", r.PathValue("eid"), r.Form.Get("from"), r.Form.Get("to")))
	})
	mux.HandleFunc("DELETE /a/entries/{eid}", func(w http.ResponseWriter, r *http.Request) {
		got = append(got, "delete "+r.PathValue("eid"))
	})
	srv := newServer(t, mux)
	c := authedClient(srv)

	require.NoError(t, c.EditEntry(context.Background(), 7, 100, 200))
	require.NoError(t, c.DeleteEntry(context.Background(), 7))
	assert.ErrorIs(t, c.EditEntry(context.Background(), 7, 200, 100), api.ErrInvalidRange)
	assert.Equal(t, []string{"edit 7 100-200", "delete 7"}, got)
}

func TestServerErrorKeepsBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /u/entries", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
	})
	srv := newServer(t, mux)

	_, err := authedClient(srv).Entries(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, api.ErrUnauthorized)
	assert.Contains(t, err.Error(), "server returned 500: 500 Internal Server Error")
}
