package daybooksdk

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testJournalAPI returns a JournalAPI pointed at url with retries disabled
// so failure-path tests return immediately.
func testJournalAPI(url string) *JournalAPI {
	client := newHTTPClient().
		SetBaseURL(url).
		SetCommonRetryCount(0).
		SetTimeout(2 * time.Second)
	return newJournalAPI(client)
}

func TestGetEntry_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/journal/entry", r.URL.Path)
		assert.Equal(t, "2026-08-29", r.URL.Query().Get("date"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"date":"2026-08-29","content":"## Notes\nhi\n","updated_at":"2026-08-29T10:00:00.123Z"}`))
	}))
	defer srv.Close()

	api := testJournalAPI(srv.URL)
	resp, err := api.GetEntry(context.Background(), &GetEntryParams{Date: "2026-08-29"})
	require.NoError(t, err)
	assert.Equal(t, "## Notes\nhi\n", resp.Content)
	assert.Equal(t, 2026, resp.UpdatedAt.Year())
	assert.Empty(t, resp.Digest)
}

func TestGetEntry_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"E_ENTRY_NOT_FOUND","error":"no entry for date"}`))
	}))
	defer srv.Close()

	api := testJournalAPI(srv.URL)
	_, err := api.GetEntry(context.Background(), &GetEntryParams{Date: "2026-08-29"})
	require.ErrorIs(t, err, ErrEntryNotFound)
}

func TestGetEntry_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"E_AUTH_INVALID_CREDENTIALS","error":"token expired"}`))
	}))
	defer srv.Close()

	api := testJournalAPI(srv.URL)
	_, err := api.GetEntry(context.Background(), &GetEntryParams{Date: "2026-08-29"})
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrEntryNotFound)
}

func TestGetEntry_Unreachable(t *testing.T) {
	// Grab a free port, then close the listener so nothing is serving it.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	api := testJournalAPI("http://" + addr)
	_, err = api.GetEntry(context.Background(), &GetEntryParams{Date: "2026-08-29"})
	require.ErrorIs(t, err, ErrUnreachable)
}

func TestPutEntry_ReturnsServerTimestamp(t *testing.T) {
	serverTime := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"date":"2026-08-29","updated_at":"` + serverTime.Format(time.RFC3339) + `"}`))
	}))
	defer srv.Close()

	api := testJournalAPI(srv.URL)
	resp, err := api.PutEntry(context.Background(), &PutEntryParams{
		Date:           "2026-08-29",
		Content:        "## Backlog\n- item\n",
		ClientModified: time.Now(),
	})
	require.NoError(t, err)
	assert.True(t, resp.UpdatedAt.Equal(serverTime))
}

func TestAPIError_ErrorString(t *testing.T) {
	e := &APIError{Code: CodeEntryPutFailed, Message: "disk full"}
	assert.Contains(t, e.Error(), CodeEntryPutFailed)
	assert.Contains(t, e.Error(), "disk full")
}
