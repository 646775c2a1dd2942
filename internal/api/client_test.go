package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(url, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSendChatSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/chat/", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "who owns acme?", req["message"])
		assert.Equal(t, "c-1", req["company_id"])

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"Acme is owned by Holdings BV.","citations":["filing-2023.pdf","registry/acme"],"confidence":0.87}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply, err := client.SendChat(context.Background(), "who owns acme?", "c-1", "")
	require.NoError(t, err)

	assert.Equal(t, "Acme is owned by Holdings BV.", reply.Message)
	assert.Equal(t, []string{"filing-2023.pdf", "registry/acme"}, reply.Citations)
	assert.InDelta(t, 0.87, reply.Confidence, 1e-9)
}

func TestSendChatOmitsEmptyScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_, hasCompany := req["company_id"]
		_, hasAudit := req["audit_id"]
		assert.False(t, hasCompany)
		assert.False(t, hasAudit)
		io.WriteString(w, `{"message":"ok","citations":[],"confidence":1}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SendChat(context.Background(), "hi", "", "")
	require.NoError(t, err)
}

func TestErrorBodyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "not found")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SendChat(context.Background(), "hi", "", "")
	require.Error(t, err)
	assert.Equal(t, "not found", err.Error())

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestErrorEmptyBodySynthesizesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.GetAudit(context.Background(), "a-1")
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestTransportErrorSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Refuse connections

	_, err := newTestClient(srv.URL).ListCompanies(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures are not APIErrors")
	assert.ErrorIs(t, err, domain.ErrServerOffline)
	assert.NotEmpty(t, Message(err))
}

func TestParseFailureSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "this is not json")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetAudit(context.Background(), "a-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestCallerHeadersWin(t *testing.T) {
	var gotContentType, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		io.WriteString(w, `{}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.do(context.Background(), http.MethodPost, "/api/company/", nil, nil,
		map[string]string{"Content-Type": "text/plain"})
	require.NoError(t, err)

	assert.Equal(t, "text/plain", gotContentType, "caller header overrides the JSON default")
	assert.Equal(t, "application/json", gotAccept, "untouched defaults survive")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.Equal(t, "unknown error", Message(errors.New("")))
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	client := NewClient("http://127.0.0.1:9999///", nil)
	assert.Equal(t, "http://127.0.0.1:9999", client.BaseURL())
}

func TestDefaultBaseURL(t *testing.T) {
	client := NewClient("", nil)
	assert.Equal(t, DefaultBaseURL, client.BaseURL())
}
