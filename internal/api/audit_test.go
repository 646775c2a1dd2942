package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartAudit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/audit/c-1", r.URL.Path)
		io.WriteString(w, `{"audit_id":"a-9"}`)
	}))
	defer srv.Close()

	auditID, err := newTestClient(srv.URL).StartAudit(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "a-9", auditID)
}

func TestGetAuditProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/audit/a-9/progress", r.URL.Path)
		io.WriteString(w, `{"status":"running","percent":42.5,"current_step":3,"total_steps":7,"step_name":"cross-referencing filings"}`)
	}))
	defer srv.Close()

	progress, err := newTestClient(srv.URL).GetAuditProgress(context.Background(), "a-9")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusRunning, progress.Status)
	assert.InDelta(t, 42.5, progress.Percent, 1e-9)
	assert.Equal(t, 3, progress.CurrentStep)
	assert.Equal(t, 7, progress.TotalSteps)
	assert.Equal(t, "cross-referencing filings", progress.StepName)
}

func TestDiscoverOwnership(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ownership/c-1", r.URL.Path)
		io.WriteString(w, `{
			"company_id":"c-1","status":"quota_exceeded","percent":60,
			"entities":[{"entity_id":"e-1","name":"Holdings BV"}],
			"edges":[{"parent_id":"e-1","child_id":"c-1","percent":100}]
		}`)
	}))
	defer srv.Close()

	ownership, err := newTestClient(srv.URL).DiscoverOwnership(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusQuotaExceeded, ownership.Status)
	require.Len(t, ownership.Entities, 1)
	require.Len(t, ownership.Edges, 1)
	assert.Equal(t, "Holdings BV", ownership.Entities[0].Name)
	assert.InDelta(t, 100, ownership.Edges[0].Percent, 1e-9)
}

func TestClearChatSessionQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/chat/session/c-1", r.URL.Path)
		assert.Equal(t, "a-9", r.URL.Query().Get("audit_id"))
		io.WriteString(w, `{"status":"cleared"}`)
	}))
	defer srv.Close()

	status, err := newTestClient(srv.URL).ClearChatSession(context.Background(), "c-1", "a-9")
	require.NoError(t, err)
	assert.Equal(t, "cleared", status)
}

func TestClearChatSessionWithoutAudit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		io.WriteString(w, `{"status":"cleared"}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).ClearChatSession(context.Background(), "c-1", "")
	require.NoError(t, err)
}
