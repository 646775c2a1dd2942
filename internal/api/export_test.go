package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportPDFReturnsRawBytes(t *testing.T) {
	payload := []byte("%PDF-1.4 fake report")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/export/a-9/pdf", r.URL.Path)
		w.Header().Set("Content-Type", "application/pdf")
		w.Write(payload)
	}))
	defer srv.Close()

	data, err := newTestClient(srv.URL).ExportPDF(context.Background(), "a-9")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestExportCSVReturnsRawBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/export/a-9/csv", r.URL.Path)
		io.WriteString(w, "finding,severity\nmissing filing,high\n")
	}))
	defer srv.Close()

	data, err := newTestClient(srv.URL).ExportCSV(context.Background(), "a-9")
	require.NoError(t, err)
	assert.Contains(t, string(data), "missing filing")
}

func TestExportFailureKeepsErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "audit not finished")
	}))
	defer srv.Close()

	data, err := newTestClient(srv.URL).ExportPDF(context.Background(), "a-9")
	require.Error(t, err)
	assert.Nil(t, data)
	assert.Equal(t, "audit not finished", err.Error())
}
