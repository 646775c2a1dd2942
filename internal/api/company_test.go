package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mmarks/auditdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCompanyMultipart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/company/", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"),
			"multipart boundary header replaces the JSON default")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Acme Corp", r.FormValue("name"))

		file, header, err := r.FormFile("filing")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "annual-report.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake pdf bytes", string(content))

		io.WriteString(w, `{"company_id":"c-42"}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	companyID, err := client.CreateCompany(context.Background(),
		map[string]string{"name": "Acme Corp"},
		[]domain.Upload{{Field: "filing", Filename: "annual-report.pdf", Content: strings.NewReader("fake pdf bytes")}},
	)
	require.NoError(t, err)
	assert.Equal(t, "c-42", companyID)
}

func TestCreateCompanyErrorContract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, "missing filing document")
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).CreateCompany(context.Background(), nil, nil)
	require.Error(t, err)
	assert.Equal(t, "missing filing document", err.Error())
}

func TestListCompanies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/company/", r.URL.Path)
		io.WriteString(w, `[{"company_id":"c-1","name":"Acme Corp"},{"company_id":"c-2","name":"Globex"}]`)
	}))
	defer srv.Close()

	companies, err := newTestClient(srv.URL).ListCompanies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 2)
	assert.Equal(t, "Acme Corp", companies[0].Name)
	assert.Equal(t, "c-2", companies[1].ID)
}

func TestGetCompany(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/company/c-1", r.URL.Path)
		io.WriteString(w, `{"company_id":"c-1","name":"Acme Corp","jurisdiction":"NL"}`)
	}))
	defer srv.Close()

	company, err := newTestClient(srv.URL).GetCompany(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", company.Name)
	assert.Equal(t, "NL", company.Jurisdiction)
}
