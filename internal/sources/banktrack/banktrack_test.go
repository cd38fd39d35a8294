package banktrack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/bankmap/pkg/ingest"
)

func TestFetchMapsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"slug": "test-bank", "title": "Test Bank", "about": "a bank", "countries": ["GB", "IE"]},
			{"slug": "", "title": "No Slug Bank"},
			{"slug": "green-bank", "title": "Green Bank", "website": "https://green.example", "lei": "LEI123"}
		]`))
	}))
	defer srv.Close()

	rows, err := New(WithEndpoint(srv.URL)).Fetch(context.Background())
	require.NoError(t, err)

	// The slugless record is dropped, the rest map field for field.
	require.Len(t, rows, 2)
	assert.Equal(t, "test-bank", rows[0].SourceID)
	assert.Equal(t, "Test Bank", rows[0].Fields[ingest.FieldName])
	assert.Equal(t, []string{"GB", "IE"}, rows[0].Fields[ingest.FieldCountries])
	assert.Equal(t, "LEI123", rows[1].Fields[ingest.FieldLEI])
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(WithEndpoint(srv.URL)).Fetch(context.Background())
	assert.Error(t, err)
}
