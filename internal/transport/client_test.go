package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenfolio/bankmap/pkg/errors"
)

func TestGetRetriesGatewayTimeout(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusGatewayTimeout)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New(WithRetry(3, time.Millisecond))

	var out struct {
		OK bool `json:"ok"`
	}
	err := c.GetJSON(context.Background(), "banktrack", srv.URL, &out)
	require.NoError(t, err)
	assert.True(t, out.OK)
	assert.Equal(t, 3, calls)
}

func TestGetExhaustsRetries(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(524)
	}))
	defer srv.Close()

	c := New(WithRetry(2, time.Millisecond))

	_, err := c.Get(context.Background(), "banktrack", srv.URL)
	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 524, apiErr.StatusCode)
	assert.True(t, errors.IsProviderUnavailable(err))
}

func TestGetDoesNotRetryHardErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := New(WithRetry(3, time.Millisecond)).GetJSON(context.Background(), "banktrack", srv.URL, &struct{}{})
	require.Error(t, err)
	assert.Equal(t, 1, calls)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
}

func TestGetHonorsContextDuringBackoff(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := New(WithRetry(5, time.Minute)).Get(ctx, "banktrack", srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
