package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElevation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "44.430000", r.URL.Query().Get("latitude"))
		assert.Equal(t, "26.100000", r.URL.Query().Get("longitude"))
		_, _ = w.Write([]byte(`{"elevation":[87.5]}`))
	}))
	defer srv.Close()

	client := NewElevationClient(srv.Client())
	client.baseURL = srv.URL

	meters, err := client.Elevation(context.Background(), 44.43, 26.1)
	require.NoError(t, err)
	assert.Equal(t, 87.5, meters)
}

func TestElevationEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elevation":[]}`))
	}))
	defer srv.Close()

	client := NewElevationClient(srv.Client())
	client.baseURL = srv.URL

	_, err := client.Elevation(context.Background(), 44.43, 26.1)
	require.Error(t, err)
}
