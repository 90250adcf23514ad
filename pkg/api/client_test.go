package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateManifestPostsExactBody(t *testing.T) {
	manifest := []byte(`{"a":1}`)

	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, UserAgent(), r.Header.Get("User-Agent"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.Equal(t, manifest, body)

		w.Write([]byte(`{"valid": true}`))
	}))
	defer server.Close()

	err := NewClient(server.URL).ValidateManifest(context.Background(), manifest)
	require.NoError(t, err)
	require.Equal(t, 1, requests)
}

func TestValidateManifestRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"valid": false}`))
	}))
	defer server.Close()

	err := NewClient(server.URL).ValidateManifest(context.Background(), []byte(`{}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "422")
}

func TestValidateManifestConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	err := NewClient(server.URL).ValidateManifest(context.Background(), []byte(`{}`))
	require.Error(t, err)
}

func TestTransportDoesNotClobberExplicitHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "custom", r.Header.Get("User-Agent"))
	}))
	defer server.Close()

	client := &http.Client{Transport: &Transport{headers: map[string]string{"User-Agent": UserAgent()}}}
	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "custom")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
}
