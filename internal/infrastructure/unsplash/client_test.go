package unsplash

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPhotoURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/photos/random", r.URL.Path)
		assert.Equal(t, "mountain lake", r.URL.Query().Get("query"))
		assert.Equal(t, "test-key", r.URL.Query().Get("client_id"))

		_, _ = w.Write([]byte(`{"urls":{"regular":"https://images.example.com/photo.jpg"}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.baseURL = srv.URL

	got, err := c.RandomPhotoURL(context.Background(), "mountain lake")
	require.NoError(t, err)
	assert.Equal(t, "https://images.example.com/photo.jpg", got)
}

func TestRandomPhotoURLNotConfigured(t *testing.T) {
	_, err := NewClient("").RandomPhotoURL(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRandomPhotoURLUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key")
	c.baseURL = srv.URL

	_, err := c.RandomPhotoURL(context.Background(), "anything")
	assert.Error(t, err)
}
