package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, ":generateContent")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(generateResponse{
			Candidates: []struct {
				Content content `json:"content"`
			}{
				{Content: content{Parts: []part{{Text: reply}}}},
			},
		})
	}))
}

func newTestClient(baseURL string) *Client {
	c := NewClient("test-key")
	c.baseURL = baseURL
	return c
}

func TestGenerate(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "hello from the model")
	defer srv.Close()

	text, err := newTestClient(srv.URL).Generate(context.Background(), "say hello")
	require.NoError(t, err)
	assert.Equal(t, "hello from the model", text)
}

func TestGenerateNotConfigured(t *testing.T) {
	_, err := NewClient("").Generate(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestGenerateJSONStripsFences(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"bare json", `{"title":"Go"}`},
		{"json fence", "```json\n{\"title\":\"Go\"}\n```"},
		{"plain fence", "```\n{\"title\":\"Go\"}\n```"},
		{"padded", "  \n```json\n{\"title\":\"Go\"}\n```\n  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := newStubServer(t, http.StatusOK, tc.reply)
			defer srv.Close()

			raw, err := newTestClient(srv.URL).GenerateJSON(context.Background(), "make a post")
			require.NoError(t, err)
			assert.JSONEq(t, `{"title":"Go"}`, string(raw))
		})
	}
}

func TestGenerateJSONRejectsNonJSON(t *testing.T) {
	srv := newStubServer(t, http.StatusOK, "sorry, I cannot do that")
	defer srv.Close()

	_, err := newTestClient(srv.URL).GenerateJSON(context.Background(), "make a post")
	assert.Error(t, err)
}

func TestGenerateAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Generate(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key not valid")
}
