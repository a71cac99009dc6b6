package greeter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatResponse(text string) string {
	out := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]string{"content": text}},
		},
	}
	raw, _ := json.Marshal(out)
	return string(raw)
}

func TestDescribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer key-1", r.Header.Get("Authorization"))

		var body payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Contains(t, body.Messages[1].Content, "House Pale")

		_, _ = w.Write([]byte(chatResponse("  A crisp, hop-forward crowd pleaser.  ")))
	}))
	defer srv.Close()

	c := New(srv.URL, "key-1")
	got := c.Describe(context.Background(), "House Pale", "American Pale Ale")

	assert.Equal(t, "A crisp, hop-forward crowd pleaser.", got)
}

func TestDescribe_FallsBackWhenUnconfigured(t *testing.T) {
	c := New("", "")
	assert.Equal(t, Fallback, c.Describe(context.Background(), "House Pale", ""))
}

func TestDescribe_FallsBackOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	assert.Equal(t, Fallback, c.Describe(context.Background(), "House Pale", ""))
}

func TestDescribe_FallsBackOnEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	assert.Equal(t, Fallback, c.Describe(context.Background(), "House Pale", ""))
}

func TestDescribe_FallsBackOnGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL, "key")
	assert.Equal(t, Fallback, c.Describe(context.Background(), "House Pale", ""))
}
