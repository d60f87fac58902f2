package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenAIGenerate(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "generated text"}},
			},
		})
	}))
	defer srv.Close()

	g := NewOpenAI("sk-test", srv.URL, "gpt-4o-mini", 5*time.Second)
	out, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "generated text", out)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
}

func TestOpenAIGenerateMissingKey(t *testing.T) {
	g := NewOpenAI("", "http://unused.invalid", "gpt-4o-mini", time.Second)

	_, err := g.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key not configured")
}

func TestOpenAIGenerateRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "second try"}},
			},
		})
	}))
	defer srv.Close()

	g := NewOpenAI("sk-test", srv.URL, "gpt-4o-mini", 10*time.Second)
	out, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "second try", out)
	assert.Equal(t, 2, calls)
}

func TestOpenAIGenerateNoRetryOn4xx(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	g := NewOpenAI("sk-test", srv.URL, "gpt-4o-mini", 5*time.Second)
	_, err := g.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestOllamaGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat", r.URL.Path)
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "hello", body["message"])
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": "hi there"})
	}))
	defer srv.Close()

	g := NewOllama(srv.URL, "gemma2:9b", 5*time.Second)
	out, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)
}

func TestOllamaGenerateMissingBaseURL(t *testing.T) {
	g := NewOllama("", "gemma2:9b", time.Second)

	_, err := g.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base url not configured")
}

func TestOllamaGenerateEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"reply": ""})
	}))
	defer srv.Close()

	g := NewOllama(srv.URL, "gemma2:9b", time.Second)
	_, err := g.Generate(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty reply")
}
