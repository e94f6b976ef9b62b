package generator

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptionPrompts(t *testing.T) {
	t.Run("known styles resolve", func(t *testing.T) {
		assert.Contains(t, ImageCaptionPrompt(StyleSexyFlirty, ""), "flirty")
		assert.Contains(t, ImageCaptionPrompt(StyleMysterious, ""), "mysterious")
		assert.Contains(t, VideoCaptionPrompt(StylePromotional, ""), "promotional")
	})

	t.Run("custom style uses the user prompt", func(t *testing.T) {
		assert.Equal(t, "my exact prompt", ImageCaptionPrompt(StyleCustom, "my exact prompt"))
		assert.Equal(t, "my exact prompt", VideoCaptionPrompt(StyleCustom, "my exact prompt"))
	})

	t.Run("custom style without a prompt gets the default", func(t *testing.T) {
		assert.Equal(t, defaultImagePrompt, ImageCaptionPrompt(StyleCustom, ""))
		assert.Equal(t, defaultVideoPrompt, VideoCaptionPrompt(StyleCustom, ""))
	})

	t.Run("unknown style falls back to casual", func(t *testing.T) {
		assert.Equal(t, imageStylePrompts[StyleCasualFun], ImageCaptionPrompt("Dramatic", ""))
		assert.Equal(t, videoStylePrompts[StyleCasualFun], VideoCaptionPrompt("Dramatic", ""))
	})
}

// captionServer fakes the chat-completions endpoint and records the request.
func captionServer(t *testing.T, reply string, captured *chatRequest) *Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(server.Close)

	return NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
}

func TestClient_ImageCaption(t *testing.T) {
	imagePath := filepath.Join(t.TempDir(), "photo.png")
	require.NoError(t, os.WriteFile(imagePath, []byte("not-a-real-png"), 0o644))

	var captured chatRequest
	client := captionServer(t, "  Golden hour magic ✨  ", &captured)

	caption, err := client.ImageCaption(context.Background(), imagePath, StyleSexyFlirty, "")
	require.NoError(t, err)

	assert.Equal(t, "Golden hour magic ✨", caption)

	// Vision request: text part plus a low-detail base64 data URL.
	require.Len(t, captured.Messages, 1)
	parts, ok := captured.Messages[0].Content.([]any)
	require.True(t, ok)
	require.Len(t, parts, 2)

	imagePart := parts[1].(map[string]any)
	assert.Equal(t, "image_url", imagePart["type"])
	url := imagePart["image_url"].(map[string]any)
	assert.Contains(t, url["url"], "data:image/png;base64,")
	assert.Equal(t, "low", url["detail"])
}

func TestClient_ImageCaption_MissingFile(t *testing.T) {
	client := NewClient(Config{APIKey: "sk-test", BaseURL: "http://unused"})

	_, err := client.ImageCaption(context.Background(), "/does/not/exist.jpg", StyleCasualFun, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read image")
}

func TestClient_VideoCaption(t *testing.T) {
	var captured chatRequest
	client := captionServer(t, "New video just dropped 🎬", &captured)

	caption, err := client.VideoCaption(context.Background(), StyleMysterious, "")
	require.NoError(t, err)

	assert.Equal(t, "New video just dropped 🎬", caption)

	// Text-only: the video itself is never sent.
	prompt, ok := captured.Messages[0].Content.(string)
	require.True(t, ok)
	assert.Contains(t, prompt, "mysterious")
}

func TestClient_CompleteErrors(t *testing.T) {
	t.Run("http error status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"type":"rate_limit_exceeded","message":"slow down"}}`))
		}))
		t.Cleanup(server.Close)

		client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
		_, err := client.Complete(context.Background(), "hello", 100, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
	})

	t.Run("error object in 200 body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad model"}}`))
		}))
		t.Cleanup(server.Close)

		client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
		_, err := client.Complete(context.Background(), "hello", 100, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bad model")
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		}))
		t.Cleanup(server.Close)

		client := NewClient(Config{APIKey: "sk-test", BaseURL: server.URL})
		_, err := client.Complete(context.Background(), "hello", 100, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty response")
	})
}
