package translate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/langtable/langtable/pkg/models"
)

func TestClient_Translate(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"translatedText":"石","detectedLanguage":"en","raw":{}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	res, err := c.Translate(context.Background(), Request{Text: "Stone", To: "ja"})
	require.NoError(t, err)

	assert.Equal(t, Result{Text: "石", DetectedLanguage: "en"}, res)
	assert.Equal(t, Request{Text: "Stone", From: AutoDetect, To: "ja"}, got)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"error":"Too many requests"}`, wantErr: ErrRateLimited},
		{name: "server error with message", status: http.StatusInternalServerError, body: `{"error":"Failed to translate"}`, wantMsg: "Failed to translate"},
		{name: "server error plain body", status: http.StatusBadGateway, body: "bad gateway", wantMsg: "bad gateway"},
		{name: "not json", status: http.StatusOK, body: "石", wantMsg: "unmarshal response"},
		{name: "empty translation", status: http.StatusOK, body: `{"translatedText":""}`, wantMsg: "no translated text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, time.Second).Translate(context.Background(), Request{Text: "Stone", To: "ja"})
			require.Error(t, err)
			assert.True(t, models.IsExternal(err), "kind = %v", models.KindOf(err))
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestClient_NoRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second).Translate(context.Background(), Request{Text: "x", To: "ja"})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_BlankText(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", time.Second)
	_, err := c.Translate(context.Background(), Request{Text: "  ", To: "ja"})
	assert.ErrorIs(t, err, models.ErrEmptyText)
	assert.True(t, models.IsValidation(err))
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Translate(context.Background(), Request{Text: "x", To: "ja"})
	require.Error(t, err)
	assert.True(t, models.IsExternal(err))
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, time.Second).Translate(ctx, Request{Text: "x", To: "ja"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
