package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/backend/config"
)

func newTranscriptService(baseURL string) TranscriptService {
	return NewTranscriptService(&config.Config{
		TranscribeURL: baseURL,
		TranscribeKey: "test-key",
	})
}

func TestTranscribe_ReturnsCompletedJob(t *testing.T) {
	var gotAuth, gotAudioURL string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotAudioURL = body["audio_url"]

		json.NewEncoder(w).Encode(map[string]string{
			"id":     "job-1",
			"status": "completed",
			"text":   "hello world",
		})
	}))
	defer server.Close()

	resp, err := newTranscriptService(server.URL).Transcribe(context.Background(), "https://example.com/a.mp3")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "https://example.com/a.mp3", gotAudioURL)
	assert.Equal(t, "job-1", resp.ID)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "hello world", resp.Text)
}

func TestTranscribe_PollsUntilCompleted(t *testing.T) {
	polls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "queued"})
			return
		}
		polls++
		json.NewEncoder(w).Encode(map[string]string{"id": "job-1", "status": "completed", "text": "done"})
	}))
	defer server.Close()

	start := time.Now()
	resp, err := newTranscriptService(server.URL).Transcribe(context.Background(), "https://example.com/a.mp3")
	require.NoError(t, err)

	assert.Equal(t, 1, polls)
	assert.Equal(t, "done", resp.Text)
	assert.GreaterOrEqual(t, time.Since(start), transcriptPollInterval)
}

func TestTranscribe_ErrorStatusFailsWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{
			"id":     "job-1",
			"status": "error",
			"error":  "unsupported format",
		})
	}))
	defer server.Close()

	_, err := newTranscriptService(server.URL).Transcribe(context.Background(), "https://example.com/a.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}

func TestTranscribe_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := newTranscriptService(server.URL).Transcribe(context.Background(), "https://example.com/a.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestTranscribe_MissingKeyFailsFast(t *testing.T) {
	svc := NewTranscriptService(&config.Config{TranscribeURL: "http://unused"})

	_, err := svc.Transcribe(context.Background(), "https://example.com/a.mp3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
