package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/config"
	"github.com/studybuddy/backend/internal/dto"
)

const (
	transcriptPollInterval = 2 * time.Second
	transcriptDeadline     = 90 * time.Second
)

// TranscriptService forwards a media URL to the transcription API and polls
// until the job resolves or the deadline passes.
type TranscriptService interface {
	Transcribe(ctx context.Context, audioURL string) (*dto.TranscriptResponse, error)
}

type transcriptService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewTranscriptService(cfg *config.Config) TranscriptService {
	return &transcriptService{
		baseURL: cfg.TranscribeURL,
		apiKey:  cfg.TranscribeKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type transcriptJob struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text"`
	Error  string `json:"error"`
}

func (s *transcriptService) Transcribe(ctx context.Context, audioURL string) (*dto.TranscriptResponse, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("transcription API key is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, transcriptDeadline)
	defer cancel()

	job, err := s.submit(ctx, audioURL)
	if err != nil {
		return nil, err
	}

	for job.Status != "completed" && job.Status != "error" {
		select {
		case <-ctx.Done():
			log.Warn().Str("transcriptId", job.ID).Str("status", job.Status).Msg("Transcription polling deadline reached")
			return &dto.TranscriptResponse{ID: job.ID, Status: job.Status}, nil
		case <-time.After(transcriptPollInterval):
		}
		if job, err = s.poll(ctx, job.ID); err != nil {
			return nil, err
		}
	}

	if job.Status == "error" {
		return nil, fmt.Errorf("transcription failed: %s", job.Error)
	}
	return &dto.TranscriptResponse{ID: job.ID, Status: job.Status, Text: job.Text}, nil
}

func (s *transcriptService) submit(ctx context.Context, audioURL string) (*transcriptJob, error) {
	body, err := json.Marshal(map[string]string{"audio_url": audioURL})
	if err != nil {
		return nil, err
	}
	return s.call(ctx, http.MethodPost, s.baseURL+"/transcript", bytes.NewReader(body))
}

func (s *transcriptService) poll(ctx context.Context, id string) (*transcriptJob, error) {
	return s.call(ctx, http.MethodGet, s.baseURL+"/transcript/"+id, nil)
}

func (s *transcriptService) call(ctx context.Context, method, url string, body io.Reader) (*transcriptJob, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcription API response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("transcription API returned status %d: %s", resp.StatusCode, string(raw))
	}

	var job transcriptJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("failed to decode transcription API response: %w", err)
	}
	return &job, nil
}
