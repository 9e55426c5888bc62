package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	backoff "github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

// AssemblyAITranscriber turns a local audio or video file into text
type AssemblyAITranscriber struct {
	client *aai.Client
	logger *zap.Logger

	uploadTimeout time.Duration
}

// NewAssemblyAITranscriber creates a transcriber using the provided config.
// If the key is empty, falls back to ASSEMBLYAI_API_KEY. BaseURL overrides the API host.
func NewAssemblyAITranscriber(cfg *config.AssemblyConfig, logger *zap.Logger) *AssemblyAITranscriber {
	var apiKey, baseURL string
	if cfg != nil {
		apiKey, baseURL = cfg.APIKey, cfg.BaseURL
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	opts := []aai.ClientOption{aai.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, aai.WithBaseURL(baseURL))
	}
	return &AssemblyAITranscriber{
		client:        aai.NewClientWithOptions(opts...),
		logger:        logger,
		uploadTimeout: 30 * time.Second,
	}
}

// TranscribeFile uploads the file and waits for the transcript text.
// The upload is retried with exponential backoff; the transcription is not.
func (t *AssemblyAITranscriber) TranscribeFile(ctx context.Context, path string) (string, error) {
	var uploadURL string
	upload := func() error {
		f, err := os.Open(path)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to open media: %w", err))
		}
		defer f.Close()

		uploadURL, err = t.client.Upload(ctx, f)
		if err != nil {
			if t.logger != nil {
				t.logger.Warn("⚠️ AssemblyAI upload failed, retrying", zap.String("path", path), zap.Error(err))
			}
			return err
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxInterval = 10 * time.Second
	bo.MaxElapsedTime = t.uploadTimeout
	if err := backoff.Retry(upload, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("failed to upload to AssemblyAI: %w", err)
	}

	if t.logger != nil {
		t.logger.Info("🎙️ Starting transcription", zap.String("path", path))
	}

	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
		Punctuate:         aai.Bool(true),
		FormatText:        aai.Bool(true),
	}
	transcript, err := t.client.Transcripts.TranscribeFromURL(ctx, uploadURL, params)
	if err != nil {
		return "", fmt.Errorf("assemblyai transcription failed: %w", err)
	}
	if transcript.Status == aai.TranscriptStatusError {
		reason := "unknown error"
		if transcript.Error != nil {
			reason = *transcript.Error
		}
		return "", fmt.Errorf("assemblyai transcription failed: %s", reason)
	}

	var text string
	if transcript.Text != nil {
		text = *transcript.Text
	}
	if t.logger != nil {
		id := ""
		if transcript.ID != nil {
			id = *transcript.ID
		}
		t.logger.Info("✅ Transcription completed", zap.String("transcript_id", id), zap.Int("text_length", len(text)))
	}
	return text, nil
}
