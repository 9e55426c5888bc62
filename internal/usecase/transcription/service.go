package transcription

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	backoff "github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/storage"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
)

// Transcriber is the speech-to-text backend
type Transcriber interface {
	TranscribeFile(ctx context.Context, path string) (string, error)
}

// Media probes and converts local media files
type Media interface {
	Duration(ctx context.Context, path string) (time.Duration, error)
	ExtractAudio(ctx context.Context, input, output string) error
	ToWav(ctx context.Context, input, output string) error
	Split(ctx context.Context, input, dir string, segment time.Duration) ([]string, error)
}

// Fetcher resolves a source into a local file under dir
type Fetcher interface {
	Fetch(ctx context.Context, source, dir string) (string, error)
}

// ObjectStore keeps uploaded media and archived transcripts
type ObjectStore interface {
	UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) error
	UploadText(ctx context.Context, objectName string, content string) error
}

const (
	defaultChunkThreshold = 20 * time.Minute
	defaultChunkLength    = 10 * time.Minute
)

// Options configures a Service
type Options struct {
	ScratchDir     string
	ChunkThreshold time.Duration
	ChunkLength    time.Duration
	// RetryDelay is the pause before a failed chunk is retried
	RetryDelay time.Duration
	Objects    ObjectStore
	Logger     *zap.Logger
}

// Service turns a media source into a stored transcript
type Service struct {
	transcripts repositories.TranscriptRepository
	quota       *quota.Service
	fetcher     Fetcher
	media       Media
	stt         Transcriber
	opts        Options
	logger      *zap.Logger
}

// NewService creates a transcription service
func NewService(
	transcripts repositories.TranscriptRepository,
	q *quota.Service,
	fetcher Fetcher,
	media Media,
	stt Transcriber,
	opts Options,
) *Service {
	if opts.ChunkThreshold <= 0 {
		opts.ChunkThreshold = defaultChunkThreshold
	}
	if opts.ChunkLength <= 0 {
		opts.ChunkLength = defaultChunkLength
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 2 * time.Second
	}
	return &Service{
		transcripts: transcripts,
		quota:       q,
		fetcher:     fetcher,
		media:       media,
		stt:         stt,
		opts:        opts,
		logger:      opts.Logger,
	}
}

// Request describes one transcription
type Request struct {
	Source    string
	MeetingID string
	// Automated runs are metered by the automation quota instead
	Automated bool
}

// Transcribe fetches, checks, converts and transcribes the source and stores
// the transcript. Scratch files are removed on every path.
func (s *Service) Transcribe(ctx context.Context, id entities.Identity, req Request) (*entities.Transcript, error) {
	source := strings.TrimSpace(req.Source)
	if source == "" {
		return nil, entities.NewValidation("source", "is required")
	}
	if !req.Automated {
		st, err := s.quota.Check(ctx, id, entities.QuotaTranscription)
		if err != nil {
			return nil, err
		}
		if st.Exceeded {
			return nil, &entities.QuotaExceededError{Kind: st.Kind, Limit: st.Limit, Used: st.Used}
		}
	}

	dir, err := os.MkdirTemp(s.opts.ScratchDir, "transcribe-*")
	if err != nil {
		return nil, entities.NewTranscriptionError(entities.PhaseDownload, err)
	}
	defer os.RemoveAll(dir)

	path, err := s.fetcher.Fetch(ctx, source, dir)
	if err != nil {
		return nil, entities.NewTranscriptionError(entities.PhaseDownload, err)
	}

	duration, err := s.media.Duration(ctx, path)
	if err != nil {
		return nil, entities.NewTranscriptionError(entities.PhaseDecode, err)
	}
	if limit := s.quota.MaxVideoDuration(id.Tier); limit > 0 && duration > limit {
		return nil, &entities.QuotaExceededError{
			Kind:  entities.QuotaVideoDuration,
			Limit: int(limit.Minutes()),
			Used:  int(math.Ceil(duration.Minutes())),
		}
	}

	if !req.Automated {
		if _, err := s.quota.Consume(ctx, id, entities.QuotaTranscription); err != nil {
			return nil, err
		}
	}

	if s.logger != nil {
		s.logger.Info("🎬 Media ready for transcription",
			zap.String("user_id", id.UserID),
			zap.Duration("duration", duration),
			zap.Bool("chunked", duration > s.opts.ChunkThreshold),
		)
	}

	var text string
	chunks := 1
	if duration > s.opts.ChunkThreshold {
		text, chunks, err = s.transcribeChunked(ctx, path, dir)
	} else {
		text, err = s.transcribeSingle(ctx, path, dir)
	}
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, entities.NewTranscriptionError(entities.PhaseTranscribe, entities.ErrEmptyTranscript)
	}

	t := entities.NewTranscript(id.UserID, req.MeetingID, source, text)
	t.DurationSeconds = int(duration.Seconds())
	t.Chunks = chunks
	t.Automated = req.Automated
	if err := s.transcripts.Create(ctx, t); err != nil {
		return nil, entities.NewTranscriptionError(entities.PhasePersist, err)
	}
	s.archive(ctx, t)

	if s.logger != nil {
		s.logger.Info("✅ Transcript stored",
			zap.String("user_id", id.UserID),
			zap.String("transcript_id", t.ID),
			zap.Int("chunks", chunks),
			zap.Int("text_length", len(text)),
		)
	}
	return t, nil
}

// transcribeSingle sends the extracted audio, or the original file when
// extraction fails
func (s *Service) transcribeSingle(ctx context.Context, path, dir string) (string, error) {
	input := filepath.Join(dir, "audio.mp3")
	if err := s.media.ExtractAudio(ctx, path, input); err != nil {
		if s.logger != nil {
			s.logger.Warn("⚠️ Audio extraction failed, uploading original media", zap.Error(err))
		}
		input = path
	}
	text, err := s.stt.TranscribeFile(ctx, input)
	if err != nil {
		return "", entities.NewTranscriptionError(entities.PhaseTranscribe,
			entities.NewExternal(entities.ServiceSpeechToText, err))
	}
	return text, nil
}

// transcribeChunked splits the audio into fixed-length segments and joins
// their transcripts in order. A segment is retried once and then replaced by
// a failure marker.
func (s *Service) transcribeChunked(ctx context.Context, path, dir string) (string, int, error) {
	wav := filepath.Join(dir, "audio.wav")
	if err := s.media.ToWav(ctx, path, wav); err != nil {
		return "", 0, entities.NewTranscriptionError(entities.PhaseExtract, err)
	}
	chunkDir := filepath.Join(dir, "chunks")
	if err := os.MkdirAll(chunkDir, 0o755); err != nil {
		return "", 0, entities.NewTranscriptionError(entities.PhaseExtract, err)
	}
	chunks, err := s.media.Split(ctx, wav, chunkDir, s.opts.ChunkLength)
	if err != nil {
		return "", 0, entities.NewTranscriptionError(entities.PhaseExtract, err)
	}

	var b strings.Builder
	failed := 0
	for i, chunk := range chunks {
		n := i + 1
		text, err := s.transcribeChunk(ctx, chunk)
		if err != nil {
			if ctx.Err() != nil {
				return "", 0, entities.NewTranscriptionError(entities.PhaseTranscribe, ctx.Err())
			}
			failed++
			if s.logger != nil {
				s.logger.Warn("⚠️ Chunk transcription failed", zap.Int("chunk", n), zap.Error(err))
			}
			fmt.Fprintf(&b, "\n[Chunk %d: transcription failed]\n", n)
			continue
		}
		fmt.Fprintf(&b, "\n[Chunk %d]\n%s\n", n, strings.TrimSpace(text))
	}
	if failed == len(chunks) {
		return "", 0, entities.NewTranscriptionError(entities.PhaseTranscribe,
			entities.NewExternal(entities.ServiceSpeechToText, fmt.Errorf("all %d chunks failed", failed)))
	}
	return strings.TrimSpace(b.String()), len(chunks), nil
}

func (s *Service) transcribeChunk(ctx context.Context, path string) (string, error) {
	var text string
	op := func() error {
		var err error
		text, err = s.stt.TranscribeFile(ctx, path)
		return err
	}
	bo := backoff.WithMaxRetries(backoff.NewConstantBackOff(s.opts.RetryDelay), 1)
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}
	return text, nil
}

func (s *Service) archive(ctx context.Context, t *entities.Transcript) {
	if s.opts.Objects == nil {
		return
	}
	key := fmt.Sprintf("transcripts/%s/%s.txt", t.UserID, t.ID)
	if err := s.opts.Objects.UploadText(ctx, key, t.Text); err != nil && s.logger != nil {
		s.logger.Warn("⚠️ Failed to archive transcript", zap.String("transcript_id", t.ID), zap.Error(err))
	}
}

// Upload stores an uploaded media file and returns the source to transcribe it from
func (s *Service) Upload(ctx context.Context, userID, filename string, r io.Reader, size int64, contentType string) (string, error) {
	if s.opts.Objects == nil {
		return "", entities.NewExternal(entities.ServiceStorage, fmt.Errorf("object storage is not configured"))
	}
	key := fmt.Sprintf("uploads/%s/%s%s", userID, uuid.NewString(), strings.ToLower(filepath.Ext(filename)))
	if err := s.opts.Objects.UploadFile(ctx, key, r, size, contentType); err != nil {
		return "", entities.NewExternal(entities.ServiceStorage, err)
	}
	return storage.Scheme + key, nil
}

// List returns the newest transcripts of a user
func (s *Service) List(ctx context.Context, userID string, limit int) ([]*entities.Transcript, error) {
	return s.transcripts.ListByUser(ctx, userID, limit)
}

// Get returns one transcript
func (s *Service) Get(ctx context.Context, userID, id string) (*entities.Transcript, error) {
	t, err := s.transcripts.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, entities.NewNotFound("transcript", id)
	}
	return t, nil
}

// Delete removes a transcript
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.transcripts.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("transcript", id)
	}
	return nil
}
