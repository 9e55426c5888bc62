package transcription

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/usecase/quota"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

type fakeFetcher struct{ err error }

func (f fakeFetcher) Fetch(_ context.Context, source, dir string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	p := filepath.Join(dir, "source.mp4")
	return p, os.WriteFile(p, []byte(source), 0o644)
}

type fakeMedia struct {
	duration   time.Duration
	extractErr error
	chunks     int
}

func (m *fakeMedia) Duration(context.Context, string) (time.Duration, error) { return m.duration, nil }

func (m *fakeMedia) ExtractAudio(_ context.Context, _, out string) error {
	if m.extractErr != nil {
		return m.extractErr
	}
	return os.WriteFile(out, []byte("audio"), 0o644)
}

func (m *fakeMedia) ToWav(_ context.Context, _, out string) error {
	return os.WriteFile(out, []byte("wav"), 0o644)
}

func (m *fakeMedia) Split(_ context.Context, _, dir string, _ time.Duration) ([]string, error) {
	var out []string
	for i := 0; i < m.chunks; i++ {
		p := filepath.Join(dir, fmt.Sprintf("chunk_%03d.wav", i))
		if err := os.WriteFile(p, []byte("chunk"), 0o644); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// fakeSTT fails every call whose file name contains a key of failures,
// up to the given number of times
type fakeSTT struct {
	failures map[string]int
	calls    []string
}

func (f *fakeSTT) TranscribeFile(_ context.Context, path string) (string, error) {
	base := filepath.Base(path)
	f.calls = append(f.calls, base)
	for key, left := range f.failures {
		if strings.Contains(base, key) && left != 0 {
			f.failures[key] = left - 1
			return "", errors.New("upstream timeout")
		}
	}
	return "text of " + base, nil
}

type memObjects struct{ texts map[string]string }

func (m *memObjects) UploadFile(_ context.Context, name string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	m.texts[name] = string(b)
	return err
}

func (m *memObjects) UploadText(_ context.Context, name, content string) error {
	m.texts[name] = content
	return nil
}

var limits = config.QuotaConfig{
	FreeMeetings:       5,
	FreeAutomations:    5,
	FreeTranscriptions: 2,
	FreeMaxVideo:       15 * time.Minute,
	FreeMinutesHistory: 3,
}

type fixture struct {
	svc     *Service
	repos   *repositories.Repositories
	media   *fakeMedia
	stt     *fakeSTT
	objects *memObjects
	scratch string
}

func newFixture(t *testing.T, media *fakeMedia, fetcher Fetcher) *fixture {
	t.Helper()
	repos := memory.New()
	f := &fixture{
		repos:   repos,
		media:   media,
		stt:     &fakeSTT{failures: map[string]int{}},
		objects: &memObjects{texts: map[string]string{}},
		scratch: t.TempDir(),
	}
	f.svc = NewService(repos.Transcripts, quota.NewService(repos.Usage, limits, nil, nil), fetcher, media, f.stt, Options{
		ScratchDir:     f.scratch,
		ChunkThreshold: 20 * time.Minute,
		ChunkLength:    10 * time.Minute,
		RetryDelay:     time.Millisecond,
		Objects:        f.objects,
	})
	return f
}

func (f *fixture) assertScratchEmpty(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(f.scratch)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch files are removed")
}

var premium = entities.Identity{UserID: "p1", Tier: entities.TierPremium}
var free = entities.Identity{UserID: "f1", Tier: entities.TierFree}

func TestSingleFileUsesExtractedAudio(t *testing.T) {
	f := newFixture(t, &fakeMedia{duration: 5 * time.Minute}, fakeFetcher{})

	tr, err := f.svc.Transcribe(context.Background(), free, Request{Source: "https://example.com/a.mp4"})
	require.NoError(t, err)
	assert.Equal(t, "text of audio.mp3", tr.Text)
	assert.Equal(t, 300, tr.DurationSeconds)
	assert.Equal(t, 1, tr.Chunks)
	assert.Contains(t, f.objects.texts, "transcripts/f1/"+tr.ID+".txt")
	f.assertScratchEmpty(t)

	stored, err := f.svc.Get(context.Background(), "f1", tr.ID)
	require.NoError(t, err)
	assert.Equal(t, tr.Text, stored.Text)
}

func TestExtractionFailureFallsBackToVideo(t *testing.T) {
	f := newFixture(t, &fakeMedia{duration: time.Minute, extractErr: errors.New("no audio stream")}, fakeFetcher{})

	tr, err := f.svc.Transcribe(context.Background(), premium, Request{Source: "/tmp/ignored"})
	require.NoError(t, err)
	assert.Equal(t, "text of source.mp4", tr.Text)
}

func TestFreeTierDurationCheckedBeforeTranscribing(t *testing.T) {
	f := newFixture(t, &fakeMedia{duration: 16 * time.Minute}, fakeFetcher{})

	_, err := f.svc.Transcribe(context.Background(), free, Request{Source: "https://example.com/long.mp4"})
	var qe *entities.QuotaExceededError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, entities.QuotaVideoDuration, qe.Kind)
	assert.Equal(t, 15, qe.Limit)
	assert.Equal(t, 16, qe.Used)
	assert.Empty(t, f.stt.calls, "speech-to-text is never called")
	f.assertScratchEmpty(t)

	_, err = f.svc.Transcribe(context.Background(), premium, Request{Source: "https://example.com/long.mp4"})
	assert.NoError(t, err)
}

func TestTranscriptionQuota(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeMedia{duration: time.Minute}, fakeFetcher{})

	for i := 0; i < 2; i++ {
		_, err := f.svc.Transcribe(ctx, free, Request{Source: "x"})
		require.NoError(t, err)
	}
	_, err := f.svc.Transcribe(ctx, free, Request{Source: "x"})
	var qe *entities.QuotaExceededError
	assert.True(t, errors.As(err, &qe))

	// automation runs are metered elsewhere
	_, err = f.svc.Transcribe(ctx, free, Request{Source: "x", Automated: true})
	assert.NoError(t, err)
}

func TestChunkedTranscriptLabelsAndRetries(t *testing.T) {
	f := newFixture(t, &fakeMedia{duration: 35 * time.Minute, chunks: 4}, fakeFetcher{})
	f.stt.failures["chunk_001"] = 1 // recovers on retry
	f.stt.failures["chunk_002"] = -1

	tr, err := f.svc.Transcribe(context.Background(), premium, Request{Source: "x"})
	require.NoError(t, err)
	assert.Equal(t, 4, tr.Chunks)

	want := "[Chunk 1]\ntext of chunk_000.wav\n\n" +
		"[Chunk 2]\ntext of chunk_001.wav\n\n" +
		"[Chunk 3: transcription failed]\n\n" +
		"[Chunk 4]\ntext of chunk_003.wav"
	assert.Equal(t, want, tr.Text)
	f.assertScratchEmpty(t)
}

func TestAllChunksFailingIsFatal(t *testing.T) {
	f := newFixture(t, &fakeMedia{duration: 25 * time.Minute, chunks: 2}, fakeFetcher{})
	f.stt.failures["chunk_"] = -1

	_, err := f.svc.Transcribe(context.Background(), premium, Request{Source: "x"})
	var te *entities.TranscriptionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, entities.PhaseTranscribe, te.Phase)

	list, err := f.svc.List(context.Background(), "p1", 0)
	require.NoError(t, err)
	assert.Empty(t, list, "no partial transcript is stored")
}

func TestDownloadFailureIsTyped(t *testing.T) {
	f := newFixture(t, &fakeMedia{}, fakeFetcher{err: errors.New("404")})

	_, err := f.svc.Transcribe(context.Background(), premium, Request{Source: "https://example.com/missing.mp4"})
	var te *entities.TranscriptionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, entities.PhaseDownload, te.Phase)
	f.assertScratchEmpty(t)
}

func TestUploadReturnsStorageSource(t *testing.T) {
	f := newFixture(t, &fakeMedia{}, fakeFetcher{})

	src, err := f.svc.Upload(context.Background(), "u1", "Meeting.MP4", strings.NewReader("bytes"), 5, "video/mp4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "storage://uploads/u1/"))
	assert.True(t, strings.HasSuffix(src, ".mp4"))
}

func TestDeleteIsUserScoped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, &fakeMedia{duration: time.Minute}, fakeFetcher{})
	tr, err := f.svc.Transcribe(ctx, premium, Request{Source: "x"})
	require.NoError(t, err)

	var nf *entities.NotFoundError
	assert.True(t, errors.As(f.svc.Delete(ctx, "someone-else", tr.ID), &nf))
	require.NoError(t, f.svc.Delete(ctx, "p1", tr.ID))
}
