package media

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriveDirectURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://drive.google.com/file/d/abc_123/view?usp=sharing", "https://drive.google.com/uc?export=download&id=abc_123"},
		{"https://drive.google.com/open?id=xyz", "https://drive.google.com/uc?export=download&id=xyz"},
		{"https://example.com/video.mp4", "https://example.com/video.mp4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DriveDirectURL(tt.in))
	}
}

func TestFetchHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("media-bytes"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	got, err := NewFetcher(nil).Fetch(context.Background(), srv.URL+"/meeting.webm", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "source.webm"), got)

	b, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, "media-bytes", string(b))
}

func TestFetchHTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(nil).Fetch(context.Background(), srv.URL+"/missing.mp4", t.TempDir())
	assert.Error(t, err)
}

func TestFetchLocalAndStorage(t *testing.T) {
	dir := t.TempDir()
	local := filepath.Join(dir, "a.mp4")
	require.NoError(t, os.WriteFile(local, []byte("x"), 0o600))

	got, err := NewFetcher(nil).Fetch(context.Background(), local, dir)
	require.NoError(t, err)
	assert.Equal(t, local, got)

	_, err = NewFetcher(nil).Fetch(context.Background(), "storage://uploads/u1/a.mp4", dir)
	assert.Error(t, err)

	_, err = NewFetcher(nil).Fetch(context.Background(), filepath.Join(dir, "nope.mp4"), dir)
	assert.Error(t, err)
}
