package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/storage"
)

// ObjectDownloader copies a stored object to a local file
type ObjectDownloader interface {
	DownloadFile(ctx context.Context, objectName, destPath string) error
}

// Fetcher resolves a media source into a local file inside a scratch dir.
// Supported sources: http(s) URLs, Google Drive share links, storage://key and local paths.
type Fetcher struct {
	client  *http.Client
	objects ObjectDownloader
}

// NewFetcher creates a fetcher. objects may be nil when object storage is disabled.
func NewFetcher(objects ObjectDownloader) *Fetcher {
	return &Fetcher{
		client:  &http.Client{Timeout: 30 * time.Minute},
		objects: objects,
	}
}

var driveFileID = regexp.MustCompile(`/file/d/([A-Za-z0-9_-]+)`)

// DriveDirectURL rewrites a Google Drive share link to a direct-download URL.
// Other URLs are returned unchanged.
func DriveDirectURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(u.Host, "drive.google.com") {
		return raw
	}
	id := ""
	if m := driveFileID.FindStringSubmatch(u.Path); m != nil {
		id = m[1]
	} else {
		id = u.Query().Get("id")
	}
	if id == "" {
		return raw
	}
	return "https://drive.google.com/uc?export=download&id=" + id
}

// Fetch places the media in dir and returns its local path
func (f *Fetcher) Fetch(ctx context.Context, source, dir string) (string, error) {
	switch {
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return f.download(ctx, DriveDirectURL(source), dir)
	case strings.HasPrefix(source, storage.Scheme):
		if f.objects == nil {
			return "", fmt.Errorf("object storage is not configured")
		}
		key := strings.TrimPrefix(source, storage.Scheme)
		dest := filepath.Join(dir, "source"+filepath.Ext(key))
		if err := f.objects.DownloadFile(ctx, key, dest); err != nil {
			return "", err
		}
		return dest, nil
	default:
		info, err := os.Stat(source)
		if err != nil {
			return "", fmt.Errorf("media source not readable: %w", err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("media source %s is a directory", source)
		}
		return source, nil
	}
}

func (f *Fetcher) download(ctx context.Context, rawURL, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	ext := path.Ext(req.URL.Path)
	if ext == "" || len(ext) > 5 {
		ext = ".mp4"
	}
	dest := filepath.Join(dir, "source"+ext)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("download interrupted: %w", err)
	}
	return dest, nil
}
