// Package media wraps ffprobe and ffmpeg for the transcription stage.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

// Toolkit runs ffprobe and ffmpeg binaries
type Toolkit struct {
	ffmpegPath  string
	ffprobePath string
}

// NewToolkit resolves both binaries on PATH
func NewToolkit(cfg *config.MediaConfig) (*Toolkit, error) {
	ffmpeg, err := exec.LookPath(cfg.FFmpegPath)
	if err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	ffprobe, err := exec.LookPath(cfg.FFprobePath)
	if err != nil {
		return nil, fmt.Errorf("ffprobe not found: %w", err)
	}
	return &Toolkit{ffmpegPath: ffmpeg, ffprobePath: ffprobe}, nil
}

type probeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Duration returns the container duration of a media file
func (t *Toolkit) Duration(ctx context.Context, path string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, t.ffprobePath, //nolint:gosec // path from exec.LookPath
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var out probeOutput
	if err := json.Unmarshal(output, &out); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if out.Format.Duration == "" {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", filepath.Base(path))
	}
	secs, err := strconv.ParseFloat(out.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", out.Format.Duration, err)
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// ExtractAudio writes the audio stream of input as mono mp3
func (t *Toolkit) ExtractAudio(ctx context.Context, input, output string) error {
	return t.run(ctx, "-y", "-i", input, "-vn", "-ac", "1", "-ar", "16000", "-b:a", "64k", output)
}

// ToWav converts input to mono 16 kHz wav
func (t *Toolkit) ToWav(ctx context.Context, input, output string) error {
	return t.run(ctx, "-y", "-i", input, "-vn", "-ac", "1", "-ar", "16000", output)
}

// Split cuts input into fixed-length segments under dir and returns them in order
func (t *Toolkit) Split(ctx context.Context, input, dir string, segment time.Duration) ([]string, error) {
	ext := filepath.Ext(input)
	if ext == "" {
		ext = ".mp4"
	}
	pattern := filepath.Join(dir, "chunk_%03d"+ext)
	err := t.run(ctx,
		"-i", input,
		"-c", "copy",
		"-map", "0",
		"-segment_time", strconv.Itoa(int(segment.Seconds())),
		"-f", "segment",
		"-reset_timestamps", "1",
		pattern,
	)
	if err != nil {
		return nil, err
	}

	chunks, err := filepath.Glob(filepath.Join(dir, "chunk_*"+ext))
	if err != nil {
		return nil, err
	}
	sort.Strings(chunks)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no segments")
	}
	return chunks, nil
}

func (t *Toolkit) run(ctx context.Context, args ...string) error {
	args = append([]string{"-hide_banner", "-loglevel", "error"}, args...)
	cmd := exec.CommandContext(ctx, t.ffmpegPath, args...) //nolint:gosec // path from exec.LookPath
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg failed: %w: %s", err, truncate(string(out), 300))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
