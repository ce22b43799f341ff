package ffmpeg

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const fallbackDuration = 10.0

// Extractor grabs single frames out of videos by shelling out to
// ffmpeg/ffprobe. It implements ports.FrameExtractor.
type Extractor struct {
	ffmpegPath  string
	ffprobePath string
	tmpDir      string
	logger      *slog.Logger
}

// Config for the extractor. Zero values use the binaries on PATH and
// the system temp directory.
type Config struct {
	FfmpegPath  string
	FfprobePath string
	TmpDir      string
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.FfmpegPath == "" {
		cfg.FfmpegPath = "ffmpeg"
	}
	if cfg.FfprobePath == "" {
		cfg.FfprobePath = "ffprobe"
	}
	if cfg.TmpDir == "" {
		cfg.TmpDir = os.TempDir()
	}

	return &Extractor{
		ffmpegPath:  cfg.FfmpegPath,
		ffprobePath: cfg.FfprobePath,
		tmpDir:      cfg.TmpDir,
		logger:      logger.With("component", "frame-extractor"),
	}
}

// ExtractFrame decodes the video reference, seeks to position percent
// of its duration, and returns the frame as a JPEG data URI.
func (e *Extractor) ExtractFrame(ctx context.Context, videoRef string, position int) (string, error) {
	if position < 0 {
		position = 0
	}
	if position > 100 {
		position = 100
	}

	input, cleanup, err := e.materialize(videoRef)
	if err != nil {
		return "", err
	}
	defer cleanup()

	duration := e.probeDuration(ctx, input)
	seek := float64(position)/100*duration - 0.1
	if seek < 0 {
		seek = 0
	}

	framePath := filepath.Join(e.tmpDir, "frame-"+randomID()+".jpg")
	defer os.Remove(framePath)

	args := []string{
		"-ss", strconv.FormatFloat(seek, 'f', 3, 64),
		"-i", input,
		"-frames:v", "1",
		"-vf", "scale=1280:-1",
		"-q:v", "3",
		"-y", framePath,
	}

	cmd := exec.CommandContext(ctx, e.ffmpegPath, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg error: %v: %s", err, lastLine(out))
	}

	frame, err := os.ReadFile(framePath)
	if err != nil {
		return "", fmt.Errorf("read extracted frame: %w", err)
	}

	e.logger.Debug("frame extracted",
		"position_pct", position,
		"seek_s", seek,
		"frame_bytes", len(frame))
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(frame), nil
}

// materialize turns the video reference into an ffmpeg input: data URIs
// are written to a temp file, remote URLs are passed straight through.
func (e *Extractor) materialize(videoRef string) (string, func(), error) {
	if !strings.HasPrefix(videoRef, "data:") {
		return videoRef, func() {}, nil
	}

	payload := videoRef
	if _, after, found := strings.Cut(videoRef, ","); found {
		payload = after
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode video data uri: %w", err)
	}

	ext := "mp4"
	if strings.Contains(videoRef, "webm") {
		ext = "webm"
	}

	path := filepath.Join(e.tmpDir, "video-"+randomID()+"."+ext)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return "", nil, err
	}
	return path, func() { os.Remove(path) }, nil
}

// probeDuration asks ffprobe for the container duration, falling back
// to a safe default when probing fails.
func (e *Extractor) probeDuration(ctx context.Context, input string) float64 {
	cmd := exec.CommandContext(ctx, e.ffprobePath,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		input)

	out, err := cmd.Output()
	if err != nil {
		e.logger.Debug("ffprobe failed, using fallback duration", "error", err)
		return fallbackDuration
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil || duration <= 0 {
		return fallbackDuration
	}
	return duration
}

func randomID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "00000000"
	}
	return hex.EncodeToString(buf)
}

func lastLine(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
