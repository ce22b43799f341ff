package ffmpeg

import (
	"context"
	"encoding/base64"
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestMaterialize_RemoteReferencePassesThrough(t *testing.T) {
	extractor := NewExtractor(Config{TmpDir: t.TempDir()}, testLogger())

	input, cleanup, err := extractor.materialize("https://cdn.example.com/demo.mp4")
	require.NoError(t, err)
	defer cleanup()

	assert.Equal(t, "https://cdn.example.com/demo.mp4", input)
}

func TestMaterialize_DataURIWritesTempFile(t *testing.T) {
	dir := t.TempDir()
	extractor := NewExtractor(Config{TmpDir: dir}, testLogger())

	payload := []byte("fake video bytes")
	dataURI := "data:video/mp4;base64," + base64.StdEncoding.EncodeToString(payload)

	input, cleanup, err := extractor.materialize(dataURI)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(input, dir))
	assert.True(t, strings.HasSuffix(input, ".mp4"))

	written, err := os.ReadFile(input)
	require.NoError(t, err)
	assert.Equal(t, payload, written)

	cleanup()
	_, err = os.Stat(input)
	assert.True(t, os.IsNotExist(err))
}

func TestMaterialize_WebmExtension(t *testing.T) {
	extractor := NewExtractor(Config{TmpDir: t.TempDir()}, testLogger())

	dataURI := "data:video/webm;base64," + base64.StdEncoding.EncodeToString([]byte("x"))
	input, cleanup, err := extractor.materialize(dataURI)
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, strings.HasSuffix(input, ".webm"))
}

func TestMaterialize_BadBase64(t *testing.T) {
	extractor := NewExtractor(Config{TmpDir: t.TempDir()}, testLogger())

	_, _, err := extractor.materialize("data:video/mp4;base64,!!!")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode video data uri")
}

func TestProbeDuration_FallsBackWhenProbeFails(t *testing.T) {
	extractor := NewExtractor(Config{
		FfprobePath: "/nonexistent/ffprobe",
		TmpDir:      t.TempDir(),
	}, testLogger())

	duration := extractor.probeDuration(context.Background(), "demo.mp4")
	assert.Equal(t, fallbackDuration, duration)
}

func TestExtractFrame_FfmpegFailureSurfaces(t *testing.T) {
	extractor := NewExtractor(Config{
		FfmpegPath:  "/nonexistent/ffmpeg",
		FfprobePath: "/nonexistent/ffprobe",
		TmpDir:      t.TempDir(),
	}, testLogger())

	_, err := extractor.ExtractFrame(context.Background(), "https://cdn.example.com/demo.mp4", 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ffmpeg error")
}

func TestLastLine(t *testing.T) {
	assert.Equal(t, "final error", lastLine([]byte("warning one\nwarning two\nfinal error\n")))
	assert.Equal(t, "only", lastLine([]byte("only")))
	assert.Equal(t, "", lastLine(nil))
}
