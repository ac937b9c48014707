package ffmpeg

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	f := New("ffmpeg", "ffprobe", 2*time.Minute)

	if f.ffmpegPath != "ffmpeg" {
		t.Errorf("Expected ffmpeg path 'ffmpeg', got %s", f.ffmpegPath)
	}
	if f.ffprobePath != "ffprobe" {
		t.Errorf("Expected ffprobe path 'ffprobe', got %s", f.ffprobePath)
	}
	if f.timeout != 2*time.Minute {
		t.Errorf("Expected timeout 2m, got %v", f.timeout)
	}
}

func TestValidateBinariesMissing(t *testing.T) {
	f := New("/nonexistent/ffmpeg", "/nonexistent/ffprobe", time.Minute)

	err := f.ValidateBinaries()
	if !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("Expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestProcessingError(t *testing.T) {
	cause := errors.New("exit status 1")
	err := NewProcessingError("audio_extraction", "/tmp/video.mp4", cause, "codec not found")

	if !errors.Is(err, cause) {
		t.Error("Expected ProcessingError to unwrap to cause")
	}

	msg := err.Error()
	if msg == "" {
		t.Fatal("Expected non-empty error message")
	}
}
