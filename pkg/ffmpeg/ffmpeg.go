package ffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"
)

// FFmpeg wraps ffmpeg and ffprobe functionality
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	timeout     time.Duration
}

// New creates a new FFmpeg instance
func New(ffmpegPath, ffprobePath string, timeout time.Duration) *FFmpeg {
	return &FFmpeg{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		timeout:     timeout,
	}
}

// ValidateBinaries checks if ffmpeg and ffprobe are available
func (f *FFmpeg) ValidateBinaries() error {
	if _, err := exec.LookPath(f.ffmpegPath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFmpegNotFound, f.ffmpegPath)
	}

	if _, err := exec.LookPath(f.ffprobePath); err != nil {
		return fmt.Errorf("%w: %s", ErrFFprobeNotFound, f.ffprobePath)
	}

	return nil
}

// ExtractAudio strips the audio track from a media file into an mp3.
// This is what turns a downloaded short-video container into the audio
// asset the transcriber consumes.
func (f *FFmpeg) ExtractAudio(ctx context.Context, inputPath, outputPath string) error {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	args := []string{
		"-y",
		"-i", inputPath,
		"-vn",
		"-acodec", "libmp3lame",
		"-q:a", "4",
		outputPath,
	}

	cmd := exec.CommandContext(ctx, f.ffmpegPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return NewProcessingError("audio_extraction", inputPath, ErrProcessingTimeout, stderr.String())
		}
		return NewProcessingError("audio_extraction", inputPath, err, stderr.String())
	}

	return nil
}

// ffprobeOutput represents the JSON structure returned by ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		FormatName string `json:"format_name"`
	} `json:"format"`
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
}

// MediaInfo summarizes what ffprobe reports about a file
type MediaInfo struct {
	Duration  float64
	SizeBytes int64
	Format    string
	HasAudio  bool
}

// Probe extracts container metadata using ffprobe
func (f *FFmpeg) Probe(ctx context.Context, filePath string) (*MediaInfo, error) {
	args := []string{
		"-v", "quiet",
		"-show_format",
		"-show_streams",
		"-of", "json",
		filePath,
	}

	cmd := exec.CommandContext(ctx, f.ffprobePath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, NewProcessingError("probe", filePath, err, stderr.String())
	}

	var output ffprobeOutput
	if err := json.Unmarshal(stdout.Bytes(), &output); err != nil {
		return nil, NewProcessingError("probe_parsing", filePath, err, "")
	}

	info := &MediaInfo{Format: output.Format.FormatName}
	if output.Format.Duration != "" {
		if d, err := strconv.ParseFloat(output.Format.Duration, 64); err == nil {
			info.Duration = d
		}
	}
	if output.Format.Size != "" {
		if s, err := strconv.ParseInt(output.Format.Size, 10, 64); err == nil {
			info.SizeBytes = s
		}
	}
	for _, stream := range output.Streams {
		if stream.CodecType == "audio" {
			info.HasAudio = true
			break
		}
	}

	if info.Format == "" && len(output.Streams) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMediaFile, filePath)
	}

	return info, nil
}
