package fetcher

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/pkg/download"
	"github.com/reviewradar/review-api/pkg/errors"
	"github.com/reviewradar/review-api/pkg/ffmpeg"
)

// AudioFileName is the audio asset name inside an item directory. A
// file already present there is treated as a cache hit and the fetch
// is skipped entirely, which is what makes re-runs idempotent.
const AudioFileName = "audio.mp3"

// DirectResolver resolves a candidate item to a direct media URL
// without going through a downloader binary. Platforms whose metadata
// API exposes playback URLs implement this.
type DirectResolver interface {
	ResolveMediaURL(ctx context.Context, item models.CandidateItem) (string, error)
}

// Config holds fetcher tuning
type Config struct {
	MaxAudioBytes int64
	FetchTimeout  time.Duration
	YtDlpPath     string
}

// Fetcher turns a candidate item into a local audio asset. It walks an
// ordered list of strategies per item: direct resolution first where a
// resolver exists for the platform, then the generic downloader binary.
type Fetcher struct {
	downloader *download.Downloader
	ffmpeg     *ffmpeg.FFmpeg
	resolvers  map[models.Platform]DirectResolver
	ytDlpPath  string
	maxBytes   int64
	timeout    time.Duration
}

// New creates a fetcher. resolvers may be nil or partial; platforms
// without a resolver fall straight through to the downloader binary.
func New(cfg Config, ff *ffmpeg.FFmpeg, resolvers map[models.Platform]DirectResolver) *Fetcher {
	if cfg.MaxAudioBytes <= 0 {
		cfg.MaxAudioBytes = 20 * 1024 * 1024
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 3 * time.Minute
	}
	if cfg.YtDlpPath == "" {
		cfg.YtDlpPath = "yt-dlp"
	}

	opts := download.DefaultOptions()
	opts.MaxSize = cfg.MaxAudioBytes
	opts.Timeout = cfg.FetchTimeout

	return &Fetcher{
		downloader: download.NewDownloader(opts),
		ffmpeg:     ff,
		resolvers:  resolvers,
		ytDlpPath:  cfg.YtDlpPath,
		maxBytes:   cfg.MaxAudioBytes,
		timeout:    cfg.FetchTimeout,
	}
}

// Fetch produces the audio asset for one item inside itemDir. When the
// asset already exists the fetch is skipped and the existing file is
// returned unchanged.
func (f *Fetcher) Fetch(ctx context.Context, item models.CandidateItem, itemDir string) (*models.MediaAsset, error) {
	audioPath := filepath.Join(itemDir, AudioFileName)

	if info, err := os.Stat(audioPath); err == nil && info.Size() > 0 {
		log.Printf("[DEBUG] Audio already present for %s, skipping fetch", item.Identity())
		return &models.MediaAsset{Path: audioPath, SizeBytes: info.Size()}, nil
	}

	if err := os.MkdirAll(itemDir, 0o755); err != nil {
		return nil, errors.FetchFailed(item.Identity(), fmt.Errorf("creating item directory: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	truncated := false
	strategies := f.buildStrategies(item, itemDir, audioPath, &truncated)

	if err := runChain(ctx, item.Identity(), strategies); err != nil {
		os.Remove(audioPath)
		return nil, errors.FetchFailed(item.Identity(), err)
	}

	info, err := os.Stat(audioPath)
	if err != nil {
		return nil, errors.FetchFailed(item.Identity(), fmt.Errorf("audio file missing after fetch: %w", err))
	}
	if info.Size() == 0 {
		os.Remove(audioPath)
		return nil, errors.FetchFailed(item.Identity(), fmt.Errorf("fetch produced an empty audio file"))
	}
	if f.maxBytes > 0 && info.Size() > f.maxBytes {
		os.Remove(audioPath)
		return nil, errors.Oversized(item.Identity(), info.Size(), f.maxBytes)
	}

	return &models.MediaAsset{Path: audioPath, SizeBytes: info.Size(), Truncated: truncated}, nil
}

func (f *Fetcher) buildStrategies(item models.CandidateItem, itemDir, audioPath string, truncated *bool) []Strategy {
	var strategies []Strategy

	if resolver, ok := f.resolvers[item.Platform]; ok && resolver != nil {
		strategies = append(strategies, Strategy{
			Name: "direct",
			Run: func(ctx context.Context) error {
				return f.fetchDirect(ctx, resolver, item, itemDir, audioPath, truncated)
			},
		})
	}

	if item.URL != "" {
		strategies = append(strategies, Strategy{
			Name: "yt-dlp",
			Run: func(ctx context.Context) error {
				return f.fetchWithYtDlp(ctx, item.URL, itemDir, audioPath)
			},
		})
	}

	return strategies
}

// fetchDirect resolves the item to a media URL, downloads the raw
// container, and strips the audio track out of it.
func (f *Fetcher) fetchDirect(ctx context.Context, resolver DirectResolver, item models.CandidateItem, itemDir, audioPath string, truncated *bool) error {
	mediaURL, err := resolver.ResolveMediaURL(ctx, item)
	if err != nil {
		return fmt.Errorf("resolving media url: %w", err)
	}

	tempPath := filepath.Join(itemDir, "source.tmp")
	defer os.Remove(tempPath)

	result, err := f.downloader.DownloadToFile(ctx, mediaURL, tempPath)
	if err != nil {
		return fmt.Errorf("downloading media: %w", err)
	}

	info, err := f.ffmpeg.Probe(ctx, tempPath)
	if err != nil {
		return fmt.Errorf("probing media: %w", err)
	}
	if !info.HasAudio {
		return fmt.Errorf("downloaded media has no audio stream")
	}

	if err := f.ffmpeg.ExtractAudio(ctx, tempPath, audioPath); err != nil {
		os.Remove(audioPath)
		return fmt.Errorf("extracting audio: %w", err)
	}

	*truncated = result.Truncated
	return nil
}

// fetchWithYtDlp shells out to the downloader binary with audio
// extraction enabled. The binary refuses files above the size ceiling
// rather than truncating them.
func (f *Fetcher) fetchWithYtDlp(ctx context.Context, url, itemDir, audioPath string) error {
	outputTemplate := filepath.Join(itemDir, "audio.%(ext)s")

	args := []string{
		"-x",
		"--audio-format", "mp3",
		"--no-playlist",
		"--quiet",
		"--max-filesize", strconv.FormatInt(f.maxBytes, 10),
		"-o", outputTemplate,
		url,
	}

	cmd := exec.CommandContext(ctx, f.ytDlpPath, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(audioPath)
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("yt-dlp failed: %v: %s", err, msg)
		}
		return fmt.Errorf("yt-dlp failed: %w", err)
	}

	if _, err := os.Stat(audioPath); err != nil {
		return fmt.Errorf("yt-dlp produced no audio file: %w", err)
	}
	return nil
}
