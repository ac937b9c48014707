package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrTooLarge is returned when the remote advertises a size above the
// configured ceiling before any bytes are transferred.
var ErrTooLarge = errors.New("remote file exceeds size ceiling")

// Options configures the download behavior
type Options struct {
	MaxSize       int64         // Maximum file size in bytes (0 = no limit)
	Timeout       time.Duration // Download timeout
	UserAgent     string        // User agent string
	ValidateMedia bool          // Validate content-type is audio/video
}

// DefaultOptions returns default download options
func DefaultOptions() Options {
	return Options{
		MaxSize:       20 * 1024 * 1024,
		Timeout:       3 * time.Minute,
		UserAgent:     "ReviewRadar/1.0",
		ValidateMedia: false,
	}
}

// Result contains information about a successful download
type Result struct {
	FilePath      string // Path to downloaded file
	ContentType   string // Content-Type from response
	ContentLength int64  // Bytes actually written
	Truncated     bool   // True when the read was capped at MaxSize
}

// Downloader fetches media byte streams into item-scoped files
type Downloader struct {
	client  *http.Client
	options Options
}

// NewDownloader creates a new downloader with the given options
func NewDownloader(options Options) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: options.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				IdleConnTimeout:     30 * time.Second,
				DisableCompression:  true, // Don't compress media
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		options: options,
	}
}

// DownloadToFile downloads a URL into destPath. When the server
// advertises a Content-Length above the ceiling, the transfer is refused
// with ErrTooLarge. When no length is advertised the read is truncated
// at the ceiling instead, so an unbounded remote cannot stall the batch.
func (d *Downloader) DownloadToFile(ctx context.Context, url, destPath string) (*Result, error) {
	log.Printf("[DEBUG] Starting download from %s to %s", url, destPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", d.options.UserAgent)
	req.Header.Set("Accept", "audio/*,video/*,*/*")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusPartialContent {
		return nil, fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if d.options.ValidateMedia && !isMediaContentType(contentType) {
		return nil, fmt.Errorf("invalid content type: %s", contentType)
	}

	// Ceiling check up front when the remote exposes a size
	if d.options.MaxSize > 0 && resp.ContentLength > d.options.MaxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrTooLarge, resp.ContentLength, d.options.MaxSize)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create destination directory: %w", err)
	}

	dest, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}

	written, truncated, err := d.copyCapped(resp.Body, dest)
	closeErr := dest.Close()
	if err != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to download: %w", err)
	}
	if closeErr != nil {
		os.Remove(destPath)
		return nil, fmt.Errorf("failed to finalize download: %w", closeErr)
	}

	log.Printf("[DEBUG] Downloaded %d bytes to %s (truncated=%v)", written, destPath, truncated)

	return &Result{
		FilePath:      destPath,
		ContentType:   contentType,
		ContentLength: written,
		Truncated:     truncated,
	}, nil
}

// copyCapped copies src to dst reading at most MaxSize bytes.
func (d *Downloader) copyCapped(src io.Reader, dst *os.File) (int64, bool, error) {
	if d.options.MaxSize <= 0 {
		n, err := io.Copy(dst, src)
		return n, false, err
	}

	limited := &io.LimitedReader{R: src, N: d.options.MaxSize}
	n, err := io.Copy(dst, limited)
	if err != nil {
		return n, false, err
	}
	// N exhausted means the source had more bytes than the ceiling
	return n, limited.N == 0, nil
}

// isMediaContentType checks if content type is audio or video
func isMediaContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "audio/") ||
		strings.HasPrefix(contentType, "video/") ||
		contentType == "application/octet-stream" // Some servers use this for media
}
