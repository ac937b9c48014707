package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	apperrors "github.com/reviewradar/review-api/pkg/errors"
	"github.com/reviewradar/review-api/pkg/ffmpeg"
)

type stubResolver struct {
	url string
	err error
}

func (s *stubResolver) ResolveMediaURL(ctx context.Context, item models.CandidateItem) (string, error) {
	return s.url, s.err
}

func newTestFetcher(resolvers map[models.Platform]DirectResolver) *Fetcher {
	ff := ffmpeg.New("definitely-not-ffmpeg", "definitely-not-ffprobe", time.Second)
	return New(Config{
		MaxAudioBytes: 1024,
		FetchTimeout:  5 * time.Second,
		YtDlpPath:     "definitely-not-yt-dlp",
	}, ff, resolvers)
}

func TestFetchCacheHit(t *testing.T) {
	itemDir := t.TempDir()
	audioPath := filepath.Join(itemDir, AudioFileName)
	if err := os.WriteFile(audioPath, []byte("cached audio bytes"), 0o644); err != nil {
		t.Fatal(err)
	}

	f := newTestFetcher(nil)
	item := models.CandidateItem{Platform: models.PlatformYouTube, ExternalID: "abc"}

	asset, err := f.Fetch(context.Background(), item, itemDir)
	if err != nil {
		t.Fatalf("expected cache hit, got error: %v", err)
	}
	if asset.Path != audioPath {
		t.Errorf("expected path %s, got %s", audioPath, asset.Path)
	}
	if asset.SizeBytes != int64(len("cached audio bytes")) {
		t.Errorf("unexpected size %d", asset.SizeBytes)
	}
}

func TestFetchNoStrategies(t *testing.T) {
	f := newTestFetcher(nil)
	item := models.CandidateItem{Platform: models.PlatformYouTube, ExternalID: "abc"}

	_, err := f.Fetch(context.Background(), item, t.TempDir())
	if err == nil {
		t.Fatal("expected error with no url and no resolver")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFetchFailed) {
		t.Errorf("expected FETCH_FAILED, got %v", apperrors.GetCode(err))
	}
}

func TestFetchEmptyCachedFileIsNotAHit(t *testing.T) {
	itemDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(itemDir, AudioFileName), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	f := newTestFetcher(nil)
	item := models.CandidateItem{Platform: models.PlatformYouTube, ExternalID: "abc"}

	if _, err := f.Fetch(context.Background(), item, itemDir); err == nil {
		t.Fatal("zero-byte cached file should not satisfy the fetch")
	}
}

func TestFetchAllStrategiesFail(t *testing.T) {
	resolvers := map[models.Platform]DirectResolver{
		models.PlatformTikTok: &stubResolver{err: errors.New("metadata endpoint down")},
	}
	f := newTestFetcher(resolvers)
	item := models.CandidateItem{
		Platform:   models.PlatformTikTok,
		ExternalID: "123",
		URL:        "https://www.tiktok.com/@x/video/123",
	}

	_, err := f.Fetch(context.Background(), item, t.TempDir())
	if err == nil {
		t.Fatal("expected error when resolver and downloader binary both fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFetchFailed) {
		t.Errorf("expected FETCH_FAILED, got %v", apperrors.GetCode(err))
	}
}

func TestFetchDirectProbesContainerBeforeExtraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not really a video"))
	}))
	defer srv.Close()

	resolvers := map[models.Platform]DirectResolver{
		models.PlatformTikTok: &stubResolver{url: srv.URL},
	}
	f := newTestFetcher(resolvers)
	item := models.CandidateItem{Platform: models.PlatformTikTok, ExternalID: "123"}

	_, err := f.Fetch(context.Background(), item, t.TempDir())
	if err == nil {
		t.Fatal("expected error when ffprobe is unavailable")
	}
	if !apperrors.Is(err, apperrors.ErrCodeFetchFailed) {
		t.Errorf("expected FETCH_FAILED, got %v", apperrors.GetCode(err))
	}
	if !strings.Contains(err.Error(), "probing media") {
		t.Errorf("expected the direct strategy to fail at the probe stage, got %v", err)
	}
}

func TestRunChainStopsAtFirstSuccess(t *testing.T) {
	var ran []string
	strategies := []Strategy{
		{Name: "first", Run: func(ctx context.Context) error {
			ran = append(ran, "first")
			return fmt.Errorf("nope")
		}},
		{Name: "second", Run: func(ctx context.Context) error {
			ran = append(ran, "second")
			return nil
		}},
		{Name: "third", Run: func(ctx context.Context) error {
			ran = append(ran, "third")
			return nil
		}},
	}

	if err := runChain(context.Background(), "item", strategies); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 2 || ran[0] != "first" || ran[1] != "second" {
		t.Errorf("unexpected strategy order: %v", ran)
	}
}

func TestRunChainAllFail(t *testing.T) {
	lastErr := errors.New("last failure")
	strategies := []Strategy{
		{Name: "a", Run: func(ctx context.Context) error { return errors.New("first failure") }},
		{Name: "b", Run: func(ctx context.Context) error { return lastErr }},
	}

	err := runChain(context.Background(), "item", strategies)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, lastErr) {
		t.Errorf("expected last failure as cause, got %v", err)
	}
}

func TestRunChainEmpty(t *testing.T) {
	if err := runChain(context.Background(), "item", nil); err == nil {
		t.Fatal("expected error for empty chain")
	}
}

func TestRunChainHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	strategies := []Strategy{
		{Name: "a", Run: func(ctx context.Context) error {
			t.Error("strategy should not run after cancellation")
			return nil
		}},
	}
	if err := runChain(ctx, "item", strategies); err == nil {
		t.Fatal("expected context error")
	}
}
