package reviews

import (
	"gorm.io/gorm"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/internal/services/fetcher"
	"github.com/reviewradar/review-api/internal/services/sources"
	"github.com/reviewradar/review-api/internal/services/sources/shopping"
	"github.com/reviewradar/review-api/internal/services/sources/tiktok"
	"github.com/reviewradar/review-api/internal/services/sources/youtube"
	"github.com/reviewradar/review-api/internal/services/store"
	"github.com/reviewradar/review-api/internal/services/synthesizer"
	"github.com/reviewradar/review-api/internal/services/transcriber"
	"github.com/reviewradar/review-api/pkg/config"
	"github.com/reviewradar/review-api/pkg/ffmpeg"
	"github.com/reviewradar/review-api/pkg/langdetect"
)

// BuildFromConfig wires the full pipeline from application config.
// Platforms without configured credentials are simply not registered.
// db may be nil; the service then skips run-history recording.
func BuildFromConfig(cfg *config.Config, db *gorm.DB) Service {
	detector := langdetect.New(cfg.Pipeline.TargetLanguage)

	var adapters []sources.Adapter
	resolvers := map[models.Platform]fetcher.DirectResolver{}

	if len(cfg.YouTube.APIKeys) > 0 {
		adapters = append(adapters, youtube.NewClient(youtube.Config{
			APIKeys:   cfg.YouTube.APIKeys,
			BaseURL:   cfg.YouTube.BaseURL,
			Timeout:   cfg.YouTube.Timeout,
			RateLimit: cfg.YouTube.RateLimit,
		}))
	}

	if cfg.TikTok.Token != "" {
		tiktokClient := tiktok.NewClient(tiktok.Config{
			Token:     cfg.TikTok.Token,
			BaseURL:   cfg.TikTok.BaseURL,
			Country:   cfg.TikTok.Country,
			Timeout:   cfg.TikTok.Timeout,
			RateLimit: cfg.TikTok.RateLimit,
		})
		adapters = append(adapters, tiktokClient)
		resolvers[models.PlatformTikTok] = tiktokClient
	}

	var listings sources.ListingsProvider
	if cfg.Shopping.Username != "" && cfg.Shopping.Password != "" {
		listings = shopping.NewClient(shopping.Config{
			Username: cfg.Shopping.Username,
			Password: cfg.Shopping.Password,
			Endpoint: cfg.Shopping.Endpoint,
			Domain:   cfg.Shopping.Domain,
			Pages:    cfg.Shopping.Pages,
			Timeout:  cfg.Shopping.Timeout,
		})
	}

	ff := ffmpeg.New(cfg.Pipeline.FFmpegPath, cfg.Pipeline.FFprobePath, cfg.Pipeline.FFmpegTimeout)

	mediaFetcher := fetcher.New(fetcher.Config{
		MaxAudioBytes: cfg.Pipeline.MaxAudioBytes,
		FetchTimeout:  cfg.Pipeline.FetchTimeout,
		YtDlpPath:     cfg.Pipeline.YtDlpPath,
	}, ff, resolvers)

	transcriberClient := transcriber.New(transcriber.Config{
		APIKey:        cfg.Whisper.APIKey,
		APIURL:        cfg.Whisper.APIURL,
		Model:         cfg.Whisper.Model,
		Timeout:       cfg.Whisper.Timeout,
		MaxAudioBytes: cfg.Pipeline.MaxAudioBytes,
	}, detector)

	synthesizerClient := synthesizer.New(synthesizer.Config{
		APIKey:      cfg.Chat.APIKey,
		APIURL:      cfg.Chat.APIURL,
		Model:       cfg.Chat.Model,
		Temperature: cfg.Chat.Temperature,
		Timeout:     cfg.Chat.Timeout,
	})

	pipeline := NewPipeline(
		PipelineConfig{
			Workers: cfg.Pipeline.Workers,
			DefaultLimits: map[models.Platform]int{
				models.PlatformYouTube: cfg.YouTube.DefaultLimit,
				models.PlatformTikTok:  cfg.TikTok.DefaultLimit,
			},
		},
		adapters,
		listings,
		mediaFetcher,
		transcriberClient,
		synthesizerClient,
		store.New(cfg.Pipeline.DownloadsRoot),
		detector,
	)

	var repo *Repository
	if db != nil {
		repo = NewRepository(db)
	}
	return NewService(pipeline, repo)
}
