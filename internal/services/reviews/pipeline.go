package reviews

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/internal/services/aggregator"
	"github.com/reviewradar/review-api/internal/services/sources"
	"github.com/reviewradar/review-api/internal/services/store"
	"github.com/reviewradar/review-api/pkg/errors"
	"github.com/reviewradar/review-api/pkg/langdetect"
)

// PipelineConfig tunes the per-query batch.
type PipelineConfig struct {
	Workers       int
	DefaultLimits map[models.Platform]int
}

// Pipeline runs one product query end to end: search every platform,
// fetch and transcribe each hit, persist, synthesize, aggregate.
// Per-item failures are dropped with a log line; a whole platform
// failing only degrades the batch. The caller sees an error for
// exactly two conditions: an empty query, or every source failing.
type Pipeline struct {
	adapters      []sources.Adapter
	listings      sources.ListingsProvider
	fetcher       MediaFetcher
	transcriber   TranscriptProducer
	synthesizer   ReviewSynthesizer
	store         *store.Store
	detector      *langdetect.Detector
	workers       int
	defaultLimits map[models.Platform]int
}

// NewPipeline wires the pipeline stages together. listings may be nil
// when no shopping credentials are configured.
func NewPipeline(
	cfg PipelineConfig,
	adapters []sources.Adapter,
	listings sources.ListingsProvider,
	fetcher MediaFetcher,
	transcriber TranscriptProducer,
	synthesizer ReviewSynthesizer,
	st *store.Store,
	detector *langdetect.Detector,
) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	return &Pipeline{
		adapters:      adapters,
		listings:      listings,
		fetcher:       fetcher,
		transcriber:   transcriber,
		synthesizer:   synthesizer,
		store:         st,
		detector:      detector,
		workers:       cfg.Workers,
		defaultLimits: cfg.DefaultLimits,
	}
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	Set      *models.ReviewSet
	Scope    string
	Degraded bool
}

// Run executes the batch for one query.
func (p *Pipeline) Run(ctx context.Context, query string, limits map[models.Platform]int) (*RunResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "product query cannot be empty")
	}

	scope := store.ScopeName(query, time.Now())
	log.Printf("[DEBUG] Starting review run for %q (scope %s)", query, scope)

	candidates, sourcesUp, degraded := p.collectCandidates(ctx, query, limits)

	var signal *models.NumericSignal
	if p.listings != nil {
		sig, err := p.listings.FetchSignal(ctx, query)
		if err != nil {
			log.Printf("[ERROR] Shopping signal unavailable for %q: %v", query, err)
			degraded = true
		} else {
			signal = sig
			sourcesUp++
		}
	}

	if sourcesUp == 0 {
		return nil, errors.New(errors.ErrCodeNoSources, "no sources could be reached for this query")
	}

	synthesized := p.processItems(ctx, scope, candidates)

	if len(synthesized) > 0 {
		if err := p.store.SaveRollup(scope, synthesized); err != nil {
			log.Printf("[ERROR] Failed to write review rollup for scope %s: %v", scope, err)
		}
	}

	set := aggregator.Build(query, synthesized, signal)
	log.Printf("[DEBUG] Run for %q finished: %d reviews, %d listing reviews, degraded=%v",
		query, len(set.Reviews), set.TotalReviews, degraded)

	return &RunResult{Set: set, Scope: scope, Degraded: degraded}, nil
}

// collectCandidates searches every platform adapter. A platform that
// errors contributes nothing and marks the batch degraded.
func (p *Pipeline) collectCandidates(ctx context.Context, query string, limits map[models.Platform]int) ([]models.CandidateItem, int, bool) {
	var candidates []models.CandidateItem
	sourcesUp := 0
	degraded := false

	for _, adapter := range p.adapters {
		platform := adapter.Platform()
		items, err := adapter.Search(ctx, query, p.limitFor(platform, limits))
		if err != nil {
			log.Printf("[ERROR] Source %s unavailable for %q: %v", platform, query, err)
			degraded = true
			continue
		}
		sourcesUp++
		candidates = append(candidates, items...)
	}
	return candidates, sourcesUp, degraded
}

func (p *Pipeline) limitFor(platform models.Platform, limits map[models.Platform]int) int {
	if n, ok := limits[platform]; ok && n > 0 {
		return n
	}
	if n, ok := p.defaultLimits[platform]; ok && n > 0 {
		return n
	}
	return 2
}

// processItems runs the per-item chains on a bounded worker fan-out.
// Every failure drops exactly one item.
func (p *Pipeline) processItems(ctx context.Context, scope string, items []models.CandidateItem) []models.SynthesizedReview {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		reviews []models.SynthesizedReview
	)
	sem := make(chan struct{}, p.workers)
	seen := make(map[string]bool, len(items))

	for _, item := range items {
		if err := item.Validate(); err != nil {
			log.Printf("[DEBUG] Dropping malformed candidate: %v", err)
			continue
		}
		identity := item.Identity()
		if seen[identity] {
			continue
		}
		seen[identity] = true

		wg.Add(1)
		sem <- struct{}{}
		go func(item models.CandidateItem) {
			defer wg.Done()
			defer func() { <-sem }()

			review, err := p.processItem(ctx, scope, item)
			if err != nil {
				log.Printf("[DEBUG] Dropping %s: %v", item.Identity(), err)
				return
			}
			mu.Lock()
			reviews = append(reviews, *review)
			mu.Unlock()
		}(item)
	}

	wg.Wait()
	return reviews
}

// processItem runs one candidate through gate, fetch, transcribe,
// persist and synthesis. An already persisted record short-circuits
// the fetch and transcription stages.
func (p *Pipeline) processItem(ctx context.Context, scope string, item models.CandidateItem) (*models.SynthesizedReview, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Platform language metadata wins over title heuristics: an item
	// the vendor declares target-language is fetched regardless of its
	// title. Otherwise a confidently non-target title saves a
	// download. Undetectable titles pass through; the transcript gate
	// has the final word.
	if !p.detector.MatchesTag(item.Language) && item.Title != "" {
		if detected := p.detector.Detect(item.Title); detected != "" && detected != p.detector.Target() {
			return nil, errors.NonTargetLanguage(item.Identity(), detected)
		}
	}

	var record *models.PersistedRecord
	if p.store.Exists(scope, item) {
		loaded, err := p.store.Load(scope, item)
		if err == nil {
			log.Printf("[DEBUG] Reusing persisted record for %s", item.Identity())
			record = loaded
		}
	}

	if record == nil {
		asset, err := p.fetcher.Fetch(ctx, item, p.store.ItemDir(scope, item))
		if err != nil {
			return nil, err
		}

		transcript, err := p.transcriber.Transcribe(ctx, item, asset)
		if err != nil {
			return nil, err
		}

		record = &models.PersistedRecord{Item: item, Transcript: transcript.Text}
		if err := p.store.Save(scope, *record); err != nil {
			return nil, err
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.synthesizer.Synthesize(ctx, *record)
}
