// Package synthesizer turns persisted transcripts into first-person
// review statements through a chat completion API.
package synthesizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/pkg/errors"
)

// Config holds configuration for the synthesis client
type Config struct {
	APIKey      string
	APIURL      string
	Model       string
	Temperature float64
	Timeout     time.Duration
}

// Synthesizer generates one consumer review per transcript.
type Synthesizer struct {
	httpClient  *http.Client
	apiKey      string
	apiURL      string
	model       string
	temperature float64
}

// New creates a synthesizer
func New(cfg Config) *Synthesizer {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.openai.com/v1/chat/completions"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4-turbo-preview"
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 90 * time.Second
	}

	return &Synthesizer{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		apiKey:      cfg.APIKey,
		apiURL:      cfg.APIURL,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

const systemPrompt = `You write product reviews in the voice of a customer who bought and used the product. You are given the transcript of someone talking about the product. Write a single review based only on what the transcript says.

Rules:
- Write in first person, as a buyer of the product.
- Keep it between one and four sentences.
- Mention at least one thing you liked and, when the transcript supports it, one drawback.
- Never mention a video, watching anything, a creator, or a transcript.
- Respond with a JSON object containing exactly two fields: "review_text" (string) and "rating" (number from 1 to 5). No other fields, no surrounding text.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// rawReview is the model's unvalidated output. Rating is untyped
// because models return it as a number or a numeric string.
type rawReview struct {
	ReviewText string      `json:"review_text"`
	Rating     interface{} `json:"rating"`
}

// Synthesize generates one review from the record's transcript. Model
// output that cannot be parsed or fails validation yields a typed
// error so the caller drops the item instead of aborting the batch.
func (s *Synthesizer) Synthesize(ctx context.Context, record models.PersistedRecord) (*models.SynthesizedReview, error) {
	itemID := record.Item.Identity()

	if s.apiKey == "" {
		return nil, errors.SynthesisFailed(itemID, fmt.Errorf("no API key configured"))
	}
	if strings.TrimSpace(record.Transcript) == "" {
		return nil, errors.SynthesisFailed(itemID, fmt.Errorf("record carries an empty transcript"))
	}

	content, err := s.complete(ctx, record.Transcript)
	if err != nil {
		return nil, errors.SynthesisFailed(itemID, err)
	}

	raw, err := parseReviewJSON(content)
	if err != nil {
		return nil, errors.SynthesisFailed(itemID, err)
	}

	rating, err := validateReview(raw)
	if err != nil {
		return nil, errors.SynthesisFailed(itemID, err)
	}

	log.Printf("[DEBUG] Synthesized review for %s (rating %.1f)", itemID, rating)
	return &models.SynthesizedReview{
		VideoTitle: record.Item.Title,
		Channel:    record.Item.Channel,
		ReviewText: raw.ReviewText,
		Rating:     rating,
		SourceURL:  record.Item.URL,
	}, nil
}

func (s *Synthesizer) complete(ctx context.Context, transcript string) (string, error) {
	payload := chatRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Transcript:\n" + transcript},
		},
		Temperature: s.temperature,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("API returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

var embeddedObject = regexp.MustCompile(`\{[^{}]*\}`)

// parseReviewJSON parses model output in two tiers: strict unmarshal
// of the whole content first, then the first flat JSON object embedded
// in it. Models wrap JSON in prose or code fences often enough that
// the second tier earns its keep.
func parseReviewJSON(content string) (*rawReview, error) {
	content = strings.TrimSpace(content)

	var raw rawReview
	if err := json.Unmarshal([]byte(content), &raw); err == nil {
		return &raw, nil
	}

	match := embeddedObject.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	if err := json.Unmarshal([]byte(match), &raw); err != nil {
		return nil, fmt.Errorf("parsing embedded JSON object: %w", err)
	}
	return &raw, nil
}

// validateReview checks the model output and coerces the rating.
func validateReview(raw *rawReview) (float64, error) {
	if len(strings.TrimSpace(raw.ReviewText)) < 10 {
		return 0, fmt.Errorf("review text too short")
	}
	if raw.Rating == nil {
		return 0, fmt.Errorf("rating missing")
	}

	var rating float64
	switch v := raw.Rating.(type) {
	case float64:
		rating = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("rating %q is not numeric", v)
		}
		rating = parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, fmt.Errorf("rating %q is not numeric", v)
		}
		rating = parsed
	default:
		return 0, fmt.Errorf("rating has unexpected type %T", v)
	}

	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating %.1f outside the 1 to 5 scale", rating)
	}
	return rating, nil
}
