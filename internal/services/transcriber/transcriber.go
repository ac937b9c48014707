package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/pkg/errors"
	"github.com/reviewradar/review-api/pkg/langdetect"
)

// Config holds configuration for the transcription client
type Config struct {
	APIKey        string
	APIURL        string
	Model         string
	Timeout       time.Duration
	MaxAudioBytes int64
}

// Transcriber sends audio assets to a speech-to-text API and gates the
// resulting text against the target language. An asset larger than the
// ceiling is sent truncated rather than rejected, so a slightly
// overweight file still yields a usable transcript.
type Transcriber struct {
	httpClient *http.Client
	apiKey     string
	apiURL     string
	model      string
	maxBytes   int64
	detector   *langdetect.Detector
}

// New creates a transcriber
func New(cfg Config, detector *langdetect.Detector) *Transcriber {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.openai.com/v1/audio/transcriptions"
	}
	if cfg.Model == "" {
		cfg.Model = "whisper-1"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 2 * time.Minute
	}
	if cfg.MaxAudioBytes <= 0 {
		cfg.MaxAudioBytes = 20 * 1024 * 1024
	}

	return &Transcriber{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		maxBytes:   cfg.MaxAudioBytes,
		detector:   detector,
	}
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe converts the item's audio asset into a language-gated
// transcript. Text in a non-target language fails with a typed error
// so the caller can drop the item without treating it as an outage.
func (t *Transcriber) Transcribe(ctx context.Context, item models.CandidateItem, asset *models.MediaAsset) (*models.Transcript, error) {
	if t.apiKey == "" {
		return nil, errors.TranscriptionFailed(item.Identity(), fmt.Errorf("no API key configured"))
	}

	body, contentType, err := t.buildRequestBody(asset.Path)
	if err != nil {
		return nil, errors.TranscriptionFailed(item.Identity(), err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL, body)
	if err != nil {
		return nil, errors.TranscriptionFailed(item.Identity(), fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, errors.TranscriptionFailed(item.Identity(), fmt.Errorf("executing request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errors.TranscriptionFailed(item.Identity(),
			fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.TranscriptionFailed(item.Identity(), fmt.Errorf("decoding response: %w", err))
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return nil, errors.TranscriptionFailed(item.Identity(), fmt.Errorf("API returned an empty transcript"))
	}

	detected := t.detector.Detect(text)
	if !t.detector.IsTargetLanguage(text) {
		log.Printf("[DEBUG] Dropping %s: transcript language %q is not %q", item.Identity(), detected, t.detector.Target())
		return nil, errors.NonTargetLanguage(item.Identity(), detected)
	}

	log.Printf("[DEBUG] Transcribed %s: %d chars, language %s", item.Identity(), len(text), detected)
	return &models.Transcript{Text: text, Language: detected}, nil
}

// buildRequestBody assembles the multipart form, reading at most
// maxBytes from the audio file.
func (t *Transcriber) buildRequestBody(audioPath string) (io.Reader, string, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, "", fmt.Errorf("opening audio file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("model", t.model); err != nil {
		return nil, "", fmt.Errorf("writing model field: %w", err)
	}

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, "", fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, io.LimitReader(file, t.maxBytes)); err != nil {
		return nil, "", fmt.Errorf("reading audio file: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalizing form: %w", err)
	}
	return &buf, writer.FormDataContentType(), nil
}
