package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Platform identifies the source a candidate item came from
type Platform string

const (
	PlatformShopping Platform = "shopping"
	PlatformYouTube  Platform = "youtube"
	PlatformTikTok   Platform = "tiktok"
)

// CandidateItem is one unvalidated piece of evidence (a video search
// hit) discovered by a source adapter. Immutable once returned.
type CandidateItem struct {
	Platform     Platform `json:"platform"`
	ExternalID   string   `json:"external_id"`
	Title        string   `json:"title"`
	Channel      string   `json:"channel"`
	URL          string   `json:"url"`
	ViewCount    int64    `json:"view_count"`
	LikeCount    int64    `json:"like_count"`
	CommentCount int64    `json:"comment_count"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Description  string   `json:"description,omitempty"`
	// Language is the vendor-declared language tag (e.g. "en",
	// "en-US"), empty when the platform reports none.
	Language string `json:"language,omitempty"`
}

// Identity returns the stable key for this item: (platform, external
// id), or the URL when the platform exposes no id.
func (c CandidateItem) Identity() string {
	if c.ExternalID != "" {
		return fmt.Sprintf("%s:%s", c.Platform, c.ExternalID)
	}
	return string(c.Platform) + ":" + c.URL
}

// Validate checks the fields the pipeline relies on.
func (c CandidateItem) Validate() error {
	if c.Platform == "" {
		return fmt.Errorf("candidate item missing platform")
	}
	if c.ExternalID == "" && c.URL == "" {
		return fmt.Errorf("candidate item needs an external id or a url")
	}
	if c.ViewCount < 0 || c.LikeCount < 0 || c.CommentCount < 0 {
		return fmt.Errorf("candidate item engagement stats must be non-negative")
	}
	return nil
}

// MediaAsset is the local audio blob fetched for one candidate item.
// It is owned by the per-item pipeline instance that produced it.
type MediaAsset struct {
	Path      string `json:"path"`
	SizeBytes int64  `json:"size_bytes"`
	Truncated bool   `json:"truncated"`
}

// Transcript is text derived from a media asset, tagged with the
// language that was detected on it.
type Transcript struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// PersistedRecord is the durable artifact written for one accepted
// candidate: its metadata plus the gated transcript. Write-once per
// item identity.
type PersistedRecord struct {
	Item       CandidateItem `json:"item"`
	Transcript string        `json:"transcript"`
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9 _-]+`)

// SanitizeName makes a string safe for use as a directory name,
// capped at maxLen runes.
func SanitizeName(name string, maxLen int) string {
	safe := unsafeNameChars.ReplaceAllString(name, "_")
	safe = strings.Trim(safe, " _")
	runes := []rune(safe)
	if len(runes) > maxLen {
		safe = strings.TrimRight(string(runes[:maxLen]), " _")
	}
	if safe == "" {
		safe = "item"
	}
	return safe
}

// DirName returns the item's on-disk directory name inside a run scope.
func (c CandidateItem) DirName() string {
	id := c.ExternalID
	if id == "" {
		id = SanitizeName(c.URL, 40)
	}
	return fmt.Sprintf("%s_%s", SanitizeName(c.Title, 50), id)
}
