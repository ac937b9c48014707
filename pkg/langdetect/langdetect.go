// Package langdetect wraps statistical language detection for the
// pipeline's language gate. Detection is trigram based and fully
// deterministic for a given input.
package langdetect

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// Detector gates text against a configured target language.
type Detector struct {
	target string
}

// New creates a detector for the given ISO 639-1 target language code
// (e.g. "en"). An empty target defaults to English.
func New(target string) *Detector {
	target = strings.ToLower(strings.TrimSpace(target))
	if target == "" {
		target = "en"
	}
	return &Detector{target: target}
}

// Target returns the configured target language code.
func (d *Detector) Target() string {
	return d.target
}

// Detect returns the ISO 639-1 code of the detected language, or ""
// when the text carries no detectable language.
func (d *Detector) Detect(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	info := whatlanggo.Detect(text)
	return info.Lang.Iso6391()
}

// MatchesTag reports whether a vendor-declared language tag (e.g.
// "en", "en-US", "en_GB") names the target language. An empty tag
// matches nothing.
func (d *Detector) MatchesTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		return false
	}
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	return tag == d.target
}

// IsTargetLanguage reports whether text is in the target language.
// Empty or undetectable text is never in the target language.
func (d *Detector) IsTargetLanguage(text string) bool {
	detected := d.Detect(text)
	return detected != "" && detected == d.target
}
