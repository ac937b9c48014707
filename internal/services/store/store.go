// Package store persists per-item pipeline artifacts on disk. Each run
// gets a scope directory under the downloads root, each accepted item a
// directory inside it holding its audio asset and metadata record.
package store

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/reviewradar/review-api/internal/models"
)

// RecordFileName is the per-item metadata artifact.
const RecordFileName = "video_data.json"

// RollupFileName is the per-run synthesized reviews artifact.
const RollupFileName = "generated_reviews.json"

// Store is a file-backed item store rooted at the downloads directory.
type Store struct {
	root string
}

// New creates a store rooted at root.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the downloads root directory.
func (s *Store) Root() string {
	return s.root
}

// ScopeName derives a run scope directory name from the query and a
// timestamp, safe for any filesystem.
func ScopeName(query string, ts time.Time) string {
	return fmt.Sprintf("%s_%s", models.SanitizeName(query, 40), ts.Format("20060102_150405"))
}

// ScopeDir returns the absolute directory for a run scope.
func (s *Store) ScopeDir(scope string) string {
	return filepath.Join(s.root, scope)
}

// ItemDir returns the absolute directory for one item inside a scope.
func (s *Store) ItemDir(scope string, item models.CandidateItem) string {
	return filepath.Join(s.root, scope, item.DirName())
}

// Exists reports whether the item already has a persisted record in
// the scope.
func (s *Store) Exists(scope string, item models.CandidateItem) bool {
	_, err := os.Stat(filepath.Join(s.ItemDir(scope, item), RecordFileName))
	return err == nil
}

// Save writes the item's record. The write is atomic via a temp file
// and rename, and write-once per item identity: an existing record is
// left untouched so re-runs cannot clobber completed work.
func (s *Store) Save(scope string, record models.PersistedRecord) error {
	if s.Exists(scope, record.Item) {
		log.Printf("[DEBUG] Record already persisted for %s, skipping", record.Item.Identity())
		return nil
	}

	itemDir := s.ItemDir(scope, record.Item)
	if err := os.MkdirAll(itemDir, 0o755); err != nil {
		return fmt.Errorf("creating item directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	return atomicWrite(filepath.Join(itemDir, RecordFileName), data)
}

// Load reads one item's persisted record from the scope.
func (s *Store) Load(scope string, item models.CandidateItem) (*models.PersistedRecord, error) {
	path := filepath.Join(s.ItemDir(scope, item), RecordFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record: %w", err)
	}
	var record models.PersistedRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	return &record, nil
}

// LoadAll reads every persisted record in the scope. Malformed records
// are skipped with a log line rather than failing the whole load.
func (s *Store) LoadAll(scope string) ([]models.PersistedRecord, error) {
	scopeDir := s.ScopeDir(scope)
	entries, err := os.ReadDir(scopeDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading scope directory: %w", err)
	}

	var records []models.PersistedRecord
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(scopeDir, entry.Name(), RecordFileName)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var record models.PersistedRecord
		if err := json.Unmarshal(data, &record); err != nil {
			log.Printf("[DEBUG] Skipping malformed record %s: %v", path, err)
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// SaveRollup writes the run-level synthesized reviews artifact into
// the scope directory.
func (s *Store) SaveRollup(scope string, reviews []models.SynthesizedReview) error {
	scopeDir := s.ScopeDir(scope)
	if err := os.MkdirAll(scopeDir, 0o755); err != nil {
		return fmt.Errorf("creating scope directory: %w", err)
	}

	data, err := json.MarshalIndent(reviews, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding rollup: %w", err)
	}
	return atomicWrite(filepath.Join(scopeDir, RollupFileName), data)
}

// atomicWrite writes data to path via a sibling temp file and rename,
// so readers never observe a partial file.
func atomicWrite(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
