package sources

import (
	"errors"
	"sync"
)

// ErrAllKeysExhausted is returned when every configured credential has
// reported quota exhaustion.
var ErrAllKeysExhausted = errors.New("all API keys exhausted")

// Keyring holds an ordered list of API credentials. Callers walk the
// list in priority order; a key that reports quota exhaustion is
// remembered and skipped for the remainder of the batch.
type Keyring struct {
	mu        sync.Mutex
	keys      []string
	exhausted map[string]bool
}

// NewKeyring creates a keyring from an ordered key list. Empty entries
// are ignored.
func NewKeyring(keys []string) *Keyring {
	kr := &Keyring{exhausted: make(map[string]bool)}
	for _, k := range keys {
		if k != "" {
			kr.keys = append(kr.keys, k)
		}
	}
	return kr
}

// Len returns the number of configured keys.
func (kr *Keyring) Len() int {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	return len(kr.keys)
}

// Active returns the keys not yet known to be exhausted, in priority
// order. An empty result means ErrAllKeysExhausted territory.
func (kr *Keyring) Active() []string {
	kr.mu.Lock()
	defer kr.mu.Unlock()

	active := make([]string, 0, len(kr.keys))
	for _, k := range kr.keys {
		if !kr.exhausted[k] {
			active = append(active, k)
		}
	}
	return active
}

// MarkExhausted records that a key hit its quota.
func (kr *Keyring) MarkExhausted(key string) {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	kr.exhausted[key] = true
}

// Reset forgets exhaustion state, typically between batches.
func (kr *Keyring) Reset() {
	kr.mu.Lock()
	defer kr.mu.Unlock()
	kr.exhausted = make(map[string]bool)
}
