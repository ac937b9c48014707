package fetcher

import (
	"context"
	"fmt"
	"log"
)

// Strategy is one way of producing the audio file for an item. Run
// must leave no partial output behind when it fails.
type Strategy struct {
	Name string
	Run  func(ctx context.Context) error
}

// runChain tries each strategy in order and stops at the first
// success. Individual failures are logged, not surfaced; only when
// every strategy fails does the caller see an error, carrying the
// last failure as its cause.
func runChain(ctx context.Context, itemID string, strategies []Strategy) error {
	if len(strategies) == 0 {
		return fmt.Errorf("no fetch strategies available")
	}

	var lastErr error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Run(ctx); err != nil {
			log.Printf("[DEBUG] Fetch strategy %s failed for %s: %v", s.Name, itemID, err)
			lastErr = err
			continue
		}
		log.Printf("[DEBUG] Fetch strategy %s succeeded for %s", s.Name, itemID)
		return nil
	}
	return fmt.Errorf("all %d fetch strategies failed: %w", len(strategies), lastErr)
}
