package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/reviewradar/review-api/internal/models"
	"github.com/reviewradar/review-api/internal/services/reviews"
	"github.com/reviewradar/review-api/pkg/config"
)

var (
	searchYouTubeLimit int
	searchTikTokLimit  int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <product>",
	Short: "Run the review pipeline for a product and print the report",
	Long: `Run the full review aggregation pipeline once for the given product
and print the resulting report as JSON.

Example:
  review-api search "wireless earbuds"
  review-api search "stand mixer" --youtube-limit 3 --tiktok-limit 1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().IntVar(&searchYouTubeLimit, "youtube-limit", 0, "max YouTube results (overrides config)")
	searchCmd.Flags().IntVar(&searchTikTokLimit, "tiktok-limit", 0, "max TikTok results (overrides config)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.GetConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	query := strings.Join(args, " ")

	limits := map[models.Platform]int{}
	if searchYouTubeLimit > 0 {
		limits[models.PlatformYouTube] = searchYouTubeLimit
	}
	if searchTikTokLimit > 0 {
		limits[models.PlatformTikTok] = searchTikTokLimit
	}

	// One-shot run without the history database.
	service := reviews.BuildFromConfig(cfg, nil)

	set, err := service.GetReviews(cmd.Context(), query, limits)
	if err != nil {
		return fmt.Errorf("review run failed: %w", err)
	}

	out, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
