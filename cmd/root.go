package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/reviewradar/review-api/pkg/config"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "review-api",
	Short: "ReviewRadar product review aggregation API",
	Long: `ReviewRadar - aggregate product reviews from video and shopping sources

Given a product query, ReviewRadar searches video platforms for review
videos, downloads and transcribes their audio, synthesizes each
transcript into a consumer review, and merges in the numeric rating
signal from shopping listings.

Features:
  • YouTube and TikTok review video discovery
  • Audio download with yt-dlp and ffmpeg fallback chains
  • Whisper transcription with a target-language gate
  • Chat-model review synthesis with strict output validation
  • Shopping listings weighted-rating signal
  • Run history recorded in SQLite`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(loadConfig)
}

// loadConfig loads the configuration when a command needs it.
// Version and help never touch config.
func loadConfig() {
	cmd, _, _ := rootCmd.Find(os.Args[1:])
	if cmd != nil && (cmd.Name() == "version" || cmd.Name() == "help") {
		return
	}

	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing config: %v\n", err)
		os.Exit(1)
	}
}
