package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Populated by the release build; defaults mark a source build.
var (
	version = "dev"
	commit  = "none"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "mediaconv",
	Short: "Batch media converter for images and videos",
	Long: `mediaconv converts batches of media files between formats.

Images are processed in-process (resize, compress, watermark, filters);
videos are re-encoded through ffmpeg (transcode, clip, extract audio,
thumbnail). Inputs may be files, directories, or glob patterns, and jobs
run concurrently with per-file failure isolation.`,
	Version:       version + " (" + commit + ")",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the CLI with SIGINT/SIGTERM wired to context cancellation so
// an interrupted batch drains cleanly instead of dying mid-encode.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./mediaconv.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging and raw encoder output")

	rootCmd.AddCommand(newImageCmd())
	rootCmd.AddCommand(newVideoCmd())
}

// addCommonFlags registers the flags shared by every conversion subcommand.
func addCommonFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("output", "o", "", "output file, or directory (trailing separator) for batches")
	f.StringP("format", "f", "", "target format (default: keep source format)")
	f.StringP("quality", "q", "", "quality preset or numeric value")
	f.Bool("compress", false, "compress with the medium quality preset")
	f.BoolP("recursive", "r", false, "descend into input directories")
	f.IntP("workers", "w", 0, "concurrent jobs (0 = logical CPU count)")
	f.String("report", "", "emit a machine-readable report: json, yaml, or a file path")
	f.Bool("batch", false, "accepted for compatibility; multiple inputs always batch")
	_ = f.MarkHidden("batch")
}
