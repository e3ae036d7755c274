// mediaconv is a batch media converter. It turns sets of image or video
// files into a target format concurrently, shelling out to ffmpeg for video
// and using an in-process pipeline for images.
package main

import (
	"errors"
	"os"

	"github.com/mediaforge/mediaconv/internal/cli"
	"github.com/mediaforge/mediaconv/pkg/convert"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := Execute()
	if err == nil {
		return convert.ExitOK
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Anything cobra surfaces directly (unknown flag, bad subcommand) is a
	// usage error.
	return convert.ExitUsageError
}
