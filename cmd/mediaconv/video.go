package main

import (
	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaconv/internal/cli"
	"github.com/mediaforge/mediaconv/internal/cli/config"
	"github.com/mediaforge/mediaconv/pkg/convert"
)

func newVideoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video [flags] INPUT...",
		Short: "Transcode videos, extract audio, or grab thumbnails",
		Example: `  mediaconv video -f mp4 -q high input.mkv
  mediaconv video -f webm --video-codec vp9 --resolution 1280x720 -o out/ clips/
  mediaconv video --extract-audio mp3 talk.mp4
  mediaconv video --thumbnail 00:01:30 movie.mp4
  mediaconv video -f mp4 --start 00:00:10 --duration 00:00:30 long.mov`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, logger, err := config.LoadAndValidate(convert.KindVideo, cfgFile, verbose, cmd.Flags(), args)
			if err != nil {
				return err
			}
			return cli.Run(cmd.Context(), opts, logger)
		},
	}

	addCommonFlags(cmd)
	f := cmd.Flags()
	f.String("resolution", "", "target resolution, e.g. 1920x1080")
	f.String("bitrate", "", "target video bitrate, e.g. 2M (replaces CRF)")
	f.Int("fps", 0, "target frame rate")
	f.String("start", "", "clip start timestamp, e.g. 00:00:10")
	f.String("duration", "", "clip duration, e.g. 00:00:30")
	f.String("audio-codec", "", "audio codec: aac, mp3, opus, or none")
	f.String("video-codec", "", "video codec: h264, h265, vp9, av1")
	f.String("preset", "", "encoder speed preset, e.g. fast, medium, slow")
	f.String("extract-audio", "", "extract the audio track to this format: mp3, aac, wav")
	f.String("thumbnail", "", "grab a single frame at this timestamp as JPEG")
	f.String("ffmpeg-args", "", "extra arguments passed to ffmpeg verbatim")
	return cmd
}
