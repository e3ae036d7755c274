package main

import (
	"github.com/spf13/cobra"

	"github.com/mediaforge/mediaconv/internal/cli"
	"github.com/mediaforge/mediaconv/internal/cli/config"
	"github.com/mediaforge/mediaconv/pkg/convert"
)

func newImageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image [flags] INPUT...",
		Short: "Convert, resize, and filter images",
		Example: `  mediaconv image -f webp -q 85 photo.jpg
  mediaconv image -f png --resize 50% -o out/ shots/*.jpg
  mediaconv image --compress --strip-metadata -r ./gallery
  mediaconv image -f jpg --watermark logo.png --watermark-position bottom-right in.png`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, logger, err := config.LoadAndValidate(convert.KindImage, cfgFile, verbose, cmd.Flags(), args)
			if err != nil {
				return err
			}
			return cli.Run(cmd.Context(), opts, logger)
		},
	}

	addCommonFlags(cmd)
	f := cmd.Flags()
	f.String("resize", "", "resize spec: WxH, Wx, xH, bare width, or N%")
	f.Bool("optimize", false, "spend extra effort on smaller output")
	f.Bool("progressive", false, "accepted for compatibility; JPEG output is baseline")
	f.Bool("strip-metadata", false, "drop EXIF and other metadata")
	f.String("watermark", "", "overlay image path")
	f.String("watermark-position", "bottom-right", "top-left, top-right, bottom-left, bottom-right, center")
	f.Float64("watermark-opacity", 0.5, "overlay opacity in 0..1")
	f.Bool("sharpen", false, "apply a sharpening filter")
	f.Float64("blur", 0, "gaussian blur radius")
	f.Bool("auto-contrast", false, "apply a mild fixed contrast boost")
	return cmd
}
