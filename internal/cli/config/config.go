// Package config merges defaults, the optional config file, environment
// variables, and command-line flags into a validated convert.Options.
// Precedence, lowest to highest: defaults, file, environment, flags.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. MEDIACONV_WORKERS.
	EnvPrefix = "MEDIACONV"

	// DefaultConfigName is the config file stem searched in the working
	// directory and under $HOME/.config/mediaconv/.
	DefaultConfigName = "mediaconv"
)

// LoadAndValidate assembles the Options for one subcommand invocation.
// kind selects which operation-specific keys are read; args are the
// positional input paths. The returned logger is ready for use even when
// loading fails, so callers can report the error through it.
func LoadAndValidate(kind convert.MediaKind, cfgFile string, verbose bool, flags *pflag.FlagSet, args []string) (convert.Options, *slog.Logger, error) {
	var opts convert.Options

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler).With(slog.String("component", "config"))

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", DefaultConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			logger.Debug("No configuration file found, using defaults")
		} else {
			return opts, logger, fmt.Errorf("read config file: %w", err)
		}
	} else {
		logger.Debug("Using configuration file", slog.String("path", v.ConfigFileUsed()))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return opts, logger, fmt.Errorf("bind flags: %w", err)
	}

	opts.Kind = kind
	opts.Operation = convert.OpConvert
	opts.Inputs = args
	opts.Verbose = verbose
	opts.Logger = handler

	opts.OutputPath = v.GetString("output")
	opts.Format = v.GetString("format")
	opts.Quality = v.GetString("quality")
	opts.Compress = v.GetBool("compress")
	opts.Recursive = v.GetBool("recursive")
	opts.Workers = v.GetInt("workers")

	switch kind {
	case convert.KindImage:
		opts.Resize = v.GetString("resize")
		opts.Optimize = v.GetBool("optimize")
		opts.Progressive = v.GetBool("progressive")
		opts.StripMetadata = v.GetBool("strip-metadata")
		opts.Watermark = v.GetString("watermark")
		opts.WatermarkPosition = v.GetString("watermark-position")
		opts.WatermarkOpacity = v.GetFloat64("watermark-opacity")
		opts.Sharpen = v.GetBool("sharpen")
		opts.BlurRadius = v.GetFloat64("blur")
		opts.AutoContrast = v.GetBool("auto-contrast")

	case convert.KindVideo:
		opts.Resolution = v.GetString("resolution")
		opts.Bitrate = v.GetString("bitrate")
		opts.FPS = v.GetInt("fps")
		opts.StartTime = v.GetString("start")
		opts.ClipDuration = v.GetString("duration")
		opts.AudioCodec = v.GetString("audio-codec")
		opts.VideoCodec = v.GetString("video-codec")
		opts.SpeedPreset = v.GetString("preset")

		if extract := v.GetString("extract-audio"); extract != "" {
			opts.Operation = convert.OpExtractAudio
			opts.AudioFormat = extract
		}
		if thumb := v.GetString("thumbnail"); thumb != "" {
			if opts.Operation != convert.OpConvert {
				return opts, logger, errors.New("--extract-audio and --thumbnail are mutually exclusive")
			}
			opts.Operation = convert.OpThumbnail
			opts.ThumbnailAt = thumb
		}

		if raw := v.GetString("ffmpeg-args"); raw != "" {
			extra, err := shlex.Split(raw)
			if err != nil {
				return opts, logger, fmt.Errorf("cannot split --ffmpeg-args: %w", err)
			}
			opts.ExtraArgs = extra
		}
	}

	reportFormat, reportPath, err := reportTarget(v.GetString("report"))
	if err != nil {
		return opts, logger, err
	}
	opts.ReportFormat = reportFormat
	opts.ReportPath = reportPath

	if err := validate(&opts); err != nil {
		return opts, logger, err
	}
	return opts, logger, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workers", 0) // 0 = one per logical CPU
	v.SetDefault("watermark-position", "bottom-right")
	v.SetDefault("watermark-opacity", 0.5)
}

// reportTarget parses --report values: a bare format name ("json", "yaml")
// writes to stdout, a file path picks the format from its extension.
func reportTarget(spec string) (convert.ReportFormat, string, error) {
	switch strings.ToLower(spec) {
	case "":
		return convert.ReportFormatNone, "", nil
	case "json":
		return convert.ReportFormatJSON, "", nil
	case "yaml", "yml":
		return convert.ReportFormatYAML, "", nil
	}
	switch strings.ToLower(filepath.Ext(spec)) {
	case ".json":
		return convert.ReportFormatJSON, spec, nil
	case ".yaml", ".yml":
		return convert.ReportFormatYAML, spec, nil
	}
	return convert.ReportFormatNone, "", fmt.Errorf("--report wants json, yaml, or a .json/.yaml path, got %q", spec)
}

// validate rejects option combinations that would fail every job the same
// way. Per-file conditions are left to the job builder so they surface as
// skipped results, not usage errors.
func validate(opts *convert.Options) error {
	if len(opts.Inputs) == 0 {
		return errors.New("at least one input file is required")
	}
	if opts.Workers < 0 {
		return fmt.Errorf("--workers must be >= 0, got %d", opts.Workers)
	}
	if opts.Watermark != "" {
		if _, err := os.Stat(opts.Watermark); err != nil {
			return fmt.Errorf("watermark image: %w", err)
		}
	}
	if opts.WatermarkOpacity < 0 || opts.WatermarkOpacity > 1 {
		return fmt.Errorf("--watermark-opacity must be in 0..1, got %v", opts.WatermarkOpacity)
	}
	if opts.BlurRadius < 0 {
		return fmt.Errorf("--blur must be >= 0, got %v", opts.BlurRadius)
	}
	return nil
}
