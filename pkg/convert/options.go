package convert

import (
	"context"
	"log/slog"

	"github.com/mediaforge/mediaconv/pkg/convert/ffmpeg"
)

// Hooks receives batch progress callbacks. Implementations must be
// goroutine-safe; OnJobDone is called from worker goroutines.
type Hooks interface {
	OnBatchStart(total int)
	OnJobDone(res Result)
}

// NoOpHooks is the default Hooks implementation.
type NoOpHooks struct{}

func (NoOpHooks) OnBatchStart(int) {}
func (NoOpHooks) OnJobDone(Result) {}

// JobExecutor runs one job to completion. The engine's default is the
// executor in this package; tests inject fakes.
type JobExecutor interface {
	Execute(ctx context.Context, job Job) Result
}

// Options is the resolved conversion configuration for one invocation. It is
// built once by the CLI layer, validated, and shared read-only across every
// job in the batch; nothing mutates it after NewEngine accepts it.
type Options struct {
	Kind      MediaKind
	Operation Operation

	Inputs     []string
	OutputPath string
	Format     string
	Quality    string // preset name, or number for images
	Compress   bool
	Recursive  bool
	Workers    int
	Verbose    bool

	// Image operations.
	Resize            string
	Optimize          bool
	Progressive       bool
	StripMetadata     bool
	Watermark         string
	WatermarkPosition string
	WatermarkOpacity  float64
	Sharpen           bool
	BlurRadius        float64
	AutoContrast      bool

	// Video operations.
	Resolution   string
	Bitrate      string
	FPS          int
	StartTime    string
	ClipDuration string
	AudioCodec   string
	VideoCodec   string
	SpeedPreset  string
	AudioFormat  string   // --extract-audio target
	ThumbnailAt  string   // --thumbnail timestamp
	ExtraArgs    []string // pre-split --ffmpeg-args

	// Report emission.
	ReportFormat ReportFormat
	ReportPath   string

	// Injected dependencies. Nil fields get the package defaults.
	Logger   slog.Handler
	Hooks    Hooks
	Prober   ffmpeg.Prober
	Runner   ffmpeg.Runner
	Executor JobExecutor
}

// ImageQuality resolves the effective image quality. An explicit --quality
// always wins over --compress; --compress alone selects the medium preset.
func (o *Options) ImageQuality() (int, error) {
	if o.Quality != "" {
		return ParseImageQuality(o.Quality)
	}
	if o.Compress {
		return imageQualityPresets["medium"], nil
	}
	return DefaultImageQuality, nil
}

// VideoQuality resolves the effective rate-control preset, with the same
// --quality-beats---compress tie-break as images.
func (o *Options) VideoQuality() (RateControl, error) {
	q := VideoQuality(o.Quality)
	if o.Quality == "" {
		q = VideoQualityMedium
	}
	return q.Params()
}
