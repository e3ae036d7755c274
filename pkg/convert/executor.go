package convert

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/mediaforge/mediaconv/pkg/convert/ffmpeg"
	"github.com/mediaforge/mediaconv/pkg/convert/imgproc"
)

// Result is the terminal record for one job. Ownership transfers to the
// report aggregator once the executor returns it.
type Result struct {
	Job      Job
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// Executor runs single jobs: images through the imaging pipeline, videos
// through one external encoder pass. Per-job errors are classified into the
// failure taxonomy and captured into the Result; they never propagate.
type Executor struct {
	opts   *Options
	logger *slog.Logger
	cap    ffmpeg.Capability
	runner ffmpeg.Runner

	transformOps imgproc.TransformOps
}

// NewJobExecutor builds the default executor. cap carries the batch's probe
// result so video jobs reuse the resolved encoder path.
func NewJobExecutor(opts *Options, handler slog.Handler, cap ffmpeg.Capability) *Executor {
	runner := opts.Runner
	if runner == nil {
		runner = &ffmpeg.ExecRunner{Verbose: opts.Verbose}
	}
	return &Executor{
		opts:   opts,
		logger: slog.New(handler).With(slog.String("component", "executor")),
		cap:    cap,
		runner: runner,
		transformOps: imgproc.TransformOps{
			ResizeSpec:        opts.Resize,
			StripMetadata:     opts.StripMetadata,
			Sharpen:           opts.Sharpen,
			BlurRadius:        opts.BlurRadius,
			AutoContrast:      opts.AutoContrast,
			Watermark:         opts.Watermark,
			WatermarkPosition: opts.WatermarkPosition,
			WatermarkOpacity:  opts.WatermarkOpacity,
		},
	}
}

// Execute implements JobExecutor.
func (e *Executor) Execute(ctx context.Context, job Job) Result {
	start := time.Now()

	var err error
	switch e.opts.Kind {
	case KindVideo:
		err = e.executeVideo(ctx, job)
	default:
		err = e.executeImage(job)
	}

	res := Result{Job: job, Duration: time.Since(start)}
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		e.logger.Warn("Job failed",
			slog.String("source", job.Source),
			slog.String("error", err.Error()))
		return res
	}
	res.Outcome = OutcomeSuccess
	e.logger.Debug("Job finished",
		slog.String("source", job.Source),
		slog.String("dest", job.Dest),
		slog.Duration("took", res.Duration))
	return res
}

// executeImage runs the library pipeline in its fixed order:
// decode, strip-metadata, resize, filters, watermark, encode, write.
func (e *Executor) executeImage(job Job) error {
	img, err := imgproc.Decode(job.Source)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}

	img, err = imgproc.Transform(img, e.transformOps)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputUnreadable, err)
	}

	quality, err := e.opts.ImageQuality()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	encOps := imgproc.EncodeOps{
		Format:      destFormat(job.Dest),
		Quality:     quality,
		Optimize:    e.opts.Optimize || e.opts.Compress,
		Progressive: e.opts.Progressive,
	}

	if err := os.MkdirAll(filepath.Dir(job.Dest), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	tmp := tempPath(job.Dest)
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	encErr := imgproc.Encode(f, img, encOps)
	closeErr := f.Close()
	if encErr != nil || closeErr != nil {
		os.Remove(tmp)
		if encErr == nil {
			encErr = closeErr
		}
		if strings.Contains(encErr.Error(), "no encoder") {
			return fmt.Errorf("%w: %v", ErrUnsupportedFormat, encErr)
		}
		return fmt.Errorf("%w: %v", ErrWriteFailed, encErr)
	}

	if err := os.Rename(tmp, job.Dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// executeVideo performs one external-encoder pass. The output is written to
// a temp sibling and renamed into place so a failed pass never leaves a
// partial destination.
func (e *Executor) executeVideo(ctx context.Context, job Job) error {
	binary := e.cap.Path
	if binary == "" {
		// Probe was skipped (direct executor use) or capability changed.
		path, err := exec.LookPath(ffmpeg.DefaultBinary)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrToolMissing, err)
		}
		binary = path
	}

	cmd, err := e.buildVideoCommand(job)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(job.Dest), 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}

	tmp := tempPath(job.Dest)
	cmd.Output = tmp

	stderr, err := e.runner.Run(ctx, binary, cmd.Args())
	if err != nil {
		os.Remove(tmp)
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w: %v", ErrToolMissing, err)
		}
		tail := ffmpeg.StderrTail(stderr, 20)
		if tail != "" {
			return fmt.Errorf("%w: %v: %s", ErrToolFailed, err, tail)
		}
		return fmt.Errorf("%w: %v", ErrToolFailed, err)
	}

	fi, err := os.Stat(tmp)
	if err != nil || fi.Size() == 0 {
		os.Remove(tmp)
		return fmt.Errorf("%w: encoder produced no output", ErrToolFailed)
	}

	if err := os.Rename(tmp, job.Dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// buildVideoCommand maps the job's operation and the shared configuration
// onto a typed encoder invocation.
func (e *Executor) buildVideoCommand(job Job) (ffmpeg.Command, error) {
	opts := e.opts

	switch job.Operation {
	case OpExtractAudio:
		format := opts.AudioFormat
		if format == "" {
			format = "mp3"
		}
		enc, err := audioExtractEncoder(format)
		if err != nil {
			return ffmpeg.Command{}, err
		}
		return ffmpeg.Command{
			Input:      job.Source,
			DropVideo:  true,
			AudioCodec: enc,
			Verbose:    opts.Verbose,
		}, nil

	case OpThumbnail:
		at := opts.ThumbnailAt
		if at == "" {
			at = "00:00:01"
		}
		return ffmpeg.Command{
			Input:      job.Source,
			SeekTo:     at,
			FrameCount: 1,
			DropAudio:  true,
			CRF:        -1, // single-frame grab, rate control does not apply
			Verbose:    opts.Verbose,
		}, nil
	}

	rc, err := opts.VideoQuality()
	if err != nil {
		return ffmpeg.Command{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	codec := VideoCodec(opts.VideoCodec)
	if opts.VideoCodec == "" {
		codec = CodecH264
	}
	encoder, err := codec.FFmpegName()
	if err != nil {
		return ffmpeg.Command{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}

	crf := rc.CRF
	if codec == CodecAV1 || opts.Bitrate != "" {
		// AV1 rate control differs; an explicit bitrate also replaces CRF.
		crf = -1
	}

	speedPreset := opts.SpeedPreset
	if speedPreset == "" {
		speedPreset = rc.Preset
	}
	if codec == CodecVP9 || codec == CodecAV1 {
		// x264-style speed presets are not understood by these encoders.
		speedPreset = ""
	}

	cmd := ffmpeg.Command{
		Input:       job.Source,
		SeekTo:      opts.StartTime,
		Duration:    opts.ClipDuration,
		VideoCodec:  encoder,
		CRF:         crf,
		SpeedPreset: speedPreset,
		Bitrate:     opts.Bitrate,
		FPS:         opts.FPS,
		FastStart:   strings.EqualFold(filepath.Ext(job.Dest), ".mp4"),
		Verbose:     opts.Verbose,
		Extra:       opts.ExtraArgs,
	}

	if opts.Resolution != "" {
		w, h, err := ParseResolution(opts.Resolution)
		if err != nil {
			return ffmpeg.Command{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		cmd.ScaleWidth, cmd.ScaleHeight = w, h
	}

	switch AudioCodec(opts.AudioCodec) {
	case AudioNone:
		cmd.DropAudio = true
	case "":
		cmd.AudioCodec = "aac"
	default:
		enc, err := AudioCodec(opts.AudioCodec).FFmpegName()
		if err != nil {
			return ffmpeg.Command{}, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
		}
		cmd.AudioCodec = enc
	}

	return cmd, nil
}

// audioExtractEncoder maps an extraction format to its ffmpeg encoder.
func audioExtractEncoder(format string) (string, error) {
	switch strings.ToLower(format) {
	case "mp3":
		return "libmp3lame", nil
	case "aac":
		return "aac", nil
	case "wav":
		return "pcm_s16le", nil
	}
	return "", fmt.Errorf("%w: %q is not a supported audio format", ErrUnsupportedFormat, format)
}

// ParseResolution parses "1920x1080" into width and height.
func ParseResolution(s string) (int, int, error) {
	parts := strings.SplitN(strings.ToLower(s), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid resolution %q, expected WIDTHxHEIGHT", s)
	}
	w, errW := strconv.Atoi(parts[0])
	h, errH := strconv.Atoi(parts[1])
	if errW != nil || errH != nil || w < 1 || h < 1 {
		return 0, 0, fmt.Errorf("invalid resolution %q, expected WIDTHxHEIGHT", s)
	}
	return w, h, nil
}

// destFormat derives the encode format key from the destination extension.
func destFormat(dest string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(dest), "."))
	if ext == "jpeg" {
		return "jpg"
	}
	return ext
}

// tempPath names a unique hidden sibling of dest, keeping dest's extension
// so format sniffing by the encoder still works.
func tempPath(dest string) string {
	dir := filepath.Dir(dest)
	base := filepath.Base(dest)
	return filepath.Join(dir, fmt.Sprintf(".mediaconv-%s-%s", shortuuid.New(), base))
}
