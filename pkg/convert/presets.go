package convert

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// VideoQuality is the closed set of named rate-control presets. Each maps to
// a concrete CRF value and x264/x265 speed preset.
type VideoQuality string

const (
	VideoQualityLow      VideoQuality = "low"
	VideoQualityMedium   VideoQuality = "medium"
	VideoQualityHigh     VideoQuality = "high"
	VideoQualityLossless VideoQuality = "lossless"
)

// RateControl holds the encoder parameters a VideoQuality resolves to.
type RateControl struct {
	CRF    int
	Preset string
}

var videoQualityParams = map[VideoQuality]RateControl{
	VideoQualityLow:      {CRF: 28, Preset: "fast"},
	VideoQualityMedium:   {CRF: 23, Preset: "medium"},
	VideoQualityHigh:     {CRF: 18, Preset: "slow"},
	VideoQualityLossless: {CRF: 0, Preset: "veryslow"},
}

// Params resolves the preset to its encoder parameters.
func (q VideoQuality) Params() (RateControl, error) {
	rc, ok := videoQualityParams[q]
	if !ok {
		return RateControl{}, fmt.Errorf("unknown video quality preset %q", string(q))
	}
	return rc, nil
}

// Image quality presets for lossy encoders.
var imageQualityPresets = map[string]int{
	"low":     60,
	"medium":  85,
	"high":    95,
	"maximum": 100,
}

// DefaultImageQuality is used when neither --quality nor a preset is given.
const DefaultImageQuality = 85

// ParseImageQuality accepts either a preset name or a number in 1..100.
func ParseImageQuality(s string) (int, error) {
	if s == "" {
		return DefaultImageQuality, nil
	}
	if q, ok := imageQualityPresets[strings.ToLower(s)]; ok {
		return q, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("quality must be a preset (low, medium, high, maximum) or a number: %q", s)
	}
	if n < 1 || n > 100 {
		return 0, fmt.Errorf("quality %d out of range 1-100", n)
	}
	return n, nil
}

// VideoCodec is the user-facing codec name; FFmpegName maps it to the
// encoder ffmpeg expects.
type VideoCodec string

const (
	CodecH264 VideoCodec = "h264"
	CodecH265 VideoCodec = "h265"
	CodecVP9  VideoCodec = "vp9"
	CodecAV1  VideoCodec = "av1"
)

var videoCodecNames = map[VideoCodec]string{
	CodecH264: "libx264",
	CodecH265: "libx265",
	CodecVP9:  "libvpx-vp9",
	CodecAV1:  "libaom-av1",
}

// FFmpegName returns the ffmpeg encoder for the codec, or an error for an
// unknown one.
func (c VideoCodec) FFmpegName() (string, error) {
	name, ok := videoCodecNames[c]
	if !ok {
		return "", fmt.Errorf("unknown video codec %q", string(c))
	}
	return name, nil
}

// AudioCodec names, with "none" dropping the audio streams entirely.
type AudioCodec string

const (
	AudioAAC  AudioCodec = "aac"
	AudioMP3  AudioCodec = "mp3"
	AudioOpus AudioCodec = "opus"
	AudioNone AudioCodec = "none"
)

var audioCodecNames = map[AudioCodec]string{
	AudioAAC:  "aac",
	AudioMP3:  "libmp3lame",
	AudioOpus: "libopus",
}

// FFmpegName returns the ffmpeg encoder for the codec. AudioNone has no
// encoder; callers emit -an instead.
func (c AudioCodec) FFmpegName() (string, error) {
	if c == AudioNone {
		return "", fmt.Errorf("audio codec %q maps to stream removal, not an encoder", string(c))
	}
	name, ok := audioCodecNames[c]
	if !ok {
		return "", fmt.Errorf("unknown audio codec %q", string(c))
	}
	return name, nil
}

// Supported extensions per kind. Input sets gate job building; output sets
// gate the --format flag.
var (
	imageInputExts = map[string]bool{
		".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
		".bmp": true, ".tiff": true, ".tif": true, ".webp": true,
	}

	// Output format name → canonical extension.
	imageOutputExts = map[string]string{
		"jpg": ".jpg", "jpeg": ".jpg", "png": ".png", "webp": ".webp",
		"tiff": ".tiff", "bmp": ".bmp", "gif": ".gif",
	}

	videoInputExts = map[string]bool{
		".mp4": true, ".avi": true, ".mkv": true, ".webm": true,
		".mov": true, ".flv": true, ".m4v": true, ".wmv": true,
		".mpg": true, ".mpeg": true, ".ts": true,
	}

	videoOutputExts = map[string]string{
		"mp4": ".mp4", "avi": ".avi", "mkv": ".mkv",
		"webm": ".webm", "mov": ".mov",
	}

	audioOutputExts = map[string]string{
		"mp3": ".mp3", "aac": ".aac", "wav": ".wav",
	}
)

// SupportedInput reports whether path's extension is accepted as input for
// the kind.
func SupportedInput(kind MediaKind, path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	switch kind {
	case KindImage:
		return imageInputExts[ext]
	case KindVideo:
		return videoInputExts[ext]
	}
	return false
}

// OutputExt resolves a format name to its canonical extension for the kind.
func OutputExt(kind MediaKind, format string) (string, error) {
	var table map[string]string
	switch kind {
	case KindImage:
		table = imageOutputExts
	case KindVideo:
		table = videoOutputExts
	default:
		return "", fmt.Errorf("unknown media kind %q", string(kind))
	}
	ext, ok := table[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: %q is not a supported %s output format", ErrUnsupportedFormat, format, kind)
	}
	return ext, nil
}

// AudioOutputExt resolves an extraction format to its extension.
func AudioOutputExt(format string) (string, error) {
	ext, ok := audioOutputExts[strings.ToLower(format)]
	if !ok {
		return "", fmt.Errorf("%w: %q is not a supported audio format", ErrUnsupportedFormat, format)
	}
	return ext, nil
}
