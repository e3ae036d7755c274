package ffmpeg

import (
	"fmt"
	"strconv"
)

// Command is a structured ffmpeg invocation. Fields are typed so argument
// assembly never goes through shell interpolation; Args produces the final
// vector in one fixed order, and the whole conversion runs as a single pass.
type Command struct {
	Input  string
	Output string

	// Clipping, applied as output options after -i.
	SeekTo   string // -ss HH:MM:SS
	Duration string // -t HH:MM:SS

	// Video stream parameters. CRF of -1 means no rate-control flag.
	VideoCodec  string // ffmpeg encoder name, e.g. libx264
	CRF         int
	SpeedPreset string
	Bitrate     string // e.g. "2M", overrides CRF when the caller sets both
	ScaleWidth  int
	ScaleHeight int
	FPS         int

	// Audio stream parameters.
	AudioCodec string // ffmpeg encoder name, e.g. aac
	DropAudio  bool   // -an
	DropVideo  bool   // -vn, used for audio extraction
	FrameCount int    // -vframes N, used for thumbnail grabs

	FastStart bool // -movflags +faststart for mp4 streaming
	Verbose   bool

	// Extra carries pre-split passthrough arguments, inserted before the
	// output path.
	Extra []string
}

// Args assembles the complete argument vector (binary name excluded).
func (c Command) Args() []string {
	args := make([]string, 0, 32)

	args = append(args, "-hide_banner", "-nostdin")
	if c.Verbose {
		args = append(args, "-loglevel", "info")
	} else {
		args = append(args, "-loglevel", "error")
	}
	args = append(args, "-y", "-i", c.Input)

	if c.SeekTo != "" {
		args = append(args, "-ss", c.SeekTo)
	}
	if c.Duration != "" {
		args = append(args, "-t", c.Duration)
	}

	if c.DropVideo {
		args = append(args, "-vn")
	} else {
		if c.VideoCodec != "" {
			args = append(args, "-c:v", c.VideoCodec)
		}
		if c.CRF >= 0 {
			args = append(args, "-crf", strconv.Itoa(c.CRF))
		}
		if c.SpeedPreset != "" {
			args = append(args, "-preset", c.SpeedPreset)
		}
		if c.Bitrate != "" {
			args = append(args, "-b:v", c.Bitrate)
		}
		if c.ScaleWidth > 0 && c.ScaleHeight > 0 {
			args = append(args, "-vf", fmt.Sprintf("scale=%d:%d", c.ScaleWidth, c.ScaleHeight))
		}
		if c.FPS > 0 {
			args = append(args, "-r", strconv.Itoa(c.FPS))
		}
		if c.FrameCount > 0 {
			args = append(args, "-vframes", strconv.Itoa(c.FrameCount))
		}
	}

	if c.DropAudio {
		args = append(args, "-an")
	} else if c.AudioCodec != "" {
		args = append(args, "-c:a", c.AudioCodec)
	}

	if c.FastStart {
		args = append(args, "-movflags", "+faststart")
	}

	args = append(args, c.Extra...)
	args = append(args, c.Output)
	return args
}
