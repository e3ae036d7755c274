package ffmpeg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mediaforge/mediaconv/pkg/convert/ffmpeg"
)

func TestCommandArgsTranscode(t *testing.T) {
	cmd := ffmpeg.Command{
		Input:       "in.mkv",
		Output:      "out.mp4",
		VideoCodec:  "libx264",
		CRF:         23,
		SpeedPreset: "medium",
		AudioCodec:  "aac",
		FastStart:   true,
	}
	assert.Equal(t, []string{
		"-hide_banner", "-nostdin",
		"-loglevel", "error",
		"-y", "-i", "in.mkv",
		"-c:v", "libx264",
		"-crf", "23",
		"-preset", "medium",
		"-c:a", "aac",
		"-movflags", "+faststart",
		"out.mp4",
	}, cmd.Args())
}

func TestCommandArgsClipAndScale(t *testing.T) {
	cmd := ffmpeg.Command{
		Input:       "in.mp4",
		Output:      "out.mp4",
		SeekTo:      "00:00:10",
		Duration:    "00:00:30",
		VideoCodec:  "libx264",
		CRF:         -1,
		Bitrate:     "2M",
		ScaleWidth:  1280,
		ScaleHeight: 720,
		FPS:         30,
		AudioCodec:  "aac",
	}
	args := cmd.Args()
	assert.Contains(t, args, "-ss")
	assert.Contains(t, args, "-t")
	assert.Contains(t, args, "-b:v")
	assert.NotContains(t, args, "-crf", "negative CRF emits no rate-control flag")

	joined := join(args)
	assert.Contains(t, joined, "-vf scale=1280:720")
	assert.Contains(t, joined, "-r 30")
}

func TestCommandArgsAudioExtraction(t *testing.T) {
	cmd := ffmpeg.Command{
		Input:      "talk.mp4",
		Output:     "talk.mp3",
		DropVideo:  true,
		AudioCodec: "libmp3lame",
	}
	args := cmd.Args()
	assert.Contains(t, args, "-vn")
	assert.NotContains(t, args, "-c:v", "video params are suppressed when dropping video")
	joined := join(args)
	assert.Contains(t, joined, "-c:a libmp3lame")
}

func TestCommandArgsThumbnail(t *testing.T) {
	cmd := ffmpeg.Command{
		Input:      "movie.mp4",
		Output:     "movie.jpg",
		SeekTo:     "00:00:01",
		FrameCount: 1,
		DropAudio:  true,
		CRF:        -1,
	}
	joined := join(cmd.Args())
	assert.Contains(t, joined, "-ss 00:00:01")
	assert.Contains(t, joined, "-vframes 1")
	assert.Contains(t, joined, "-an")
}

func TestCommandArgsVerboseAndExtra(t *testing.T) {
	cmd := ffmpeg.Command{
		Input:   "in.mp4",
		Output:  "out.mp4",
		CRF:     -1,
		Verbose: true,
		Extra:   []string{"-map_metadata", "0"},
	}
	args := cmd.Args()
	joined := join(args)
	assert.Contains(t, joined, "-loglevel info")
	assert.Contains(t, joined, "-map_metadata 0")
	assert.Equal(t, "out.mp4", args[len(args)-1], "output path stays last, after extras")
}

func join(args []string) string {
	out := ""
	for i, a := range args {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}
