package convert_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestBuildJobDestinationRules(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, filepath.Join(dir, "photo.png"))

	t.Run("format change beside input", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindImage, Format: "webp"}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "photo.webp"), job.Dest)
		assert.Equal(t, convert.OpConvert, job.Operation)
	})

	t.Run("same format gets converted suffix", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindImage, Format: "png"}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "photo_converted.png"), job.Dest)
	})

	t.Run("no format keeps source extension with suffix", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindImage, Compress: true}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "photo_converted.png"), job.Dest)
	})

	t.Run("explicit directory output", func(t *testing.T) {
		out := filepath.Join(dir, "out") + string(os.PathSeparator)
		opts := &convert.Options{Kind: convert.KindImage, Format: "jpg", OutputPath: out}
		job, err := convert.BuildJob(0, input, opts, 3)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "out", "photo.jpg"), job.Dest)
	})

	t.Run("existing directory without separator", func(t *testing.T) {
		out := filepath.Join(dir, "existing")
		require.NoError(t, os.MkdirAll(out, 0o755))
		opts := &convert.Options{Kind: convert.KindImage, Format: "jpg", OutputPath: out}
		job, err := convert.BuildJob(0, input, opts, 2)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(out, "photo.jpg"), job.Dest)
	})

	t.Run("explicit file output for single input", func(t *testing.T) {
		out := filepath.Join(dir, "renamed.webp")
		opts := &convert.Options{Kind: convert.KindImage, Format: "webp", OutputPath: out}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, out, job.Dest)
	})

	t.Run("explicit file output is ambiguous for batches", func(t *testing.T) {
		out := filepath.Join(dir, "renamed.webp")
		opts := &convert.Options{Kind: convert.KindImage, Format: "webp", OutputPath: out}
		_, err := convert.BuildJob(0, input, opts, 2)
		assert.ErrorIs(t, err, convert.ErrAmbiguousOutput)
	})
}

func TestBuildJobInputValidation(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindImage}
		_, err := convert.BuildJob(0, filepath.Join(dir, "nope.png"), opts, 1)
		assert.ErrorIs(t, err, convert.ErrInvalidInput)
	})

	t.Run("directory", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindImage}
		_, err := convert.BuildJob(0, dir, opts, 1)
		assert.ErrorIs(t, err, convert.ErrInvalidInput)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		input := touch(t, filepath.Join(dir, "notes.txt"))
		opts := &convert.Options{Kind: convert.KindImage}
		_, err := convert.BuildJob(0, input, opts, 1)
		assert.ErrorIs(t, err, convert.ErrInvalidInput)
	})

	t.Run("video extension rejected for image batch", func(t *testing.T) {
		input := touch(t, filepath.Join(dir, "clip.mp4"))
		opts := &convert.Options{Kind: convert.KindImage}
		_, err := convert.BuildJob(0, input, opts, 1)
		assert.ErrorIs(t, err, convert.ErrInvalidInput)
	})
}

func TestBuildJobVideoOperations(t *testing.T) {
	dir := t.TempDir()
	input := touch(t, filepath.Join(dir, "talk.mp4"))

	t.Run("extract audio", func(t *testing.T) {
		opts := &convert.Options{
			Kind:        convert.KindVideo,
			Operation:   convert.OpExtractAudio,
			AudioFormat: "mp3",
		}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, convert.OpExtractAudio, job.Operation)
		assert.Equal(t, filepath.Join(dir, "talk.mp3"), job.Dest)
	})

	t.Run("extract audio defaults to mp3", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindVideo, Operation: convert.OpExtractAudio}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "talk.mp3"), job.Dest)
	})

	t.Run("extract audio unsupported format", func(t *testing.T) {
		opts := &convert.Options{
			Kind:        convert.KindVideo,
			Operation:   convert.OpExtractAudio,
			AudioFormat: "flac",
		}
		_, err := convert.BuildJob(0, input, opts, 1)
		assert.ErrorIs(t, err, convert.ErrUnsupportedFormat)
	})

	t.Run("thumbnail always targets jpg", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindVideo, Operation: convert.OpThumbnail}
		job, err := convert.BuildJob(0, input, opts, 1)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "talk.jpg"), job.Dest)
	})

	t.Run("transcode to webm", func(t *testing.T) {
		opts := &convert.Options{Kind: convert.KindVideo, Format: "webm"}
		job, err := convert.BuildJob(4, input, opts, 5)
		require.NoError(t, err)
		assert.Equal(t, 4, job.Index)
		assert.Equal(t, filepath.Join(dir, "talk.webm"), job.Dest)
	})
}
