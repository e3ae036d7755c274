package ffmpeg

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Runner executes one encoder invocation and returns captured stderr. The
// error is the raw exec error; classification into the failure taxonomy
// happens in the caller.
type Runner interface {
	Run(ctx context.Context, binary string, args []string) (stderr string, err error)
}

// ExecRunner runs the encoder as a subprocess. When verbose, stderr is tee'd
// to the terminal in real time while still being captured for diagnostics.
type ExecRunner struct {
	Verbose bool
}

// Run implements Runner. Context cancellation kills the encoder mid-pass;
// callers write to a temp sibling and rename on success, so an interrupted
// encode never leaves a corrupt destination, only an unfinished temp that the
// caller removes.
func (r *ExecRunner) Run(ctx context.Context, binary string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, binary, args...)

	var stderrBuf bytes.Buffer
	if r.Verbose {
		cmd.Stderr = io.MultiWriter(&stderrBuf, os.Stderr)
	} else {
		cmd.Stderr = &stderrBuf
	}
	cmd.Stdout = io.Discard

	err := cmd.Run()
	return stderrBuf.String(), err
}

// StderrTail returns the last n lines of encoder output, enough to diagnose
// a failure without dumping a full encode log.
func StderrTail(stderr string, n int) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	lines := strings.Split(stderr, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
