// Package ffmpeg wraps the external encoder behind a capability probe, a
// typed argument-vector builder, and a subprocess runner. Nothing here
// parses encoder progress output; the boundary is exit status plus stderr.
package ffmpeg

import (
	"context"
	"os/exec"
	"strings"
)

// DefaultBinary is the encoder looked up on PATH.
const DefaultBinary = "ffmpeg"

// Capability reports whether the external encoder is usable. A missing tool
// is a normal negative result, not an error.
type Capability struct {
	Available bool
	Path      string
	Version   string
}

// Prober checks encoder availability before a batch commits to video jobs.
type Prober interface {
	Probe(ctx context.Context) Capability
}

// ExecProber probes by resolving the binary on PATH and running it in
// read-only version mode.
type ExecProber struct {
	Binary string
}

// NewProber returns a prober for the default binary name.
func NewProber() *ExecProber {
	return &ExecProber{Binary: DefaultBinary}
}

// Probe implements Prober.
func (p *ExecProber) Probe(ctx context.Context) Capability {
	binary := p.Binary
	if binary == "" {
		binary = DefaultBinary
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return Capability{}
	}
	out, err := exec.CommandContext(ctx, path, "-version").Output()
	if err != nil {
		// Present on PATH but not runnable counts as unavailable.
		return Capability{}
	}
	return Capability{
		Available: true,
		Path:      path,
		Version:   parseVersion(string(out)),
	}
}

// parseVersion extracts the version token from the first line of
// "ffmpeg -version" output ("ffmpeg version 6.1.1 Copyright ...").
func parseVersion(out string) string {
	line, _, _ := strings.Cut(out, "\n")
	fields := strings.Fields(line)
	if len(fields) >= 3 && fields[1] == "version" {
		return fields[2]
	}
	return ""
}
