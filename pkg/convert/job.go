package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Job describes one input-to-output conversion unit. It is immutable after
// BuildJob returns and owned by the engine until handed to an executor.
type Job struct {
	Index     int
	Source    string
	Dest      string
	Operation Operation
}

// BuildJob validates input and resolves the destination for one candidate
// path. batchSize is the total candidate count, needed for the
// explicit-output ambiguity rule.
//
// Failure modes: ErrInvalidInput when the path is missing, a directory, or
// carries an unsupported extension; ErrAmbiguousOutput when several inputs
// share one explicit output file; ErrUnsupportedFormat via OutputExt.
func BuildJob(index int, input string, opts *Options, batchSize int) (Job, error) {
	fi, err := os.Stat(input)
	if err != nil {
		return Job{}, fmt.Errorf("%w: %s: %v", ErrInvalidInput, input, err)
	}
	if fi.IsDir() {
		return Job{}, fmt.Errorf("%w: %s is a directory", ErrInvalidInput, input)
	}
	if !SupportedInput(opts.Kind, input) {
		return Job{}, fmt.Errorf("%w: %s has no supported %s extension", ErrInvalidInput, input, opts.Kind)
	}

	targetExt, err := targetExtension(input, opts)
	if err != nil {
		return Job{}, err
	}

	dest, err := resolveDest(input, targetExt, opts, batchSize)
	if err != nil {
		return Job{}, err
	}

	op := opts.Operation
	if op == "" {
		op = OpConvert
	}
	return Job{Index: index, Source: input, Dest: dest, Operation: op}, nil
}

// targetExtension picks the canonical extension for the job's output.
func targetExtension(input string, opts *Options) (string, error) {
	switch opts.Operation {
	case OpExtractAudio:
		format := opts.AudioFormat
		if format == "" {
			format = "mp3"
		}
		return AudioOutputExt(format)
	case OpThumbnail:
		return ".jpg", nil
	}
	if opts.Format == "" {
		// Pure compress/resize run keeps the source extension.
		return strings.ToLower(filepath.Ext(input)), nil
	}
	return OutputExt(opts.Kind, opts.Format)
}

// resolveDest applies the destination rules from the CLI contract:
// an explicit output that is a directory receives <stem><targetExt>; an
// explicit output file is only legal for a single input; with no explicit
// output the destination sits beside the input, with a "_converted" stem
// suffix whenever resolution would otherwise overwrite the source in place.
func resolveDest(input, targetExt string, opts *Options, batchSize int) (string, error) {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	if opts.OutputPath != "" {
		if outputIsDir(opts.OutputPath) {
			return filepath.Join(opts.OutputPath, stem+targetExt), nil
		}
		if batchSize > 1 {
			return "", fmt.Errorf("%w: %d inputs but output %q is not a directory",
				ErrAmbiguousOutput, batchSize, opts.OutputPath)
		}
		return opts.OutputPath, nil
	}

	dest := filepath.Join(filepath.Dir(input), stem+targetExt)
	if sameFile(dest, input) {
		dest = filepath.Join(filepath.Dir(input), stem+"_converted"+targetExt)
	}
	return dest, nil
}

// outputIsDir treats an existing directory or a trailing separator as a
// directory target.
func outputIsDir(path string) bool {
	if strings.HasSuffix(path, string(os.PathSeparator)) || strings.HasSuffix(path, "/") {
		return true
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

func sameFile(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
