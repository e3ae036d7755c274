package convert

import "errors"

// Sentinel errors for the failure taxonomy. Per-job errors are captured into
// that job's Result and never abort the batch; only ErrToolMissing for an
// all-video batch and output-root failures are batch-fatal. Callers check
// categories with errors.Is.
var (
	// ErrInvalidInput marks a job whose input path does not exist or whose
	// extension is outside the supported input set for the batch's kind.
	// Always recorded as a skipped result, never fatal.
	ErrInvalidInput = errors.New("invalid input file")

	// ErrAmbiguousOutput is returned when a batch has more than one input but
	// --output names a single file rather than a directory.
	ErrAmbiguousOutput = errors.New("ambiguous output: multiple inputs need an output directory")

	// ErrInputUnreadable marks a job whose input existed at build time but
	// could not be opened or decoded at execution time.
	ErrInputUnreadable = errors.New("input unreadable")

	// ErrUnsupportedFormat marks a requested output format outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrToolMissing indicates the external encoder is not installed or
	// disappeared between the capability probe and execution.
	ErrToolMissing = errors.New("ffmpeg not found")

	// ErrToolFailed indicates the external encoder exited non-zero; the
	// wrapped message carries the tail of its diagnostic output.
	ErrToolFailed = errors.New("ffmpeg failed")

	// ErrWriteFailed indicates the destination could not be written
	// (permissions, disk space, rename failure).
	ErrWriteFailed = errors.New("failed to write output file")

	// ErrBatchCancelled marks jobs that were never started because the batch
	// was cancelled by a fatal condition or an interrupt.
	ErrBatchCancelled = errors.New("batch cancelled")
)
