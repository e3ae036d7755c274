package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// JobResult is the externally visible record for one job inside a report.
type JobResult struct {
	Source     string  `json:"source" yaml:"source"`
	Dest       string  `json:"dest,omitempty" yaml:"dest,omitempty"`
	Outcome    Outcome `json:"outcome" yaml:"outcome"`
	Error      string  `json:"error,omitempty" yaml:"error,omitempty"`
	DurationMs int64   `json:"durationMs" yaml:"durationMs"`
}

// Summary holds the aggregate tallies for one batch.
type Summary struct {
	Kind            MediaKind `json:"kind" yaml:"kind"`
	EncoderVersion  string    `json:"encoderVersion,omitempty" yaml:"encoderVersion,omitempty"`
	Total           int       `json:"total" yaml:"total"`
	Succeeded       int       `json:"succeeded" yaml:"succeeded"`
	Failed          int       `json:"failed" yaml:"failed"`
	Skipped         int       `json:"skipped" yaml:"skipped"`
	Workers         int       `json:"workers" yaml:"workers"`
	DurationSeconds float64   `json:"durationSeconds" yaml:"durationSeconds"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
}

// Report is the terminal product of a batch run: the ordered result
// sequence plus its partitioned counts. Counts always equal the sequence
// partitioned by outcome; no job is silently dropped.
type Report struct {
	Summary Summary     `json:"summary" yaml:"summary"`
	Results []JobResult `json:"results" yaml:"results"`
}

// BatchMeta carries run context into Summarize without making it impure.
type BatchMeta struct {
	Kind           MediaKind
	Workers        int
	Started        time.Time
	EncoderVersion string
}

// Summarize folds the ordered result sequence into a report. It reads the
// inputs and nothing else.
func Summarize(results []Result, meta BatchMeta) Report {
	report := Report{
		Summary: Summary{
			Kind:            meta.Kind,
			EncoderVersion:  meta.EncoderVersion,
			Total:           len(results),
			Workers:         meta.Workers,
			DurationSeconds: time.Since(meta.Started).Seconds(),
			Timestamp:       time.Now().UTC(),
		},
		Results: make([]JobResult, 0, len(results)),
	}

	for _, res := range results {
		jr := JobResult{
			Source:     res.Job.Source,
			Outcome:    res.Outcome,
			DurationMs: res.Duration.Milliseconds(),
		}
		switch res.Outcome {
		case OutcomeSuccess:
			jr.Dest = res.Job.Dest
			report.Summary.Succeeded++
		case OutcomeFailed:
			report.Summary.Failed++
		case OutcomeSkipped:
			report.Summary.Skipped++
		}
		if res.Err != nil {
			jr.Error = res.Err.Error()
		}
		report.Results = append(report.Results, jr)
	}

	return report
}

// ExitCode maps the aggregate outcome to the process exit status: zero
// failures is a success, a mix of failures and successes is a partial
// failure, and all-failed is a total failure.
func (r Report) ExitCode() int {
	switch {
	case r.Summary.Failed == 0:
		return ExitOK
	case r.Summary.Succeeded > 0:
		return ExitPartial
	default:
		return ExitAllFailed
	}
}

// Encode writes the machine-readable report in the requested format.
func (r Report) Encode(w io.Writer, format ReportFormat) error {
	switch format {
	case ReportFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(r)
	}
	return fmt.Errorf("unknown report format %q", string(format))
}
