package convert_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mediaforge/mediaconv/pkg/convert"
)

func sampleResults() []convert.Result {
	return []convert.Result{
		{
			Job:      convert.Job{Index: 0, Source: "a.jpg", Dest: "a.webp"},
			Outcome:  convert.OutcomeSuccess,
			Duration: 120 * time.Millisecond,
		},
		{
			Job:     convert.Job{Index: 1, Source: "b.jpg", Dest: "b.webp"},
			Outcome: convert.OutcomeFailed,
			Err:     errors.New("decode: unexpected EOF"),
		},
		{
			Job:     convert.Job{Index: 2, Source: "c.txt"},
			Outcome: convert.OutcomeSkipped,
			Err:     convert.ErrInvalidInput,
		},
	}
}

func TestSummarize(t *testing.T) {
	report := convert.Summarize(sampleResults(), convert.BatchMeta{
		Kind:    convert.KindImage,
		Workers: 4,
		Started: time.Now().Add(-2 * time.Second),
	})

	assert.Equal(t, 3, report.Summary.Total)
	assert.Equal(t, 1, report.Summary.Succeeded)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, 4, report.Summary.Workers)
	assert.InDelta(t, 2.0, report.Summary.DurationSeconds, 0.5)

	require.Len(t, report.Results, 3)
	assert.Equal(t, "a.jpg", report.Results[0].Source)
	assert.Equal(t, "a.webp", report.Results[0].Dest)
	assert.Empty(t, report.Results[0].Error)
	assert.Empty(t, report.Results[1].Dest, "failed jobs report no destination")
	assert.Contains(t, report.Results[1].Error, "unexpected EOF")
	assert.Equal(t, convert.OutcomeSkipped, report.Results[2].Outcome)
}

func TestSummarizeKeepsInputOrder(t *testing.T) {
	results := sampleResults()
	report := convert.Summarize(results, convert.BatchMeta{Kind: convert.KindImage})
	for i, jr := range report.Results {
		assert.Equal(t, results[i].Job.Source, jr.Source)
	}
}

func TestReportExitCode(t *testing.T) {
	tests := []struct {
		name                       string
		succeeded, failed, skipped int
		want                       int
	}{
		{name: "all succeeded", succeeded: 3, want: convert.ExitOK},
		{name: "skips without failures still ok", succeeded: 2, skipped: 1, want: convert.ExitOK},
		{name: "mixed", succeeded: 1, failed: 2, want: convert.ExitPartial},
		{name: "all failed", failed: 3, want: convert.ExitAllFailed},
		{name: "failures with only skips", failed: 1, skipped: 2, want: convert.ExitAllFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := convert.Report{Summary: convert.Summary{
				Succeeded: tc.succeeded,
				Failed:    tc.failed,
				Skipped:   tc.skipped,
			}}
			assert.Equal(t, tc.want, r.ExitCode())
		})
	}
}

func TestReportEncode(t *testing.T) {
	report := convert.Summarize(sampleResults(), convert.BatchMeta{Kind: convert.KindImage})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Encode(&buf, convert.ReportFormatJSON))

		var decoded convert.Report
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report.Summary.Total, decoded.Summary.Total)
		assert.Len(t, decoded.Results, 3)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, report.Encode(&buf, convert.ReportFormatYAML))

		var decoded convert.Report
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
		assert.Equal(t, report.Summary.Failed, decoded.Summary.Failed)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, report.Encode(&buf, convert.ReportFormat("xml")))
	})
}
