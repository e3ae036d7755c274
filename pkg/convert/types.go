package convert

// MediaKind selects which conversion pipeline a batch runs through.
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Operation is the unit of work applied to each input file. Convert is the
// default; the others are video-only.
type Operation string

const (
	OpConvert      Operation = "convert"
	OpExtractAudio Operation = "extract-audio"
	OpThumbnail    Operation = "thumbnail"
)

// Outcome is the terminal state of a single job.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// ReportFormat selects the machine-readable report encoding.
type ReportFormat string

const (
	ReportFormatNone ReportFormat = ""
	ReportFormatJSON ReportFormat = "json"
	ReportFormatYAML ReportFormat = "yaml"
)

// Process exit codes. Zero failures is a success even when files were
// skipped; a usage or capability problem aborts before any job runs.
const (
	ExitOK         = 0
	ExitAllFailed  = 1
	ExitPartial    = 2
	ExitUsageError = 3
)
