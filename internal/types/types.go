// Package types defines every cross‑package data structure used by the lc CLI.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
	FormatXML  = "xml"

	AggregateDeep    = "deep"
	AggregateShallow = "shallow"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ValidatedPath is a command-line target that already passed existence checks.
type ValidatedPath struct {
	// InputPath is the path as given, used to name the report root.
	InputPath    string
	AbsolutePath string
	IsDir        bool
}

// TextMetrics holds the counts computed for one piece of text.
type TextMetrics struct {
	Lines      uint `json:"lines" xml:"lines"`
	Characters uint `json:"characters" xml:"characters"`
	Words      uint `json:"words" xml:"words"`
}

// FileReport is the measurement of one regular file.
type FileReport struct {
	Name    string      `json:"name"`
	Path    string      `json:"path"`
	Metrics TextMetrics `json:"metrics"`
}

// DirectoryReport is one node of the measured directory tree.
type DirectoryReport struct {
	Name           string            `json:"name"`
	Path           string            `json:"path"`
	Files          []FileReport      `json:"files"`
	Subdirectories []DirectoryReport `json:"subdirectories"`
}

// TargetReport is the result for one command-line target: exactly one of
// File or Directory is set.
type TargetReport struct {
	File      *FileReport
	Directory *DirectoryReport
}

// AggregateTotals is the rolled-up count for a directory report.
type AggregateTotals struct {
	Lines      uint `json:"totalLines" xml:"totalLines"`
	Characters uint `json:"totalCharacters" xml:"totalCharacters"`
	Words      uint `json:"totalWords" xml:"totalWords"`
}

// Add accumulates metrics into the totals.
func (totals *AggregateTotals) Add(metrics TextMetrics) {
	totals.Lines += metrics.Lines
	totals.Characters += metrics.Characters
	totals.Words += metrics.Words
}

// Merge accumulates other totals into the receiver.
func (totals *AggregateTotals) Merge(other AggregateTotals) {
	totals.Lines += other.Lines
	totals.Characters += other.Characters
	totals.Words += other.Words
}

// MetricSelection controls which optional metrics are rendered.
type MetricSelection struct {
	Characters bool
	Words      bool
}
