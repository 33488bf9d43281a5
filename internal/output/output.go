// Package output renders measurement reports as a raw tree, JSON, or XML.
package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/temirov/lc/internal/aggregate"
	"github.com/temirov/lc/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	xmlHeader = xml.Header

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "

	summarySeparator   = "=>"
	directorySuffix    = "/"
	linesFormat        = "%d lines"
	charactersFormat   = " (%d chars)"
	wordsFormat        = " and %d words"
	totalLinesLabel    = "Total lines:"
	totalCharsLabel    = "Total characters:"
	totalWordsLabel    = "Total words:"
	unknownFormatError = "unsupported output format %q"
)

// Renderer collects target reports and writes them once every target has
// been measured.
type Renderer interface {
	Handle(report types.TargetReport) error
	Flush() error
}

// Options configures a renderer.
type Options struct {
	Selection types.MetricSelection
	// Reducer rolls a directory report into totals; nil means deep.
	Reducer aggregate.Reducer
	// AggregationName is recorded in structured output.
	AggregationName string
	Styled          bool
}

// NewRenderer returns the renderer for format writing to stdout.
func NewRenderer(format string, stdout io.Writer, options Options) (Renderer, error) {
	if options.Reducer == nil {
		options.Reducer = aggregate.Deep
	}
	if options.AggregationName == "" {
		options.AggregationName = types.AggregateDeep
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", types.FormatRaw:
		return NewRawRenderer(stdout, options), nil
	case types.FormatJSON:
		return NewJSONRenderer(stdout, options), nil
	case types.FormatXML:
		return NewXMLRenderer(stdout, options), nil
	default:
		return nil, fmt.Errorf(unknownFormatError, format)
	}
}

// FormatMetrics renders the selected counts in the "N lines (C chars) and W
// words" form.
func FormatMetrics(totals types.AggregateTotals, selection types.MetricSelection) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, linesFormat, totals.Lines)
	if selection.Characters {
		fmt.Fprintf(&builder, charactersFormat, totals.Characters)
	}
	if selection.Words {
		fmt.Fprintf(&builder, wordsFormat, totals.Words)
	}
	return builder.String()
}

// targetTotals rolls a target report into totals under reducer.
func targetTotals(report types.TargetReport, reducer aggregate.Reducer) types.AggregateTotals {
	switch {
	case report.File != nil:
		return aggregate.FileTotals(*report.File)
	case report.Directory != nil:
		return aggregate.Totals(*report.Directory, reducer)
	default:
		return types.AggregateTotals{}
	}
}
