package output

import (
	"fmt"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/temirov/lc/internal/aggregate"
	"github.com/temirov/lc/internal/types"
)

type rawRenderer struct {
	stdout  io.Writer
	options Options
	styles  palette
	reports []types.TargetReport
}

// NewRawRenderer returns a renderer printing each target as a tree followed by
// one grand-total line per selected metric.
func NewRawRenderer(stdout io.Writer, options Options) Renderer {
	if options.Reducer == nil {
		options.Reducer = aggregate.Deep
	}
	return &rawRenderer{
		stdout:  stdout,
		options: options,
		styles:  newPalette(options.Styled),
	}
}

func (renderer *rawRenderer) Handle(report types.TargetReport) error {
	renderer.reports = append(renderer.reports, report)
	return nil
}

func (renderer *rawRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	var grandTotals types.AggregateTotals
	for index, report := range renderer.reports {
		if index > 0 {
			if _, err := fmt.Fprintln(renderer.stdout); err != nil {
				return err
			}
		}
		if err := renderer.writeTarget(report); err != nil {
			return err
		}
		grandTotals.Merge(targetTotals(report, renderer.options.Reducer))
	}
	if len(renderer.reports) > 0 {
		if _, err := fmt.Fprintln(renderer.stdout); err != nil {
			return err
		}
	}
	return renderer.writeGrandTotals(grandTotals)
}

func (renderer *rawRenderer) writeTarget(report types.TargetReport) error {
	switch {
	case report.File != nil:
		label := renderer.styles.render(renderer.styles.file, report.File.Name)
		return renderer.writeLine("", label, aggregate.FileTotals(*report.File))
	case report.Directory != nil:
		label := renderer.styles.render(renderer.styles.directory, report.Directory.Name+directorySuffix)
		if err := renderer.writeLine("", label, renderer.options.Reducer(*report.Directory)); err != nil {
			return err
		}
		return renderer.writeChildren(*report.Directory, "")
	default:
		return nil
	}
}

type rawEntry struct {
	label     string
	totals    types.AggregateTotals
	directory *types.DirectoryReport
}

// writeChildren prints files before subdirectories, with sibling labels
// padded to a common display width.
func (renderer *rawRenderer) writeChildren(report types.DirectoryReport, prefix string) error {
	entries := make([]rawEntry, 0, len(report.Files)+len(report.Subdirectories))
	for _, fileReport := range report.Files {
		entries = append(entries, rawEntry{label: fileReport.Name, totals: aggregate.FileTotals(fileReport)})
	}
	for index := range report.Subdirectories {
		subdirectory := &report.Subdirectories[index]
		entries = append(entries, rawEntry{
			label:     subdirectory.Name + directorySuffix,
			totals:    renderer.options.Reducer(*subdirectory),
			directory: subdirectory,
		})
	}

	labelWidth := 0
	for _, entry := range entries {
		if width := runewidth.StringWidth(entry.label); width > labelWidth {
			labelWidth = width
		}
	}

	for index, entry := range entries {
		connector, childPrefix := treeBranchConnector, prefix+treeBranchPadding
		if index == len(entries)-1 {
			connector, childPrefix = treeLastConnector, prefix+treeLastPadding
		}
		padded := runewidth.FillRight(entry.label, labelWidth)
		style := renderer.styles.file
		if entry.directory != nil {
			style = renderer.styles.directory
		}
		if err := renderer.writeLine(prefix+connector, renderer.styles.render(style, padded), entry.totals); err != nil {
			return err
		}
		if entry.directory != nil {
			if err := renderer.writeChildren(*entry.directory, childPrefix); err != nil {
				return err
			}
		}
	}
	return nil
}

func (renderer *rawRenderer) writeLine(prefix, label string, totals types.AggregateTotals) error {
	counts := renderer.styles.render(renderer.styles.counts, FormatMetrics(totals, renderer.options.Selection))
	_, err := fmt.Fprintf(renderer.stdout, "%s%s %s %s\n", prefix, label, summarySeparator, counts)
	return err
}

type totalLine struct {
	label string
	value uint
}

func (renderer *rawRenderer) writeGrandTotals(totals types.AggregateTotals) error {
	lines := []totalLine{{label: totalLinesLabel, value: totals.Lines}}
	if renderer.options.Selection.Characters {
		lines = append(lines, totalLine{label: totalCharsLabel, value: totals.Characters})
	}
	if renderer.options.Selection.Words {
		lines = append(lines, totalLine{label: totalWordsLabel, value: totals.Words})
	}
	for _, line := range lines {
		label := renderer.styles.render(renderer.styles.label, line.label)
		if _, err := fmt.Fprintf(renderer.stdout, "%s %d\n", label, line.value); err != nil {
			return err
		}
	}
	return nil
}
