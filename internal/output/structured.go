package output

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/temirov/lc/internal/aggregate"
	"github.com/temirov/lc/internal/types"
)

type reportDocument struct {
	XMLName     xml.Name              `json:"-" xml:"report"`
	Aggregation string                `json:"aggregation" xml:"aggregation,attr"`
	Targets     []targetDocument      `json:"targets" xml:"targets>target"`
	Totals      types.AggregateTotals `json:"totals" xml:"totals"`
}

type targetDocument struct {
	Type      string             `json:"type" xml:"type,attr"`
	File      *fileDocument      `json:"file,omitempty" xml:"file,omitempty"`
	Directory *directoryDocument `json:"directory,omitempty" xml:"directory,omitempty"`
}

type fileDocument struct {
	Name    string            `json:"name" xml:"name,attr"`
	Path    string            `json:"path" xml:"path,attr"`
	Metrics types.TextMetrics `json:"metrics" xml:"metrics"`
}

type directoryDocument struct {
	Name           string                `json:"name" xml:"name,attr"`
	Path           string                `json:"path" xml:"path,attr"`
	Totals         types.AggregateTotals `json:"totals" xml:"totals"`
	Files          []fileDocument        `json:"files" xml:"files>file"`
	Subdirectories []directoryDocument   `json:"subdirectories" xml:"subdirectories>directory"`
}

func newFileDocument(report types.FileReport) fileDocument {
	return fileDocument{Name: report.Name, Path: report.Path, Metrics: report.Metrics}
}

func newDirectoryDocument(report types.DirectoryReport, reducer aggregate.Reducer) directoryDocument {
	document := directoryDocument{
		Name:           report.Name,
		Path:           report.Path,
		Totals:         reducer(report),
		Files:          make([]fileDocument, 0, len(report.Files)),
		Subdirectories: make([]directoryDocument, 0, len(report.Subdirectories)),
	}
	for _, fileReport := range report.Files {
		document.Files = append(document.Files, newFileDocument(fileReport))
	}
	for _, subdirectory := range report.Subdirectories {
		document.Subdirectories = append(document.Subdirectories, newDirectoryDocument(subdirectory, reducer))
	}
	return document
}

var errEmptyTarget = errors.New("target report carries neither a file nor a directory")

// collector accumulates target documents for the structured renderers.
type collector struct {
	options  Options
	document reportDocument
}

func newCollector(options Options) collector {
	if options.Reducer == nil {
		options.Reducer = aggregate.Deep
	}
	if options.AggregationName == "" {
		options.AggregationName = types.AggregateDeep
	}
	return collector{
		options: options,
		document: reportDocument{
			Aggregation: options.AggregationName,
			Targets:     []targetDocument{},
		},
	}
}

func (collected *collector) add(report types.TargetReport) error {
	switch {
	case report.File != nil:
		document := newFileDocument(*report.File)
		collected.document.Targets = append(collected.document.Targets, targetDocument{Type: types.NodeTypeFile, File: &document})
	case report.Directory != nil:
		document := newDirectoryDocument(*report.Directory, collected.options.Reducer)
		collected.document.Targets = append(collected.document.Targets, targetDocument{Type: types.NodeTypeDirectory, Directory: &document})
	default:
		return errEmptyTarget
	}
	collected.document.Totals.Merge(targetTotals(report, collected.options.Reducer))
	return nil
}

type jsonRenderer struct {
	stdout    io.Writer
	collected collector
}

// NewJSONRenderer returns a renderer writing one indented JSON document.
func NewJSONRenderer(stdout io.Writer, options Options) Renderer {
	return &jsonRenderer{stdout: stdout, collected: newCollector(options)}
}

func (renderer *jsonRenderer) Handle(report types.TargetReport) error {
	return renderer.collected.add(report)
}

func (renderer *jsonRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	encoded, err := json.MarshalIndent(renderer.collected.document, indentPrefix, indentSpacer)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(renderer.stdout, string(encoded))
	return err
}

type xmlRenderer struct {
	stdout    io.Writer
	collected collector
}

// NewXMLRenderer returns a renderer writing one indented XML document.
func NewXMLRenderer(stdout io.Writer, options Options) Renderer {
	return &xmlRenderer{stdout: stdout, collected: newCollector(options)}
}

func (renderer *xmlRenderer) Handle(report types.TargetReport) error {
	return renderer.collected.add(report)
}

func (renderer *xmlRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	encoded, err := xml.MarshalIndent(renderer.collected.document, indentPrefix, indentSpacer)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(renderer.stdout, xmlHeader+string(encoded))
	return err
}
