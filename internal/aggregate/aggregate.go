// Package aggregate rolls file metrics up into directory totals.
package aggregate

import (
	"fmt"
	"strings"

	"github.com/temirov/lc/internal/types"
)

const unknownReducerFormat = "unknown aggregation policy %q (expected %s or %s)"

// Reducer combines a directory report into totals.
type Reducer func(report types.DirectoryReport) types.AggregateTotals

// Deep sums a directory's own files and the deep totals of every subdirectory.
func Deep(report types.DirectoryReport) types.AggregateTotals {
	totals := Shallow(report)
	for _, subdirectory := range report.Subdirectories {
		totals.Merge(Deep(subdirectory))
	}
	return totals
}

// Shallow sums only the files directly inside the directory.
func Shallow(report types.DirectoryReport) types.AggregateTotals {
	var totals types.AggregateTotals
	for _, fileReport := range report.Files {
		totals.Add(fileReport.Metrics)
	}
	return totals
}

// Totals applies reducer to report. A nil reducer selects Deep.
func Totals(report types.DirectoryReport, reducer Reducer) types.AggregateTotals {
	if reducer == nil {
		reducer = Deep
	}
	return reducer(report)
}

// FileTotals returns the totals of a single file report.
func FileTotals(fileReport types.FileReport) types.AggregateTotals {
	var totals types.AggregateTotals
	totals.Add(fileReport.Metrics)
	return totals
}

// ReducerByName resolves a policy name. An empty name selects Deep.
func ReducerByName(policyName string) (Reducer, error) {
	switch strings.ToLower(strings.TrimSpace(policyName)) {
	case "", types.AggregateDeep:
		return Deep, nil
	case types.AggregateShallow:
		return Shallow, nil
	default:
		return nil, fmt.Errorf(unknownReducerFormat, policyName, types.AggregateDeep, types.AggregateShallow)
	}
}
