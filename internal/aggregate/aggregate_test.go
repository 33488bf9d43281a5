package aggregate_test

import (
	"testing"

	"github.com/temirov/lc/internal/aggregate"
	"github.com/temirov/lc/internal/types"
)

func sampleTree() types.DirectoryReport {
	return types.DirectoryReport{
		Name: "root",
		Files: []types.FileReport{
			{Name: "a.txt", Metrics: types.TextMetrics{Lines: 3, Characters: 10, Words: 4}},
		},
		Subdirectories: []types.DirectoryReport{
			{
				Name: "sub",
				Files: []types.FileReport{
					{Name: "b.txt", Metrics: types.TextMetrics{Lines: 5, Characters: 20, Words: 6}},
				},
				Subdirectories: []types.DirectoryReport{
					{
						Name: "deeper",
						Files: []types.FileReport{
							{Name: "c.txt", Metrics: types.TextMetrics{Lines: 1, Characters: 2, Words: 1}},
						},
					},
				},
			},
		},
	}
}

func TestReducers(t *testing.T) {
	testCases := []struct {
		name     string
		reducer  aggregate.Reducer
		expected types.AggregateTotals
	}{
		{
			name:     "deep",
			reducer:  aggregate.Deep,
			expected: types.AggregateTotals{Lines: 9, Characters: 32, Words: 11},
		},
		{
			name:     "shallow",
			reducer:  aggregate.Shallow,
			expected: types.AggregateTotals{Lines: 3, Characters: 10, Words: 4},
		},
		{
			name:     "nil defaults to deep",
			reducer:  nil,
			expected: types.AggregateTotals{Lines: 9, Characters: 32, Words: 11},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := aggregate.Totals(sampleTree(), testCase.reducer)
			if actual != testCase.expected {
				t.Fatalf("Totals = %+v, want %+v", actual, testCase.expected)
			}
		})
	}
}

func TestDeepVersusShallowLines(t *testing.T) {
	report := types.DirectoryReport{
		Files: []types.FileReport{{Name: "A", Metrics: types.TextMetrics{Lines: 3}}},
		Subdirectories: []types.DirectoryReport{
			{Name: "S", Files: []types.FileReport{{Name: "B", Metrics: types.TextMetrics{Lines: 5}}}},
		},
	}
	if deepLines := aggregate.Totals(report, aggregate.Deep).Lines; deepLines != 8 {
		t.Fatalf("deep lines = %d, want 8", deepLines)
	}
	if shallowLines := aggregate.Totals(report, aggregate.Shallow).Lines; shallowLines != 3 {
		t.Fatalf("shallow lines = %d, want 3", shallowLines)
	}
}

func TestEmptyDirectoryTotals(t *testing.T) {
	if totals := aggregate.Deep(types.DirectoryReport{}); totals != (types.AggregateTotals{}) {
		t.Fatalf("expected zero totals, got %+v", totals)
	}
}

func TestFileTotals(t *testing.T) {
	fileReport := types.FileReport{Metrics: types.TextMetrics{Lines: 2, Characters: 7, Words: 1}}
	expected := types.AggregateTotals{Lines: 2, Characters: 7, Words: 1}
	if actual := aggregate.FileTotals(fileReport); actual != expected {
		t.Fatalf("FileTotals = %+v, want %+v", actual, expected)
	}
}

func TestReducerByName(t *testing.T) {
	report := sampleTree()
	testCases := []struct {
		policyName    string
		expectedLines uint
		expectError   bool
	}{
		{policyName: "", expectedLines: 9},
		{policyName: "deep", expectedLines: 9},
		{policyName: " Shallow ", expectedLines: 3},
		{policyName: "sideways", expectError: true},
	}
	for _, testCase := range testCases {
		reducer, resolveError := aggregate.ReducerByName(testCase.policyName)
		if testCase.expectError {
			if resolveError == nil {
				t.Fatalf("expected an error for %q", testCase.policyName)
			}
			continue
		}
		if resolveError != nil {
			t.Fatalf("ReducerByName(%q) error: %v", testCase.policyName, resolveError)
		}
		if lines := reducer(report).Lines; lines != testCase.expectedLines {
			t.Fatalf("ReducerByName(%q) lines = %d, want %d", testCase.policyName, lines, testCase.expectedLines)
		}
	}
}
