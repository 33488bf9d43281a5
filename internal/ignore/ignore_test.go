package ignore_test

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/lc/internal/ignore"
)

const ignoreFileName = ".lcignore"

func TestEffectiveSet(t *testing.T) {
	testCases := []struct {
		name       string
		rawEntries []string
		expected   []string
	}{
		{
			name:       "no entries keeps only the ignore file",
			rawEntries: nil,
			expected:   []string{ignoreFileName},
		},
		{
			name:       "entries are trimmed",
			rawEntries: []string{"  target  ", "\tvendor"},
			expected:   []string{ignoreFileName, "target", "vendor"},
		},
		{
			name:       "blank entries are dropped",
			rawEntries: []string{"", "   ", "notes.txt"},
			expected:   []string{ignoreFileName, "notes.txt"},
		},
		{
			name:       "duplicates collapse",
			rawEntries: []string{"a", "a ", ignoreFileName},
			expected:   []string{ignoreFileName, "a"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := ignore.EffectiveSet(testCase.rawEntries, ignoreFileName).Names()
			if !reflect.DeepEqual(actual, testCase.expected) {
				t.Fatalf("EffectiveSet(%q) = %v, want %v", testCase.rawEntries, actual, testCase.expected)
			}
		})
	}
}

func TestIsIgnoredMatchesBaseNamesOnly(t *testing.T) {
	set := ignore.NewSet("secret.txt", "build")
	if !ignore.IsIgnored("secret.txt", set) {
		t.Fatalf("expected secret.txt to be ignored")
	}
	if !ignore.IsIgnored("build", set) {
		t.Fatalf("expected build to be ignored")
	}
	if ignore.IsIgnored("nested/secret.txt", set) {
		t.Fatalf("paths must not match base names")
	}
	if ignore.IsIgnored("Secret.txt", set) {
		t.Fatalf("matching must be case sensitive")
	}
	if ignore.IsIgnored("anything", ignore.Set{}) {
		t.Fatalf("zero set must not ignore anything")
	}
}

func TestUnionLeavesOperandsUntouched(t *testing.T) {
	left := ignore.NewSet("a")
	right := ignore.NewSet("b")
	merged := left.Union(right)

	if merged.Len() != 2 || !merged.Contains("a") || !merged.Contains("b") {
		t.Fatalf("unexpected union: %v", merged.Names())
	}
	if left.Contains("b") || right.Contains("a") {
		t.Fatalf("union mutated an operand")
	}
}

func TestRulesExcludes(t *testing.T) {
	directory := t.TempDir()
	matcher := gitignore.NewGitIgnoreFromReader(directory, strings.NewReader("*.log\nbuild\n"))
	rules := ignore.NewRules(ignore.NewSet("skip.txt"), matcher)

	testCases := []struct {
		name        string
		entryName   string
		isDirectory bool
		expected    bool
	}{
		{name: "name set", entryName: "skip.txt", expected: true},
		{name: "gitignore glob", entryName: "debug.log", expected: true},
		{name: "gitignore directory", entryName: "build", isDirectory: true, expected: true},
		{name: "kept file", entryName: "main.go", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			entryPath := filepath.Join(directory, testCase.entryName)
			actual := rules.Excludes(entryPath, testCase.entryName, testCase.isDirectory)
			if actual != testCase.expected {
				t.Fatalf("Excludes(%s) = %t, want %t", testCase.entryName, actual, testCase.expected)
			}
		})
	}
}

func TestRulesWithNames(t *testing.T) {
	rules := ignore.NewRules(ignore.NewSet("a"), nil)
	extended := rules.WithNames(ignore.NewSet("b"))
	if !extended.Excludes("/tmp/b", "b", false) {
		t.Fatalf("expected extra names to be excluded")
	}
	if rules.Excludes("/tmp/b", "b", false) {
		t.Fatalf("WithNames mutated the original rules")
	}
}
