package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{
			name:         "defaults_to_false",
			defaultValue: false,
			arguments:    []string{},
			expected:     false,
			expectError:  false,
		},
		{
			name:         "sets_true_without_value",
			defaultValue: false,
			arguments:    []string{"--recursive"},
			expected:     true,
			expectError:  false,
		},
		{
			name:         "sets_false_with_equals",
			defaultValue: true,
			arguments:    []string{"--recursive=false"},
			expected:     false,
			expectError:  false,
		},
		{
			name:         "sets_false_with_no_literal",
			defaultValue: true,
			arguments:    []string{"--recursive", "no"},
			expected:     false,
			expectError:  false,
		},
		{
			name:         "sets_true_with_on_literal",
			defaultValue: false,
			arguments:    []string{"--recursive", "on"},
			expected:     true,
			expectError:  false,
		},
		{
			name:         "sets_true_with_shorthand",
			defaultValue: false,
			arguments:    []string{"-r"},
			expected:     true,
			expectError:  false,
		},
		{
			name:         "ignores_non_boolean_trailing_value",
			defaultValue: false,
			arguments:    []string{"--recursive", "maybe"},
			expected:     true,
			expectError:  false,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			command := &cobra.Command{Use: "lc"}
			flagSet := command.Flags()
			flagValue := !testCase.defaultValue
			registerBooleanFlag(flagSet, &flagValue, "recursive", "r", testCase.defaultValue, "descend into subdirectories")
			normalizedArguments := normalizeBooleanFlagArguments(command, testCase.arguments)
			parseErr := command.ParseFlags(normalizedArguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if len(testCase.arguments) == 0 && flagValue != testCase.defaultValue {
				t.Fatalf("expected default %t, got %t", testCase.defaultValue, flagValue)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestNormalizeBooleanFlagArgumentsKeepsExistingPaths(t *testing.T) {
	workingDirectory := t.TempDir()
	existingPath := filepath.Join(workingDirectory, "no")
	if err := os.Mkdir(existingPath, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	command := &cobra.Command{Use: "lc"}
	var recursive bool
	registerBooleanFlag(command.Flags(), &recursive, "recursive", "r", false, "descend into subdirectories")

	testCases := []struct {
		name      string
		arguments []string
		expected  []string
	}{
		{
			name:      "joins_boolean_literal",
			arguments: []string{"--recursive", "off", "."},
			expected:  []string{"--recursive=off", "."},
		},
		{
			name:      "keeps_existing_path_positional",
			arguments: []string{"--recursive", existingPath},
			expected:  []string{"--recursive", existingPath},
		},
		{
			name:      "stops_at_double_dash",
			arguments: []string{"--", "--recursive", "no"},
			expected:  []string{"--", "--recursive", "no"},
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := normalizeBooleanFlagArguments(command, testCase.arguments)
			if strings.Join(actual, " ") != strings.Join(testCase.expected, " ") {
				t.Fatalf("normalizeBooleanFlagArguments(%v) = %v, want %v", testCase.arguments, actual, testCase.expected)
			}
		})
	}
}
