// Package config loads ignore lists and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"

	"github.com/temirov/lc/internal/ignore"
	"github.com/temirov/lc/internal/utils"
)

const commentPrefix = "#"

// LoadIgnoreList reads the ignore-list file at ignoreFilePath and returns its
// entries. Lines are trimmed; blank lines and comments are skipped. A missing
// file yields no entries and no error.
//
// #nosec G304
func LoadIgnoreList(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, openFileError
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var entries []string
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		entries = append(entries, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, scanError
	}
	return entries, nil
}

// DirectoryIgnoreLoader loads the exclusion rules of a directory from its
// ignore-list file and, optionally, its .gitignore.
type DirectoryIgnoreLoader struct {
	IgnoreFileName string
	UseGitignore   bool
}

// Load returns the rules scoped to the immediate children of directoryPath.
func (loader DirectoryIgnoreLoader) Load(directoryPath string) (ignore.Rules, error) {
	ignoreFileName := loader.IgnoreFileName
	if ignoreFileName == "" {
		ignoreFileName = utils.IgnoreFileName
	}

	ignoreFilePath := filepath.Join(directoryPath, ignoreFileName)
	entries, loadError := LoadIgnoreList(ignoreFilePath)
	if loadError != nil {
		return ignore.Rules{}, fmt.Errorf("loading %s from %s: %w", ignoreFileName, directoryPath, loadError)
	}
	names := ignore.EffectiveSet(entries, ignoreFileName)

	if !loader.UseGitignore {
		return ignore.NewRules(names, nil), nil
	}

	gitIgnoreFilePath := filepath.Join(directoryPath, utils.GitIgnoreFileName)
	if _, statError := os.Stat(gitIgnoreFilePath); statError != nil {
		if os.IsNotExist(statError) {
			return ignore.NewRules(names, nil), nil
		}
		return ignore.Rules{}, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, directoryPath, statError)
	}
	matcher, matcherError := gitignore.NewGitIgnore(gitIgnoreFilePath, directoryPath)
	if matcherError != nil {
		return ignore.Rules{}, fmt.Errorf("loading %s from %s: %w", utils.GitIgnoreFileName, directoryPath, matcherError)
	}
	return ignore.NewRules(names, matcher), nil
}
