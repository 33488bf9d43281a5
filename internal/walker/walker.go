// Package walker measures the regular files of a directory tree.
package walker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/lc/internal/ignore"
	"github.com/temirov/lc/internal/metrics"
	"github.com/temirov/lc/internal/types"
	"github.com/temirov/lc/internal/utils"
)

const (
	logSkipIgnored      = "skipping ignored entry"
	logSkipDirectory    = "skipping directory without recursion"
	logSkipBinary       = "skipping binary file"
	logSkipIrregular    = "skipping irregular entry"
	logMeasuredFile     = "measured file"
	logEnteredDirectory = "entered directory"
	logFieldPath        = "path"
	logFieldLines       = "lines"
)

// IgnoreLoader provides the exclusion rules for the children of one directory.
type IgnoreLoader interface {
	Load(directoryPath string) (ignore.Rules, error)
}

// Walker walks a directory tree depth-first and measures every regular file
// that is not excluded. The zero value walks one level and ignores nothing.
type Walker struct {
	SkipEmptyLines bool
	Recursive      bool
	// SkipBinary drops files that are not UTF-8 text instead of failing the walk.
	SkipBinary bool
	// ExtraIgnored names are excluded at every level of the walk.
	ExtraIgnored ignore.Set
	Loader       IgnoreLoader
	Logger       *zap.Logger
}

// Walk measures the directory at rootDirectoryPath. The first failure aborts
// the walk and no partial report is returned.
func (walker *Walker) Walk(ctx context.Context, rootDirectoryPath string) (types.DirectoryReport, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootDirectoryPath)
	if absolutePathError != nil {
		return types.DirectoryReport{}, &IOError{Op: opWalk, Path: rootDirectoryPath, Err: absolutePathError}
	}
	rootInfo, statError := os.Stat(absoluteRootPath)
	if statError != nil {
		return types.DirectoryReport{}, &IOError{Op: opStat, Path: absoluteRootPath, Err: statError}
	}
	if !rootInfo.IsDir() {
		return types.DirectoryReport{}, &IOError{Op: opWalk, Path: absoluteRootPath, Err: ErrNotDirectory}
	}
	return walker.walkDirectory(ctx, absoluteRootPath, filepath.Clean(rootDirectoryPath))
}

// MeasureFile measures a single regular file.
func MeasureFile(filePath string, skipEmptyLines bool) (types.FileReport, error) {
	absoluteFilePath, absolutePathError := filepath.Abs(filePath)
	if absolutePathError != nil {
		return types.FileReport{}, &IOError{Op: opReadFile, Path: filePath, Err: absolutePathError}
	}
	measuringWalker := Walker{SkipEmptyLines: skipEmptyLines}
	fileReport, _, measureError := measuringWalker.measureFile(absoluteFilePath, filepath.Base(absoluteFilePath))
	return fileReport, measureError
}

func (walker *Walker) walkDirectory(ctx context.Context, directoryPath string, directoryName string) (types.DirectoryReport, error) {
	logger := walker.logger()
	logger.Debug(logEnteredDirectory, zap.String(logFieldPath, directoryPath))

	directoryEntries, readDirectoryError := os.ReadDir(directoryPath)
	if readDirectoryError != nil {
		return types.DirectoryReport{}, &IOError{Op: opReadDirectory, Path: directoryPath, Err: readDirectoryError}
	}

	rules, loadError := walker.rulesFor(directoryPath)
	if loadError != nil {
		return types.DirectoryReport{}, loadError
	}

	report := types.DirectoryReport{
		Name:           directoryName,
		Path:           directoryPath,
		Files:          []types.FileReport{},
		Subdirectories: []types.DirectoryReport{},
	}

	for _, directoryEntry := range directoryEntries {
		if contextError := ctx.Err(); contextError != nil {
			return types.DirectoryReport{}, contextError
		}

		entryName := directoryEntry.Name()
		if !utf8.ValidString(entryName) {
			return types.DirectoryReport{}, &NameError{Directory: directoryPath, RawName: entryName}
		}
		childPath := filepath.Join(directoryPath, entryName)

		entryMode, modeError := resolveEntryMode(directoryEntry, childPath)
		if modeError != nil {
			return types.DirectoryReport{}, modeError
		}
		isDirectory := entryMode.IsDir()

		if rules.Excludes(childPath, entryName, isDirectory) {
			logger.Debug(logSkipIgnored, zap.String(logFieldPath, childPath))
			continue
		}

		switch {
		case isDirectory:
			if !walker.Recursive {
				logger.Debug(logSkipDirectory, zap.String(logFieldPath, childPath))
				continue
			}
			childReport, childError := walker.walkDirectory(ctx, childPath, entryName)
			if childError != nil {
				return types.DirectoryReport{}, childError
			}
			report.Subdirectories = append(report.Subdirectories, childReport)
		case entryMode.IsRegular():
			fileReport, measured, measureError := walker.measureFile(childPath, entryName)
			if measureError != nil {
				return types.DirectoryReport{}, measureError
			}
			if !measured {
				logger.Debug(logSkipBinary, zap.String(logFieldPath, childPath))
				continue
			}
			logger.Debug(logMeasuredFile, zap.String(logFieldPath, childPath), zap.Uint(logFieldLines, fileReport.Metrics.Lines))
			report.Files = append(report.Files, fileReport)
		default:
			logger.Debug(logSkipIrregular, zap.String(logFieldPath, childPath))
		}
	}

	return report, nil
}

// rulesFor loads the exclusion rules for the children of directoryPath and
// merges the names excluded at every level.
func (walker *Walker) rulesFor(directoryPath string) (ignore.Rules, error) {
	rules := ignore.NewRules(ignore.NewSet(), nil)
	if walker.Loader != nil {
		loadedRules, loadError := walker.Loader.Load(directoryPath)
		if loadError != nil {
			return ignore.Rules{}, &IOError{Op: opLoadIgnoreRules, Path: directoryPath, Err: loadError}
		}
		rules = loadedRules
	}
	return rules.WithNames(walker.ExtraIgnored), nil
}

// measureFile reads and measures one file. The boolean result is false when the
// file was skipped as binary.
func (walker *Walker) measureFile(filePath string, fileName string) (types.FileReport, bool, error) {
	fileData, readError := os.ReadFile(filePath)
	if readError != nil {
		return types.FileReport{}, false, &IOError{Op: opReadFile, Path: filePath, Err: readError}
	}
	if walker.SkipBinary && utils.IsBinary(fileData) {
		return types.FileReport{}, false, nil
	}
	fileMetrics, computeError := metrics.ComputeBytes(fileData, walker.SkipEmptyLines)
	if computeError != nil {
		return types.FileReport{}, false, &IOError{Op: opDecodeFile, Path: filePath, Err: computeError}
	}
	return types.FileReport{Name: fileName, Path: filePath, Metrics: fileMetrics}, true, nil
}

// resolveEntryMode returns the mode of the entry, following symbolic links.
// A dangling link keeps its symlink mode and is skipped as irregular.
func resolveEntryMode(directoryEntry fs.DirEntry, childPath string) (fs.FileMode, error) {
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return directoryEntry.Type(), nil
	}
	targetInfo, statError := os.Stat(childPath)
	if errors.Is(statError, fs.ErrNotExist) {
		return directoryEntry.Type(), nil
	}
	if statError != nil {
		return 0, &IOError{Op: opStat, Path: childPath, Err: fmt.Errorf("resolve symbolic link: %w", statError)}
	}
	return targetInfo.Mode(), nil
}

func (walker *Walker) logger() *zap.Logger {
	if walker.Logger == nil {
		return zap.NewNop()
	}
	return walker.Logger
}
