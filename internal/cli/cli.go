// Package cli provides the command line interface.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/temirov/lc/internal/aggregate"
	"github.com/temirov/lc/internal/config"
	"github.com/temirov/lc/internal/ignore"
	"github.com/temirov/lc/internal/output"
	"github.com/temirov/lc/internal/services/clipboard"
	"github.com/temirov/lc/internal/types"
	"github.com/temirov/lc/internal/utils"
	"github.com/temirov/lc/internal/walker"
)

const (
	skipEmptyFlagName   = "skip-empty"
	recursiveFlagName   = "recursive"
	charactersFlagName  = "count-chars"
	wordsFlagName       = "words"
	ignoreFlagName      = "ignore"
	ignoreFileFlagName  = "ignore-file"
	gitignoreFlagName   = "gitignore"
	skipBinaryFlagName  = "skip-binary"
	aggregateFlagName   = "aggregate"
	formatFlagName      = "format"
	colorFlagName       = "color"
	copyFlagName        = "copy"
	configFlagName      = "config"
	verboseFlagName     = "verbose"
	versionFlagName     = "version"
	globalFlagName      = "global"
	forceFlagName       = "force"
	skipEmptyShorthand  = "s"
	recursiveShorthand  = "r"
	charactersShorthand = "c"
	wordsShorthand      = "w"
	ignoreShorthand     = "i"

	skipEmptyFlagDescription  = "do not count empty or whitespace-only lines"
	recursiveFlagDescription  = "descend into subdirectories"
	charactersFlagDescription = "report character counts"
	wordsFlagDescription      = "report word counts"
	ignoreFlagDescription     = "entry name to ignore at every level (repeatable)"
	ignoreFileFlagDescription = "name of the per-directory ignore list"
	gitignoreFlagDescription  = "also honour .gitignore rules"
	skipBinaryFlagDescription = "skip files that are not UTF-8 text instead of failing"
	aggregateFlagDescription  = "directory totals policy: deep or shallow"
	formatFlagDescription     = "output format: raw, json, or xml"
	colorFlagDescription      = "colorize raw output: auto, always, or never"
	copyFlagDescription       = "copy the rendered report to the clipboard"
	configFlagDescription     = "path to a configuration file"
	verboseFlagDescription    = "log skipped entries"
	versionFlagDescription    = "display application version"
	globalFlagDescription     = "write the global configuration instead of the local one"
	forceFlagDescription      = "overwrite an existing configuration file"

	versionTemplate      = "lc version: %s\n"
	initSuccessTemplate  = "Configuration written to %s\n"
	defaultPath          = "."
	rootUse              = "lc [paths...]"
	rootShortDescription = "count lines, characters, and words"
	rootLongDescription  = `lc counts the lines of files and directory trees.
Each directory honours the names listed in its own ignore file (.lcignore by default).
Use -c and -w to add character and word counts, -r to descend into subdirectories,
and --format to select raw, json, or xml output.`
	rootUsageExample = `  # Count a source tree, skipping blank lines
  lc -rs ./internal

  # Words and characters for two files in JSON
  lc -cw --format json README.md DESIGN.md

  # Ignore vendor everywhere and report only direct files per directory
  lc -r -i vendor --aggregate shallow .`
	initUse              = "init"
	initShortDescription = "write a default configuration file"

	invalidColorMessage = "invalid color value '%s'"
	// errorAbsolutePathFormat reports failure to resolve an absolute path.
	errorAbsolutePathFormat = "abs failed for '%s': %w"
	// errorPathMissingFormat reports a missing path.
	errorPathMissingFormat = "path '%s' does not exist"
	// errorStatFormat reports failure to retrieve file statistics.
	errorStatFormat = "stat failed for '%s': %w"
	// errorNoValidPaths indicates that all paths are invalid.
	errorNoValidPaths = "no valid paths"
	// errorMeasureFormat wraps the failure of one target.
	errorMeasureFormat = "measure %s: %w"
	// errorWriteOutputFormat reports a failure writing the rendered report.
	errorWriteOutputFormat = "write report: %w"
)

// Dependencies are the collaborators of the command tree.
type Dependencies struct {
	Stdout    io.Writer
	Clipboard clipboard.Copier
	NewLogger func(verbose bool) (*zap.Logger, error)
	// WorkingDirectory anchors the local configuration file; empty means the
	// process working directory.
	WorkingDirectory string
}

func (dependencies Dependencies) withDefaults() Dependencies {
	if dependencies.Stdout == nil {
		dependencies.Stdout = os.Stdout
	}
	if dependencies.Clipboard == nil {
		dependencies.Clipboard = clipboard.NewService()
	}
	if dependencies.NewLogger == nil {
		dependencies.NewLogger = utils.NewApplicationLogger
	}
	return dependencies
}

// Execute runs the lc application.
func Execute(ctx context.Context) error {
	rootCommand := NewRootCommand(Dependencies{})
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.ExecuteContext(ctx)
}

// countOptions stores the raw flag values of the root command.
type countOptions struct {
	skipEmpty      bool
	recursive      bool
	characters     bool
	words          bool
	ignoreNames    []string
	ignoreFileName string
	useGitignore   bool
	skipBinary     bool
	aggregation    string
	format         string
	color          string
	copyOutput     bool
	configPath     string
	verbose        bool
	showVersion    bool
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	dependencies = dependencies.withDefaults()
	var options countOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if options.showVersion {
				_, err := fmt.Fprintf(dependencies.Stdout, versionTemplate, utils.GetApplicationVersion())
				return err
			}
			configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{
				WorkingDirectory: dependencies.WorkingDirectory,
				ExplicitFilePath: options.configPath,
			})
			if loadError != nil {
				return loadError
			}
			settings, settingsError := resolveSettings(command.Flags(), options, configuration)
			if settingsError != nil {
				return settingsError
			}
			logger, loggerError := dependencies.NewLogger(settings.verbose)
			if loggerError != nil {
				return fmt.Errorf(utils.LoggerInitializationFailedMessageFormat, loggerError)
			}
			defer func() { _ = logger.Sync() }()
			if len(arguments) == 0 {
				arguments = []string{defaultPath}
			}
			return runCount(command.Context(), dependencies, logger, settings, arguments)
		},
	}

	flags := rootCommand.Flags()
	registerBooleanFlag(flags, &options.skipEmpty, skipEmptyFlagName, skipEmptyShorthand, false, skipEmptyFlagDescription)
	registerBooleanFlag(flags, &options.recursive, recursiveFlagName, recursiveShorthand, false, recursiveFlagDescription)
	registerBooleanFlag(flags, &options.characters, charactersFlagName, charactersShorthand, false, charactersFlagDescription)
	registerBooleanFlag(flags, &options.words, wordsFlagName, wordsShorthand, false, wordsFlagDescription)
	flags.StringArrayVarP(&options.ignoreNames, ignoreFlagName, ignoreShorthand, nil, ignoreFlagDescription)
	flags.StringVar(&options.ignoreFileName, ignoreFileFlagName, utils.IgnoreFileName, ignoreFileFlagDescription)
	registerBooleanFlag(flags, &options.useGitignore, gitignoreFlagName, "", false, gitignoreFlagDescription)
	registerBooleanFlag(flags, &options.skipBinary, skipBinaryFlagName, "", false, skipBinaryFlagDescription)
	flags.StringVar(&options.aggregation, aggregateFlagName, types.AggregateDeep, aggregateFlagDescription)
	flags.StringVar(&options.format, formatFlagName, types.FormatRaw, formatFlagDescription)
	flags.StringVar(&options.color, colorFlagName, types.ColorAuto, colorFlagDescription)
	registerBooleanFlag(flags, &options.copyOutput, copyFlagName, "", false, copyFlagDescription)
	flags.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flags, &options.verbose, verboseFlagName, "", false, verboseFlagDescription)
	flags.BoolVar(&options.showVersion, versionFlagName, false, versionFlagDescription)

	rootCommand.AddCommand(newInitCommand(dependencies))
	return rootCommand
}

func newInitCommand(dependencies Dependencies) *cobra.Command {
	var global bool
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if global {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{
				Target:           target,
				Force:            force,
				WorkingDirectory: dependencies.WorkingDirectory,
			})
			if initError != nil {
				return initError
			}
			_, err := fmt.Fprintf(dependencies.Stdout, initSuccessTemplate, writtenPath)
			return err
		},
	}
	registerBooleanFlag(initCommand.Flags(), &global, globalFlagName, "", false, globalFlagDescription)
	registerBooleanFlag(initCommand.Flags(), &force, forceFlagName, "", false, forceFlagDescription)
	return initCommand
}

// countSettings is the effective configuration of one run: explicit flags,
// then configuration files, then flag defaults.
type countSettings struct {
	skipEmpty      bool
	recursive      bool
	selection      types.MetricSelection
	ignoreNames    ignore.Set
	ignoreFileName string
	useGitignore   bool
	skipBinary     bool
	aggregation    string
	reducer        aggregate.Reducer
	format         string
	color          string
	copyOutput     bool
	verbose        bool
}

func resolveSettings(flags *pflag.FlagSet, options countOptions, configuration config.ApplicationConfiguration) (countSettings, error) {
	settings := countSettings{
		skipEmpty: resolveBool(flags, skipEmptyFlagName, options.skipEmpty, configuration.SkipEmpty),
		recursive: resolveBool(flags, recursiveFlagName, options.recursive, configuration.Recursive),
		selection: types.MetricSelection{
			Characters: resolveBool(flags, charactersFlagName, options.characters, configuration.Characters),
			Words:      resolveBool(flags, wordsFlagName, options.words, configuration.Words),
		},
		ignoreNames:    ignore.NewSet(utils.NormalizeNames(append(append([]string{}, configuration.Ignore...), options.ignoreNames...))...),
		ignoreFileName: strings.TrimSpace(resolveString(flags, ignoreFileFlagName, options.ignoreFileName, configuration.IgnoreFileName)),
		useGitignore:   resolveBool(flags, gitignoreFlagName, options.useGitignore, configuration.UseGitignore),
		skipBinary:     resolveBool(flags, skipBinaryFlagName, options.skipBinary, configuration.SkipBinary),
		aggregation:    strings.ToLower(strings.TrimSpace(resolveString(flags, aggregateFlagName, options.aggregation, configuration.Aggregate))),
		format:         strings.ToLower(strings.TrimSpace(resolveString(flags, formatFlagName, options.format, configuration.Format))),
		color:          strings.ToLower(strings.TrimSpace(resolveString(flags, colorFlagName, options.color, configuration.Color))),
		copyOutput:     resolveBool(flags, copyFlagName, options.copyOutput, configuration.Copy),
		verbose:        options.verbose,
	}
	if settings.ignoreFileName == "" {
		settings.ignoreFileName = utils.IgnoreFileName
	}
	reducer, reducerError := aggregate.ReducerByName(settings.aggregation)
	if reducerError != nil {
		return countSettings{}, reducerError
	}
	settings.reducer = reducer
	if settings.aggregation == "" {
		settings.aggregation = types.AggregateDeep
	}
	switch settings.color {
	case types.ColorAuto, types.ColorAlways, types.ColorNever:
	default:
		return countSettings{}, fmt.Errorf(invalidColorMessage, settings.color)
	}
	return settings, nil
}

func resolveBool(flags *pflag.FlagSet, name string, flagValue bool, configured *bool) bool {
	if flags.Changed(name) {
		return flagValue
	}
	return config.BoolOrDefault(configured, flagValue)
}

func resolveString(flags *pflag.FlagSet, name string, flagValue string, configured string) string {
	if flags.Changed(name) {
		return flagValue
	}
	return config.StringOrDefault(configured, flagValue)
}

// runCount measures every target and writes the rendered report only when all
// of them succeeded.
func runCount(ctx context.Context, dependencies Dependencies, logger *zap.Logger, settings countSettings, paths []string) error {
	validatedPaths, pathValidationError := resolveAndValidatePaths(paths)
	if pathValidationError != nil {
		return pathValidationError
	}

	var displayBuffer bytes.Buffer
	var clipboardBuffer bytes.Buffer
	styled := settings.format == types.FormatRaw && output.ShouldUseColor(settings.color, dependencies.Stdout)
	renderOptions := output.Options{
		Selection:       settings.selection,
		Reducer:         settings.reducer,
		AggregationName: settings.aggregation,
		Styled:          styled,
	}
	displayRenderer, rendererError := output.NewRenderer(settings.format, &displayBuffer, renderOptions)
	if rendererError != nil {
		return rendererError
	}
	renderers := []output.Renderer{displayRenderer}
	if settings.copyOutput && styled {
		plainOptions := renderOptions
		plainOptions.Styled = false
		plainRenderer, plainRendererError := output.NewRenderer(settings.format, &clipboardBuffer, plainOptions)
		if plainRendererError != nil {
			return plainRendererError
		}
		renderers = append(renderers, plainRenderer)
	}

	countWalker := &walker.Walker{
		SkipEmptyLines: settings.skipEmpty,
		Recursive:      settings.recursive,
		SkipBinary:     settings.skipBinary,
		ExtraIgnored:   settings.ignoreNames,
		Loader: config.DirectoryIgnoreLoader{
			IgnoreFileName: settings.ignoreFileName,
			UseGitignore:   settings.useGitignore,
		},
		Logger: logger,
	}

	producer := func(streamCtx context.Context, reports chan<- types.TargetReport) error {
		for _, target := range validatedPaths {
			report, measureError := measureTarget(streamCtx, countWalker, target, settings.skipEmpty)
			if measureError != nil {
				return fmt.Errorf(errorMeasureFormat, target.InputPath, measureError)
			}
			select {
			case reports <- report:
			case <-streamCtx.Done():
				return streamCtx.Err()
			}
		}
		return nil
	}

	consumer := func(report types.TargetReport) error {
		for _, renderer := range renderers {
			if err := renderer.Handle(report); err != nil {
				return err
			}
		}
		return nil
	}

	if dispatchError := dispatchReports(ctx, producer, consumer); dispatchError != nil {
		return dispatchError
	}
	for _, renderer := range renderers {
		if flushError := renderer.Flush(); flushError != nil {
			return flushError
		}
	}

	rendered := displayBuffer.String()
	if _, writeError := io.WriteString(dependencies.Stdout, rendered); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, writeError)
	}
	if !settings.copyOutput {
		return nil
	}
	if len(renderers) > 1 {
		rendered = clipboardBuffer.String()
	}
	return dependencies.Clipboard.Copy(rendered)
}

func measureTarget(ctx context.Context, countWalker *walker.Walker, target types.ValidatedPath, skipEmpty bool) (types.TargetReport, error) {
	if !target.IsDir {
		fileReport, measureError := walker.MeasureFile(target.AbsolutePath, skipEmpty)
		if measureError != nil {
			return types.TargetReport{}, measureError
		}
		return types.TargetReport{File: &fileReport}, nil
	}
	directoryReport, walkError := countWalker.Walk(ctx, target.InputPath)
	if walkError != nil {
		return types.TargetReport{}, walkError
	}
	return types.TargetReport{Directory: &directoryReport}, nil
}

func dispatchReports(
	ctx context.Context,
	produce func(context.Context, chan<- types.TargetReport) error,
	consume func(types.TargetReport) error,
) error {
	if ctx == nil {
		ctx = context.Background()
	}
	group, streamCtx := errgroup.WithContext(ctx)
	reports := make(chan types.TargetReport)

	group.Go(func() error {
		defer close(reports)
		return produce(streamCtx, reports)
	})

	group.Go(func() error {
		for {
			select {
			case <-streamCtx.Done():
				return streamCtx.Err()
			case report, ok := <-reports:
				if !ok {
					return nil
				}
				if err := consume(report); err != nil {
					return err
				}
			}
		}
	})

	return group.Wait()
}

// resolveAndValidatePaths converts input paths to absolute form and validates their existence.
func resolveAndValidatePaths(inputs []string) ([]types.ValidatedPath, error) {
	seen := make(map[string]struct{})
	var result []types.ValidatedPath
	for _, inputPath := range inputs {
		absolutePath, absolutePathError := filepath.Abs(inputPath)
		if absolutePathError != nil {
			return nil, fmt.Errorf(errorAbsolutePathFormat, inputPath, absolutePathError)
		}
		cleanPath := filepath.Clean(absolutePath)
		if _, ok := seen[cleanPath]; ok {
			continue
		}
		info, fileStatusError := os.Stat(cleanPath)
		if fileStatusError != nil {
			if os.IsNotExist(fileStatusError) {
				return nil, fmt.Errorf(errorPathMissingFormat, inputPath)
			}
			return nil, fmt.Errorf(errorStatFormat, inputPath, fileStatusError)
		}
		seen[cleanPath] = struct{}{}
		result = append(result, types.ValidatedPath{InputPath: inputPath, AbsolutePath: cleanPath, IsDir: info.IsDir()})
	}
	if len(result) == 0 {
		return nil, fmt.Errorf(errorNoValidPaths)
	}
	return result, nil
}
