package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/lc/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds defaults for the counting command. Unset
// pointer fields leave the built-in flag defaults in place.
type ApplicationConfiguration struct {
	SkipEmpty      *bool    `mapstructure:"skip_empty"`
	Recursive      *bool    `mapstructure:"recursive"`
	Characters     *bool    `mapstructure:"chars"`
	Words          *bool    `mapstructure:"words"`
	Ignore         []string `mapstructure:"ignore"`
	IgnoreFileName string   `mapstructure:"ignore_file"`
	UseGitignore   *bool    `mapstructure:"gitignore"`
	SkipBinary     *bool    `mapstructure:"skip_binary"`
	Aggregate      string   `mapstructure:"aggregate"`
	Format         string   `mapstructure:"format"`
	Color          string   `mapstructure:"color"`
	Copy           *bool    `mapstructure:"copy"`
}

// LoadApplicationConfiguration loads configuration from the global file and
// then the local (or explicit) file, the latter taking precedence.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	merged.Ignore = utils.NormalizeNames(merged.Ignore)

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.SkipEmpty = mergeBool(result.SkipEmpty, override.SkipEmpty)
	result.Recursive = mergeBool(result.Recursive, override.Recursive)
	result.Characters = mergeBool(result.Characters, override.Characters)
	result.Words = mergeBool(result.Words, override.Words)
	result.UseGitignore = mergeBool(result.UseGitignore, override.UseGitignore)
	result.SkipBinary = mergeBool(result.SkipBinary, override.SkipBinary)
	result.Copy = mergeBool(result.Copy, override.Copy)
	if len(override.Ignore) > 0 {
		result.Ignore = append([]string{}, override.Ignore...)
	}
	if override.IgnoreFileName != "" {
		result.IgnoreFileName = override.IgnoreFileName
	}
	if override.Aggregate != "" {
		result.Aggregate = override.Aggregate
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Color != "" {
		result.Color = override.Color
	}
	return result
}

func mergeBool(current *bool, override *bool) *bool {
	if override == nil {
		return current
	}
	cloned := *override
	return &cloned
}

// BoolOrDefault returns the dereferenced value or fallback when value is nil.
func BoolOrDefault(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

// StringOrDefault returns value unless it is empty.
func StringOrDefault(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
