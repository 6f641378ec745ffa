// Package config discovers, loads and merges dumpo.toml files and command
// line overrides into the effective configuration of a pack run.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

const configurationType = "toml"

// LoadOptions controls how the configuration file is discovered.
type LoadOptions struct {
	Root             string
	WorkingDirectory string
	ExplicitFilePath string
	Disabled         bool
}

// FileConfiguration mirrors the keys of dumpo.toml. Nil fields were not set.
type FileConfiguration struct {
	MaxFileBytes    *int64   `mapstructure:"max_file_bytes" toml:"max_file_bytes"`
	MaxTotalBytes   *int64   `mapstructure:"max_total_bytes" toml:"max_total_bytes"`
	MaxScanBytes    *int64   `mapstructure:"max_scan_bytes" toml:"max_scan_bytes"`
	IncludeHidden   *bool    `mapstructure:"include_hidden" toml:"include_hidden"`
	DefaultExcludes *bool    `mapstructure:"default_excludes" toml:"default_excludes"`
	Workers         *int     `mapstructure:"workers" toml:"workers"`
	Include         []string `mapstructure:"include" toml:"include"`
	Exclude         []string `mapstructure:"exclude" toml:"exclude"`
}

// LoadedConfiguration is a parsed configuration file and where it came from.
// Path is empty when no file was loaded.
type LoadedConfiguration struct {
	Path          string
	Configuration FileConfiguration
}

// LoadFileConfiguration loads the explicit configuration file when one is
// given, otherwise the dumpo.toml nearest to options.Root.
func LoadFileConfiguration(options LoadOptions) (LoadedConfiguration, error) {
	if options.Disabled {
		return LoadedConfiguration{}, nil
	}
	if options.ExplicitFilePath != "" {
		explicitPath, resolveErr := resolveExplicitPath(options.WorkingDirectory, options.ExplicitFilePath)
		if resolveErr != nil {
			return LoadedConfiguration{}, resolveErr
		}
		return loadConfigurationFromPath(explicitPath)
	}
	nearestPath, findErr := FindNearestConfigPath(options.Root)
	if findErr != nil {
		return LoadedConfiguration{}, findErr
	}
	if nearestPath == "" {
		return LoadedConfiguration{}, nil
	}
	return loadConfigurationFromPath(nearestPath)
}

// FindNearestConfigPath returns the dumpo.toml in root or its closest
// ancestor, or an empty string when there is none.
func FindNearestConfigPath(root string) (string, error) {
	if root == "" {
		root = "."
	}
	directory, absErr := filepath.Abs(root)
	if absErr != nil {
		return "", fmt.Errorf("%w: resolve %s: %w", types.ErrIO, root, absErr)
	}
	for {
		candidatePath := filepath.Join(directory, utils.ConfigFileName)
		if info, statErr := os.Stat(candidatePath); statErr == nil && info.Mode().IsRegular() {
			return candidatePath, nil
		}
		parentDirectory := filepath.Dir(directory)
		if parentDirectory == directory {
			return "", nil
		}
		directory = parentDirectory
	}
}

func resolveExplicitPath(workingDirectory, explicitPath string) (string, error) {
	if filepath.IsAbs(explicitPath) {
		return explicitPath, nil
	}
	if workingDirectory == "" {
		absolutePath, absErr := filepath.Abs(explicitPath)
		if absErr != nil {
			return "", fmt.Errorf("%w: resolve configuration path %s: %w", types.ErrConfig, explicitPath, absErr)
		}
		return absolutePath, nil
	}
	return filepath.Join(workingDirectory, explicitPath), nil
}

func loadConfigurationFromPath(path string) (LoadedConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		return LoadedConfiguration{}, fmt.Errorf("%w: stat configuration %s: %w", types.ErrConfig, path, statErr)
	}
	if info.IsDir() {
		return LoadedConfiguration{}, fmt.Errorf("%w: configuration path %s is a directory", types.ErrConfig, path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	reader.SetConfigType(configurationType)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return LoadedConfiguration{}, fmt.Errorf("%w: read configuration from %s: %w", types.ErrConfig, path, readErr)
	}
	var configuration FileConfiguration
	if decodeErr := reader.UnmarshalExact(&configuration); decodeErr != nil {
		return LoadedConfiguration{}, fmt.Errorf("%w: decode configuration from %s: %w", types.ErrConfig, path, decodeErr)
	}
	return LoadedConfiguration{Path: path, Configuration: configuration}, nil
}

// Overrides holds values given on the command line. Nil fields were not set.
// Include and Exclude are appended to the file lists.
type Overrides struct {
	MaxFileBytes    *int64
	MaxTotalBytes   *int64
	MaxScanBytes    *int64
	IncludeHidden   *bool
	DefaultExcludes *bool
	Workers         *int
	Include         []string
	Exclude         []string
}

// Resolve layers the file configuration and then the overrides on top of the
// built-in defaults.
func Resolve(file FileConfiguration, overrides Overrides) types.EffectiveConfig {
	effective := types.DefaultEffectiveConfig()
	applyFile(&effective, file)
	applyOverrides(&effective, overrides)
	effective.Include = utils.DeduplicatePatterns(append(append([]string{}, file.Include...), overrides.Include...))
	effective.Exclude = utils.DeduplicatePatterns(append(append([]string{}, file.Exclude...), overrides.Exclude...))
	return effective
}

func applyFile(effective *types.EffectiveConfig, file FileConfiguration) {
	assignInt64(&effective.MaxFileBytes, file.MaxFileBytes)
	assignInt64(&effective.MaxTotalBytes, file.MaxTotalBytes)
	assignInt64(&effective.MaxScanBytes, file.MaxScanBytes)
	assignBool(&effective.IncludeHidden, file.IncludeHidden)
	assignBool(&effective.DefaultExcludes, file.DefaultExcludes)
	assignInt(&effective.Workers, file.Workers)
}

func applyOverrides(effective *types.EffectiveConfig, overrides Overrides) {
	assignInt64(&effective.MaxFileBytes, overrides.MaxFileBytes)
	assignInt64(&effective.MaxTotalBytes, overrides.MaxTotalBytes)
	assignInt64(&effective.MaxScanBytes, overrides.MaxScanBytes)
	assignBool(&effective.IncludeHidden, overrides.IncludeHidden)
	assignBool(&effective.DefaultExcludes, overrides.DefaultExcludes)
	assignInt(&effective.Workers, overrides.Workers)
}

func assignInt64(target *int64, value *int64) {
	if value != nil {
		*target = *value
	}
}

func assignInt(target *int, value *int) {
	if value != nil {
		*target = *value
	}
}

func assignBool(target *bool, value *bool) {
	if value != nil {
		*target = *value
	}
}
