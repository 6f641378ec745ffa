package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

const configurationHeader = "# dumpo configuration. Command line flags override these values.\n# workers = 0 uses one reader per CPU.\n\n"

// InitOptions controls how configuration initialization behaves.
type InitOptions struct {
	Directory string
	Force     bool
}

// DefaultFileConfiguration returns every key of dumpo.toml set to its default.
func DefaultFileConfiguration() FileConfiguration {
	defaults := types.DefaultEffectiveConfig()
	return FileConfiguration{
		MaxFileBytes:    &defaults.MaxFileBytes,
		MaxTotalBytes:   &defaults.MaxTotalBytes,
		MaxScanBytes:    &defaults.MaxScanBytes,
		IncludeHidden:   &defaults.IncludeHidden,
		DefaultExcludes: &defaults.DefaultExcludes,
		Workers:         &defaults.Workers,
		Include:         []string{},
		Exclude:         []string{},
	}
}

// InitializeConfiguration writes the default dumpo.toml into options.Directory
// and returns its path. An existing file is only replaced with Force.
func InitializeConfiguration(options InitOptions) (string, error) {
	directory := options.Directory
	if directory == "" {
		current, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("%w: determine working directory for configuration: %w", types.ErrIO, err)
		}
		directory = current
	}
	destinationPath := filepath.Join(directory, utils.ConfigFileName)

	if _, err := os.Stat(destinationPath); err == nil {
		if !options.Force {
			return "", fmt.Errorf("%w: configuration file already exists at %s", types.ErrConfig, destinationPath)
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("%w: inspect configuration path %s: %w", types.ErrIO, destinationPath, err)
	}

	var encoded bytes.Buffer
	encoded.WriteString(configurationHeader)
	if err := toml.NewEncoder(&encoded).Encode(DefaultFileConfiguration()); err != nil {
		return "", fmt.Errorf("%w: encode default configuration: %w", types.ErrConfig, err)
	}
	if err := os.WriteFile(destinationPath, encoded.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("%w: write configuration to %s: %w", types.ErrIO, destinationPath, err)
	}
	return destinationPath, nil
}
