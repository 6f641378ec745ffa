package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

func writeConfigFile(t *testing.T, directory, content string) string {
	t.Helper()
	if err := os.MkdirAll(directory, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", directory, err)
	}
	path := filepath.Join(directory, utils.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func int64Pointer(value int64) *int64 {
	return &value
}

func boolPointer(value bool) *bool {
	return &value
}

func TestLoadFileConfigurationDiscovery(t *testing.T) {
	repository := t.TempDir()
	writeConfigFile(t, repository, "max_total_bytes = 111\ninclude = [\"src/**\"]\n")
	nestedDirectory := filepath.Join(repository, "sub", "dir")
	nestedConfigPath := writeConfigFile(t, filepath.Join(repository, "sub"), "max_total_bytes = 222\n")
	if err := os.MkdirAll(nestedDirectory, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	explicitPath := filepath.Join(t.TempDir(), "custom.toml")
	if err := os.WriteFile(explicitPath, []byte("max_file_bytes = 7\n"), 0o644); err != nil {
		t.Fatalf("write explicit config: %v", err)
	}

	testCases := []struct {
		name          string
		options       LoadOptions
		expectPath    string
		expectTotal   *int64
		expectFile    *int64
		expectInclude []string
	}{
		{
			name:          "root_config",
			options:       LoadOptions{Root: repository},
			expectPath:    filepath.Join(repository, utils.ConfigFileName),
			expectTotal:   int64Pointer(111),
			expectInclude: []string{"src/**"},
		},
		{
			name:        "closest_ancestor_wins",
			options:     LoadOptions{Root: nestedDirectory},
			expectPath:  nestedConfigPath,
			expectTotal: int64Pointer(222),
		},
		{
			name:       "explicit_replaces_discovery",
			options:    LoadOptions{Root: repository, ExplicitFilePath: explicitPath},
			expectPath: explicitPath,
			expectFile: int64Pointer(7),
		},
		{
			name:       "explicit_relative_to_working_directory",
			options:    LoadOptions{Root: repository, WorkingDirectory: filepath.Dir(explicitPath), ExplicitFilePath: "custom.toml"},
			expectPath: explicitPath,
			expectFile: int64Pointer(7),
		},
		{
			name:    "disabled",
			options: LoadOptions{Root: repository, ExplicitFilePath: explicitPath, Disabled: true},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			loaded, err := LoadFileConfiguration(testCase.options)
			if err != nil {
				t.Fatalf("LoadFileConfiguration error: %v", err)
			}
			if loaded.Path != testCase.expectPath {
				t.Fatalf("expected path %q, got %q", testCase.expectPath, loaded.Path)
			}
			if !reflect.DeepEqual(loaded.Configuration.MaxTotalBytes, testCase.expectTotal) {
				t.Fatalf("unexpected max_total_bytes %v", loaded.Configuration.MaxTotalBytes)
			}
			if !reflect.DeepEqual(loaded.Configuration.MaxFileBytes, testCase.expectFile) {
				t.Fatalf("unexpected max_file_bytes %v", loaded.Configuration.MaxFileBytes)
			}
			if !reflect.DeepEqual(loaded.Configuration.Include, testCase.expectInclude) {
				t.Fatalf("unexpected include %v", loaded.Configuration.Include)
			}
		})
	}
}

func TestLoadFileConfigurationRejectsBadFiles(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "unknown_key", content: "max_file_bytes = 10\nformat = \"json\"\n"},
		{name: "malformed", content: "max_file_bytes = = 10\n"},
		{name: "wrong_type", content: "include_hidden = \"sometimes\"\n"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			repository := t.TempDir()
			writeConfigFile(t, repository, testCase.content)
			_, err := LoadFileConfiguration(LoadOptions{Root: repository})
			if !errors.Is(err, types.ErrConfig) {
				t.Fatalf("expected config error, got %v", err)
			}
		})
	}

	t.Run("missing_explicit", func(t *testing.T) {
		_, err := LoadFileConfiguration(LoadOptions{ExplicitFilePath: filepath.Join(t.TempDir(), "absent.toml")})
		if !errors.Is(err, types.ErrConfig) {
			t.Fatalf("expected config error, got %v", err)
		}
	})
}

func TestResolvePrecedence(t *testing.T) {
	file := FileConfiguration{
		MaxFileBytes:  int64Pointer(100),
		MaxTotalBytes: int64Pointer(1000),
		IncludeHidden: boolPointer(true),
		Include:       []string{"src/**", "docs/"},
		Exclude:       []string{"**/*.lock"},
	}
	overrides := Overrides{
		MaxTotalBytes:   int64Pointer(50),
		DefaultExcludes: boolPointer(false),
		Include:         []string{"docs/", "cmd/**"},
		Exclude:         []string{" "},
	}

	effective := Resolve(file, overrides)
	if effective.MaxFileBytes != 100 {
		t.Fatalf("file value should apply, got %d", effective.MaxFileBytes)
	}
	if effective.MaxTotalBytes != 50 {
		t.Fatalf("flag value should win, got %d", effective.MaxTotalBytes)
	}
	if effective.MaxScanBytes != types.DefaultMaxScanBytes {
		t.Fatalf("default should remain, got %d", effective.MaxScanBytes)
	}
	if !effective.IncludeHidden || effective.DefaultExcludes {
		t.Fatalf("unexpected booleans hidden=%v defaults=%v", effective.IncludeHidden, effective.DefaultExcludes)
	}
	if expected := []string{"src/**", "docs/", "cmd/**"}; !reflect.DeepEqual(effective.Include, expected) {
		t.Fatalf("expected include %v, got %v", expected, effective.Include)
	}
	if expected := []string{"**/*.lock"}; !reflect.DeepEqual(effective.Exclude, expected) {
		t.Fatalf("expected exclude %v, got %v", expected, effective.Exclude)
	}
}

func TestResolveWithoutSources(t *testing.T) {
	effective := Resolve(FileConfiguration{}, Overrides{})
	defaults := types.DefaultEffectiveConfig()
	if effective.MaxFileBytes != defaults.MaxFileBytes || effective.MaxTotalBytes != defaults.MaxTotalBytes {
		t.Fatalf("expected defaults, got %+v", effective)
	}
	if len(effective.Include) != 0 || len(effective.Exclude) != 0 {
		t.Fatalf("expected empty pattern lists, got %v %v", effective.Include, effective.Exclude)
	}
}
