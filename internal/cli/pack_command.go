package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/dumpo/internal/config"
	"github.com/temirov/dumpo/internal/pack"
	"github.com/temirov/dumpo/internal/services/clipboard"
	"github.com/temirov/dumpo/internal/types"
	"github.com/temirov/dumpo/internal/utils"
)

const (
	packUse              = types.CommandPack + " [path]"
	packShortDescription = "pack a repository into one Markdown document"
	packLongDescription  = `Walk the repository at path (default ".") and pack the admitted files into one
Markdown document. Files are visited depth-first in byte-wise name order and
earlier files claim the total budget first. Hidden, binary and secret-looking
files are never included, even when an include glob names them.`
	packUsageExample = `  # Pack the current repository to stdout
  dumpo pack --stdout

  # Only Go sources, without tests, capped at 100 KB
  dumpo pack --include '**/*.go' --exclude '**/*_test.go' --max-total-bytes 100000 ./service`

	maxFileBytesFlagName      = "max-file-bytes"
	maxTotalBytesFlagName     = "max-total-bytes"
	maxScanBytesFlagName      = "max-scan-bytes"
	workersFlagName           = "workers"
	includeHiddenFlagName     = "include-hidden"
	noIncludeHiddenFlagName   = "no-include-hidden"
	includeFlagName           = "include"
	excludeFlagName           = "exclude"
	configFlagName            = "config"
	noConfigFlagName          = "no-config"
	noDefaultExcludesFlagName = "no-default-excludes"
	stdoutFlagName            = "stdout"
	clipboardFlagName         = "clipboard"
	debugFlagName             = "debug"
	listSkippedFlagName       = "list-skipped"
	verboseFlagName           = "verbose"

	maxFileBytesFlagDescription      = "maximum bytes shown per file"
	maxTotalBytesFlagDescription     = "maximum content bytes in the whole pack"
	maxScanBytesFlagDescription      = "files larger than this are never read"
	workersFlagDescription           = "concurrent file readers (0 uses one per CPU)"
	includeHiddenFlagDescription     = "include dotfiles and dot-directories"
	noIncludeHiddenFlagDescription   = "exclude dotfiles and dot-directories"
	includeFlagDescription           = "include glob, repeatable; when given only matching files are packed"
	excludeFlagDescription           = "exclude glob, repeatable; wins over include"
	configFlagDescription            = "path to a dumpo.toml used instead of the nearest one"
	noConfigFlagDescription          = "ignore every dumpo.toml"
	noDefaultExcludesFlagDescription = "do not skip .git, target, node_modules, LICENSE, Makefile and Cargo.lock"
	stdoutFlagDescription            = "write the pack to stdout"
	clipboardFlagDescription         = "copy the pack to the clipboard"
	debugFlagDescription             = "also write the pack to " + utils.DebugFileName + " in the root"
	listSkippedFlagDescription       = "list skipped paths in the summary footer"
	verboseFlagDescription           = "log every file decision to stderr"

	noSinkSelectedMessage      = "no output selected; pass --stdout, --clipboard or --debug"
	clipboardMissingMessage    = "clipboard service is not configured"
	clipboardFallbackMessage   = "clipboard copy failed; writing the pack to stdout instead"
	configurationLoadedMessage = "configuration loaded"
	packCopiedMessage          = "pack copied to clipboard"
	debugWrittenMessage        = "debug pack written"
)

type packFlags struct {
	maxFileBytes      int64
	maxTotalBytes     int64
	maxScanBytes      int64
	workers           int
	includeHidden     bool
	noIncludeHidden   bool
	include           []string
	exclude           []string
	configPath        string
	noConfig          bool
	noDefaultExcludes bool
	stdout            bool
	clipboard         bool
	debug             bool
	listSkipped       bool
	verbose           bool
}

func createPackCommand(dependencies Dependencies) *cobra.Command {
	var flags packFlags
	defaultClipboard := dependencies.Platform == platformMacOS

	packCommand := &cobra.Command{
		Use:     packUse,
		Short:   packShortDescription,
		Long:    packLongDescription,
		Example: packUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			path := defaultPath
			if len(arguments) == 1 {
				path = arguments[0]
			}
			return runPackCommand(command.Context(), packCommandOptions{
				Path:             path,
				WorkingDirectory: dependencies.WorkingDirectory,
				Load: config.LoadOptions{
					WorkingDirectory: dependencies.WorkingDirectory,
					ExplicitFilePath: flags.configPath,
					Disabled:         flags.noConfig,
				},
				Overrides:   flags.overrides(command),
				Stdout:      flags.stdout,
				Clipboard:   flags.clipboard,
				Debug:       flags.debug,
				ListSkipped: flags.listSkipped,
				Verbose:     flags.verbose,
				Writer:      dependencies.Stdout,
				ErrorWriter: dependencies.Stderr,
				Copier:      dependencies.Copier,
			})
		},
	}

	flagSet := packCommand.Flags()
	flagSet.Int64Var(&flags.maxFileBytes, maxFileBytesFlagName, types.DefaultMaxFileBytes, maxFileBytesFlagDescription)
	flagSet.Int64Var(&flags.maxTotalBytes, maxTotalBytesFlagName, types.DefaultMaxTotalBytes, maxTotalBytesFlagDescription)
	flagSet.Int64Var(&flags.maxScanBytes, maxScanBytesFlagName, types.DefaultMaxScanBytes, maxScanBytesFlagDescription)
	flagSet.IntVar(&flags.workers, workersFlagName, 0, workersFlagDescription)
	registerBooleanFlag(flagSet, &flags.includeHidden, includeHiddenFlagName, false, includeHiddenFlagDescription)
	flagSet.BoolVar(&flags.noIncludeHidden, noIncludeHiddenFlagName, false, noIncludeHiddenFlagDescription)
	flagSet.StringArrayVar(&flags.include, includeFlagName, nil, includeFlagDescription)
	flagSet.StringArrayVar(&flags.exclude, excludeFlagName, nil, excludeFlagDescription)
	flagSet.StringVar(&flags.configPath, configFlagName, "", configFlagDescription)
	flagSet.BoolVar(&flags.noConfig, noConfigFlagName, false, noConfigFlagDescription)
	flagSet.BoolVar(&flags.noDefaultExcludes, noDefaultExcludesFlagName, false, noDefaultExcludesFlagDescription)
	registerBooleanFlag(flagSet, &flags.stdout, stdoutFlagName, !defaultClipboard, stdoutFlagDescription)
	registerBooleanFlag(flagSet, &flags.clipboard, clipboardFlagName, defaultClipboard, clipboardFlagDescription)
	flagSet.BoolVar(&flags.debug, debugFlagName, false, debugFlagDescription)
	registerBooleanFlag(flagSet, &flags.listSkipped, listSkippedFlagName, true, listSkippedFlagDescription)
	flagSet.BoolVar(&flags.verbose, verboseFlagName, false, verboseFlagDescription)
	packCommand.MarkFlagsMutuallyExclusive(includeHiddenFlagName, noIncludeHiddenFlagName)
	packCommand.MarkFlagsMutuallyExclusive(configFlagName, noConfigFlagName)
	return packCommand
}

// overrides keeps only the flags the user actually passed so that unset
// flags fall through to the configuration file.
func (flags packFlags) overrides(command *cobra.Command) config.Overrides {
	changed := command.Flags().Changed
	overrides := config.Overrides{Include: flags.include, Exclude: flags.exclude}
	if changed(maxFileBytesFlagName) {
		overrides.MaxFileBytes = &flags.maxFileBytes
	}
	if changed(maxTotalBytesFlagName) {
		overrides.MaxTotalBytes = &flags.maxTotalBytes
	}
	if changed(maxScanBytesFlagName) {
		overrides.MaxScanBytes = &flags.maxScanBytes
	}
	if changed(workersFlagName) {
		overrides.Workers = &flags.workers
	}
	if changed(includeHiddenFlagName) {
		overrides.IncludeHidden = &flags.includeHidden
	}
	if flags.noIncludeHidden {
		excludeHidden := false
		overrides.IncludeHidden = &excludeHidden
	}
	if flags.noDefaultExcludes {
		disabled := false
		overrides.DefaultExcludes = &disabled
	}
	return overrides
}

type packCommandOptions struct {
	Path             string
	WorkingDirectory string
	Load             config.LoadOptions
	Overrides        config.Overrides
	Stdout           bool
	Clipboard        bool
	Debug            bool
	ListSkipped      bool
	Verbose          bool
	Writer           io.Writer
	ErrorWriter      io.Writer
	Copier           clipboard.Copier
}

func runPackCommand(ctx context.Context, options packCommandOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	outputWriter := options.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	if !options.Stdout && !options.Clipboard && !options.Debug {
		return fmt.Errorf("%w: %s", types.ErrConfig, noSinkSelectedMessage)
	}
	logger := utils.NewDiagnosticLogger(options.ErrorWriter, options.Verbose)
	defer func() { _ = logger.Sync() }()

	rootPath := options.Path
	if !filepath.IsAbs(rootPath) && options.WorkingDirectory != "" {
		rootPath = filepath.Join(options.WorkingDirectory, rootPath)
	}
	canonicalRoot, rootErr := pack.CanonicalRoot(rootPath)
	if rootErr != nil {
		return rootErr
	}

	loadOptions := options.Load
	loadOptions.Root = canonicalRoot
	loaded, loadErr := config.LoadFileConfiguration(loadOptions)
	if loadErr != nil {
		return loadErr
	}
	logger.Debug(configurationLoadedMessage, zap.String("path", loaded.Path))
	effective := config.Resolve(loaded.Configuration, options.Overrides)

	result, runErr := pack.Run(ctx, canonicalRoot, effective, pack.Options{ListSkipped: options.ListSkipped, Logger: logger})
	if runErr != nil {
		return runErr
	}

	if options.Debug {
		debugPath := filepath.Join(result.Root, utils.DebugFileName)
		if writeErr := os.WriteFile(debugPath, []byte(result.Text), 0o644); writeErr != nil {
			return fmt.Errorf("%w: write %s: %w", types.ErrIO, debugPath, writeErr)
		}
		logger.Info(debugWrittenMessage, zap.String("path", debugPath))
	}

	return deliver(result.Text, options, outputWriter, logger)
}

// deliver sends text to the selected sinks. A failed clipboard copy still
// returns an error, but the text is written to stdout first when stdout was
// not selected, so it is never lost.
func deliver(text string, options packCommandOptions, outputWriter io.Writer, logger *zap.Logger) error {
	var copyErr error
	if options.Clipboard {
		copyErr = copyToClipboard(options.Copier, text)
		if copyErr == nil {
			logger.Info(packCopiedMessage, zap.Int("bytes", len(text)))
		}
	}
	if options.Stdout || copyErr != nil {
		if copyErr != nil && !options.Stdout {
			logger.Warn(clipboardFallbackMessage, zap.Error(copyErr))
		}
		if _, writeErr := io.WriteString(outputWriter, text); writeErr != nil {
			return errors.Join(copyErr, fmt.Errorf("%w: write stdout: %w", types.ErrOutput, writeErr))
		}
	}
	return copyErr
}

func copyToClipboard(copier clipboard.Copier, text string) error {
	if copier == nil {
		return fmt.Errorf("%w: %s", types.ErrOutput, clipboardMissingMessage)
	}
	if copyErr := copier.Copy(text); copyErr != nil {
		if errors.Is(copyErr, types.ErrOutput) {
			return copyErr
		}
		return fmt.Errorf("%w: copy to clipboard: %w", types.ErrOutput, copyErr)
	}
	return nil
}
