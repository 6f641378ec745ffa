// Package cli provides the command line interface.
package cli

import (
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/temirov/dumpo/internal/services/clipboard"
	"github.com/temirov/dumpo/internal/utils"
)

const (
	rootUse              = "dumpo"
	rootShortDescription = "Dump a repository into a paste-ready LLM prompt"
	rootLongDescription  = `dumpo walks a repository, keeps the files that pass the include and exclude
globs and the safety checks, and packs them into one Markdown document bounded
by a per-file and a total byte budget.
Use pack to build the document and init to write a default dumpo.toml.`
	versionTemplate = "dumpo version: {{.Version}}\n"
	defaultPath     = "."
	platformMacOS   = "darwin"
)

// Dependencies are the process-level collaborators of the commands.
type Dependencies struct {
	Stdout           io.Writer
	Stderr           io.Writer
	Copier           clipboard.Copier
	Platform         string
	WorkingDirectory string
}

// DefaultDependencies wires the commands to the real process environment.
func DefaultDependencies() Dependencies {
	workingDirectory, _ := os.Getwd()
	return Dependencies{
		Stdout:           os.Stdout,
		Stderr:           os.Stderr,
		Copier:           clipboard.NewService(),
		Platform:         runtime.GOOS,
		WorkingDirectory: workingDirectory,
	}
}

// Execute runs the dumpo application with the process arguments.
func Execute() error {
	rootCommand := NewRootCommand(DefaultDependencies())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the root Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Stdout == nil {
		dependencies.Stdout = io.Discard
	}
	if dependencies.Stderr == nil {
		dependencies.Stderr = io.Discard
	}

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Version:       utils.GetApplicationVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.SetOut(dependencies.Stdout)
	rootCommand.SetErr(dependencies.Stderr)
	rootCommand.AddCommand(
		createPackCommand(dependencies),
		createInitCommand(dependencies),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}
