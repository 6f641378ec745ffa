package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/dumpo/internal/config"
	"github.com/temirov/dumpo/internal/types"
)

const (
	initUse              = types.CommandInit + " [path]"
	initShortDescription = "write a default dumpo.toml"
	initLongDescription  = `Write a dumpo.toml holding every setting at its default value into path
(default "."). An existing file is kept unless --force is given.`
	forceFlagName          = "force"
	forceFlagDescription   = "overwrite an existing dumpo.toml"
	initializedPathMessage = "wrote %s\n"
)

func createInitCommand(dependencies Dependencies) *cobra.Command {
	var force bool
	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			directory := defaultPath
			if len(arguments) == 1 {
				directory = arguments[0]
			}
			if !filepath.IsAbs(directory) && dependencies.WorkingDirectory != "" {
				directory = filepath.Join(dependencies.WorkingDirectory, directory)
			}
			path, initErr := config.InitializeConfiguration(config.InitOptions{Directory: directory, Force: force})
			if initErr != nil {
				return initErr
			}
			_, writeErr := fmt.Fprintf(command.OutOrStdout(), initializedPathMessage, path)
			return writeErr
		},
	}
	initCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	return initCommand
}
