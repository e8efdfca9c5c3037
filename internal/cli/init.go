package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/evergreen/internal/configloader"
	"github.com/yaklabco/evergreen/internal/logging"
)

// defaultConfigFile is the file written by init.
const defaultConfigFile = ".evergreen.yml"

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new evergreen configuration file",
		Long: `Create a new .evergreen.yml configuration file in the current directory
with every option set to its default and documented.

If the file exists and standard input is a terminal, init asks before
overwriting it; otherwise --force is required.

Examples:
  evergreen init                     Create .evergreen.yml
  evergreen init --force             Overwrite an existing file
  evergreen init --output site.yml   Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", defaultConfigFile, "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.NewWithWriter(cmd.OutOrStdout(), "info")

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, statErr := os.Stat(absPath)
	exists := statErr == nil

	force := flags.force
	if exists && !force {
		if !configloader.IsInteractive() {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}

		ok, err := configloader.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
			fmt.Sprintf("%s already exists. Overwrite?", flags.output), false)
		if err != nil {
			return err
		}
		if !ok {
			logger.Info("left existing configuration file unchanged", logging.FieldPath, flags.output)
			return nil
		}
		force = true
	}

	if exists {
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	if err := configloader.WriteDefaultConfig(absPath, force); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("customize your configuration by editing the file")

	return nil
}
