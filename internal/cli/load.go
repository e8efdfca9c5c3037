package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/evergreen/internal/configloader"
	"github.com/yaklabco/evergreen/internal/logging"
	"github.com/yaklabco/evergreen/pkg/config"
)

// loadedConfig is the resolved configuration for one command invocation.
type loadedConfig struct {
	cfg     *config.Config
	workDir string
	ctx     context.Context
	logger  *log.Logger
}

// loadConfig resolves configuration for cmd with cliCfg applied on top.
// The returned context carries the default logger.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*loadedConfig, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldMarker, cfg.Container.Marker,
		logging.FieldTag, cfg.Container.Tag,
		logging.FieldStandalone, cfg.Output.IsStandalone(),
		logging.FieldFlavor, cfg.Reference.Flavor,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
	)

	return &loadedConfig{cfg: cfg, workDir: workDir, ctx: ctx, logger: logger}, nil
}

// colorMode returns the value of the persistent --color flag.
func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}
