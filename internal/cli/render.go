package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/evergreen/internal/logging"
	"github.com/yaklabco/evergreen/pkg/config"
	"github.com/yaklabco/evergreen/pkg/reporter"
	"github.com/yaklabco/evergreen/pkg/runner"
)

// ErrRenderFailed is returned when at least one file failed to render.
var ErrRenderFailed = errors.New("render failed")

type renderFlags struct {
	format          string
	ignore          []string
	extension       string
	standalone      bool
	stylesheet      string
	compact         bool
	includeVendored bool
	followSymlinks  bool
}

func newRenderCommand() *cobra.Command {
	cfg := &config.Config{}
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, cfg, flags)
		},
	}

	addRenderFlags(cmd, cfg, flags)

	return cmd
}

const renderLongDescription = `Render markdown files to HTML.

By default, renders all .md and .markdown files in the current directory
and subdirectories, writing each output next to its source. Outputs whose
content is already current are left untouched.

Examples:
  evergreen render                     # Render current directory
  evergreen render docs/               # Render docs directory
  evergreen render README.md           # Render a single file
  evergreen render --dry-run           # Show what would be written
  evergreen render --standalone=false  # Write HTML fragments
  evergreen render --format json       # Output results as JSON`

func runRender(cmd *cobra.Command, args []string, cliCfg *config.Config, flags *renderFlags) error {
	// Only values explicitly provided via CLI flags reach cliCfg.
	if cmd.Flags().Changed("format") {
		cliCfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("ignore") {
		cliCfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("ext") {
		cliCfg.Output.Extension = flags.extension
	}
	if cmd.Flags().Changed("standalone") {
		standalone := flags.standalone
		cliCfg.Output.Standalone = &standalone
	}
	if cmd.Flags().Changed("stylesheet") {
		cliCfg.Output.Stylesheet = flags.stylesheet
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.cfg
	logger := loaded.logger

	runOpts := runner.Options{
		Paths:           args,
		WorkingDir:      loaded.workDir,
		Extensions:      runner.DefaultExtensions(),
		ExcludeGlobs:    cfg.Ignore,
		IncludeVendored: flags.includeVendored,
		FollowSymlinks:  flags.followSymlinks,
		Jobs:            cfg.Jobs,
		Config:          cfg,
	}

	logger.Debug("starting render run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.NewFromConfig(cfg).Run(loaded.ctx, runOpts)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	logger.Debug("render run complete",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesRendered, result.Stats.FilesRendered,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
		logging.FieldFilesUnchanged, result.Stats.FilesUnchanged,
		logging.FieldFilesFailed, result.Stats.FilesFailed,
	)

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		ShowSummary: true,
		Compact:     flags.compact,
		WorkingDir:  loaded.workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(loaded.ctx, result); err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailed
	}

	return nil
}

func addRenderFlags(cmd *cobra.Command, cfg *config.Config, flags *renderFlags) {
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "render without writing output files")
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, summary")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.extension, "ext", config.DefaultExtension, "output file extension")
	cmd.Flags().BoolVar(&flags.standalone, "standalone", true, "write standalone HTML pages instead of fragments")
	cmd.Flags().StringVar(&flags.stylesheet, "stylesheet", "", "stylesheet href for standalone pages")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	cmd.Flags().BoolVar(&flags.includeVendored, "include-vendored", false, "also render files in vendored directories")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "traverse symlinked directories")
}
