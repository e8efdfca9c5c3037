// Package cli provides the Cobra command structure for evergreen.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/evergreen/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root evergreen command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "evergreen",
		Short: "Render line-oriented markdown to HTML",
		Long: `evergreen renders a small, line-oriented markdown dialect to HTML.

It understands headings, paragraphs, images, nested lists, blockquotes,
horizontal rules, hard line breaks, inline links and named container
blocks. Each markdown file is rendered to an HTML file next to it, either
as a fragment or as a standalone page.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newRenderCommand())
	rootCmd.AddCommand(newConvertCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
