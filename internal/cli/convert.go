package cli

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/evergreen/internal/logging"
	"github.com/yaklabco/evergreen/pkg/config"
	"github.com/yaklabco/evergreen/pkg/converter"
	"github.com/yaklabco/evergreen/pkg/document"
	"github.com/yaklabco/evergreen/pkg/processor"
	"github.com/yaklabco/evergreen/pkg/reference"
)

// stdinArg names standard input as the document source.
const stdinArg = "-"

type convertFlags struct {
	tree       bool
	page       bool
	compare    bool
	flavor     string
	title      string
	stylesheet string
}

func newConvertCommand() *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert one markdown document and print the result",
		Long: `Convert one markdown document and print the HTML to standard output.

The document is read from the named file, or from standard input when the
argument is "-" or omitted. Nothing is written to disk.

Examples:
  evergreen convert README.md           # Print the HTML fragment
  cat notes.md | evergreen convert      # Read from standard input
  evergreen convert --page README.md    # Print a standalone page
  evergreen convert --tree README.md    # Print the parsed document tree
  evergreen convert --compare README.md # Also print the goldmark rendering`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.tree, "tree", false, "print the document tree as JSON instead of HTML")
	cmd.Flags().BoolVar(&flags.page, "page", false, "print a standalone HTML page")
	cmd.Flags().BoolVar(&flags.compare, "compare", false, "append the goldmark reference rendering")
	cmd.Flags().StringVar(&flags.flavor, "flavor", reference.FlavorCommonMark,
		"reference flavor for --compare: commonmark, gfm")
	cmd.Flags().StringVar(&flags.title, "title", "", "page title (default: first heading)")
	cmd.Flags().StringVar(&flags.stylesheet, "stylesheet", "", "stylesheet href for --page")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, flags *convertFlags) error {
	cliCfg := &config.Config{}
	if cmd.Flags().Changed("flavor") {
		cliCfg.Reference.Flavor = flags.flavor
	}
	if cmd.Flags().Changed("stylesheet") {
		cliCfg.Output.Stylesheet = flags.stylesheet
	}

	loaded, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}
	cfg := loaded.cfg

	src, name, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	proc := processor.New(processor.Options{ContainerMarker: cfg.Container.Marker})
	nodes := proc.ParseText(string(src))
	loaded.logger.Debug("parsed document",
		logging.FieldPath, name,
		logging.FieldLines, len(processor.SplitLines(string(src))),
		logging.FieldBlocks, len(nodes),
	)

	var out bytes.Buffer
	if err := writeConverted(&out, nodes, cfg, flags); err != nil {
		return err
	}

	if flags.compare {
		ref := reference.New(cfg.Reference.Flavor)
		rendered, err := ref.Render(loaded.ctx, src)
		if err != nil {
			return fmt.Errorf("reference render: %w", err)
		}
		fmt.Fprintf(&out, "<!-- reference: %s -->\n%s", ref.Flavor(), rendered)
	}

	if _, err := cmd.OutOrStdout().Write(out.Bytes()); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func writeConverted(w *bytes.Buffer, nodes []document.Node, cfg *config.Config, flags *convertFlags) error {
	if flags.tree {
		data, err := document.MarshalTree(nodes)
		if err != nil {
			return err
		}
		w.Write(data)
		w.WriteByte('\n')
		return nil
	}

	conv := converter.New(converter.Options{ContainerTag: cfg.Container.Tag})
	start := w.Len()

	if flags.page {
		opts := converter.PageOptions{Title: flags.title, Stylesheet: cfg.Output.Stylesheet}
		if err := conv.RenderPage(w, nodes, opts); err != nil {
			return err
		}
	} else if err := conv.Render(w, nodes); err != nil {
		return err
	}

	if w.Len() > start {
		w.WriteByte('\n')
	}
	return nil
}

// readSource reads the document named by args, or standard input.
func readSource(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return data, stdinArg, nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", args[0], err)
	}
	return data, args[0], nil
}
