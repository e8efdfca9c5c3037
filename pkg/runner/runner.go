package runner

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/yaklabco/evergreen/internal/logging"
	"github.com/yaklabco/evergreen/pkg/config"
	"github.com/yaklabco/evergreen/pkg/converter"
	"github.com/yaklabco/evergreen/pkg/document"
	"github.com/yaklabco/evergreen/pkg/fsutil"
	"github.com/yaklabco/evergreen/pkg/processor"
)

// Runner renders markdown files to HTML with a shared Processor and
// Converter. Both are stateless, so one Runner serves every worker.
type Runner struct {
	Processor *processor.Processor
	Converter *converter.Converter
}

// New creates a Runner.
func New(proc *processor.Processor, conv *converter.Converter) *Runner {
	return &Runner{Processor: proc, Converter: conv}
}

// NewFromConfig creates a Runner whose Processor and Converter follow cfg.
func NewFromConfig(cfg *config.Config) *Runner {
	return New(
		processor.New(processor.Options{ContainerMarker: cfg.Container.Marker}),
		converter.New(converter.Options{ContainerTag: cfg.Container.Tag}),
	)
}

// Run discovers files under opts.Paths and renders them on a bounded
// worker pool. Outcomes are returned in path order whatever order the
// workers finish in. On cancellation the partial result is returned with
// the context error.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	cfg := opts.effectiveConfig()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Files:  make([]FileOutcome, 0, len(files)),
		DryRun: cfg.DryRun,
	}
	result.Stats.FilesDiscovered = len(files)
	logger.Debug("discovered files", logging.FieldFilesDiscovered, len(files))

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, cfg)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}

	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, cfg *config.Config) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.RenderFile(ctx, path, cfg)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// RenderFile renders one markdown file and, unless cfg.DryRun is set,
// writes the output next to it.
func (r *Runner) RenderFile(ctx context.Context, path string, cfg *config.Config) FileOutcome {
	ctx = logging.With(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{
		Path:   path,
		Output: fsutil.OutputPath(path, cfg.Output.Extension),
	}

	content, src, err := fsutil.ReadSource(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	lines := processor.SplitLines(string(content))
	nodes := r.Processor.Parse(lines)
	outcome.Blocks = len(nodes)

	rendered, err := r.render(nodes, cfg)
	if err != nil {
		outcome.Error = fmt.Errorf("render %s: %w", path, err)
		return outcome
	}
	outcome.Bytes = len(rendered)

	logger.Debug("rendered",
		logging.FieldLines, len(lines),
		logging.FieldBlocks, outcome.Blocks,
	)

	if cfg.DryRun {
		return outcome
	}

	changed, err := fsutil.Changed(ctx, src)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	if changed {
		outcome.Skipped = true
		logger.Warn("source changed during render; output not written")
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.Output, rendered, src.Mode.Perm())
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.Output, err)
		return outcome
	}
	outcome.Written = written
	outcome.Unchanged = !written

	return outcome
}

// render produces the output document: a fragment, or a page when
// standalone output is configured. Output always ends in a newline.
func (r *Runner) render(nodes []document.Node, cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer

	if cfg.Output.IsStandalone() {
		opts := converter.PageOptions{Stylesheet: cfg.Output.Stylesheet}
		if err := r.Converter.RenderPage(&buf, nodes, opts); err != nil {
			return nil, err
		}
	} else if err := r.Converter.Render(&buf, nodes); err != nil {
		return nil, err
	}

	if buf.Len() > 0 {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}
