//go:build stave

package main

import (
	"cmp"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const binary = "bin/evergreen"

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":  Build,
	"t":  Test.Default,
	"l":  Lint.Default,
	"s":  Smoke,
	"fz": Test.Fuzz,
}

type (
	Test  st.Namespace
	Lint  st.Namespace
	Bench st.Namespace
)

// Build compiles bin/evergreen when a source file changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary + " is up to date")
		return nil
	}
	fmt.Println("Building evergreen...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, "./cmd/evergreen")
}

// Install installs evergreen to $GOBIN or $GOPATH/bin.
func Install() error {
	return sh.RunV("go", "install", "-ldflags", ldflags(), "./cmd/evergreen")
}

// Clean removes build and coverage artifacts.
func Clean() error {
	for _, path := range []string{"bin", "coverage.out"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Gate runs everything CI requires, in order.
func Gate() {
	st.SerialDeps(Lint.CI, Build, Test.Default, Smoke)
}

// smokeDocs is a small tree touching every block kind the processor knows.
//
//nolint:gochecknoglobals // Read-only fixture.
var smokeDocs = map[string]string{
	"index.md": "# Smoke\n\nIntro with a [link](/guide/).  \n\n***\n\n" +
		"![logo](logo.png \"Logo\")\n",
	"guide/lists.md": "- one\n  - nested\n- two\n\n3. three\n4. four\n",
	"guide/quotes.md": "> outer\n> > inner\n\n:::note\ninside\n:::note\n",
}

// smokeWant maps each rendered file to fragments its HTML must contain.
//
//nolint:gochecknoglobals // Read-only fixture.
var smokeWant = map[string][]string{
	"index.html":        {"<h1>Smoke</h1>", `<a href="/guide/">link</a>`, "<br/>", "<hr/>", `alt="logo"`},
	"guide/lists.html":  {"<ul><li>one<ul><li>nested</li></ul></li>", `<ol start="3">`},
	"guide/quotes.html": {"<blockquote><p>outer</p><blockquote>", `<div class="note">`},
}

// Smoke renders a sample markdown tree through bin/evergreen and checks the
// written HTML, then converts one file to its document tree.
func Smoke() error {
	st.Deps(Build)

	dir, err := os.MkdirTemp("", "evergreen-smoke-")
	if err != nil {
		return fmt.Errorf("create smoke dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for name, body := range smokeDocs {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}

	fmt.Println("Rendering sample tree...")
	if err := sh.RunV(binary, "render", "--format", "summary", "--standalone=false", dir); err != nil {
		return fmt.Errorf("render sample tree: %w", err)
	}

	for name, fragments := range smokeWant {
		data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		for _, fragment := range fragments {
			if !strings.Contains(string(data), fragment) {
				return fmt.Errorf("%s: missing %q in:\n%s", name, fragment, data)
			}
		}
	}

	tree, err := sh.Output(binary, "convert", "--tree", filepath.Join(dir, "guide", "lists.md"))
	if err != nil {
		return fmt.Errorf("convert sample file: %w", err)
	}
	if !strings.Contains(tree, `"kind": "List"`) {
		return fmt.Errorf("document tree has no list:\n%s", tree)
	}

	fmt.Println("✓ Smoke test passed")
	return nil
}

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// Fuzz fuzzes Parse for STAVE_FUZZTIME (default 30s).
func (Test) Fuzz() error {
	fuzzTime := cmp.Or(os.Getenv("STAVE_FUZZTIME"), "30s")
	fmt.Printf("Fuzzing the processor for %s...\n", fuzzTime)
	return sh.RunV("go", "test", "-run", "^$", "-fuzz", "^FuzzParse$", "-fuzztime", fuzzTime, "./pkg/processor")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Default runs every benchmark in the processor and converter.
func (Bench) Default() {
	st.SerialDeps(Bench.Processor, Bench.Converter)
}

// Processor benchmarks line classification and tree building.
func (Bench) Processor() error {
	return bench("./pkg/processor", "^Benchmark(Parse|SplitLines)")
}

// Converter benchmarks HTML rendering of a parsed document.
func (Bench) Converter() error {
	return bench("./pkg/converter", "^BenchmarkRender")
}

func bench(pkg, pattern string) error {
	count := cmp.Or(os.Getenv("STAVE_BENCH_COUNT"), "1")
	fmt.Printf("Benchmarking %s...\n", pkg)
	return sh.RunV("go", "test", "-run", "^$", "-bench", pattern, "-benchmem", "-count", count, pkg)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf("-X main.version=%s -X main.commit=%s -X main.date=%s", version, commit, date)
}

func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}
