package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-enry/go-enry/v2"
	"github.com/gobwas/glob"
)

// Discover finds markdown files under opts.Paths. It returns a sorted,
// deduplicated list of absolute file paths. Hidden entries, vendored
// directories and paths matching opts.ExcludeGlobs are skipped; an explicit
// file argument is only subject to the extension and exclude checks.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   compileGlobs(opts.ExcludeGlobs),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if d.matchesFile(absPath) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

// compileGlobs compiles patterns with '/' as separator. Patterns that do
// not compile are dropped; configuration validation reports them.
func compileGlobs(patterns []string) []glob.Glob {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	excludes   []glob.Glob
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if path == root {
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			if d.skipDir(path) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			return d.symlink(ctx, path)
		}

		if d.matchesFile(path) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// symlink handles a symlink met during a walk. Broken links and links
// to directories are skipped unless FollowSymlinks is set.
func (d *discoverer) symlink(ctx context.Context, path string) error {
	realPath, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // Broken symlinks are skipped.
	}
	info, err := os.Stat(realPath)
	if err != nil {
		return nil //nolint:nilerr // Inaccessible targets are skipped.
	}

	if info.IsDir() {
		if !d.opts.FollowSymlinks {
			return nil
		}
		// Walk the target itself; WalkDir does not descend into a symlinked root.
		return d.walk(ctx, realPath)
	}

	if d.matchesFile(path) {
		d.add(path)
	}
	return nil
}

func (d *discoverer) skipDir(path string) bool {
	rel := d.rel(path)
	if !d.opts.IncludeVendored && enry.IsVendor(rel+"/") {
		return true
	}
	return d.excluded(rel) || d.excluded(rel+"/")
}

func (d *discoverer) matchesFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.ToLower(e) == ext }) {
		return false
	}
	return !d.excluded(d.rel(path))
}

// rel returns path relative to the working directory, slash-separated.
func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		rel = path
	}
	return filepath.ToSlash(rel)
}

// excluded matches rel against every exclude glob, and against its base
// name so that "*.draft.md" applies at any depth.
func (d *discoverer) excluded(rel string) bool {
	base := rel[strings.LastIndex(strings.TrimSuffix(rel, "/"), "/")+1:]
	for _, g := range d.excludes {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}
