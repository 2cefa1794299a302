package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/yaklabco/keepmark/pkg/fsutil"
	"github.com/yaklabco/keepmark/pkg/gfm"
	"github.com/yaklabco/keepmark/pkg/mark"
	"github.com/yaklabco/keepmark/pkg/mathx"
)

// Renderer renders Markdown files to HTML per its options.
type Renderer struct {
	opts     Options
	markOpts *mark.Options
}

// New creates a Renderer, assembling the engine options once.
func New(opts Options) *Renderer {
	markOpts := &mark.Options{
		AllowDangerousHTML:     opts.Unsafe,
		AllowDangerousProtocol: opts.Unsafe,
		DefaultLineEnding:      opts.DefaultLineEnding,
	}
	if opts.GFM {
		markOpts.Extensions = append(markOpts.Extensions, gfm.Syntax())
		markOpts.HTMLExtensions = append(markOpts.HTMLExtensions, gfm.HTML())
	}
	if opts.Math {
		markOpts.Extensions = append(markOpts.Extensions, mathx.Syntax())
		markOpts.HTMLExtensions = append(markOpts.HTMLExtensions, mathx.HTML())
	}
	return &Renderer{opts: opts, markOpts: markOpts}
}

// RenderBytes renders one Markdown document.
func (r *Renderer) RenderBytes(value []byte) []byte {
	if r.opts.DetectLanguage {
		value = annotateFences(value)
	}
	return []byte(mark.ToHTML(value, r.markOpts))
}

// Run discovers files under the options' paths and renders them
// concurrently. Results come back in path order regardless of which worker
// finished first.
func (r *Renderer) Run(ctx context.Context) (*Result, error) {
	files, err := Discover(ctx, r.opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(r.opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := r.opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workDir, workCh, outCh)
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

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

func (r *Renderer) worker(ctx context.Context, workDir string, workCh <-chan string, outCh chan<- FileOutcome) {
	for path := range workCh {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcome := r.renderFile(ctx, workDir, path)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

func (r *Renderer) renderFile(ctx context.Context, workDir, path string) FileOutcome {
	outcome := FileOutcome{Path: path}

	value, err := os.ReadFile(path)
	if err != nil {
		outcome.Error = fmt.Errorf("read %s: %w", path, err)
		return outcome
	}

	html := r.RenderBytes(value)

	outPath, err := r.outPath(workDir, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}

	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			outcome.Error = fmt.Errorf("create output directory: %w", err)
			return outcome
		}
	}

	if err := fsutil.WriteAtomic(ctx, outPath, html, 0); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outPath, err)
		return outcome
	}

	outcome.OutPath = outPath
	outcome.BytesIn = len(value)
	outcome.BytesOut = len(html)
	return outcome
}

// outPath maps an input path to its output location: same directory by
// default, or the input's layout relative to the working directory mirrored
// under OutDir.
func (r *Renderer) outPath(workDir, path string) (string, error) {
	ext := r.opts.effectiveOutExt()
	replaced := strings.TrimSuffix(path, filepath.Ext(path)) + ext

	if r.opts.OutDir == "" {
		return replaced, nil
	}

	rel, err := filepath.Rel(workDir, replaced)
	if err != nil || strings.HasPrefix(rel, "..") {
		// Input outside the working directory: flatten to the base name.
		rel = filepath.Base(replaced)
	}

	return filepath.Join(r.opts.OutDir, rel), nil
}
