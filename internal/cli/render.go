package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/keepmark/internal/configloader"
	"github.com/yaklabco/keepmark/internal/logging"
	"github.com/yaklabco/keepmark/internal/ui/pretty"
	"github.com/yaklabco/keepmark/pkg/render"
)

// ErrRenderFailed is returned when some files could not be rendered.
var ErrRenderFailed = errors.New("render failed")

type renderFlags struct {
	gfm            bool
	math           bool
	unsafe         bool
	detectLanguage bool
	stdin          bool
}

func newRenderCommand() *cobra.Command {
	cfg := &configloader.Config{}
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [paths...]",
		Short: "Render Markdown files to HTML",
		Long:  renderLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, cfg, flags)
		},
	}

	addRenderFlags(cmd, cfg, flags)

	return cmd
}

const renderLongDescription = `Render Markdown files to HTML.

By default, renders all .md and .markdown files in the current directory
and subdirectories, writing each file's HTML next to its source. Specify
paths to render specific files or directories.

Examples:
  keepmark render                     # Render current directory
  keepmark render docs/               # Render docs directory
  keepmark render README.md           # Render single file
  keepmark render --gfm               # Enable GFM extensions
  keepmark render --out-dir dist      # Mirror output under dist/
  keepmark render --stdin < in.md     # Render stdin to stdout`

func runRender(cmd *cobra.Command, args []string, cfg *configloader.Config, flags *renderFlags) error {
	logger := logging.Default()

	// Map bool flags onto the pointer config so unset flags do not clobber
	// file or environment values.
	if cmd.Flags().Changed("gfm") {
		cfg.GFM = configloader.BoolPtr(flags.gfm)
	}
	if cmd.Flags().Changed("math") {
		cfg.Math = configloader.BoolPtr(flags.math)
	}
	if cmd.Flags().Changed("unsafe") {
		cfg.Unsafe = configloader.BoolPtr(flags.unsafe)
	}
	if cmd.Flags().Changed("detect-language") {
		cfg.DetectLanguage = configloader.BoolPtr(flags.detectLanguage)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Get the explicit config path from the root command's persistent flag.
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	// Get working directory for config discovery.
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return errors.Join(errors.New("failed to load configuration"), err)
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	logger.Debug("configuration loaded",
		logging.FieldGFM, configloader.BoolValue(finalCfg.GFM),
		logging.FieldMath, configloader.BoolValue(finalCfg.Math),
		logging.FieldUnsafe, configloader.BoolValue(finalCfg.Unsafe),
		logging.FieldJobs, finalCfg.Jobs,
	)

	opts := renderOptions(finalCfg, args, workDir)
	renderer := render.New(opts)

	// Stdin mode renders one document to stdout and touches no files.
	if flags.stdin {
		return renderStdin(cmd, renderer)
	}

	logger.Debug("starting render run",
		logging.FieldPaths, opts.Paths,
		logging.FieldWorkingDir, opts.WorkingDir,
		logging.FieldJobs, opts.Jobs,
	)

	result, err := renderer.Run(ctx)
	if err != nil {
		return errors.Join(errors.New("render run failed"), err)
	}

	// Get color mode from persistent flag.
	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode, cmd.OutOrStdout()))
	fmt.Fprint(cmd.OutOrStdout(), styles.FormatSummary(result))

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrRenderFailed
	}

	return nil
}

// renderStdin renders the command's input stream to its output stream.
func renderStdin(cmd *cobra.Command, renderer *render.Renderer) error {
	value, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	if _, err := cmd.OutOrStdout().Write(renderer.RenderBytes(value)); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	return nil
}

// renderOptions maps the merged configuration onto run options.
func renderOptions(cfg *configloader.Config, args []string, workDir string) render.Options {
	opts := render.Options{
		Paths:          args,
		WorkingDir:     workDir,
		Extensions:     cfg.Extensions,
		ExcludeGlobs:   cfg.Exclude,
		Jobs:           cfg.Jobs,
		OutDir:         cfg.OutDir,
		OutExt:         cfg.OutExt,
		GFM:            configloader.BoolValue(cfg.GFM),
		Math:           configloader.BoolValue(cfg.Math),
		Unsafe:         configloader.BoolValue(cfg.Unsafe),
		DetectLanguage: configloader.BoolValue(cfg.DetectLanguage),
	}

	switch strings.ToLower(cfg.LineEnding) {
	case "crlf":
		opts.DefaultLineEnding = "\r\n"
	case "lf":
		opts.DefaultLineEnding = "\n"
	}

	return opts
}

func addRenderFlags(cmd *cobra.Command, cfg *configloader.Config, flags *renderFlags) {
	cmd.Flags().BoolVar(&flags.gfm, "gfm", false, "enable GitHub Flavored Markdown extensions")
	cmd.Flags().BoolVar(&flags.math, "math", false, "enable dollar-delimited math")
	cmd.Flags().BoolVar(&flags.unsafe, "unsafe", false, "allow raw HTML and dangerous protocols")
	cmd.Flags().BoolVar(&flags.detectLanguage, "detect-language", false,
		"infer info strings for code fences that lack one")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "render stdin to stdout instead of files")
	cmd.Flags().StringVar(&cfg.OutDir, "out-dir", "", "write output under this directory")
	cmd.Flags().StringVar(&cfg.OutExt, "ext", "", `output file extension (default ".html")`)
	cmd.Flags().IntVar(&cfg.Jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&cfg.Exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().StringSliceVar(&cfg.Extensions, "extensions", nil,
		"input file extensions to render (default .md,.markdown)")
}
