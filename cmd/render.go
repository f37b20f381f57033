package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zjrosen/emblem/internal/evalctx"
	"github.com/zjrosen/emblem/internal/log"
	"github.com/zjrosen/emblem/internal/registry"
	"github.com/zjrosen/emblem/internal/render"
	"github.com/zjrosen/emblem/internal/template"
	"github.com/zjrosen/emblem/internal/watcher"
)

var (
	renderOutput  string
	renderContext string
	renderWatch   bool
)

var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render a document's tags into markdown",
	Long: `Render expands every {{...}} tag in the document and writes the result.

The target decides how image-bearing tags render: github and npm emit
shields.io URLs, local generates SVG files next to the output. Unknown tags
are left untouched and reported as warnings.

Examples:
  # Render README for GitHub, write to stdout
  emblem render README.md

  # Render for local viewing, SVGs under img/
  emblem render README.md --target local --assets-dir img -o out/README.md

  # Re-render whenever the source changes
  emblem render README.md -o out/README.md --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringP("target", "t", "",
		`publishing target: "github", "local", "npm", or "auto" to detect`)
	renderCmd.Flags().StringP("backend", "b", "",
		`backend override: "shields" or "svg" (default: the target's choice)`)
	renderCmd.Flags().String("assets-dir", "",
		"directory for generated SVG files, relative to the output")
	renderCmd.Flags().Bool("strict", false,
		"treat unknown-tag warnings as errors")
	renderCmd.Flags().StringVar(&renderContext, "context", "block",
		`evaluation context for top-level tags: "inline", "block", or "frame-chrome"`)
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "",
		"output file (default: stdout)")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false,
		"re-render whenever the source file changes")

	_ = viper.BindPFlag("render.target", renderCmd.Flags().Lookup("target"))
	_ = viper.BindPFlag("render.backend", renderCmd.Flags().Lookup("backend"))
	_ = viper.BindPFlag("render.assets_dir", renderCmd.Flags().Lookup("assets-dir"))
	_ = viper.BindPFlag("strict", renderCmd.Flags().Lookup("strict"))

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load()
	if err != nil {
		return fmt.Errorf("loading registry: %w", err)
	}
	log.Debug(log.CatRegistry, "Registry loaded", "definitions", reg.Len())

	renderer, err := buildRenderer(args[0])
	if err != nil {
		return err
	}

	ctx, err := evalctx.Parse(renderContext)
	if err != nil {
		return err
	}

	if err := renderFile(reg, renderer, args[0], ctx); err != nil {
		if !renderWatch {
			return err
		}
		// In watch mode a bad document is not terminal; report and wait
		// for the next save.
		printError(err.Error())
	}

	if renderWatch {
		return watchAndRender(reg, renderer, args[0], ctx)
	}
	return nil
}

// buildRenderer assembles the renderer from config and flags. The input
// path feeds target auto-detection.
func buildRenderer(inputPath string) (render.Renderer, error) {
	targetName := viper.GetString("render.target")
	var target render.Target
	if targetName == "auto" {
		target = detectTarget(filepath.Dir(inputPath))
		log.Debug(log.CatRender, "Auto-detected target", "target", target)
	} else {
		var err error
		target, err = render.ParseTarget(targetName)
		if err != nil {
			return render.Renderer{}, err
		}
	}

	assetsDir := viper.GetString("render.assets_dir")

	backendName := viper.GetString("render.backend")
	if backendName == "" {
		return render.NewRenderer(target, assetsDir), nil
	}
	backend, err := render.ParseBackend(backendName)
	if err != nil {
		return render.Renderer{}, err
	}
	return render.NewRendererWithBackend(target, backend, assetsDir), nil
}

// detectTarget guesses the publishing target from the document's directory:
// a package.json means npm, a git checkout means github, anything else is
// viewed locally.
func detectTarget(dir string) render.Target {
	if _, err := os.Stat(filepath.Join(dir, "package.json")); err == nil {
		return render.TargetNPM
	}
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		return render.TargetGitHub
	}
	return render.TargetLocal
}

// renderFile runs the full pipeline for one document: parse, resolve,
// render, write output and artifacts.
func renderFile(reg *registry.Registry, renderer render.Renderer, path string, ctx evalctx.Context) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied document path
	if err != nil {
		return fmt.Errorf("reading document: %w", err)
	}
	source := string(data)

	doc, err := template.Parse(source)
	if err != nil {
		return err
	}

	placed, diags, err := template.NewResolver(reg).ResolveDocument(doc, ctx)
	if err != nil {
		return err
	}
	printDiagnostics(path, source, diags)
	log.Debug(log.CatResolve, "Document resolved", "tags", len(placed), "diagnostics", len(diags))

	// Best-effort output: failed tags already passed through as literal
	// text, so the document always renders. Diagnostics decide the exit
	// status afterwards.
	out := renderer.Render(placed)
	result := render.Apply(source, out.Replacements)

	if err := writeOutput(result); err != nil {
		return err
	}
	if err := writeArtifacts(out.Artifacts); err != nil {
		return err
	}

	if template.HasErrors(diags) {
		return errors.New("document has errors")
	}
	if viper.GetBool("strict") && len(diags) > 0 {
		return errors.New("warnings treated as errors (strict mode)")
	}
	return nil
}

func writeOutput(result string) error {
	if renderOutput == "" {
		fmt.Print(result)
		return nil
	}
	if dir := filepath.Dir(renderOutput); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(renderOutput, []byte(result), 0o644); err != nil { //nolint:gosec // G306: rendered markdown
		return fmt.Errorf("writing output: %w", err)
	}
	return nil
}

// writeArtifacts stores generated files relative to the output document, or
// the working directory when writing to stdout.
func writeArtifacts(artifacts []render.Artifact) error {
	baseDir := "."
	if renderOutput != "" {
		baseDir = filepath.Dir(renderOutput)
	}
	for _, a := range artifacts {
		path := filepath.Join(baseDir, filepath.FromSlash(a.Path))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return fmt.Errorf("creating assets directory: %w", err)
		}
		if err := os.WriteFile(path, a.Data, 0o644); err != nil { //nolint:gosec // G306: generated SVG
			return fmt.Errorf("writing artifact %s: %w", a.Path, err)
		}
		log.Debug(log.CatRender, "Wrote artifact", "path", path, "bytes", len(a.Data))
	}
	return nil
}

// watchAndRender re-renders on every change to the source file until
// interrupted.
func watchAndRender(reg *registry.Registry, renderer render.Renderer, path string, ctx evalctx.Context) error {
	w, err := watcher.New(watcher.DefaultConfig(path))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}
	log.Info(log.CatWatch, "Watching for changes", "file", path)
	fmt.Fprintf(os.Stderr, "watching %s (ctrl-c to stop)\n", path)

	sigCtx, stop := signal.NotifyContext(rootCmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-sigCtx.Done():
			return nil

		case _, ok := <-onChange:
			if !ok {
				return nil
			}
			log.Debug(log.CatWatch, "Change detected", "file", path)
			if err := renderFile(reg, renderer, path, ctx); err != nil {
				printError(err.Error())
			}
		}
	}
}
