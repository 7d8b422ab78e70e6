package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/certifyme/certrender/pkg/certificate"
	pkgio "github.com/certifyme/certrender/pkg/io"
	"github.com/certifyme/certrender/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	record     string
	output     string
	formats    string
	width      float64
	fullscreen bool
	scale      float64
	origin     string
	assetBase  string
	today      string
	assignID   bool
	modules    bool
	refresh    bool
	noCache    bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [template-or-bundle]",
		Short: "Render a certificate to SVG, PNG, PDF or JSON",
		Long: `Render a certificate from a template and a record.

The input is a template file, or a bundle holding both "template" and
"record". A separate record file given with --record replaces the bundle's
record. JSON and YAML are accepted; the extension picks the decoder.

Examples:
  certrender render template.json --record alice.json
  certrender render bundle.yaml -f svg,png -o out/alice
  certrender render template.json --width 1200 --assign-id -f pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.record, "record", "", "record file (JSON or YAML)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path or base name (default: input name)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "comma-separated formats: svg, png, pdf, json")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "surface width (default: design width)")
	cmd.Flags().BoolVar(&opts.fullscreen, "fullscreen", false, "render at the fullscreen width")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixel scale")
	cmd.Flags().StringVar(&opts.origin, "origin", "", "verification origin (default from config)")
	cmd.Flags().StringVar(&opts.assetBase, "asset-base", "", "base URL for relative asset paths")
	cmd.Flags().StringVar(&opts.today, "today", "", "reference date for records without an issue date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&opts.assignID, "assign-id", false, "assign a verification id when the record has none")
	cmd.Flags().BoolVar(&opts.modules, "modules", false, "include badge modules in JSON output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the inputs, runs the pipeline and writes one file per format.
func (c *CLI) runRender(cmd *cobra.Command, input string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, err := c.pipelineOptions(input, opts.record)
	if err != nil {
		return err
	}
	popts.Formats = parseFormats(opts.formats)
	popts.Width = opts.width
	popts.Fullscreen = opts.fullscreen
	popts.Scale = opts.scale
	popts.Origin = opts.origin
	popts.AssetBase = opts.assetBase
	popts.AssignID = opts.assignID
	popts.Modules = opts.modules
	popts.Refresh = opts.refresh
	popts.Logger = logger
	if popts.Today, err = parseToday(opts.today); err != nil {
		return err
	}
	c.applyConfig(&popts)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering certificate...")
	spinner.Start()
	result, err := runner.Execute(ctx, popts)
	if err != nil {
		spinner.Stop()
		return err
	}
	if n := result.Stats.AssetsFailed; n > 0 {
		spinner.StopWithWarning(fmt.Sprintf("%d assets could not be loaded; rendered without them", n))
	} else {
		spinner.Stop()
	}

	base := basePath(opts.output, input)
	paths, err := writeArtifacts(result.Artifacts, popts.Formats, base, opts.output)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", result.Record.Kind.Title())
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.NodeCount, result.Stats.AssetsFailed, result.CacheInfo.RenderHit)
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(paths)))
	printNextStep("Preview live", "certrender preview "+input)
	return nil
}

// pipelineOptions reads the template and record inputs.
func (c *CLI) pipelineOptions(input, recordPath string) (pipeline.Options, error) {
	bundle, err := pkgio.ImportBundle(input)
	if err != nil {
		return pipeline.Options{}, err
	}
	opts := pipeline.Options{Template: bundle.Template, Record: bundle.Record}
	if recordPath != "" {
		rec, err := pkgio.ImportRecord(recordPath)
		if err != nil {
			return pipeline.Options{}, err
		}
		opts.Record = rec
	}
	if opts.Record == nil {
		opts.Record = &certificate.DynamicRecord{}
	}
	return opts, nil
}

// parseToday parses the --today flag. Empty means the current date.
func parseToday(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: want YYYY-MM-DD", s)
	}
	return t, nil
}

// writeArtifacts writes each artifact and returns the written paths in
// format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, base, output string) ([]string, error) {
	single := len(formats) == 1 && output != "" && filepath.Ext(output) != ""
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := base + "." + format
		if single {
			path = output
		}
		if err := writeFile(path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the output path without extension. An explicit output
// wins; otherwise the input name is used next to the input file.
func basePath(output, input string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// writeFile writes data to path, creating parent directories.
func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
