package cli

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/censusplot/pkg/errors"
	"github.com/matzehuels/censusplot/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	chartFlags
	output      string  // output file (single format) or base path
	formats     string  // comma-separated output formats
	interactive bool    // clickable axis labels with animated transitions
	tooltips    bool    // per-state tooltip on click
	scale       float64 // PNG pixel density
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{interactive: true, tooltips: true}

	cmd := &cobra.Command{
		Use:   "render <csv-file-or-url>",
		Short: "Render the scatter plot to SVG, PNG, PDF or JSON",
		Long: `Render the census scatter plot.

The SVG output is self-contained: clicking an inactive axis label rebinds that
axis and animates the marks to their new positions, and clicking a mark shows
its tooltip. PNG, PDF and JSON capture the chart for the selected fields.`,
		Example: `  censusplot render data.csv
  censusplot render data.csv --x age --y smokes -f svg,png -o chart
  censusplot render https://example.com/data.csv --interactive=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	opts.chartFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.interactive, "interactive", opts.interactive, "make axis labels clickable in SVG output")
	cmd.Flags().BoolVar(&opts.tooltips, "tooltips", opts.tooltips, "show a tooltip when a mark is clicked in SVG output")
	cmd.Flags().Float64Var(&opts.scale, "scale", 0, "PNG pixel density (default 2)")
	registerFormatCompletions(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, source string, opts *renderOpts) error {
	popts, err := c.options(source, &opts.chartFlags)
	if err != nil {
		return err
	}
	popts.Formats = parseFormats(opts.formats)
	popts.Interactive = opts.interactive
	popts.Tooltips = opts.tooltips
	popts.Scale = opts.scale
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spinner *Spinner
	if errors.IsURL(source) {
		spinner = newSpinnerWithContext(ctx, "Fetching "+source)
		spinner.Start()
	}
	prog := newProgress(c.Logger)
	result, err := runner.Execute(ctx, popts)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d states", result.Stats.Records))

	paths, err := writeArtifacts(result.Artifacts, popts.Formats, opts.output, source)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s vs %s", StyleHighlight.Render(popts.X), StyleHighlight.Render(popts.Y))
	printStats(result.Stats.Records, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each format to its output path and returns the paths
// in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, output, source string) ([]string, error) {
	var paths []string
	for _, format := range formats {
		p := outputPath(output, source, format, len(formats))
		if dir := filepath.Dir(p); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create output dir: %w", err)
			}
		}
		if err := os.WriteFile(p, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", p, err)
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// outputPath returns output itself for a single format, otherwise the base
// path plus the format extension.
func outputPath(output, source, format string, n int) string {
	if output != "" && n == 1 && filepath.Ext(output) != "" {
		return output
	}
	return basePath(output, source) + "." + format
}

// basePath derives the base output path. Without an output it is the source
// file name minus its extension, written next to a local source and into the
// working directory for a URL. Known format extensions are stripped from
// output.
func basePath(output, source string) string {
	if output == "" {
		name := source
		if errors.IsURL(source) {
			name = "chart"
			if u, err := url.Parse(source); err == nil {
				if b := path.Base(u.Path); b != "." && b != "/" {
					name = b
				}
			}
		}
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
