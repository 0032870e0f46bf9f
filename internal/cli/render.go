package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/bubblechart/pkg/errors"
	"github.com/matzehuels/bubblechart/pkg/pipeline"
	"github.com/matzehuels/bubblechart/pkg/query"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file (single format), base path (several) or "-" for stdout
	formats []string // output formats: "svg", "png", "json"
	config  string   // style option file (.toml, .yaml, .json)
	sets    []string // key=value style overrides
	vizID   string
	width   float64
	height  float64
	zoom    string // "k,x,y"
	hover   int    // datum index to highlight, -1 for none
	scale   float64
	static  bool // omit the SVG interaction script
	noCache bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{
		vizID:  pipeline.DefaultVizID,
		width:  pipeline.DefaultWidth,
		height: pipeline.DefaultHeight,
		hover:  -1,
		scale:  pipeline.DefaultScale,
	}

	cmd := &cobra.Command{
		Use:   "render <query.json>",
		Short: "Render a query result to SVG, PNG or JSON",
		Long: `Render a query result to SVG, PNG or JSON.

The input is a query document: {"fields": {"dimensions": [...], "measures": [...]}, "data": [...]}.
The first dimension labels each store; the first three measures give the x axis,
y axis and bubble size.

Style options are read from --config (TOML, YAML or JSON, flat keys) and
overridden by --set key=value:

  bubblechart render query.json --set color_scheme=coral --set x_axis_log_scale=true`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	f.StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	f.StringVarP(&opts.config, "config", "c", "", "style option file (.toml, .yaml, .json)")
	f.StringArrayVar(&opts.sets, "set", nil, "style option override key=value (repeatable)")
	f.StringVar(&opts.vizID, "viz", opts.vizID, "visualization id")
	f.Float64Var(&opts.width, "width", opts.width, "canvas width in pixels")
	f.Float64Var(&opts.height, "height", opts.height, "canvas height in pixels")
	f.StringVar(&opts.zoom, "zoom", "", "zoom/pan transform k,x,y")
	f.IntVar(&opts.hover, "hover", opts.hover, "highlight the bubble of this row index")
	f.Float64Var(&opts.scale, "scale", opts.scale, "PNG pixel density")
	f.BoolVar(&opts.static, "static", false, "omit the SVG interaction script")
	f.BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

// pipelineOptions converts flags into pipeline options.
func (o renderOpts) pipelineOptions() (pipeline.Options, error) {
	var cfg map[string]any
	if o.config != "" {
		var err error
		if cfg, err = loadConfig(o.config); err != nil {
			return pipeline.Options{}, err
		}
	}
	cfg, err := applySets(cfg, o.sets)
	if err != nil {
		return pipeline.Options{}, err
	}
	zoom, err := parseZoom(o.zoom)
	if err != nil {
		return pipeline.Options{}, err
	}

	opts := pipeline.Options{
		VizID:   o.vizID,
		Width:   o.width,
		Height:  o.height,
		Formats: o.formats,
		Zoom:    zoom,
		Static:  o.static,
		Scale:   o.scale,
		Style:   cfg,
	}
	if o.hover >= 0 {
		h := o.hover
		opts.Hover = &h
	}
	return opts, nil
}

func (c *CLI) runRender(ctx context.Context, w io.Writer, input string, o renderOpts) error {
	prog := newProgress(c.Logger)

	doc, err := importQuery(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("loaded query", "file", input, "rows", len(doc.Data), "fields", len(doc.Fields.Ordered()))

	opts, err := o.pipelineOptions()
	if err != nil {
		return err
	}

	runner, err := c.newRunner(o.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, pipeline.NewRequest(doc, opts))
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %s", input))

	if o.output == "-" {
		if len(o.formats) != 1 {
			return errors.New(errors.ErrCodeInvalidInput, "stdout output needs exactly one format")
		}
		_, err := w.Write(result.Artifacts[o.formats[0]])
		return err
	}

	paths := outputPaths(o.output, input, o.formats)
	for _, format := range o.formats {
		if err := os.WriteFile(paths[format], result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[format], err)
		}
	}

	if result.Scene.Error != "" {
		printWarning(w, "%s", result.Scene.Error)
	} else {
		printSuccess(w, "Rendered %s", filepath.Base(input))
	}
	for _, format := range o.formats {
		printFile(w, paths[format])
	}
	if err := result.CacheInfo.BackendErr; err != nil {
		printWarning(w, "%s", errors.UserMessage(err))
	}
	printStats(w, result.Stats.RowCount, result.Stats.BubbleCount, result.CacheInfo.RenderHit)
	printNextStep(w, "Explore interactively", appName+" inspect "+input)
	return nil
}

// importQuery reads a query document, mapping a missing file to a coded error.
func importQuery(path string) (query.Document, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return query.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "query file not found: %s", path)
	}
	doc, err := query.ImportJSON(path)
	if err != nil {
		return query.Document{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read query %s", path)
	}
	return doc, nil
}

// outputPaths maps each format to its output file. A single format writes to
// output as given; several formats share output as a base path with the
// format extension appended. Without output the input name is the base, and
// a path that would overwrite the input gets a "_chart" suffix.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		p := base + "." + f
		if filepath.Clean(p) == filepath.Clean(input) {
			p = base + "_chart." + f
		}
		paths[f] = p
	}
	return paths
}

// basePath derives the base output path. Known format extensions are
// stripped from output; an empty output falls back to input without its
// extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
