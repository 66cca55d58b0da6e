package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vgraph/pkg/buildinfo"
	"github.com/matzehuels/vgraph/pkg/cache"
	"github.com/matzehuels/vgraph/pkg/errors"
	"github.com/matzehuels/vgraph/pkg/graph"
	"github.com/matzehuels/vgraph/pkg/registry"
	"github.com/matzehuels/vgraph/pkg/render"
	"github.com/matzehuels/vgraph/pkg/render/nodelink"
	"github.com/matzehuels/vgraph/pkg/render/scene"
)

// Output formats.
const (
	formatSVG = "svg"
	formatPNG = "png"
	formatPDF = "pdf"
	formatDOT = "dot"
)

// validFormats is the set of supported output formats.
var validFormats = []string{formatSVG, formatPNG, formatPDF, formatDOT}

// stdoutPath writes the artifact to standard output.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string  // output file path, "-" for stdout
	format   string  // svg, png, pdf or dot
	flavor   string  // flavor types are resolved in
	config   string  // flavor file, default location when empty
	nodeLink bool    // Graphviz diagram instead of the scene
	detailed bool    // detailed node labels (node-link only)
	scale    float64 // PNG zoom factor
	noCache  bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{
		format: formatSVG,
		flavor: registry.Wildcard,
		scale:  2,
	}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph document to SVG, PNG, PDF or DOT",
		Long: `Render a graph document.

By default the document is drawn as the editor draws it: node and line types
are resolved in the selected flavor and lines refused by the flavor's line
filter are left out. With --nodelink the document is laid out by Graphviz
instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(validFormats, opts.format) {
				return errors.New(errors.ErrCodeInvalidFormat,
					"invalid format: %s (must be one of %s)", opts.format, strings.Join(validFormats, ", "))
			}
			if err := errors.ValidateName("flavor", opts.flavor); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with format extension, - for stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: svg, png, pdf, dot")
	cmd.Flags().StringVar(&opts.flavor, "flavor", opts.flavor, "flavor to resolve node and line types in")
	cmd.Flags().StringVar(&opts.config, "config", "", "flavor file (default: $XDG_CONFIG_HOME/vgraph/flavors.toml)")
	cmd.Flags().BoolVar(&opts.nodeLink, "nodelink", false, "render a Graphviz node-link diagram")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show node details (nodelink)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG zoom factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(validFormats, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("flavor", func(cmd *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		reg, _, err := c.newRegistry(opts.config)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return reg.Flavors(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(ctx context.Context, stdout, stderr io.Writer, input string, opts renderOpts) error {
	prog := newProgress(c.Logger)

	raw, doc, err := readDocument(input)
	if err != nil {
		return err
	}
	reg, cfgRaw, err := c.newRegistry(opts.config)
	if err != nil {
		return err
	}
	store, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	defer store.Close()

	key := cache.NewScopedKeyer(cache.NewDefaultKeyer(), buildinfo.Version+":").ArtifactKey(cache.Hash(raw), cache.ArtifactKeyOpts{
		Flavor:     opts.flavor,
		Format:     opts.format,
		ConfigHash: cache.Hash(cfgRaw),
		Scale:      opts.scale,
		Detailed:   opts.detailed,
		NodeLink:   opts.nodeLink,
	})

	res, err := scene.Render(ctx, doc, reg, scene.WithFlavor(opts.flavor), scene.WithLogger(c.Logger))
	if err != nil {
		return err
	}
	for _, id := range res.Rejected {
		c.Logger.Warn("line rejected by filter", "line", id, "flavor", opts.flavor)
	}
	for _, id := range res.Unplaced {
		c.Logger.Warn("line references a missing port", "line", id)
	}

	data, cached, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Debug("cache read failed", "err", err)
	}
	if !cached {
		data, err = artifact(ctx, doc, res, opts)
		if err != nil {
			return err
		}
		if err := store.Set(ctx, key, data, 0); err != nil {
			c.Logger.Debug("cache write failed", "err", err)
		}
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if path == stdoutPath {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}

	prog.done(fmt.Sprintf("Rendered %s", path))
	printSuccess(stderr, "Rendered %s", input)
	printStats(stderr, len(doc.Nodes), len(res.Drawn), len(res.Rejected)+len(res.Unplaced), cached)
	printFile(stderr, path)
	return nil
}

// artifact produces the requested output from a rendered scene.
func artifact(ctx context.Context, doc *graph.Document, res *scene.Result, opts renderOpts) ([]byte, error) {
	if opts.nodeLink || opts.format == formatDOT {
		dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: opts.detailed, Skip: res.Rejected})
		switch opts.format {
		case formatDOT:
			return []byte(dot), nil
		case formatSVG:
			return nodelink.RenderSVG(ctx, dot)
		case formatPNG:
			return nodelink.RenderPNG(ctx, dot, opts.scale)
		case formatPDF:
			return nodelink.RenderPDF(ctx, dot)
		}
	}

	switch opts.format {
	case formatSVG:
		return res.SVG, nil
	case formatPNG:
		return render.ToPNG(ctx, res.SVG, opts.scale)
	case formatPDF:
		return render.ToPDF(ctx, res.SVG)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format: %s", opts.format)
}

// readDocument returns the raw bytes and the decoded document at path.
func readDocument(path string) ([]byte, *graph.Document, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}
	doc, err := graph.Unmarshal(raw)
	if err != nil {
		return nil, nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return raw, doc, nil
}
