package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drainplan/pkg/layout"
	"github.com/matzehuels/drainplan/pkg/pipeline"
	"github.com/matzehuels/drainplan/pkg/render/sink"
)

// defaultOutputBase names output files when -o is not given.
const defaultOutputBase = "drainage"

// renderCommand creates the render command for writing artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		from       string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a frame layout to SVG, PNG, PDF, JSON or text files",
		Long: `Render a frame layout to SVG, PNG, PDF, JSON or text files.

The layout is computed from the parameter flags, or read from a layout JSON
file written by 'layout -o' or 'render -f json' when --from is given.

With a single format, -o names the output file. With several formats, -o is
the base path and each format gets its own extension.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Formats = pipeline.SortFormats(opts.Formats)
			return c.runRender(cmd.Context(), opts, from, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json, txt (comma-separated)")
	cmd.Flags().StringVar(&from, "from", "", "render an existing layout JSON file instead of computing one")
	cmd.Flags().StringVar(&opts.Name, "name", "", "frame name recorded in JSON output")
	addParamFlags(cmd.Flags(), &opts.Params)
	addRunFlags(cmd.Flags(), &opts, &noCache)
	addRenderFlags(cmd.Flags(), &opts)

	return cmd
}

// runRender computes or loads the layout, renders it and writes one file per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, from, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	var (
		l        layout.Layout
		cacheHit bool
	)
	if from != "" {
		if l, err = readLayoutFile(from); err != nil {
			return err
		}
	} else {
		l, cacheHit, err = runner.LayoutWithCacheInfo(ctx, opts)
		if err != nil {
			return fmt.Errorf("compute layout: %w", err)
		}
	}

	spin := startSpinner(ctx, stderr, "Rendering "+strings.Join(opts.Formats, ", "))
	artifacts, err := runner.Render(ctx, l, opts)
	if err != nil {
		spin.fail("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spin.stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, from, opts.Formats)
	for _, format := range opts.Formats {
		if from != "" && filepath.Clean(paths[format]) == filepath.Clean(from) {
			return fmt.Errorf("refusing to overwrite input %s, pass -o", from)
		}
	}
	for _, format := range opts.Formats {
		if err := writeFile(paths[format], artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %d file(s)", len(opts.Formats))
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printSummary(l, cacheHit)
	printViolations(l)
	return nil
}

// readLayoutFile loads a layout JSON document.
func readLayoutFile(path string) (layout.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	l, err := sink.ParseJSON(data)
	if err != nil {
		return layout.Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	return l, nil
}

// outputPaths maps each format to its file.
//
// A single format written to an -o path keeps that path as given. Otherwise
// the base is -o without a known format extension, the --from file without
// its extension, or "drainage".
func outputPaths(output, from string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := basePath(output, from)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
func basePath(output, input string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if input != "" {
		return strings.TrimSuffix(strings.TrimSuffix(input, filepath.Ext(input)), ".layout")
	}
	return defaultOutputBase
}
