package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drainplan/pkg/config"
	"github.com/matzehuels/drainplan/pkg/pipeline"
)

// defaultBatchDir is the output directory when neither -o nor [output].dir is set.
const defaultBatchDir = "."

// batchCommand creates the batch command for laying out every frame of a file.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		workers    int
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "batch <frames.toml>",
		Short: "Lay out and render every frame of a frame file",
		Long: `Lay out and render every frame of a frame file.

A frame file is TOML: top-level keys set defaults for all frames and each
[[frame]] table overrides them for one named frame. An optional [output]
table sets the directory and formats; -o and -f take precedence.

Frames run in parallel and each one is written as <dir>/<name>.<format>.
A failing frame does not stop the others.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), args[0], opts, output, formatsStr, workers, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output directory (default: [output].dir or .)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s) (default: [output].formats or svg)")
	cmd.Flags().IntVarP(&workers, "jobs", "j", pipeline.DefaultWorkers, "frames computed in parallel")
	addRunFlags(cmd.Flags(), &opts, &noCache)
	addRenderFlags(cmd.Flags(), &opts)

	return cmd
}

// runBatch loads the frame file, runs all frames and writes their artifacts.
func (c *CLI) runBatch(ctx context.Context, input string, opts pipeline.Options, output, formatsStr string, workers int, noCache bool) error {
	file, err := config.Load(input)
	if err != nil {
		return err
	}

	dir := output
	if dir == "" {
		dir = file.Output.Dir
	}
	if dir == "" {
		dir = defaultBatchDir
	}

	formats := file.Output.Formats
	if formatsStr != "" || len(formats) == 0 {
		formats = parseFormats(formatsStr)
	}
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	formats = pipeline.SortFormats(formats)

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	jobs := make([]pipeline.Job, len(file.Frames))
	for i, f := range file.Frames {
		jo := opts
		jo.Params = f.Params
		jo.Name = f.Name
		jo.Formats = formats
		if jo.Title == "" {
			jo.Title = f.Name
		}
		jobs[i] = pipeline.Job{Options: jo}
	}

	start := time.Now()
	spin := startSpinner(ctx, stderr, fmt.Sprintf("Laying out %d frames", len(jobs)))
	results, err := runner.Batch(ctx, jobs, workers)
	spin.stop()
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		name := res.Job.Options.Name
		if res.Err != nil {
			failed++
			printError("%s: %v", name, res.Err)
			continue
		}
		l := res.Result.Layout
		printSuccess("%s", name)
		for _, format := range formats {
			path := filepath.Join(dir, name+"."+format)
			if err := writeFile(path, res.Result.Artifacts[format]); err != nil {
				return err
			}
			printFile(path)
		}
		printSummary(l, res.Result.CacheInfo.LayoutHit)
	}
	logElapsed(c.Logger, start, "batch complete", "frames", len(results), "failed", failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d frames failed", failed, len(results))
	}
	return nil
}
