package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/drainplan/pkg/pipeline"
	"github.com/matzehuels/drainplan/pkg/render/sink"
)

// layoutCommand creates the layout command for computing a single frame.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		asJSON  bool
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute and print the drainage layout of one frame",
		Long: `Compute and print the drainage layout of one frame.

Prints mullion and drainage positions in order with the gap to the previous
point of the same kind, followed by any constraint that could not be met.
With --json the layout document is printed instead ('render -f json' writes
the same document to a file).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), opts, output, asJSON, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the layout JSON to a file instead of stdout")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")
	cmd.Flags().StringVar(&opts.Name, "name", "", "frame name recorded in JSON output")
	addParamFlags(cmd.Flags(), &opts.Params)
	addRunFlags(cmd.Flags(), &opts, &noCache)

	return cmd
}

// runLayout computes the layout and prints or writes it.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, asJSON, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	l, cacheHit, err := runner.LayoutWithCacheInfo(ctx, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if asJSON || output != "" {
		data, err := sink.RenderJSON(l, sink.WithJSONName(opts.Name))
		if err != nil {
			return fmt.Errorf("encode layout: %w", err)
		}
		if output == "" {
			_, err = stdout.Write(append(data, '\n'))
			return err
		}
		if err := writeFile(output, data); err != nil {
			return err
		}
		printSuccess("Layout complete")
		printFile(output)
		printSummary(l, cacheHit)
		printNewline()
		printNextStep("Render", appName+" render --from "+output)
		return nil
	}

	fmt.Fprint(stdout, sink.RenderText(l))
	printSummary(l, cacheHit)
	return nil
}
