package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/permrank/pkg/pipeline"
)

// enumerateCommand creates the enumerate command.
func (c *CLI) enumerateCommand() *cobra.Command {
	var (
		flags requestFlags
		order string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "enumerate",
		Short: "List permutations in heap, lexicographic or rank order",
		Long: `List permutations of the alphabet.

Orders:
  heap           Heap's algorithm, one swap per step (full permutations)
  lexicographic  Knuth's Algorithm L (full permutations)
  rank           unrank consecutive ranks with --scheme`,
		Example: `  permrank enumerate --alphabet abc --order heap
  permrank enumerate --alphabet abcd --scheme myrvold --limit 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := flags.options(c.Config)
			opts.Order = order
			res, err := runner.Enumerate(cmd.Context(), opts, limit)
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(res)
			}

			for _, w := range res.Words {
				fmt.Fprintln(stdout, w)
			}
			if res.Truncated {
				printDetail("showing %d of %s permutations", len(res.Words), res.Total)
			}
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&order, "order", "o", pipeline.OrderRank, "enumeration order: heap, lexicographic, rank")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, fmt.Sprintf("maximum permutations to list (default %d, max %d)", pipeline.DefaultEnumerateLimit, pipeline.MaxEnumerateLimit))
	return cmd
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	request requestFlags
	order   string
	limit   int
	output  string // output file path; "-" writes to stdout
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Draw an enumeration as an SVG chain",
		Long: `Draw permutations as a chain of nodes in enumeration order. Each edge is
labelled with the positions that changed, so Heap's single swaps and
Algorithm L's suffix reversals are easy to tell apart.`,
		Example: `  permrank render --alphabet abcd --order heap -o heap.svg
  permrank render --alphabet abc --order lexicographic -o - > lex.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), &opts)
		},
	}
	opts.request.bind(cmd)
	opts.request.bindCache(cmd)
	cmd.Flags().StringVar(&opts.order, "order", pipeline.OrderHeap, "enumeration order: heap, lexicographic, rank")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, fmt.Sprintf("maximum permutations to draw (default %d, max %d)", pipeline.DefaultRenderLimit, pipeline.MaxRenderLimit))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: <order>.svg, - for stdout)")
	return cmd
}

func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	runner, err := c.newRunner(ctx, opts.request.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	req := opts.request.options(c.Config)
	req.Order = opts.order
	if err := req.Validate(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	sp := newSpinner(ctx, fmt.Sprintf("Rendering %s enumeration of %s...", req.Order, req.Alphabet))
	req.Progress = sp.Progress
	sp.Start()
	svg, hit, err := runner.Render(ctx, req, opts.limit)
	sp.Stop()
	if err != nil {
		return err
	}
	prog.done("Rendered " + req.Order + " enumeration")

	if opts.output == "-" {
		_, err := stdout.Write(svg)
		return err
	}
	path := opts.output
	if path == "" {
		path = req.Order + ".svg"
	}
	if err := os.WriteFile(path, svg, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered %s", req.Order)
	printFile(path)
	printStats(hit, req.Scheme, "alphabet "+req.Alphabet)
	if !hit && req.Order != pipeline.OrderRank {
		printNextStep("Compare with", "permrank render --alphabet "+req.Alphabet+" --order "+otherOrder(req.Order))
	}
	return nil
}

func otherOrder(order string) string {
	if order == pipeline.OrderHeap {
		return pipeline.OrderLexicographic
	}
	return pipeline.OrderHeap
}
