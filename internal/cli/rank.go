package cli

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/pipeline"
	"github.com/matzehuels/permrank/pkg/scheme"
)

// rankCommand creates the rank command.
func (c *CLI) rankCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "rank WORD",
		Short: "Print the rank of a word",
		Long: `Print the rank of a word under a ranking scheme.

Words over single-character alphabets are written without separators
("bca"); words over multi-character symbols are comma separated
("blue,red").`,
		Example: `  permrank rank bca --alphabet abc
  permrank rank ba --scheme bijective --alphabet ab -k 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Rank(cmd.Context(), flags.options(c.Config), args[0])
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(res)
			}
			printRankResult(res)
			return nil
		},
	}
	flags.bind(cmd)
	flags.bindCache(cmd)
	return cmd
}

// unrankCommand creates the unrank command.
func (c *CLI) unrankCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:     "unrank RANK",
		Short:   "Print the word with a given rank",
		Example: `  permrank unrank 4 --alphabet abc`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rank, err := parseRank(args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Unrank(cmd.Context(), flags.options(c.Config), rank)
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(res)
			}
			printRankResult(res)
			return nil
		},
	}
	flags.bind(cmd)
	flags.bindCache(cmd)
	return cmd
}

// countCommand creates the count command.
func (c *CLI) countCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "count",
		Short: "Print the number of ranks for an alphabet and length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Count(cmd.Context(), flags.options(c.Config))
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(res)
			}

			last := new(big.Int).Add(res.First, res.Count)
			last.Sub(last, big.NewInt(1))
			printKeyValue("Scheme", res.Scheme)
			printKeyValue("Alphabet", res.Alphabet)
			printKeyValue("Length", strconv.Itoa(res.K))
			printKeyValue("Count", StyleNumber.Render(res.Count.String()))
			if res.Count.Sign() > 0 {
				printKeyValue("Ranks", fmt.Sprintf("%s .. %s", res.First, last))
			}
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

// intervalCommand creates the interval command.
func (c *CLI) intervalCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "interval",
		Short: "Print the bijective rank interval of each word length",
		Long: `Print, for each length 1..k, the smallest and largest bijective rank of a
word of that length. Words of length L occupy ranks
n + n^2 + ... + n^(L-1) + 1 through n + n^2 + ... + n^L.`,
		Example: `  permrank interval --alphabet ab -k 3`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			opts := flags.options(c.Config)
			opts.Scheme = scheme.Bijective
			intervals, err := runner.Interval(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if flags.json {
				return printJSON(intervals)
			}

			rows := make([][]string, len(intervals))
			for i, iv := range intervals {
				rows[i] = []string{
					strconv.Itoa(iv.Length),
					strconv.FormatUint(iv.Min, 10),
					strconv.FormatUint(iv.Max, 10),
				}
			}
			printTable([]string{"Length", "First", "Last"}, rows)
			return nil
		},
	}
	flags.bindAlphabet(cmd)
	cmd.Flags().IntVarP(&flags.k, "length", "k", 0, "maximum word length (default: alphabet size)")
	cmd.Flags().BoolVar(&flags.json, "json", false, "print JSON")
	return cmd
}

// nextCommand creates the next command.
func (c *CLI) nextCommand() *cobra.Command {
	var (
		flags requestFlags
		prev  bool
		steps int
	)

	cmd := &cobra.Command{
		Use:   "next WORD",
		Short: "Print the lexicographic successor of a word",
		Long: `Print the next arrangement of WORD's symbols in lexicographic order, or
the previous one with --prev. Repeated symbols are allowed. At the last
(first) arrangement nothing further is printed.`,
		Example: `  permrank next bca --alphabet abc
  permrank next aabb --alphabet ab -n 5`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 1 {
				return perrors.New(perrors.ErrCodeInvalidInput, "steps must be positive, got %d", steps)
			}
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			// Any length is fine for next; the scheme is only used to validate
			// the alphabet.
			opts := flags.options(c.Config)
			opts.Scheme = scheme.Repetition
			opts.K = 1

			word := args[0]
			for range steps {
				next, ok, err := runner.Next(cmd.Context(), opts, word, prev)
				if err != nil {
					return err
				}
				if !ok {
					if word == args[0] {
						end := "last"
						if prev {
							end = "first"
						}
						printInfo("%s is already the %s arrangement", word, end)
					}
					return nil
				}
				fmt.Fprintln(stdout, next)
				word = next
			}
			return nil
		},
	}
	flags.bindAlphabet(cmd)
	cmd.Flags().BoolVar(&prev, "prev", false, "step backwards")
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of steps")
	return cmd
}

// parseRank parses a decimal rank of any size.
func parseRank(s string) (*big.Int, error) {
	rank, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "rank must be a decimal integer, got %q", s)
	}
	return rank, nil
}

func printRankResult(res *pipeline.RankResult) {
	printKeyValue("Word", res.Word)
	printKeyValue("Rank", StyleNumber.Render(res.Rank.String()))
	printStats(res.Cached, res.Scheme, fmt.Sprintf("alphabet %s", res.Alphabet), fmt.Sprintf("%s ranks", res.Count))
}
