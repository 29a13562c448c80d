// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/prinv/explore"
	"github.com/katalvlaran/prinv/internal/config"
)

var sweepHeader = []string{"d_max", "chi2/N", "rg", "i(0)", "background", "oscillation", "positive", "positive_1σ"}

// NewExploreCmd creates the explore command.
func NewExploreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explore <data-file>",
		Short: "Sweep D_max and tabulate the inversion diagnostics",
		Long: `Explore inverts the data for a range of D_max values around --d-max
(--low·D_max to --high·D_max) and prints chi2, Rg, I(0), background,
oscillation and positivity per point. Inversions run in parallel.

Examples:
  prinv explore data.txt --d-max 100 --sweep-points 21 --low 0.5 --high 1.5
  prinv explore data.txt --markdown > sweep.md`,
		Args: requireOneArg,
		RunE: runExploreCmd,
	}

	addInversionFlags(cmd.Flags())
	cmd.Flags().Int("sweep-points", config.DefaultSweepPoints, "Number of D_max values")
	cmd.Flags().Float64("low", config.DefaultSweepLow, "Lowest D_max as a factor of --d-max")
	cmd.Flags().Float64("high", config.DefaultSweepHigh, "Highest D_max as a factor of --d-max")
	cmd.Flags().Int("concurrency", 0, "Parallel inversions (0: GOMAXPROCS)")
	cmd.Flags().BoolP("markdown", "m", false, "Print the table as Markdown")

	return cmd
}

func runExploreCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	ds, err := loadDataset(args[0], cfg, logger)
	if err != nil {
		return err
	}
	e, err := newEngine(ds, cfg, logger)
	if err != nil {
		return err
	}
	alpha, err := resolveAlpha(ctx, e, cfg, logger)
	if err != nil {
		return err
	}

	ex, err := explore.New(ds, cfg.NFunc, alpha, append(cfg.ExploreOptions(), explore.WithLogger(logger))...)
	if err != nil {
		return err
	}
	sweep, runErr := ex.Run(ctx)
	for _, pe := range sweep.Errors {
		logger.Warn("inversion failed", "d_max", pe.DMax, "error", pe.Err)
	}

	md, _ := cmd.Flags().GetBool("markdown")
	if md {
		err = writeSweepMarkdown(cmd.OutOrStdout(), sweep, alpha)
	} else {
		err = writeSweepTable(cmd.OutOrStdout(), sweep)
	}
	if err != nil {
		return err
	}

	return runErr
}

func sweepRows(s *explore.SweepResult) [][]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', 5, 64) }
	rows := make([][]string, 0, len(s.Points))
	for _, p := range s.Points {
		n := float64(max(p.Result.NPoints, 1))
		rows = append(rows, []string{
			f(p.DMax), f(p.Chi2 / n), f(p.Rg), f(p.IQ0), f(p.Background),
			f(p.Oscillation), f(p.Positive), f(p.PosErr),
		})
	}

	return rows
}

// writeSweepTable prints an aligned plain-text table.
func writeSweepTable(w io.Writer, s *explore.SweepResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for k, h := range sweepHeader {
		if k > 0 {
			fmt.Fprint(tw, "\t")
		}
		fmt.Fprint(tw, h)
	}
	fmt.Fprintln(tw)
	for _, row := range sweepRows(s) {
		for k, c := range row {
			if k > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}

	return tw.Flush()
}

// writeSweepMarkdown prints the sweep as a Markdown report.
func writeSweepMarkdown(w io.Writer, s *explore.SweepResult, alpha float64) error {
	md := markdown.NewMarkdown(w)
	md.H1("D_max sweep")
	md.PlainText("")
	md.PlainText(fmt.Sprintf("alpha = %g, %d points solved, %d failed.", alpha, len(s.Points), len(s.Errors)))
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: sweepHeader,
		Rows:   sweepRows(s),
	})
	if best, ok := s.Best(); ok {
		md.PlainText("")
		md.PlainText(fmt.Sprintf("Lowest chi2 at d_max = %g.", best.DMax))
	}
	if len(s.Errors) > 0 {
		md.H2("Failed points")
		rows := make([][]string, 0, len(s.Errors))
		for _, pe := range s.Errors {
			rows = append(rows, []string{strconv.FormatFloat(pe.DMax, 'g', 5, 64), pe.Err.Error()})
		}
		md.Table(markdown.TableSet{Header: []string{"d_max", "error"}, Rows: rows})
	}

	return md.Build()
}
