// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/prinv/internal/config"
	"github.com/katalvlaran/prinv/invert"
	"github.com/katalvlaran/prinv/prfile"
)

// NewInvertCmd creates the invert command.
func NewInvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invert <data-file>",
		Short: "Invert a scattering curve into P(r)",
		Long: `Invert fits P(r) = Σ c_n·2r·sin(nπr/D_max) to the data and writes a state
file: the inversion parameters, the coefficients with their variances and a
P(r) table. With --alpha 0 (the default) the regularization weight is estimated.

Examples:
  # Invert with 15 basis functions and D_max = 120
  prinv invert data.txt --nfunc 15 --d-max 120

  # Fit a constant background and save the state
  prinv invert data.txt -b -o data.prv`,
		Args: requireOneArg,
		RunE: runInvertCmd,
	}

	addInversionFlags(cmd.Flags())
	cmd.Flags().IntP("points", "p", config.DefaultOutputPoints, "Number of P(r) rows written")
	cmd.Flags().StringP("output", "o", "", "Write the state file to this path (default: stdout)")

	return cmd
}

func runInvertCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	res, err := runInvert(ctx, args[0], cfg, logger)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("output")
	w, closeFn, err := openOutput(cmd, out)
	if err != nil {
		return err
	}
	if err = prfile.Write(w, res, prfile.WithPoints(cfg.OutputPoints)); err != nil {
		_ = closeFn()
		return err
	}
	if err = closeFn(); err != nil {
		return err
	}
	if out != "" && out != "-" {
		return printSummary(cmd.OutOrStdout(), res)
	}

	return nil
}

// runInvert loads the data, resolves alpha and solves once.
func runInvert(ctx context.Context, path string, cfg *config.Config, logger *slog.Logger) (*invert.Result, error) {
	ds, err := loadDataset(path, cfg, logger)
	if err != nil {
		return nil, err
	}
	e, err := newEngine(ds, cfg, logger)
	if err != nil {
		return nil, err
	}
	alpha, err := resolveAlpha(ctx, e, cfg, logger)
	if err != nil {
		return nil, err
	}

	return e.Invert(cfg.NFunc, alpha)
}

// printSummary writes the diagnostics of res as "key = value" lines.
func printSummary(w io.Writer, res *invert.Result) error {
	d, err := res.Diagnostics()
	if err != nil {
		return err
	}
	rows := []struct {
		key string
		val any
	}{
		{"d_max", res.DMax},
		{"nfunc", res.NFunc},
		{"alpha", res.Alpha},
		{"chi2/N", res.Chi2 / float64(res.NPoints)},
		{"rg", d.Rg},
		{"i(0)", d.IQ0},
		{"background", d.Background},
		{"oscillation", d.Oscillation},
		{"positive", d.Positive},
		{"positive_1σ", d.PosErr},
		{"peaks", d.Peaks},
		{"elapsed", res.Elapsed},
	}
	for _, r := range rows {
		if _, err = fmt.Fprintf(w, "%-12s = %v\n", r.key, r.val); err != nil {
			return err
		}
	}

	return nil
}
