// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/katalvlaran/prinv/internal/columns"
	"github.com/katalvlaran/prinv/internal/config"
	"github.com/katalvlaran/prinv/invert"
)

// addInversionFlags registers the flags shared by invert and explore.
func addInversionFlags(fs *pflag.FlagSet) {
	fs.IntP("nfunc", "n", config.DefaultNFunc, "Number of basis functions")
	fs.Float64P("alpha", "a", 0, "Regularization weight (0: estimate)")
	fs.Float64P("d-max", "d", config.DefaultDmax, "Maximum distance D_max")
	fs.Float64("q-min", 0, "Lowest Q used in the fit (0: open)")
	fs.Float64("q-max", 0, "Highest Q used in the fit (0: open)")
	fs.Float64("slit-height", 0, "Slit height in Q units")
	fs.Float64("slit-width", 0, "Slit width in Q units")
	fs.Int("smear-points", config.DefaultSmearPoints, "Slit quadrature points per dimension")
	fs.Float64("background", 0, "Fixed background subtracted before the fit")
	fs.BoolP("estimate-background", "b", false, "Fit a constant background")
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, _ = cmd.Root().PersistentFlags().GetBool("verbose")
	}

	return verbose
}

// setupLogger returns a text logger on w: warnings by default, debug when verbose.
func setupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// buildConfig loads the configuration file (if any) and applies explicitly set flags.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	explicit, _ := cmd.Flags().GetString("config")
	cfg := config.NewConfig()
	if path := config.FindConfigFile(explicit); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else if explicit != "" {
		return nil, fmt.Errorf("%s: %w", explicit, config.ErrConfigNotFound)
	}

	fs := cmd.Flags()
	var err error
	set := func(name string, apply func() error) {
		if err == nil && fs.Changed(name) {
			err = apply()
		}
	}
	set("nfunc", func() (e error) { cfg.NFunc, e = fs.GetInt("nfunc"); return })
	set("alpha", func() (e error) { cfg.Alpha, e = fs.GetFloat64("alpha"); return })
	set("d-max", func() (e error) { cfg.DMax, e = fs.GetFloat64("d-max"); return })
	set("q-min", func() (e error) { cfg.QMin, e = fs.GetFloat64("q-min"); return })
	set("q-max", func() (e error) { cfg.QMax, e = fs.GetFloat64("q-max"); return })
	set("slit-height", func() (e error) { cfg.SlitHeight, e = fs.GetFloat64("slit-height"); return })
	set("slit-width", func() (e error) { cfg.SlitWidth, e = fs.GetFloat64("slit-width"); return })
	set("smear-points", func() (e error) { cfg.SmearPoints, e = fs.GetInt("smear-points"); return })
	set("background", func() (e error) { cfg.Background, e = fs.GetFloat64("background"); return })
	set("estimate-background", func() (e error) { cfg.EstimateBackground, e = fs.GetBool("estimate-background"); return })
	set("points", func() (e error) { cfg.OutputPoints, e = fs.GetInt("points"); return })
	set("sweep-points", func() (e error) { cfg.Sweep.Points, e = fs.GetInt("sweep-points"); return })
	set("low", func() (e error) { cfg.Sweep.Low, e = fs.GetFloat64("low"); return })
	set("high", func() (e error) { cfg.Sweep.High, e = fs.GetFloat64("high"); return })
	set("concurrency", func() (e error) { cfg.Sweep.Concurrency, e = fs.GetInt("concurrency"); return })
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	return cfg, nil
}

// loadDataset reads a column file and attaches the configured slit.
func loadDataset(path string, cfg *config.Config, logger *slog.Logger) (invert.Dataset, error) {
	d, err := columns.ReadFile(path)
	if err != nil {
		return invert.Dataset{}, err
	}
	if d.AssumedErrors {
		logger.Warn("data file has no error column, statistical errors are assumed", "file", path)
	}
	ds, err := invert.NewDataset(d.Q, d.I, d.DI)
	if err != nil {
		return invert.Dataset{}, fmt.Errorf("%s: %w", path, err)
	}

	return ds.WithSlit(cfg.SlitHeight, cfg.SlitWidth)
}

// newEngine returns an engine loaded with ds at the configured D_max.
func newEngine(ds invert.Dataset, cfg *config.Config, logger *slog.Logger) (*invert.Engine, error) {
	e := invert.New(append(cfg.EngineOptions(), invert.WithLogger(logger))...)
	if err := e.SetDataset(ds); err != nil {
		return nil, err
	}
	if err := e.SetDmax(cfg.DMax); err != nil {
		return nil, err
	}

	return e, nil
}

// resolveAlpha returns the configured alpha, or estimates one when it is 0.
func resolveAlpha(ctx context.Context, e *invert.Engine, cfg *config.Config, logger *slog.Logger) (float64, error) {
	if cfg.Alpha > 0 {
		return cfg.Alpha, nil
	}
	est, err := e.EstimateAlpha(ctx, cfg.NFunc)
	if err != nil {
		return 0, err
	}
	if est.Warning != nil {
		logger.Warn("alpha estimate", "alpha", est.Alpha, "warning", est.Warning)
	} else {
		logger.Info("alpha estimate", "alpha", est.Alpha, "steps", est.Steps)
	}

	return est.Alpha, nil
}

// signalContext cancels on SIGINT/SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// openOutput returns stdout for "" or "-", otherwise creates path.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path) //nolint:gosec // user-provided output path is intentional
	if err != nil {
		return nil, nil, err
	}

	return f, f.Close, nil
}

// requireOneArg is cobra.ExactArgs(1) with a domain message.
func requireOneArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("expected exactly one data file")
	}

	return nil
}
