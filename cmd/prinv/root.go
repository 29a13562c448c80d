// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prinv",
		Short: "Pair-distance distribution P(r) from small-angle scattering data",
		Long: `prinv inverts a small-angle scattering curve I(Q) into the pair-distance
distribution P(r) of the scattering object, using a sine basis on [0, D_max]
and a curvature penalty weighted by alpha.

Data files hold whitespace separated "Q I dI" columns; '#' starts a comment.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .prinv.yaml or $XDG_CONFIG_HOME/prinv/config.yaml)")

	cmd.AddCommand(NewInvertCmd())
	cmd.AddCommand(NewExploreCmd())
	cmd.AddCommand(NewSphereCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
