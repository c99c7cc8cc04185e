// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"

	"github.com/LTLA/powerit"
	"github.com/LTLA/powerit/matrix"
)

type eigenOptions struct {
	run        runFlags
	format     string
	symmetrize bool
	symTol     float64
	asJSON     bool
}

func newEigenCmd() *cobra.Command {
	var o eigenOptions

	cmd := &cobra.Command{
		Use:   "eigen [file]",
		Short: "Dominant eigenvalue and eigenvector of a square matrix",
		Long: `Estimate the dominant eigenpair of a square matrix read from a CSV or JSON
file (or stdin when the file is "-" or omitted), starting from a seeded random vector.`,
		Example: `  powerit eigen cov.csv
  powerit eigen --threads 4 --pool --tolerance 1e-10 cov.json
  cat cov.csv | powerit eigen --format csv --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runEigen(cmd, path, o)
		},
	}

	o.run.register(cmd)
	cmd.Flags().StringVar(&o.format, "format", formatAuto, "input format: auto, csv or json")
	cmd.Flags().BoolVar(&o.symmetrize, "symmetrize", false, "replace the matrix with (A+Aᵀ)/2 before iterating")
	cmd.Flags().Float64Var(&o.symTol, "check-symmetric", 0, "reject matrices whose mirrored entries differ by more than this (0 disables)")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the result as JSON")

	return cmd
}

func runEigen(cmd *cobra.Command, path string, o eigenOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := o.run.resolve(cmd)
	if err != nil {
		return err
	}
	src, err := cfg.source()
	if err != nil {
		return err
	}

	m, err := loadMatrix(path, o.format, cmd.InOrStdin())
	if err != nil {
		return err
	}
	if err = matrix.ValidateSquare(m); err != nil {
		return err
	}
	logger.Debug("loaded matrix", "order", m.Rows())

	if o.symmetrize {
		if m, err = matrix.Symmetrize(m); err != nil {
			return err
		}
	}
	if o.symTol > 0 {
		if err = matrix.ValidateSymmetric(m, o.symTol); err != nil {
			return err
		}
	}

	opts, release, err := cfg.powerOptions(logger)
	if err != nil {
		return err
	}
	defer release()

	if err = ctx.Err(); err != nil {
		return err
	}

	prog := newProgress(logger)
	vec := make([]float64, m.Rows())
	res, err := powerit.ComputeDense(m, vec, src, opts)
	if err != nil {
		return err
	}
	if res.Converged() {
		prog.done("power iteration converged", "iterations", res.Iterations)
	} else {
		logger.Warn("power iteration did not converge", "limit", opts.Iterations, "tolerance", opts.Tolerance)
	}

	return report{
		Value:      res.Value,
		Iterations: res.Iterations,
		Converged:  res.Converged(),
		Vector:     vec,
	}.write(cmd.OutOrStdout(), o.asJSON)
}
