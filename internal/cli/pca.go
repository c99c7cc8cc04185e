// SPDX-License-Identifier: MIT

package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/LTLA/powerit/covariance"
)

type pcaOptions struct {
	run      runFlags
	format   string
	mode     string
	noCenter bool
	log1p    bool
	scores   bool
	asJSON   bool
}

func newPCACmd() *cobra.Command {
	var o pcaOptions

	cmd := &cobra.Command{
		Use:   "pca [file]",
		Short: "Dominant principal axis of a data matrix",
		Long: `Read an observations × features matrix, build its covariance (or the Gram
matrix of the observations, whichever is smaller in auto mode) and report the
dominant eigenvalue with the unit-norm feature loadings.`,
		Example: `  powerit pca counts.csv --log1p
  powerit pca --mode observations --scores data.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runPCA(cmd, path, o)
		},
	}

	o.run.register(cmd)
	def := DefaultConfig().Covariance
	cmd.Flags().StringVar(&o.format, "format", formatAuto, "input format: auto, csv or json")
	cmd.Flags().StringVar(&o.mode, "mode", def.Mode, "cross-product side: auto, features or observations")
	cmd.Flags().BoolVar(&o.noCenter, "no-center", !def.Center, "do not subtract column means")
	cmd.Flags().BoolVar(&o.log1p, "log1p", def.Log1p, "apply log(1+x) to every value before centring")
	cmd.Flags().BoolVar(&o.scores, "scores", false, "also print the projection of every observation")
	cmd.Flags().BoolVar(&o.asJSON, "json", false, "print the result as JSON")

	return cmd
}

// apply merges the explicitly set pca flags into cfg.Covariance.
func (o pcaOptions) apply(cmd *cobra.Command, cfg *Config) {
	fs := cmd.Flags()
	if fs.Changed("mode") {
		cfg.Covariance.Mode = o.mode
	}
	if fs.Changed("no-center") {
		cfg.Covariance.Center = !o.noCenter
	}
	if fs.Changed("log1p") {
		cfg.Covariance.Log1p = o.log1p
	}
}

func runPCA(cmd *cobra.Command, path string, o pcaOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := o.run.resolve(cmd)
	if err != nil {
		return err
	}
	o.apply(cmd, &cfg)

	src, err := cfg.source()
	if err != nil {
		return err
	}
	mode, err := covariance.ParseMode(cfg.Covariance.Mode)
	if err != nil {
		return err
	}

	x, err := loadMatrix(path, o.format, cmd.InOrStdin())
	if err != nil {
		return err
	}
	logger.Debug("loaded data", "observations", x.Rows(), "features", x.Cols())

	power, release, err := cfg.powerOptions(logger)
	if err != nil {
		return err
	}
	defer release()

	opts := covariance.Options{
		Mode:   mode,
		Center: cfg.Covariance.Center,
		Power:  power,
	}
	if cfg.Covariance.Log1p {
		opts.Transform = func(v float64, _, _ int) float64 { return math.Log1p(v) }
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	prog := newProgress(logger)
	pc, err := covariance.Dominant(x, src, opts)
	if err != nil {
		return err
	}
	if pc.Converged() {
		prog.done("power iteration converged", "iterations", pc.Iterations, "mode", pc.Mode)
	} else {
		logger.Warn("power iteration did not converge", "limit", power.Iterations, "mode", pc.Mode)
	}

	r := report{
		Value:      pc.Value,
		Iterations: pc.Iterations,
		Converged:  pc.Converged(),
		Mode:       pc.Mode.String(),
		Vector:     pc.Loadings,
	}
	if o.scores {
		r.Scores = pc.Scores
	}

	return r.write(cmd.OutOrStdout(), o.asJSON)
}
