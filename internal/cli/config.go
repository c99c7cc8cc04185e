// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/LTLA/powerit"
	"github.com/LTLA/powerit/covariance"
	"github.com/LTLA/powerit/parallel"
	"github.com/LTLA/powerit/random"
)

// Sampler names accepted by --sampler and the config file.
const (
	samplerNormal    = "normal"
	samplerBoxMuller = "box-muller"
)

const defaultSeed = 42

var (
	errUnknownSampler = errors.New("unknown sampler")
	errUnknownKeys    = errors.New("unknown config keys")
)

// Config is the run configuration. The TOML file fills it first and
// explicitly set flags override individual fields.
//
//	iterations = 1000
//	tolerance  = 1e-9
//	threads    = 4
//	pool       = true
//	seed       = 7
//	sampler    = "box-muller"
//
//	[covariance]
//	mode   = "features"
//	center = true
//	log1p  = false
type Config struct {
	Iterations int     `toml:"iterations"`
	Tolerance  float64 `toml:"tolerance"`
	Threads    int     `toml:"threads"`
	Pool       bool    `toml:"pool"`
	Seed       uint64  `toml:"seed"`
	Sampler    string  `toml:"sampler"`

	Covariance CovarianceConfig `toml:"covariance"`
}

// CovarianceConfig holds the pca command settings.
type CovarianceConfig struct {
	Mode   string `toml:"mode"`
	Center bool   `toml:"center"`
	Log1p  bool   `toml:"log1p"`
}

// DefaultConfig mirrors powerit.DefaultOptions and covariance.DefaultOptions.
func DefaultConfig() Config {
	return Config{
		Iterations: powerit.DefaultIterations,
		Tolerance:  powerit.DefaultTolerance,
		Threads:    powerit.DefaultThreads,
		Seed:       defaultSeed,
		Sampler:    samplerNormal,
		Covariance: CovarianceConfig{
			Mode:   covariance.Auto.String(),
			Center: true,
		},
	}
}

// LoadConfig decodes path over DefaultConfig. An empty path returns the
// defaults. Keys the Config does not know are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, fmt.Errorf("config %s: %w: %s", path, errUnknownKeys, strings.Join(keys, ", "))
	}

	return cfg, nil
}

// source builds the seeded start-vector sampler.
func (c Config) source() (random.Normal, error) {
	rng := rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
	switch strings.ToLower(c.Sampler) {
	case "", samplerNormal:
		return rng, nil
	case samplerBoxMuller:
		return random.NewBoxMuller(rng), nil
	}

	return nil, fmt.Errorf("%q: %w", c.Sampler, errUnknownSampler)
}

// powerOptions converts c to engine options. The returned release func must
// be called once the engine is done; it closes the worker pool if one was
// started.
func (c Config) powerOptions(logger *log.Logger) (powerit.Options, func(), error) {
	opts := powerit.Options{
		Iterations: c.Iterations,
		Tolerance:  c.Tolerance,
		Threads:    c.Threads,
		Logger:     logger,
	}
	if err := opts.Validate(); err != nil {
		return opts, func() {}, err
	}
	if !c.Pool || c.Threads < 2 {
		return opts, func() {}, nil
	}

	pool := parallel.NewPool(c.Threads)
	opts.Runner = pool

	return opts, pool.Close, nil
}

// runFlags are the engine flags shared by every command.
type runFlags struct {
	config     string
	iterations int
	tolerance  float64
	threads    int
	pool       bool
	seed       uint64
	sampler    string
}

func (f *runFlags) register(cmd *cobra.Command) {
	def := DefaultConfig()
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "TOML file with run options")
	fs.IntVarP(&f.iterations, "iterations", "n", def.Iterations, "maximum number of power iterations")
	fs.Float64VarP(&f.tolerance, "tolerance", "t", def.Tolerance, "convergence tolerance on the change of the eigenvector")
	fs.IntVarP(&f.threads, "threads", "j", def.Threads, "number of workers for the matrix-vector product")
	fs.BoolVar(&f.pool, "pool", def.Pool, "reuse a persistent worker pool across iterations")
	fs.Uint64Var(&f.seed, "seed", def.Seed, "seed for the random starting vector")
	fs.StringVar(&f.sampler, "sampler", def.Sampler, "normal sampler: normal or box-muller")
}

// resolve loads the config file and applies the flags the user set.
func (f *runFlags) resolve(cmd *cobra.Command) (Config, error) {
	cfg, err := LoadConfig(f.config)
	if err != nil {
		return cfg, err
	}

	fs := cmd.Flags()
	if fs.Changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if fs.Changed("tolerance") {
		cfg.Tolerance = f.tolerance
	}
	if fs.Changed("threads") {
		cfg.Threads = f.threads
	}
	if fs.Changed("pool") {
		cfg.Pool = f.pool
	}
	if fs.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fs.Changed("sampler") {
		cfg.Sampler = f.sampler
	}

	return cfg, nil
}
