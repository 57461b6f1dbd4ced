// Package config loads kobayashi's typed option records from an optional
// config file plus environment overrides (spec §9's "replace free-form
// named parameters with typed option records" note, extended to the
// process boundary).
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimulateOptions configures a single-fight CLI invocation.
type SimulateOptions struct {
	Seed                 uint64
	Trace                bool
	HullBreachThresholds []float64
}

// MonteCarloOptions configures a batch-of-fights CLI invocation.
type MonteCarloOptions struct {
	Fights   uint64
	BaseSeed uint64
	Workers  int
}

// OptimizeOptions configures an optimizer CLI invocation.
type OptimizeOptions struct {
	FightsPerCandidate uint64
	BaseSeed           uint64
	Workers            int
	BelowDecksSlots    int
	RankMetric         string
	TopK               int
	MaxCandidates      int
}

// Options bundles every subcommand's defaults in one loadable document.
type Options struct {
	Simulate   SimulateOptions
	MonteCarlo MonteCarloOptions
	Optimize   OptimizeOptions
}

func defaults(v *viper.Viper) {
	v.SetDefault("simulate.seed", 1)
	v.SetDefault("simulate.trace", false)
	v.SetDefault("simulate.hull_breach_thresholds", []float64{0.5, 0.25})

	v.SetDefault("monte_carlo.fights", 10000)
	v.SetDefault("monte_carlo.base_seed", 1)
	v.SetDefault("monte_carlo.workers", 0)

	v.SetDefault("optimize.fights_per_candidate", 2000)
	v.SetDefault("optimize.base_seed", 1)
	v.SetDefault("optimize.workers", 0)
	v.SetDefault("optimize.below_decks_slots", 1)
	v.SetDefault("optimize.rank_metric", "win_rate")
	v.SetDefault("optimize.top_k", 50)
	v.SetDefault("optimize.max_candidates", 0)
}

// Load reads configFile (extension-less, resolved by viper against the
// working directory and a data/config subdirectory) if present, overlays
// KOBAYASHI_-prefixed environment variables, and returns the resolved
// Options. A missing config file falls back to defaults rather than
// failing — kobayashi has no property that must come from a file.
func Load(configFile string) (*Options, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("KOBAYASHI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigName(configFile)
		v.AddConfigPath(".")
		v.AddConfigPath("data/config")
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return nil, fmt.Errorf("parse config %q: %w", configFile, err)
			}
		}
	}

	opts := &Options{
		Simulate: SimulateOptions{
			Seed:                 v.GetUint64("simulate.seed"),
			Trace:                v.GetBool("simulate.trace"),
			HullBreachThresholds: v.GetFloat64Slice("simulate.hull_breach_thresholds"),
		},
		MonteCarlo: MonteCarloOptions{
			Fights:   v.GetUint64("monte_carlo.fights"),
			BaseSeed: v.GetUint64("monte_carlo.base_seed"),
			Workers:  v.GetInt("monte_carlo.workers"),
		},
		Optimize: OptimizeOptions{
			FightsPerCandidate: v.GetUint64("optimize.fights_per_candidate"),
			BaseSeed:           v.GetUint64("optimize.base_seed"),
			Workers:            v.GetInt("optimize.workers"),
			BelowDecksSlots:    v.GetInt("optimize.below_decks_slots"),
			RankMetric:         v.GetString("optimize.rank_metric"),
			TopK:               v.GetInt("optimize.top_k"),
			MaxCandidates:      v.GetInt("optimize.max_candidates"),
		},
	}
	return opts, nil
}
