package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/montecarlo"
	"github.com/pggpgg/kobayashi-stfc/record"
)

var montecarloFights uint64
var montecarloBaseSeed uint64
var montecarloWorkers int

var montecarloCmd = &cobra.Command{
	Use:   "montecarlo <scenario.json>",
	Short: "Run a batch of fights and print aggregate stats",
	Args:  cobra.ExactArgs(1),
	RunE:  runMontecarlo,
}

func init() {
	montecarloCmd.Flags().Uint64Var(&montecarloFights, "fights", 0, "fight count (0 uses config default)")
	montecarloCmd.Flags().Uint64Var(&montecarloBaseSeed, "base-seed", 0, "base seed (0 uses config default)")
	montecarloCmd.Flags().IntVar(&montecarloWorkers, "workers", 0, "worker count (0 uses config default, which itself defaults to GOMAXPROCS)")
}

func runMontecarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sf, err := loadScenarioFile(args[0])
	if err != nil {
		return err
	}
	crew, err := sf.crew()
	if err != nil {
		return fmt.Errorf("build crew: %w", err)
	}

	buf, warnings, err := abilities.Compile(crew, sf.Ship, sf.Hostile, sf.Profile, abilities.CompileOptions{})
	if err != nil {
		return fmt.Errorf("compile crew: %w", err)
	}
	for _, w := range warnings {
		fmt.Println("warning:", w.String())
	}

	fights := montecarloFights
	if fights == 0 {
		fights = cfg.MonteCarlo.Fights
	}
	baseSeed := montecarloBaseSeed
	if baseSeed == 0 {
		baseSeed = cfg.MonteCarlo.BaseSeed
	}
	workers := montecarloWorkers
	if workers == 0 {
		workers = cfg.MonteCarlo.Workers
	}

	scenario := montecarlo.Scenario{Attacker: sf.Ship, Defender: sf.Hostile, Buf: buf}
	stats, err := montecarlo.Run(context.Background(), scenario, fights, baseSeed, montecarlo.RunOptions{Workers: workers})
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	fmt.Printf("scenario_id=%s\n", record.NewScenarioID().Hex())
	fmt.Printf("n=%d invalid=%d\n", stats.N, stats.InvalidFights)
	fmt.Printf("win_rate=%.4f (95%% CI [%.4f, %.4f])\n", stats.WinRate, stats.WinRate95CI[0], stats.WinRate95CI[1])
	fmt.Printf("stall_rate=%.4f loss_rate=%.4f r1_kill_rate=%.4f\n", stats.StallRate, stats.LossRate, stats.R1KillRate)
	fmt.Printf("avg_hull_frac_when_winning=%.4f avg_damage_round_1=%.2f avg_rounds=%.2f\n",
		stats.AvgHullFracWhenWining, stats.AvgDamageRound1, stats.AvgRounds)
	return nil
}
