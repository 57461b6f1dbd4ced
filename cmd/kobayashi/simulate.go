package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/combat"
	"github.com/pggpgg/kobayashi-stfc/record"
)

var simulateSeed uint64
var simulateTrace bool

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario.json>",
	Short: "Run a single deterministic fight and print its outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().Uint64Var(&simulateSeed, "seed", 0, "fight seed (0 uses config default)")
	simulateCmd.Flags().BoolVar(&simulateTrace, "trace", false, "print a per-round trace")
}

func runSimulate(cmd *cobra.Command, args []string) error {
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

	seed := simulateSeed
	if seed == 0 {
		seed = cfg.Simulate.Seed
	}

	opts := combat.SimulateOptions{HullBreachThresholds: cfg.Simulate.HullBreachThresholds}
	var trace []record.RoundEvent
	if simulateTrace || cfg.Simulate.Trace {
		trace = make([]record.RoundEvent, 0, combat.MaxRounds)
		opts.Trace = &trace
	}

	out := combat.Simulate(sf.Ship, sf.Hostile, buf, seed, opts)
	rec := record.FightRecord{ID: record.NewScenarioID(), RecordedAt: time.Now(), Outcome: out}

	fmt.Printf("fight_id=%s\n", rec.ID.Hex())
	fmt.Printf("win=%v stall=%v invalid=%v rounds=%d\n", out.Win, out.Stall, out.Invalid, out.Rounds)
	fmt.Printf("attacker_hull_frac=%.4f attacker_hull_remaining=%.2f defender_hull_remaining=%.2f\n",
		out.AttackerHullFrac, out.AttackerHullRemaining, out.DefenderHullRemaining)
	fmt.Printf("total_damage_dealt=%.2f damage_round_1=%.2f\n", out.TotalDamageDealt, out.DamageDealtRound1)

	for _, ev := range trace {
		fmt.Printf("round %d: attacker_dmg=%.2f defender_dmg=%.2f shield_broke=%v hull_breached=%v kill=%v\n",
			ev.Round, ev.AttackerDamage, ev.DefenderDamage, ev.ShieldBroke, ev.HullBreached, ev.KillConfirmed)
	}
	return nil
}
