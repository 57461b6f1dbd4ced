package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/optimizer"
	"github.com/pggpgg/kobayashi-stfc/record"
)

var optimizeFightsPerCandidate uint64
var optimizeBaseSeed uint64
var optimizeWorkers int
var optimizeBelowDecksSlots int
var optimizeRankMetric string
var optimizeTopK int
var optimizeMaxCandidates int

var optimizeCmd = &cobra.Command{
	Use:   "optimize <scenario.json>",
	Short: "Enumerate and rank crew candidates against a hostile",
	Args:  cobra.ExactArgs(1),
	RunE:  runOptimize,
}

func init() {
	optimizeCmd.Flags().Uint64Var(&optimizeFightsPerCandidate, "fights-per-candidate", 0, "fights scored per candidate (0 uses config default)")
	optimizeCmd.Flags().Uint64Var(&optimizeBaseSeed, "base-seed", 0, "base seed (0 uses config default)")
	optimizeCmd.Flags().IntVar(&optimizeWorkers, "workers", 0, "candidate worker count (0 uses config default, which itself defaults to GOMAXPROCS)")
	optimizeCmd.Flags().IntVar(&optimizeBelowDecksSlots, "below-decks-slots", 0, "ship's active below-decks slot count (0 uses config default)")
	optimizeCmd.Flags().StringVar(&optimizeRankMetric, "rank-metric", "", "win_rate | r1_kill_rate | avg_hull_frac_when_winning (empty uses config default)")
	optimizeCmd.Flags().IntVar(&optimizeTopK, "top-k", 0, "ranked list cutoff (0 uses config default)")
	optimizeCmd.Flags().IntVar(&optimizeMaxCandidates, "max-candidates", -1, "candidate cap after pruning, 0 means unbounded (-1 uses config default)")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sf, err := loadScenarioFile(args[0])
	if err != nil {
		return err
	}

	belowDecksSlots := optimizeBelowDecksSlots
	if belowDecksSlots == 0 {
		belowDecksSlots = cfg.Optimize.BelowDecksSlots
	}
	rankMetric := optimizer.RankMetric(optimizeRankMetric)
	if rankMetric == "" {
		rankMetric = optimizer.RankMetric(cfg.Optimize.RankMetric)
	}
	topK := optimizeTopK
	if topK == 0 {
		topK = cfg.Optimize.TopK
	}
	maxCandidates := optimizeMaxCandidates
	if maxCandidates < 0 {
		maxCandidates = cfg.Optimize.MaxCandidates
	}
	fightsPerCandidate := optimizeFightsPerCandidate
	if fightsPerCandidate == 0 {
		fightsPerCandidate = cfg.Optimize.FightsPerCandidate
	}
	baseSeed := optimizeBaseSeed
	if baseSeed == 0 {
		baseSeed = cfg.Optimize.BaseSeed
	}
	workers := optimizeWorkers
	if workers == 0 {
		workers = cfg.Optimize.Workers
	}

	enumOpts := optimizer.EnumerateOptions{
		Roster:          sf.rosterSlice(),
		RankByOfficerID: sf.rankByOfficerID(),
		BelowDecksSlots: belowDecksSlots,
		BelowDecksMode:  optimizer.BelowDecksExploration,
		MaxCandidates:   maxCandidates,
	}

	if od := sf.Optimize; od != nil {
		if od.BelowDecksMode == string(optimizer.BelowDecksOrdered) {
			enumOpts.BelowDecksMode = optimizer.BelowDecksOrdered
			roster := sf.officerRoster()
			for _, id := range od.OrderedBelowDecks {
				if off, ok := roster[id]; ok {
					enumOpts.OrderedBelowDecks = append(enumOpts.OrderedBelowDecks, off)
				}
			}
		}
		enumOpts.BelowDecksFilterAbility = od.BelowDecksFilterAbility

		for _, seedDTO := range od.HeuristicSeeds {
			crew, err := seedDTO.toCrew(sf.officerRoster())
			if err != nil {
				return fmt.Errorf("build heuristic seed crew: %w", err)
			}
			enumOpts.HeuristicSeeds = append(enumOpts.HeuristicSeeds, optimizer.HeuristicSeed{
				Captain:    crew.Captain,
				Bridge:     crew.Bridge,
				BelowDecks: crew.BelowDecks,
			})
		}
	}

	runOpts := optimizer.RunOptions{
		Enumerate:          enumOpts,
		Ship:               sf.Ship,
		Hostile:            sf.Hostile,
		Profile:            sf.Profile,
		CompileOptions:     abilities.CompileOptions{},
		FightsPerCandidate: fightsPerCandidate,
		BaseSeed:           baseSeed,
		RankMetric:         rankMetric,
		TopK:               topK,
		Workers:            workers,
	}

	ranked := optimizer.Run(context.Background(), runOpts)

	scenarioID := record.NewScenarioID()
	recordedAt := time.Now()
	records := make([]record.OptimizeRunRecord, len(ranked))
	for i, entry := range ranked {
		records[i] = record.OptimizeRunRecord{
			ID:            record.NewScenarioID(),
			ScenarioID:    scenarioID,
			RecordedAt:    recordedAt,
			CandidateName: crewLabel(entry.Candidate),
			Stats:         entry.Stats,
		}
	}

	fmt.Printf("scenario_id=%s\n", scenarioID.Hex())
	printRankedTable(ranked, records)
	return nil
}

func printRankedTable(ranked []optimizer.RankedEntry, records []record.OptimizeRunRecord) {
	table := tablewriter.NewTable(os.Stdout)
	table.Header("RANK", "RECORD_ID", "CAPTAIN", "BRIDGE", "WIN_RATE", "AVG_HULL_FRAC", "AVG_ROUNDS")
	for i, entry := range ranked {
		table.Append(
			fmt.Sprintf("%d", i+1),
			records[i].ID.Hex(),
			officerLabel(entry.Candidate.Crew.Captain.Officer),
			fmt.Sprintf("%s, %s", officerLabel(entry.Candidate.Crew.Bridge[0].Officer), officerLabel(entry.Candidate.Crew.Bridge[1].Officer)),
			fmt.Sprintf("%.4f", entry.Stats.WinRate),
			fmt.Sprintf("%.4f", entry.Stats.AvgHullFracWhenWining),
			fmt.Sprintf("%.2f", entry.Stats.AvgRounds),
		)
	}
	table.Render()
}

func crewLabel(c optimizer.Candidate) string {
	if c.Name != "" {
		return c.Name
	}
	return officerLabel(c.Crew.Captain.Officer)
}

func officerLabel(off *abilities.Officer) string {
	if off == nil {
		return "-"
	}
	if off.Name != "" {
		return off.Name
	}
	return off.ID
}
