package optimizer

import (
	"sort"

	"github.com/pggpgg/kobayashi-stfc/record"
)

// RankMetric selects the primary sort key (spec §4.4).
type RankMetric string

const (
	RankWinRate            RankMetric = "win_rate"
	RankR1KillRate         RankMetric = "r1_kill_rate"
	RankAvgHullFracWinning RankMetric = "avg_hull_frac_when_winning"
)

func (m RankMetric) value(s record.AggregateStats) float64 {
	switch m {
	case RankR1KillRate:
		return s.R1KillRate
	case RankAvgHullFracWinning:
		return s.AvgHullFracWhenWining
	default:
		return s.WinRate
	}
}

// RankedEntry is one scored candidate with its full AggregateStats (spec
// §4.4's "returned with their full AggregateStats").
type RankedEntry struct {
	Candidate Candidate
	Stats     record.AggregateStats
}

// DefaultTopK is the top-K cutoff spec §4.4 names when the caller doesn't
// pick one.
const DefaultTopK = 50

// Rank sorts scored, successfully-evaluated results by the primary metric,
// breaking ties win_rate -> avg_hull_frac_when_winning -> inverse
// avg_rounds (spec §4.4), and returns the top K. The sort is stable, so a
// rerun with identical inputs reproduces an identical ranked list (spec
// §8's determinism-at-the-boundary contract).
func Rank(results []Result, metric RankMetric, topK int) []RankedEntry {
	if topK <= 0 {
		topK = DefaultTopK
	}

	scored := make([]RankedEntry, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		scored = append(scored, RankedEntry{Candidate: r.Candidate, Stats: r.Stats})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i].Stats, scored[j].Stats
		if mi, mj := metric.value(a), metric.value(b); mi != mj {
			return mi > mj
		}
		if a.WinRate != b.WinRate {
			return a.WinRate > b.WinRate
		}
		if a.AvgHullFracWhenWining != b.AvgHullFracWhenWining {
			return a.AvgHullFracWhenWining > b.AvgHullFracWhenWining
		}
		return a.AvgRounds < b.AvgRounds // inverse avg_rounds: fewer rounds ranks higher
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}
