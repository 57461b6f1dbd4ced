package optimizer

import (
	"errors"
	"testing"

	"github.com/pggpgg/kobayashi-stfc/record"
)

func rankedResult(name string, winRate, hullFrac, avgRounds float64) Result {
	return Result{
		Candidate: Candidate{Name: name},
		Stats: record.AggregateStats{
			WinRate:               winRate,
			AvgHullFracWhenWining: hullFrac,
			AvgRounds:             avgRounds,
		},
	}
}

func TestRankSortsByPrimaryMetricDescending(t *testing.T) {
	results := []Result{
		rankedResult("low", 0.2, 0.5, 3),
		rankedResult("high", 0.9, 0.5, 3),
		rankedResult("mid", 0.5, 0.5, 3),
	}
	ranked := Rank(results, RankWinRate, 0)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 ranked entries, got %d", len(ranked))
	}
	got := []string{ranked[0].Candidate.Name, ranked[1].Candidate.Name, ranked[2].Candidate.Name}
	want := []string{"high", "mid", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rank order = %v, want %v", got, want)
		}
	}
}

func TestRankTieBreaksOnHullFracThenRounds(t *testing.T) {
	results := []Result{
		rankedResult("tied-more-rounds", 0.7, 0.6, 5),
		rankedResult("tied-fewer-rounds", 0.7, 0.6, 2),
		rankedResult("tied-better-hull", 0.7, 0.8, 5),
	}
	ranked := Rank(results, RankWinRate, 0)
	if ranked[0].Candidate.Name != "tied-better-hull" {
		t.Fatalf("expected tied-better-hull first (higher hull frac tie-break), got %q", ranked[0].Candidate.Name)
	}
	if ranked[1].Candidate.Name != "tied-fewer-rounds" {
		t.Fatalf("expected tied-fewer-rounds second (inverse avg_rounds tie-break), got %q", ranked[1].Candidate.Name)
	}
}

func TestRankExcludesErroredCandidates(t *testing.T) {
	results := []Result{
		rankedResult("ok", 0.5, 0.5, 3),
		{Candidate: Candidate{Name: "bad"}, Err: errors.New("infeasible")},
	}
	ranked := Rank(results, RankWinRate, 0)
	if len(ranked) != 1 || ranked[0].Candidate.Name != "ok" {
		t.Fatalf("expected errored candidate excluded, got %+v", ranked)
	}
}

func TestRankTruncatesToTopK(t *testing.T) {
	results := make([]Result, 10)
	for i := range results {
		results[i] = rankedResult("c", float64(i)/10, 0.5, 3)
	}
	ranked := Rank(results, RankWinRate, 3)
	if len(ranked) != 3 {
		t.Fatalf("expected 3 entries with topK=3, got %d", len(ranked))
	}
}

func TestRankDefaultsTopKWhenZero(t *testing.T) {
	results := make([]Result, DefaultTopK+10)
	for i := range results {
		results[i] = rankedResult("c", float64(i), 0.5, 3)
	}
	ranked := Rank(results, RankWinRate, 0)
	if len(ranked) != DefaultTopK {
		t.Fatalf("expected DefaultTopK entries, got %d", len(ranked))
	}
}

func TestRankIsDeterministicAcrossRuns(t *testing.T) {
	results := []Result{
		rankedResult("a", 0.5, 0.5, 3),
		rankedResult("b", 0.5, 0.5, 3),
		rankedResult("c", 0.9, 0.5, 3),
	}
	first := Rank(results, RankWinRate, 0)
	second := Rank(results, RankWinRate, 0)
	for i := range first {
		if first[i].Candidate.Name != second[i].Candidate.Name {
			t.Fatalf("ranking not deterministic: %v vs %v", first, second)
		}
	}
}
