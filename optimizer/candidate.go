package optimizer

import "github.com/pggpgg/kobayashi-stfc/abilities"

// Candidate is one enumerated crew assignment along with a human-readable
// label (the heuristic seed's name, or empty for a generated combination).
type Candidate struct {
	Name string
	Crew abilities.Crew
}

// BelowDecksMode selects pruning rule 3's two enumeration modes.
type BelowDecksMode string

const (
	// BelowDecksOrdered takes the first BelowDecksSlots officers from
	// OrderedBelowDecks, unchanged across every captain/bridge pair.
	BelowDecksOrdered BelowDecksMode = "ordered"
	// BelowDecksExploration enumerates every C(m, k) combination of the
	// below-decks pool.
	BelowDecksExploration BelowDecksMode = "exploration"
)

// EnumerateOptions configures candidate generation (spec §4.4).
type EnumerateOptions struct {
	// Roster is the pool of owned officers available for every seat.
	Roster []*abilities.Officer
	// RankByOfficerID resolves the seated rank for scaling; officers absent
	// from this map default to rank 1.
	RankByOfficerID map[string]int

	// BelowDecksSlots is k, the ship's active below-decks slot count (1-7).
	BelowDecksSlots int
	BelowDecksMode  BelowDecksMode
	// OrderedBelowDecks is the supplied list for Ordered mode; only its
	// first BelowDecksSlots entries are used.
	OrderedBelowDecks []*abilities.Officer
	// BelowDecksFilterAbility restricts the Exploration-mode pool to
	// officers carrying a below_decks ability.
	BelowDecksFilterAbility bool

	// HeuristicSeeds are scored first, in the order given (spec §4.4 rule 4).
	HeuristicSeeds []HeuristicSeed

	// MaxCandidates truncates the stream after pruning (rule 5). 0 means
	// unbounded.
	MaxCandidates int
}

// HeuristicSeed is a caller-supplied, fully-specified crew skeleton scored
// ahead of the generated remainder so early cancellation still yields
// usable results (spec §4.4).
type HeuristicSeed struct {
	Name       string
	Captain    abilities.OfficerSeat
	Bridge     [2]abilities.OfficerSeat
	BelowDecks []abilities.OfficerSeat
}

func (o EnumerateOptions) rank(off *abilities.Officer) int {
	if off == nil {
		return 1
	}
	if r, ok := o.RankByOfficerID[off.ID]; ok && r > 0 {
		return r
	}
	return 1
}

// combIter generates size-k combinations of indices into [0, n) in
// lexicographic order, one call to next() at a time — the "lazy,
// restartable, finite sequence" spec §4.4 asks the enumerator to be.
// Restartable here means what it means for any pull-based iterator:
// callers can stop calling next() and resume later without losing place.
type combIter struct {
	n, k    int
	idx     []int
	started bool
	done    bool
}

func newCombIter(n, k int) *combIter {
	if k <= 0 || k > n {
		return &combIter{done: true}
	}
	return &combIter{n: n, k: k}
}

func (c *combIter) next() ([]int, bool) {
	if c.done {
		return nil, false
	}
	if !c.started {
		c.started = true
		c.idx = make([]int, c.k)
		for i := range c.idx {
			c.idx[i] = i
		}
		return c.idx, true
	}
	i := c.k - 1
	for i >= 0 && c.idx[i] == c.n-c.k+i {
		i--
	}
	if i < 0 {
		c.done = true
		return nil, false
	}
	c.idx[i]++
	for j := i + 1; j < c.k; j++ {
		c.idx[j] = c.idx[j-1] + 1
	}
	return c.idx, true
}

// Enumerator walks heuristic seeds, then the captain x bridge-pair x
// below-decks cartesian product: captains in roster order, bridge pairs
// drawn from the captain's group in combination order. Group pairs are not
// reordered by any priority. Overlapping-officer combinations are not excluded at generation
// time; abilities.Crew.Validate rejects them downstream as
// ScenarioInfeasible, which the spec's error taxonomy already treats as
// "skip candidate, report in summary" — cheaper than building exclusion
// logic into the combinatorics.
type Enumerator struct {
	opts EnumerateOptions

	heuristics []HeuristicSeed
	hIdx       int

	captains []*abilities.Officer
	capIdx   int

	curCaptain *abilities.Officer
	curGroup   []*abilities.Officer
	bridgeIter *combIter
	curBridge  [2]*abilities.Officer

	belowDecksPool []*abilities.Officer
	belowDecksIter *combIter

	emitted int
}

// NewEnumerator builds an enumerator over the pruned candidate space (spec
// §4.4 pruning rules 1-3).
func NewEnumerator(opts EnumerateOptions) *Enumerator {
	e := &Enumerator{opts: opts, heuristics: opts.HeuristicSeeds}

	// Rule 1: captain eligibility.
	for _, off := range opts.Roster {
		if off.HasCaptainAbility() {
			e.captains = append(e.captains, off)
		}
	}
	return e
}

// bridgeEligible applies rule 2: bridge officers share the captain's group.
func (e *Enumerator) bridgeEligible(captain *abilities.Officer) []*abilities.Officer {
	if captain.Group == "" {
		return nil
	}
	var out []*abilities.Officer
	for _, off := range e.opts.Roster {
		if off.ID == captain.ID {
			continue
		}
		if off.Group == captain.Group {
			out = append(out, off)
		}
	}
	return out
}

// belowDecksPoolFor applies rule 3. Ordered mode yields a single pool of
// exactly k officers (so its combIter(k, k) produces exactly one
// combination); Exploration mode yields the full (optionally
// ability-filtered) roster pool.
func (e *Enumerator) belowDecksPoolFor() []*abilities.Officer {
	k := e.opts.BelowDecksSlots
	if e.opts.BelowDecksMode == BelowDecksExploration {
		if !e.opts.BelowDecksFilterAbility {
			return e.opts.Roster
		}
		var out []*abilities.Officer
		for _, off := range e.opts.Roster {
			if off.BelowDecks != nil {
				out = append(out, off)
			}
		}
		return out
	}
	if len(e.opts.OrderedBelowDecks) < k {
		return nil
	}
	return e.opts.OrderedBelowDecks[:k]
}

func (e *Enumerator) capped() bool {
	return e.opts.MaxCandidates > 0 && e.emitted >= e.opts.MaxCandidates
}

func (e *Enumerator) seedCandidate(seed HeuristicSeed) Candidate {
	return Candidate{
		Name: seed.Name,
		Crew: abilities.Crew{
			Captain:    seed.Captain,
			Bridge:     seed.Bridge,
			BelowDecks: seed.BelowDecks,
		},
	}
}

func (e *Enumerator) buildCandidate(bdIdx []int) Candidate {
	below := make([]abilities.OfficerSeat, len(bdIdx))
	for i, idx := range bdIdx {
		off := e.belowDecksPool[idx]
		below[i] = abilities.OfficerSeat{Officer: off, Rank: e.opts.rank(off)}
	}
	bridge := [2]abilities.OfficerSeat{
		{Officer: e.curBridge[0], Rank: e.opts.rank(e.curBridge[0])},
		{Officer: e.curBridge[1], Rank: e.opts.rank(e.curBridge[1])},
	}
	return Candidate{
		Crew: abilities.Crew{
			Captain:    abilities.OfficerSeat{Officer: e.curCaptain, Rank: e.opts.rank(e.curCaptain)},
			Bridge:     bridge,
			BelowDecks: below,
		},
	}
}

// Next returns the next candidate in enumeration order, or false once the
// sequence (heuristics + pruned cartesian product, capped by MaxCandidates)
// is exhausted.
func (e *Enumerator) Next() (Candidate, bool) {
	if e.capped() {
		return Candidate{}, false
	}
	if e.hIdx < len(e.heuristics) {
		seed := e.heuristics[e.hIdx]
		e.hIdx++
		e.emitted++
		return e.seedCandidate(seed), true
	}

	for {
		if e.capped() {
			return Candidate{}, false
		}

		if e.belowDecksIter != nil {
			if bd, ok := e.belowDecksIter.next(); ok {
				cand := e.buildCandidate(bd)
				e.emitted++
				return cand, true
			}
			e.belowDecksIter = nil
		}

		if e.bridgeIter != nil {
			if pr, ok := e.bridgeIter.next(); ok {
				e.curBridge = [2]*abilities.Officer{e.curGroup[pr[0]], e.curGroup[pr[1]]}
				e.belowDecksPool = e.belowDecksPoolFor()
				e.belowDecksIter = newCombIter(len(e.belowDecksPool), e.opts.BelowDecksSlots)
				continue
			}
			e.bridgeIter = nil
		}

		advanced := false
		for e.capIdx < len(e.captains) {
			captain := e.captains[e.capIdx]
			e.capIdx++
			group := e.bridgeEligible(captain)
			if len(group) < 2 {
				continue
			}
			e.curCaptain = captain
			e.curGroup = group
			e.bridgeIter = newCombIter(len(group), 2)
			advanced = true
			break
		}
		if !advanced {
			return Candidate{}, false
		}
	}
}
