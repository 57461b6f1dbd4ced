package combat

import (
	"math"

	"github.com/pggpgg/kobayashi-stfc/abilities"
)

// burningTag is the Tag-kind stat name combat recognizes for the round-end
// burning tick (spec §4.2 step 8). Any ability author can emit a Tag
// effect with this Stat value; the engine needs no further declaration.
const burningTag abilities.StatKey = "burning"

// dynState is the per-fight, mutable bookkeeping for a BuffSet's dynamic
// effects: rounds/stacks remaining and whether each has expired. It is
// allocated once at Simulate entry, sized to the compiled BuffSet's dynamic
// effect count, and never touched by any other fight — the BuffSet itself
// stays immutable and shared (spec §5).
type dynState struct {
	roundsRemaining  [abilities.NumTriggers][]int
	stacksRemaining  [abilities.NumTriggers][]int
	firstActiveRound [abilities.NumTriggers][]int
	expired          [abilities.NumTriggers][]bool
}

func newDynState(buf *abilities.BuffSet) *dynState {
	ds := &dynState{}
	for t := 0; t < abilities.NumTriggers; t++ {
		n := len(buf.Dynamic[t])
		if n == 0 {
			continue
		}
		ds.roundsRemaining[t] = make([]int, n)
		ds.stacksRemaining[t] = make([]int, n)
		ds.firstActiveRound[t] = make([]int, n)
		ds.expired[t] = make([]bool, n)
		for i, de := range buf.Dynamic[t] {
			ds.roundsRemaining[t][i] = -1
			ds.stacksRemaining[t][i] = -1
			if de.Duration.Kind == abilities.DurationRounds {
				ds.roundsRemaining[t][i] = de.Duration.N
			}
			if de.Duration.Kind == abilities.DurationStacks {
				ds.stacksRemaining[t][i] = de.Duration.N
			}
		}
	}
	return ds
}

// tickRoundEnd decrements rounds-remaining counters and expires effects
// that reach zero (spec §4.2 step 8).
func (ds *dynState) tickRoundEnd() {
	for t := 0; t < abilities.NumTriggers; t++ {
		for i := range ds.roundsRemaining[t] {
			if ds.expired[t][i] || ds.roundsRemaining[t][i] < 0 {
				continue
			}
			ds.roundsRemaining[t][i]--
			if ds.roundsRemaining[t][i] <= 0 {
				ds.expired[t][i] = true
			}
		}
	}
}

// consumeStack records one firing against a Stacks(N) effect, expiring it
// once its stacks are exhausted.
func (ds *dynState) consumeStack(trigger int, i int) {
	if ds.stacksRemaining[trigger][i] < 0 {
		return
	}
	ds.stacksRemaining[trigger][i]--
	if ds.stacksRemaining[trigger][i] <= 0 {
		ds.expired[trigger][i] = true
	}
}

// magnitude resolves a dynamic effect's current value, applying its decay
// or accumulate curve (spec §4.2 step 1). roundsActive is 1 on the round
// the effect first fires.
func magnitude(de *abilities.DynamicEffect, roundsActive int) float64 {
	v := de.Value
	n := float64(roundsActive - 1)

	if de.Decay != nil {
		switch de.Decay.Kind {
		case abilities.DecayLinear:
			v -= de.Decay.Amount * n
		case abilities.DecayExponential:
			v *= math.Pow(de.Decay.Amount, n)
		}
		if v < de.Decay.Floor {
			v = de.Decay.Floor
		}
	}

	if de.Accumulate != nil {
		switch de.Accumulate.Kind {
		case abilities.AccumulateLinear:
			v += de.Accumulate.Amount * n
		case abilities.AccumulateExponential:
			v *= math.Pow(1+de.Accumulate.Amount, n)
		case abilities.AccumulateStep:
			v += de.Accumulate.Amount * math.Floor(n)
		}
		if v > de.Accumulate.Ceiling {
			v = de.Accumulate.Ceiling
		}
	}

	return v
}
