package abilities

// DynamicEffect is a compiled, trigger-bucketed residual effect that could
// not be folded at compile time (spec §3's "Dynamic elements").
type DynamicEffect struct {
	SourceOfficerID string
	Kind            EffectKind
	Stat            StatKey
	Target          Target
	Operator        Operator
	Trigger         Trigger
	Value           float64 // already rank-scaled
	Chance          *float64
	Multiplier      *float64
	Duration        Duration
	Decay           *Decay
	Accumulate      *Accumulate
	Condition       Condition
}

// Layer is a single officer contribution retained for inspection/debugging,
// mirroring the teacher's ModifierStack.GetSummary. It has no effect on
// combat; the combat engine only ever reads AttackerStatic/DefenderStatic
// and Dynamic.
type Layer struct {
	SourceOfficerID string
	Stat            StatKey
	Operator        Operator
	Value           float64
	Static          bool
}

// BuffSet is the immutable, fight-scoped compiled output of Compile (spec
// §3, §4.1). It is safe to share by reference, read-only, across every
// worker goroutine scoring fights for one scenario (spec §5).
type BuffSet struct {
	// AttackerStatic/DefenderStatic hold fully-folded (Base*(1+ΣB)+ΣC, then
	// Min/Max-capped) absolute stat values. A stat absent from the map
	// means "no static contribution; use the ship's own base value."
	AttackerStatic map[StatKey]float64
	DefenderStatic map[StatKey]float64

	// Dynamic is bucketed by Trigger (see TriggerIndex) so the combat
	// engine never does a map lookup in its round loop (spec §9).
	Dynamic [NumTriggers][]DynamicEffect

	layers []Layer
}

// Layers returns a copy of the per-officer contribution trail, for
// debugging/UI — analogous to the teacher's ModifierStack.GetSummary.
func (b *BuffSet) Layers() []Layer {
	out := make([]Layer, len(b.layers))
	copy(out, b.layers)
	return out
}

// IsEmpty reports whether this BuffSet carries no contributions at all —
// the "empty crew identity" testable property (spec §8): an empty BuffSet
// must leave combat outcomes depending only on base stats.
func (b *BuffSet) IsEmpty() bool {
	if len(b.AttackerStatic) != 0 || len(b.DefenderStatic) != 0 {
		return false
	}
	for _, bucket := range b.Dynamic {
		if len(bucket) != 0 {
			return false
		}
	}
	return true
}
