package abilities

// EffectKind classifies the mechanical shape of an effect (spec §3).
type EffectKind string

const (
	EffectStatModify  EffectKind = "stat_modify"
	EffectExtraAttack EffectKind = "extra_attack"
	EffectTag         EffectKind = "tag"
)

// Target selects which side of the fight an effect applies to. In the
// single-ship-vs-single-hostile scope this spec covers, AllAllies behaves
// like Self and AllEnemies behaves like Enemy (there is only ever one ship
// per side); the four-way vocabulary is kept because it's what spec §3
// names and because a fleet-scale host could widen the fold-in later
// without changing the effect vocabulary.
type Target string

const (
	TargetSelf       Target = "self"
	TargetEnemy      Target = "enemy"
	TargetAllAllies  Target = "all_allies"
	TargetAllEnemies Target = "all_enemies"
)

// Operator is how an effect's value combines into a stat's stacking bucket
// (spec §4.1).
type Operator string

const (
	OpAdd          Operator = "add"
	OpMultiply     Operator = "multiply"
	OpSet          Operator = "set"
	OpMin          Operator = "min"
	OpMax          Operator = "max"
	OpAddPctOfMax  Operator = "add_pct_of_max"
)

// Trigger is when an effect is evaluated. Passive+Permanent effects with a
// compile-time-trivial condition fold into the static BuffSet; everything
// else is bucketed by Trigger into the dynamic residual (spec §4.1 step 2,
// §4.2's round-loop phases, §9's trigger-dispatch re-architecture note).
type Trigger string

const (
	TriggerPassive       Trigger = "passive"
	TriggerCombatStart   Trigger = "combat_start"
	TriggerRoundStart    Trigger = "round_start"
	TriggerAttack        Trigger = "attack"
	TriggerHit           Trigger = "hit"
	TriggerCritical      Trigger = "critical"
	TriggerShieldBreak   Trigger = "shield_break"
	TriggerHullBreach    Trigger = "hull_breach"
	TriggerKill          Trigger = "kill"
	TriggerReceiveDamage Trigger = "receive_damage"
	TriggerRoundEnd      Trigger = "round_end"
	TriggerCombatEnd     Trigger = "combat_end"
)

// triggerOrder fixes the array index each Trigger occupies in a BuffSet's
// dynamic bucket array — no map lookup in the combat engine's hot path.
var triggerOrder = [...]Trigger{
	TriggerPassive, TriggerCombatStart, TriggerRoundStart, TriggerAttack,
	TriggerHit, TriggerCritical, TriggerShieldBreak, TriggerHullBreach,
	TriggerKill, TriggerReceiveDamage, TriggerRoundEnd, TriggerCombatEnd,
}

// NumTriggers is the fixed width of a trigger-bucketed dynamic effect array.
const NumTriggers = len(triggerOrder)

// TriggerIndex returns the fixed bucket index for a trigger, or -1 if the
// trigger is not one of the closed set spec §3 defines.
func TriggerIndex(t Trigger) int {
	for i, candidate := range triggerOrder {
		if candidate == t {
			return i
		}
	}
	return -1
}

// DurationKind classifies how long a dynamic effect persists (spec §3).
type DurationKind string

const (
	DurationPermanent DurationKind = "permanent"
	DurationRounds    DurationKind = "rounds"
	DurationStacks    DurationKind = "stacks"
	DurationUntil     DurationKind = "until"
)

// Duration describes a dynamic effect's lifetime.
type Duration struct {
	Kind  DurationKind
	N     int       // Rounds(N) or Stacks(N)
	Until Condition // DurationUntil
}

// DecayKind selects how a decaying effect's magnitude shrinks each round.
type DecayKind string

const (
	DecayLinear      DecayKind = "linear"
	DecayExponential DecayKind = "exponential"
)

// Decay describes a per-round shrinking multiplier (spec §4.2 round step 1).
type Decay struct {
	Kind   DecayKind
	Amount float64 // per-round subtraction (linear) or base κ (exponential)
	Floor  float64
}

// AccumulateKind selects how an accumulating effect's magnitude grows.
type AccumulateKind string

const (
	AccumulateLinear      AccumulateKind = "linear"
	AccumulateExponential AccumulateKind = "exponential"
	AccumulateStep        AccumulateKind = "step"
)

// Accumulate describes a per-round growing multiplier, capped at a ceiling.
type Accumulate struct {
	Kind    AccumulateKind
	Amount  float64
	Ceiling float64
}

// Scaling resolves an effect's value against the officer's rank in that
// seat: effective = base + (rank-1)*per_rank, clamped by max_rank.
type Scaling struct {
	Base    float64
	PerRank float64
	MaxRank int
}

// Resolve computes the rank-scaled value for a given officer rank.
func (s Scaling) Resolve(rank int) float64 {
	r := rank
	if s.MaxRank > 0 && r > s.MaxRank {
		r = s.MaxRank
	}
	if r < 1 {
		r = 1
	}
	return s.Base + float64(r-1)*s.PerRank
}

// Effect is one entry in an ability's effect list (spec §3).
type Effect struct {
	Kind     EffectKind
	Stat     StatKey
	Target   Target
	Operator Operator
	Trigger  Trigger

	Value float64

	// Chance gates triggered evaluation (e.g. a proc chance); nil means
	// "always" for StatModify and is required (semantically) for
	// ExtraAttack, validated at compile time.
	Chance *float64
	// Multiplier is the ExtraAttack damage multiplier for the bonus shot.
	Multiplier *float64

	Duration   Duration
	Decay      *Decay
	Accumulate *Accumulate
	Scaling    *Scaling
	Condition  Condition // nil means unconditional
}

// resolvedValue returns the effect's value after rank scaling.
func (e Effect) resolvedValue(rank int) float64 {
	if e.Scaling != nil {
		return e.Scaling.Resolve(rank)
	}
	return e.Value
}
