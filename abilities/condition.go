package abilities

// CompileContext is what's known about a condition at compile time: the
// crew's static composition (factions present, group member counts). It
// has no notion of round number or live stat values, so a condition that
// references either cannot be resolved here (spec §4.1 step 2: a condition
// must be "trivially true at compile time" to classify its effect static).
type CompileContext struct {
	Factions    map[string]bool
	GroupCounts map[string]int
}

// RuntimeContext is what's known about a condition mid-fight.
type RuntimeContext struct {
	Round            int
	AttackerFaction  string
	AttackerStat     func(StatKey) (float64, bool)
	DefenderStat     func(StatKey) (float64, bool)
	Factions         map[string]bool
	GroupCounts      map[string]int
}

// Condition is a predicate tree over stat thresholds, faction tags, round
// range, and group counts, composable with And/Or/Not (spec §3).
type Condition interface {
	// Eval evaluates the condition against full runtime state.
	Eval(ctx RuntimeContext) bool
	// StaticEval attempts to resolve the condition using only compile-time
	// information. ok is false when any part of the condition depends on
	// round number or live stat values.
	StaticEval(ctx CompileContext) (value bool, ok bool)
}

// CompOp is a comparison operator for StatThreshold.
type CompOp string

const (
	CompLT CompOp = "<"
	CompLE CompOp = "<="
	CompGT CompOp = ">"
	CompGE CompOp = ">="
	CompEQ CompOp = "=="
)

func compare(op CompOp, lhs, rhs float64) bool {
	switch op {
	case CompLT:
		return lhs < rhs
	case CompLE:
		return lhs <= rhs
	case CompGT:
		return lhs > rhs
	case CompGE:
		return lhs >= rhs
	case CompEQ:
		return lhs == rhs
	default:
		return false
	}
}

// StatThreshold compares a live stat value against a constant. Always
// runtime-only: it never resolves at compile time.
type StatThreshold struct {
	Side  Target // TargetSelf/TargetAllAllies reads attacker stats, else defender
	Stat  StatKey
	Op    CompOp
	Value float64
}

func (c StatThreshold) Eval(ctx RuntimeContext) bool {
	var v float64
	var ok bool
	if c.Side == TargetEnemy || c.Side == TargetAllEnemies {
		v, ok = ctx.DefenderStat(c.Stat)
	} else {
		v, ok = ctx.AttackerStat(c.Stat)
	}
	if !ok {
		return false
	}
	return compare(c.Op, v, c.Value)
}

func (c StatThreshold) StaticEval(CompileContext) (bool, bool) { return false, false }

// RoundRange is true while the current round lies within [Min, Max].
// Runtime-only.
type RoundRange struct {
	Min, Max int
}

func (c RoundRange) Eval(ctx RuntimeContext) bool {
	return ctx.Round >= c.Min && ctx.Round <= c.Max
}

func (c RoundRange) StaticEval(CompileContext) (bool, bool) { return false, false }

// FactionTag is true if the given faction is present among the crew (or,
// evaluated at runtime, the current fight's relevant side). Resolvable at
// compile time from the crew's static composition.
type FactionTag struct {
	Faction string
}

func (c FactionTag) Eval(ctx RuntimeContext) bool {
	return ctx.Factions[c.Faction]
}

func (c FactionTag) StaticEval(ctx CompileContext) (bool, bool) {
	return ctx.Factions[c.Faction], true
}

// GroupCount is true if at least Min crew members share the named group.
// Resolvable at compile time.
type GroupCount struct {
	Group string
	Min   int
}

func (c GroupCount) Eval(ctx RuntimeContext) bool {
	return ctx.GroupCounts[c.Group] >= c.Min
}

func (c GroupCount) StaticEval(ctx CompileContext) (bool, bool) {
	return ctx.GroupCounts[c.Group] >= c.Min, true
}

// And is true when every child condition is true.
type And struct{ Children []Condition }

func (c And) Eval(ctx RuntimeContext) bool {
	for _, child := range c.Children {
		if !child.Eval(ctx) {
			return false
		}
	}
	return true
}

func (c And) StaticEval(ctx CompileContext) (bool, bool) {
	for _, child := range c.Children {
		v, ok := child.StaticEval(ctx)
		if !ok {
			return false, false
		}
		if !v {
			return false, true
		}
	}
	return true, true
}

// Or is true when at least one child condition is true.
type Or struct{ Children []Condition }

func (c Or) Eval(ctx RuntimeContext) bool {
	for _, child := range c.Children {
		if child.Eval(ctx) {
			return true
		}
	}
	return false
}

func (c Or) StaticEval(ctx CompileContext) (bool, bool) {
	for _, child := range c.Children {
		v, ok := child.StaticEval(ctx)
		if !ok {
			return false, false
		}
		if v {
			return true, true
		}
	}
	return false, true
}

// Not inverts a child condition.
type Not struct{ Child Condition }

func (c Not) Eval(ctx RuntimeContext) bool {
	return !c.Child.Eval(ctx)
}

func (c Not) StaticEval(ctx CompileContext) (bool, bool) {
	v, ok := c.Child.StaticEval(ctx)
	if !ok {
		return false, false
	}
	return !v, true
}
