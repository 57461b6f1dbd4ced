package abilities

import (
	"fmt"
	"math"

	"github.com/pggpgg/kobayashi-stfc/record"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// CompileOptions is the typed option record for Compile (spec §9's
// "replace free-form named parameters with typed option records" note).
type CompileOptions struct {
	DataVersion record.DataVersion
	Logger      *zerolog.Logger // nil uses the global zerolog logger
}

func (o CompileOptions) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return &log.Logger
}

// contribution is one resolved (pre-reduction) officer effect on a single
// (side, stat) pair, in crew-seat order.
type contribution struct {
	officerID string
	operator  Operator
	value     float64
}

type sideStat struct {
	defender bool
	stat     StatKey
}

// Compile deterministically folds a Crew, ship/hostile base stats, and a
// player profile into an immutable BuffSet (spec §4.1).
func Compile(crew Crew, ship record.AttackerStats, defender record.DefenderStats, profile record.PlayerProfile, opts CompileOptions) (*BuffSet, []CompileWarning, error) {
	if err := crew.Validate(); err != nil {
		return nil, nil, err
	}

	compileCtx := CompileContext{
		Factions:    crew.factions(),
		GroupCounts: crew.groupCounts(),
	}

	var warnings []CompileWarning
	contributions := make(map[sideStat][]contribution)
	buf := &BuffSet{
		AttackerStatic: make(map[StatKey]float64),
		DefenderStatic: make(map[StatKey]float64),
	}

	// Player-profile bonuses fold in as the first contribution for each
	// attacker-side stat, ahead of any officer effect (spec §4.1 step 4:
	// "Apply the player-profile additive layer to the same pre-reduction
	// bucket").
	for key, bonus := range profile {
		stat := StatKey(key)
		if _, ok := attackerStat(&ship, stat); !ok {
			warnings = append(warnings, CompileWarning{Kind: WarnUnknownField, Detail: fmt.Sprintf("unknown profile stat %q", key)})
			continue
		}
		if !isFinite(bonus) {
			return nil, warnings, fmt.Errorf("%w: player profile bonus for %q is non-finite", ErrUnresolvedEffect, key)
		}
		ss := sideStat{stat: stat}
		contributions[ss] = append(contributions[ss], contribution{officerID: "profile", operator: OpAdd, value: bonus})
		buf.layers = append(buf.layers, Layer{SourceOfficerID: "profile", Stat: stat, Operator: OpAdd, Value: bonus, Static: true})
	}
	// Profile bonuses are multiplicative deltas (spec §3: "weapon_damage ->
	// 0.45 meaning +45%"), so they belong in the modifier bucket B, not the
	// flat bucket C. Re-tag them now that we've recorded the layer.
	for ss, list := range contributions {
		for i := range list {
			if list[i].officerID == "profile" {
				list[i].operator = OpMultiply
				list[i].value = 1 + list[i].value
			}
		}
		contributions[ss] = list
	}

	for _, seat := range crew.seats() {
		if seat.Officer == nil {
			continue
		}
		ability := seatAbility(crew, seat)
		if ability == nil {
			continue
		}
		for _, effect := range ability.Effects {
			if err := validateEffect(effect); err != nil {
				return nil, warnings, fmt.Errorf("officer %q: %w", seat.Officer.ID, err)
			}
			if TriggerIndex(effect.Trigger) == -1 {
				warnings = append(warnings, CompileWarning{Kind: WarnUnknownKind, SourceOfficerID: seat.Officer.ID, Detail: fmt.Sprintf("unknown trigger %q", effect.Trigger)})
				continue
			}
			if effect.Kind != EffectStatModify && effect.Kind != EffectExtraAttack && effect.Kind != EffectTag {
				warnings = append(warnings, CompileWarning{Kind: WarnUnknownKind, SourceOfficerID: seat.Officer.ID, Detail: fmt.Sprintf("unknown effect kind %q", effect.Kind)})
				continue
			}

			value := effect.resolvedValue(seat.Rank)
			if !isFinite(value) {
				return nil, warnings, fmt.Errorf("officer %q: %w: effect value is non-finite", seat.Officer.ID, ErrUnresolvedEffect)
			}

			static, staticOK := classifyStatic(effect, compileCtx)
			if staticOK && !static.applies {
				// Condition is compile-time-resolvable and false: this
				// effect can never fire in this crew. Drop it entirely.
				continue
			}

			if effect.Kind != EffectStatModify {
				// ExtraAttack/Tag are never foldable into a stat bucket;
				// they always live in the dynamic residual.
				buf.appendDynamic(effect, seat.Officer.ID, value)
				buf.layers = append(buf.layers, Layer{SourceOfficerID: seat.Officer.ID, Stat: effect.Stat, Operator: effect.Operator, Value: value, Static: false})
				continue
			}

			if _, ok := resolveBase(&ship, &defender, effect.Stat, effect.Target); !ok {
				warnings = append(warnings, CompileWarning{Kind: WarnUnknownStat, SourceOfficerID: seat.Officer.ID, Detail: fmt.Sprintf("unknown stat %q", effect.Stat)})
				continue
			}

			if static.isStatic {
				ss := sideStat{defender: isEnemyTarget(effect.Target), stat: effect.Stat}
				contributions[ss] = append(contributions[ss], contribution{officerID: seat.Officer.ID, operator: effect.Operator, value: value})
				buf.layers = append(buf.layers, Layer{SourceOfficerID: seat.Officer.ID, Stat: effect.Stat, Operator: effect.Operator, Value: value, Static: true})
			} else {
				buf.appendDynamic(effect, seat.Officer.ID, value)
				buf.layers = append(buf.layers, Layer{SourceOfficerID: seat.Officer.ID, Stat: effect.Stat, Operator: effect.Operator, Value: value, Static: false})
			}
		}
	}

	for ss, list := range contributions {
		shipBase, _ := resolveBase(&ship, &defender, ss.stat, targetFor(ss.defender))
		effective := reduceStat(shipBase, list)
		if !isFinite(effective) {
			return nil, warnings, fmt.Errorf("%w: folded stat %q is non-finite", ErrUnresolvedEffect, ss.stat)
		}
		if ss.defender {
			buf.DefenderStatic[ss.stat] = effective
		} else {
			buf.AttackerStatic[ss.stat] = effective
		}
	}

	if len(warnings) > 0 {
		logger := opts.logger()
		for _, w := range warnings {
			logger.Warn().Str("kind", string(w.Kind)).Str("officer", w.SourceOfficerID).Msg(w.Detail)
		}
	}

	return buf, warnings, nil
}

func targetFor(defender bool) Target {
	if defender {
		return TargetEnemy
	}
	return TargetSelf
}

func isEnemyTarget(t Target) bool {
	return t == TargetEnemy || t == TargetAllEnemies
}

func seatAbility(crew Crew, seat OfficerSeat) *Ability {
	switch {
	case seat.Officer == crew.Captain.Officer:
		return seat.Officer.Captain
	case seat.Officer == crew.Bridge[0].Officer || seat.Officer == crew.Bridge[1].Officer:
		return seat.Officer.Bridge
	default:
		return seat.Officer.BelowDecks
	}
}

// staticClassification is the result of classifying one effect.
type staticClassification struct {
	isStatic bool
	applies  bool // only meaningful when the condition resolved statically
}

// classifyStatic implements spec §4.1 step 2. ok is true when the
// condition was resolvable at compile time (whether or not the effect
// ended up static).
func classifyStatic(e Effect, ctx CompileContext) (staticClassification, bool) {
	base := e.Trigger == TriggerPassive &&
		e.Duration.Kind == DurationPermanent &&
		e.Decay == nil &&
		e.Accumulate == nil

	if e.Condition == nil {
		return staticClassification{isStatic: base, applies: true}, true
	}
	value, ok := e.Condition.StaticEval(ctx)
	if !ok {
		return staticClassification{isStatic: false}, false
	}
	return staticClassification{isStatic: base && value, applies: value}, true
}

// reduceStat implements the canonical stacking rule (spec §4.1 step 4,
// §8's stacking rule). Contributions are processed in stable order; Set
// overrides the running base and discards prior B/C/caps accumulated so
// far, and any contribution after a Set re-applies against the new base —
// this freezes the Set-then-Multiply open question exactly as spec §9
// states rather than resolving it differently.
func reduceStat(shipBase float64, contributions []contribution) float64 {
	base := shipBase
	modAdd := 0.0
	flatAdd := 0.0
	var mins, maxes []float64

	for _, c := range contributions {
		switch c.operator {
		case OpAdd:
			flatAdd += c.value
		case OpMultiply:
			modAdd += c.value - 1.0
		case OpSet:
			base = c.value
			modAdd = 0
			flatAdd = 0
			mins = nil
			maxes = nil
		case OpAddPctOfMax:
			flatAdd += c.value * shipBase
		case OpMin:
			mins = append(mins, c.value)
		case OpMax:
			maxes = append(maxes, c.value)
		}
	}

	effective := base*(1+modAdd) + flatAdd
	for _, m := range mins {
		if effective < m {
			effective = m
		}
	}
	for _, m := range maxes {
		if effective > m {
			effective = m
		}
	}
	return effective
}

// appendDynamic buckets a dynamic effect by trigger. A Passive-triggered
// effect that still classified dynamic (e.g. it decays, or its condition
// needs live re-evaluation) has no round-loop phase of its own, so it's
// continuously re-checked at RoundStart instead.
func (b *BuffSet) appendDynamic(e Effect, officerID string, value float64) {
	trigger := e.Trigger
	if trigger == TriggerPassive {
		trigger = TriggerRoundStart
	}
	idx := TriggerIndex(trigger)
	b.Dynamic[idx] = append(b.Dynamic[idx], DynamicEffect{
		SourceOfficerID: officerID,
		Kind:            e.Kind,
		Stat:            e.Stat,
		Target:          e.Target,
		Operator:        e.Operator,
		Trigger:         e.Trigger,
		Value:           value,
		Chance:          e.Chance,
		Multiplier:      e.Multiplier,
		Duration:        e.Duration,
		Decay:           e.Decay,
		Accumulate:      e.Accumulate,
		Condition:       e.Condition,
	})
}

func validateEffect(e Effect) error {
	if e.Scaling != nil {
		if e.Scaling.MaxRank < 0 {
			return fmt.Errorf("%w: max_rank must be >= 0", ErrInvalidScaling)
		}
		if !isFinite(e.Scaling.Base) || !isFinite(e.Scaling.PerRank) {
			return fmt.Errorf("%w: scaling base/per_rank must be finite", ErrInvalidScaling)
		}
	}
	if e.Kind == EffectExtraAttack && e.Chance == nil {
		return fmt.Errorf("%w: extra_attack effect missing chance", ErrUnresolvedEffect)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
