package combat

import (
	"math"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/record"
)

// MaxRounds is the fight-length cap spec §4.2 pins.
const MaxRounds = 100

// defaultHullBreachThresholds is used when SimulateOptions.HullBreachThresholds
// is nil. Spec §4.2 requires "any configured threshold" but leaves the
// default set unspecified.
var defaultHullBreachThresholds = []float64{0.5, 0.25}

// SimulateOptions is the typed option record for Simulate (spec §9's
// "replace free-form named parameters" note).
type SimulateOptions struct {
	// Trace, when non-nil, receives one RoundEvent per round, appended in
	// place. Pass a preallocated slice with spare capacity to reuse it
	// across fights (spec §4.2's allocation discipline).
	Trace *[]record.RoundEvent
	// HullBreachThresholds are the attacker hull-fraction levels that fire
	// a HullBreach trigger when crossed downward. Defaults to {0.5, 0.25}.
	HullBreachThresholds []float64
}

func (o SimulateOptions) thresholds() []float64 {
	if o.HullBreachThresholds != nil {
		return o.HullBreachThresholds
	}
	return defaultHullBreachThresholds
}

// pool is a current/max resource bucket (hull or shield). Dynamic effects
// and damage application mutate the current value; max is the post-fold
// ceiling used by AddPctOfMax and by the final hull-fraction calculation.
type pool struct {
	current, max float64
}

func (p *pool) clamp() {
	if p.current > p.max {
		p.current = p.max
	}
	if p.current < 0 {
		p.current = 0
	}
}

// fightRun holds all per-fight mutable state: working stat copies, resource
// pools, the RNG, and dynamic-effect bookkeeping. It is allocated fresh by
// Simulate and never shared across fights.
type fightRun struct {
	buf *abilities.BuffSet
	rng RNG
	ds  *dynState

	att record.AttackerStats // current effective non-pool attacker stats
	def record.DefenderStats // current effective non-pool defender stats

	attHull, attShield pool
	defHull, defShield pool

	round int

	extraAttackPending    bool
	extraAttackMultiplier float64

	burningRoundsRemaining int // 0 = inactive, <0 = indefinite, >0 = counts down

	hullBreachFired map[float64]bool
}

// Simulate runs one fight to completion and returns its outcome (spec
// §4.2). Given identical (attacker, defender, buf, seed) it is bit-for-bit
// deterministic: all floating-point operations execute in the fixed order
// written below, and no goroutine, channel, or lock is touched.
func Simulate(attacker record.AttackerStats, defender record.DefenderStats, buf *abilities.BuffSet, seed uint64, opts SimulateOptions) record.FightOutcome {
	if buf == nil {
		buf = &abilities.BuffSet{}
	}

	att := foldAttacker(attacker, buf.AttackerStatic)
	def := foldDefender(defender, buf.DefenderStatic)

	run := &fightRun{
		buf:             buf,
		rng:             NewRNG(seed),
		ds:              newDynState(buf),
		att:             att,
		def:             def,
		attHull:         pool{current: att.HullHP, max: att.HullHP},
		attShield:       pool{current: att.ShieldHP, max: att.ShieldHP},
		defHull:         pool{current: def.HullHP, max: def.HullHP},
		defShield:       pool{current: def.ShieldHP, max: def.ShieldHP},
		hullBreachFired: make(map[float64]bool, len(opts.thresholds())),
	}

	if opts.Trace != nil {
		*opts.Trace = (*opts.Trace)[:0]
	}
	finish := func(outcome record.FightOutcome) record.FightOutcome {
		if opts.Trace != nil {
			outcome.Trace = *opts.Trace
		}
		return outcome
	}

	var totalDamage, damageRound1 float64
	lastAttackerFrac := 1.0

	for round := 1; round <= MaxRounds; round++ {
		run.round = round
		var ev record.RoundEvent
		ev.Round = round

		// 1. RoundStart
		run.fireTrigger(abilities.TriggerRoundStart, run.runtimeCtx())

		// 2. Attacker strike
		shotDamage := run.att.Attack
		crit := run.rng.NextF64() < run.att.CritChance
		if crit {
			shotDamage *= run.att.CritMultiplier
		}
		shots := 1
		bonusMultiplier := 1.0
		if run.extraAttackPending {
			shots = 2
			bonusMultiplier = run.extraAttackMultiplier
		}
		run.extraAttackPending = false

		var roundDamage float64
		var anyCrit, shieldBroke bool
		for s := 0; s < shots; s++ {
			dmg := shotDamage
			if s == 1 {
				dmg *= bonusMultiplier
			}
			m := mitigation(run.def.ShipClass, mitigationInputs{
				armor:            run.def.Armor,
				shieldDeflection: run.def.ShieldDeflection,
				dodge:            run.def.Dodge,
				armorPiercing:    run.att.ArmorPiercing,
				shieldPiercing:   run.att.ShieldPiercing,
				accuracy:         run.att.Accuracy,
			})
			effective := dmg * (1 - m)
			if !isFinite(effective) {
				return finish(record.FightOutcome{Invalid: true, Rounds: round})
			}

			roundDamage += effective
			if crit {
				anyCrit = true
			}

			if run.defShield.current > 0 {
				absorbed := math.Min(run.defShield.current, effective)
				run.defShield.current -= absorbed
				overflow := effective - absorbed
				if run.defShield.current <= 0 && overflow > 0 {
					run.defHull.current -= overflow
					shieldBroke = true
				}
			} else {
				run.defHull.current -= effective
			}

			// 4. Triggered phase A — per landed shot.
			run.fireTrigger(abilities.TriggerHit, run.runtimeCtx())
			if crit {
				run.fireTrigger(abilities.TriggerCritical, run.runtimeCtx())
			}
		}
		if shieldBroke {
			run.fireTrigger(abilities.TriggerShieldBreak, run.runtimeCtx())
		}

		totalDamage += roundDamage
		if round == 1 {
			damageRound1 = roundDamage
		}
		ev.AttackerShots = shots
		ev.AttackerDamage = roundDamage
		ev.AttackerCrit = anyCrit
		ev.ShieldBroke = shieldBroke

		// 5. Kill check.
		if run.defHull.current <= 0 {
			run.defHull.clamp()
			run.fireTrigger(abilities.TriggerKill, run.runtimeCtx())
			run.attHull.clamp()
			ev.HullBreached = false
			ev.KillConfirmed = true
			appendTrace(opts.Trace, ev)
			return finish(record.FightOutcome{
				Win:                   true,
				Rounds:                round,
				AttackerHullRemaining: run.attHull.current,
				AttackerHullFrac:      safeFrac(run.attHull.current, run.attHull.max),
				DefenderHullRemaining: 0,
				TotalDamageDealt:      totalDamage,
				DamageDealtRound1:     damageRound1,
			})
		}

		// 6. Defender strike — symmetric, no dynamic buffs. Mitigation for
		// the player ship uses its folded shield_mitigation_frac scalar
		// directly rather than the ship-class logistic model: only the
		// hostile (DefenderStats) record carries armor/shield_deflection/
		// dodge, so the logistic model is only meaningful when the hostile
		// is the one defending (spec §3's glossary note on
		// shield_mitigation_frac being "the defender-side parameter when
		// used for the other side").
		defCrit := run.rng.NextF64() < run.def.CritChance
		defShot := run.def.Attack
		if defCrit {
			defShot *= run.def.CritMultiplier
		}
		defMitigation := clamp01(run.att.ShieldMitigationFrac)
		defEffective := defShot * (1 - defMitigation)
		if !isFinite(defEffective) {
			return finish(record.FightOutcome{Invalid: true, Rounds: round})
		}
		ev.DefenderShots = 1
		ev.DefenderDamage = defEffective

		if run.attShield.current > 0 {
			absorbed := math.Min(run.attShield.current, defEffective)
			run.attShield.current -= absorbed
			overflow := defEffective - absorbed
			if run.attShield.current <= 0 && overflow > 0 {
				run.attHull.current -= overflow
			}
		} else {
			run.attHull.current -= defEffective
		}

		// 7. Triggered phase B.
		run.fireTrigger(abilities.TriggerReceiveDamage, run.runtimeCtx())
		frac := safeFrac(run.attHull.current, run.attHull.max)
		breached := false
		for _, t := range opts.thresholds() {
			if lastAttackerFrac > t && frac <= t && !run.hullBreachFired[t] {
				run.hullBreachFired[t] = true
				breached = true
			}
		}
		if breached {
			run.fireTrigger(abilities.TriggerHullBreach, run.runtimeCtx())
		}
		ev.HullBreached = breached
		lastAttackerFrac = frac

		// 8. RoundEnd phase.
		run.fireTrigger(abilities.TriggerRoundEnd, run.runtimeCtx())
		if run.burningRoundsRemaining != 0 {
			run.attHull.current -= 0.01 * run.attHull.max
			if run.burningRoundsRemaining > 0 {
				run.burningRoundsRemaining--
			}
		}
		run.ds.tickRoundEnd()

		appendTrace(opts.Trace, ev)

		// 9. Termination check.
		run.attHull.clamp()
		if run.attHull.current <= 0 {
			return finish(record.FightOutcome{
				Win:                   false,
				Stall:                 false,
				Rounds:                round,
				AttackerHullRemaining: 0,
				AttackerHullFrac:      0,
				DefenderHullRemaining: math.Max(0, run.defHull.current),
				TotalDamageDealt:      totalDamage,
				DamageDealtRound1:     damageRound1,
			})
		}
		if round == MaxRounds {
			return finish(record.FightOutcome{
				Win:                   false,
				Stall:                 true,
				Rounds:                round,
				AttackerHullRemaining: run.attHull.current,
				AttackerHullFrac:      frac,
				DefenderHullRemaining: math.Max(0, run.defHull.current),
				TotalDamageDealt:      totalDamage,
				DamageDealtRound1:     damageRound1,
			})
		}
	}

	// Unreachable: the loop always returns by round == MaxRounds.
	return finish(record.FightOutcome{Invalid: true, Rounds: MaxRounds})
}

func appendTrace(trace *[]record.RoundEvent, ev record.RoundEvent) {
	if trace == nil {
		return
	}
	*trace = append(*trace, ev)
}

func safeFrac(current, max float64) float64 {
	if max <= 0 {
		return 0
	}
	f := current / max
	return clamp01(f)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// runtimeCtx builds the abilities.RuntimeContext conditions evaluate
// against, reflecting the fighter's current working stats.
func (r *fightRun) runtimeCtx() abilities.RuntimeContext {
	att := r.att
	def := r.def
	return abilities.RuntimeContext{
		Round:           r.round,
		AttackerFaction: "", // player ships carry no faction field in this spec's scope
		AttackerStat: func(k abilities.StatKey) (float64, bool) {
			return abilities.ReadAttackerStat(&att, k)
		},
		DefenderStat: func(k abilities.StatKey) (float64, bool) {
			return abilities.ReadDefenderStat(&def, k)
		},
	}
}

// fireTrigger evaluates every non-expired dynamic effect in the given
// trigger's bucket, in stable compile order, gating on Condition then
// Chance before applying.
func (r *fightRun) fireTrigger(trigger abilities.Trigger, ctx abilities.RuntimeContext) {
	idx := abilities.TriggerIndex(trigger)
	if idx < 0 {
		return
	}
	bucket := r.buf.Dynamic[idx]
	for i := range bucket {
		if r.ds.expired[idx][i] {
			continue
		}
		de := &bucket[i]
		if de.Condition != nil && !de.Condition.Eval(ctx) {
			continue
		}
		if de.Chance != nil && r.rng.NextF64() >= *de.Chance {
			continue
		}
		if r.ds.firstActiveRound[idx][i] == 0 {
			r.ds.firstActiveRound[idx][i] = r.round
		}
		roundsActive := r.round - r.ds.firstActiveRound[idx][i] + 1
		r.applyDynamicEffect(de, magnitude(de, roundsActive))
		r.ds.consumeStack(idx, i)
	}
}

// applyDynamicEffect mutates live fight state for one fired dynamic effect.
func (r *fightRun) applyDynamicEffect(de *abilities.DynamicEffect, value float64) {
	switch de.Kind {
	case abilities.EffectTag:
		if de.Stat == burningTag {
			if de.Duration.Kind == abilities.DurationRounds {
				r.burningRoundsRemaining = de.Duration.N
			} else {
				r.burningRoundsRemaining = -1
			}
		}
	case abilities.EffectExtraAttack:
		r.extraAttackPending = true
		if de.Multiplier != nil {
			r.extraAttackMultiplier = *de.Multiplier
		} else {
			r.extraAttackMultiplier = 1
		}
	case abilities.EffectStatModify:
		r.applyStatModify(de, value)
	}
}

func (r *fightRun) applyStatModify(de *abilities.DynamicEffect, value float64) {
	enemy := de.Target == abilities.TargetEnemy || de.Target == abilities.TargetAllEnemies

	if de.Stat == abilities.StatHullHP {
		p := &r.attHull
		if enemy {
			p = &r.defHull
		}
		p.current = applyOp(p.current, de.Operator, value, p.max)
		p.clamp()
		return
	}
	if de.Stat == abilities.StatShieldHP {
		p := &r.attShield
		if enemy {
			p = &r.defShield
		}
		p.current = applyOp(p.current, de.Operator, value, p.max)
		p.clamp()
		return
	}

	if enemy {
		mutateDefenderOnly(&r.def, de.Stat, de.Operator, value, 0)
	} else {
		mutateAttacker(&r.att, de.Stat, de.Operator, value, 0)
	}
}
