package combat

import (
	"reflect"
	"testing"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/record"
)

func testAttacker() record.AttackerStats {
	return record.AttackerStats{
		ID:                   "player-ship",
		ShipClass:            record.ShipClassBattleship,
		Attack:               500,
		HullHP:               10000,
		ShieldHP:             3000,
		ShieldMitigationFrac: 0.1,
		ArmorPiercing:        50,
		ShieldPiercing:       50,
		Accuracy:             100,
		CritChance:           0.1,
		CritMultiplier:       1.5,
	}
}

func testHostile() record.DefenderStats {
	return record.DefenderStats{
		AttackerStats: record.AttackerStats{
			ID:             "hostile",
			ShipClass:      record.ShipClassSurvey,
			Attack:         300,
			HullHP:         8000,
			ShieldHP:       2000,
			ArmorPiercing:  10,
			ShieldPiercing: 10,
			Accuracy:       80,
			CritChance:     0.05,
			CritMultiplier: 1.5,
		},
		Armor:            100,
		ShieldDeflection: 80,
		Dodge:            20,
	}
}

func TestSimulateDeterministic(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	out1 := Simulate(a, d, nil, 42, SimulateOptions{})
	out2 := Simulate(a, d, nil, 42, SimulateOptions{})
	if !reflect.DeepEqual(out1, out2) {
		t.Fatalf("Simulate not deterministic for identical inputs: %+v vs %+v", out1, out2)
	}
}

func TestSimulateHullFracRange(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	for seed := uint64(0); seed < 20; seed++ {
		out := Simulate(a, d, nil, seed, SimulateOptions{})
		if out.AttackerHullFrac < 0 || out.AttackerHullFrac > 1 {
			t.Fatalf("seed %d: hull frac out of range: %v", seed, out.AttackerHullFrac)
		}
	}
}

func TestSimulateTerminates(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	out := Simulate(a, d, nil, 7, SimulateOptions{})
	if out.Rounds > MaxRounds {
		t.Fatalf("rounds %d exceeds MaxRounds %d", out.Rounds, MaxRounds)
	}
	if out.Invalid {
		t.Fatalf("fight reported invalid: %+v", out)
	}
}

func TestSimulateStallOnEvenlyMatchedDeadlock(t *testing.T) {
	a := testAttacker()
	a.Attack = 0
	d := testHostile()
	d.Attack = 0
	out := Simulate(a, d, nil, 1, SimulateOptions{})
	if !out.Stall {
		t.Fatalf("expected a stall when neither side can deal damage, got %+v", out)
	}
	if out.Rounds != MaxRounds {
		t.Fatalf("expected stall at MaxRounds, got %d", out.Rounds)
	}
}

func TestSimulateShieldPierceAdvantage(t *testing.T) {
	a := testAttacker()
	d := testHostile()

	baseline := Simulate(a, d, nil, 42, SimulateOptions{})

	buf := &abilities.BuffSet{
		AttackerStatic: map[abilities.StatKey]float64{
			abilities.StatShieldPiercing: a.ShieldPiercing + 100,
		},
	}
	pierced := Simulate(a, d, buf, 42, SimulateOptions{})

	if pierced.Rounds > baseline.Rounds && pierced.AttackerHullFrac < baseline.AttackerHullFrac {
		t.Fatalf("extra shield piercing made the fight strictly worse: baseline=%+v pierced=%+v", baseline, pierced)
	}
}

func TestSimulateWithTrace(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	var trace []record.RoundEvent
	out := Simulate(a, d, nil, 3, SimulateOptions{Trace: &trace})
	if len(out.Trace) != out.Rounds {
		t.Fatalf("trace length %d does not match rounds %d", len(out.Trace), out.Rounds)
	}
	if out.Trace[0].Round != 1 {
		t.Fatalf("first trace entry should be round 1, got %d", out.Trace[0].Round)
	}
}

func TestSimulateTraceReusedBufferResets(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	trace := make([]record.RoundEvent, 0, 256)
	out1 := Simulate(a, d, nil, 1, SimulateOptions{Trace: &trace})
	out2 := Simulate(a, d, nil, 2, SimulateOptions{Trace: &trace})
	if len(out2.Trace) != out2.Rounds {
		t.Fatalf("second fight's trace should not carry over the first fight's rounds: len=%d rounds1=%d rounds2=%d", len(out2.Trace), out1.Rounds, out2.Rounds)
	}
}

func TestSimulateOnKillHeal(t *testing.T) {
	a := testAttacker()
	a.Attack = 100000 // guarantee a round-1 kill
	d := testHostile()

	healFrac := 0.5
	buf := &abilities.BuffSet{
		Dynamic: [abilities.NumTriggers][]abilities.DynamicEffect{},
	}
	buf.Dynamic[abilities.TriggerIndex(abilities.TriggerKill)] = []abilities.DynamicEffect{
		{
			Kind:     abilities.EffectStatModify,
			Stat:     abilities.StatHullHP,
			Target:   abilities.TargetSelf,
			Operator: abilities.OpAddPctOfMax,
			Trigger:  abilities.TriggerKill,
			Value:    healFrac,
			Duration: abilities.Duration{Kind: abilities.DurationPermanent},
		},
	}

	// The kill lands in round 1, before the hostile strikes, so the attacker
	// is still at full hull; this only checks that the heal never pushes
	// hull above max.
	out := Simulate(a, d, buf, 1, SimulateOptions{})
	if !out.Win {
		t.Fatalf("expected a round-1 kill, got %+v", out)
	}
	if out.AttackerHullFrac > 1 {
		t.Fatalf("heal pushed hull fraction above 1: %v", out.AttackerHullFrac)
	}
}

func TestSimulateBurningTick(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	d.HullHP = 1e9 // prevent an early kill from masking the burn

	buf := &abilities.BuffSet{}
	buf.Dynamic[abilities.TriggerIndex(abilities.TriggerRoundStart)] = []abilities.DynamicEffect{
		{
			Kind:     abilities.EffectTag,
			Stat:     burningTag,
			Trigger:  abilities.TriggerRoundStart,
			Duration: abilities.Duration{Kind: abilities.DurationPermanent},
		},
	}

	withBurn := Simulate(a, d, buf, 9, SimulateOptions{})
	withoutBurn := Simulate(a, d, nil, 9, SimulateOptions{})

	if withBurn.AttackerHullFrac >= withoutBurn.AttackerHullFrac && withBurn.Rounds >= withoutBurn.Rounds {
		t.Fatalf("burning tag had no observable effect: withBurn=%+v withoutBurn=%+v", withBurn, withoutBurn)
	}
}

func TestSimulateNilBuffSetEquivalentToEmpty(t *testing.T) {
	a := testAttacker()
	d := testHostile()
	nilBuf := Simulate(a, d, nil, 5, SimulateOptions{})
	emptyBuf := Simulate(a, d, &abilities.BuffSet{}, 5, SimulateOptions{})
	if !reflect.DeepEqual(nilBuf, emptyBuf) {
		t.Fatalf("nil BuffSet should behave identically to an empty one: %+v vs %+v", nilBuf, emptyBuf)
	}
}
