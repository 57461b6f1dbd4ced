package abilities

import (
	"math"
	"testing"

	"github.com/pggpgg/kobayashi-stfc/record"
)

func testShip() record.AttackerStats {
	return record.AttackerStats{
		ID:             "ship-1",
		ShipClass:      record.ShipClassBattleship,
		Attack:         1000,
		HullHP:         50000,
		ShieldHP:       20000,
		ArmorPiercing:  100,
		ShieldPiercing: 100,
		Accuracy:       0.9,
		CritChance:     0.1,
		CritMultiplier: 1.5,
	}
}

func testDefender() record.DefenderStats {
	return record.DefenderStats{
		AttackerStats: testShip(),
		Armor:         50,
		Dodge:         0.1,
		Faction:       "klingon",
	}
}

func officerWithCaptain(id string, effects ...Effect) *Officer {
	return &Officer{ID: id, Name: id, Captain: &Ability{Name: id + "-captain", Effects: effects}}
}

func officerBelowDecks(id string, effects ...Effect) *Officer {
	return &Officer{ID: id, Name: id, BelowDecks: &Ability{Name: id + "-bd", Effects: effects}}
}

func minimalCrew(captain *Officer, belowDecks ...*Officer) Crew {
	crew := Crew{Captain: OfficerSeat{Officer: captain, Rank: 1}}
	crew.Bridge[0] = OfficerSeat{Officer: &Officer{ID: "filler-1"}, Rank: 1}
	crew.Bridge[1] = OfficerSeat{Officer: &Officer{ID: "filler-2"}, Rank: 1}
	for _, o := range belowDecks {
		crew.BelowDecks = append(crew.BelowDecks, OfficerSeat{Officer: o, Rank: 1})
	}
	if len(crew.BelowDecks) == 0 {
		crew.BelowDecks = append(crew.BelowDecks, OfficerSeat{Officer: &Officer{ID: "filler-3"}, Rank: 1})
	}
	return crew
}

func TestCompile_EmptyCrewIdentity(t *testing.T) {
	captain := &Officer{ID: "cap", Captain: &Ability{Name: "no-op"}}
	crew := minimalCrew(captain)

	buf, warnings, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if !buf.IsEmpty() {
		t.Fatalf("expected empty BuffSet, got %+v", buf)
	}
}

func TestCompile_StackingFormula(t *testing.T) {
	// Base*(1+ΣB)+ΣC: Attack=1000, +20% and +10% multiply (B=0.3), +50 flat add (C=50).
	captain := officerWithCaptain("cap",
		Effect{Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf, Operator: OpMultiply, Trigger: TriggerPassive, Value: 1.2, Duration: Duration{Kind: DurationPermanent}},
		Effect{Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf, Operator: OpMultiply, Trigger: TriggerPassive, Value: 1.1, Duration: Duration{Kind: DurationPermanent}},
		Effect{Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf, Operator: OpAdd, Trigger: TriggerPassive, Value: 50, Duration: Duration{Kind: DurationPermanent}},
	)
	crew := minimalCrew(captain)

	buf, warnings, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	want := 1000*(1+0.2+0.1) + 50
	got, ok := buf.AttackerStatic[StatWeaponDamage]
	if !ok {
		t.Fatalf("expected a folded weapon_damage entry")
	}
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("weapon_damage = %v, want %v", got, want)
	}
}

func TestCompile_SetThenMultiplyFreeze(t *testing.T) {
	// Seat order matters: Set resets the running base, and a Multiply that
	// comes after it re-applies against the new base (spec's frozen open
	// question), rather than against the ship's original Attack value.
	captain := officerWithCaptain("cap",
		Effect{Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf, Operator: OpSet, Trigger: TriggerPassive, Value: 500, Duration: Duration{Kind: DurationPermanent}},
	)
	later := officerBelowDecks("bd",
		Effect{Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf, Operator: OpMultiply, Trigger: TriggerPassive, Value: 1.5, Duration: Duration{Kind: DurationPermanent}},
	)
	crew := minimalCrew(captain, later)

	buf, _, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	want := 500 * 1.5
	got := buf.AttackerStatic[StatWeaponDamage]
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("weapon_damage = %v, want %v (Set should reset base, Multiply should re-apply against it)", got, want)
	}
}

func TestCompile_PlayerProfileFoldsAsMultiplier(t *testing.T) {
	captain := &Officer{ID: "cap", Captain: &Ability{Name: "no-op"}}
	crew := minimalCrew(captain)
	profile := record.PlayerProfile{string(StatWeaponDamage): 0.45}

	buf, warnings, err := Compile(crew, testShip(), testDefender(), profile, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}

	want := 1000 * 1.45
	got := buf.AttackerStatic[StatWeaponDamage]
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("weapon_damage = %v, want %v", got, want)
	}
}

func TestCompile_UnknownProfileStatWarns(t *testing.T) {
	captain := &Officer{ID: "cap", Captain: &Ability{Name: "no-op"}}
	crew := minimalCrew(captain)
	profile := record.PlayerProfile{"warp_core_efficiency": 0.1}

	buf, warnings, err := Compile(crew, testShip(), testDefender(), profile, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnUnknownField {
		t.Fatalf("expected one unknown_profile_stat warning, got %v", warnings)
	}
	if !buf.IsEmpty() {
		t.Fatalf("unknown profile stat should be skipped, not folded")
	}
}

func TestCompile_UnknownEffectStatWarns(t *testing.T) {
	captain := officerWithCaptain("cap",
		Effect{Kind: EffectStatModify, Stat: "warp_core_efficiency", Target: TargetSelf, Operator: OpAdd, Trigger: TriggerPassive, Value: 10, Duration: Duration{Kind: DurationPermanent}},
	)
	crew := minimalCrew(captain)

	buf, warnings, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnUnknownStat {
		t.Fatalf("expected one unknown_stat warning, got %v", warnings)
	}
	if !buf.IsEmpty() {
		t.Fatalf("unknown stat effect should be skipped, not folded")
	}
}

func TestCompile_FalseCompileTimeConditionDropsEffect(t *testing.T) {
	captain := officerWithCaptain("cap",
		Effect{
			Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf,
			Operator: OpAdd, Trigger: TriggerPassive, Value: 999,
			Duration:  Duration{Kind: DurationPermanent},
			Condition: FactionTag{Faction: "romulan"}, // crew has no romulan officers
		},
	)
	crew := minimalCrew(captain)

	buf, warnings, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if !buf.IsEmpty() {
		t.Fatalf("a statically-false condition should drop the effect entirely, got %+v", buf)
	}
}

func TestCompile_DynamicEffectBucketedByTrigger(t *testing.T) {
	captain := officerWithCaptain("cap",
		Effect{Kind: EffectStatModify, Stat: StatCritMultiplier, Target: TargetSelf, Operator: OpAdd, Trigger: TriggerCritical, Value: 0.2},
	)
	crew := minimalCrew(captain)

	buf, _, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	bucket := buf.Dynamic[TriggerIndex(TriggerCritical)]
	if len(bucket) != 1 || bucket[0].SourceOfficerID != "cap" {
		t.Fatalf("expected effect bucketed under critical trigger, got %+v", buf.Dynamic)
	}
}

func TestCompile_PassiveDurationReclassifiedToRoundStart(t *testing.T) {
	captain := officerWithCaptain("cap",
		Effect{
			Kind: EffectStatModify, Stat: StatWeaponDamage, Target: TargetSelf,
			Operator: OpAdd, Trigger: TriggerPassive, Value: 100,
			Duration: Duration{Kind: DurationRounds, N: 3},
		},
	)
	crew := minimalCrew(captain)

	buf, _, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	bucket := buf.Dynamic[TriggerIndex(TriggerRoundStart)]
	if len(bucket) != 1 {
		t.Fatalf("expected the time-limited passive effect to live in the round_start bucket, got %+v", buf.Dynamic)
	}
}

func TestCompile_InvalidCrewIsInfeasible(t *testing.T) {
	noCaptainAbility := &Officer{ID: "cap"}
	crew := minimalCrew(noCaptainAbility)

	_, _, err := Compile(crew, testShip(), testDefender(), nil, CompileOptions{})
	if err == nil {
		t.Fatal("expected ErrScenarioInfeasible, got nil")
	}
}
