package combat

import (
	"math"
	"testing"

	"github.com/pggpgg/kobayashi-stfc/record"
)

// TestMitigationGoldenVector checks the worked example spec §8 names:
// defender {armor=250, shield_deflection=120, dodge=50}, attacker
// {armor_piercing=100, shield_piercing=60, accuracy=200}, Battleship class.
func TestMitigationGoldenVector(t *testing.T) {
	got := mitigation(record.ShipClassBattleship, mitigationInputs{
		armor:            250,
		shieldDeflection: 120,
		dodge:            50,
		armorPiercing:    100,
		shieldPiercing:   60,
		accuracy:         200,
	})
	want := 0.582229
	if math.Abs(got-want) > 0.001*want {
		t.Fatalf("mitigation = %v, want within 0.1%% of %v", got, want)
	}
}

func TestMitigationBounds(t *testing.T) {
	cases := []mitigationInputs{
		{armor: 0, shieldDeflection: 0, dodge: 0, armorPiercing: 0, shieldPiercing: 0, accuracy: 0},
		{armor: 1e9, shieldDeflection: 1e9, dodge: 1e9, armorPiercing: 1, shieldPiercing: 1, accuracy: 1},
		{armor: 100, shieldDeflection: 100, dodge: 100, armorPiercing: 100, shieldPiercing: 100, accuracy: 100},
	}
	for _, c := range cases {
		m := mitigation(record.ShipClassBattleship, c)
		if m < 0 || m > 1 {
			t.Fatalf("mitigation out of bounds: %v for %+v", m, c)
		}
	}
}

func TestMitigationZeroPiercingNeverNaN(t *testing.T) {
	m := mitigation(record.ShipClassExplorer, mitigationInputs{
		armor: 100, shieldDeflection: 100, dodge: 100,
		armorPiercing: 0, shieldPiercing: 0, accuracy: 0,
	})
	if math.IsNaN(m) || math.IsInf(m, 0) {
		t.Fatalf("mitigation is not finite: %v", m)
	}
}

func TestMitigationMonotonicPiercing(t *testing.T) {
	base := mitigationInputs{armor: 200, shieldDeflection: 100, dodge: 50, armorPiercing: 50, shieldPiercing: 50, accuracy: 50}
	m1 := mitigation(record.ShipClassBattleship, base)
	base.armorPiercing = 200
	m2 := mitigation(record.ShipClassBattleship, base)
	if m2 > m1 {
		t.Fatalf("increasing piercing increased mitigation: %v -> %v", m1, m2)
	}
}

func TestMitigationMonotonicDefense(t *testing.T) {
	base := mitigationInputs{armor: 200, shieldDeflection: 100, dodge: 50, armorPiercing: 50, shieldPiercing: 50, accuracy: 50}
	m1 := mitigation(record.ShipClassBattleship, base)
	base.armor = 400
	m2 := mitigation(record.ShipClassBattleship, base)
	if m2 < m1 {
		t.Fatalf("increasing defense decreased mitigation: %v -> %v", m1, m2)
	}
}

func TestMitigationUnknownClassFallsBackToSurvey(t *testing.T) {
	in := mitigationInputs{armor: 100, shieldDeflection: 100, dodge: 100, armorPiercing: 100, shieldPiercing: 100, accuracy: 100}
	got := mitigation(record.ShipClass("unknown"), in)
	want := mitigation(record.ShipClassSurvey, in)
	if got != want {
		t.Fatalf("unknown ship class should fall back to Survey row: got %v, want %v", got, want)
	}
}
