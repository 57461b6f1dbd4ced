package combat

import (
	"math"

	"github.com/pggpgg/kobayashi-stfc/record"
)

// epsilon floors piercing denominators so mitigation is always defined
// (spec §3's "piercing values are clamped to max(ε, x)" invariant, and
// spec §8's "piercing = 0 ⇒ ε-clamped denominator, never NaN" boundary).
const epsilon = 1e-9

type classCoefficients struct {
	armor, shield, dodge float64
}

// coefficientTable holds the four ship-class mitigation rows from spec
// §4.2. Survey and Armada share a row.
var coefficientTable = map[record.ShipClass]classCoefficients{
	record.ShipClassSurvey:      {armor: 0.30, shield: 0.30, dodge: 0.30},
	record.ShipClassArmada:      {armor: 0.30, shield: 0.30, dodge: 0.30},
	record.ShipClassBattleship:  {armor: 0.55, shield: 0.20, dodge: 0.20},
	record.ShipClassExplorer:    {armor: 0.20, shield: 0.55, dodge: 0.20},
	record.ShipClassInterceptor: {armor: 0.20, shield: 0.20, dodge: 0.55},
}

// logistic computes f(x) = 1 / (1 + 4^(1.1 - x)).
func logistic(x float64) float64 {
	return 1 / (1 + math.Pow(4, 1.1-x))
}

// mitigationInputs bundles the per-shot defender/attacker values the
// mitigation formula reads. Pairing (armor/armor_piercing,
// shield_deflection/shield_piercing, dodge/accuracy) is fixed by the
// worked golden-vector example in spec §8, since the defender-component
// list in §4.2's prose is ambiguous about which piercing stat pairs with
// which defense stat.
type mitigationInputs struct {
	armor            float64
	shieldDeflection float64
	dodge            float64
	armorPiercing    float64
	shieldPiercing   float64
	accuracy         float64
}

// mitigation computes total mitigation M for one shot (spec §4.2), clamped
// to [0, 1]. An unrecognized ship class falls back to the Survey/Armada row
// rather than failing the fight — a malformed ship_class is an InvalidInput
// concern for the loader, not something the hot loop should error on.
func mitigation(class record.ShipClass, in mitigationInputs) float64 {
	coeffs, ok := coefficientTable[class]
	if !ok {
		coeffs = coefficientTable[record.ShipClassSurvey]
	}

	xArmor := in.armor / math.Max(epsilon, in.armorPiercing)
	xShield := in.shieldDeflection / math.Max(epsilon, in.shieldPiercing)
	xDodge := in.dodge / math.Max(epsilon, in.accuracy)

	fArmor := logistic(xArmor)
	fShield := logistic(xShield)
	fDodge := logistic(xDodge)

	m := 1 - (1-coeffs.armor*fArmor)*(1-coeffs.shield*fShield)*(1-coeffs.dodge*fDodge)
	if m < 0 {
		return 0
	}
	if m > 1 {
		return 1
	}
	return m
}
