// Package record holds the typed input/output record shapes external
// collaborators (loaders, the HTTP/JSON boundary, the UI) exchange with the
// core. Nothing in this package performs I/O; bson tags exist so a host
// process can round-trip these shapes through whatever store it wires up.
package record

// ShipClass selects the mitigation coefficient row a defender uses (§4.2).
type ShipClass string

const (
	ShipClassSurvey      ShipClass = "survey"
	ShipClassBattleship  ShipClass = "battleship"
	ShipClassExplorer    ShipClass = "explorer"
	ShipClassInterceptor ShipClass = "interceptor"
	ShipClassArmada      ShipClass = "armada"
)

// AttackerStats bundles the per-round combat-relevant fields of an
// attacking ship, as supplied by an external ship loader.
type AttackerStats struct {
	ID        string    `json:"id" bson:"id"`
	Name      string    `json:"name" bson:"name"`
	ShipClass ShipClass `json:"ship_class" bson:"shipClass"`

	Attack               float64 `json:"attack" bson:"attack"`
	HullHP               float64 `json:"hull_hp" bson:"hullHp"`
	ShieldHP             float64 `json:"shield_hp" bson:"shieldHp"`
	ShieldMitigationFrac float64 `json:"shield_mitigation_frac" bson:"shieldMitigationFrac"`
	ArmorPiercing        float64 `json:"armor_piercing" bson:"armorPiercing"`
	ShieldPiercing       float64 `json:"shield_piercing" bson:"shieldPiercing"`
	Accuracy             float64 `json:"accuracy" bson:"accuracy"`
	CritChance           float64 `json:"crit_chance" bson:"critChance"`
	CritMultiplier       float64 `json:"crit_multiplier" bson:"critMultiplier"`
	ApexShred            float64 `json:"apex_shred" bson:"apexShred"`
	IsolyticDamage       float64 `json:"isolytic_damage" bson:"isolyticDamage"`
}

// DefenderStats carries the attacker fields (hostiles strike back in the
// round loop's symmetric phase, §4.2 step 6) plus the defense-side fields
// spec §3/§6 add for the hostile record.
type DefenderStats struct {
	AttackerStats `bson:",inline"`

	Level            int     `json:"level" bson:"level"`
	Armor            float64 `json:"armor" bson:"armor"`
	ShieldDeflection float64 `json:"shield_deflection" bson:"shieldDeflection"`
	Dodge            float64 `json:"dodge" bson:"dodge"`
	ApexBarrier      float64 `json:"apex_barrier" bson:"apexBarrier"`
	IsolyticDefense  float64 `json:"isolytic_defense" bson:"isolyticDefense"`
	Faction          string  `json:"faction" bson:"faction"`
}

// PlayerProfile is a flat additive-multiplier mapping applied once at
// pre-combat fold-in. Unknown keys are a compiler-side warning, not an
// error here — record stays a pure data shape.
type PlayerProfile map[string]float64

// RosterEntry is one owned officer as supplied by an external roster
// importer, restricting the optimizer to "owned only" candidates.
type RosterEntry struct {
	CanonicalID string `json:"canonical_id" bson:"canonicalId"`
	Rank        int    `json:"rank" bson:"rank"`
	Tier        int    `json:"tier" bson:"tier"`
	Level       int    `json:"level" bson:"level"`
}

// DataVersion is informational metadata surfaced by external collaborators.
// The compiler and engine never branch on it (spec §9).
type DataVersion struct {
	SchemaVersion     string          `json:"schema_version" bson:"schemaVersion"`
	MechanicsCoverage map[string]bool `json:"mechanics_coverage" bson:"mechanicsCoverage"`
}
