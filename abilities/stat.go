package abilities

import "github.com/pggpgg/kobayashi-stfc/record"

// StatKey is the stat vocabulary officer effects are written against. It is
// intentionally looser than the AttackerStats/DefenderStats field names
// (e.g. "weapon_damage" maps to the ship's Attack field) because that's the
// vocabulary LCARS authors actually write abilities in (spec §4.2's
// worked fold-in example uses "weapon_damage" for exactly this reason).
type StatKey string

const (
	StatWeaponDamage     StatKey = "weapon_damage"
	StatHullHP           StatKey = "hull_hp"
	StatShieldHP         StatKey = "shield_hp"
	StatShieldMitigation StatKey = "shield_mitigation_frac"
	StatArmorPiercing    StatKey = "armor_piercing"
	StatShieldPiercing   StatKey = "shield_piercing"
	StatAccuracy         StatKey = "accuracy"
	StatCritChance       StatKey = "crit_chance"
	StatCritMultiplier   StatKey = "crit_multiplier"
	StatApexShred        StatKey = "apex_shred"
	StatIsolyticDamage   StatKey = "isolytic_damage"

	// Defender-only stats. Only meaningful with Target Enemy/AllEnemies.
	StatArmor            StatKey = "armor"
	StatShieldDeflection StatKey = "shield_deflection"
	StatDodge            StatKey = "dodge"
	StatApexBarrier      StatKey = "apex_barrier"
	StatIsolyticDefense  StatKey = "isolytic_defense"
)

// attackerStat reads the named stat off an attacker-shaped record.
func attackerStat(s *record.AttackerStats, key StatKey) (float64, bool) {
	switch key {
	case StatWeaponDamage:
		return s.Attack, true
	case StatHullHP:
		return s.HullHP, true
	case StatShieldHP:
		return s.ShieldHP, true
	case StatShieldMitigation:
		return s.ShieldMitigationFrac, true
	case StatArmorPiercing:
		return s.ArmorPiercing, true
	case StatShieldPiercing:
		return s.ShieldPiercing, true
	case StatAccuracy:
		return s.Accuracy, true
	case StatCritChance:
		return s.CritChance, true
	case StatCritMultiplier:
		return s.CritMultiplier, true
	case StatApexShred:
		return s.ApexShred, true
	case StatIsolyticDamage:
		return s.IsolyticDamage, true
	default:
		return 0, false
	}
}

// defenderOnlyStat reads the named stat off the defense-side fields that
// only exist on DefenderStats (armor, shield_deflection, dodge, ...).
func defenderOnlyStat(d *record.DefenderStats, key StatKey) (float64, bool) {
	switch key {
	case StatArmor:
		return d.Armor, true
	case StatShieldDeflection:
		return d.ShieldDeflection, true
	case StatDodge:
		return d.Dodge, true
	case StatApexBarrier:
		return d.ApexBarrier, true
	case StatIsolyticDefense:
		return d.IsolyticDefense, true
	default:
		return attackerStat(&d.AttackerStats, key)
	}
}

// ReadAttackerStat exposes attackerStat for callers outside this package
// (the combat engine's runtime Condition evaluation needs to read live
// working stats by StatKey).
func ReadAttackerStat(s *record.AttackerStats, key StatKey) (float64, bool) {
	return attackerStat(s, key)
}

// ReadDefenderStat exposes defenderOnlyStat for callers outside this
// package.
func ReadDefenderStat(d *record.DefenderStats, key StatKey) (float64, bool) {
	return defenderOnlyStat(d, key)
}

// resolveBase returns the ship's own base value for a stat key, used both
// as the reduction formula's "Base" term and as the basis for AddPctOfMax.
// ok is false for unknown stat keys (spec §4.1: unknown stat keys warn and
// are skipped, never fail compilation).
func resolveBase(attacker *record.AttackerStats, defender *record.DefenderStats, key StatKey, target Target) (float64, bool) {
	if target == TargetEnemy || target == TargetAllEnemies {
		return defenderOnlyStat(defender, key)
	}
	return attackerStat(attacker, key)
}
