package combat

import (
	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/record"
)

// applyOp is the live, single-value analogue of abilities.reduceStat's
// bucket math, used for dynamic effects mutating a stat mid-fight. The
// pre-combat static fold-in does not go through it: foldAttacker and
// foldDefender assign the already-reduced values directly.
func applyOp(current float64, op abilities.Operator, value float64, baseMax float64) float64 {
	switch op {
	case abilities.OpAdd:
		return current + value
	case abilities.OpMultiply:
		return current * value
	case abilities.OpSet:
		return value
	case abilities.OpMin:
		if current < value {
			return value
		}
		return current
	case abilities.OpMax:
		if current > value {
			return value
		}
		return current
	case abilities.OpAddPctOfMax:
		return current + value*baseMax
	default:
		return current
	}
}

// mutateAttacker writes a resolved value onto the non-pool attacker-shaped
// stat fields (everything except hull_hp/shield_hp, which the engine tracks
// as separate current/max pools — see fightRun.applyStatModify). ok is false
// for stat keys mutateAttacker doesn't recognize.
func mutateAttacker(s *record.AttackerStats, key abilities.StatKey, op abilities.Operator, value, baseMax float64) bool {
	switch key {
	case abilities.StatWeaponDamage:
		s.Attack = applyOp(s.Attack, op, value, baseMax)
	case abilities.StatShieldMitigation:
		s.ShieldMitigationFrac = applyOp(s.ShieldMitigationFrac, op, value, baseMax)
	case abilities.StatArmorPiercing:
		s.ArmorPiercing = applyOp(s.ArmorPiercing, op, value, baseMax)
	case abilities.StatShieldPiercing:
		s.ShieldPiercing = applyOp(s.ShieldPiercing, op, value, baseMax)
	case abilities.StatAccuracy:
		s.Accuracy = applyOp(s.Accuracy, op, value, baseMax)
	case abilities.StatCritChance:
		s.CritChance = applyOp(s.CritChance, op, value, baseMax)
	case abilities.StatCritMultiplier:
		s.CritMultiplier = applyOp(s.CritMultiplier, op, value, baseMax)
	case abilities.StatApexShred:
		s.ApexShred = applyOp(s.ApexShred, op, value, baseMax)
	case abilities.StatIsolyticDamage:
		s.IsolyticDamage = applyOp(s.IsolyticDamage, op, value, baseMax)
	default:
		return false
	}
	return true
}

// mutateDefenderOnly handles the defense-side fields that only exist on
// DefenderStats.
func mutateDefenderOnly(d *record.DefenderStats, key abilities.StatKey, op abilities.Operator, value, baseMax float64) bool {
	switch key {
	case abilities.StatArmor:
		d.Armor = applyOp(d.Armor, op, value, baseMax)
	case abilities.StatShieldDeflection:
		d.ShieldDeflection = applyOp(d.ShieldDeflection, op, value, baseMax)
	case abilities.StatDodge:
		d.Dodge = applyOp(d.Dodge, op, value, baseMax)
	case abilities.StatApexBarrier:
		d.ApexBarrier = applyOp(d.ApexBarrier, op, value, baseMax)
	case abilities.StatIsolyticDefense:
		d.IsolyticDefense = applyOp(d.IsolyticDefense, op, value, baseMax)
	default:
		return mutateAttacker(&d.AttackerStats, key, op, value, baseMax)
	}
	return true
}

// foldAttacker applies a BuffSet's fully-reduced static attacker-side
// values onto a working copy of the ship's base stats. Compile already
// performed the Base*(1+ΣB)+ΣC reduction, so this is a straight override
// (spec §4.2's "pre-combat fold-in").
func foldAttacker(base record.AttackerStats, statics map[abilities.StatKey]float64) record.AttackerStats {
	out := base
	for key, v := range statics {
		switch key {
		case abilities.StatWeaponDamage:
			out.Attack = v
		case abilities.StatHullHP:
			out.HullHP = v
		case abilities.StatShieldHP:
			out.ShieldHP = v
		case abilities.StatShieldMitigation:
			out.ShieldMitigationFrac = v
		case abilities.StatArmorPiercing:
			out.ArmorPiercing = v
		case abilities.StatShieldPiercing:
			out.ShieldPiercing = v
		case abilities.StatAccuracy:
			out.Accuracy = v
		case abilities.StatCritChance:
			out.CritChance = v
		case abilities.StatCritMultiplier:
			out.CritMultiplier = v
		case abilities.StatApexShred:
			out.ApexShred = v
		case abilities.StatIsolyticDamage:
			out.IsolyticDamage = v
		}
	}
	return out
}

// foldDefender is foldAttacker's counterpart for the defender's own
// defense-side fields plus its embedded attacker-shaped fields.
func foldDefender(base record.DefenderStats, statics map[abilities.StatKey]float64) record.DefenderStats {
	out := base
	out.AttackerStats = foldAttacker(base.AttackerStats, statics)
	for key, v := range statics {
		switch key {
		case abilities.StatArmor:
			out.Armor = v
		case abilities.StatShieldDeflection:
			out.ShieldDeflection = v
		case abilities.StatDodge:
			out.Dodge = v
		case abilities.StatApexBarrier:
			out.ApexBarrier = v
		case abilities.StatIsolyticDefense:
			out.IsolyticDefense = v
		}
	}
	return out
}
