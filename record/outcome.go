package record

// RoundEvent is one round's entry in an optional fight trace. The engine
// models one strike bundle per round (spec §9's sub-round granularity open
// question), so a round can represent multiple shots but not inter-shot
// state changes beyond the extra-attack roll.
type RoundEvent struct {
	Round int `json:"round" bson:"round"`

	AttackerShots  int     `json:"attacker_shots" bson:"attackerShots"`
	AttackerDamage float64 `json:"attacker_damage" bson:"attackerDamage"`
	AttackerCrit   bool    `json:"attacker_crit" bson:"attackerCrit"`

	DefenderShots  int     `json:"defender_shots" bson:"defenderShots"`
	DefenderDamage float64 `json:"defender_damage" bson:"defenderDamage"`

	ShieldBroke   bool `json:"shield_broke" bson:"shieldBroke"`
	HullBreached  bool `json:"hull_breached" bson:"hullBreached"`
	KillConfirmed bool `json:"kill_confirmed" bson:"killConfirmed"`
}

// FightOutcome is the result of one deterministic fight (spec §3, §4.2).
type FightOutcome struct {
	Win     bool `json:"win" bson:"win"`
	Stall   bool `json:"stall" bson:"stall"`
	Invalid bool `json:"invalid" bson:"invalid"` // spec §7 Internal error path

	Rounds                int     `json:"rounds" bson:"rounds"`
	AttackerHullRemaining float64 `json:"attacker_hull_remaining" bson:"attackerHullRemaining"`
	AttackerHullFrac      float64 `json:"attacker_hull_frac" bson:"attackerHullFrac"`
	DefenderHullRemaining float64 `json:"defender_hull_remaining" bson:"defenderHullRemaining"`

	TotalDamageDealt  float64 `json:"total_damage_dealt" bson:"totalDamageDealt"`
	DamageDealtRound1 float64 `json:"damage_dealt_round_1" bson:"damageDealtRound1"`

	// Trace is nil unless the caller opted in (off by default for
	// throughput; on when requested for replay, spec §3).
	Trace []RoundEvent `json:"trace,omitempty" bson:"trace,omitempty"`
}

// AggregateStats is the pinned external payload shape (spec §6).
type AggregateStats struct {
	WinRate               float64    `json:"win_rate" bson:"winRate"`
	StallRate             float64    `json:"stall_rate" bson:"stallRate"`
	LossRate              float64    `json:"loss_rate" bson:"lossRate"`
	AvgHullFracWhenWining float64    `json:"avg_hull_frac_when_winning" bson:"avgHullFracWhenWinning"`
	R1KillRate            float64    `json:"r1_kill_rate" bson:"r1KillRate"`
	AvgDamageRound1       float64    `json:"avg_damage_round_1" bson:"avgDamageRound1"`
	N                     uint64     `json:"n" bson:"n"`
	WinRate95CI           [2]float64 `json:"win_rate_95_ci" bson:"winRate95Ci"`

	// InvalidFights counts outcomes that aborted on a non-finite value
	// mid-fight (spec §7 Internal). Not part of the pinned shape's named
	// fields but additive — consumers that only read the named fields are
	// unaffected.
	InvalidFights uint64 `json:"invalid_fights" bson:"invalidFights"`

	// AvgRounds is the mean round count across all fights that did not end
	// Invalid. Also additive:
	// the optimizer's ranking tie-breaker chain needs "inverse avg_rounds"
	// (spec §4.4), which the pinned payload fields don't otherwise carry.
	AvgRounds float64 `json:"avg_rounds" bson:"avgRounds"`
}
