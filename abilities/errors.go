package abilities

import "errors"

// Error taxonomy for the ability compiler (spec §7). CompileFailure and its
// variants are hard errors — the caller gets no BuffSet. Unknown mechanics
// never reach this path; they are recorded as CompileWarning and skipped.
var (
	// ErrUnresolvedEffect: an effect references a stat/operator/trigger
	// combination that is structurally invalid (not just unknown).
	ErrUnresolvedEffect = errors.New("abilities: unresolved effect")
	// ErrInvalidScaling: scaling bounds are malformed (e.g. MaxRank < 0,
	// non-finite base/per_rank).
	ErrInvalidScaling = errors.New("abilities: invalid scaling")
	// ErrConditionEvalFailure: a condition tree could not be evaluated
	// (e.g. a threshold referencing a target side with no such stat).
	ErrConditionEvalFailure = errors.New("abilities: condition evaluation failure")
	// ErrScenarioInfeasible: the crew cannot be formed (spec §7).
	ErrScenarioInfeasible = errors.New("abilities: scenario infeasible")
)

// WarningKind classifies a CompileWarning (spec §7 UnknownMechanic).
type WarningKind string

const (
	WarnUnknownStat  WarningKind = "unknown_stat"
	WarnUnknownKind  WarningKind = "unknown_effect_kind"
	WarnUnknownField WarningKind = "unknown_profile_stat"
)

// CompileWarning is a non-fatal diagnostic: the effect or profile entry was
// skipped but compilation proceeded (spec §4.1, §7).
type CompileWarning struct {
	Kind            WarningKind
	SourceOfficerID string
	Detail          string
}

func (w CompileWarning) String() string {
	if w.SourceOfficerID == "" {
		return string(w.Kind) + ": " + w.Detail
	}
	return string(w.Kind) + " (" + w.SourceOfficerID + "): " + w.Detail
}
