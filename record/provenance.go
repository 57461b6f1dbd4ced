package record

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// FightRecord wraps a single fight's outcome with the identity and
// timestamp fields a persistence layer needs but the pinned FightOutcome
// payload (spec §3) has no business carrying itself.
type FightRecord struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ScenarioID bson.ObjectID `bson:"scenarioId,omitempty" json:"scenario_id,omitempty"`
	RecordedAt time.Time     `bson:"recordedAt" json:"recorded_at"`

	Outcome FightOutcome `bson:"outcome" json:"outcome"`
}

// OptimizeRunRecord wraps one ranked candidate's AggregateStats (spec §6's
// pinned shape) with the provenance a stored optimize run needs: which
// scenario it scored against and when.
type OptimizeRunRecord struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ScenarioID bson.ObjectID `bson:"scenarioId,omitempty" json:"scenario_id,omitempty"`
	RecordedAt time.Time     `bson:"recordedAt" json:"recorded_at"`

	CandidateName string        `bson:"candidateName" json:"candidate_name"`
	Stats         AggregateStats `bson:"stats" json:"stats"`
}

// NewScenarioID allocates a fresh provenance ID for a new scenario run.
func NewScenarioID() bson.ObjectID {
	return bson.NewObjectID()
}
