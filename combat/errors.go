package combat

import "errors"

// ErrInternal marks a fight that produced a non-finite value mid-combat
// (spec §7's Internal kind — "should not happen"). The engine never
// panics or returns an error from Simulate; instead the returned
// FightOutcome has Invalid set and the caller's aggregate accumulates it
// under a separate invalid-fights counter.
var ErrInternal = errors.New("combat: non-finite value produced mid-fight")
