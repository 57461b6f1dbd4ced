package abilities

import "fmt"

// Ability is a named, ordered list of effects (spec §3).
type Ability struct {
	Name    string
	Effects []Effect
}

// Officer is one LCARS officer definition (spec §3). Captain, Bridge, and
// BelowDecks are independent optional ability slots; which one is active
// depends on the seat the officer is placed in within a Crew.
type Officer struct {
	ID      string
	Name    string
	Faction string
	Rarity  string
	Group   string // empty means "no synergy group"

	Captain    *Ability
	Bridge     *Ability
	BelowDecks *Ability
}

// HasCaptainAbility reports whether this officer is eligible for the
// captain's seat (spec §4.4 pruning rule 1).
func (o Officer) HasCaptainAbility() bool { return o.Captain != nil }

// OfficerSeat pairs an officer with the rank they're seated at.
type OfficerSeat struct {
	Officer *Officer
	Rank    int
}

// Crew is a full ten-seat assignment: one captain, two (unordered) bridge
// seats, and one to seven (ordered) below-decks seats (spec §3).
type Crew struct {
	Captain    OfficerSeat
	Bridge     [2]OfficerSeat
	BelowDecks []OfficerSeat // 1..7, order matters for ability priority
}

// Validate checks the crew-assignment invariants spec §3 names: all ten
// officers distinct, 1-7 below-decks seats filled, captain eligible.
func (c Crew) Validate() error {
	if c.Captain.Officer == nil {
		return fmt.Errorf("%w: no captain assigned", ErrScenarioInfeasible)
	}
	if !c.Captain.Officer.HasCaptainAbility() {
		return fmt.Errorf("%w: captain %q has no captain ability", ErrScenarioInfeasible, c.Captain.Officer.ID)
	}
	if len(c.BelowDecks) < 1 || len(c.BelowDecks) > 7 {
		return fmt.Errorf("%w: below-decks slots must be 1-7, got %d", ErrScenarioInfeasible, len(c.BelowDecks))
	}

	seen := make(map[string]struct{}, 10)
	add := func(seat OfficerSeat) error {
		if seat.Officer == nil {
			return fmt.Errorf("%w: empty crew seat", ErrScenarioInfeasible)
		}
		if _, dup := seen[seat.Officer.ID]; dup {
			return fmt.Errorf("%w: officer %q assigned to more than one seat", ErrScenarioInfeasible, seat.Officer.ID)
		}
		seen[seat.Officer.ID] = struct{}{}
		return nil
	}

	if err := add(c.Captain); err != nil {
		return err
	}
	for _, seat := range c.Bridge {
		if err := add(seat); err != nil {
			return err
		}
	}
	for _, seat := range c.BelowDecks {
		if err := add(seat); err != nil {
			return err
		}
	}
	return nil
}

// seats returns every filled seat in stable compile order: captain, bridge
// (in the order given), then below-decks slots in order. This order is
// what makes Set-wins-last deterministic (spec §4.1's tie-breaking rule).
func (c Crew) seats() []OfficerSeat {
	seats := make([]OfficerSeat, 0, 10)
	seats = append(seats, c.Captain)
	seats = append(seats, c.Bridge[:]...)
	seats = append(seats, c.BelowDecks...)
	return seats
}

// factions returns the set of distinct factions represented in the crew,
// for compile-time FactionTag resolution.
func (c Crew) factions() map[string]bool {
	out := make(map[string]bool)
	for _, seat := range c.seats() {
		if seat.Officer != nil && seat.Officer.Faction != "" {
			out[seat.Officer.Faction] = true
		}
	}
	return out
}

// groupCounts returns, per synergy group, how many crew members share it.
func (c Crew) groupCounts() map[string]int {
	out := make(map[string]int)
	for _, seat := range c.seats() {
		if seat.Officer != nil && seat.Officer.Group != "" {
			out[seat.Officer.Group]++
		}
	}
	return out
}
