package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pggpgg/kobayashi-stfc/abilities"
	"github.com/pggpgg/kobayashi-stfc/record"
)

// effectDTO is the JSON-friendly shape of abilities.Effect. Conditional
// effects (abilities.Effect.Condition) are not expressible through this
// loader — the CLI is a harness for exercising the library end to end, not
// the full ability-data pipeline, and every hand-authored fixture ability
// used through it is unconditional.
type effectDTO struct {
	Kind     abilities.EffectKind `json:"kind"`
	Stat     abilities.StatKey    `json:"stat"`
	Target   abilities.Target     `json:"target"`
	Operator abilities.Operator   `json:"operator"`
	Trigger  abilities.Trigger    `json:"trigger"`
	Value    float64              `json:"value"`

	Chance     *float64 `json:"chance,omitempty"`
	Multiplier *float64 `json:"multiplier,omitempty"`
}

func (d effectDTO) toEffect() abilities.Effect {
	return abilities.Effect{
		Kind:       d.Kind,
		Stat:       d.Stat,
		Target:     d.Target,
		Operator:   d.Operator,
		Trigger:    d.Trigger,
		Value:      d.Value,
		Chance:     d.Chance,
		Multiplier: d.Multiplier,
	}
}

type abilityDTO struct {
	Name    string      `json:"name"`
	Effects []effectDTO `json:"effects"`
}

func (d *abilityDTO) toAbility() *abilities.Ability {
	if d == nil {
		return nil
	}
	a := &abilities.Ability{Name: d.Name}
	for _, e := range d.Effects {
		a.Effects = append(a.Effects, e.toEffect())
	}
	return a
}

type officerDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Faction string `json:"faction"`
	Rarity  string `json:"rarity"`
	Group   string `json:"group"`
	Rank    int    `json:"rank,omitempty"`

	Captain    *abilityDTO `json:"captain,omitempty"`
	Bridge     *abilityDTO `json:"bridge,omitempty"`
	BelowDecks *abilityDTO `json:"below_decks,omitempty"`
}

func (d officerDTO) toOfficer() *abilities.Officer {
	return &abilities.Officer{
		ID:         d.ID,
		Name:       d.Name,
		Faction:    d.Faction,
		Rarity:     d.Rarity,
		Group:      d.Group,
		Captain:    d.Captain.toAbility(),
		Bridge:     d.Bridge.toAbility(),
		BelowDecks: d.BelowDecks.toAbility(),
	}
}

// seatDTO names an officer from the roster and the rank they're seated at.
type seatDTO struct {
	OfficerID string `json:"officer_id"`
	Rank      int    `json:"rank"`
}

type crewDTO struct {
	Captain    seatDTO    `json:"captain"`
	Bridge     [2]seatDTO `json:"bridge"`
	BelowDecks []seatDTO  `json:"below_decks"`
}

func (d crewDTO) toCrew(roster map[string]*abilities.Officer) (abilities.Crew, error) {
	seat := func(s seatDTO) (abilities.OfficerSeat, error) {
		off, ok := roster[s.OfficerID]
		if !ok {
			return abilities.OfficerSeat{}, fmt.Errorf("officer %q not found in roster", s.OfficerID)
		}
		rank := s.Rank
		if rank <= 0 {
			rank = 1
		}
		return abilities.OfficerSeat{Officer: off, Rank: rank}, nil
	}

	captain, err := seat(d.Captain)
	if err != nil {
		return abilities.Crew{}, err
	}
	var bridge [2]abilities.OfficerSeat
	for i, s := range d.Bridge {
		seated, err := seat(s)
		if err != nil {
			return abilities.Crew{}, err
		}
		bridge[i] = seated
	}
	below := make([]abilities.OfficerSeat, len(d.BelowDecks))
	for i, s := range d.BelowDecks {
		seated, err := seat(s)
		if err != nil {
			return abilities.Crew{}, err
		}
		below[i] = seated
	}
	return abilities.Crew{Captain: captain, Bridge: bridge, BelowDecks: below}, nil
}

// scenarioFile is the on-disk shape a scenario JSON file is parsed from.
type scenarioFile struct {
	Ship    record.AttackerStats `json:"ship"`
	Hostile record.DefenderStats `json:"hostile"`
	Profile record.PlayerProfile `json:"profile,omitempty"`

	Roster []officerDTO `json:"roster"`
	Crew   crewDTO      `json:"crew"`

	Optimize *optimizeDTO `json:"optimize,omitempty"`
}

// optimizeDTO carries the optimize subcommand's scenario-specific knobs: the
// officer IDs that make up an Ordered below-decks lineup, and any
// heuristic crew skeletons to score first (spec §4.4 rule 4).
type optimizeDTO struct {
	BelowDecksMode          string    `json:"below_decks_mode,omitempty"` // "ordered" or "exploration"
	OrderedBelowDecks       []string  `json:"ordered_below_decks,omitempty"`
	BelowDecksFilterAbility bool      `json:"below_decks_filter_ability,omitempty"`
	HeuristicSeeds          []crewDTO `json:"heuristic_seeds,omitempty"`
}

func loadScenarioFile(path string) (*scenarioFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %q: %w", path, err)
	}
	var sf scenarioFile
	if err := json.Unmarshal(raw, &sf); err != nil {
		return nil, fmt.Errorf("parse scenario %q: %w", path, err)
	}
	return &sf, nil
}

func (sf *scenarioFile) officerRoster() map[string]*abilities.Officer {
	roster := make(map[string]*abilities.Officer, len(sf.Roster))
	for _, o := range sf.Roster {
		roster[o.ID] = o.toOfficer()
	}
	return roster
}

func (sf *scenarioFile) crew() (abilities.Crew, error) {
	return sf.Crew.toCrew(sf.officerRoster())
}

// rosterSlice returns the scenario's officers in file order, for
// optimizer.EnumerateOptions.Roster.
func (sf *scenarioFile) rosterSlice() []*abilities.Officer {
	roster := sf.officerRoster()
	out := make([]*abilities.Officer, 0, len(sf.Roster))
	for _, o := range sf.Roster {
		out = append(out, roster[o.ID])
	}
	return out
}

func (sf *scenarioFile) rankByOfficerID() map[string]int {
	ranks := make(map[string]int, len(sf.Roster))
	for _, o := range sf.Roster {
		if o.Rank > 0 {
			ranks[o.ID] = o.Rank
		}
	}
	return ranks
}
