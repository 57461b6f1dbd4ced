package main

import (
	"encoding/json"
	"testing"

	"github.com/pggpgg/kobayashi-stfc/abilities"
)

const sampleScenario = `{
  "ship": {"id": "ship", "ship_class": "interceptor", "attack": 1000, "hull_hp": 5000, "shield_hp": 2000, "armor_piercing": 1, "shield_piercing": 1, "accuracy": 0.9},
  "hostile": {"id": "hostile", "ship_class": "interceptor", "attack": 900, "hull_hp": 4500, "shield_hp": 1800, "armor_piercing": 1, "shield_piercing": 1, "accuracy": 0.85, "level": 20, "armor": 1, "shield_deflection": 1, "dodge": 0.1},
  "roster": [
    {"id": "cap-1", "name": "Captain One", "group": "alpha", "captain": {"name": "boost-attack", "effects": [{"kind": "stat_modify", "stat": "weapon_damage", "target": "self", "operator": "multiply", "trigger": "passive", "value": 0.1}]}},
    {"id": "bridge-1", "name": "Bridge One", "group": "alpha"},
    {"id": "bridge-2", "name": "Bridge Two", "group": "alpha"},
    {"id": "below-1", "name": "Below One", "group": "alpha"}
  ],
  "crew": {
    "captain": {"officer_id": "cap-1", "rank": 3},
    "bridge": [{"officer_id": "bridge-1", "rank": 1}, {"officer_id": "bridge-2", "rank": 1}],
    "below_decks": [{"officer_id": "below-1", "rank": 1}]
  }
}`

func TestScenarioFileParsesAndBuildsCrew(t *testing.T) {
	var sf scenarioFile
	if err := json.Unmarshal([]byte(sampleScenario), &sf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sf.Ship.ID != "ship" || sf.Hostile.ID != "hostile" {
		t.Fatalf("ship/hostile not parsed correctly: %+v / %+v", sf.Ship, sf.Hostile)
	}
	if len(sf.Roster) != 4 {
		t.Fatalf("expected 4 roster entries, got %d", len(sf.Roster))
	}

	roster := sf.officerRoster()
	cap1, ok := roster["cap-1"]
	if !ok || cap1.Captain == nil || len(cap1.Captain.Effects) != 1 {
		t.Fatalf("captain ability not translated: %+v", cap1)
	}
	if cap1.Captain.Effects[0].Stat != abilities.StatWeaponDamage {
		t.Fatalf("effect stat not translated: %+v", cap1.Captain.Effects[0])
	}

	crew, err := sf.crew()
	if err != nil {
		t.Fatalf("crew: %v", err)
	}
	if crew.Captain.Officer.ID != "cap-1" || crew.Captain.Rank != 3 {
		t.Fatalf("captain seat not built correctly: %+v", crew.Captain)
	}
	if err := crew.Validate(); err != nil {
		t.Fatalf("expected valid crew, got: %v", err)
	}
}

func TestScenarioFileUnknownOfficerIDErrors(t *testing.T) {
	sf := scenarioFile{
		Crew: crewDTO{Captain: seatDTO{OfficerID: "missing"}},
	}
	if _, err := sf.crew(); err == nil {
		t.Fatal("expected error for unknown officer id")
	}
}

func TestRosterSliceOrderMatchesFileOrder(t *testing.T) {
	var sf scenarioFile
	if err := json.Unmarshal([]byte(sampleScenario), &sf); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	roster := sf.rosterSlice()
	if len(roster) != 4 || roster[0].ID != "cap-1" || roster[1].ID != "bridge-1" || roster[2].ID != "bridge-2" || roster[3].ID != "below-1" {
		t.Fatalf("roster order not preserved: %+v", roster)
	}
}
