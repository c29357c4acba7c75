package advisor

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Position is an offensive lineup position.
type Position string

const (
	QB  Position = "QB"
	RB  Position = "RB"
	WR  Position = "WR"
	TE  Position = "TE"
	K   Position = "K"
	DST Position = "DST"
)

// flexEligibility maps flexible slot labels to the positions allowed to fill
// them.
var flexEligibility = map[string][]Position{
	"FLEX":      {RB, WR, TE},
	"W/R/T":     {RB, WR, TE},
	"SUPERFLEX": {QB, RB, WR, TE},
	"Q/W/R/T":   {QB, RB, WR, TE},
}

var benchLabels = map[string]bool{
	"BN":    true,
	"BENCH": true,
	"IR":    true,
}

// RosterSlot is one lineup slot declaration, in league order.
type RosterSlot struct {
	Label string
	Count int
}

// IsBench reports whether the slot holds non-starting players.
func (s RosterSlot) IsBench() bool {
	return benchLabels[s.Label]
}

// ScoringBonus awards extra points when a stat crosses a threshold.
type ScoringBonus struct {
	Description string
	Stat        string
	Threshold   float64
	Points      float64
}

// ScoringRules holds the league's point multipliers. Missing keys in the raw
// configuration fall back to standard (non-PPR) scoring.
type ScoringRules struct {
	PPR        float64
	PassTD     float64
	PassYd     float64
	PassInt    float64
	RushTD     float64
	RushYd     float64
	RecTD      float64
	RecYd      float64
	FumbleLost float64

	FieldGoal  map[string]float64
	ExtraPoint float64

	DSTTD            float64
	DSTSack          float64
	DSTInt           float64
	DSTFumRec        float64
	DSTPointsAllowed map[string]float64

	Bonuses []ScoringBonus
}

// StandardScoring returns the default non-PPR rule set.
func StandardScoring() ScoringRules {
	return ScoringRules{
		PPR:        0.0,
		PassTD:     4.0,
		PassYd:     0.04,
		PassInt:    -2.0,
		RushTD:     6.0,
		RushYd:     0.1,
		RecTD:      6.0,
		RecYd:      0.1,
		FumbleLost: -2.0,
		FieldGoal:  map[string]float64{"0-39": 3.0, "40-49": 4.0, "50+": 5.0},
		ExtraPoint: 1.0,
		DSTTD:      6.0,
		DSTSack:    1.0,
		DSTInt:     2.0,
		DSTFumRec:  2.0,
		DSTPointsAllowed: map[string]float64{
			"0": 10.0, "1-6": 7.0, "7-13": 4.0, "14-20": 1.0,
			"21-27": 0.0, "28-34": -1.0, "35+": -4.0,
		},
	}
}

// LeagueSettings is the canonical league configuration every engine consumes.
// It is immutable after ParseSettings; the derived capacity table is computed
// once and never written again.
type LeagueSettings struct {
	RosterSlots       []RosterSlot
	BenchSize         int
	FAABBudget        int
	TradeDeadlineWeek int
	Scoring           ScoringRules

	capacity      map[Position]int
	startingSlots int
}

// StartingSlotCapacity returns how many lineup slots the position can fill,
// counting flexible slots toward every position in their allowed set.
func (s *LeagueSettings) StartingSlotCapacity(pos Position) int {
	return s.capacity[pos]
}

// StartingSlots returns the total number of declared starting slots.
func (s *LeagueSettings) StartingSlots() int {
	return s.startingSlots
}

// StartingPositions returns the positions with non-zero capacity in a stable
// order.
func (s *LeagueSettings) StartingPositions() []Position {
	positions := make([]Position, 0, len(s.capacity))
	for pos, n := range s.capacity {
		if n > 0 {
			positions = append(positions, pos)
		}
	}
	sort.Slice(positions, func(i, j int) bool { return positions[i] < positions[j] })
	return positions
}

// ParseSettings normalizes a raw league configuration, as decoded from the
// provider's JSON, into LeagueSettings. The raw shape varies between league
// hosts, so the mapping is defensive, but structural problems fail with
// *SettingsParseError rather than falling back to hidden defaults.
func ParseSettings(raw map[string]any) (*LeagueSettings, error) {
	if raw == nil {
		return nil, &SettingsParseError{Reason: "configuration is empty"}
	}
	if nested, ok := raw["settings"].(map[string]any); ok {
		raw = nested
	}

	slots, bench, err := parseRosterSlots(raw)
	if err != nil {
		return nil, err
	}

	scoring, err := parseScoring(raw["scoring"])
	if err != nil {
		return nil, err
	}

	settings := &LeagueSettings{
		RosterSlots:       slots,
		BenchSize:         bench,
		FAABBudget:        asInt(firstOf(raw, "faab", "faab_budget")),
		TradeDeadlineWeek: asWeek(firstOf(raw, "trade_deadline_week", "trade_deadline")),
		Scoring:           scoring,
		capacity:          map[Position]int{},
	}

	for _, slot := range settings.RosterSlots {
		if slot.IsBench() {
			continue
		}
		settings.startingSlots += slot.Count
		if eligible, ok := flexEligibility[slot.Label]; ok {
			for _, pos := range eligible {
				settings.capacity[pos] += slot.Count
			}
			continue
		}
		settings.capacity[normalizePosition(slot.Label)] += slot.Count
	}

	if settings.startingSlots == 0 {
		return nil, &SettingsParseError{Reason: "no starting slots declared"}
	}
	return settings, nil
}

func parseRosterSlots(raw map[string]any) ([]RosterSlot, int, error) {
	positions, ok := raw["roster_positions"].([]any)
	if !ok {
		if roster, rok := raw["roster"].(map[string]any); rok {
			positions, ok = roster["positions"].([]any)
		}
	}
	if !ok || len(positions) == 0 {
		return nil, 0, &SettingsParseError{Reason: "roster slot list is empty"}
	}

	var slots []RosterSlot
	bench := 0
	for _, entry := range positions {
		pos, ok := entry.(map[string]any)
		if !ok {
			return nil, 0, &SettingsParseError{Reason: fmt.Sprintf("roster slot entry %v is not an object", entry)}
		}
		label := strings.ToUpper(asString(firstOf(pos, "position", "name")))
		if label == "" {
			return nil, 0, &SettingsParseError{Reason: "roster slot entry has no position label"}
		}
		count := 1
		if _, present := pos["count"]; present {
			count = asInt(pos["count"])
		}
		if count < 0 {
			return nil, 0, &SettingsParseError{Reason: fmt.Sprintf("slot %s has negative count %d", label, count)}
		}
		if benchLabels[label] {
			bench += count
		}
		slots = append(slots, RosterSlot{Label: label, Count: count})
	}
	return slots, bench, nil
}

func parseScoring(raw any) (ScoringRules, error) {
	rules := StandardScoring()
	if raw == nil {
		return rules, nil
	}
	scoring, ok := raw.(map[string]any)
	if !ok {
		return rules, &SettingsParseError{Reason: "scoring rules are not an object"}
	}

	if ppr, present := scoring["ppr"]; present {
		rules.PPR = parsePPR(ppr)
	}
	setIfPresent(scoring, "pass_td", &rules.PassTD)
	setIfPresent(scoring, "pass_yd", &rules.PassYd)
	setIfPresent(scoring, "pass_int", &rules.PassInt)
	setIfPresent(scoring, "rush_td", &rules.RushTD)
	setIfPresent(scoring, "rush_yd", &rules.RushYd)
	setIfPresent(scoring, "rec_td", &rules.RecTD)
	setIfPresent(scoring, "rec_yd", &rules.RecYd)
	setIfPresent(scoring, "fumble_lost", &rules.FumbleLost)

	if rawBonuses, present := scoring["bonuses"].([]any); present {
		for _, rb := range rawBonuses {
			b, ok := rb.(map[string]any)
			if !ok {
				continue
			}
			rules.Bonuses = append(rules.Bonuses, ScoringBonus{
				Description: asString(b["description"]),
				Stat:        asString(b["stat"]),
				Threshold:   asFloat(b["threshold"]),
				Points:      asFloat(b["points"]),
			})
		}
	}
	return rules, nil
}

func parsePPR(v any) float64 {
	switch t := v.(type) {
	case bool:
		if t {
			return 1.0
		}
		return 0.0
	case string:
		switch strings.ToLower(t) {
		case "full", "ppr", "1":
			return 1.0
		case "half", "0.5":
			return 0.5
		default:
			return 0.0
		}
	default:
		f := asFloat(v)
		if f >= 1.0 {
			return 1.0
		}
		if f >= 0.5 {
			return 0.5
		}
		return 0.0
	}
}

func normalizePosition(label string) Position {
	switch strings.ToUpper(label) {
	case "DEF", "DST", "D/ST":
		return DST
	default:
		return Position(strings.ToUpper(label))
	}
}

func firstOf(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func setIfPresent(m map[string]any, key string, dst *float64) {
	if v, ok := m[key]; ok && v != nil {
		*dst = asFloat(v)
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func asInt(v any) int {
	return int(asFloat(v))
}

// asWeek accepts either a bare week number or an object with a "week" field,
// both of which appear in provider payloads.
func asWeek(v any) int {
	if m, ok := v.(map[string]any); ok {
		return asInt(m["week"])
	}
	return asInt(v)
}
