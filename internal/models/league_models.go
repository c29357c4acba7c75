package models

import "time"

// LeagueMetadata is the normalized league header, cached between refreshes.
type LeagueMetadata struct {
	LeagueKey   string
	Name        string
	Season      string
	CurrentWeek int
	WaiverType  string
	IsActive    bool
	LastUpdated time.Time
}

// RosterEntry is one player on a roster or the free-agent pool, normalized
// from the provider payload. Projection fields may be zero when the provider
// has no data; the engines treat missing numerics as zero.
type RosterEntry struct {
	PlayerID           string
	Name               string
	Position           string
	ProTeam            string
	Slot               string
	InjuryStatus       string
	OnBye              bool
	Projection         float64
	Receptions         float64
	Trend              float64
	ScheduleDifficulty float64
	PercentOwned       float64
}

// IsStarter reports whether the entry occupies a starting slot.
func (e RosterEntry) IsStarter() bool {
	return e.Slot != "" && e.Slot != "BN" && e.Slot != "IR"
}

// TeamRoster is a team's roster for one week.
type TeamRoster struct {
	TeamKey  string
	TeamName string
	Week     int
	Entries  []RosterEntry
}

// TradeAsset is a roster entry with the horizon projections the trade
// advisor consumes.
type TradeAsset struct {
	PlayerID    string
	Name        string
	Position    string
	ProjNext3   float64
	PlayoffProj float64
	ByeNext3    int
	Injury      string
	Volatility  float64
}

// TeamSnapshot is one team's situation as input to the trade advisor.
type TeamSnapshot struct {
	TeamKey            string
	TeamName           string
	StartersBySlot     map[string]int
	BenchRedundancy    map[string]int
	ByeExposure        int
	Injuries           int
	ScheduleDifficulty float64
	ManagerProfile     map[string]string
	Roster             []TradeAsset
}

// PlayerSearchResult is the answer to a fuzzy player lookup.
type PlayerSearchResult struct {
	Found        bool
	PlayerID     string
	PlayerName   string
	Position     string
	ProTeam      string
	TeamName     string
	IsRostered   bool
	IsStarter    bool
	PercentOwned float64
}
