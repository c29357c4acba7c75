package models

// Raw response shapes for the Yahoo fantasy API (format=json). Only the
// fields the advisor needs are mapped.

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type LeagueResponse struct {
	League struct {
		LeagueKey   string         `json:"league_key"`
		Name        string         `json:"name"`
		Season      string         `json:"season"`
		CurrentWeek int            `json:"current_week"`
		IsFinished  int            `json:"is_finished"`
		WaiverType  string         `json:"waiver_type"`
		Settings    map[string]any `json:"settings"`
	} `json:"league"`
}

type RosterResponse struct {
	Team struct {
		TeamKey string       `json:"team_key"`
		Name    string       `json:"name"`
		Roster  []PlayerJSON `json:"roster"`
	} `json:"team"`
}

type PlayersResponse struct {
	Players []PlayerJSON `json:"players"`
}

type PlayerJSON struct {
	PlayerKey          string  `json:"player_key"`
	Name               string  `json:"name"`
	Position           string  `json:"position"`
	ProTeam            string  `json:"editorial_team_abbr"`
	SelectedPosition   string  `json:"selected_position"`
	InjuryStatus       string  `json:"status"`
	OnBye              bool    `json:"on_bye"`
	Projection         float64 `json:"projected_points"`
	ProjNext3          float64 `json:"projected_points_next3"`
	PlayoffProjection  float64 `json:"projected_points_playoffs"`
	Receptions         float64 `json:"projected_receptions"`
	Trend              float64 `json:"trend_last2"`
	ScheduleDifficulty float64 `json:"schedule_difficulty_next4"`
	ByeNext3           int     `json:"byes_next3"`
	Volatility         float64 `json:"volatility"`
	PercentOwned       float64 `json:"percent_owned"`
}

type TeamContextResponse struct {
	Team struct {
		TeamKey            string            `json:"team_key"`
		Name               string            `json:"name"`
		StartersBySlot     map[string]int    `json:"starters_by_slot"`
		BenchRedundancy    map[string]int    `json:"bench_redundancy"`
		ByeExposure        int               `json:"bye_exposure"`
		Injuries           int               `json:"injuries"`
		ScheduleDifficulty float64           `json:"schedule_difficulty"`
		ManagerProfile     map[string]string `json:"manager_profile"`
		Roster             []PlayerJSON      `json:"roster"`
	} `json:"team"`
}
