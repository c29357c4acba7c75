package yahoo

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mfinley/rostercoach/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	var response models.LeagueResponse
	endpoint := fmt.Sprintf("/league/%s", a.client.Config.LeagueKey)

	if err := a.client.Get(endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("fetching league metadata: %w", err)
	}

	return &models.LeagueMetadata{
		LeagueKey:   response.League.LeagueKey,
		Name:        response.League.Name,
		Season:      response.League.Season,
		CurrentWeek: response.League.CurrentWeek,
		WaiverType:  response.League.WaiverType,
		IsActive:    response.League.IsFinished == 0,
		LastUpdated: time.Now(),
	}, nil
}

// GetLeagueSettingsRaw returns the league's raw settings payload. The shape
// varies by league, so normalization happens in the advisor's settings model
// rather than here.
func (a *API) GetLeagueSettingsRaw() (map[string]any, error) {
	var response models.LeagueResponse
	endpoint := fmt.Sprintf("/league/%s/settings", a.client.Config.LeagueKey)

	if err := a.client.Get(endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("fetching league settings: %w", err)
	}
	return response.League.Settings, nil
}

func (a *API) GetTeamRoster(teamKey string, week int) (*models.TeamRoster, error) {
	var response models.RosterResponse
	endpoint := fmt.Sprintf("/team/%s/roster", teamKey)
	params := map[string]string{"week": fmt.Sprintf("%d", week)}

	if err := a.client.Get(endpoint, params, &response); err != nil {
		return nil, fmt.Errorf("fetching roster for %s: %w", teamKey, err)
	}

	roster := &models.TeamRoster{
		TeamKey:  response.Team.TeamKey,
		TeamName: response.Team.Name,
		Week:     week,
		Entries:  make([]models.RosterEntry, len(response.Team.Roster)),
	}
	for i, p := range response.Team.Roster {
		roster.Entries[i] = toRosterEntry(p)
	}
	return roster, nil
}

func (a *API) GetFreeAgents() ([]models.RosterEntry, error) {
	var response models.PlayersResponse
	endpoint := fmt.Sprintf("/league/%s/players", a.client.Config.LeagueKey)
	params := map[string]string{"status": "FA", "sort": "AR"}

	if err := a.client.Get(endpoint, params, &response); err != nil {
		return nil, fmt.Errorf("fetching free agents: %w", err)
	}

	agents := make([]models.RosterEntry, len(response.Players))
	for i, p := range response.Players {
		agents[i] = toRosterEntry(p)
	}
	return agents, nil
}

// GetTeamSnapshot fetches the aggregate team context the trade advisor
// consumes.
func (a *API) GetTeamSnapshot(teamKey string) (*models.TeamSnapshot, error) {
	var response models.TeamContextResponse
	endpoint := fmt.Sprintf("/team/%s/context", teamKey)

	if err := a.client.Get(endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("fetching team context for %s: %w", teamKey, err)
	}

	team := response.Team
	snapshot := &models.TeamSnapshot{
		TeamKey:            team.TeamKey,
		TeamName:           team.Name,
		StartersBySlot:     team.StartersBySlot,
		BenchRedundancy:    team.BenchRedundancy,
		ByeExposure:        team.ByeExposure,
		Injuries:           team.Injuries,
		ScheduleDifficulty: team.ScheduleDifficulty,
		ManagerProfile:     team.ManagerProfile,
		Roster:             make([]models.TradeAsset, len(team.Roster)),
	}
	for i, p := range team.Roster {
		snapshot.Roster[i] = models.TradeAsset{
			PlayerID:    p.PlayerKey,
			Name:        p.Name,
			Position:    strings.ToUpper(p.Position),
			ProjNext3:   p.ProjNext3,
			PlayoffProj: p.PlayoffProjection,
			ByeNext3:    p.ByeNext3,
			Injury:      p.InjuryStatus,
			Volatility:  p.Volatility,
		}
	}
	return snapshot, nil
}

// FindPlayer fuzzy-matches a name against the team's roster and the
// free-agent pool.
func (a *API) FindPlayer(name string, week int) (models.PlayerSearchResult, error) {
	roster, err := a.GetTeamRoster(a.client.Config.TeamKey, week)
	if err != nil {
		return models.PlayerSearchResult{}, err
	}
	agents, err := a.GetFreeAgents()
	if err != nil {
		return models.PlayerSearchResult{}, err
	}

	type candidate struct {
		entry    models.RosterEntry
		rostered bool
		teamName string
		rank     int
	}
	var matches []candidate
	collect := func(entries []models.RosterEntry, rostered bool, teamName string) {
		for _, e := range entries {
			rank := fuzzy.RankMatchNormalizedFold(name, e.Name)
			if rank < 0 {
				continue
			}
			matches = append(matches, candidate{entry: e, rostered: rostered, teamName: teamName, rank: rank})
		}
	}
	collect(roster.Entries, true, roster.TeamName)
	collect(agents, false, "")

	if len(matches) == 0 {
		return models.PlayerSearchResult{Found: false}, nil
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].rank != matches[j].rank {
			return matches[i].rank < matches[j].rank
		}
		return matches[i].entry.PlayerID < matches[j].entry.PlayerID
	})

	best := matches[0]
	return models.PlayerSearchResult{
		Found:        true,
		PlayerID:     best.entry.PlayerID,
		PlayerName:   best.entry.Name,
		Position:     best.entry.Position,
		ProTeam:      best.entry.ProTeam,
		TeamName:     best.teamName,
		IsRostered:   best.rostered,
		IsStarter:    best.entry.IsStarter(),
		PercentOwned: best.entry.PercentOwned,
	}, nil
}

func toRosterEntry(p models.PlayerJSON) models.RosterEntry {
	return models.RosterEntry{
		PlayerID:           p.PlayerKey,
		Name:               p.Name,
		Position:           strings.ToUpper(p.Position),
		ProTeam:            p.ProTeam,
		Slot:               p.SelectedPosition,
		InjuryStatus:       p.InjuryStatus,
		OnBye:              p.OnBye,
		Projection:         p.Projection,
		Receptions:         p.Receptions,
		Trend:              p.Trend,
		ScheduleDifficulty: p.ScheduleDifficulty,
		PercentOwned:       p.PercentOwned,
	}
}
