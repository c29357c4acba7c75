package fantasy

import (
	"github.com/mfinley/rostercoach/internal/api/yahoo"
	"github.com/mfinley/rostercoach/internal/models"
)

// API is the provider facade the service layer depends on.
type API struct {
	yahooAPI *yahoo.API
}

func NewAPI(yahooAPI *yahoo.API) *API {
	return &API{yahooAPI: yahooAPI}
}

func (a *API) GetLeagueMetadata() (*models.LeagueMetadata, error) {
	return a.yahooAPI.GetLeagueMetadata()
}

func (a *API) GetLeagueSettingsRaw() (map[string]any, error) {
	return a.yahooAPI.GetLeagueSettingsRaw()
}

func (a *API) GetTeamRoster(teamKey string, week int) (*models.TeamRoster, error) {
	return a.yahooAPI.GetTeamRoster(teamKey, week)
}

func (a *API) GetFreeAgents() ([]models.RosterEntry, error) {
	return a.yahooAPI.GetFreeAgents()
}

func (a *API) GetTeamSnapshot(teamKey string) (*models.TeamSnapshot, error) {
	return a.yahooAPI.GetTeamSnapshot(teamKey)
}

func (a *API) FindPlayer(name string, week int) (models.PlayerSearchResult, error) {
	return a.yahooAPI.FindPlayer(name, week)
}
