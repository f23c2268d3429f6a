package models

// Wire types for the Sleeper public API. Only the fields the engine needs are
// mapped; everything else in the payloads is ignored.

type SleeperLeague struct {
	LeagueID         string                `json:"league_id"`
	Name             string                `json:"name"`
	Season           string                `json:"season"`
	PreviousLeagueID string                `json:"previous_league_id"`
	Settings         SleeperLeagueSettings `json:"settings"`
	Metadata         map[string]string     `json:"metadata"`
}

type SleeperLeagueSettings struct {
	StartWeek        int `json:"start_week"`
	PlayoffWeekStart int `json:"playoff_week_start"`
	PlayoffTeams     int `json:"playoff_teams"`
	Divisions        int `json:"divisions"`
}

type SleeperRoster struct {
	RosterID int                   `json:"roster_id"`
	OwnerID  string                `json:"owner_id"`
	CoOwners []string              `json:"co_owners"`
	Settings SleeperRosterSettings `json:"settings"`
	Metadata map[string]string     `json:"metadata"`
}

type SleeperRosterSettings struct {
	Division int `json:"division"`
}

type SleeperUser struct {
	UserID      string            `json:"user_id"`
	DisplayName string            `json:"display_name"`
	Metadata    map[string]string `json:"metadata"`
}

// SleeperMatchupRow is one roster's side of a weekly matchup. Two rows share
// a matchup id; a row without a partner is a bye. A missing matchup id also
// denotes a bye in older seasons.
type SleeperMatchupRow struct {
	RosterID  int     `json:"roster_id"`
	MatchupID *int    `json:"matchup_id"`
	Points    float64 `json:"points"`
}

type SleeperState struct {
	Season string `json:"season"`
	Week   int    `json:"week"`
}
