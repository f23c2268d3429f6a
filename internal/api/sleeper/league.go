package sleeper

import (
	"fmt"
	"sort"

	"github.com/rob-foulkrod/ff/internal/models"
)

// maxSeasonHops bounds the previous_league_id walk so a malformed chain
// cannot loop forever.
const maxSeasonHops = 20

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) GetState() (*models.SleeperState, error) {
	var state models.SleeperState
	if err := a.client.Get("/state/nfl", &state); err != nil {
		return nil, fmt.Errorf("fetching nfl state: %w", err)
	}
	return &state, nil
}

func (a *API) GetLeague(leagueID string) (*models.SleeperLeague, error) {
	var league models.SleeperLeague
	if err := a.client.Get("/league/"+leagueID, &league); err != nil {
		return nil, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	return &league, nil
}

func (a *API) GetRosters(leagueID string) ([]models.SleeperRoster, error) {
	var rosters []models.SleeperRoster
	if err := a.client.Get("/league/"+leagueID+"/rosters", &rosters); err != nil {
		return nil, fmt.Errorf("fetching rosters: %w", err)
	}
	return rosters, nil
}

func (a *API) GetUsers(leagueID string) ([]models.SleeperUser, error) {
	var users []models.SleeperUser
	if err := a.client.Get("/league/"+leagueID+"/users", &users); err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}
	return users, nil
}

func (a *API) GetMatchups(leagueID string, week int) ([]models.SleeperMatchupRow, error) {
	var rows []models.SleeperMatchupRow
	path := fmt.Sprintf("/league/%s/matchups/%d", leagueID, week)
	if err := a.client.Get(path, &rows); err != nil {
		return nil, fmt.Errorf("fetching week %d matchups: %w", week, err)
	}
	return rows, nil
}

// ResolveSeason walks previous_league_id from the given league until it finds
// the season requested. An empty season returns the league as-is.
func (a *API) ResolveSeason(leagueID, season string) (*models.SleeperLeague, error) {
	league, err := a.GetLeague(leagueID)
	if err != nil {
		return nil, err
	}
	if season == "" {
		return league, nil
	}

	for hops := 0; hops < maxSeasonHops; hops++ {
		if league.Season == season {
			return league, nil
		}
		prev := league.PreviousLeagueID
		if prev == "" || prev == "0" {
			return nil, fmt.Errorf("season %s not found in league chain of %s", season, leagueID)
		}
		league, err = a.GetLeague(prev)
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("league chain of %s exceeds %d seasons", leagueID, maxSeasonHops)
}

// GetSeasonHistory fetches and pairs every regular-season week from startWeek
// through throughWeek.
func (a *API) GetSeasonHistory(leagueID string, startWeek, throughWeek int) ([]models.Matchup, error) {
	var history []models.Matchup
	for week := startWeek; week <= throughWeek; week++ {
		rows, err := a.GetMatchups(leagueID, week)
		if err != nil {
			return nil, err
		}
		matchups, err := pairWeek(week, rows)
		if err != nil {
			return nil, err
		}
		history = append(history, matchups...)
	}
	return history, nil
}

// pairWeek joins the per-roster rows Sleeper returns into two-sided matchups.
// The lower roster id takes side A. Rows without a matchup id and rows whose
// id has no partner are byes; byes get synthetic matchup ids above the paired
// range so every (week, id) stays unique.
func pairWeek(week int, rows []models.SleeperMatchupRow) ([]models.Matchup, error) {
	byID := make(map[int][]models.SleeperMatchupRow)
	var byes []models.SleeperMatchupRow
	maxID := 0
	for _, row := range rows {
		if row.MatchupID == nil {
			byes = append(byes, row)
			continue
		}
		byID[*row.MatchupID] = append(byID[*row.MatchupID], row)
		if *row.MatchupID > maxID {
			maxID = *row.MatchupID
		}
	}

	ids := make([]int, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var matchups []models.Matchup
	for _, id := range ids {
		group := byID[id]
		switch len(group) {
		case 1:
			byes = append(byes, group[0])
		case 2:
			a, b := group[0], group[1]
			if b.RosterID < a.RosterID {
				a, b = b, a
			}
			matchups = append(matchups, models.Matchup{
				Week:      week,
				MatchupID: id,
				RosterA:   a.RosterID,
				PointsA:   a.Points,
				RosterB:   b.RosterID,
				PointsB:   b.Points,
			})
		default:
			return nil, fmt.Errorf("week %d matchup %d has %d rosters", week, id, len(group))
		}
	}

	sort.Slice(byes, func(i, j int) bool { return byes[i].RosterID < byes[j].RosterID })
	for i, row := range byes {
		matchups = append(matchups, models.Matchup{
			Week:      week,
			MatchupID: maxID + 1 + i,
			RosterA:   row.RosterID,
			PointsA:   row.Points,
		})
	}
	return matchups, nil
}

// BuildLeagueConfig maps the league, roster, and user payloads into engine
// configuration. Owner names come from each user's team_name metadata,
// falling back to the display name; division names come from the league
// metadata keys division_1, division_2, and so on.
func BuildLeagueConfig(league *models.SleeperLeague, rosters []models.SleeperRoster, users []models.SleeperUser) models.LeagueConfig {
	owners := make(map[string]models.SleeperUser, len(users))
	for _, u := range users {
		owners[u.UserID] = u
	}

	cfg := models.LeagueConfig{
		LeagueID:         league.LeagueID,
		Season:           league.Season,
		Name:             league.Name,
		StartWeek:        league.Settings.StartWeek,
		PlayoffWeekStart: league.Settings.PlayoffWeekStart,
		PlayoffTeams:     league.Settings.PlayoffTeams,
	}
	if cfg.StartWeek == 0 {
		cfg.StartWeek = 1
	}

	if n := league.Settings.Divisions; n > 0 {
		cfg.Divisions = make(map[int]string, n)
		for id := 1; id <= n; id++ {
			cfg.Divisions[id] = league.Metadata[fmt.Sprintf("division_%d", id)]
		}
	}

	sort.Slice(rosters, func(i, j int) bool { return rosters[i].RosterID < rosters[j].RosterID })
	for _, r := range rosters {
		roster := models.Roster{ID: r.RosterID}
		if u, ok := owners[r.OwnerID]; ok {
			roster.Owner = u.DisplayName
			if name := u.Metadata["team_name"]; name != "" {
				roster.TeamName = name
			} else {
				roster.TeamName = u.DisplayName
			}
		}
		cfg.Rosters = append(cfg.Rosters, roster)

		if div := r.Settings.Division; div > 0 && len(cfg.Divisions) > 0 {
			if cfg.RosterDivisions == nil {
				cfg.RosterDivisions = make(map[int]int)
			}
			cfg.RosterDivisions[r.RosterID] = div
		}
	}
	return cfg
}
