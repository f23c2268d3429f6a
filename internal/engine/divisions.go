package engine

import (
	"fmt"
	"sort"

	"github.com/rob-foulkrod/ff/internal/models"
)

// DivisionStandingsThrough filters the overall standings into each configured
// division and re-ranks within it using the same tie-break chain. Divisions
// are returned in ascending division-id order. Rosters without a division
// assignment appear in no division.
func (e *Engine) DivisionStandingsThrough(week int) ([]models.DivisionStandings, error) {
	overall, err := e.StandingsThrough(week)
	if err != nil {
		return nil, err
	}
	return e.divisionStandings(overall), nil
}

func (e *Engine) divisionStandings(overall []models.StandingsRow) []models.DivisionStandings {
	byDiv := make(map[int][]models.StandingsRow)
	for _, row := range overall {
		div, ok := e.cfg.DivisionOf(row.RosterID)
		if !ok {
			continue
		}
		row.PrevRank = 0
		row.RankChange = 0
		byDiv[div] = append(byDiv[div], row)
	}

	divIDs := make([]int, 0, len(byDiv))
	for id := range byDiv {
		divIDs = append(divIDs, id)
	}
	sort.Ints(divIDs)

	out := make([]models.DivisionStandings, 0, len(divIDs))
	for _, id := range divIDs {
		rows := byDiv[id]
		rankRows(rows)
		name := e.cfg.DivisionName(id)
		if name == "" {
			name = fmt.Sprintf("Division %d", id)
		}
		out = append(out, models.DivisionStandings{
			DivisionID:   id,
			DivisionName: name,
			Rows:         rows,
		})
	}
	return out
}

// PlayoffPictureThrough seeds the playoff field: the top team of each
// division first (ordered by division id), then wildcards from the pooled
// remainder by overall rank. When playoff_teams is smaller than the division
// count, only the top playoff_teams division winners by overall rank get a
// seed. In the Hunt lists every unseeded roster whose (W, L, T) exactly
// matches the lowest seed's.
func (e *Engine) PlayoffPictureThrough(week int) (models.PlayoffPicture, error) {
	overall, err := e.StandingsThrough(week)
	if err != nil {
		return models.PlayoffPicture{}, err
	}
	return e.playoffPicture(overall)
}

func (e *Engine) playoffPicture(overall []models.StandingsRow) (models.PlayoffPicture, error) {
	if e.cfg.PlayoffTeams == 0 {
		return models.PlayoffPicture{}, nil
	}

	divisions := e.divisionStandings(overall)
	overallRank := make(map[int]int, len(overall))
	for _, r := range overall {
		overallRank[r.RosterID] = r.Rank
	}

	// Division winners in division-id order.
	winners := make([]models.StandingsRow, 0, len(divisions))
	for _, div := range divisions {
		if len(div.Rows) == 0 {
			continue
		}
		winners = append(winners, div.Rows[0])
	}

	if e.cfg.PlayoffTeams < len(winners) {
		// Not enough slots for every division champion: the lower-ranked
		// divisions get no automatic seed.
		sort.Slice(winners, func(i, j int) bool {
			return overallRank[winners[i].RosterID] < overallRank[winners[j].RosterID]
		})
		winners = winners[:e.cfg.PlayoffTeams]
	}

	wildcardSlots := e.cfg.PlayoffTeams - len(winners)
	if wildcardSlots < 0 {
		return models.PlayoffPicture{}, &ConfigurationError{Detail: fmt.Sprintf(
			"playoff_teams %d cannot seat %d division winners", e.cfg.PlayoffTeams, len(winners))}
	}

	seeded := make(map[int]bool, e.cfg.PlayoffTeams)
	seeds := make([]models.PlayoffSeed, 0, e.cfg.PlayoffTeams)
	for _, w := range winners {
		seeded[w.RosterID] = true
		seeds = append(seeds, e.newSeed(len(seeds)+1, w, models.SeedDivisionWinner))
	}

	// Wildcards: the remaining rosters pooled across divisions, by overall rank.
	for _, row := range overall {
		if wildcardSlots == 0 {
			break
		}
		if seeded[row.RosterID] {
			continue
		}
		seeded[row.RosterID] = true
		seeds = append(seeds, e.newSeed(len(seeds)+1, row, models.SeedWildcard))
		wildcardSlots--
	}

	picture := models.PlayoffPicture{Seeds: seeds}
	if len(seeds) > 0 {
		last := seeds[len(seeds)-1]
		for _, row := range overall {
			if seeded[row.RosterID] {
				continue
			}
			if row.Wins == last.Wins && row.Losses == last.Losses && row.Ties == last.Ties {
				picture.InTheHunt = append(picture.InTheHunt, row)
			}
		}
	}
	return picture, nil
}

func (e *Engine) newSeed(seed int, row models.StandingsRow, typ models.SeedType) models.PlayoffSeed {
	s := models.PlayoffSeed{
		Seed:          seed,
		RosterID:      row.RosterID,
		Owner:         row.Owner,
		Type:          typ,
		Wins:          row.Wins,
		Losses:        row.Losses,
		Ties:          row.Ties,
		WinPct:        row.WinPct,
		PointsFor:     row.PointsFor,
		PointsAgainst: row.PointsAgainst,
	}
	if div, ok := e.cfg.DivisionOf(row.RosterID); ok {
		s.DivisionID = div
		s.DivisionName = e.cfg.DivisionName(div)
		if s.DivisionName == "" {
			s.DivisionName = fmt.Sprintf("Division %d", div)
		}
	}
	return s
}
