package engine

import "github.com/rob-foulkrod/ff/internal/models"

// HeadToHeadThrough builds the cumulative pairwise matrix through week,
// ordered by the current overall rank so the grid reflects league position.
// Byes never count; a pair that has not met stays Played=false, which renders
// differently from a played 0-0-0 cell.
func (e *Engine) HeadToHeadThrough(week int) (models.HeadToHeadMatrix, error) {
	standings, err := e.StandingsThrough(week)
	if err != nil {
		return models.HeadToHeadMatrix{}, err
	}

	order := make([]int, len(standings))
	owners := make(map[int]string, len(standings))
	for i, row := range standings {
		order[i] = row.RosterID
		owners[row.RosterID] = row.Owner
	}

	type pair struct{ a, b int }
	cells := make(map[pair]*models.HeadToHeadCell)
	cell := func(a, b int) *models.HeadToHeadCell {
		key := pair{a, b}
		c, ok := cells[key]
		if !ok {
			c = &models.HeadToHeadCell{Played: true}
			cells[key] = c
		}
		return c
	}

	for _, m := range e.matchupsThrough(week) {
		ab := cell(m.RosterA, m.RosterB)
		ba := cell(m.RosterB, m.RosterA)
		switch m.Winner() {
		case m.RosterA:
			ab.Wins++
			ba.Losses++
		case m.RosterB:
			ba.Wins++
			ab.Losses++
		default:
			ab.Ties++
			ba.Ties++
		}
	}

	rows := make([]models.HeadToHeadRow, len(order))
	for i, rid := range order {
		row := models.HeadToHeadRow{
			RosterID: rid,
			Owner:    owners[rid],
			Cells:    make([]models.HeadToHeadCell, len(order)),
		}
		for j, opp := range order {
			if rid == opp {
				row.Cells[j] = models.HeadToHeadCell{Self: true}
				continue
			}
			if c, ok := cells[pair{rid, opp}]; ok {
				row.Cells[j] = *c
			}
		}
		rows[i] = row
	}

	return models.HeadToHeadMatrix{Order: order, Rows: rows}, nil
}
