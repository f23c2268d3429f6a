package engine

import (
	"sort"

	"github.com/rob-foulkrod/ff/internal/models"
)

// StandingsThrough returns one row per configured roster reflecting results
// from the start week through week, ranked by the tie-break chain: win
// percentage desc, points-for desc, roster id asc. Rank change is computed
// against the standings through week-1.
func (e *Engine) StandingsThrough(week int) ([]models.StandingsRow, error) {
	if err := e.checkWeek(week); err != nil {
		return nil, err
	}

	rows := e.accumulate(week)
	rankRows(rows)

	if week > e.cfg.StartWeek {
		prev := e.accumulate(week - 1)
		rankRows(prev)
		prevRank := make(map[int]int, len(prev))
		for _, r := range prev {
			prevRank[r.RosterID] = r.Rank
		}
		for i := range rows {
			pr := prevRank[rows[i].RosterID]
			rows[i].PrevRank = pr
			if pr > 0 {
				rows[i].RankChange = pr - rows[i].Rank
			}
		}
	}
	return rows, nil
}

// accumulate folds matchups through week into per-roster totals. Byes
// contribute nothing; every configured roster gets a row even with zero games.
func (e *Engine) accumulate(week int) []models.StandingsRow {
	byID := make(map[int]*models.StandingsRow, len(e.cfg.Rosters))
	rows := make([]models.StandingsRow, 0, len(e.cfg.Rosters))
	for _, r := range e.cfg.Rosters {
		rows = append(rows, models.StandingsRow{RosterID: r.ID, Owner: r.Owner})
	}
	for i := range rows {
		byID[rows[i].RosterID] = &rows[i]
	}

	for _, m := range e.matchupsThrough(week) {
		a := byID[m.RosterA]
		b := byID[m.RosterB]
		a.PointsFor += m.PointsA
		a.PointsAgainst += m.PointsB
		b.PointsFor += m.PointsB
		b.PointsAgainst += m.PointsA
		switch m.Winner() {
		case m.RosterA:
			a.Wins++
			b.Losses++
		case m.RosterB:
			b.Wins++
			a.Losses++
		default:
			a.Ties++
			b.Ties++
		}
	}

	for i := range rows {
		r := &rows[i]
		r.Games = r.Wins + r.Losses + r.Ties
		if r.Games > 0 {
			r.WinPct = round4((float64(r.Wins) + 0.5*float64(r.Ties)) / float64(r.Games))
		}
		r.PointsFor = round2(r.PointsFor)
		r.PointsAgainst = round2(r.PointsAgainst)
	}
	return rows
}

// rankRows sorts in place by the tie-break chain and assigns ranks. The
// roster-id fallback guarantees a strict total order even on an exact
// multi-way tie.
func rankRows(rows []models.StandingsRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].WinPct != rows[j].WinPct {
			return rows[i].WinPct > rows[j].WinPct
		}
		if rows[i].PointsFor != rows[j].PointsFor {
			return rows[i].PointsFor > rows[j].PointsFor
		}
		return rows[i].RosterID < rows[j].RosterID
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}
}
