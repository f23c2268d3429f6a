package engine

import (
	"sort"

	"github.com/rob-foulkrod/ff/internal/models"
)

// WeeklyReportThrough assembles the full structured report for one week:
// standings, division standings, the playoff picture, the head-to-head grid,
// streaks and per-matchup flags, plus the derived analytics (all-play, median
// records, margin extremes, division power) and the next-week preview.
func (e *Engine) WeeklyReportThrough(week int) (*models.WeeklyReport, error) {
	standings, err := e.StandingsThrough(week)
	if err != nil {
		return nil, err
	}
	divisions := e.divisionStandings(standings)
	playoffs, err := e.playoffPicture(standings)
	if err != nil {
		return nil, err
	}
	h2h, err := e.HeadToHeadThrough(week)
	if err != nil {
		return nil, err
	}
	streaks, err := e.StreaksThrough(week)
	if err != nil {
		return nil, err
	}
	flags, err := e.WeeklyFlagsFor(week)
	if err != nil {
		return nil, err
	}

	report := &models.WeeklyReport{
		LeagueID:         e.cfg.LeagueID,
		Season:           e.cfg.Season,
		Week:             week,
		StartWeek:        e.cfg.StartWeek,
		PlayoffWeekStart: e.cfg.PlayoffWeekStart,
		PlayoffTeams:     e.cfg.PlayoffTeams,
		Standings:        standings,
		Divisions:        divisions,
		Playoffs:         playoffs,
		HeadToHead:       h2h,
		Streaks:          streaks,
		Matchups:         flags,
	}

	weekPoints := e.weeklyPoints(week)
	report.AllPlay, report.Median = e.allPlayAndMedian(week, standings, weekPoints)
	report.WeekMargins = e.marginSummary(week, week)
	report.SeasonMargins = e.marginSummary(e.cfg.StartWeek, week)
	report.DivisionPowerWeek, report.DivisionPowerSeason = e.divisionPower(week, standings, weekPoints)
	report.Preview = e.preview(week)
	report.Aggregates = e.aggregates(week, weekPoints)
	return report, nil
}

// weeklyPoints maps week -> roster -> score over non-bye matchups.
func (e *Engine) weeklyPoints(through int) map[int]map[int]float64 {
	out := make(map[int]map[int]float64)
	for _, m := range e.matchupsThrough(through) {
		wk := out[m.Week]
		if wk == nil {
			wk = make(map[int]float64)
			out[m.Week] = wk
		}
		wk[m.RosterA] = m.PointsA
		wk[m.RosterB] = m.PointsB
	}
	return out
}

// allPlayAndMedian walks every played week once and accumulates each
// roster's all-play record (against every other score that week, ties as
// half) and its record against the weekly median.
func (e *Engine) allPlayAndMedian(week int, standings []models.StandingsRow, weekPoints map[int]map[int]float64) ([]models.AllPlayRecord, []models.MedianRecord) {
	type wl struct{ w, l float64 }
	allPlay := make(map[int]*wl, len(e.cfg.Rosters))
	median := make(map[int]*wl, len(e.cfg.Rosters))
	for _, r := range e.cfg.Rosters {
		allPlay[r.ID] = &wl{}
		median[r.ID] = &wl{}
	}

	for wk := e.cfg.StartWeek; wk <= week; wk++ {
		pts := weekPoints[wk]
		if len(pts) < 2 {
			continue
		}
		scores := make([]float64, 0, len(pts))
		for _, s := range pts {
			scores = append(scores, s)
		}
		sort.Float64s(scores)

		n := len(scores)
		mid := n / 2
		med := scores[mid]
		if n%2 == 0 {
			med = 0.5 * (scores[mid-1] + scores[mid])
		}

		for rid, score := range pts {
			below := sort.SearchFloat64s(scores, score)
			// equal scores besides our own count half a win each
			equal := -1
			for i := below; i < n && scores[i] == score; i++ {
				equal++
			}
			apw := float64(below) + 0.5*float64(equal)
			allPlay[rid].w += apw
			allPlay[rid].l += float64(n-1) - apw

			switch {
			case score > med:
				median[rid].w++
			case score < med:
				median[rid].l++
			default:
				median[rid].w += 0.5
				median[rid].l += 0.5
			}
		}
	}

	actualWins := make(map[int]float64, len(standings))
	for _, row := range standings {
		actualWins[row.RosterID] = float64(row.Wins)
	}

	n := len(e.cfg.Rosters)
	apOut := make([]models.AllPlayRecord, 0, n)
	medOut := make([]models.MedianRecord, 0, n)
	for _, r := range e.cfg.Rosters {
		ap := allPlay[r.ID]
		md := median[r.ID]
		rec := models.AllPlayRecord{
			RosterID:   r.ID,
			Owner:      r.Owner,
			Wins:       round2(ap.w),
			Losses:     round2(ap.l),
			ActualWins: actualWins[r.ID],
		}
		if total := ap.w + ap.l; total > 0 {
			rec.Pct = round4(ap.w / total)
		}
		if n > 1 {
			rec.ExpectedWins = round2(ap.w / float64(n-1))
		}
		rec.LuckDiff = round2(rec.ActualWins - rec.ExpectedWins)
		apOut = append(apOut, rec)

		mrec := models.MedianRecord{
			RosterID: r.ID,
			Owner:    r.Owner,
			Wins:     round2(md.w),
			Losses:   round2(md.l),
		}
		if total := md.w + md.l; total > 0 {
			mrec.Pct = round4(md.w / total)
		}
		medOut = append(medOut, mrec)
	}
	return apOut, medOut
}

// marginSummary covers matchups from week from..to inclusive. Nil when no
// matchups fall in the range.
func (e *Engine) marginSummary(from, to int) *models.MarginSummary {
	var games []models.MarginGame
	total := 0.0
	for wk := from; wk <= to; wk++ {
		for _, m := range e.byWeek[wk] {
			if m.Bye() {
				continue
			}
			g := models.MarginGame{
				Week:      m.Week,
				MatchupID: m.MatchupID,
				Margin:    round2(m.Margin()),
				Tie:       m.Tie(),
			}
			winner := m.Winner()
			if winner == 0 {
				// tie: keep side A as the nominal "winner" for display
				winner = m.RosterA
			}
			own, opp := m.PointsOf(winner)
			g.WinnerID = winner
			g.WinnerOwner = e.cfg.Owner(winner)
			g.WinnerPoints = own
			if loser := m.Loser(); loser != 0 {
				g.LoserID = loser
				g.LoserOwner = e.cfg.Owner(loser)
			} else {
				g.LoserID = m.RosterB
				g.LoserOwner = e.cfg.Owner(m.RosterB)
			}
			g.LoserPoints = opp
			games = append(games, g)
			total += g.Margin
		}
	}
	if len(games) == 0 {
		return nil
	}

	summary := &models.MarginSummary{
		Largest:       games[0],
		Smallest:      games[0],
		AverageMargin: round2(total / float64(len(games))),
		Games:         len(games),
	}
	for _, g := range games[1:] {
		if g.Margin > summary.Largest.Margin {
			summary.Largest = g
		}
		if g.Margin < summary.Smallest.Margin {
			summary.Smallest = g
		}
	}
	return summary
}

// divisionPower aggregates each division's report-week output and
// season-to-date record.
func (e *Engine) divisionPower(week int, standings []models.StandingsRow, weekPoints map[int]map[int]float64) ([]models.DivisionWeekPower, []models.DivisionSeasonPower) {
	if len(e.cfg.RosterDivisions) == 0 {
		return nil, nil
	}

	members := make(map[int][]int)
	for _, r := range e.cfg.Rosters {
		if div, ok := e.cfg.DivisionOf(r.ID); ok {
			members[div] = append(members[div], r.ID)
		}
	}
	divIDs := make([]int, 0, len(members))
	for id := range members {
		divIDs = append(divIDs, id)
	}
	sort.Ints(divIDs)

	weekWins := make(map[int]int)
	weekLosses := make(map[int]int)
	for _, m := range e.byWeek[week] {
		if m.Bye() {
			continue
		}
		if w := m.Winner(); w != 0 {
			weekWins[w]++
			weekLosses[m.Loser()]++
		}
	}

	rowByID := make(map[int]models.StandingsRow, len(standings))
	for _, row := range standings {
		rowByID[row.RosterID] = row
	}

	weekOut := make([]models.DivisionWeekPower, 0, len(divIDs))
	seasonOut := make([]models.DivisionSeasonPower, 0, len(divIDs))
	for _, div := range divIDs {
		ids := members[div]
		name := e.cfg.DivisionName(div)

		wp := models.DivisionWeekPower{DivisionID: div, DivisionName: name, TeamCount: len(ids)}
		for _, rid := range ids {
			wp.Points += weekPoints[week][rid]
			wp.Wins += weekWins[rid]
			wp.Losses += weekLosses[rid]
		}
		wp.Points = round2(wp.Points)
		if len(ids) > 0 {
			wp.PointsAvg = round2(wp.Points / float64(len(ids)))
		}
		weekOut = append(weekOut, wp)

		sp := models.DivisionSeasonPower{DivisionID: div, DivisionName: name, TeamCount: len(ids)}
		totalGames := 0
		for _, rid := range ids {
			row := rowByID[rid]
			sp.PointsFor += row.PointsFor
			sp.PointsAgainst += row.PointsAgainst
			sp.Wins += row.Wins
			sp.Losses += row.Losses
			sp.Ties += row.Ties
			totalGames += row.Games
		}
		sp.PointsFor = round2(sp.PointsFor)
		sp.PointsAgainst = round2(sp.PointsAgainst)
		if totalGames > 0 {
			sp.PFPerTeamGame = round2(sp.PointsFor / float64(totalGames))
			sp.PAPerTeamGame = round2(sp.PointsAgainst / float64(totalGames))
			sp.WinPct = round4((float64(sp.Wins) + 0.5*float64(sp.Ties)) / float64(totalGames))
		}
		seasonOut = append(seasonOut, sp)
	}
	return weekOut, seasonOut
}

// preview lists the next week's pairings, empty when the next week is
// unknown or already in the playoff window.
func (e *Engine) preview(week int) []models.PreviewMatchup {
	next := week + 1
	if e.cfg.PlayoffWeekStart > 0 && next >= e.cfg.PlayoffWeekStart {
		return nil
	}
	matchups := e.byWeek[next]
	if len(matchups) == 0 {
		return nil
	}
	out := make([]models.PreviewMatchup, 0, len(matchups))
	for _, m := range matchups {
		pm := models.PreviewMatchup{
			Week:      m.Week,
			MatchupID: m.MatchupID,
			RosterA:   m.RosterA,
			OwnerA:    e.cfg.Owner(m.RosterA),
		}
		if !m.Bye() {
			pm.RosterB = m.RosterB
			pm.OwnerB = e.cfg.Owner(m.RosterB)
		}
		out = append(out, pm)
	}
	return out
}

func (e *Engine) aggregates(week int, weekPoints map[int]map[int]float64) models.WeekAggregates {
	var agg models.WeekAggregates
	scores := make([]float64, 0, len(weekPoints[week]))
	for _, s := range weekPoints[week] {
		scores = append(scores, s)
	}
	sort.Float64s(scores)
	if n := len(scores); n > 0 {
		agg.Low = scores[0]
		agg.High = scores[n-1]
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		agg.Average = round2(sum / float64(n))
		mid := n / 2
		if n%2 == 1 {
			agg.Median = scores[mid]
		} else {
			agg.Median = round2(0.5 * (scores[mid-1] + scores[mid]))
		}
	}

	first := true
	for wk := e.cfg.StartWeek; wk <= week; wk++ {
		for _, s := range weekPoints[wk] {
			if first || s > agg.SeasonHigh {
				agg.SeasonHigh = s
			}
			if first || s < agg.SeasonLow {
				agg.SeasonLow = s
			}
			first = false
		}
	}
	return agg
}
