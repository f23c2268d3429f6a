package engine

import (
	"strconv"

	"github.com/rob-foulkrod/ff/internal/models"
)

// WeeklyFlagsFor annotates every matchup of the report week with its derived
// flags. All state other than the week's own scores is taken from the league
// as it stood immediately before the week (standings, streaks and the season
// series through week-1). Byes yield an entry with an empty flag set.
func (e *Engine) WeeklyFlagsFor(week int) ([]models.WeeklyFlags, error) {
	if err := e.checkWeek(week); err != nil {
		return nil, err
	}

	prevRank := make(map[int]int)
	prevAvgPF := make(map[int]float64)
	prevStreak := make(map[int]models.StreakSpan)
	if week > e.cfg.StartWeek {
		prev, err := e.StandingsThrough(week - 1)
		if err != nil {
			return nil, err
		}
		for _, row := range prev {
			prevRank[row.RosterID] = row.Rank
			if row.Games > 0 {
				prevAvgPF[row.RosterID] = row.PointsFor / float64(row.Games)
			}
		}
		for rid, seq := range e.resultsThrough(week - 1) {
			prevStreak[rid] = currentStreak(seq)
		}
	}

	priorWins := e.pairWinsThrough(week - 1)
	curStreaks := make(map[int]models.StreakSpan)
	for rid, seq := range e.resultsThrough(week) {
		curStreaks[rid] = currentStreak(seq)
	}

	// Week score extremes over non-bye sides.
	var scores []float64
	for _, m := range e.byWeek[week] {
		if m.Bye() {
			continue
		}
		scores = append(scores, m.PointsA, m.PointsB)
	}
	var weekHigh, weekLow float64
	for i, s := range scores {
		if i == 0 || s > weekHigh {
			weekHigh = s
		}
		if i == 0 || s < weekLow {
			weekLow = s
		}
	}

	out := make([]models.WeeklyFlags, 0, len(e.byWeek[week]))
	highestLoser := -1.0
	highestLoserIdx := -1
	lowestWinner := -1.0
	lowestWinnerIdx := -1

	for _, m := range e.byWeek[week] {
		wf := models.WeeklyFlags{
			Week:      m.Week,
			MatchupID: m.MatchupID,
			RosterA:   m.RosterA,
			PointsA:   m.PointsA,
			RosterB:   m.RosterB,
			PointsB:   m.PointsB,
			WinnerID:  m.Winner(),
			Tie:       m.Tie(),
			Flags:     map[string]string{},
		}
		if m.Bye() {
			out = append(out, wf)
			continue
		}

		e.deriveFlags(&wf, m, deriveState{
			prevRank:   prevRank,
			prevAvgPF:  prevAvgPF,
			prevStreak: prevStreak,
			curStreaks: curStreaks,
			priorWins:  priorWins,
			weekHigh:   weekHigh,
			weekLow:    weekLow,
		})

		if !wf.Tie {
			winnerPts, loserPts := m.PointsOf(m.Winner())
			if loserPts > highestLoser {
				highestLoser = loserPts
				highestLoserIdx = len(out)
			}
			if lowestWinnerIdx == -1 || winnerPts < lowestWinner {
				lowestWinner = winnerPts
				lowestWinnerIdx = len(out)
			}
		}
		out = append(out, wf)
	}

	if highestLoserIdx >= 0 {
		out[highestLoserIdx].Flags["highest_loser_score_week"] = "yes"
	}
	if lowestWinnerIdx >= 0 {
		out[lowestWinnerIdx].Flags["lowest_winner_score_week"] = "yes"
	}
	return out, nil
}

type deriveState struct {
	prevRank   map[int]int
	prevAvgPF  map[int]float64
	prevStreak map[int]models.StreakSpan
	curStreaks map[int]models.StreakSpan
	priorWins  map[[2]int]int
	weekHigh   float64
	weekLow    float64
}

func (e *Engine) deriveFlags(wf *models.WeeklyFlags, m models.Matchup, st deriveState) {
	t := e.thresholds
	margin := m.Margin()
	combined := m.PointsA + m.PointsB
	winner := m.Winner()
	loser := m.Loser()

	if !wf.Tie {
		wf.Flags["margin"] = strconv.FormatFloat(margin, 'f', 2, 64)
		if margin >= t.BlowoutMargin {
			wf.Flags["blowout"] = "yes"
		}
		if margin <= t.NailBiterMargin {
			wf.Flags["nail_biter"] = "yes"
		} else if margin <= t.CloseGameMargin {
			wf.Flags["close_game"] = "yes"
		}
	}

	if m.PointsA >= t.ShootoutScore && m.PointsB >= t.ShootoutScore {
		wf.Flags["shootout"] = "yes"
	}
	if combined <= t.SlugfestCombined {
		wf.Flags["slugfest"] = "yes"
	}

	if divA, okA := e.cfg.DivisionOf(m.RosterA); okA {
		if divB, okB := e.cfg.DivisionOf(m.RosterB); okB && divA == divB {
			wf.Flags["division_game"] = "yes"
		}
	}

	if m.PointsA == st.weekHigh || m.PointsB == st.weekHigh {
		wf.Flags["highest_score_week"] = "yes"
	}
	if m.PointsA == st.weekLow || m.PointsB == st.weekLow {
		wf.Flags["lowest_score_week"] = "yes"
	}

	if wf.Tie || winner == 0 {
		return
	}
	_, loserPts := m.PointsOf(winner)

	// bad_beat: a close loss where the loser still outscored the winner's
	// season average coming in.
	if margin <= t.CloseGameMargin {
		if avg, ok := st.prevAvgPF[winner]; ok && loserPts > avg {
			wf.Flags["bad_beat"] = "yes"
		}
	}

	// upset: the loser was ranked strictly better before this week.
	if wr, ok := st.prevRank[winner]; ok {
		if lr, ok := st.prevRank[loser]; ok && lr < wr {
			wf.Flags["upset"] = "yes"
		}
	}

	if ps, ok := st.prevStreak[loser]; ok && ps.Type == "W" && ps.Length >= t.StreakBrokenMin {
		wf.Flags["broke_opponent_streak"] = "yes"
		wf.Flags["opponent_prev_streak_len"] = strconv.Itoa(ps.Length)
	}

	if cs, ok := st.curStreaks[winner]; ok && cs.Type == "W" && cs.Length >= t.ExtendedStreak {
		wf.Flags["extended_win_streak"] = strconv.Itoa(cs.Length)
	}

	winsBefore := st.priorWins[[2]int{winner, loser}]
	oppWins := st.priorWins[[2]int{loser, winner}]
	switch {
	case winsBefore+1 >= 2 && oppWins == 0:
		wf.Flags["season_series_sweep"] = "yes"
	case winsBefore+1 == oppWins:
		wf.Flags["evened_series"] = "yes"
	}
}

// pairWinsThrough counts head-to-head wins of each ordered roster pair
// through week. Weeks before the start week yield an empty map.
func (e *Engine) pairWinsThrough(week int) map[[2]int]int {
	wins := make(map[[2]int]int)
	if week < e.cfg.StartWeek {
		return wins
	}
	for _, m := range e.matchupsThrough(week) {
		if w := m.Winner(); w != 0 {
			wins[[2]int{w, m.Loser()}]++
		}
	}
	return wins
}
