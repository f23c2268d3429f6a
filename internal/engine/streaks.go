package engine

import "github.com/rob-foulkrod/ff/internal/models"

// weekResult is one entry of a roster's chronological result sequence. Byes
// never appear in the sequence, so they neither break nor extend a streak.
type weekResult struct {
	Week   int
	Result string // "W", "L" or "T"
}

// StreaksThrough derives each roster's current streak and longest win/loss
// spans through week, ordered by roster id. A tie starts its own run of type
// T, breaking both win and loss continuity.
func (e *Engine) StreaksThrough(week int) ([]models.StreakRecord, error) {
	if err := e.checkWeek(week); err != nil {
		return nil, err
	}

	sequences := e.resultsThrough(week)
	records := make([]models.StreakRecord, 0, len(e.cfg.Rosters))
	for _, r := range e.cfg.Rosters {
		seq := sequences[r.ID]
		rec := models.StreakRecord{RosterID: r.ID, Owner: r.Owner}
		rec.Current = currentStreak(seq)
		rec.LongestWin = longestRun(seq, "W")
		rec.LongestLoss = longestRun(seq, "L")
		records = append(records, rec)
	}
	return records, nil
}

// resultsThrough builds per-roster chronological (week, result) sequences.
func (e *Engine) resultsThrough(week int) map[int][]weekResult {
	out := make(map[int][]weekResult)
	for _, m := range e.matchupsThrough(week) {
		switch m.Winner() {
		case m.RosterA:
			out[m.RosterA] = append(out[m.RosterA], weekResult{m.Week, "W"})
			out[m.RosterB] = append(out[m.RosterB], weekResult{m.Week, "L"})
		case m.RosterB:
			out[m.RosterB] = append(out[m.RosterB], weekResult{m.Week, "W"})
			out[m.RosterA] = append(out[m.RosterA], weekResult{m.Week, "L"})
		default:
			out[m.RosterA] = append(out[m.RosterA], weekResult{m.Week, "T"})
			out[m.RosterB] = append(out[m.RosterB], weekResult{m.Week, "T"})
		}
	}
	return out
}

// currentStreak is the run ending at the roster's last played week.
func currentStreak(seq []weekResult) models.StreakSpan {
	if len(seq) == 0 {
		return models.StreakSpan{}
	}
	last := seq[len(seq)-1]
	span := models.StreakSpan{
		Type:      last.Result,
		Length:    1,
		StartWeek: last.Week,
		EndWeek:   last.Week,
	}
	for i := len(seq) - 2; i >= 0; i-- {
		if seq[i].Result != span.Type {
			break
		}
		span.Length++
		span.StartWeek = seq[i].Week
	}
	return span
}

// longestRun finds the maximum run of the given result type. On equal
// lengths the earliest-occurring span wins, so only strictly longer runs
// replace the best.
func longestRun(seq []weekResult, typ string) models.StreakSpan {
	var best, cur models.StreakSpan
	for _, wr := range seq {
		if wr.Result != typ {
			if cur.Length > best.Length {
				best = cur
			}
			cur = models.StreakSpan{}
			continue
		}
		if cur.Length == 0 {
			cur = models.StreakSpan{Type: typ, StartWeek: wr.Week}
		}
		cur.Length++
		cur.EndWeek = wr.Week
	}
	if cur.Length > best.Length {
		best = cur
	}
	return best
}
