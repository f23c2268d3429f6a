package engine

import (
	"reflect"
	"testing"

	"github.com/rob-foulkrod/ff/internal/models"
)

// fourTeamHistory: week 1 has a win and a tie, week 2 decides everything.
func fourTeamHistory() []models.Matchup {
	return []models.Matchup{
		mu(1, 1, 1, 110, 2, 100),
		mu(1, 2, 3, 95, 4, 95),
		mu(2, 1, 1, 120, 3, 80),
		mu(2, 2, 2, 101, 4, 99),
	}
}

func TestStandingsAccumulation(t *testing.T) {
	e := newEngine(t, leagueOf(4, 0, nil, nil), fourTeamHistory())

	rows, err := e.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("want 4 rows, got %d", len(rows))
	}

	want := []struct {
		rank, roster, w, l, ties int
		pf                       float64
		pct                      float64
	}{
		{1, 1, 2, 0, 0, 230, 1.0},
		{2, 2, 1, 1, 0, 201, 0.5},
		{3, 4, 0, 1, 1, 194, 0.25},
		{4, 3, 0, 1, 1, 175, 0.25},
	}
	for i, w := range want {
		r := rows[i]
		if r.Rank != w.rank || r.RosterID != w.roster {
			t.Errorf("row %d: want rank %d roster %d, got rank %d roster %d",
				i, w.rank, w.roster, r.Rank, r.RosterID)
		}
		if r.Wins != w.w || r.Losses != w.l || r.Ties != w.ties {
			t.Errorf("roster %d: want %d-%d-%d, got %d-%d-%d",
				w.roster, w.w, w.l, w.ties, r.Wins, r.Losses, r.Ties)
		}
		if r.PointsFor != w.pf {
			t.Errorf("roster %d: want PF %.2f, got %.2f", w.roster, w.pf, r.PointsFor)
		}
		if r.WinPct != w.pct {
			t.Errorf("roster %d: want pct %.4f, got %.4f", w.roster, w.pct, r.WinPct)
		}
	}
}

func TestStandingsRankChange(t *testing.T) {
	e := newEngine(t, leagueOf(4, 0, nil, nil), fourTeamHistory())

	rows, err := e.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Week 1 order: 1 (1-0), 3, 4 (tied at .5, PF equal, id asc), 2 (0-1).
	change := map[int]int{}
	for _, r := range rows {
		change[r.RosterID] = r.RankChange
	}
	if change[2] != 2 {
		t.Errorf("roster 2: want rank change +2, got %d", change[2])
	}
	if change[3] != -2 {
		t.Errorf("roster 3: want rank change -2, got %d", change[3])
	}
	if change[1] != 0 || change[4] != 0 {
		t.Errorf("rosters 1/4: want no change, got %d and %d", change[1], change[4])
	}

	// First week has no prior standings to diff against.
	first, err := e.StandingsThrough(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, r := range first {
		if r.PrevRank != 0 || r.RankChange != 0 {
			t.Errorf("week 1 roster %d: want zero prev rank, got prev %d change %d",
				r.RosterID, r.PrevRank, r.RankChange)
		}
	}
}

func TestStandingsPointsForTieBreak(t *testing.T) {
	// Spec-style scenario: two 2-0 teams split by points-for.
	history := []models.Matchup{
		mu(1, 1, 1, 210, 3, 100),
		mu(1, 2, 2, 205, 4, 101),
		mu(2, 1, 1, 210, 4, 90),
		mu(2, 2, 2, 205, 3, 80),
	}
	e := newEngine(t, leagueOf(4, 0, nil, nil), history)

	rows, err := e.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].RosterID != 1 || rows[0].PointsFor != 420 {
		t.Errorf("want roster 1 (PF 420) first, got roster %d (PF %.2f)",
			rows[0].RosterID, rows[0].PointsFor)
	}
	if rows[1].RosterID != 2 || rows[1].PointsFor != 410 {
		t.Errorf("want roster 2 (PF 410) second, got roster %d (PF %.2f)",
			rows[1].RosterID, rows[1].PointsFor)
	}
}

func TestStandingsDeterministicUnderShuffledInput(t *testing.T) {
	cfg := leagueOf(4, 0, nil, nil)
	base := fourTeamHistory()
	shuffled := []models.Matchup{base[3], base[1], base[0], base[2]}

	a := newEngine(t, cfg, base)
	b := newEngine(t, cfg, shuffled)

	rowsA, err := a.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rowsB, err := b.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rowsA, rowsB) {
		t.Errorf("standings differ under shuffled input:\n%+v\nvs\n%+v", rowsA, rowsB)
	}

	again, err := a.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(rowsA, again) {
		t.Errorf("repeated query not identical")
	}
}

func TestStandingsConservationAndRankTotality(t *testing.T) {
	e := newEngine(t, leagueOf(4, 0, nil, nil), fourTeamHistory())

	for wk := 1; wk <= 2; wk++ {
		rows, err := e.StandingsThrough(wk)
		if err != nil {
			t.Fatalf("week %d: unexpected error: %v", wk, err)
		}
		wins, losses, ties := 0, 0, 0
		seenRank := map[int]bool{}
		for _, r := range rows {
			wins += r.Wins
			losses += r.Losses
			ties += r.Ties
			if seenRank[r.Rank] {
				t.Errorf("week %d: rank %d assigned twice", wk, r.Rank)
			}
			seenRank[r.Rank] = true
		}
		if wins != losses {
			t.Errorf("week %d: wins %d != losses %d", wk, wins, losses)
		}
		if ties%2 != 0 {
			t.Errorf("week %d: ties %d not even", wk, ties)
		}
	}
}

func TestStandingsByeContributesNothing(t *testing.T) {
	cfg := leagueOf(3, 0, nil, nil)
	history := []models.Matchup{
		mu(1, 1, 1, 100, 2, 90),
		bye(1, 2, 3, 120),
	}
	e := newEngine(t, cfg, history)

	rows, err := e.StandingsThrough(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var r3 models.StandingsRow
	for _, r := range rows {
		if r.RosterID == 3 {
			r3 = r
		}
	}
	if r3.Games != 0 || r3.PointsFor != 0 || r3.PointsAgainst != 0 {
		t.Errorf("bye roster: want empty totals, got %+v", r3)
	}
}

func TestStandingsTieCountsAsHalfWin(t *testing.T) {
	history := []models.Matchup{
		mu(1, 1, 1, 100, 2, 100),
		mu(2, 1, 1, 110, 2, 90),
	}
	e := newEngine(t, leagueOf(2, 0, nil, nil), history)

	rows, err := e.StandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0].RosterID != 1 || rows[0].WinPct != 0.75 {
		t.Errorf("want roster 1 at .7500, got roster %d at %.4f", rows[0].RosterID, rows[0].WinPct)
	}
	if rows[1].WinPct != 0.25 {
		t.Errorf("want roster 2 at .2500, got %.4f", rows[1].WinPct)
	}
}
