package engine

import (
	"errors"
	"testing"

	"github.com/rob-foulkrod/ff/internal/models"
)

func twoDivisionLeague(playoffTeams int) models.LeagueConfig {
	return leagueOf(8, playoffTeams,
		map[int]string{1: "East", 2: "West"},
		map[int]int{1: 1, 2: 1, 3: 1, 4: 1, 5: 2, 6: 2, 7: 2, 8: 2},
	)
}

// After two weeks: 5 and 7 are 2-0, the East is a four-way 1-1 logjam, 6 and
// 8 are winless. Overall order: 5, 7, 1, 3, 4, 2, 8, 6.
func twoDivisionHistory() []models.Matchup {
	return []models.Matchup{
		mu(1, 1, 1, 130, 2, 70),
		mu(1, 2, 3, 120, 4, 80),
		mu(1, 3, 5, 110, 6, 90),
		mu(1, 4, 7, 100, 8, 95),
		mu(2, 1, 2, 100, 1, 90),
		mu(2, 2, 4, 100, 3, 90),
		mu(2, 3, 5, 120, 6, 80),
		mu(2, 4, 7, 90, 8, 85),
	}
}

func TestDivisionStandings(t *testing.T) {
	e := newEngine(t, twoDivisionLeague(4), twoDivisionHistory())

	divs, err := e.DivisionStandingsThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(divs) != 2 {
		t.Fatalf("want 2 divisions, got %d", len(divs))
	}
	if divs[0].DivisionID != 1 || divs[0].DivisionName != "East" {
		t.Errorf("want East first, got %+v", divs[0])
	}
	if len(divs[0].Rows) != 4 || len(divs[1].Rows) != 4 {
		t.Fatalf("want 4 rows per division, got %d and %d", len(divs[0].Rows), len(divs[1].Rows))
	}

	// East is all 1-1; points-for splits them: 1 (220), 3 (210), 4 (180), 2 (170).
	wantEast := []int{1, 3, 4, 2}
	for i, rid := range wantEast {
		if divs[0].Rows[i].RosterID != rid {
			t.Errorf("East rank %d: want roster %d, got %d", i+1, rid, divs[0].Rows[i].RosterID)
		}
		if divs[0].Rows[i].Rank != i+1 {
			t.Errorf("East roster %d: want in-division rank %d, got %d", rid, i+1, divs[0].Rows[i].Rank)
		}
	}
	if divs[1].Rows[0].RosterID != 5 {
		t.Errorf("West winner: want roster 5, got %d", divs[1].Rows[0].RosterID)
	}
}

func TestPlayoffSeedingWinnersThenWildcards(t *testing.T) {
	e := newEngine(t, twoDivisionLeague(4), twoDivisionHistory())

	picture, err := e.PlayoffPictureThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picture.Seeds) != 4 {
		t.Fatalf("want 4 seeds, got %d", len(picture.Seeds))
	}

	winners, wildcards := 0, 0
	for _, s := range picture.Seeds {
		switch s.Type {
		case models.SeedDivisionWinner:
			winners++
		case models.SeedWildcard:
			wildcards++
		}
	}
	if winners != 2 || wildcards != 2 {
		t.Errorf("want 2 winners + 2 wildcards, got %d + %d", winners, wildcards)
	}

	// Division winners come first in division-id order, then wildcards by
	// overall rank.
	wantOrder := []struct {
		roster int
		typ    models.SeedType
	}{
		{1, models.SeedDivisionWinner},
		{5, models.SeedDivisionWinner},
		{7, models.SeedWildcard},
		{3, models.SeedWildcard},
	}
	for i, w := range wantOrder {
		s := picture.Seeds[i]
		if s.Seed != i+1 || s.RosterID != w.roster || s.Type != w.typ {
			t.Errorf("seed %d: want roster %d (%s), got roster %d (%s)",
				i+1, w.roster, w.typ, s.RosterID, s.Type)
		}
	}
	if picture.Seeds[0].DivisionName != "East" || picture.Seeds[1].DivisionName != "West" {
		t.Errorf("winner divisions: got %q and %q",
			picture.Seeds[0].DivisionName, picture.Seeds[1].DivisionName)
	}
}

func TestPlayoffInTheHunt(t *testing.T) {
	e := newEngine(t, twoDivisionLeague(4), twoDivisionHistory())

	picture, err := e.PlayoffPictureThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Seed 4 is roster 3 at 1-1-0; rosters 4 and 2 match that record.
	if len(picture.InTheHunt) != 2 {
		t.Fatalf("want 2 in the hunt, got %d", len(picture.InTheHunt))
	}
	if picture.InTheHunt[0].RosterID != 4 || picture.InTheHunt[1].RosterID != 2 {
		t.Errorf("want rosters 4 then 2 in the hunt, got %d then %d",
			picture.InTheHunt[0].RosterID, picture.InTheHunt[1].RosterID)
	}
}

func TestPlayoffFewerSlotsThanDivisions(t *testing.T) {
	// One slot for two division winners: the better overall winner takes it.
	e := newEngine(t, twoDivisionLeague(1), twoDivisionHistory())

	picture, err := e.PlayoffPictureThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picture.Seeds) != 1 {
		t.Fatalf("want 1 seed, got %d", len(picture.Seeds))
	}
	s := picture.Seeds[0]
	if s.RosterID != 5 || s.Type != models.SeedDivisionWinner {
		t.Errorf("want roster 5 as division winner, got roster %d (%s)", s.RosterID, s.Type)
	}
}

func TestPlayoffNoDivisionsAllWildcards(t *testing.T) {
	cfg := leagueOf(4, 2, nil, nil)
	e := newEngine(t, cfg, fourTeamHistory())

	picture, err := e.PlayoffPictureThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picture.Seeds) != 2 {
		t.Fatalf("want 2 seeds, got %d", len(picture.Seeds))
	}
	for _, s := range picture.Seeds {
		if s.Type != models.SeedWildcard {
			t.Errorf("seed %d: want wildcard, got %s", s.Seed, s.Type)
		}
	}
	if picture.Seeds[0].RosterID != 1 || picture.Seeds[1].RosterID != 2 {
		t.Errorf("want rosters 1, 2 seeded, got %d, %d",
			picture.Seeds[0].RosterID, picture.Seeds[1].RosterID)
	}
}

func TestPlayoffZeroTeamsEmptyPicture(t *testing.T) {
	e := newEngine(t, twoDivisionLeague(0), twoDivisionHistory())

	picture, err := e.PlayoffPictureThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(picture.Seeds) != 0 || len(picture.InTheHunt) != 0 {
		t.Errorf("want empty picture, got %+v", picture)
	}
}

func TestDivisionAssignmentValidated(t *testing.T) {
	cfg := leagueOf(4, 2, map[int]string{1: "East"}, map[int]int{1: 1, 2: 9})
	_, err := New(cfg, models.DefaultThresholds(), nil)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("want ConfigurationError for unknown division, got %v", err)
	}
}
