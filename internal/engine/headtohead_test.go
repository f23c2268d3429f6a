package engine

import (
	"testing"

	"github.com/rob-foulkrod/ff/internal/models"
)

func TestHeadToHeadOrderFollowsRank(t *testing.T) {
	e := newEngine(t, leagueOf(4, 0, nil, nil), fourTeamHistory())

	matrix, err := e.HeadToHeadThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []int{1, 2, 4, 3}
	if len(matrix.Order) != 4 {
		t.Fatalf("want 4 rosters, got %d", len(matrix.Order))
	}
	for i, rid := range wantOrder {
		if matrix.Order[i] != rid {
			t.Errorf("order[%d]: want roster %d, got %d", i, rid, matrix.Order[i])
		}
		if matrix.Rows[i].RosterID != rid {
			t.Errorf("row %d: want roster %d, got %d", i, rid, matrix.Rows[i].RosterID)
		}
	}
}

func TestHeadToHeadSymmetry(t *testing.T) {
	e := newEngine(t, leagueOf(4, 0, nil, nil), fourTeamHistory())

	matrix, err := e.HeadToHeadThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	n := len(matrix.Rows)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a := matrix.Rows[i].Cells[j]
			b := matrix.Rows[j].Cells[i]
			if a.Wins != b.Losses || a.Losses != b.Wins || a.Ties != b.Ties {
				t.Errorf("cells (%d,%d)/(%d,%d) not mirrored: %+v vs %+v", i, j, j, i, a, b)
			}
			if a.Played != b.Played {
				t.Errorf("cells (%d,%d): played flag not mirrored", i, j)
			}
		}
	}
}

func TestHeadToHeadCellContents(t *testing.T) {
	e := newEngine(t, leagueOf(4, 0, nil, nil), fourTeamHistory())

	matrix, err := e.HeadToHeadThrough(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col := make(map[int]int, len(matrix.Order))
	for i, rid := range matrix.Order {
		col[rid] = i
	}
	cell := func(a, b int) models.HeadToHeadCell {
		return matrix.Rows[col[a]].Cells[col[b]]
	}

	if c := cell(1, 2); c.Wins != 1 || c.Losses != 0 || !c.Played {
		t.Errorf("cell(1,2): want 1-0 played, got %+v", c)
	}
	if c := cell(3, 4); c.Ties != 1 || !c.Played {
		t.Errorf("cell(3,4): want one tie, got %+v", c)
	}
	// Rosters 1 and 4 never met: distinct from a played 0-0-0.
	if c := cell(1, 4); c.Played || c.Wins != 0 || c.Self {
		t.Errorf("cell(1,4): want unplayed sentinel, got %+v", c)
	}
	// Diagonal is a self sentinel.
	if c := cell(2, 2); !c.Self || c.Played {
		t.Errorf("cell(2,2): want self sentinel, got %+v", c)
	}
}

func TestHeadToHeadExcludesByes(t *testing.T) {
	cfg := leagueOf(3, 0, nil, nil)
	history := []models.Matchup{
		mu(1, 1, 1, 100, 2, 90),
		bye(1, 2, 3, 150),
	}
	e := newEngine(t, cfg, history)

	matrix, err := e.HeadToHeadThrough(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	col := make(map[int]int)
	for i, rid := range matrix.Order {
		col[rid] = i
	}
	for _, opp := range []int{1, 2} {
		if c := matrix.Rows[col[3]].Cells[col[opp]]; c.Played {
			t.Errorf("bye roster vs %d: want unplayed, got %+v", opp, c)
		}
	}
}
