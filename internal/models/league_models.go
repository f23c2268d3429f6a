package models

import "sort"

// LeagueConfig holds the static season parameters every computation consumes.
// It is built once from the Sleeper league payload (or a fixture) and never
// mutated afterwards.
type LeagueConfig struct {
	LeagueID         string
	Season           string
	Name             string
	Rosters          []Roster
	Divisions        map[int]string // division id -> name; empty when the league has none
	RosterDivisions  map[int]int    // roster id -> division id
	StartWeek        int
	PlayoffWeekStart int
	PlayoffTeams     int
}

type Roster struct {
	ID       int
	Owner    string
	TeamName string
}

func (c LeagueConfig) Roster(id int) (Roster, bool) {
	for _, r := range c.Rosters {
		if r.ID == id {
			return r, true
		}
	}
	return Roster{}, false
}

func (c LeagueConfig) Owner(id int) string {
	if r, ok := c.Roster(id); ok {
		return r.Owner
	}
	return ""
}

// DivisionOf returns the division a roster is assigned to, if any.
func (c LeagueConfig) DivisionOf(rosterID int) (int, bool) {
	div, ok := c.RosterDivisions[rosterID]
	return div, ok
}

func (c LeagueConfig) DivisionName(divisionID int) string {
	if name, ok := c.Divisions[divisionID]; ok {
		return name
	}
	return ""
}

// DivisionIDs returns the configured division ids in ascending order.
func (c LeagueConfig) DivisionIDs() []int {
	ids := make([]int, 0, len(c.Divisions))
	for id := range c.Divisions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Matchup is one week's pairing. A bye is represented by RosterB == 0; roster
// ids from the league are always positive.
type Matchup struct {
	Week      int
	MatchupID int
	RosterA   int
	PointsA   float64
	RosterB   int
	PointsB   float64
}

func (m Matchup) Bye() bool {
	return m.RosterB == 0
}

func (m Matchup) Tie() bool {
	return !m.Bye() && m.PointsA == m.PointsB
}

// Winner returns the winning roster id, or 0 for a tie or a bye.
func (m Matchup) Winner() int {
	if m.Bye() {
		return 0
	}
	if m.PointsA > m.PointsB {
		return m.RosterA
	}
	if m.PointsB > m.PointsA {
		return m.RosterB
	}
	return 0
}

// Loser returns the losing roster id, or 0 for a tie or a bye.
func (m Matchup) Loser() int {
	switch m.Winner() {
	case 0:
		return 0
	case m.RosterA:
		return m.RosterB
	default:
		return m.RosterA
	}
}

func (m Matchup) Margin() float64 {
	diff := m.PointsA - m.PointsB
	if diff < 0 {
		return -diff
	}
	return diff
}

// Involves reports whether the given roster plays in this matchup.
func (m Matchup) Involves(rosterID int) bool {
	return m.RosterA == rosterID || m.RosterB == rosterID
}

// PointsOf returns this roster's and its opponent's points.
func (m Matchup) PointsOf(rosterID int) (own, opp float64) {
	if m.RosterA == rosterID {
		return m.PointsA, m.PointsB
	}
	return m.PointsB, m.PointsA
}

// StandingsRow is one roster's cumulative record through a given week.
// PrevRank is 0 when no prior week exists; RankChange is PrevRank - Rank
// (positive means the roster climbed).
type StandingsRow struct {
	Rank          int
	RosterID      int
	Owner         string
	Wins          int
	Losses        int
	Ties          int
	PointsFor     float64
	PointsAgainst float64
	Games         int
	WinPct        float64
	PrevRank      int
	RankChange    int
}

// DivisionStandings is the overall standings filtered into one division and
// re-ranked within it.
type DivisionStandings struct {
	DivisionID   int
	DivisionName string
	Rows         []StandingsRow
}

type SeedType string

const (
	SeedDivisionWinner SeedType = "division_winner"
	SeedWildcard       SeedType = "wildcard"
)

type PlayoffSeed struct {
	Seed          int
	RosterID      int
	Owner         string
	DivisionID    int // 0 when the roster has no division
	DivisionName  string
	Type          SeedType
	Wins          int
	Losses        int
	Ties          int
	WinPct        float64
	PointsFor     float64
	PointsAgainst float64
}

// PlayoffPicture is the seed list plus the rosters still level on record with
// the last seed.
type PlayoffPicture struct {
	Seeds     []PlayoffSeed
	InTheHunt []StandingsRow
}

// HeadToHeadCell is the cumulative record of the row roster against the
// column roster. Played distinguishes a pair that has met from one that has
// not; Self marks the diagonal.
type HeadToHeadCell struct {
	Wins   int
	Losses int
	Ties   int
	Played bool
	Self   bool
}

type HeadToHeadRow struct {
	RosterID int
	Owner    string
	Cells    []HeadToHeadCell
}

// HeadToHeadMatrix is ordered by current overall rank, not roster id.
type HeadToHeadMatrix struct {
	Order []int
	Rows  []HeadToHeadRow
}

// StreakSpan is one contiguous run of identical results. The zero value
// (Length 0) means no games played.
type StreakSpan struct {
	Type      string // "W", "L" or "T"
	Length    int
	StartWeek int
	EndWeek   int
}

type StreakRecord struct {
	RosterID    int
	Owner       string
	Current     StreakSpan
	LongestWin  StreakSpan
	LongestLoss StreakSpan
}

// WeeklyFlags annotates one report-week matchup with its derived narrative
// flags. Flags maps flag name to value ("yes" for plain booleans); renderers
// sort by name for deterministic output.
type WeeklyFlags struct {
	Week      int
	MatchupID int
	RosterA   int
	PointsA   float64
	RosterB   int
	PointsB   float64
	WinnerID  int // 0 on tie or bye
	Tie       bool
	Flags     map[string]string
}

// FlagNames returns the flag names in alphabetical order.
func (w WeeklyFlags) FlagNames() []string {
	names := make([]string, 0, len(w.Flags))
	for name := range w.Flags {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FlagThresholds are the policy knobs behind the narrative flags. They are
// explicit configuration, not constants, so a league can tune them without a
// rebuild.
type FlagThresholds struct {
	BlowoutMargin    float64 `yaml:"blowout_margin"`
	NailBiterMargin  float64 `yaml:"nail_biter_margin"`
	CloseGameMargin  float64 `yaml:"close_game_margin"`
	ShootoutScore    float64 `yaml:"shootout_score"`
	SlugfestCombined float64 `yaml:"slugfest_combined"`
	StreakBrokenMin  int     `yaml:"streak_broken_min"`
	ExtendedStreak   int     `yaml:"extended_streak"`
}

// DefaultThresholds returns the documented defaults: a 40-point blowout, a
// 3-point nail-biter inside a 10-point close game, 150 per side for a
// shootout, 180 combined for a slugfest, a 2-game streak worth breaking and a
// 4-game streak worth calling out.
func DefaultThresholds() FlagThresholds {
	return FlagThresholds{
		BlowoutMargin:    40,
		NailBiterMargin:  3,
		CloseGameMargin:  10,
		ShootoutScore:    150,
		SlugfestCombined: 180,
		StreakBrokenMin:  2,
		ExtendedStreak:   4,
	}
}
