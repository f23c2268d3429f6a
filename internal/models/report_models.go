package models

// AllPlayRecord is a roster's record had it played every other roster each
// week, plus the luck differential between actual and expected wins.
type AllPlayRecord struct {
	RosterID     int
	Owner        string
	Wins         float64
	Losses       float64
	Pct          float64
	ExpectedWins float64
	ActualWins   float64
	LuckDiff     float64
}

// MedianRecord is a roster's record against the weekly league median score.
type MedianRecord struct {
	RosterID int
	Owner    string
	Wins     float64
	Losses   float64
	Pct      float64
}

// MarginGame is one decided (or tied) matchup with its margin, used for the
// largest/smallest extremes.
type MarginGame struct {
	Week         int
	MatchupID    int
	Margin       float64
	Tie          bool
	WinnerID     int
	WinnerOwner  string
	WinnerPoints float64
	LoserID      int
	LoserOwner   string
	LoserPoints  float64
}

// MarginSummary covers a scope (one week or season-to-date): the extreme
// games and the average margin across Games matchups.
type MarginSummary struct {
	Largest       MarginGame
	Smallest      MarginGame
	AverageMargin float64
	Games         int
}

// DivisionWeekPower aggregates one division's report-week output.
type DivisionWeekPower struct {
	DivisionID   int
	DivisionName string
	TeamCount    int
	Points       float64
	PointsAvg    float64
	Wins         int
	Losses       int
}

// DivisionSeasonPower aggregates one division's season-to-date record.
type DivisionSeasonPower struct {
	DivisionID    int
	DivisionName  string
	TeamCount     int
	PointsFor     float64
	PointsAgainst float64
	PFPerTeamGame float64
	PAPerTeamGame float64
	Wins          int
	Losses        int
	Ties          int
	WinPct        float64
}

// PreviewMatchup is a next-week pairing; points are not yet known.
type PreviewMatchup struct {
	Week      int
	MatchupID int
	RosterA   int
	OwnerA    string
	RosterB   int
	OwnerB    string
}

// WeekAggregates are the report week's score statistics plus the season
// extremes through that week.
type WeekAggregates struct {
	High       float64
	Low        float64
	Average    float64
	Median     float64
	SeasonHigh float64
	SeasonLow  float64
}

// WeeklyReport is the full structured result for one report week. It is a
// plain value object with no references back into the engine, safe to hand to
// any renderer.
type WeeklyReport struct {
	LeagueID         string
	Season           string
	Week             int
	StartWeek        int
	PlayoffWeekStart int
	PlayoffTeams     int

	Standings  []StandingsRow
	Divisions  []DivisionStandings
	Playoffs   PlayoffPicture
	HeadToHead HeadToHeadMatrix
	Streaks    []StreakRecord
	Matchups   []WeeklyFlags

	AllPlay             []AllPlayRecord
	Median              []MedianRecord
	WeekMargins         *MarginSummary
	SeasonMargins       *MarginSummary
	DivisionPowerWeek   []DivisionWeekPower
	DivisionPowerSeason []DivisionSeasonPower
	Preview             []PreviewMatchup
	Aggregates          WeekAggregates
}
