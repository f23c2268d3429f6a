// Package engine computes deterministic season statistics for a round-robin
// fantasy league from a chronological log of weekly matchup results. Every
// query recomputes from the full immutable history rather than mutating
// shared accumulators, so "through week N" calls are order-independent and
// safe to run in parallel.
package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/rob-foulkrod/ff/internal/models"
)

type Engine struct {
	cfg        models.LeagueConfig
	thresholds models.FlagThresholds
	history    []models.Matchup // sorted by (week, matchup id)
	byWeek     map[int][]models.Matchup
	lastWeek   int
}

// New validates the configuration and the full match history, then returns an
// engine over an immutable copy of both. Any validation failure aborts
// construction; the engine never computes over partially valid input.
func New(cfg models.LeagueConfig, thresholds models.FlagThresholds, history []models.Matchup) (*Engine, error) {
	if cfg.StartWeek < 1 {
		cfg.StartWeek = 1
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	sorted := append([]models.Matchup(nil), history...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Week != sorted[j].Week {
			return sorted[i].Week < sorted[j].Week
		}
		return sorted[i].MatchupID < sorted[j].MatchupID
	})
	if err := validateHistory(cfg, sorted); err != nil {
		return nil, err
	}

	byWeek := make(map[int][]models.Matchup)
	lastWeek := 0
	for _, m := range sorted {
		byWeek[m.Week] = append(byWeek[m.Week], m)
		if m.Week > lastWeek {
			lastWeek = m.Week
		}
	}

	return &Engine{
		cfg:        cfg,
		thresholds: thresholds,
		history:    sorted,
		byWeek:     byWeek,
		lastWeek:   lastWeek,
	}, nil
}

func (e *Engine) Config() models.LeagueConfig {
	return e.cfg
}

// LastWeek returns the latest week present in the history, 0 when empty.
func (e *Engine) LastWeek() int {
	return e.lastWeek
}

func validateConfig(cfg models.LeagueConfig) error {
	if len(cfg.Rosters) == 0 {
		return &ConfigurationError{Detail: "no rosters configured"}
	}
	seen := make(map[int]bool, len(cfg.Rosters))
	for _, r := range cfg.Rosters {
		if r.ID <= 0 {
			return &ConfigurationError{Detail: fmt.Sprintf("roster id %d is not positive", r.ID)}
		}
		if seen[r.ID] {
			return &ConfigurationError{Detail: fmt.Sprintf("duplicate roster id %d", r.ID)}
		}
		seen[r.ID] = true
	}
	if cfg.PlayoffTeams < 0 {
		return &ConfigurationError{Detail: fmt.Sprintf("playoff_teams %d is negative", cfg.PlayoffTeams)}
	}
	if cfg.PlayoffTeams > len(cfg.Rosters) {
		return &ConfigurationError{Detail: fmt.Sprintf(
			"playoff_teams %d exceeds roster count %d", cfg.PlayoffTeams, len(cfg.Rosters))}
	}
	for rid, div := range cfg.RosterDivisions {
		if !seen[rid] {
			return &ConfigurationError{Detail: fmt.Sprintf("division assignment for unknown roster %d", rid)}
		}
		if len(cfg.Divisions) > 0 {
			if _, ok := cfg.Divisions[div]; !ok {
				return &ConfigurationError{Detail: fmt.Sprintf(
					"roster %d assigned to unknown division %d", rid, div)}
			}
		}
	}
	return nil
}

func validateHistory(cfg models.LeagueConfig, sorted []models.Matchup) error {
	known := make(map[int]bool, len(cfg.Rosters))
	for _, r := range cfg.Rosters {
		known[r.ID] = true
	}

	type weekRoster struct{ week, roster int }
	type weekMatch struct{ week, matchup int }
	bookings := make(map[weekRoster]bool)
	matchIDs := make(map[weekMatch]bool)
	weeks := make(map[int]bool)

	for _, m := range sorted {
		if m.Week < cfg.StartWeek {
			return &ValidationError{Week: m.Week, Rule: RuleInvalidWeek,
				Detail: fmt.Sprintf("matchup %d before start week %d", m.MatchupID, cfg.StartWeek)}
		}
		weeks[m.Week] = true

		wm := weekMatch{m.Week, m.MatchupID}
		if matchIDs[wm] {
			return &ValidationError{Week: m.Week, Rule: RuleDuplicateMatchup,
				Detail: fmt.Sprintf("matchup id %d appears twice", m.MatchupID)}
		}
		matchIDs[wm] = true

		sides := []int{m.RosterA}
		if !m.Bye() {
			sides = append(sides, m.RosterB)
		}
		for _, rid := range sides {
			if !known[rid] {
				return &ValidationError{Week: m.Week, Rule: RuleUnknownRoster,
					Detail: fmt.Sprintf("roster %d is not in the league configuration", rid)}
			}
			wr := weekRoster{m.Week, rid}
			if bookings[wr] {
				return &ValidationError{Week: m.Week, Rule: RuleDoubleBooked,
					Detail: fmt.Sprintf("roster %d appears in two matchups", rid)}
			}
			bookings[wr] = true
		}
		if m.RosterA == m.RosterB {
			return &ValidationError{Week: m.Week, Rule: RuleDoubleBooked,
				Detail: fmt.Sprintf("roster %d paired with itself", m.RosterA)}
		}

		for _, pts := range []float64{m.PointsA, m.PointsB} {
			if math.IsNaN(pts) || math.IsInf(pts, 0) || pts < 0 {
				return &ValidationError{Week: m.Week, Rule: RuleInvalidPoints,
					Detail: fmt.Sprintf("matchup %d has invalid points %v", m.MatchupID, pts)}
			}
		}
	}

	// Once a week has any matchup, numbering must be contiguous from the
	// start week up to the latest populated week.
	if len(weeks) > 0 {
		last := 0
		for wk := range weeks {
			if wk > last {
				last = wk
			}
		}
		for wk := cfg.StartWeek; wk <= last; wk++ {
			if !weeks[wk] {
				return &ValidationError{Week: wk, Rule: RuleWeekGap,
					Detail: fmt.Sprintf("no matchups recorded for week %d but week %d exists", wk, last)}
			}
		}
	}
	return nil
}

// checkWeek guards the Through(week) queries.
func (e *Engine) checkWeek(week int) error {
	if week < e.cfg.StartWeek {
		return &ValidationError{Week: week, Rule: RuleInvalidWeek,
			Detail: fmt.Sprintf("week precedes start week %d", e.cfg.StartWeek)}
	}
	if week > e.lastWeek {
		return &NotYetPlayedError{Week: week, LastWeek: e.lastWeek}
	}
	return nil
}

// matchupsThrough returns all non-bye matchups from the start week through
// week, in (week, matchup id) order.
func (e *Engine) matchupsThrough(week int) []models.Matchup {
	var out []models.Matchup
	for wk := e.cfg.StartWeek; wk <= week; wk++ {
		for _, m := range e.byWeek[wk] {
			if m.Bye() {
				continue
			}
			out = append(out, m)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
