package engine

import "fmt"

// Validation rule names, reported so callers can say which rule a week failed.
const (
	RuleUnknownRoster    = "unknown_roster"
	RuleDoubleBooked     = "double_booked"
	RuleDuplicateMatchup = "duplicate_matchup"
	RuleInvalidPoints    = "invalid_points"
	RuleWeekGap          = "week_gap"
	RuleInvalidWeek      = "invalid_week"
)

// ValidationError means the match history (or a query) is malformed or
// inconsistent. Week is 0 for season-wide problems.
type ValidationError struct {
	Week   int
	Rule   string
	Detail string
}

func (e *ValidationError) Error() string {
	if e.Week > 0 {
		return fmt.Sprintf("validation failed (week %d, rule %s): %s", e.Week, e.Rule, e.Detail)
	}
	return fmt.Sprintf("validation failed (rule %s): %s", e.Rule, e.Detail)
}

// ConfigurationError means the league configuration itself is impossible,
// before any matchup is considered.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid league configuration: %s", e.Detail)
}

// NotYetPlayedError means a query asked for a week beyond the available
// history. Distinct from validation: the data is fine, it just stops earlier.
type NotYetPlayedError struct {
	Week     int
	LastWeek int
}

func (e *NotYetPlayedError) Error() string {
	return fmt.Sprintf("week %d not yet played (history ends at week %d)", e.Week, e.LastWeek)
}
