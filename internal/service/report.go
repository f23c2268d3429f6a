package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/rob-foulkrod/ff/internal/api/sleeper"
	"github.com/rob-foulkrod/ff/internal/config"
	"github.com/rob-foulkrod/ff/internal/engine"
	"github.com/rob-foulkrod/ff/internal/models"
	"github.com/rob-foulkrod/ff/internal/repository/memory"
)

const snapshotTTL = time.Hour

// ReportService loads the league snapshot, builds the computation engine over
// it, and renders every chat-facing message.
type ReportService struct {
	api       *sleeper.API
	repo      *memory.Repository
	leagueID  string
	season    string
	overrides *config.LeagueOverrides
}

func NewReportService(api *sleeper.API, repo *memory.Repository, cfg config.Sleeper, overrides *config.LeagueOverrides) *ReportService {
	return &ReportService{
		api:       api,
		repo:      repo,
		leagueID:  cfg.LeagueID,
		season:    cfg.Season,
		overrides: overrides,
	}
}

func (s *ReportService) loadSnapshot() (*memory.Snapshot, error) {
	if !s.repo.Stale(snapshotTTL) {
		return s.repo.Get(), nil
	}

	league, err := s.api.ResolveSeason(s.leagueID, s.season)
	if err != nil {
		return nil, fmt.Errorf("resolving league season: %w", err)
	}
	rosters, err := s.api.GetRosters(league.LeagueID)
	if err != nil {
		return nil, err
	}
	users, err := s.api.GetUsers(league.LeagueID)
	if err != nil {
		return nil, err
	}

	cfg := sleeper.BuildLeagueConfig(league, rosters, users)
	s.overrides.Apply(&cfg)

	through := cfg.PlayoffWeekStart - 1
	state, err := s.api.GetState()
	if err != nil {
		return nil, err
	}
	if state.Season == cfg.Season && state.Week-1 < through {
		through = state.Week - 1
	}

	var history []models.Matchup
	if through >= cfg.StartWeek {
		history, err = s.api.GetSeasonHistory(league.LeagueID, cfg.StartWeek, through)
		if err != nil {
			return nil, err
		}
	}

	snapshot := &memory.Snapshot{Config: cfg, History: history, LastUpdated: time.Now()}
	s.repo.Save(snapshot)
	slog.Info("League snapshot refreshed", "league", cfg.LeagueID, "season", cfg.Season, "weeks", through)
	return snapshot, nil
}

func (s *ReportService) engine() (*engine.Engine, error) {
	snapshot, err := s.loadSnapshot()
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(snapshot.Config, s.overrides.Thresholds, snapshot.History)
	if err != nil {
		return nil, fmt.Errorf("building engine: %w", err)
	}
	return eng, nil
}

// CurrentWeek returns the latest completed week.
func (s *ReportService) CurrentWeek() (int, error) {
	eng, err := s.engine()
	if err != nil {
		return 0, err
	}
	week := eng.LastWeek()
	if week == 0 {
		return 0, fmt.Errorf("no completed weeks yet")
	}
	return week, nil
}

func (s *ReportService) GetStandings() (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	week := eng.LastWeek()
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	rows, err := eng.StandingsThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing standings: %w", err)
	}
	return formatStandings(week, rows), nil
}

func (s *ReportService) GetDivisionStandings() (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	week := eng.LastWeek()
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	divisions, err := eng.DivisionStandingsThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing division standings: %w", err)
	}
	if len(divisions) == 0 {
		return "This league has no divisions.", nil
	}
	return formatDivisions(week, divisions), nil
}

func (s *ReportService) GetPlayoffPicture() (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	week := eng.LastWeek()
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	picture, err := eng.PlayoffPictureThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing playoff picture: %w", err)
	}
	if len(picture.Seeds) == 0 {
		return "This league has no playoff bracket configured.", nil
	}
	return formatPlayoffs(week, picture), nil
}

func (s *ReportService) GetHeadToHead() (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	week := eng.LastWeek()
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	matrix, err := eng.HeadToHeadThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing head-to-head grid: %w", err)
	}
	return formatHeadToHead(week, matrix, eng.Config()), nil
}

// GetStreaks renders all streaks, or one roster's detail when a query is
// given and fuzzy-matches an owner or team name.
func (s *ReportService) GetStreaks(query string) (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	week := eng.LastWeek()
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	streaks, err := eng.StreaksThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing streaks: %w", err)
	}

	if query == "" {
		return formatStreaks(week, streaks), nil
	}

	roster, ok := matchRoster(eng.Config(), query)
	if !ok {
		return fmt.Sprintf("🔍 No team found matching '%s'.", query), nil
	}
	for _, record := range streaks {
		if record.RosterID == roster.ID {
			return formatStreakDetail(week, record), nil
		}
	}
	return fmt.Sprintf("🔍 No streak data for '%s'.", query), nil
}

// GetWeeklyReport renders the full report. A week of 0 means the latest
// completed week.
func (s *ReportService) GetWeeklyReport(week int) (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	if week == 0 {
		week = eng.LastWeek()
	}
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	report, err := eng.WeeklyReportThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing week %d report: %w", week, err)
	}
	return formatWeeklyReport(report), nil
}

func (s *ReportService) GetPreview() (string, error) {
	eng, err := s.engine()
	if err != nil {
		return "", err
	}
	week := eng.LastWeek()
	if week == 0 {
		return "No completed weeks yet.", nil
	}
	report, err := eng.WeeklyReportThrough(week)
	if err != nil {
		return "", fmt.Errorf("computing week %d report: %w", week, err)
	}
	if len(report.Preview) == 0 {
		return "No upcoming regular-season matchups.", nil
	}
	return formatPreview(report.Preview), nil
}

// matchRoster finds the roster whose owner or team name best matches the
// query, by normalized Levenshtein similarity.
func matchRoster(cfg models.LeagueConfig, query string) (models.Roster, bool) {
	const threshold = 0.5

	var best models.Roster
	bestSim := 0.0
	for _, r := range cfg.Rosters {
		for _, candidate := range []string{r.Owner, r.TeamName} {
			if candidate == "" {
				continue
			}
			sim := similarity(query, candidate)
			if sim > threshold && sim > bestSim {
				bestSim = sim
				best = r
			}
		}
	}
	return best, bestSim > 0
}

func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	maxLen := max(len(a), len(b))
	if maxLen == 0 {
		return 0
	}
	distance := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(distance)/float64(maxLen)
}
