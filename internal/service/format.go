package service

import (
	"fmt"
	"strings"

	"github.com/rob-foulkrod/ff/internal/models"
)

func rankArrow(change int) string {
	switch {
	case change > 0:
		return fmt.Sprintf(" ▲%d", change)
	case change < 0:
		return fmt.Sprintf(" ▼%d", -change)
	default:
		return ""
	}
}

func recordString(wins, losses, ties int) string {
	if ties > 0 {
		return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

func formatStandings(week int, rows []models.StandingsRow) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *Standings — Week %d*\n\n", week))
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%d. *%s* (%s)%s\n",
			row.Rank, row.Owner, recordString(row.Wins, row.Losses, row.Ties), rankArrow(row.RankChange)))
		sb.WriteString(fmt.Sprintf("   PF %.2f | PA %.2f\n", row.PointsFor, row.PointsAgainst))
	}
	return sb.String()
}

func formatDivisions(week int, divisions []models.DivisionStandings) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏅 *Division Standings — Week %d*\n", week))
	for _, div := range divisions {
		sb.WriteString(fmt.Sprintf("\n*%s*\n", div.DivisionName))
		for _, row := range div.Rows {
			sb.WriteString(fmt.Sprintf("%d. %s (%s) — PF %.2f\n",
				row.Rank, row.Owner, recordString(row.Wins, row.Losses, row.Ties), row.PointsFor))
		}
	}
	return sb.String()
}

func formatPlayoffs(week int, picture models.PlayoffPicture) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🎟 *Playoff Picture — Week %d*\n\n", week))
	for _, seed := range picture.Seeds {
		marker := ""
		if seed.Type == models.SeedDivisionWinner {
			marker = " 👑"
			if seed.DivisionName != "" {
				marker = fmt.Sprintf(" 👑 %s", seed.DivisionName)
			}
		}
		sb.WriteString(fmt.Sprintf("%d. *%s* (%s)%s\n",
			seed.Seed, seed.Owner, recordString(seed.Wins, seed.Losses, seed.Ties), marker))
	}
	if len(picture.InTheHunt) > 0 {
		sb.WriteString("\n*In the Hunt:*\n")
		for _, row := range picture.InTheHunt {
			sb.WriteString(fmt.Sprintf("• %s (%s) — PF %.2f\n",
				row.Owner, recordString(row.Wins, row.Losses, row.Ties), row.PointsFor))
		}
	}
	return sb.String()
}

// formatHeadToHead renders the grid in a code block so columns line up in the
// chat client.
func formatHeadToHead(week int, matrix models.HeadToHeadMatrix, cfg models.LeagueConfig) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("⚔️ *Head-to-Head — Week %d*\n```\n", week))

	sb.WriteString(fmt.Sprintf("%-12s", ""))
	for _, id := range matrix.Order {
		sb.WriteString(fmt.Sprintf("%-7s", abbreviate(cfg.Owner(id))))
	}
	sb.WriteString("\n")

	for _, row := range matrix.Rows {
		sb.WriteString(fmt.Sprintf("%-12s", abbreviate(row.Owner)))
		for _, cell := range row.Cells {
			sb.WriteString(fmt.Sprintf("%-7s", cellString(cell)))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("```")
	return sb.String()
}

func cellString(cell models.HeadToHeadCell) string {
	switch {
	case cell.Self:
		return "—"
	case !cell.Played:
		return "·"
	default:
		return recordString(cell.Wins, cell.Losses, cell.Ties)
	}
}

func abbreviate(name string) string {
	if len(name) > 10 {
		return name[:10]
	}
	return name
}

func streakString(span models.StreakSpan) string {
	if span.Length == 0 {
		return "no games"
	}
	if span.StartWeek == span.EndWeek {
		return fmt.Sprintf("%s%d (week %d)", span.Type, span.Length, span.StartWeek)
	}
	return fmt.Sprintf("%s%d (weeks %d-%d)", span.Type, span.Length, span.StartWeek, span.EndWeek)
}

func formatStreaks(week int, streaks []models.StreakRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔥 *Streaks — Week %d*\n\n", week))
	for _, record := range streaks {
		sb.WriteString(fmt.Sprintf("• *%s*: %s\n", record.Owner, streakString(record.Current)))
	}
	return sb.String()
}

func formatStreakDetail(week int, record models.StreakRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔥 *%s — Week %d*\n\n", record.Owner, week))
	sb.WriteString(fmt.Sprintf("Current: %s\n", streakString(record.Current)))
	if record.LongestWin.Length > 0 {
		sb.WriteString(fmt.Sprintf("Longest win streak: %s\n", streakString(record.LongestWin)))
	}
	if record.LongestLoss.Length > 0 {
		sb.WriteString(fmt.Sprintf("Longest losing streak: %s\n", streakString(record.LongestLoss)))
	}
	return sb.String()
}

func formatPreview(preview []models.PreviewMatchup) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔮 *Week %d Preview*\n\n", preview[0].Week))
	for _, pm := range preview {
		if pm.RosterB == 0 {
			sb.WriteString(fmt.Sprintf("*%s* — bye\n", pm.OwnerA))
			continue
		}
		sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", pm.OwnerA, pm.OwnerB))
	}
	return sb.String()
}

func formatWeeklyReport(report *models.WeeklyReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📰 *Week %d Report*\n", report.Week))

	sb.WriteString("\n*Scores*\n")
	for _, wf := range report.Matchups {
		writeMatchupLine(&sb, report, wf)
	}

	writeTrophies(&sb, report)
	writeLuck(&sb, report)
	writeDivisionPower(&sb, report)

	if len(report.Preview) > 0 {
		sb.WriteString("\n")
		sb.WriteString(formatPreview(report.Preview))
	}
	return sb.String()
}

func writeMatchupLine(sb *strings.Builder, report *models.WeeklyReport, wf models.WeeklyFlags) {
	ownerOf := func(id int) string {
		for _, row := range report.Standings {
			if row.RosterID == id {
				return row.Owner
			}
		}
		return fmt.Sprintf("Roster %d", id)
	}

	if wf.RosterB == 0 {
		sb.WriteString(fmt.Sprintf("%s %.2f — bye\n", ownerOf(wf.RosterA), wf.PointsA))
		return
	}
	sb.WriteString(fmt.Sprintf("%s %.2f — %.2f %s",
		ownerOf(wf.RosterA), wf.PointsA, wf.PointsB, ownerOf(wf.RosterB)))
	if wf.Tie {
		sb.WriteString(" (tie)")
	}

	var notes []string
	for _, name := range wf.FlagNames() {
		if name == "margin" {
			continue
		}
		if value := wf.Flags[name]; value != "yes" {
			notes = append(notes, fmt.Sprintf("%s=%s", name, value))
		} else {
			notes = append(notes, name)
		}
	}
	if len(notes) > 0 {
		sb.WriteString(fmt.Sprintf("\n   _%s_", strings.Join(notes, ", ")))
	}
	sb.WriteString("\n")
}

func writeTrophies(sb *strings.Builder, report *models.WeeklyReport) {
	sb.WriteString("\n🏆 *Trophies*\n")
	agg := report.Aggregates
	sb.WriteString(fmt.Sprintf("Highest score: %.2f\n", agg.High))
	sb.WriteString(fmt.Sprintf("Lowest score: %.2f\n", agg.Low))
	if ms := report.WeekMargins; ms != nil {
		sb.WriteString(fmt.Sprintf("Biggest win: %s by %.2f\n", ms.Largest.WinnerOwner, ms.Largest.Margin))
		sb.WriteString(fmt.Sprintf("Closest win: %s by %.2f\n", ms.Smallest.WinnerOwner, ms.Smallest.Margin))
		sb.WriteString(fmt.Sprintf("Average margin: %.2f (season %.2f)\n",
			ms.AverageMargin, seasonAverageMargin(report)))
	}
	sb.WriteString(fmt.Sprintf("League median: %.2f | average: %.2f\n", agg.Median, agg.Average))
}

func seasonAverageMargin(report *models.WeeklyReport) float64 {
	if report.SeasonMargins == nil {
		return 0
	}
	return report.SeasonMargins.AverageMargin
}

func writeLuck(sb *strings.Builder, report *models.WeeklyReport) {
	if len(report.AllPlay) == 0 {
		return
	}
	sb.WriteString("\n🍀 *All-Play & Luck*\n")
	for _, ap := range report.AllPlay {
		sb.WriteString(fmt.Sprintf("%s: %.1f-%.1f all-play, luck %+.2f\n",
			ap.Owner, ap.Wins, ap.Losses, ap.LuckDiff))
	}
}

func writeDivisionPower(sb *strings.Builder, report *models.WeeklyReport) {
	if len(report.DivisionPowerSeason) == 0 {
		return
	}
	sb.WriteString("\n📊 *Division Power*\n")
	for _, dp := range report.DivisionPowerSeason {
		name := dp.DivisionName
		if name == "" {
			name = fmt.Sprintf("Division %d", dp.DivisionID)
		}
		sb.WriteString(fmt.Sprintf("%s: %s, %.2f PF/game\n",
			name, recordString(dp.Wins, dp.Losses, dp.Ties), dp.PFPerTeamGame))
	}
}
