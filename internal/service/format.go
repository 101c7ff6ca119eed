package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarshaarawi/rotocoach/internal/identity"
	"github.com/omarshaarawi/rotocoach/internal/models"
)

func (s *RotoService) GetStandings(ctx context.Context) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("error building report: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Projected Final Standings*\n\n")
	for i, team := range report.Ranking.Teams {
		marker := ""
		if team.TeamID == report.MyTeamID {
			marker = " ⭐"
		}
		sb.WriteString(fmt.Sprintf("%d. *%s*%s: %d pts\n", i+1, report.TeamName(team.TeamID), marker, team.Total))
	}
	writeWarnings(&sb, report)

	return sb.String(), nil
}

func (s *RotoService) GetRanks(ctx context.Context) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("error building report: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s Category Ranks*\n\n", report.TeamName(report.MyTeamID)))
	for _, c := range models.Categories {
		sb.WriteString(fmt.Sprintf("%s: %d", c.Label, report.Baseline.Rank(c)))
		if lead, ok := report.Buffer.ByCategory[c.Key]; ok {
			sb.WriteString(fmt.Sprintf(" (+%.1f%%)", lead*100))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("\nTotal: %d", report.Baseline.Total))
	if report.Buffer.HasMin {
		sb.WriteString(fmt.Sprintf("\nThinnest lead: %.1f%%", report.Buffer.Min*100))
	}

	return sb.String(), nil
}

// GetValues lists a team's players by punt-adjusted value. An empty query
// means my team.
func (s *RotoService) GetValues(ctx context.Context, teamQuery string) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("error building report: %w", err)
	}

	teamID := report.MyTeamID
	if teamQuery != "" {
		names := make([]string, len(report.Teams))
		for i, t := range report.Teams {
			names[i] = t.Name
		}
		i, _ := identity.BestMatch(teamQuery, names, 0.6)
		if i < 0 {
			return fmt.Sprintf("🔍 No team found matching '%s'.", teamQuery), nil
		}
		teamID = report.Teams[i].ID
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💰 *%s Player Values*\n\n", report.TeamName(teamID)))
	for _, v := range report.Values {
		if v.TeamID != teamID {
			continue
		}
		writeValueLine(&sb, v)
	}

	return sb.String(), nil
}

func (s *RotoService) GetFreeAgents(ctx context.Context, limit int) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("error building report: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🆓 *Best Available*\n\n")
	n := 0
	for _, v := range report.Values {
		if v.TeamID != models.FreeAgent {
			continue
		}
		writeValueLine(&sb, v)
		n++
		if n == limit {
			break
		}
	}
	if n == 0 {
		sb.WriteString("No free agents projected.")
	}

	return sb.String(), nil
}

func writeValueLine(sb *strings.Builder, v models.PlayerValue) {
	sb.WriteString(fmt.Sprintf("▫️ %s", v.Player.Name))
	if v.Player.Position != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", v.Player.Position))
	}
	sb.WriteString(fmt.Sprintf(" - %.2f (total %.2f)\n", v.Mod, v.Total))
}

// GetSwaps lists the best single moves that do not lower the projected total.
func (s *RotoService) GetSwaps(ctx context.Context, limit int) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("error building report: %w", err)
	}
	return FormatSwaps(report, limit), nil
}

func FormatSwaps(report *models.Report, limit int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🔁 *Roster Moves* (current total %d)\n\n", report.Baseline.Total))

	n := 0
	for _, t := range report.Swaps {
		if t.TotalDelta < 0 || n == limit {
			break
		}
		if t.TotalDelta == 0 && (t.BufferDelta == nil || *t.BufferDelta <= 0) {
			continue
		}
		n++
		sb.WriteString(fmt.Sprintf("%d. %s\n", n, describeMove(report, t)))
		sb.WriteString(fmt.Sprintf("   Total: %d (%+d)", t.NewTotal, t.TotalDelta))
		if t.Buffer != nil {
			sb.WriteString(fmt.Sprintf(", lead %.1f%%", *t.Buffer*100))
		}
		sb.WriteString("\n")
	}
	if n == 0 {
		sb.WriteString("No move improves the projected standings.")
	}
	return sb.String()
}

func describeMove(report *models.Report, t models.SwapTrial) string {
	var parts []string
	if t.DropID != "" {
		parts = append(parts, "Drop "+t.DropName)
	}
	if t.AddID != "" {
		add := "Add " + t.AddName
		if t.AddFromTeam != models.FreeAgent {
			add = fmt.Sprintf("Trade for %s (%s)", t.AddName, report.TeamName(t.AddFromTeam))
		}
		parts = append(parts, add)
	}
	return strings.Join(parts, ", ")
}

func (s *RotoService) WhoHas(ctx context.Context, playerName string) (string, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return "", fmt.Errorf("error building report: %w", err)
	}

	result := whoHas(report, playerName)
	if !result.Found {
		return fmt.Sprintf("🔍 No player found matching '%s'.", playerName), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s*", result.PlayerName))
	if result.Position != "" || result.ProTeam != "" {
		sb.WriteString(fmt.Sprintf(" (%s - %s)", result.Position, result.ProTeam))
	}
	sb.WriteString("\n━━━━━━━━━━━━━━━━\n")
	sb.WriteString(fmt.Sprintf("*%s*\n", result.TeamName))
	sb.WriteString(fmt.Sprintf("\nValue: %.2f (total %.2f)", result.Value.Mod, result.Value.Total))

	if s.history != nil {
		trend, err := s.history.PlayerTrend(ctx, result.Value.Player.ID, 5)
		if err == nil && len(trend) > 1 {
			vals := make([]string, len(trend))
			for i, p := range trend {
				vals[i] = fmt.Sprintf("%.1f", p.Mod)
			}
			sb.WriteString("\nTrend: " + strings.Join(vals, " → "))
		}
	}

	return sb.String(), nil
}

func whoHas(report *models.Report, playerName string) models.WhoHasResult {
	names := make([]string, len(report.Values))
	for i, v := range report.Values {
		names[i] = v.Player.Name
	}

	i, _ := identity.BestMatch(playerName, names, identity.DefaultThreshold)
	if i < 0 {
		return models.WhoHasResult{PlayerName: playerName}
	}

	v := report.Values[i]
	return models.WhoHasResult{
		PlayerName: v.Player.Name,
		TeamName:   report.TeamName(v.TeamID),
		TeamID:     v.TeamID,
		Found:      true,
		Position:   v.Player.Position,
		ProTeam:    v.Player.ProTeam,
		Value:      v,
	}
}

func (s *RotoService) GetHistory(ctx context.Context, limit int) (string, error) {
	if s.history == nil {
		return "History is not enabled.", nil
	}
	runs, err := s.history.Recent(ctx, limit)
	if err != nil {
		return "", fmt.Errorf("error fetching history: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("🗓 *Recent Runs*\n\n")
	if len(runs) == 0 {
		sb.WriteString("No runs recorded yet.")
	}
	for _, r := range runs {
		sb.WriteString(fmt.Sprintf("%s: %d pts", r.GeneratedAt.Format("Jan 2 15:04"), r.Total))
		if r.Buffer.Valid {
			sb.WriteString(fmt.Sprintf(", lead %.1f%%", r.Buffer.Float64*100))
		}
		if r.Source != "" {
			sb.WriteString(" (" + r.Source + ")")
		}
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func writeWarnings(sb *strings.Builder, report *models.Report) {
	if len(report.Warnings) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n⚠️ %d roster entries need attention", len(report.Warnings)))
}

// RefreshSummary rebuilds the report and renders the top swaps.
func (s *RotoService) RefreshSummary(ctx context.Context) (string, error) {
	report, err := s.Refresh(ctx)
	if err != nil {
		return "", fmt.Errorf("error refreshing report: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("✅ Report refreshed for *%s*\n\n", report.TeamName(report.MyTeamID)))
	sb.WriteString(FormatSwaps(report, 5))
	writeWarnings(&sb, report)
	return sb.String(), nil
}
