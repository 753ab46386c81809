package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-pacman/internal/storage"
)

// HistoryMode selects the columns of a session table.
type HistoryMode int

const (
	// HistoryRecent lists sessions newest first, with their map.
	HistoryRecent HistoryMode = iota
	// HistoryRanked lists one map's sessions by rank.
	HistoryRanked
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("11")).
	MarginBottom(1)

// RenderSessions renders sessions as a static table under a title.
func RenderSessions(title string, sessions []storage.Session, mode HistoryMode) string {
	t := table.New(
		table.WithColumns(sessionColumns(mode)),
		table.WithRows(sessionRows(sessions, mode)),
		table.WithHeight(len(sessions)+3), // header and its border
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Nothing is selectable in a printed table.
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return titleStyle.Render(title) + "\n" + t.View()
}

func sessionColumns(mode HistoryMode) []table.Column {
	if mode == HistoryRanked {
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Left", Width: 6},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: 16},
		}
	}
	return []table.Column{
		{Title: "Date", Width: 16},
		{Title: "Map", Width: 10},
		{Title: "Score", Width: 10},
		{Title: "Left", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Backend", Width: 8},
	}
}

func sessionRows(sessions []storage.Session, mode HistoryMode) []table.Row {
	rows := make([]table.Row, len(sessions))
	for i, s := range sessions {
		date := s.CreatedAt.Format("Jan 02 15:04")
		left := fmt.Sprintf("%d", s.Remaining)
		if s.Cleared() {
			left = "clear"
		}
		played := s.Duration.Round(time.Second).String()

		if mode == HistoryRanked {
			rows[i] = table.Row{
				fmt.Sprintf("#%d", i+1),
				fmt.Sprintf("%d", s.Score),
				left,
				played,
				date,
			}
			continue
		}
		rows[i] = table.Row{
			date,
			s.MapID,
			fmt.Sprintf("%d", s.Score),
			left,
			played,
			s.Backend,
		}
	}
	return rows
}
