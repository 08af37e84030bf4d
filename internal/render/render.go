// Package render draws a board snapshot for the terminal.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"issueboard/internal/api"
	"issueboard/internal/board"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Border      lipgloss.Color
	Highlight   lipgloss.Color
	Title       lipgloss.Color
	Muted       lipgloss.Color
	DraggedCard lipgloss.Color
}

var DefaultTheme = Theme{
	Border:      lipgloss.Color("240"),
	Highlight:   lipgloss.Color("39"),
	Title:       lipgloss.Color("255"),
	Muted:       lipgloss.Color("245"),
	DraggedCard: lipgloss.Color("214"),
}

// View carries transient drag state.
type View struct {
	// DraggedIssueID is the issue being dragged, zero when none.
	DraggedIssueID int64
	// OverID is the identifier of the hovered drop target.
	OverID string
}

type Renderer struct {
	theme       Theme
	columnWidth int
}

func NewRenderer(theme Theme, columnWidth int) Renderer {
	if columnWidth < 16 {
		columnWidth = 16
	}
	return Renderer{theme: theme, columnWidth: columnWidth}
}

// Board lays the columns out side by side in order.
func (r Renderer) Board(snapshot api.BoardSnapshot, view View) string {
	if len(snapshot.Columns) == 0 {
		return lipgloss.NewStyle().Foreground(r.theme.Muted).Render("(no columns)")
	}

	grouped := board.IssuesByColumn(snapshot)
	canDelete := len(snapshot.Columns) > 1
	rendered := make([]string, 0, len(snapshot.Columns))
	for _, column := range snapshot.Columns {
		over := DraggedOver(snapshot, view, column.ID)
		rendered = append(rendered, r.column(column, grouped[column.ID], view, over, canDelete))
	}

	header := lipgloss.NewStyle().Bold(true).Foreground(r.theme.Title).Render(snapshot.Board.Name)
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

func (r Renderer) column(column api.Column, issues []api.Issue, view View, over, canDelete bool) string {
	border := r.theme.Border
	if over {
		border = r.theme.Highlight
	}
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(r.columnWidth).
		Padding(0, 1)

	heading := fmt.Sprintf("%s (%d)", column.Name, len(issues))
	if !canDelete {
		heading += " 🔒"
	}
	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(heading),
		lipgloss.NewStyle().Foreground(r.theme.Muted).Render(fmt.Sprintf("#%d", column.ID)),
	}
	for _, issue := range issues {
		lines = append(lines, r.card(issue, issue.ID == view.DraggedIssueID))
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (r Renderer) card(issue api.Issue, dragged bool) string {
	title := fmt.Sprintf("#%d %s", issue.ID, issue.Title)
	style := lipgloss.NewStyle().Foreground(r.theme.Title)
	if dragged {
		style = style.Foreground(r.theme.DraggedCard).Italic(true)
		title = "⇢ " + title
	}
	text := style.Render(truncate(title, r.columnWidth-2))
	if issue.Description != nil && *issue.Description != "" {
		text += "\n" + lipgloss.NewStyle().Foreground(r.theme.Muted).Render(truncate(*issue.Description, r.columnWidth-2))
	}
	return text
}

// DraggedOver reports whether columnID is the column under the dragged
// issue: the hovered target is the column itself or one of its issues.
func DraggedOver(snapshot api.BoardSnapshot, view View, columnID int64) bool {
	if view.DraggedIssueID == 0 || view.OverID == "" {
		return false
	}
	if view.OverID == strconv.FormatInt(columnID, 10) {
		return true
	}
	for _, issue := range snapshot.Issues {
		if strconv.FormatInt(issue.ID, 10) == view.OverID {
			return issue.ColumnID == columnID
		}
	}
	return false
}

func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
