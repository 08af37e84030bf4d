package render_test

import (
	"strings"
	"testing"

	"issueboard/internal/api"
	"issueboard/internal/render"

	"github.com/stretchr/testify/assert"
)

func snapshot() api.BoardSnapshot {
	description := "a rather long description that will not fit in one column"
	return api.BoardSnapshot{
		Board: api.Board{ID: 1, Name: "My Board"},
		Columns: []api.Column{
			{ID: 10, Name: "To Do", Order: 1},
			{ID: 20, Name: "In Progress", Order: 2},
			{ID: 30, Name: "Done", Order: 3},
		},
		Issues: []api.Issue{
			{ID: 5, ColumnID: 10, Title: "five", Order: 1, Description: &description},
			{ID: 6, ColumnID: 20, Title: "six", Order: 1},
		},
	}
}

func TestRenderer_Board(t *testing.T) {
	// Arrange
	renderer := render.NewRenderer(render.DefaultTheme, 24)

	// Act
	out := renderer.Board(snapshot(), render.View{})

	// Assert
	assert.Contains(t, out, "My Board")
	assert.Contains(t, out, "To Do (1)")
	assert.Contains(t, out, "In Progress (1)")
	assert.Contains(t, out, "Done (0)")
	assert.Contains(t, out, "#5 five")
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, "🔒")
	assert.Less(t, strings.Index(out, "To Do"), strings.Index(out, "In Progress"))
}

func TestRenderer_LastColumnMarked(t *testing.T) {
	// Arrange
	renderer := render.NewRenderer(render.DefaultTheme, 24)
	single := snapshot()
	single.Columns = single.Columns[:1]

	// Act
	out := renderer.Board(single, render.View{})

	// Assert
	assert.Contains(t, out, "🔒")
}

func TestRenderer_EmptyBoard(t *testing.T) {
	// Act
	out := render.NewRenderer(render.DefaultTheme, 0).Board(api.BoardSnapshot{}, render.View{})

	// Assert
	assert.Contains(t, out, "(no columns)")
}

func TestDraggedOver(t *testing.T) {
	board := snapshot()

	tests := []struct {
		name     string
		view     render.View
		columnID int64
		want     bool
	}{
		{"hovering column", render.View{DraggedIssueID: 5, OverID: "30"}, 30, true},
		{"hovering other column", render.View{DraggedIssueID: 5, OverID: "30"}, 20, false},
		{"hovering issue in column", render.View{DraggedIssueID: 5, OverID: "6"}, 20, true},
		{"hovering issue elsewhere", render.View{DraggedIssueID: 5, OverID: "6"}, 10, false},
		{"not dragging", render.View{OverID: "30"}, 30, false},
		{"nothing hovered", render.View{DraggedIssueID: 5}, 30, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, render.DraggedOver(board, tt.view, tt.columnID))
		})
	}
}
