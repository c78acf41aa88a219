package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	taskUC "github.com/fastygo/tasklist/usecase/task"
)

var (
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	headerStyle  = cellStyle.Bold(true)
	doneStyle    = cellStyle.Faint(true)
	overdueStyle = cellStyle.Foreground(lipgloss.Color("203"))
)

const shortIDLen = 8

func renderView(out io.Writer, view taskUC.View) error {
	tags := "none"
	if len(view.Tags) > 0 {
		names := make([]string, 0, len(view.Tags))
		for _, tag := range view.Tags {
			names = append(names, string(tag))
		}
		tags = strings.Join(names, ", ")
	}
	fmt.Fprintf(out, "Filter: %s  Tags: %s  Today: %s\n", view.StatusFilter, tags, view.Today)

	if len(view.Tasks) == 0 {
		fmt.Fprintln(out, "No tasks.")
	} else {
		fmt.Fprintln(out, taskTable(view.Tasks))
	}

	if view.Counts.Trash {
		fmt.Fprintf(out, "%d in trash\n", view.Counts.Total)
		return nil
	}
	fmt.Fprintf(out, "%d shown, %d active, %d completed, %d in trash\n",
		view.Counts.Total, view.Counts.Active, view.Counts.Completed, view.TrashCount)
	return nil
}

func taskTable(tasks []taskUC.TaskView) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{shortID(t.ID), checkbox(t.Completed), t.Text, flags(t)})
	}
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers("ID", "DONE", "TASK", "FLAGS").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row < 0 || row >= len(tasks):
				return cellStyle
			case tasks[row].Completed:
				return doneStyle
			case tasks[row].Overdue:
				return overdueStyle
			default:
				return cellStyle
			}
		}).
		String()
}

func shortID(id string) string {
	if len(id) > shortIDLen {
		return id[:shortIDLen]
	}
	return id
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func flags(t taskUC.TaskView) string {
	var parts []string
	if t.Important {
		parts = append(parts, "!")
	}
	if t.DueDate != nil {
		parts = append(parts, "due "+t.DueDate.String())
	}
	if t.Overdue {
		parts = append(parts, "OVERDUE")
	}
	if t.DeletedAt != nil {
		parts = append(parts, "deleted "+t.DeletedAt.Format("2006-01-02 15:04"))
	}
	return strings.Join(parts, " ")
}
