// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskman/internal/service"
)

const (
	// ListSeparator is the separator line around the list header.
	ListSeparator = "------------"

	// EmptyMessage is printed instead of an empty task list.
	EmptyMessage = "no pending tasks"

	labelWidth = len(LabelMedium)
)

// FormatTask formats one task line.
// Format: "{ID:>4}  {CHECKBOX}  {LABEL:<6}  {ICON} {CATEGORY}  {TITLE}\n"
func FormatTask(w io.Writer, task service.Task, theme *Theme) {
	fmt.Fprintln(w, TaskLine(task, theme))
}

// TaskLine renders a task without the trailing newline.
func TaskLine(task service.Task, theme *Theme) string {
	label := LabelFor(task.Priority)
	pad := strings.Repeat(" ", labelWidth-len(label))
	label = theme.Priority(task.Priority, label) + pad
	category := theme.Category(task.Category, normalizeCategory(task.Category))
	return fmt.Sprintf("%4d  %s  %s  %s %s  %s",
		task.ID,
		Checkbox(task.Completed),
		label,
		IconFor(task.Category).Glyph(),
		category,
		normalizeTitle(task.Title),
	)
}

// FormatTaskList formats every task in store order, or EmptyMessage when
// there are none.
func FormatTaskList(w io.Writer, tasks []service.Task, theme *Theme) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, EmptyMessage)
		return
	}
	for _, task := range tasks {
		FormatTask(w, task, theme)
	}
}

// FormatHeader formats a section header.
func FormatHeader(w io.Writer, title string) {
	fmt.Fprintln(w, ListSeparator)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, ListSeparator)
}

// FormatState formats a task's completion state after a toggle.
// Format: "#{ID} {done|open}  {TITLE}\n"
func FormatState(w io.Writer, task service.Task) {
	state := "open"
	if task.Completed {
		state = "done"
	}
	fmt.Fprintf(w, "#%d %s  %s\n", task.ID, state, normalizeTitle(task.Title))
}

// Checkbox renders the completion marker.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

// normalizeCategory renders a missing category as "(none)".
func normalizeCategory(category string) string {
	if strings.TrimSpace(category) == "" {
		return "(none)"
	}
	return category
}
