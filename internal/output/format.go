// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todo/internal/service"
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}\n" (4-wide right-aligned number, two spaces, checkbox, title)
func FormatTask(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s\n", num, Checkbox(task.Completed), NormalizeTitle(task.Title))
}

// FormatTaskVerbose is FormatTask with the task id appended.
func FormatTaskVerbose(w io.Writer, num int, task service.Task) {
	fmt.Fprintf(w, "%4d  %s %s  (%s)\n", num, Checkbox(task.Completed), NormalizeTitle(task.Title), task.ID)
}

// FormatRemaining formats the remaining-count footer.
func FormatRemaining(w io.Writer, remaining int) {
	fmt.Fprintln(w, RemainingText(remaining))
}

// RemainingText returns "N tasks remaining" with the noun pluralized.
func RemainingText(remaining int) string {
	noun := "tasks"
	if remaining == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d %s remaining", remaining, noun)
}

// Checkbox renders the completed flag.
func Checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// NormalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func NormalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
