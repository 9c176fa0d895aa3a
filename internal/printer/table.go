package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/slok/task-cli/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintList prints tasks in a table format.
func (t *TablePrinter) PrintList(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)

	// Print header
	fmt.Fprintln(tw, "ID\tDESCRIPTION\tSTATUS\tCREATED\tUPDATED")

	// Print rows
	for _, task := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			task.ID,
			task.Description,
			task.Status,
			FormatTimestamp(task.CreatedAt),
			FormatTimestamp(task.UpdatedAt),
		)
	}

	return tw.Flush()
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
