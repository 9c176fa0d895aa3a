// Package printer renders command results. It is the only place that knows about
// output formats, the rest of the application works with raw tasks and timestamps.
package printer

import (
	"fmt"
	"io"

	"github.com/slok/task-cli/internal/model"
)

// Format is an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats are all the supported output formats.
var Formats = []string{string(FormatTable), string(FormatJSON), string(FormatYAML)}

// Printer knows how to print task information in different formats.
type Printer interface {
	PrintList(tasks []model.Task) error
	PrintMessage(msg string) error
}

// New returns the printer for format writing to w.
func New(format Format, w io.Writer) (Printer, error) {
	switch format {
	case FormatTable, "":
		return NewTablePrinter(w), nil
	case FormatJSON:
		return NewJSONPrinter(w), nil
	case FormatYAML:
		return NewYAMLPrinter(w), nil
	}

	return nil, fmt.Errorf("unknown output format %q: %w", format, model.ErrNotValid)
}

// taskOutput is the structured (JSON/YAML) representation of a task.
type taskOutput struct {
	ID          int    `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
	CreatedAt   string `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   string `json:"updatedAt" yaml:"updatedAt"`
}

func newTaskOutput(t model.Task) taskOutput {
	return taskOutput{
		ID:          t.ID,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   FormatRFC3339(t.CreatedAt),
		UpdatedAt:   FormatRFC3339(t.UpdatedAt),
	}
}

func newTaskOutputs(tasks []model.Task) []taskOutput {
	items := make([]taskOutput, len(tasks))
	for i, t := range tasks {
		items[i] = newTaskOutput(t)
	}
	return items
}

// messageOutput represents a simple message output.
type messageOutput struct {
	Message string `json:"message" yaml:"message"`
}
