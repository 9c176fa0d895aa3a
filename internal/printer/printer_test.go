package printer_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/task-cli/internal/model"
	"github.com/slok/task-cli/internal/printer"
)

func tasksFixture() []model.Task {
	createdAt := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	return []model.Task{
		{ID: 1, Description: "write docs", Status: model.TaskStatusInProgress, CreatedAt: createdAt, UpdatedAt: createdAt.Add(5 * time.Minute)},
		{ID: 12, Description: "ship", Status: model.TaskStatusTodo, CreatedAt: createdAt, UpdatedAt: createdAt},
	}
}

func TestTablePrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	err := p.PrintList(tasksFixture())
	require.NoError(t, err)

	exp := `ID  DESCRIPTION  STATUS       CREATED                  UPDATED
1   write docs   in-progress  2026-01-30 10:00:00 UTC  2026-01-30 10:05:00 UTC
12  ship         todo         2026-01-30 10:00:00 UTC  2026-01-30 10:00:00 UTC
`
	assert.Equal(t, exp, buf.String())
}

func TestTablePrinterPrintEmptyList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewTablePrinter(&buf)

	require.NoError(t, p.PrintList(nil))
	assert.Empty(t, buf.String())
}

func TestJSONPrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewJSONPrinter(&buf)

	err := p.PrintList(tasksFixture()[:1])
	require.NoError(t, err)

	exp := `[
  {
    "id": 1,
    "description": "write docs",
    "status": "in-progress",
    "createdAt": "2026-01-30T10:00:00Z",
    "updatedAt": "2026-01-30T10:05:00Z"
  }
]
`
	assert.Equal(t, exp, buf.String())
}

func TestYAMLPrinterPrintList(t *testing.T) {
	var buf bytes.Buffer
	p := printer.NewYAMLPrinter(&buf)

	err := p.PrintList(tasksFixture()[1:])
	require.NoError(t, err)

	exp := `- id: 12
  description: ship
  status: todo
  createdAt: "2026-01-30T10:00:00Z"
  updatedAt: "2026-01-30T10:00:00Z"
`
	assert.Equal(t, exp, buf.String())
}

func TestPrintMessage(t *testing.T) {
	tests := map[string]struct {
		format printer.Format
		exp    string
	}{
		"table": {format: printer.FormatTable, exp: "ok"},
		"json":  {format: printer.FormatJSON, exp: `{
  "message": "ok"
}`},
		"yaml": {format: printer.FormatYAML, exp: "message: ok"},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			p, err := printer.New(test.format, &buf)
			require.NoError(t, err)

			require.NoError(t, p.PrintMessage("ok"))
			assert.Equal(t, test.exp, strings.TrimSpace(buf.String()))
		})
	}
}

func TestNewUnknownFormat(t *testing.T) {
	_, err := printer.New("xml", &bytes.Buffer{})
	assert.ErrorIs(t, err, model.ErrNotValid)
}
