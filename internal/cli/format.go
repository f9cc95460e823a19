package cli

import (
	"bytes"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/Zigazou/cliquetis/internal/tabular"
)

// FormatTable renders a tabular model as a text table. Grouped tables get
// one header row per group with its member rows underneath.
func FormatTable(data *tabular.Data) string {
	if len(data.Headings) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)

	header := make(table.Row, 0, len(data.Headings))
	for _, heading := range data.Headings {
		header = append(header, heading)
	}
	t.AppendHeader(header)

	// Number columns align right, like the form viewers.
	configs := make([]table.ColumnConfig, 0, len(data.Types))
	for column, columnType := range data.Types {
		if columnType == tabular.Number {
			configs = append(configs, table.ColumnConfig{
				Number: column + 1,
				Align:  text.AlignRight,
			})
		}
	}
	t.SetColumnConfigs(configs)

	for item := range data.InsertableItems() {
		if item.Row == nil {
			t.AppendSeparator()
			t.AppendRow(groupHeaderRow(item.Label, len(data.Headings)))
			t.AppendSeparator()
			continue
		}
		row := make(table.Row, 0, len(item.Row))
		for _, cell := range item.Row {
			row = append(row, cell)
		}
		t.AppendRow(row)
	}

	return t.Render() + "\n"
}

func groupHeaderRow(label string, width int) table.Row {
	row := make(table.Row, width)
	row[0] = text.Bold.Sprint(label)
	for i := 1; i < width; i++ {
		row[i] = ""
	}
	return row
}

// highlightJSON colorizes JSON when writing to a terminal, and returns the
// input unchanged otherwise.
func highlightJSON(encoded string, out *os.File) string {
	if !isatty.IsTerminal(out.Fd()) {
		return encoded
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, encoded, "json", "terminal256", "monokai"); err != nil {
		return encoded
	}
	return strings.TrimRight(buf.String(), "\n")
}
