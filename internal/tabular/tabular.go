// Package tabular parses delimited process output into a typed table,
// optionally grouped into a two-level hierarchy.
package tabular

import (
	"iter"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/Zigazou/cliquetis/internal/types"
)

// ColumnType classifies the cells of one column.
type ColumnType int

const (
	// Number means every non-blank cell parses as a float.
	Number ColumnType = iota
	// String means at least one non-blank cell failed the numeric parse.
	String
)

// Data is a typed table imported from raw delimited text. Headings, Types
// and MaxWidths always have equal length, kept in lock-step across column
// removal. Data is mutated only during construction and read-only
// afterward.
type Data struct {
	Headings  []string
	Types     []ColumnType
	MaxWidths []int

	// Rows holds the flat row sequence. After GroupBy it is nil and the
	// rows live in Groups instead.
	Rows [][]string

	// Groups maps each group key to its rows; GroupOrder preserves
	// first-seen order.
	Groups     map[string][][]string
	GroupOrder []string
}

// New returns an empty table.
func New() *Data {
	return &Data{}
}

// Grouped reports whether the rows have been re-shaped into groups.
func (d *Data) Grouped() bool {
	return d.Groups != nil
}

// Import fills the table from parsed rows; the first row is the headings.
// Fewer than 2 rows is a deliberate "not enough data" guard: the model
// stays empty and no error is reported.
func (d *Data) Import(rows [][]string) *Data {
	if len(rows) < 2 {
		return d
	}

	d.Headings = rows[0]
	d.Rows = rows[1:]
	d.Types = d.findColumnTypes()
	d.MaxWidths = d.findMaxWidths()

	return d
}

// ImportRaw decodes raw process output as UTF-8, splits it into lines and
// cells, imports it and optionally groups it. separator defaults to tab.
func (d *Data) ImportRaw(raw []byte, separator string, groupBy *int) error {
	if !utf8.Valid(raw) {
		return &types.DecodeError{Format: "utf-8"}
	}
	if separator == "" {
		separator = "\t"
	}

	rows := make([][]string, 0, 16)
	for _, line := range splitLines(string(raw)) {
		rows = append(rows, strings.Split(line, separator))
	}
	d.Import(rows)

	if groupBy != nil {
		return d.GroupBy(*groupBy)
	}
	return nil
}

// GroupBy removes the given column and re-partitions the rows into a
// mapping from that column's values to the remaining row values. Group
// order is first-seen, row order inside a group is preserved.
func (d *Data) GroupBy(column int) error {
	if column < 0 || column >= len(d.Headings) {
		return &types.GroupColumnError{Column: column, Width: len(d.Headings)}
	}

	groups := make(map[string][][]string)
	order := make([]string, 0)
	for _, row := range d.Rows {
		key := ""
		rest := row
		if column < len(row) {
			key = row[column]
			rest = append(append([]string{}, row[:column]...), row[column+1:]...)
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], rest)
	}

	d.Headings = append(d.Headings[:column:column], d.Headings[column+1:]...)
	d.Types = append(d.Types[:column:column], d.Types[column+1:]...)
	d.MaxWidths = append(d.MaxWidths[:column:column], d.MaxWidths[column+1:]...)
	d.Rows = nil
	d.Groups = groups
	d.GroupOrder = order

	return nil
}

// Item is one insertion unit for a tree/table widget. A group header has
// Row nil and Label set; a data row has Row set and Parent naming its
// group ("" for flat tables and group headers).
type Item struct {
	Parent string
	Label  string
	Row    []string
}

// InsertableItems returns a restartable sequence of insertions: for a
// grouped table, each group header followed by all of that group's rows
// with no interleaving; for a flat table, every row in original order.
func (d *Data) InsertableItems() iter.Seq[Item] {
	return func(yield func(Item) bool) {
		if d.Grouped() {
			for _, group := range d.GroupOrder {
				if !yield(Item{Parent: "", Label: group}) {
					return
				}
				for _, row := range d.Groups[group] {
					if !yield(Item{Parent: group, Row: row}) {
						return
					}
				}
			}
			return
		}
		for _, row := range d.Rows {
			if !yield(Item{Parent: "", Row: row}) {
				return
			}
		}
	}
}

// findColumnTypes infers Number or String per column. Blank cells never
// force a type; the scan stops early once every column is String.
func (d *Data) findColumnTypes() []ColumnType {
	width := len(d.Headings)
	columnTypes := make([]ColumnType, width)

	for _, row := range d.Rows {
		if allString(columnTypes) {
			break
		}

		for column, value := range row {
			if column >= width {
				break
			}
			if columnTypes[column] == String || strings.TrimSpace(value) == "" {
				continue
			}
			if _, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err != nil {
				columnTypes[column] = String
			}
		}
	}

	return columnTypes
}

func allString(columnTypes []ColumnType) bool {
	for _, t := range columnTypes {
		if t != String {
			return false
		}
	}
	return len(columnTypes) > 0
}

// findMaxWidths computes the widest rendered cell per column, heading
// included, in display cells.
func (d *Data) findMaxWidths() []int {
	maxWidths := make([]int, len(d.Headings))
	for column, heading := range d.Headings {
		maxWidths[column] = runewidth.StringWidth(heading)
	}

	for _, row := range d.Rows {
		for column, value := range row {
			if column >= len(maxWidths) {
				break
			}
			if w := runewidth.StringWidth(value); w > maxWidths[column] {
				maxWidths[column] = w
			}
		}
	}

	return maxWidths
}

// splitLines splits on newlines, tolerating CRLF and a trailing newline.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
