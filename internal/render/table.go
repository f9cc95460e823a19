package render

import "github.com/Zigazou/cliquetis/internal/tabular"

// TableSink extends Inserter with the column capabilities a table widget
// needs.
type TableSink interface {
	Inserter
	SetColumnHeading(column int, name string)
	SetColumnWidth(column int, width int)
}

// WalkTable emits column metadata and row insertions for a tabular model.
// Grouped tables produce one open header node per group with its rows
// underneath; flat tables insert every row at the root.
func WalkTable(data *tabular.Data, sink TableSink) {
	for column, name := range data.Headings {
		sink.SetColumnHeading(column, name)
		sink.SetColumnWidth(column, data.MaxWidths[column])
	}

	groupIDs := make(map[string]NodeID)
	for item := range data.InsertableItems() {
		if item.Row == nil {
			groupIDs[item.Label] = sink.Insert(Root, item.Label, nil, true)
			continue
		}

		parent := Root
		if item.Parent != "" {
			parent = groupIDs[item.Parent]
		}
		sink.Insert(parent, "", item.Row, false)
	}
}
