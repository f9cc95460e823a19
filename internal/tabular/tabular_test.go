package tabular

import (
	"errors"
	"reflect"
	"testing"

	"github.com/Zigazou/cliquetis/internal/types"
)

func sampleRows() [][]string {
	return [][]string{
		{"name", "size", "kind"},
		{"alpha", "12", "doc"},
		{"beta", "3.5", "doc"},
		{"gamma", "7", "img"},
	}
}

func TestImport_FewerThanTwoRowsIsNoOp(t *testing.T) {
	for _, rows := range [][][]string{nil, {}, {{"only", "headings"}}} {
		d := New().Import(rows)

		if len(d.Headings) != 0 {
			t.Errorf("Expected empty headings, got %v", d.Headings)
		}
		if len(d.Types) != 0 || len(d.MaxWidths) != 0 {
			t.Errorf("Expected empty types/widths, got %v / %v", d.Types, d.MaxWidths)
		}
		if len(d.Rows) != 0 {
			t.Errorf("Expected no rows, got %v", d.Rows)
		}
	}
}

func TestImport_ColumnTypeInference(t *testing.T) {
	d := New().Import([][]string{
		{"a", "b", "c", "d"},
		{"1", "x", "", "2.5"},
		{"2", "3", " ", "-1e3"},
		{"3.14", "y", "", "nope"},
	})

	expected := []ColumnType{Number, String, Number, String}
	if !reflect.DeepEqual(d.Types, expected) {
		t.Errorf("Expected types %v, got %v", expected, d.Types)
	}
}

func TestImport_BlankCellsDoNotForceString(t *testing.T) {
	d := New().Import([][]string{
		{"n"},
		{""},
		{"  "},
	})

	if d.Types[0] != Number {
		t.Errorf("Expected all-blank column to stay Number, got %v", d.Types[0])
	}
}

func TestImport_MaxWidthsIncludeHeading(t *testing.T) {
	d := New().Import(sampleRows())

	expected := []int{5, 4, 4}
	if !reflect.DeepEqual(d.MaxWidths, expected) {
		t.Errorf("Expected widths %v, got %v", expected, d.MaxWidths)
	}
}

func TestImportRaw_InvalidUTF8(t *testing.T) {
	err := New().ImportRaw([]byte{0xff, 0xfe, 0xfd}, "", nil)

	var decodeErr *types.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Expected DecodeError, got %v", err)
	}
}

func TestImportRaw_DefaultSeparatorIsTab(t *testing.T) {
	d := New()
	if err := d.ImportRaw([]byte("a\tb\n1\t2\n"), "", nil); err != nil {
		t.Fatalf("ImportRaw failed: %v", err)
	}

	if !reflect.DeepEqual(d.Headings, []string{"a", "b"}) {
		t.Errorf("Expected headings [a b], got %v", d.Headings)
	}
	if !reflect.DeepEqual(d.Rows, [][]string{{"1", "2"}}) {
		t.Errorf("Expected one row [1 2], got %v", d.Rows)
	}
}

func TestGroupBy_RemovesColumnInLockStep(t *testing.T) {
	d := New().Import(sampleRows())

	if err := d.GroupBy(2); err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}

	if len(d.Headings) != 2 || len(d.Types) != 2 || len(d.MaxWidths) != 2 {
		t.Fatalf("Expected 2 columns after grouping, got %d/%d/%d",
			len(d.Headings), len(d.Types), len(d.MaxWidths))
	}
	if !reflect.DeepEqual(d.Headings, []string{"name", "size"}) {
		t.Errorf("Expected headings [name size], got %v", d.Headings)
	}
	if !d.Grouped() {
		t.Error("Expected table to be grouped")
	}
}

func TestGroupBy_FirstSeenOrderAndMembership(t *testing.T) {
	d := New().Import(sampleRows())

	if err := d.GroupBy(2); err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}

	if !reflect.DeepEqual(d.GroupOrder, []string{"doc", "img"}) {
		t.Errorf("Expected group order [doc img], got %v", d.GroupOrder)
	}
	if !reflect.DeepEqual(d.Groups["doc"], [][]string{{"alpha", "12"}, {"beta", "3.5"}}) {
		t.Errorf("Unexpected doc group rows: %v", d.Groups["doc"])
	}
	if !reflect.DeepEqual(d.Groups["img"], [][]string{{"gamma", "7"}}) {
		t.Errorf("Unexpected img group rows: %v", d.Groups["img"])
	}
}

func TestGroupBy_OutOfRange(t *testing.T) {
	d := New().Import(sampleRows())

	err := d.GroupBy(3)

	var groupErr *types.GroupColumnError
	if !errors.As(err, &groupErr) {
		t.Fatalf("Expected GroupColumnError, got %v", err)
	}
	if groupErr.Column != 3 || groupErr.Width != 3 {
		t.Errorf("Expected column 3 of 3, got column %d of %d", groupErr.Column, groupErr.Width)
	}
}

func collect(d *Data) []Item {
	items := []Item{}
	for item := range d.InsertableItems() {
		items = append(items, item)
	}
	return items
}

func TestInsertableItems_Flat(t *testing.T) {
	d := New().Import(sampleRows())

	items := collect(d)

	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	for i, item := range items {
		if item.Parent != "" || item.Row == nil {
			t.Errorf("Item %d: expected root data row, got %+v", i, item)
		}
	}
}

func TestInsertableItems_GroupedNoInterleaving(t *testing.T) {
	d := New().Import(sampleRows())
	if err := d.GroupBy(2); err != nil {
		t.Fatalf("GroupBy failed: %v", err)
	}

	items := collect(d)

	expected := []Item{
		{Parent: "", Label: "doc"},
		{Parent: "doc", Row: []string{"alpha", "12"}},
		{Parent: "doc", Row: []string{"beta", "3.5"}},
		{Parent: "", Label: "img"},
		{Parent: "img", Row: []string{"gamma", "7"}},
	}
	if !reflect.DeepEqual(items, expected) {
		t.Errorf("Expected %+v, got %+v", expected, items)
	}
}

func TestInsertableItems_Restartable(t *testing.T) {
	d := New().Import(sampleRows())

	first := collect(d)
	second := collect(d)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical sequences, got %+v then %+v", first, second)
	}
}
