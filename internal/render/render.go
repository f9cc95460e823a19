// Package render converts decoded JSON values and tabular data into
// node-insertion operations for a tree/table widget. It knows nothing
// about the widget itself: callers provide the insertion capability.
package render

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Zigazou/cliquetis/internal/ojson"
)

// NodeID identifies an inserted node. Root is the implicit tree root.
type NodeID string

// Root is the parent of top-level nodes.
const Root NodeID = ""

// Inserter is the capability the UI layer supplies: insert one node under
// a parent and return its id.
type Inserter interface {
	Insert(parent NodeID, label string, values []string, open bool) NodeID
}

// Options parameterizes a tree walk.
type Options struct {
	// Collapsed makes container nodes start folded.
	Collapsed bool

	// KeyValues names the fields of the repeated-record shortcut. An object
	// containing all of them renders as a single row: the first field
	// labels the node, the rest become row values, and descent stops.
	KeyValues []string
}

// Walk emits insertion operations that fully represent value as a tree,
// depth first, preserving source ordering. value is the shape produced by
// ojson.Decode: *ojson.Object, []any or a scalar.
func Walk(value any, opts Options, ins Inserter) {
	walk(value, Root, opts, ins)
}

func walk(value any, parent NodeID, opts Options, ins Inserter) {
	if obj, ok := asRecord(value, opts.KeyValues); ok {
		label, _ := obj.Get(opts.KeyValues[0])
		values := make([]string, 0, len(opts.KeyValues)-1)
		for _, name := range opts.KeyValues[1:] {
			v, _ := obj.Get(name)
			values = append(values, formatScalar(v))
		}
		ins.Insert(parent, formatScalar(label), values, false)
		return
	}

	switch v := value.(type) {
	case *ojson.Object:
		for _, member := range v.Members {
			if count, container := itemCount(member.Value); container {
				id := ins.Insert(parent, member.Key, []string{count}, !opts.Collapsed)
				walk(member.Value, id, opts, ins)
			} else {
				ins.Insert(parent, member.Key, []string{formatScalar(member.Value)}, false)
			}
		}

	case []any:
		for index, element := range v {
			if _, record := asRecord(element, opts.KeyValues); record {
				// Records flatten under the current parent, no index node.
				walk(element, parent, opts, ins)
			} else if count, container := itemCount(element); container {
				id := ins.Insert(parent, strconv.Itoa(index), []string{count}, !opts.Collapsed)
				walk(element, id, opts, ins)
			} else {
				ins.Insert(parent, strconv.Itoa(index), []string{formatScalar(element)}, false)
			}
		}

	default:
		// A bare scalar, only reachable at the true root.
		ins.Insert(parent, "", []string{formatScalar(value)}, false)
	}
}

// asRecord reports whether value is an object containing every key-values
// field name.
func asRecord(value any, keyValues []string) (*ojson.Object, bool) {
	if len(keyValues) == 0 {
		return nil, false
	}
	obj, ok := value.(*ojson.Object)
	if !ok {
		return nil, false
	}
	return obj, obj.Has(keyValues...)
}

// itemCount returns the synthetic "<count> item(s)" value for containers.
func itemCount(value any) (string, bool) {
	switch v := value.(type) {
	case *ojson.Object:
		return fmt.Sprintf("%d item(s)", v.Len()), true
	case []any:
		return fmt.Sprintf("%d item(s)", len(v)), true
	default:
		return "", false
	}
}

func formatScalar(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
