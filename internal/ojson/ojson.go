// Package ojson decodes JSON while preserving object member order.
// encoding/json maps lose declaration order, but both the form layout and
// the tree rendering must follow the source document, so objects are
// decoded token by token into an ordered member list.
package ojson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Zigazou/cliquetis/internal/types"
)

// Object is a JSON object with members in source order.
type Object struct {
	Members []Member
}

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Get returns the value for a key and whether it is present.
func (o *Object) Get(key string) (any, bool) {
	for _, m := range o.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether the object contains every given key.
func (o *Object) Has(keys ...string) bool {
	for _, key := range keys {
		if _, ok := o.Get(key); !ok {
			return false
		}
	}
	return len(keys) > 0
}

// Len returns the member count.
func (o *Object) Len() int {
	return len(o.Members)
}

// MarshalJSON re-encodes the object with its members in source order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Decode parses a complete JSON document. Objects decode to *Object,
// arrays to []any, numbers to json.Number, and the remaining scalars to
// string, bool or nil.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	value, err := decodeValue(dec)
	if err != nil {
		return nil, &types.DecodeError{Format: "json", Err: err}
	}

	// Reject trailing garbage after the first value.
	if _, err := dec.Token(); err != io.EOF {
		return nil, &types.DecodeError{Format: "json", Err: fmt.Errorf("unexpected data after JSON value")}
	}

	return value, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	default:
		// string, json.Number, bool or nil.
		return tok, nil
	}
}

func decodeObject(dec *json.Decoder) (*Object, error) {
	obj := &Object{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}

		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		obj.Members = append(obj.Members, Member{Key: key, Value: value})
	}

	// Consume the closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return obj, nil
}

func decodeArray(dec *json.Decoder) ([]any, error) {
	arr := []any{}
	for dec.More() {
		value, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}
		arr = append(arr, value)
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}
