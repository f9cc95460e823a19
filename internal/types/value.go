package types

// Value is a resolved field value. Most fields always carry a string; a
// tri-state boolean may resolve to Absent, which removes its argument from
// the expanded command line entirely.
type Value struct {
	str     string
	present bool
}

// String wraps a plain string value.
func String(s string) Value {
	return Value{str: s, present: true}
}

// Absent is the null marker produced by an unset tri-state boolean or a
// null on/off value in the configuration.
func Absent() Value {
	return Value{}
}

// IsAbsent reports whether the value is the null marker.
func (v Value) IsAbsent() bool {
	return !v.present
}

// String returns the wrapped string, or "" for an absent value. Absent and
// String("") compare different through IsAbsent.
func (v Value) String() string {
	return v.str
}

// TriState is the live state of a boolean widget: unset, checked or
// unchecked. The unset state is distinguishable from both configured
// outputs, which a plain bool cannot represent.
type TriState int

const (
	TriUnset TriState = iota
	TriOn
	TriOff
)

// Resolve maps the widget state to the configured on/off output values.
// TriUnset resolves to Absent.
func (t TriState) Resolve(on, off Value) Value {
	switch t {
	case TriOn:
		return on
	case TriOff:
		return off
	default:
		return Absent()
	}
}

// Next cycles unset -> on -> off -> unset.
func (t TriState) Next() TriState {
	switch t {
	case TriUnset:
		return TriOn
	case TriOn:
		return TriOff
	default:
		return TriUnset
	}
}
