package document

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a [Value].
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Member is one key/value pair of an object.
type Member struct {
	Key   string
	Value Value
}

// Value is an immutable parsed document node.
// The zero Value is null.
type Value struct {
	kind    Kind
	b       bool
	num     float64
	str     string
	elems   []Value
	members []Member
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an array holding elems in order.
func Array(elems ...Value) Value {
	return Value{kind: KindArray, elems: slices.Clone(elems)}
}

// Object returns an object holding members in order.
// A repeated key replaces the earlier value but keeps the earlier position.
func Object(members ...Member) Value {
	out := make([]Member, 0, len(members))
	index := make(map[string]int, len(members))
	for _, m := range members {
		if i, ok := index[m.Key]; ok {
			out[i].Value = m.Value
			continue
		}
		index[m.Key] = len(out)
		out = append(out, m)
	}
	return Value{kind: KindObject, members: out}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsContainer reports whether v is an object or an array.
func (v Value) IsContainer() bool {
	return v.kind == KindObject || v.kind == KindArray
}

// Len returns the number of members or elements, or 0 for primitives.
func (v Value) Len() int {
	switch v.kind {
	case KindObject:
		return len(v.members)
	case KindArray:
		return len(v.elems)
	default:
		return 0
	}
}

// Members returns the object members in document order.
// It returns nil for non-objects. Callers must not modify the result.
func (v Value) Members() []Member {
	if v.kind != KindObject {
		return nil
	}
	return v.members
}

// Elements returns the array elements in index order.
// It returns nil for non-arrays. Callers must not modify the result.
func (v Value) Elements() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.elems
}

// Get returns the member value for key.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.Members() {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Index returns the element at i.
func (v Value) Index(i int) (Value, bool) {
	elems := v.Elements()
	if i < 0 || i >= len(elems) {
		return Value{}, false
	}
	return elems[i], true
}

// BoolValue returns the boolean held by v.
func (v Value) BoolValue() bool { return v.b }

// NumberValue returns the number held by v.
func (v Value) NumberValue() float64 { return v.num }

// StringValue returns the string held by v.
func (v Value) StringValue() string { return v.str }

// Text renders v as it appears on a primitive label.
// Containers render as "[object Object]" and a comma-joined element list,
// matching string coercion in browsers.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.num)
	case KindString:
		return v.str
	case KindArray:
		parts := make([]string, len(v.elems))
		for i, e := range v.elems {
			if e.kind != KindNull {
				parts[i] = e.Text()
			}
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	default:
		panic(fmt.Sprintf("document: unknown kind %d", v.kind))
	}
}

// FormatNumber renders f in the shortest form that round-trips, switching
// to exponent notation below 1e-6 and from 1e21 upwards.
func FormatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case f == 0:
		return "0"
	}

	abs := math.Abs(f)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign := exp[0]
		exp = strings.TrimLeft(exp[1:], "0")
		if exp == "" {
			exp = "0"
		}
		return mant + "e" + string(sign) + exp
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FromAny converts a decoded Go value into a Value.
// Maps are ordered by key since Go maps carry no order. Unknown types are
// rendered with fmt and stored as strings.
func FromAny(x any) Value {
	switch t := x.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case bool:
		return Bool(t)
	case string:
		return String(t)
	case float64:
		return Number(t)
	case float32:
		return Number(float64(t))
	case int:
		return Number(float64(t))
	case int64:
		return Number(float64(t))
	case int32:
		return Number(float64(t))
	case uint64:
		return Number(float64(t))
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			elems[i] = FromAny(e)
		}
		return Array(elems...)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		members := make([]Member, len(keys))
		for i, k := range keys {
			members[i] = Member{Key: k, Value: FromAny(t[k])}
		}
		return Object(members...)
	default:
		return String(fmt.Sprint(t))
	}
}
