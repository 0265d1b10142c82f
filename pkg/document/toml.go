package document

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ParseTOML decodes a TOML document. Table keys keep the order in which they
// first appear in the text.
func ParseTOML(data []byte) (Value, error) {
	var raw map[string]any
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return Value{}, invalid(FormatTOML, err)
	}

	order := make(map[string]int)
	for i, k := range md.Keys() {
		joined := strings.Join(k, "\x00")
		if _, ok := order[joined]; !ok {
			order[joined] = i
		}
	}
	v, err := fromTOML(raw, nil, order, 0)
	if err != nil {
		return Value{}, invalid(FormatTOML, err)
	}
	return v, nil
}

func fromTOML(x any, path []string, order map[string]int, depth int) (Value, error) {
	switch x.(type) {
	case map[string]any, []map[string]any, []any:
		if depth >= MaxDepth {
			return Value{}, fmt.Errorf("nesting deeper than %d levels", MaxDepth)
		}
	}
	switch t := x.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		rank := func(k string) int {
			if i, ok := order[strings.Join(append(slices.Clip(path), k), "\x00")]; ok {
				return i
			}
			return len(order)
		}
		slices.SortStableFunc(keys, func(a, b string) int {
			if ra, rb := rank(a), rank(b); ra != rb {
				return ra - rb
			}
			return strings.Compare(a, b)
		})
		members := make([]Member, len(keys))
		for i, k := range keys {
			v, err := fromTOML(t[k], append(slices.Clip(path), k), order, depth+1)
			if err != nil {
				return Value{}, err
			}
			members[i] = Member{Key: k, Value: v}
		}
		return Object(members...), nil
	case []map[string]any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := fromTOML(e, path, order, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := fromTOML(e, path, order, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Array(elems...), nil
	case int64:
		return Number(float64(t)), nil
	case float64:
		return Number(t), nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case time.Time:
		return String(t.Format(time.RFC3339Nano)), nil
	case fmt.Stringer:
		return String(t.String()), nil
	default:
		return FromAny(t), nil
	}
}
