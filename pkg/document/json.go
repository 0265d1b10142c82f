package document

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
)

// ParseJSON decodes a single JSON value, keeping object key order.
// Trailing non-whitespace content after the value is an error.
func ParseJSON(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeJSON(dec, 0)
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Value{}, invalid(FormatJSON, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
		}
		return Value{}, invalid(FormatJSON, err)
	}
	return v, nil
}

func decodeJSON(dec *json.Decoder, depth int) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if (t == '{' || t == '[') && depth >= MaxDepth {
			return Value{}, fmt.Errorf("nesting deeper than %d levels at offset %d", MaxDepth, dec.InputOffset())
		}
		switch t {
		case '{':
			return decodeJSONObject(dec, depth+1)
		case '[':
			return decodeJSONArray(dec, depth+1)
		default:
			return Value{}, fmt.Errorf("unexpected %q at offset %d", t, dec.InputOffset())
		}
	case json.Number:
		f, err := strconv.ParseFloat(string(t), 64)
		if err != nil {
			// Out-of-range literals overflow to ±Inf like other parsers do.
			if ne, ok := err.(*strconv.NumError); !ok || ne.Err != strconv.ErrRange {
				return Value{}, err
			}
		}
		return Number(f), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null(), nil
	default:
		return Value{}, fmt.Errorf("unexpected token %v", t)
	}
}

func decodeJSONObject(dec *json.Decoder, depth int) (Value, error) {
	var members []Member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		val, err := decodeJSON(dec, depth)
		if err != nil {
			return Value{}, err
		}
		members = append(members, Member{Key: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	obj := Object(members...)
	sortIndexKeys(obj.members)
	return obj, nil
}

func decodeJSONArray(dec *json.Decoder, depth int) (Value, error) {
	var elems []Value
	for dec.More() {
		val, err := decodeJSON(dec, depth)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(elems...), nil
}

// sortIndexKeys moves array-index keys ("0", "1", ... up to 2^32-2, no
// leading zeros) to the front in ascending numeric order. Other keys keep
// their relative order. This is the property order JavaScript gives a
// parsed object.
func sortIndexKeys(members []Member) {
	slices.SortStableFunc(members, func(a, b Member) int {
		ia, aok := arrayIndex(a.Key)
		ib, bok := arrayIndex(b.Key)
		switch {
		case aok && bok:
			return cmp.Compare(ia, ib)
		case aok:
			return -1
		case bok:
			return 1
		default:
			return 0
		}
	})
}

func arrayIndex(key string) (uint64, bool) {
	n, err := strconv.ParseUint(key, 10, 32)
	if err != nil || n == math.MaxUint32 || strconv.FormatUint(n, 10) != key {
		return 0, false
	}
	return n, true
}
