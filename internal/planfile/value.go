package planfile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a plan Value.
type Kind int

const (
	// KindNull is a JSON null leaf.
	KindNull Kind = iota
	// KindString is a string leaf.
	KindString
	// KindNumber is a numeric leaf. JSON numbers decode as float64.
	KindNumber
	// KindBool is a boolean leaf.
	KindBool
	// KindList is an ordered collection of values.
	KindList
	// KindMap is a string-keyed collection of values.
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return "invalid"
	}
}

// Value is an immutable node in the parsed plan tree. The zero value is
// null.
type Value struct {
	kind Kind
	str  string
	num  float64
	b    bool
	list []Value
	m    map[string]Value
}

// String constructs a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number constructs a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Bool constructs a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// List constructs a list value.
func List(items ...Value) Value { return Value{kind: KindList, list: items} }

// Map constructs a map value from the supplied entries.
func Map(entries map[string]Value) Value { return Value{kind: KindMap, m: entries} }

// Null is the absent/null value.
func Null() Value { return Value{kind: KindNull} }

// FromAny converts the output of encoding/json decoding into a Value tree.
// Unsupported Go types (never produced by the json package) map to null.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case string:
		return String(t)
	case float64:
		return Number(t)
	case bool:
		return Bool(t)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = FromAny(item)
		}
		return Value{kind: KindList, list: items}
	case map[string]any:
		entries := make(map[string]Value, len(t))
		for key, item := range t {
			entries[key] = FromAny(item)
		}
		return Value{kind: KindMap, m: entries}
	default:
		return Null()
	}
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is the null variant.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the string payload. Zero value for other kinds.
func (v Value) Str() string { return v.str }

// Num returns the numeric payload. Zero value for other kinds.
func (v Value) Num() float64 { return v.num }

// BoolVal returns the boolean payload. Zero value for other kinds.
func (v Value) BoolVal() bool { return v.b }

// Items returns the list elements, or nil for other kinds.
func (v Value) Items() []Value { return v.list }

// Len returns the element count for lists and maps, the rune-independent
// byte length for strings, and zero otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	case KindString:
		return len(v.str)
	default:
		return 0
	}
}

// Key returns the map entry for key and whether it exists.
func (v Value) Key(key string) (Value, bool) {
	if v.kind != KindMap {
		return Null(), false
	}
	item, ok := v.m[key]
	return item, ok
}

// Index returns the list element at i and whether it exists.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Null(), false
	}
	return v.list[i], true
}

// Keys returns the sorted map keys, or nil for other kinds.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for key := range v.m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// IsEmpty reports whether the value is null, an empty string, or an empty
// container.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == ""
	case KindList:
		return len(v.list) == 0
	case KindMap:
		return len(v.m) == 0
	default:
		return false
	}
}

// Equal reports deep equality. When ordered is false, lists compare as
// multisets: every element must have a matching partner regardless of
// position.
func (v Value) Equal(other Value, ordered bool) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindNumber:
		return v.num == other.num
	case KindBool:
		return v.b == other.b
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		if ordered {
			for i := range v.list {
				if !v.list[i].Equal(other.list[i], ordered) {
					return false
				}
			}
			return true
		}
		matched := make([]bool, len(other.list))
		for _, item := range v.list {
			found := false
			for j, candidate := range other.list {
				if matched[j] {
					continue
				}
				if item.Equal(candidate, ordered) {
					matched[j] = true
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for key, item := range v.m {
			counterpart, ok := other.m[key]
			if !ok || !item.Equal(counterpart, ordered) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Format renders the value for diagnostic messages: scalars verbatim,
// containers in a compact literal form with map keys sorted.
func (v Value) Format() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.Format()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindMap:
		keys := v.Keys()
		parts := make([]string, len(keys))
		for i, key := range keys {
			parts[i] = fmt.Sprintf("%s: %s", key, v.m[key].Format())
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "invalid"
	}
}
