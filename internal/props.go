package internal

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
)

// PropsBag is the property bag handed to a component render call. Values may
// be strings, numbers, booleans, nested map[string]any / []any data, or
// opaque references. The cache never mutates a props bag.
type PropsBag = map[string]any

// LeafFunc receives each leaf reached during canonical traversal and returns
// the value to place at the same position in the rebuilt bag.
type LeafFunc func(path string, value any) (any, error)

// WalkLeaves traverses a props bag in canonical order and rebuilds it with
// the values returned by fn.
//
// Canonical order: map keys are visited in lexicographically sorted order at
// every nesting level, slice elements in index order. Traversal descends into
// map[string]any and []any only; any other value, including typed structs and
// maps, is treated as a leaf. Property paths use dot/bracket notation, e.g.
// "user.name" and "items[2].label".
func WalkLeaves(props PropsBag, fn LeafFunc) (PropsBag, error) {
	w := &walker{seen: make(map[uintptr]bool), fn: fn}
	return w.walkMap("", props)
}

type walker struct {
	seen map[uintptr]bool
	fn   LeafFunc
}

func (w *walker) walk(path string, v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		if len(t) > 0 {
			ptr := reflect.ValueOf(t).Pointer()
			if w.seen[ptr] {
				return nil, NewKeyDerivationError(path, "cyclic structure in props", nil)
			}
			w.seen[ptr] = true
			defer delete(w.seen, ptr)
		}
		return w.walkMap(path, t)
	case []any:
		if len(t) > 0 {
			ptr := reflect.ValueOf(t).Pointer()
			if w.seen[ptr] {
				return nil, NewKeyDerivationError(path, "cyclic structure in props", nil)
			}
			w.seen[ptr] = true
			defer delete(w.seen, ptr)
		}
		out := make([]any, len(t))
		for i, el := range t {
			nv, err := w.walk(fmt.Sprintf("%s[%d]", path, i), el)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	default:
		return w.fn(path, v)
	}
}

func (w *walker) walkMap(path string, m map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for _, k := range sortedKeys(m) {
		p := k
		if path != "" {
			p = path + "." + k
		}
		nv, err := w.walk(p, m[k])
		if err != nil {
			return nil, err
		}
		out[k] = nv
	}
	return out, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Stringify returns the string form of a leaf value as it should appear in
// rendered markup when substituted for a placeholder.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
