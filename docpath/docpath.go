// Package docpath reads and immutably writes values at dotted paths inside
// nested structures of string-keyed maps and arrays.
//
// The path grammar is `segment ('.' segment)*` where a segment is either an
// object key or a non-negative integer array index, e.g. "sections.hero.title"
// or "pages.home.sections.2".
package docpath

import (
	"strconv"
	"strings"
)

// Split splits a dotted path into its segments. An empty path yields nil.
func Split(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

// Join joins segments into a dotted path.
func Join(segments ...string) string {
	return strings.Join(segments, ".")
}

// Index interprets a segment as an array index. It reports false for
// non-numeric segments.
func Index(segment string) (int, bool) {
	if segment == "" {
		return 0, false
	}
	i, err := strconv.Atoi(segment)
	if err != nil || i < 0 {
		return 0, false
	}
	return i, true
}

// Get walks the path through root and returns the value found there, or nil
// when any segment is missing. It never panics.
func Get(root any, path string) any {
	v, _ := Lookup(root, path)
	return v
}

// Lookup is Get with an explicit presence flag, distinguishing a stored nil
// from a missing path.
func Lookup(root any, path string) (any, bool) {
	cur := root
	for _, seg := range Split(path) {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, ok := Index(seg)
			if !ok || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set returns a new structure with value written at path. The input root is
// never mutated; containers along the path are copied, missing ones are
// created (maps for key segments, arrays for index segments).
func Set(root any, path string, value any) any {
	return SetWithBase(root, path, value, nil)
}

// SetWithBase is Set with base-document gap filling: when an array is
// constructed or extended at some depth, its length is
// max(len(existing), len(base), index+1) and cells not being written are
// taken from existing when present, else from the base structure at the same
// path. This keeps indices that only exist in the base document from being
// dropped by a write to a higher index.
func SetWithBase(root any, path string, value any, base any) any {
	segs := Split(path)
	if len(segs) == 0 {
		return value
	}
	return setSegments(root, segs, value, base)
}

func setSegments(cur any, segs []string, value any, base any) any {
	if len(segs) == 0 {
		return value
	}
	seg := segs[0]

	if idx, ok := Index(seg); ok {
		existing, _ := cur.([]any)
		baseArr, _ := base.([]any)
		n := len(existing)
		if len(baseArr) > n {
			n = len(baseArr)
		}
		if idx+1 > n {
			n = idx + 1
		}
		out := make([]any, n)
		for i := 0; i < n; i++ {
			switch {
			case i < len(existing) && existing[i] != nil:
				out[i] = existing[i]
			case i < len(baseArr):
				out[i] = baseArr[i]
			}
		}
		var childBase any
		if idx < len(baseArr) {
			childBase = baseArr[idx]
		}
		out[idx] = setSegments(out[idx], segs[1:], value, childBase)
		return out
	}

	existing, _ := cur.(map[string]any)
	out := make(map[string]any, len(existing)+1)
	for k, v := range existing {
		out[k] = v
	}
	var childBase any
	if bm, ok := base.(map[string]any); ok {
		childBase = bm[seg]
	}
	out[seg] = setSegments(out[seg], segs[1:], value, childBase)
	return out
}

// CloneValue deep-copies a nested structure of maps, arrays and scalars.
// Scalars are returned as-is.
func CloneValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = CloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = CloneValue(child)
		}
		return out
	default:
		return v
	}
}
