// Package overlay holds an in-memory sparse tree of path-scoped edits
// layered over an immutable base document, and the merge rules that combine
// the two into the live view.
//
// Array intent in the overlay is always explicit: a plain []any is a
// complete replacement written by structural operations, and an IndexPatch
// is a per-index patch written by single-item field edits. Merge never
// infers which is which from array shape.
package overlay

import (
	"github.com/indyavik/theme-1-multi-site/docpath"
)

// IndexPatch is an explicit per-index patch on an array value. Indices not
// present keep the base document's elements, including index 0.
type IndexPatch map[int]any

// Store is the sparse edit tree for one session. It grows monotonically
// with edits and is only emptied by Discard.
type Store struct {
	root map[string]any
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{root: map[string]any{}}
}

// Set writes value at path. The base tree fills array gaps so that writing
// one index of an array does not drop indices that only exist in the base
// document; arrays written this way are complete replacements.
func (s *Store) Set(path string, value any, base any) {
	if path == "" {
		return
	}
	out := docpath.SetWithBase(s.root, path, value, base)
	if m, ok := out.(map[string]any); ok {
		s.root = m
	}
}

// SetItem records a single-item edit at index within the array at path,
// as an explicit IndexPatch. An existing complete-replacement array at the
// path is patched directly instead.
func (s *Store) SetItem(path string, index int, value any) {
	if path == "" || index < 0 {
		return
	}
	existing, _ := docpath.Lookup(s.root, path)
	switch cur := existing.(type) {
	case []any:
		n := len(cur)
		if index+1 > n {
			n = index + 1
		}
		out := make([]any, n)
		copy(out, cur)
		out[index] = value
		s.Set(path, out, nil)
	case IndexPatch:
		patch := make(IndexPatch, len(cur)+1)
		for i, v := range cur {
			patch[i] = v
		}
		patch[index] = value
		s.Set(path, patch, nil)
	default:
		s.Set(path, IndexPatch{index: value}, nil)
	}
}

// Item returns the pending patch entry for index at path, if any.
func (s *Store) Item(path string, index int) (any, bool) {
	existing, ok := docpath.Lookup(s.root, path)
	if !ok {
		return nil, false
	}
	switch cur := existing.(type) {
	case []any:
		if index >= 0 && index < len(cur) {
			return cur[index], true
		}
	case IndexPatch:
		v, ok := cur[index]
		return v, ok
	}
	return nil, false
}

// Value returns the pending edit at path along with a presence flag.
func (s *Store) Value(path string) (any, bool) {
	return docpath.Lookup(s.root, path)
}

// Subtree returns the pending edits below path as a map, or nil when none
// exist.
func (s *Store) Subtree(path string) map[string]any {
	v, ok := docpath.Lookup(s.root, path)
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}

// PurgeSubtree removes every pending edit at or below path, so removing a
// section also removes edits that could resurrect it.
func (s *Store) PurgeSubtree(path string) {
	segs := docpath.Split(path)
	if len(segs) == 0 {
		return
	}
	cur := s.root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			return
		}
		cur = next
	}
	delete(cur, segs[len(segs)-1])
}

// Snapshot returns a deep copy of the overlay tree, safe to merge and
// serialize while further edits continue.
func (s *Store) Snapshot() map[string]any {
	return cloneValue(s.root).(map[string]any)
}

// Empty reports whether the overlay holds no edits.
func (s *Store) Empty() bool {
	return len(s.root) == 0
}

// Discard drops every pending edit.
func (s *Store) Discard() {
	s.root = map[string]any{}
}

// cloneValue deep-copies an overlay tree, preserving IndexPatch values.
func cloneValue(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = cloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = cloneValue(child)
		}
		return out
	case IndexPatch:
		out := make(IndexPatch, len(node))
		for i, child := range node {
			out[i] = cloneValue(child)
		}
		return out
	default:
		return v
	}
}
