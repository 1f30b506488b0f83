package siteedit

import (
	"context"

	"github.com/indyavik/theme-1-multi-site/docpath"
	"github.com/indyavik/theme-1-multi-site/schema"
)

// ArrayEditor performs structural edits on repeatable lists inside section
// or site data. Structural edits write the whole array into the overlay as
// a complete replacement; per-index patches recorded earlier at the same
// path fold into that replacement.
type ArrayEditor struct {
	editor *Editor
}

// CanAddItem reports whether an item may be appended at path: the path must
// resolve to an editable array below its declared item limit.
func (a *ArrayEditor) CanAddItem(path string) bool {
	arr := a.schemaAt(path)
	if arr == nil || !arr.IsEditable() {
		return false
	}
	return arr.MaxItems == 0 || len(a.items(path)) < arr.MaxItems
}

// AddItem appends a schema-derived item to the array at path. It reports
// false without changing anything when the path is not an editable array or
// the array is full.
func (a *ArrayEditor) AddItem(ctx context.Context, path string) (bool, error) {
	if !a.CanAddItem(path) {
		return false, nil
	}
	arr := a.schemaAt(path)
	items := a.items(path)
	out := make([]any, 0, len(items)+1)
	out = append(out, cloneItems(items)...)
	out = append(out, schema.DeriveItem(arr.ItemSchema()))
	return true, a.editor.writeArray(ctx, path, out)
}

// RemoveItem deletes the element at index of the array at path. It reports
// false when the path is not an editable array or the index is out of
// range.
func (a *ArrayEditor) RemoveItem(ctx context.Context, path string, index int) (bool, error) {
	arr := a.schemaAt(path)
	if arr == nil || !arr.IsEditable() {
		return false, nil
	}
	items := a.items(path)
	if index < 0 || index >= len(items) {
		return false, nil
	}
	out := make([]any, 0, len(items)-1)
	out = append(out, cloneItems(items[:index])...)
	out = append(out, cloneItems(items[index+1:])...)
	return true, a.editor.writeArray(ctx, path, out)
}

// MoveItem removes the element at from and reinserts it at to, shifting the
// elements between them. It reports false when the path is not an editable
// array, either index is out of range, or the indices are equal.
func (a *ArrayEditor) MoveItem(ctx context.Context, path string, from, to int) (bool, error) {
	arr := a.schemaAt(path)
	if arr == nil || !arr.IsEditable() {
		return false, nil
	}
	items := a.items(path)
	n := len(items)
	if from == to || from < 0 || from >= n || to < 0 || to >= n {
		return false, nil
	}
	out := cloneItems(items)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]any{moved}, out[to:]...)...)
	return true, a.editor.writeArray(ctx, path, out)
}

// schemaAt resolves the array schema at path, or nil when the path does not
// govern an array.
func (a *ArrayEditor) schemaAt(path string) *schema.ArrayField {
	arr, _ := a.editor.FieldSchemaAt(path).(*schema.ArrayField)
	return arr
}

// items reads the merged current array at path.
func (a *ArrayEditor) items(path string) []any {
	arr, _ := a.editor.rawValue(path).([]any)
	return arr
}

func cloneItems(items []any) []any {
	out := make([]any, len(items))
	for i, v := range items {
		out[i] = docpath.CloneValue(v)
	}
	return out
}
