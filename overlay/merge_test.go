package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeMaps(t *testing.T) {
	base := map[string]any{
		"a": "base",
		"b": map[string]any{"x": 1, "y": 2},
	}
	over := map[string]any{
		"b": map[string]any{"y": 20},
		"c": "new",
	}

	out := Merge(base, over).(map[string]any)

	assert.Equal(t, "base", out["a"])
	assert.Equal(t, 1, out["b"].(map[string]any)["x"])
	assert.Equal(t, 20, out["b"].(map[string]any)["y"])
	assert.Equal(t, "new", out["c"])

	// Inputs are untouched.
	assert.Equal(t, 2, base["b"].(map[string]any)["y"])
}

func TestMergeReplacementArray(t *testing.T) {
	base := map[string]any{"items": []any{"a", "b", "c"}}
	over := map[string]any{"items": []any{"x"}}

	out := Merge(base, over).(map[string]any)

	assert.Equal(t, []any{"x"}, out["items"], "plain arrays replace wholesale")
}

func TestMergeIndexPatch(t *testing.T) {
	base := map[string]any{"items": []any{
		map[string]any{"name": "one", "price": "$1"},
		map[string]any{"name": "two", "price": "$2"},
	}}
	over := map[string]any{"items": IndexPatch{
		1: map[string]any{"name": "TWO"},
	}}

	out := Merge(base, over).(map[string]any)
	items := out["items"].([]any)

	require.Len(t, items, 2)
	assert.Equal(t, "one", items[0].(map[string]any)["name"])
	assert.Equal(t, "TWO", items[1].(map[string]any)["name"])
	assert.Equal(t, "$2", items[1].(map[string]any)["price"], "patch entries merge into base items")
}

func TestMergeIndexPatchAtIndexZeroKeepsSiblings(t *testing.T) {
	base := map[string]any{"items": []any{"a", "b", "c"}}
	over := map[string]any{"items": IndexPatch{0: "A"}}

	out := Merge(base, over).(map[string]any)

	assert.Equal(t, []any{"A", "b", "c"}, out["items"])
}

func TestMergeIndexPatchExtendsPastBase(t *testing.T) {
	base := map[string]any{"items": []any{"a"}}
	over := map[string]any{"items": IndexPatch{2: "c"}}

	out := Merge(base, over).(map[string]any)

	assert.Equal(t, []any{"a", nil, "c"}, out["items"])
}

func TestMergeIndexPatchWithoutBase(t *testing.T) {
	out := Merge(nil, map[string]any{"items": IndexPatch{1: "b"}}).(map[string]any)

	assert.Equal(t, []any{nil, "b"}, out["items"])
}

func TestMergeScalarWins(t *testing.T) {
	assert.Equal(t, "over", Merge("base", "over"))
	assert.Equal(t, map[string]any{"k": "v"}, Merge(map[string]any{"k": "v"}, nil))
}

func TestMergeDoesNotAliasBase(t *testing.T) {
	base := map[string]any{"nested": map[string]any{"k": "v"}}

	out := Merge(base, map[string]any{}).(map[string]any)
	out["nested"].(map[string]any)["k"] = "changed"

	assert.Equal(t, "v", base["nested"].(map[string]any)["k"])
}
