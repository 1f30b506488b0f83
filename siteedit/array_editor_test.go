package siteedit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const itemsPath = "sections.services-1.items"

func itemNames(t *testing.T, e *Editor) []string {
	t.Helper()
	items, ok := e.Value(itemsPath).([]any)
	require.True(t, ok)
	names := make([]string, 0, len(items))
	for _, v := range items {
		m, ok := v.(map[string]any)
		require.True(t, ok)
		name, _ := m["name"].(string)
		names = append(names, name)
	}
	return names
}

func TestArrayEditorAddItemDerivesFromSchema(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	arrays := f.editor.Arrays()

	require.True(t, arrays.CanAddItem(itemsPath))
	ok, err := arrays.AddItem(ctx, itemsPath)
	require.NoError(t, err)
	require.True(t, ok)

	items := f.editor.Value(itemsPath).([]any)
	require.Len(t, items, 4)
	added := items[3].(map[string]any)
	assert.Equal(t, "New item", added["name"])
	assert.Equal(t, "$0.00", added["price"])
}

func TestArrayEditorAddItemRespectsMaxItems(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	arrays := f.editor.Arrays()

	ok, err := arrays.AddItem(ctx, itemsPath)
	require.NoError(t, err)
	require.True(t, ok)

	// The schema caps the list at four items.
	assert.False(t, arrays.CanAddItem(itemsPath))
	ok, err = arrays.AddItem(ctx, itemsPath)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Len(t, f.editor.Value(itemsPath).([]any), 4)
}

func TestArrayEditorAddItemRejectsNonArrayPath(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	arrays := f.editor.Arrays()

	ok, err := arrays.AddItem(ctx, "sections.hero.title")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, arrays.CanAddItem("sections.hero.title"))
}

func TestArrayEditorRemoveItem(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	arrays := f.editor.Arrays()

	ok, err := arrays.RemoveItem(ctx, itemsPath, 1)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"Drain cleaning", "Water heaters"}, itemNames(t, f.editor))

	ok, err = arrays.RemoveItem(ctx, itemsPath, 5)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArrayEditorMoveItem(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	arrays := f.editor.Arrays()

	ok, err := arrays.MoveItem(ctx, itemsPath, 0, 2)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []string{"Leak repair", "Water heaters", "Drain cleaning"}, itemNames(t, f.editor))

	ok, err = arrays.MoveItem(ctx, itemsPath, 1, 1)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = arrays.MoveItem(ctx, itemsPath, -1, 0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArrayEditorStructuralEditFoldsEarlierItemPatch(t *testing.T) {
	ctx := context.Background()
	f := newTestFixture(t)
	arrays := f.editor.Arrays()

	require.NoError(t, f.editor.UpdateField(ctx, itemsPath+".1.price", "$175"))
	ok, err := arrays.RemoveItem(ctx, itemsPath, 0)
	require.NoError(t, err)
	require.True(t, ok)

	// The patched item survives the removal at its shifted index.
	items := f.editor.Value(itemsPath).([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Leak repair", first["name"])
	assert.Equal(t, "$175", first["price"])
}
