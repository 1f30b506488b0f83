package sitestorage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/indyavik/theme-1-multi-site/common"
	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

func testDoc() *sitedoc.Document {
	return sitedoc.New(map[string]any{
		"meta": map[string]any{"defaultLocale": "en"},
		"site": map[string]any{"brand": "Acme"},
	})
}

func TestMemoryAdapter(t *testing.T) {
	ctx := context.Background()
	a := NewMemoryAdapter()

	_, err := a.Get(ctx, "missing")
	assert.True(t, common.IsNotFound(err))

	require.NoError(t, a.Put(ctx, "k", []byte("v")))
	data, err := a.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), data)

	keys, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"k"}, keys)

	require.NoError(t, a.Delete(ctx, "k"))
	_, err = a.Get(ctx, "k")
	assert.True(t, common.IsNotFound(err))

	// Deleting a missing key is fine.
	require.NoError(t, a.Delete(ctx, "k"))
}

func TestFileAdapter(t *testing.T) {
	ctx := context.Background()
	a, err := NewFileAdapter(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, a.Put(ctx, "site:draft:acme", []byte(`{"x":1}`)))

	data, err := a.Get(ctx, "site:draft:acme")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), data)

	keys, err := a.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"site:draft:acme"}, keys)

	_, err = a.Get(ctx, "other")
	assert.True(t, common.IsNotFound(err))

	require.NoError(t, a.Delete(ctx, "site:draft:acme"))
	_, err = a.Get(ctx, "site:draft:acme")
	assert.True(t, common.IsNotFound(err))
}

func TestDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewDraftStore(NewMemoryAdapter(), nil)
	siteID := common.SiteID("acme")

	_, err := store.Load(ctx, siteID)
	assert.True(t, common.IsNotFound(err))

	require.NoError(t, store.Save(ctx, siteID, testDoc()))

	doc, err := store.Load(ctx, siteID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.ValueAt("site.brand"))

	require.NoError(t, store.Delete(ctx, siteID))
	_, err = store.Load(ctx, siteID)
	assert.True(t, common.IsNotFound(err))
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := NewMemoryAdapter()
	store := NewSnapshotStore(adapter, &StoreOptions{KeyPrefix: "theme1"})
	siteID := common.SiteID("acme")

	require.NoError(t, store.Save(ctx, siteID, testDoc()))

	doc, err := store.Load(ctx, siteID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", doc.ValueAt("site.brand"))

	// Drafts and snapshots use distinct key spaces on a shared adapter.
	keys, err := adapter.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"theme1:site:acme"}, keys)
}

func TestJSONSerializer(t *testing.T) {
	s := NewJSONSerializer()

	data, err := s.Serialize(testDoc())
	require.NoError(t, err)

	doc, err := s.Deserialize(data)
	require.NoError(t, err)
	assert.Equal(t, "en", doc.DefaultLocale())

	_, err = s.Serialize(nil)
	assert.Error(t, err)
}
