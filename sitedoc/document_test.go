package sitedoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *Document {
	return New(map[string]any{
		"meta": map[string]any{
			"schemaVersion": "2",
			"defaultLocale": "en",
			"locales":       []any{"en", "fr"},
		},
		"site": map[string]any{"brand": "Acme"},
		"pages": map[string]any{
			"home": map[string]any{
				"sections": []any{
					map[string]any{
						"id": "hero", "type": "hero", "order": 10,
						"data": map[string]any{"title": "Welcome"},
					},
					map[string]any{
						"id": "about", "type": "about", "order": 20, "enabled": false,
						"data": map[string]any{},
					},
				},
			},
		},
	})
}

func TestDocumentMeta(t *testing.T) {
	doc := testDocument()

	assert.Equal(t, "2", doc.SchemaVersion())
	assert.Equal(t, "en", doc.DefaultLocale())
	assert.Equal(t, []string{"en", "fr"}, doc.Locales())
}

func TestDocumentMetaDefaults(t *testing.T) {
	doc := New(nil)

	assert.Equal(t, "", doc.SchemaVersion())
	assert.Equal(t, DefaultLocaleFallback, doc.DefaultLocale())
	assert.Equal(t, []string{DefaultLocaleFallback}, doc.Locales())
	assert.Nil(t, doc.PageSections("home"))
}

func TestDocumentValueAt(t *testing.T) {
	doc := testDocument()

	assert.Equal(t, "Acme", doc.ValueAt("site.brand"))
	assert.Nil(t, doc.ValueAt("site.missing"))
}

func TestDocumentCloneIsolation(t *testing.T) {
	doc := testDocument()

	clone := doc.Clone()
	clone["site"].(map[string]any)["brand"] = "Changed"

	assert.Equal(t, "Acme", doc.ValueAt("site.brand"))
}

func TestPageSections(t *testing.T) {
	doc := testDocument()

	sections := doc.PageSections("home")
	require.Len(t, sections, 2)
	assert.Equal(t, "hero", sections[0].ID)
	assert.True(t, sections[0].Enabled)
	assert.False(t, sections[1].Enabled)

	// Parsed sections are copies of the document's data.
	sections[0].Data["title"] = "Changed"
	assert.Equal(t, "Welcome", doc.ValueAt("pages.home.sections.0.data.title"))
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	doc := testDocument()

	data, err := doc.ToJSON()
	require.NoError(t, err)

	back, err := FromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, "Acme", back.ValueAt("site.brand"))
	assert.Equal(t, "en", back.DefaultLocale())
}

func TestSectionMapRoundTrip(t *testing.T) {
	s := &Section{
		ID:           "pricing-a1",
		Type:         "pricing",
		Enabled:      true,
		Region:       "main",
		Order:        30,
		Data:         map[string]any{"title": "Plans"},
		ContextKey:   "service",
		ContextValue: "plumbing",
	}

	m := s.ToMap()
	assert.Equal(t, "plumbing", m["service"])

	back := SectionFromMap(m)
	assert.Equal(t, s.ID, back.ID)
	assert.Equal(t, s.Order, back.Order)
	assert.Equal(t, "service", back.ContextKey)
	assert.Equal(t, "plumbing", back.ContextValue)
}

func TestSectionFromMapDefaults(t *testing.T) {
	s := SectionFromMap(map[string]any{"id": "hero", "type": "hero", "order": float64(10)})

	assert.True(t, s.Enabled, "enabled defaults to true")
	assert.Equal(t, 10, s.Order, "order parses from float64")
	assert.NotNil(t, s.Data)
}

func TestSortSectionsStable(t *testing.T) {
	a := &Section{ID: "a", Order: 20}
	b := &Section{ID: "b", Order: 10}
	c := &Section{ID: "c", Order: 20}

	list := []*Section{a, b, c}
	SortSections(list)

	assert.Equal(t, []*Section{b, a, c}, list, "ties keep insertion order")
}
