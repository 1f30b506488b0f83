package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSections map[string]string

func (s stubSections) SectionTypeOf(id string) (string, bool) {
	t, ok := s[id]
	return t, ok
}

func testRegistry() *Registry {
	reg := NewRegistry()
	reg.SetSiteField("site", &ObjectField{Fields: map[string]FieldSchema{
		"brand": &StringField{Editable: true, MaxLength: 60},
		"links": &ArrayField{Editable: true, Item: &ObjectField{Fields: map[string]FieldSchema{
			"label": &StringField{Editable: true, Localized: true},
			"url":   &StringField{Editable: true},
		}}},
	}})
	reg.RegisterSectionType(&SectionType{
		Name:      "hero",
		Singleton: true,
		Region:    "main",
		Schema: map[string]FieldSchema{
			"title":    &StringField{Editable: true, Localized: true, MaxLength: 120},
			"subtitle": &StringField{Editable: true, Localized: true},
			"tags":     &ArrayField{Editable: true, MaxItems: 4},
		},
	})
	reg.RegisterSectionType(&SectionType{
		Name: "services",
		Schema: map[string]FieldSchema{
			"items": &ArrayField{Editable: true, MaxItems: 6, Item: &ObjectField{Fields: map[string]FieldSchema{
				"name":  &StringField{Editable: true, Localized: true},
				"price": &StringField{Editable: true},
			}}},
		},
	})
	return reg
}

func TestFieldSchemaAtSitePath(t *testing.T) {
	r := NewResolver(testRegistry())

	fs := r.FieldSchemaAt("site.brand", nil)
	require.NotNil(t, fs)
	sf, ok := fs.(*StringField)
	require.True(t, ok)
	assert.Equal(t, 60, sf.MaxLength)
}

func TestFieldSchemaAtSectionPath(t *testing.T) {
	r := NewResolver(testRegistry())
	sections := stubSections{"hero": "hero", "services-1": "services"}

	fs := r.FieldSchemaAt("sections.hero.title", sections)
	require.NotNil(t, fs)
	assert.True(t, fs.IsLocalized())

	// Array item fields resolve through the item schema, not by indexing
	// into a schema array.
	fs = r.FieldSchemaAt("sections.services-1.items.3.price", sections)
	require.NotNil(t, fs)
	assert.Equal(t, KindString, fs.Kind())
	assert.False(t, fs.IsLocalized())
}

func TestFieldSchemaAtGenericItem(t *testing.T) {
	r := NewResolver(testRegistry())
	sections := stubSections{"hero": "hero"}

	// tags declares no item schema; elements fall back to an editable string.
	fs := r.FieldSchemaAt("sections.hero.tags.0", sections)
	require.NotNil(t, fs)
	assert.Equal(t, KindString, fs.Kind())
	assert.True(t, fs.IsEditable())

	// A non-numeric segment under an array resolves to nothing.
	assert.Nil(t, r.FieldSchemaAt("sections.hero.tags.first", sections))
}

func TestFieldSchemaAtMisses(t *testing.T) {
	r := NewResolver(testRegistry())
	sections := stubSections{"hero": "hero", "ghost": "no-such-type"}

	assert.Nil(t, r.FieldSchemaAt("", sections))
	assert.Nil(t, r.FieldSchemaAt("sections", sections))
	assert.Nil(t, r.FieldSchemaAt("sections.unknown.title", sections))
	assert.Nil(t, r.FieldSchemaAt("sections.ghost.title", sections))
	assert.Nil(t, r.FieldSchemaAt("sections.hero.nope", sections))
	assert.Nil(t, r.FieldSchemaAt("site.missing", nil))
	assert.Nil(t, r.FieldSchemaAt("sections.hero.title", nil))
}

func TestFieldSchemaAtNestedSiteArray(t *testing.T) {
	r := NewResolver(testRegistry())

	fs := r.FieldSchemaAt("site.links.2.label", nil)
	require.NotNil(t, fs)
	assert.True(t, fs.IsLocalized())
}

func TestAllowedOnPage(t *testing.T) {
	reg := testRegistry()
	reg.RegisterPageType(&PageType{Name: "home", AllowedSectionTypes: []string{"hero"}})

	assert.True(t, reg.AllowedOnPage("home", "hero"))
	assert.False(t, reg.AllowedOnPage("home", "services"))
	// Unregistered page types place no restriction.
	assert.True(t, reg.AllowedOnPage("about", "services"))
}

func TestAllowsRegion(t *testing.T) {
	st := &SectionType{Name: "banner", AllowedRegions: []string{"top", "main"}}
	assert.True(t, st.AllowsRegion("main"))
	assert.False(t, st.AllowsRegion("footer"))

	open := &SectionType{Name: "free"}
	assert.True(t, open.AllowsRegion("anywhere"))
}
