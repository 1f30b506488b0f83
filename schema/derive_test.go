package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveDefaultDataPrefersDeclared(t *testing.T) {
	st := &SectionType{
		Name:        "hero",
		Schema:      map[string]FieldSchema{"title": &StringField{Editable: true}},
		DefaultData: map[string]any{"title": "Welcome"},
	}

	data := st.DefaultData
	derived := DeriveDefaultData(st)
	assert.Equal(t, data, derived)

	// The derived map is a copy, not an alias.
	derived["title"] = "changed"
	assert.Equal(t, "Welcome", st.DefaultData["title"])
}

func TestDeriveDefaultDataFromSchema(t *testing.T) {
	st := &SectionType{
		Name: "contact",
		Schema: map[string]FieldSchema{
			"email":    &StringField{Editable: true},
			"phone":    &StringField{Editable: true},
			"featured": &BooleanField{Editable: true},
			"rating":   &NumberField{Editable: true},
			"items":    &ArrayField{Editable: true},
		},
	}

	data := DeriveDefaultData(st)
	assert.Equal(t, "hello@example.com", data["email"])
	assert.Equal(t, "(555) 555-0100", data["phone"])
	assert.Equal(t, false, data["featured"])
	assert.Equal(t, 0, data["rating"])
	assert.Equal(t, []any{}, data["items"])
}

func TestDeriveItemObjectShaped(t *testing.T) {
	item := &ObjectField{Fields: map[string]FieldSchema{
		"name":   &StringField{Editable: true},
		"price":  &StringField{Editable: true},
		"active": &BooleanField{Editable: true},
	}}

	v := DeriveItem(item)
	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "New item", m["name"])
	assert.Equal(t, "$0.00", m["price"])
	assert.Equal(t, false, m["active"])
}

func TestDeriveItemGeneric(t *testing.T) {
	v := DeriveItem(nil)
	assert.Equal(t, "New item", v)
}

func TestDeriveValueSelect(t *testing.T) {
	v := DeriveValue("layout", &SelectField{Editable: true, Options: []string{"wide", "narrow"}})
	assert.Equal(t, "wide", v)

	v = DeriveValue("layout", &SelectField{Editable: true})
	assert.Equal(t, "", v)
}
