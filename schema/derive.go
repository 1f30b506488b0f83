package schema

import (
	"strings"

	"github.com/indyavik/theme-1-multi-site/docpath"
)

// DeriveDefaultData builds the data block for a new section instance: the
// type's declared DefaultData when present, otherwise a value derived field
// by field from its schema.
func DeriveDefaultData(t *SectionType) map[string]any {
	if t == nil {
		return map[string]any{}
	}
	if t.DefaultData != nil {
		return docpath.CloneValue(t.DefaultData).(map[string]any)
	}
	out := make(map[string]any, len(t.Schema))
	for name, fs := range t.Schema {
		out[name] = DeriveValue(name, fs)
	}
	return out
}

// DeriveValue builds a schema-correct placeholder value for one field. The
// field name participates: names containing "email", "price" and similar
// hints get recognizable placeholders instead of empty strings.
func DeriveValue(name string, fs FieldSchema) any {
	switch f := fs.(type) {
	case *StringField, *RichtextField:
		return placeholderString(name)
	case *NumberField:
		return 0
	case *BooleanField:
		return false
	case *ImageField:
		return ""
	case *DateField:
		return ""
	case *SelectField:
		if len(f.Options) > 0 {
			return f.Options[0]
		}
		return ""
	case *ArrayField:
		return []any{}
	case *ObjectField:
		out := make(map[string]any, len(f.Fields))
		for k, child := range f.Fields {
			out[k] = DeriveValue(k, child)
		}
		return out
	}
	return nil
}

// DeriveItem builds a placeholder element for an array governed by the given
// item schema. Object-shaped items are derived recursively field by field.
func DeriveItem(item FieldSchema) any {
	if item == nil {
		item = GenericItem()
	}
	return DeriveValue("item", item)
}

func placeholderString(name string) string {
	k := strings.ToLower(name)
	switch {
	case strings.Contains(k, "email"):
		return "hello@example.com"
	case strings.Contains(k, "phone"):
		return "(555) 555-0100"
	case strings.Contains(k, "price"):
		return "$0.00"
	case strings.Contains(k, "url") || strings.Contains(k, "link"):
		return "https://example.com"
	case strings.Contains(k, "title") || strings.Contains(k, "name") || strings.Contains(k, "item"):
		return "New item"
	case strings.Contains(k, "description"):
		return "Describe this item."
	}
	return ""
}
