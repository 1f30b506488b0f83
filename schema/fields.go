// Package schema models the field rules governing a site content document:
// typed field schema nodes, the section-type and page-type registries, and
// the resolver that maps a dotted path to the rule governing it.
package schema

// FieldKind identifies the variant of a field schema node.
type FieldKind string

const (
	// KindString represents a plain text field.
	KindString FieldKind = "string"
	// KindNumber represents a numeric field.
	KindNumber FieldKind = "number"
	// KindBoolean represents a boolean field.
	KindBoolean FieldKind = "boolean"
	// KindImage represents an image reference field.
	KindImage FieldKind = "image"
	// KindRichtext represents a rich text field.
	KindRichtext FieldKind = "richtext"
	// KindSelect represents a field restricted to a fixed option list.
	KindSelect FieldKind = "select"
	// KindDate represents a date field.
	KindDate FieldKind = "date"
	// KindArray represents a repeatable list field.
	KindArray FieldKind = "array"
	// KindObject represents an object-shaped value, used for array items
	// composed of named fields.
	KindObject FieldKind = "object"
)

// FieldSchema is the rule set governing one field or one array. The concrete
// variants below are matched exhaustively with type switches; there is no
// stringly-typed fallthrough.
type FieldSchema interface {
	Kind() FieldKind
	IsEditable() bool
	IsLocalized() bool
}

// StringField describes a plain text field.
type StringField struct {
	Editable  bool
	Localized bool
	MaxLength int
}

func (f *StringField) Kind() FieldKind   { return KindString }
func (f *StringField) IsEditable() bool  { return f.Editable }
func (f *StringField) IsLocalized() bool { return f.Localized }

// RichtextField describes a rich text field.
type RichtextField struct {
	Editable  bool
	Localized bool
	MaxLength int
}

func (f *RichtextField) Kind() FieldKind   { return KindRichtext }
func (f *RichtextField) IsEditable() bool  { return f.Editable }
func (f *RichtextField) IsLocalized() bool { return f.Localized }

// NumberField describes a numeric field.
type NumberField struct {
	Editable bool
}

func (f *NumberField) Kind() FieldKind   { return KindNumber }
func (f *NumberField) IsEditable() bool  { return f.Editable }
func (f *NumberField) IsLocalized() bool { return false }

// BooleanField describes a boolean field.
type BooleanField struct {
	Editable bool
}

func (f *BooleanField) Kind() FieldKind   { return KindBoolean }
func (f *BooleanField) IsEditable() bool  { return f.Editable }
func (f *BooleanField) IsLocalized() bool { return false }

// ImageField describes an image reference field. Values are asset paths or
// URLs; binary upload happens outside this engine.
type ImageField struct {
	Editable bool
}

func (f *ImageField) Kind() FieldKind   { return KindImage }
func (f *ImageField) IsEditable() bool  { return f.Editable }
func (f *ImageField) IsLocalized() bool { return false }

// DateField describes a date field stored as an ISO string.
type DateField struct {
	Editable bool
}

func (f *DateField) Kind() FieldKind   { return KindDate }
func (f *DateField) IsEditable() bool  { return f.Editable }
func (f *DateField) IsLocalized() bool { return false }

// SelectField describes a field restricted to one of a fixed set of options.
type SelectField struct {
	Editable bool
	Options  []string
}

func (f *SelectField) Kind() FieldKind   { return KindSelect }
func (f *SelectField) IsEditable() bool  { return f.Editable }
func (f *SelectField) IsLocalized() bool { return false }

// ArrayField describes a repeatable list. Item carries the schema for each
// element; a nil Item means elements are governed by GenericItem.
type ArrayField struct {
	Editable bool
	MaxItems int
	Item     FieldSchema
}

func (f *ArrayField) Kind() FieldKind   { return KindArray }
func (f *ArrayField) IsEditable() bool  { return f.Editable }
func (f *ArrayField) IsLocalized() bool { return false }

// ItemSchema returns the schema governing the array's elements, substituting
// GenericItem when none is declared.
func (f *ArrayField) ItemSchema() FieldSchema {
	if f.Item == nil {
		return GenericItem()
	}
	return f.Item
}

// ObjectField describes a value composed of named sub-fields.
type ObjectField struct {
	Fields map[string]FieldSchema
}

func (f *ObjectField) Kind() FieldKind   { return KindObject }
func (f *ObjectField) IsEditable() bool  { return true }
func (f *ObjectField) IsLocalized() bool { return false }

// GenericItem is the schema substituted for array elements when the array
// declares no item schema: an editable, unlocalized string.
func GenericItem() FieldSchema {
	return &StringField{Editable: true}
}
