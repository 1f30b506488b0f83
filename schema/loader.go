package schema

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fieldYAML is the on-disk shape of one field schema node.
type fieldYAML struct {
	Type      string                `yaml:"type"`
	Editable  *bool                 `yaml:"editable"`
	Localized bool                  `yaml:"localized"`
	MaxLength int                   `yaml:"maxLength"`
	MaxItems  int                   `yaml:"maxItems"`
	Options   []string              `yaml:"options"`
	Item      *fieldYAML            `yaml:"item"`
	Fields    map[string]*fieldYAML `yaml:"fields"`
}

type sectionYAML struct {
	DisplayName    string                `yaml:"displayName"`
	Description    string                `yaml:"description"`
	Singleton      bool                  `yaml:"singleton"`
	Region         string                `yaml:"region"`
	AllowedRegions []string              `yaml:"allowedRegions"`
	Schema         map[string]*fieldYAML `yaml:"schema"`
	DefaultData    map[string]any        `yaml:"defaultData"`
}

type pageYAML struct {
	AllowedSectionTypes []string `yaml:"allowedSectionTypes"`
}

type registryYAML struct {
	Site     map[string]*fieldYAML   `yaml:"site"`
	Sections map[string]*sectionYAML `yaml:"sections"`
	Pages    map[string]*pageYAML    `yaml:"pages"`
}

// LoadRegistry reads a Registry from a YAML stream. Fields omit `editable`
// to mean editable; unknown field types are an error.
func LoadRegistry(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read registry")
	}

	var file registryYAML
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse registry yaml")
	}

	reg := NewRegistry()

	for name, f := range file.Site {
		fs, err := buildField(f)
		if err != nil {
			return nil, errors.Wrapf(err, "site field %s", name)
		}
		reg.SetSiteField(name, fs)
	}

	for name, s := range file.Sections {
		if s == nil {
			continue
		}
		st := &SectionType{
			Name:           name,
			DisplayName:    s.DisplayName,
			Description:    s.Description,
			Singleton:      s.Singleton,
			Region:         s.Region,
			AllowedRegions: s.AllowedRegions,
			DefaultData:    s.DefaultData,
		}
		if len(s.Schema) > 0 {
			st.Schema = make(map[string]FieldSchema, len(s.Schema))
			for fieldName, f := range s.Schema {
				fs, err := buildField(f)
				if err != nil {
					return nil, errors.Wrapf(err, "section %s field %s", name, fieldName)
				}
				st.Schema[fieldName] = fs
			}
		}
		reg.RegisterSectionType(st)
	}

	for name, p := range file.Pages {
		if p == nil {
			continue
		}
		reg.RegisterPageType(&PageType{Name: name, AllowedSectionTypes: p.AllowedSectionTypes})
	}

	return reg, nil
}

// LoadRegistryFile reads a Registry from a YAML file.
func LoadRegistryFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open registry file %s", path)
	}
	defer f.Close()
	return LoadRegistry(f)
}

func buildField(f *fieldYAML) (FieldSchema, error) {
	if f == nil {
		return nil, errors.New("field schema cannot be empty")
	}

	editable := true
	if f.Editable != nil {
		editable = *f.Editable
	}

	switch FieldKind(f.Type) {
	case KindString:
		return &StringField{Editable: editable, Localized: f.Localized, MaxLength: f.MaxLength}, nil
	case KindRichtext:
		return &RichtextField{Editable: editable, Localized: f.Localized, MaxLength: f.MaxLength}, nil
	case KindNumber:
		return &NumberField{Editable: editable}, nil
	case KindBoolean:
		return &BooleanField{Editable: editable}, nil
	case KindImage:
		return &ImageField{Editable: editable}, nil
	case KindDate:
		return &DateField{Editable: editable}, nil
	case KindSelect:
		return &SelectField{Editable: editable, Options: f.Options}, nil
	case KindObject:
		fields := make(map[string]FieldSchema, len(f.Fields))
		for name, child := range f.Fields {
			fs, err := buildField(child)
			if err != nil {
				return nil, errors.Wrapf(err, "object field %s", name)
			}
			fields[name] = fs
		}
		return &ObjectField{Fields: fields}, nil
	case KindArray:
		arr := &ArrayField{Editable: editable, MaxItems: f.MaxItems}
		if f.Item != nil {
			item, err := buildField(f.Item)
			if err != nil {
				return nil, errors.Wrap(err, "array item")
			}
			arr.Item = item
		} else if len(f.Fields) > 0 {
			// `fields` directly under an array is shorthand for an
			// object-shaped item.
			item, err := buildField(&fieldYAML{Type: string(KindObject), Fields: f.Fields})
			if err != nil {
				return nil, errors.Wrap(err, "array item")
			}
			arr.Item = item
		}
		return arr, nil
	}
	return nil, errors.Errorf("unknown field type %q", f.Type)
}
