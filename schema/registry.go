package schema

// SectionType describes one addable section type: its identity, placement
// rules, field schema and default data.
type SectionType struct {
	// Name is the type key sections reference through their `type` field.
	Name string
	// DisplayName is the human-readable name shown in pickers.
	DisplayName string
	// Description is an optional longer description.
	Description string
	// Singleton restricts the type to one instance per page; the instance's
	// id equals the type name.
	Singleton bool
	// Region is the default region new instances are placed in.
	Region string
	// AllowedRegions restricts placement; empty means any region.
	AllowedRegions []string
	// Schema maps field names to their rules.
	Schema map[string]FieldSchema
	// DefaultData seeds new instances; when nil, defaults are derived from
	// Schema.
	DefaultData map[string]any
}

// AllowsRegion reports whether the type may be placed in the given region.
func (t *SectionType) AllowsRegion(region string) bool {
	if len(t.AllowedRegions) == 0 {
		return true
	}
	for _, r := range t.AllowedRegions {
		if r == region {
			return true
		}
	}
	return false
}

// PageType describes one page kind and the section types it accepts.
type PageType struct {
	Name string
	// AllowedSectionTypes restricts which section types may be added; empty
	// means any registered type.
	AllowedSectionTypes []string
}

// Registry holds the section-type and page-type definitions plus the
// site-level field schema. It is injected into every component that needs
// it; there is no package-level instance.
type Registry struct {
	sectionTypes map[string]*SectionType
	pageTypes    map[string]*PageType
	site         map[string]FieldSchema
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		sectionTypes: make(map[string]*SectionType),
		pageTypes:    make(map[string]*PageType),
		site:         make(map[string]FieldSchema),
	}
}

// RegisterSectionType adds or replaces a section type definition.
func (r *Registry) RegisterSectionType(t *SectionType) {
	if t == nil || t.Name == "" {
		return
	}
	r.sectionTypes[t.Name] = t
}

// SectionType returns the definition for the given type name, or nil when
// unknown.
func (r *Registry) SectionType(name string) *SectionType {
	return r.sectionTypes[name]
}

// SectionTypeNames returns the registered type names in unspecified order.
func (r *Registry) SectionTypeNames() []string {
	names := make([]string, 0, len(r.sectionTypes))
	for name := range r.sectionTypes {
		names = append(names, name)
	}
	return names
}

// RegisterPageType adds or replaces a page type definition.
func (r *Registry) RegisterPageType(t *PageType) {
	if t == nil || t.Name == "" {
		return
	}
	r.pageTypes[t.Name] = t
}

// PageType returns the definition for the given page type name, or nil when
// unknown.
func (r *Registry) PageType(name string) *PageType {
	return r.pageTypes[name]
}

// AllowedOnPage reports whether a section type may be added on the given
// page type. An unregistered page type places no restriction.
func (r *Registry) AllowedOnPage(pageType, sectionType string) bool {
	pt := r.pageTypes[pageType]
	if pt == nil || len(pt.AllowedSectionTypes) == 0 {
		return true
	}
	for _, name := range pt.AllowedSectionTypes {
		if name == sectionType {
			return true
		}
	}
	return false
}

// SetSiteField registers the schema for one site-level top-level field.
func (r *Registry) SetSiteField(name string, fs FieldSchema) {
	if name == "" || fs == nil {
		return
	}
	r.site[name] = fs
}

// SiteSchema returns the site-level field schema map.
func (r *Registry) SiteSchema() map[string]FieldSchema {
	return r.site
}
