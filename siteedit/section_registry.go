package siteedit

import (
	"strconv"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/indyavik/theme-1-multi-site/overlay"
	"github.com/indyavik/theme-1-multi-site/schema"
	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

// orderStep is the gap left between section order values on renumbering.
const orderStep = 10

// SectionRegistryOptions configures a SectionRegistry.
type SectionRegistryOptions struct {
	// ContextKey/ContextValue scope the registry to a sub-page instance;
	// new section ids are prefixed with the context value and stamped with
	// the key.
	ContextKey   string
	ContextValue string
	// SnowflakeNode distinguishes id generators across processes. Defaults
	// to 1.
	SnowflakeNode int64
}

// SectionRegistry is the live, ordered section list for one page context.
// It is the structural truth of the session: which sections exist and in
// what order. Per-section data stays reconciled with the overlay at read
// time and is never pre-merged into the registry itself.
type SectionRegistry struct {
	registry     *schema.Registry
	overlay      *overlay.Store
	pageType     string
	contextKey   string
	contextValue string
	sections     []*sitedoc.Section
	node         *snowflake.Node
}

// NewSectionRegistry seeds a SectionRegistry from the document's section
// list for the page.
func NewSectionRegistry(doc *sitedoc.Document, pageType string, reg *schema.Registry, ov *overlay.Store, opts *SectionRegistryOptions) *SectionRegistry {
	if opts == nil {
		opts = &SectionRegistryOptions{}
	}
	nodeID := opts.SnowflakeNode
	if nodeID == 0 {
		nodeID = 1
	}
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		node = nil
	}

	r := &SectionRegistry{
		registry:     reg,
		overlay:      ov,
		pageType:     pageType,
		contextKey:   opts.ContextKey,
		contextValue: opts.ContextValue,
		node:         node,
	}
	r.Reset(doc)
	return r
}

// Reset reseeds the live list from the document, dropping every structural
// change made since.
func (r *SectionRegistry) Reset(doc *sitedoc.Document) {
	r.sections = doc.PageSections(r.pageType)
	sitedoc.SortSections(r.sections)
}

// PageType returns the page this registry edits.
func (r *SectionRegistry) PageType() string {
	return r.pageType
}

// Count returns the number of live sections.
func (r *SectionRegistry) Count() int {
	return len(r.sections)
}

// SectionTypeOf reports the type of a live section id. It implements
// schema.SectionLookup.
func (r *SectionRegistry) SectionTypeOf(id string) (string, bool) {
	if s, _ := r.find(id); s != nil {
		return s.Type, true
	}
	return "", false
}

// Sections returns the live sections in render order, each section's data
// deep-merged with its overlay subtree.
func (r *SectionRegistry) Sections() []*sitedoc.Section {
	out := make([]*sitedoc.Section, 0, len(r.sections))
	for _, s := range r.sections {
		out = append(out, r.merged(s))
	}
	sitedoc.SortSections(out)
	return out
}

// SectionsInRegion returns the live sections placed in one region.
func (r *SectionRegistry) SectionsInRegion(region string) []*sitedoc.Section {
	out := make([]*sitedoc.Section, 0, len(r.sections))
	for _, s := range r.Sections() {
		if s.Region == region {
			out = append(out, s)
		}
	}
	return out
}

// EnabledSections returns the live sections a renderer should show.
func (r *SectionRegistry) EnabledSections() []*sitedoc.Section {
	out := make([]*sitedoc.Section, 0, len(r.sections))
	for _, s := range r.Sections() {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// Section returns one live section by id, overlay-merged, or nil.
func (r *SectionRegistry) Section(id string) *sitedoc.Section {
	s, _ := r.find(id)
	if s == nil {
		return nil
	}
	return r.merged(s)
}

// CanAdd reports whether a section of the given type may be added: the type
// must be registered, allowed on the page, and not already present when
// singleton.
func (r *SectionRegistry) CanAdd(typeName string) bool {
	st := r.registry.SectionType(typeName)
	if st == nil {
		return false
	}
	if !r.registry.AllowedOnPage(r.pageType, typeName) {
		return false
	}
	if st.Singleton {
		for _, s := range r.sections {
			if s.Type == typeName {
				return false
			}
		}
	}
	return true
}

// Add inserts a new section of the given type at position (append when the
// position is out of range) and renumbers the list. It returns nil without
// changing anything when the type is unknown, not allowed here, or a
// singleton already present.
func (r *SectionRegistry) Add(typeName, region string, position int) *sitedoc.Section {
	if !r.CanAdd(typeName) {
		return nil
	}
	st := r.registry.SectionType(typeName)
	if region == "" {
		region = st.Region
	}
	if !st.AllowsRegion(region) {
		return nil
	}

	s := &sitedoc.Section{
		ID:      r.newID(st),
		Type:    typeName,
		Enabled: true,
		Region:  region,
		Data:    schema.DeriveDefaultData(st),
	}
	if r.contextKey != "" && r.contextValue != "" {
		s.ContextKey = r.contextKey
		s.ContextValue = r.contextValue
	}

	if position < 0 || position >= len(r.sections) {
		r.sections = append(r.sections, s)
	} else {
		r.sections = append(r.sections[:position], append([]*sitedoc.Section{s}, r.sections[position:]...)...)
	}
	r.renumber()
	return s.Clone()
}

// Remove deletes a section by id and purges its overlay subtree so stale
// edits cannot resurrect it. It reports whether anything changed.
func (r *SectionRegistry) Remove(id string) bool {
	_, idx := r.find(id)
	if idx < 0 {
		return false
	}
	r.sections = append(r.sections[:idx], r.sections[idx+1:]...)
	r.renumber()
	r.overlay.PurgeSubtree("sections." + id)
	return true
}

// Move reinserts a section at a new index and renumbers. It reports false
// without changing anything when the id is unknown, the position is out of
// range, or the position is unchanged.
func (r *SectionRegistry) Move(id string, position int) bool {
	s, idx := r.find(id)
	if idx < 0 || position == idx || position < 0 || position >= len(r.sections) {
		return false
	}
	rest := append(r.sections[:idx], r.sections[idx+1:]...)
	r.sections = append(rest[:position], append([]*sitedoc.Section{s}, rest[position:]...)...)
	r.renumber()
	return true
}

// SetEnabled toggles a section's rendering without removing it from
// storage. It reports whether the section exists.
func (r *SectionRegistry) SetEnabled(id string, enabled bool) bool {
	s, idx := r.find(id)
	if idx < 0 {
		return false
	}
	s.Enabled = enabled
	return true
}

func (r *SectionRegistry) find(id string) (*sitedoc.Section, int) {
	for i, s := range r.sections {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

// merged returns a clone of s with its data deep-merged against the
// overlay subtree scoped to it.
func (r *SectionRegistry) merged(s *sitedoc.Section) *sitedoc.Section {
	out := s.Clone()
	sub := r.overlay.Subtree("sections." + s.ID)
	if sub != nil {
		out.Data = overlay.Merge(out.Data, sub).(map[string]any)
	}
	return out
}

// newID builds the section id: the bare type name for singletons, a
// suffixed id for repeatable types, both prefixed by the context value when
// the registry is context-scoped.
func (r *SectionRegistry) newID(st *schema.SectionType) string {
	id := st.Name
	if !st.Singleton {
		id = st.Name + "-" + r.idSuffix()
	}
	if r.contextKey != "" && r.contextValue != "" {
		id = r.contextValue + "-" + id
	}
	return id
}

func (r *SectionRegistry) idSuffix() string {
	if r.node != nil {
		return r.node.Generate().String()
	}
	return strconv.FormatInt(time.Now().UnixNano(), 10)
}

func (r *SectionRegistry) renumber() {
	for i, s := range r.sections {
		s.Order = (i + 1) * orderStep
	}
}
