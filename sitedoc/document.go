// Package sitedoc models the structured content document an edit session
// works against: a metadata block, site-level fields, and pages holding
// ordered section lists. The document is immutable once loaded; every edit
// lives in an overlay until publish.
package sitedoc

import (
	json "github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/indyavik/theme-1-multi-site/docpath"
)

// DefaultLocaleFallback is assumed when a document declares no default
// locale.
const DefaultLocaleFallback = "en"

// Document is the base content document for an edit session. The canonical
// representation is a string-keyed tree matching the persisted JSON; typed
// accessors parse views out of it on demand.
type Document struct {
	root map[string]any
}

// New wraps a root tree as a Document. A nil root yields an empty document.
func New(root map[string]any) *Document {
	if root == nil {
		root = map[string]any{}
	}
	return &Document{root: root}
}

// FromJSON parses a Document from its serialized form.
func FromJSON(data []byte) (*Document, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(err, "failed to parse document")
	}
	return New(root), nil
}

// ToJSON serializes the document.
func (d *Document) ToJSON() ([]byte, error) {
	data, err := json.Marshal(d.root)
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize document")
	}
	return data, nil
}

// Root returns the underlying tree. Callers must treat it as read-only;
// use Clone for a mutable copy.
func (d *Document) Root() map[string]any {
	return d.root
}

// Clone returns a deep copy of the document's tree.
func (d *Document) Clone() map[string]any {
	return docpath.CloneValue(d.root).(map[string]any)
}

// ValueAt returns the value stored at a dotted path, or nil when missing.
func (d *Document) ValueAt(path string) any {
	return docpath.Get(d.root, path)
}

// SchemaVersion returns the document's declared schema version.
func (d *Document) SchemaVersion() string {
	if v, ok := docpath.Get(d.root, "meta.schemaVersion").(string); ok {
		return v
	}
	return ""
}

// DefaultLocale returns the document's default locale, falling back to
// DefaultLocaleFallback when undeclared.
func (d *Document) DefaultLocale() string {
	if v, ok := docpath.Get(d.root, "meta.defaultLocale").(string); ok && v != "" {
		return v
	}
	return DefaultLocaleFallback
}

// Locales returns the document's available locale codes. The default locale
// is always included.
func (d *Document) Locales() []string {
	out := []string{}
	if raw, ok := docpath.Get(d.root, "meta.locales").([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	}
	def := d.DefaultLocale()
	for _, l := range out {
		if l == def {
			return out
		}
	}
	return append(out, def)
}

// PageNames returns the names of the document's pages.
func (d *Document) PageNames() []string {
	pages, ok := docpath.Get(d.root, "pages").(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(pages))
	for name := range pages {
		names = append(names, name)
	}
	return names
}

// PageSections parses the section list of one page. The returned sections
// are copies; mutating them does not touch the document.
func (d *Document) PageSections(pageType string) []*Section {
	raw, ok := docpath.Get(d.root, "pages."+pageType+".sections").([]any)
	if !ok {
		return nil
	}
	out := make([]*Section, 0, len(raw))
	for _, v := range raw {
		m, ok := v.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, SectionFromMap(m))
	}
	return out
}
