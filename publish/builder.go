// Package publish assembles the complete document persisted when an edit
// session publishes: the base document deep-merged with the session overlay,
// the live section list spliced into its page, and locale maps in section
// data flattened for the renderer.
package publish

import (
	"github.com/indyavik/theme-1-multi-site/docpath"
	"github.com/indyavik/theme-1-multi-site/locale"
	"github.com/indyavik/theme-1-multi-site/overlay"
	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

// Builder builds publish payloads. It holds no session state; Build is a
// pure function of its inputs.
type Builder struct {
	locales *locale.Resolver
}

// NewBuilder creates a Builder collapsing locale maps with the given
// resolver.
func NewBuilder(locales *locale.Resolver) *Builder {
	return &Builder{locales: locales}
}

// Build produces the document to persist. The base document never mutates:
// every container along a changed path is copied.
//
// The live section list is structural truth; whatever section array the
// merged tree holds for the page is replaced wholesale, so removed sections
// stay removed and reorders stick. Locale maps inside section data collapse
// to a single string for activeLocale; site-level values keep their locale
// maps so later sessions can still translate them.
func (b *Builder) Build(base *sitedoc.Document, overlaySnap map[string]any, pageType, activeLocale string, liveSections []*sitedoc.Section) *sitedoc.Document {
	merged, _ := overlay.Merge(base.Root(), overlaySnap).(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}

	secs := make([]*sitedoc.Section, len(liveSections))
	copy(secs, liveSections)
	sitedoc.SortSections(secs)

	arr := make([]any, 0, len(secs))
	for _, s := range secs {
		m := s.ToMap()
		m["data"] = b.locales.CollapseTree(m["data"], activeLocale)
		arr = append(arr, m)
	}

	out := docpath.Set(merged, "pages."+pageType+".sections", arr)
	root := out.(map[string]any)

	// The top-level "sections" key only ever holds session edits keyed by
	// section id; the spliced page list supersedes it.
	delete(root, "sections")

	return sitedoc.New(root)
}
