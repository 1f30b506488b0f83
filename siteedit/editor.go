// Package siteedit is the edit session engine: it layers a sparse overlay
// of pending edits over an immutable base document, validates every write
// against the field schema, keeps the live section list, and hands the
// merged result to the publish builder.
package siteedit

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/indyavik/theme-1-multi-site/common"
	"github.com/indyavik/theme-1-multi-site/docpath"
	"github.com/indyavik/theme-1-multi-site/locale"
	"github.com/indyavik/theme-1-multi-site/overlay"
	"github.com/indyavik/theme-1-multi-site/publish"
	"github.com/indyavik/theme-1-multi-site/schema"
	"github.com/indyavik/theme-1-multi-site/sitedoc"
	"github.com/indyavik/theme-1-multi-site/sitepubsub"
	"github.com/indyavik/theme-1-multi-site/sitestorage"
)

// Options configures an edit session.
type Options struct {
	// SiteID identifies the site being edited; it keys drafts, snapshots
	// and message topics.
	SiteID common.SiteID
	// PageType is the page whose section list this session edits. Defaults
	// to "home".
	PageType string
	// ActiveLocale is the locale edits are written for. Defaults to the
	// document's default locale.
	ActiveLocale string
	// ContextKey/ContextValue scope the session to a sub-page instance.
	ContextKey   string
	ContextValue string
	// SnowflakeNode distinguishes section id generators across processes.
	SnowflakeNode int64
	// Drafts persists the merged working state after every edit. Optional.
	Drafts *sitestorage.DraftStore
	// Snapshots persists published documents. Optional.
	Snapshots *sitestorage.SnapshotStore
	// Bridge receives editor events after every mutation. Optional.
	Bridge sitepubsub.Publisher
	// Logger for session diagnostics. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultOptions creates Options with default values.
func DefaultOptions() *Options {
	return &Options{
		PageType:      "home",
		SnowflakeNode: 1,
		Logger:        zerolog.Nop(),
	}
}

// Editor implements sitepubsub.EditorAPI so a Dispatcher can drive it.
var _ sitepubsub.EditorAPI = (*Editor)(nil)

// Editor is one edit session over a site document. It is not safe for
// concurrent use; a session belongs to one editing surface.
type Editor struct {
	doc          *sitedoc.Document
	registry     *schema.Registry
	resolver     *schema.Resolver
	locales      *locale.Resolver
	overlay      *overlay.Store
	sections     *SectionRegistry
	builder      *publish.Builder
	drafts       *sitestorage.DraftStore
	snapshots    *sitestorage.SnapshotStore
	bridge       sitepubsub.Publisher
	logger       zerolog.Logger
	siteID       common.SiteID
	sessionID    common.SessionID
	pageType     string
	activeLocale string

	// structural marks section list changes, which live in the registry
	// rather than the overlay.
	structural bool
}

// NewEditor starts an edit session over doc with the given schema registry.
func NewEditor(doc *sitedoc.Document, registry *schema.Registry, opts *Options) *Editor {
	if opts == nil {
		opts = DefaultOptions()
	}
	pageType := opts.PageType
	if pageType == "" {
		pageType = "home"
	}
	activeLocale := opts.ActiveLocale
	if activeLocale == "" {
		activeLocale = doc.DefaultLocale()
	}

	ov := overlay.NewStore()
	locales := locale.NewResolver(doc.DefaultLocale(), doc.Locales()...)

	e := &Editor{
		doc:       doc,
		registry:  registry,
		resolver:  schema.NewResolver(registry),
		locales:   locales,
		overlay:   ov,
		builder:   publish.NewBuilder(locales),
		drafts:    opts.Drafts,
		snapshots: opts.Snapshots,
		bridge:    opts.Bridge,
		logger:    opts.Logger,
		siteID:    opts.SiteID,
		sessionID: common.NewSessionID(),

		pageType:     pageType,
		activeLocale: activeLocale,
	}
	e.sections = NewSectionRegistry(doc, pageType, registry, ov, &SectionRegistryOptions{
		ContextKey:    opts.ContextKey,
		ContextValue:  opts.ContextValue,
		SnowflakeNode: opts.SnowflakeNode,
	})
	return e
}

// SessionID returns this session's id.
func (e *Editor) SessionID() common.SessionID {
	return e.sessionID
}

// Document returns the session's base document.
func (e *Editor) Document() *sitedoc.Document {
	return e.doc
}

// Sections returns the session's live section registry.
func (e *Editor) Sections() *SectionRegistry {
	return e.sections
}

// Arrays returns the structural editor for repeatable lists.
func (e *Editor) Arrays() *ArrayEditor {
	return &ArrayEditor{editor: e}
}

// ActiveLocale returns the locale edits are currently written for.
func (e *Editor) ActiveLocale() string {
	return e.activeLocale
}

// SetActiveLocale switches the locale for subsequent reads and writes.
func (e *Editor) SetActiveLocale(loc string) {
	if loc != "" {
		e.activeLocale = loc
	}
}

// Dirty reports whether the session holds unpublished edits.
func (e *Editor) Dirty() bool {
	return e.structural || !e.overlay.Empty()
}

// FieldSchemaAt resolves the rule governing a path through the live section
// list.
func (e *Editor) FieldSchemaAt(path string) schema.FieldSchema {
	return e.resolver.FieldSchemaAt(path, e.sections)
}

// Value returns the merged value at path as the editing surface should show
// it: base plus overlay, with localized fields resolved to the active
// locale.
func (e *Editor) Value(path string) any {
	raw := e.rawValue(path)
	if fs := e.FieldSchemaAt(path); fs != nil && fs.IsLocalized() {
		return e.locales.Resolve(raw, e.activeLocale).Value
	}
	return raw
}

// TranslationStatus reports how the value at path resolves for the active
// locale: the effective string, whether it is a real translation or a
// fallback, and which locales hold values.
func (e *Editor) TranslationStatus(path string) locale.Resolved {
	return e.locales.Resolve(e.rawValue(path), e.activeLocale)
}

// UpdateField records a field-level edit at path. Writes to unknown or
// non-editable paths and values over a field's length limit are silently
// ignored: the editing surface disables those controls, and a race between
// surface and engine must not corrupt the session. On accepted edits the
// draft is saved and an event emitted.
func (e *Editor) UpdateField(ctx context.Context, path string, value any) error {
	fs := e.FieldSchemaAt(path)
	if fs == nil || !fs.IsEditable() {
		e.logger.Debug().Str("path", path).Msg("ignoring edit to non-editable path")
		return nil
	}
	if exceedsMaxLength(fs, value) {
		e.logger.Debug().Str("path", path).Msg("ignoring edit over length limit")
		return nil
	}
	if fs.IsLocalized() {
		if s, ok := value.(string); ok {
			value = localizedToTree(e.locales.Promote(e.rawValue(path), e.activeLocale, s))
		}
	}
	e.write(path, value)
	return e.afterEdit(ctx, sitepubsub.EditorEvent{
		Kind:   sitepubsub.EventFieldUpdated,
		Path:   path,
		Locale: e.activeLocale,
	})
}

// Translate writes a value for one specific locale at path, regardless of
// the active locale. Non-localized or non-editable paths are ignored.
func (e *Editor) Translate(ctx context.Context, path, loc string, value string) error {
	fs := e.FieldSchemaAt(path)
	if fs == nil || !fs.IsEditable() || !fs.IsLocalized() || loc == "" {
		e.logger.Debug().Str("path", path).Str("locale", loc).Msg("ignoring translation")
		return nil
	}
	e.write(path, localizedToTree(e.locales.Promote(e.rawValue(path), loc, value)))
	return e.afterEdit(ctx, sitepubsub.EditorEvent{
		Kind:   sitepubsub.EventFieldUpdated,
		Path:   path,
		Locale: loc,
	})
}

// CanAddSection reports whether a section of the given type may be added.
func (e *Editor) CanAddSection(sectionType string) bool {
	return e.sections.CanAdd(sectionType)
}

// AddSection inserts a new section at position and returns it, or nil when
// the type is unknown, not allowed here, or a singleton already present.
func (e *Editor) AddSection(ctx context.Context, sectionType, region string, position int) *sitedoc.Section {
	s := e.sections.Add(sectionType, region, position)
	if s == nil {
		return nil
	}
	e.finishStructural(ctx, sitepubsub.EditorEvent{
		Kind:        sitepubsub.EventSectionAdded,
		SectionID:   s.ID,
		SectionType: s.Type,
		Position:    position,
	})
	return s
}

// RemoveSection deletes a section and its pending edits. It reports whether
// anything changed.
func (e *Editor) RemoveSection(ctx context.Context, id string) bool {
	if !e.sections.Remove(id) {
		return false
	}
	e.finishStructural(ctx, sitepubsub.EditorEvent{
		Kind:      sitepubsub.EventSectionRemoved,
		SectionID: id,
	})
	return true
}

// MoveSection reorders a section to a new index. It reports whether
// anything changed.
func (e *Editor) MoveSection(ctx context.Context, id string, position int) bool {
	if !e.sections.Move(id, position) {
		return false
	}
	e.finishStructural(ctx, sitepubsub.EditorEvent{
		Kind:      sitepubsub.EventSectionMoved,
		SectionID: id,
		Position:  position,
	})
	return true
}

// SetSectionEnabled toggles a section's rendering. It reports whether the
// section exists.
func (e *Editor) SetSectionEnabled(ctx context.Context, id string, enabled bool) bool {
	if !e.sections.SetEnabled(id, enabled) {
		return false
	}
	e.finishStructural(ctx, sitepubsub.EditorEvent{
		Kind:      sitepubsub.EventSectionToggled,
		SectionID: id,
	})
	return true
}

// Publish assembles the publish payload, persists it, and resets the
// session on success. On a persistence failure the overlay and draft are
// left intact so the session can retry.
func (e *Editor) Publish(ctx context.Context) (*sitedoc.Document, error) {
	published := e.builder.Build(e.doc, e.overlay.Snapshot(), e.pageType, e.activeLocale, e.sections.Sections())

	if e.snapshots != nil {
		if err := e.snapshots.Save(ctx, e.siteID, published); err != nil {
			return nil, err
		}
	}

	// Continue editing from the merged view rather than the published one:
	// the publish payload has locale maps collapsed, and adopting it would
	// lose the other locales' values.
	merged := e.workingDocument()
	e.doc = merged
	e.overlay.Discard()
	e.sections.Reset(merged)
	e.structural = false
	if e.drafts != nil {
		if err := e.drafts.Delete(ctx, e.siteID); err != nil && !common.IsNotFound(err) {
			e.logger.Warn().Err(err).Msg("failed to delete draft after publish")
		}
	}
	e.emit(ctx, sitepubsub.EditorEvent{Kind: sitepubsub.EventPublished})
	return published, nil
}

// Discard drops every pending edit, restores the section list from the
// base document, and deletes the draft.
func (e *Editor) Discard(ctx context.Context) error {
	e.overlay.Discard()
	e.sections.Reset(e.doc)
	e.structural = false
	if e.drafts != nil {
		if err := e.drafts.Delete(ctx, e.siteID); err != nil && !common.IsNotFound(err) {
			return err
		}
	}
	e.emit(ctx, sitepubsub.EditorEvent{Kind: sitepubsub.EventDiscarded})
	return nil
}

// RestoreDraft adopts a previously saved draft as the session's base
// document. It reports whether a draft existed.
func (e *Editor) RestoreDraft(ctx context.Context) (bool, error) {
	if e.drafts == nil {
		return false, nil
	}
	doc, err := e.drafts.Load(ctx, e.siteID)
	if err != nil {
		if common.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	e.doc = doc
	e.overlay.Discard()
	e.sections.Reset(doc)
	e.structural = false
	return true, nil
}

// rawValue returns the merged value at path without locale resolution.
// Section paths read through the live section list so removed sections
// resolve to nothing and added ones to their derived data.
func (e *Editor) rawValue(path string) any {
	segs := docpath.Split(path)
	if len(segs) == 0 {
		return nil
	}

	if segs[0] == "sections" {
		if len(segs) < 2 {
			return nil
		}
		s := e.sections.Section(segs[1])
		if s == nil {
			return nil
		}
		if len(segs) == 2 {
			return s.ToMap()
		}
		return docpath.Get(s.Data, docpath.Join(segs[2:]...))
	}

	head := segs[0]
	base := e.doc.ValueAt(head)
	over, ok := e.overlay.Value(head)
	if !ok {
		if len(segs) == 1 {
			return base
		}
		return docpath.Get(base, docpath.Join(segs[1:]...))
	}
	merged := overlay.Merge(base, over)
	if len(segs) == 1 {
		return merged
	}
	return docpath.Get(merged, docpath.Join(segs[1:]...))
}

// write records value in the overlay. A path addressed through an array
// index becomes an explicit per-index patch anchored at the first numeric
// segment, so untouched sibling indices keep their base values; all other
// paths are plain sets with base-document gap filling.
func (e *Editor) write(path string, value any) {
	segs := docpath.Split(path)
	for i, seg := range segs {
		idx, ok := docpath.Index(seg)
		if !ok {
			continue
		}
		arrayPath := docpath.Join(segs[:i]...)
		rest := docpath.Join(segs[i+1:]...)
		entry := value
		if rest != "" {
			pending, _ := e.overlay.Item(arrayPath, idx)
			entry = docpath.SetWithBase(pending, rest, value, e.rawItem(arrayPath, idx))
		}
		e.overlay.SetItem(arrayPath, idx, entry)
		return
	}
	e.overlay.Set(path, value, e.baseRootFor(path))
}

// writeArray records a complete replacement of the array at path.
func (e *Editor) writeArray(ctx context.Context, path string, items []any) error {
	e.overlay.Set(path, items, e.baseRootFor(path))
	return e.afterEdit(ctx, sitepubsub.EditorEvent{
		Kind: sitepubsub.EventFieldUpdated,
		Path: path,
	})
}

// rawItem returns the merged current element at index of the array at path.
func (e *Editor) rawItem(path string, index int) any {
	arr, _ := e.rawValue(path).([]any)
	if index >= 0 && index < len(arr) {
		return arr[index]
	}
	return nil
}

// baseRootFor returns the base tree used for array gap filling when writing
// path: the merged section data for section paths, the document root for
// site paths.
func (e *Editor) baseRootFor(path string) any {
	segs := docpath.Split(path)
	if len(segs) == 0 {
		return nil
	}
	if segs[0] == "sections" {
		if len(segs) < 2 {
			return nil
		}
		s := e.sections.Section(segs[1])
		if s == nil {
			return nil
		}
		return map[string]any{"sections": map[string]any{segs[1]: s.Data}}
	}
	return e.doc.Root()
}

// afterEdit persists the draft and emits ev. A draft persistence failure is
// returned so the surface can warn; the in-memory edit itself stands.
func (e *Editor) afterEdit(ctx context.Context, ev sitepubsub.EditorEvent) error {
	if e.drafts != nil {
		if err := e.drafts.Save(ctx, e.siteID, e.workingDocument()); err != nil {
			return err
		}
	}
	e.emit(ctx, ev)
	return nil
}

// finishStructural is afterEdit for the bool-returning structural ops,
// downgrading a draft failure to a warning.
func (e *Editor) finishStructural(ctx context.Context, ev sitepubsub.EditorEvent) {
	e.structural = true
	if err := e.afterEdit(ctx, ev); err != nil {
		e.logger.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("failed to save draft")
	}
}

// workingDocument materializes the full merged working state: base plus
// overlay, with the live section list spliced into the page. Drafts store
// this view rather than the sparse overlay, so a restored draft needs no
// replay.
func (e *Editor) workingDocument() *sitedoc.Document {
	merged, _ := overlay.Merge(e.doc.Root(), e.overlay.Snapshot()).(map[string]any)
	if merged == nil {
		merged = map[string]any{}
	}
	secs := e.sections.Sections()
	arr := make([]any, 0, len(secs))
	for _, s := range secs {
		arr = append(arr, s.ToMap())
	}
	root := docpath.Set(merged, "pages."+e.pageType+".sections", arr).(map[string]any)
	delete(root, "sections")
	return sitedoc.New(root)
}

func (e *Editor) emit(ctx context.Context, ev sitepubsub.EditorEvent) {
	if e.bridge == nil {
		return
	}
	ev.SiteID = string(e.siteID)
	if err := e.bridge.PublishEvent(ctx, sitepubsub.EventTopic(string(e.siteID)), ev); err != nil {
		e.logger.Warn().Err(err).Str("kind", string(ev.Kind)).Msg("failed to publish editor event")
	}
}

// exceedsMaxLength reports whether a string value is longer than the
// field's declared limit, counted in runes.
func exceedsMaxLength(fs schema.FieldSchema, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	switch f := fs.(type) {
	case *schema.StringField:
		return f.MaxLength > 0 && len([]rune(s)) > f.MaxLength
	case *schema.RichtextField:
		return f.MaxLength > 0 && len([]rune(s)) > f.MaxLength
	}
	return false
}

// localizedToTree converts a locale map to the document's canonical
// string-keyed tree form.
func localizedToTree(m locale.Localized) map[string]any {
	out := make(map[string]any, len(m))
	for code, v := range m {
		out[code] = v
	}
	return out
}
