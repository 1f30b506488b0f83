package sitedoc

import (
	"sort"

	json "github.com/goccy/go-json"

	"github.com/indyavik/theme-1-multi-site/docpath"
)

// Section is one content block instance on a page. For singleton section
// types the id equals the type; for repeatable types the id carries a unique
// suffix. Order induces the render order via ascending sort; disabled
// sections are excluded from rendering but kept in storage.
type Section struct {
	ID      string
	Type    string
	Enabled bool
	Region  string
	Order   int
	Data    map[string]any

	// ContextKey/ContextValue scope a section to a sub-page instance (for
	// example one instance per service slug). They serialize as a single
	// dynamic field named after ContextKey.
	ContextKey   string
	ContextValue string
}

// sectionFields are the fixed keys of a serialized section; anything else
// is a candidate context field.
var sectionFields = map[string]bool{
	"id":      true,
	"type":    true,
	"enabled": true,
	"region":  true,
	"order":   true,
	"data":    true,
}

// SectionFromMap parses a section from its serialized map form. Unknown
// shapes degrade to zero values; enabled defaults to true when absent.
func SectionFromMap(m map[string]any) *Section {
	s := &Section{Enabled: true}
	if v, ok := m["id"].(string); ok {
		s.ID = v
	}
	if v, ok := m["type"].(string); ok {
		s.Type = v
	}
	if v, ok := m["enabled"].(bool); ok {
		s.Enabled = v
	}
	if v, ok := m["region"].(string); ok {
		s.Region = v
	}
	s.Order = intValue(m["order"])
	if v, ok := m["data"].(map[string]any); ok {
		s.Data = docpath.CloneValue(v).(map[string]any)
	} else {
		s.Data = map[string]any{}
	}

	// A single extra string-valued key is the context stamp. Keys are
	// scanned in sorted order so parsing is deterministic.
	extra := make([]string, 0, 1)
	for k := range m {
		if !sectionFields[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		if v, ok := m[k].(string); ok {
			s.ContextKey = k
			s.ContextValue = v
			break
		}
	}
	return s
}

// ToMap serializes the section to its map form, inlining the context stamp.
func (s *Section) ToMap() map[string]any {
	m := map[string]any{
		"id":      s.ID,
		"type":    s.Type,
		"enabled": s.Enabled,
		"region":  s.Region,
		"order":   s.Order,
		"data":    docpath.CloneValue(s.Data),
	}
	if s.Data == nil {
		m["data"] = map[string]any{}
	}
	if s.ContextKey != "" {
		m[s.ContextKey] = s.ContextValue
	}
	return m
}

// Clone returns a deep copy of the section.
func (s *Section) Clone() *Section {
	out := *s
	if s.Data != nil {
		out.Data = docpath.CloneValue(s.Data).(map[string]any)
	}
	return &out
}

// MarshalJSON implements the json.Marshaler interface using the map form.
func (s *Section) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToMap())
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Section) UnmarshalJSON(data []byte) error {
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*s = *SectionFromMap(m)
	return nil
}

// SortSections sorts sections in place by ascending order, ties kept stable.
func SortSections(sections []*Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Order < sections[j].Order
	})
}

// intValue reads an int out of a value that may have been decoded from JSON
// as float64.
func intValue(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}
