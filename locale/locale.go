// Package locale resolves per-locale field values with fallback. A stored
// value is either a plain string (legacy, unlocalized storage) or a locale
// map keyed by locale code; a plain string is treated as equivalent to a map
// holding only the default locale.
package locale

import (
	"sort"
)

// Value is the tagged variant for a stored field value.
type Value interface {
	isValue()
}

// Plain is a value stored as a bare string.
type Plain string

func (Plain) isValue() {}

// Localized is a value stored as a locale-code → string map.
type Localized map[string]string

func (Localized) isValue() {}

// Classify converts a raw stored value into its Value variant. Malformed
// values (non-string, non-map, or maps with non-string entries) yield nil.
func Classify(raw any) Value {
	switch v := raw.(type) {
	case string:
		return Plain(v)
	case Localized:
		return v
	case map[string]string:
		return Localized(v)
	case map[string]any:
		out := make(Localized, len(v))
		for code, lv := range v {
			s, ok := lv.(string)
			if !ok {
				return nil
			}
			out[code] = s
		}
		return out
	}
	return nil
}

// Resolved carries the effective string for one locale plus translation
// status metadata for the editing UI.
type Resolved struct {
	Value            string
	IsTranslated     bool
	IsFallback       bool
	AvailableLocales []string
}

// Resolver resolves locale values against a document's default locale and
// known locale set.
type Resolver struct {
	defaultLocale string
	known         map[string]bool
}

// NewResolver creates a Resolver. The known locale list bounds which maps
// are treated as locale maps when flattening; it may be empty.
func NewResolver(defaultLocale string, locales ...string) *Resolver {
	known := make(map[string]bool, len(locales)+1)
	if defaultLocale != "" {
		known[defaultLocale] = true
	}
	for _, l := range locales {
		known[l] = true
	}
	return &Resolver{defaultLocale: defaultLocale, known: known}
}

// DefaultLocale returns the resolver's default locale.
func (r *Resolver) DefaultLocale() string {
	return r.defaultLocale
}

// Resolve returns the effective string for the given locale. A plain string
// counts as the default locale's value; a map falls back from the requested
// locale to the default locale to "".
func (r *Resolver) Resolve(raw any, loc string) Resolved {
	switch v := Classify(raw).(type) {
	case Plain:
		translated := loc == r.defaultLocale
		return Resolved{
			Value:            string(v),
			IsTranslated:     translated,
			IsFallback:       !translated,
			AvailableLocales: []string{r.defaultLocale},
		}
	case Localized:
		value, translated := v[loc]
		fallback := false
		if !translated {
			def, hasDefault := v[r.defaultLocale]
			value = def
			fallback = hasDefault
		}
		return Resolved{
			Value:            value,
			IsTranslated:     translated,
			IsFallback:       fallback,
			AvailableLocales: sortedKeys(v),
		}
	}
	return Resolved{}
}

// Promote writes value for loc into a locale map derived from raw. A plain
// string is first promoted into a map seeded with the default locale; a map
// is copied and extended. Malformed raw values start a fresh map.
func (r *Resolver) Promote(raw any, loc string, value string) Localized {
	out := Localized{}
	switch v := Classify(raw).(type) {
	case Plain:
		if string(v) != "" {
			out[r.defaultLocale] = string(v)
		}
	case Localized:
		for code, s := range v {
			out[code] = s
		}
	}
	out[loc] = value
	return out
}

// Collapse flattens raw to a single string for loc when it is a locale map;
// any other value is returned untouched.
func (r *Resolver) Collapse(raw any, loc string) any {
	m, ok := raw.(map[string]any)
	if !ok || !r.isLocaleMap(m) {
		return raw
	}
	if v, ok := m[loc]; ok {
		return v
	}
	if v, ok := m[r.defaultLocale]; ok {
		return v
	}
	return ""
}

// CollapseTree walks a nested structure and collapses every locale map it
// contains to a single string for loc.
func (r *Resolver) CollapseTree(v any, loc string) any {
	switch node := v.(type) {
	case map[string]any:
		if r.isLocaleMap(node) {
			return r.Collapse(node, loc)
		}
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = r.CollapseTree(child, loc)
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = r.CollapseTree(child, loc)
		}
		return out
	default:
		return v
	}
}

// isLocaleMap reports whether m looks like a locale map: non-empty, all
// values strings, and every key a known locale code when the resolver knows
// its locale set.
func (r *Resolver) isLocaleMap(m map[string]any) bool {
	if len(m) == 0 {
		return false
	}
	for code, v := range m {
		if _, ok := v.(string); !ok {
			return false
		}
		if len(r.known) > 0 && !r.known[code] {
			return false
		}
	}
	return true
}

func sortedKeys(m Localized) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
