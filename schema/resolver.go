package schema

import (
	"github.com/indyavik/theme-1-multi-site/docpath"
)

// SectionLookup reports the section type for a live section id. The live
// section list implements this; the resolver never reads the base document's
// section arrays directly, so structural edits are reflected immediately.
type SectionLookup interface {
	SectionTypeOf(id string) (string, bool)
}

// Resolver maps a dotted path to the field schema governing it.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver over the given registry.
func NewResolver(registry *Registry) *Resolver {
	return &Resolver{registry: registry}
}

// FieldSchemaAt resolves the rule for path. Paths under the "sections."
// prefix are resolved through the live section list's types; any other path
// resolves against the site-level schema. It returns nil on any unresolved
// segment and never panics.
func (r *Resolver) FieldSchemaAt(path string, sections SectionLookup) FieldSchema {
	if r == nil || r.registry == nil {
		return nil
	}
	segs := docpath.Split(path)
	if len(segs) == 0 {
		return nil
	}

	if segs[0] == "sections" {
		if len(segs) < 3 || sections == nil {
			return nil
		}
		typeName, ok := sections.SectionTypeOf(segs[1])
		if !ok {
			return nil
		}
		st := r.registry.SectionType(typeName)
		if st == nil {
			return nil
		}
		return walkFields(st.Schema, segs[2:])
	}

	return walkFields(r.registry.SiteSchema(), segs)
}

func walkFields(fields map[string]FieldSchema, segs []string) FieldSchema {
	if len(fields) == 0 || len(segs) == 0 {
		return nil
	}
	node, ok := fields[segs[0]]
	if !ok {
		return nil
	}
	return walkNode(node, segs[1:])
}

// walkNode descends the remaining segments. When the current node is an
// array and the next segment is numeric, the node is substituted with its
// item schema; per-item rules are never resolved by indexing into a schema
// array.
func walkNode(node FieldSchema, segs []string) FieldSchema {
	for len(segs) > 0 {
		seg := segs[0]
		switch n := node.(type) {
		case *ArrayField:
			if _, ok := docpath.Index(seg); !ok {
				return nil
			}
			node = n.ItemSchema()
		case *ObjectField:
			child, ok := n.Fields[seg]
			if !ok {
				return nil
			}
			node = child
		default:
			return nil
		}
		segs = segs[1:]
	}
	return node
}
