package siteedit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/indyavik/theme-1-multi-site/schema"
	"github.com/indyavik/theme-1-multi-site/sitedoc"
	"github.com/indyavik/theme-1-multi-site/sitestorage"
)

const baseDocumentJSON = `{
	"meta": {"schemaVersion": "1.0", "defaultLocale": "en", "locales": ["en", "es"]},
	"siteName": "Acme Plumbing",
	"contact": {"email": "info@acme.test"},
	"pages": {
		"home": {
			"sections": [
				{"id": "hero", "type": "hero", "enabled": true, "region": "main", "order": 10,
				 "data": {"title": {"en": "Welcome"}, "subtitle": "Plumbing done right", "ctaUrl": "/contact"}},
				{"id": "services-1", "type": "services", "enabled": true, "region": "main", "order": 20,
				 "data": {"heading": {"en": "Services"}, "items": [
					{"name": "Drain cleaning", "price": "$100"},
					{"name": "Leak repair", "price": "$150"},
					{"name": "Water heaters", "price": "$900"}
				 ]}}
			]
		}
	}
}`

func testRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.RegisterSectionType(&schema.SectionType{
		Name:        "hero",
		DisplayName: "Hero",
		Singleton:   true,
		Region:      "main",
		Schema: map[string]schema.FieldSchema{
			"title":    &schema.StringField{Editable: true, Localized: true, MaxLength: 60},
			"subtitle": &schema.StringField{Editable: true, Localized: true},
			"ctaUrl":   &schema.StringField{},
		},
	})
	reg.RegisterSectionType(&schema.SectionType{
		Name:   "services",
		Region: "main",
		Schema: map[string]schema.FieldSchema{
			"heading": &schema.StringField{Editable: true, Localized: true},
			"items": &schema.ArrayField{
				Editable: true,
				MaxItems: 4,
				Item: &schema.ObjectField{Fields: map[string]schema.FieldSchema{
					"name":  &schema.StringField{Editable: true, Localized: true},
					"price": &schema.StringField{Editable: true},
				}},
			},
		},
	})
	reg.RegisterSectionType(&schema.SectionType{
		Name:           "testimonial",
		Region:         "main",
		AllowedRegions: []string{"main", "footer"},
		Schema: map[string]schema.FieldSchema{
			"quote": &schema.StringField{Editable: true, Localized: true},
		},
	})
	reg.RegisterPageType(&schema.PageType{
		Name:                "home",
		AllowedSectionTypes: []string{"hero", "services", "testimonial"},
	})
	reg.SetSiteField("siteName", &schema.StringField{Editable: true})
	reg.SetSiteField("contact", &schema.ObjectField{Fields: map[string]schema.FieldSchema{
		"email": &schema.StringField{Editable: true},
	}})
	return reg
}

func testDocument(t *testing.T) *sitedoc.Document {
	t.Helper()
	doc, err := sitedoc.FromJSON([]byte(baseDocumentJSON))
	require.NoError(t, err)
	return doc
}

type testFixture struct {
	editor    *Editor
	adapter   *sitestorage.MemoryAdapter
	drafts    *sitestorage.DraftStore
	snapshots *sitestorage.SnapshotStore
}

func newTestFixture(t *testing.T) *testFixture {
	t.Helper()
	adapter := sitestorage.NewMemoryAdapter()
	drafts := sitestorage.NewDraftStore(adapter, nil)
	snapshots := sitestorage.NewSnapshotStore(adapter, nil)

	opts := DefaultOptions()
	opts.SiteID = "acme-plumbing"
	opts.Drafts = drafts
	opts.Snapshots = snapshots

	return &testFixture{
		editor:    NewEditor(testDocument(t), testRegistry(), opts),
		adapter:   adapter,
		drafts:    drafts,
		snapshots: snapshots,
	}
}
