package sitestorage

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/indyavik/theme-1-multi-site/common"
	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

// StoreOptions configures the document stores.
type StoreOptions struct {
	// KeyPrefix namespaces entries in the underlying adapter.
	KeyPrefix string
	// Serializer converts documents to their stored form.
	Serializer DocumentSerializer
	// Logger receives store activity; defaults to a no-op logger.
	Logger zerolog.Logger
}

// DefaultStoreOptions returns the default store options.
func DefaultStoreOptions() *StoreOptions {
	return &StoreOptions{
		KeyPrefix:  "siteedit",
		Serializer: NewJSONSerializer(),
		Logger:     zerolog.Nop(),
	}
}

func (o *StoreOptions) normalized() *StoreOptions {
	out := DefaultStoreOptions()
	if o == nil {
		return out
	}
	if o.KeyPrefix != "" {
		out.KeyPrefix = o.KeyPrefix
	}
	if o.Serializer != nil {
		out.Serializer = o.Serializer
	}
	out.Logger = o.Logger
	return out
}

// DraftStore persists the merged working document per site after every
// edit, so an interrupted session can be restored.
type DraftStore struct {
	adapter    Adapter
	serializer DocumentSerializer
	keyPrefix  string
	logger     zerolog.Logger
}

// NewDraftStore creates a DraftStore over the given adapter.
func NewDraftStore(adapter Adapter, opts *StoreOptions) *DraftStore {
	o := opts.normalized()
	return &DraftStore{
		adapter:    adapter,
		serializer: o.Serializer,
		keyPrefix:  o.KeyPrefix,
		logger:     o.Logger,
	}
}

func (s *DraftStore) key(siteID common.SiteID) string {
	return fmt.Sprintf("%s:draft:%s", s.keyPrefix, siteID)
}

// Save writes the merged working document into the site's draft slot.
func (s *DraftStore) Save(ctx context.Context, siteID common.SiteID, doc *sitedoc.Document) error {
	data, err := s.serializer.Serialize(doc)
	if err != nil {
		return errors.Wrap(err, "failed to serialize draft")
	}
	if err := s.adapter.Put(ctx, s.key(siteID), data); err != nil {
		return errors.Wrapf(err, "failed to save draft for site %s", siteID)
	}
	s.logger.Debug().Str("site", siteID.String()).Int("bytes", len(data)).Msg("draft saved")
	return nil
}

// Load reads the site's draft slot. It returns common.ErrNotFound when the
// slot is empty.
func (s *DraftStore) Load(ctx context.Context, siteID common.SiteID) (*sitedoc.Document, error) {
	data, err := s.adapter.Get(ctx, s.key(siteID))
	if err != nil {
		if common.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to load draft for site %s", siteID)
	}
	return s.serializer.Deserialize(data)
}

// Delete clears the site's draft slot.
func (s *DraftStore) Delete(ctx context.Context, siteID common.SiteID) error {
	if err := s.adapter.Delete(ctx, s.key(siteID)); err != nil {
		return errors.Wrapf(err, "failed to delete draft for site %s", siteID)
	}
	s.logger.Debug().Str("site", siteID.String()).Msg("draft deleted")
	return nil
}

// SnapshotStore receives publish payloads: the flattened document snapshot
// persisted per site. It is the persistence collaborator boundary.
type SnapshotStore struct {
	adapter    Adapter
	serializer DocumentSerializer
	keyPrefix  string
	logger     zerolog.Logger
}

// NewSnapshotStore creates a SnapshotStore over the given adapter.
func NewSnapshotStore(adapter Adapter, opts *StoreOptions) *SnapshotStore {
	o := opts.normalized()
	return &SnapshotStore{
		adapter:    adapter,
		serializer: o.Serializer,
		keyPrefix:  o.KeyPrefix,
		logger:     o.Logger,
	}
}

func (s *SnapshotStore) key(siteID common.SiteID) string {
	return fmt.Sprintf("%s:site:%s", s.keyPrefix, siteID)
}

// Save persists a published document snapshot for the site.
func (s *SnapshotStore) Save(ctx context.Context, siteID common.SiteID, doc *sitedoc.Document) error {
	data, err := s.serializer.Serialize(doc)
	if err != nil {
		return errors.Wrap(err, "failed to serialize snapshot")
	}
	if err := s.adapter.Put(ctx, s.key(siteID), data); err != nil {
		return errors.Wrapf(err, "failed to save snapshot for site %s", siteID)
	}
	s.logger.Info().Str("site", siteID.String()).Int("bytes", len(data)).Msg("snapshot saved")
	return nil
}

// Load reads the last published snapshot for the site.
func (s *SnapshotStore) Load(ctx context.Context, siteID common.SiteID) (*sitedoc.Document, error) {
	data, err := s.adapter.Get(ctx, s.key(siteID))
	if err != nil {
		if common.IsNotFound(err) {
			return nil, err
		}
		return nil, errors.Wrapf(err, "failed to load snapshot for site %s", siteID)
	}
	return s.serializer.Deserialize(data)
}
