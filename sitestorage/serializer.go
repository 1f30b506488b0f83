package sitestorage

import (
	"github.com/pkg/errors"

	"github.com/indyavik/theme-1-multi-site/sitedoc"
)

// jsonSerializer stores documents as JSON.
type jsonSerializer struct{}

// NewJSONSerializer creates the default DocumentSerializer.
func NewJSONSerializer() DocumentSerializer {
	return &jsonSerializer{}
}

func (jsonSerializer) Serialize(doc *sitedoc.Document) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("document cannot be nil")
	}
	return doc.ToJSON()
}

func (jsonSerializer) Deserialize(data []byte) (*sitedoc.Document, error) {
	return sitedoc.FromJSON(data)
}
