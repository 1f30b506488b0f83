package sitepubsub

import (
	"encoding/base64"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// EncodingFormat identifies the wire encoding of a message payload.
type EncodingFormat string

const (
	// EncodingFormatJSON encodes payloads as JSON.
	EncodingFormatJSON EncodingFormat = "json"
	// EncodingFormatBase64 encodes payloads as base64-wrapped JSON, for
	// transports that only pass printable text.
	EncodingFormatBase64 EncodingFormat = "base64"
)

// EncoderDecoder converts values to and from a payload encoding.
type EncoderDecoder interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, into any) error
}

// GetEncoderDecoder returns the codec for a format. An empty format means
// JSON.
func GetEncoderDecoder(format EncodingFormat) (EncoderDecoder, error) {
	switch format {
	case EncodingFormatJSON, "":
		return jsonCodec{}, nil
	case EncodingFormatBase64:
		return base64Codec{}, nil
	}
	return nil, errors.Errorf("unsupported encoding format %q", format)
}

type jsonCodec struct{}

func (jsonCodec) Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode message")
	}
	return data, nil
}

func (jsonCodec) Decode(data []byte, into any) error {
	if err := json.Unmarshal(data, into); err != nil {
		return errors.Wrap(err, "failed to decode message")
	}
	return nil
}

type base64Codec struct{}

func (base64Codec) Encode(v any) ([]byte, error) {
	data, err := jsonCodec{}.Encode(v)
	if err != nil {
		return nil, err
	}
	out := make([]byte, base64.StdEncoding.EncodedLen(len(data)))
	base64.StdEncoding.Encode(out, data)
	return out, nil
}

func (base64Codec) Decode(data []byte, into any) error {
	buf := make([]byte, base64.StdEncoding.DecodedLen(len(data)))
	n, err := base64.StdEncoding.Decode(buf, data)
	if err != nil {
		return errors.Wrap(err, "failed to decode base64 message")
	}
	return jsonCodec{}.Decode(buf[:n], into)
}
