package crossplatformv1

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype the service messages travel under
// (content-type "application/grpc+json").
const CodecName = "json"

// ErrInvalidUTF8 is returned by the codec for string fields that are not
// valid UTF-8. encoding/json would otherwise replace the bad bytes with
// U+FFFD and the payload would change in transit.
var ErrInvalidUTF8 = errors.New("string field contains invalid UTF-8")

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) {
	if !validUTF8(v) {
		return nil, fmt.Errorf("crossplatformv1: marshal %T: %w", v, ErrInvalidUTF8)
	}
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if !utf8.Valid(data) {
		return fmt.Errorf("crossplatformv1: unmarshal %T: %w", v, ErrInvalidUTF8)
	}
	return json.Unmarshal(data, v)
}

func (jsonCodec) Name() string { return CodecName }

func validUTF8(v any) bool {
	switch m := v.(type) {
	case *Resource:
		return utf8.ValidString(m.GetPayload())
	case *SaveRequest:
		return m == nil || utf8.ValidString(m.Resource.GetPayload())
	case *GetListResponse:
		if m == nil {
			return true
		}
		for _, r := range m.Resources {
			if !utf8.ValidString(r.GetPayload()) {
				return false
			}
		}
	}
	return true
}

func init() {
	encoding.RegisterCodec(jsonCodec{})
}
