package rivet

import "encoding/json"

// Codec converts request bodies to bytes and response bytes back into their
// declared shapes. Implementations must be deterministic: encoding the same
// value twice yields identical bytes, so compiled requests are reproducible.
type Codec interface {
	ContentType() string
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

type jsonCodec struct{}

// JSONCodec returns the default codec. Content-Type: application/json.
func JSONCodec() Codec { return jsonCodec{} }

func (jsonCodec) ContentType() string { return "application/json" }

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
