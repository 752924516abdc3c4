package reviewrpc

import (
	"github.com/bytedance/sonic"
	"google.golang.org/grpc/encoding"
)

// CodecName is the gRPC content-subtype the review service speaks.
const CodecName = "json"

// Codec encodes review messages as JSON.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

func (Codec) Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

func (Codec) Name() string {
	return CodecName
}

func init() {
	encoding.RegisterCodec(Codec{})
}
