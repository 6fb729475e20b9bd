package codec

import "encoding/json"

// JSON is a Codec backed by encoding/json. The zero value is ready to
// use; it is the default snapshot encoding.
type JSON[V any] struct{}

func (JSON[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSON[V]) Decode(b []byte) (V, error) {
	var v V
	err := json.Unmarshal(b, &v)
	return v, err
}

var _ Codec[struct{}] = JSON[struct{}]{}
