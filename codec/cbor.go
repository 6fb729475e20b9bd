package codec

import "github.com/fxamacker/cbor/v2"

// CBOR is a Codec backed by fxamacker/cbor. The zero value is NOT
// ready to use; construct with NewCBOR.
//
// Time values are encoded as RFC3339Nano so snapshots stay readable
// and stable across encoder versions.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// NewCBOR constructs a CBOR codec using preferred (unsorted) encode
// options, which are the smaller/faster defaults.
func NewCBOR[V any]() (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := (cbor.DecOptions{}).DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// Encode encodes v using the configured EncMode.
func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }

// Decode decodes b into a V using the configured DecMode.
func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.dec.Unmarshal(b, &v)
	return v, err
}

var _ Codec[struct{}] = CBOR[struct{}]{}
