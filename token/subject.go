package token

import (
	"bytes"
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/auth0/go-stateless-auth/core"
)

// SubjectCodec converts a subject to bytes and back. Serialize must be
// deterministic: equal subjects produce equal bytes. Empty output is allowed;
// Deserialize then receives an empty slice and decides whether it is valid.
type SubjectCodec[T any] interface {
	Serialize(subject T) ([]byte, error)
	Deserialize(data []byte) (T, error)
}

// MsgpackCodec serializes subjects with MessagePack. Map keys are sorted so
// that repeated serialization of equal subjects is byte-for-byte identical.
// It is the default SubjectCodec.
type MsgpackCodec[T any] struct{}

// Serialize implements SubjectCodec.
func (MsgpackCodec[T]) Serialize(subject T) ([]byte, error) {
	var buf bytes.Buffer

	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(subject); err != nil {
		return nil, core.NewError(core.KindSerialization, "could not serialize subject", err)
	}

	return buf.Bytes(), nil
}

// Deserialize implements SubjectCodec. Trailing bytes after the encoded
// subject are rejected.
func (MsgpackCodec[T]) Deserialize(data []byte) (T, error) {
	var subject T

	r := bytes.NewReader(data)
	if err := msgpack.NewDecoder(r).Decode(&subject); err != nil {
		var zero T
		return zero, core.NewError(core.KindSerialization, "could not deserialize subject", err)
	}
	if r.Len() != 0 {
		var zero T
		return zero, core.NewError(core.KindSerialization, "could not deserialize subject: trailing data", nil)
	}

	return subject, nil
}

// JSONCodec serializes subjects as JSON. Use it when the token payload must
// stay readable by clients that do not speak MessagePack.
type JSONCodec[T any] struct{}

// Serialize implements SubjectCodec.
func (JSONCodec[T]) Serialize(subject T) ([]byte, error) {
	data, err := json.Marshal(subject)
	if err != nil {
		return nil, core.NewError(core.KindSerialization, "could not serialize subject", err)
	}
	return data, nil
}

// Deserialize implements SubjectCodec.
func (JSONCodec[T]) Deserialize(data []byte) (T, error) {
	var subject T
	if err := json.Unmarshal(data, &subject); err != nil {
		var zero T
		return zero, core.NewError(core.KindSerialization, "could not deserialize subject", err)
	}
	return subject, nil
}
