package domain

import (
	"bytes"
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Timestamp keeps an instant exactly as it was stored.
// Older clients wrote ISO strings, epoch seconds or {seconds, nanoseconds} objects
// instead of BSON dates; interpretation is left to the analytics bucketer.
type Timestamp struct {
	raw interface{}
}

// At wraps a time.Time.
func At(t time.Time) Timestamp {
	return Timestamp{raw: t}
}

// RawTimestamp wraps an arbitrary stored value.
func RawTimestamp(v interface{}) Timestamp {
	return Timestamp{raw: v}
}

// Raw returns the stored value.
func (t Timestamp) Raw() interface{} {
	return t.raw
}

func (t Timestamp) IsZero() bool {
	if t.raw == nil {
		return true
	}
	if tt, ok := t.raw.(time.Time); ok {
		return tt.IsZero()
	}
	return false
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.raw == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.raw)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}
	t.raw = v
	return nil
}

func (t Timestamp) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch v := t.raw.(type) {
	case nil:
		return bson.TypeNull, nil, nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return bson.MarshalValue(i)
		}
		if f, err := v.Float64(); err == nil {
			return bson.MarshalValue(f)
		}
		return bson.MarshalValue(v.String())
	default:
		return bson.MarshalValue(v)
	}
}

func (t *Timestamp) UnmarshalBSONValue(bt bsontype.Type, data []byte) error {
	rv := bson.RawValue{Type: bt, Value: data}
	switch bt {
	case bson.TypeNull, bson.TypeUndefined:
		t.raw = nil
		return nil
	case bson.TypeDateTime:
		t.raw = rv.Time().UTC()
		return nil
	}
	var v interface{}
	if err := rv.Unmarshal(&v); err != nil {
		return err
	}
	t.raw = v
	return nil
}
