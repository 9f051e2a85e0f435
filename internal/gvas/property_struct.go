package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// StructProperty carries a struct-type tag (recorded in Value's own
// StructTypeName), an optional GUID, and the struct body itself.
type StructProperty struct {
	Guid  GUID
	Value StructType
}

func init() {
	registerProperty("StructProperty", func(r *codecio.Reader) (PropertyType, error) {
		size, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		tag, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		guid, err := ReadGUID(r)
		if err != nil {
			return nil, err
		}
		sep, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if sep != 0 {
			return nil, Assertionf(r.Offset(), "StructProperty separator must be 0, got %d", sep)
		}
		value, err := ReadStructType(r, tag.Value)
		if err != nil {
			return nil, err
		}
		if uint64(value.ByteSize()) != size {
			return nil, Assertionf(r.Offset(), "StructProperty declared size %d does not match actual %d", size, value.ByteSize())
		}
		return &StructProperty{Guid: guid, Value: value}, nil
	})
	registerPropertyJSON("StructProperty", func(body []byte) (PropertyType, error) {
		var v struct {
			StructType string          `json:"struct_type"`
			Guid       *GUID           `json:"guid,omitempty"`
			Value      json.RawMessage `json:"value"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		inner, err := UnmarshalStructTypeJSON(v.StructType, v.Value)
		if err != nil {
			return nil, err
		}
		p := &StructProperty{Value: inner}
		if v.Guid != nil {
			p.Guid = *v.Guid
		}
		return p, nil
	})
}

func (p *StructProperty) TypeName() string { return "StructProperty" }

func (p *StructProperty) ByteSize() int {
	return 8 + NewFString(p.Value.StructTypeName()).ByteSize() + p.Guid.ByteSize() + 1 + p.Value.ByteSize()
}

func (p *StructProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(uint64(p.Value.ByteSize())); err != nil {
		return err
	}
	if err := NewFString(p.Value.StructTypeName()).WriteTo(w); err != nil {
		return err
	}
	if err := p.Guid.WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return p.Value.WriteBody(w)
}

func (p *StructProperty) JSONValue() (any, error) {
	inner, err := p.Value.JSONValue()
	if err != nil {
		return nil, err
	}
	innerJSON, err := json.Marshal(inner)
	if err != nil {
		return nil, err
	}
	out := struct {
		StructType string          `json:"struct_type"`
		Guid       *GUID           `json:"guid,omitempty"`
		Value      json.RawMessage `json:"value"`
	}{
		StructType: p.Value.StructTypeName(),
		Value:      innerJSON,
	}
	if !p.Guid.IsZero() {
		out.Guid = &p.Guid
	}
	return out, nil
}
