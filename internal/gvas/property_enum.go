package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// EnumProperty carries the enum's type name and the selected value's fully
// qualified name (e.g. "EFoo::Bar").
type EnumProperty struct {
	EnumType FString
	Value    FString
}

func init() {
	registerProperty("EnumProperty", func(r *codecio.Reader) (PropertyType, error) {
		size, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		enumType, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		sep, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if sep != 0 {
			return nil, Assertionf(r.Offset(), "EnumProperty separator must be 0, got %d", sep)
		}
		value, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		if uint64(value.ByteSize()) != size {
			return nil, Assertionf(r.Offset(), "EnumProperty declared size %d does not match actual %d", size, value.ByteSize())
		}
		return &EnumProperty{EnumType: enumType, Value: value}, nil
	})
	registerPropertyJSON("EnumProperty", func(body []byte) (PropertyType, error) {
		var v struct {
			EnumType string `json:"enum_type"`
			Value    string `json:"value"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return &EnumProperty{EnumType: NewFString(v.EnumType), Value: NewFString(v.Value)}, nil
	})
}

func (p *EnumProperty) TypeName() string { return "EnumProperty" }

func (p *EnumProperty) ByteSize() int {
	return 8 + p.EnumType.ByteSize() + 1 + p.Value.ByteSize()
}

func (p *EnumProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(uint64(p.Value.ByteSize())); err != nil {
		return err
	}
	if err := p.EnumType.WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return p.Value.WriteTo(w)
}

func (p *EnumProperty) JSONValue() (any, error) {
	return struct {
		EnumType string `json:"enum_type"`
		Value    string `json:"value"`
	}{EnumType: p.EnumType.Value, Value: p.Value.Value}, nil
}
