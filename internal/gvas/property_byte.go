package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// ByteProperty carries a raw byte payload alongside an inner type name
// (e.g. the enum type backing a byte-sized enum value in the source game).
type ByteProperty struct {
	InnerName FString
	Value     []byte
}

func init() {
	registerProperty("ByteProperty", func(r *codecio.Reader) (PropertyType, error) {
		size, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		innerName, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		sep, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if sep != 0 {
			return nil, Assertionf(r.Offset(), "ByteProperty separator must be 0, got %d", sep)
		}
		value, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		return &ByteProperty{InnerName: innerName, Value: append([]byte(nil), value...)}, nil
	})
	registerPropertyJSON("ByteProperty", func(body []byte) (PropertyType, error) {
		var v byteValueJSON
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		raw := make([]byte, len(v.Value))
		for i, b := range v.Value {
			raw[i] = byte(b)
		}
		return &ByteProperty{InnerName: NewFString(v.Name), Value: raw}, nil
	})
}

func (p *ByteProperty) TypeName() string { return "ByteProperty" }

func (p *ByteProperty) ByteSize() int {
	return 8 + p.InnerName.ByteSize() + 1 + len(p.Value)
}

func (p *ByteProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(uint64(len(p.Value))); err != nil {
		return err
	}
	if err := p.InnerName.WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return w.WriteBytes(p.Value)
}

// byteValueJSON is the JSON body of a ByteProperty: its inner type name
// alongside the raw payload as a JSON array of numbers (not a base64
// string, so the array-of-numbers requirement holds regardless of
// encoding/json's default []byte handling).
type byteValueJSON struct {
	Name  string `json:"name"`
	Value []int  `json:"value"`
}

func (p *ByteProperty) JSONValue() (any, error) {
	values := make([]int, len(p.Value))
	for i, b := range p.Value {
		values[i] = int(b)
	}
	return byteValueJSON{Name: p.InnerName.Value, Value: values}, nil
}
