package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// BoolProperty stores a single boolean; unusually, its value lives in the
// header rather than after the separator (size is always 0).
type BoolProperty struct {
	Value bool
}

func init() {
	registerProperty("BoolProperty", func(r *codecio.Reader) (PropertyType, error) {
		size, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		if size != 0 {
			return nil, Assertionf(r.Offset(), "BoolProperty size must be 0, got %d", size)
		}
		value, err := ReadBool(r)
		if err != nil {
			return nil, err
		}
		sep, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if sep != 0 {
			return nil, Assertionf(r.Offset(), "BoolProperty separator must be 0, got %d", sep)
		}
		return &BoolProperty{Value: value}, nil
	})
	registerPropertyJSON("BoolProperty", func(body []byte) (PropertyType, error) {
		var v bool
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return &BoolProperty{Value: v}, nil
	})
}

func (p *BoolProperty) TypeName() string { return "BoolProperty" }

func (p *BoolProperty) ByteSize() int { return 8 + 1 + 1 }

func (p *BoolProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(0); err != nil {
		return err
	}
	if err := WriteBool(w, p.Value); err != nil {
		return err
	}
	return w.WriteU8(0)
}

func (p *BoolProperty) JSONValue() (any, error) { return p.Value, nil }
