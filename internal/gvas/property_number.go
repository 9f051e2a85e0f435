package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// IntProperty wraps a 32-bit signed integer.
type IntProperty struct {
	Value int32
}

// FloatProperty wraps a 32-bit float.
type FloatProperty struct {
	Value float32
}

// DoubleProperty wraps a 64-bit float.
type DoubleProperty struct {
	Value float64
}

func init() {
	registerProperty("IntProperty", func(r *codecio.Reader) (PropertyType, error) {
		if err := assertNumberSize(r, 4); err != nil {
			return nil, err
		}
		v, err := r.ReadI32()
		if err != nil {
			return nil, err
		}
		return &IntProperty{Value: v}, nil
	})
	registerProperty("FloatProperty", func(r *codecio.Reader) (PropertyType, error) {
		if err := assertNumberSize(r, 4); err != nil {
			return nil, err
		}
		v, err := r.ReadF32()
		if err != nil {
			return nil, err
		}
		return &FloatProperty{Value: v}, nil
	})
	registerProperty("DoubleProperty", func(r *codecio.Reader) (PropertyType, error) {
		if err := assertNumberSize(r, 8); err != nil {
			return nil, err
		}
		v, err := r.ReadF64()
		if err != nil {
			return nil, err
		}
		return &DoubleProperty{Value: v}, nil
	})

	registerPropertyJSON("IntProperty", func(body []byte) (PropertyType, error) {
		var v int32
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return &IntProperty{Value: v}, nil
	})
	registerPropertyJSON("FloatProperty", func(body []byte) (PropertyType, error) {
		var v float32
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return &FloatProperty{Value: v}, nil
	})
	registerPropertyJSON("DoubleProperty", func(body []byte) (PropertyType, error) {
		var v float64
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return &DoubleProperty{Value: v}, nil
	})
}

// assertNumberSize reads the size field and the separator shared by the
// fixed-width numeric properties and checks size against the expected width.
func assertNumberSize(r *codecio.Reader, want uint64) error {
	size, err := r.ReadU64()
	if err != nil {
		return err
	}
	sep, err := r.ReadU8()
	if err != nil {
		return err
	}
	if size != want {
		return Assertionf(r.Offset(), "numeric property size must be %d, got %d", want, size)
	}
	if sep != 0 {
		return Assertionf(r.Offset(), "numeric property separator must be 0, got %d", sep)
	}
	return nil
}

func (p *IntProperty) TypeName() string { return "IntProperty" }
func (p *IntProperty) ByteSize() int    { return 8 + 1 + 4 }
func (p *IntProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(4); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return w.WriteI32(p.Value)
}
func (p *IntProperty) JSONValue() (any, error) { return p.Value, nil }

func (p *FloatProperty) TypeName() string { return "FloatProperty" }
func (p *FloatProperty) ByteSize() int    { return 8 + 1 + 4 }
func (p *FloatProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(4); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return w.WriteF32(p.Value)
}
func (p *FloatProperty) JSONValue() (any, error) { return p.Value, nil }

func (p *DoubleProperty) TypeName() string { return "DoubleProperty" }
func (p *DoubleProperty) ByteSize() int    { return 8 + 1 + 8 }
func (p *DoubleProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(8); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return w.WriteF64(p.Value)
}
func (p *DoubleProperty) JSONValue() (any, error) { return p.Value, nil }
