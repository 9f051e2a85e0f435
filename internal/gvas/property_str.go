package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// StrProperty, NameProperty and ObjectProperty share an identical wire
// format (size, separator, FString value) and JSON projection (the inner
// string, transparently).

type StrProperty struct{ Value FString }
type NameProperty struct{ Value FString }
type ObjectProperty struct{ Value FString }

func init() {
	registerProperty("StrProperty", func(r *codecio.Reader) (PropertyType, error) {
		v, err := readStringBody(r)
		if err != nil {
			return nil, err
		}
		return &StrProperty{Value: v}, nil
	})
	registerProperty("NameProperty", func(r *codecio.Reader) (PropertyType, error) {
		v, err := readStringBody(r)
		if err != nil {
			return nil, err
		}
		return &NameProperty{Value: v}, nil
	})
	registerProperty("ObjectProperty", func(r *codecio.Reader) (PropertyType, error) {
		v, err := readStringBody(r)
		if err != nil {
			return nil, err
		}
		return &ObjectProperty{Value: v}, nil
	})

	registerPropertyJSON("StrProperty", func(body []byte) (PropertyType, error) {
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, err
		}
		return &StrProperty{Value: NewFString(s)}, nil
	})
	registerPropertyJSON("NameProperty", func(body []byte) (PropertyType, error) {
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, err
		}
		return &NameProperty{Value: NewFString(s)}, nil
	})
	registerPropertyJSON("ObjectProperty", func(body []byte) (PropertyType, error) {
		var s string
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, err
		}
		return &ObjectProperty{Value: NewFString(s)}, nil
	})
}

func readStringBody(r *codecio.Reader) (FString, error) {
	size, err := r.ReadU64()
	if err != nil {
		return FString{}, err
	}
	sep, err := r.ReadU8()
	if err != nil {
		return FString{}, err
	}
	if sep != 0 {
		return FString{}, Assertionf(r.Offset(), "string property separator must be 0, got %d", sep)
	}
	value, err := ReadFString(r)
	if err != nil {
		return FString{}, err
	}
	if uint64(value.ByteSize()) != size {
		return FString{}, Assertionf(r.Offset(), "string property declared size %d does not match actual %d", size, value.ByteSize())
	}
	return value, nil
}

func writeStringBody(w *codecio.Writer, value FString) error {
	if err := w.WriteU64(uint64(value.ByteSize())); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	return value.WriteTo(w)
}

func stringBodyByteSize(value FString) int {
	return 8 + 1 + value.ByteSize()
}

func (p *StrProperty) TypeName() string                  { return "StrProperty" }
func (p *StrProperty) ByteSize() int                      { return stringBodyByteSize(p.Value) }
func (p *StrProperty) WriteBody(w *codecio.Writer) error  { return writeStringBody(w, p.Value) }
func (p *StrProperty) JSONValue() (any, error)            { return p.Value.Value, nil }

func (p *NameProperty) TypeName() string                 { return "NameProperty" }
func (p *NameProperty) ByteSize() int                     { return stringBodyByteSize(p.Value) }
func (p *NameProperty) WriteBody(w *codecio.Writer) error { return writeStringBody(w, p.Value) }
func (p *NameProperty) JSONValue() (any, error)           { return p.Value.Value, nil }

func (p *ObjectProperty) TypeName() string                 { return "ObjectProperty" }
func (p *ObjectProperty) ByteSize() int                     { return stringBodyByteSize(p.Value) }
func (p *ObjectProperty) WriteBody(w *codecio.Writer) error { return writeStringBody(w, p.Value) }
func (p *ObjectProperty) JSONValue() (any, error)           { return p.Value.Value, nil }
