// Package gvas implements the primitive, property, and struct-type layers
// of the tower-unite-save wire format: the typed value tree that a GVAS
// property list is built from, its byte-exact binary codec, and its JSON
// projection.
package gvas

import (
	"encoding/json"
	"fmt"

	"github.com/brecert/towersave/internal/codecio"
)

// PropertyType is the closed sum of the eleven property kinds. Each concrete
// type owns its own wire framing (size field, separator, type-specific
// header) via WriteBody; ByteSize reports exactly the bytes WriteBody
// emits. TypeName returns the wire tag used to select this variant on read
// and to reconstruct it on write.
type PropertyType interface {
	TypeName() string
	ByteSize() int
	WriteBody(w *codecio.Writer) error
	JSONValue() (any, error)
}

type propertyReader func(r *codecio.Reader) (PropertyType, error)

var propertyReaders = map[string]propertyReader{}

func registerProperty(name string, fn propertyReader) {
	propertyReaders[name] = fn
}

// Property is a named, typed value: the wire unit of a property list. Value
// is nil exactly when Name is the "None" sentinel, which terminates a list
// and carries no value.
type Property struct {
	Name  FString
	Value PropertyType
}

// IsNone reports whether this property is the list terminator.
func (p Property) IsNone() bool {
	return p.Value == nil
}

// ByteSize is the number of bytes WriteProperty emits for p.
func (p Property) ByteSize() int {
	size := p.Name.ByteSize()
	if p.Value != nil {
		size += NewFString(p.Value.TypeName()).ByteSize() + p.Value.ByteSize()
	}
	return size
}

// ReadProperty reads one name, and — unless the name is "None" — the type
// tag and type-specific body that follow it.
func ReadProperty(r *codecio.Reader) (Property, error) {
	name, err := ReadFString(r)
	if err != nil {
		return Property{}, err
	}
	if name.Value == "None" {
		return Property{Name: name}, nil
	}

	typeTag, err := ReadFString(r)
	if err != nil {
		return Property{}, err
	}

	readFn, ok := propertyReaders[typeTag.Value]
	if !ok {
		return Property{}, UnknownTag(r.Offset(), "PropertyType", typeTag.Value)
	}

	value, err := readFn(r)
	if err != nil {
		return Property{}, err
	}

	return Property{Name: name, Value: value}, nil
}

// WriteProperty writes the name, and — unless it is the "None" terminator —
// the type tag and type-specific body.
func WriteProperty(w *codecio.Writer, p Property) error {
	if err := p.Name.WriteTo(w); err != nil {
		return err
	}
	if p.Value == nil {
		return nil
	}
	if err := NewFString(p.Value.TypeName()).WriteTo(w); err != nil {
		return err
	}
	return p.Value.WriteBody(w)
}

// noneProperty is the wire terminator for a property list.
var noneProperty = Property{Name: NewFString("None")}

type propertyJSONUnmarshaler func(body []byte) (PropertyType, error)

var propertyJSONUnmarshalers = map[string]propertyJSONUnmarshaler{}

func registerPropertyJSON(name string, fn propertyJSONUnmarshaler) {
	propertyJSONUnmarshalers[name] = fn
}

// MarshalPropertyTypeJSON renders a PropertyType as the externally tagged
// union described by the format notes: { "<Kind>": <body> }.
func MarshalPropertyTypeJSON(p PropertyType) ([]byte, error) {
	value, err := p.JSONValue()
	if err != nil {
		return nil, err
	}
	body, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(map[string]json.RawMessage{p.TypeName(): body})
}

// UnmarshalPropertyTypeJSON parses the externally tagged union produced by
// MarshalPropertyTypeJSON back into a concrete PropertyType.
func UnmarshalPropertyTypeJSON(data []byte) (PropertyType, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	if len(wrapper) != 1 {
		return nil, &CodecError{Kind: ErrJSONSchema, Message: fmt.Sprintf("property object must have exactly one key, got %d", len(wrapper))}
	}
	for kind, body := range wrapper {
		fn, ok := propertyJSONUnmarshalers[kind]
		if !ok {
			return nil, &CodecError{Kind: ErrJSONSchema, Message: "unknown property kind", Token: kind}
		}
		return fn(body)
	}
	panic("unreachable")
}
