package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// ArrayValue is the sum over the three accepted array element kinds,
// dispatched on the element-type tag carried by the enclosing
// ArrayProperty. ByteSize and WriteBody cover only the element-kind body —
// the shared count field is written by ArrayProperty itself.
type ArrayValue interface {
	ElementTypeName() string
	Count() int
	ByteSize() int
	WriteBody(w *codecio.Writer) error
	JSONValue() (any, error)
}

type arrayValueReader func(r *codecio.Reader, count int) (ArrayValue, error)

var arrayValueReaders = map[string]arrayValueReader{}

func registerArrayValue(name string, fn arrayValueReader) {
	arrayValueReaders[name] = fn
}

type arrayValueJSONUnmarshaler func(body []byte) (ArrayValue, error)

var arrayValueJSONUnmarshalers = map[string]arrayValueJSONUnmarshaler{}

func registerArrayValueJSON(name string, fn arrayValueJSONUnmarshaler) {
	arrayValueJSONUnmarshalers[name] = fn
}

// ArrayProperty is a counted, homogeneous array of one of the three
// accepted element kinds.
type ArrayProperty struct {
	ElementType string
	Value       ArrayValue
}

func init() {
	registerProperty("ArrayProperty", func(r *codecio.Reader) (PropertyType, error) {
		size, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		elementType, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		sep, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		if sep != 0 {
			return nil, Assertionf(r.Offset(), "ArrayProperty separator must be 0, got %d", sep)
		}
		count, err := r.ReadU32()
		if err != nil {
			return nil, err
		}
		readFn, ok := arrayValueReaders[elementType.Value]
		if !ok {
			return nil, UnknownTag(r.Offset(), "ArrayValue", elementType.Value)
		}
		value, err := readFn(r, int(count))
		if err != nil {
			return nil, err
		}
		if uint64(4+value.ByteSize()) != size {
			return nil, Assertionf(r.Offset(), "ArrayProperty declared size %d does not match actual %d", size, 4+value.ByteSize())
		}
		return &ArrayProperty{ElementType: elementType.Value, Value: value}, nil
	})
	registerPropertyJSON("ArrayProperty", func(body []byte) (PropertyType, error) {
		var peek struct {
			ElementType string `json:"element_type"`
		}
		if err := json.Unmarshal(body, &peek); err != nil {
			return nil, err
		}
		fn, ok := arrayValueJSONUnmarshalers[peek.ElementType]
		if !ok {
			return nil, &CodecError{Kind: ErrJSONSchema, Message: "unknown array element type", Token: peek.ElementType}
		}
		value, err := fn(body)
		if err != nil {
			return nil, err
		}
		return &ArrayProperty{ElementType: peek.ElementType, Value: value}, nil
	})
}

func (p *ArrayProperty) TypeName() string { return "ArrayProperty" }

func (p *ArrayProperty) ByteSize() int {
	return 8 + NewFString(p.ElementType).ByteSize() + 1 + 4 + p.Value.ByteSize()
}

func (p *ArrayProperty) WriteBody(w *codecio.Writer) error {
	if err := w.WriteU64(uint64(4 + p.Value.ByteSize())); err != nil {
		return err
	}
	if err := NewFString(p.ElementType).WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	if err := w.WriteU32(uint32(p.Value.Count())); err != nil {
		return err
	}
	return p.Value.WriteBody(w)
}

func (p *ArrayProperty) JSONValue() (any, error) {
	return p.Value.JSONValue()
}

// ArrayStructValue is the ArrayValue variant whose elements are
// StructType bodies, preceded by the redundant field_name/value_type
// header the format carries for this element kind alone.
type ArrayStructValue struct {
	FieldName  FString
	ValueType  FString
	StructType string
	Guid       GUID
	Elements   []StructType
}

func init() {
	registerArrayValue("StructProperty", func(r *codecio.Reader, count int) (ArrayValue, error) {
		fieldName, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		valueType, err := ReadFString(r)
		if err != nil {
			return nil, err
		}
		arraySize, err := r.ReadU64()
		if err != nil {
			return nil, err
		}
		structTag, err := ReadFString(r)
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
			return nil, Assertionf(r.Offset(), "struct array separator must be 0, got %d", sep)
		}
		elements := make([]StructType, count)
		total := 0
		for i := 0; i < count; i++ {
			el, err := ReadStructType(r, structTag.Value)
			if err != nil {
				return nil, err
			}
			if el.StructTypeName() != structTag.Value {
				return nil, Assertionf(r.Offset(), "struct array element type %q disagrees with header %q", el.StructTypeName(), structTag.Value)
			}
			elements[i] = el
			total += el.ByteSize()
		}
		if uint64(total) != arraySize {
			return nil, Assertionf(r.Offset(), "struct array declared size %d does not match actual %d", arraySize, total)
		}
		return &ArrayStructValue{
			FieldName:  fieldName,
			ValueType:  valueType,
			StructType: structTag.Value,
			Guid:       guid,
			Elements:   elements,
		}, nil
	})
	registerArrayValueJSON("StructProperty", func(body []byte) (ArrayValue, error) {
		var v struct {
			FieldName  string            `json:"field_name"`
			ValueType  string            `json:"value_type"`
			StructType string            `json:"struct_type"`
			Guid       *GUID             `json:"guid,omitempty"`
			Values     []json.RawMessage `json:"values"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		elements := make([]StructType, len(v.Values))
		for i, raw := range v.Values {
			el, err := UnmarshalStructTypeJSON(v.StructType, raw)
			if err != nil {
				return nil, err
			}
			elements[i] = el
		}
		out := &ArrayStructValue{
			FieldName:  NewFString(v.FieldName),
			ValueType:  NewFString(v.ValueType),
			StructType: v.StructType,
			Elements:   elements,
		}
		if v.Guid != nil {
			out.Guid = *v.Guid
		}
		return out, nil
	})
}

func (v *ArrayStructValue) ElementTypeName() string { return "StructProperty" }
func (v *ArrayStructValue) Count() int              { return len(v.Elements) }

func (v *ArrayStructValue) ByteSize() int {
	size := v.FieldName.ByteSize() + v.ValueType.ByteSize() + 8 + NewFString(v.StructType).ByteSize() + v.Guid.ByteSize() + 1
	for _, el := range v.Elements {
		size += el.ByteSize()
	}
	return size
}

func (v *ArrayStructValue) WriteBody(w *codecio.Writer) error {
	if err := v.FieldName.WriteTo(w); err != nil {
		return err
	}
	if err := v.ValueType.WriteTo(w); err != nil {
		return err
	}
	total := 0
	for _, el := range v.Elements {
		total += el.ByteSize()
	}
	if err := w.WriteU64(uint64(total)); err != nil {
		return err
	}
	if err := NewFString(v.StructType).WriteTo(w); err != nil {
		return err
	}
	if err := v.Guid.WriteTo(w); err != nil {
		return err
	}
	if err := w.WriteU8(0); err != nil {
		return err
	}
	for _, el := range v.Elements {
		if err := el.WriteBody(w); err != nil {
			return err
		}
	}
	return nil
}

func (v *ArrayStructValue) JSONValue() (any, error) {
	values := make([]json.RawMessage, len(v.Elements))
	for i, el := range v.Elements {
		inner, err := el.JSONValue()
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(inner)
		if err != nil {
			return nil, err
		}
		values[i] = raw
	}
	out := struct {
		ElementType string            `json:"element_type"`
		FieldName   string             `json:"field_name"`
		ValueType   string             `json:"value_type"`
		StructType  string             `json:"struct_type"`
		Guid        *GUID              `json:"guid,omitempty"`
		Values      []json.RawMessage  `json:"values"`
	}{
		ElementType: "StructProperty",
		FieldName:   v.FieldName.Value,
		ValueType:   v.ValueType.Value,
		StructType:  v.StructType,
		Values:      values,
	}
	if !v.Guid.IsZero() {
		out.Guid = &v.Guid
	}
	return out, nil
}

// ArrayBoolValue is the ArrayValue variant whose elements are raw
// wire-level booleans, one byte each.
type ArrayBoolValue struct {
	Values []bool
}

func init() {
	registerArrayValue("BoolProperty", func(r *codecio.Reader, count int) (ArrayValue, error) {
		values := make([]bool, count)
		for i := 0; i < count; i++ {
			v, err := ReadBool(r)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return &ArrayBoolValue{Values: values}, nil
	})
	registerArrayValueJSON("BoolProperty", func(body []byte) (ArrayValue, error) {
		var v struct {
			Values []bool `json:"values"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		return &ArrayBoolValue{Values: v.Values}, nil
	})
}

func (v *ArrayBoolValue) ElementTypeName() string { return "BoolProperty" }
func (v *ArrayBoolValue) Count() int              { return len(v.Values) }
func (v *ArrayBoolValue) ByteSize() int           { return len(v.Values) }

func (v *ArrayBoolValue) WriteBody(w *codecio.Writer) error {
	for _, b := range v.Values {
		if err := WriteBool(w, b); err != nil {
			return err
		}
	}
	return nil
}

func (v *ArrayBoolValue) JSONValue() (any, error) {
	return struct {
		ElementType string `json:"element_type"`
		Values      []bool `json:"values"`
	}{ElementType: "BoolProperty", Values: v.Values}, nil
}

// ArrayStrValue is the ArrayValue variant whose elements are FStrings
// written back-to-back with no further per-element framing.
type ArrayStrValue struct {
	Values []FString
}

func init() {
	registerArrayValue("StrProperty", func(r *codecio.Reader, count int) (ArrayValue, error) {
		values := make([]FString, count)
		for i := 0; i < count; i++ {
			v, err := ReadFString(r)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return &ArrayStrValue{Values: values}, nil
	})
	registerArrayValueJSON("StrProperty", func(body []byte) (ArrayValue, error) {
		var v struct {
			Values []string `json:"values"`
		}
		if err := json.Unmarshal(body, &v); err != nil {
			return nil, err
		}
		values := make([]FString, len(v.Values))
		for i, s := range v.Values {
			values[i] = NewFString(s)
		}
		return &ArrayStrValue{Values: values}, nil
	})
}

func (v *ArrayStrValue) ElementTypeName() string { return "StrProperty" }
func (v *ArrayStrValue) Count() int              { return len(v.Values) }

func (v *ArrayStrValue) ByteSize() int {
	size := 0
	for _, s := range v.Values {
		size += s.ByteSize()
	}
	return size
}

func (v *ArrayStrValue) WriteBody(w *codecio.Writer) error {
	for _, s := range v.Values {
		if err := s.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func (v *ArrayStrValue) JSONValue() (any, error) {
	values := make([]string, len(v.Values))
	for i, s := range v.Values {
		values[i] = s.Value
	}
	return struct {
		ElementType string   `json:"element_type"`
		Values      []string `json:"values"`
	}{ElementType: "StrProperty", Values: values}, nil
}
