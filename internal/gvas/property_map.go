package gvas

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/brecert/towersave/internal/codecio"
)

// PropertyMap is an insertion-ordered mapping from string keys to
// PropertyType values, terminated on the wire by a None property. Order is
// part of the format and must survive a round-trip untouched.
type PropertyMap struct {
	pairs *orderedmap.OrderedMap[string, PropertyType]
}

// NewPropertyMap returns an empty, ready-to-use PropertyMap.
func NewPropertyMap() *PropertyMap {
	return &PropertyMap{pairs: orderedmap.New[string, PropertyType]()}
}

// Set inserts or updates key, preserving its original position on update
// and appending on insert.
func (m *PropertyMap) Set(key string, value PropertyType) {
	m.pairs.Set(key, value)
}

// Get returns the value for key and whether it was present.
func (m *PropertyMap) Get(key string) (PropertyType, bool) {
	return m.pairs.Get(key)
}

// Len returns the number of entries.
func (m *PropertyMap) Len() int {
	if m.pairs == nil {
		return 0
	}
	return m.pairs.Len()
}

// Oldest returns the first pair for iteration in insertion order, or nil if
// empty. Use with Pair.Next, matching go-ordered-map's iteration idiom.
func (m *PropertyMap) Oldest() *orderedmap.Pair[string, PropertyType] {
	if m.pairs == nil {
		return nil
	}
	return m.pairs.Oldest()
}

// ReadPropertyMap reads properties until the None terminator, which is
// consumed but not inserted.
func ReadPropertyMap(r *codecio.Reader) (*PropertyMap, error) {
	m := NewPropertyMap()
	for {
		p, err := ReadProperty(r)
		if err != nil {
			return nil, err
		}
		if p.IsNone() {
			return m, nil
		}
		m.Set(p.Name.Value, p.Value)
	}
}

// WriteTo writes every entry in insertion order, then the None terminator.
func (m *PropertyMap) WriteTo(w *codecio.Writer) error {
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if err := WriteProperty(w, Property{Name: NewFString(pair.Key), Value: pair.Value}); err != nil {
			return err
		}
	}
	return WriteProperty(w, noneProperty)
}

// ByteSize is the number of bytes WriteTo emits, including the terminator.
func (m *PropertyMap) ByteSize() int {
	size := noneProperty.ByteSize()
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		size += Property{Name: NewFString(pair.Key), Value: pair.Value}.ByteSize()
	}
	return size
}

func (m *PropertyMap) MarshalJSON() ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	first := true
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		if !first {
			buf = append(buf, ',')
		}
		first = false
		key, err := json.Marshal(pair.Key)
		if err != nil {
			return nil, err
		}
		value, err := MarshalPropertyTypeJSON(pair.Value)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')
		buf = append(buf, value...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func (m *PropertyMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return &CodecError{Kind: ErrJSONSchema, Message: "property map must be a JSON object"}
	}
	result := NewPropertyMap()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return &CodecError{Kind: ErrJSONSchema, Message: "property map key must be a string"}
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		value, err := UnmarshalPropertyTypeJSON(raw)
		if err != nil {
			return err
		}
		result.Set(key, value)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*m = *result
	return nil
}
