package gvas

import (
	"encoding/json"

	"github.com/brecert/towersave/internal/codecio"
)

// StructType is the closed sum of struct-property payload shapes: a handful
// of fixed-width primitive structs, plus a fixed list of shapes that are
// read and written exactly as a PropertyMap, disambiguated only by their
// wire tag.
type StructType interface {
	StructTypeName() string
	ByteSize() int
	WriteBody(w *codecio.Writer) error
	JSONValue() (any, error)
}

type structTypeReader func(r *codecio.Reader) (StructType, error)

var structTypeReaders = map[string]structTypeReader{}

func registerStructType(name string, fn structTypeReader) {
	structTypeReaders[name] = fn
}

// ReadStructType dispatches on tag exactly as the format requires: a known
// fixed shape, a property-map-backed shape, or a fatal unknown tag.
func ReadStructType(r *codecio.Reader, tag string) (StructType, error) {
	fn, ok := structTypeReaders[tag]
	if ok {
		return fn(r)
	}
	return nil, UnknownTag(r.Offset(), "StructType", tag)
}

type structTypeJSONUnmarshaler func(body []byte) (StructType, error)

var structTypeJSONUnmarshalers = map[string]structTypeJSONUnmarshaler{}

func registerStructTypeJSON(name string, fn structTypeJSONUnmarshaler) {
	structTypeJSONUnmarshalers[name] = fn
}

// UnmarshalStructTypeJSON dispatches on the "struct_type" tag recovered from
// the enclosing StructProperty object.
func UnmarshalStructTypeJSON(tag string, body []byte) (StructType, error) {
	fn, ok := structTypeJSONUnmarshalers[tag]
	if !ok {
		return nil, &CodecError{Kind: ErrJSONSchema, Message: "unknown struct type", Token: tag}
	}
	return fn(body)
}

func init() {
	registerFixedStructType("LinearColor",
		func(r *codecio.Reader) (StructType, error) {
			v, err := ReadLinearColor(r)
			return linearColorStructType(v), err
		},
		func(body []byte) (StructType, error) {
			var v LinearColor
			err := json.Unmarshal(body, &v)
			return linearColorStructType(v), err
		})
	registerFixedStructType("Quat",
		func(r *codecio.Reader) (StructType, error) {
			v, err := ReadQuat(r)
			return quatStructType(v), err
		},
		func(body []byte) (StructType, error) {
			var v Quat
			err := json.Unmarshal(body, &v)
			return quatStructType(v), err
		})
	registerFixedStructType("Vector",
		func(r *codecio.Reader) (StructType, error) {
			v, err := ReadVector(r)
			return vectorStructType(v), err
		},
		func(body []byte) (StructType, error) {
			var v Vector
			err := json.Unmarshal(body, &v)
			return vectorStructType(v), err
		})
	registerFixedStructType("Rotator",
		func(r *codecio.Reader) (StructType, error) {
			v, err := ReadRotator(r)
			return rotatorStructType(v), err
		},
		func(body []byte) (StructType, error) {
			var v Rotator
			err := json.Unmarshal(body, &v)
			return rotatorStructType(v), err
		})
	registerFixedStructType("Guid",
		func(r *codecio.Reader) (StructType, error) {
			v, err := ReadGUID(r)
			return guidStructType(v), err
		},
		func(body []byte) (StructType, error) {
			var v GUID
			err := json.Unmarshal(body, &v)
			return guidStructType(v), err
		})
	registerFixedStructType("WorkshopFile",
		func(r *codecio.Reader) (StructType, error) {
			v, err := r.ReadU64()
			return workshopFileStructType(v), err
		},
		func(body []byte) (StructType, error) {
			var v uint64
			err := json.Unmarshal(body, &v)
			return workshopFileStructType(v), err
		})

	for _, name := range propertyMapBackedStructTypes {
		name := name
		registerStructType(name, func(r *codecio.Reader) (StructType, error) {
			m, err := ReadPropertyMap(r)
			if err != nil {
				return nil, err
			}
			return &mapStructType{tag: name, Properties: m}, nil
		})
		registerStructTypeJSON(name, func(body []byte) (StructType, error) {
			var m *PropertyMap
			if err := json.Unmarshal(body, &m); err != nil {
				return nil, err
			}
			return &mapStructType{tag: name, Properties: m}, nil
		})
	}
}

// propertyMapBackedStructTypes lists every struct tag that the format reads
// and writes exactly as a PropertyMap.
var propertyMapBackedStructTypes = []string{
	"SteamID",
	"Transform",
	"Colorable",
	"ItemPhysics",
	"ItemSpawnDefaults",
	"WeatherManifestEntry",
	"ItemConnectionData",
	"SplineSaveData",
	"PlayerTrustSaveData",
	"SkyVolumeSettings",
	"PostProcessVolumeSettings",
	"FogVolumeSettings",
}

func registerFixedStructType(name string, readFn structTypeReader, jsonFn structTypeJSONUnmarshaler) {
	registerStructType(name, readFn)
	registerStructTypeJSON(name, jsonFn)
}

// NewVectorStruct, NewQuatStruct, NewRotatorStruct, NewLinearColorStruct,
// NewGuidStruct and NewWorkshopFileStruct build the fixed-shape StructType
// variants. NewMapStruct builds any property-map-backed variant, rejecting
// tags outside the closed set this format recognizes.

func NewVectorStruct(v Vector) StructType           { return vectorStructType(v) }
func NewQuatStruct(v Quat) StructType               { return quatStructType(v) }
func NewRotatorStruct(v Rotator) StructType         { return rotatorStructType(v) }
func NewLinearColorStruct(v LinearColor) StructType { return linearColorStructType(v) }
func NewGuidStruct(v GUID) StructType               { return guidStructType(v) }
func NewWorkshopFileStruct(v uint64) StructType     { return workshopFileStructType(v) }

// NewMapStruct builds a property-map-backed StructType for tag, returning an
// unknown-tag error if tag is not one of the recognized map-backed shapes.
func NewMapStruct(tag string, properties *PropertyMap) (StructType, error) {
	for _, known := range propertyMapBackedStructTypes {
		if known == tag {
			return &mapStructType{tag: tag, Properties: properties}, nil
		}
	}
	return nil, UnknownTag(0, "StructType", tag)
}

// mapStructType is any property-map-backed StructType variant; the tag
// alone disambiguates which name was used to select it.
type mapStructType struct {
	tag        string
	Properties *PropertyMap
}

func (s *mapStructType) StructTypeName() string { return s.tag }
func (s *mapStructType) ByteSize() int          { return s.Properties.ByteSize() }
func (s *mapStructType) WriteBody(w *codecio.Writer) error {
	return s.Properties.WriteTo(w)
}
func (s *mapStructType) JSONValue() (any, error) { return s.Properties, nil }

// The fixed-shape StructType variants wrap their corresponding primitive by
// value; each carries its own wire tag (note the Guid/GUID name asymmetry).

type linearColorStructType LinearColor

func (s linearColorStructType) StructTypeName() string { return "LinearColor" }
func (s linearColorStructType) ByteSize() int           { return LinearColor(s).ByteSize() }
func (s linearColorStructType) WriteBody(w *codecio.Writer) error {
	return LinearColor(s).WriteTo(w)
}
func (s linearColorStructType) JSONValue() (any, error) { return LinearColor(s), nil }

type quatStructType Quat

func (s quatStructType) StructTypeName() string           { return "Quat" }
func (s quatStructType) ByteSize() int                    { return Quat(s).ByteSize() }
func (s quatStructType) WriteBody(w *codecio.Writer) error { return Quat(s).WriteTo(w) }
func (s quatStructType) JSONValue() (any, error)          { return Quat(s), nil }

type vectorStructType Vector

func (s vectorStructType) StructTypeName() string           { return "Vector" }
func (s vectorStructType) ByteSize() int                    { return Vector(s).ByteSize() }
func (s vectorStructType) WriteBody(w *codecio.Writer) error { return Vector(s).WriteTo(w) }
func (s vectorStructType) JSONValue() (any, error)          { return Vector(s), nil }

type rotatorStructType Rotator

func (s rotatorStructType) StructTypeName() string           { return "Rotator" }
func (s rotatorStructType) ByteSize() int                    { return Rotator(s).ByteSize() }
func (s rotatorStructType) WriteBody(w *codecio.Writer) error { return Rotator(s).WriteTo(w) }
func (s rotatorStructType) JSONValue() (any, error)          { return Rotator(s), nil }

type guidStructType GUID

func (s guidStructType) StructTypeName() string           { return "Guid" }
func (s guidStructType) ByteSize() int                    { return GUID(s).ByteSize() }
func (s guidStructType) WriteBody(w *codecio.Writer) error { return GUID(s).WriteTo(w) }
func (s guidStructType) JSONValue() (any, error)          { return GUID(s), nil }

type workshopFileStructType uint64

func (s workshopFileStructType) StructTypeName() string { return "WorkshopFile" }
func (s workshopFileStructType) ByteSize() int          { return 8 }
func (s workshopFileStructType) WriteBody(w *codecio.Writer) error {
	return w.WriteU64(uint64(s))
}
func (s workshopFileStructType) JSONValue() (any, error) { return uint64(s), nil }
