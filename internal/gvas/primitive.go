package gvas

import (
	"encoding/json"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/brecert/towersave/internal/codecio"
)

// FString is the length-prefixed text type used throughout the wire format.
// Wide records whether this value was read (or must be written) as UTF-16,
// so that a value round-tripped straight from decode to encode reproduces
// its exact original encoding even when the text itself is now pure ASCII.
// A value built fresh from JSON carries no such memory; UnmarshalJSON sets
// Wide through NewFString's heuristic instead: any string whose rune count
// differs from its byte count is re-emitted as UTF-16.
type FString struct {
	Value string
	Wide  bool
}

// NewFString builds an FString with the encoding heuristic pre-applied.
func NewFString(s string) FString {
	return FString{Value: s, Wide: isWide(s)}
}

func isWide(s string) bool {
	return utf8.RuneCountInString(s) != len(s)
}

// ReadFString reads a length-prefixed string.
func ReadFString(r *codecio.Reader) (FString, error) {
	n, err := r.ReadI32()
	if err != nil {
		return FString{}, IOErrorf(r.Offset(), err)
	}
	switch {
	case n == 0:
		return FString{}, nil
	case n > 0:
		b, err := r.ReadBytes(int(n))
		if err != nil {
			return FString{}, IOErrorf(r.Offset(), err)
		}
		if len(b) == 0 || b[len(b)-1] != 0 {
			return FString{}, Assertionf(r.Offset(), "8-bit FString missing NUL terminator")
		}
		runes := make([]rune, len(b)-1)
		for i, c := range b[:len(b)-1] {
			runes[i] = rune(c)
		}
		return FString{Value: string(runes), Wide: false}, nil
	default:
		units := -int(n)
		b, err := r.ReadBytes(units * 2)
		if err != nil {
			return FString{}, IOErrorf(r.Offset(), err)
		}
		codeUnits := make([]uint16, units-1)
		for i := range codeUnits {
			codeUnits[i] = uint16(b[i*2]) | uint16(b[i*2+1])<<8
		}
		return FString{Value: string(utf16.Decode(codeUnits)), Wide: true}, nil
	}
}

// WriteTo writes the length-prefixed string using its tracked encoding.
func (f FString) WriteTo(w *codecio.Writer) error {
	if f.Value == "" {
		return w.WriteI32(0)
	}
	if f.Wide {
		units := utf16.Encode([]rune(f.Value))
		if err := w.WriteI32(-int32(len(units) + 1)); err != nil {
			return err
		}
		for _, u := range units {
			if err := w.WriteU16(u); err != nil {
				return err
			}
		}
		return w.WriteU16(0)
	}
	b := make([]byte, 0, len(f.Value)+1)
	for _, r := range f.Value {
		b = append(b, byte(r))
	}
	b = append(b, 0)
	if err := w.WriteI32(int32(len(b))); err != nil {
		return err
	}
	return w.WriteBytes(b)
}

// ByteSize returns the number of bytes WriteTo emits for this value.
func (f FString) ByteSize() int {
	if f.Value == "" {
		return 4
	}
	if f.Wide {
		units := utf16.Encode([]rune(f.Value))
		return 4 + (len(units)+1)*2
	}
	return 4 + utf8.RuneCountInString(f.Value) + 1
}

func (f FString) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

func (f *FString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = NewFString(s)
	return nil
}

// GUID is a 16-byte identifier, serialized to JSON as its canonical dashed
// hex string and omitted entirely when zero.
type GUID [16]byte

// IsZero reports whether every byte of the GUID is zero.
func (g GUID) IsZero() bool {
	return g == GUID{}
}

// ReadGUID reads 16 raw bytes verbatim.
func ReadGUID(r *codecio.Reader) (GUID, error) {
	b, err := r.ReadBytes(16)
	if err != nil {
		return GUID{}, IOErrorf(r.Offset(), err)
	}
	var g GUID
	copy(g[:], b)
	return g, nil
}

// WriteTo writes the 16 raw bytes verbatim.
func (g GUID) WriteTo(w *codecio.Writer) error {
	return w.WriteBytes(g[:])
}

// ByteSize is always 16.
func (g GUID) ByteSize() int { return 16 }

func (g GUID) MarshalJSON() ([]byte, error) {
	return json.Marshal(uuid.UUID(g).String())
}

func (g *GUID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	*g = GUID(u)
	return nil
}

// ReadBool reads the one-byte wire-level boolean: nonzero is true.
func ReadBool(r *codecio.Reader) (bool, error) {
	b, err := r.ReadU8()
	if err != nil {
		return false, IOErrorf(r.Offset(), err)
	}
	return b != 0, nil
}

// WriteBool writes the one-byte wire-level boolean: true as 1, false as 0.
func WriteBool(w *codecio.Writer, v bool) error {
	if v {
		return w.WriteU8(1)
	}
	return w.WriteU8(0)
}

// Vector is a fixed-layout little-endian (x, y, z) float32 triple.
type Vector struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
}

func ReadVector(r *codecio.Reader) (Vector, error) {
	x, err := r.ReadF32()
	if err != nil {
		return Vector{}, IOErrorf(r.Offset(), err)
	}
	y, err := r.ReadF32()
	if err != nil {
		return Vector{}, IOErrorf(r.Offset(), err)
	}
	z, err := r.ReadF32()
	if err != nil {
		return Vector{}, IOErrorf(r.Offset(), err)
	}
	return Vector{X: x, Y: y, Z: z}, nil
}

func (v Vector) WriteTo(w *codecio.Writer) error {
	if err := w.WriteF32(v.X); err != nil {
		return err
	}
	if err := w.WriteF32(v.Y); err != nil {
		return err
	}
	return w.WriteF32(v.Z)
}

func (v Vector) ByteSize() int { return 12 }

// Quat is a fixed-layout little-endian (x, y, z, w) float32 quadruple.
type Quat struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	W float32 `json:"w"`
}

func ReadQuat(r *codecio.Reader) (Quat, error) {
	x, err := r.ReadF32()
	if err != nil {
		return Quat{}, IOErrorf(r.Offset(), err)
	}
	y, err := r.ReadF32()
	if err != nil {
		return Quat{}, IOErrorf(r.Offset(), err)
	}
	z, err := r.ReadF32()
	if err != nil {
		return Quat{}, IOErrorf(r.Offset(), err)
	}
	w2, err := r.ReadF32()
	if err != nil {
		return Quat{}, IOErrorf(r.Offset(), err)
	}
	return Quat{X: x, Y: y, Z: z, W: w2}, nil
}

func (q Quat) WriteTo(w *codecio.Writer) error {
	if err := w.WriteF32(q.X); err != nil {
		return err
	}
	if err := w.WriteF32(q.Y); err != nil {
		return err
	}
	if err := w.WriteF32(q.Z); err != nil {
		return err
	}
	return w.WriteF32(q.W)
}

func (q Quat) ByteSize() int { return 16 }

// Rotator is a fixed-layout little-endian (pitch, roll, yaw) float32 triple.
type Rotator struct {
	Pitch float32 `json:"pitch"`
	Roll  float32 `json:"roll"`
	Yaw   float32 `json:"yaw"`
}

func ReadRotator(r *codecio.Reader) (Rotator, error) {
	p, err := r.ReadF32()
	if err != nil {
		return Rotator{}, IOErrorf(r.Offset(), err)
	}
	ro, err := r.ReadF32()
	if err != nil {
		return Rotator{}, IOErrorf(r.Offset(), err)
	}
	y, err := r.ReadF32()
	if err != nil {
		return Rotator{}, IOErrorf(r.Offset(), err)
	}
	return Rotator{Pitch: p, Roll: ro, Yaw: y}, nil
}

func (r Rotator) WriteTo(w *codecio.Writer) error {
	if err := w.WriteF32(r.Pitch); err != nil {
		return err
	}
	if err := w.WriteF32(r.Roll); err != nil {
		return err
	}
	return w.WriteF32(r.Yaw)
}

func (r Rotator) ByteSize() int { return 12 }

// LinearColor is a fixed-layout little-endian (r, g, b, a) float32 quadruple.
type LinearColor struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

func ReadLinearColor(r *codecio.Reader) (LinearColor, error) {
	rr, err := r.ReadF32()
	if err != nil {
		return LinearColor{}, IOErrorf(r.Offset(), err)
	}
	g, err := r.ReadF32()
	if err != nil {
		return LinearColor{}, IOErrorf(r.Offset(), err)
	}
	b, err := r.ReadF32()
	if err != nil {
		return LinearColor{}, IOErrorf(r.Offset(), err)
	}
	a, err := r.ReadF32()
	if err != nil {
		return LinearColor{}, IOErrorf(r.Offset(), err)
	}
	return LinearColor{R: rr, G: g, B: b, A: a}, nil
}

func (c LinearColor) WriteTo(w *codecio.Writer) error {
	if err := w.WriteF32(c.R); err != nil {
		return err
	}
	if err := w.WriteF32(c.G); err != nil {
		return err
	}
	if err := w.WriteF32(c.B); err != nil {
		return err
	}
	return w.WriteF32(c.A)
}

func (c LinearColor) ByteSize() int { return 16 }
