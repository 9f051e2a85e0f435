package suitebro

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brecert/towersave/internal/codecio"
	"github.com/brecert/towersave/internal/gvas"
)

// buildHeader writes a minimal, structurally valid GVAS header so ReadHeader
// can find its end, mirroring what a real save file's preamble looks like.
func buildHeader(t *testing.T) []byte {
	t.Helper()
	w := codecio.NewWriter()
	require.NoError(t, w.WriteBytes([]byte{'G', 'V', 'A', 'S'}))
	require.NoError(t, w.WriteI32(2))  // SaveGameFileVersion
	require.NoError(t, w.WriteI32(0))  // FileVersionUE4
	require.NoError(t, w.WriteI32(0))  // FileVersionUE5
	require.NoError(t, w.WriteU16(5))  // engine major
	require.NoError(t, w.WriteU16(3))  // engine minor
	require.NoError(t, w.WriteU16(0))  // engine patch
	require.NoError(t, w.WriteU32(0))  // changelist
	require.NoError(t, gvas.NewFString("").WriteTo(w)) // branch
	require.NoError(t, w.WriteI32(0))  // CustomFormatVersion
	require.NoError(t, w.WriteI32(0))  // custom format entry count
	require.NoError(t, gvas.NewFString("SuiteBroSaveGame").WriteTo(w))
	return w.Bytes()
}

func buildFile(t *testing.T, items []Item) []byte {
	t.Helper()
	w := codecio.NewWriter()
	require.NoError(t, w.WriteBytes(buildHeader(t)))
	require.NoError(t, w.WriteU32(uint32(len(items))))
	for _, it := range items {
		require.NoError(t, it.WriteTo(w))
	}
	return w.Bytes()
}

// Scenario 1: a minimal file with one item, unk_has_state == 0, no TinyRick.
func TestDecode_MinimalFile_NoTinyRick(t *testing.T) {
	item := Item{
		Name:     gvas.NewFString("Widget_C"),
		Rotation: gvas.Rotator{},
		Position: gvas.Vector{X: 1, Y: 2, Z: 3},
		Scale:    gvas.Vector{X: 1, Y: 1, Z: 1},
	}
	data := buildFile(t, []Item{item})

	file, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	require.Nil(t, file.Items[0].TinyRick)
	require.Empty(t, file.ResidueWarnings())

	out, err := file.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out, "encode(decode(B)) must equal B byte-for-byte")

	jsonData, err := json.Marshal(file)
	require.NoError(t, err)
	require.NotContains(t, string(jsonData), `"tinyrick"`, "tinyrick must be omitted when absent")
}

// Scenario 2: an item with a TinyRick carrying three property kinds and a
// Transform struct. Round-trip byte-equal.
func TestDecode_ItemWithTinyRick(t *testing.T) {
	props := gvas.NewPropertyMap()
	props.Set("Health", &gvas.IntProperty{Value: 42})
	props.Set("IsActive", &gvas.BoolProperty{Value: true})
	props.Set("Greeting", &gvas.StrProperty{Value: gvas.NewFString("hello")})

	transformProps := gvas.NewPropertyMap()
	transformProps.Set("Rotation", &gvas.StructProperty{Value: gvas.NewQuatStruct(gvas.Quat{X: 0, Y: 0, Z: 0, W: 1})})
	transformProps.Set("Translation", &gvas.StructProperty{Value: gvas.NewVectorStruct(gvas.Vector{X: 1, Y: 2, Z: 3})})
	transformProps.Set("Scale3D", &gvas.StructProperty{Value: gvas.NewVectorStruct(gvas.Vector{X: 1, Y: 1, Z: 1})})
	transform, err := gvas.NewMapStruct("Transform", transformProps)
	require.NoError(t, err)
	props.Set("Transform", &gvas.StructProperty{Value: transform})

	rick := TinyRick{
		FormatVersion: defaultFormatVersion,
		UnrealVersion: defaultUnrealVersion,
		Properties:    props,
	}
	item := Item{
		Name:        gvas.NewFString("Chair_C"),
		UnkHasState: 1,
		TinyRick:    &rick,
		Position:    gvas.Vector{X: 10, Y: 20, Z: 30},
		Scale:       gvas.Vector{X: 1, Y: 1, Z: 1},
	}
	data := buildFile(t, []Item{item})

	file, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	require.NotNil(t, file.Items[0].TinyRick)
	require.Empty(t, file.ResidueWarnings())

	out, err := file.Encode()
	require.NoError(t, err)
	require.Equal(t, data, out)

	health, ok := file.Items[0].TinyRick.Properties.Get("Health")
	require.True(t, ok)
	require.Equal(t, int32(42), health.(*gvas.IntProperty).Value)
}

// fakeStructType satisfies gvas.StructType with a tag the format does not
// recognize, so a round-trip through the wire hits the unknown-tag path on
// read even though nothing prevents constructing it in memory.
type fakeStructType struct{}

func (fakeStructType) StructTypeName() string                    { return "NotAType" }
func (fakeStructType) ByteSize() int                              { return 0 }
func (fakeStructType) WriteBody(w *codecio.Writer) error          { return nil }
func (fakeStructType) JSONValue() (any, error)                    { return struct{}{}, nil }

// Scenario 6: an unknown struct-type tag inside a TinyRick property must be
// a fatal unknown-tag error carrying the original byte offset.
func TestDecode_UnknownStructTag_IsFatal(t *testing.T) {
	props := gvas.NewPropertyMap()
	props.Set("Broken", &gvas.StructProperty{Value: fakeStructType{}})

	rick := TinyRick{
		FormatVersion: defaultFormatVersion,
		UnrealVersion: defaultUnrealVersion,
		Properties:    props,
	}
	item := Item{Name: gvas.NewFString("Broken_C"), UnkHasState: 1, TinyRick: &rick}
	data := buildFile(t, []Item{item})

	_, err := Decode(data)
	require.Error(t, err)
	var codecErr *gvas.CodecError
	require.ErrorAs(t, err, &codecErr)
	require.Equal(t, gvas.ErrUnknownTag, codecErr.Kind)
	require.Equal(t, "NotAType", codecErr.Token)
	// The tag is rejected right after the struct header's separator, 53 bytes
	// before the end of the file: the None terminator (9), unk_count and the
	// section count (8), then the item's rotation, position and scale (36).
	require.Equal(t, int64(len(data)-53), codecErr.Offset)
}

// A TinyRick whose declared size overshoots what it actually consumes is a
// non-fatal residue warning (spec.md §7 item 7): decode still succeeds and
// the outer stream advances to the declared end.
func TestDecode_TinyRickResidue_IsNonFatal(t *testing.T) {
	rick := TinyRick{FormatVersion: defaultFormatVersion, UnrealVersion: defaultUnrealVersion, Properties: gvas.NewPropertyMap()}
	rickBytes := func() []byte {
		w := codecio.NewWriter()
		require.NoError(t, rick.WriteTo(w))
		return w.Bytes()
	}()
	padding := []byte{0, 0, 0, 0}

	w := codecio.NewWriter()
	require.NoError(t, w.WriteBytes(buildHeader(t)))
	require.NoError(t, w.WriteU32(1)) // one item

	require.NoError(t, gvas.NewFString("Chair_C").WriteTo(w))
	var zero gvas.GUID
	require.NoError(t, zero.WriteTo(w))
	require.NoError(t, w.WriteU32(1)) // unk_has_state
	require.NoError(t, w.WriteU64(0)) // steam_item_id
	require.NoError(t, w.WriteU32(uint32(len(rickBytes)+len(padding))))
	require.NoError(t, w.WriteBytes(rickBytes))
	require.NoError(t, w.WriteBytes(padding))
	require.NoError(t, gvas.Rotator{}.WriteTo(w))
	require.NoError(t, gvas.Vector{}.WriteTo(w))
	require.NoError(t, gvas.Vector{}.WriteTo(w))

	file, err := Decode(w.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Items, 1)
	require.NotNil(t, file.Items[0].TinyRick)

	warnings := file.ResidueWarnings()
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0].Error(), "left over")
}

func TestFile_JSON_RoundTrip(t *testing.T) {
	item := Item{
		Name:     gvas.NewFString("Widget_C"),
		Position: gvas.Vector{X: 1, Y: 2, Z: 3},
		Scale:    gvas.Vector{X: 1, Y: 1, Z: 1},
	}
	data := buildFile(t, []Item{item})

	file, err := Decode(data)
	require.NoError(t, err)

	j1, err := json.Marshal(file)
	require.NoError(t, err)

	var roundTripped File
	require.NoError(t, json.Unmarshal(j1, &roundTripped))
	j2, err := json.Marshal(&roundTripped)
	require.NoError(t, err)

	require.JSONEq(t, string(j1), string(j2))
}
