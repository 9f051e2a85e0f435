package gvas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brecert/towersave/internal/codecio"
)

func TestStructProperty_FixedShape_RoundTrip(t *testing.T) {
	p := &StructProperty{Value: quatStructType(Quat{X: 0, Y: 0, Z: 0, W: 1})}

	w := codecio.NewWriter()
	require.NoError(t, p.WriteBody(w))
	require.Equal(t, p.ByteSize(), len(w.Bytes()))

	r := codecio.NewReader(w.Bytes())
	size, err := r.ReadU64()
	require.NoError(t, err)
	tag, err := ReadFString(r)
	require.NoError(t, err)
	require.Equal(t, "Quat", tag.Value)
	_, err = ReadGUID(r)
	require.NoError(t, err)
	sep, err := r.ReadU8()
	require.NoError(t, err)
	require.Zero(t, sep)

	got, err := ReadStructType(r, tag.Value)
	require.NoError(t, err)
	require.Equal(t, uint64(got.ByteSize()), size)
	require.Equal(t, Quat{X: 0, Y: 0, Z: 0, W: 1}, Quat(got.(quatStructType)))
}

func TestStructProperty_MapBackedShape_RoundTrip(t *testing.T) {
	props := NewPropertyMap()
	props.Set("Rotation", &StructProperty{Value: quatStructType(Quat{W: 1})})
	props.Set("Translation", &StructProperty{Value: vectorStructType(Vector{X: 1, Y: 2, Z: 3})})
	props.Set("Scale3D", &StructProperty{Value: vectorStructType(Vector{X: 1, Y: 1, Z: 1})})

	transform := &mapStructType{tag: "Transform", Properties: props}
	w := codecio.NewWriter()
	require.NoError(t, transform.WriteBody(w))
	require.Equal(t, transform.ByteSize(), len(w.Bytes()))

	got, err := ReadStructType(codecio.NewReader(w.Bytes()), "Transform")
	require.NoError(t, err)
	gotMap := got.(*mapStructType)
	require.Equal(t, 3, gotMap.Properties.Len())
}

func TestStructType_GuidTagAsymmetry(t *testing.T) {
	var g GUID
	guidVariant := guidStructType(g)
	require.Equal(t, "Guid", guidVariant.StructTypeName())
}

func TestStructType_UnknownTag_IsFatal(t *testing.T) {
	_, err := ReadStructType(codecio.NewReader(nil), "NotAType")
	require.Error(t, err)
	var codecErr *CodecError
	require.ErrorAs(t, err, &codecErr)
	require.Equal(t, ErrUnknownTag, codecErr.Kind)
	require.Equal(t, "NotAType", codecErr.Token)
}

func TestStructType_WorkshopFile_RoundTrip(t *testing.T) {
	v := workshopFileStructType(123456789)
	w := codecio.NewWriter()
	require.NoError(t, v.WriteBody(w))
	require.Equal(t, 8, len(w.Bytes()))

	got, err := ReadStructType(codecio.NewReader(w.Bytes()), "WorkshopFile")
	require.NoError(t, err)
	require.Equal(t, uint64(123456789), uint64(got.(workshopFileStructType)))
}
