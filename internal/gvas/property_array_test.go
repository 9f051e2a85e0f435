package gvas

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/brecert/towersave/internal/codecio"
)

func TestArrayStructValue_Vectors_RoundTrip(t *testing.T) {
	elements := []StructType{
		vectorStructType(Vector{X: 0, Y: 0, Z: 0}),
		vectorStructType(Vector{X: 1, Y: 2, Z: 3}),
	}
	arr := &ArrayStructValue{
		FieldName:  NewFString("Points"),
		ValueType:  NewFString("StructProperty"),
		StructType: "Vector",
		Elements:   elements,
	}
	prop := &ArrayProperty{ElementType: "StructProperty", Value: arr}

	w := codecio.NewWriter()
	require.NoError(t, prop.WriteBody(w))
	require.Equal(t, prop.ByteSize(), len(w.Bytes()))

	r := codecio.NewReader(w.Bytes())
	size, err := r.ReadU64()
	require.NoError(t, err)

	elementType, err := ReadFString(r)
	require.NoError(t, err)
	require.Equal(t, "StructProperty", elementType.Value)

	sep, err := r.ReadU8()
	require.NoError(t, err)
	require.Zero(t, sep)

	count, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(2), count)

	readFn := arrayValueReaders["StructProperty"]
	value, err := readFn(r, int(count))
	require.NoError(t, err)
	require.Equal(t, uint64(4+value.ByteSize()), size)

	got := value.(*ArrayStructValue)
	elementBytes := 0
	for _, el := range got.Elements {
		require.Equal(t, "Vector", el.StructTypeName())
		elementBytes += el.ByteSize()
	}
	require.Equal(t, 24, elementBytes, "two Vector elements of 12 bytes each")
}

func TestArrayBoolValue_RoundTrip(t *testing.T) {
	arrVal := &ArrayBoolValue{Values: []bool{true, false, true}}
	prop := &ArrayProperty{ElementType: "BoolProperty", Value: arrVal}

	w := codecio.NewWriter()
	require.NoError(t, prop.WriteBody(w))
	require.Equal(t, prop.ByteSize(), len(w.Bytes()))

	r := codecio.NewReader(w.Bytes())
	if _, err := r.ReadU64(); err != nil {
		t.Fatal(err)
	}
	elementType, err := ReadFString(r)
	require.NoError(t, err)
	require.Equal(t, "BoolProperty", elementType.Value)
	sep, err := r.ReadU8()
	require.NoError(t, err)
	require.Zero(t, sep)
	count, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(3), count)

	readFn := arrayValueReaders["BoolProperty"]
	value, err := readFn(r, int(count))
	require.NoError(t, err)
	require.Equal(t, []bool{true, false, true}, value.(*ArrayBoolValue).Values)
}

func TestArrayStrValue_ByteSizeMatchesWrite(t *testing.T) {
	values := []FString{NewFString("a"), NewFString("bb"), NewFString("café")}
	arrVal := &ArrayStrValue{Values: values}
	prop := &ArrayProperty{ElementType: "StrProperty", Value: arrVal}

	w := codecio.NewWriter()
	require.NoError(t, prop.WriteBody(w))
	require.Equal(t, prop.ByteSize(), len(w.Bytes()))
}

func TestArrayStructValue_SizeMismatch_IsFatal(t *testing.T) {
	w := codecio.NewWriter()
	require.NoError(t, NewFString("Points").WriteTo(w))          // field_name
	require.NoError(t, NewFString("StructProperty").WriteTo(w)) // value_type
	require.NoError(t, w.WriteU64(16))                           // array_size: wrong, a Vector element is 12 bytes
	require.NoError(t, NewFString("Vector").WriteTo(w))          // struct_type tag
	var zero GUID
	require.NoError(t, zero.WriteTo(w))
	require.NoError(t, w.WriteU8(0)) // separator

	v := Vector{X: 1, Y: 2, Z: 3}
	require.NoError(t, v.WriteTo(w))

	r := codecio.NewReader(w.Bytes())
	readFn := arrayValueReaders["StructProperty"]
	_, err := readFn(r, 1)
	require.Error(t, err)
	var codecErr *CodecError
	require.ErrorAs(t, err, &codecErr)
	require.Equal(t, ErrAssertion, codecErr.Kind)
}
