package endian

import (
	"errors"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

type flag bool

func TestMarshalBuiltinScalars(t *testing.T) {
	cases := []struct {
		in   any
		want []byte
	}{
		{true, []byte{1}},
		{false, []byte{0}},
		{int8(-2), []byte{0xfe}},
		{uint8(7), []byte{7}},
		{int16(-1), []byte{0xff, 0xff}},
		{uint16(0x0102), []byte{1, 2}},
		{int32(666), []byte{0, 0, 0x02, 0x9a}},
		{uint32(1), []byte{0, 0, 0, 1}},
		{int64(-1), []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}},
		{uint64(0x0102030405060708), []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{float32(1.0), []byte{0x3f, 0x80, 0, 0}},
		{float64(1.0), []byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}},
	}
	for _, tc := range cases {
		got, err := Marshal(tc.in)
		require.NoError(t, err, "%T", tc.in)
		require.Equal(t, tc.want, got, "%T", tc.in)
	}
}

func TestMarshalWordSizedInts(t *testing.T) {
	got, err := Marshal(int(1))
	require.NoError(t, err)
	require.Len(t, got, bits.UintSize/8)
	require.Equal(t, byte(1), got[len(got)-1])
}

func TestMarshalNamedKinds(t *testing.T) {
	got, err := Marshal(green)
	require.NoError(t, err)
	require.Equal(t, []byte{0x01, 0x01}, got)

	got, err = Marshal(flag(true))
	require.NoError(t, err)
	require.Equal(t, []byte{1}, got)

	got, err = Marshal(ratio(1.0))
	require.NoError(t, err)
	require.Equal(t, []byte{0x3f, 0x80, 0, 0}, got)
}

func TestMarshalUnsupported(t *testing.T) {
	for _, v := range []any{complex64(1), complex128(1), struct{}{}, []int{1}, nil, "text"} {
		_, err := Marshal(v)
		require.True(t, errors.Is(err, ErrUnsupportedConversion), "%T: %v", v, err)
	}
}

func TestMarshalToShortBuffer(t *testing.T) {
	_, err := MarshalTo(make([]byte, 2), uint32(1))
	require.True(t, errors.Is(err, ErrSizeMismatch), "got %v", err)
}

func TestUnmarshalRoundTrip(t *testing.T) {
	var (
		b   bool
		i16 int16
		u32 uint32
		f64 float64
		c   colour
		fl  flag
	)
	require.NoError(t, Unmarshal([]byte{2}, &b))
	require.True(t, b)

	require.NoError(t, Unmarshal([]byte{0xff, 0xfe}, &i16))
	require.Equal(t, int16(-2), i16)

	require.NoError(t, Unmarshal([]byte{0, 0, 0x02, 0x9a}, &u32))
	require.Equal(t, uint32(666), u32)

	require.NoError(t, Unmarshal([]byte{0x3f, 0xf0, 0, 0, 0, 0, 0, 0}, &f64))
	require.Equal(t, 1.0, f64)

	require.NoError(t, Unmarshal([]byte{0x01, 0x00}, &c))
	require.Equal(t, red, c)

	require.NoError(t, Unmarshal([]byte{0}, &fl))
	require.False(t, bool(fl))
}

func TestUnmarshalErrors(t *testing.T) {
	var u16 uint16
	err := Unmarshal([]byte{1, 2, 3}, &u16)
	require.True(t, errors.Is(err, ErrSizeMismatch), "got %v", err)

	var c colour
	err = Unmarshal([]byte{1}, &c)
	require.True(t, errors.Is(err, ErrSizeMismatch), "got %v", err)

	var cx complex64
	err = Unmarshal(make([]byte, 8), &cx)
	require.True(t, errors.Is(err, ErrUnsupportedConversion), "got %v", err)

	err = Unmarshal([]byte{1}, u16)
	require.True(t, errors.Is(err, ErrUnsupportedConversion), "got %v", err)

	var nilPtr *uint8
	err = Unmarshal([]byte{1}, nilPtr)
	require.True(t, errors.Is(err, ErrUnsupportedConversion), "got %v", err)
}
