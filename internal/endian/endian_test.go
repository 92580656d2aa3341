package endian

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

type colour uint16

const (
	red colour = iota + 0x0100
	green
)

type ratio float32

func TestPut64WritesBigEndianBytes(t *testing.T) {
	buf := make([]byte, 8)
	n := Put(buf, uint64(0xdeadbeef10204080))
	require.Equal(t, 8, n)
	require.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef, 0x10, 0x20, 0x40, 0x80}, buf)
	require.Equal(t, uint64(0xdeadbeef10204080), Get[uint64](buf))
}

func TestPutNarrowWidths(t *testing.T) {
	buf := make([]byte, 4)
	Put(buf, uint32(666))
	require.Equal(t, []byte{0x00, 0x00, 0x02, 0x9a}, buf)

	Put(buf[:2], int16(-2))
	require.Equal(t, []byte{0xff, 0xfe}, buf[:2])

	Put(buf[:1], int8(-1))
	require.Equal(t, byte(0xff), buf[0])
}

func TestRoundTripAllScalars(t *testing.T) {
	roundTrip(t, int8(math.MinInt8))
	roundTrip(t, uint8(math.MaxUint8))
	roundTrip(t, int16(math.MinInt16))
	roundTrip(t, uint16(math.MaxUint16))
	roundTrip(t, int32(math.MinInt32))
	roundTrip(t, uint32(math.MaxUint32))
	roundTrip(t, int64(math.MinInt64))
	roundTrip(t, uint64(math.MaxUint64))
	roundTrip(t, int(-42))
	roundTrip(t, uint(42))
	roundTrip(t, float32(-3.25))
	roundTrip(t, math.Float32frombits(0x7fa00001))
	roundTrip(t, math.Inf(-1))
	roundTrip(t, math.Float64frombits(0x7ff4000000000001))
	roundTrip(t, green)
	roundTrip(t, ratio(0.5))
}

func roundTrip[T Scalar](t *testing.T, v T) {
	t.Helper()
	buf := make([]byte, Size[T]())
	Put(buf, v)
	got := Get[T](buf)
	require.Equal(t, bitsOf(v), bitsOf(got), "value %v", v)
}

func bitsOf[T Scalar](v T) []byte {
	return Append(nil, v)
}

func TestFloatEncodesBitPatternNotNumericValue(t *testing.T) {
	buf := make([]byte, 4)
	Put(buf, float32(1.0))
	require.Equal(t, []byte{0x3f, 0x80, 0x00, 0x00}, buf)

	var raw uint32 = 0x3f800000
	Put(buf, raw)
	require.Equal(t, float32(1.0), Get[float32](buf))
}

func TestNamedScalarKeepsUnderlyingBits(t *testing.T) {
	buf := make([]byte, 2)
	Put(buf, red)
	require.Equal(t, []byte{0x01, 0x00}, buf)
	require.Equal(t, red, Get[colour](buf))
}

func TestNativeAndPortablePathsAgree(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := make([]byte, 8)
	b := make([]byte, 8)
	for i := 0; i < 2000; i++ {
		x := rng.Uint64()

		nativePut16(a, uint16(x))
		portablePut16(b, uint16(x))
		require.Equal(t, a[:2], b[:2])
		require.Equal(t, nativeGet16(a), portableGet16(a))

		nativePut32(a, uint32(x))
		portablePut32(b, uint32(x))
		require.Equal(t, a[:4], b[:4])
		require.Equal(t, nativeGet32(a), portableGet32(a))

		nativePut64(a, x)
		portablePut64(b, x)
		require.Equal(t, a, b)
		require.Equal(t, nativeGet64(a), portableGet64(a))
		require.Equal(t, x, portableGet64(b))
	}
}

func TestNativePathOnForeignHostOrder(t *testing.T) {
	saved := hostBigEndian
	defer func() { hostBigEndian = saved }()

	// the byte-swap branch and the plain store branch must differ
	hostBigEndian = !saved
	buf := make([]byte, 4)
	nativePut32(buf, 0x01020304)
	require.NotEqual(t, []byte{0x01, 0x02, 0x03, 0x04}, buf)
	require.Equal(t, uint32(0x01020304), nativeGet32(buf))
}

func TestAppendAdvancesDestination(t *testing.T) {
	out := Append([]byte{0xaa}, uint16(0x0102))
	out = Append(out, int8(-1))
	require.Equal(t, []byte{0xaa, 0x01, 0x02, 0xff}, out)
}

func TestDecodeRejectsWrongLength(t *testing.T) {
	_, err := Decode[uint32]([]byte{1, 2, 3})
	require.True(t, errors.Is(err, ErrSizeMismatch), "got %v", err)

	v, err := Decode[uint16]([]byte{0x12, 0x34})
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), v)
}
