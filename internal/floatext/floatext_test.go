package floatext

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnownEncodings(t *testing.T) {
	one := Encode(1.0)
	assert.Equal(t, [16]byte{0x3F, 0xFF}, [16]byte{one[0], one[1]})
	for _, b := range one[2:] {
		assert.Zero(t, b)
	}

	negTwo := Encode(-2.0)
	assert.Equal(t, byte(0xC0), negTwo[0])
	assert.Equal(t, byte(0x00), negTwo[1])
}

func TestRoundTrip(t *testing.T) {
	values := []float64{
		0, math.Copysign(0, -1), 1, -1, 0.5, -0.375, 3.141592653589793,
		math.MaxFloat64, math.SmallestNonzeroFloat64, -math.SmallestNonzeroFloat64,
		1e-300, -2.2250738585072014e-308, // smallest normal float64
		math.Inf(1), math.Inf(-1),
	}
	for _, v := range values {
		got := Decode(Encode(v))
		if v == 0 {
			assert.Equal(t, math.Signbit(v), math.Signbit(got))
		}
		assert.Equal(t, v, got, "value %g", v)
	}
}

func TestNaN(t *testing.T) {
	assert.True(t, math.IsNaN(Decode(Encode(math.NaN()))))
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -0.1, 2.718281828459045, 1e300, 5e-324} {
		s := Format(v)
		got, err := Parse(s)
		require.NoError(t, err)
		assert.Equal(t, v, got, "text %q", s)
	}
}
