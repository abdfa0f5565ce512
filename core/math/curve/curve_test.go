package curve

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compressed encoding of the secp256k1 generator.
const generatorHex = "0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798"

func TestScalarBaseMultGenerator(t *testing.T) {
	x, y := ScalarBaseMult(big.NewInt(1))
	enc := SerializePoint(x, y)
	assert.Equal(t, generatorHex, hex.EncodeToString(enc[:]))
}

func TestParsePointRoundTrip(t *testing.T) {
	x, y := ScalarBaseMult(big.NewInt(5))
	enc := SerializePoint(x, y)

	px, py, err := ParsePoint(enc[:])
	require.NoError(t, err)
	assert.Zero(t, x.Cmp(px))
	assert.Zero(t, y.Cmp(py))
}

func TestParsePointRejectsMalformed(t *testing.T) {
	_, _, err := ParsePoint([]byte{0x02, 0x01})
	assert.Error(t, err, "short encoding must be rejected")

	_, _, err = ParsePoint(make([]byte, PointSize))
	assert.Error(t, err, "all-zero encoding must be rejected")

	// x == p is not a valid field element.
	bad := make([]byte, PointSize)
	bad[0] = 0x02
	P().FillBytes(bad[1:])
	_, _, err = ParsePoint(bad)
	assert.Error(t, err)
}

func TestSerializePointParity(t *testing.T) {
	// G has an even y-coordinate, 7·G an odd one.
	x, y := ScalarBaseMult(big.NewInt(1))
	assert.Equal(t, byte(0x02), SerializePoint(x, y)[0])

	x, y = ScalarBaseMult(big.NewInt(7))
	enc := SerializePoint(x, y)
	assert.Equal(t, byte(0x02)|byte(y.Bit(0)), enc[0])

	px, py, err := ParsePoint(enc[:])
	require.NoError(t, err)
	assert.Zero(t, x.Cmp(px))
	assert.Zero(t, y.Cmp(py))
}

func TestSerializeScalarPadding(t *testing.T) {
	enc := SerializeScalar(big.NewInt(0xff))
	assert.Equal(t, byte(0xff), enc[31])
	for i := 0; i < 31; i++ {
		assert.Zero(t, enc[i])
	}
}

func TestAddInverseIsInfinity(t *testing.T) {
	x, y := ScalarBaseMult(big.NewInt(9))
	negY := new(big.Int).Sub(P(), y)

	ix, iy := Add(x, y, x, negY)
	assert.Zero(t, ix.Sign())
	assert.Zero(t, iy.Sign())
}
