package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	db := testDatabase()

	encoded, err := Encode(db)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, db.Version, decoded.Version)
	assert.Equal(t, db.Build, decoded.Build)
	assert.Equal(t, db.SNPCount, decoded.SNPCount)
	assert.Equal(t, db.Records, decoded.Records)
	assert.Equal(t, db.RSIDTable, decoded.RSIDTable)
}

func TestEncode_CountMismatch(t *testing.T) {
	db := testDatabase()
	db.SNPCount = 99
	_, err := Encode(db)
	assert.ErrorContains(t, err, "does not match")
}

func TestDecode_BadMagic(t *testing.T) {
	_, err := Decode([]byte("NOPEnothing here"))
	assert.ErrorContains(t, err, "bad magic")
}

func TestDecode_Truncated(t *testing.T) {
	db := testDatabase()
	encoded, err := Encode(db)
	require.NoError(t, err)

	// Chop the payload at various points; every cut must produce an
	// error, never a partial database.
	for _, cut := range []int{0, 3, 5, 9, 15, len(encoded) / 2, len(encoded) - 1} {
		_, err := Decode(encoded[:cut])
		assert.Error(t, err, "cut at %d", cut)
	}
}

func TestDecode_UnsupportedFormat(t *testing.T) {
	db := testDatabase()
	encoded, err := Encode(db)
	require.NoError(t, err)

	encoded[4] = 0xFF // format version lives right after the magic
	_, err = Decode(encoded)
	assert.ErrorContains(t, err, "unsupported format")
}

func TestEncodeDecode_Empty(t *testing.T) {
	db := &Database{Version: "v0", Build: "GRCh37"}
	encoded, err := Encode(db)
	require.NoError(t, err)

	decoded, err := Decode(encoded)
	require.NoError(t, err)
	assert.Zero(t, decoded.SNPCount)
	assert.Empty(t, decoded.Records)
}
