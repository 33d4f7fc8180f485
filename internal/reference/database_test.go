package reference

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// packFlags builds a RefAltFlags byte from ref and alt nucleotide codes.
func packFlags(ref, alt uint8) uint8 {
	return ref<<6 | alt<<4
}

func testDatabase() *Database {
	records := []SnpRecord{
		{
			RSIDIndex:   0,
			Chromosome:  1,
			Position:    100,
			RefAltFlags: packFlags(0, 2), // ref A, alt G
			MAF:         2500,
			SampleGenotypes: packSample(0, 0) |
				packSample(0, 1)<<8 |
				packSample(1, 1)<<16 |
				packSample(2, 2)<<24 |
				packSample(0, 0)<<32,
		},
		{
			RSIDIndex:   1,
			Chromosome:  23,
			Position:    200,
			RefAltFlags: packFlags(1, 3), // ref C, alt T
			MAF:         10000,
		},
		{
			RSIDIndex:   2,
			Chromosome:  25,
			Position:    300,
			RefAltFlags: packFlags(3, 1) | 0x0F, // ref T, alt C, reserved bits set
		},
	}

	return &Database{
		Version:   "v1.0",
		Build:     "GRCh37",
		SNPCount:  len(records),
		Records:   records,
		RSIDTable: "rs100\x00rs200\x00rs300\x00",
	}
}

func TestBuildIndex(t *testing.T) {
	db := testDatabase()
	index := db.BuildIndex()

	require.Len(t, index, 3)
	assert.Equal(t, 0, index["rs100"])
	assert.Equal(t, 1, index["rs200"])
	assert.Equal(t, 2, index["rs300"])
}

func TestBuildIndex_DuplicateFirstWins(t *testing.T) {
	db := testDatabase()
	db.RSIDTable = "rs100\x00rs200\x00rs100\x00"
	index := db.BuildIndex()

	assert.Equal(t, 0, index["rs100"])
	assert.Equal(t, 1, index["rs200"])
}

func TestLookup(t *testing.T) {
	db := testDatabase()
	index := db.BuildIndex()

	ref := db.Lookup("rs100", index)
	require.NotNil(t, ref)
	assert.Equal(t, byte('A'), ref.RefAllele)
	assert.Equal(t, byte('G'), ref.AltAllele)
	assert.Equal(t, float32(0.25), ref.MAF)
	assert.Equal(t, "1", ref.Chromosome)
	assert.Equal(t, uint32(100), ref.Position)
	assert.Equal(t, [SampleCount]string{"0/0", "0/1", "1/1", "./.", "0/0"}, ref.SampleGenotypes)

	x := db.Lookup("rs200", index)
	require.NotNil(t, x)
	assert.Equal(t, "X", x.Chromosome)
	assert.Equal(t, byte('C'), x.RefAllele)
	assert.Equal(t, byte('T'), x.AltAllele)
	assert.Equal(t, float32(1), x.MAF)
}

func TestLookup_Missing(t *testing.T) {
	db := testDatabase()
	index := db.BuildIndex()
	assert.Nil(t, db.Lookup("rs999", index))
}

func TestLookup_IndexOutOfBounds(t *testing.T) {
	db := testDatabase()
	index := Index{"rs100": 42}
	assert.Nil(t, db.Lookup("rs100", index))
}

func TestStats(t *testing.T) {
	db := testDatabase()
	stats := db.Stats()

	assert.Equal(t, "v1.0", stats.Version)
	assert.Equal(t, "GRCh37", stats.Build)
	assert.Equal(t, 3, stats.SNPCount)
	assert.Equal(t, 3*recordSize+len(db.RSIDTable), stats.SizeBytes)
}

func TestBuildIndex_SkipsEmptySegments(t *testing.T) {
	db := testDatabase()
	// Trailing separator leaves an empty final segment, which must not
	// shift record positions or land in the index.
	require.True(t, strings.HasSuffix(db.RSIDTable, "\x00"))
	index := db.BuildIndex()
	assert.NotContains(t, index, "")
	assert.Len(t, index, 3)
}
