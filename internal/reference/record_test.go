package reference

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNucleotide(t *testing.T) {
	assert.Equal(t, byte('A'), DecodeNucleotide(0))
	assert.Equal(t, byte('C'), DecodeNucleotide(1))
	assert.Equal(t, byte('G'), DecodeNucleotide(2))
	assert.Equal(t, byte('T'), DecodeNucleotide(3))

	// Out-of-range codes decode to the sentinel, never fail.
	for code := uint8(4); code != 0; code++ {
		assert.Equal(t, byte('N'), DecodeNucleotide(code), "code %d", code)
	}
}

func TestDecodeChromosome(t *testing.T) {
	assert.Equal(t, "1", DecodeChromosome(1))
	assert.Equal(t, "22", DecodeChromosome(22))
	assert.Equal(t, "X", DecodeChromosome(23))
	assert.Equal(t, "Y", DecodeChromosome(24))
	assert.Equal(t, "MT", DecodeChromosome(25))

	assert.Equal(t, "Unknown", DecodeChromosome(0))
	assert.Equal(t, "Unknown", DecodeChromosome(26))
	assert.Equal(t, "Unknown", DecodeChromosome(255))
}

func TestRefAltAccessors(t *testing.T) {
	// ref=G (10), alt=T (11), reserved bits set to noise.
	rec := &SnpRecord{RefAltFlags: 0b10_11_0101}
	assert.Equal(t, uint8(2), rec.RefAllele())
	assert.Equal(t, uint8(3), rec.AltAllele())
	assert.Equal(t, byte('G'), DecodeNucleotide(rec.RefAllele()))
	assert.Equal(t, byte('T'), DecodeNucleotide(rec.AltAllele()))
}

func TestFrequency(t *testing.T) {
	assert.Equal(t, float32(0), (&SnpRecord{MAF: 0}).Frequency())
	assert.Equal(t, float32(0.1234), (&SnpRecord{MAF: 1234}).Frequency())
	assert.Equal(t, float32(1), (&SnpRecord{MAF: 10000}).Frequency())
}

// packSample builds one 8-bit sample slot from two 2-bit allele codes.
func packSample(allele1, allele2 uint64) uint64 {
	return allele1 | allele2<<2
}

func TestDecodeSampleGenotypes(t *testing.T) {
	packed := packSample(0, 0) |
		packSample(0, 1)<<8 |
		packSample(1, 0)<<16 |
		packSample(1, 1)<<24 |
		packSample(2, 2)<<32

	gts := DecodeSampleGenotypes(packed)
	assert.Equal(t, [SampleCount]string{"0/0", "0/1", "1/0", "1/1", "./."}, gts)
}

func TestDecodeSampleGenotypes_PartialMissing(t *testing.T) {
	// Either allele code 2 marks the whole genotype missing.
	packed := packSample(2, 1) | packSample(0, 2)<<8
	gts := DecodeSampleGenotypes(packed)
	assert.Equal(t, "./.", gts[0])
	assert.Equal(t, "./.", gts[1])
}
