// Package reference implements the compact binary SNP reference
// database: a fixed-layout record per known SNP, an rsID name table,
// and the decode and lookup logic over them.
package reference

import (
	"fmt"
	"strconv"
)

// SampleCount is the number of anonymized sample genotypes carried per
// record.
const SampleCount = 5

// SnpRecord is the wire representation of one known SNP. The packed
// fields are read through the accessor functions below rather than any
// in-memory layout trick, so the format stays portable.
type SnpRecord struct {
	// RSIDIndex is the record's segment number in the rsID table. It is
	// informational only: lookup goes through the index built by
	// Database.BuildIndex, never through this field.
	RSIDIndex uint32
	// Chromosome code: 1-22 autosomes, 23=X, 24=Y, 25=MT.
	Chromosome uint8
	// Position is the 1-based coordinate.
	Position uint32
	// RefAltFlags packs the reference allele (bits 7-6) and alternate
	// allele (bits 5-4) as 2-bit nucleotide codes; bits 3-0 reserved.
	RefAltFlags uint8
	// MAF is the minor allele frequency scaled by 10000 (0-10000).
	MAF uint16
	// SampleGenotypes packs 5 samples at 8 bits each: bits 0-1 allele 1,
	// bits 2-3 allele 2. Allele code 2 means missing, 3 is unused.
	SampleGenotypes uint64
}

// RefAllele returns the record's 2-bit reference allele code (bits 7-6
// of RefAltFlags).
func (r *SnpRecord) RefAllele() uint8 {
	return (r.RefAltFlags >> 6) & 0x03
}

// AltAllele returns the record's 2-bit alternate allele code (bits 5-4
// of RefAltFlags).
func (r *SnpRecord) AltAllele() uint8 {
	return (r.RefAltFlags >> 4) & 0x03
}

// Frequency returns the minor allele frequency as a fraction in [0, 1].
func (r *SnpRecord) Frequency() float32 {
	return float32(r.MAF) / 10000
}

// DecodeNucleotide maps a 2-bit nucleotide code to its base. Codes
// outside 0-3 decode to the 'N' sentinel rather than failing.
func DecodeNucleotide(code uint8) byte {
	switch code {
	case 0:
		return 'A'
	case 1:
		return 'C'
	case 2:
		return 'G'
	case 3:
		return 'T'
	}
	return 'N'
}

// DecodeChromosome maps a chromosome code to its name. Codes outside
// 1-25 decode to "Unknown".
func DecodeChromosome(code uint8) string {
	switch {
	case code >= 1 && code <= 22:
		return strconv.Itoa(int(code))
	case code == 23:
		return "X"
	case code == 24:
		return "Y"
	case code == 25:
		return "MT"
	}
	return "Unknown"
}

// DecodeSampleGenotypes unpacks the five 8-bit sample slots. Each
// genotype renders as "a1/a2" using the raw 0/1 ALT-count codes; a slot
// with either allele code 2 is missing and renders as "./.".
func DecodeSampleGenotypes(packed uint64) [SampleCount]string {
	var genotypes [SampleCount]string
	for i := 0; i < SampleCount; i++ {
		slot := (packed >> (i * 8)) & 0xFF
		allele1 := slot & 0x03
		allele2 := (slot >> 2) & 0x03

		if allele1 == 2 || allele2 == 2 {
			genotypes[i] = "./."
			continue
		}
		genotypes[i] = fmt.Sprintf("%d/%d", allele1, allele2)
	}
	return genotypes
}
