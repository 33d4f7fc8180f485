package reference

import "strings"

// Database is a loaded SNP reference database. It is immutable after
// load: build the rsID index once and share both across lookups.
type Database struct {
	// Version identifies the database build pipeline run.
	Version string
	// Build is the reference genome build the records are aligned to.
	Build string
	// SNPCount is the record count declared by the header.
	SNPCount int
	// Records holds one fixed-layout record per known SNP.
	Records []SnpRecord
	// RSIDTable is the null-separated rsID name table; segment i names
	// record i.
	RSIDTable string
}

// SnpRef is the decoded lookup result for a single SNP.
type SnpRef struct {
	RefAllele  byte
	AltAllele  byte
	MAF        float32 // fraction in [0, 1]
	Chromosome string
	Position   uint32
	// SampleGenotypes holds the five anonymized genotypes, each one of
	// "0/0", "0/1", "1/0", "1/1" or "./.".
	SampleGenotypes [SampleCount]string
}

// Index maps rsIDs to record positions.
type Index map[string]int

// BuildIndex scans the rsID table once and maps each name to its record
// position. Duplicate names are not expected; when present, the first
// occurrence wins.
func (db *Database) BuildIndex() Index {
	index := make(Index, db.SNPCount)
	pos := 0
	for _, rsid := range strings.Split(db.RSIDTable, "\x00") {
		if rsid == "" {
			continue
		}
		if _, seen := index[rsid]; !seen {
			index[rsid] = pos
		}
		pos++
	}
	return index
}

// Lookup decodes the record for the given rsID, or returns nil when the
// rsID is absent from the index or its position falls outside the
// record vector.
func (db *Database) Lookup(rsid string, index Index) *SnpRef {
	pos, ok := index[rsid]
	if !ok || pos < 0 || pos >= len(db.Records) {
		return nil
	}
	rec := &db.Records[pos]

	return &SnpRef{
		RefAllele:       DecodeNucleotide(rec.RefAllele()),
		AltAllele:       DecodeNucleotide(rec.AltAllele()),
		MAF:             rec.Frequency(),
		Chromosome:      DecodeChromosome(rec.Chromosome),
		Position:        rec.Position,
		SampleGenotypes: DecodeSampleGenotypes(rec.SampleGenotypes),
	}
}

// Stats summarizes a loaded database.
type Stats struct {
	Version  string
	Build    string
	SNPCount int
	// SizeBytes approximates the in-memory footprint: the record vector
	// plus the rsID table.
	SizeBytes int
}

// Stats reports database identity and approximate size.
func (db *Database) Stats() Stats {
	return Stats{
		Version:   db.Version,
		Build:     db.Build,
		SNPCount:  db.SNPCount,
		SizeBytes: len(db.Records)*recordSize + len(db.RSIDTable),
	}
}
