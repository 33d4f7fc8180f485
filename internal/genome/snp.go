package genome

// SNP is a single nucleotide polymorphism call from a consumer genome
// export. Values are immutable once constructed.
type SNP struct {
	RSID       string
	Chromosome string // "1".."22", "X", "Y", "MT"
	Position   uint64 // 1-based coordinate
	Genotype   string // e.g. "AA", "AG", "--", or a no-call code
}

// IsHeterozygous reports whether the genotype is exactly two differing
// alleles. Genotypes of any other length are neither heterozygous nor
// homozygous.
func (s *SNP) IsHeterozygous() bool {
	return len(s.Genotype) == 2 && s.Genotype[0] != s.Genotype[1]
}

// IsHomozygous reports whether the genotype is exactly two identical
// alleles.
func (s *SNP) IsHomozygous() bool {
	return len(s.Genotype) == 2 && s.Genotype[0] == s.Genotype[1]
}

// IsTransition reports whether an allele pair is a transition
// (purine<->purine A/G or pyrimidine<->pyrimidine C/T). Every other
// differing pair is a transversion.
func IsTransition(a, b byte) bool {
	switch {
	case a == 'A' && b == 'G', a == 'G' && b == 'A':
		return true
	case a == 'C' && b == 'T', a == 'T' && b == 'C':
		return true
	}
	return false
}

// IsNucleotide reports whether c is one of the four bases. 23andMe data
// additionally uses '-' for no-calls and 'I'/'D' for indel probes, none
// of which are representable as SNV alleles.
func IsNucleotide(c byte) bool {
	return c == 'A' || c == 'C' || c == 'G' || c == 'T'
}
