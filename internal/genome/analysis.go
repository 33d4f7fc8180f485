package genome

import (
	"fmt"
	"sort"
	"strings"

	"github.com/captainzonks/stisty/internal/chrom"
)

// Analyzer computes summary statistics over a parsed genome.
type Analyzer struct {
	genome *Data
}

// NewAnalyzer returns an analyzer over the given genome data.
func NewAnalyzer(genome *Data) *Analyzer {
	return &Analyzer{genome: genome}
}

// TransitionTransversionRatio computes the Ts/Tv ratio over the
// heterozygous SNPs. Transitions are A<->G and C<->T; every other
// differing allele pair counts as a transversion. Returns 0 when there
// are no transversions.
func (a *Analyzer) TransitionTransversionRatio() float64 {
	transitions, transversions := 0, 0
	for i := range a.genome.SNPs {
		snp := &a.genome.SNPs[i]
		if !snp.IsHeterozygous() {
			continue
		}
		if IsTransition(snp.Genotype[0], snp.Genotype[1]) {
			transitions++
		} else {
			transversions++
		}
	}
	if transversions == 0 {
		return 0
	}
	return float64(transitions) / float64(transversions)
}

// AlleleFrequencies returns the relative frequency of each called
// allele across all genotypes. No-call and indel codes (-, I, D) are
// excluded.
func (a *Analyzer) AlleleFrequencies() map[byte]float64 {
	counts := make(map[byte]int)
	total := 0
	for i := range a.genome.SNPs {
		gt := a.genome.SNPs[i].Genotype
		for j := 0; j < len(gt); j++ {
			c := gt[j]
			if c == '-' || c == 'I' || c == 'D' {
				continue
			}
			counts[c]++
			total++
		}
	}

	freqs := make(map[byte]float64, len(counts))
	for allele, n := range counts {
		freqs[allele] = float64(n) / float64(total)
	}
	return freqs
}

// Summary is a point-in-time report over a genome.
type Summary struct {
	TotalSNPs          int
	HeterozygosityRate float64
	TsTvRatio          float64
	ChromosomeCounts   map[string]int
	AlleleFrequencies  map[byte]float64
}

// Summarize computes the full summary report.
func (a *Analyzer) Summarize() *Summary {
	return &Summary{
		TotalSNPs:          a.genome.TotalSNPs(),
		HeterozygosityRate: a.genome.HeterozygosityRate(),
		TsTvRatio:          a.TransitionTransversionRatio(),
		ChromosomeCounts:   a.genome.ChromosomeCounts(),
		AlleleFrequencies:  a.AlleleFrequencies(),
	}
}

// String renders the summary as a human-readable report.
func (s *Summary) String() string {
	var b strings.Builder

	b.WriteString("Genome Data Summary\n")
	b.WriteString("===================\n\n")
	fmt.Fprintf(&b, "Total SNPs: %d\n", s.TotalSNPs)
	fmt.Fprintf(&b, "Heterozygosity Rate: %.4f (%.2f%%)\n",
		s.HeterozygosityRate, s.HeterozygosityRate*100)
	fmt.Fprintf(&b, "Transition/Transversion Ratio: %.4f\n\n", s.TsTvRatio)

	b.WriteString("Allele Frequencies:\n")
	alleles := make([]byte, 0, len(s.AlleleFrequencies))
	for allele := range s.AlleleFrequencies {
		alleles = append(alleles, allele)
	}
	sort.Slice(alleles, func(i, j int) bool {
		fi, fj := s.AlleleFrequencies[alleles[i]], s.AlleleFrequencies[alleles[j]]
		if fi != fj {
			return fi > fj
		}
		return alleles[i] < alleles[j]
	})
	for _, allele := range alleles {
		freq := s.AlleleFrequencies[allele]
		fmt.Fprintf(&b, "  %c: %.4f (%.2f%%)\n", allele, freq, freq*100)
	}

	b.WriteString("\nSNPs per Chromosome:\n")
	chroms := make([]string, 0, len(s.ChromosomeCounts))
	for c := range s.ChromosomeCounts {
		chroms = append(chroms, c)
	}
	chrom.Sort(chroms)
	for _, c := range chroms {
		fmt.Fprintf(&b, "  Chr %s: %d\n", c, s.ChromosomeCounts[c])
	}

	return b.String()
}

// LookupTraitSNPs returns the SNPs matching the given rsIDs, skipping
// any rsID not present in the genome.
func LookupTraitSNPs(genome *Data, rsids []string) []*SNP {
	var out []*SNP
	for _, id := range rsids {
		if snp := genome.FindSNP(id); snp != nil {
			out = append(out, snp)
		}
	}
	return out
}
