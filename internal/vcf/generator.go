// Package vcf generates Variant Call Format output from parsed genome
// data, optionally merged with a SNP reference database so the emitted
// REF/ALT alleles satisfy imputation servers.
package vcf

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/captainzonks/stisty/internal/chrom"
	"github.com/captainzonks/stisty/internal/genome"
	"github.com/captainzonks/stisty/internal/reference"
)

const (
	fileFormat = "VCFv4.2"
	source     = "Stisty-23andMe-Converter"

	// sourceNote discloses where REF/ALT came from. Imputation servers
	// must be able to tell inferred alleles from reference-derived ones.
	noteInferred  = `##sourceNote="REF and ALT alleles inferred from observed genotypes; not derived from a reference genome"`
	noteReference = `##sourceNote="REF and ALT alleles derived from reference genome database"`
)

// referenceSampleNames are the column names declared in reference mode:
// the five anonymized panel samples followed by the real sample. The
// target imputation service requires a minimum sample count, which the
// panel genotypes pad; the user's genotype is always the last column.
var referenceSampleNames = [6]string{"samp1", "samp2", "samp3", "samp4", "samp5", "samp51"}

// Generator emits VCF text for a genome. Without a reference database
// it infers REF/ALT from the observed genotype (not suitable for
// imputation); with one it joins each SNP against the reference panel.
// The reference database and its index are owned by the caller and
// only read here.
type Generator struct {
	genome *genome.Data
	db     *reference.Database
	index  reference.Index
	logger *zap.Logger
	now    func() time.Time
}

// NewGenerator returns a generator in fallback mode: REF/ALT inferred
// from the genotype.
func NewGenerator(g *genome.Data) *Generator {
	return &Generator{
		genome: g,
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// NewGeneratorWithReference returns a generator that derives REF/ALT
// from the given reference database, using an index previously built by
// db.BuildIndex.
func NewGeneratorWithReference(g *genome.Data, db *reference.Database, index reference.Index) *Generator {
	gen := NewGenerator(g)
	gen.db = db
	gen.index = index
	return gen
}

// SetLogger sets the logger used for per-variant drop reporting.
func (g *Generator) SetLogger(l *zap.Logger) {
	g.logger = l
}

func (g *Generator) hasReference() bool {
	return g.db != nil && g.index != nil
}

// Generate produces complete VCF text for one chromosome, or for the
// whole genome when chromosome is empty.
func (g *Generator) Generate(chromosome string) (string, error) {
	var b strings.Builder

	g.writeHeader(&b)

	var snps []*genome.SNP
	if chromosome == "" {
		snps = make([]*genome.SNP, 0, len(g.genome.SNPs))
		for i := range g.genome.SNPs {
			snps = append(snps, &g.genome.SNPs[i])
		}
	} else {
		snps = g.genome.SNPsByChromosome(chromosome)
	}

	sort.SliceStable(snps, func(i, j int) bool {
		if c := chrom.Compare(snps[i].Chromosome, snps[j].Chromosome); c != 0 {
			return c < 0
		}
		return snps[i].Position < snps[j].Position
	})

	dropped := 0
	for _, snp := range snps {
		if !g.writeVariant(&b, snp) {
			dropped++
		}
	}
	if dropped > 0 {
		g.logger.Debug("omitted variants without usable alleles",
			zap.String("chromosome", chromosome),
			zap.Int("dropped", dropped))
	}

	return b.String(), nil
}

// GenerateBatch produces one VCF per autosome (chromosomes 1-22; sex
// and mitochondrial chromosomes are excluded by the target imputation
// service). Chromosomes whose output carries no data lines are left
// out of the result.
func (g *Generator) GenerateBatch() (map[string]string, error) {
	files := make(map[string]string)
	for n := 1; n <= 22; n++ {
		name := fmt.Sprintf("%d", n)
		out, err := g.Generate(name)
		if err != nil {
			return nil, fmt.Errorf("generate chromosome %s: %w", name, err)
		}
		if countDataLines(out) == 0 {
			continue
		}
		files[name] = out
	}
	return files, nil
}

func countDataLines(vcfText string) int {
	n := 0
	for _, line := range strings.Split(vcfText, "\n") {
		if line != "" && !strings.HasPrefix(line, "#") {
			n++
		}
	}
	return n
}

func (g *Generator) writeHeader(b *strings.Builder) {
	fmt.Fprintf(b, "##fileformat=%s\n", fileFormat)
	fmt.Fprintf(b, "##fileDate=%s\n", g.now().UTC().Format("20060102"))
	fmt.Fprintf(b, "##source=%s\n", source)
	if g.hasReference() {
		b.WriteString(noteReference + "\n")
	} else {
		b.WriteString(noteInferred + "\n")
	}
	fmt.Fprintf(b, "##reference=%s\n", g.genome.Metadata.Build)

	chroms := make([]string, 0)
	for c := range g.genome.ChromosomeCounts() {
		chroms = append(chroms, c)
	}
	chrom.Sort(chroms)
	for _, c := range chroms {
		fmt.Fprintf(b, "##contig=<ID=%s>\n", c)
	}

	b.WriteString("##INFO=<ID=NS,Number=1,Type=Integer,Description=\"Number of samples with data\">\n")
	b.WriteString("##FORMAT=<ID=GT,Number=1,Type=String,Description=\"Genotype\">\n")
	b.WriteString("##FILTER=<ID=PASS,Description=\"All filters passed\">\n")

	b.WriteString("#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\tFORMAT")
	if g.hasReference() {
		for _, name := range referenceSampleNames {
			b.WriteByte('\t')
			b.WriteString(name)
		}
		b.WriteByte('\n')
	} else {
		b.WriteString("\tSAMPLE\n")
	}
}

// writeVariant emits one data line, or nothing when the SNP has no
// usable allele information. Omission, never a corrupt line, is the
// degradation path. Reports whether a line was written.
func (g *Generator) writeVariant(b *strings.Builder, snp *genome.SNP) bool {
	if g.hasReference() {
		return g.writeReferenceVariant(b, snp)
	}
	return g.writeInferredVariant(b, snp)
}

// writeInferredVariant handles fallback mode: a homozygous genotype XX
// becomes REF=X ALT=. GT=0/0, a heterozygous XY becomes REF=X ALT=Y
// GT=0/1. A "." REF (with GT "./.") marks an uninterpretable genotype
// and suppresses the line; a "." ALT on a homozygous call is ordinary
// VCF for "no alternate" and is written as-is.
func (g *Generator) writeInferredVariant(b *strings.Builder, snp *genome.SNP) bool {
	ref, alt, gt := inferAlleles(snp.Genotype)
	if ref == "." || gt == "./." {
		return false
	}

	fmt.Fprintf(b, "%s\t%d\t%s\t%s\t%s\t.\tPASS\tNS=1\tGT\t%s\n",
		snp.Chromosome, snp.Position, snp.RSID, ref, alt, gt)
	return true
}

// writeReferenceVariant joins the SNP against the reference panel. SNPs
// without a reference entry are dropped (an inner join: emitting
// arbitrary REF/ALT pairs the imputation server cannot reconcile is
// worse than omission), as are entries whose REF or ALT decodes to the
// 'N' sentinel and genotypes that cannot be interpreted as two called
// nucleotides.
func (g *Generator) writeReferenceVariant(b *strings.Builder, snp *genome.SNP) bool {
	ref := g.db.Lookup(snp.RSID, g.index)
	if ref == nil {
		return false
	}
	return emitReferenceVariant(b, snp, ref)
}

// emitReferenceVariant writes a variant line from a decoded reference
// entry, or nothing when the annotation is incomplete or the genotype
// unusable.
func emitReferenceVariant(b *strings.Builder, snp *genome.SNP, ref *reference.SnpRef) bool {
	if ref.RefAllele == 'N' || ref.AltAllele == 'N' {
		return false
	}
	if len(snp.Genotype) != 2 ||
		!genome.IsNucleotide(snp.Genotype[0]) ||
		!genome.IsNucleotide(snp.Genotype[1]) {
		return false
	}

	// Unphased ALT count per allele: 1 when the allele matches ALT,
	// else 0. REF/ALT order is fixed by the database; no phasing is
	// inferred.
	gt := fmt.Sprintf("%c/%c",
		altCode(snp.Genotype[0], ref.AltAllele),
		altCode(snp.Genotype[1], ref.AltAllele))

	fmt.Fprintf(b, "%s\t%d\t%s\t%c\t%c\t.\tPASS\tNS=6\tGT",
		snp.Chromosome, snp.Position, snp.RSID, ref.RefAllele, ref.AltAllele)
	for _, sample := range ref.SampleGenotypes {
		b.WriteByte('\t')
		b.WriteString(sample)
	}
	b.WriteByte('\t')
	b.WriteString(gt)
	b.WriteByte('\n')
	return true
}

func altCode(allele, alt byte) byte {
	if allele == alt {
		return '1'
	}
	return '0'
}

// inferAlleles maps a raw 23andMe genotype to (REF, ALT, GT) without
// reference information. Genotypes that are not two called nucleotides
// (wrong length, no-calls, indel codes) yield the omission sentinels.
func inferAlleles(genotype string) (ref, alt, gt string) {
	if len(genotype) != 2 {
		return ".", ".", "./."
	}
	a1, a2 := genotype[0], genotype[1]
	if !genome.IsNucleotide(a1) || !genome.IsNucleotide(a2) {
		return ".", ".", "./."
	}
	if a1 == a2 {
		return string(a1), ".", "0/0"
	}
	return string(a1), string(a2), "0/1"
}
