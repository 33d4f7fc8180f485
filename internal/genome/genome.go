// Package genome parses 23andMe-style raw genotype exports into an
// in-memory SNP record set and answers simple queries over it.
package genome

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// DefaultBuild is the reference genome build consumer exports are
// aligned to.
const DefaultBuild = "GRCh37/hg19"

// Metadata holds fields parsed from the comment header of a 23andMe
// export. FileID, Signature and Timestamp are empty when the header did
// not carry them.
type Metadata struct {
	FileID    string
	Signature string
	Timestamp string
	Build     string
}

// Data is a parsed genome export: SNPs in file order (duplicate rsIDs
// are kept) plus header metadata. Data is never mutated after parsing.
type Data struct {
	SNPs     []SNP
	Metadata Metadata

	// Warnings records data lines that were dropped during parsing,
	// one human-readable message per line.
	Warnings []string
}

// Parser reads the 23andMe text format. The zero value is not usable;
// call NewParser.
type Parser struct {
	logger *zap.Logger
}

// NewParser returns a parser that logs nothing. Use SetLogger to attach
// a real logger.
func NewParser() *Parser {
	return &Parser{logger: zap.NewNop()}
}

// SetLogger sets the logger used for per-line warnings.
func (p *Parser) SetLogger(l *zap.Logger) {
	p.logger = l
}

// ParseFile reads and parses a genome export from disk. Plain text and
// gzip-compressed exports are both accepted; compression is detected
// from the gzip magic bytes, not the file name.
func (p *Parser) ParseFile(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genome file: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic, err := br.Peek(2)
	if err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzip genome file: %w", err)
		}
		defer gz.Close()
		return p.Parse(gz)
	}
	return p.Parse(br)
}

// ParseString parses genome data held in memory.
func (p *Parser) ParseString(content string) (*Data, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse reads the full 23andMe text format from r.
//
// Comment lines start with '#'; the recognized metadata prefixes
// "# file_id:", "# signature:" and "# timestamp:" populate Metadata and
// all other comments are ignored. The column header line (first token
// "rsid") is skipped. Every other non-empty line must be four
// tab-separated fields; malformed lines are dropped with a warning and
// parsing continues. Only a read failure on r is fatal.
func (p *Parser) Parse(r io.Reader) (*Data, error) {
	data := &Data{Metadata: Metadata{Build: DefaultBuild}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "#") {
			p.parseComment(line, &data.Metadata)
			continue
		}

		if strings.HasPrefix(line, "rsid") {
			// Column header.
			continue
		}

		snp, err := parseLine(line)
		if err != nil {
			msg := fmt.Sprintf("line %d: %v", lineNo, err)
			data.Warnings = append(data.Warnings, msg)
			p.logger.Warn("skipping malformed SNP line",
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		data.SNPs = append(data.SNPs, snp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read genome data: %w", err)
	}

	p.logger.Info("imported genome data",
		zap.Int("snps", len(data.SNPs)),
		zap.Int("skipped", len(data.Warnings)))

	return data, nil
}

func (p *Parser) parseComment(line string, md *Metadata) {
	for _, prefix := range []struct {
		tag string
		dst *string
	}{
		{"# file_id:", &md.FileID},
		{"# signature:", &md.Signature},
		{"# timestamp:", &md.Timestamp},
	} {
		if strings.HasPrefix(line, prefix.tag) {
			*prefix.dst = strings.TrimSpace(strings.TrimPrefix(line, prefix.tag))
			return
		}
	}
}

func parseLine(line string) (SNP, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 4 {
		return SNP{}, fmt.Errorf("expected 4 tab-separated fields, got %d", len(fields))
	}

	pos, err := strconv.ParseUint(fields[2], 10, 64)
	if err != nil {
		return SNP{}, fmt.Errorf("invalid position %q", fields[2])
	}

	return SNP{
		RSID:       fields[0],
		Chromosome: fields[1],
		Position:   pos,
		Genotype:   fields[3],
	}, nil
}

// FindSNP returns the first SNP with the given rsID, or nil.
func (d *Data) FindSNP(rsid string) *SNP {
	for i := range d.SNPs {
		if d.SNPs[i].RSID == rsid {
			return &d.SNPs[i]
		}
	}
	return nil
}

// SNPsByChromosome returns all SNPs on the given chromosome in file
// order.
func (d *Data) SNPsByChromosome(chromosome string) []*SNP {
	var out []*SNP
	for i := range d.SNPs {
		if d.SNPs[i].Chromosome == chromosome {
			out = append(out, &d.SNPs[i])
		}
	}
	return out
}

// TotalSNPs returns the number of parsed SNPs.
func (d *Data) TotalSNPs() int {
	return len(d.SNPs)
}

// HeterozygosityRate returns the proportion of heterozygous SNPs, or 0
// for an empty record set.
func (d *Data) HeterozygosityRate() float64 {
	if len(d.SNPs) == 0 {
		return 0
	}
	het := 0
	for i := range d.SNPs {
		if d.SNPs[i].IsHeterozygous() {
			het++
		}
	}
	return float64(het) / float64(len(d.SNPs))
}

// ChromosomeCounts returns the number of SNPs per chromosome.
func (d *Data) ChromosomeCounts() map[string]int {
	counts := make(map[string]int)
	for i := range d.SNPs {
		counts[d.SNPs[i].Chromosome]++
	}
	return counts
}
