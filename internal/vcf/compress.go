package vcf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/pgzip"

	"github.com/captainzonks/stisty/internal/chrom"
)

// Gzip compresses VCF text with plain gzip for transport.
func Gzip(vcfText string) ([]byte, error) {
	var buf bytes.Buffer
	w := pgzip.NewWriter(&buf)
	if _, err := w.Write([]byte(vcfText)); err != nil {
		return nil, fmt.Errorf("gzip vcf: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("gzip vcf: %w", err)
	}
	return buf.Bytes(), nil
}

// BGZF compresses VCF text as block gzip. BGZF output is valid gzip
// (it begins with the 0x1f 0x8b magic) but keeps block boundaries so
// downstream tools can index it for random access.
func BGZF(vcfText string) ([]byte, error) {
	var buf bytes.Buffer
	w := bgzf.NewWriter(&buf, 1)
	if _, err := w.Write([]byte(vcfText)); err != nil {
		return nil, fmt.Errorf("bgzf vcf: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("bgzf vcf: %w", err)
	}
	return buf.Bytes(), nil
}

// BatchFileName is the upload naming convention for per-autosome VCFs.
func BatchFileName(sampleName, chromosome string) string {
	return fmt.Sprintf("B.%s_merged_6samples_chr%s.vcf.gz", sampleName, chromosome)
}

// WriteBatchFiles writes per-chromosome VCF text (as produced by
// GenerateBatch) into dir, one BGZF-compressed file per chromosome.
// Returns the written paths in chromosome order.
func WriteBatchFiles(dir, sampleName string, files map[string]string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("write batch vcfs: %w", err)
	}

	chroms := make([]string, 0, len(files))
	for c := range files {
		chroms = append(chroms, c)
	}
	chrom.Sort(chroms)

	paths := make([]string, 0, len(chroms))
	for _, c := range chroms {
		compressed, err := BGZF(files[c])
		if err != nil {
			return nil, fmt.Errorf("write batch vcfs: chromosome %s: %w", c, err)
		}
		path := filepath.Join(dir, BatchFileName(sampleName, c))
		if err := os.WriteFile(path, compressed, 0o644); err != nil {
			return nil, fmt.Errorf("write batch vcfs: %w", err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
