package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/captainzonks/stisty/internal/reference"
	"github.com/captainzonks/stisty/internal/vcf"
)

func newConvertCmd() *cobra.Command {
	var (
		outputFile string
		chromosome string
		refPath    string
		useGzip    bool
		useBGZF    bool
	)

	cmd := &cobra.Command{
		Use:   "convert <genome-file>",
		Short: "Convert a genome export to VCF",
		Long: `Convert a 23andMe genome export to VCF v4.2.

Without --reference, REF and ALT alleles are inferred from the observed
genotype; the output is valid VCF but not suitable for imputation. With
--reference, each SNP is joined against the reference panel and SNPs
the panel does not know are omitted.`,
		Example: `  stisty convert genome.txt -o genome.vcf
  stisty convert genome.txt --chromosome 7 --reference reference.bin.br
  stisty convert genome.txt --bgzf -o genome.vcf.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if useGzip && useBGZF {
				return fmt.Errorf("--gzip and --bgzf are mutually exclusive")
			}

			data, err := loadGenome(args[0])
			if err != nil {
				return err
			}

			gen := vcf.NewGenerator(data)
			if refPath != "" {
				loader := reference.NewLoader()
				loader.SetLogger(logger)
				db, err := loader.Load(refPath)
				if err != nil {
					return err
				}
				gen = vcf.NewGeneratorWithReference(data, db, db.BuildIndex())
			}
			gen.SetLogger(logger)

			out, err := gen.Generate(chromosome)
			if err != nil {
				return err
			}

			payload := []byte(out)
			switch {
			case useGzip:
				payload, err = vcf.Gzip(out)
			case useBGZF:
				payload, err = vcf.BGZF(out)
			}
			if err != nil {
				return err
			}

			if outputFile == "" {
				_, err = os.Stdout.Write(payload)
				return err
			}
			if err := os.WriteFile(outputFile, payload, 0o644); err != nil {
				return fmt.Errorf("write vcf: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s (%d bytes)\n", outputFile, len(payload))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&chromosome, "chromosome", "c", "", "Only convert one chromosome (e.g. 1, X)")
	cmd.Flags().StringVarP(&refPath, "reference", "r", "", "Reference database file (Brotli-compressed)")
	cmd.Flags().BoolVar(&useGzip, "gzip", false, "Gzip-compress the output")
	cmd.Flags().BoolVar(&useBGZF, "bgzf", false, "BGZF-compress the output (indexable block gzip)")

	return cmd
}
