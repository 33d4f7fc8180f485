package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/captainzonks/stisty/internal/reference"
	"github.com/captainzonks/stisty/internal/vcf"
)

func newBatchCmd() *cobra.Command {
	var (
		outputDir string
		refPath   string
		sample    string
	)

	cmd := &cobra.Command{
		Use:   "batch <genome-file>",
		Short: "Generate per-autosome BGZF-compressed VCFs for imputation upload",
		Long: `Generate one VCF per autosome (chromosomes 1-22), BGZF-compressed and
named for the imputation service's upload convention. Chromosomes with
no usable variants are skipped.`,
		Example: `  stisty batch genome.txt --reference reference.bin.br -o upload/`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadGenome(args[0])
			if err != nil {
				return err
			}

			loader := reference.NewLoader()
			loader.SetLogger(logger)
			db, err := loader.Load(refPath)
			if err != nil {
				return err
			}

			gen := vcf.NewGeneratorWithReference(data, db, db.BuildIndex())
			gen.SetLogger(logger)

			files, err := gen.GenerateBatch()
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no autosomal variants matched the reference panel")
			}

			if sample == "" {
				sample = sampleName(args[0])
			}

			paths, err := vcf.WriteBatchFiles(outputDir, sample, files)
			if err != nil {
				return err
			}
			for _, p := range paths {
				fmt.Fprintf(os.Stderr, "Wrote %s\n", p)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "Output directory")
	cmd.Flags().StringVarP(&refPath, "reference", "r", "", "Reference database file (Brotli-compressed)")
	cmd.Flags().StringVar(&sample, "sample", "", "Sample name for output file names (default: input file name)")
	cmd.MarkFlagRequired("reference")

	return cmd
}
