package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captainzonks/stisty/internal/genome"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <genome-file>",
		Short: "Print summary statistics for a 23andMe genome export",
		Example: `  stisty analyze genome.txt
  stisty analyze genome.txt.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadGenome(args[0])
			if err != nil {
				return err
			}

			summary := genome.NewAnalyzer(data).Summarize()
			fmt.Print(summary.String())
			return nil
		},
	}
}

func newSnpCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "snp <genome-file> <rsid>",
		Short:   "Look up a single SNP by rsID",
		Example: "  stisty snp genome.txt rs548049170",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := loadGenome(args[0])
			if err != nil {
				return err
			}

			snp := data.FindSNP(args[1])
			if snp == nil {
				return fmt.Errorf("rsID %q not found", args[1])
			}

			fmt.Printf("rsID:       %s\n", snp.RSID)
			fmt.Printf("Chromosome: %s\n", snp.Chromosome)
			fmt.Printf("Position:   %d\n", snp.Position)
			fmt.Printf("Genotype:   %s\n", snp.Genotype)
			switch {
			case snp.IsHeterozygous():
				fmt.Println("Zygosity:   heterozygous")
			case snp.IsHomozygous():
				fmt.Println("Zygosity:   homozygous")
			default:
				fmt.Println("Zygosity:   not a two-allele call")
			}
			return nil
		},
	}
}
