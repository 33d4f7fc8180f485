package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/captainzonks/stisty/internal/reference"
)

func newRefdbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refdb",
		Short: "Inspect and fetch the SNP reference database",
	}
	cmd.AddCommand(newRefdbStatsCmd())
	cmd.AddCommand(newRefdbFetchCmd())
	return cmd
}

func newRefdbStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <database-file>",
		Short: "Print reference database statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := reference.NewLoader()
			loader.SetLogger(logger)
			db, err := loader.Load(args[0])
			if err != nil {
				return err
			}

			stats := db.Stats()
			fmt.Printf("Version:  %s\n", stats.Version)
			fmt.Printf("Build:    %s\n", stats.Build)
			fmt.Printf("SNPs:     %d\n", stats.SNPCount)
			fmt.Printf("Size:     %.2f MB in memory\n", float64(stats.SizeBytes)/(1024*1024))
			return nil
		},
	}
}

func newRefdbFetchCmd() *cobra.Command {
	var (
		url        string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the reference database",
		Long: `Download the Brotli-compressed reference database and verify it decodes
before writing it to disk. The URL can also be set once with:

  stisty config set reference.url https://example.org/reference.bin.br`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				url = viper.GetString("reference.url")
			}
			if url == "" {
				return fmt.Errorf("no URL given; pass --url or set reference.url in the config")
			}

			loader := reference.NewLoader()
			loader.SetLogger(logger)

			// Fetch and decode first so a broken payload never lands on
			// disk as if it were usable.
			db, err := loader.Fetch(cmd.Context(), url)
			if err != nil {
				return err
			}

			encoded, err := reference.Encode(db)
			if err != nil {
				return err
			}
			compressed, err := reference.Compress(encoded)
			if err != nil {
				return err
			}
			if err := os.WriteFile(outputFile, compressed, 0o644); err != nil {
				return fmt.Errorf("write reference database: %w", err)
			}

			stats := db.Stats()
			fmt.Fprintf(os.Stderr, "Fetched %s (%s, %d SNPs) to %s\n",
				stats.Version, stats.Build, stats.SNPCount, outputFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Database URL (default: reference.url from config)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "reference.bin.br", "Output file")

	return cmd
}
