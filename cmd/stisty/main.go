// Package main provides the stisty command-line tool: 23andMe genome
// analysis and VCF conversion for imputation services.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/captainzonks/stisty/internal/genome"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
)

var (
	flagVerbose bool
	flagConfig  string

	logger = zap.NewNop()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "stisty",
		Short:   "Analyze 23andMe genome exports and convert them to VCF",
		Version: fmt.Sprintf("%s (%s)", version, commit),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			return initLogger()
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.stisty.yaml)")

	root.AddCommand(newAnalyzeCmd())
	root.AddCommand(newSnpCmd())
	root.AddCommand(newConvertCmd())
	root.AddCommand(newBatchCmd())
	root.AddCommand(newRefdbCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func initConfig() error {
	if flagConfig != "" {
		viper.SetConfigFile(flagConfig)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
			viper.SetConfigName(".stisty")
			viper.SetConfigType("yaml")
		}
	}

	viper.SetEnvPrefix("STISTY")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine.
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func initLogger() error {
	cfg := zap.NewProductionConfig()
	if flagVerbose {
		cfg = zap.NewDevelopmentConfig()
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	logger = l
	return nil
}

// loadGenome parses a genome export for a command.
func loadGenome(path string) (*genome.Data, error) {
	parser := genome.NewParser()
	parser.SetLogger(logger)
	data, err := parser.ParseFile(path)
	if err != nil {
		return nil, err
	}
	if len(data.Warnings) > 0 {
		fmt.Fprintf(os.Stderr, "Warning: skipped %d malformed lines\n", len(data.Warnings))
	}
	return data, nil
}

// sampleName derives the imputation sample name from the input file
// name, stripping the final extension.
func sampleName(inputPath string) string {
	base := filepath.Base(inputPath)
	if ext := filepath.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return base
}
