package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"

	"github.com/loteiro/loteiro/pkg/batch"
	"github.com/loteiro/loteiro/pkg/pain"
	"github.com/loteiro/loteiro/pkg/plan"
	"github.com/loteiro/loteiro/pkg/service"
)

var (
	flagDelimiter string
	flagXSD       string
	flagOutput    string
	flagDebug     bool
	flagDryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "loteiro",
	Short: "Convert payment batch files to ISO 20022 pain.001.001.09 XML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		// Show help when no subcommand is provided
		return cmd.Help()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <path-or-glob>",
	Short: "Convert batch files (csv, txt, xls, xlsx) to pain.001 XML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		if flagDebug {
			if err := debugDump(args[0]); err != nil {
				return err
			}
		}

		checker, err := service.LoadChecker(flagXSD, logger)
		if err != nil {
			return err
		}
		processor := service.NewProcessor(logger, checker, delimiterRune(), flagOutput)

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				logger.Warn("failed to stat file", "err", err, "file", match)
				continue
			}
			if info.IsDir() {
				if err := processor.ProcessDirectory(match); err != nil {
					return err
				}
				continue
			}
			if _, err := processor.ProcessFile(match); err != nil {
				return err
			}
		}
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <plan.yaml>",
	Short: "Convert every batch listed in a YAML plan file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}

		if flagDryRun {
			fmt.Printf("Plan preview for %s\n", args[0])
			p.Print()
			return nil
		}

		checker, err := service.LoadChecker(p.XSD, logger)
		if err != nil {
			return err
		}

		for _, b := range p.Batches {
			if err := runPlanBatch(logger, checker, p, b); err != nil {
				return fmt.Errorf("batch %s: %w", b.Input, err)
			}
		}
		return nil
	},
}

// runPlanBatch converts one plan entry, honoring its exact output path.
func runPlanBatch(logger *log.Logger, checker pain.SchemaChecker, p *plan.Plan, b plan.Batch) error {
	input, err := b.File()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	delim := firstRune(b.Delimiter, firstRune(p.Delimiter, ';'))
	out, err := pain.NewConverter(checker, delim).ConvertFile(data, filepath.Base(input))
	if err != nil {
		return err
	}

	outPath := b.OutputFile()
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return err
	}
	logger.Info("converted batch", "input", input, "output", outPath)
	return nil
}

// debugDump parses the first matching file and pretty-prints the batch
// model without converting it.
func debugDump(pattern string) error {
	matches, err := filepath.Glob(pattern)
	if err != nil || len(matches) == 0 {
		return err
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		return err
	}
	records, err := batch.ReadRecords(data, filepath.Base(matches[0]), delimiterRune())
	if err != nil {
		return err
	}
	b, err := batch.Parse(records)
	if err != nil {
		return err
	}
	pp.Println(b)
	return nil
}

func newLogger() *log.Logger {
	opts := log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "loteiro",
	}
	if flagDebug {
		opts.Level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, opts)
}

func delimiterRune() rune {
	return firstRune(flagDelimiter, ';')
}

func firstRune(s string, fallback rune) rune {
	if s == "" {
		return fallback
	}
	return []rune(s)[0]
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Verbose logging and batch dump")

	convertCmd.Flags().StringVar(&flagDelimiter, "delimiter", ";", "Column delimiter for delimited batch files")
	convertCmd.Flags().StringVar(&flagXSD, "xsd", "", "Schema file for XML validation (skipped when absent)")
	convertCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output directory (default: next to each input)")

	planCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Preview the plan without converting")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
