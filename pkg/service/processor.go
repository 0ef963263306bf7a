// Package service wires the conversion pipeline to the filesystem for the
// CLI: read batch file, convert, write the XML next to it.
package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/loteiro/loteiro/pkg/pain"
	"github.com/loteiro/loteiro/pkg/xsdval"
)

// Processor converts batch files on disk.
type Processor struct {
	logger    *log.Logger
	converter *pain.Converter
	outputDir string
}

// NewProcessor builds a Processor. checker may be nil to skip schema
// validation; outputDir may be empty to write next to each input.
func NewProcessor(logger *log.Logger, checker pain.SchemaChecker, delimiter rune, outputDir string) *Processor {
	return &Processor{
		logger:    logger,
		converter: pain.NewConverter(checker, delimiter),
		outputDir: outputDir,
	}
}

// LoadChecker builds a schema checker for path. A missing file is not an
// error: validation is simply skipped, matching the optional-when-absent
// contract of the schema resource.
func LoadChecker(path string, logger *log.Logger) (pain.SchemaChecker, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		logger.Debug("schema file not found, skipping validation", "path", path)
		return nil, nil
	}
	checker, err := xsdval.FromFile(path)
	if err != nil {
		return nil, err
	}
	return checker, nil
}

// ProcessFile converts one batch file and writes the resulting XML. It
// returns the output path.
func (p *Processor) ProcessFile(inputPath string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	out, err := p.converter.ConvertFile(data, filepath.Base(inputPath))
	if err != nil {
		return "", err
	}

	outPath := p.outputPath(inputPath)
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return "", fmt.Errorf("failed to write output file: %w", err)
	}

	p.logger.Info("converted batch", "input", inputPath, "output", outPath)
	return outPath, nil
}

// ProcessDirectory converts every batch file in dir. Individual failures
// are logged and reported, but do not stop the remaining files.
func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	var failed int
	for _, entry := range entries {
		if entry.IsDir() || !isBatchFile(entry.Name()) {
			continue
		}
		if _, err := p.ProcessFile(filepath.Join(dir, entry.Name())); err != nil {
			p.logger.Error("failed to process file", "file", entry.Name(), "err", err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to convert", failed)
	}
	return nil
}

func (p *Processor) outputPath(inputPath string) string {
	name := filepath.Base(inputPath)
	name = strings.TrimSuffix(name, filepath.Ext(name)) + ".xml"
	if p.outputDir != "" {
		return filepath.Join(p.outputDir, name)
	}
	return filepath.Join(filepath.Dir(inputPath), name)
}

func isBatchFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv", ".txt", ".xls", ".xlsx":
		return true
	}
	return false
}
