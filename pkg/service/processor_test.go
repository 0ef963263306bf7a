package service_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteiro/loteiro/pkg/service"
)

const sampleCSV = "Nome_ORDENANTE;NIF_ORDENANTE;IBAN_ORDENANTE;BIC_ORDENANTE;Data_EXECUCAO;Valor;Nome_FORNECEDOR;IBAN_FORNECEDOR;BIC_FORNECEDOR\n" +
	"Empresa Exemplo Lda;501234567;PT50000201231234567890154;BCOMPTPL;31/12/2025;100,00;Fornecedor Um;DE89370400440532013000;DEUTDEFF\n"

func TestProcessFileWritesSiblingXML(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lote.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleCSV), 0o644))

	p := service.NewProcessor(log.New(io.Discard), nil, ';', "")
	out, err := p.ProcessFile(input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "lote.xml"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<NbOfTxs>1</NbOfTxs>")
}

func TestProcessFileOutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := t.TempDir()
	input := filepath.Join(dir, "lote.csv")
	require.NoError(t, os.WriteFile(input, []byte(sampleCSV), 0o644))

	p := service.NewProcessor(log.New(io.Discard), nil, ';', outDir)
	out, err := p.ProcessFile(input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "lote.xml"), out)
}

func TestProcessFileConversionFailure(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "lote.csv")
	require.NoError(t, os.WriteFile(input, []byte("Nome_ORDENANTE;Valor\n"), 0o644))

	p := service.NewProcessor(log.New(io.Discard), nil, ';', "")
	_, err := p.ProcessFile(input)
	assert.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "lote.xml"))
}

func TestProcessDirectorySkipsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lote.csv"), []byte(sampleCSV), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notas.md"), []byte("# notas"), 0o644))

	p := service.NewProcessor(log.New(io.Discard), nil, ';', "")
	require.NoError(t, p.ProcessDirectory(dir))

	assert.FileExists(t, filepath.Join(dir, "lote.xml"))
	assert.NoFileExists(t, filepath.Join(dir, "notas.xml"))
}

func TestLoadCheckerMissingFileSkips(t *testing.T) {
	checker, err := service.LoadChecker(filepath.Join(t.TempDir(), "nope.xsd"), log.New(io.Discard))
	require.NoError(t, err)
	assert.Nil(t, checker)

	checker, err = service.LoadChecker("", log.New(io.Discard))
	require.NoError(t, err)
	assert.Nil(t, checker)
}
