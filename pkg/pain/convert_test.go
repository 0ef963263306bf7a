package pain_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteiro/loteiro/pkg/batch"
	"github.com/loteiro/loteiro/pkg/pain"
)

const sampleCSV = "Nome_ORDENANTE;NIF_ORDENANTE;IBAN_ORDENANTE;BIC_ORDENANTE;Data_EXECUCAO;Valor;Nome_FORNECEDOR;IBAN_FORNECEDOR;BIC_FORNECEDOR\n" +
	"Empresa Exemplo Lda;501234567;PT50000201231234567890154;BCOMPTPL;31/12/2025;100,00;Fornecedor Um;DE89370400440532013000;DEUTDEFF\n" +
	"Empresa Exemplo Lda;501234567;PT50000201231234567890154;BCOMPTPL;31/12/2025;50,50;Fornecedor Dois;ES9121000418450200051332;\n"

type stubChecker struct {
	seen       []byte
	violations []string
	err        error
}

func (c *stubChecker) Check(xml []byte) ([]string, error) {
	c.seen = xml
	return c.violations, c.err
}

func TestConvertFileEndToEnd(t *testing.T) {
	conv := pain.NewConverter(nil, ';').WithBuilder(fixedBuilder())

	out, err := conv.ConvertFile([]byte(sampleCSV), "lote.csv")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "<NbOfTxs>2</NbOfTxs>"))
	assert.Equal(t, 2, strings.Count(out, "<CtrlSum>150.50</CtrlSum>"))
	assert.Equal(t, 2, strings.Count(out, "<EndToEndId>NOTPROVIDED</EndToEndId>"))
	assert.Contains(t, out, `<InstdAmt Ccy="EUR">100.00</InstdAmt>`)
	assert.Contains(t, out, `<InstdAmt Ccy="EUR">50.50</InstdAmt>`)
}

func TestConvertParseFailureReturnsNoOutput(t *testing.T) {
	bad := strings.Replace(sampleCSV, "50,50", "zero", 1)
	conv := pain.NewConverter(nil, ';')

	out, err := conv.ConvertFile([]byte(bad), "lote.csv")
	assert.Empty(t, out)

	var rowErr *batch.RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 3, rowErr.Row)
}

func TestConvertRunsSchemaChecker(t *testing.T) {
	checker := &stubChecker{}
	conv := pain.NewConverter(checker, ';').WithBuilder(fixedBuilder())

	out, err := conv.ConvertFile([]byte(sampleCSV), "lote.csv")
	require.NoError(t, err)
	assert.Equal(t, out, string(checker.seen))
}

func TestConvertSchemaViolationsAbort(t *testing.T) {
	checker := &stubChecker{violations: []string{"missing GrpHdr", "bad CtrlSum"}}
	conv := pain.NewConverter(checker, ';')

	out, err := conv.ConvertFile([]byte(sampleCSV), "lote.csv")
	assert.Empty(t, out)

	var sve *pain.SchemaViolationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, []string{"missing GrpHdr", "bad CtrlSum"}, sve.Violations)
	assert.Contains(t, err.Error(), "missing GrpHdr")
	assert.Contains(t, err.Error(), "bad CtrlSum")
}

func TestGeneratorIDShape(t *testing.T) {
	g := pain.NewGenerator()

	msgID := g.MessageID()
	assert.Regexp(t, regexp.MustCompile(`^C2B-\d{14}-[0-9A-F]{8}$`), msgID)
	assert.LessOrEqual(t, len(msgID), 35)

	pmtID := g.PaymentInfoID()
	assert.Regexp(t, regexp.MustCompile(`^PMT-\d{14}-[0-9A-F]{6}$`), pmtID)
	assert.LessOrEqual(t, len(pmtID), 35)

	// Random suffixes keep ids apart within the same second.
	assert.NotEqual(t, msgID, g.MessageID())
}

func TestGeneratorSuffixUsesFullHexAlphabet(t *testing.T) {
	g := pain.NewGenerator()

	// Hex of raw random bytes covers the whole alphabet at every position;
	// encoding the textual uuid instead would pin alternating characters
	// to '3' or '6'.
	seen := map[byte]bool{}
	for i := 0; i < 32; i++ {
		id := g.MessageID()
		suffix := id[len(id)-8:]
		for j := 0; j < len(suffix); j += 2 {
			seen[suffix[j]] = true
		}
	}
	outside := 0
	for ch := range seen {
		if ch != '3' && ch != '6' {
			outside++
		}
	}
	assert.NotZero(t, outside)
}
