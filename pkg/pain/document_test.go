package pain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loteiro/loteiro/pkg/batch"
	"github.com/loteiro/loteiro/pkg/pain"
)

type stubIDs struct{}

func (stubIDs) MessageID() string     { return "C2B-20251231000000-AAAAAAAA" }
func (stubIDs) PaymentInfoID() string { return "PMT-20251231000000-BBBBBB" }

func fixedBuilder() *pain.Builder {
	return &pain.Builder{
		IDs: stubIDs{},
		Now: func() time.Time { return time.Date(2025, 8, 30, 12, 0, 0, 0, time.UTC) },
	}
}

func sampleBatch() *batch.Batch {
	return &batch.Batch{
		Header: batch.Header{
			DebtorName:    "Empresa Exemplo Lda",
			DebtorTaxID:   "501234567",
			DebtorIBAN:    "PT50000201231234567890154",
			DebtorBIC:     "BCOMPTPL",
			ExecutionDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		},
		Payments: []batch.Payment{
			{
				CreditorName: "Fornecedor Um",
				CreditorIBAN: "DE89370400440532013000",
				CreditorBIC:  "DEUTDEFF",
				Amount:       decimal.RequireFromString("100.00"),
			},
			{
				CreditorName: "Fornecedor Dois",
				CreditorIBAN: "ES9121000418450200051332",
				Amount:       decimal.RequireFromString("50.50"),
			},
		},
	}
}

func TestBuildGroupHeader(t *testing.T) {
	doc := fixedBuilder().Build(sampleBatch())

	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "Document", root.Tag)
	assert.Equal(t, pain.Namespace, root.SelectAttrValue("xmlns", ""))

	assert.Equal(t, "C2B-20251231000000-AAAAAAAA", doc.FindElement("//GrpHdr/MsgId").Text())
	assert.Equal(t, "2025-08-30T12:00:00", doc.FindElement("//GrpHdr/CreDtTm").Text())
	assert.Equal(t, "2", doc.FindElement("//GrpHdr/NbOfTxs").Text())
	assert.Equal(t, "150.50", doc.FindElement("//GrpHdr/CtrlSum").Text())
	assert.Equal(t, "Empresa Exemplo Lda", doc.FindElement("//GrpHdr/InitgPty/Nm").Text())
	assert.Equal(t, "501234567", doc.FindElement("//GrpHdr/InitgPty/Id/PrvtId/Othr/Id").Text())
}

func TestBuildPaymentInfo(t *testing.T) {
	doc := fixedBuilder().Build(sampleBatch())

	assert.Equal(t, "PMT-20251231000000-BBBBBB", doc.FindElement("//PmtInf/PmtInfId").Text())
	assert.Equal(t, "TRF", doc.FindElement("//PmtInf/PmtMtd").Text())
	assert.Equal(t, "2", doc.FindElement("//PmtInf/NbOfTxs").Text())
	assert.Equal(t, "150.50", doc.FindElement("//PmtInf/CtrlSum").Text())
	assert.Equal(t, "SEPA", doc.FindElement("//PmtInf/PmtTpInf/SvcLvl/Cd").Text())
	assert.Equal(t, "SUPP", doc.FindElement("//PmtInf/PmtTpInf/CtgyPurp/Cd").Text())
	assert.Equal(t, "2025-12-31", doc.FindElement("//PmtInf/ReqdExctnDt/Dt").Text())
	assert.Equal(t, "Empresa Exemplo Lda", doc.FindElement("//PmtInf/Dbtr/Nm").Text())
	assert.Equal(t, "PT50000201231234567890154", doc.FindElement("//PmtInf/DbtrAcct/Id/IBAN").Text())
	assert.Equal(t, "EUR", doc.FindElement("//PmtInf/DbtrAcct/Ccy").Text())
	assert.Equal(t, "BCOMPTPL", doc.FindElement("//PmtInf/DbtrAgt/FinInstnId/BICFI").Text())
}

func TestBuildTransactions(t *testing.T) {
	doc := fixedBuilder().Build(sampleBatch())

	pmtInf := doc.FindElement("//PmtInf")
	require.NotNil(t, pmtInf)
	txs := pmtInf.SelectElements("CdtTrfTxInf")
	require.Len(t, txs, 2)

	first := txs[0]
	assert.Equal(t, "NOTPROVIDED", first.FindElement("PmtId/EndToEndId").Text())
	instd := first.FindElement("Amt/InstdAmt")
	assert.Equal(t, "100.00", instd.Text())
	assert.Equal(t, "EUR", instd.SelectAttrValue("Ccy", ""))
	assert.Equal(t, "DEUTDEFF", first.FindElement("CdtrAgt/FinInstnId/BICFI").Text())
	assert.Equal(t, "Fornecedor Um", first.FindElement("Cdtr/Nm").Text())
	assert.Equal(t, "DE89370400440532013000", first.FindElement("CdtrAcct/Id/IBAN").Text())
	assert.Equal(t, "SUPP", first.FindElement("Purp/Cd").Text())
	assert.Equal(t, "PAGAMENTO", first.FindElement("RmtInf/Ustrd").Text())

	// No BIC on the second row: the agent element must be absent, not empty.
	second := txs[1]
	assert.Nil(t, second.FindElement("CdtrAgt"))
	assert.Equal(t, "50.50", second.FindElement("Amt/InstdAmt").Text())
}

func TestBuildControlSumsAgree(t *testing.T) {
	b := sampleBatch()
	doc := fixedBuilder().Build(b)

	grp := doc.FindElement("//GrpHdr/CtrlSum").Text()
	pmt := doc.FindElement("//PmtInf/CtrlSum").Text()
	assert.Equal(t, grp, pmt)
	assert.Equal(t, b.ControlSum().StringFixed(2), grp)
}

func TestSerialize(t *testing.T) {
	out, err := pain.Serialize(fixedBuilder().Build(sampleBatch()))
	require.NoError(t, err)

	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.09">`)
	assert.Contains(t, out, "  <CstmrCdtTrfInitn>")
	// The namespace is declared once; children inherit it.
	assert.Equal(t, 1, strings.Count(out, "xmlns="))
}
