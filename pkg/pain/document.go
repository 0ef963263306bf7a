// Package pain builds ISO 20022 pain.001.001.09 customer credit transfer
// initiation documents from validated payment batches.
package pain

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/loteiro/loteiro/pkg/batch"
)

// Namespace of the one message variant this package emits.
const Namespace = "urn:iso:std:iso:20022:tech:xsd:pain.001.001.09"

// Business-policy constants of the message variant. Changing any of these
// changes the meaning of the message, so they are not configuration.
const (
	paymentMethod   = "TRF"
	serviceLevel    = "SEPA"
	categoryPurpose = "SUPP"
	currency        = "EUR"
	endToEndID      = "NOTPROVIDED"
	remittanceText  = "PAGAMENTO"
)

// Builder maps a batch onto the fixed pain.001.001.09 element tree. The id
// generator and clock are injectable so tests can pin the generated parts.
type Builder struct {
	IDs IDGenerator
	Now func() time.Time
}

// NewBuilder returns a Builder using the system clock and random ids.
func NewBuilder() *Builder {
	return &Builder{IDs: NewGenerator(), Now: time.Now}
}

// Build returns the document tree for b. Transactions follow the batch's
// payment order exactly.
func (bld *Builder) Build(b *batch.Batch) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Document")
	root.CreateAttr("xmlns", Namespace)
	cstmr := root.CreateElement("CstmrCdtTrfInitn")

	bld.buildGroupHeader(cstmr, b)
	pmt := bld.buildPaymentInfo(cstmr, b)
	for _, p := range b.Payments {
		buildTransaction(pmt, p)
	}
	return doc
}

func (bld *Builder) buildGroupHeader(cstmr *etree.Element, b *batch.Batch) {
	grp := cstmr.CreateElement("GrpHdr")
	grp.CreateElement("MsgId").SetText(bld.IDs.MessageID())
	grp.CreateElement("CreDtTm").SetText(bld.Now().Format("2006-01-02T15:04:05"))
	grp.CreateElement("NbOfTxs").SetText(strconv.Itoa(b.Count()))
	grp.CreateElement("CtrlSum").SetText(b.ControlSum().StringFixed(2))

	initg := grp.CreateElement("InitgPty")
	initg.CreateElement("Nm").SetText(b.Header.DebtorName)

	// Debtor tax id rides along as the initiating party identifier.
	othr := initg.CreateElement("Id").CreateElement("PrvtId").CreateElement("Othr")
	othr.CreateElement("Id").SetText(b.Header.DebtorTaxID)
}

func (bld *Builder) buildPaymentInfo(cstmr *etree.Element, b *batch.Batch) *etree.Element {
	pmt := cstmr.CreateElement("PmtInf")
	pmt.CreateElement("PmtInfId").SetText(bld.IDs.PaymentInfoID())
	pmt.CreateElement("PmtMtd").SetText(paymentMethod)
	pmt.CreateElement("NbOfTxs").SetText(strconv.Itoa(b.Count()))
	pmt.CreateElement("CtrlSum").SetText(b.ControlSum().StringFixed(2))

	pmtTp := pmt.CreateElement("PmtTpInf")
	pmtTp.CreateElement("SvcLvl").CreateElement("Cd").SetText(serviceLevel)
	pmtTp.CreateElement("CtgyPurp").CreateElement("Cd").SetText(categoryPurpose)

	// ReqdExctnDt is a choice in v09; the date branch is used.
	pmt.CreateElement("ReqdExctnDt").CreateElement("Dt").
		SetText(b.Header.ExecutionDate.Format("2006-01-02"))

	pmt.CreateElement("Dbtr").CreateElement("Nm").SetText(b.Header.DebtorName)

	acct := pmt.CreateElement("DbtrAcct")
	acct.CreateElement("Id").CreateElement("IBAN").SetText(b.Header.DebtorIBAN)
	acct.CreateElement("Ccy").SetText(currency)

	pmt.CreateElement("DbtrAgt").CreateElement("FinInstnId").
		CreateElement("BICFI").SetText(b.Header.DebtorBIC)

	return pmt
}

func buildTransaction(pmt *etree.Element, p batch.Payment) {
	tx := pmt.CreateElement("CdtTrfTxInf")

	tx.CreateElement("PmtId").CreateElement("EndToEndId").SetText(endToEndID)

	instd := tx.CreateElement("Amt").CreateElement("InstdAmt")
	instd.CreateAttr("Ccy", currency)
	instd.SetText(p.Amount.StringFixed(2))

	// CdtrAgt is omitted entirely when the row carried no BIC.
	if p.CreditorBIC != "" {
		tx.CreateElement("CdtrAgt").CreateElement("FinInstnId").
			CreateElement("BICFI").SetText(p.CreditorBIC)
	}

	tx.CreateElement("Cdtr").CreateElement("Nm").SetText(p.CreditorName)
	tx.CreateElement("CdtrAcct").CreateElement("Id").CreateElement("IBAN").SetText(p.CreditorIBAN)
	tx.CreateElement("Purp").CreateElement("Cd").SetText(categoryPurpose)
	tx.CreateElement("RmtInf").CreateElement("Ustrd").SetText(remittanceText)
}
