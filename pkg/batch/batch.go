// Package batch turns tabular payment files into a validated batch model:
// one debtor, one execution date, one or more credit transfers. Parsing is
// all-or-nothing; the first bad row aborts the whole batch.
package batch

import (
	"time"

	"github.com/shopspring/decimal"
)

// Required columns of a payment batch file, in canonical order.
const (
	ColDebtorName    = "Nome_ORDENANTE"
	ColDebtorTaxID   = "NIF_ORDENANTE"
	ColDebtorIBAN    = "IBAN_ORDENANTE"
	ColDebtorBIC     = "BIC_ORDENANTE"
	ColExecutionDate = "Data_EXECUCAO"
	ColAmount        = "Valor"
	ColCreditorName  = "Nome_FORNECEDOR"
	ColCreditorIBAN  = "IBAN_FORNECEDOR"
	ColCreditorBIC   = "BIC_FORNECEDOR"
)

// Columns lists every required column. BIC_FORNECEDOR must be present as a
// column even though its per-row value is optional.
var Columns = []string{
	ColDebtorName,
	ColDebtorTaxID,
	ColDebtorIBAN,
	ColDebtorBIC,
	ColExecutionDate,
	ColAmount,
	ColCreditorName,
	ColCreditorIBAN,
	ColCreditorBIC,
}

const (
	maxNameLen  = 140
	maxTaxIDLen = 35
)

// Header carries the debtor identity and execution date shared by every
// row of a batch. It is captured from the first data row; all later rows
// must match it exactly.
type Header struct {
	DebtorName    string
	DebtorTaxID   string
	DebtorIBAN    string
	DebtorBIC     string
	ExecutionDate time.Time
}

// Payment is one credit transfer. CreditorBIC is empty when the input row
// carried no BIC; it is never an invalid non-empty value.
type Payment struct {
	CreditorName string
	CreditorIBAN string
	CreditorBIC  string
	Amount       decimal.Decimal
}

// Batch is the validated result of parsing one payment file. Payments keep
// the input row order.
type Batch struct {
	Header   Header
	Payments []Payment
}

// Count returns the number of payments in the batch.
func (b *Batch) Count() int {
	return len(b.Payments)
}

// ControlSum returns the sum of all payment amounts, rounded half-up to
// two decimal places. It is always derived from the payments, never cached.
func (b *Batch) ControlSum() decimal.Decimal {
	total := decimal.Zero
	for _, p := range b.Payments {
		total = total.Add(p.Amount)
	}
	return total.Round(2)
}
