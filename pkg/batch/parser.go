package batch

import (
	"sort"
	"strings"
	"time"

	"github.com/loteiro/loteiro/pkg/fields"
)

// Parse validates an ordered record set (header record first) into a Batch.
// Any failure aborts the whole parse; there is no partial result and no
// skipping of bad rows. Fully empty records are ignored.
func Parse(records [][]string) (*Batch, error) {
	if len(records) == 0 {
		return nil, &MissingColumnsError{Columns: append([]string(nil), Columns...)}
	}

	cols, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	var header *Header
	var payments []Payment
	dates := map[time.Time]struct{}{}

	for i, rec := range records[1:] {
		if emptyRecord(rec) {
			continue
		}
		// Header record counts as row 1, so data rows start at 2.
		row := i + 2

		h, err := parseDebtor(row, rec, cols)
		if err != nil {
			return nil, err
		}
		dates[h.ExecutionDate] = struct{}{}

		if header == nil {
			header = h
		} else if header.DebtorName != h.DebtorName ||
			header.DebtorTaxID != h.DebtorTaxID ||
			header.DebtorIBAN != h.DebtorIBAN ||
			header.DebtorBIC != h.DebtorBIC {
			return nil, &InconsistentDebtorError{Row: row}
		}

		p, err := parsePayment(row, rec, cols)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}

	if header == nil || len(payments) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(dates) > 1 {
		return nil, inconsistentDates(dates)
	}

	return &Batch{Header: *header, Payments: payments}, nil
}

// columnIndex maps required column names to their position in the header
// record, comparing after whitespace normalization.
func columnIndex(header []string) (map[string]int, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = fields.Normalize(name)
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}

	var missing []string
	for _, name := range Columns {
		if _, ok := idx[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}
	return idx, nil
}

func parseDebtor(row int, rec []string, cols map[string]int) (*Header, error) {
	name, err := fields.EnsureLength(ColDebtorName, cell(rec, cols, ColDebtorName), maxNameLen)
	if err != nil {
		return nil, &RowError{Row: row, Field: ColDebtorName, Err: err}
	}

	taxID := fields.Normalize(cell(rec, cols, ColDebtorTaxID))
	if !fields.Digits(taxID) {
		return nil, &RowError{Row: row, Field: ColDebtorTaxID, Err: &fields.InvalidTaxIDError{Value: taxID}}
	}
	taxID, err = fields.EnsureLength(ColDebtorTaxID, taxID, maxTaxIDLen)
	if err != nil {
		return nil, &RowError{Row: row, Field: ColDebtorTaxID, Err: err}
	}

	iban := fields.NormalizeIBAN(cell(rec, cols, ColDebtorIBAN))
	if !fields.ValidIBAN(iban) {
		return nil, &RowError{Row: row, Field: ColDebtorIBAN, Err: &fields.InvalidIBANError{Value: iban}}
	}

	bic := strings.ToUpper(fields.Normalize(cell(rec, cols, ColDebtorBIC)))
	if !fields.ValidBIC(bic) {
		return nil, &RowError{Row: row, Field: ColDebtorBIC, Err: &fields.InvalidBICError{Value: bic}}
	}

	date, err := fields.ParseDate(cell(rec, cols, ColExecutionDate))
	if err != nil {
		return nil, &RowError{Row: row, Field: ColExecutionDate, Err: err}
	}

	return &Header{
		DebtorName:    name,
		DebtorTaxID:   taxID,
		DebtorIBAN:    iban,
		DebtorBIC:     bic,
		ExecutionDate: date,
	}, nil
}

func parsePayment(row int, rec []string, cols map[string]int) (*Payment, error) {
	amount, err := fields.ParseAmount(cell(rec, cols, ColAmount))
	if err != nil {
		return nil, &RowError{Row: row, Field: ColAmount, Err: err}
	}

	name, err := fields.EnsureLength(ColCreditorName, cell(rec, cols, ColCreditorName), maxNameLen)
	if err != nil {
		return nil, &RowError{Row: row, Field: ColCreditorName, Err: err}
	}

	iban := fields.NormalizeIBAN(cell(rec, cols, ColCreditorIBAN))
	if !fields.ValidIBAN(iban) {
		return nil, &RowError{Row: row, Field: ColCreditorIBAN, Err: &fields.InvalidIBANError{Value: iban}}
	}

	// Creditor BIC is optional: blank means absent, but a non-blank value
	// must be valid.
	bic := strings.ToUpper(fields.Normalize(cell(rec, cols, ColCreditorBIC)))
	if bic != "" && !fields.ValidBIC(bic) {
		return nil, &RowError{Row: row, Field: ColCreditorBIC, Err: &fields.InvalidBICError{Value: bic}}
	}

	return &Payment{
		CreditorName: name,
		CreditorIBAN: iban,
		CreditorBIC:  bic,
		Amount:       amount,
	}, nil
}

func cell(rec []string, cols map[string]int, name string) string {
	i := cols[name]
	if i >= len(rec) {
		return ""
	}
	return rec[i]
}

func emptyRecord(rec []string) bool {
	for _, c := range rec {
		if fields.Normalize(c) != "" {
			return false
		}
	}
	return true
}

func inconsistentDates(dates map[time.Time]struct{}) error {
	list := make([]time.Time, 0, len(dates))
	for d := range dates {
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Before(list[j]) })

	out := make([]string, len(list))
	for i, d := range list {
		out[i] = d.Format("02/01/2006")
	}
	return &InconsistentExecutionDateError{Dates: out}
}
