package fields

import "fmt"

// TooLongError reports a text field exceeding its maximum length.
// Lengths are measured in characters, not bytes.
type TooLongError struct {
	Field  string
	Length int
	Max    int
}

func (e *TooLongError) Error() string {
	return fmt.Sprintf("value exceeds %d characters: %d", e.Max, e.Length)
}

// InvalidAmountError reports a value that could not be parsed as a monetary amount.
type InvalidAmountError struct {
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount: %q", e.Value)
}

// NonPositiveAmountError reports an amount that parsed but is not > 0.
type NonPositiveAmountError struct {
	Value string
}

func (e *NonPositiveAmountError) Error() string {
	return fmt.Sprintf("amount must be > 0: %q", e.Value)
}

// InvalidDateError reports a date that is not in dd/mm/yyyy form.
type InvalidDateError struct {
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date (expected dd/mm/yyyy): %q", e.Value)
}

// InvalidIBANError reports an IBAN with a bad pattern or checksum.
type InvalidIBANError struct {
	Value string
}

func (e *InvalidIBANError) Error() string {
	return fmt.Sprintf("invalid IBAN: %q", e.Value)
}

// InvalidBICError reports a BIC that is not 8 or 11 chars in SWIFT form.
type InvalidBICError struct {
	Value string
}

func (e *InvalidBICError) Error() string {
	return fmt.Sprintf("invalid BIC: %q", e.Value)
}

// InvalidTaxIDError reports a tax identifier containing non-digit characters.
type InvalidTaxIDError struct {
	Value string
}

func (e *InvalidTaxIDError) Error() string {
	return fmt.Sprintf("invalid tax id: %q", e.Value)
}
