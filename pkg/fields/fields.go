// Package fields validates and normalizes the scalar values found in
// payment batch files: free text, IBANs, BICs, monetary amounts and dates.
// Everything here is a pure function; row context is added by the caller.
package fields

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)
	bicPattern  = regexp.MustCompile(`^[A-Z]{4}[A-Z]{2}[A-Z0-9]{2}([A-Z0-9]{3})?$`)
)

// Normalize strips control characters, collapses runs of whitespace into
// single spaces and trims both ends. It never fails.
func Normalize(s string) string {
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// EnsureLength normalizes s and fails when it is longer than max characters.
func EnsureLength(field, s string, max int) (string, error) {
	s = Normalize(s)
	if n := utf8.RuneCountInString(s); n > max {
		return "", &TooLongError{Field: field, Length: n, Max: max}
	}
	return s, nil
}

// NormalizeIBAN uppercases an IBAN and removes embedded spaces.
func NormalizeIBAN(s string) string {
	return strings.ToUpper(strings.ReplaceAll(Normalize(s), " ", ""))
}

// ValidIBAN reports whether iban passes the ISO 7064 mod-97 check.
// The input is expected to be already normalized (see NormalizeIBAN).
func ValidIBAN(iban string) bool {
	if !ibanPattern.MatchString(iban) {
		return false
	}
	// Move the country code and check digits to the end, then expand
	// letters to their numeric values (A=10 .. Z=35).
	rearranged := iban[4:] + iban[:4]
	var digits strings.Builder
	for _, ch := range rearranged {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		} else {
			digits.WriteString(strconv.Itoa(int(ch) - 'A' + 10))
		}
	}
	// Chunked modular reduction, 9 digits at a time, so the running
	// value always fits in an int64.
	expanded := digits.String()
	remainder := int64(0)
	for i := 0; i < len(expanded); i += 9 {
		end := i + 9
		if end > len(expanded) {
			end = len(expanded)
		}
		n, err := strconv.ParseInt(strconv.FormatInt(remainder, 10)+expanded[i:end], 10, 64)
		if err != nil {
			return false
		}
		remainder = n % 97
	}
	return remainder == 1
}

// ValidBIC reports whether bic is an 8 or 11 character SWIFT identifier.
// The input is expected to be already normalized and uppercased.
func ValidBIC(bic string) bool {
	return bicPattern.MatchString(bic)
}

// Digits reports whether s is non-empty and contains only ASCII digits.
func Digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
