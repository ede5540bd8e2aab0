package checkout

import "strings"

const maxCardDigits = 16

// FormatCardNumber groups the card digits in blocks of four. Anything past
// the 16th digit is dropped. Input with fewer than four digits is returned
// untouched so a half-typed value is never mangled.
func FormatCardNumber(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) < 4 {
		return raw
	}
	if len(digits) > maxCardDigits {
		digits = digits[:maxCardDigits]
	}

	var b strings.Builder
	b.Grow(len(digits) + len(digits)/4)
	for i := 0; i < len(digits); i += 4 {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i:min(i+4, len(digits))])
	}
	return b.String()
}

// FormatExpiryDate normalises input to MM/YY. "12" becomes "12/" so the
// slash appears as soon as the month is complete.
func FormatExpiryDate(raw string) string {
	digits := onlyDigits(raw)
	if len(digits) < 2 {
		return digits
	}
	return digits[:2] + "/" + digits[2:min(4, len(digits))]
}

// MaskCardNumber keeps only the last four digits visible.
func MaskCardNumber(cardNumber string) string {
	digits := onlyDigits(cardNumber)
	if len(digits) < 4 {
		return "****"
	}
	return "**** **** **** " + digits[len(digits)-4:]
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
