package valueobject

import "strings"

// OnlyDigits strips every non-digit character from s
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidWhatsAppNumber reports whether number has between 10 (area code +
// subscriber) and 15 (E.164 maximum) digits once formatting is removed.
func IsValidWhatsAppNumber(number string) bool {
	n := len(OnlyDigits(number))
	return n >= 10 && n <= 15
}

// IsValidBrazilianPhone reports whether phone has at least 10 digits
func IsValidBrazilianPhone(phone string) bool {
	return len(OnlyDigits(phone)) >= 10
}

// FormatBrazilianPhone masks 11-digit mobile numbers as (XX) XXXXX-XXXX and
// 10-digit landlines as (XX) XXXX-XXXX. Anything else is returned as given.
func FormatBrazilianPhone(phone string) string {
	d := OnlyDigits(phone)
	switch len(d) {
	case 11:
		return "(" + d[:2] + ") " + d[2:7] + "-" + d[7:]
	case 10:
		return "(" + d[:2] + ") " + d[2:6] + "-" + d[6:]
	default:
		return phone
	}
}
