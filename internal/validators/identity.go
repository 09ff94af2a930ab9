package validators

import (
	"strings"
	"unicode"
)

const (
	MaxPlateLen    = 7
	MinGuestPhone  = 10
	brazilDDI      = "55"
	maxLocalDigits = 11
)

// NormalizePlate: maiúsculas, só letras e números, no máximo 7 caracteres.
func NormalizePlate(plate string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(plate) {
		if r > unicode.MaxASCII {
			continue
		}
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
		if b.Len() == MaxPlateLen {
			break
		}
	}
	return b.String()
}

func IsPlateValid(plate string) bool {
	return NormalizePlate(plate) != ""
}

// NormalizePhone mantém apenas dígitos.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsGuestPhoneValid(phone string) bool {
	return len(NormalizePhone(phone)) >= MinGuestPhone
}

// InternationalPhone prefixa o DDI 55 em números nacionais (até 11 dígitos).
func InternationalPhone(phone string) string {
	digits := NormalizePhone(phone)
	if digits != "" && len(digits) <= maxLocalDigits {
		return brazilDDI + digits
	}
	return digits
}
