package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePlate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-1d23", "ABC1D23"},
		{" abc 1234 ", "ABC1234"},
		{"ABC1D234XYZ", "ABC1D23"},
		{"çãb-12", "B12"},
		{"---", ""},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, NormalizePlate(tc.in))
		})
	}
}

func TestIsPlateValid(t *testing.T) {
	assert.True(t, IsPlateValid("abc-1d23"))
	assert.True(t, IsPlateValid("B12"))
	assert.False(t, IsPlateValid(""))
	assert.False(t, IsPlateValid(" - . "))
	assert.False(t, IsPlateValid("çã"))
}

func TestPhoneHelpers(t *testing.T) {
	assert.Equal(t, "11987654321", NormalizePhone("(11) 98765-4321"))
	assert.True(t, IsGuestPhoneValid("(11) 9876-5432"))
	assert.False(t, IsGuestPhoneValid("98765-432"))

	assert.Equal(t, "5511987654321", InternationalPhone("(11) 98765-4321"))
	assert.Equal(t, "351912345678", InternationalPhone("+351 912 345 678"))
	assert.Equal(t, "", InternationalPhone("sem telefone"))
}

func TestIsEmailFormatValid(t *testing.T) {
	assert.True(t, IsEmailFormatValid(""))
	assert.True(t, IsEmailFormatValid("cliente@exemplo.com.br"))
	assert.False(t, IsEmailFormatValid("cliente@"))
	assert.False(t, IsEmailFormatValid("Fulano <fulano@exemplo.com>"))
}
