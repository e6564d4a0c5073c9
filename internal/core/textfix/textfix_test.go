package textfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepair(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"пустая строка", "", ""},
		{"ascii без изменений", "Jan Kowalski", "Jan Kowalski"},
		{"корректный текст не меняется", "Żółć gęślą jaźń", "Żółć gęślą jaźń"},
		{"latin-1 кракозябры", "skomentowaÅ\u0082 post uÅ¼ytkownika", "skomentował post użytkownika"},
		{"заглавная Ż", "Å»ona", "Żona"},
		{"windows-1252 кракозябры", "Itâ€™s", "It’s"},
		{"остаток в смешанной строке", "Żółw Å»", "Żółw Ż"},
		{"одиночный latin-1 символ", "café", "café"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Repair(tc.in))
		})
	}
}

func TestRepairIsIdempotent(t *testing.T) {
	inputs := []string{
		"skomentowaÅ\u0082",
		"Å»ona",
		"Itâ€™s",
		"Żółw Å»",
		"plain",
	}
	f := New()
	for _, in := range inputs {
		once := f.Repair(in)
		assert.Equal(t, once, f.Repair(once), "повторный Repair изменил %q", in)
	}
}
