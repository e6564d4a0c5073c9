// Package textfix исправляет "кракозябры" в текстах экспорта.
//
// Экспорт кодирует UTF-8 байты как отдельные символы Latin-1 ("Å»" вместо "Ż").
// Repair перекодирует такие строки обратно и нормализует результат в NFC.
package textfix

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// maxPasses ограничивает число повторных перекодировок (двойная порча встречается в старых экспортах).
const maxPasses = 3

// Кодировки, через которые текст мог быть ошибочно прочитан, в порядке проверки.
var candidates = []*charmap.Charmap{
	charmap.ISO8859_1,
	charmap.Windows1252,
}

// Остаточные последовательности, которые не удается перекодировать целиком строки.
var leftovers = strings.NewReplacer(
	"Å»", "Ż",
)

// Fixer реализует ports.TextRepairer.
type Fixer struct{}

// New создает новый экземпляр Fixer.
func New() *Fixer {
	return &Fixer{}
}

// Repair исправляет кодировку текста. Повторный вызов на результате ничего не меняет.
func (f *Fixer) Repair(text string) string {
	return Repair(text)
}

// Repair исправляет кодировку текста.
func Repair(text string) string {
	if text == "" {
		return text
	}
	for i := 0; i < maxPasses; i++ {
		fixed, ok := decodeOnce(text)
		if !ok {
			break
		}
		text = fixed
	}
	text = leftovers.Replace(text)
	return norm.NFC.String(text)
}

// decodeOnce пробует представить строку байтами однобайтовой кодировки и прочитать их как UTF-8.
func decodeOnce(text string) (string, bool) {
	if isASCII(text) {
		return text, false
	}
	for _, cm := range candidates {
		raw, err := encodeStrict(cm, text)
		if err != nil {
			continue
		}
		if raw == text || !utf8.ValidString(raw) {
			continue
		}
		return raw, true
	}
	return text, false
}

func encodeStrict(cm *charmap.Charmap, text string) (string, error) {
	// Без ReplaceUnsupported: символ вне кодировки означает, что строка уже в порядке.
	return cm.NewEncoder().String(text)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
