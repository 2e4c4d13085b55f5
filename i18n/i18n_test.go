package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, language.English, Match("en-US,en;q=0.9", language.BrazilianPortuguese))
	assert.Equal(t, language.BrazilianPortuguese, Match("pt-PT,pt;q=0.8", language.English))
	assert.Equal(t, language.BrazilianPortuguese, Match("", language.BrazilianPortuguese))
	assert.Equal(t, language.English, Match("ja", language.English))
	assert.Equal(t, language.English, Match(";;garbage", language.English))
}

func TestPrinterMessages(t *testing.T) {
	pt := NewPrinter(language.BrazilianPortuguese)
	assert.Equal(t, "Alta chance de sucesso! Probabilidade estimada: 73.42%", pt.Sprintf(VerdictSuccess, "73.42%"))
	assert.Equal(t, "Sim", pt.Sprintf(SupportYesLabel))
	assert.Equal(t, "Infill (%)", pt.FieldLabel("infill_percent"))

	en := NewPrinter(language.MustParse("en-GB"))
	assert.Equal(t, language.English, en.Tag())
	assert.Equal(t, "Higher risk of failure. Probability of success: 12.00%", en.Sprintf(VerdictFailure, "12.00%"))
	assert.Equal(t, "An error occurred while predicting: boom", en.Sprintf(InferenceError, "boom"))
	assert.Equal(t, "Printer model", en.FieldLabel("printer_model"))
}

func TestEveryKeyTranslated(t *testing.T) {
	pt := messages[language.BrazilianPortuguese]
	en := messages[language.English]
	assert.Len(t, en, len(pt))
	for key := range pt {
		assert.Contains(t, en, key)
	}
}
