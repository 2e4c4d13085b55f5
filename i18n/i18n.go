// Package i18n holds the user-facing text of the form in Brazilian Portuguese
// and English.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys. Messages are format strings; a literal percent sign is "%%".
const (
	PageTitle       = "page.title"
	PageIntro       = "page.intro"
	SubmitLabel     = "form.submit"
	VerdictSuccess  = "verdict.success"
	VerdictFailure  = "verdict.failure"
	InferenceError  = "verdict.error"
	SupportYesLabel = "support.yes"
	SupportNoLabel  = "support.no"
	InvalidInput    = "form.invalid"
)

var Supported = []language.Tag{language.BrazilianPortuguese, language.English}

var (
	matcher = language.NewMatcher(Supported)
	texts   = build()
)

var messages = map[language.Tag]map[string]string{
	language.BrazilianPortuguese: {
		PageTitle:       "Impressões 3D – Previsão de Sucesso",
		PageIntro:       "Este aplicativo utiliza um modelo de aprendizagem de máquina treinado em registros de impressões 3D para estimar a chance de sucesso de uma nova impressão.",
		SubmitLabel:     "Prever sucesso da impressão",
		VerdictSuccess:  "Alta chance de sucesso! Probabilidade estimada: %s",
		VerdictFailure:  "Risco maior de falha. Probabilidade de sucesso: %s",
		InferenceError:  "Ocorreu um erro ao fazer a previsão: %s",
		SupportYesLabel: "Sim",
		SupportNoLabel:  "Não",
		InvalidInput:    "Valor inválido para %s: %s",

		"field.printer_model":      "Modelo da impressora",
		"field.filament_material":  "Material do filamento",
		"field.filament_color":     "Cor do filamento",
		"field.nozzle_diameter_mm": "Diâmetro do bico (mm)",
		"field.nozzle_temp_c":      "Temperatura do bico (°C)",
		"field.bed_temp_c":         "Temperatura da mesa (°C)",
		"field.layer_height_mm":    "Altura de camada (mm)",
		"field.infill_percent":     "Infill (%%)",
		"field.print_speed_mm_s":   "Velocidade de impressão (mm/s)",
		"field.part_volume_cm3":    "Volume da peça (cm³)",
		"field.print_time_hours":   "Tempo estimado de impressão (horas)",
		"field.ambient_temp_c":     "Temperatura ambiente (°C)",
		"field.support_used":       "Suporte utilizado?",
	},
	language.English: {
		PageTitle:       "3D Printing – Success Prediction",
		PageIntro:       "This application uses a machine learning model trained on 3D print records to estimate the chance that a new print succeeds.",
		SubmitLabel:     "Predict print success",
		VerdictSuccess:  "High chance of success! Estimated probability: %s",
		VerdictFailure:  "Higher risk of failure. Probability of success: %s",
		InferenceError:  "An error occurred while predicting: %s",
		SupportYesLabel: "Yes",
		SupportNoLabel:  "No",
		InvalidInput:    "Invalid value for %s: %s",

		"field.printer_model":      "Printer model",
		"field.filament_material":  "Filament material",
		"field.filament_color":     "Filament color",
		"field.nozzle_diameter_mm": "Nozzle diameter (mm)",
		"field.nozzle_temp_c":      "Nozzle temperature (°C)",
		"field.bed_temp_c":         "Bed temperature (°C)",
		"field.layer_height_mm":    "Layer height (mm)",
		"field.infill_percent":     "Infill (%%)",
		"field.print_speed_mm_s":   "Print speed (mm/s)",
		"field.part_volume_cm3":    "Part volume (cm³)",
		"field.print_time_hours":   "Estimated print time (hours)",
		"field.ambient_temp_c":     "Ambient temperature (°C)",
		"field.support_used":       "Supports used?",
	},
}

func build() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.BrazilianPortuguese))
	for tag, entries := range messages {
		for key, msg := range entries {
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
	return b
}

// Match picks the supported language for an Accept-Language header value,
// falling back to def.
func Match(acceptLanguage string, def language.Tag) language.Tag {
	if acceptLanguage == "" {
		return Canonical(def)
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return Canonical(def)
	}
	_, idx, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return Canonical(def)
	}
	return Supported[idx]
}

// Canonical maps any tag onto the closest supported one.
func Canonical(tag language.Tag) language.Tag {
	_, idx, _ := matcher.Match(tag)
	return Supported[idx]
}

// Printer formats messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

func NewPrinter(tag language.Tag) *Printer {
	tag = Canonical(tag)
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(texts))}
}

func (p *Printer) Tag() language.Tag {
	return p.tag
}

func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

// FieldLabel returns the display label of a form field.
func (p *Printer) FieldLabel(field string) string {
	return p.p.Sprintf("field." + field)
}
