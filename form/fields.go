package form

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"printpredict/dataset"
)

// Field names a form input. The names are also the model's column names.
type Field string

const (
	PrinterModel     Field = "printer_model"
	FilamentMaterial Field = "filament_material"
	FilamentColor    Field = "filament_color"
	NozzleDiameterMM Field = "nozzle_diameter_mm"
	NozzleTempC      Field = "nozzle_temp_c"
	BedTempC         Field = "bed_temp_c"
	LayerHeightMM    Field = "layer_height_mm"
	InfillPercent    Field = "infill_percent"
	PrintSpeedMMS    Field = "print_speed_mm_s"
	PartVolumeCM3    Field = "part_volume_cm3"
	PrintTimeHours   Field = "print_time_hours"
	SupportUsed      Field = "support_used"
	AmbientTempC     Field = "ambient_temp_c"
)

// Columns is the record layout the model was trained with.
var Columns = []Field{
	PrinterModel,
	FilamentMaterial,
	FilamentColor,
	NozzleDiameterMM,
	NozzleTempC,
	BedTempC,
	LayerHeightMM,
	InfillPercent,
	PrintSpeedMMS,
	PartVolumeCM3,
	PrintTimeHours,
	SupportUsed,
	AmbientTempC,
}

var ErrUnknownField = errors.New("unknown field")

// Choice is a categorical field populated from the reference dataset.
type Choice struct {
	Field    Field
	Fallback []string
}

var choices = []Choice{
	{Field: PrinterModel, Fallback: []string{"Ender 3", "Ender 3 Pro", "Ender 3 V2"}},
	{Field: FilamentMaterial, Fallback: []string{"PLA", "ABS", "PETG"}},
	{Field: FilamentColor, Fallback: []string{"preto", "branco", "azul", "vermelho"}},
}

func Choices() []Choice {
	return append([]Choice(nil), choices...)
}

// Options maps each categorical field to its ordered choices.
type Options map[Field][]string

// ResolveOptions resolves every categorical field against ds, which may be nil.
func ResolveOptions(ds *dataset.Dataset) Options {
	opts := make(Options, len(choices))
	for _, c := range choices {
		opts[c.Field] = dataset.ResolveOptions(ds, string(c.Field), c.Fallback)
	}
	return opts
}

// Number is a bounded numeric input.
type Number struct {
	Field   Field
	Min     float64
	Max     float64
	Step    float64
	Default float64
	Integer bool
}

var numbers = []Number{
	{Field: NozzleDiameterMM, Min: 0.1, Max: 1.0, Step: 0.1, Default: 0.4},
	{Field: NozzleTempC, Min: 150, Max: 260, Step: 1, Default: 200, Integer: true},
	{Field: BedTempC, Min: 0, Max: 120, Step: 1, Default: 60, Integer: true},
	{Field: LayerHeightMM, Min: 0.05, Max: 0.5, Step: 0.01, Default: 0.2},
	{Field: InfillPercent, Min: 0, Max: 100, Step: 1, Default: 20, Integer: true},
	{Field: PrintSpeedMMS, Min: 10, Max: 200, Step: 1, Default: 60, Integer: true},
	{Field: PartVolumeCM3, Min: 0, Max: 2000, Step: 1, Default: 20},
	{Field: PrintTimeHours, Min: 0.1, Max: 72, Step: 0.5, Default: 4},
	{Field: AmbientTempC, Min: 10, Max: 40, Step: 1, Default: 25, Integer: true},
}

func Numbers() []Number {
	return append([]Number(nil), numbers...)
}

func numberSpec(field Field) (Number, bool) {
	for _, n := range numbers {
		if n.Field == field {
			return n, true
		}
	}
	return Number{}, false
}

// Parse reads raw as a number (a decimal comma is accepted) and clamps it
// into range. Integer fields are rounded.
func (n Number) Parse(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.Replace(raw, ",", ".", 1))
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", n.Field, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s: %q is not a finite number", n.Field, raw)
	}
	return n.Clamp(v), nil
}

func (n Number) Clamp(v float64) float64 {
	if n.Integer {
		v = math.Round(v)
	}
	return math.Min(n.Max, math.Max(n.Min, v))
}

// Format renders v the way the input control shows it.
func (n Number) Format(v float64) string {
	if n.Integer {
		return strconv.Itoa(int(v))
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
