package form

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"printpredict/ml"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// PrintJobRecord is the single-row model input assembled from a session.
type PrintJobRecord struct {
	PrinterModel     string  `json:"printer_model" validate:"required"`
	FilamentMaterial string  `json:"filament_material" validate:"required"`
	FilamentColor    string  `json:"filament_color" validate:"required"`
	NozzleDiameterMM float64 `json:"nozzle_diameter_mm" validate:"gte=0.1,lte=1"`
	NozzleTempC      int     `json:"nozzle_temp_c" validate:"gte=150,lte=260"`
	BedTempC         int     `json:"bed_temp_c" validate:"gte=0,lte=120"`
	LayerHeightMM    float64 `json:"layer_height_mm" validate:"gte=0.05,lte=0.5"`
	InfillPercent    int     `json:"infill_percent" validate:"gte=0,lte=100"`
	PrintSpeedMMS    int     `json:"print_speed_mm_s" validate:"gte=10,lte=200"`
	PartVolumeCM3    float64 `json:"part_volume_cm3" validate:"gte=0,lte=2000"`
	PrintTimeHours   float64 `json:"print_time_hours" validate:"gte=0.1,lte=72"`
	SupportUsed      int     `json:"support_used" validate:"oneof=0 1"`
	AmbientTempC     int     `json:"ambient_temp_c" validate:"gte=10,lte=40"`
}

func (r PrintJobRecord) Validate() error {
	err := getValidator().Struct(r)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
	}
	return fmt.Errorf("invalid record: %s", strings.Join(msgs, "; "))
}

// Row lays the record out in Columns order.
func (r PrintJobRecord) Row() ml.Row {
	row := ml.Row{
		Columns: make([]string, 0, len(Columns)),
		Values:  make([]ml.Value, 0, len(Columns)),
	}
	for _, f := range Columns {
		row.Add(string(f), r.value(f))
	}
	return row
}

func (r PrintJobRecord) value(f Field) ml.Value {
	switch f {
	case PrinterModel:
		return ml.Text(r.PrinterModel)
	case FilamentMaterial:
		return ml.Text(r.FilamentMaterial)
	case FilamentColor:
		return ml.Text(r.FilamentColor)
	case NozzleDiameterMM:
		return ml.Number(r.NozzleDiameterMM)
	case NozzleTempC:
		return ml.Number(float64(r.NozzleTempC))
	case BedTempC:
		return ml.Number(float64(r.BedTempC))
	case LayerHeightMM:
		return ml.Number(r.LayerHeightMM)
	case InfillPercent:
		return ml.Number(float64(r.InfillPercent))
	case PrintSpeedMMS:
		return ml.Number(float64(r.PrintSpeedMMS))
	case PartVolumeCM3:
		return ml.Number(r.PartVolumeCM3)
	case PrintTimeHours:
		return ml.Number(r.PrintTimeHours)
	case SupportUsed:
		return ml.Number(float64(r.SupportUsed))
	case AmbientTempC:
		return ml.Number(float64(r.AmbientTempC))
	}
	panic("form: no value for column " + string(f))
}
