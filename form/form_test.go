package form

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printpredict/dataset"
	"printpredict/ml"
)

func defaultOptions() Options {
	return ResolveOptions(nil)
}

func TestResolveOptions(t *testing.T) {
	opts := defaultOptions()
	assert.Equal(t, []string{"Ender 3", "Ender 3 Pro", "Ender 3 V2"}, opts[PrinterModel])
	assert.Equal(t, []string{"PLA", "ABS", "PETG"}, opts[FilamentMaterial])
	assert.Equal(t, []string{"preto", "branco", "azul", "vermelho"}, opts[FilamentColor])

	ds, err := dataset.Load(filepath.Join("..", "testdata", "reference.csv"))
	require.NoError(t, err)
	defer ds.Close()
	opts = ResolveOptions(ds)
	assert.Equal(t, []string{"ABS", "PETG", "PLA"}, opts[FilamentMaterial])
}

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession("s1", defaultOptions())
	assert.Equal(t, "Ender 3", s.Choice(PrinterModel))
	assert.Equal(t, "PLA", s.Choice(FilamentMaterial))
	assert.Equal(t, 0.4, s.Number(NozzleDiameterMM))
	assert.Equal(t, 200.0, s.Number(NozzleTempC))
	assert.Equal(t, SupportYes, s.Support())
	assert.Equal(t, StateIdle, s.State())
}

func TestSetClampsNumbers(t *testing.T) {
	s := NewSession("s1", defaultOptions())

	require.NoError(t, s.Set(NozzleTempC, "400"))
	assert.Equal(t, 260.0, s.Number(NozzleTempC))

	require.NoError(t, s.Set(LayerHeightMM, "0,01"))
	assert.Equal(t, 0.05, s.Number(LayerHeightMM))

	require.NoError(t, s.Set(InfillPercent, "33.6"))
	assert.Equal(t, 34.0, s.Number(InfillPercent))
	assert.Equal(t, "34", s.Display(InfillPercent))

	require.NoError(t, s.Set(PartVolumeCM3, " 125.5 "))
	assert.Equal(t, "125.5", s.Display(PartVolumeCM3))

	assert.Error(t, s.Set(BedTempC, "hot"))
	assert.Error(t, s.Set(BedTempC, "NaN"))
	assert.Equal(t, 60.0, s.Number(BedTempC))
}

func TestSetChoices(t *testing.T) {
	s := NewSession("s1", defaultOptions())

	require.NoError(t, s.Set(FilamentMaterial, "PETG"))
	assert.Equal(t, "PETG", s.Choice(FilamentMaterial))

	assert.Error(t, s.Set(FilamentMaterial, "Nylon"))
	assert.Equal(t, "PETG", s.Choice(FilamentMaterial))

	assert.ErrorIs(t, s.Set(Field("nozzle_color"), "x"), ErrUnknownField)
}

func TestSupportEncoding(t *testing.T) {
	for raw, want := range map[string]int{"Yes": 1, "Sim": 1, "yes": 1, "No": 0, "Não": 0, "nao": 0} {
		label, err := ParseSupportLabel(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, label.Encode(), raw)
	}
	_, err := ParseSupportLabel("maybe")
	assert.Error(t, err)

	s := NewSession("s1", defaultOptions())
	require.NoError(t, s.Set(SupportUsed, "Não"))
	assert.Equal(t, "No", s.Display(SupportUsed))
	rec, err := s.Record()
	require.NoError(t, err)
	assert.Equal(t, 0, rec.SupportUsed)

	assert.Error(t, s.Set(SupportUsed, "2"))
	assert.Equal(t, SupportNo, s.Support())
}

func TestStateMachine(t *testing.T) {
	s := NewSession("s1", defaultOptions())
	s.Begin()
	assert.Equal(t, StatePredicting, s.State())
	s.Finish(true)
	assert.Equal(t, StateResultShown, s.State())

	require.NoError(t, s.Set(BedTempC, "70"))
	assert.Equal(t, StateIdle, s.State())

	s.Begin()
	s.Finish(false)
	assert.Equal(t, StateErrorShown, s.State())
	assert.Equal(t, "error_shown", s.State().String())
}

func TestRecordRowHasExactSchema(t *testing.T) {
	s := NewSession("s1", defaultOptions())
	rec, err := s.Record()
	require.NoError(t, err)

	row := rec.Row()
	require.Equal(t, 13, row.Len())
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = string(c)
	}
	assert.Equal(t, names, row.Columns)

	v, ok := row.Get("support_used")
	require.True(t, ok)
	assert.Equal(t, ml.Number(1), v)
	v, _ = row.Get("printer_model")
	assert.Equal(t, ml.Text("Ender 3"), v)
	v, _ = row.Get("print_speed_mm_s")
	assert.Equal(t, ml.Number(60), v)
}

func TestRecordValidation(t *testing.T) {
	rec := PrintJobRecord{
		PrinterModel: "Ender 3", FilamentMaterial: "PLA", FilamentColor: "preto",
		NozzleDiameterMM: 2, NozzleTempC: 200, BedTempC: 60, LayerHeightMM: 0.2,
		InfillPercent: 20, PrintSpeedMMS: 60, PartVolumeCM3: 20, PrintTimeHours: 4,
		SupportUsed: 3, AmbientTempC: 25,
	}
	err := rec.Validate()
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "NozzleDiameterMM"))
	assert.True(t, strings.Contains(err.Error(), "SupportUsed"))

	rec.NozzleDiameterMM, rec.SupportUsed = 0.4, 1
	assert.NoError(t, rec.Validate())
}

func TestRecordWithoutChoices(t *testing.T) {
	s := NewSession("s1", Options{})
	_, err := s.Record()
	assert.Error(t, err)
}
