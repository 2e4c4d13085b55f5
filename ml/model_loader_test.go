package ml

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func printRow(material string, speed float64) Row {
	var row Row
	row.Add("printer_model", Text("Ender 3"))
	row.Add("filament_material", Text(material))
	row.Add("filament_color", Text("preto"))
	row.Add("nozzle_diameter_mm", Number(0.4))
	row.Add("nozzle_temp_c", Number(200))
	row.Add("bed_temp_c", Number(60))
	row.Add("layer_height_mm", Number(0.2))
	row.Add("infill_percent", Number(20))
	row.Add("print_speed_mm_s", Number(speed))
	row.Add("part_volume_cm3", Number(20))
	row.Add("print_time_hours", Number(4))
	row.Add("support_used", Number(1))
	row.Add("ambient_temp_c", Number(25))
	return row
}

func TestLoadModelDecisionTree(t *testing.T) {
	model, err := LoadModel(filepath.Join("..", "testdata", "print_model.json"))
	require.NoError(t, err)
	ctx := context.Background()

	label, err := model.Predict(ctx, printRow("PLA", 60))
	require.NoError(t, err)
	assert.Equal(t, 1, label)
	p, err := model.PredictProbability(ctx, printRow("PLA", 60))
	require.NoError(t, err)
	assert.InDelta(t, 0.7342, p, 1e-9)

	label, err = model.Predict(ctx, printRow("ABS", 60))
	require.NoError(t, err)
	assert.Equal(t, 0, label)
	label, err = model.Predict(ctx, printRow("PLA", 150))
	require.NoError(t, err)
	assert.Equal(t, 0, label)
}

func TestParseModelErrors(t *testing.T) {
	_, err := ParseModel([]byte(`{"type": "random_forest", "features": [{"name": "a", "kind": "numeric"}]}`))
	assert.ErrorIs(t, err, ErrUnsupportedModel)

	_, err = ParseModel([]byte(`{"type": "logistic_regression", "features": [{"name": "a", "kind": "numeric"}]}`))
	assert.Error(t, err)

	_, err = ParseModel([]byte(`not json`))
	assert.Error(t, err)

	_, err = ParseModel([]byte(`{"type": "decision_tree", "features": [{"name": "a", "kind": "categorical"}],
		"tree": [{"is_leaf": true}]}`))
	assert.Error(t, err, "categorical feature without vocabulary")
}

func TestLoadModelMissingFile(t *testing.T) {
	_, err := LoadModel(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
