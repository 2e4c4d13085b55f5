package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadReference(t *testing.T) *Dataset {
	t.Helper()
	ds, err := Load(filepath.Join("..", "testdata", "reference.csv"))
	require.NoError(t, err)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func TestLoad(t *testing.T) {
	ds := loadReference(t)
	assert.Equal(t, 6, ds.Len())
	assert.True(t, ds.HasColumn("filament_color"))
	assert.False(t, ds.HasColumn("bed_temp_c"))
}

func TestResolveOptionsFromDataset(t *testing.T) {
	ds := loadReference(t)

	got := ResolveOptions(ds, "printer_model", []string{"fallback"})
	assert.Equal(t, []string{"Ender 3", "Ender 3 Pro", "Ender 3 V2"}, got)

	got = ResolveOptions(ds, "filament_color", nil)
	assert.Equal(t, []string{"azul", "branco", "preto", "vermelho"}, got, "nulls dropped")

	assert.Equal(t, ResolveOptions(ds, "filament_material", nil), ResolveOptions(ds, "filament_material", nil))
}

func TestResolveOptionsFallback(t *testing.T) {
	fallback := []string{"PLA", "ABS", "PETG"}

	for _, column := range []string{"filament_material", "printer_model", "anything"} {
		assert.Equal(t, fallback, ResolveOptions(nil, column, fallback))
	}

	ds, err := Read(strings.NewReader("printer_model,filament_color\nEnder 3,preto\n"))
	require.NoError(t, err)
	defer ds.Close()
	assert.Equal(t, fallback, ResolveOptions(ds, "filament_material", fallback))
}

func TestResolveOptionsAllNullColumnFallsBack(t *testing.T) {
	ds, err := Read(strings.NewReader("filament_material,infill_percent\n,20\n,30\n"))
	require.NoError(t, err)
	defer ds.Close()

	fallback := []string{"PLA", "ABS", "PETG"}
	assert.Equal(t, fallback, ResolveOptions(ds, "filament_material", fallback))
}

func TestResolveOptionsSkipsMissingMarkers(t *testing.T) {
	ds, err := Read(strings.NewReader("printer_model\nEnder 3\nNA\nN/A\nnan\nNULL\n<NA>\nNone\n"))
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, []string{"Ender 3"}, ResolveOptions(ds, "printer_model", []string{"fallback"}))
	assert.Equal(t, 7, ds.Len())
}

func TestReadPadsShortRows(t *testing.T) {
	ds, err := Read(strings.NewReader("printer_model,filament_material,filament_color\nEnder 3,PLA,preto\nEnder 3 V2,ABS\n"))
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, 2, ds.Len())
	assert.Equal(t, []string{"Ender 3", "Ender 3 V2"}, ResolveOptions(ds, "printer_model", nil))
	assert.Equal(t, []string{"preto"}, ResolveOptions(ds, "filament_color", nil))
}

func TestReadKeepsStrayQuotes(t *testing.T) {
	ds, err := Read(strings.NewReader("printer_model\nEnder 3 \"V2\"\nEnder 3\n"))
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, []string{"Ender 3", `Ender 3 "V2"`}, ResolveOptions(ds, "printer_model", nil))
}

func TestDistinctSortsByBytes(t *testing.T) {
	ds, err := Read(strings.NewReader("color\nazul\nPreto\nbranco\nazul\n10\n9\n"))
	require.NoError(t, err)
	defer ds.Close()

	values, err := ds.Distinct(context.Background(), "color")
	require.NoError(t, err)
	assert.Equal(t, []string{"10", "9", "Preto", "azul", "branco"}, values)

	_, err = ds.Distinct(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNoColumn)
}

func TestHeaderNormalization(t *testing.T) {
	ds, err := Read(strings.NewReader("\ufeffa,a,,\"we\"\"ird\"\n1,2,3,4\n"))
	require.NoError(t, err)
	defer ds.Close()

	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", `we"ird`}, ds.Columns())
	values, err := ds.Distinct(context.Background(), `we"ird`)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, values)
}

func TestReadRejectsBadInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a,b\n1,2,3\n"))
	assert.Error(t, err)
}
