package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRun(t *testing.T) {
	testdata := filepath.Join("..", "..", "testdata")

	// the reference CSV only offers choices the model knows
	assert.True(t, run(args{
		ModelPath:   filepath.Join(testdata, "print_model.json"),
		DatasetPath: filepath.Join(testdata, "reference.csv"),
	}, zap.NewNop()))

	// without a dataset the fallback offers the same vocabulary
	assert.True(t, run(args{
		ModelPath:   filepath.Join(testdata, "print_model.json"),
		DatasetPath: filepath.Join(t.TempDir(), "absent.csv"),
	}, zap.NewNop()))

	assert.False(t, run(args{
		ModelPath:   filepath.Join(t.TempDir(), "absent.json"),
		DatasetPath: filepath.Join(testdata, "reference.csv"),
	}, zap.NewNop()))
}
