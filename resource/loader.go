// Package resource loads the model artifact and the reference dataset once per
// path and shares them for the lifetime of the process.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"printpredict/dataset"
	"printpredict/ml"
)

var ErrModelNotFound = errors.New("model artifact not found")

// slot holds one lazily loaded value. Failed loads are not remembered, so a
// later call retries.
type slot[T any] struct {
	mu     sync.Mutex
	loaded bool
	value  T
}

func (s *slot[T]) get(load func() (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.value, nil
	}
	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}
	s.value, s.loaded = v, true
	return v, nil
}

func slotFor[T any](mu *sync.Mutex, slots map[string]*slot[T], key string) *slot[T] {
	mu.Lock()
	defer mu.Unlock()
	s, ok := slots[key]
	if !ok {
		s = &slot[T]{}
		slots[key] = s
	}
	return s
}

// Loader caches model artifacts and reference datasets keyed by path.
type Loader struct {
	mu       sync.Mutex
	models   map[string]*slot[ml.Classifier]
	datasets map[string]*slot[*dataset.Dataset]
	logger   *zap.Logger

	decodeModel   func(path string) (ml.Classifier, error)
	decodeDataset func(path string) (*dataset.Dataset, error)
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		models:        make(map[string]*slot[ml.Classifier]),
		datasets:      make(map[string]*slot[*dataset.Dataset]),
		logger:        logger,
		decodeModel:   ml.LoadModel,
		decodeDataset: dataset.Load,
	}
}

// LoadModel returns the classifier stored at path. It fails with
// ErrModelNotFound when the file does not exist.
func (l *Loader) LoadModel(path string) (ml.Classifier, error) {
	key := filepath.Clean(path)
	return slotFor(&l.mu, l.models, key).get(func() (ml.Classifier, error) {
		if _, err := os.Stat(key); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, path)
		}
		model, err := l.decodeModel(key)
		if err != nil {
			return nil, err
		}
		l.logger.Info("model artifact loaded", zap.String("path", key))
		return model, nil
	})
}

// LoadReferenceDataset returns the dataset stored at path, or nil when the
// file does not exist.
func (l *Loader) LoadReferenceDataset(path string) (*dataset.Dataset, error) {
	key := filepath.Clean(path)
	return slotFor(&l.mu, l.datasets, key).get(func() (*dataset.Dataset, error) {
		if _, err := os.Stat(key); errors.Is(err, os.ErrNotExist) {
			l.logger.Info("reference dataset absent, using default options", zap.String("path", key))
			return nil, nil
		}
		ds, err := l.decodeDataset(key)
		if err != nil {
			return nil, err
		}
		l.logger.Info("reference dataset loaded", zap.String("path", key), zap.Int("rows", ds.Len()))
		return ds, nil
	})
}

// Paths lists the files currently held by the cache.
func (l *Loader) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	paths := make([]string, 0, len(l.models)+len(l.datasets))
	for p, s := range l.models {
		if s.isLoaded() {
			paths = append(paths, p)
		}
	}
	for p, s := range l.datasets {
		if s.isLoaded() && s.value != nil {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

func (l *Loader) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var err error
	for _, s := range l.datasets {
		s.mu.Lock()
		if s.loaded && s.value != nil {
			err = multierr.Append(err, s.value.Close())
		}
		s.mu.Unlock()
	}
	return err
}

func (s *slot[T]) isLoaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}
