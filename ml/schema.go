package ml

import (
	"errors"
	"fmt"
	"strings"
)

type FeatureKind string

const (
	KindNumeric     FeatureKind = "numeric"
	KindCategorical FeatureKind = "categorical"
)

var ErrUnknownCategory = errors.New("unknown category")

// Feature describes one input column the model was trained with.
type Feature struct {
	Name       string      `json:"name"`
	Kind       FeatureKind `json:"kind"`
	Categories []string    `json:"categories,omitempty"`
}

// Schema is the ordered feature list of a trained model.
type Schema struct {
	Features []Feature `json:"features"`
}

// SchemaError reports a row whose columns do not match the training schema.
type SchemaError struct {
	Expected []string
	Got      []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("feature schema mismatch: expected [%s], got [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

func (s Schema) Names() []string {
	names := make([]string, len(s.Features))
	for i, f := range s.Features {
		names[i] = f.Name
	}
	return names
}

// Width is the length of the encoded vector: one slot per numeric feature and
// one per category of each categorical feature.
func (s Schema) Width() int {
	width := 0
	for _, f := range s.Features {
		if f.Kind == KindCategorical {
			width += len(f.Categories)
		} else {
			width++
		}
	}
	return width
}

func (s Schema) Validate() error {
	if len(s.Features) == 0 {
		return errors.New("schema has no features")
	}
	seen := make(map[string]bool, len(s.Features))
	for _, f := range s.Features {
		if f.Name == "" {
			return errors.New("schema has a feature without a name")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate feature %q", f.Name)
		}
		seen[f.Name] = true
		switch f.Kind {
		case KindNumeric:
		case KindCategorical:
			if len(f.Categories) == 0 {
				return fmt.Errorf("categorical feature %q has no categories", f.Name)
			}
		default:
			return fmt.Errorf("feature %q has unsupported kind %q", f.Name, f.Kind)
		}
	}
	return nil
}

// Encode checks row against the schema and returns the model input vector.
// Categorical values are one-hot encoded against the training vocabulary;
// values never seen in training are rejected.
func (s Schema) Encode(row Row) ([]float64, error) {
	if len(row.Columns) != len(row.Values) {
		return nil, fmt.Errorf("row has %d columns but %d values", len(row.Columns), len(row.Values))
	}
	if !sameColumns(s.Names(), row.Columns) {
		return nil, &SchemaError{Expected: s.Names(), Got: append([]string(nil), row.Columns...)}
	}

	vector := make([]float64, 0, s.Width())
	for i, f := range s.Features {
		v := row.Values[i]
		switch f.Kind {
		case KindNumeric:
			if !v.Numeric {
				return nil, fmt.Errorf("feature %q expects a number, got %q", f.Name, v.Text)
			}
			vector = append(vector, v.Number)
		case KindCategorical:
			if v.Numeric {
				return nil, fmt.Errorf("feature %q expects a category, got %v", f.Name, v.Number)
			}
			idx := indexOf(f.Categories, v.Text)
			if idx < 0 {
				return nil, fmt.Errorf("%w %q for feature %q", ErrUnknownCategory, v.Text, f.Name)
			}
			for j := range f.Categories {
				if j == idx {
					vector = append(vector, 1)
				} else {
					vector = append(vector, 0)
				}
			}
		}
	}
	return vector, nil
}

func sameColumns(expected, got []string) bool {
	if len(expected) != len(got) {
		return false
	}
	for i := range expected {
		if expected[i] != got[i] {
			return false
		}
	}
	return true
}

func indexOf(values []string, target string) int {
	for i, v := range values {
		if v == target {
			return i
		}
	}
	return -1
}
