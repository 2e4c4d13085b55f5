package ml

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const (
	TypeDecisionTree       = "decision_tree"
	TypeLogisticRegression = "logistic_regression"
)

var ErrUnsupportedModel = errors.New("unsupported model type")

// Artifact is the on-disk representation of a trained classifier.
type Artifact struct {
	Type     string          `json:"type"`
	Features []Feature       `json:"features"`
	Tree     []TreeNode      `json:"tree,omitempty"`
	Logistic *LogisticParams `json:"logistic,omitempty"`
}

func LoadModel(path string) (Classifier, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	model, err := ParseModel(payload)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", path, err)
	}
	return model, nil
}

func ParseModel(payload []byte) (Classifier, error) {
	var artifact Artifact
	if err := json.Unmarshal(payload, &artifact); err != nil {
		return nil, err
	}
	schema := Schema{Features: artifact.Features}
	switch artifact.Type {
	case TypeDecisionTree:
		tree, err := NewDecisionTree(schema, artifact.Tree)
		if err != nil {
			return nil, err
		}
		return tree, nil
	case TypeLogisticRegression:
		if artifact.Logistic == nil {
			return nil, errors.New("logistic regression artifact has no parameters")
		}
		lr, err := NewLogisticRegression(schema, *artifact.Logistic)
		if err != nil {
			return nil, err
		}
		return lr, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedModel, artifact.Type)
	}
}
