package ml

import (
	"context"
	"errors"
	"fmt"
)

// DecisionTree is a binary classification tree over the encoded feature
// vector. Leaves carry the predicted label and the positive-class probability.
type DecisionTree struct {
	schema Schema
	nodes  []TreeNode
}

type TreeNode struct {
	FeatureIdx  int     `json:"feature_idx"`
	Threshold   float64 `json:"threshold"`
	LeftChild   int     `json:"left_child"`
	RightChild  int     `json:"right_child"`
	ClassLabel  int     `json:"class_label"`
	Probability float64 `json:"probability"`
	IsLeaf      bool    `json:"is_leaf"`
}

func NewDecisionTree(schema Schema, nodes []TreeNode) (*DecisionTree, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.New("decision tree has no nodes")
	}
	width := schema.Width()
	for i, node := range nodes {
		if node.IsLeaf {
			if node.Probability < 0 || node.Probability > 1 {
				return nil, fmt.Errorf("node %d: probability %v out of [0, 1]", i, node.Probability)
			}
			continue
		}
		if node.FeatureIdx < 0 || node.FeatureIdx >= width {
			return nil, fmt.Errorf("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, fmt.Errorf("node %d: invalid children %d/%d", i, node.LeftChild, node.RightChild)
		}
	}
	return &DecisionTree{schema: schema, nodes: nodes}, nil
}

func (dt *DecisionTree) Schema() Schema {
	return dt.schema
}

func (dt *DecisionTree) Predict(ctx context.Context, row Row) (int, error) {
	leaf, err := dt.leaf(ctx, row)
	if err != nil {
		return 0, err
	}
	return leaf.ClassLabel, nil
}

func (dt *DecisionTree) PredictProbability(ctx context.Context, row Row) (float64, error) {
	leaf, err := dt.leaf(ctx, row)
	if err != nil {
		return 0, err
	}
	return leaf.Probability, nil
}

func (dt *DecisionTree) leaf(ctx context.Context, row Row) (TreeNode, error) {
	if err := ctx.Err(); err != nil {
		return TreeNode{}, err
	}
	features, err := dt.schema.Encode(row)
	if err != nil {
		return TreeNode{}, err
	}
	// children always point forward, so the walk ends within len(nodes) steps
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node, nil
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}
