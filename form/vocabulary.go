package form

import (
	"fmt"
	"slices"

	"printpredict/ml"
)

// UnseenOptions lists the choices in opts that the model never saw in
// training. Submitting one of them fails with ml.ErrUnknownCategory.
func UnseenOptions(schema ml.Schema, opts Options) []string {
	var unseen []string
	for _, c := range choices {
		var vocabulary []string
		for _, f := range schema.Features {
			if f.Name == string(c.Field) && f.Kind == ml.KindCategorical {
				vocabulary = f.Categories
			}
		}
		if vocabulary == nil {
			continue
		}
		for _, v := range opts[c.Field] {
			if !slices.Contains(vocabulary, v) {
				unseen = append(unseen, fmt.Sprintf("%s=%q", c.Field, v))
			}
		}
	}
	return unseen
}
