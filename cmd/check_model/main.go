// Command check_model loads a model artifact and a reference dataset the way
// the server does and reports whether they fit together: every choice the
// form would offer is checked against the model's vocabulary and one
// prediction is made with the default form values.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"

	"printpredict/form"
	"printpredict/inference"
	"printpredict/logging"
	"printpredict/ml"
	"printpredict/resource"
)

type args struct {
	ModelPath   string `arg:"--model_path" default:"modelo_impressoras3D.json" help:"model artifact"`
	DatasetPath string `arg:"--dataset_path" default:"dataset_impressoras3D_12k.csv" help:"reference dataset (optional)"`
	Verbose     bool   `arg:"--verbose" help:"debug logging"`
}

func main() {
	var flags args
	arg.MustParse(&flags)

	cfg := logging.DefaultConfig()
	if flags.Verbose {
		cfg.Level = "debug"
	}
	logger, err := logging.New(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	if ok := run(flags, logger); !ok {
		os.Exit(1)
	}
}

func run(flags args, logger *zap.Logger) bool {
	loader := resource.NewLoader(logger)
	defer loader.Close()

	model, err := loader.LoadModel(flags.ModelPath)
	if err != nil {
		logger.Error("cannot load model", zap.Error(err))
		return false
	}
	ds, err := loader.LoadReferenceDataset(flags.DatasetPath)
	if err != nil {
		logger.Error("cannot load reference dataset", zap.Error(err))
		return false
	}
	options := form.ResolveOptions(ds)

	ok := true
	if described, isDescribed := model.(ml.Described); isDescribed {
		if unseen := form.UnseenOptions(described.Schema(), options); len(unseen) > 0 {
			logger.Warn("choices unknown to the model", zap.Strings("options", unseen))
			ok = false
		}
	}

	session := form.NewSession("check", options)
	switch out := inference.NewInvoker(model, logger).Invoke(context.Background(), session).(type) {
	case inference.Verdict:
		fmt.Printf("default record: success=%t probability=%s\n", out.Success, out.Percent())
	case inference.Failure:
		fmt.Printf("default record: error: %s\n", out.Message)
		ok = false
	}
	return ok
}
