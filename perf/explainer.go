// Package perf evaluates models by running them on a labelled dataset and
// summarising the predictions as performance curves or regression metrics.
//
// Three explainers are provided:
//
//   - ROC: ROC curve and AUC from a classifier's PredictProba output
//   - PR: precision-recall curve and average precision
//   - RegressionPerf: residuals, MAE, MSE, RMSE and R² from Predict output
//
// Example usage:
//
//	roc := perf.NewROC(classifier, perf.WithName("lgbm"))
//	expl, err := roc.ExplainPerf(XTest, yTest)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s AUC: %.3f\n", expl.Name, expl.Score())
//
// EvaluateAll runs several explainers concurrently, e.g. one per model
// being compared.
package perf

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/scigo-perf/metrics"
	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
	"github.com/ezoic/scigo-perf/pkg/log"
)

// Kind identifies the type of performance explanation.
type Kind string

const (
	KindROC        Kind = "roc"
	KindPR         Kind = "pr"
	KindRegression Kind = "regression"
)

// Explainer computes a performance explanation for a model on (X, y).
type Explainer interface {
	Name() string
	ExplainPerf(X mat.Matrix, y *mat.VecDense) (*Explanation, error)
}

// Explanation is the result of one ExplainPerf call. Exactly one of Curve
// and Regression is set, depending on Kind.
type Explanation struct {
	Name       string
	Kind       Kind
	NumSamples int

	Curve      *metrics.CurveResult
	Regression *metrics.RegressionResult
}

// Score returns the headline number: AUC for ROC, average precision for PR,
// R² for regression.
func (e *Explanation) Score() float64 {
	if e.Curve != nil {
		return e.Curve.Area()
	}
	if e.Regression != nil {
		return e.Regression.R2()
	}
	return 0
}

type config struct {
	name           string
	logger         log.Logger
	positiveColumn int
}

// Option configures an explainer.
type Option func(*config)

// WithName sets the name reported in explanations and logs.
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithLogger replaces the default "perf" logger.
func WithLogger(logger log.Logger) Option {
	return func(c *config) { c.logger = logger }
}

// WithPositiveColumn selects the PredictProba column holding the positive
// class probability. Negative values count from the end; the default -1 is
// the last column.
func WithPositiveColumn(col int) Option {
	return func(c *config) { c.positiveColumn = col }
}

func newConfig(kind Kind, opts []Option) config {
	cfg := config{
		name:           string(kind),
		positiveColumn: -1,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("perf")
	}
	cfg.logger = cfg.logger.With(
		log.ModelNameKey, cfg.name,
		log.ComponentKey, string(kind),
	)
	return cfg
}

func validateDataset(op string, X mat.Matrix, y *mat.VecDense) error {
	if X == nil || y == nil {
		return scigoErrors.NewValueError(op, "X and y cannot be nil")
	}
	r, _ := X.Dims()
	if r != y.Len() {
		return scigoErrors.NewDimensionError(op, r, y.Len(), 0)
	}
	if r == 0 {
		return scigoErrors.NewEmptyDataError(op)
	}
	return nil
}

// column extracts column col of a prediction matrix with n rows. Negative
// col counts from the end.
func column(op string, preds mat.Matrix, n, col int) ([]float64, error) {
	if preds == nil {
		return nil, scigoErrors.NewValueError(op, "predictor returned nil")
	}
	r, c := preds.Dims()
	if r != n {
		return nil, scigoErrors.NewDimensionError(op, n, r, 0)
	}
	if col < 0 {
		col += c
	}
	if col < 0 || col >= c {
		return nil, scigoErrors.NewValidationError(
			"positiveColumn",
			fmt.Sprintf("column %d out of range for %d prediction columns", col, c),
			col,
		)
	}
	return mat.Col(nil, col, preds), nil
}
