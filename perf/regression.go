package perf

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/scigo-perf/core/model"
	"github.com/ezoic/scigo-perf/metrics"
	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
	"github.com/ezoic/scigo-perf/pkg/log"
)

// RegressionPerf explains a regressor with residuals and aggregate error
// metrics.
type RegressionPerf struct {
	predictor model.Predictor
	cfg       config
}

// NewRegressionPerf creates a regression explainer for predictor.
func NewRegressionPerf(predictor model.Predictor, opts ...Option) *RegressionPerf {
	return &RegressionPerf{
		predictor: predictor,
		cfg:       newConfig(KindRegression, opts),
	}
}

// Name returns the configured explainer name.
func (r *RegressionPerf) Name() string {
	return r.cfg.name
}

// ExplainPerf scores X with Predict and compares the first prediction
// column against y.
//
// When y has zero variance and the predictions miss, the explanation is
// returned together with an error matching ErrUndefinedR2; see
// metrics.ComputeRegressionPerf.
func (r *RegressionPerf) ExplainPerf(X mat.Matrix, y *mat.VecDense) (_ *Explanation, err error) {
	const op = "RegressionPerf.ExplainPerf"
	defer scigoErrors.Recover(&err, op)

	start := time.Now()
	logger := r.cfg.logger

	if err := validateDataset(op, X, y); err != nil {
		return nil, err
	}
	n := y.Len()

	logger.Debug("Evaluation started",
		log.OperationKey, log.OperationExplain,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, n,
	)

	preds, err := r.predict(op, X)
	if err != nil {
		logger.Error("Prediction failed", log.OperationKey, log.OperationPredict, log.ErrorKey, err)
		return nil, err
	}
	predicted, err := column(op, preds, n, 0)
	if err != nil {
		return nil, err
	}

	res, err := metrics.ComputeRegressionPerfMatrix(y, mat.NewVecDense(n, predicted))
	if res == nil {
		logger.Error("Metric computation failed", log.ErrorKey, err)
		return nil, err
	}
	if err != nil {
		logger.Warn("R2 undefined for constant targets", log.ErrorKey, err)
	}

	logger.Debug("Evaluation completed",
		log.OperationKey, log.OperationExplain,
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, n,
		"mae", res.MAE(),
		"mse", res.MSE(),
		"r2", res.R2(),
		"explained_variance", res.ExplainedVariance(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Explanation{
		Name:       r.cfg.name,
		Kind:       KindRegression,
		NumSamples: n,
		Regression: res,
	}, err
}

func (r *RegressionPerf) predict(op string, X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() {
		if err != nil {
			err = scigoErrors.NewModelError(op, "prediction failed", err)
		}
	}()
	defer scigoErrors.Recover(&err, "Predict")

	return r.predictor.Predict(X)
}
