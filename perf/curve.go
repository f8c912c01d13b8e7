package perf

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/scigo-perf/core/model"
	"github.com/ezoic/scigo-perf/metrics"
	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
	"github.com/ezoic/scigo-perf/pkg/log"
)

type curveBuilder func(scores []float64, labels []bool) (*metrics.CurveResult, error)

// curveExplainer is shared by ROC and PR; only the builder differs.
type curveExplainer struct {
	kind      Kind
	op        string
	predictor model.ProbaPredictor
	build     curveBuilder
	cfg       config
}

// ROC explains a binary classifier with its ROC curve and AUC.
type ROC struct {
	curveExplainer
}

// NewROC creates a ROC explainer for predictor.
func NewROC(predictor model.ProbaPredictor, opts ...Option) *ROC {
	return &ROC{curveExplainer{
		kind:      KindROC,
		op:        "ROC.ExplainPerf",
		predictor: predictor,
		build:     metrics.ComputeROC,
		cfg:       newConfig(KindROC, opts),
	}}
}

// PR explains a binary classifier with its precision-recall curve and
// average precision.
type PR struct {
	curveExplainer
}

// NewPR creates a PR explainer for predictor.
func NewPR(predictor model.ProbaPredictor, opts ...Option) *PR {
	return &PR{curveExplainer{
		kind:      KindPR,
		op:        "PR.ExplainPerf",
		predictor: predictor,
		build:     metrics.ComputePR,
		cfg:       newConfig(KindPR, opts),
	}}
}

// Name returns the configured explainer name.
func (e *curveExplainer) Name() string {
	return e.cfg.name
}

// ExplainPerf scores X with PredictProba and builds the curve against the
// 0/1 labels in y.
//
// Errors:
//   - ErrInvalidInput: if X or y is nil, y is not binary, or the input is empty
//   - ErrLengthMismatch: if X, y and the predictions disagree on sample count
//   - ErrDegenerateLabels: if a required class is absent from y
//   - *ModelError: if the predictor fails or panics
func (e *curveExplainer) ExplainPerf(X mat.Matrix, y *mat.VecDense) (_ *Explanation, err error) {
	defer scigoErrors.Recover(&err, e.op)

	start := time.Now()
	logger := e.cfg.logger

	if err := validateDataset(e.op, X, y); err != nil {
		return nil, err
	}
	labels, err := metrics.BinaryLabels("y", y)
	if err != nil {
		return nil, err
	}

	logger.Debug("Evaluation started",
		log.OperationKey, log.OperationExplain,
		log.PhaseKey, log.PhaseInference,
		log.SamplesKey, len(labels),
	)

	proba, err := e.predictProba(X)
	if err != nil {
		logger.Error("Prediction failed", log.OperationKey, log.OperationPredict, log.ErrorKey, err)
		return nil, err
	}
	scores, err := column(e.op, proba, len(labels), e.cfg.positiveColumn)
	if err != nil {
		return nil, err
	}

	curve, err := e.build(scores, labels)
	if err != nil {
		logger.Error("Curve construction failed", log.ErrorKey, err)
		return nil, err
	}

	logger.Debug("Evaluation completed",
		log.OperationKey, log.OperationExplain,
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, len(labels),
		log.PointsKey, curve.Len(),
		log.AreaKey, curve.Area(),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return &Explanation{
		Name:       e.cfg.name,
		Kind:       e.kind,
		NumSamples: len(labels),
		Curve:      curve,
	}, nil
}

func (e *curveExplainer) predictProba(X mat.Matrix) (_ mat.Matrix, err error) {
	defer func() {
		if err != nil {
			err = scigoErrors.NewModelError(e.op, "prediction failed", err)
		}
	}()
	defer scigoErrors.Recover(&err, "PredictProba")

	return e.predictor.PredictProba(X)
}
