package perf

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
	"github.com/ezoic/scigo-perf/pkg/log"
)

// EvaluateAll runs every explainer on (X, y) concurrently and returns the
// explanations in the order the explainers were given.
//
// X and y are only read. Explainers sharing a predictor require that
// predictor to be safe for concurrent use.
//
// The first failing explainer cancels the explainers that have not started
// yet and its error is returned. An undefined R² is not treated as a
// failure: the explanation is kept and its Regression.R2() is -Inf.
func EvaluateAll(ctx context.Context, X mat.Matrix, y *mat.VecDense, explainers ...Explainer) ([]*Explanation, error) {
	const op = "EvaluateAll"
	if len(explainers) == 0 {
		return nil, scigoErrors.NewValueError(op, "no explainers given")
	}

	start := time.Now()
	logger := log.GetLoggerWithName("perf").With(log.OperationKey, log.OperationCompare)

	results := make([]*Explanation, len(explainers))
	g, gCtx := errgroup.WithContext(ctx)

	for i, explainer := range explainers {
		i, explainer := i, explainer // Capture loop variables

		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}

			expl, err := explainer.ExplainPerf(X, y)
			if err != nil && !scigoErrors.Is(err, scigoErrors.ErrUndefinedR2) {
				return scigoErrors.Wrapf(err, "explainer %q", explainer.Name())
			}
			results[i] = expl
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Comparison failed", log.ErrorKey, err)
		return nil, err
	}

	logger.Info("Comparison completed",
		"explainers", len(explainers),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return results, nil
}
