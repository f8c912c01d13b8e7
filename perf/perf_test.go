package perf_test

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/ezoic/scigo-perf/core/model"
	"github.com/ezoic/scigo-perf/perf"
	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
	"github.com/ezoic/scigo-perf/pkg/log"
)

const epsilon = 1e-10

// featureProba scores each sample with its first feature: column 0 holds
// 1-p, column 1 holds p.
func featureProba() model.ProbaPredictor {
	return model.ProbaPredictorFunc(func(X mat.Matrix) (mat.Matrix, error) {
		r, _ := X.Dims()
		out := mat.NewDense(r, 2, nil)
		for i := 0; i < r; i++ {
			p := X.At(i, 0)
			out.Set(i, 0, 1-p)
			out.Set(i, 1, p)
		}
		return out, nil
	})
}

// linearPredictor predicts slope*x + intercept from the first feature.
func linearPredictor(slope, intercept float64) model.Predictor {
	return model.PredictorFunc(func(X mat.Matrix) (mat.Matrix, error) {
		r, _ := X.Dims()
		out := mat.NewDense(r, 1, nil)
		for i := 0; i < r; i++ {
			out.Set(i, 0, slope*X.At(i, 0)+intercept)
		}
		return out, nil
	})
}

func classificationData() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(4, 1, []float64{0.9, 0.4, 0.4, 0.1})
	y := mat.NewVecDense(4, []float64{1, 1, 0, 0})
	return X, y
}

func TestROC_ExplainPerf(t *testing.T) {
	X, y := classificationData()

	roc := perf.NewROC(featureProba(), perf.WithName("feature0"), perf.WithLogger(log.NewNopLogger()))
	assert.Equal(t, "feature0", roc.Name())

	expl, err := roc.ExplainPerf(X, y)
	require.NoError(t, err)

	assert.Equal(t, "feature0", expl.Name)
	assert.Equal(t, perf.KindROC, expl.Kind)
	assert.Equal(t, 4, expl.NumSamples)
	require.NotNil(t, expl.Curve)
	assert.Nil(t, expl.Regression)
	assert.InDelta(t, 0.875, expl.Score(), epsilon)
}

func TestROC_PositiveColumn(t *testing.T) {
	X, y := classificationData()

	// Column 0 holds 1-p: the ranking is inverted.
	roc := perf.NewROC(featureProba(), perf.WithPositiveColumn(0), perf.WithLogger(log.NewNopLogger()))
	expl, err := roc.ExplainPerf(X, y)
	require.NoError(t, err)
	assert.InDelta(t, 0.125, expl.Score(), epsilon)

	bad := perf.NewROC(featureProba(), perf.WithPositiveColumn(5), perf.WithLogger(log.NewNopLogger()))
	_, err = bad.ExplainPerf(X, y)
	assert.ErrorIs(t, err, scigoErrors.ErrInvalidInput)
}

func TestPR_ExplainPerf(t *testing.T) {
	X := mat.NewDense(5, 1, []float64{0.9, 0.8, 0.7, 0.6, 0.5})
	y := mat.NewVecDense(5, []float64{1, 0, 1, 0, 1})

	pr := perf.NewPR(featureProba(), perf.WithLogger(log.NewNopLogger()))
	assert.Equal(t, "pr", pr.Name())

	expl, err := pr.ExplainPerf(X, y)
	require.NoError(t, err)
	assert.Equal(t, perf.KindPR, expl.Kind)
	assert.InDelta(t, (1+2.0/3+0.6)/3, expl.Score(), epsilon)
}

func TestCurveExplainer_Errors(t *testing.T) {
	X, y := classificationData()
	nop := perf.WithLogger(log.NewNopLogger())

	t.Run("nil inputs", func(t *testing.T) {
		_, err := perf.NewROC(featureProba(), nop).ExplainPerf(nil, y)
		assert.ErrorIs(t, err, scigoErrors.ErrInvalidInput)
	})

	t.Run("row mismatch", func(t *testing.T) {
		_, err := perf.NewROC(featureProba(), nop).ExplainPerf(X, mat.NewVecDense(3, []float64{1, 0, 1}))
		assert.ErrorIs(t, err, scigoErrors.ErrLengthMismatch)
	})

	t.Run("empty dataset", func(t *testing.T) {
		_, err := perf.NewROC(featureProba(), nop).ExplainPerf(&mat.Dense{}, &mat.VecDense{})
		assert.ErrorIs(t, err, scigoErrors.ErrEmptyData)
	})

	t.Run("non-binary labels", func(t *testing.T) {
		_, err := perf.NewPR(featureProba(), nop).ExplainPerf(X, mat.NewVecDense(4, []float64{1, 2, 0, 0}))
		assert.ErrorIs(t, err, scigoErrors.ErrInvalidInput)
		var validationErr *scigoErrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "y", validationErr.ParamName)
	})

	t.Run("single class", func(t *testing.T) {
		_, err := perf.NewROC(featureProba(), nop).ExplainPerf(X, mat.NewVecDense(4, []float64{1, 1, 1, 1}))
		assert.ErrorIs(t, err, scigoErrors.ErrDegenerateLabels)
	})

	t.Run("predictor error", func(t *testing.T) {
		cause := errors.New("model unavailable")
		failing := model.ProbaPredictorFunc(func(mat.Matrix) (mat.Matrix, error) { return nil, cause })

		_, err := perf.NewROC(failing, nop).ExplainPerf(X, y)
		assert.ErrorIs(t, err, cause)
		var modelErr *scigoErrors.ModelError
		require.ErrorAs(t, err, &modelErr)
		assert.Equal(t, "ROC.ExplainPerf", modelErr.Op)
	})

	t.Run("predictor panic", func(t *testing.T) {
		panicking := model.ProbaPredictorFunc(func(mat.Matrix) (mat.Matrix, error) { panic("index out of range") })

		_, err := perf.NewPR(panicking, nop).ExplainPerf(X, y)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "index out of range")
		var modelErr *scigoErrors.ModelError
		assert.ErrorAs(t, err, &modelErr)
	})

	t.Run("wrong prediction rows", func(t *testing.T) {
		short := model.ProbaPredictorFunc(func(mat.Matrix) (mat.Matrix, error) {
			return mat.NewDense(2, 2, nil), nil
		})
		_, err := perf.NewROC(short, nop).ExplainPerf(X, y)
		assert.ErrorIs(t, err, scigoErrors.ErrLengthMismatch)
	})
}

func TestRegressionPerf_ExplainPerf(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewVecDense(3, []float64{1, 2, 3})

	t.Run("perfect", func(t *testing.T) {
		rp := perf.NewRegressionPerf(linearPredictor(1, 0), perf.WithLogger(log.NewNopLogger()))
		expl, err := rp.ExplainPerf(X, y)
		require.NoError(t, err)

		assert.Equal(t, perf.KindRegression, expl.Kind)
		assert.Nil(t, expl.Curve)
		require.NotNil(t, expl.Regression)
		assert.Equal(t, 1.0, expl.Score())
		assert.Equal(t, 0.0, expl.Regression.MAE())
	})

	t.Run("mean predictor", func(t *testing.T) {
		rp := perf.NewRegressionPerf(linearPredictor(0, 2), perf.WithLogger(log.NewNopLogger()))
		expl, err := rp.ExplainPerf(X, y)
		require.NoError(t, err)
		assert.InDelta(t, 0.0, expl.Score(), epsilon)
		assert.Equal(t, []float64{-1, 0, 1}, expl.Regression.Residuals())
	})

	t.Run("offset predictor", func(t *testing.T) {
		rp := perf.NewRegressionPerf(linearPredictor(1, 1), perf.WithLogger(log.NewNopLogger()))
		expl, err := rp.ExplainPerf(X, y)
		require.NoError(t, err)
		assert.InDelta(t, -0.5, expl.Score(), epsilon)
		assert.InDelta(t, 1.0, expl.Regression.ExplainedVariance(), epsilon)
	})

	t.Run("constant targets", func(t *testing.T) {
		rp := perf.NewRegressionPerf(linearPredictor(1, 0), perf.WithLogger(log.NewNopLogger()))
		expl, err := rp.ExplainPerf(X, mat.NewVecDense(3, []float64{5, 5, 5}))
		assert.ErrorIs(t, err, scigoErrors.ErrUndefinedR2)
		require.NotNil(t, expl)
		assert.True(t, math.IsInf(expl.Score(), -1))
	})

	t.Run("predictor error", func(t *testing.T) {
		failing := model.PredictorFunc(func(mat.Matrix) (mat.Matrix, error) {
			return nil, scigoErrors.ErrNotImplemented
		})
		_, err := perf.NewRegressionPerf(failing, perf.WithLogger(log.NewNopLogger())).ExplainPerf(X, y)
		assert.ErrorIs(t, err, scigoErrors.ErrNotImplemented)
	})
}

func TestEvaluateAll(t *testing.T) {
	X, y := classificationData()
	nop := perf.WithLogger(log.NewNopLogger())

	results, err := perf.EvaluateAll(context.Background(), X, y,
		perf.NewROC(featureProba(), perf.WithName("roc"), nop),
		perf.NewPR(featureProba(), perf.WithName("pr"), nop),
		perf.NewRegressionPerf(linearPredictor(1, 0), perf.WithName("reg"), nop),
	)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "roc", results[0].Name)
	assert.Equal(t, perf.KindROC, results[0].Kind)
	assert.Equal(t, "pr", results[1].Name)
	assert.Equal(t, perf.KindPR, results[1].Kind)
	assert.Equal(t, "reg", results[2].Name)
	assert.Equal(t, perf.KindRegression, results[2].Kind)
}

func TestEvaluateAll_UndefinedR2Kept(t *testing.T) {
	X := mat.NewDense(2, 1, []float64{1, 2})
	y := mat.NewVecDense(2, []float64{3, 3})

	results, err := perf.EvaluateAll(context.Background(), X, y,
		perf.NewRegressionPerf(linearPredictor(1, 0), perf.WithLogger(log.NewNopLogger())),
	)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, math.IsInf(results[0].Score(), -1))
}

func TestEvaluateAll_Errors(t *testing.T) {
	X, y := classificationData()
	nop := perf.WithLogger(log.NewNopLogger())

	_, err := perf.EvaluateAll(context.Background(), X, y)
	assert.ErrorIs(t, err, scigoErrors.ErrInvalidInput)

	cause := errors.New("boom")
	failing := model.ProbaPredictorFunc(func(mat.Matrix) (mat.Matrix, error) { return nil, cause })

	_, err = perf.EvaluateAll(context.Background(), X, y,
		perf.NewROC(featureProba(), nop),
		perf.NewROC(failing, perf.WithName("broken"), nop),
	)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), `explainer "broken"`)
}

func TestEvaluateAll_Cancelled(t *testing.T) {
	X, y := classificationData()

	var calls atomic.Int32
	counting := model.ProbaPredictorFunc(func(X mat.Matrix) (mat.Matrix, error) {
		calls.Add(1)
		return featureProba().PredictProba(X)
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := perf.EvaluateAll(ctx, X, y,
		perf.NewROC(counting, perf.WithLogger(log.NewNopLogger())),
	)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, calls.Load())
}
