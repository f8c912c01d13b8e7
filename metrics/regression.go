// Package metrics computes performance curves and summary statistics for
// evaluating model predictions against ground truth.
//
// Classification:
//   - ComputeROC: ROC curve (FPR vs TPR per distinct score) and its AUC
//   - ComputePR: precision-recall curve and average precision
//   - SortLabeledScores: the descending score order both builders share
//
// Regression:
//   - ComputeRegressionPerf: residuals, MAE, MSE, RMSE, R², explained
//     variance and MAPE
//
// Every function is pure: inputs are read, never modified, and results are
// immutable values owned by the caller. Calls are safe to run in parallel.
//
// Example usage:
//
//	roc, err := metrics.ComputeROC(scores, labels)
//	pr, err := metrics.ComputePR(scores, labels)
//	perf, err := metrics.ComputeRegressionPerf(actual, predicted)
//
// The *mat.VecDense helpers (AUC, AveragePrecision, MSE, RMSE, MAE,
// R2Score, MAPE, ExplainedVarianceScore) wrap the same computations for
// callers working with gonum vectors and 0/1 labels. MSEMatrix and
// ComputeRegressionPerfMatrix accept n×1 matrices.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
)

// RegressionSample pairs an actual value with its prediction.
type RegressionSample struct {
	Actual    float64
	Predicted float64
}

// RegressionResult holds aggregate regression metrics and the per-sample
// residuals. It is immutable; Residuals returns a copy.
type RegressionResult struct {
	mae       float64
	mse       float64
	r2        float64
	evs       float64
	mape      float64
	mapeOK    bool
	residuals []float64
}

// MAE returns the mean absolute error.
func (r *RegressionResult) MAE() float64 { return r.mae }

// MSE returns the mean squared error.
func (r *RegressionResult) MSE() float64 { return r.mse }

// RMSE returns the root mean squared error.
func (r *RegressionResult) RMSE() float64 { return math.Sqrt(r.mse) }

// R2 returns the coefficient of determination. It is -Inf when undefined,
// see ComputeRegressionPerf.
func (r *RegressionResult) R2() float64 { return r.r2 }

// ExplainedVariance returns 1 - Var(residuals) / Var(actual). Unlike R2 it
// ignores a constant offset between actual and predicted values. Constant
// targets follow the R2 rule: 1 if the residuals are constant too, -Inf
// otherwise.
func (r *RegressionResult) ExplainedVariance() float64 { return r.evs }

// MAPE returns the mean absolute percentage error over the samples whose
// actual value is nonzero. ok is false when every actual value is zero.
func (r *RegressionResult) MAPE() (mape float64, ok bool) { return r.mape, r.mapeOK }

// Len returns the number of samples.
func (r *RegressionResult) Len() int { return len(r.residuals) }

// Residuals returns actual - predicted for every sample, in input order.
func (r *RegressionResult) Residuals() []float64 {
	out := make([]float64, len(r.residuals))
	copy(out, r.residuals)
	return out
}

// ComputeRegressionPerf calculates residuals and aggregate regression
// metrics from actual and predicted values.
//
//	residual_i = actual_i - predicted_i
//	MAE = mean(|residual_i|)
//	MSE = mean(residual_i²)
//	R²  = 1 - Σ residual_i² / Σ (actual_i - mean(actual))²
//
// When all actual values are identical the R² denominator is zero. R² is
// then 1 if every residual is zero too. Otherwise R² is reported as -Inf and
// the fully populated result is returned together with an UndefinedR2Error,
// so MAE, MSE and the residuals stay available.
//
// The pairing of actual[i] with predicted[i] is the caller's responsibility;
// only lengths are checked.
//
// Errors:
//   - ErrLengthMismatch: if actual and predicted have different lengths
//   - ErrInvalidInput: if the input is empty or contains NaN or ±Inf
//   - ErrEmptyData: if the input is empty
//   - ErrUndefinedR2: if actual has zero variance and residuals are nonzero
//
// Example:
//
//	perf, err := metrics.ComputeRegressionPerf(
//	    []float64{1, 2, 3},
//	    []float64{1, 2, 4},
//	)
//	// perf.Residuals() == [0 0 -1], perf.MAE() == 1/3, perf.R2() == 0.5
func ComputeRegressionPerf(actual, predicted []float64) (*RegressionResult, error) {
	return computeRegressionPerf("ComputeRegressionPerf", actual, predicted)
}

// ComputeRegressionPerfSamples is ComputeRegressionPerf over paired samples.
func ComputeRegressionPerfSamples(samples []RegressionSample) (*RegressionResult, error) {
	actual := make([]float64, len(samples))
	predicted := make([]float64, len(samples))
	for i, s := range samples {
		actual[i] = s.Actual
		predicted[i] = s.Predicted
	}
	return computeRegressionPerf("ComputeRegressionPerfSamples", actual, predicted)
}

func computeRegressionPerf(op string, actual, predicted []float64) (*RegressionResult, error) {
	n := len(actual)
	if len(predicted) != n {
		return nil, scigoErrors.NewDimensionError(op, n, len(predicted), 0)
	}
	if n == 0 {
		return nil, scigoErrors.NewEmptyDataError(op)
	}
	if err := checkFinite(op, "actual", actual); err != nil {
		return nil, err
	}
	if err := checkFinite(op, "predicted", predicted); err != nil {
		return nil, err
	}

	residuals := make([]float64, n)
	floats.SubTo(residuals, actual, predicted)

	var absSum, ssRes, apeSum float64
	var apeCount int
	for i, r := range residuals {
		absSum += math.Abs(r)
		ssRes += r * r
		if actual[i] != 0 {
			apeSum += math.Abs(r / actual[i])
			apeCount++
		}
	}

	mean := stat.Mean(actual, nil)
	var ssTot float64
	for _, a := range actual {
		d := a - mean
		ssTot += d * d
	}

	res := &RegressionResult{
		mae:       absSum / float64(n),
		mse:       ssRes / float64(n),
		residuals: residuals,
	}
	if apeCount > 0 {
		res.mape = 100 * apeSum / float64(apeCount)
		res.mapeOK = true
	}

	_, resVar := stat.PopMeanVariance(residuals, nil)
	switch {
	case ssTot > 0:
		res.evs = 1 - resVar*float64(n)/ssTot
	case resVar == 0:
		res.evs = 1
	default:
		res.evs = math.Inf(-1)
	}

	switch {
	case ssTot > 0:
		res.r2 = 1 - ssRes/ssTot
	case ssRes == 0:
		res.r2 = 1
	default:
		res.r2 = math.Inf(-1)
		return res, scigoErrors.NewUndefinedR2Error(op, ssRes)
	}

	return res, nil
}

// checkFinite rejects NaN and ±Inf: either one turns residuals and every
// aggregate into NaN.
func checkFinite(op, name string, values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return scigoErrors.NewValueError(op, fmt.Sprintf("%s value at index %d is %v", name, i, v))
		}
	}
	return nil
}

// ComputeRegressionPerfMatrix is ComputeRegressionPerf over n×1 column
// matrices, such as a *mat.VecDense or a single-output prediction.
//
// Errors:
//   - ErrInvalidInput: if a matrix is nil, not a column vector, or holds NaN or ±Inf
//   - ErrEmptyData: if the matrices have no rows
//   - ErrLengthMismatch: if the row counts differ
//   - ErrUndefinedR2: see ComputeRegressionPerf
func ComputeRegressionPerfMatrix(actual, predicted mat.Matrix) (*RegressionResult, error) {
	return regressionMatrix("ComputeRegressionPerfMatrix", actual, predicted)
}

func regressionMatrix(op string, actual, predicted mat.Matrix) (*RegressionResult, error) {
	if actual == nil || predicted == nil {
		return nil, scigoErrors.NewValueError(op, "input matrices cannot be nil")
	}
	rTrue, cTrue := actual.Dims()
	rPred, cPred := predicted.Dims()
	if rTrue != rPred {
		return nil, scigoErrors.NewDimensionError(op, rTrue, rPred, 0)
	}
	if rTrue == 0 {
		return nil, scigoErrors.NewEmptyDataError(op)
	}
	if cTrue != 1 || cPred != 1 {
		return nil, scigoErrors.NewValueError(op, "must be a column vector (n×1 matrix)")
	}
	return computeRegressionPerf(op, mat.Col(nil, 0, actual), mat.Col(nil, 0, predicted))
}

// MSE calculates the Mean Squared Error between true and predicted values.
//
// MSE measures the average squared differences between predictions and actual
// values. Lower values indicate better model performance. MSE is sensitive to
// outliers due to the squared differences.
//
// Parameters:
//   - yTrue: True target values as a vector
//   - yPred: Predicted values as a vector
//
// Returns:
//   - float64: MSE value (non-negative)
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrInvalidInput: if input vectors are nil, empty, or contain NaN or ±Inf
//   - ErrLengthMismatch: if yTrue and yPred have different lengths
//
// Example:
//
//	mse, err := metrics.MSE(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("MSE: %.4f\n", mse)
func MSE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := regressionVec("MSE", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	return res.MSE(), nil
}

// RMSE calculates the Root Mean Squared Error between true and predicted values.
//
// RMSE is the square root of MSE, providing error measurement in the same units
// as the target variable.
//
// Example:
//
//	rmse, err := metrics.RMSE(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("RMSE: %.4f\n", rmse)
func RMSE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := regressionVec("RMSE", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	return res.RMSE(), nil
}

// MAE calculates the Mean Absolute Error between true and predicted values.
//
// MAE measures the average absolute differences between predictions and actual
// values. MAE is more robust to outliers compared to MSE as it doesn't square
// the differences.
//
// Errors:
//   - ErrInvalidInput: if input vectors are nil, empty, or contain NaN or ±Inf
//   - ErrLengthMismatch: if yTrue and yPred have different lengths
func MAE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := regressionVec("MAE", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	return res.MAE(), nil
}

// R2Score calculates the coefficient of determination (R²) score.
//
// R² represents the proportion of variance in the target variable that is
// predictable from the predictions. Values range from negative infinity to 1,
// where 1 indicates perfect predictions, 0 indicates predictions no better than
// the mean, and negative values indicate worse than mean predictions.
//
// Returns:
//   - float64: R² score (can be negative, best possible score is 1.0)
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrInvalidInput: if input vectors are nil, empty, or contain NaN or ±Inf
//   - ErrLengthMismatch: if yTrue and yPred have different lengths
//   - ErrUndefinedR2: if all yTrue values are identical and predictions differ;
//     the returned score is then -Inf
//
// Example:
//
//	r2, err := metrics.R2Score(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("R² Score: %.4f\n", r2)
func R2Score(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := regressionVec("R2Score", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	return res.R2(), err
}

// MSEMatrix calculates MSE for matrix inputs (column vectors).
//
// Errors:
//   - ErrInvalidInput: if a matrix is not n×1 or holds NaN or ±Inf
//   - ErrLengthMismatch: if the matrices have different row counts
//
// Example:
//
//	mse, err := metrics.MSEMatrix(yTrueMatrix, yPredMatrix)
func MSEMatrix(yTrue, yPred mat.Matrix) (float64, error) {
	res, err := regressionMatrix("MSEMatrix", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	return res.MSE(), nil
}

// MAPE calculates the Mean Absolute Percentage Error.
//
// MAPE measures prediction accuracy as a percentage, making it scale-independent
// and easy to interpret. Samples whose true value is zero are skipped.
//
// Returns:
//   - float64: MAPE value as percentage (non-negative)
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrInvalidInput: if inputs are nil, empty, non-finite, or every yTrue
//     value is zero
//   - ErrLengthMismatch: if yTrue and yPred have different lengths
//
// Example:
//
//	mape, err := metrics.MAPE(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("MAPE: %.2f%%\n", mape)
func MAPE(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := regressionVec("MAPE", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	mape, ok := res.MAPE()
	if !ok {
		return 0, scigoErrors.NewValueError("MAPE", "all yTrue values are zero")
	}
	return mape, nil
}

// ExplainedVarianceScore calculates the explained variance regression score.
//
// This metric measures the proportion of the variance in the target variable
// that is explained by the model. Unlike R², it does not account for systematic
// offset in predictions. The best possible score is 1.0.
//
// Errors:
//   - ErrInvalidInput: if inputs are nil, empty or non-finite, or yTrue has
//     no variance while the residuals do; the score is then -Inf
//   - ErrLengthMismatch: if yTrue and yPred have different lengths
func ExplainedVarianceScore(yTrue, yPred *mat.VecDense) (float64, error) {
	res, err := regressionVec("ExplainedVarianceScore", yTrue, yPred)
	if res == nil {
		return 0, err
	}
	evs := res.ExplainedVariance()
	if math.IsInf(evs, -1) {
		return evs, scigoErrors.NewValueError("ExplainedVarianceScore", "no variance in yTrue")
	}
	return evs, nil
}

// regressionVec runs the regression computation on vectors. The result is
// non-nil whenever the aggregates could be computed, even if err reports an
// undefined R².
func regressionVec(op string, yTrue, yPred *mat.VecDense) (*RegressionResult, error) {
	if yTrue == nil || yPred == nil {
		return nil, scigoErrors.NewValueError(op, "input vectors cannot be nil")
	}
	return computeRegressionPerf(op, vecToSlice(yTrue), vecToSlice(yPred))
}
