package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"

	scigoErrors "github.com/ezoic/scigo-perf/pkg/errors"
)

// ComputeROC builds the Receiver Operating Characteristic curve for binary
// labels and model scores.
//
// One point is emitted per distinct score, evaluated after every sample with
// that score has been predicted positive, so tied samples move the curve in
// a single step. The curve starts at (0, 0) with threshold +Inf, except when
// some score is itself +Inf: no threshold lies above it, so the curve opens
// at that group's point instead and the area is still integrated from the
// origin.
//
// The curve ends at (1, 1). That point is the natural last group, so its
// threshold is the minimum score rather than -Inf; a point at -Inf is
// appended only if the last group somehow does not reach (1, 1). The AUC is
// the trapezoidal area under the points.
//
// Parameters:
//   - scores: Model scores, higher meaning more likely positive
//   - labels: Ground truth, true for the positive class
//
// Returns:
//   - *CurveResult: points as (FPR, TPR) plus AUC in [0, 1]
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrLengthMismatch: if scores and labels have different lengths
//   - ErrInvalidInput: if the input is empty or a score is NaN
//   - ErrDegenerateLabels: if either class is absent
//
// Example:
//
//	roc, err := metrics.ComputeROC(
//	    []float64{0.9, 0.4, 0.35, 0.1},
//	    []bool{true, true, false, false},
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("AUC: %.3f\n", roc.Area()) // AUC: 1.000
func ComputeROC(scores []float64, labels []bool) (*CurveResult, error) {
	const op = "ComputeROC"

	groups, pos, neg, err := thresholdGroups(op, scores, labels)
	if err != nil {
		return nil, err
	}
	if pos == 0 || neg == 0 {
		return nil, scigoErrors.NewDegenerateLabelsError(op, pos, neg)
	}

	points := make([]CurvePoint, 0, len(groups)+2)
	if !math.IsInf(groups[0].threshold, 1) {
		points = append(points, CurvePoint{Threshold: math.Inf(1), X: 0, Y: 0})
	}
	for _, g := range groups {
		points = append(points, CurvePoint{
			Threshold: g.threshold,
			X:         float64(g.fp) / float64(neg),
			Y:         float64(g.tp) / float64(pos),
		})
	}
	if last := points[len(points)-1]; last.X != 1 || last.Y != 1 {
		points = append(points, CurvePoint{Threshold: math.Inf(-1), X: 1, Y: 1})
	}

	// Integrate from the origin even when no point sits there.
	fpr := make([]float64, 1, len(points)+1)
	tpr := make([]float64, 1, len(points)+1)
	for _, p := range points {
		fpr = append(fpr, p.X)
		tpr = append(tpr, p.Y)
	}
	auc := clampUnit(integrate.Trapezoidal(fpr, tpr))

	return newCurveResult(ROCCurve, points, auc, pos, neg), nil
}

// ComputePR builds the precision-recall curve for binary labels and model
// scores.
//
// One point is emitted per distinct score with precision = TP / (TP + FP)
// and recall = TP / positives. Every point includes at least one sample, so
// precision is always defined. The rightmost point has recall 1 and
// precision equal to the positive fraction.
//
// The area is the average precision, the recall-weighted step sum
//
//	AP = Σ (R_i - R_{i-1}) * P_i,  R_0 = 0
//
// which does not interpolate between points: precision is not monotone and
// trapezoidal interpolation overstates the area where it drops sharply.
//
// Errors:
//   - ErrLengthMismatch: if scores and labels have different lengths
//   - ErrInvalidInput: if the input is empty or a score is NaN
//   - ErrDegenerateLabels: if there are no positive labels
func ComputePR(scores []float64, labels []bool) (*CurveResult, error) {
	const op = "ComputePR"

	groups, pos, neg, err := thresholdGroups(op, scores, labels)
	if err != nil {
		return nil, err
	}
	if pos == 0 {
		return nil, scigoErrors.NewDegenerateLabelsError(op, pos, neg)
	}

	n := pos + neg
	points := make([]CurvePoint, 0, len(groups)+1)
	for _, g := range groups {
		points = append(points, CurvePoint{
			Threshold: g.threshold,
			X:         float64(g.tp) / float64(pos),
			Y:         float64(g.tp) / float64(g.tp+g.fp),
		})
	}
	baseRate := float64(pos) / float64(n)
	if last := points[len(points)-1]; last.X != 1 || last.Y != baseRate {
		points = append(points, CurvePoint{Threshold: math.Inf(-1), X: 1, Y: baseRate})
	}

	var ap, prevRecall float64
	for _, p := range points {
		ap += (p.X - prevRecall) * p.Y
		prevRecall = p.X
	}

	return newCurveResult(PRCurve, points, clampUnit(ap), pos, neg), nil
}

// AUC calculates the Area Under the ROC Curve for binary classification.
//
// The AUC represents the probability that a classifier will rank a randomly
// chosen positive instance higher than a randomly chosen negative instance,
// counting ties as one half. AUC values range from 0 to 1, where:
//   - 0.5 indicates random guessing
//   - 1.0 indicates perfect classification
//   - 0.0 indicates perfectly wrong classification
//
// Parameters:
//   - yTrue: Ground truth binary labels (0 or 1)
//   - yPred: Predicted probabilities or decision scores
//
// Returns:
//   - The AUC score
//   - An error if inputs are invalid or a class is missing
//
// Example:
//
//	yTrue := mat.NewVecDense(4, []float64{0, 0, 1, 1})
//	yPred := mat.NewVecDense(4, []float64{0.1, 0.4, 0.35, 0.8})
//	auc, err := AUC(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("AUC: %f\n", auc) // Output: AUC: 0.75
func AUC(yTrue, yPred *mat.VecDense) (float64, error) {
	scores, labels, err := binaryInputs("AUC", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	roc, err := ComputeROC(scores, labels)
	if err != nil {
		return 0, err
	}
	return roc.Area(), nil
}

// AveragePrecision calculates the average precision for binary labels.
//
// This is the step-weighted area under the precision-recall curve, see
// ComputePR.
//
// Parameters:
//   - yTrue: Ground truth binary labels (0 or 1)
//   - yPred: Predicted scores for ranking
//
// Returns:
//   - The average precision
//   - An error if inputs are invalid or there are no positives
//
// Example:
//
//	yTrue := mat.NewVecDense(5, []float64{1, 0, 1, 0, 1})
//	yPred := mat.NewVecDense(5, []float64{0.9, 0.8, 0.7, 0.6, 0.5})
//	ap, err := AveragePrecision(yTrue, yPred)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Average Precision: %f\n", ap)
func AveragePrecision(yTrue, yPred *mat.VecDense) (float64, error) {
	scores, labels, err := binaryInputs("AveragePrecision", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	pr, err := ComputePR(scores, labels)
	if err != nil {
		return 0, err
	}
	return pr.Area(), nil
}

// binaryInputs converts 0/1 label and score vectors into slices.
func binaryInputs(op string, yTrue, yPred *mat.VecDense) ([]float64, []bool, error) {
	if yTrue == nil || yPred == nil {
		return nil, nil, scigoErrors.NewValueError(op, "input vectors cannot be nil")
	}

	n := yTrue.Len()
	if n != yPred.Len() {
		return nil, nil, scigoErrors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	labels, err := BinaryLabels("yTrue", yTrue)
	if err != nil {
		return nil, nil, err
	}
	return vecToSlice(yPred), labels, nil
}

// BinaryLabels converts a 0/1 label vector to booleans, true for 1. Any
// other value is rejected with a ValidationError naming param.
func BinaryLabels(param string, y mat.Vector) ([]bool, error) {
	labels := make([]bool, y.Len())
	for i := range labels {
		val := y.AtVec(i)
		if val != 0.0 && val != 1.0 {
			return nil, scigoErrors.NewValidationError(
				param,
				fmt.Sprintf("must contain only binary values (0 or 1), found %f at index %d", val, i),
				val,
			)
		}
		labels[i] = val == 1.0
	}
	return labels, nil
}

func vecToSlice(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}
	return out
}

// clampUnit absorbs floating point drift at the ends of [0, 1].
func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
