package metrics

import (
	"gonum.org/v1/plot/plotter"
)

// CurveKind identifies which axes a CurveResult carries.
type CurveKind int

const (
	// ROCCurve points are (false positive rate, true positive rate).
	ROCCurve CurveKind = iota
	// PRCurve points are (recall, precision).
	PRCurve
)

// String returns "roc" or "pr".
func (k CurveKind) String() string {
	switch k {
	case ROCCurve:
		return "roc"
	case PRCurve:
		return "pr"
	default:
		return "unknown"
	}
}

// CurvePoint is one operating point of a threshold curve.
//
// For ROC curves X is the false positive rate and Y the true positive rate.
// For PR curves X is recall and Y is precision. Threshold is the score cutoff:
// samples scoring >= Threshold are predicted positive. The boundary points
// use +Inf and -Inf.
type CurvePoint struct {
	Threshold float64 `json:"threshold"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
}

// CurveResult is an immutable threshold curve with its summary area.
//
// Points are ordered by threshold descending, so X is non-decreasing along
// the slice. Area is the ROC AUC for ROCCurve and the average precision for
// PRCurve. Accessors return copies; a CurveResult can be shared freely
// between goroutines.
//
// CurveResult implements plotter.XYer so it can be handed directly to
// gonum/plot, for example plotter.NewLine(curve).
type CurveResult struct {
	kind      CurveKind
	points    []CurvePoint
	area      float64
	positives int
	negatives int
}

var _ plotter.XYer = (*CurveResult)(nil)

func newCurveResult(kind CurveKind, points []CurvePoint, area float64, positives, negatives int) *CurveResult {
	return &CurveResult{
		kind:      kind,
		points:    points,
		area:      area,
		positives: positives,
		negatives: negatives,
	}
}

// Kind reports whether this is a ROC or PR curve.
func (c *CurveResult) Kind() CurveKind { return c.kind }

// Area returns the ROC AUC or the average precision, depending on Kind.
func (c *CurveResult) Area() float64 { return c.area }

// Positives returns the number of positive samples the curve was built from.
func (c *CurveResult) Positives() int { return c.positives }

// Negatives returns the number of negative samples the curve was built from.
func (c *CurveResult) Negatives() int { return c.negatives }

// Points returns a copy of the curve points.
func (c *CurveResult) Points() []CurvePoint {
	out := make([]CurvePoint, len(c.points))
	copy(out, c.points)
	return out
}

// Thresholds returns the threshold of every point, in curve order.
func (c *CurveResult) Thresholds() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.Threshold
	}
	return out
}

// Xs returns the X coordinate of every point (FPR or recall).
func (c *CurveResult) Xs() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.X
	}
	return out
}

// Ys returns the Y coordinate of every point (TPR or precision).
func (c *CurveResult) Ys() []float64 {
	out := make([]float64, len(c.points))
	for i, p := range c.points {
		out[i] = p.Y
	}
	return out
}

// Len returns the number of points. Part of plotter.XYer.
func (c *CurveResult) Len() int { return len(c.points) }

// XY returns the coordinates of point i. Part of plotter.XYer.
func (c *CurveResult) XY(i int) (x, y float64) {
	p := c.points[i]
	return p.X, p.Y
}

// XYs copies the curve into a plotter.XYs.
func (c *CurveResult) XYs() plotter.XYs {
	out := make(plotter.XYs, len(c.points))
	for i, p := range c.points {
		out[i].X = p.X
		out[i].Y = p.Y
	}
	return out
}
