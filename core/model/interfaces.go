// Package model defines the model-facing interfaces consumed by the
// performance explainers.
//
// The explainers never train anything: they only need a way to score a
// feature matrix. Any estimator exposing Predict (regression) or
// PredictProba (classification) can be evaluated, and plain functions can be
// adapted with PredictorFunc and ProbaPredictorFunc.
package model

import "gonum.org/v1/gonum/mat"

// Predictor is an interface for predictive models
type Predictor interface {
	// Predict performs predictions on input data, returning an (n_samples, 1) matrix
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// ProbaPredictor is an interface for classifiers that emit class probabilities
type ProbaPredictor interface {
	// PredictProba returns probability estimates of shape (n_samples, n_classes)
	PredictProba(X mat.Matrix) (mat.Matrix, error)
}

// PredictorFunc adapts an ordinary function to Predictor.
type PredictorFunc func(X mat.Matrix) (mat.Matrix, error)

// Predict calls f(X).
func (f PredictorFunc) Predict(X mat.Matrix) (mat.Matrix, error) {
	return f(X)
}

// ProbaPredictorFunc adapts an ordinary function to ProbaPredictor.
type ProbaPredictorFunc func(X mat.Matrix) (mat.Matrix, error)

// PredictProba calls f(X).
func (f ProbaPredictorFunc) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	return f(X)
}
