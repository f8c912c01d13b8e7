package errors

import (
	"github.com/cockroachdb/errors"
)

// Recover converts a panic in the calling function into an error stored in
// *errp. It must be deferred directly:
//
//	func (r *ROC) ExplainPerf(X mat.Matrix, y *mat.VecDense) (_ *Explanation, err error) {
//		defer errors.Recover(&err, "ROC.ExplainPerf")
//		...
//	}
//
// An error already stored in *errp is kept when no panic occurred.
func Recover(errp *error, op string) {
	r := recover()
	if r == nil {
		return
	}

	var err error
	switch v := r.(type) {
	case error:
		err = errors.Wrapf(v, "%s: recovered from panic", op)
	default:
		err = errors.Newf("%s: recovered from panic: %v", op, v)
	}

	if errp != nil {
		*errp = err
	}
}
