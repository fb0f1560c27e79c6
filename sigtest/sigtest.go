// Package sigtest computes per-intron significance of retention differences
// across maturation stages. The pipeline only depends on the Tester
// interface, so the default analysis-of-variance tester can be swapped for
// any other implementation without touching the downstream stages.
package sigtest

import (
	"github.com/erythrolab/intronret/retention"
)

// Result summarizes retention for one (intron, condition) pair that passed
// the tester's admissibility filters. Pairs that did not pass are simply
// absent from the tester's output; the reconciler fills them in later.
type Result struct {
	Intron        string
	Condition     retention.Condition
	MeanRetention float64
	VarRetention  float64
	PValue        float64
	QValue        float64
}

// Tester is the black-box significance test collaborator.
type Tester interface {
	Test(ds *retention.Dataset) ([]Result, error)
}
