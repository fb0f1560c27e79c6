package retention

import "math"

// Filter is a row-eliminating predicate over Records. Filters are applied in
// declared order; later filters see only the rows earlier ones kept. An
// empty result is a valid outcome, not an error.
type Filter interface {
	// Keep reports whether the record survives the filter.
	Keep(r Record) bool

	// Name identifies the filter in logs.
	Name() string
}

// MinTPM drops records whose normalized abundance falls below Threshold.
type MinTPM struct {
	Threshold float64
}

func (f MinTPM) Keep(r Record) bool { return r.TPM >= f.Threshold }
func (f MinTPM) Name() string       { return "min_tpm" }

// NonDegenerate drops records whose retention ratio rounds to exactly 0 or
// exactly 1 at Precision decimal places. Introns with no measurable partial
// retention carry no statistical information.
type NonDegenerate struct {
	Precision int
}

func (f NonDegenerate) Keep(r Record) bool {
	scale := math.Pow(10, float64(f.Precision))
	rounded := math.Round(r.Retention*scale) / scale

	return rounded > 0 && rounded < 1
}

func (f NonDegenerate) Name() string { return "nondegenerate" }

// MinFragments drops records supported by fewer than Min fragments.
type MinFragments struct {
	Min float64
}

func (f MinFragments) Keep(r Record) bool { return r.Fragments >= f.Min }
func (f MinFragments) Name() string       { return "min_fragments" }

// Filter applies each filter in order and returns the dataset remaining
// after the last one. The receiver is not modified.
func (d *Dataset) Filter(filters ...Filter) *Dataset {
	kept := make([]Record, 0, len(d.Records))
	kept = append(kept, d.Records...)

	for _, f := range filters {
		next := make([]Record, 0, len(kept))
		for _, rec := range kept {
			if f.Keep(rec) {
				next = append(next, rec)
			}
		}
		kept = next
	}

	return d.derive(kept)
}
