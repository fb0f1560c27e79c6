// Package reconcile merges raw per-sample retention with significance test
// output into one complete per-(intron, condition) table. The test only
// emits results for pairs passing its own admissibility filters, so the
// common case is a pair with no test entry: its mean and variance are filled
// from the raw retention values, while its p- and q-values stay missing.
package reconcile

import (
	"math"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"gopkg.in/guregu/null.v3"

	"github.com/erythrolab/intronret/retention"
	"github.com/erythrolab/intronret/sigtest"
)

// Record is the reconciled view of one (intron, condition): summary
// statistics over the samples sharing the condition, joined with the test
// result when one exists. Missing mean/variance are NaN until Fill runs;
// missing p/q are invalid null.Floats and stay that way.
type Record struct {
	Intron        string
	Condition     retention.Condition
	MeanRetention float64
	VarRetention  float64
	PValue        null.Float
	QValue        null.Float
	Gene          string
	Extension     string
	Samples       int
}

// Join left-joins the dataset against the test results on (intron,
// condition). Every pair present in the dataset appears exactly once in the
// output regardless of whether the test emitted anything for it; pairs
// absent from the test keep NaN mean/variance and invalid p/q.
func Join(ds *retention.Dataset, results []sigtest.Result) []Record {
	type key struct {
		intron    string
		condition retention.Condition
	}

	tested := make(map[key]sigtest.Result, len(results))
	for _, res := range results {
		tested[key{intron: res.Intron, condition: res.Condition}] = res
	}

	counts := make(map[key]int)
	order := make([]key, 0)
	for _, rec := range ds.Records {
		k := key{intron: rec.Intron, condition: rec.Condition}
		if counts[k] == 0 {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]Record, 0, len(order))
	for _, k := range order {
		info := ds.Gene(k.intron)
		rec := Record{
			Intron:        k.intron,
			Condition:     k.condition,
			MeanRetention: math.NaN(),
			VarRetention:  math.NaN(),
			Gene:          info.Gene,
			Extension:     info.Extension,
			Samples:       counts[k],
		}

		if res, ok := tested[k]; ok {
			rec.MeanRetention = res.MeanRetention
			rec.VarRetention = res.VarRetention
			rec.PValue = null.FloatFrom(res.PValue)
			rec.QValue = null.FloatFrom(res.QValue)
		}

		out = append(out, rec)
	}

	return out
}

// Fill replaces each record's missing mean and variance with statistics
// computed from the raw per-sample retention values for that (intron,
// condition), using every row in the group. Records that already carry a
// mean are returned untouched, so running Fill twice is a no-op. A group
// with a single observation gets variance 0. p- and q-values are never
// synthesized.
func Fill(records []Record, ds *retention.Dataset) ([]Record, error) {
	type key struct {
		intron    string
		condition retention.Condition
	}

	raw := make(map[key][]float64)
	for _, rec := range ds.Records {
		k := key{intron: rec.Intron, condition: rec.Condition}
		raw[k] = append(raw[k], rec.Retention)
	}

	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if !math.IsNaN(rec.MeanRetention) {
			out = append(out, rec)
			continue
		}

		values := raw[key{intron: rec.Intron, condition: rec.Condition}]

		mean, err := stats.Mean(values)
		if err != nil {
			return nil, pfx.Err(err)
		}
		rec.MeanRetention = mean

		if len(values) < 2 {
			rec.VarRetention = 0
		} else {
			variance, err := stats.SampleVariance(values)
			if err != nil {
				return nil, pfx.Err(err)
			}
			rec.VarRetention = variance
		}

		out = append(out, rec)
	}

	return out, nil
}

// Reconcile joins and fills in one step.
func Reconcile(ds *retention.Dataset, results []sigtest.Result) ([]Record, error) {
	return Fill(Join(ds, results), ds)
}

// Sort orders records by extended intron identifier, then by the condition's
// position in the maturation ordering.
func Sort(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Extension != records[j].Extension {
			return records[i].Extension < records[j].Extension
		}
		return records[i].Condition.Ord() < records[j].Condition.Ord()
	})
}
