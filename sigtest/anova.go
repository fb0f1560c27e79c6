package sigtest

import (
	"sort"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/erythrolab/intronret/retention"
)

// ANOVA is the default Tester: a one-way analysis of variance over
// per-sample retention values, computed per intron across its admissible
// conditions. A condition is admissible for an intron when it has at least
// MinSamples observations; an intron is testable when at least two of its
// conditions are admissible and the within-group variance is nonzero.
type ANOVA struct {
	// MinSamples is the minimum number of per-sample observations a
	// condition needs before it participates in the test. Zero means the
	// default of 2.
	MinSamples int
}

func (a ANOVA) minSamples() int {
	if a.MinSamples < 2 {
		return 2
	}

	return a.MinSamples
}

type group struct {
	condition  retention.Condition
	retentions []float64
}

func (a ANOVA) Test(ds *retention.Dataset) ([]Result, error) {
	byIntron := make(map[string]map[retention.Condition][]float64)
	for _, rec := range ds.Records {
		conds := byIntron[rec.Intron]
		if conds == nil {
			conds = make(map[retention.Condition][]float64)
			byIntron[rec.Intron] = conds
		}
		conds[rec.Condition] = append(conds[rec.Condition], rec.Retention)
	}

	grouped := make(map[string][]group)
	for intron, conds := range byIntron {
		for _, cond := range retention.Stages() {
			values := conds[cond]
			if len(values) < a.minSamples() {
				continue
			}
			grouped[intron] = append(grouped[intron], group{condition: cond, retentions: values})
		}
	}

	introns := make([]string, 0, len(grouped))
	for intron := range grouped {
		introns = append(introns, intron)
	}
	sort.Strings(introns)

	results := make([]Result, 0)
	pvalues := make(map[string]float64)

	for _, intron := range introns {
		groups := grouped[intron]
		if len(groups) < 2 {
			continue
		}

		p, ok := oneWayP(groups)
		if !ok {
			continue
		}
		pvalues[intron] = p

		for _, g := range groups {
			mean, err := stats.Mean(g.retentions)
			if err != nil {
				return nil, pfx.Err(err)
			}

			variance, err := stats.SampleVariance(g.retentions)
			if err != nil {
				return nil, pfx.Err(err)
			}

			results = append(results, Result{
				Intron:        intron,
				Condition:     g.condition,
				MeanRetention: mean,
				VarRetention:  variance,
				PValue:        p,
			})
		}
	}

	applyQValues(results, pvalues)

	return results, nil
}

// oneWayP computes the one-way ANOVA p-value across the groups. The second
// return is false when the statistic is undefined, which marks the intron
// inadmissible.
func oneWayP(groups []group) (float64, bool) {
	n := 0
	grand := 0.0
	for _, g := range groups {
		for _, v := range g.retentions {
			grand += v
			n++
		}
	}
	grand /= float64(n)

	between := 0.0
	within := 0.0
	for _, g := range groups {
		mean := 0.0
		for _, v := range g.retentions {
			mean += v
		}
		mean /= float64(len(g.retentions))

		between += float64(len(g.retentions)) * (mean - grand) * (mean - grand)
		for _, v := range g.retentions {
			within += (v - mean) * (v - mean)
		}
	}

	dfBetween := float64(len(groups) - 1)
	dfWithin := float64(n - len(groups))
	if dfWithin <= 0 || within == 0 {
		return 0, false
	}

	f := (between / dfBetween) / (within / dfWithin)
	dist := distuv.F{D1: dfBetween, D2: dfWithin}

	return dist.Survival(f), true
}

// applyQValues attaches Benjamini-Hochberg q-values, computed over the
// per-intron p-values, to every emitted result.
func applyQValues(results []Result, pvalues map[string]float64) {
	type ppor struct {
		intron string
		p      float64
	}

	ordered := make([]ppor, 0, len(pvalues))
	for intron, p := range pvalues {
		ordered = append(ordered, ppor{intron: intron, p: p})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].p != ordered[j].p {
			return ordered[i].p < ordered[j].p
		}
		return ordered[i].intron < ordered[j].intron
	})

	m := float64(len(ordered))
	qvalues := make(map[string]float64, len(ordered))
	running := 1.0
	for i := len(ordered) - 1; i >= 0; i-- {
		q := ordered[i].p * m / float64(i+1)
		if q < running {
			running = q
		}
		qvalues[ordered[i].intron] = running
	}

	for i := range results {
		results[i].QValue = qvalues[results[i].Intron]
	}
}
