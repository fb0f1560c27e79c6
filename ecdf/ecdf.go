// Package ecdf characterizes how mean intron retention is distributed
// within each maturation stage, as an empirical cumulative distribution
// sampled on a fixed grid of retention levels.
package ecdf

import (
	"math"
	"sort"

	"github.com/gonum/stat"

	"github.com/erythrolab/intronret/retention"
)

// DefaultPoints is the number of evenly spaced retention levels, 0 through 1
// inclusive, at which each stage's distribution is sampled.
const DefaultPoints = 1000

// Point is the distribution sampled at one retention level for one stage.
// CDF is the fraction of introns whose mean retention is at or below Level;
// InvCDF is its complement. Count and InvCount scale those fractions by the
// number of introns observed in the stage.
type Point struct {
	Condition retention.Condition `csv:"condition"`
	Level     float64             `csv:"retention_level"`
	CDF       float64             `csv:"cdf"`
	InvCDF    float64             `csv:"inv_cdf"`
	Count     int                 `csv:"count"`
	InvCount  int                 `csv:"inv_count"`
}

// Estimate computes each condition's empirical CDF over its mean retention
// values, sampled at points evenly spaced levels. Conditions with no
// observations produce no points. The output holds conditions in maturation
// order; nothing upstream is modified.
func Estimate(values map[retention.Condition][]float64, points int) []Point {
	if points < 2 {
		points = DefaultPoints
	}

	out := make([]Point, 0)

	for _, cond := range retention.Stages() {
		observations := values[cond]
		if len(observations) == 0 {
			continue
		}

		sorted := append([]float64(nil), observations...)
		sort.Float64s(sorted)

		n := float64(len(sorted))
		for i := 0; i < points; i++ {
			level := float64(i) / float64(points-1)
			cdf := stat.CDF(level, stat.Empirical, sorted, nil)

			count := int(math.Round(cdf * n))
			out = append(out, Point{
				Condition: cond,
				Level:     level,
				CDF:       cdf,
				InvCDF:    1 - cdf,
				Count:     count,
				InvCount:  len(sorted) - count,
			})
		}
	}

	return out
}
