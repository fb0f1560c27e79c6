// Package cluster pivots reconciled retention means into an intron-by-stage
// matrix and partitions the introns into retention-pattern clusters.
package cluster

import (
	"sort"

	"github.com/erythrolab/intronret/retention"
)

// Entry is one (intron, condition) mean retention observation feeding the
// matrix.
type Entry struct {
	Intron    string
	Condition retention.Condition
	Mean      float64
}

// Matrix is the complete-case pivot: one row per intron, one column per
// maturation stage in maturation order. Only introns observed in every
// stage are kept; an intron missing even one stage is excluded entirely
// rather than imputed.
type Matrix struct {
	Introns    []string
	Conditions []retention.Condition
	Values     [][]float64
}

// Build pivots the entries into a Matrix. Rows are sorted by intron
// identifier so the pivot is deterministic regardless of input order. When
// the same (intron, condition) appears more than once, the first entry wins.
func Build(entries []Entry) Matrix {
	conditions := retention.Stages()

	byIntron := make(map[string]map[retention.Condition]float64)
	for _, e := range entries {
		if e.Condition.Ord() < 0 {
			continue
		}
		conds := byIntron[e.Intron]
		if conds == nil {
			conds = make(map[retention.Condition]float64)
			byIntron[e.Intron] = conds
		}
		if _, ok := conds[e.Condition]; !ok {
			conds[e.Condition] = e.Mean
		}
	}

	introns := make([]string, 0, len(byIntron))
	for intron, conds := range byIntron {
		if len(conds) == len(conditions) {
			introns = append(introns, intron)
		}
	}
	sort.Strings(introns)

	values := make([][]float64, 0, len(introns))
	for _, intron := range introns {
		row := make([]float64, len(conditions))
		for i, cond := range conditions {
			row[i] = byIntron[intron][cond]
		}
		values = append(values, row)
	}

	return Matrix{Introns: introns, Conditions: conditions, Values: values}
}
