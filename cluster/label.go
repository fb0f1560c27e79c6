package cluster

import (
	"fmt"
	"sort"
)

// LabelBySizeRank assigns each cluster a label "C1".."Ck" by ascending
// cluster size, smallest cluster first. Ties are broken by cluster id, so
// the labeling is deterministic for a given partition. Assignments are
// labeled in place.
func LabelBySizeRank(assignments []Assignment) {
	ranked := clustersBySize(assignments)

	labels := make(map[int]string, len(ranked))
	for rank, c := range ranked {
		labels[c.id] = fmt.Sprintf("C%d", rank+1)
	}

	for i := range assignments {
		assignments[i].Label = labels[assignments[i].Cluster]
	}
}

// LabelMismatchError reports that the observed cluster sizes do not match
// the declared expectation, meaning the declared list is stale relative to
// the current input.
type LabelMismatchError struct {
	Declared []int
	Observed []int
}

func (e LabelMismatchError) Error() string {
	return fmt.Sprintf("cluster labeling: declared sizes %v do not match observed sizes %v", e.Declared, e.Observed)
}

// LabelByDeclaredSizes labels clusters like LabelBySizeRank but additionally
// demands that the observed size multiset exactly match the declared one,
// for runs that must reproduce a historic labeling. On mismatch the
// assignments are left unlabeled and a LabelMismatchError is returned.
func LabelByDeclaredSizes(assignments []Assignment, declared []int) error {
	ranked := clustersBySize(assignments)

	observed := make([]int, 0, len(ranked))
	for _, c := range ranked {
		observed = append(observed, c.size)
	}

	expected := append([]int(nil), declared...)
	sort.Ints(expected)

	if len(observed) != len(expected) {
		return LabelMismatchError{Declared: declared, Observed: observed}
	}
	for i := range expected {
		if observed[i] != expected[i] {
			return LabelMismatchError{Declared: declared, Observed: observed}
		}
	}

	LabelBySizeRank(assignments)

	return nil
}

type clusterSize struct {
	id   int
	size int
}

func clustersBySize(assignments []Assignment) []clusterSize {
	sizes := make(map[int]int)
	for _, a := range assignments {
		sizes[a.Cluster] = a.Size
	}

	out := make([]clusterSize, 0, len(sizes))
	for id, size := range sizes {
		out = append(out, clusterSize{id: id, size: size})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].size != out[j].size {
			return out[i].size < out[j].size
		}
		return out[i].id < out[j].id
	})

	return out
}
