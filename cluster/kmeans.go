package cluster

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/carbocation/pfx"
	"gonum.org/v1/gonum/floats"
)

// Config controls the k-means partition. The zero value of a field selects
// its default.
type Config struct {
	// K is the number of clusters. Default 9.
	K int

	// MaxIter caps the Lloyd iterations within one restart. Default 100.
	MaxIter int

	// Restarts is the number of random restarts; the restart with the
	// lowest total within-cluster variance wins. Default 25.
	Restarts int

	// Seed drives all randomness. The same seed and matrix always yield
	// the same partition.
	Seed int64
}

func (c Config) withDefaults() Config {
	if c.K == 0 {
		c.K = 9
	}
	if c.MaxIter == 0 {
		c.MaxIter = 100
	}
	if c.Restarts == 0 {
		c.Restarts = 25
	}

	return c
}

// Assignment places one intron in one cluster. Size is the total number of
// introns sharing the cluster; Label is assigned separately by the labeling
// step.
type Assignment struct {
	Intron  string `csv:"intron"`
	Cluster int    `csv:"cluster"`
	Size    int    `csv:"cluster_size"`
	Label   string `csv:"label"`
}

// KMeans partitions the matrix rows into cfg.K clusters and returns one
// assignment per intron, in matrix row order. The seed is consumed exactly
// once, so repeated runs over the same matrix reproduce the same partition.
func KMeans(m Matrix, cfg Config) ([]Assignment, error) {
	cfg = cfg.withDefaults()

	n := len(m.Values)
	if n < cfg.K {
		return nil, pfx.Err(fmt.Errorf("kmeans: %d rows cannot form %d clusters", n, cfg.K))
	}

	rng := rand.New(rand.NewSource(cfg.Seed))

	best := make([]int, n)
	bestScore := math.Inf(1)

	for restart := 0; restart < cfg.Restarts; restart++ {
		labels, score := lloyd(m.Values, cfg.K, cfg.MaxIter, rng)
		if score < bestScore {
			bestScore = score
			copy(best, labels)
		}
	}

	sizes := make(map[int]int, cfg.K)
	for _, c := range best {
		sizes[c]++
	}

	out := make([]Assignment, 0, n)
	for i, intron := range m.Introns {
		out = append(out, Assignment{
			Intron:  intron,
			Cluster: best[i],
			Size:    sizes[best[i]],
		})
	}

	return out, nil
}

// lloyd runs one k-means restart: centroids seeded from k distinct rows,
// then alternating assignment and centroid updates until the assignment is
// stable or maxIter is hit. Returns the assignment and its total
// within-cluster sum of squares.
func lloyd(rows [][]float64, k, maxIter int, rng *rand.Rand) ([]int, float64) {
	n := len(rows)
	dims := len(rows[0])

	centroids := make([][]float64, k)
	for i, ri := range rng.Perm(n)[:k] {
		centroids[i] = append([]float64(nil), rows[ri]...)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i, row := range rows {
			c := nearest(row, centroids)
			if c != labels[i] {
				labels[i] = c
				changed = true
			}
		}

		// Re-seed any emptied centroid on the row farthest from its own
		// centroid, so every cluster stays populated.
		counts := make([]int, k)
		for _, c := range labels {
			counts[c]++
		}
		for c := 0; c < k; c++ {
			if counts[c] > 0 {
				continue
			}
			far, farDist := 0, -1.0
			for i, row := range rows {
				if counts[labels[i]] <= 1 {
					continue
				}
				if d := sqDist(row, centroids[labels[i]]); d > farDist {
					far, farDist = i, d
				}
			}
			counts[labels[far]]--
			labels[far] = c
			counts[c]++
			changed = true
		}

		if !changed {
			break
		}

		for c := range centroids {
			for j := 0; j < dims; j++ {
				centroids[c][j] = 0
			}
		}
		for i, row := range rows {
			floats.Add(centroids[labels[i]], row)
		}
		for c := range centroids {
			floats.Scale(1/float64(counts[c]), centroids[c])
		}
	}

	score := 0.0
	for i, row := range rows {
		score += sqDist(row, centroids[labels[i]])
	}

	return labels, score
}

func nearest(row []float64, centroids [][]float64) int {
	bestC, bestD := 0, math.Inf(1)
	for c, centroid := range centroids {
		if d := sqDist(row, centroid); d < bestD {
			bestC, bestD = c, d
		}
	}

	return bestC
}

func sqDist(a, b []float64) float64 {
	d := floats.Distance(a, b, 2)

	return d * d
}
