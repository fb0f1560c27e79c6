package main

import (
	"bytes"
	"os"
	"sort"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/erythrolab/intronret/cluster"
	"github.com/erythrolab/intronret/ecdf"
	"github.com/erythrolab/intronret/retention"
)

// plotClusterProfiles draws, for each cluster label, the average retention
// trajectory of its introns across the maturation stages.
func plotClusterProfiles(filename string, assignments []cluster.Assignment, means map[string]map[retention.Condition]float64) error {
	stages := retention.Stages()

	byLabel := make(map[string][]string)
	for _, a := range assignments {
		byLabel[a.Label] = append(byLabel[a.Label], a.Intron)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	series := make([]chart.Series, 0, len(labels))
	for _, label := range labels {
		xs := make([]float64, len(stages))
		ys := make([]float64, len(stages))
		for i, stage := range stages {
			total, n := 0.0, 0
			for _, intron := range byLabel[label] {
				if v, ok := means[intron][stage]; ok {
					total += v
					n++
				}
			}
			xs[i] = float64(i)
			if n > 0 {
				ys[i] = total / float64(n)
			}
		}

		series = append(series, chart.ContinuousSeries{
			Name:    label,
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name: "maturation stage",
			Ticks: []chart.Tick{
				{Value: 0, Label: string(retention.Pro)},
				{Value: 1, Label: string(retention.EBaso)},
				{Value: 2, Label: string(retention.LBaso)},
				{Value: 3, Label: string(retention.Poly)},
				{Value: 4, Label: string(retention.Ortho)},
			},
		},
		YAxis: chart.YAxis{
			Name: "mean retention",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(filename, graph)
}

// plotInverseCDF draws each stage's inverse CDF of mean retention over the
// low-retention range [0, 0.5].
func plotInverseCDF(filename string, points []ecdf.Point) error {
	bySeries := make(map[retention.Condition][]ecdf.Point)
	for _, p := range points {
		if p.Level > 0.5 {
			continue
		}
		bySeries[p.Condition] = append(bySeries[p.Condition], p)
	}

	series := make([]chart.Series, 0, len(bySeries))
	for _, cond := range retention.Stages() {
		pts := bySeries[cond]
		if len(pts) == 0 {
			continue
		}

		xs := make([]float64, 0, len(pts))
		ys := make([]float64, 0, len(pts))
		for _, p := range pts {
			xs = append(xs, p.Level)
			ys = append(ys, p.InvCDF)
		}

		series = append(series, chart.ContinuousSeries{
			Name:    string(cond),
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Width:  1024,
		Height: 512,
		XAxis: chart.XAxis{
			Name:  "retention level",
			Range: &chart.ContinuousRange{Min: 0, Max: 0.5},
		},
		YAxis: chart.YAxis{
			Name: "fraction of introns above level",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return renderPNG(filename, graph)
}

func renderPNG(filename string, graph chart.Chart) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return nil
}
