// irfigures renders the two retention figures from pipeline output: the
// per-cluster retention profiles across maturation stages, and the
// per-stage inverse CDF of mean retention over the low-retention range.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"

	"github.com/erythrolab/intronret"
	"github.com/erythrolab/intronret/cluster"
	_ "github.com/erythrolab/intronret/compileinfoprint"
	"github.com/erythrolab/intronret/ecdf"
	"github.com/erythrolab/intronret/reconcile"
	"github.com/erythrolab/intronret/retention"
)

func main() {
	var summary, clusters, outDir string

	flag.StringVar(&summary, "summary", "", "Path to the summary table written by irsummary.")
	flag.StringVar(&clusters, "clusters", "", "Path to the cluster assignment table written by ircluster.")
	flag.StringVar(&outDir, "out-dir", ".", "Directory for the rendered PNG figures.")
	flag.Parse()

	if summary == "" || clusters == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	rows, err := readSummary(summary)
	if err != nil {
		log.Fatalln(err)
	}

	assignments, err := readAssignments(clusters)
	if err != nil {
		log.Fatalln(err)
	}

	values := make(map[retention.Condition][]float64)
	means := make(map[string]map[retention.Condition]float64)
	for _, row := range rows {
		cond, err := retention.ParseCondition(row.Condition)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		values[cond] = append(values[cond], row.MeanRetention)

		conds := means[row.Intron]
		if conds == nil {
			conds = make(map[retention.Condition]float64)
			means[row.Intron] = conds
		}
		conds[cond] = row.MeanRetention
	}

	if err := plotClusterProfiles(filepath.Join(outDir, "cluster_profiles.png"), assignments, means); err != nil {
		log.Fatalln(err)
	}
	log.Println("Rendered cluster profiles")

	if err := plotInverseCDF(filepath.Join(outDir, "inverse_cdf.png"), ecdf.Estimate(values, ecdf.DefaultPoints)); err != nil {
		log.Fatalln(err)
	}
	log.Println("Rendered inverse CDF")
}

func readSummary(path string) ([]reconcile.SummaryRow, error) {
	f, err := intronret.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return reconcile.ReadSummary(f)
}

func readAssignments(path string) ([]cluster.Assignment, error) {
	f, err := intronret.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return cluster.ReadAssignments(f)
}
