// irecdf reads a retention summary table and writes the per-stage empirical
// distribution of mean retention, sampled on an even grid of retention
// levels.
package main

import (
	"encoding/csv"
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/erythrolab/intronret"
	_ "github.com/erythrolab/intronret/compileinfoprint"
	"github.com/erythrolab/intronret/ecdf"
	"github.com/erythrolab/intronret/reconcile"
	"github.com/erythrolab/intronret/retention"
)

func main() {
	var summary, output string
	var points int

	flag.StringVar(&summary, "summary", "", "Path to the summary table written by irsummary.")
	flag.StringVar(&output, "out", "", "Path for the distribution table. If blank, writes to STDOUT.")
	flag.IntVar(&points, "points", ecdf.DefaultPoints, "Number of evenly spaced retention levels to sample.")
	flag.Parse()

	if summary == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := intronret.Open(summary)
	if err != nil {
		log.Fatalln(err)
	}

	rows, err := reconcile.ReadSummary(f)
	f.Close()
	if err != nil {
		log.Fatalln(err)
	}

	values := make(map[retention.Condition][]float64)
	for _, row := range rows {
		cond, err := retention.ParseCondition(row.Condition)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		values[cond] = append(values[cond], row.MeanRetention)
	}

	curve := ecdf.Estimate(values, points)

	w := os.Stdout
	if output != "" {
		w, err = os.Create(output)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer w.Close()
	}

	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := gocsv.MarshalCSV(&curve, gocsv.NewSafeCSVWriter(cw)); err != nil {
		log.Fatalln(pfx.Err(err))
	}
	log.Println("Wrote", len(curve), "distribution points")
}
