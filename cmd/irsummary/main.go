// irsummary builds the per-intron-per-sample retention dataset from
// quantifier output, applies the abundance/degeneracy/support filters,
// merges zero-coverage statistics, runs the significance test, and writes
// the reconciled no-filter summary table.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/carbocation/pfx"

	_ "github.com/erythrolab/intronret/compileinfoprint"
	"github.com/erythrolab/intronret/reconcile"
	"github.com/erythrolab/intronret/retention"
	"github.com/erythrolab/intronret/sigtest"
)

func main() {
	var sheet, mapping, output string
	var minTPM, minFragments float64
	var precision, minSamples int

	flag.StringVar(&sheet, "samples", "", "Path to the sample sheet: a tab-delimited table with columns sample, condition, abundance, zero_coverage, unique_counts. unique_counts may be blank.")
	flag.StringVar(&mapping, "mapping", "", "Path to the intron-to-transcript mapping table with columns intron, transcript, gene, intron_extension.")
	flag.StringVar(&output, "out", "", "Path for the output summary table. If blank, writes to STDOUT.")
	flag.Float64Var(&minTPM, "min-tpm", 1.0, "Drop intron/sample rows whose TPM is below this threshold.")
	flag.IntVar(&precision, "precision", 3, "Decimal precision at which a retention ratio of 0 or 1 is considered degenerate.")
	flag.Float64Var(&minFragments, "min-fragments", 5.0, "Drop intron/sample rows supported by fewer fragments than this.")
	flag.IntVar(&minSamples, "min-samples", 2, "Minimum samples per condition before the significance test considers the condition.")
	flag.Parse()

	if sheet == "" || mapping == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	samples, err := readSampleSheet(sheet)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Read", len(samples), "samples from", sheet)

	ds, err := retention.BuildDataset(mapping, samples)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Built retention dataset:", len(ds.Records), "intron/sample rows across", len(ds.Introns()), "introns")

	filtered := ds.Filter(
		retention.MinTPM{Threshold: minTPM},
		retention.NonDegenerate{Precision: precision},
		retention.MinFragments{Min: minFragments},
	)
	log.Println(len(filtered.Records), "rows survive filtering")

	cov, err := retention.LoadCoverage(samples)
	if err != nil {
		log.Fatalln(err)
	}

	filtered, err = filtered.MergeCoverage(cov)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	log.Println("Merged zero-coverage statistics")

	var tester sigtest.Tester = sigtest.ANOVA{MinSamples: minSamples}
	results, err := tester.Test(filtered)
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Significance test emitted", len(results), "intron/condition results")

	// The summary is reconciled against the unfiltered dataset so that
	// every observed (intron, condition) appears, with means filled from
	// raw values wherever the test was silent.
	records, err := reconcile.Reconcile(ds, results)
	if err != nil {
		log.Fatalln(err)
	}

	rows := reconcile.Summary(records)

	w := os.Stdout
	if output != "" {
		w, err = os.Create(output)
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		defer w.Close()
	}

	if err := reconcile.WriteSummary(w, rows); err != nil {
		log.Fatalln(err)
	}
	log.Println("Wrote", len(rows), "summary rows")
}
