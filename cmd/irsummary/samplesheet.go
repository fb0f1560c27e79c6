package main

import (
	"encoding/csv"
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/erythrolab/intronret"
	"github.com/erythrolab/intronret/retention"
)

type sheetRow struct {
	Sample       string `csv:"sample"`
	Condition    string `csv:"condition"`
	Abundance    string `csv:"abundance"`
	ZeroCoverage string `csv:"zero_coverage"`
	UniqueCounts string `csv:"unique_counts"`
}

func readSampleSheet(path string) ([]retention.Sample, error) {
	f, err := intronret.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = '\t'

	var rows []sheetRow
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	if len(rows) == 0 {
		return nil, pfx.Err(fmt.Errorf("sample sheet %s contains no samples", path))
	}

	out := make([]retention.Sample, 0, len(rows))
	for _, row := range rows {
		cond, err := retention.ParseCondition(row.Condition)
		if err != nil {
			return nil, pfx.Err(err)
		}

		out = append(out, retention.Sample{
			Name:        row.Sample,
			Condition:   cond,
			Abundance:   row.Abundance,
			ZeroCov:     row.ZeroCoverage,
			UniqueReads: row.UniqueCounts,
		})
	}

	return out, nil
}
