package cluster

import (
	"encoding/csv"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// WriteAssignments writes assignments as a tab-delimited table.
func WriteAssignments(w io.Writer, assignments []Assignment) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(&assignments, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadAssignments reads a tab-delimited assignment table written by
// WriteAssignments.
func ReadAssignments(r io.Reader) ([]Assignment, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	var assignments []Assignment
	if err := gocsv.UnmarshalCSV(cr, &assignments); err != nil {
		return nil, pfx.Err(err)
	}

	return assignments, nil
}
