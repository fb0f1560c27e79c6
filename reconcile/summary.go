package reconcile

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"gopkg.in/guregu/null.v3"

	"github.com/erythrolab/intronret/retention"
)

// NAFloat renders a nullable float as "NA" when missing, matching the
// convention of the downstream analysis tables.
type NAFloat struct {
	null.Float
}

func (f NAFloat) MarshalCSV() (string, error) {
	if !f.Valid {
		return "NA", nil
	}

	return strconv.FormatFloat(f.Float64, 'g', -1, 64), nil
}

func (f *NAFloat) UnmarshalCSV(field string) error {
	if field == "NA" || field == "" {
		f.Valid = false
		return nil
	}

	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return pfx.Err(err)
	}

	f.Float64 = v
	f.Valid = true

	return nil
}

// SummaryRow is one line of the persisted no-filter summary table.
type SummaryRow struct {
	Intron        string  `csv:"intron"`
	Condition     string  `csv:"condition"`
	MeanRetention float64 `csv:"mean_retention"`
	VarRetention  float64 `csv:"var_retention"`
	PValue        NAFloat `csv:"pvalue"`
	QValue        NAFloat `csv:"qvalue"`
	Gene          string  `csv:"gene"`
	Extension     string  `csv:"intron_extension"`
}

// Summary collapses reconciled records into the no-filter summary table: one
// row per unique (intron, condition), sorted by extended intron identifier
// and then by maturation order. Duplicate rows for the same pair, which
// arise when the reconciled input still carries one row per sample, are
// dropped.
func Summary(records []Record) []SummaryRow {
	type key struct {
		intron    string
		condition retention.Condition
	}

	deduped := make([]Record, 0, len(records))
	seen := make(map[key]struct{}, len(records))
	for _, rec := range records {
		k := key{intron: rec.Intron, condition: rec.Condition}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, rec)
	}

	Sort(deduped)

	out := make([]SummaryRow, 0, len(deduped))
	for _, rec := range deduped {
		out = append(out, SummaryRow{
			Intron:        rec.Intron,
			Condition:     string(rec.Condition),
			MeanRetention: rec.MeanRetention,
			VarRetention:  rec.VarRetention,
			PValue:        NAFloat{rec.PValue},
			QValue:        NAFloat{rec.QValue},
			Gene:          rec.Gene,
			Extension:     rec.Extension,
		})
	}

	return out
}

// WriteSummary writes the summary rows as a tab-delimited table.
func WriteSummary(w io.Writer, rows []SummaryRow) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(cw)); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadSummary reads a tab-delimited summary table written by WriteSummary.
func ReadSummary(r io.Reader) ([]SummaryRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = '\t'

	var rows []SummaryRow
	if err := gocsv.UnmarshalCSV(cr, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	return rows, nil
}
