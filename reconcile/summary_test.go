package reconcile

import (
	"bytes"
	"strings"
	"testing"

	"gopkg.in/guregu/null.v3"

	"github.com/erythrolab/intronret/retention"
)

func TestSummaryDedupeAndSort(t *testing.T) {
	records := []Record{
		// Same pair twice, as when the join still carries one row per
		// sample; the collapse to one row is mandatory.
		{Intron: "i2", Condition: retention.Pro, MeanRetention: 0.3, Extension: "chr2:5-9", Gene: "G2"},
		{Intron: "i2", Condition: retention.Pro, MeanRetention: 0.3, Extension: "chr2:5-9", Gene: "G2"},
		{Intron: "i2", Condition: retention.EBaso, MeanRetention: 0.4, Extension: "chr2:5-9", Gene: "G2"},
		{Intron: "i1", Condition: retention.Ortho, MeanRetention: 0.2, Extension: "chr1:1-4", Gene: "G1"},
		{Intron: "i1", Condition: retention.Pro, MeanRetention: 0.1, Extension: "chr1:1-4", Gene: "G1"},
	}

	rows := Summary(records)

	if len(rows) != 4 {
		t.Fatalf("Expected 4 deduplicated rows, got %d", len(rows))
	}

	// chr1 before chr2; within an intron, maturation order.
	expected := []struct {
		extension string
		condition string
	}{
		{"chr1:1-4", "pro"},
		{"chr1:1-4", "ortho"},
		{"chr2:5-9", "pro"},
		{"chr2:5-9", "ebaso"},
	}
	for i, e := range expected {
		if rows[i].Extension != e.extension || rows[i].Condition != e.condition {
			t.Fatalf("Row %d is (%s, %s), expected (%s, %s)", i, rows[i].Extension, rows[i].Condition, e.extension, e.condition)
		}
	}
}

func TestSummaryRoundTrip(t *testing.T) {
	rows := []SummaryRow{
		{Intron: "i1", Condition: "pro", MeanRetention: 0.25, VarRetention: 0.0025,
			PValue: NAFloat{null.FloatFrom(0.001)}, QValue: NAFloat{null.FloatFrom(0.009)},
			Gene: "G1", Extension: "chr1:1-4"},
		{Intron: "i1", Condition: "ortho", MeanRetention: 0.5, VarRetention: 0,
			Gene: "G1", Extension: "chr1:1-4"},
	}

	var buf bytes.Buffer
	if err := WriteSummary(&buf, rows); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "intron\tcondition\tmean_retention\tvar_retention\tpvalue\tqvalue\tgene\tintron_extension\n") {
		t.Fatalf("Unexpected header: %q", strings.SplitN(out, "\n", 2)[0])
	}
	if !strings.Contains(out, "\tNA\tNA\t") {
		t.Fatalf("Missing p/q must render as NA:\n%s", out)
	}

	parsed, err := ReadSummary(&buf)
	if err != nil {
		t.Fatal(err)
	}

	if len(parsed) != 2 {
		t.Fatalf("Expected 2 rows back, got %d", len(parsed))
	}
	if !parsed[0].PValue.Valid || parsed[0].PValue.Float64 != 0.001 {
		t.Fatalf("p-value did not round-trip: %+v", parsed[0].PValue)
	}
	if parsed[1].PValue.Valid || parsed[1].QValue.Valid {
		t.Fatalf("NA did not round-trip to missing: %+v", parsed[1])
	}
	if parsed[1].MeanRetention != 0.5 {
		t.Fatalf("Mean did not round-trip: %v", parsed[1].MeanRetention)
	}
}
