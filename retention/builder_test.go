package retention

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

const testMapping = `intron,transcript,gene,intron_extension
GENE1.I1,TX1,GENE1,chr1:100-200
GENE1.I1,TX2,GENE1,chr1:100-200
GENE2.I1,TX3,GENE2,chr2:50-80
`

const testAbundance = `target_id	length	eff_length	est_counts	tpm
GENE1.I1	100	80	12.5	2
GENE2.I1	90	70	8	3
TX1	1000	900	100	4
TX2	1200	1100	110	4
TX3	800	700	50	3
`

func TestBuildDataset(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.csv", testMapping)
	abundance := writeFile(t, dir, "abundance.tsv", testAbundance)
	unique := writeFile(t, dir, "unique.tsv", "intron\tunique_count\nGENE1.I1\t7\n")

	ds, err := BuildDataset(mapping, []Sample{
		{Name: "s1", Condition: Pro, Abundance: abundance, UniqueReads: unique},
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(ds.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(ds.Records))
	}

	first := ds.Records[0]
	if first.Intron != "GENE1.I1" || first.Sample != "s1" || first.Condition != Pro {
		t.Fatalf("Unexpected first record: %+v", first)
	}

	// intron TPM 2 against spliced TPM 4+4.
	if expected := 2.0 / 10.0; math.Abs(first.Retention-expected) > 1e-12 {
		t.Fatalf("Retention %v, expected %v", first.Retention, expected)
	}
	if first.Fragments != 12.5 || first.TPM != 2 || first.Unique != 7 {
		t.Fatalf("Unexpected abundance fields: %+v", first)
	}

	second := ds.Records[1]
	if expected := 3.0 / 6.0; math.Abs(second.Retention-expected) > 1e-12 {
		t.Fatalf("Retention %v, expected %v", second.Retention, expected)
	}
	if second.Unique != 0 {
		t.Fatalf("Unique count without a table entry should be 0, got %d", second.Unique)
	}

	if info := ds.Gene("GENE1.I1"); info.Gene != "GENE1" || info.Extension != "chr1:100-200" {
		t.Fatalf("Unexpected gene info: %+v", info)
	}
}

func TestBuildDatasetRetentionBounds(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.csv", testMapping)

	// Intron with abundance but fully unspliced transcripts.
	abundance := writeFile(t, dir, "abundance.tsv",
		"target_id\tlength\teff_length\test_counts\ttpm\nGENE1.I1\t100\t80\t5\t9\nTX1\t1000\t900\t0\t0\nTX2\t1200\t1100\t0\t0\n")

	ds, err := BuildDataset(mapping, []Sample{{Name: "s1", Condition: Ortho, Abundance: abundance}})
	if err != nil {
		t.Fatal(err)
	}

	for _, rec := range ds.Records {
		if rec.Retention < 0 || rec.Retention > 1 {
			t.Fatalf("Retention out of bounds: %+v", rec)
		}
	}

	// GENE2.I1 is absent from the abundance table and must yield no row.
	if len(ds.Records) != 1 || ds.Records[0].Retention != 1.0 {
		t.Fatalf("Unexpected records: %+v", ds.Records)
	}
}

func TestBuildDatasetMissingAbundance(t *testing.T) {
	dir := t.TempDir()
	mapping := writeFile(t, dir, "mapping.csv", testMapping)

	_, err := BuildDataset(mapping, []Sample{
		{Name: "s1", Condition: Pro, Abundance: filepath.Join(dir, "nope.tsv")},
	})
	if err == nil {
		t.Fatal("Expected an error for the missing abundance file")
	}
}

func TestLoadCoverage(t *testing.T) {
	dir := t.TempDir()
	covPath := writeFile(t, dir, "zero.tsv", "intron\tzero_positions\nGENE1.I1\t4\nGENE2.I1\t0\n")

	cov, err := LoadCoverage([]Sample{{Name: "s1", Condition: Pro, ZeroCov: covPath}})
	if err != nil {
		t.Fatal(err)
	}

	if n := cov[CoverageKey{Intron: "GENE1.I1", Sample: "s1"}]; n != 4 {
		t.Fatalf("Expected 4 zero-coverage positions, got %d", n)
	}
	if n := cov[CoverageKey{Intron: "GENE2.I1", Sample: "s1"}]; n != 0 {
		t.Fatalf("Expected 0 zero-coverage positions, got %d", n)
	}
}
