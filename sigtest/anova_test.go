package sigtest

import (
	"math"
	"testing"

	"github.com/erythrolab/intronret/retention"
)

func dataset(records []retention.Record) *retention.Dataset {
	return &retention.Dataset{Records: records, SampleConditions: map[string]retention.Condition{}, Genes: map[string]retention.GeneInfo{}}
}

func record(intron, sample string, cond retention.Condition, ratio float64) retention.Record {
	return retention.Record{Intron: intron, Sample: sample, Condition: cond, Retention: ratio}
}

func TestANOVASkipsUnderpoweredConditions(t *testing.T) {
	ds := dataset([]retention.Record{
		// pro has a single observation and must never be emitted.
		record("i1", "s1", retention.Pro, 0.5),
		record("i1", "s2", retention.Ortho, 0.1),
		record("i1", "s3", retention.Ortho, 0.2),
		record("i1", "s4", retention.Poly, 0.7),
		record("i1", "s5", retention.Poly, 0.8),
	})

	results, err := ANOVA{}.Test(ds)
	if err != nil {
		t.Fatal(err)
	}

	for _, res := range results {
		if res.Condition == retention.Pro {
			t.Fatalf("Emitted a result for a single-sample condition: %+v", res)
		}
	}

	if len(results) != 2 {
		t.Fatalf("Expected results for ortho and poly only, got %+v", results)
	}
}

func TestANOVASeparatedGroups(t *testing.T) {
	ds := dataset([]retention.Record{
		record("i1", "s1", retention.Pro, 0.10),
		record("i1", "s2", retention.Pro, 0.12),
		record("i1", "s3", retention.Pro, 0.11),
		record("i1", "s4", retention.Ortho, 0.80),
		record("i1", "s5", retention.Ortho, 0.82),
		record("i1", "s6", retention.Ortho, 0.81),
	})

	results, err := ANOVA{}.Test(ds)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	for _, res := range results {
		if res.PValue > 1e-6 {
			t.Fatalf("Widely separated groups should test significant, got p=%v", res.PValue)
		}
		if res.QValue < res.PValue {
			t.Fatalf("q=%v below p=%v", res.QValue, res.PValue)
		}
	}

	var ortho Result
	for _, res := range results {
		if res.Condition == retention.Ortho {
			ortho = res
		}
	}
	if math.Abs(ortho.MeanRetention-0.81) > 1e-12 {
		t.Fatalf("Ortho mean %v, expected 0.81", ortho.MeanRetention)
	}
	if math.Abs(ortho.VarRetention-0.0001) > 1e-12 {
		t.Fatalf("Ortho variance %v, expected 0.0001", ortho.VarRetention)
	}
}

func TestANOVAZeroWithinVariance(t *testing.T) {
	// Identical values within every group leave the F statistic undefined:
	// the intron is inadmissible and nothing is emitted.
	ds := dataset([]retention.Record{
		record("i1", "s1", retention.Pro, 0.3),
		record("i1", "s2", retention.Pro, 0.3),
		record("i1", "s3", retention.Ortho, 0.6),
		record("i1", "s4", retention.Ortho, 0.6),
	})

	results, err := ANOVA{}.Test(ds)
	if err != nil {
		t.Fatal(err)
	}

	if len(results) != 0 {
		t.Fatalf("Expected no results, got %+v", results)
	}
}

func TestANOVAQValueOrder(t *testing.T) {
	ds := dataset([]retention.Record{
		// Strongly separated intron.
		record("i1", "s1", retention.Pro, 0.10),
		record("i1", "s2", retention.Pro, 0.11),
		record("i1", "s3", retention.Ortho, 0.90),
		record("i1", "s4", retention.Ortho, 0.91),
		// Barely separated intron.
		record("i2", "s1", retention.Pro, 0.40),
		record("i2", "s2", retention.Pro, 0.60),
		record("i2", "s3", retention.Ortho, 0.45),
		record("i2", "s4", retention.Ortho, 0.65),
	})

	results, err := ANOVA{}.Test(ds)
	if err != nil {
		t.Fatal(err)
	}

	byIntron := make(map[string]Result)
	for _, res := range results {
		byIntron[res.Intron] = res
	}

	i1, i2 := byIntron["i1"], byIntron["i2"]
	if i1.PValue >= i2.PValue {
		t.Fatalf("Expected i1 more significant than i2: p1=%v p2=%v", i1.PValue, i2.PValue)
	}
	if i1.QValue > i2.QValue {
		t.Fatalf("q-values out of order: q1=%v q2=%v", i1.QValue, i2.QValue)
	}
	if i2.QValue > 1 {
		t.Fatalf("q-value above 1: %v", i2.QValue)
	}
}
