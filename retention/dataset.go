package retention

import (
	"gopkg.in/guregu/null.v3"
)

// Record is one observation of one intron in one sample.
type Record struct {
	Intron    string
	Sample    string
	Condition Condition

	// TPM is the normalized abundance of the intron target in this sample.
	TPM float64

	// Retention is the fraction of transcripts retaining this intron,
	// in [0, 1].
	Retention float64

	// Fragments is the estimated count of fragments supporting the
	// intron measurement. Quantifiers emit fractional counts.
	Fragments float64

	// Unique is the number of uniquely mapping reads for the intron.
	Unique int

	// ZeroCoverage is the number of zero-coverage positions within the
	// intron for this sample. Invalid until coverage has been merged.
	ZeroCoverage null.Int
}

// GeneInfo ties an intron back to its gene and to the canonical extended
// intron identifier used in persisted output.
type GeneInfo struct {
	Gene      string
	Extension string
}

// Dataset is the per-intron-per-sample retention table plus its metadata:
// which condition each sample belongs to, and which gene each intron belongs
// to. (intron, sample) pairs are unique within Records.
//
// Filtering and merging never mutate a Dataset in place: each step returns a
// new Dataset holding freshly copied records. The metadata maps are built
// once and treated as read-only thereafter, so stages may share them.
type Dataset struct {
	Records          []Record
	SampleConditions map[string]Condition
	Genes            map[string]GeneInfo
}

// derive makes a Dataset sharing this one's metadata but holding its own
// record slice.
func (d *Dataset) derive(records []Record) *Dataset {
	return &Dataset{
		Records:          records,
		SampleConditions: d.SampleConditions,
		Genes:            d.Genes,
	}
}

// Introns returns the distinct intron identifiers present in the dataset, in
// first-seen order.
func (d *Dataset) Introns() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)

	for _, rec := range d.Records {
		if _, ok := seen[rec.Intron]; ok {
			continue
		}
		seen[rec.Intron] = struct{}{}
		out = append(out, rec.Intron)
	}

	return out
}

// Gene looks up gene metadata for an intron. Unknown introns yield the zero
// GeneInfo, which renders as empty columns downstream.
func (d *Dataset) Gene(intron string) GeneInfo {
	return d.Genes[intron]
}
