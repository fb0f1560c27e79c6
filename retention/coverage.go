package retention

import (
	"fmt"

	"gopkg.in/guregu/null.v3"
)

// CoverageKey addresses one intron in one sample, matching the keying of
// Dataset records.
type CoverageKey struct {
	Intron string
	Sample string
}

// CoverageSummary holds the number of zero-coverage positions per intron per
// sample, computed externally from the alignments.
type CoverageSummary map[CoverageKey]int

// MergeError reports a record with no matching coverage entry. The retention
// dataset and the coverage summary must be derived from the same sample
// universe; a missing key means they were not.
type MergeError struct {
	Intron string
	Sample string
}

func (e MergeError) Error() string {
	return fmt.Sprintf("coverage merge: no zero-coverage entry for intron %q in sample %q", e.Intron, e.Sample)
}

// MergeCoverage attaches zero-coverage statistics to every record and
// returns the enriched dataset. No rows are added or removed. Every record
// must have a coverage entry; the first record without one aborts the merge
// with a MergeError.
func (d *Dataset) MergeCoverage(cov CoverageSummary) (*Dataset, error) {
	merged := make([]Record, 0, len(d.Records))

	for _, rec := range d.Records {
		n, ok := cov[CoverageKey{Intron: rec.Intron, Sample: rec.Sample}]
		if !ok {
			return nil, MergeError{Intron: rec.Intron, Sample: rec.Sample}
		}

		rec.ZeroCoverage = null.IntFrom(int64(n))
		merged = append(merged, rec)
	}

	return d.derive(merged), nil
}
