package retention

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"

	"github.com/erythrolab/intronret"
)

// Sample identifies one quantified sample and the files describing it. The
// abundance path is required; the unique-counts path may be empty, in which
// case unique-read counts default to zero.
type Sample struct {
	Name        string
	Condition   Condition
	Abundance   string
	ZeroCov     string
	UniqueReads string
}

// abundanceRow mirrors one line of a quantifier abundance table.
type abundanceRow struct {
	TargetID  string  `csv:"target_id"`
	Length    int     `csv:"length"`
	EffLength float64 `csv:"eff_length"`
	EstCounts float64 `csv:"est_counts"`
	TPM       float64 `csv:"tpm"`
}

// mappingRow ties one intron to one transcript compatible with its spliced
// form. An intron appears once per compatible transcript.
type mappingRow struct {
	Intron     string `csv:"intron"`
	Transcript string `csv:"transcript"`
	Gene       string `csv:"gene"`
	Extension  string `csv:"intron_extension"`
}

type uniqueRow struct {
	Intron string `csv:"intron"`
	Unique int    `csv:"unique_count"`
}

type zeroCovRow struct {
	Intron        string `csv:"intron"`
	ZeroPositions int    `csv:"zero_positions"`
}

// BuildDataset reads the intron-to-transcript mapping table and each
// sample's abundance table, and assembles the per-intron-per-sample
// retention dataset. The retention ratio for an intron in a sample is the
// intron target's TPM divided by the summed TPM of the intron target and the
// transcripts it can splice into. Introns absent from a sample's abundance
// table produce no record for that sample. Malformed or missing files are
// fatal.
func BuildDataset(mappingPath string, samples []Sample) (*Dataset, error) {
	mapping, err := readMapping(mappingPath)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		SampleConditions: make(map[string]Condition),
		Genes:            make(map[string]GeneInfo),
	}

	transcripts := make(map[string][]string)
	introns := make([]string, 0)
	for _, m := range mapping {
		if _, seen := transcripts[m.Intron]; !seen {
			introns = append(introns, m.Intron)
		}
		transcripts[m.Intron] = append(transcripts[m.Intron], m.Transcript)
		ds.Genes[m.Intron] = GeneInfo{Gene: m.Gene, Extension: m.Extension}
	}

	for _, sample := range samples {
		if sample.Condition.Ord() < 0 {
			return nil, pfx.Err(fmt.Errorf("sample %q has unknown condition %q", sample.Name, sample.Condition))
		}
		ds.SampleConditions[sample.Name] = sample.Condition

		abundance, err := readAbundance(sample.Abundance)
		if err != nil {
			return nil, err
		}

		unique, err := readUniqueCounts(sample.UniqueReads)
		if err != nil {
			return nil, err
		}

		for _, intron := range introns {
			txs := transcripts[intron]
			intronTarget, ok := abundance[intron]
			if !ok {
				continue
			}

			spliced := 0.0
			for _, tx := range txs {
				spliced += abundance[tx].TPM
			}

			ratio := 0.0
			if denom := intronTarget.TPM + spliced; denom > 0 {
				ratio = intronTarget.TPM / denom
			}

			ds.Records = append(ds.Records, Record{
				Intron:    intron,
				Sample:    sample.Name,
				Condition: sample.Condition,
				TPM:       intronTarget.TPM,
				Retention: ratio,
				Fragments: intronTarget.EstCounts,
				Unique:    unique[intron],
			})
		}
	}

	return ds, nil
}

// LoadCoverage reads each sample's zero-coverage table into one summary
// keyed the same way the dataset records are.
func LoadCoverage(samples []Sample) (CoverageSummary, error) {
	cov := make(CoverageSummary)

	for _, sample := range samples {
		f, err := intronret.Open(sample.ZeroCov)
		if err != nil {
			return nil, err
		}

		var rows []zeroCovRow
		err = gocsv.UnmarshalCSV(tabReader(f), &rows)
		f.Close()
		if err != nil {
			return nil, pfx.Err(err)
		}

		for _, row := range rows {
			cov[CoverageKey{Intron: row.Intron, Sample: sample.Name}] = row.ZeroPositions
		}
	}

	return cov, nil
}

func readAbundance(path string) (map[string]abundanceRow, error) {
	f, err := intronret.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []abundanceRow
	if err := gocsv.UnmarshalCSV(tabReader(f), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	out := make(map[string]abundanceRow, len(rows))
	for _, row := range rows {
		out[row.TargetID] = row
	}

	return out, nil
}

func readMapping(path string) ([]mappingRow, error) {
	f, err := intronret.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Mapping tables circulate both comma- and tab-delimited.
	delim := intronret.DetermineDelimiter(f)
	if _, err := f.Seek(0, 0); err != nil {
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(f)
	r.Comma = delim

	var rows []mappingRow
	if err := gocsv.UnmarshalCSV(r, &rows); err != nil {
		return nil, pfx.Err(err)
	}

	if len(rows) == 0 {
		return nil, pfx.Err(fmt.Errorf("mapping table %s contains no rows", path))
	}

	return rows, nil
}

func readUniqueCounts(path string) (map[string]int, error) {
	out := make(map[string]int)
	if path == "" {
		return out, nil
	}

	f, err := intronret.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var rows []uniqueRow
	if err := gocsv.UnmarshalCSV(tabReader(f), &rows); err != nil {
		return nil, pfx.Err(err)
	}

	for _, row := range rows {
		out[row.Intron] = row.Unique
	}

	return out, nil
}

func tabReader(f io.Reader) gocsv.CSVReader {
	r := csv.NewReader(f)
	r.Comma = '\t'

	return r
}
