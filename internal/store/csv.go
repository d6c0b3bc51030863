package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/hbsc-labs/insight/internal/survey"
)

// CSVStore keeps the whole dataset in memory, loaded once from the HBSC
// export. Used for local runs without Postgres; any caching of the table
// belongs here, never in riskcore.
type CSVStore struct {
	records []survey.Record
}

func NewCSVStore(path string) (*CSVStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return &CSVStore{records: records}, nil
}

func (s *CSVStore) Close() error { return nil }

func (s *CSVStore) ListRecords(_ context.Context, filter Filter) ([]survey.Record, error) {
	var out []survey.Record
	for _, r := range s.records {
		if filter.Year != nil && r.Year != *filter.Year {
			continue
		}
		if filter.Country != "" && r.Country != filter.Country {
			continue
		}
		if filter.Sex != nil && r.Sex != *filter.Sex {
			continue
		}
		if filter.AgeMin != nil && r.Age < *filter.AgeMin {
			continue
		}
		if filter.AgeMax != nil && r.Age > *filter.AgeMax {
			continue
		}
		if filter.OverweightOnly && r.Overweight != 1 {
			continue
		}
		out = append(out, r)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *CSVStore) Years(_ context.Context) ([]int, error) {
	seen := map[int]bool{}
	for _, r := range s.records {
		seen[r.Year] = true
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (s *CSVStore) Countries(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	for _, r := range s.records {
		seen[r.Country] = true
	}
	countries := make([]string, 0, len(seen))
	for c := range seen {
		countries = append(countries, c)
	}
	sort.Strings(countries)
	return countries, nil
}

func (s *CSVStore) DatasetStats(_ context.Context) (*DatasetStats, error) {
	byYear := map[int]int{}
	countries := map[string]bool{}
	for _, r := range s.records {
		byYear[r.Year]++
		countries[r.Country] = true
	}
	stats := &DatasetStats{TotalRecords: len(s.records), Countries: len(countries)}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		stats.ByYear = append(stats.ByYear, YearCount{Year: y, Count: byYear[y]})
	}
	return stats, nil
}

// ParseCSV reads a header-keyed HBSC export. The five fixed columns are
// required; every other column is treated as a factor. Country names are
// canonicalized on the way in. Unparseable or empty factor cells become
// missing answers; sentinel values are kept as-is and filtered at read time
// by survey.Record.
func ParseCSV(r io.Reader) ([]survey.Record, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"COUNTRY_NAME", "YEAR", "SEX", "AGE", "OVERWEIGHT"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %s", required)
		}
	}

	fixed := map[string]bool{"COUNTRY_NAME": true, "YEAR": true, "SEX": true, "AGE": true, "OVERWEIGHT": true}
	var records []survey.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+1, err)
		}
		line++

		year, err := cellInt(row[col["YEAR"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: YEAR: %w", line, err)
		}
		sex, err := cellInt(row[col["SEX"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: SEX: %w", line, err)
		}
		age, err := cellInt(row[col["AGE"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: AGE: %w", line, err)
		}
		overweight, err := cellInt(row[col["OVERWEIGHT"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: OVERWEIGHT: %w", line, err)
		}

		rec := survey.Record{
			Country:    survey.CanonicalCountry(row[col["COUNTRY_NAME"]]),
			Year:       year,
			Sex:        survey.Sex(sex),
			Age:        age,
			Overweight: overweight,
			Factors:    make(map[string]int),
		}
		for name, i := range col {
			if fixed[name] || i >= len(row) {
				continue
			}
			v, err := cellInt(row[i])
			if err != nil {
				continue // unanswered
			}
			rec.Factors[name] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// cellInt parses an integer cell, tolerating the float formatting pandas
// exports produce ("3.0").
func cellInt(cell string) (int, error) {
	if cell == "" {
		return 0, fmt.Errorf("empty cell")
	}
	if n, err := strconv.Atoi(cell); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}
