package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hbsc-labs/insight/internal/survey"
)

// PostgresStore serves survey records from the survey_records table, where
// factor answers live in a jsonb column keyed by canonical column name.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const recordColumns = `country_name, year, sex, age, overweight, factors`

func (s *PostgresStore) ListRecords(ctx context.Context, filter Filter) ([]survey.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM survey_records WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Year != nil {
		n++
		query += fmt.Sprintf(" AND year = $%d", n)
		args = append(args, *filter.Year)
	}
	if filter.Country != "" {
		n++
		query += fmt.Sprintf(" AND country_name = $%d", n)
		args = append(args, filter.Country)
	}
	if filter.Sex != nil {
		n++
		query += fmt.Sprintf(" AND sex = $%d", n)
		args = append(args, int(*filter.Sex))
	}
	if filter.AgeMin != nil {
		n++
		query += fmt.Sprintf(" AND age >= $%d", n)
		args = append(args, *filter.AgeMin)
	}
	if filter.AgeMax != nil {
		n++
		query += fmt.Sprintf(" AND age <= $%d", n)
		args = append(args, *filter.AgeMax)
	}
	if filter.OverweightOnly {
		query += " AND overweight = 1"
	}

	if filter.Limit > 0 {
		n++
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, filter.Limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *PostgresStore) Years(ctx context.Context) ([]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT year FROM survey_records ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *PostgresStore) Countries(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT country_name FROM survey_records ORDER BY country_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var countries []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		countries = append(countries, c)
	}
	return countries, rows.Err()
}

func (s *PostgresStore) DatasetStats(ctx context.Context) (*DatasetStats, error) {
	stats := &DatasetStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(DISTINCT country_name) FROM survey_records`,
	).Scan(&stats.TotalRecords, &stats.Countries)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, `
		SELECT year, COUNT(*) FROM survey_records GROUP BY year ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, err
		}
		stats.ByYear = append(stats.ByYear, yc)
	}
	return stats, rows.Err()
}

func scanRecords(rows pgx.Rows) ([]survey.Record, error) {
	var records []survey.Record
	for rows.Next() {
		var r survey.Record
		var sex int
		var factorsJSON []byte
		if err := rows.Scan(&r.Country, &r.Year, &sex, &r.Age, &r.Overweight, &factorsJSON); err != nil {
			return nil, err
		}
		r.Sex = survey.Sex(sex)
		if factorsJSON != nil {
			if err := json.Unmarshal(factorsJSON, &r.Factors); err != nil {
				return nil, fmt.Errorf("decode factors: %w", err)
			}
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
