package store

import (
	"context"

	"github.com/hbsc-labs/insight/internal/survey"
)

// Filter narrows a record listing. Nil pointer fields match everything.
type Filter struct {
	Year           *int
	Country        string // canonical spelling
	Sex            *survey.Sex
	AgeMin         *int
	AgeMax         *int
	OverweightOnly bool
	Limit          int
}

type YearCount struct {
	Year  int `json:"year"`
	Count int `json:"count"`
}

type DatasetStats struct {
	TotalRecords int         `json:"total_records"`
	Countries    int         `json:"countries"`
	ByYear       []YearCount `json:"by_year"`
}

// Store is a read-only view of the survey dataset. Ingestion happens out of
// process (scripts/import_csv.go); the service never writes.
type Store interface {
	ListRecords(ctx context.Context, filter Filter) ([]survey.Record, error)
	Years(ctx context.Context) ([]int, error)
	Countries(ctx context.Context) ([]string, error)
	DatasetStats(ctx context.Context) (*DatasetStats, error)
	Close() error
}
