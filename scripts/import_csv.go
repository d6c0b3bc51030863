// import_csv.go — standalone script to load an HBSC CSV export into the
// survey_records table.
//
// Usage:
//
//	go run scripts/import_csv.go -csv data.csv -db postgres://localhost/insight -truncate
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"

	"github.com/hbsc-labs/insight/internal/events"
	"github.com/hbsc-labs/insight/internal/store"
)

const createTable = `
CREATE TABLE IF NOT EXISTS survey_records (
	id           BIGSERIAL PRIMARY KEY,
	country_name TEXT NOT NULL,
	year         INT NOT NULL,
	sex          INT NOT NULL,
	age          INT NOT NULL,
	overweight   INT NOT NULL,
	factors      JSONB
);
CREATE INDEX IF NOT EXISTS idx_survey_records_year ON survey_records (year);
CREATE INDEX IF NOT EXISTS idx_survey_records_country ON survey_records (country_name);
`

func main() {
	csvPath := flag.String("csv", "data.csv", "path to the HBSC CSV export")
	dbURL := flag.String("db", os.Getenv("INSIGHT_DATABASE_URL"), "Postgres connection URL")
	natsURL := flag.String("nats", "", "NATS URL to announce the import on (optional)")
	truncate := flag.Bool("truncate", false, "truncate survey_records before importing")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing")
	flag.Parse()

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open %s: %v", *csvPath, err)
	}
	records, err := store.ParseCSV(f)
	f.Close()
	if err != nil {
		log.Fatalf("parse %s: %v", *csvPath, err)
	}
	log.Printf("parsed %d records from %s", len(records), *csvPath)

	if *dryRun {
		years := map[int]int{}
		countries := map[string]bool{}
		for _, r := range records {
			years[r.Year]++
			countries[r.Country] = true
		}
		for year, count := range years {
			fmt.Printf("%d: %d records\n", year, count)
		}
		fmt.Printf("%d countries\n", len(countries))
		return
	}

	if *dbURL == "" {
		log.Fatal("no database URL: pass -db or set INSIGHT_DATABASE_URL")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	if _, err := pool.Exec(ctx, createTable); err != nil {
		log.Fatalf("create table: %v", err)
	}
	if *truncate {
		if _, err := pool.Exec(ctx, `TRUNCATE survey_records`); err != nil {
			log.Fatalf("truncate: %v", err)
		}
	}

	rows := make([][]interface{}, 0, len(records))
	for _, r := range records {
		factors, err := json.Marshal(r.Factors)
		if err != nil {
			log.Fatalf("encode factors: %v", err)
		}
		rows = append(rows, []interface{}{r.Country, r.Year, int(r.Sex), r.Age, r.Overweight, factors})
	}

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"survey_records"},
		[]string{"country_name", "year", "sex", "age", "overweight", "factors"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		log.Fatalf("copy: %v", err)
	}
	log.Printf("imported %d records", copied)

	if *natsURL != "" {
		announce(*natsURL, *csvPath, int(copied))
	}
}

func announce(url, source string, count int) {
	nc, err := nats.Connect(url)
	if err != nil {
		log.Printf("skip announcement: %v", err)
		return
	}
	defer nc.Close()

	event := events.DatasetImportedEvent{
		Source:    source,
		Records:   count,
		Timestamp: time.Now().UTC(),
	}
	payload, _ := json.Marshal(event)
	if err := nc.Publish(events.SubjectDatasetImported(), payload); err != nil {
		log.Printf("skip announcement: %v", err)
		return
	}
	log.Printf("announced import on %s", events.SubjectDatasetImported())
}
