package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"address-verification-api/internal/config"
	"address-verification-api/internal/models"
	"address-verification-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	if err := run(context.Background(), *file, "configs"); err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
}

// run imports the CSV at path into the database named by the config in configPath.
func run(ctx context.Context, path, configPath string) error {
	log.Info().Str("file", path).Msg("starting import")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot open file: %w", err)
	}
	defer f.Close()

	records, err := parseCSV(f)
	if err != nil {
		return fmt.Errorf("cannot parse CSV: %w", err)
	}

	log.Info().Int("records", len(records)).Msg("parsed records")

	// Load config
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("cannot load config: %w", err)
	}

	if cfg.DBSource == "" {
		return fmt.Errorf("DB_SOURCE is required")
	}

	// Connect to DB
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("cannot connect to db: %w", err)
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)

	before, err := importLocations(ctx, repo, records)
	if err != nil {
		return err
	}

	// Verify data
	count, err := repo.CountLocations(ctx)
	if err != nil {
		return fmt.Errorf("cannot verify import: %w", err)
	}
	if count != before+len(records) {
		return fmt.Errorf("record count mismatch: expected %d, got %d", before+len(records), count)
	}

	log.Info().Int("records", len(records)).Msg("import complete")
	return nil
}

// locationStore is the part of the repository the importer needs.
type locationStore interface {
	EnsureSchema(ctx context.Context) error
	CountLocations(ctx context.Context) (int, error)
	CreateLocations(ctx context.Context, locs []*models.Location) error
}

// importLocations creates the schema if needed and inserts records. It returns the row count before the insert.
func importLocations(ctx context.Context, store locationStore, records []*models.Location) (int, error) {
	if err := store.EnsureSchema(ctx); err != nil {
		return 0, err
	}

	before, err := store.CountLocations(ctx)
	if err != nil {
		return 0, err
	}

	if err := store.CreateLocations(ctx, records); err != nil {
		return 0, err
	}

	return before, nil
}

// parseCSV reads a header row followed by street1,street2,city,state,postal_code[,latitude,longitude] records.
func parseCSV(r io.Reader) ([]*models.Location, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var records []*models.Location
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		if len(record) != 5 && len(record) != 7 {
			return nil, fmt.Errorf("line %d: invalid record length: %d, expected 5 or 7 columns", line, len(record))
		}

		loc := &models.Location{
			Street1:    strings.TrimSpace(record[0]),
			Street2:    strings.TrimSpace(record[1]),
			City:       strings.TrimSpace(record[2]),
			State:      strings.TrimSpace(record[3]),
			PostalCode: strings.TrimSpace(record[4]),
		}

		if len(record) == 7 && (strings.TrimSpace(record[5]) != "" || strings.TrimSpace(record[6]) != "") {
			lat, err := strconv.ParseFloat(strings.TrimSpace(record[5]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid latitude: %s", line, record[5])
			}

			lon, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid longitude: %s", line, record[6])
			}

			if !loc.SetPointFromLatLong(lat, lon) {
				return nil, fmt.Errorf("line %d: coordinates out of range: %s, %s", line, record[5], record[6])
			}
		}

		records = append(records, loc)
	}

	return records, nil
}
