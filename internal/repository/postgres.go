package repository

import (
	"context"
	"errors"
	"fmt"

	"address-verification-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/paulmach/orb/encoding/wkt"
)

// Schema creates the locations table used by the API and the importer.
const Schema = `
	CREATE EXTENSION IF NOT EXISTS postgis;

	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		street1 VARCHAR(255) NOT NULL DEFAULT '',
		street2 VARCHAR(255) NOT NULL DEFAULT '',
		city VARCHAR(255) NOT NULL DEFAULT '',
		state VARCHAR(255) NOT NULL DEFAULT '',
		postal_code VARCHAR(50) NOT NULL DEFAULT '',
		geom GEOGRAPHY(POINT, 4326),
		standardize_attempted_service_type VARCHAR(50) NOT NULL DEFAULT '',
		standardize_attempted_at TIMESTAMPTZ,
		standardize_attempted_result VARCHAR(200) NOT NULL DEFAULT '',
		standardized_at TIMESTAMPTZ,
		geocode_attempted_service_type VARCHAR(50) NOT NULL DEFAULT '',
		geocode_attempted_at TIMESTAMPTZ,
		geocoded_at TIMESTAMPTZ
	);
	CREATE INDEX IF NOT EXISTS locations_geom_idx ON locations USING GIST (geom);
`

const selectLocation = `
	SELECT
		id,
		street1,
		street2,
		city,
		state,
		postal_code,
		ST_Y(geom::geometry) AS latitude,
		ST_X(geom::geometry) AS longitude,
		standardize_attempted_service_type,
		standardize_attempted_at,
		standardize_attempted_result,
		standardized_at,
		geocode_attempted_service_type,
		geocode_attempted_at,
		geocoded_at
	FROM locations
`

const insertLocation = `
	INSERT INTO locations (street1, street2, city, state, postal_code, geom)
	VALUES ($1, $2, $3, $4, $5, ST_GeogFromText($6))
	RETURNING id
`

// Repository implements location persistence on PostgreSQL with PostGIS.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// GetLocation loads a location by id.
func (r *Repository) GetLocation(ctx context.Context, id int64) (*models.Location, error) {
	var loc models.Location
	err := r.db.QueryRow(ctx, selectLocation+" WHERE id = $1", id).Scan(
		&loc.ID,
		&loc.Street1,
		&loc.Street2,
		&loc.City,
		&loc.State,
		&loc.PostalCode,
		&loc.Latitude,
		&loc.Longitude,
		&loc.StandardizeAttemptedServiceType,
		&loc.StandardizeAttemptedAt,
		&loc.StandardizeAttemptedResult,
		&loc.StandardizedAt,
		&loc.GeocodeAttemptedServiceType,
		&loc.GeocodeAttemptedAt,
		&loc.GeocodedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrLocationNotFound
		}
		return nil, fmt.Errorf("repository: failed to load location %d: %w", id, err)
	}

	return &loc, nil
}

// CreateLocation inserts loc and sets its id.
func (r *Repository) CreateLocation(ctx context.Context, loc *models.Location) error {
	err := r.db.QueryRow(ctx, insertLocation,
		loc.Street1, loc.Street2, loc.City, loc.State, loc.PostalCode, GeomText(loc),
	).Scan(&loc.ID)
	if err != nil {
		return fmt.Errorf("repository: failed to insert location: %w", err)
	}

	return nil
}

// CreateLocations inserts locs in one batch and sets their ids.
func (r *Repository) CreateLocations(ctx context.Context, locs []*models.Location) error {
	batch := &pgx.Batch{}
	for _, loc := range locs {
		batch.Queue(insertLocation, loc.Street1, loc.Street2, loc.City, loc.State, loc.PostalCode, GeomText(loc))
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for i, loc := range locs {
		if err := results.QueryRow().Scan(&loc.ID); err != nil {
			return fmt.Errorf("repository: failed to insert location %d of %d: %w", i+1, len(locs), err)
		}
	}

	return nil
}

// CountLocations returns the number of stored locations.
func (r *Repository) CountLocations(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM locations").Scan(&count); err != nil {
		return 0, fmt.Errorf("repository: failed to count locations: %w", err)
	}
	return count, nil
}

// EnsureSchema creates the locations table if it does not exist.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("repository: failed to create schema: %w", err)
	}
	return nil
}

// UpdateLocation writes every field of loc back to its row.
func (r *Repository) UpdateLocation(ctx context.Context, loc *models.Location) error {
	sql := `
		UPDATE locations SET
			street1 = $2,
			street2 = $3,
			city = $4,
			state = $5,
			postal_code = $6,
			geom = ST_GeogFromText($7),
			standardize_attempted_service_type = $8,
			standardize_attempted_at = $9,
			standardize_attempted_result = $10,
			standardized_at = $11,
			geocode_attempted_service_type = $12,
			geocode_attempted_at = $13,
			geocoded_at = $14
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, sql,
		loc.ID,
		loc.Street1,
		loc.Street2,
		loc.City,
		loc.State,
		loc.PostalCode,
		GeomText(loc),
		loc.StandardizeAttemptedServiceType,
		loc.StandardizeAttemptedAt,
		loc.StandardizeAttemptedResult,
		loc.StandardizedAt,
		loc.GeocodeAttemptedServiceType,
		loc.GeocodeAttemptedAt,
		loc.GeocodedAt,
	)
	if err != nil {
		return fmt.Errorf("repository: failed to update location %d: %w", loc.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrLocationNotFound
	}

	return nil
}

// GeomText renders the location's position as EWKT for PostGIS, or nil (SQL NULL) when it has none.
func GeomText(loc *models.Location) *string {
	p, ok := loc.Point()
	if !ok {
		return nil
	}
	s := "SRID=4326;" + wkt.MarshalString(p)
	return &s
}
