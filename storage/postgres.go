package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sidnetopia/airbnb-scraper/config"
	"github.com/sidnetopia/airbnb-scraper/models"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg config.Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost,
		cfg.DBPort,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBSSLMode,
	)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &PostgresStore{db: db}
	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer schemaCancel()
	if err := store.ensureSchema(schemaCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// SaveListings upserts every listing keyed on its platform id and returns
// the number saved.
func (s *PostgresStore) SaveListings(ctx context.Context, listings []models.Listing) (int, error) {
	if len(listings) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO listings (
			listing_id, name, city, state, country,
			num_bedroom, num_bathroom, num_bed, total_accomodation,
			host_name, host_id, latitude, longitude, room_type, picture_url,
			amenities, rating_overall, review_count,
			rating_cleanliness, rating_check_in, rating_accuracy,
			rating_communication, rating_location, rating_value
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (listing_id) DO UPDATE
		SET
			name = EXCLUDED.name,
			city = EXCLUDED.city,
			state = EXCLUDED.state,
			country = EXCLUDED.country,
			num_bedroom = EXCLUDED.num_bedroom,
			num_bathroom = EXCLUDED.num_bathroom,
			num_bed = EXCLUDED.num_bed,
			total_accomodation = EXCLUDED.total_accomodation,
			host_name = EXCLUDED.host_name,
			host_id = EXCLUDED.host_id,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			room_type = EXCLUDED.room_type,
			picture_url = EXCLUDED.picture_url,
			amenities = EXCLUDED.amenities,
			rating_overall = EXCLUDED.rating_overall,
			review_count = EXCLUDED.review_count,
			rating_cleanliness = EXCLUDED.rating_cleanliness,
			rating_check_in = EXCLUDED.rating_check_in,
			rating_accuracy = EXCLUDED.rating_accuracy,
			rating_communication = EXCLUDED.rating_communication,
			rating_location = EXCLUDED.rating_location,
			rating_value = EXCLUDED.rating_value,
			updated_at = NOW()`)
	if err != nil {
		return 0, fmt.Errorf("prepare insert statement: %w", err)
	}
	defer stmt.Close()

	total := 0
	for _, listing := range listings {
		amenities, err := json.Marshal(listing.AmenityIDs)
		if err != nil {
			return 0, fmt.Errorf("encode amenities for listing %d: %w", listing.ID, err)
		}

		if _, err = stmt.ExecContext(
			ctx,
			listing.ID,
			listing.Name,
			listing.City,
			listing.State,
			listing.Country,
			listing.NumBedroom,
			listing.NumBathroom,
			listing.NumBed,
			listing.TotalPrice,
			listing.HostName,
			listing.HostID,
			listing.Latitude,
			listing.Longitude,
			listing.RoomType,
			listing.PictureURL,
			string(amenities),
			listing.Rating.Overall,
			listing.Rating.ReviewCount,
			listing.Rating.Cleanliness,
			listing.Rating.CheckIn,
			listing.Rating.Accuracy,
			listing.Rating.Communication,
			listing.Rating.Location,
			listing.Rating.Value,
		); err != nil {
			return 0, fmt.Errorf("insert listing %d: %w", listing.ID, err)
		}
		total++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return total, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS listings (
			id BIGSERIAL PRIMARY KEY,
			listing_id BIGINT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			country TEXT NOT NULL,
			num_bedroom INT NOT NULL DEFAULT 0,
			num_bathroom INT NOT NULL DEFAULT 0,
			num_bed INT NOT NULL DEFAULT 0,
			total_accomodation REAL NOT NULL DEFAULT 0,
			host_name TEXT NOT NULL DEFAULT '',
			host_id BIGINT NOT NULL DEFAULT 0,
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			room_type TEXT NOT NULL DEFAULT '',
			picture_url TEXT NOT NULL DEFAULT '',
			amenities JSONB NOT NULL DEFAULT '[]',
			rating_overall REAL,
			review_count INT,
			rating_cleanliness REAL,
			rating_check_in REAL,
			rating_accuracy REAL,
			rating_communication REAL,
			rating_location REAL,
			rating_value REAL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_listings_city ON listings(city);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
