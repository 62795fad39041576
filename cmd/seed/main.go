// Command seed creates the content tables and loads the bundled sample data
// into Postgres. Run it once against a fresh database; the service logs a
// pointer here whenever it sees an undefined-table error.
// Usage: go run cmd/seed/main.go -config config.yml
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	_ "github.com/lib/pq"

	"github.com/jonesrussell/content-manager/internal/config"
	"github.com/jonesrussell/content-manager/internal/models"
	"github.com/jonesrussell/content-manager/internal/store/seed"
)

const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_articles_slug ON articles (slug);

CREATE TABLE IF NOT EXISTS portfolio (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_portfolio_slug ON portfolio (slug);

CREATE TABLE IF NOT EXISTS credentials (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_credentials_slug ON credentials (slug);

CREATE TABLE IF NOT EXISTS services (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_services_slug ON services (slug);

CREATE TABLE IF NOT EXISTS profile (
	id         TEXT PRIMARY KEY,
	slug       TEXT NOT NULL,
	data       JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`

const seedTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", config.GetConfigPath("config.yml"), "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User,
		cfg.Database.Password, cfg.Database.DBName, cfg.Database.SSLMode,
	)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("create tables: %v", err)
	}
	log.Println("content tables ready")

	collections := []string{"articles", "portfolio", "credentials", "services", "profile"}
	for _, collection := range collections {
		inserted, err := seedCollection(ctx, db, collection)
		if err != nil {
			log.Fatalf("seed %s: %v", collection, err)
		}
		log.Printf("%s: %d records", collection, inserted)
	}
}

// seedCollection inserts the bundled records for one collection, skipping
// ids that already exist so the command stays safe to re-run.
func seedCollection(ctx context.Context, db *sql.DB, collection string) (int, error) {
	data := seed.Data(collection)
	if data == nil {
		return 0, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("decode sample data: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, slug, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO NOTHING
	`, collection)

	inserted := 0
	for _, raw := range records {
		var meta models.Meta
		if err := json.Unmarshal(raw, &meta); err != nil {
			return inserted, fmt.Errorf("decode record meta: %w", err)
		}

		result, err := db.ExecContext(ctx, query,
			meta.ID, meta.Slug, []byte(raw), meta.CreatedAt, meta.UpdatedAt,
		)
		if err != nil {
			return inserted, fmt.Errorf("insert %s: %w", meta.ID, err)
		}
		if affected, _ := result.RowsAffected(); affected > 0 {
			inserted++
		}
	}
	return inserted, nil
}
