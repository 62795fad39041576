package bootstrap

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/jonesrussell/content-manager/internal/config"
	"github.com/jonesrussell/content-manager/internal/logger"
)

// SetupDatabase opens the Postgres pool. A nil return with no error means
// the database is unreachable; the service starts anyway and every request
// is served from the local cache until a restart finds the database up.
func SetupDatabase(cfg *config.Config, log logger.Logger) (*sql.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.DBName,
		cfg.Database.SSLMode,
	)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if pingErr := db.Ping(); pingErr != nil {
		log.Warn("Database unreachable, starting with local cache only",
			logger.String("host", cfg.Database.Host),
			logger.Error(pingErr),
		)
		_ = db.Close()
		return nil, nil
	}

	log.Info("Database connected",
		logger.String("host", cfg.Database.Host),
		logger.String("dbname", cfg.Database.DBName),
	)
	return db, nil
}
