package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/logger"
	"github.com/jonesrussell/content-manager/internal/models"
)

// undefinedTableCode is the Postgres error code raised when a query names a
// table that does not exist.
const undefinedTableCode = "42P01"

// Postgres is the remote store for one collection. Every collection uses the
// same doc-style schema (id, slug, data, created_at, updated_at); the full
// record is stored as JSON in data, so one generic implementation serves all
// five entity types.
type Postgres[T any, PT models.RecordOf[T]] struct {
	db     *sql.DB
	table  string
	logger logger.Logger
}

// NewPostgres creates the remote store for a collection. The table name
// comes from the collection descriptor, which is a compile-time constant.
func NewPostgres[T any, PT models.RecordOf[T]](db *sql.DB, desc *models.Descriptor[T], log logger.Logger) *Postgres[T, PT] {
	return &Postgres[T, PT]{
		db:     db,
		table:  desc.Collection,
		logger: log,
	}
}

func (s *Postgres[T, PT]) FetchAll(ctx context.Context) ([]T, error) {
	query := fmt.Sprintf(`SELECT data FROM %s ORDER BY created_at DESC`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, s.classify("query "+s.table, err)
	}
	defer rows.Close()

	records := make([]T, 0)
	for rows.Next() {
		var data []byte
		if scanErr := rows.Scan(&data); scanErr != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, scanErr)
		}
		var record T
		if unmarshalErr := json.Unmarshal(data, &record); unmarshalErr != nil {
			return nil, fmt.Errorf("unmarshal %s record: %w", s.table, unmarshalErr)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}

	return records, nil
}

func (s *Postgres[T, PT]) FetchBySlug(ctx context.Context, slug string) (*T, error) {
	// When two records share a slug the first in collection order wins,
	// matching FetchAll's ordering.
	query := fmt.Sprintf(`SELECT data FROM %s WHERE slug = $1 ORDER BY created_at DESC LIMIT 1`, s.table)

	var data []byte
	err := s.db.QueryRowContext(ctx, query, slug).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s slug %q: %w", s.table, slug, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, s.classify("query "+s.table, err)
	}

	var record T
	if unmarshalErr := json.Unmarshal(data, &record); unmarshalErr != nil {
		return nil, fmt.Errorf("unmarshal %s record: %w", s.table, unmarshalErr)
	}
	return &record, nil
}

func (s *Postgres[T, PT]) Insert(ctx context.Context, record *T) error {
	meta := PT(record).RecordMeta()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", s.table, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, slug, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, s.table)

	_, err = s.db.ExecContext(ctx, query,
		meta.ID,
		meta.Slug,
		data,
		meta.CreatedAt,
		meta.UpdatedAt,
	)
	if err != nil {
		return s.classify("insert "+s.table, err)
	}

	return nil
}

func (s *Postgres[T, PT]) Update(ctx context.Context, record *T) error {
	meta := PT(record).RecordMeta()

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal %s record: %w", s.table, err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET slug = $2, data = $3, updated_at = $4
		WHERE id = $1
	`, s.table)

	result, err := s.db.ExecContext(ctx, query,
		meta.ID,
		meta.Slug,
		data,
		meta.UpdatedAt,
	)
	if err != nil {
		return s.classify("update "+s.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s id %q: %w", s.table, meta.ID, apperrors.ErrNotFound)
	}

	return nil
}

func (s *Postgres[T, PT]) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.table)

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return s.classify("delete "+s.table, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%s id %q: %w", s.table, id, apperrors.ErrNotFound)
	}

	return nil
}

// classify separates "the table is missing" from transport failures so the
// resolver can log the condition that calls for administrative
// initialization rather than an endless fallback loop.
func (s *Postgres[T, PT]) classify(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == undefinedTableCode {
		return fmt.Errorf("%s: %w", op, apperrors.ErrCollectionMissing)
	}
	return fmt.Errorf("%s: %w", op, err)
}
