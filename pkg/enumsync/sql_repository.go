package enumsync

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/adisonshadow/adb/pkg/meta"
)

// Dialect selects the DDL flavour used by EnsureTable
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

const recordColumns = "id, enum_id, code, label, description, items, enum_name, enum_values, is_active, created_at, updated_at"

// SQLRepository stores records through database/sql. Queries use $n
// placeholders, which postgres drivers and sqlite3 both accept.
type SQLRepository struct {
	db      *sql.DB
	table   string
	dialect Dialect
	now     func() time.Time
}

// SQLOption configures a SQLRepository
type SQLOption func(*SQLRepository)

// WithTable overrides the table name
func WithTable(name string) SQLOption {
	return func(r *SQLRepository) {
		r.table = name
	}
}

// WithDialect sets the DDL dialect. The default is postgres.
func WithDialect(d Dialect) SQLOption {
	return func(r *SQLRepository) {
		r.dialect = d
	}
}

// WithClock replaces the time source for timestamps
func WithClock(now func() time.Time) SQLOption {
	return func(r *SQLRepository) {
		r.now = now
	}
}

// NewSQLRepository creates a repository over db
func NewSQLRepository(db *sql.DB, opts ...SQLOption) *SQLRepository {
	r := &SQLRepository{
		db:      db,
		table:   TableName,
		dialect: DialectPostgres,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// DialectFor maps a database/sql driver name to a dialect
func DialectFor(driver string) Dialect {
	switch driver {
	case "sqlite3", "sqlite":
		return DialectSQLite
	default:
		return DialectPostgres
	}
}

// EnsureTable creates the table if it does not exist
func (r *SQLRepository) EnsureTable(ctx context.Context) error {
	idColumn := "BIGSERIAL PRIMARY KEY"
	if r.dialect == DialectSQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id %s,
	enum_id VARCHAR(50) NOT NULL UNIQUE,
	code VARCHAR(100) NOT NULL UNIQUE,
	label VARCHAR(200) NOT NULL,
	description TEXT,
	items TEXT NOT NULL,
	enum_name VARCHAR(100) NOT NULL,
	enum_values TEXT,
	is_active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`, r.quotedTable(), idColumn)

	_, err := r.db.ExecContext(ctx, ddl)
	return err
}

// FindByEnumID finds the record with the given enum id
func (r *SQLRepository) FindByEnumID(ctx context.Context, enumID string) (*Record, error) {
	return r.findOne(ctx, "enum_id", enumID)
}

// FindByCode finds the record with the given code
func (r *SQLRepository) FindByCode(ctx context.Context, code string) (*Record, error) {
	return r.findOne(ctx, "code", code)
}

// FindByName finds the record with the given enum name
func (r *SQLRepository) FindByName(ctx context.Context, name string) (*Record, error) {
	return r.findOne(ctx, "enum_name", name)
}

func (r *SQLRepository) findOne(ctx context.Context, column, value string) (*Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 LIMIT 1", recordColumns, r.quotedTable(), column)

	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, value))
	if err != nil {
		return nil, convertError(err)
	}
	return rec, nil
}

// FindActive returns every active record ordered by code
func (r *SQLRepository) FindActive(ctx context.Context) ([]*Record, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE is_active = $1 ORDER BY code ASC", recordColumns, r.quotedTable())

	rows, err := r.db.QueryContext(ctx, query, true)
	if err != nil {
		return nil, convertError(err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// Save inserts rec when it has no ID and updates the row otherwise.
// It returns rec with ID and timestamps filled in.
func (r *SQLRepository) Save(ctx context.Context, rec *Record) (*Record, error) {
	items, values, err := encodeJSONColumns(rec.Items, rec.EnumValues)
	if err != nil {
		return nil, err
	}

	now := r.now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now

	if rec.ID == 0 {
		query := fmt.Sprintf(`INSERT INTO %s (enum_id, code, label, description, items, enum_name, enum_values, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`, r.quotedTable())

		err := r.db.QueryRowContext(ctx, query,
			rec.EnumID, rec.Code, rec.Label, nullString(rec.Description), items,
			rec.EnumName, values, rec.IsActive, rec.CreatedAt, rec.UpdatedAt,
		).Scan(&rec.ID)
		if err != nil {
			return nil, convertError(err)
		}
		return rec, nil
	}

	query := fmt.Sprintf(`UPDATE %s SET enum_id = $1, code = $2, label = $3, description = $4, items = $5,
enum_name = $6, enum_values = $7, is_active = $8, updated_at = $9 WHERE id = $10`, r.quotedTable())

	result, err := r.db.ExecContext(ctx, query,
		rec.EnumID, rec.Code, rec.Label, nullString(rec.Description), items,
		rec.EnumName, values, rec.IsActive, rec.UpdatedAt, rec.ID,
	)
	if err != nil {
		return nil, convertError(err)
	}
	if err := expectAffected(result); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update applies patch to the record with the given enum id
func (r *SQLRepository) Update(ctx context.Context, enumID string, patch Patch) error {
	var sets []string
	var args []any
	add := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Label != nil {
		add("label", *patch.Label)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Items != nil {
		data, err := json.Marshal(patch.Items)
		if err != nil {
			return err
		}
		add("items", string(data))
	}
	if patch.EnumName != nil {
		add("enum_name", *patch.EnumName)
	}
	if patch.EnumValues != nil {
		data, err := patch.EnumValues.MarshalJSON()
		if err != nil {
			return err
		}
		add("enum_values", string(data))
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	add("updated_at", r.now())

	args = append(args, enumID)
	query := fmt.Sprintf("UPDATE %s SET %s WHERE enum_id = $%d", r.quotedTable(), strings.Join(sets, ", "), len(args))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return convertError(err)
	}
	return expectAffected(result)
}

func (r *SQLRepository) quotedTable() string {
	return `"` + strings.ReplaceAll(r.table, `"`, `""`) + `"`
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var (
		rec         Record
		description sql.NullString
		items       string
		values      sql.NullString
	)
	err := row.Scan(
		&rec.ID, &rec.EnumID, &rec.Code, &rec.Label, &description, &items,
		&rec.EnumName, &values, &rec.IsActive, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		rec.Description = &description.String
	}
	if items != "" {
		if err := json.Unmarshal([]byte(items), &rec.Items); err != nil {
			return nil, fmt.Errorf("decode items of %s: %w", rec.EnumID, err)
		}
	}
	if values.Valid && values.String != "" {
		rec.EnumValues = meta.NewValues()
		if err := rec.EnumValues.UnmarshalJSON([]byte(values.String)); err != nil {
			return nil, fmt.Errorf("decode values of %s: %w", rec.EnumID, err)
		}
	}
	return &rec, nil
}

func encodeJSONColumns(items map[string]meta.EnumItem, values *meta.Values) (string, sql.NullString, error) {
	if items == nil {
		items = map[string]meta.EnumItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return "", sql.NullString{}, err
	}
	if values == nil {
		return string(itemsJSON), sql.NullString{}, nil
	}
	valuesJSON, err := values.MarshalJSON()
	if err != nil {
		return "", sql.NullString{}, err
	}
	return string(itemsJSON), sql.NullString{String: string(valuesJSON), Valid: true}, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func expectAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// convertError maps driver errors onto the package sentinels. The driver
// error stays in the chain.
func convertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	}
	return err
}
