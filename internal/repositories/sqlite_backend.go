package repositories

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/poofware/property-records-service/internal/models"
)

//go:embed sqlite_schema.sql
var sqliteSchemaSQL string

// SQLiteBackend stores the collections in a single SQLite file.
type SQLiteBackend struct {
	db         *sql.DB
	properties *sqliteCollection[models.Property, *models.Property]
	leases     *sqliteCollection[models.LeaseAgreement, *models.LeaseAgreement]
	requests   *sqliteCollection[models.MaintenanceRequest, *models.MaintenanceRequest]
}

// OpenSQLite creates or opens the database at path and applies the schema.
// Safe to call repeatedly on the same file.
func OpenSQLite(path string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite has one writer; a single connection also keeps :memory: databases shared.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applySQLitePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if _, err := db.Exec(sqliteSchemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLiteBackend{
		db: db,
		properties: &sqliteCollection[models.Property, *models.Property]{
			db:        db,
			table:     models.CollectionProperties,
			insert:    insertStmt(models.CollectionProperties, propertyColumns, questionPlaceholder),
			selectAll: selectAllStmt(models.CollectionProperties, propertyColumns),
			args:      propertyArgs,
			scan:      scanProperty,
		},
		leases: &sqliteCollection[models.LeaseAgreement, *models.LeaseAgreement]{
			db:        db,
			table:     models.CollectionLeaseAgreements,
			insert:    insertStmt(models.CollectionLeaseAgreements, leaseColumns, questionPlaceholder),
			selectAll: selectAllStmt(models.CollectionLeaseAgreements, leaseColumns),
			args:      leaseArgs,
			scan:      scanLeaseAgreement,
		},
		requests: &sqliteCollection[models.MaintenanceRequest, *models.MaintenanceRequest]{
			db:        db,
			table:     models.CollectionMaintenanceRequests,
			insert:    insertStmt(models.CollectionMaintenanceRequests, maintenanceColumns, questionPlaceholder),
			selectAll: selectAllStmt(models.CollectionMaintenanceRequests, maintenanceColumns),
			args:      maintenanceArgs,
			scan:      scanMaintenanceRequest,
		},
	}, nil
}

func applySQLitePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func (b *SQLiteBackend) Name() string { return BackendSQLite }

func (b *SQLiteBackend) Properties() PropertyRepository { return b.properties }

func (b *SQLiteBackend) LeaseAgreements() LeaseAgreementRepository { return b.leases }

func (b *SQLiteBackend) MaintenanceRequests() MaintenanceRequestRepository { return b.requests }

func (b *SQLiteBackend) Ping(ctx context.Context) error { return b.db.PingContext(ctx) }

func (b *SQLiteBackend) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

type sqliteCollection[T any, P interface {
	*T
	models.Record
}] struct {
	db        *sql.DB
	table     string
	insert    string
	selectAll string
	args      func(P) []any
	scan      func(rowScanner) (P, error)
}

func (c *sqliteCollection[T, P]) Create(ctx context.Context, rec P) error {
	res, err := c.db.ExecContext(ctx, c.insert, c.args(rec)...)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", c.table, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read %s id: %w", c.table, err)
	}
	rec.SetID(uint64(id))
	return nil
}

func (c *sqliteCollection[T, P]) ListAll(ctx context.Context) ([]*T, error) {
	rows, err := c.db.QueryContext(ctx, c.selectAll)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.table, err)
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		rec, err := c.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", c.table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
