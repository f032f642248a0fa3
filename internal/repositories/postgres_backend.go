package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/poofware/property-records-service/internal/models"
	"github.com/poofware/property-records-service/internal/utils"
)

// DB is the subset of *pgxpool.Pool the repositories use.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const (
	maxConnectRetries = 5
	connectTimeout    = 5 * time.Second
	initialBackoff    = 500 * time.Millisecond
)

// BIGSERIAL sequences hand out ids atomically and never reuse them.
var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS properties (
        id          BIGSERIAL PRIMARY KEY,
        owner       TEXT             NOT NULL,
        address     TEXT             NOT NULL,
        valuation   DOUBLE PRECISION NOT NULL,
        status      TEXT             NOT NULL,
        created_at  BIGINT           NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS lease_agreements (
        id                 BIGSERIAL PRIMARY KEY,
        property_id        BIGINT           NOT NULL,
        tenant             TEXT             NOT NULL,
        rent               DOUBLE PRECISION NOT NULL,
        start_date         BIGINT           NOT NULL,
        end_date           BIGINT           NOT NULL,
        digital_signature  TEXT             NOT NULL,
        created_at         BIGINT           NOT NULL
    )`,
	`CREATE TABLE IF NOT EXISTS maintenance_requests (
        id           BIGSERIAL PRIMARY KEY,
        property_id  BIGINT NOT NULL,
        description  TEXT   NOT NULL,
        priority     TEXT   NOT NULL,
        status       TEXT   NOT NULL,
        created_at   BIGINT NOT NULL
    )`,
}

// PostgresBackend keeps the collections in Postgres tables.
type PostgresBackend struct {
	pool       *pgxpool.Pool
	properties *pgCollection[models.Property, *models.Property]
	leases     *pgCollection[models.LeaseAgreement, *models.LeaseAgreement]
	requests   *pgCollection[models.MaintenanceRequest, *models.MaintenanceRequest]
}

// ConnectPostgres dials databaseURL with exponential backoff, then applies
// the schema.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresBackend, error) {
	var (
		pool    *pgxpool.Pool
		err     error
		backoff = initialBackoff
	)

	for i := 1; i <= maxConnectRetries; i++ {
		pool, err = newDBPool(ctx, databaseURL)
		if err == nil {
			utils.Logger.Infof("connected to DB on attempt %d", i)
			break
		}

		utils.Logger.WithError(err).Warnf(
			"Failed DB connect on attempt %d/%d. Retrying in %v...",
			i, maxConnectRetries, backoff,
		)
		if i == maxConnectRetries {
			return nil, fmt.Errorf("unable to connect after %d attempts: %w", maxConnectRetries, err)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}

	if err := MigratePostgres(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgresBackend(pool), nil
}

func newDBPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	dialCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	return pgxpool.ConnectConfig(dialCtx, cfg)
}

// MigratePostgres creates the tables if they do not exist.
func MigratePostgres(ctx context.Context, db DB) error {
	for _, stmt := range postgresSchema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// NewPostgresBackend wraps an already-migrated pool.
func NewPostgresBackend(pool *pgxpool.Pool) *PostgresBackend {
	return &PostgresBackend{
		pool:       pool,
		properties: newPropertyPgCollection(pool),
		leases:     newLeasePgCollection(pool),
		requests:   newMaintenancePgCollection(pool),
	}
}

func newPropertyPgCollection(db DB) *pgCollection[models.Property, *models.Property] {
	return &pgCollection[models.Property, *models.Property]{
		db:        db,
		table:     models.CollectionProperties,
		insert:    insertStmt(models.CollectionProperties, propertyColumns, dollarPlaceholder) + " RETURNING id",
		selectAll: selectAllStmt(models.CollectionProperties, propertyColumns),
		args:      propertyArgs,
		scan:      scanProperty,
	}
}

func newLeasePgCollection(db DB) *pgCollection[models.LeaseAgreement, *models.LeaseAgreement] {
	return &pgCollection[models.LeaseAgreement, *models.LeaseAgreement]{
		db:        db,
		table:     models.CollectionLeaseAgreements,
		insert:    insertStmt(models.CollectionLeaseAgreements, leaseColumns, dollarPlaceholder) + " RETURNING id",
		selectAll: selectAllStmt(models.CollectionLeaseAgreements, leaseColumns),
		args:      leaseArgs,
		scan:      scanLeaseAgreement,
	}
}

func newMaintenancePgCollection(db DB) *pgCollection[models.MaintenanceRequest, *models.MaintenanceRequest] {
	return &pgCollection[models.MaintenanceRequest, *models.MaintenanceRequest]{
		db:        db,
		table:     models.CollectionMaintenanceRequests,
		insert:    insertStmt(models.CollectionMaintenanceRequests, maintenanceColumns, dollarPlaceholder) + " RETURNING id",
		selectAll: selectAllStmt(models.CollectionMaintenanceRequests, maintenanceColumns),
		args:      maintenanceArgs,
		scan:      scanMaintenanceRequest,
	}
}

func (b *PostgresBackend) Name() string { return BackendPostgres }

func (b *PostgresBackend) Properties() PropertyRepository { return b.properties }

func (b *PostgresBackend) LeaseAgreements() LeaseAgreementRepository { return b.leases }

func (b *PostgresBackend) MaintenanceRequests() MaintenanceRequestRepository { return b.requests }

func (b *PostgresBackend) Ping(ctx context.Context) error { return b.pool.Ping(ctx) }

func (b *PostgresBackend) Close() error {
	if b.pool != nil {
		b.pool.Close()
		utils.Logger.Info("DB connection closed.")
	}
	return nil
}

type pgCollection[T any, P interface {
	*T
	models.Record
}] struct {
	db        DB
	table     string
	insert    string
	selectAll string
	args      func(P) []any
	scan      func(rowScanner) (P, error)
}

func (c *pgCollection[T, P]) Create(ctx context.Context, rec P) error {
	var id int64
	if err := c.db.QueryRow(ctx, c.insert, c.args(rec)...).Scan(&id); err != nil {
		return fmt.Errorf("insert into %s: %w", c.table, err)
	}
	rec.SetID(uint64(id))
	return nil
}

func (c *pgCollection[T, P]) ListAll(ctx context.Context) ([]*T, error) {
	rows, err := c.db.Query(ctx, c.selectAll)
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
