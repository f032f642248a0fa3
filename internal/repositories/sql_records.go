package repositories

import (
	"fmt"
	"strings"

	"github.com/poofware/property-records-service/internal/models"
)

// rowScanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Column lists exclude id; ids come from the database sequence.
var propertyColumns = []string{"owner", "address", "valuation", "status", "created_at"}

var leaseColumns = []string{
	"property_id", "tenant", "rent", "start_date", "end_date", "digital_signature", "created_at",
}

var maintenanceColumns = []string{"property_id", "description", "priority", "status", "created_at"}

// placeholderFunc renders the n-th (1-based) bind parameter.
type placeholderFunc func(n int) string

func questionPlaceholder(int) string { return "?" }

func dollarPlaceholder(n int) string { return fmt.Sprintf("$%d", n) }

func insertStmt(table string, columns []string, ph placeholderFunc) string {
	marks := make([]string, len(columns))
	for i := range columns {
		marks[i] = ph(i + 1)
	}
	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), strings.Join(marks, ", "),
	)
}

func selectAllStmt(table string, columns []string) string {
	return fmt.Sprintf("SELECT id, %s FROM %s ORDER BY id", strings.Join(columns, ", "), table)
}

/* ------------------------------------------------------------------
   Bind args. Unsigned fields go out as int64; both drivers store BIGINT.
------------------------------------------------------------------ */

func propertyArgs(p *models.Property) []any {
	return []any{p.Owner, p.Address, p.Valuation, p.Status, int64(p.CreatedAt)}
}

func leaseArgs(l *models.LeaseAgreement) []any {
	return []any{
		int64(l.PropertyID), l.Tenant, l.Rent,
		int64(l.StartDate), int64(l.EndDate), l.DigitalSignature, int64(l.CreatedAt),
	}
}

func maintenanceArgs(m *models.MaintenanceRequest) []any {
	return []any{int64(m.PropertyID), m.Description, m.Priority, m.Status, int64(m.CreatedAt)}
}

/* ------------------------------------------------------------------
   Scanners
------------------------------------------------------------------ */

func scanProperty(row rowScanner) (*models.Property, error) {
	var p models.Property
	var id, createdAt int64
	if err := row.Scan(&id, &p.Owner, &p.Address, &p.Valuation, &p.Status, &createdAt); err != nil {
		return nil, err
	}
	p.ID = uint64(id)
	p.CreatedAt = uint64(createdAt)
	return &p, nil
}

func scanLeaseAgreement(row rowScanner) (*models.LeaseAgreement, error) {
	var l models.LeaseAgreement
	var id, propertyID, start, end, created int64
	err := row.Scan(
		&id, &propertyID, &l.Tenant, &l.Rent,
		&start, &end, &l.DigitalSignature, &created,
	)
	if err != nil {
		return nil, err
	}
	l.ID = uint64(id)
	l.PropertyID = uint64(propertyID)
	l.StartDate = uint64(start)
	l.EndDate = uint64(end)
	l.CreatedAt = uint64(created)
	return &l, nil
}

func scanMaintenanceRequest(row rowScanner) (*models.MaintenanceRequest, error) {
	var m models.MaintenanceRequest
	var id, propertyID, created int64
	err := row.Scan(&id, &propertyID, &m.Description, &m.Priority, &m.Status, &created)
	if err != nil {
		return nil, err
	}
	m.ID = uint64(id)
	m.PropertyID = uint64(propertyID)
	m.CreatedAt = uint64(created)
	return &m, nil
}
