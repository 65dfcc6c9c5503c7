package intake

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver

	"smartgram/pkg/domain"
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "pgx"
)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// seqColumns declares the identity column that records insertion order. Rows
// are read back in seq order so duplicates resolve the same way on every
// engine.
var seqColumns = map[string]string{
	driverSQLite:   "seq INTEGER PRIMARY KEY AUTOINCREMENT",
	driverPostgres: "seq BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY",
}

// schemaTemplates hold the intake tables with a %s slot for the seq column.
// List columns of meetings hold JSON arrays as text.
var schemaTemplates = []string{
	`CREATE TABLE IF NOT EXISTS units (
		%s,
		panchayat_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		block TEXT NOT NULL,
		district TEXT NOT NULL,
		state TEXT NOT NULL,
		population INTEGER NOT NULL,
		households INTEGER NOT NULL,
		area_sq_km DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS service_requests (
		%s,
		request_id TEXT NOT NULL UNIQUE,
		panchayat_id TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL,
		submitted_date TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		priority INTEGER NOT NULL DEFAULT 3,
		resolved_date TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS budget_allocations (
		%s,
		panchayat_id TEXT NOT NULL,
		financial_year TEXT NOT NULL,
		scheme_name TEXT NOT NULL,
		allocated_amount DOUBLE PRECISION NOT NULL,
		utilized_amount DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS meetings (
		%s,
		panchayat_id TEXT NOT NULL,
		date TEXT NOT NULL,
		attendees_count INTEGER NOT NULL,
		agenda_items TEXT NOT NULL DEFAULT '[]',
		decisions TEXT NOT NULL DEFAULT '[]',
		action_items TEXT NOT NULL DEFAULT '[]'
	)`,
}

// Schema returns the DDL creating the intake tables for driver.
func Schema(driver string) ([]string, error) {
	seq, ok := seqColumns[driver]
	if !ok {
		return nil, fmt.Errorf("no schema for driver %q", driver)
	}
	stmts := make([]string, len(schemaTemplates))
	for i, tmpl := range schemaTemplates {
		stmts[i] = fmt.Sprintf(tmpl, seq)
	}
	return stmts, nil
}

// SQLSource reads records from the intake tables in insertion order.
type SQLSource struct {
	db     *sql.DB
	driver string
}

// NewSQLSource wraps an open database served by driver (sqlite or pgx).
func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{db: db, driver: driver}
}

// DriverFor maps a DSN to a database/sql driver name and the DSN that driver
// expects. sqlite: and file: DSNs use SQLite; postgres:// and postgresql://
// use pgx.
func DriverFor(dsn string) (driver, driverDSN string, err error) {
	switch {
	case strings.HasPrefix(dsn, "sqlite:"):
		return driverSQLite, strings.TrimPrefix(dsn, "sqlite:"), nil
	case strings.HasPrefix(dsn, "file:"):
		return driverSQLite, dsn, nil
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		return driverPostgres, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported dsn %q: want sqlite:, file:, postgres:// or postgresql://", dsn)
	}
}

// OpenSQL opens and pings the database named by dsn.
func OpenSQL(ctx context.Context, dsn string) (*SQLSource, error) {
	driver, driverDSN, err := DriverFor(dsn)
	if err != nil {
		return nil, err
	}
	openMu.Lock()
	db, err := sqlOpen(driver, driverDSN)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return NewSQLSource(db, driver), nil
}

// DB exposes the underlying database.
func (s *SQLSource) DB() *sql.DB { return s.db }

// Close closes the database.
func (s *SQLSource) Close() error { return s.db.Close() }

// EnsureSchema creates any missing intake tables.
func (s *SQLSource) EnsureSchema(ctx context.Context) error {
	stmts, err := Schema(s.driver)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func queryRows[T any](ctx context.Context, db *sql.DB, entity domain.EntityType, query string, scan func(*sql.Rows) (T, error), build func(T) (T, error)) (_ []T, err error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", entity, err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	var raw []T
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", entity, err)
		}
		raw = append(raw, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", entity, err)
	}
	return validateAll(entity, raw, build)
}

func (s *SQLSource) Units(ctx context.Context) ([]domain.AdministrativeUnit, error) {
	return queryRows(ctx, s.db, domain.EntityUnit,
		`SELECT panchayat_id, name, block, district, state, population, households, area_sq_km FROM units ORDER BY seq`,
		func(rows *sql.Rows) (domain.AdministrativeUnit, error) {
			var u domain.AdministrativeUnit
			err := rows.Scan(&u.ID, &u.Name, &u.Block, &u.District, &u.State, &u.Population, &u.Households, &u.AreaSqKm)
			return u, err
		}, domain.NewAdministrativeUnit)
}

func (s *SQLSource) Requests(ctx context.Context) ([]domain.ServiceRequest, error) {
	return queryRows(ctx, s.db, domain.EntityServiceRequest,
		`SELECT request_id, panchayat_id, category, description, submitted_date, status, priority, resolved_date FROM service_requests ORDER BY seq`,
		func(rows *sql.Rows) (domain.ServiceRequest, error) {
			var (
				r        domain.ServiceRequest
				category string
				resolved sql.NullString
			)
			if err := rows.Scan(&r.ID, &r.UnitID, &category, &r.Description, &r.SubmittedDate, &r.Status, &r.Priority, &resolved); err != nil {
				return r, err
			}
			r.Category = domain.ServiceCategory(category)
			if resolved.Valid {
				d := resolved.String
				r.ResolvedDate = &d
			}
			return r, nil
		}, domain.NewServiceRequest)
}

func (s *SQLSource) Allocations(ctx context.Context) ([]domain.BudgetAllocation, error) {
	return queryRows(ctx, s.db, domain.EntityBudgetAllocation,
		`SELECT panchayat_id, financial_year, scheme_name, allocated_amount, utilized_amount FROM budget_allocations ORDER BY seq`,
		func(rows *sql.Rows) (domain.BudgetAllocation, error) {
			var b domain.BudgetAllocation
			err := rows.Scan(&b.UnitID, &b.FinancialYear, &b.SchemeName, &b.Allocated, &b.Utilized)
			return b, err
		}, domain.NewBudgetAllocation)
}

func (s *SQLSource) Meetings(ctx context.Context) ([]domain.MeetingRecord, error) {
	return queryRows(ctx, s.db, domain.EntityMeeting,
		`SELECT panchayat_id, date, attendees_count, agenda_items, decisions, action_items FROM meetings ORDER BY seq`,
		func(rows *sql.Rows) (domain.MeetingRecord, error) {
			var (
				m                          domain.MeetingRecord
				agenda, decisions, actions string
			)
			if err := rows.Scan(&m.UnitID, &m.Date, &m.AttendeesCount, &agenda, &decisions, &actions); err != nil {
				return m, err
			}
			for _, col := range []struct {
				name string
				raw  string
				dst  *[]string
			}{
				{"agenda_items", agenda, &m.AgendaItems},
				{"decisions", decisions, &m.Decisions},
				{"action_items", actions, &m.ActionItems},
			} {
				if err := json.Unmarshal([]byte(col.raw), col.dst); err != nil {
					return m, fmt.Errorf("%s: %w", col.name, err)
				}
			}
			return m, nil
		}, domain.NewMeetingRecord)
}
