package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/etnz/spend"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/shopspring/decimal"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore keeps the ledger in a SQLite database: one row for the totals
// and one row per expense.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// OpenSQLite opens (or creates) the database at 'path' and migrates its
// schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if err := runMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	slog.DebugContext(ctx, "opened sqlite ledger", "path", path)
	return &SQLiteStore{path: path, db: db}, nil
}

func runMigrations(path string) error {
	// a separate connection, the migrate driver closes it.
	migrateDB, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open migration database: %w", err)
	}
	defer migrateDB.Close()

	driver, err := sqlite.WithInstance(migrateDB, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("create sqlite driver: %w", err)
	}
	d, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", d, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (s *SQLiteStore) String() string { return "sqlite:" + s.path }

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the ledger. An empty database returns an error wrapping
// fs.ErrNotExist, undecodable values one wrapping spend.ErrCorrupted.
func (s *SQLiteStore) Load(ctx context.Context) (*spend.Ledger, error) {
	var income, balance string
	err := s.db.QueryRowContext(ctx, `SELECT income, balance FROM ledger WHERE id = 1`).Scan(&income, &balance)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no ledger in %s: %w", s.path, fs.ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}
	inc, err := parseDecimal("income", income)
	if err != nil {
		return nil, err
	}
	bal, err := parseDecimal("balance", balance)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT amount, category, description, date FROM expenses ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query expenses: %w", err)
	}
	defer rows.Close()

	expenses := make([]spend.Expense, 0)
	for rows.Next() {
		var amount, category, description, date string
		if err := rows.Scan(&amount, &category, &description, &date); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		a, err := parseDecimal("amount", amount)
		if err != nil {
			return nil, err
		}
		ts, err := spend.ParseTimestamp(date)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", spend.ErrCorrupted, err)
		}
		expenses = append(expenses, spend.NewExpense(spend.M(a, ""), spend.Category(category), description, ts))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expenses: %w", err)
	}
	return spend.RestoreLedger(inc, bal, expenses), nil
}

func parseDecimal(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: invalid %s %q", spend.ErrCorrupted, field, s)
	}
	return d, nil
}

// Save replaces the whole content of the database with 'l' in a single
// transaction.
func (s *SQLiteStore) Save(ctx context.Context, l *spend.Ledger) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO ledger (id, income, balance) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET income = excluded.income, balance = excluded.balance`,
		l.Income().Decimal().String(), l.Balance().Decimal().String()); err != nil {
		return fmt.Errorf("save totals: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM expenses`); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO expenses (seq, amount, category, description, date) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare expense insert: %w", err)
	}
	defer stmt.Close()
	for i, e := range l.Expenses() {
		if _, err := stmt.ExecContext(ctx, i+1, e.Amount.Decimal().String(), string(e.Category), e.Description, e.Date.String()); err != nil {
			return fmt.Errorf("save expense %d: %w", i+1, err)
		}
	}
	return tx.Commit()
}
