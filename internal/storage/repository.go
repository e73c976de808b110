// Package storage persists users and transactions in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tally/internal/core"

	_ "modernc.org/sqlite"
)

var (
	// ErrUsernameTaken reports a registration against an existing username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrNotFound covers both "no such row" and "row owned by someone else":
	// owner-scoped mutations deliberately cannot tell the two apart, so a
	// caller can never probe for other users' records.
	ErrNotFound = errors.New("not found")
)

type Repository struct {
	db *sql.DB
}

// NewRepository opens (creating if necessary) the SQLite database at dbPath
// and brings the schema up to date.
func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// The pragma rides on the DSN so every pooled connection enforces the
	// transactions.user_id reference, not just the first one opened.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateUser inserts a new user with a case-normalized username. A duplicate
// username fails with ErrUsernameTaken, enforced by the unique index so the
// check is race-free.
func (r *Repository) CreateUser(ctx context.Context, username, passwordHash string) (core.User, error) {
	u := core.User{
		ID:           uuid.NewString(),
		Username:     core.NormalizeUsername(username),
		PasswordHash: passwordHash,
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO users (id, username, password_hash) VALUES (?, ?, ?)",
		u.ID, u.Username, u.PasswordHash)
	if err != nil {
		if isUniqueViolation(err) {
			return core.User{}, ErrUsernameTaken
		}
		return core.User{}, fmt.Errorf("create user: %w", err)
	}

	slog.InfoContext(ctx, "User created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

// UserByUsername looks up a user by case-normalized username.
func (r *Repository) UserByUsername(ctx context.Context, username string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE username = ?",
		core.NormalizeUsername(username))

	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, ErrNotFound
		}
		return core.User{}, fmt.Errorf("user by username: %w", err)
	}
	return u, nil
}

// UserByID fetches a user by identifier. The auth middleware calls this on
// every protected request so a deleted user is locked out immediately.
func (r *Repository) UserByID(ctx context.Context, id string) (core.User, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, username, password_hash FROM users WHERE id = ?", id)

	var u core.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.User{}, ErrNotFound
		}
		return core.User{}, fmt.Errorf("user by id: %w", err)
	}
	return u, nil
}

// CreateTransaction inserts a transaction for its owner and returns it with
// the assigned identifier.
func (r *Repository) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	t.ID = uuid.NewString()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, title, amount_cents, category, tx_date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, t.Title, t.Amount.Cents, string(t.Category), t.Date.String())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"user_id", t.OwnerID,
		"title", t.Title,
		"amount_cents", t.Amount.Cents,
		"category", string(t.Category),
		"date", t.Date.String())

	return t, nil
}

// UpdateTransaction rewrites a transaction's fields. The WHERE clause matches
// both id and owner in one atomic statement; zero affected rows means the row
// does not exist or belongs to someone else, reported uniformly as
// ErrNotFound.
func (r *Repository) UpdateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE transactions
		 SET title = ?, amount_cents = ?, category = ?, tx_date = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND user_id = ?`,
		t.Title, t.Amount.Cents, string(t.Category), t.Date.String(), t.ID, t.OwnerID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction rows affected: %w", err)
	}
	if affected == 0 {
		return core.Transaction{}, ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", t.ID, "user_id", t.OwnerID)
	return t, nil
}

// DeleteTransaction removes a transaction, scoped to both id and owner with
// the same not-found/forbidden conflation as UpdateTransaction.
func (r *Repository) DeleteTransaction(ctx context.Context, id, ownerID string) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, ownerID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete transaction rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id, "user_id", ownerID)
	return nil
}

// ListTransactions returns all of an owner's transactions, newest calendar
// date first. tx_date strings sort chronologically, so the index does the
// ordering.
func (r *Repository) ListTransactions(ctx context.Context, ownerID string) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, title, amount_cents, category, tx_date
		 FROM transactions
		 WHERE user_id = ?
		 ORDER BY tx_date DESC, created_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	txs := []core.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

// SummaryByCategory sums an owner's transactions per category. Categories the
// owner never used are simply absent.
func (r *Repository) SummaryByCategory(ctx context.Context, ownerID string) ([]core.CategoryTotal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, SUM(amount_cents)
		 FROM transactions
		 WHERE user_id = ?
		 GROUP BY category
		 ORDER BY category`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("summary by category: %w", err)
	}
	defer rows.Close()

	summary := []core.CategoryTotal{}
	for rows.Next() {
		var category string
		var cents int64
		if err := rows.Scan(&category, &cents); err != nil {
			return nil, fmt.Errorf("scan summary row: %w", err)
		}
		summary = append(summary, core.CategoryTotal{
			Category: core.Category(category),
			Total:    core.Money{Cents: cents},
		})
	}
	return summary, rows.Err()
}

func scanTransaction(rows *sql.Rows) (core.Transaction, error) {
	var t core.Transaction
	var category, date string
	if err := rows.Scan(&t.ID, &t.OwnerID, &t.Title, &t.Amount.Cents, &category, &date); err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Category = core.Category(category)
	parsed, err := core.ParseDate(date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("stored date %q: %w", date, err)
	}
	t.Date = parsed
	return t, nil
}

// isUniqueViolation matches the driver's unique-constraint error. modernc's
// driver wraps SQLITE_CONSTRAINT_UNIQUE without a typed sentinel, so the
// message text is the stable surface to check.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
