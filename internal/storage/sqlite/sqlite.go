// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/brunchsplit/internal/models"
	"github.com/mmynk/brunchsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// foreign_keys is per connection; one connection keeps it in force.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateReceipt validates and persists a new receipt.
func (s *SQLiteStore) CreateReceipt(ctx context.Context, receipt *models.Receipt) error {
	if err := receipt.Validate(); err != nil {
		return fmt.Errorf("invalid receipt: %w", err)
	}
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}
	if receipt.Title == "" {
		receipt.Title = generateTitle(receipt.Guests, receipt.CreatedAt)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO receipts (id, title, subtotal, tax, tip, editable_guest, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		receipt.ID, receipt.Title, receipt.Totals.Subtotal, receipt.Totals.Tax, receipt.Totals.Tip,
		receipt.EditableGuest, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for i, g := range receipt.Guests {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO guests (receipt_id, position, first, last) VALUES (?, ?, ?, ?)",
			receipt.ID, i, g.First, g.Last,
		)
		if err != nil {
			return fmt.Errorf("failed to insert guest: %w", err)
		}
	}

	for i, item := range receipt.Items {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (receipt_id, position, name, price) VALUES (?, ?, ?, ?)",
			receipt.ID, i, item.Name, item.Price,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipt retrieves a receipt by ID, including guests and items in order.
func (s *SQLiteStore) GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error) {
	r := &models.Receipt{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, title, subtotal, tax, tip, editable_guest, created_at FROM receipts WHERE id = ?",
		receiptID,
	).Scan(&r.ID, &r.Title, &r.Totals.Subtotal, &r.Totals.Tax, &r.Totals.Tip, &r.EditableGuest, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrReceiptNotFound, receiptID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT first, last FROM guests WHERE receipt_id = ? ORDER BY position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get guests: %w", err)
	}
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(&g.First, &g.Last); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		r.Guests = append(r.Guests, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate guests: %w", err)
	}

	itemRows, err := s.db.QueryContext(ctx,
		"SELECT name, price FROM items WHERE receipt_id = ? ORDER BY position",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.Item
		if err := itemRows.Scan(&item.Name, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		r.Items = append(r.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return r, nil
}

// ListReceipts returns receipt headers, newest first.
func (s *SQLiteStore) ListReceipts(ctx context.Context) ([]models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, title, subtotal, tax, tip, editable_guest, created_at FROM receipts ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []models.Receipt
	for rows.Next() {
		var r models.Receipt
		if err := rows.Scan(&r.ID, &r.Title, &r.Totals.Subtotal, &r.Totals.Tax, &r.Totals.Tip, &r.EditableGuest, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}
	return receipts, nil
}

// DeleteReceipt removes a receipt; guests and items cascade.
func (s *SQLiteStore) DeleteReceipt(ctx context.Context, receiptID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM receipts WHERE id = ?", receiptID)
	if err != nil {
		return fmt.Errorf("failed to delete receipt: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrReceiptNotFound, receiptID)
	}
	return nil
}

// generateTitle creates an auto-generated title from the guest names.
func generateTitle(guests []models.Guest, createdAt int64) string {
	if len(guests) == 0 {
		return fmt.Sprintf("Receipt - %s", time.Unix(createdAt, 0).Format("Jan 2, 2006"))
	}
	names := make([]string, len(guests))
	for i, g := range guests {
		names[i] = g.DisplayName()
	}
	if len(names) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(names[:2], ", "),
		len(names)-2,
	)
}
