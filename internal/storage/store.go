// Package storage provides abstractions for the receipt library.
//
// Only receipt definitions are stored: guests, items and totals. Session
// state (checked boxes, edited names, results) is never persisted.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/brunchsplit/internal/models"
)

// ErrReceiptNotFound is returned when no receipt has the requested ID.
var ErrReceiptNotFound = errors.New("receipt not found")

// Store defines the interface for receipt storage operations.
// This abstraction allows swapping storage backends without changing the
// commands that use it.
type Store interface {
	// CreateReceipt persists a new receipt.
	// The receipt.ID and CreatedAt fields are populated by the store.
	CreateReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt by its ID.
	// Returns an error wrapping ErrReceiptNotFound if it does not exist.
	GetReceipt(ctx context.Context, receiptID string) (*models.Receipt, error)

	// ListReceipts returns stored receipts without guests or items,
	// newest first.
	ListReceipts(ctx context.Context) ([]models.Receipt, error)

	// DeleteReceipt removes a receipt.
	DeleteReceipt(ctx context.Context, receiptID string) error

	// Close releases any resources held by the store.
	Close() error
}
