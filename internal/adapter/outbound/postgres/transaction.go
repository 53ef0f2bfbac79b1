package postgres

import (
	"context"

	"github.com/propmarket/server/internal/port/outbound"
	"gorm.io/gorm"
)

// txContextKey is used to store transaction in context.
type txContextKeyType struct{}

var txContextKey = txContextKeyType{}

// conn returns the transaction carried by ctx, or db outside a transaction.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txContextKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// transactorAdapter implements outbound.TransactorPort.
type transactorAdapter struct {
	db *gorm.DB
}

// NewTransactorAdapter creates a new transaction adapter.
func NewTransactorAdapter(db *gorm.DB) outbound.TransactorPort {
	return &transactorAdapter{db: db}
}

// WithinTx runs fn in a transaction. A nested call joins the outer transaction.
func (a *transactorAdapter) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txContextKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txContextKey, tx))
	})
}

// Compile-time check
var _ outbound.TransactorPort = (*transactorAdapter)(nil)
