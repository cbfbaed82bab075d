package repositories

import (
	"context"

	"gorm.io/gorm"
)

// TxManager runs a function inside a single database transaction. The
// booking flow and the patient cascade both use it so that their multiple
// writes commit or roll back as one unit.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormTxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) RunInTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return m.db.WithContext(ctx).Transaction(fn)
}
