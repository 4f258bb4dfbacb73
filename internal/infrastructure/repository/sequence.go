package repository

import (
	"fmt"

	"gorm.io/gorm"
)

// Advisory lock keys serializing number assignment
const (
	receiptNumberLock int64 = 7301
	memberNumberLock  int64 = 7302
)

// nextNumber returns MAX(column)+1 of table. It must run inside a transaction;
// the advisory lock is held until that transaction ends.
func nextNumber(tx *gorm.DB, lockKey int64, table, column string) (int, error) {
	if err := tx.Exec("SELECT pg_advisory_xact_lock(?)", lockKey).Error; err != nil {
		return 0, fmt.Errorf("lock %s numbering: %w", table, err)
	}
	var next int
	err := tx.Raw(fmt.Sprintf("SELECT COALESCE(MAX(%s), 0) + 1 FROM %s", column, table)).Scan(&next).Error
	return next, err
}
