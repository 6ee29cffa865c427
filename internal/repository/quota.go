package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"taskhub-service/internal/models"
)

// QuotaExceededError is returned when an insert would push a tenant past one
// of its configured limits.
type QuotaExceededError struct {
	Resource string
	Limit    int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("%s limit reached for current plan (max %d)", e.Resource, e.Limit)
}

// IsQuotaExceededError checks if an error is a QuotaExceededError
func IsQuotaExceededError(err error) (*QuotaExceededError, bool) {
	var quotaErr *QuotaExceededError
	if errors.As(err, &quotaErr) {
		return quotaErr, true
	}
	return nil, false
}

// lockTenant loads the tenant row with a FOR UPDATE lock. Holding the lock
// across the count and the insert serializes concurrent creations for the
// same tenant, so the quota check cannot race past the limit.
func lockTenant(tx *gorm.DB, tenantID uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&tenant, "id = ?", tenantID).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

// checkQuota compares a current count against a tenant limit. Quotas apply
// only to creation; they never retroactively shrink existing counts after a
// plan downgrade.
func checkQuota(resource string, count int64, limit int) error {
	if count >= int64(limit) {
		return &QuotaExceededError{Resource: resource, Limit: limit}
	}
	return nil
}
