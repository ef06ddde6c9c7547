package identityrepo

import (
	"context"

	"buffet/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormIdentityDirectory implements IdentityDirectory over the users and
// buffets tables.
type GormIdentityDirectory struct {
	db *gorm.DB
}

// NewGormIdentityDirectory creates a directory reading accounts through db.
func NewGormIdentityDirectory(db *gorm.DB) *GormIdentityDirectory {
	return &GormIdentityDirectory{db: db}
}

// IsRegistered reports whether a user or a buffet account uses email.
// Stored addresses may carry any casing.
func (d *GormIdentityDirectory) IsRegistered(ctx context.Context, email kernel.Email) (bool, error) {
	if email.IsZero() {
		return false, nil
	}

	normalized := email.Normalized()
	for _, model := range []any{&UserDTO{}, &BuffetDTO{}} {
		var count int64
		if err := d.db.WithContext(ctx).
			Model(model).
			Where("LOWER(TRIM(email)) = ?", normalized).
			Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			return true, nil
		}
	}

	return false, nil
}
