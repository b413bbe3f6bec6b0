package repository

import (
	"gorm.io/gorm"

	"github.com/evently/marketplace-app/models"
)

// ActivityRepo is append-only; there are no update or delete methods on
// purpose.
type ActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db: db}
}

func (r *ActivityRepo) Append(record *models.Activity) error {
	return r.db.Create(record).Error
}

func (r *ActivityRepo) List(limit int) ([]models.Activity, error) {
	if limit <= 0 {
		limit = 100
	}
	var records []models.Activity
	err := r.db.Order("created_at desc").Limit(limit).Find(&records).Error
	return records, err
}
