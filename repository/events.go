package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

type EventRepo struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) FindByID(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NotFoundf("event %d", id)
		}
		return nil, err
	}
	return &event, nil
}

func (r *EventRepo) Create(event *models.Event) error {
	return r.db.Create(event).Error
}

// Update rewrites the mutable fields. CustomerProfileID is immutable and
// deliberately not included.
func (r *EventRepo) Update(event *models.Event) error {
	return r.db.Model(&models.Event{}).Where("id = ?", event.ID).
		Updates(map[string]interface{}{
			"title":       event.Title,
			"description": event.Description,
			"start_time":  event.StartTime,
			"end_time":    event.EndTime,
			"location":    event.Location,
			"status":      event.Status,
			"budget":      event.Budget,
		}).Error
}

func (r *EventRepo) ListAll() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Order("start_time asc").Find(&events).Error
	return events, err
}

func (r *EventRepo) ListByCustomer(customerProfileID uint) ([]models.Event, error) {
	var events []models.Event
	err := r.db.Where("customer_profile_id = ?", customerProfileID).
		Order("start_time asc").Find(&events).Error
	return events, err
}
