package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

type ServiceRepo struct {
	db *gorm.DB
}

func NewServiceRepo(db *gorm.DB) *ServiceRepo {
	return &ServiceRepo{db: db}
}

func (r *ServiceRepo) FindByID(id uint) (*models.Service, error) {
	var service models.Service
	if err := r.db.First(&service, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NotFoundf("service %d", id)
		}
		return nil, err
	}
	return &service, nil
}

func (r *ServiceRepo) Create(service *models.Service) error {
	return r.db.Create(service).Error
}

func (r *ServiceRepo) Update(service *models.Service) error {
	return r.db.Model(&models.Service{}).Where("id = ?", service.ID).
		Updates(map[string]interface{}{
			"name":        service.Name,
			"description": service.Description,
			"base_price":  service.BasePrice,
			"duration":    service.Duration,
			"active":      service.Active,
		}).Error
}

func (r *ServiceRepo) ListActive() ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("active = ?", true).Order("name asc").Find(&services).Error
	return services, err
}

func (r *ServiceRepo) ListByProvider(providerProfileID uint) ([]models.Service, error) {
	var services []models.Service
	err := r.db.Where("provider_profile_id = ?", providerProfileID).
		Order("name asc").Find(&services).Error
	return services, err
}
