package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

type BookingRepo struct {
	db *gorm.DB
}

func NewBookingRepo(db *gorm.DB) *BookingRepo {
	return &BookingRepo{db: db}
}

func (r *BookingRepo) Create(booking *models.Booking) error {
	return r.db.Create(booking).Error
}

func (r *BookingRepo) FindByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NotFoundf("booking %d", id)
		}
		return nil, err
	}
	return &booking, nil
}

// Transition moves the row from one status to another as a single
// conditional update; zero rows affected means the row was no longer in
// the expected pre-state.
func (r *BookingRepo) Transition(id uint, from, to models.BookingStatus, set map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for column, value := range set {
		updates[column] = value
	}
	res := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}

// ListConfirmedEndedBefore feeds the auto-completion sweep.
func (r *BookingRepo) ListConfirmedEndedBefore(t time.Time) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("status = ? AND end_time < ?", models.BookingConfirmed, t).
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) ListAll() ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Order("start_time asc").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) ListByCustomer(customerProfileID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("customer_profile_id = ?", customerProfileID).
		Order("start_time asc").Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) ListByProvider(providerProfileID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Where("provider_profile_id = ?", providerProfileID).
		Order("start_time asc").Find(&bookings).Error
	return bookings, err
}
