package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

// AccountRepo is the GORM-backed account store.
type AccountRepo struct {
	db *gorm.DB
}

func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

func (r *AccountRepo) FindByUsername(username string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NotFoundf("account %q", username)
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) FindByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NotFoundf("account %d", id)
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) Taken(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Account{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *AccountRepo) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return core.Conflictf("username or email already in use")
		}
		return err
	}
	return nil
}

func (r *AccountRepo) TouchLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Account{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// UpdateStatus is a conditional update: the row moves only if it is still
// in the expected status.
func (r *AccountRepo) UpdateStatus(id uint, from, to models.AccountStatus) (bool, error) {
	res := r.db.Model(&models.Account{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected > 0, res.Error
}

func (r *AccountRepo) ListByStatus(status models.AccountStatus) ([]models.Account, error) {
	var accounts []models.Account
	query := r.db.Order("created_at asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&accounts).Error
	return accounts, err
}

// EmailForAccount satisfies notify.AccountLookup.
func (r *AccountRepo) EmailForAccount(accountID uint) (string, error) {
	account, err := r.FindByID(accountID)
	if err != nil {
		return "", err
	}
	return account.Email, nil
}
