package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

// ProfileRepo maps roles to their profile tables. It is the storage side
// of the role→variant mapping; the unique index on account_id enforces
// "exactly one profile per account" even under racing first-resolutions.
type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) FindID(role models.Role, accountID uint) (uint, error) {
	switch role {
	case models.RoleAdmin:
		var profile models.AdminProfile
		return r.findID(&profile, "account_id = ?", accountID, func() uint { return profile.ID }, role)
	case models.RoleEmployee:
		var profile models.EmployeeProfile
		return r.findID(&profile, "account_id = ?", accountID, func() uint { return profile.ID }, role)
	case models.RoleCustomer:
		var profile models.CustomerProfile
		return r.findID(&profile, "account_id = ?", accountID, func() uint { return profile.ID }, role)
	case models.RoleProvider:
		var profile models.ProviderProfile
		return r.findID(&profile, "account_id = ?", accountID, func() uint { return profile.ID }, role)
	}
	return 0, core.NotFoundf("no profile variant registered for role %q", role)
}

func (r *ProfileRepo) Create(role models.Role, accountID uint) (uint, error) {
	switch role {
	case models.RoleAdmin:
		profile := models.AdminProfile{AccountID: accountID}
		return r.create(&profile, func() uint { return profile.ID })
	case models.RoleEmployee:
		profile := models.EmployeeProfile{AccountID: accountID}
		return r.create(&profile, func() uint { return profile.ID })
	case models.RoleCustomer:
		profile := models.CustomerProfile{AccountID: accountID}
		return r.create(&profile, func() uint { return profile.ID })
	case models.RoleProvider:
		profile := models.ProviderProfile{AccountID: accountID}
		return r.create(&profile, func() uint { return profile.ID })
	}
	return 0, core.NotFoundf("no profile variant registered for role %q", role)
}

// AccountIDForProfile resolves the account behind a profile; used to
// address notification intents.
func (r *ProfileRepo) AccountIDForProfile(role models.Role, profileID uint) (uint, error) {
	switch role {
	case models.RoleAdmin:
		var profile models.AdminProfile
		return r.findID(&profile, "id = ?", profileID, func() uint { return profile.AccountID }, role)
	case models.RoleEmployee:
		var profile models.EmployeeProfile
		return r.findID(&profile, "id = ?", profileID, func() uint { return profile.AccountID }, role)
	case models.RoleCustomer:
		var profile models.CustomerProfile
		return r.findID(&profile, "id = ?", profileID, func() uint { return profile.AccountID }, role)
	case models.RoleProvider:
		var profile models.ProviderProfile
		return r.findID(&profile, "id = ?", profileID, func() uint { return profile.AccountID }, role)
	}
	return 0, core.NotFoundf("no profile variant registered for role %q", role)
}

func (r *ProfileRepo) findID(dest interface{}, query string, arg uint, id func() uint, role models.Role) (uint, error) {
	if err := r.db.Where(query, arg).First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, core.NotFoundf("no %s profile matching %d", role, arg)
		}
		return 0, err
	}
	return id(), nil
}

func (r *ProfileRepo) create(profile interface{}, id func() uint) (uint, error) {
	if err := r.db.Create(profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return 0, core.Conflictf("profile already exists")
		}
		return 0, err
	}
	return id(), nil
}
