package identity

import (
	"errors"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

// ProfileRepo finds and creates the role-matching profile row for an
// account. Create must enforce a unique key on the account id so that at
// most one profile per account can ever exist.
type ProfileRepo interface {
	FindID(role models.Role, accountID uint) (uint, error)
	Create(role models.Role, accountID uint) (uint, error)
}

// Resolver maps an account to its single role-scoped profile and yields
// the caller context every workflow and policy call consumes. It is the
// only place the role→profile-variant mapping lives.
type Resolver struct {
	profiles ProfileRepo
}

func NewResolver(profiles ProfileRepo) *Resolver {
	return &Resolver{profiles: profiles}
}

// Resolve loads the account's profile, creating it on first resolution.
// Resolution is idempotent: a second call returns the same profile id and
// never creates a second row.
func (r *Resolver) Resolve(account *models.Account) (core.Context, error) {
	if !account.Role.Valid() {
		// Unreachable for the closed role set; a programming error.
		return core.Context{}, core.NotFoundf("no profile variant registered for role %q", account.Role)
	}

	profileID, err := r.profiles.FindID(account.Role, account.ID)
	if errors.Is(err, core.ErrNotFound) {
		profileID, err = r.profiles.Create(account.Role, account.ID)
		if errors.Is(err, core.ErrConflict) {
			// Lost the creation race; the winner's row is ours.
			profileID, err = r.profiles.FindID(account.Role, account.ID)
		}
	}
	if err != nil {
		return core.Context{}, err
	}

	return core.Context{
		AccountID: account.ID,
		Role:      account.Role,
		ProfileID: profileID,
		Status:    account.Status,
	}, nil
}
