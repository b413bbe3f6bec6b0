package core

import (
	"github.com/evently/marketplace-app/models"
)

// Context is the resolved identity of the caller: account, role and the
// role-matching profile. It is passed explicitly into every workflow and
// policy call; there is no ambient "current user".
type Context struct {
	AccountID uint
	Role      models.Role
	ProfileID uint
	Status    models.AccountStatus
}

// Staff reports whether the caller is admin or employee.
func (c Context) Staff() bool {
	return c.Role.Staff()
}
