package identity

import (
	"time"

	"github.com/evently/marketplace-app/activity"
	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/utils"
)

// AccountRepo persists account identity and credentials.
type AccountRepo interface {
	FindByUsername(username string) (*models.Account, error)
	FindByID(id uint) (*models.Account, error)
	Taken(username, email string) (bool, error)
	Create(account *models.Account) error
	TouchLogin(id uint, at time.Time) error
	UpdateStatus(id uint, from, to models.AccountStatus) (bool, error)
}

// RegisterInput is a registration candidate. The public endpoint restricts
// Role to customer or provider; staff accounts are created by an admin.
type RegisterInput struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// Store verifies credentials and registers accounts.
type Store struct {
	accounts AccountRepo
	resolver *Resolver
	recorder *activity.Recorder
	now      func() time.Time
}

func NewStore(accounts AccountRepo, resolver *Resolver, recorder *activity.Recorder) *Store {
	return &Store{accounts: accounts, resolver: resolver, recorder: recorder, now: time.Now}
}

// Register creates an account plus its role-matching profile. Providers
// start out pending and need an admin review before they can log in;
// customers are active immediately.
func (s *Store) Register(input RegisterInput, allowedRoles ...models.Role) (*models.Account, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, core.Validationf("username, email and password are required")
	}
	if !input.Role.Valid() {
		return nil, core.Validationf("unknown role %q", input.Role)
	}
	if len(allowedRoles) > 0 && !roleIn(input.Role, allowedRoles) {
		return nil, core.Validationf("role %q cannot self-register", input.Role)
	}

	taken, err := s.accounts.Taken(input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, core.Conflictf("username or email already in use")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, core.Internalf("failed to hash password: %v", err)
	}

	status := models.AccountActive
	if input.Role == models.RoleProvider {
		status = models.AccountPending
	}

	account := &models.Account{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
		Status:       status,
	}
	if err := s.accounts.Create(account); err != nil {
		return nil, err
	}

	// First resolution creates the profile row.
	if _, err := s.resolver.Resolve(account); err != nil {
		return nil, err
	}

	s.recorder.Record(account.ID, "account.registered", "Account registered", "account", account.ID, models.Payload{
		"role":   string(account.Role),
		"status": string(account.Status),
	})

	return account, nil
}

// Verify checks username and password against the store. Unknown user,
// wrong password and non-active account all come back as authentication
// failures; only the non-active case carries the forbidden marker, and the
// caller can never tell "no such user" from "wrong password".
func (s *Store) Verify(username, password string) (*models.Account, error) {
	account, err := s.accounts.FindByUsername(username)
	if err != nil {
		// Burn a comparison anyway so the timing does not leak whether
		// the username exists.
		utils.VerifyPassword("x:x", password)
		return nil, core.Authenticationf("invalid credentials")
	}

	if !utils.VerifyPassword(account.PasswordHash, password) {
		return nil, core.Authenticationf("invalid credentials")
	}

	if account.Status != models.AccountActive {
		return nil, core.ErrAccountNotActive
	}

	return account, nil
}

// TouchLogin stamps the account's last login time.
func (s *Store) TouchLogin(accountID uint) error {
	return s.accounts.TouchLogin(accountID, s.now())
}

// Review moves a pending account to active or rejected. Guarded: a second
// review of the same account conflicts.
func (s *Store) Review(ctx core.Context, accountID uint, approve bool) (*models.Account, error) {
	account, err := s.accounts.FindByID(accountID)
	if err != nil {
		return nil, err
	}

	to := models.AccountActive
	if !approve {
		to = models.AccountRejected
	}

	matched, err := s.accounts.UpdateStatus(account.ID, models.AccountPending, to)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, core.Conflictf("account %d is not pending review", account.ID)
	}
	account.Status = to

	s.recorder.Record(ctx.AccountID, "account.reviewed", "Account reviewed", "account", account.ID, models.Payload{
		"status": string(to),
	})

	return account, nil
}

func roleIn(role models.Role, roles []models.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
