package identity

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/evently/marketplace-app/activity"
	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/utils"
)

type accountStoreStub struct {
	accounts map[string]*models.Account
	nextID   uint
	touched  []uint
}

func newAccountStoreStub() *accountStoreStub {
	return &accountStoreStub{accounts: make(map[string]*models.Account)}
}

func (s *accountStoreStub) FindByUsername(username string) (*models.Account, error) {
	account, ok := s.accounts[username]
	if !ok {
		return nil, core.NotFoundf("account %q", username)
	}
	copied := *account
	return &copied, nil
}

func (s *accountStoreStub) FindByID(id uint) (*models.Account, error) {
	for _, account := range s.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, core.NotFoundf("account %d", id)
}

func (s *accountStoreStub) Taken(username, email string) (bool, error) {
	for _, account := range s.accounts {
		if account.Username == username || account.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *accountStoreStub) Create(account *models.Account) error {
	s.nextID++
	account.ID = s.nextID
	copied := *account
	s.accounts[account.Username] = &copied
	return nil
}

func (s *accountStoreStub) TouchLogin(id uint, at time.Time) error {
	s.touched = append(s.touched, id)
	return nil
}

func (s *accountStoreStub) UpdateStatus(id uint, from, to models.AccountStatus) (bool, error) {
	for _, account := range s.accounts {
		if account.ID == id && account.Status == from {
			account.Status = to
			return true, nil
		}
	}
	return false, nil
}

type profileStoreStub struct {
	profiles    map[string]uint
	nextID      uint
	createCalls int
	conflictOn  string // simulate losing the creation race once for this key
}

func newProfileStoreStub() *profileStoreStub {
	return &profileStoreStub{profiles: make(map[string]uint)}
}

func key(role models.Role, accountID uint) string {
	return fmt.Sprintf("%s/%d", role, accountID)
}

func (s *profileStoreStub) FindID(role models.Role, accountID uint) (uint, error) {
	if id, ok := s.profiles[key(role, accountID)]; ok {
		return id, nil
	}
	return 0, core.NotFoundf("no %s profile for account %d", role, accountID)
}

func (s *profileStoreStub) Create(role models.Role, accountID uint) (uint, error) {
	s.createCalls++
	k := key(role, accountID)
	if s.conflictOn == k {
		// The racing winner's row appears, then we conflict.
		s.nextID++
		s.profiles[k] = s.nextID
		s.conflictOn = ""
		return 0, core.Conflictf("profile already exists")
	}
	if _, ok := s.profiles[k]; ok {
		return 0, core.Conflictf("profile already exists")
	}
	s.nextID++
	s.profiles[k] = s.nextID
	return s.nextID, nil
}

type activitySink struct {
	actions []string
}

func (s *activitySink) Append(record *models.Activity) error {
	s.actions = append(s.actions, record.Action)
	return nil
}

func newTestStore() (*Store, *accountStoreStub, *profileStoreStub, *activitySink) {
	accounts := newAccountStoreStub()
	profiles := newProfileStoreStub()
	sink := &activitySink{}
	store := NewStore(accounts, NewResolver(profiles), activity.NewRecorder(sink))
	return store, accounts, profiles, sink
}

func TestRegister(t *testing.T) {
	t.Run("customer registers straight to active with a profile", func(t *testing.T) {
		store, _, profiles, sink := newTestStore()

		account, err := store.Register(RegisterInput{
			Username: "carla", Email: "carla@example.com", Password: "pw", Role: models.RoleCustomer,
		}, models.RoleCustomer, models.RoleProvider)
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if account.Status != models.AccountActive {
			t.Fatalf("expected active, got %s", account.Status)
		}
		if _, err := profiles.FindID(models.RoleCustomer, account.ID); err != nil {
			t.Fatalf("no profile created: %v", err)
		}
		if len(sink.actions) != 1 || sink.actions[0] != "account.registered" {
			t.Fatalf("expected one registration activity, got %v", sink.actions)
		}
	})

	t.Run("provider registers pending review", func(t *testing.T) {
		store, _, _, _ := newTestStore()

		account, err := store.Register(RegisterInput{
			Username: "paula", Email: "paula@example.com", Password: "pw", Role: models.RoleProvider,
		}, models.RoleCustomer, models.RoleProvider)
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if account.Status != models.AccountPending {
			t.Fatalf("expected pending, got %s", account.Status)
		}
	})

	t.Run("staff roles cannot self-register", func(t *testing.T) {
		store, _, _, _ := newTestStore()

		_, err := store.Register(RegisterInput{
			Username: "eve", Email: "eve@example.com", Password: "pw", Role: models.RoleAdmin,
		}, models.RoleCustomer, models.RoleProvider)
		if !errors.Is(err, core.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("duplicate username conflicts", func(t *testing.T) {
		store, _, _, _ := newTestStore()

		input := RegisterInput{Username: "carla", Email: "carla@example.com", Password: "pw", Role: models.RoleCustomer}
		if _, err := store.Register(input); err != nil {
			t.Fatalf("first Register failed: %v", err)
		}
		_, err := store.Register(input)
		if !errors.Is(err, core.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func TestVerify(t *testing.T) {
	store, accounts, _, _ := newTestStore()
	if _, err := store.Register(RegisterInput{
		Username: "carla", Email: "carla@example.com", Password: "correct-horse", Role: models.RoleCustomer,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("valid credentials", func(t *testing.T) {
		account, err := store.Verify("carla", "correct-horse")
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if account.Username != "carla" {
			t.Fatalf("wrong account: %s", account.Username)
		}
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		_, wrongPass := store.Verify("carla", "nope")
		_, unknownUser := store.Verify("nobody", "nope")
		if !errors.Is(wrongPass, core.ErrAuthentication) || !errors.Is(unknownUser, core.ErrAuthentication) {
			t.Fatalf("expected ErrAuthentication for both, got %v / %v", wrongPass, unknownUser)
		}
		if wrongPass.Error() != unknownUser.Error() {
			t.Fatalf("messages differ: %q vs %q", wrongPass, unknownUser)
		}
	})

	t.Run("pending account with correct password is rejected", func(t *testing.T) {
		hash, err := utils.HashPassword("pw")
		if err != nil {
			t.Fatalf("HashPassword failed: %v", err)
		}
		accounts.accounts["paula"] = &models.Account{
			ID: 99, Username: "paula", Email: "paula@example.com",
			PasswordHash: hash, Role: models.RoleProvider, Status: models.AccountPending,
		}

		_, err = store.Verify("paula", "pw")
		if !errors.Is(err, core.ErrAccountNotActive) {
			t.Fatalf("expected ErrAccountNotActive, got %v", err)
		}
		if !errors.Is(err, core.ErrAuthentication) {
			t.Fatal("ErrAccountNotActive must still be an authentication failure")
		}
	})
}

func TestResolver(t *testing.T) {
	t.Run("resolution is idempotent", func(t *testing.T) {
		profiles := newProfileStoreStub()
		resolver := NewResolver(profiles)
		account := &models.Account{ID: 7, Role: models.RoleProvider, Status: models.AccountActive}

		first, err := resolver.Resolve(account)
		if err != nil {
			t.Fatalf("first Resolve failed: %v", err)
		}
		second, err := resolver.Resolve(account)
		if err != nil {
			t.Fatalf("second Resolve failed: %v", err)
		}
		if first.ProfileID != second.ProfileID {
			t.Fatalf("profile ids differ: %d vs %d", first.ProfileID, second.ProfileID)
		}
		if profiles.createCalls != 1 {
			t.Fatalf("expected exactly one Create, got %d", profiles.createCalls)
		}
	})

	t.Run("losing the creation race falls back to the winner's row", func(t *testing.T) {
		profiles := newProfileStoreStub()
		account := &models.Account{ID: 7, Role: models.RoleCustomer, Status: models.AccountActive}
		profiles.conflictOn = key(models.RoleCustomer, account.ID)

		resolved, err := NewResolver(profiles).Resolve(account)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if resolved.ProfileID == 0 {
			t.Fatal("expected the winner's profile id")
		}
	})

	t.Run("unknown role fails", func(t *testing.T) {
		resolver := NewResolver(newProfileStoreStub())
		_, err := resolver.Resolve(&models.Account{ID: 7, Role: models.Role("ghost")})
		if !errors.Is(err, core.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("context carries account, role and profile", func(t *testing.T) {
		profiles := newProfileStoreStub()
		account := &models.Account{ID: 9, Role: models.RoleEmployee, Status: models.AccountActive}

		resolved, err := NewResolver(profiles).Resolve(account)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if resolved.AccountID != 9 || resolved.Role != models.RoleEmployee || !resolved.Staff() {
			t.Fatalf("unexpected context: %+v", resolved)
		}
	})
}

func TestReview(t *testing.T) {
	store, accounts, _, _ := newTestStore()
	if _, err := store.Register(RegisterInput{
		Username: "paula", Email: "paula@example.com", Password: "pw", Role: models.RoleProvider,
	}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	admin := core.Context{AccountID: 1, Role: models.RoleAdmin, ProfileID: 1, Status: models.AccountActive}
	paula := accounts.accounts["paula"]

	reviewed, err := store.Review(admin, paula.ID, true)
	if err != nil {
		t.Fatalf("Review failed: %v", err)
	}
	if reviewed.Status != models.AccountActive {
		t.Fatalf("expected active, got %s", reviewed.Status)
	}

	// A second review finds the account no longer pending.
	if _, err := store.Review(admin, paula.ID, false); !errors.Is(err, core.ErrConflict) {
		t.Fatalf("expected ErrConflict on double review, got %v", err)
	}
}
