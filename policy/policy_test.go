package policy

import (
	"errors"
	"testing"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

var allActions = []Action{
	EventRead, EventCreate, EventUpdate,
	ProposalRead, ProposalCreate, ProposalEdit, ProposalSend, ProposalDecide,
	BookingRead, BookingCreate, BookingRespond, BookingCancel, BookingComplete,
	ServiceRead, ServiceManage,
	ProfileRead, ProfileUpdate,
	AccountReview, ActivityRead,
}

func ctxFor(role models.Role, profileID uint) core.Context {
	return core.Context{AccountID: 1, Role: role, ProfileID: profileID, Status: models.AccountActive}
}

func TestDenyByDefault(t *testing.T) {
	t.Run("unknown role is denied everything", func(t *testing.T) {
		ctx := ctxFor(models.Role("intruder"), 1)
		for _, action := range allActions {
			if Allowed(ctx, action, Resource{OwnerProfileID: 1, ProviderProfileID: 1, AuthorProfileID: 1}) {
				t.Fatalf("unknown role was allowed %s", action)
			}
		}
	})

	t.Run("unknown action is denied for every role", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleAdmin, models.RoleEmployee, models.RoleCustomer, models.RoleProvider} {
			if Allowed(ctxFor(role, 1), Action("made.up"), Resource{}) {
				t.Fatalf("role %s was allowed an unlisted action", role)
			}
		}
	})

	t.Run("actions absent from a role's table are denied", func(t *testing.T) {
		cases := []struct {
			role   models.Role
			action Action
		}{
			{models.RoleProvider, EventRead},
			{models.RoleProvider, ProposalRead},
			{models.RoleProvider, ProposalDecide},
			{models.RoleCustomer, ProposalCreate},
			{models.RoleCustomer, BookingRespond},
			{models.RoleCustomer, BookingComplete},
			{models.RoleEmployee, ProposalDecide},
			{models.RoleEmployee, AccountReview},
			{models.RoleAdmin, ProposalDecide},
			{models.RoleAdmin, BookingRespond},
			{models.RoleAdmin, BookingCancel},
		}
		for _, tc := range cases {
			res := Resource{OwnerProfileID: 1, ProviderProfileID: 1, AuthorProfileID: 1}
			if Allowed(ctxFor(tc.role, 1), tc.action, res) {
				t.Fatalf("%s was allowed %s", tc.role, tc.action)
			}
		}
	})
}

func TestOwnershipRules(t *testing.T) {
	t.Run("customer sees only own events", func(t *testing.T) {
		customer := ctxFor(models.RoleCustomer, 20)
		if !Allowed(customer, EventRead, Resource{OwnerProfileID: 20}) {
			t.Fatal("customer denied their own event")
		}
		if Allowed(customer, EventRead, Resource{OwnerProfileID: 21}) {
			t.Fatal("customer allowed someone else's event")
		}
	})

	t.Run("customer decides only proposals on own events", func(t *testing.T) {
		customer := ctxFor(models.RoleCustomer, 20)
		if !Allowed(customer, ProposalDecide, Resource{OwnerProfileID: 20}) {
			t.Fatal("customer denied deciding on their own event's proposal")
		}
		if Allowed(customer, ProposalDecide, Resource{OwnerProfileID: 99}) {
			t.Fatal("customer allowed deciding a foreign proposal")
		}
	})

	t.Run("provider responds only to own bookings", func(t *testing.T) {
		provider := ctxFor(models.RoleProvider, 30)
		if !Allowed(provider, BookingRespond, Resource{ProviderProfileID: 30}) {
			t.Fatal("provider denied their own booking")
		}
		if Allowed(provider, BookingRespond, Resource{ProviderProfileID: 40}) {
			t.Fatal("provider allowed another provider's booking")
		}
	})

	t.Run("staff read everything but never decide", func(t *testing.T) {
		for _, role := range []models.Role{models.RoleAdmin, models.RoleEmployee} {
			staff := ctxFor(role, 10)
			if !Allowed(staff, EventRead, Resource{OwnerProfileID: 999}) {
				t.Fatalf("%s denied reading a foreign event", role)
			}
			if !Allowed(staff, BookingRead, Resource{}) {
				t.Fatalf("%s denied reading bookings", role)
			}
			if Allowed(staff, ProposalDecide, Resource{OwnerProfileID: 10}) {
				t.Fatalf("%s allowed to decide a proposal", role)
			}
		}
	})

	t.Run("proposal send is author-only even for staff", func(t *testing.T) {
		author := ctxFor(models.RoleEmployee, 10)
		other := ctxFor(models.RoleEmployee, 11)
		if !Allowed(author, ProposalSend, Resource{AuthorProfileID: 10}) {
			t.Fatal("author denied sending their own proposal")
		}
		if Allowed(other, ProposalSend, Resource{AuthorProfileID: 10}) {
			t.Fatal("non-author staff allowed to send")
		}
	})

	t.Run("only admin reviews accounts", func(t *testing.T) {
		if !Allowed(ctxFor(models.RoleAdmin, 10), AccountReview, Resource{}) {
			t.Fatal("admin denied account review")
		}
		for _, role := range []models.Role{models.RoleEmployee, models.RoleCustomer, models.RoleProvider} {
			if Allowed(ctxFor(role, 10), AccountReview, Resource{}) {
				t.Fatalf("%s allowed account review", role)
			}
		}
	})
}

func TestCheckReturnsAuthorizationError(t *testing.T) {
	err := Check(ctxFor(models.RoleProvider, 30), EventRead, Resource{})
	if !errors.Is(err, core.ErrAuthorization) {
		t.Fatalf("expected ErrAuthorization, got %v", err)
	}

	if err := Check(ctxFor(models.RoleCustomer, 20), EventRead, Resource{OwnerProfileID: 20}); err != nil {
		t.Fatalf("expected allow, got %v", err)
	}
}
