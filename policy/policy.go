package policy

import (
	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

// Action names every gated operation. Anything not listed in the table for
// a role is denied.
type Action string

const (
	EventRead   Action = "event.read"
	EventCreate Action = "event.create"
	EventUpdate Action = "event.update"

	ProposalRead   Action = "proposal.read"
	ProposalCreate Action = "proposal.create"
	ProposalEdit   Action = "proposal.edit"
	ProposalSend   Action = "proposal.send"
	ProposalDecide Action = "proposal.decide"

	BookingRead     Action = "booking.read"
	BookingCreate   Action = "booking.create"
	BookingRespond  Action = "booking.respond"
	BookingCancel   Action = "booking.cancel"
	BookingComplete Action = "booking.complete"

	ServiceRead   Action = "service.read"
	ServiceManage Action = "service.manage"

	ProfileRead   Action = "profile.read"
	ProfileUpdate Action = "profile.update"

	AccountReview Action = "account.review"
	ActivityRead  Action = "activity.read"
)

// Resource carries the ownership facts a rule may depend on. Zero values
// mean "no such side"; callers fill in what the entity has.
type Resource struct {
	OwnerProfileID    uint // customer-side owner (event owner, booking customer)
	ProviderProfileID uint // provider side of a booking or service
	AuthorProfileID   uint // staff author of a proposal
}

// Rule decides an action for a resolved caller against a resource.
type Rule func(ctx core.Context, res Resource) bool

func allow(core.Context, Resource) bool { return true }

func ownerOnly(ctx core.Context, res Resource) bool {
	return res.OwnerProfileID == ctx.ProfileID
}

func providerOnly(ctx core.Context, res Resource) bool {
	return res.ProviderProfileID == ctx.ProfileID
}

func authorOnly(ctx core.Context, res Resource) bool {
	return res.AuthorProfileID == ctx.ProfileID
}

// staffRules is shared by admin and employee: read everything, author
// proposals, complete bookings. Deciding proposals is reserved to the
// owning customer and deliberately absent here.
func staffRules() map[Action]Rule {
	return map[Action]Rule{
		EventRead:       allow,
		EventUpdate:     allow,
		ProposalRead:    allow,
		ProposalCreate:  allow,
		ProposalEdit:    allow,
		ProposalSend:    authorOnly,
		BookingRead:     allow,
		BookingComplete: allow,
		ServiceRead:     allow,
		ProfileRead:     allow,
		ProfileUpdate:   allow,
		ActivityRead:    allow,
	}
}

var table = map[models.Role]map[Action]Rule{
	models.RoleAdmin: func() map[Action]Rule {
		rules := staffRules()
		rules[AccountReview] = allow
		return rules
	}(),
	models.RoleEmployee: staffRules(),
	models.RoleCustomer: {
		EventRead:      ownerOnly,
		EventCreate:    allow,
		EventUpdate:    ownerOnly,
		ProposalRead:   ownerOnly,
		ProposalDecide: ownerOnly,
		BookingRead:    ownerOnly,
		BookingCreate:  ownerOnly,
		BookingCancel:  ownerOnly,
		ServiceRead:    allow,
		ProfileRead:    allow,
		ProfileUpdate:  allow,
	},
	models.RoleProvider: {
		BookingRead:    providerOnly,
		BookingRespond: providerOnly,
		BookingCancel:  providerOnly,
		ServiceRead:    allow,
		ServiceManage:  providerOnly,
		ProfileRead:    allow,
		ProfileUpdate:  allow,
	},
}

// Allowed evaluates the table for the caller's role. Deny by default: a
// missing role or action entry is a deny.
func Allowed(ctx core.Context, action Action, res Resource) bool {
	rules, ok := table[ctx.Role]
	if !ok {
		return false
	}
	rule, ok := rules[action]
	if !ok {
		return false
	}
	return rule(ctx, res)
}

// Check evaluates the table and returns ErrAuthorization on deny. Callers
// must check before mutating; a deny always surfaces, never degrades to a
// no-op.
func Check(ctx core.Context, action Action, res Resource) error {
	if !Allowed(ctx, action, res) {
		return core.Authorizationf("role %s may not perform %s", ctx.Role, action)
	}
	return nil
}
