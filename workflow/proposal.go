package workflow

import (
	"fmt"
	"time"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/notify"
	"github.com/evently/marketplace-app/policy"
)

const defaultProposalValidity = 14 * 24 * time.Hour

type proposalAction string

const (
	proposalSend   proposalAction = "send"
	proposalAccept proposalAction = "accept"
	proposalReject proposalAction = "reject"
	proposalExpire proposalAction = "expire"
)

// proposalTransitions is the full machine: draft → pending →
// {accepted, rejected, expired}. Anything absent here is an illegal
// transition; the three right-hand states are terminal.
var proposalTransitions = map[models.ProposalStatus]map[proposalAction]models.ProposalStatus{
	models.ProposalDraft: {
		proposalSend: models.ProposalPending,
	},
	models.ProposalPending: {
		proposalAccept: models.ProposalAccepted,
		proposalReject: models.ProposalRejected,
		proposalExpire: models.ProposalExpired,
	},
}

func nextProposalStatus(current models.ProposalStatus, action proposalAction) (models.ProposalStatus, bool) {
	to, ok := proposalTransitions[current][action]
	return to, ok
}

// ProposalInput carries the caller-supplied fields for create. Any
// supplied total is ignored: TotalPrice is always recomputed from Items.
type ProposalInput struct {
	EventID     uint             `json:"event_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Items       models.LineItems `json:"items"`
	ValidUntil  time.Time        `json:"valid_until"`
}

// ProposalPatch carries draft edits; nil fields are left untouched.
type ProposalPatch struct {
	Title       *string           `json:"title"`
	Description *string           `json:"description"`
	Items       *models.LineItems `json:"items"`
	ValidUntil  *time.Time        `json:"valid_until"`
}

// ProposalWorkflow owns the proposal state machine. Expiry is evaluated
// lazily on read: there is no background sweep, a pending proposal past
// its ValidUntil is transitioned the first time anyone looks at it.
type ProposalWorkflow struct {
	proposals ProposalRepo
	events    EventRepo
	profiles  ProfileDirectory
	recorder  Recorder
	emitter   notify.Emitter
	now       func() time.Time
}

func NewProposalWorkflow(proposals ProposalRepo, events EventRepo, profiles ProfileDirectory, recorder Recorder, emitter notify.Emitter) *ProposalWorkflow {
	return &ProposalWorkflow{
		proposals: proposals,
		events:    events,
		profiles:  profiles,
		recorder:  recorder,
		emitter:   emitter,
		now:       time.Now,
	}
}

// Create drafts a proposal for an event. Staff only; the money invariant
// is enforced by recomputing the total from the items.
func (w *ProposalWorkflow) Create(ctx core.Context, input ProposalInput) (*models.Proposal, error) {
	if err := policy.Check(ctx, policy.ProposalCreate, policy.Resource{}); err != nil {
		return nil, err
	}

	event, err := w.events.FindByID(input.EventID)
	if err != nil {
		return nil, err
	}

	if err := validateItems(input.Items); err != nil {
		return nil, err
	}

	validUntil := input.ValidUntil
	if validUntil.IsZero() {
		validUntil = w.now().Add(defaultProposalValidity)
	}

	proposal := &models.Proposal{
		EventID:         event.ID,
		AuthorProfileID: ctx.ProfileID,
		AuthorRole:      ctx.Role,
		Title:           input.Title,
		Description:     input.Description,
		Items:           input.Items,
		TotalPrice:      input.Items.Total(),
		Status:          models.ProposalDraft,
		ValidUntil:      validUntil,
	}
	if err := w.proposals.Create(proposal); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "proposal.created", "Proposal drafted", "proposal", proposal.ID, models.Payload{
		"event_id":    event.ID,
		"total_price": proposal.TotalPrice,
	})

	return proposal, nil
}

// Edit patches a draft. Only drafts are editable and the total is
// recomputed after every change.
func (w *ProposalWorkflow) Edit(ctx core.Context, id uint, patch ProposalPatch) (*models.Proposal, error) {
	proposal, err := w.proposals.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.ProposalEdit, policy.Resource{AuthorProfileID: proposal.AuthorProfileID}); err != nil {
		return nil, err
	}

	if proposal.Status != models.ProposalDraft {
		return nil, core.Conflictf("proposal %d is %s, only drafts can be edited", id, proposal.Status)
	}

	if patch.Title != nil {
		proposal.Title = *patch.Title
	}
	if patch.Description != nil {
		proposal.Description = *patch.Description
	}
	if patch.Items != nil {
		if err := validateItems(*patch.Items); err != nil {
			return nil, err
		}
		proposal.Items = *patch.Items
	}
	if patch.ValidUntil != nil {
		proposal.ValidUntil = *patch.ValidUntil
	}
	proposal.TotalPrice = proposal.Items.Total()

	matched, err := w.proposals.UpdateDraft(proposal)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, core.Conflictf("proposal %d is no longer a draft", id)
	}

	w.recorder.Record(ctx.AccountID, "proposal.edited", "Proposal edited", "proposal", proposal.ID, models.Payload{
		"total_price": proposal.TotalPrice,
	})

	return proposal, nil
}

// Send moves a draft to pending and notifies the event's customer. Only
// the author may send.
func (w *ProposalWorkflow) Send(ctx core.Context, id uint) (*models.Proposal, error) {
	proposal, err := w.proposals.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.ProposalSend, policy.Resource{AuthorProfileID: proposal.AuthorProfileID}); err != nil {
		return nil, err
	}

	if err := w.transition(proposal, proposalSend, nil); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "proposal.sent", "Proposal sent to customer", "proposal", proposal.ID, nil)

	event, err := w.events.FindByID(proposal.EventID)
	if err == nil {
		w.notifyProfile(models.RoleCustomer, event.CustomerProfileID, notify.Intent{
			Event:   "proposal.sent",
			Subject: fmt.Sprintf("New proposal: %s", proposal.Title),
			Body:    fmt.Sprintf("You received a proposal for your event %q. It is valid until %s.", event.Title, proposal.ValidUntil.Format("2006-01-02")),
		})
	}

	return proposal, nil
}

// Decide moves a pending proposal to accepted or rejected. Only the
// customer owning the proposal's event may decide, and a rejection must
// carry feedback. The authoring staff member is notified.
func (w *ProposalWorkflow) Decide(ctx core.Context, id uint, outcome models.ProposalStatus, feedback string) (*models.Proposal, error) {
	proposal, err := w.proposals.FindByID(id)
	if err != nil {
		return nil, err
	}
	proposal = w.expireIfDue(proposal)

	event, err := w.events.FindByID(proposal.EventID)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.ProposalDecide, policy.Resource{OwnerProfileID: event.CustomerProfileID}); err != nil {
		return nil, err
	}

	var action proposalAction
	switch outcome {
	case models.ProposalAccepted:
		action = proposalAccept
	case models.ProposalRejected:
		action = proposalReject
		if feedback == "" {
			return nil, core.Validationf("rejecting a proposal requires feedback")
		}
	default:
		return nil, core.Validationf("outcome must be %q or %q", models.ProposalAccepted, models.ProposalRejected)
	}

	proposal.Feedback = feedback
	if err := w.transition(proposal, action, map[string]interface{}{"feedback": feedback}); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "proposal.decided", fmt.Sprintf("Proposal %s", outcome), "proposal", proposal.ID, models.Payload{
		"outcome": string(outcome),
	})

	w.notifyProfile(proposal.AuthorRole, proposal.AuthorProfileID, notify.Intent{
		Event:   "proposal.decided",
		Subject: fmt.Sprintf("Proposal %q was %s", proposal.Title, outcome),
		Body:    fmt.Sprintf("The customer has %s your proposal %q.", outcome, proposal.Title),
	})

	return proposal, nil
}

// Get returns one proposal, policy-filtered, with lazy expiry applied.
func (w *ProposalWorkflow) Get(ctx core.Context, id uint) (*models.Proposal, error) {
	proposal, err := w.proposals.FindByID(id)
	if err != nil {
		return nil, err
	}

	event, err := w.events.FindByID(proposal.EventID)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.ProposalRead, policy.Resource{OwnerProfileID: event.CustomerProfileID}); err != nil {
		return nil, err
	}

	return w.expireIfDue(proposal), nil
}

// ListForEvent returns an event's proposals, policy-filtered, with lazy
// expiry applied to each.
func (w *ProposalWorkflow) ListForEvent(ctx core.Context, eventID uint) ([]models.Proposal, error) {
	event, err := w.events.FindByID(eventID)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.ProposalRead, policy.Resource{OwnerProfileID: event.CustomerProfileID}); err != nil {
		return nil, err
	}

	proposals, err := w.proposals.ListByEvent(eventID)
	if err != nil {
		return nil, err
	}
	for i := range proposals {
		proposals[i] = *w.expireIfDue(&proposals[i])
	}
	return proposals, nil
}

// transition consults the machine and persists the move as a conditional
// update. A row not in the expected pre-state surfaces as the same
// conflict as an illegal transition; callers cannot tell a stale read
// from a policy violation and should not need to.
func (w *ProposalWorkflow) transition(proposal *models.Proposal, action proposalAction, set map[string]interface{}) error {
	to, ok := nextProposalStatus(proposal.Status, action)
	if !ok {
		return core.Conflictf("proposal %d cannot %s while %s", proposal.ID, action, proposal.Status)
	}

	matched, err := w.proposals.Transition(proposal.ID, proposal.Status, to, set)
	if err != nil {
		return err
	}
	if !matched {
		return core.Conflictf("proposal %d is no longer %s", proposal.ID, proposal.Status)
	}

	proposal.Status = to
	return nil
}

// expireIfDue applies the lazy expiry rule: a pending proposal past its
// ValidUntil is reported (and opportunistically persisted) as expired.
// Losing the persist race to a concurrent reader is fine; the outcome is
// the same.
func (w *ProposalWorkflow) expireIfDue(proposal *models.Proposal) *models.Proposal {
	if proposal.Status != models.ProposalPending || !w.now().After(proposal.ValidUntil) {
		return proposal
	}

	if _, err := w.proposals.Transition(proposal.ID, models.ProposalPending, models.ProposalExpired, nil); err == nil {
		proposal.Status = models.ProposalExpired
	}
	return proposal
}

func (w *ProposalWorkflow) notifyProfile(role models.Role, profileID uint, intent notify.Intent) {
	accountID, err := w.profiles.AccountIDForProfile(role, profileID)
	if err != nil {
		return
	}
	intent.RecipientAccountID = accountID
	w.emitter.Emit(intent)
}

func validateItems(items models.LineItems) error {
	if len(items) == 0 {
		return core.Validationf("a proposal needs at least one line item")
	}
	for i, item := range items {
		if item.Name == "" {
			return core.Validationf("item %d has no name", i)
		}
		if item.UnitPrice < 0 {
			return core.Validationf("item %q has a negative unit price", item.Name)
		}
		if item.Quantity <= 0 {
			return core.Validationf("item %q needs a positive quantity", item.Name)
		}
	}
	return nil
}
