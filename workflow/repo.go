package workflow

import (
	"time"

	"github.com/evently/marketplace-app/models"
)

// Repositories the workflows run on. Transition implementations must be a
// single conditional update ("only if status still equals from") so that
// concurrent transitions on one row collapse to exactly one winner; a
// false return means the row was not in the expected state.

type EventRepo interface {
	FindByID(id uint) (*models.Event, error)
}

type ServiceRepo interface {
	FindByID(id uint) (*models.Service, error)
}

type ProposalRepo interface {
	Create(p *models.Proposal) error
	FindByID(id uint) (*models.Proposal, error)
	ListByEvent(eventID uint) ([]models.Proposal, error)
	// UpdateDraft persists an edit, guarded on the row still being a draft.
	UpdateDraft(p *models.Proposal) (bool, error)
	Transition(id uint, from, to models.ProposalStatus, set map[string]interface{}) (bool, error)
}

type BookingRepo interface {
	Create(b *models.Booking) error
	FindByID(id uint) (*models.Booking, error)
	Transition(id uint, from, to models.BookingStatus, set map[string]interface{}) (bool, error)
	ListConfirmedEndedBefore(t time.Time) ([]models.Booking, error)
}

// ProfileDirectory resolves the account behind a profile so notification
// intents can name their recipient.
type ProfileDirectory interface {
	AccountIDForProfile(role models.Role, profileID uint) (uint, error)
}

// Recorder appends audit records; implemented by activity.Recorder.
type Recorder interface {
	Record(actorAccountID uint, action, description, entityType string, entityID uint, payload models.Payload)
}
