package workflow

import (
	"sync"
	"time"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/notify"
)

// In-memory repositories for the workflow tests. Transition mirrors the
// SQL conditional update: it only matches when the row still holds the
// expected pre-state, under a lock so concurrent callers see one winner.

var (
	staffCtx     = core.Context{AccountID: 1, Role: models.RoleEmployee, ProfileID: 10, Status: models.AccountActive}
	customerCtx  = core.Context{AccountID: 2, Role: models.RoleCustomer, ProfileID: 20, Status: models.AccountActive}
	providerXCtx = core.Context{AccountID: 3, Role: models.RoleProvider, ProfileID: 30, Status: models.AccountActive}
	providerYCtx = core.Context{AccountID: 4, Role: models.RoleProvider, ProfileID: 40, Status: models.AccountActive}
)

type eventRepoStub struct {
	events map[uint]*models.Event
}

func (s *eventRepoStub) FindByID(id uint) (*models.Event, error) {
	if e, ok := s.events[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, core.NotFoundf("event %d", id)
}

type serviceRepoStub struct {
	services map[uint]*models.Service
}

func (s *serviceRepoStub) FindByID(id uint) (*models.Service, error) {
	if svc, ok := s.services[id]; ok {
		copied := *svc
		return &copied, nil
	}
	return nil, core.NotFoundf("service %d", id)
}

type proposalRepoStub struct {
	mu        sync.Mutex
	proposals map[uint]*models.Proposal
	nextID    uint
}

func newProposalRepoStub() *proposalRepoStub {
	return &proposalRepoStub{proposals: make(map[uint]*models.Proposal)}
}

func (s *proposalRepoStub) Create(p *models.Proposal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	p.ID = s.nextID
	copied := *p
	s.proposals[p.ID] = &copied
	return nil
}

func (s *proposalRepoStub) FindByID(id uint) (*models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.proposals[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, core.NotFoundf("proposal %d", id)
}

func (s *proposalRepoStub) ListByEvent(eventID uint) ([]models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Proposal
	for _, p := range s.proposals {
		if p.EventID == eventID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *proposalRepoStub) UpdateDraft(p *models.Proposal) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.proposals[p.ID]
	if !ok || stored.Status != models.ProposalDraft {
		return false, nil
	}
	copied := *p
	s.proposals[p.ID] = &copied
	return true, nil
}

func (s *proposalRepoStub) Transition(id uint, from, to models.ProposalStatus, set map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.proposals[id]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = to
	if feedback, ok := set["feedback"].(string); ok {
		stored.Feedback = feedback
	}
	return true, nil
}

type bookingRepoStub struct {
	mu       sync.Mutex
	bookings map[uint]*models.Booking
	nextID   uint
}

func newBookingRepoStub() *bookingRepoStub {
	return &bookingRepoStub{bookings: make(map[uint]*models.Booking)}
}

func (s *bookingRepoStub) Create(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	copied := *b
	s.bookings[b.ID] = &copied
	return nil
}

func (s *bookingRepoStub) FindByID(id uint) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bookings[id]; ok {
		copied := *b
		return &copied, nil
	}
	return nil, core.NotFoundf("booking %d", id)
}

func (s *bookingRepoStub) Transition(id uint, from, to models.BookingStatus, set map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.bookings[id]
	if !ok || stored.Status != from {
		return false, nil
	}
	stored.Status = to
	if reason, ok := set["cancel_reason"].(string); ok {
		stored.CancelReason = reason
	}
	return true, nil
}

func (s *bookingRepoStub) ListConfirmedEndedBefore(t time.Time) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Booking
	for _, b := range s.bookings {
		if b.Status == models.BookingConfirmed && b.EndTime.Before(t) {
			out = append(out, *b)
		}
	}
	return out, nil
}

type directoryStub struct {
	accounts map[uint]uint // profile id → account id, roles share the space in tests
}

func (s *directoryStub) AccountIDForProfile(role models.Role, profileID uint) (uint, error) {
	if id, ok := s.accounts[profileID]; ok {
		return id, nil
	}
	return 0, core.NotFoundf("no %s profile %d", role, profileID)
}

type recorderStub struct {
	mu      sync.Mutex
	actions []string
}

func (s *recorderStub) Record(actorAccountID uint, action, description, entityType string, entityID uint, payload models.Payload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
}

type emitterStub struct {
	mu      sync.Mutex
	intents []notify.Intent
}

func (s *emitterStub) Emit(intent notify.Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents = append(s.intents, intent)
}

func (s *emitterStub) last() (notify.Intent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.intents) == 0 {
		return notify.Intent{}, false
	}
	return s.intents[len(s.intents)-1], true
}
