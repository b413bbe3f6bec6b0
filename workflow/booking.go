package workflow

import (
	"fmt"
	"time"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
	"github.com/evently/marketplace-app/notify"
	"github.com/evently/marketplace-app/policy"
)

type bookingAction string

const (
	bookingConfirm  bookingAction = "confirm"
	bookingDecline  bookingAction = "decline"
	bookingCancel   bookingAction = "cancel"
	bookingComplete bookingAction = "complete"
)

// bookingTransitions is the full machine: pending → {confirmed, declined},
// confirmed → {completed, cancelled}. Declined, completed and cancelled
// are terminal.
var bookingTransitions = map[models.BookingStatus]map[bookingAction]models.BookingStatus{
	models.BookingPending: {
		bookingConfirm: models.BookingConfirmed,
		bookingDecline: models.BookingDeclined,
	},
	models.BookingConfirmed: {
		bookingComplete: models.BookingCompleted,
		bookingCancel:   models.BookingCancelled,
	},
}

func nextBookingStatus(current models.BookingStatus, action bookingAction) (models.BookingStatus, bool) {
	to, ok := bookingTransitions[current][action]
	return to, ok
}

// BookingInput carries a customer's booking request. A zero PriceOverride
// means "use the service's base price".
type BookingInput struct {
	EventID       uint      `json:"event_id"`
	ServiceID     uint      `json:"service_id"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	PriceOverride int64     `json:"price_override"`
}

// BookingWorkflow owns the booking state machine. Completion happens via
// the staff endpoint or the cron sweep over elapsed confirmed bookings;
// both paths go through the same guarded transition, so a race between
// them has exactly one winner.
type BookingWorkflow struct {
	bookings BookingRepo
	events   EventRepo
	services ServiceRepo
	profiles ProfileDirectory
	recorder Recorder
	emitter  notify.Emitter
	now      func() time.Time
}

func NewBookingWorkflow(bookings BookingRepo, events EventRepo, services ServiceRepo, profiles ProfileDirectory, recorder Recorder, emitter notify.Emitter) *BookingWorkflow {
	return &BookingWorkflow{
		bookings: bookings,
		events:   events,
		services: services,
		profiles: profiles,
		recorder: recorder,
		emitter:  emitter,
		now:      time.Now,
	}
}

// Request creates a pending booking against a provider's service for the
// customer's own event and notifies the provider.
func (w *BookingWorkflow) Request(ctx core.Context, input BookingInput) (*models.Booking, error) {
	event, err := w.events.FindByID(input.EventID)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.BookingCreate, policy.Resource{OwnerProfileID: event.CustomerProfileID}); err != nil {
		return nil, err
	}

	service, err := w.services.FindByID(input.ServiceID)
	if err != nil {
		return nil, err
	}
	if !service.Active {
		return nil, core.Validationf("service %q is not available", service.Name)
	}

	if input.StartTime.IsZero() || input.EndTime.IsZero() || !input.EndTime.After(input.StartTime) {
		return nil, core.Validationf("booking needs a valid time window")
	}

	price := service.BasePrice
	if input.PriceOverride > 0 {
		price = input.PriceOverride
	}

	booking := &models.Booking{
		EventID:           event.ID,
		CustomerProfileID: ctx.ProfileID,
		ProviderProfileID: service.ProviderProfileID,
		ServiceID:         service.ID,
		StartTime:         input.StartTime,
		EndTime:           input.EndTime,
		AgreedPrice:       price,
		Status:            models.BookingPending,
	}
	if err := w.bookings.Create(booking); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "booking.requested", "Booking requested", "booking", booking.ID, models.Payload{
		"event_id":     event.ID,
		"service_id":   service.ID,
		"agreed_price": price,
	})

	w.notifyProfile(models.RoleProvider, booking.ProviderProfileID, notify.Intent{
		Event:   "booking.requested",
		Subject: fmt.Sprintf("New booking request for %s", service.Name),
		Body:    fmt.Sprintf("A customer requested %q for %s.", service.Name, input.StartTime.Format("2006-01-02 15:04")),
	})

	return booking, nil
}

// Respond lets the provider owning the booked service confirm or decline a
// pending booking. The customer is notified either way.
func (w *BookingWorkflow) Respond(ctx core.Context, id uint, outcome models.BookingStatus) (*models.Booking, error) {
	booking, err := w.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := policy.Check(ctx, policy.BookingRespond, policy.Resource{ProviderProfileID: booking.ProviderProfileID}); err != nil {
		return nil, err
	}

	var action bookingAction
	switch outcome {
	case models.BookingConfirmed:
		action = bookingConfirm
	case models.BookingDeclined:
		action = bookingDecline
	default:
		return nil, core.Validationf("outcome must be %q or %q", models.BookingConfirmed, models.BookingDeclined)
	}

	if err := w.transition(booking, action, nil); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "booking.responded", fmt.Sprintf("Booking %s", outcome), "booking", booking.ID, models.Payload{
		"outcome": string(outcome),
	})

	w.notifyProfile(models.RoleCustomer, booking.CustomerProfileID, notify.Intent{
		Event:   "booking.responded",
		Subject: fmt.Sprintf("Your booking was %s", outcome),
		Body:    fmt.Sprintf("The provider has %s your booking request.", outcome),
	})

	return booking, nil
}

// Cancel moves a confirmed booking to cancelled. Either the owning
// customer or the owning provider may cancel, a reason is required, and
// the counterparty is notified.
func (w *BookingWorkflow) Cancel(ctx core.Context, id uint, reason string) (*models.Booking, error) {
	if reason == "" {
		return nil, core.Validationf("cancelling a booking requires a reason")
	}

	booking, err := w.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}

	res := policy.Resource{
		OwnerProfileID:    booking.CustomerProfileID,
		ProviderProfileID: booking.ProviderProfileID,
	}
	if err := policy.Check(ctx, policy.BookingCancel, res); err != nil {
		return nil, err
	}

	booking.CancelReason = reason
	if err := w.transition(booking, bookingCancel, map[string]interface{}{"cancel_reason": reason}); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "booking.cancelled", "Booking cancelled", "booking", booking.ID, models.Payload{
		"reason": reason,
	})

	// Notify whichever party did not cancel.
	if ctx.Role == models.RoleProvider {
		w.notifyProfile(models.RoleCustomer, booking.CustomerProfileID, notify.Intent{
			Event:   "booking.cancelled",
			Subject: "Your booking was cancelled",
			Body:    fmt.Sprintf("The provider cancelled the booking: %s", reason),
		})
	} else {
		w.notifyProfile(models.RoleProvider, booking.ProviderProfileID, notify.Intent{
			Event:   "booking.cancelled",
			Subject: "A booking was cancelled",
			Body:    fmt.Sprintf("The customer cancelled the booking: %s", reason),
		})
	}

	return booking, nil
}

// Complete moves a confirmed booking to completed. Staff only; the
// schedule-window sweep in CompleteElapsed covers the automatic path.
func (w *BookingWorkflow) Complete(ctx core.Context, id uint) (*models.Booking, error) {
	if err := policy.Check(ctx, policy.BookingComplete, policy.Resource{}); err != nil {
		return nil, err
	}

	booking, err := w.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}

	if err := w.transition(booking, bookingComplete, nil); err != nil {
		return nil, err
	}

	w.recorder.Record(ctx.AccountID, "booking.completed", "Booking completed", "booking", booking.ID, nil)

	w.notifyProfile(models.RoleCustomer, booking.CustomerProfileID, notify.Intent{
		Event:   "booking.completed",
		Subject: "Your booking is complete",
		Body:    "Your booking has been marked as completed.",
	})

	return booking, nil
}

// CompleteElapsed auto-completes confirmed bookings whose schedule window
// has elapsed. Run from cron; actor 0 marks the system. Each row goes
// through the same guarded transition, so a staff Complete racing the
// sweep still yields exactly one completion.
func (w *BookingWorkflow) CompleteElapsed() (int, error) {
	bookings, err := w.bookings.ListConfirmedEndedBefore(w.now())
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range bookings {
		booking := &bookings[i]
		matched, err := w.bookings.Transition(booking.ID, models.BookingConfirmed, models.BookingCompleted, nil)
		if err != nil || !matched {
			continue
		}
		completed++

		w.recorder.Record(0, "booking.completed", "Booking auto-completed after schedule window", "booking", booking.ID, models.Payload{
			"auto": true,
		})
		w.notifyProfile(models.RoleCustomer, booking.CustomerProfileID, notify.Intent{
			Event:   "booking.completed",
			Subject: "Your booking is complete",
			Body:    "Your booking has been marked as completed.",
		})
	}
	return completed, nil
}

// Get returns one booking, policy-filtered.
func (w *BookingWorkflow) Get(ctx core.Context, id uint) (*models.Booking, error) {
	booking, err := w.bookings.FindByID(id)
	if err != nil {
		return nil, err
	}

	res := policy.Resource{
		OwnerProfileID:    booking.CustomerProfileID,
		ProviderProfileID: booking.ProviderProfileID,
	}
	if err := policy.Check(ctx, policy.BookingRead, res); err != nil {
		return nil, err
	}
	return booking, nil
}

func (w *BookingWorkflow) transition(booking *models.Booking, action bookingAction, set map[string]interface{}) error {
	to, ok := nextBookingStatus(booking.Status, action)
	if !ok {
		return core.Conflictf("booking %d cannot %s while %s", booking.ID, action, booking.Status)
	}

	matched, err := w.bookings.Transition(booking.ID, booking.Status, to, set)
	if err != nil {
		return err
	}
	if !matched {
		return core.Conflictf("booking %d is no longer %s", booking.ID, booking.Status)
	}

	booking.Status = to
	return nil
}

func (w *BookingWorkflow) notifyProfile(role models.Role, profileID uint, intent notify.Intent) {
	accountID, err := w.profiles.AccountIDForProfile(role, profileID)
	if err != nil {
		return
	}
	intent.RecipientAccountID = accountID
	w.emitter.Emit(intent)
}
