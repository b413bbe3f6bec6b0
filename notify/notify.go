package notify

import (
	"log"
)

// Intent describes a notification the workflows want delivered. Delivery
// itself is a collaborator concern; the workflows only produce intents.
type Intent struct {
	Event              string // e.g. "proposal.sent", "booking.confirmed"
	RecipientAccountID uint
	Subject            string
	Body               string
}

// Emitter delivers notification intents. Failures are logged by the
// implementation and never propagate into the workflow.
type Emitter interface {
	Emit(intent Intent)
}

// LogEmitter writes intents to the application log. Used when SMTP is not
// configured.
type LogEmitter struct{}

func (LogEmitter) Emit(intent Intent) {
	log.Printf("Notification [%s] for account %d: %s", intent.Event, intent.RecipientAccountID, intent.Subject)
}
