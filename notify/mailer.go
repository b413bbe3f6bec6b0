package notify

import (
	"fmt"
	"log"

	"github.com/evently/marketplace-app/utils"
)

// AccountLookup resolves the email address for an account id.
type AccountLookup interface {
	EmailForAccount(accountID uint) (string, error)
}

// Mailer delivers intents as email via SMTP.
type Mailer struct {
	accounts AccountLookup
}

func NewMailer(accounts AccountLookup) *Mailer {
	return &Mailer{accounts: accounts}
}

func (m *Mailer) Emit(intent Intent) {
	email, err := m.accounts.EmailForAccount(intent.RecipientAccountID)
	if err != nil {
		log.Printf("Failed to resolve recipient for notification [%s]: %v", intent.Event, err)
		return
	}

	body := fmt.Sprintf(`
		<p>%s</p>
		<p>Best regards,</p>
		<p>The Evently Team</p>
	`, intent.Body)

	if err := utils.SendEmail(email, intent.Subject, body); err != nil {
		log.Printf("Failed to send notification [%s] to %s: %v", intent.Event, email, err)
	}
}
