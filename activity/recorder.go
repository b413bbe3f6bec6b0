package activity

import (
	"log"

	"github.com/evently/marketplace-app/models"
)

// Repo appends audit records. Rows are write-once.
type Repo interface {
	Append(record *models.Activity) error
}

// Recorder writes the append-only audit trail. Recording is best-effort
// telemetry: a failed append is logged and never rolls back the state
// change it documents.
type Recorder struct {
	repo Repo
}

func NewRecorder(repo Repo) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one audit record for the given actor and action.
func (r *Recorder) Record(actorAccountID uint, action, description, entityType string, entityID uint, payload models.Payload) {
	record := &models.Activity{
		ActorAccountID: actorAccountID,
		Action:         action,
		Description:    description,
		EntityType:     entityType,
		EntityID:       entityID,
		Payload:        payload,
	}
	if err := r.repo.Append(record); err != nil {
		log.Printf("Failed to record activity %q for account %d: %v", action, actorAccountID, err)
	}
}
