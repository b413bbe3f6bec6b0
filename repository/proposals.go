package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/evently/marketplace-app/core"
	"github.com/evently/marketplace-app/models"
)

type ProposalRepo struct {
	db *gorm.DB
}

func NewProposalRepo(db *gorm.DB) *ProposalRepo {
	return &ProposalRepo{db: db}
}

func (r *ProposalRepo) Create(proposal *models.Proposal) error {
	return r.db.Create(proposal).Error
}

func (r *ProposalRepo) FindByID(id uint) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.First(&proposal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, core.NotFoundf("proposal %d", id)
		}
		return nil, err
	}
	return &proposal, nil
}

func (r *ProposalRepo) ListByEvent(eventID uint) ([]models.Proposal, error) {
	var proposals []models.Proposal
	err := r.db.Where("event_id = ?", eventID).
		Order("created_at asc").Find(&proposals).Error
	return proposals, err
}

// UpdateDraft rewrites an edited proposal, guarded on the row still being
// a draft.
func (r *ProposalRepo) UpdateDraft(proposal *models.Proposal) (bool, error) {
	res := r.db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", proposal.ID, models.ProposalDraft).
		Updates(map[string]interface{}{
			"title":       proposal.Title,
			"description": proposal.Description,
			"items":       proposal.Items,
			"total_price": proposal.TotalPrice,
			"valid_until": proposal.ValidUntil,
		})
	return res.RowsAffected > 0, res.Error
}

// Transition moves the row from one status to another as a single
// conditional update; zero rows affected means the row was no longer in
// the expected pre-state.
func (r *ProposalRepo) Transition(id uint, from, to models.ProposalStatus, set map[string]interface{}) (bool, error) {
	updates := map[string]interface{}{"status": to}
	for column, value := range set {
		updates[column] = value
	}
	res := r.db.Model(&models.Proposal{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	return res.RowsAffected > 0, res.Error
}
