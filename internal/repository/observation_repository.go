package repository

import (
	"errors"

	"github.com/teachscope/teachscope/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrStaleStatus is returned by UpdateStatusFrom when the observation's status
// no longer matches the expected previous value, i.e. a concurrent transition
// won the race.
var ErrStaleStatus = errors.New("observation status changed concurrently")

type ObservationRepository interface {
	Create(obs *model.Observation) error
	FindByID(id uint) (*model.Observation, error)
	FindByIDWithScores(id uint) (*model.Observation, error)
	FindAll(filter ObservationFilter) ([]model.Observation, error)
	Update(obs *model.Observation) error
	// UpdateWithScores writes the observation's fields and upserts the given
	// item scores in one transaction, so a failed score write rolls the field
	// changes back too.
	UpdateWithScores(obs *model.Observation, scores []model.ItemScore) error
	// UpdateStatusFrom persists a lifecycle transition as a compare-and-swap
	// on the previous status. Fields must contain the status change plus any
	// reviewer/timestamp columns the transition touches.
	UpdateStatusFrom(id uint, prev model.Status, fields map[string]interface{}) error
	Delete(id uint) error
}

type ObservationFilter struct {
	BranchID   *uint
	TeacherID  *uint
	ObserverID *uint
	Status     *model.Status
}

type observationRepository struct {
	db *gorm.DB
}

func NewObservationRepository(db *gorm.DB) ObservationRepository {
	return &observationRepository{db: db}
}

func (r *observationRepository) Create(obs *model.Observation) error {
	return r.db.Create(obs).Error
}

func (r *observationRepository) FindByID(id uint) (*model.Observation, error) {
	var obs model.Observation
	if err := r.db.First(&obs, id).Error; err != nil {
		return nil, err
	}
	return &obs, nil
}

func (r *observationRepository) FindByIDWithScores(id uint) (*model.Observation, error) {
	var obs model.Observation
	err := r.db.
		Preload("ItemScores").
		Preload("ItemScores.RubricItem").
		First(&obs, id).Error
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

func (r *observationRepository) FindAll(filter ObservationFilter) ([]model.Observation, error) {
	query := r.db.Model(&model.Observation{})
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.TeacherID != nil {
		query = query.Where("teacher_id = ?", *filter.TeacherID)
	}
	if filter.ObserverID != nil {
		query = query.Where("observer_id = ?", *filter.ObserverID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	var observations []model.Observation
	err := query.Order("observed_at DESC").Find(&observations).Error
	return observations, err
}

func (r *observationRepository) Update(obs *model.Observation) error {
	return r.db.Save(obs).Error
}

func (r *observationRepository) UpdateWithScores(obs *model.Observation, scores []model.ItemScore) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(obs).Error; err != nil {
			return err
		}
		for i := range scores {
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "observation_id"}, {Name: "rubric_item_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
			}).Create(&scores[i]).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *observationRepository) UpdateStatusFrom(id uint, prev model.Status, fields map[string]interface{}) error {
	tx := r.db.Model(&model.Observation{}).
		Where("id = ? AND status = ?", id, prev).
		Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrStaleStatus
	}
	return nil
}

func (r *observationRepository) Delete(id uint) error {
	// ItemScores go with the observation; gorm cascades through the
	// association constraint.
	return r.db.Select("ItemScores").Delete(&model.Observation{ID: id}).Error
}
