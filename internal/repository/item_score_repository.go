package repository

import (
	"github.com/teachscope/teachscope/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ItemScoreRepository interface {
	// Upsert writes one rating/comment, replacing any prior entry for the
	// same (observation, rubric item) pair.
	Upsert(score *model.ItemScore) error
	// UpsertMany applies a batch of ratings atomically.
	UpsertMany(scores []model.ItemScore) error
	FindByObservationID(observationID uint) ([]model.ItemScore, error)
	DeleteByObservationID(observationID uint) error
}

type itemScoreRepository struct {
	db *gorm.DB
}

func NewItemScoreRepository(db *gorm.DB) ItemScoreRepository {
	return &itemScoreRepository{db: db}
}

func (r *itemScoreRepository) Upsert(score *model.ItemScore) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "observation_id"}, {Name: "rubric_item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rating", "comment", "updated_at"}),
	}).Create(score).Error
}

func (r *itemScoreRepository) UpsertMany(scores []model.ItemScore) error {
	if len(scores) == 0 {
		return nil
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
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

func (r *itemScoreRepository) FindByObservationID(observationID uint) ([]model.ItemScore, error) {
	var scores []model.ItemScore
	err := r.db.Where("observation_id = ?", observationID).Find(&scores).Error
	return scores, err
}

func (r *itemScoreRepository) DeleteByObservationID(observationID uint) error {
	return r.db.Where("observation_id = ?", observationID).Delete(&model.ItemScore{}).Error
}
