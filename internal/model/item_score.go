package model

import (
	"time"

	"gorm.io/gorm"
)

// ItemScore is one observer judgment for one rubric item on one observation.
// A nil Rating means "not yet rated"; a rating of 0 means "Not Observed" and
// is kept on the record but excluded from score aggregation.
type ItemScore struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	ObservationID uint           `json:"observation_id" gorm:"not null;index:idx_obs_item,unique"`
	RubricItemID  uint           `json:"rubric_item_id" gorm:"not null;index:idx_obs_item,unique"`
	RubricItem    RubricItem     `json:"rubric_item,omitempty" gorm:"foreignKey:RubricItemID"`
	Rating        *int           `json:"rating,omitempty"`
	Comment       string         `json:"comment,omitempty" gorm:"type:text"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
