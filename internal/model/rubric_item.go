package model

import (
	"time"

	"gorm.io/gorm"
)

// RubricItem is one evaluable criterion within a domain. Ratings for it fall
// inside [ScaleMin, ScaleMax]; ScaleMax equals MaxScore in every rubric we
// ship, but the schema does not force them equal.
type RubricItem struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	DomainID   uint           `json:"domain_id" gorm:"not null;index"`
	ItemNumber int            `json:"item_number" gorm:"not null"`
	Prompt     string         `json:"prompt" gorm:"type:text;not null"`
	OrderIndex int            `json:"order_index" gorm:"not null"`
	MaxScore   int            `json:"max_score" gorm:"not null;default:4"`
	ScaleMin   int            `json:"scale_min" gorm:"not null;default:0"`
	ScaleMax   int            `json:"scale_max" gorm:"not null;default:4"`
	IsActive   bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
