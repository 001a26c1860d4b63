package model

import (
	"time"

	"gorm.io/gorm"
)

// RubricDomain groups related evaluation criteria, e.g. "Classroom Management".
// OrderIndex is unique within the rubric and fixes display and aggregation order.
type RubricDomain struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description,omitempty" gorm:"type:text"`
	OrderIndex  int            `json:"order_index" gorm:"not null;uniqueIndex"`
	IsActive    bool           `json:"is_active" gorm:"not null;default:true"`
	Items       []RubricItem   `json:"items,omitempty" gorm:"foreignKey:DomainID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
