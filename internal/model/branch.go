package model

import (
	"time"

	"gorm.io/gorm"
)

// Branch is a school site. Branches are archived, never physically removed,
// because historical observations keep referencing them.
type Branch struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null;uniqueIndex"`
	Address   string         `json:"address,omitempty"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
