package model

import (
	"time"

	"gorm.io/gorm"
)

// Teacher is the person being observed, not a login account.
type Teacher struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	BranchID  uint           `json:"branch_id" gorm:"not null;index"`
	Branch    Branch         `json:"branch,omitempty" gorm:"foreignKey:BranchID"`
	Subject   string         `json:"subject,omitempty"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
