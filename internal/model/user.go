package model

import (
	"time"

	"gorm.io/gorm"
)

// Role values recognised by the transition policy.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleObserver Role = "observer"
	RoleReviewer Role = "reviewer"
)

type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `json:"name" gorm:"not null"`
	Email     string         `json:"email" gorm:"not null;uniqueIndex"`
	Role      Role           `json:"role" gorm:"not null"`
	BranchID  *uint          `json:"branch_id,omitempty" gorm:"index"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
