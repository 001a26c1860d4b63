package dto

import "time"

// RubricItemCreateDTO is used within RubricDomainCreateDTO and standalone.
type RubricItemCreateDTO struct {
	ItemNumber int    `json:"item_number" binding:"required,min=1"`
	Prompt     string `json:"prompt" binding:"required"`
	OrderIndex int    `json:"order_index" binding:"required,min=1"`
	MaxScore   int    `json:"max_score" binding:"required,gt=0"`
	ScaleMin   int    `json:"scale_min" binding:"min=0"`
	ScaleMax   int    `json:"scale_max" binding:"omitempty,gt=0"`
}

type RubricDomainCreateDTO struct {
	Name        string                `json:"name" binding:"required"`
	Description string                `json:"description"`
	OrderIndex  int                   `json:"order_index" binding:"required,min=1"`
	Items       []RubricItemCreateDTO `json:"items" binding:"omitempty,dive"`
}

type RubricDomainUpdateDTO struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index"`
}

type RubricItemResponse struct {
	ID         uint   `json:"id"`
	DomainID   uint   `json:"domain_id"`
	ItemNumber int    `json:"item_number"`
	Prompt     string `json:"prompt"`
	OrderIndex int    `json:"order_index"`
	MaxScore   int    `json:"max_score"`
	ScaleMin   int    `json:"scale_min"`
	ScaleMax   int    `json:"scale_max"`
	IsActive   bool   `json:"is_active"`
}

type RubricDomainResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	OrderIndex  int                  `json:"order_index"`
	IsActive    bool                 `json:"is_active"`
	Items       []RubricItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

type BranchCreateDTO struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

type BranchResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"is_active"`
}

type TeacherCreateDTO struct {
	Name     string `json:"name" binding:"required"`
	BranchID uint   `json:"branch_id" binding:"required"`
	Subject  string `json:"subject"`
}

type TeacherResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	BranchID uint   `json:"branch_id"`
	Subject  string `json:"subject,omitempty"`
	IsActive bool   `json:"is_active"`
}
