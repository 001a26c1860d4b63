package repository

import (
	"github.com/teachscope/teachscope/internal/model"
	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(branch *model.Branch) error
	Update(branch *model.Branch) error
	FindByID(id uint) (*model.Branch, error)
	FindAll(activeOnly bool) ([]model.Branch, error)
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(branch *model.Branch) error {
	return r.db.Create(branch).Error
}

func (r *branchRepository) Update(branch *model.Branch) error {
	return r.db.Save(branch).Error
}

func (r *branchRepository) FindByID(id uint) (*model.Branch, error) {
	var branch model.Branch
	if err := r.db.First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) FindAll(activeOnly bool) ([]model.Branch, error) {
	query := r.db.Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var branches []model.Branch
	err := query.Find(&branches).Error
	return branches, err
}
