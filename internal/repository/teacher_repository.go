package repository

import (
	"github.com/teachscope/teachscope/internal/model"
	"gorm.io/gorm"
)

type TeacherRepository interface {
	Create(teacher *model.Teacher) error
	Update(teacher *model.Teacher) error
	FindByID(id uint) (*model.Teacher, error)
	FindByBranchID(branchID uint, activeOnly bool) ([]model.Teacher, error)
}

type teacherRepository struct {
	db *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) TeacherRepository {
	return &teacherRepository{db: db}
}

func (r *teacherRepository) Create(teacher *model.Teacher) error {
	return r.db.Create(teacher).Error
}

func (r *teacherRepository) Update(teacher *model.Teacher) error {
	return r.db.Save(teacher).Error
}

func (r *teacherRepository) FindByID(id uint) (*model.Teacher, error) {
	var teacher model.Teacher
	if err := r.db.First(&teacher, id).Error; err != nil {
		return nil, err
	}
	return &teacher, nil
}

func (r *teacherRepository) FindByBranchID(branchID uint, activeOnly bool) ([]model.Teacher, error) {
	query := r.db.Where("branch_id = ?", branchID).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var teachers []model.Teacher
	err := query.Find(&teachers).Error
	return teachers, err
}
