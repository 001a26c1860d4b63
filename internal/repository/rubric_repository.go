package repository

import (
	"github.com/teachscope/teachscope/internal/model"
	"gorm.io/gorm"
)

type RubricRepository interface {
	CreateDomain(domain *model.RubricDomain) error
	UpdateDomain(domain *model.RubricDomain) error
	FindDomainByID(id uint) (*model.RubricDomain, error)
	// FindActiveDomainsWithItems returns the active rubric ordered by
	// OrderIndex, each domain carrying its active items in order. This is the
	// consistent snapshot the scoring engine works from.
	FindActiveDomainsWithItems() ([]model.RubricDomain, error)
	CreateItem(item *model.RubricItem) error
	UpdateItem(item *model.RubricItem) error
	FindItemByID(id uint) (*model.RubricItem, error)
	FindItemsByDomainID(domainID uint) ([]model.RubricItem, error)
}

type rubricRepository struct {
	db *gorm.DB
}

func NewRubricRepository(db *gorm.DB) RubricRepository {
	return &rubricRepository{db: db}
}

func (r *rubricRepository) CreateDomain(domain *model.RubricDomain) error {
	return r.db.Create(domain).Error
}

func (r *rubricRepository) UpdateDomain(domain *model.RubricDomain) error {
	return r.db.Save(domain).Error
}

func (r *rubricRepository) FindDomainByID(id uint) (*model.RubricDomain, error) {
	var domain model.RubricDomain
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("rubric_items.order_index ASC")
	}).First(&domain, id).Error; err != nil {
		return nil, err
	}
	return &domain, nil
}

func (r *rubricRepository) FindActiveDomainsWithItems() ([]model.RubricDomain, error) {
	var domains []model.RubricDomain
	err := r.db.
		Where("is_active = ?", true).
		Order("order_index ASC").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true).Order("rubric_items.order_index ASC")
		}).
		Find(&domains).Error
	return domains, err
}

func (r *rubricRepository) CreateItem(item *model.RubricItem) error {
	return r.db.Create(item).Error
}

func (r *rubricRepository) UpdateItem(item *model.RubricItem) error {
	return r.db.Save(item).Error
}

func (r *rubricRepository) FindItemByID(id uint) (*model.RubricItem, error) {
	var item model.RubricItem
	if err := r.db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *rubricRepository) FindItemsByDomainID(domainID uint) ([]model.RubricItem, error) {
	var items []model.RubricItem
	err := r.db.Where("domain_id = ?", domainID).Order("order_index ASC").Find(&items).Error
	return items, err
}
