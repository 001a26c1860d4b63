package repository

import (
	"github.com/teachscope/teachscope/internal/model"
	"gorm.io/gorm"
)

type AuditLogRepository interface {
	Create(entry *model.AuditLog) error
	FindByObject(objectType string, objectID uint) ([]model.AuditLog, error)
	FindRecent(limit int) ([]model.AuditLog, error)
}

type auditLogRepository struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(entry *model.AuditLog) error {
	return r.db.Create(entry).Error
}

func (r *auditLogRepository) FindByObject(objectType string, objectID uint) ([]model.AuditLog, error) {
	var entries []model.AuditLog
	err := r.db.
		Where("object_type = ? AND object_id = ?", objectType, objectID).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (r *auditLogRepository) FindRecent(limit int) ([]model.AuditLog, error) {
	if limit <= 0 {
		limit = 100
	}
	var entries []model.AuditLog
	err := r.db.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
