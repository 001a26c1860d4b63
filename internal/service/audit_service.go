package service

import (
	"encoding/json"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/repository"
)

// AuditService appends one entry per successful mutating operation. Writes
// are best-effort: a failed audit write is logged and swallowed so it never
// rolls back or blocks the primary mutation.
type AuditService interface {
	Record(objectType string, objectID uint, action string, userID uint, diff interface{})
	History(objectType string, objectID uint) ([]dto.AuditLogResponse, error)
	Recent(limit int) ([]dto.AuditLogResponse, error)
}

type auditService struct {
	auditRepo repository.AuditLogRepository
}

func NewAuditService(auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

func (s *auditService) Record(objectType string, objectID uint, action string, userID uint, diff interface{}) {
	payload := ""
	if diff != nil {
		b, err := json.Marshal(diff)
		if err != nil {
			log.Warn().Err(err).Str("object_type", objectType).Uint("object_id", objectID).Msg("Audit diff not serializable, recording entry without it")
		} else {
			payload = string(b)
		}
	}

	entry := &model.AuditLog{
		ObjectType: objectType,
		ObjectID:   objectID,
		Action:     action,
		UserID:     userID,
		Diff:       payload,
	}
	if err := s.auditRepo.Create(entry); err != nil {
		log.Error().Err(err).Str("object_type", objectType).Uint("object_id", objectID).Str("action", action).Msg("Audit log write failed, continuing without it")
	}
}

func (s *auditService) History(objectType string, objectID uint) ([]dto.AuditLogResponse, error) {
	entries, err := s.auditRepo.FindByObject(objectType, objectID)
	if err != nil {
		return nil, err
	}
	return toAuditDTOs(entries), nil
}

func (s *auditService) Recent(limit int) ([]dto.AuditLogResponse, error) {
	entries, err := s.auditRepo.FindRecent(limit)
	if err != nil {
		return nil, err
	}
	return toAuditDTOs(entries), nil
}

func toAuditDTOs(entries []model.AuditLog) []dto.AuditLogResponse {
	dtos := make([]dto.AuditLogResponse, len(entries))
	for i := range entries {
		copier.Copy(&dtos[i], &entries[i])
	}
	return dtos
}
