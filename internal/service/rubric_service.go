package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/repository"
	"gorm.io/gorm"
)

const (
	auditObjectRubricDomain = "rubric_domain"
	auditObjectRubricItem   = "rubric_item"
)

// RubricService is the admin surface over the rubric. Domains and items are
// archived (is_active=false) instead of removed so historical observations
// keep resolving their references.
type RubricService interface {
	GetRubric() ([]dto.RubricDomainResponse, error)
	CreateDomain(req dto.RubricDomainCreateDTO, actor Actor) (*dto.RubricDomainResponse, error)
	UpdateDomain(id uint, req dto.RubricDomainUpdateDTO, actor Actor) (*dto.RubricDomainResponse, error)
	ArchiveDomain(id uint, actor Actor) error
	AddItem(domainID uint, req dto.RubricItemCreateDTO, actor Actor) (*dto.RubricItemResponse, error)
	ArchiveItem(id uint, actor Actor) error
}

type rubricService struct {
	rubricRepo repository.RubricRepository
	audit      AuditService
}

func NewRubricService(rubricRepo repository.RubricRepository, audit AuditService) RubricService {
	return &rubricService{rubricRepo: rubricRepo, audit: audit}
}

func (s *rubricService) GetRubric() ([]dto.RubricDomainResponse, error) {
	domains, err := s.rubricRepo.FindActiveDomainsWithItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load rubric: %w", err)
	}
	dtos := make([]dto.RubricDomainResponse, len(domains))
	for i := range domains {
		copier.Copy(&dtos[i], &domains[i])
	}
	return dtos, nil
}

func (s *rubricService) CreateDomain(req dto.RubricDomainCreateDTO, actor Actor) (*dto.RubricDomainResponse, error) {
	if err := validateItemOrder(req.Items); err != nil {
		return nil, err
	}

	domain := model.RubricDomain{
		Name:        req.Name,
		Description: req.Description,
		OrderIndex:  req.OrderIndex,
		IsActive:    true,
	}
	for _, item := range req.Items {
		domain.Items = append(domain.Items, itemFromDTO(0, item))
	}

	if err := s.rubricRepo.CreateDomain(&domain); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("Create rubric domain failed")
		return nil, fmt.Errorf("failed to create rubric domain: %w", err)
	}

	s.audit.Record(auditObjectRubricDomain, domain.ID, "CREATE", actor.ID, map[string]interface{}{
		"name":        domain.Name,
		"order_index": domain.OrderIndex,
		"items":       len(domain.Items),
	})

	var resp dto.RubricDomainResponse
	copier.Copy(&resp, &domain)
	return &resp, nil
}

func (s *rubricService) UpdateDomain(id uint, req dto.RubricDomainUpdateDTO, actor Actor) (*dto.RubricDomainResponse, error) {
	domain, err := s.rubricRepo.FindDomainByID(id)
	if err != nil {
		return nil, mapRubricNotFound(err, id)
	}

	if req.Name != nil {
		domain.Name = *req.Name
	}
	if req.Description != nil {
		domain.Description = *req.Description
	}
	if req.OrderIndex != nil {
		domain.OrderIndex = *req.OrderIndex
	}

	if err := s.rubricRepo.UpdateDomain(domain); err != nil {
		return nil, fmt.Errorf("failed to update rubric domain %d: %w", id, err)
	}

	s.audit.Record(auditObjectRubricDomain, domain.ID, "UPDATE", actor.ID, nil)

	var resp dto.RubricDomainResponse
	copier.Copy(&resp, domain)
	return &resp, nil
}

func (s *rubricService) ArchiveDomain(id uint, actor Actor) error {
	domain, err := s.rubricRepo.FindDomainByID(id)
	if err != nil {
		return mapRubricNotFound(err, id)
	}

	domain.IsActive = false
	if err := s.rubricRepo.UpdateDomain(domain); err != nil {
		return fmt.Errorf("failed to archive rubric domain %d: %w", id, err)
	}

	s.audit.Record(auditObjectRubricDomain, domain.ID, "ARCHIVE", actor.ID, nil)
	return nil
}

func (s *rubricService) AddItem(domainID uint, req dto.RubricItemCreateDTO, actor Actor) (*dto.RubricItemResponse, error) {
	if _, err := s.rubricRepo.FindDomainByID(domainID); err != nil {
		return nil, mapRubricNotFound(err, domainID)
	}
	existing, err := s.rubricRepo.FindItemsByDomainID(domainID)
	if err != nil {
		return nil, fmt.Errorf("failed to load items for domain %d: %w", domainID, err)
	}
	for _, it := range existing {
		if it.OrderIndex == req.OrderIndex {
			return nil, &ValidationError{Errors: []string{fmt.Sprintf("order index %d is already taken in this domain", req.OrderIndex)}}
		}
	}

	item := itemFromDTO(domainID, req)
	if err := s.rubricRepo.CreateItem(&item); err != nil {
		return nil, fmt.Errorf("failed to create rubric item: %w", err)
	}

	s.audit.Record(auditObjectRubricItem, item.ID, "CREATE", actor.ID, map[string]interface{}{
		"domain_id":   domainID,
		"item_number": item.ItemNumber,
	})

	var resp dto.RubricItemResponse
	copier.Copy(&resp, &item)
	return &resp, nil
}

func (s *rubricService) ArchiveItem(id uint, actor Actor) error {
	item, err := s.rubricRepo.FindItemByID(id)
	if err != nil {
		return mapRubricNotFound(err, id)
	}

	item.IsActive = false
	if err := s.rubricRepo.UpdateItem(item); err != nil {
		return fmt.Errorf("failed to archive rubric item %d: %w", id, err)
	}

	s.audit.Record(auditObjectRubricItem, item.ID, "ARCHIVE", actor.ID, nil)
	return nil
}

// validateItemOrder rejects duplicate order indexes within one domain before
// anything touches storage.
func validateItemOrder(items []dto.RubricItemCreateDTO) error {
	seen := make(map[int]bool)
	var errs []string
	for _, item := range items {
		if seen[item.OrderIndex] {
			errs = append(errs, fmt.Sprintf("duplicate order index %d", item.OrderIndex))
		}
		seen[item.OrderIndex] = true
		if item.ScaleMax != 0 && item.ScaleMin > item.ScaleMax {
			errs = append(errs, fmt.Sprintf("item %d: scale min exceeds scale max", item.ItemNumber))
		}
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

func itemFromDTO(domainID uint, in dto.RubricItemCreateDTO) model.RubricItem {
	scaleMax := in.ScaleMax
	if scaleMax == 0 {
		scaleMax = in.MaxScore
	}
	return model.RubricItem{
		DomainID:   domainID,
		ItemNumber: in.ItemNumber,
		Prompt:     in.Prompt,
		OrderIndex: in.OrderIndex,
		MaxScore:   in.MaxScore,
		ScaleMin:   in.ScaleMin,
		ScaleMax:   scaleMax,
		IsActive:   true,
	}
}

func mapRubricNotFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("rubric record %d: %w", id, ErrNotFound)
	}
	return err
}
