package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/repository"
	"gorm.io/gorm"
)

// OrgService manages branches and teachers. Both archive instead of delete:
// observations reference them forever.
type OrgService interface {
	CreateBranch(req dto.BranchCreateDTO, actor Actor) (*dto.BranchResponse, error)
	ListBranches(activeOnly bool) ([]dto.BranchResponse, error)
	ArchiveBranch(id uint, actor Actor) error
	CreateTeacher(req dto.TeacherCreateDTO, actor Actor) (*dto.TeacherResponse, error)
	ListTeachers(branchID uint, activeOnly bool) ([]dto.TeacherResponse, error)
	ArchiveTeacher(id uint, actor Actor) error
}

type orgService struct {
	branchRepo  repository.BranchRepository
	teacherRepo repository.TeacherRepository
	audit       AuditService
}

func NewOrgService(branchRepo repository.BranchRepository, teacherRepo repository.TeacherRepository, audit AuditService) OrgService {
	return &orgService{branchRepo: branchRepo, teacherRepo: teacherRepo, audit: audit}
}

func (s *orgService) CreateBranch(req dto.BranchCreateDTO, actor Actor) (*dto.BranchResponse, error) {
	branch := model.Branch{Name: req.Name, Address: req.Address, IsActive: true}
	if err := s.branchRepo.Create(&branch); err != nil {
		return nil, fmt.Errorf("failed to create branch: %w", err)
	}
	s.audit.Record("branch", branch.ID, "CREATE", actor.ID, map[string]interface{}{"name": branch.Name})

	var resp dto.BranchResponse
	copier.Copy(&resp, &branch)
	return &resp, nil
}

func (s *orgService) ListBranches(activeOnly bool) ([]dto.BranchResponse, error) {
	branches, err := s.branchRepo.FindAll(activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	dtos := make([]dto.BranchResponse, len(branches))
	for i := range branches {
		copier.Copy(&dtos[i], &branches[i])
	}
	return dtos, nil
}

func (s *orgService) ArchiveBranch(id uint, actor Actor) error {
	branch, err := s.branchRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("branch %d: %w", id, ErrNotFound)
		}
		return err
	}
	branch.IsActive = false
	if err := s.branchRepo.Update(branch); err != nil {
		return fmt.Errorf("failed to archive branch %d: %w", id, err)
	}
	s.audit.Record("branch", id, "ARCHIVE", actor.ID, nil)
	return nil
}

func (s *orgService) CreateTeacher(req dto.TeacherCreateDTO, actor Actor) (*dto.TeacherResponse, error) {
	if _, err := s.branchRepo.FindByID(req.BranchID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("branch %d: %w", req.BranchID, ErrNotFound)
		}
		return nil, err
	}

	teacher := model.Teacher{Name: req.Name, BranchID: req.BranchID, Subject: req.Subject, IsActive: true}
	if err := s.teacherRepo.Create(&teacher); err != nil {
		return nil, fmt.Errorf("failed to create teacher: %w", err)
	}
	s.audit.Record("teacher", teacher.ID, "CREATE", actor.ID, map[string]interface{}{"name": teacher.Name})

	var resp dto.TeacherResponse
	copier.Copy(&resp, &teacher)
	return &resp, nil
}

func (s *orgService) ListTeachers(branchID uint, activeOnly bool) ([]dto.TeacherResponse, error) {
	teachers, err := s.teacherRepo.FindByBranchID(branchID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	dtos := make([]dto.TeacherResponse, len(teachers))
	for i := range teachers {
		copier.Copy(&dtos[i], &teachers[i])
	}
	return dtos, nil
}

func (s *orgService) ArchiveTeacher(id uint, actor Actor) error {
	teacher, err := s.teacherRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("teacher %d: %w", id, ErrNotFound)
		}
		return err
	}
	teacher.IsActive = false
	if err := s.teacherRepo.Update(teacher); err != nil {
		return fmt.Errorf("failed to archive teacher %d: %w", id, err)
	}
	s.audit.Record("teacher", id, "ARCHIVE", actor.ID, nil)
	return nil
}
