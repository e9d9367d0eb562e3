package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"gorm.io/gorm"
)

type ResumeService interface {
	CreateResume(ownerID uint, req dto.ResumeRequest) (*dto.ResumeDTO, error)
	GetResume(ownerID, id uint) (*dto.ResumeDTO, error)
	ListResumes(ownerID uint) ([]dto.ResumeDTO, error)
	UpdateResume(ownerID, id uint, req dto.ResumeRequest) (*dto.ResumeDTO, error)
	DeleteResume(ownerID, id uint) error
}

type resumeService struct {
	resumeRepo repository.ResumeRepository
}

func NewResumeService(resumeRepo repository.ResumeRepository) ResumeService {
	return &resumeService{resumeRepo: resumeRepo}
}

func (s *resumeService) CreateResume(ownerID uint, req dto.ResumeRequest) (*dto.ResumeDTO, error) {
	var resume model.Resume
	if err := copier.Copy(&resume, &req); err != nil {
		return nil, fmt.Errorf("error preparing resume: %w", err)
	}
	resume.OwnerID = ownerID
	if err := s.resumeRepo.Create(&resume); err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return s.mapResume(&resume)
}

func (s *resumeService) GetResume(ownerID, id uint) (*dto.ResumeDTO, error) {
	resume, err := s.findResume(ownerID, id)
	if err != nil {
		return nil, err
	}
	return s.mapResume(resume)
}

func (s *resumeService) ListResumes(ownerID uint) ([]dto.ResumeDTO, error) {
	resumes, err := s.resumeRepo.FindAllByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("error fetching resumes: %w", err)
	}
	out := make([]dto.ResumeDTO, 0, len(resumes))
	for i := range resumes {
		resumeDTO, mapErr := s.mapResume(&resumes[i])
		if mapErr != nil {
			return nil, mapErr
		}
		out = append(out, *resumeDTO)
	}
	return out, nil
}

func (s *resumeService) UpdateResume(ownerID, id uint, req dto.ResumeRequest) (*dto.ResumeDTO, error) {
	resume, err := s.findResume(ownerID, id)
	if err != nil {
		return nil, err
	}
	resume.Title = req.Title
	resume.Summary = req.Summary
	resume.Skills = req.Skills
	if err := copier.Copy(&resume.Experience, &req.Experience); err != nil {
		return nil, fmt.Errorf("error preparing resume experience: %w", err)
	}
	if err := copier.Copy(&resume.Education, &req.Education); err != nil {
		return nil, fmt.Errorf("error preparing resume education: %w", err)
	}
	if err := s.resumeRepo.Update(resume); err != nil {
		return nil, fmt.Errorf("failed to update resume %d: %w", id, err)
	}
	return s.mapResume(resume)
}

func (s *resumeService) DeleteResume(ownerID, id uint) error {
	if _, err := s.findResume(ownerID, id); err != nil {
		return err
	}
	return s.resumeRepo.Delete(ownerID, id)
}

func (s *resumeService) findResume(ownerID, id uint) (*model.Resume, error) {
	resume, err := s.resumeRepo.FindByID(ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: resume %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("error loading resume %d: %w", id, err)
	}
	return resume, nil
}

func (s *resumeService) mapResume(resume *model.Resume) (*dto.ResumeDTO, error) {
	var resumeDTO dto.ResumeDTO
	if err := copier.Copy(&resumeDTO, resume); err != nil {
		return nil, fmt.Errorf("error preparing resume response: %w", err)
	}
	return &resumeDTO, nil
}
