package repository

import (
	"github.com/prepwise/prepwise/internal/model"
	"gorm.io/gorm"
)

type ResumeRepository interface {
	Create(resume *model.Resume) error
	FindByID(ownerID, id uint) (*model.Resume, error)
	FindAllByOwner(ownerID uint) ([]model.Resume, error)
	Update(resume *model.Resume) error
	Delete(ownerID, id uint) error
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) Create(resume *model.Resume) error {
	return r.db.Create(resume).Error
}

func (r *resumeRepository) FindByID(ownerID, id uint) (*model.Resume, error) {
	var resume model.Resume
	err := r.db.Where("owner_id = ?", ownerID).First(&resume, id).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *resumeRepository) FindAllByOwner(ownerID uint) ([]model.Resume, error) {
	var resumes []model.Resume
	err := r.db.Where("owner_id = ?", ownerID).Order("updated_at DESC").Find(&resumes).Error
	return resumes, err
}

func (r *resumeRepository) Update(resume *model.Resume) error {
	return r.db.Save(resume).Error
}

func (r *resumeRepository) Delete(ownerID, id uint) error {
	return r.db.Where("owner_id = ?", ownerID).Delete(&model.Resume{}, id).Error
}
