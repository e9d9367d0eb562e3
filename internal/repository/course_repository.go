package repository

import (
	"github.com/prepwise/prepwise/internal/model"
	"gorm.io/gorm"
)

type CourseRepository interface {
	Create(course *model.Course) error
	Update(course *model.Course) error
	Delete(id uint) error
	FindByID(id uint) (*model.Course, error)
	FindAll(category string) ([]model.Course, error)
	Enroll(enrollment *model.Enrollment) error
	FindEnrollment(courseID, userID uint) (*model.Enrollment, error)
	FindEnrollmentsByUser(userID uint) ([]model.Enrollment, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) Create(course *model.Course) error {
	return r.db.Create(course).Error
}

func (r *courseRepository) Update(course *model.Course) error {
	return r.db.Save(course).Error
}

func (r *courseRepository) Delete(id uint) error {
	return r.db.Delete(&model.Course{}, id).Error
}

func (r *courseRepository) FindByID(id uint) (*model.Course, error) {
	var course model.Course
	if err := r.db.First(&course, id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) FindAll(category string) ([]model.Course, error) {
	var courses []model.Course
	query := r.db.Order("created_at DESC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&courses).Error
	return courses, err
}

func (r *courseRepository) Enroll(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *courseRepository) FindEnrollment(courseID, userID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("course_id = ? AND user_id = ?", courseID, userID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *courseRepository) FindEnrollmentsByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.db.Preload("Course").Where("user_id = ?", userID).
		Order("enrolled_at DESC").Find(&enrollments).Error
	return enrollments, err
}
