package service

import (
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CourseService interface {
	CreateCourse(req dto.CourseCreateDTO) (*dto.CourseDTO, error)
	UpdateCourse(id uint, req dto.CourseCreateDTO) (*dto.CourseDTO, error)
	DeleteCourse(id uint) error
	GetCourse(id uint) (*dto.CourseDTO, error)
	ListCourses(category string) ([]dto.CourseDTO, error)
	Enroll(courseID, userID uint) (*dto.EnrollmentDTO, error)
	ListEnrollments(userID uint) ([]dto.EnrollmentDTO, error)
}

type courseService struct {
	courseRepo repository.CourseRepository
}

func NewCourseService(courseRepo repository.CourseRepository) CourseService {
	return &courseService{courseRepo: courseRepo}
}

func (s *courseService) CreateCourse(req dto.CourseCreateDTO) (*dto.CourseDTO, error) {
	var course model.Course
	if err := copier.Copy(&course, &req); err != nil {
		return nil, fmt.Errorf("error preparing course: %w", err)
	}
	if err := s.courseRepo.Create(&course); err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("CreateCourse: repository error")
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return s.mapCourse(&course)
}

func (s *courseService) UpdateCourse(id uint, req dto.CourseCreateDTO) (*dto.CourseDTO, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}
	course.Title = req.Title
	course.Description = req.Description
	course.Category = req.Category
	course.Instructor = req.Instructor
	course.DurationWeeks = req.DurationWeeks
	if err := s.courseRepo.Update(course); err != nil {
		return nil, fmt.Errorf("failed to update course %d: %w", id, err)
	}
	return s.mapCourse(course)
}

func (s *courseService) DeleteCourse(id uint) error {
	if _, err := s.findCourse(id); err != nil {
		return err
	}
	return s.courseRepo.Delete(id)
}

func (s *courseService) GetCourse(id uint) (*dto.CourseDTO, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}
	return s.mapCourse(course)
}

func (s *courseService) ListCourses(category string) ([]dto.CourseDTO, error) {
	courses, err := s.courseRepo.FindAll(category)
	if err != nil {
		return nil, fmt.Errorf("error fetching courses: %w", err)
	}
	out := make([]dto.CourseDTO, 0, len(courses))
	for i := range courses {
		courseDTO, mapErr := s.mapCourse(&courses[i])
		if mapErr != nil {
			return nil, mapErr
		}
		out = append(out, *courseDTO)
	}
	return out, nil
}

func (s *courseService) Enroll(courseID, userID uint) (*dto.EnrollmentDTO, error) {
	course, err := s.findCourse(courseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.FindEnrollment(courseID, userID); err == nil {
		return nil, fmt.Errorf("%w: already enrolled in course %d", ErrConflict, courseID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}

	enrollment := model.Enrollment{CourseID: courseID, UserID: userID}
	if err := s.courseRepo.Enroll(&enrollment); err != nil {
		return nil, fmt.Errorf("failed to enroll in course %d: %w", courseID, err)
	}
	enrollment.Course = *course
	return s.mapEnrollment(&enrollment)
}

func (s *courseService) ListEnrollments(userID uint) ([]dto.EnrollmentDTO, error) {
	enrollments, err := s.courseRepo.FindEnrollmentsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching enrollments: %w", err)
	}
	out := make([]dto.EnrollmentDTO, 0, len(enrollments))
	for i := range enrollments {
		enrollmentDTO, mapErr := s.mapEnrollment(&enrollments[i])
		if mapErr != nil {
			return nil, mapErr
		}
		out = append(out, *enrollmentDTO)
	}
	return out, nil
}

func (s *courseService) findCourse(id uint) (*model.Course, error) {
	course, err := s.courseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: course %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("error loading course %d: %w", id, err)
	}
	return course, nil
}

func (s *courseService) mapCourse(course *model.Course) (*dto.CourseDTO, error) {
	var courseDTO dto.CourseDTO
	if err := copier.Copy(&courseDTO, course); err != nil {
		return nil, fmt.Errorf("error preparing course response: %w", err)
	}
	return &courseDTO, nil
}

func (s *courseService) mapEnrollment(enrollment *model.Enrollment) (*dto.EnrollmentDTO, error) {
	var enrollmentDTO dto.EnrollmentDTO
	if err := copier.Copy(&enrollmentDTO, enrollment); err != nil {
		return nil, fmt.Errorf("error preparing enrollment response: %w", err)
	}
	return &enrollmentDTO, nil
}
