package model

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	Title         string         `json:"title" gorm:"not null;uniqueIndex"`
	Description   string         `json:"description,omitempty" gorm:"type:text"`
	Category      string         `json:"category" gorm:"index"`
	Instructor    string         `json:"instructor"`
	DurationWeeks int            `json:"duration_weeks"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

type Enrollment struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	CourseID   uint      `json:"course_id" gorm:"not null;uniqueIndex:idx_course_user"`
	Course     Course    `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_course_user"`
	Progress   float64   `json:"progress" gorm:"default:0"` // 0-100 percent
	EnrolledAt time.Time `json:"enrolled_at" gorm:"autoCreateTime"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
