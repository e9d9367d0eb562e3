package model

import (
	"time"

	"gorm.io/gorm"
)

type ResumeExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date,omitempty"`
	Description string `json:"description,omitempty"`
}

type ResumeEducation struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Year        string `json:"year,omitempty"`
}

type Resume struct {
	ID         uint               `gorm:"primarykey" json:"id"`
	OwnerID    uint               `json:"owner_id" gorm:"not null;index"`
	Title      string             `json:"title" gorm:"not null"`
	Summary    string             `json:"summary,omitempty" gorm:"type:text"`
	Skills     []string           `json:"skills,omitempty" gorm:"serializer:json"`
	Experience []ResumeExperience `json:"experience,omitempty" gorm:"serializer:json"`
	Education  []ResumeEducation  `json:"education,omitempty" gorm:"serializer:json"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`
}
