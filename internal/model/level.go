package model

import "time"

// InterviewLevel is one batch of five questions at a single difficulty tier.
// AverageScore is defined only once all five questions are scored.
type InterviewLevel struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	SessionID    uint       `json:"session_id" gorm:"not null;index"`
	LevelNumber  int        `json:"level_number" gorm:"not null"`
	Questions    []Question `json:"questions,omitempty" gorm:"foreignKey:LevelID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	AverageScore *float64   `json:"average_score,omitempty"` // 0-10 scale
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Answered reports how many questions in the level carry an answer.
func (l *InterviewLevel) Answered() int {
	n := 0
	for i := range l.Questions {
		if l.Questions[i].Answer != nil {
			n++
		}
	}
	return n
}

// Graded reports how many questions in the level carry feedback.
func (l *InterviewLevel) Graded() int {
	n := 0
	for i := range l.Questions {
		if l.Questions[i].Feedback != nil {
			n++
		}
	}
	return n
}
