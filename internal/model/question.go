package model

import "time"

// Question belongs to exactly one level. Text is immutable once generated;
// the answer is written once by the user, and the grading fields (Feedback,
// Score, ModelAnswer, Suggestions, TopicsToRevise) are populated together by
// the batch grading step. Feedback being non-nil marks the question graded.
type Question struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	LevelID        uint       `json:"level_id" gorm:"not null;index"`
	OrderInLevel   int        `json:"order_in_level" gorm:"not null"`
	Text           string     `json:"text" gorm:"type:text;not null"`
	Answer         *string    `json:"answer,omitempty" gorm:"type:text"`
	Feedback       *string    `json:"feedback,omitempty" gorm:"type:text"`
	Score          *float64   `json:"score,omitempty"` // 0-10 scale
	ModelAnswer    *string    `json:"model_answer,omitempty" gorm:"type:text"`
	Suggestions    []string   `json:"suggestions,omitempty" gorm:"serializer:json"`
	TopicsToRevise []string   `json:"topics_to_revise,omitempty" gorm:"serializer:json"`
	AskedAt        time.Time  `json:"asked_at"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
