package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	// TotalLevels is the fixed number of difficulty tiers in one session.
	TotalLevels = 5
	// QuestionsPerLevel is the fixed batch size generated for a level.
	QuestionsPerLevel = 5
)

const (
	StatusPreparation = "preparation"
	StatusInProgress  = "in-progress"
	StatusCompleted   = "completed"
	StatusPaused      = "paused"
)

// DifficultyLabel maps a level number to its display tier. The level number is
// the source of truth; the label is never stored.
func DifficultyLabel(level int) string {
	switch level {
	case 1:
		return "starter"
	case 2:
		return "easy"
	case 3:
		return "medium"
	case 4:
		return "hard"
	case 5:
		return "excellent"
	default:
		return "unknown"
	}
}

// PreparationContext is the immutable snapshot captured when a session is
// created.
type PreparationContext struct {
	TargetRole     string   `json:"target_role" gorm:"not null"`
	TargetCompany  string   `json:"target_company"`
	Industry       string   `json:"industry"`
	ExperienceBand string   `json:"experience_band"`
	Skills         []string `json:"skills" gorm:"serializer:json"`
	FocusAreas     []string `json:"focus_areas" gorm:"serializer:json"`
}

// InterviewSession is one complete interview attempt spanning up to five
// levels. Levels and their questions are owned by the session; saves go
// through SessionRepository.Save as a single unit guarded by Revision.
type InterviewSession struct {
	ID                    uint               `gorm:"primarykey" json:"id"`
	PublicID              string             `json:"public_id" gorm:"not null;uniqueIndex"`
	OwnerID               uint               `json:"owner_id" gorm:"not null;index"`
	PreparationContext    PreparationContext `json:"preparation_context" gorm:"embedded"`
	CurrentLevel          int                `json:"current_level" gorm:"not null;default:1"`
	Status                string             `json:"status" gorm:"default:'preparation'"` // "preparation", "in-progress", "completed", "paused"
	Levels                []InterviewLevel   `json:"levels,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	PreviousQuestionTexts []string           `json:"previous_question_texts" gorm:"serializer:json"`
	OverallScore          *float64           `json:"overall_score,omitempty"` // 0-10 scale, set on completion
	Revision              int                `json:"revision" gorm:"not null;default:0"`
	CompletedAt           *time.Time         `json:"completed_at,omitempty"`
	LastActivityAt        time.Time          `json:"last_activity_at"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
	DeletedAt             gorm.DeletedAt     `gorm:"index" json:"-"`
}

// LevelByNumber returns the level entry for the given number, or nil if that
// level has not been visited yet. Level entries are created lazily.
func (s *InterviewSession) LevelByNumber(n int) *InterviewLevel {
	for i := range s.Levels {
		if s.Levels[i].LevelNumber == n {
			return &s.Levels[i]
		}
	}
	return nil
}
