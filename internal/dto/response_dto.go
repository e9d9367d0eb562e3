package dto

import "time"

type ErrorResponse struct {
	Message           string   `json:"message"`
	Details           []string `json:"details,omitempty"`
	RetryAfterSeconds int      `json:"retry_after_seconds,omitempty"`
}

// QuestionDTO carries one question of a level. Score is on the 0-100 display
// scale.
type QuestionDTO struct {
	ID             uint       `json:"id"`
	OrderInLevel   int        `json:"order_in_level"`
	Text           string     `json:"text"`
	Answer         *string    `json:"answer,omitempty"`
	Feedback       *string    `json:"feedback,omitempty"`
	Score          *float64   `json:"score,omitempty"`
	ModelAnswer    *string    `json:"model_answer,omitempty"`
	Suggestions    []string   `json:"suggestions,omitempty"`
	TopicsToRevise []string   `json:"topics_to_revise,omitempty"`
	AskedAt        time.Time  `json:"asked_at"`
	AnsweredAt     *time.Time `json:"answered_at,omitempty"`
}

type LevelDTO struct {
	LevelNumber  int           `json:"level_number"`
	Difficulty   string        `json:"difficulty"`
	Questions    []QuestionDTO `json:"questions,omitempty"`
	AverageScore *float64      `json:"average_score,omitempty"` // 0-100 display scale
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

type InterviewSessionDTO struct {
	InterviewID        string                `json:"interview_id"`
	Status             string                `json:"status"`
	CurrentLevel       int                   `json:"current_level"`
	TotalLevels        int                   `json:"total_levels"`
	Difficulty         string                `json:"difficulty"`
	Phase              string                `json:"phase"`
	QuestionIndex      int                   `json:"question_index"` // first unanswered, -1 outside answering
	PreparationContext PreparationContextDTO `json:"preparation_context"`
	Levels             []LevelDTO            `json:"levels,omitempty"`
	OverallScore       *float64              `json:"overall_score,omitempty"` // 0-100 display scale
	CreatedAt          time.Time             `json:"created_at"`
	CompletedAt        *time.Time            `json:"completed_at,omitempty"`
}

type InterviewSummaryDTO struct {
	InterviewID   string     `json:"interview_id"`
	TargetRole    string     `json:"target_role"`
	TargetCompany string     `json:"target_company,omitempty"`
	Status        string     `json:"status"`
	CurrentLevel  int        `json:"current_level"`
	OverallScore  *float64   `json:"overall_score,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

type CreateInterviewResponse struct {
	InterviewID string              `json:"interview_id"`
	Session     InterviewSessionDTO `json:"session"`
}

type BulkQuestionsResponse struct {
	Questions      []QuestionDTO       `json:"questions"`
	CurrentLevel   int                 `json:"current_level"`
	TotalQuestions int                 `json:"total_questions"`
	Session        InterviewSessionDTO `json:"session"`
}

// FeedbackResultDTO is one graded answer, positionally aligned with the
// submitted pairs.
type FeedbackResultDTO struct {
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	Score          float64  `json:"score"` // 0-100 display scale
	Feedback       string   `json:"feedback"`
	ModelAnswer    string   `json:"model_answer"`
	Suggestions    []string `json:"suggestions,omitempty"`
	TopicsToRevise []string `json:"topics_to_revise,omitempty"`
}

type BatchFeedbackResponse struct {
	Feedback              []FeedbackResultDTO `json:"feedback"`
	OverallTopicsToRevise []string            `json:"overall_topics_to_revise,omitempty"`
	LevelAverage          float64             `json:"level_average"` // 0-100 display scale
	CanAdvance            bool                `json:"can_advance"`
	InterviewCompleted    bool                `json:"interview_completed"`
	NextLevel             int                 `json:"next_level"`
	OverallScore          *float64            `json:"overall_score,omitempty"`
	Session               InterviewSessionDTO `json:"session"`
}

// --- Auth ---

type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// --- Courses ---

type CourseDTO struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Category      string    `json:"category,omitempty"`
	Instructor    string    `json:"instructor,omitempty"`
	DurationWeeks int       `json:"duration_weeks,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type EnrollmentDTO struct {
	ID         uint      `json:"id"`
	Course     CourseDTO `json:"course"`
	Progress   float64   `json:"progress"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// --- Resumes ---

type ResumeDTO struct {
	ID         uint                  `json:"id"`
	Title      string                `json:"title"`
	Summary    string                `json:"summary,omitempty"`
	Skills     []string              `json:"skills,omitempty"`
	Experience []ResumeExperienceDTO `json:"experience,omitempty"`
	Education  []ResumeEducationDTO  `json:"education,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}
