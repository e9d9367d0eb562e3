package dto

// PreparationContextDTO is the creation-time snapshot of what the user is
// preparing for.
type PreparationContextDTO struct {
	TargetRole     string   `json:"target_role" binding:"required"`
	TargetCompany  string   `json:"target_company"`
	Industry       string   `json:"industry"`
	ExperienceBand string   `json:"experience_band"`
	Skills         []string `json:"skills"`
	FocusAreas     []string `json:"focus_areas"`
}

type CreateInterviewRequest struct {
	PreparationContext PreparationContextDTO `json:"preparation_context" binding:"required"`
}

// BulkQuestionsRequest asks the server to ensure the current level has its
// batch of questions. Idempotent when the level is already populated.
// CurrentLevel is optional; when set it must match the session's current
// level, otherwise the request is rejected.
type BulkQuestionsRequest struct {
	InterviewID  string `json:"interview_id" binding:"required"`
	CurrentLevel int    `json:"current_level" binding:"omitempty,min=1,max=5"`
}

type QuestionAnswerRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
}

type BatchFeedbackRequest struct {
	InterviewID         string                  `json:"interview_id" binding:"required"`
	LevelNumber         int                     `json:"level_number" binding:"required,min=1,max=5"`
	QuestionsAndAnswers []QuestionAnswerRequest `json:"questions_and_answers" binding:"required,dive"`
}

// --- Auth ---

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --- Courses ---

type CourseCreateDTO struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Instructor    string `json:"instructor"`
	DurationWeeks int    `json:"duration_weeks" binding:"omitempty,min=1"`
}

// --- Resumes ---

type ResumeExperienceDTO struct {
	Company     string `json:"company" binding:"required"`
	Title       string `json:"title" binding:"required"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description"`
}

type ResumeEducationDTO struct {
	Institution string `json:"institution" binding:"required"`
	Degree      string `json:"degree"`
	Year        string `json:"year"`
}

type ResumeRequest struct {
	Title      string                `json:"title" binding:"required"`
	Summary    string                `json:"summary"`
	Skills     []string              `json:"skills"`
	Experience []ResumeExperienceDTO `json:"experience" binding:"omitempty,dive"`
	Education  []ResumeEducationDTO  `json:"education" binding:"omitempty,dive"`
}
