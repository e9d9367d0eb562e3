package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/prepwise/prepwise/internal/dto"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

// InterviewService drives the level progression: creating sessions, ensuring
// each level has its question batch, recording answers and grading a level in
// one upstream call. All decisions are recomputed from persisted state, so a
// user can leave mid-level and resume exactly where they stopped.
type InterviewService interface {
	CreateSession(ownerID uint, req dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error)
	ListSessions(ownerID uint, status string) ([]dto.InterviewSummaryDTO, error)
	ListAllSessions(status string) ([]dto.InterviewSummaryDTO, error)
	GetSession(ownerID uint, interviewID string) (*dto.InterviewSessionDTO, error)
	EnsureQuestions(ctx context.Context, ownerID uint, req dto.BulkQuestionsRequest) (*dto.BulkQuestionsResponse, error)
	SubmitBatchFeedback(ctx context.Context, ownerID uint, req dto.BatchFeedbackRequest) (*dto.BatchFeedbackResponse, error)
}

type interviewService struct {
	sessionRepo    repository.SessionRepository
	generator      QuestionGeneratorService
	grader         AnswerGraderService
	scoreConverter ScoreConverterService
	policy         AdvancePolicy
}

func NewInterviewService(
	sessionRepo repository.SessionRepository,
	generator QuestionGeneratorService,
	grader AnswerGraderService,
	scoreConverter ScoreConverterService,
	policy AdvancePolicy,
) InterviewService {
	return &interviewService{
		sessionRepo:    sessionRepo,
		generator:      generator,
		grader:         grader,
		scoreConverter: scoreConverter,
		policy:         policy,
	}
}

func (s *interviewService) CreateSession(ownerID uint, req dto.CreateInterviewRequest) (*dto.CreateInterviewResponse, error) {
	if strings.TrimSpace(req.PreparationContext.TargetRole) == "" {
		return nil, fmt.Errorf("%w: target_role is required", ErrValidation)
	}

	var prep model.PreparationContext
	if err := copier.Copy(&prep, &req.PreparationContext); err != nil {
		return nil, fmt.Errorf("error preparing session context: %w", err)
	}

	session := model.InterviewSession{
		PublicID:           uuid.NewString(),
		OwnerID:            ownerID,
		PreparationContext: prep,
		CurrentLevel:       1,
		Status:             model.StatusPreparation,
		LastActivityAt:     time.Now(),
	}
	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Uint("ownerID", ownerID).Msg("CreateSession: failed to persist new session")
		return nil, fmt.Errorf("failed to create interview session: %w", err)
	}

	sessionDTO, err := s.mapSessionDTO(&session)
	if err != nil {
		return nil, err
	}
	log.Info().Str("interviewID", session.PublicID).Uint("ownerID", ownerID).Msg("Interview session created")
	return &dto.CreateInterviewResponse{InterviewID: session.PublicID, Session: *sessionDTO}, nil
}

func (s *interviewService) ListSessions(ownerID uint, status string) ([]dto.InterviewSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindAllByOwner(ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("error fetching interview sessions: %w", err)
	}
	return s.mapSummaries(sessions), nil
}

func (s *interviewService) ListAllSessions(status string) ([]dto.InterviewSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindAll(status)
	if err != nil {
		return nil, fmt.Errorf("error fetching interview sessions: %w", err)
	}
	return s.mapSummaries(sessions), nil
}

func (s *interviewService) GetSession(ownerID uint, interviewID string) (*dto.InterviewSessionDTO, error) {
	session, err := s.loadSession(ownerID, interviewID)
	if err != nil {
		return nil, err
	}
	return s.mapSessionDTO(session)
}

// EnsureQuestions makes sure the current level has its full batch of
// questions. Calling it again before any answer is submitted returns the
// already-persisted batch; a level is never regenerated.
func (s *interviewService) EnsureQuestions(ctx context.Context, ownerID uint, req dto.BulkQuestionsRequest) (*dto.BulkQuestionsResponse, error) {
	session, err := s.loadSession(ownerID, req.InterviewID)
	if err != nil {
		return nil, err
	}
	if req.CurrentLevel != 0 && req.CurrentLevel != session.CurrentLevel {
		return nil, fmt.Errorf("%w: level %d is not the current level (%d)",
			ErrValidation, req.CurrentLevel, session.CurrentLevel)
	}

	info, err := DerivePhase(session)
	if err != nil {
		log.Error().Err(err).Str("interviewID", session.PublicID).Msg("EnsureQuestions: session state is inconsistent")
		return nil, err
	}

	switch info.Phase {
	case PhaseFinished:
		return nil, fmt.Errorf("%w: interview %s is already completed", ErrValidation, session.PublicID)
	case PhaseAwaitingQuestions:
		texts, genErr := s.generator.GenerateQuestions(ctx, session.PreparationContext,
			session.PreviousQuestionTexts, model.QuestionsPerLevel)
		if genErr != nil {
			return nil, genErr
		}

		now := time.Now()
		questions := make([]model.Question, 0, len(texts))
		for i, text := range texts {
			questions = append(questions, model.Question{
				OrderInLevel: i + 1,
				Text:         text,
				AskedAt:      now,
			})
		}
		// A level record may already exist without questions; fill it
		// instead of appending a second entry for the same level.
		if existing := session.LevelByNumber(session.CurrentLevel); existing != nil {
			existing.Questions = questions
		} else {
			session.Levels = append(session.Levels, model.InterviewLevel{
				SessionID:   session.ID,
				LevelNumber: session.CurrentLevel,
				Questions:   questions,
			})
		}
		session.PreviousQuestionTexts = append(session.PreviousQuestionTexts, texts...)
		if session.Status == model.StatusPreparation || session.Status == model.StatusPaused {
			session.Status = model.StatusInProgress
		}
		session.LastActivityAt = now

		if saveErr := s.saveSession(session); saveErr != nil {
			log.Error().Err(saveErr).Str("interviewID", session.PublicID).Int("level", session.CurrentLevel).
				Msg("EnsureQuestions: generated questions could not be saved, batch lost")
			return nil, saveErr
		}
		log.Info().Str("interviewID", session.PublicID).Int("level", session.CurrentLevel).
			Int("questions", len(texts)).Msg("Question batch generated")
	default:
		// Level already populated; return the persisted batch as-is.
	}

	level := session.LevelByNumber(session.CurrentLevel)
	if level == nil {
		return nil, fmt.Errorf("level %d missing after question generation: %w", session.CurrentLevel, ErrInconsistentState)
	}
	questionDTOs, err := s.mapQuestions(level.Questions)
	if err != nil {
		return nil, err
	}
	sessionDTO, err := s.mapSessionDTO(session)
	if err != nil {
		return nil, err
	}
	return &dto.BulkQuestionsResponse{
		Questions:      questionDTOs,
		CurrentLevel:   session.CurrentLevel,
		TotalQuestions: len(questionDTOs),
		Session:        *sessionDTO,
	}, nil
}

// SubmitBatchFeedback records any answers the level is still missing, grades
// the full batch in one upstream call, and applies the advancement decision.
// If grading fails the answers stay persisted and the call can be retried.
func (s *interviewService) SubmitBatchFeedback(ctx context.Context, ownerID uint, req dto.BatchFeedbackRequest) (*dto.BatchFeedbackResponse, error) {
	session, err := s.loadSession(ownerID, req.InterviewID)
	if err != nil {
		return nil, err
	}
	if session.Status == model.StatusCompleted {
		return nil, fmt.Errorf("%w: interview %s is already completed", ErrValidation, session.PublicID)
	}
	if req.LevelNumber != session.CurrentLevel {
		return nil, fmt.Errorf("%w: level %d is not the current level (%d)",
			ErrValidation, req.LevelNumber, session.CurrentLevel)
	}

	level := session.LevelByNumber(req.LevelNumber)
	if level == nil || len(level.Questions) == 0 {
		return nil, fmt.Errorf("%w: level %d has no questions to grade", ErrValidation, req.LevelNumber)
	}
	if len(req.QuestionsAndAnswers) != len(level.Questions) {
		return nil, fmt.Errorf("%w: expected %d answers, got %d",
			ErrValidation, len(level.Questions), len(req.QuestionsAndAnswers))
	}

	// Record missing answers before any upstream call; answers are written
	// once and never overwritten.
	now := time.Now()
	changed := false
	if session.Status == model.StatusPaused {
		session.Status = model.StatusInProgress
		changed = true
	}
	for i := range level.Questions {
		q := &level.Questions[i]
		if q.Answer != nil {
			continue
		}
		answer := strings.TrimSpace(req.QuestionsAndAnswers[i].Answer)
		if answer == "" {
			return nil, fmt.Errorf("%w: empty answer for question %d", ErrValidation, i+1)
		}
		q.Answer = &answer
		q.AnsweredAt = &now
		changed = true
	}
	if changed {
		session.LastActivityAt = now
		if saveErr := s.saveSession(session); saveErr != nil {
			return nil, saveErr
		}
	}

	info, err := DerivePhase(session)
	if err != nil {
		log.Error().Err(err).Str("interviewID", session.PublicID).Msg("SubmitBatchFeedback: session state is inconsistent")
		return nil, err
	}
	if info.Phase == PhaseLevelSummary {
		// Already graded; rebuild the decision from persisted state.
		return s.buildFeedbackResponse(session, level, s.overallTopics(level))
	}
	if info.Phase != PhaseAwaitingGrading {
		return nil, fmt.Errorf("%w: level %d is not ready for grading (phase %s)",
			ErrValidation, req.LevelNumber, info.Phase)
	}

	pairs := lo.Map(level.Questions, func(q model.Question, _ int) QuestionAnswer {
		return QuestionAnswer{Question: q.Text, Answer: *q.Answer}
	})
	result, err := s.grader.GradeBatch(ctx, session.PreparationContext, pairs)
	if err != nil {
		// Answers remain persisted; the next derivation retries grading.
		return nil, err
	}

	// Merge results back by position.
	total := 0.0
	for i := range level.Questions {
		grade := result.PerQuestion[i]
		q := &level.Questions[i]
		feedback := grade.Feedback
		modelAnswer := grade.ModelAnswer
		score := grade.Score
		q.Feedback = &feedback
		q.ModelAnswer = &modelAnswer
		q.Score = &score
		q.Suggestions = grade.Suggestions
		q.TopicsToRevise = grade.TopicsToRevise
		total += score
	}
	average := total / float64(len(level.Questions))
	completedAt := time.Now()
	level.AverageScore = &average
	level.CompletedAt = &completedAt

	canAdvance := s.policy.CanAdvance(average)
	if s.policy.ShouldFinish(level.LevelNumber, average) {
		session.Status = model.StatusCompleted
		session.CompletedAt = &completedAt
		overall := s.overallAverage(session)
		session.OverallScore = &overall
	} else if canAdvance && session.CurrentLevel < model.TotalLevels {
		session.CurrentLevel++
	}
	session.LastActivityAt = completedAt

	if saveErr := s.saveSession(session); saveErr != nil {
		// The grading call succeeded but its results could not be persisted.
		// The client will re-enter AwaitingGrading and re-pay the upstream
		// call on retry.
		log.Error().Err(saveErr).Str("interviewID", session.PublicID).Int("level", level.LevelNumber).
			Msg("SubmitBatchFeedback: grading results could not be saved, lost-update window hit")
		return nil, saveErr
	}

	log.Info().Str("interviewID", session.PublicID).Int("level", level.LevelNumber).
		Float64("average", average).Bool("canAdvance", canAdvance).
		Bool("completed", session.Status == model.StatusCompleted).Msg("Level graded")

	return s.buildFeedbackResponse(session, level, result.OverallTopicsToRevise)
}

func (s *interviewService) loadSession(ownerID uint, interviewID string) (*model.InterviewSession, error) {
	session, err := s.sessionRepo.FindByPublicID(ownerID, interviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: interview %s", ErrNotFound, interviewID)
		}
		return nil, fmt.Errorf("error loading interview %s: %w", interviewID, err)
	}
	return session, nil
}

func (s *interviewService) saveSession(session *model.InterviewSession) error {
	if err := s.sessionRepo.Save(session); err != nil {
		if errors.Is(err, repository.ErrSessionConflict) {
			return fmt.Errorf("%w: interview %s was modified concurrently", ErrConflict, session.PublicID)
		}
		return fmt.Errorf("failed to save interview %s: %w", session.PublicID, err)
	}
	return nil
}

// overallAverage is the mean of the per-level averages of every graded level.
func (s *interviewService) overallAverage(session *model.InterviewSession) float64 {
	graded := lo.Filter(session.Levels, func(l model.InterviewLevel, _ int) bool {
		return l.AverageScore != nil
	})
	if len(graded) == 0 {
		return 0
	}
	sum := lo.SumBy(graded, func(l model.InterviewLevel) float64 { return *l.AverageScore })
	return sum / float64(len(graded))
}

// overallTopics aggregates the per-question revision topics of a graded level,
// used when a response is rebuilt from persisted state.
func (s *interviewService) overallTopics(level *model.InterviewLevel) []string {
	topics := lo.Flatten(lo.Map(level.Questions, func(q model.Question, _ int) []string {
		return q.TopicsToRevise
	}))
	return lo.Uniq(topics)
}

func (s *interviewService) buildFeedbackResponse(session *model.InterviewSession, level *model.InterviewLevel, overallTopics []string) (*dto.BatchFeedbackResponse, error) {
	if level.AverageScore == nil {
		return nil, fmt.Errorf("level %d has no average score: %w", level.LevelNumber, ErrInconsistentState)
	}

	feedback := make([]dto.FeedbackResultDTO, 0, len(level.Questions))
	for _, q := range level.Questions {
		display, err := s.scoreConverter.ToDisplayScore(lo.FromPtr(q.Score))
		if err != nil {
			return nil, fmt.Errorf("error converting score for question %d: %w", q.OrderInLevel, err)
		}
		feedback = append(feedback, dto.FeedbackResultDTO{
			Question:       q.Text,
			Answer:         lo.FromPtr(q.Answer),
			Score:          display,
			Feedback:       lo.FromPtr(q.Feedback),
			ModelAnswer:    lo.FromPtr(q.ModelAnswer),
			Suggestions:    q.Suggestions,
			TopicsToRevise: q.TopicsToRevise,
		})
	}

	levelAverage, err := s.scoreConverter.ToDisplayScore(*level.AverageScore)
	if err != nil {
		return nil, fmt.Errorf("error converting level average: %w", err)
	}
	sessionDTO, err := s.mapSessionDTO(session)
	if err != nil {
		return nil, err
	}

	return &dto.BatchFeedbackResponse{
		Feedback:              feedback,
		OverallTopicsToRevise: overallTopics,
		LevelAverage:          levelAverage,
		CanAdvance:            s.policy.CanAdvance(*level.AverageScore),
		InterviewCompleted:    session.Status == model.StatusCompleted,
		NextLevel:             session.CurrentLevel,
		OverallScore:          sessionDTO.OverallScore,
		Session:               *sessionDTO,
	}, nil
}

func (s *interviewService) mapQuestions(questions []model.Question) ([]dto.QuestionDTO, error) {
	out := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		var qDTO dto.QuestionDTO
		if err := copier.Copy(&qDTO, &q); err != nil {
			return nil, fmt.Errorf("error preparing question response: %w", err)
		}
		if q.Score != nil {
			display, err := s.scoreConverter.ToDisplayScore(*q.Score)
			if err != nil {
				return nil, fmt.Errorf("error converting score for question %d: %w", q.OrderInLevel, err)
			}
			qDTO.Score = &display
		}
		out = append(out, qDTO)
	}
	return out, nil
}

func (s *interviewService) mapSessionDTO(session *model.InterviewSession) (*dto.InterviewSessionDTO, error) {
	info, err := DerivePhase(session)
	if err != nil {
		return nil, err
	}

	levels := make([]dto.LevelDTO, 0, len(session.Levels))
	for i := range session.Levels {
		lvl := &session.Levels[i]
		questionDTOs, qErr := s.mapQuestions(lvl.Questions)
		if qErr != nil {
			return nil, qErr
		}
		levelDTO := dto.LevelDTO{
			LevelNumber: lvl.LevelNumber,
			Difficulty:  model.DifficultyLabel(lvl.LevelNumber),
			Questions:   questionDTOs,
			CompletedAt: lvl.CompletedAt,
		}
		if lvl.AverageScore != nil {
			display, cErr := s.scoreConverter.ToDisplayScore(*lvl.AverageScore)
			if cErr != nil {
				return nil, fmt.Errorf("error converting level %d average: %w", lvl.LevelNumber, cErr)
			}
			levelDTO.AverageScore = &display
		}
		levels = append(levels, levelDTO)
	}

	var prepDTO dto.PreparationContextDTO
	if err := copier.Copy(&prepDTO, &session.PreparationContext); err != nil {
		return nil, fmt.Errorf("error preparing session response: %w", err)
	}

	out := &dto.InterviewSessionDTO{
		InterviewID:        session.PublicID,
		Status:             session.Status,
		CurrentLevel:       session.CurrentLevel,
		TotalLevels:        model.TotalLevels,
		Difficulty:         model.DifficultyLabel(session.CurrentLevel),
		Phase:              string(info.Phase),
		QuestionIndex:      info.QuestionIndex,
		PreparationContext: prepDTO,
		Levels:             levels,
		CreatedAt:          session.CreatedAt,
		CompletedAt:        session.CompletedAt,
	}
	if session.OverallScore != nil {
		display, err := s.scoreConverter.ToDisplayScore(*session.OverallScore)
		if err != nil {
			return nil, fmt.Errorf("error converting overall score: %w", err)
		}
		out.OverallScore = &display
	}
	return out, nil
}

func (s *interviewService) mapSummaries(sessions []model.InterviewSession) []dto.InterviewSummaryDTO {
	summaries := make([]dto.InterviewSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		summary := dto.InterviewSummaryDTO{
			InterviewID:   session.PublicID,
			TargetRole:    session.PreparationContext.TargetRole,
			TargetCompany: session.PreparationContext.TargetCompany,
			Status:        session.Status,
			CurrentLevel:  session.CurrentLevel,
			CreatedAt:     session.CreatedAt,
			CompletedAt:   session.CompletedAt,
		}
		if session.OverallScore != nil {
			if display, err := s.scoreConverter.ToDisplayScore(*session.OverallScore); err == nil {
				summary.OverallScore = &display
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
