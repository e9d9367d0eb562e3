package service

import (
	"fmt"

	"github.com/prepwise/prepwise/internal/model"
)

// Phase is the derived position of a session within its current level. It is
// never stored; it is recomputed from persisted data on every entry.
type Phase string

const (
	PhaseAwaitingQuestions Phase = "awaiting_questions"
	PhaseAnswering         Phase = "answering"
	PhaseAwaitingGrading   Phase = "awaiting_grading"
	PhaseLevelSummary      Phase = "level_summary"
	PhaseFinished          Phase = "finished"
)

// PhaseInfo carries the derived phase plus where in the level the user is.
// QuestionIndex is the zero-based index of the first unanswered question when
// Phase is PhaseAnswering, and -1 otherwise.
type PhaseInfo struct {
	Phase         Phase
	LevelNumber   int
	QuestionIndex int
}

// DerivePhase computes the phase of a session from its persisted state alone.
//
//	no questions for the current level  -> AwaitingQuestions
//	any question unanswered             -> Answering (first unanswered, list order)
//	all answered, any without feedback  -> AwaitingGrading
//	all answered and graded             -> LevelSummary
//	session completed                   -> Finished
//
// A level whose questions are all answered but fewer than the full batch is a
// broken invariant and yields ErrInconsistentState.
func DerivePhase(s *model.InterviewSession) (PhaseInfo, error) {
	if s.Status == model.StatusCompleted {
		return PhaseInfo{Phase: PhaseFinished, LevelNumber: s.CurrentLevel, QuestionIndex: -1}, nil
	}

	level := s.LevelByNumber(s.CurrentLevel)
	if level == nil || len(level.Questions) == 0 {
		return PhaseInfo{Phase: PhaseAwaitingQuestions, LevelNumber: s.CurrentLevel, QuestionIndex: -1}, nil
	}

	for i := range level.Questions {
		if level.Questions[i].Answer == nil {
			return PhaseInfo{Phase: PhaseAnswering, LevelNumber: s.CurrentLevel, QuestionIndex: i}, nil
		}
	}

	if len(level.Questions) < model.QuestionsPerLevel {
		return PhaseInfo{}, fmt.Errorf(
			"session %s level %d has only %d questions, all answered: %w",
			s.PublicID, s.CurrentLevel, len(level.Questions), ErrInconsistentState)
	}

	for i := range level.Questions {
		if level.Questions[i].Feedback == nil {
			return PhaseInfo{Phase: PhaseAwaitingGrading, LevelNumber: s.CurrentLevel, QuestionIndex: -1}, nil
		}
	}

	return PhaseInfo{Phase: PhaseLevelSummary, LevelNumber: s.CurrentLevel, QuestionIndex: -1}, nil
}

// AdvancePolicy names the advancement rule instead of burying it in handler
// conditionals. Scores are on the canonical 0-10 scale.
type AdvancePolicy struct {
	// PassThreshold is the minimum level average required to advance.
	PassThreshold float64
	// AlwaysFinishAtLastLevel completes the session after the last level is
	// graded regardless of its average. When false, failing the last level
	// leaves the session in-progress for a retry.
	AlwaysFinishAtLastLevel bool
}

// DefaultAdvancePolicy mirrors the product behavior: pass at 6/10, and the
// last level always finishes the interview.
var DefaultAdvancePolicy = AdvancePolicy{
	PassThreshold:           6.0,
	AlwaysFinishAtLastLevel: true,
}

// CanAdvance reports whether a level average qualifies for the next level.
func (p AdvancePolicy) CanAdvance(average float64) bool {
	return average >= p.PassThreshold
}

// ShouldFinish reports whether grading the given level ends the session.
func (p AdvancePolicy) ShouldFinish(levelNumber int, average float64) bool {
	if levelNumber < model.TotalLevels {
		return false
	}
	return p.AlwaysFinishAtLastLevel || p.CanAdvance(average)
}
