package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/prepwise/prepwise/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.InterviewSession{},
		&model.InterviewLevel{},
		&model.Question{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedSessionWithLevel(t *testing.T, repo SessionRepository, ownerID uint, publicID string) *model.InterviewSession {
	t.Helper()
	now := time.Now()
	session := &model.InterviewSession{
		PublicID: publicID,
		OwnerID:  ownerID,
		PreparationContext: model.PreparationContext{
			TargetRole: "Backend Engineer",
			Skills:     []string{"Go", "PostgreSQL"},
		},
		CurrentLevel:   1,
		Status:         model.StatusInProgress,
		LastActivityAt: now,
		Levels: []model.InterviewLevel{{
			LevelNumber: 1,
			Questions: []model.Question{
				{OrderInLevel: 3, Text: "Third?", AskedAt: now},
				{OrderInLevel: 1, Text: "First?", AskedAt: now},
				{OrderInLevel: 2, Text: "Second?", AskedAt: now},
			},
		}},
	}
	if err := repo.Create(session); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

func TestFindByPublicIDOrdersQuestions(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	seedSessionWithLevel(t, repo, 1, "iv-1")

	loaded, err := repo.FindByPublicID(1, "iv-1")
	if err != nil {
		t.Fatalf("FindByPublicID failed: %v", err)
	}
	if len(loaded.Levels) != 1 {
		t.Fatalf("loaded %d levels, want 1", len(loaded.Levels))
	}
	questions := loaded.Levels[0].Questions
	if len(questions) != 3 {
		t.Fatalf("loaded %d questions, want 3", len(questions))
	}
	for i, want := range []string{"First?", "Second?", "Third?"} {
		if questions[i].Text != want {
			t.Errorf("questions[%d] = %q, want %q", i, questions[i].Text, want)
		}
	}
	if loaded.PreparationContext.Skills[0] != "Go" {
		t.Errorf("serialized skills not restored: %v", loaded.PreparationContext.Skills)
	}
}

func TestFindByPublicIDIsOwnerScoped(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	seedSessionWithLevel(t, repo, 1, "iv-1")

	if _, err := repo.FindByPublicID(2, "iv-1"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for foreign owner, got %v", err)
	}
}

func TestSavePersistsAnswersAndGrades(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	seedSessionWithLevel(t, repo, 1, "iv-1")

	session, err := repo.FindByPublicID(1, "iv-1")
	if err != nil {
		t.Fatalf("FindByPublicID failed: %v", err)
	}

	answer := "my answer"
	feedback := "solid"
	score := 7.5
	now := time.Now()
	q := &session.Levels[0].Questions[0]
	q.Answer = &answer
	q.AnsweredAt = &now
	q.Feedback = &feedback
	q.Score = &score
	q.Suggestions = []string{"add numbers"}
	session.PreviousQuestionTexts = []string{"First?", "Second?", "Third?"}

	if err := repo.Save(session); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if session.Revision != 1 {
		t.Errorf("revision = %d, want 1", session.Revision)
	}

	reloaded, err := repo.FindByPublicID(1, "iv-1")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	got := reloaded.Levels[0].Questions[0]
	if got.Answer == nil || *got.Answer != answer {
		t.Errorf("answer not persisted: %v", got.Answer)
	}
	if got.Feedback == nil || *got.Feedback != feedback {
		t.Errorf("feedback not persisted: %v", got.Feedback)
	}
	if got.Score == nil || *got.Score != score {
		t.Errorf("score not persisted: %v", got.Score)
	}
	if len(got.Suggestions) != 1 || got.Suggestions[0] != "add numbers" {
		t.Errorf("suggestions not persisted: %v", got.Suggestions)
	}
	if len(reloaded.PreviousQuestionTexts) != 3 {
		t.Errorf("previous question texts = %d entries, want 3", len(reloaded.PreviousQuestionTexts))
	}
}

func TestSaveDetectsRevisionConflict(t *testing.T) {
	repo := NewSessionRepository(newTestDB(t))
	seedSessionWithLevel(t, repo, 1, "iv-1")

	first, err := repo.FindByPublicID(1, "iv-1")
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	second, err := repo.FindByPublicID(1, "iv-1")
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	first.CurrentLevel = 2
	if err := repo.Save(first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second.Status = model.StatusPaused
	err = repo.Save(second)
	if !errors.Is(err, ErrSessionConflict) {
		t.Fatalf("expected ErrSessionConflict, got %v", err)
	}
	if second.Revision != 0 {
		t.Errorf("in-memory revision advanced to %d on a failed save", second.Revision)
	}

	reloaded, err := repo.FindByPublicID(1, "iv-1")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status == model.StatusPaused {
		t.Error("losing write was persisted")
	}
	if reloaded.CurrentLevel != 2 {
		t.Errorf("winning write lost, current level = %d", reloaded.CurrentLevel)
	}
}

func TestFindAllByOwnerFiltersByStatus(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)
	seedSessionWithLevel(t, repo, 1, "iv-1")
	second := seedSessionWithLevel(t, repo, 1, "iv-2")
	seedSessionWithLevel(t, repo, 2, "iv-3")

	second.Status = model.StatusCompleted
	if err := repo.Save(second); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	all, err := repo.FindAllByOwner(1, "")
	if err != nil {
		t.Fatalf("FindAllByOwner failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("owner 1 has %d sessions, want 2", len(all))
	}

	completed, err := repo.FindAllByOwner(1, model.StatusCompleted)
	if err != nil {
		t.Fatalf("FindAllByOwner failed: %v", err)
	}
	if len(completed) != 1 || completed[0].PublicID != "iv-2" {
		t.Fatalf("status filter returned %d sessions", len(completed))
	}

	everything, err := repo.FindAll("")
	if err != nil {
		t.Fatalf("FindAll failed: %v", err)
	}
	if len(everything) != 3 {
		t.Fatalf("FindAll returned %d sessions, want 3", len(everything))
	}
}

func TestPauseIdleSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewSessionRepository(db)

	stale := seedSessionWithLevel(t, repo, 1, "iv-stale")
	fresh := seedSessionWithLevel(t, repo, 1, "iv-fresh")
	done := seedSessionWithLevel(t, repo, 1, "iv-done")

	// Backdate the stale session and complete the third outside the repo API.
	old := time.Now().Add(-48 * time.Hour)
	if err := db.Model(stale).Update("last_activity_at", old).Error; err != nil {
		t.Fatalf("backdate failed: %v", err)
	}
	if err := db.Model(done).Updates(map[string]interface{}{
		"status": model.StatusCompleted, "last_activity_at": old,
	}).Error; err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	paused, err := repo.PauseIdleSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		t.Fatalf("PauseIdleSince failed: %v", err)
	}
	if paused != 1 {
		t.Fatalf("paused %d sessions, want 1", paused)
	}

	reloaded, err := repo.FindByPublicID(1, "iv-stale")
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != model.StatusPaused {
		t.Errorf("stale session status = %s, want %s", reloaded.Status, model.StatusPaused)
	}
	stillRunning, err := repo.FindByPublicID(1, fresh.PublicID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stillRunning.Status != model.StatusInProgress {
		t.Errorf("fresh session status = %s, want %s", stillRunning.Status, model.StatusInProgress)
	}
}
