package repository

import (
	"errors"
	"time"

	"github.com/prepwise/prepwise/internal/model"
	"gorm.io/gorm"
)

// ErrSessionConflict is returned when a whole-session save loses a revision
// race with a concurrent writer (two tabs editing the same session).
var ErrSessionConflict = errors.New("session was modified concurrently")

type SessionRepository interface {
	Create(session *model.InterviewSession) error
	// FindByPublicID loads a session with its levels and questions in storage
	// order, scoped to the owner.
	FindByPublicID(ownerID uint, publicID string) (*model.InterviewSession, error)
	FindAllByOwner(ownerID uint, status string) ([]model.InterviewSession, error)
	FindAll(status string) ([]model.InterviewSession, error)
	// Save replaces the whole session: scalar fields plus every level and
	// question. The write only applies if the in-memory Revision matches the
	// stored one; otherwise ErrSessionConflict is returned and nothing is
	// persisted.
	Save(session *model.InterviewSession) error
	// PauseIdleSince marks in-progress sessions with no activity since the
	// cutoff as paused. Returns the number of sessions affected.
	PauseIdleSince(cutoff time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) Create(session *model.InterviewSession) error {
	return r.db.Create(session).Error
}

func (r *sessionRepository) FindByPublicID(ownerID uint, publicID string) (*model.InterviewSession, error) {
	var session model.InterviewSession
	err := r.db.
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("interview_levels.level_number ASC")
		}).
		Preload("Levels.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.order_in_level ASC")
		}).
		Where("owner_id = ? AND public_id = ?", ownerID, publicID).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) FindAllByOwner(ownerID uint, status string) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	query := r.db.Where("owner_id = ?", ownerID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) FindAll(status string) ([]model.InterviewSession, error) {
	var sessions []model.InterviewSession
	query := r.db
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Order("created_at DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) Save(session *model.InterviewSession) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		previous := session.Revision
		session.Revision = previous + 1

		res := tx.Model(&model.InterviewSession{}).
			Where("id = ? AND revision = ?", session.ID, previous).
			Select("current_level", "status", "previous_question_texts",
				"overall_score", "completed_at", "last_activity_at", "revision").
			Updates(session)
		if res.Error != nil {
			session.Revision = previous
			return res.Error
		}
		if res.RowsAffected == 0 {
			session.Revision = previous
			return ErrSessionConflict
		}

		for i := range session.Levels {
			session.Levels[i].SessionID = session.ID
			if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).
				Save(&session.Levels[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *sessionRepository) PauseIdleSince(cutoff time.Time) (int64, error) {
	res := r.db.Model(&model.InterviewSession{}).
		Where("status = ? AND last_activity_at < ?", model.StatusInProgress, cutoff).
		Update("status", model.StatusPaused)
	return res.RowsAffected, res.Error
}
