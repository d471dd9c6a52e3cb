// Package postgres implements the PostgreSQL persistence layer for Stratos.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/progression"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// COMPLETION REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// CompletionRepository implements progression.CompletionRepository for PostgreSQL.
type CompletionRepository struct {
	conn *Connection
}

// NewCompletionRepository creates a new CompletionRepository.
func NewCompletionRepository(conn *Connection) *CompletionRepository {
	return &CompletionRepository{conn: conn}
}

// GetByLearnerAndLanguage returns the learner's completion records for a language.
func (r *CompletionRepository) GetByLearnerAndLanguage(
	ctx context.Context,
	learnerID string,
	language shared.LanguageCode,
) ([]progression.LessonCompletion, error) {
	query := `
		SELECT learner_id, lesson_id, language, completed, score, completed_at
		FROM lesson_completions
		WHERE learner_id = $1 AND language = $2
	`

	rows, err := r.conn.Query(ctx, query, learnerID, language.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	return scanCompletions(rows)
}

// CountCompletedByLanguage returns how many lessons of a language are completed.
func (r *CompletionRepository) CountCompletedByLanguage(
	ctx context.Context,
	learnerID string,
	language shared.LanguageCode,
) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, `
		SELECT COUNT(*) FROM lesson_completions
		WHERE learner_id = $1 AND language = $2 AND completed
	`, learnerID, language.String()).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}

func scanCompletions(rows pgx.Rows) ([]progression.LessonCompletion, error) {
	var out []progression.LessonCompletion
	for rows.Next() {
		var (
			c    progression.LessonCompletion
			lang string
		)
		if err := rows.Scan(&c.LearnerID, &c.LessonID, &lang, &c.Completed, &c.Score, &c.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		c.Language = shared.LanguageCode(lang)
		out = append(out, c)
	}
	return out, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// AchievementRepository implements progression.AchievementRepository for PostgreSQL.
type AchievementRepository struct {
	conn *Connection
}

// NewAchievementRepository creates a new AchievementRepository.
func NewAchievementRepository(conn *Connection) *AchievementRepository {
	return &AchievementRepository{conn: conn}
}

// GetUnlocked returns all achievements the learner has unlocked.
func (r *AchievementRepository) GetUnlocked(ctx context.Context, learnerID string) ([]progression.UnlockedAchievement, error) {
	rows, err := r.conn.Query(ctx, `
		SELECT learner_id, achievement_id, unlocked_at
		FROM learner_achievements
		WHERE learner_id = $1
		ORDER BY unlocked_at
	`, learnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievements: %w", err)
	}
	defer rows.Close()

	var out []progression.UnlockedAchievement
	for rows.Next() {
		var a progression.UnlockedAchievement
		if err := rows.Scan(&a.LearnerID, &a.AchievementID, &a.UnlockedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// ══════════════════════════════════════════════════════════════════════════════
// UNIT OF WORK IMPLEMENTATION
// Serializes all progress writes for one learner: the learner row is
// locked with SELECT ... FOR UPDATE for the duration of the callback.
// ══════════════════════════════════════════════════════════════════════════════

// UnitOfWork implements progression.UnitOfWork for PostgreSQL.
type UnitOfWork struct {
	conn *Connection
}

// NewUnitOfWork creates a new UnitOfWork.
func NewUnitOfWork(conn *Connection) *UnitOfWork {
	return &UnitOfWork{conn: conn}
}

// WithLearner runs fn inside a transaction holding the learner row lock.
func (u *UnitOfWork) WithLearner(
	ctx context.Context,
	learnerID string,
	fn func(context.Context, progression.Tx) error,
) error {
	return u.conn.WithTx(ctx, DefaultTxOptions(), func(tx pgx.Tx) error {
		query := `SELECT` + learnerColumns + `
			FROM learners
			WHERE id = $1
			FOR UPDATE
		`

		l, err := scanLearner(tx.QueryRow(ctx, query, learnerID))
		if err != nil {
			return err
		}

		return fn(ctx, &progressTx{tx: tx, learner: l})
	})
}

// progressTx implements progression.Tx over one pgx transaction.
type progressTx struct {
	tx      pgx.Tx
	learner *learner.Learner
}

func (t *progressTx) Learner() *learner.Learner { return t.learner }

func (t *progressTx) UpdateLearner(ctx context.Context, l *learner.Learner) error {
	query := `
		UPDATE learners SET
			email = $1,
			password_hash = $2,
			display_name = $3,
			xp = $4,
			streak = $5,
			hearts = $6,
			current_language = $7,
			languages_learning = $8,
			last_practice_date = $9,
			updated_at = NOW()
		WHERE id = $10
	`

	result, err := t.tx.Exec(ctx, query,
		l.Email.String(),
		l.PasswordHash,
		l.DisplayName,
		l.XP.Int(),
		l.Streak,
		l.Hearts.Int(),
		l.CurrentLanguage.String(),
		languageCodes(l.LanguagesLearning),
		nullableDate(l.LastPracticeDate),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update learner: %w", err)
	}
	if result.RowsAffected() == 0 {
		return shared.ErrLearnerNotFound
	}

	t.learner = l
	return nil
}

func (t *progressTx) UpsertCompletion(ctx context.Context, c progression.LessonCompletion) error {
	query := `
		INSERT INTO lesson_completions (learner_id, lesson_id, language, completed, score, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (learner_id, lesson_id) DO UPDATE SET
			completed = EXCLUDED.completed,
			score = EXCLUDED.score,
			completed_at = EXCLUDED.completed_at
	`

	_, err := t.tx.Exec(ctx, query,
		c.LearnerID, c.LessonID, c.Language.String(), c.Completed, c.Score, c.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert completion: %w", err)
	}
	return nil
}

func (t *progressTx) CountCompleted(ctx context.Context) (int, error) {
	var count int
	err := t.tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM lesson_completions
		WHERE learner_id = $1 AND completed
	`, t.learner.ID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count completions: %w", err)
	}
	return count, nil
}

func (t *progressTx) Unlocked(ctx context.Context) (map[string]bool, error) {
	rows, err := t.tx.Query(ctx, `
		SELECT achievement_id FROM learner_achievements WHERE learner_id = $1
	`, t.learner.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unlocked achievements: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan achievement id: %w", err)
		}
		unlocked[id] = true
	}
	return unlocked, rows.Err()
}

func (t *progressTx) UnlockAchievements(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	// ON CONFLICT DO NOTHING with RETURNING yields only the rows that
	// were actually inserted, which is exactly the "newly unlocked" set.
	rows, err := t.tx.Query(ctx, `
		INSERT INTO learner_achievements (learner_id, achievement_id)
		SELECT $1, unnest($2::text[])
		ON CONFLICT (learner_id, achievement_id) DO NOTHING
		RETURNING achievement_id
	`, t.learner.ID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to unlock achievements: %w", err)
	}
	defer rows.Close()

	var inserted []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan unlocked id: %w", err)
		}
		inserted = append(inserted, id)
	}
	return inserted, rows.Err()
}
