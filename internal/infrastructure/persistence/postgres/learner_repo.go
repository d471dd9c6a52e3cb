// Package postgres implements the PostgreSQL persistence layer for Stratos.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/stratos-app/stratos-backend/internal/domain/learner"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LEARNER REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

const learnerColumns = `
	id, email, password_hash, display_name, xp, streak, hearts,
	current_language, languages_learning, last_practice_date,
	created_at, updated_at`

// LearnerRepository implements learner.Repository for PostgreSQL.
type LearnerRepository struct {
	conn *Connection
}

// NewLearnerRepository creates a new LearnerRepository.
func NewLearnerRepository(conn *Connection) *LearnerRepository {
	return &LearnerRepository{conn: conn}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create creates a new learner.
func (r *LearnerRepository) Create(ctx context.Context, l *learner.Learner) error {
	query := `
		INSERT INTO learners (
			id, email, password_hash, display_name, xp, streak, hearts,
			current_language, languages_learning, last_practice_date,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.conn.Exec(ctx, query,
		l.ID,
		l.Email.String(),
		l.PasswordHash,
		l.DisplayName,
		l.XP.Int(),
		l.Streak,
		l.Hearts.Int(),
		l.CurrentLanguage.String(),
		languageCodes(l.LanguagesLearning),
		nullableDate(l.LastPracticeDate),
		l.CreatedAt,
		l.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			return shared.ErrEmailTaken
		}
		return fmt.Errorf("failed to create learner: %w", err)
	}

	return nil
}

// GetByID returns a learner by internal ID.
func (r *LearnerRepository) GetByID(ctx context.Context, id string) (*learner.Learner, error) {
	query := `SELECT` + learnerColumns + `
		FROM learners
		WHERE id = $1
	`

	row := r.conn.QueryRow(ctx, query, id)
	return scanLearner(row)
}

// GetByEmail returns a learner by email.
func (r *LearnerRepository) GetByEmail(ctx context.Context, email string) (*learner.Learner, error) {
	query := `SELECT` + learnerColumns + `
		FROM learners
		WHERE email = $1
	`

	row := r.conn.QueryRow(ctx, query, email)
	return scanLearner(row)
}

// Update updates a learner.
func (r *LearnerRepository) Update(ctx context.Context, l *learner.Learner) error {
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

	result, err := r.conn.Exec(ctx, query,
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

	return nil
}

// ExistsByEmail reports whether the email is already registered.
func (r *LearnerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.conn.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM learners WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// GetTopByXP returns learners ordered by XP descending.
func (r *LearnerRepository) GetTopByXP(ctx context.Context, limit int) ([]*learner.Learner, error) {
	query := `SELECT` + learnerColumns + `
		FROM learners
		ORDER BY xp DESC, created_at ASC
		LIMIT $1
	`

	rows, err := r.conn.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top learners: %w", err)
	}
	defer rows.Close()

	var out []*learner.Learner
	for rows.Next() {
		l, err := scanLearner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}

	return out, rows.Err()
}

// Count returns the total number of learners.
func (r *LearnerRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.conn.QueryRow(ctx, `SELECT COUNT(*) FROM learners`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count learners: %w", err)
	}
	return count, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Scanning
// ─────────────────────────────────────────────────────────────────────────────

// scanLearner maps one row to a learner entity.
func scanLearner(row pgx.Row) (*learner.Learner, error) {
	var (
		l            learner.Learner
		email        string
		xp           int
		hearts       int
		currentLang  string
		langs        []string
		lastPractice *time.Time
	)

	err := row.Scan(
		&l.ID,
		&email,
		&l.PasswordHash,
		&l.DisplayName,
		&xp,
		&l.Streak,
		&hearts,
		&currentLang,
		&langs,
		&lastPractice,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		if IsNoRows(err) {
			return nil, shared.ErrLearnerNotFound
		}
		return nil, fmt.Errorf("failed to scan learner: %w", err)
	}

	l.Email = shared.Email(email)
	l.XP = shared.XP(xp)
	l.Hearts = shared.Hearts(hearts)
	l.CurrentLanguage = shared.LanguageCode(currentLang)
	for _, code := range langs {
		l.LanguagesLearning = append(l.LanguagesLearning, shared.LanguageCode(code))
	}
	if lastPractice != nil {
		l.LastPracticeDate = lastPractice.UTC()
	}

	return &l, nil
}

// languageCodes converts the typed slice for the TEXT[] column.
func languageCodes(codes []shared.LanguageCode) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		out = append(out, c.String())
	}
	return out
}

// nullableDate maps the zero time to SQL NULL.
func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
