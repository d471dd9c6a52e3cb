// Package learner содержит доменную модель ученика Stratos.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package learner

import (
	"fmt"
	"strings"
	"time"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: LEARNER
// ══════════════════════════════════════════════════════════════════════════════

// Learner - центральная сущность системы, представляющая изучающего язык.
type Learner struct {
	// ID - внутренний уникальный идентификатор (UUID в строковом формате).
	ID string

	// Email - адрес электронной почты (уникальный, в нижнем регистре).
	Email shared.Email

	// PasswordHash - bcrypt-хеш пароля. Никогда не отдаётся наружу.
	PasswordHash string

	// DisplayName - отображаемое имя ученика.
	DisplayName string

	// XP - суммарные очки опыта за всё время.
	XP shared.XP

	// Streak - текущая серия дней практики.
	Streak int

	// Hearts - оставшиеся сердца. Чистый счётчик: ноль сердец
	// не блокирует практику.
	Hearts shared.Hearts

	// CurrentLanguage - язык, выбранный последним.
	CurrentLanguage shared.LanguageCode

	// LanguagesLearning - все начатые языковые курсы в порядке начала.
	LanguagesLearning []shared.LanguageCode

	// LastPracticeDate - календарная дата последней практики (UTC, полночь).
	// Нулевое значение означает, что ученик ещё ни разу не практиковался.
	LastPracticeDate time.Time

	// CreatedAt - время регистрации.
	CreatedAt time.Time

	// UpdatedAt - время последнего обновления.
	UpdatedAt time.Time
}

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewLearnerParams содержит параметры для регистрации нового ученика.
type NewLearnerParams struct {
	ID           string
	Email        shared.Email
	PasswordHash string
	DisplayName  string
}

// NewLearner создаёт нового ученика с валидацией всех полей.
func NewLearner(params NewLearnerParams) (*Learner, error) {
	if params.ID == "" {
		return nil, shared.NewDomainError("learner", "New", shared.ErrInvalidID, "learner id is required")
	}

	if !params.Email.IsValid() {
		return nil, shared.ErrInvalidEmail
	}

	if params.PasswordHash == "" {
		return nil, shared.NewDomainError("learner", "New", shared.ErrEmptyValue, "password hash is required")
	}

	displayName := strings.TrimSpace(params.DisplayName)
	if len(displayName) == 0 || len(displayName) > 100 {
		return nil, shared.NewDomainError("learner", "New", shared.ErrInvalidInput, "display name must be 1-100 chars")
	}

	now := time.Now().UTC()

	return &Learner{
		ID:                params.ID,
		Email:             params.Email,
		PasswordHash:      params.PasswordHash,
		DisplayName:       displayName,
		XP:                0,
		Streak:            0,
		Hearts:            shared.FullHearts,
		CurrentLanguage:   "",
		LanguagesLearning: nil,
		LastPracticeDate:  time.Time{},
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS (Business Logic)
// ══════════════════════════════════════════════════════════════════════════════

// Level возвращает текущий уровень ученика, вычисляемый из XP.
func (l *Learner) Level() shared.Level {
	return l.XP.Level()
}

// HasStarted проверяет, начат ли языковой курс.
func (l *Learner) HasStarted(code shared.LanguageCode) bool {
	for _, c := range l.LanguagesLearning {
		if c == code {
			return true
		}
	}
	return false
}

// StartLanguage начинает изучение языка и делает его текущим.
// Повторный вызов для уже начатого языка только переключает текущий язык.
// Возвращает true, если язык добавлен впервые.
func (l *Learner) StartLanguage(code shared.LanguageCode) (added bool, err error) {
	if !code.IsValid() {
		return false, shared.NewDomainError("learner", "StartLanguage", shared.ErrInvalidFormat, "invalid language code")
	}

	if !l.HasStarted(code) {
		l.LanguagesLearning = append(l.LanguagesLearning, code)
		added = true
	}

	l.CurrentLanguage = code
	l.UpdatedAt = time.Now().UTC()
	return added, nil
}

// HasEverPracticed возвращает true, если ученик уже проходил уроки.
func (l *Learner) HasEverPracticed() bool {
	return !l.LastPracticeDate.IsZero()
}

// ApplyProgress применяет результат прохождения урока:
// новые значения XP, серии, сердец и дату практики.
func (l *Learner) ApplyProgress(xp shared.XP, streak int, hearts shared.Hearts, practicedOn time.Time) {
	l.XP = xp
	l.Streak = streak
	l.Hearts = hearts
	l.LastPracticeDate = practicedOn
	l.UpdatedAt = time.Now().UTC()
}

// UpdateDisplayName изменяет отображаемое имя.
func (l *Learner) UpdateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if len(name) == 0 || len(name) > 100 {
		return shared.NewDomainError("learner", "UpdateDisplayName", shared.ErrInvalidInput, "display name must be 1-100 chars")
	}

	l.DisplayName = name
	l.UpdatedAt = time.Now().UTC()
	return nil
}

// RefillHearts восстанавливает сердца до максимума.
func (l *Learner) RefillHearts() {
	l.Hearts = shared.FullHearts
	l.UpdatedAt = time.Now().UTC()
}

// String возвращает строковое представление ученика для логирования.
func (l *Learner) String() string {
	return fmt.Sprintf(
		"Learner{ID: %s, Email: %s, XP: %d, Level: %d, Streak: %d}",
		l.ID, l.Email, l.XP, l.Level(), l.Streak,
	)
}

// Clone создаёт глубокую копию ученика.
func (l *Learner) Clone() *Learner {
	if l == nil {
		return nil
	}

	clone := *l
	clone.LanguagesLearning = append([]shared.LanguageCode(nil), l.LanguagesLearning...)
	return &clone
}
