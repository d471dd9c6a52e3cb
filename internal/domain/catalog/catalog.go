// Package catalog содержит статический каталог контента Stratos:
// языки, уроки, наборы карточек и определения достижений.
// Каталог неизменяем - загружается один раз при старте процесса
// и передаётся зависимостью, никогда не мутируется.
package catalog

import (
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG TYPES
// ══════════════════════════════════════════════════════════════════════════════

// ExerciseType - тип задания внутри урока.
type ExerciseType string

const (
	// ExerciseVoice - прослушать и повторить.
	ExerciseVoice ExerciseType = "voice"
	// ExerciseMultipleChoice - выбор из вариантов.
	ExerciseMultipleChoice ExerciseType = "multiple_choice"
	// ExerciseWritten - письменный перевод.
	ExerciseWritten ExerciseType = "written"
)

// ExerciseItem - одно задание урока.
type ExerciseItem struct {
	Type          ExerciseType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	VoiceURL      string       `json:"voice_url,omitempty"`
	Hint          string       `json:"hint,omitempty"`
}

// Lesson - урок каталога.
type Lesson struct {
	ID          string              `json:"id"`
	Language    shared.LanguageCode `json:"language"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Order       int                 `json:"order"`
	XPReward    int                 `json:"xp_reward"`
	Content     []ExerciseItem      `json:"content"`
}

// Language - языковой курс.
type Language struct {
	Code shared.LanguageCode `json:"code"`
	Name string              `json:"name"`
	Flag string              `json:"flag"`
}

// Flashcard - одна карточка.
type Flashcard struct {
	Front    string `json:"front"`
	Back     string `json:"back"`
	VoiceURL string `json:"voice_url,omitempty"`
}

// FlashcardSet - набор карточек для языка.
type FlashcardSet struct {
	ID       string              `json:"id"`
	Language shared.LanguageCode `json:"language"`
	Title    string              `json:"title"`
	Cards    []Flashcard         `json:"cards"`
}

// AchievementDef - определение достижения (идентификатор, название, иконка).
// Условия выдачи живут в пакете progression.
type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// ══════════════════════════════════════════════════════════════════════════════
// CATALOG CONTAINER
// ══════════════════════════════════════════════════════════════════════════════

// Catalog - неизменяемый контейнер всего статического контента.
type Catalog struct {
	languages    []Language
	lessons      map[shared.LanguageCode][]Lesson
	lessonByID   map[string]Lesson
	flashcards   map[shared.LanguageCode][]FlashcardSet
	achievements []AchievementDef
	achByID      map[string]AchievementDef
}

// New собирает каталог с валидацией структуры.
// Возвращает shared.ErrMalformedCatalog при дублях идентификаторов,
// неплотных order-ах или пустых уроках.
func New(
	languages []Language,
	lessons map[shared.LanguageCode][]Lesson,
	flashcards map[shared.LanguageCode][]FlashcardSet,
	achievements []AchievementDef,
) (*Catalog, error) {
	c := &Catalog{
		languages:    languages,
		lessons:      lessons,
		lessonByID:   make(map[string]Lesson),
		flashcards:   flashcards,
		achievements: achievements,
		achByID:      make(map[string]AchievementDef, len(achievements)),
	}

	for code, langLessons := range lessons {
		seenOrders := make(map[int]bool)
		for _, lesson := range langLessons {
			if lesson.Language != code {
				return nil, wrapMalformed(fmt.Sprintf("lesson %s filed under wrong language %s", lesson.ID, code))
			}
			if len(lesson.Content) == 0 {
				return nil, wrapMalformed(fmt.Sprintf("lesson %s has no content", lesson.ID))
			}
			if lesson.Order < 1 {
				return nil, wrapMalformed(fmt.Sprintf("lesson %s has invalid order %d", lesson.ID, lesson.Order))
			}
			if _, dup := c.lessonByID[lesson.ID]; dup {
				return nil, wrapMalformed(fmt.Sprintf("duplicate lesson id %s", lesson.ID))
			}
			c.lessonByID[lesson.ID] = lesson
			seenOrders[lesson.Order] = true
		}

		// Order-ы плотные: каждый order от 1 до max встречается.
		for o := 1; o <= len(seenOrders); o++ {
			if !seenOrders[o] {
				return nil, wrapMalformed(fmt.Sprintf("language %s has a gap at order %d", code, o))
			}
		}
	}

	for _, a := range achievements {
		if _, dup := c.achByID[a.ID]; dup {
			return nil, wrapMalformed(fmt.Sprintf("duplicate achievement id %s", a.ID))
		}
		c.achByID[a.ID] = a
	}

	return c, nil
}

func wrapMalformed(msg string) error {
	return shared.WrapError("catalog", "Load", shared.ErrInvalidFormat, "catalog data is malformed", fmt.Errorf("%s", msg))
}

// Languages возвращает все языковые курсы.
func (c *Catalog) Languages() []Language {
	return c.languages
}

// Language возвращает язык по коду.
func (c *Catalog) Language(code shared.LanguageCode) (Language, bool) {
	for _, l := range c.languages {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// Lessons возвращает уроки языка в порядке каталога.
func (c *Catalog) Lessons(code shared.LanguageCode) []Lesson {
	return c.lessons[code]
}

// Lesson возвращает урок по языку и идентификатору.
func (c *Catalog) Lesson(code shared.LanguageCode, id string) (Lesson, bool) {
	lesson, ok := c.lessonByID[id]
	if !ok || lesson.Language != code {
		return Lesson{}, false
	}
	return lesson, true
}

// Flashcards возвращает наборы карточек языка.
func (c *Catalog) Flashcards(code shared.LanguageCode) []FlashcardSet {
	return c.flashcards[code]
}

// Achievements возвращает все определения достижений.
func (c *Catalog) Achievements() []AchievementDef {
	return c.achievements
}

// Achievement возвращает определение достижения по идентификатору.
func (c *Catalog) Achievement(id string) (AchievementDef, bool) {
	a, ok := c.achByID[id]
	return a, ok
}
