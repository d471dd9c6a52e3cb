package query

import (
	"context"
	"fmt"

	"github.com/stratos-app/stratos-backend/internal/domain/catalog"
	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET FLASHCARDS QUERY
// ══════════════════════════════════════════════════════════════════════════════

// GetFlashcardsQuery identifies the flashcard decks of one language.
type GetFlashcardsQuery struct {
	Language string
}

// Validate validates the query.
func (q GetFlashcardsQuery) Validate() error {
	if q.Language == "" {
		return fmt.Errorf("get_flashcards: language is required: %w", shared.ErrValidation)
	}
	return nil
}

// FlashcardDTO is one card.
type FlashcardDTO struct {
	Front    string `json:"front"`
	Back     string `json:"back"`
	VoiceURL string `json:"voice_url,omitempty"`
}

// FlashcardSetDTO is one deck of cards.
type FlashcardSetDTO struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Cards []FlashcardDTO `json:"cards"`
}

// GetFlashcardsHandler handles the GetFlashcardsQuery.
type GetFlashcardsHandler struct {
	catalog *catalog.Catalog
}

// NewGetFlashcardsHandler creates the handler.
func NewGetFlashcardsHandler(cat *catalog.Catalog) *GetFlashcardsHandler {
	return &GetFlashcardsHandler{catalog: cat}
}

// Handle returns the decks for the language. A language without decks
// yields an empty list, not an error.
func (h *GetFlashcardsHandler) Handle(_ context.Context, q GetFlashcardsQuery) ([]FlashcardSetDTO, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	code := shared.LanguageCode(q.Language)
	if _, ok := h.catalog.Language(code); !ok {
		return nil, shared.ErrLanguageNotFound
	}

	sets := h.catalog.Flashcards(code)
	out := make([]FlashcardSetDTO, 0, len(sets))
	for _, set := range sets {
		dto := FlashcardSetDTO{ID: set.ID, Title: set.Title}
		for _, card := range set.Cards {
			dto.Cards = append(dto.Cards, FlashcardDTO{
				Front:    card.Front,
				Back:     card.Back,
				VoiceURL: card.VoiceURL,
			})
		}
		out = append(out, dto)
	}

	return out, nil
}
