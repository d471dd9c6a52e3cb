package progression

// ══════════════════════════════════════════════════════════════════════════════
// LESSON UNLOCK DERIVATION
// Статус открытости уроков не хранится - он выводится из завершений:
//   - уроки с order == 1 всегда открыты;
//   - урок с order == k открыт, если пройден хотя бы один урок с order == k-1.
// ══════════════════════════════════════════════════════════════════════════════

// LessonRef - минимальная информация об уроке для вывода открытости.
type LessonRef struct {
	// ID - идентификатор урока.
	ID string

	// Order - порядковый номер внутри языка (с 1, плотный).
	Order int
}

// LessonStatus - выведенный статус урока для ученика.
type LessonStatus struct {
	// ID - идентификатор урока.
	ID string

	// Locked - закрыт ли урок.
	Locked bool

	// Completed - пройден ли урок.
	Completed bool

	// Score - последний записанный результат (0, если попыток не было).
	Score int
}

// DeriveUnlocks вычисляет статусы всех уроков языка.
// completed содержит пройденные уроки, scores - последние результаты
// (включая непройденные попытки).
func DeriveUnlocks(lessons []LessonRef, completed map[string]bool, scores map[string]int) []LessonStatus {
	// Пройденные order-ы для проверки k-1.
	completedOrders := make(map[int]bool)
	for _, l := range lessons {
		if completed[l.ID] {
			completedOrders[l.Order] = true
		}
	}

	statuses := make([]LessonStatus, 0, len(lessons))
	for _, l := range lessons {
		locked := false
		if l.Order > 1 {
			locked = !completedOrders[l.Order-1]
		}

		statuses = append(statuses, LessonStatus{
			ID:        l.ID,
			Locked:    locked,
			Completed: completed[l.ID],
			Score:     scores[l.ID],
		})
	}

	return statuses
}
