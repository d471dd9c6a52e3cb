package progression

// ══════════════════════════════════════════════════════════════════════════════
// ACHIEVEMENT EVALUATOR
// Идемпотентная таблица правил: каждое достижение выдаётся один раз,
// повторная проверка уже разблокированного достижения ничего не возвращает.
// ══════════════════════════════════════════════════════════════════════════════

// Идентификаторы достижений. Определения (названия, иконки) живут в catalog.
const (
	AchievementFirstLesson   = "first-lesson"
	AchievementStreak3       = "streak-3"
	AchievementStreak7       = "streak-7"
	AchievementStreak30      = "streak-30"
	AchievementXP100         = "xp-100"
	AchievementXP500         = "xp-500"
	AchievementXP1000        = "xp-1000"
	AchievementPerfectLesson = "perfect-lesson"
	AchievementMultiLanguage = "multi-language"
	AchievementLevel5        = "level-5"
	AchievementLevel10       = "level-10"
)

// Metrics - агрегированные показатели ученика после прохождения урока.
type Metrics struct {
	// CompletedLessons - количество пройденных (passed) уроков,
	// включая только что пройденный.
	CompletedLessons int

	// Streak - текущая серия дней.
	Streak int

	// TotalXP - суммарный XP.
	TotalXP int

	// Level - текущий уровень.
	Level int

	// PerfectLesson - был ли последний урок пройден на 100%.
	PerfectLesson bool

	// LanguagesStarted - количество начатых языковых курсов.
	LanguagesStarted int
}

// achievementRule - одно правило выдачи достижения.
type achievementRule struct {
	id    string
	check func(Metrics) bool
}

// lessonRules - правила, проверяемые после каждого урока.
// Порядок правил определяет порядок выдачи при одном вызове.
var lessonRules = []achievementRule{
	{AchievementFirstLesson, func(m Metrics) bool { return m.CompletedLessons == 1 }},
	{AchievementStreak3, func(m Metrics) bool { return m.Streak >= 3 }},
	{AchievementStreak7, func(m Metrics) bool { return m.Streak >= 7 }},
	{AchievementStreak30, func(m Metrics) bool { return m.Streak >= 30 }},
	{AchievementXP100, func(m Metrics) bool { return m.TotalXP >= 100 }},
	{AchievementXP500, func(m Metrics) bool { return m.TotalXP >= 500 }},
	{AchievementXP1000, func(m Metrics) bool { return m.TotalXP >= 1000 }},
	{AchievementPerfectLesson, func(m Metrics) bool { return m.PerfectLesson }},
	{AchievementLevel5, func(m Metrics) bool { return m.Level >= 5 }},
	{AchievementLevel10, func(m Metrics) bool { return m.Level >= 10 }},
}

// EvaluateLesson возвращает достижения, которые должны быть выданы
// после урока и ещё не разблокированы.
func EvaluateLesson(m Metrics, unlocked map[string]bool) []string {
	var earned []string
	for _, rule := range lessonRules {
		if unlocked[rule.id] {
			continue
		}
		if rule.check(m) {
			earned = append(earned, rule.id)
		}
	}
	return earned
}

// EvaluateLanguageStart возвращает достижения, которые должны быть
// выданы после начала нового языкового курса.
func EvaluateLanguageStart(languagesStarted int, unlocked map[string]bool) []string {
	if languagesStarted >= 3 && !unlocked[AchievementMultiLanguage] {
		return []string{AchievementMultiLanguage}
	}
	return nil
}
