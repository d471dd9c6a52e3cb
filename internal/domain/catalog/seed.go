package catalog

import (
	"fmt"
	"strings"

	"github.com/stratos-app/stratos-backend/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SEED DATA
// Встроенный каталог: 10 языков, минимум 6 уроков на язык.
// Кураторские уроки дополняются сгенерированными из таблиц фраз.
// ══════════════════════════════════════════════════════════════════════════════

// seedLanguages - все поддерживаемые языковые курсы.
func seedLanguages() []Language {
	return []Language{
		{Code: "es", Name: "Spanish", Flag: "🇪🇸"},
		{Code: "fr", Name: "French", Flag: "🇫🇷"},
		{Code: "de", Name: "German", Flag: "🇩🇪"},
		{Code: "ja", Name: "Japanese", Flag: "🇯🇵"},
		{Code: "zh", Name: "Chinese", Flag: "🇨🇳"},
		{Code: "it", Name: "Italian", Flag: "🇮🇹"},
		{Code: "pt", Name: "Portuguese", Flag: "🇧🇷"},
		{Code: "ko", Name: "Korean", Flag: "🇰🇷"},
		{Code: "ru", Name: "Russian", Flag: "🇷🇺"},
		{Code: "ar", Name: "Arabic", Flag: "🇸🇦"},
	}
}

// phraseTable - базовая лексика языка для генерации уроков.
type phraseTable struct {
	Hello   string
	Thank   string
	Goodbye string
	Please  string
	Numbers []string
	Colors  []string
	Family  map[string]string
	Travel  map[string]string
}

// seedPhrases - таблицы фраз для всех языков.
func seedPhrases() map[shared.LanguageCode]phraseTable {
	return map[shared.LanguageCode]phraseTable{
		"es": {
			Hello: "hola", Thank: "gracias", Goodbye: "adiós", Please: "por favor",
			Numbers: []string{"uno", "dos", "tres", "cuatro", "cinco", "seis", "siete", "ocho", "nueve", "diez"},
			Colors:  []string{"rojo", "azul", "verde", "amarillo", "negro", "blanco", "naranja", "morado"},
			Family:  map[string]string{"father": "padre", "mother": "madre", "brother": "hermano", "sister": "hermana"},
			Travel:  map[string]string{"airport": "aeropuerto", "hotel": "hotel", "ticket": "boleto", "map": "mapa"},
		},
		"fr": {
			Hello: "bonjour", Thank: "merci", Goodbye: "au revoir", Please: "s'il vous plaît",
			Numbers: []string{"un", "deux", "trois", "quatre", "cinq", "six", "sept", "huit", "neuf", "dix"},
			Colors:  []string{"rouge", "bleu", "vert", "jaune", "noir", "blanc", "orange", "violet"},
			Family:  map[string]string{"father": "père", "mother": "mère", "brother": "frère", "sister": "sœur"},
			Travel:  map[string]string{"airport": "aéroport", "hotel": "hôtel", "ticket": "billet", "map": "carte"},
		},
		"de": {
			Hello: "hallo", Thank: "danke", Goodbye: "auf wiedersehen", Please: "bitte",
			Numbers: []string{"eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun", "zehn"},
			Colors:  []string{"rot", "blau", "grün", "gelb", "schwarz", "weiß", "orange", "lila"},
			Family:  map[string]string{"father": "vater", "mother": "mutter", "brother": "bruder", "sister": "schwester"},
			Travel:  map[string]string{"airport": "flughafen", "hotel": "hotel", "ticket": "ticket", "map": "karte"},
		},
		"ja": {
			Hello: "konnichiwa", Thank: "arigatou", Goodbye: "sayounara", Please: "onegaishimasu",
			Numbers: []string{"ichi", "ni", "san", "shi", "go", "roku", "shichi", "hachi", "kyuu", "juu"},
			Colors:  []string{"aka", "ao", "midori", "ki", "kuro", "shiro", "daidai", "murasaki"},
			Family:  map[string]string{"father": "otousan", "mother": "okaasan", "brother": "oniisan", "sister": "oneesan"},
			Travel:  map[string]string{"airport": "kuukou", "hotel": "hoteru", "ticket": "kippu", "map": "chizu"},
		},
		"zh": {
			Hello: "nǐ hǎo", Thank: "xièxie", Goodbye: "zàijiàn", Please: "qǐng",
			Numbers: []string{"yi", "er", "san", "si", "wu", "liu", "qi", "ba", "jiu", "shi"},
			Colors:  []string{"hóng", "lán", "lǜ", "huáng", "hēi", "bái", "chéng", "zǐ"},
			Family:  map[string]string{"father": "bàba", "mother": "māmā", "brother": "gēgē", "sister": "jiějiě"},
			Travel:  map[string]string{"airport": "jīchǎng", "hotel": "jiǔdiàn", "ticket": "piào", "map": "dìtú"},
		},
		"it": {
			Hello: "ciao", Thank: "grazie", Goodbye: "arrivederci", Please: "per favore",
			Numbers: []string{"uno", "due", "tre", "quattro", "cinque", "sei", "sette", "otto", "nove", "dieci"},
			Colors:  []string{"rosso", "blu", "verde", "giallo", "nero", "bianco", "arancione", "viola"},
			Family:  map[string]string{"father": "padre", "mother": "madre", "brother": "fratello", "sister": "sorella"},
			Travel:  map[string]string{"airport": "aeroporto", "hotel": "hotel", "ticket": "biglietto", "map": "mappa"},
		},
		"pt": {
			Hello: "olá", Thank: "obrigado", Goodbye: "adeus", Please: "por favor",
			Numbers: []string{"um", "dois", "três", "quatro", "cinco", "seis", "sete", "oito", "nove", "dez"},
			Colors:  []string{"vermelho", "azul", "verde", "amarelo", "preto", "branco", "laranja", "roxo"},
			Family:  map[string]string{"father": "pai", "mother": "mãe", "brother": "irmão", "sister": "irmã"},
			Travel:  map[string]string{"airport": "aeroporto", "hotel": "hotel", "ticket": "bilhete", "map": "mapa"},
		},
		"ko": {
			Hello: "annyeong", Thank: "gamsahamnida", Goodbye: "annyeonghi gaseyo", Please: "butakamnida",
			Numbers: []string{"hana", "dul", "set", "net", "daseot", "yeoseot", "ilgop", "yeodal", "ahop", "yeol"},
			Colors:  []string{"ppalgan", "paran", "nok", "hwang", "geomjeong", "hayan", "juhwang", "bora"},
			Family:  map[string]string{"father": "abeoji", "mother": "eomeoni", "brother": "hyeong", "sister": "nuna"},
			Travel:  map[string]string{"airport": "gonghang", "hotel": "hotel", "ticket": "pyo", "map": "jido"},
		},
		"ru": {
			Hello: "privet", Thank: "spasibo", Goodbye: "do svidaniya", Please: "pozhaluysta",
			Numbers: []string{"odin", "dva", "tri", "chetyre", "pyat", "shest", "sem", "vosem", "devyat", "desyat"},
			Colors:  []string{"krasnyy", "siniy", "zelyonyy", "zholtyy", "chernyy", "belyy", "oranzhevyy", "fioletovyy"},
			Family:  map[string]string{"father": "otez", "mother": "mat", "brother": "brat", "sister": "sestra"},
			Travel:  map[string]string{"airport": "aeroport", "hotel": "otel", "ticket": "bilet", "map": "karta"},
		},
		"ar": {
			Hello: "marhaba", Thank: "shukran", Goodbye: "ma'a s-salāma", Please: "min fadlak",
			Numbers: []string{"wahid", "ithnan", "thalatha", "arba'a", "khamsa", "sitta", "sab'a", "thamaniya", "tis'a", "ashara"},
			Colors:  []string{"ahmar", "azraq", "akhḍar", "asfar", "aswad", "abyad", "burtuqaali", "banafsaji"},
			Family:  map[string]string{"father": "ab", "mother": "umm", "brother": "akh", "sister": "ukht"},
			Travel:  map[string]string{"airport": "mataar", "hotel": "funduq", "ticket": "tadhkira", "map": "kharita"},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Кураторские уроки
// ─────────────────────────────────────────────────────────────────────────────

func curatedLessons() map[shared.LanguageCode][]Lesson {
	return map[shared.LanguageCode][]Lesson{
		"es": {
			{
				ID: "es-basics-1", Language: "es", Title: "Greetings",
				Description: "Learn basic Spanish greetings", Order: 1, XPReward: 15,
				Content: []ExerciseItem{
					{Type: ExerciseVoice, Question: "Listen and repeat: Hola", CorrectAnswer: "hola", VoiceURL: "/audio/es/hola.mp3", Hint: "Hello"},
					{Type: ExerciseMultipleChoice, Question: "What does 'Buenos días' mean?", Options: []string{"Good night", "Good morning", "Goodbye", "Thank you"}, CorrectAnswer: "Good morning"},
					{Type: ExerciseWritten, Question: "Write 'Thank you' in Spanish", CorrectAnswer: "gracias", Hint: "Starts with 'gra'"},
					{Type: ExerciseMultipleChoice, Question: "How do you say 'Goodbye' in Spanish?", Options: []string{"Hola", "Gracias", "Adiós", "Por favor"}, CorrectAnswer: "Adiós"},
				},
			},
			{
				ID: "es-basics-2", Language: "es", Title: "Numbers",
				Description: "Count from 1 to 10 in Spanish", Order: 2, XPReward: 15,
				Content: []ExerciseItem{
					{Type: ExerciseVoice, Question: "Listen and repeat: Uno, Dos, Tres", CorrectAnswer: "uno dos tres", VoiceURL: "/audio/es/numbers.mp3"},
					{Type: ExerciseMultipleChoice, Question: "What is 'Cinco' in English?", Options: []string{"Three", "Four", "Five", "Six"}, CorrectAnswer: "Five"},
					{Type: ExerciseWritten, Question: "Write the number 7 in Spanish", CorrectAnswer: "siete", Hint: "Starts with 'si'"},
					{Type: ExerciseMultipleChoice, Question: "What comes after 'ocho'?", Options: []string{"Siete", "Nueve", "Diez", "Seis"}, CorrectAnswer: "Nueve"},
				},
			},
			{
				ID: "es-basics-3", Language: "es", Title: "Colors",
				Description: "Learn colors in Spanish", Order: 3, XPReward: 20,
				Content: []ExerciseItem{
					{Type: ExerciseVoice, Question: "Listen: Rojo means Red", CorrectAnswer: "rojo", VoiceURL: "/audio/es/rojo.mp3"},
					{Type: ExerciseMultipleChoice, Question: "What color is 'Azul'?", Options: []string{"Red", "Green", "Blue", "Yellow"}, CorrectAnswer: "Blue"},
					{Type: ExerciseWritten, Question: "Write 'Green' in Spanish", CorrectAnswer: "verde", Hint: "Starts with 'ver'"},
					{Type: ExerciseMultipleChoice, Question: "'Amarillo' is which color?", Options: []string{"Black", "White", "Yellow", "Orange"}, CorrectAnswer: "Yellow"},
				},
			},
		},
		"fr": {
			{
				ID: "fr-basics-1", Language: "fr", Title: "Salutations",
				Description: "Learn French greetings", Order: 1, XPReward: 15,
				Content: []ExerciseItem{
					{Type: ExerciseVoice, Question: "Listen and repeat: Bonjour", CorrectAnswer: "bonjour", VoiceURL: "/audio/fr/bonjour.mp3", Hint: "Hello/Good day"},
					{Type: ExerciseMultipleChoice, Question: "What does 'Merci' mean?", Options: []string{"Hello", "Goodbye", "Thank you", "Please"}, CorrectAnswer: "Thank you"},
					{Type: ExerciseWritten, Question: "Write 'Goodbye' in French", CorrectAnswer: "au revoir", Hint: "Two words"},
					{Type: ExerciseMultipleChoice, Question: "How do you say 'Please' in French?", Options: []string{"Merci", "S'il vous plaît", "Bonjour", "Pardon"}, CorrectAnswer: "S'il vous plaît"},
				},
			},
		},
		"de": {
			{
				ID: "de-basics-1", Language: "de", Title: "Begrüßungen",
				Description: "Learn German greetings", Order: 1, XPReward: 15,
				Content: []ExerciseItem{
					{Type: ExerciseVoice, Question: "Listen and repeat: Guten Tag", CorrectAnswer: "guten tag", VoiceURL: "/audio/de/guten-tag.mp3"},
					{Type: ExerciseMultipleChoice, Question: "What does 'Danke' mean?", Options: []string{"Hello", "Goodbye", "Thank you", "Please"}, CorrectAnswer: "Thank you"},
					{Type: ExerciseWritten, Question: "Write 'Goodbye' in German", CorrectAnswer: "auf wiedersehen", Hint: "Means 'until we see again'"},
					{Type: ExerciseMultipleChoice, Question: "How do you say 'Good morning'?", Options: []string{"Guten Abend", "Guten Morgen", "Gute Nacht", "Guten Tag"}, CorrectAnswer: "Guten Morgen"},
				},
			},
		},
		"ja": {
			{
				ID: "ja-basics-1", Language: "ja", Title: "あいさつ (Greetings)",
				Description: "Learn Japanese greetings", Order: 1, XPReward: 15,
				Content: []ExerciseItem{
					{Type: ExerciseVoice, Question: "Listen and repeat: こんにちは (Konnichiwa)", CorrectAnswer: "konnichiwa", VoiceURL: "/audio/ja/konnichiwa.mp3"},
					{Type: ExerciseMultipleChoice, Question: "What does 'ありがとう' mean?", Options: []string{"Hello", "Goodbye", "Thank you", "Please"}, CorrectAnswer: "Thank you"},
					{Type: ExerciseWritten, Question: "Write 'Hello' in romaji", CorrectAnswer: "konnichiwa", Hint: "Starts with 'kon'"},
					{Type: ExerciseMultipleChoice, Question: "How do you say 'Goodbye'?", Options: []string{"Ohayou", "Sayounara", "Arigatou", "Sumimasen"}, CorrectAnswer: "Sayounara"},
				},
			},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Генераторы уроков
// Дополняют каждый язык до minLessonsPerLanguage уроков из таблицы фраз.
// Сгенерированные уроки - обычные записи каталога, не отличимые от
// кураторских.
// ─────────────────────────────────────────────────────────────────────────────

// minLessonsPerLanguage - минимальное количество уроков на язык.
const minLessonsPerLanguage = 6

func makeGreetingsLesson(code shared.LanguageCode, name string, p phraseTable, order int) Lesson {
	return Lesson{
		ID:          fmt.Sprintf("%s-greetings-%d", code, order),
		Language:    code,
		Title:       "Greetings",
		Description: fmt.Sprintf("Basic greetings in %s", name),
		Order:       order,
		XPReward:    15,
		Content: []ExerciseItem{
			{Type: ExerciseVoice, Question: fmt.Sprintf("Listen and repeat: %s", p.Hello), CorrectAnswer: p.Hello, VoiceURL: fmt.Sprintf("/audio/%s/hello.mp3", code)},
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("What does '%s' mean?", p.Hello), Options: []string{"Hello", "Goodbye", "Thank you", "Please"}, CorrectAnswer: "Hello"},
			{Type: ExerciseWritten, Question: fmt.Sprintf("How do you say 'Thank you' in %s?", name), CorrectAnswer: p.Thank},
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("How do you say 'Goodbye' in %s?", name), Options: []string{p.Goodbye, p.Hello, p.Thank, "please"}, CorrectAnswer: p.Goodbye},
		},
	}
}

func makeNumbersLesson(code shared.LanguageCode, name string, p phraseTable, order int) Lesson {
	return Lesson{
		ID:          fmt.Sprintf("%s-numbers-%d", code, order),
		Language:    code,
		Title:       "Numbers",
		Description: fmt.Sprintf("Counting basics in %s", name),
		Order:       order,
		XPReward:    15,
		Content: []ExerciseItem{
			{Type: ExerciseVoice, Question: fmt.Sprintf("Listen and repeat: %s, %s, %s", p.Numbers[0], p.Numbers[1], p.Numbers[2]), CorrectAnswer: strings.Join(p.Numbers[:3], " ")},
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("What is '%s' in English?", p.Numbers[2]), Options: []string{"One", "Two", "Three", "Four"}, CorrectAnswer: "Three"},
			{Type: ExerciseWritten, Question: fmt.Sprintf("Write the number 5 in %s", name), CorrectAnswer: p.Numbers[4]},
		},
	}
}

func makeColorsLesson(code shared.LanguageCode, name string, p phraseTable, order int) Lesson {
	return Lesson{
		ID:          fmt.Sprintf("%s-colors-%d", code, order),
		Language:    code,
		Title:       "Colors",
		Description: fmt.Sprintf("Common colors in %s", name),
		Order:       order,
		XPReward:    15,
		Content: []ExerciseItem{
			{Type: ExerciseVoice, Question: fmt.Sprintf("Listen: %s means %s", p.Colors[0], p.Colors[0]), CorrectAnswer: p.Colors[0]},
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("Which color is '%s'?", p.Colors[1]), Options: []string{"Red", "Green", "Blue", "Yellow"}, CorrectAnswer: "Blue"},
			{Type: ExerciseWritten, Question: fmt.Sprintf("Write 'Green' in %s", name), CorrectAnswer: p.Colors[2]},
		},
	}
}

func makePhrasesLesson(code shared.LanguageCode, name string, p phraseTable, order int) Lesson {
	return Lesson{
		ID:          fmt.Sprintf("%s-phrases-%d", code, order),
		Language:    code,
		Title:       "Useful Phrases",
		Description: fmt.Sprintf("Useful everyday phrases in %s", name),
		Order:       order,
		XPReward:    20,
		Content: []ExerciseItem{
			{Type: ExerciseMultipleChoice, Question: "How would you politely ask for help?", Options: []string{"Can you help me?", "I do not know", "Goodbye", "Thank you"}, CorrectAnswer: "Can you help me?"},
			{Type: ExerciseWritten, Question: fmt.Sprintf("Translate 'Please' into %s", name), CorrectAnswer: p.Please},
			{Type: ExerciseMultipleChoice, Question: "Which phrase shows gratitude?", Options: []string{"Hello", "Thank you", "Goodbye", "Please"}, CorrectAnswer: "Thank you"},
		},
	}
}

func makeFamilyLesson(code shared.LanguageCode, name string, p phraseTable, order int) Lesson {
	return Lesson{
		ID:          fmt.Sprintf("%s-family-%d", code, order),
		Language:    code,
		Title:       "Family Members",
		Description: fmt.Sprintf("Learn family vocabulary in %s", name),
		Order:       order,
		XPReward:    20,
		Content: []ExerciseItem{
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("How do you say 'Mother' in %s?", name), Options: []string{p.Family["mother"], p.Family["father"], "cousin", "aunt"}, CorrectAnswer: p.Family["mother"]},
			{Type: ExerciseWritten, Question: fmt.Sprintf("Write 'Father' in %s", name), CorrectAnswer: p.Family["father"]},
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("'%s' means:", p.Family["brother"]), Options: []string{"Sister", "Brother", "Uncle", "Grandfather"}, CorrectAnswer: "Brother"},
		},
	}
}

func makeTravelLesson(code shared.LanguageCode, name string, p phraseTable, order int) Lesson {
	return Lesson{
		ID:          fmt.Sprintf("%s-travel-%d", code, order),
		Language:    code,
		Title:       "Travel & Directions",
		Description: fmt.Sprintf("Useful travel words in %s", name),
		Order:       order,
		XPReward:    25,
		Content: []ExerciseItem{
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("Where would you go to catch a flight in %s?", name), Options: []string{p.Travel["hotel"], p.Travel["airport"], "beach", "park"}, CorrectAnswer: p.Travel["airport"]},
			{Type: ExerciseWritten, Question: fmt.Sprintf("How do you say 'Ticket' in %s?", name), CorrectAnswer: p.Travel["ticket"]},
			{Type: ExerciseMultipleChoice, Question: fmt.Sprintf("You need a '%s' to find your way. What is it?", p.Travel["map"]), Options: []string{"Compass", "Phone", "Map", "Guide"}, CorrectAnswer: "Map"},
		},
	}
}

// seedLessons собирает кураторские уроки и дополняет каждый язык
// сгенерированными до minLessonsPerLanguage.
func seedLessons(languages []Language, phrases map[shared.LanguageCode]phraseTable) map[shared.LanguageCode][]Lesson {
	lessons := curatedLessons()

	generators := []func(shared.LanguageCode, string, phraseTable, int) Lesson{
		makeGreetingsLesson,
		makeNumbersLesson,
		makeColorsLesson,
		makePhrasesLesson,
		makeFamilyLesson,
		makeTravelLesson,
	}

	for _, lang := range languages {
		p := phrases[lang.Code]
		for len(lessons[lang.Code]) < minLessonsPerLanguage {
			order := len(lessons[lang.Code]) + 1
			lessons[lang.Code] = append(lessons[lang.Code], generators[order-1](lang.Code, lang.Name, p, order))
		}
	}

	return lessons
}

// ─────────────────────────────────────────────────────────────────────────────
// Карточки
// ─────────────────────────────────────────────────────────────────────────────

func seedFlashcards() map[shared.LanguageCode][]FlashcardSet {
	return map[shared.LanguageCode][]FlashcardSet{
		"es": {
			{
				ID: "es-flash-1", Language: "es", Title: "Basic Words",
				Cards: []Flashcard{
					{Front: "Hello", Back: "Hola", VoiceURL: "/audio/es/hola.mp3"},
					{Front: "Goodbye", Back: "Adiós", VoiceURL: "/audio/es/adios.mp3"},
					{Front: "Thank you", Back: "Gracias", VoiceURL: "/audio/es/gracias.mp3"},
					{Front: "Please", Back: "Por favor", VoiceURL: "/audio/es/porfavor.mp3"},
					{Front: "Yes", Back: "Sí", VoiceURL: "/audio/es/si.mp3"},
					{Front: "No", Back: "No", VoiceURL: "/audio/es/no.mp3"},
				},
			},
			{
				ID: "es-flash-2", Language: "es", Title: "Travel Essentials",
				Cards: []Flashcard{
					{Front: "Airport", Back: "Aeropuerto"},
					{Front: "Passport", Back: "Pasaporte"},
					{Front: "Ticket", Back: "Boleto"},
					{Front: "Bag", Back: "Maleta"},
				},
			},
		},
		"fr": {
			{
				ID: "fr-flash-1", Language: "fr", Title: "Basic Words",
				Cards: []Flashcard{
					{Front: "Hello", Back: "Bonjour", VoiceURL: "/audio/fr/bonjour.mp3"},
					{Front: "Goodbye", Back: "Au revoir", VoiceURL: "/audio/fr/aurevoir.mp3"},
					{Front: "Thank you", Back: "Merci", VoiceURL: "/audio/fr/merci.mp3"},
					{Front: "Please", Back: "S'il vous plaît", VoiceURL: "/audio/fr/svp.mp3"},
				},
			},
		},
		"it": {
			{
				ID: "it-flash-1", Language: "it", Title: "Common Phrases",
				Cards: []Flashcard{
					{Front: "How much does it cost?", Back: "Quanto costa?"},
					{Front: "Where is the bathroom?", Back: "Dov'è il bagno?"},
					{Front: "I don't understand", Back: "Non capisco"},
				},
			},
		},
		"ja": {
			{
				ID: "ja-flash-1", Language: "ja", Title: "Essential Verbs",
				Cards: []Flashcard{
					{Front: "To eat", Back: "Taberu"},
					{Front: "To drink", Back: "Nomu"},
					{Front: "To go", Back: "Iku"},
					{Front: "To come", Back: "Kuru"},
				},
			},
		},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Достижения
// ─────────────────────────────────────────────────────────────────────────────

func seedAchievements() []AchievementDef {
	return []AchievementDef{
		{ID: "first-lesson", Name: "First Steps", Description: "Complete your first lesson", Icon: "baby"},
		{ID: "streak-3", Name: "On Fire", Description: "Maintain a 3-day streak", Icon: "flame"},
		{ID: "streak-7", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "calendar"},
		{ID: "streak-30", Name: "Monthly Master", Description: "Maintain a 30-day streak", Icon: "trophy"},
		{ID: "xp-100", Name: "Century Club", Description: "Earn 100 XP", Icon: "zap"},
		{ID: "xp-500", Name: "XP Master", Description: "Earn 500 XP", Icon: "star"},
		{ID: "xp-1000", Name: "Legend", Description: "Earn 1000 XP", Icon: "crown"},
		{ID: "perfect-lesson", Name: "Perfectionist", Description: "Complete a lesson with 100% accuracy", Icon: "target"},
		{ID: "multi-language", Name: "Polyglot", Description: "Start learning 3 languages", Icon: "globe"},
		{ID: "level-5", Name: "Rising Star", Description: "Reach level 5", Icon: "sparkles"},
		{ID: "level-10", Name: "Expert Learner", Description: "Reach level 10", Icon: "award"},
	}
}

// Default собирает встроенный каталог.
func Default() (*Catalog, error) {
	languages := seedLanguages()
	return New(
		languages,
		seedLessons(languages, seedPhrases()),
		seedFlashcards(),
		seedAchievements(),
	)
}
