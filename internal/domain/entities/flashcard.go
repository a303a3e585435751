package entities

import "time"

// Flashcard is a single keyword card served by the KeyCards API.
type Flashcard struct {
	ID          string    `json:"_id"`
	LanguageID  string    `json:"languageId"`
	Keyword     string    `json:"keyword"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	CodeExample string    `json:"codeExample"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Language is a programming language available for study.
type Language struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	TotalFlashcards int    `json:"totalFlashcards"`
}

// LanguageSlugs lists the languages the platform generates flashcards for.
var LanguageSlugs = []string{
	"python", "javascript", "java", "typescript", "cpp",
	"go", "rust", "c", "kotlin",
}

// IsValidLanguage reports whether the slug names a supported language.
func IsValidLanguage(slug string) bool {
	for _, s := range LanguageSlugs {
		if s == slug {
			return true
		}
	}
	return false
}
