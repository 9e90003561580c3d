// Package catalog holds the example sentences offered for each target
// language and difficulty tier.
package catalog

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Language is a target language, named in the display language.
type Language string

// Difficulty is a learner proficiency tier.
type Difficulty string

const (
	English  Language = "영어"
	Spanish  Language = "스페인어"
	Japanese Language = "일본어"
)

const (
	Beginner     Difficulty = "초급"
	Intermediate Difficulty = "중급"
	Advanced     Difficulty = "고급"
)

// ErrUnknownPair is returned when no sentence exists for a language and
// difficulty combination.
var ErrUnknownPair = errors.New("no example sentence for language and difficulty")

var difficulties = []Difficulty{Beginner, Intermediate, Advanced}

// Difficulties returns the tiers in display order.
func Difficulties() []Difficulty {
	return slices.Clone(difficulties)
}

// Catalog maps (language, difficulty) to one example sentence. It is built
// once at startup and read-only afterwards, so it is safe for concurrent use.
type Catalog struct {
	languages []Language
	sentences map[Language]map[Difficulty]string
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c := &Catalog{sentences: make(map[Language]map[Difficulty]string)}
	c.set(English, map[Difficulty]string{
		Beginner:     "The quick brown fox jumps over the lazy dog.",
		Intermediate: "Despite the heavy rain, she decided to go for a walk in the park.",
		Advanced:     "The intricate balance of ecosystems demonstrates the interdependence of all living organisms.",
	})
	c.set(Spanish, map[Difficulty]string{
		Beginner:     "El rápido zorro marrón salta sobre el perro perezoso.",
		Intermediate: "A pesar de la fuerte lluvia, ella decidió dar un paseo por el parque.",
		Advanced:     "El equilibrio intrincado de los ecosistemas demuestra la interdependencia de todos los organismos vivos.",
	})
	c.set(Japanese, map[Difficulty]string{
		Beginner:     "速い茶色のキツネは怠けている犬を飛び越えます。",
		Intermediate: "激しい雨にもかかわらず、彼女は公園を散歩することにしました。",
		Advanced:     "生態系の複雑なバランスは、全ての生物の相互依存性を示しています。",
	})
	return c
}

func (c *Catalog) set(lang Language, tiers map[Difficulty]string) {
	if _, ok := c.sentences[lang]; !ok {
		c.languages = append(c.languages, lang)
	}
	c.sentences[lang] = tiers
}

// Languages returns the languages in display order.
func (c *Catalog) Languages() []Language {
	return slices.Clone(c.languages)
}

// HasLanguage reports whether lang has sentences.
func (c *Catalog) HasLanguage(lang Language) bool {
	_, ok := c.sentences[lang]
	return ok
}

// Lookup returns the sentence for lang and diff.
func (c *Catalog) Lookup(lang Language, diff Difficulty) (string, error) {
	s, ok := c.sentences[lang][diff]
	if !ok {
		return "", fmt.Errorf("%s/%s: %w", lang, diff, ErrUnknownPair)
	}
	return s, nil
}

// Resolve picks the sentence a lesson is about. Custom text that is not
// blank always wins and is returned exactly as given; otherwise the catalog
// sentence for lang and diff is used.
func (c *Catalog) Resolve(lang Language, diff Difficulty, custom string) (string, error) {
	if strings.TrimSpace(custom) != "" {
		return custom, nil
	}
	return c.Lookup(lang, diff)
}

// Validate checks that every language offers every difficulty with a
// non-blank sentence.
func (c *Catalog) Validate() error {
	if len(c.languages) == 0 {
		return errors.New("catalog has no languages")
	}
	for _, lang := range c.languages {
		for _, diff := range difficulties {
			if strings.TrimSpace(c.sentences[lang][diff]) == "" {
				return fmt.Errorf("%s/%s: %w", lang, diff, ErrUnknownPair)
			}
		}
	}
	return nil
}

var languageAliases = map[string]Language{
	"en": English, "english": English,
	"es": Spanish, "spanish": Spanish,
	"ja": Japanese, "japanese": Japanese,
}

var difficultyAliases = map[string]Difficulty{
	"beginner": Beginner, "easy": Beginner,
	"intermediate": Intermediate, "medium": Intermediate,
	"advanced": Advanced, "hard": Advanced,
}

// ParseLanguage accepts a display name or an English alias such as "en".
func (c *Catalog) ParseLanguage(s string) (Language, error) {
	s = strings.TrimSpace(s)
	if c.HasLanguage(Language(s)) {
		return Language(s), nil
	}
	if lang, ok := languageAliases[strings.ToLower(s)]; ok && c.HasLanguage(lang) {
		return lang, nil
	}
	return "", fmt.Errorf("unknown language %q", s)
}

// ParseDifficulty accepts a display name or an English alias such as
// "beginner".
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.TrimSpace(s)
	if slices.Contains(difficulties, Difficulty(s)) {
		return Difficulty(s), nil
	}
	if diff, ok := difficultyAliases[strings.ToLower(s)]; ok {
		return diff, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
