package gemini

import (
	"fmt"
	"os"

	"curator/curator/utils/logging"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Prompts holds the per-kind instruction templates. Each template embeds the
// input text through a single %s verb.
type Prompts struct {
	Sentiment string `yaml:"sentiment"`
	Summary   string `yaml:"summary"`
	Keywords  string `yaml:"keywords"`
}

const defaultSentimentPrompt = `Проанализируй тональность следующего текста на русском языке.
Определи эмоциональную окраску: позитивная, негативная или нейтральная.
Также оцени уверенность в анализе от 0 до 1.

Текст для анализа:
"%s"

Ответь в следующем формате:
Тональность: [позитивная/негативная/нейтральная]
Уверенность: [число от 0 до 1]
Объяснение: [краткое объяснение почему такая тональность]`

const defaultSummaryPrompt = `Создай краткое резюме следующего текста на русском языке.
Выдели основные мысли и ключевые моменты в 2-3 предложениях.

Текст для резюмирования:
"%s"

Ответь кратким резюме без дополнительных пояснений.`

const defaultKeywordsPrompt = `Извлеки ключевые слова и основные темы из следующего текста на русском языке.
Выдели 5-10 наиболее важных слов и фраз, которые отражают суть текста.

Текст для анализа:
"%s"

Ответь списком ключевых слов через запятую.`

func DefaultPrompts() Prompts {
	return Prompts{
		Sentiment: defaultSentimentPrompt,
		Summary:   defaultSummaryPrompt,
		Keywords:  defaultKeywordsPrompt,
	}
}

// LoadPrompts reads template overrides from a YAML file. A missing path
// or empty file falls back to the defaults; fields left unset in the file
// keep their default template.
func LoadPrompts(path string) Prompts {
	prompts := DefaultPrompts()
	if path == "" {
		return prompts
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.AppLogger.Warn("prompts file not readable, using defaults",
			zap.String("path", path), zap.Error(err))
		return prompts
	}
	if err := yaml.Unmarshal(data, &prompts); err != nil {
		logging.ErrorLogger.Error("prompts file malformed, using defaults",
			zap.String("path", path), zap.Error(err))
		return DefaultPrompts()
	}
	return prompts
}

// Build renders the template for the given kind around the input text.
func (p Prompts) Build(kind Kind, text string) (string, error) {
	switch kind {
	case KindSentiment:
		return fmt.Sprintf(p.Sentiment, text), nil
	case KindSummary:
		return fmt.Sprintf(p.Summary, text), nil
	case KindKeywords:
		return fmt.Sprintf(p.Keywords, text), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
