package gemini

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	reply string
	err   error
	// captured
	prompt string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestParseKind(t *testing.T) {
	for _, s := range []string{"sentiment", "summary", "keywords"} {
		kind, err := ParseKind(s)
		require.NoError(t, err)
		assert.Equal(t, s, kind.String())
	}

	_, err := ParseKind("translation")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestExtractConfidence(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  *float64
	}{
		{
			name:  "labeled line",
			reply: "Тональность: позитивная\nУверенность: 0.85\nОбъяснение: явно довольный отзыв",
			want:  ptr(0.85),
		},
		{
			name:  "lowercase label",
			reply: "уверенность: 0.3",
			want:  ptr(0.3),
		},
		{
			name:  "clamped above one",
			reply: "Уверенность: 1.5",
			want:  ptr(1.0),
		},
		{
			name:  "no label",
			reply: "Тональность: позитивная\nОбъяснение: хорошо",
			want:  nil,
		},
		{
			name:  "label without number",
			reply: "Уверенность: высокая",
			want:  nil,
		},
		{
			name:  "empty reply",
			reply: "",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractConfidence(tt.reply)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestAnalyze_Sentiment(t *testing.T) {
	gen := &fakeGenerator{reply: "Тональность: позитивная\nУверенность: 0.85\nОбъяснение: восторженный тон"}
	service := NewService(gen, DefaultPrompts(), time.Second)

	result, err := service.Analyze(context.Background(), "Отличный продукт!", KindSentiment)
	require.NoError(t, err)

	assert.Equal(t, KindSentiment, result.Kind)
	assert.Contains(t, gen.prompt, "Отличный продукт!")
	assert.Contains(t, gen.prompt, "тональность")
	require.NotNil(t, result.Confidence)
	assert.InDelta(t, 0.85, *result.Confidence, 1e-9)
	assert.NotEmpty(t, result.Text)
}

func TestAnalyze_SentimentWithoutConfidence(t *testing.T) {
	gen := &fakeGenerator{reply: "Тональность: нейтральная"}
	service := NewService(gen, DefaultPrompts(), time.Second)

	result, err := service.Analyze(context.Background(), "текст", KindSentiment)
	require.NoError(t, err)
	assert.Nil(t, result.Confidence)
}

func TestAnalyze_FixedConfidences(t *testing.T) {
	tests := []struct {
		kind Kind
		want float64
	}{
		{KindSummary, 0.9},
		{KindKeywords, 0.8},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			gen := &fakeGenerator{reply: "какой-то ответ"}
			service := NewService(gen, DefaultPrompts(), time.Second)

			result, err := service.Analyze(context.Background(), "текст для анализа", tt.kind)
			require.NoError(t, err)
			require.NotNil(t, result.Confidence)
			assert.InDelta(t, tt.want, *result.Confidence, 1e-9)
		})
	}
}

func TestAnalyze_UpstreamError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("rate limited")}
	service := NewService(gen, DefaultPrompts(), time.Second)

	_, err := service.Analyze(context.Background(), "текст", KindSummary)
	assert.ErrorIs(t, err, ErrAnalysis)
	// the upstream cause is logged, never surfaced
	assert.NotContains(t, err.Error(), "rate limited")
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := NewClient(context.Background(), "", "gemini-1.5-flash")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadPrompts_Override(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("summary: \"Summarize: %s\"\n"), 0o644))

	prompts := LoadPrompts(path)
	assert.Equal(t, "Summarize: %s", prompts.Summary)
	// unset kinds keep their defaults
	assert.Equal(t, DefaultPrompts().Sentiment, prompts.Sentiment)
}

func TestLoadPrompts_MissingFile(t *testing.T) {
	prompts := LoadPrompts("/nonexistent/prompts.yaml")
	assert.Equal(t, DefaultPrompts(), prompts)
}

func ptr(f float64) *float64 { return &f }
