package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"curator/curator/utils/logging"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

var (
	// ErrMissingAPIKey means the service credential was never configured.
	// Fatal at startup, not recoverable per request.
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
	// ErrAnalysis wraps upstream generation failures. Callers see the
	// sentinel; the cause is logged server-side only.
	ErrAnalysis = errors.New("analysis failed")
)

// TextGenerator is the single synchronous call the analysis pipeline needs
// from the external text-completion service.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Client wraps the Gemini SDK behind TextGenerator.
type Client struct {
	client    *genai.Client
	modelName string
}

func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &Client{client: cl, modelName: modelName}, nil
}

func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.modelName)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// Result is one completed analysis, not yet persisted.
type Result struct {
	Kind       Kind
	Text       string
	Confidence *float64
	Duration   time.Duration
}

// Service formats prompts, performs the external call and shapes the reply.
// No retries, no caching; every call is a fresh round trip.
type Service struct {
	generator TextGenerator
	prompts   Prompts
	timeout   time.Duration
}

func NewService(generator TextGenerator, prompts Prompts, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Service{
		generator: generator,
		prompts:   prompts,
		timeout:   timeout,
	}
}

// Analyze runs one analysis of the given kind. The external call is bounded
// by the service timeout so a hung upstream cannot block a handler forever;
// no lock or transaction is held while waiting.
func (s *Service) Analyze(ctx context.Context, text string, kind Kind) (*Result, error) {
	prompt, err := s.prompts.Build(kind, text)
	if err != nil {
		return nil, err
	}

	traceID := uuid.New().String()[:8]
	start := time.Now()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.generator.Generate(callCtx, prompt)
	if err != nil {
		logging.ErrorLogger.Error("analysis call failed",
			zap.String("trace_id", traceID),
			zap.String("kind", kind.String()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s", ErrAnalysis, kind)
	}

	result := &Result{
		Kind:       kind,
		Text:       strings.TrimSpace(reply),
		Confidence: kind.confidence(reply),
		Duration:   time.Since(start),
	}
	logging.AppLogger.Info("analysis complete",
		zap.String("trace_id", traceID),
		zap.String("kind", kind.String()),
		zap.Int64("duration_ms", result.Duration.Milliseconds()),
	)
	return result, nil
}
