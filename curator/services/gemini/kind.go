package gemini

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind selects one of the fixed analysis flavors. Each kind carries its own
// prompt template and confidence policy.
type Kind string

const (
	KindSentiment Kind = "sentiment"
	KindSummary   Kind = "summary"
	KindKeywords  Kind = "keywords"
)

var ErrUnknownKind = fmt.Errorf("unsupported analysis type")

func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindSentiment, KindSummary, KindKeywords:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q (available: sentiment, summary, keywords)", ErrUnknownKind, s)
}

func (k Kind) String() string {
	return string(k)
}

// confidence applies the per-kind policy to the model reply. Sentiment
// replies are expected to carry a labeled confidence line; the summary
// template's brevity constraint is assumed reliable, and keyword lists get a
// fixed middling score.
func (k Kind) confidence(reply string) *float64 {
	switch k {
	case KindSentiment:
		return extractConfidence(reply)
	case KindSummary:
		c := 0.9
		return &c
	case KindKeywords:
		c := 0.8
		return &c
	}
	return nil
}

var confidenceNumber = regexp.MustCompile(`0\.\d+|\d+\.\d+`)

// extractConfidence scans reply lines for the labeled confidence value.
// Best-effort metadata: no match means nil, never an error.
func extractConfidence(reply string) *float64 {
	for _, line := range strings.Split(reply, "\n") {
		if !strings.Contains(strings.ToLower(line), "уверенность") {
			continue
		}
		match := confidenceNumber.FindString(line)
		if match == "" {
			continue
		}
		value, err := strconv.ParseFloat(match, 64)
		if err != nil {
			continue
		}
		value = min(max(value, 0.0), 1.0)
		return &value
	}
	return nil
}
