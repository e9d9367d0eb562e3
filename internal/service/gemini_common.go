package service

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

// defaultRetryAfter is the hint surfaced to clients when the upstream rate
// limit response carries no usable delay.
const defaultRetryAfter = 30 * time.Second

// mapGeminiError normalizes a Gemini API failure into an UpstreamError so the
// state machine can treat any upstream failure uniformly.
func mapGeminiError(provider string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests:
			return &UpstreamError{Provider: provider, Code: UpstreamCodeRateLimited, RetryAfter: defaultRetryAfter, Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &UpstreamError{Provider: provider, Code: UpstreamCodeBadCredentials, Err: err}
		}
	}
	return &UpstreamError{Provider: provider, Code: UpstreamCodeUnavailable, Err: err}
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

// extractJSONBlock pulls the first JSON value out of a model response,
// tolerating markdown code fences and prose around it.
func extractJSONBlock(raw string) string {
	s := strings.TrimSpace(raw)
	if idx := strings.Index(s, "```"); idx != -1 {
		s = s[idx+3:]
		s = strings.TrimPrefix(s, "json")
		if end := strings.Index(s, "```"); end != -1 {
			s = s[:end]
		}
	}
	s = strings.TrimSpace(s)

	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return ""
	}
	var closer byte
	if s[start] == '[' {
		closer = ']'
	} else {
		closer = '}'
	}
	end := strings.LastIndexByte(s, closer)
	if end <= start {
		return ""
	}
	return s[start : end+1]
}

// clampScore bounds a model-reported score to the canonical 0-10 scale.
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 10 {
		return 10
	}
	return score
}
